package dto

import (
	"time"

	"github.com/mnstudio/quote-studio/internal/domain"
)

// CreateQuoteRequest is the payload for uploading a new quote.
// Tags arrive as a single comma-separated string, as typed into the
// upload form.
type CreateQuoteRequest struct {
	Text          string     `json:"text"          validate:"required,notempty,max=1000"`
	Author        string     `json:"author"        validate:"required,notempty,max=200"`
	Category      string     `json:"category"      validate:"omitempty,max=100"`
	Image         string     `json:"image"         validate:"omitempty,url"`
	Tags          string     `json:"tags"          validate:"omitempty,max=500"`
	Scheduled     bool       `json:"scheduled"`
	ScheduledDate *time.Time `json:"scheduledDate"`
}

// Draft converts the request to a domain draft.
func (r *CreateQuoteRequest) Draft() domain.Draft {
	return domain.Draft{
		Text:          r.Text,
		Author:        r.Author,
		Category:      r.Category,
		Image:         r.Image,
		Tags:          r.Tags,
		Scheduled:     r.Scheduled,
		ScheduledDate: r.ScheduledDate,
	}
}

// FilterRequest updates the collection view restrictions. Both fields are
// optional; an omitted field leaves the corresponding restriction alone.
type FilterRequest struct {
	SearchTerm *string `json:"searchTerm" validate:"omitempty,max=200"`
	Category   *string `json:"category"   validate:"omitempty,max=100"`
}

// QuoteResponse is the wire representation of a quote.
type QuoteResponse struct {
	ID            string     `json:"id"`
	Text          string     `json:"text"`
	Author        string     `json:"author"`
	Category      string     `json:"category"`
	Image         string     `json:"image,omitempty"`
	Tags          []string   `json:"tags"`
	Likes         int        `json:"likes"`
	Saves         int        `json:"saves"`
	Shares        int        `json:"shares"`
	UploadedBy    string     `json:"uploadedBy"`
	CreatedAt     time.Time  `json:"createdAt"`
	Scheduled     bool       `json:"scheduled,omitempty"`
	ScheduledDate *time.Time `json:"scheduledDate,omitempty"`
}

// FilterResponse echoes the active view restrictions.
type FilterResponse struct {
	SearchTerm string `json:"searchTerm"`
	Category   string `json:"category"`
}

// QuoteListResponse is the collection view: the quotes passing the active
// filter plus the category index and the filter itself.
type QuoteListResponse struct {
	Quotes     []QuoteResponse `json:"quotes"`
	Categories []string        `json:"categories"`
	Filter     FilterResponse  `json:"filter"`
}

// InteractionsResponse lists the signed-in identity's interaction sets.
type InteractionsResponse struct {
	Liked []string `json:"liked"`
	Saved []string `json:"saved"`
}

// NewQuoteResponse maps a domain quote to its wire representation.
func NewQuoteResponse(q domain.Quote) QuoteResponse {
	tags := q.Tags
	if tags == nil {
		tags = []string{}
	}

	return QuoteResponse{
		ID:            q.ID,
		Text:          q.Text,
		Author:        q.Author,
		Category:      q.Category,
		Image:         q.Image,
		Tags:          tags,
		Likes:         q.Likes,
		Saves:         q.Saves,
		Shares:        q.Shares,
		UploadedBy:    q.UploadedBy,
		CreatedAt:     q.CreatedAt,
		Scheduled:     q.Scheduled,
		ScheduledDate: q.ScheduledDate,
	}
}

// NewQuoteListResponse maps a filtered view to the wire representation.
func NewQuoteListResponse(quotes []domain.Quote, categories []string, filter domain.Filter) QuoteListResponse {
	items := make([]QuoteResponse, 0, len(quotes))
	for _, q := range quotes {
		items = append(items, NewQuoteResponse(q))
	}

	return QuoteListResponse{
		Quotes:     items,
		Categories: categories,
		Filter: FilterResponse{
			SearchTerm: filter.Term,
			Category:   filter.Category,
		},
	}
}
