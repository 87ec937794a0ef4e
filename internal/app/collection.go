// Package app contains application services that orchestrate use cases.
package app

import (
	"context"
	"encoding/json"
	"log/slog"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/mnstudio/quote-studio/internal/domain"
	"github.com/mnstudio/quote-studio/internal/platform/telemetry"
	"github.com/mnstudio/quote-studio/internal/ports"
)

// Collection owns the authoritative quote list, the active search/category
// filter, and the current identity's liked/saved sets. It is the single
// writer for all of that state; every operation is one critical section,
// so the set mutation and the counter mutation of a toggle are observed
// together or not at all.
type Collection struct {
	mu sync.Mutex

	// quotes is ordered newest first; Add prepends.
	quotes []*domain.Quote

	filter domain.Filter

	// identityID is empty when nobody is signed in. liked and saved
	// belong to that identity and are empty sets otherwise.
	identityID string
	liked      map[string]struct{}
	saved      map[string]struct{}

	store      ports.KeyValueStore
	logger     *slog.Logger
	engagement *telemetry.Engagement

	now   func() time.Time
	newID func() string
}

// CollectionConfig contains dependencies for the collection manager.
type CollectionConfig struct {
	// Store is the durable per-device store. Required.
	Store ports.KeyValueStore

	// Logger is the structured logger. Defaults to slog.Default().
	Logger *slog.Logger

	// Engagement receives interaction counts. Optional.
	Engagement *telemetry.Engagement

	// Seed is the initial catalogue, newest first. Optional.
	Seed []*domain.Quote

	// Now and NewID override time and id generation in tests.
	Now   func() time.Time
	NewID func() string
}

// NewCollection creates a collection manager with the provided dependencies.
// Panics if Store is nil.
func NewCollection(cfg CollectionConfig) *Collection {
	if cfg.Store == nil {
		panic("Collection: Store is required")
	}

	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	now := cfg.Now
	if now == nil {
		now = func() time.Time { return time.Now().UTC() }
	}

	newID := cfg.NewID
	if newID == nil {
		newID = func() string { return uuid.NewString() }
	}

	quotes := make([]*domain.Quote, len(cfg.Seed))
	copy(quotes, cfg.Seed)

	return &Collection{
		quotes:     quotes,
		filter:     domain.NewFilter(),
		liked:      make(map[string]struct{}),
		saved:      make(map[string]struct{}),
		store:      cfg.Store,
		logger:     logger,
		engagement: cfg.Engagement,
		now:        now,
		newID:      newID,
	}
}

// Filtered returns the quotes passing the current filter, in collection
// order (newest first). The returned records are copies; callers cannot
// mutate collection state through them.
func (c *Collection) Filtered() []domain.Quote {
	c.mu.Lock()
	defer c.mu.Unlock()

	result := make([]domain.Quote, 0, len(c.quotes))

	for _, q := range c.quotes {
		if c.filter.Matches(q) {
			result = append(result, *q)
		}
	}

	return result
}

// Categories returns domain.CategoryAll followed by the distinct categories
// present in the collection, in collection order.
func (c *Collection) Categories() []string {
	c.mu.Lock()
	defer c.mu.Unlock()

	seen := make(map[string]struct{}, len(c.quotes))
	categories := []string{domain.CategoryAll}

	for _, q := range c.quotes {
		if _, ok := seen[q.Category]; ok {
			continue
		}

		seen[q.Category] = struct{}{}
		categories = append(categories, q.Category)
	}

	return categories
}

// SetSearchTerm updates the free-text restriction. The next Filtered call
// observes it; nothing is persisted.
func (c *Collection) SetSearchTerm(term string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.filter.Term = term
}

// SetCategory updates the category restriction.
func (c *Collection) SetCategory(category string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.filter.Category = category
}

// Filter returns the current filter state.
func (c *Collection) Filter() domain.Filter {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.filter
}

// ToggleLike flips the active identity's like on the quote and adjusts the
// quote's likes counter in the same transition. A missing identity or an
// unknown quote id is a silent no-op. Calling it twice restores both the
// set membership and the counter.
func (c *Collection) ToggleLike(ctx context.Context, quoteID string) {
	c.toggle(ctx, quoteID, ports.InteractionLikes)
}

// ToggleSave is ToggleLike for the independent saved set and saves counter.
func (c *Collection) ToggleSave(ctx context.Context, quoteID string) {
	c.toggle(ctx, quoteID, ports.InteractionSaves)
}

func (c *Collection) toggle(ctx context.Context, quoteID string, kind ports.InteractionKind) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.identityID == "" {
		return
	}

	quote := c.find(quoteID)
	if quote == nil {
		c.logger.DebugContext(ctx, "toggle on unknown quote ignored",
			slog.String("quote_id", quoteID),
		)

		return
	}

	set, counter := c.liked, &quote.Likes
	added, removed := telemetry.ActionLike, telemetry.ActionUnlike

	if kind == ports.InteractionSaves {
		set, counter = c.saved, &quote.Saves
		added, removed = telemetry.ActionSave, telemetry.ActionUnsave
	}

	if _, ok := set[quoteID]; ok {
		delete(set, quoteID)

		if *counter > 0 {
			*counter--
		}

		c.engagement.RecordInteraction(removed)
	} else {
		set[quoteID] = struct{}{}
		*counter++

		c.engagement.RecordInteraction(added)
	}

	c.persistSet(ctx, kind, set)
}

// RecordShare increments the quote's shares counter. Shares are not
// tracked per identity, so there is no precondition and no toggle; an
// unknown quote id is a silent no-op.
func (c *Collection) RecordShare(ctx context.Context, quoteID string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	quote := c.find(quoteID)
	if quote == nil {
		c.logger.DebugContext(ctx, "share of unknown quote ignored",
			slog.String("quote_id", quoteID),
		)

		return
	}

	quote.Shares++

	c.engagement.RecordInteraction(telemetry.ActionShare)
}

// Add creates a quote from the draft and prepends it to the collection,
// making it first in the default view. The admin precondition is enforced
// by the HTTP layer; the collection stores what it is given.
func (c *Collection) Add(ctx context.Context, draft domain.Draft, uploadedBy string) *domain.Quote {
	c.mu.Lock()
	defer c.mu.Unlock()

	quote := domain.NewQuote(draft, c.newID(), uploadedBy, c.now())

	c.quotes = append([]*domain.Quote{quote}, c.quotes...)

	c.engagement.RecordQuoteAdded()

	c.logger.InfoContext(ctx, "quote added",
		slog.String("quote_id", quote.ID),
		slog.String("author", quote.Author),
		slog.String("category", quote.Category),
	)

	copied := *quote

	return &copied
}

// SetIdentity reacts to an identity change. A new identity gets its
// persisted liked/saved sets loaded (empty when absent or unreadable);
// signing out clears the in-memory sets while the persisted ones stay for
// the identity's next session.
func (c *Collection) SetIdentity(ctx context.Context, identity *domain.Identity) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if identity == nil {
		c.identityID = ""
		c.liked = make(map[string]struct{})
		c.saved = make(map[string]struct{})

		return
	}

	c.identityID = identity.ID
	c.liked = c.loadSet(ctx, ports.InteractionLikes)
	c.saved = c.loadSet(ctx, ports.InteractionSaves)
}

// Liked returns the active identity's liked quote ids, sorted.
func (c *Collection) Liked() []string {
	c.mu.Lock()
	defer c.mu.Unlock()

	return sortedIDs(c.liked)
}

// Saved returns the active identity's saved quote ids, sorted.
func (c *Collection) Saved() []string {
	c.mu.Lock()
	defer c.mu.Unlock()

	return sortedIDs(c.saved)
}

// find returns the quote with the given id, or nil. Linear scan: the
// collection holds tens to low hundreds of records.
func (c *Collection) find(quoteID string) *domain.Quote {
	for _, q := range c.quotes {
		if q.ID == quoteID {
			return q
		}
	}

	return nil
}

// persistSet writes the full interaction set through to the store.
// A write failure is surfaced as a warning, never an error: the in-memory
// transition already happened and this state is cosmetic.
func (c *Collection) persistSet(ctx context.Context, kind ports.InteractionKind, set map[string]struct{}) {
	payload, err := json.Marshal(sortedIDs(set))
	if err != nil {
		c.logger.WarnContext(ctx, "encoding interaction set failed",
			slog.String("kind", string(kind)),
			slog.Any("error", err),
		)

		return
	}

	key := ports.InteractionKey(c.identityID, kind)

	err = c.store.Set(ctx, key, string(payload))
	if err != nil {
		c.logger.WarnContext(ctx, "persisting interaction set failed",
			slog.String("key", string(key)),
			slog.Any("error", err),
		)
	}
}

// loadSet reads an interaction set for the current identity. Absent or
// unreadable state degrades to an empty set.
func (c *Collection) loadSet(ctx context.Context, kind ports.InteractionKind) map[string]struct{} {
	set := make(map[string]struct{})

	key := ports.InteractionKey(c.identityID, kind)

	value, ok, err := c.store.Get(ctx, key)
	if err != nil {
		c.logger.WarnContext(ctx, "loading interaction set failed",
			slog.String("key", string(key)),
			slog.Any("error", err),
		)

		return set
	}

	if !ok {
		return set
	}

	var ids []string

	err = json.Unmarshal([]byte(value), &ids)
	if err != nil {
		c.logger.WarnContext(ctx, "corrupt interaction set ignored",
			slog.String("key", string(key)),
			slog.Any("error", err),
		)

		return set
	}

	for _, id := range ids {
		set[id] = struct{}{}
	}

	return set
}

func sortedIDs(set map[string]struct{}) []string {
	ids := make([]string, 0, len(set))
	for id := range set {
		ids = append(ids, id)
	}

	sort.Strings(ids)

	return ids
}
