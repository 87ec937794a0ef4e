package handlers

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mnstudio/quote-studio/internal/adapters/http/dto"
)

func TestQuotes_List_DefaultView(t *testing.T) {
	rig := newTestRig(t)

	rec := rig.do(t, http.MethodGet, "/api/v1/quotes", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	resp := decodeJSON[dto.QuoteListResponse](t, rec)
	require.Len(t, resp.Quotes, 4)
	assert.Equal(t, "1", resp.Quotes[0].ID)
	assert.Equal(t, []string{"All", "Motivation", "Success", "Dreams", "Leadership"}, resp.Categories)
	assert.Equal(t, "All", resp.Filter.Category)
	assert.Empty(t, resp.Filter.SearchTerm)
}

func TestQuotes_UpdateFilter_NarrowsView(t *testing.T) {
	rig := newTestRig(t)

	rec := rig.do(t, http.MethodPut, "/api/v1/quotes/filter", map[string]string{
		"searchTerm": "dreams",
	})
	require.Equal(t, http.StatusOK, rec.Code)

	resp := decodeJSON[dto.QuoteListResponse](t, rec)
	require.Len(t, resp.Quotes, 1)
	assert.Equal(t, "3", resp.Quotes[0].ID)
	assert.Equal(t, "dreams", resp.Filter.SearchTerm)

	// Clearing the term restores the full view.
	rec = rig.do(t, http.MethodPut, "/api/v1/quotes/filter", map[string]string{
		"searchTerm": "",
	})
	require.Equal(t, http.StatusOK, rec.Code)

	resp = decodeJSON[dto.QuoteListResponse](t, rec)
	assert.Len(t, resp.Quotes, 4)
}

func TestQuotes_UpdateFilter_OmittedFieldUntouched(t *testing.T) {
	rig := newTestRig(t)

	rec := rig.do(t, http.MethodPut, "/api/v1/quotes/filter", map[string]string{
		"category": "Success",
	})
	require.Equal(t, http.StatusOK, rec.Code)

	rec = rig.do(t, http.MethodPut, "/api/v1/quotes/filter", map[string]string{
		"searchTerm": "courage",
	})
	require.Equal(t, http.StatusOK, rec.Code)

	resp := decodeJSON[dto.QuoteListResponse](t, rec)
	assert.Equal(t, "Success", resp.Filter.Category)
	require.Len(t, resp.Quotes, 1)
	assert.Equal(t, "2", resp.Quotes[0].ID)
}

func TestQuotes_Like_RequiresIdentity(t *testing.T) {
	rig := newTestRig(t)

	rec := rig.do(t, http.MethodPost, "/api/v1/quotes/1/like", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestQuotes_Like_TogglesCounter(t *testing.T) {
	rig := newTestRig(t)
	rig.signIn(t, "reader@example.com")

	rec := rig.do(t, http.MethodPost, "/api/v1/quotes/1/like", nil)
	require.Equal(t, http.StatusNoContent, rec.Code)

	list := decodeJSON[dto.QuoteListResponse](t, rig.do(t, http.MethodGet, "/api/v1/quotes", nil))
	assert.Equal(t, 46, list.Quotes[0].Likes)

	// Second toggle restores the counter.
	rec = rig.do(t, http.MethodPost, "/api/v1/quotes/1/like", nil)
	require.Equal(t, http.StatusNoContent, rec.Code)

	list = decodeJSON[dto.QuoteListResponse](t, rig.do(t, http.MethodGet, "/api/v1/quotes", nil))
	assert.Equal(t, 45, list.Quotes[0].Likes)
}

func TestQuotes_Share_Anonymous(t *testing.T) {
	rig := newTestRig(t)

	rec := rig.do(t, http.MethodPost, "/api/v1/quotes/2/share", nil)
	require.Equal(t, http.StatusNoContent, rec.Code)

	list := decodeJSON[dto.QuoteListResponse](t, rig.do(t, http.MethodGet, "/api/v1/quotes", nil))
	assert.Equal(t, 19, list.Quotes[1].Shares)

	// Unknown id is accepted and changes nothing.
	rec = rig.do(t, http.MethodPost, "/api/v1/quotes/missing/share", nil)
	assert.Equal(t, http.StatusNoContent, rec.Code)
}

func TestQuotes_Interactions(t *testing.T) {
	rig := newTestRig(t)

	rec := rig.do(t, http.MethodGet, "/api/v1/quotes/interactions", nil)
	require.Equal(t, http.StatusUnauthorized, rec.Code)

	rig.signIn(t, "reader@example.com")
	rig.do(t, http.MethodPost, "/api/v1/quotes/1/like", nil)
	rig.do(t, http.MethodPost, "/api/v1/quotes/2/save", nil)

	rec = rig.do(t, http.MethodGet, "/api/v1/quotes/interactions", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	resp := decodeJSON[dto.InteractionsResponse](t, rec)
	assert.Equal(t, []string{"1"}, resp.Liked)
	assert.Equal(t, []string{"2"}, resp.Saved)
}

func TestQuotes_Create_RequiresAdmin(t *testing.T) {
	rig := newTestRig(t)

	body := map[string]string{"text": "Be bold.", "author": "Anon"}

	rec := rig.do(t, http.MethodPost, "/api/v1/quotes", body)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rig.signIn(t, "reader@example.com")

	rec = rig.do(t, http.MethodPost, "/api/v1/quotes", body)
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestQuotes_Create_AdminUpload(t *testing.T) {
	rig := newTestRig(t)
	rig.signIn(t, "admin@mnstudio.com")

	rec := rig.do(t, http.MethodPost, "/api/v1/quotes", map[string]string{
		"text":   "Be bold.",
		"author": "Anon",
		"tags":   "x, y, ,z",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	quote := decodeJSON[dto.QuoteResponse](t, rec)
	assert.NotEmpty(t, quote.ID)
	assert.Equal(t, "General", quote.Category)
	assert.Equal(t, []string{"x", "y", "z"}, quote.Tags)
	assert.Zero(t, quote.Likes)

	// The new quote leads the default view.
	list := decodeJSON[dto.QuoteListResponse](t, rig.do(t, http.MethodGet, "/api/v1/quotes", nil))
	require.Len(t, list.Quotes, 5)
	assert.Equal(t, quote.ID, list.Quotes[0].ID)
}

func TestQuotes_Create_ValidationFailure(t *testing.T) {
	rig := newTestRig(t)
	rig.signIn(t, "admin@mnstudio.com")

	rec := rig.do(t, http.MethodPost, "/api/v1/quotes", map[string]string{
		"text": "   ",
	})
	require.Equal(t, http.StatusBadRequest, rec.Code)

	resp := decodeJSON[dto.ErrorResponse](t, rec)
	assert.Equal(t, dto.ErrorCodeValidation, resp.Error.Code)
	assert.Contains(t, resp.Error.Details, "text")
	assert.Contains(t, resp.Error.Details, "author")
}
