package app

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mnstudio/quote-studio/internal/adapters/store"
	"github.com/mnstudio/quote-studio/internal/domain"
	"github.com/mnstudio/quote-studio/internal/ports"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func testIdentity(id string) *domain.Identity {
	return &domain.Identity{
		ID:        id,
		Email:     id + "@example.com",
		Name:      id,
		CreatedAt: time.Date(2026, time.August, 1, 0, 0, 0, 0, time.UTC),
	}
}

func newTestCollection(t *testing.T, kv ports.KeyValueStore) *Collection {
	t.Helper()

	if kv == nil {
		kv = store.NewMemory()
	}

	return NewCollection(CollectionConfig{
		Store:  kv,
		Logger: discardLogger(),
		Seed:   SeedQuotes(),
		Now:    func() time.Time { return time.Date(2026, time.August, 28, 12, 0, 0, 0, time.UTC) },
		NewID:  func() string { return "generated-id" },
	})
}

func findQuote(t *testing.T, quotes []domain.Quote, id string) domain.Quote {
	t.Helper()

	for _, q := range quotes {
		if q.ID == id {
			return q
		}
	}

	t.Fatalf("quote %q not in result", id)

	return domain.Quote{}
}

func TestCollection_Filtered_EmptyFilterReturnsAll(t *testing.T) {
	c := newTestCollection(t, nil)

	all := c.Filtered()
	require.Len(t, all, 4)

	// Newest first.
	assert.Equal(t, "1", all[0].ID)
	assert.Equal(t, "4", all[3].ID)
}

func TestCollection_Filtered_TermMatchesTagsOnly(t *testing.T) {
	c := newTestCollection(t, nil)
	c.SetSearchTerm("perseverance")

	result := c.Filtered()
	require.Len(t, result, 1)
	assert.Equal(t, "2", result[0].ID)
}

func TestCollection_Filtered_TermAndCategoryCombine(t *testing.T) {
	c := newTestCollection(t, nil)

	// "steve jobs" authored quotes in two categories; the category
	// restriction narrows to one.
	c.SetSearchTerm("steve jobs")
	c.SetCategory("Leadership")

	result := c.Filtered()
	require.Len(t, result, 1)
	assert.Equal(t, "4", result[0].ID)

	c.SetCategory(domain.CategoryAll)
	assert.Len(t, c.Filtered(), 2)
}

func TestCollection_Filtered_NoMatches(t *testing.T) {
	c := newTestCollection(t, nil)
	c.SetSearchTerm("no such quote anywhere")

	assert.Empty(t, c.Filtered())
}

func TestCollection_Categories(t *testing.T) {
	c := newTestCollection(t, nil)

	assert.Equal(t,
		[]string{"All", "Motivation", "Success", "Dreams", "Leadership"},
		c.Categories(),
	)

	// A new quote in an existing category adds no duplicate.
	c.SetIdentity(context.Background(), testIdentity("admin"))
	c.Add(context.Background(), domain.Draft{Text: "x", Author: "y", Category: "Success"}, "admin")

	assert.Equal(t,
		[]string{"All", "Success", "Motivation", "Dreams", "Leadership"},
		c.Categories(),
	)
}

func TestCollection_ToggleLike_IsSelfInverse(t *testing.T) {
	ctx := context.Background()
	c := newTestCollection(t, nil)
	c.SetIdentity(ctx, testIdentity("user-a"))

	before := findQuote(t, c.Filtered(), "1")

	c.ToggleLike(ctx, "1")
	assert.Equal(t, before.Likes+1, findQuote(t, c.Filtered(), "1").Likes)
	assert.Equal(t, []string{"1"}, c.Liked())

	c.ToggleLike(ctx, "1")
	assert.Equal(t, before.Likes, findQuote(t, c.Filtered(), "1").Likes)
	assert.Empty(t, c.Liked())
}

func TestCollection_ToggleSave_IndependentOfLike(t *testing.T) {
	ctx := context.Background()
	c := newTestCollection(t, nil)
	c.SetIdentity(ctx, testIdentity("user-a"))

	c.ToggleLike(ctx, "2")
	c.ToggleSave(ctx, "3")

	assert.Equal(t, []string{"2"}, c.Liked())
	assert.Equal(t, []string{"3"}, c.Saved())

	q2 := findQuote(t, c.Filtered(), "2")
	assert.Equal(t, 68, q2.Likes)
	assert.Equal(t, 34, q2.Saves)

	q3 := findQuote(t, c.Filtered(), "3")
	assert.Equal(t, 89, q3.Likes)
	assert.Equal(t, 46, q3.Saves)
}

func TestCollection_Toggle_NoIdentityIsNoOp(t *testing.T) {
	ctx := context.Background()
	c := newTestCollection(t, nil)

	c.ToggleLike(ctx, "1")
	c.ToggleSave(ctx, "1")

	q := findQuote(t, c.Filtered(), "1")
	assert.Equal(t, 45, q.Likes)
	assert.Equal(t, 23, q.Saves)
	assert.Empty(t, c.Liked())
	assert.Empty(t, c.Saved())
}

func TestCollection_Toggle_UnknownQuoteIsNoOp(t *testing.T) {
	ctx := context.Background()
	c := newTestCollection(t, nil)
	c.SetIdentity(ctx, testIdentity("user-a"))

	c.ToggleLike(ctx, "missing")

	assert.Empty(t, c.Liked())
}

func TestCollection_RecordShare_AccumulatesWithoutIdentity(t *testing.T) {
	ctx := context.Background()
	c := newTestCollection(t, nil)

	for range 3 {
		c.RecordShare(ctx, "4")
	}

	assert.Equal(t, 18, findQuote(t, c.Filtered(), "4").Shares)

	// Unknown id changes nothing.
	c.RecordShare(ctx, "missing")
	assert.Len(t, c.Filtered(), 4)
}

func TestCollection_Add_PrependsWithDefaults(t *testing.T) {
	ctx := context.Background()
	c := newTestCollection(t, nil)

	quote := c.Add(ctx, domain.Draft{
		Text:   "Be bold.",
		Author: "Anon",
		Tags:   "x, y, ,z",
	}, "admin-id")

	assert.Equal(t, "generated-id", quote.ID)
	assert.Equal(t, "General", quote.Category)
	assert.Equal(t, []string{"x", "y", "z"}, quote.Tags)
	assert.Zero(t, quote.Likes)
	assert.Zero(t, quote.Saves)
	assert.Zero(t, quote.Shares)
	assert.Equal(t, "admin-id", quote.UploadedBy)
	assert.Equal(t, time.Date(2026, time.August, 28, 12, 0, 0, 0, time.UTC), quote.CreatedAt)

	all := c.Filtered()
	require.Len(t, all, 5)
	assert.Equal(t, "generated-id", all[0].ID)
}

func TestCollection_SetIdentity_SwitchDoesNotLeakSets(t *testing.T) {
	ctx := context.Background()
	kv := store.NewMemory()
	c := newTestCollection(t, kv)

	a, b := testIdentity("user-a"), testIdentity("user-b")

	c.SetIdentity(ctx, a)
	c.ToggleLike(ctx, "1")
	c.ToggleSave(ctx, "2")

	// B starts clean.
	c.SetIdentity(ctx, b)
	assert.Empty(t, c.Liked())
	assert.Empty(t, c.Saved())

	c.ToggleLike(ctx, "3")

	// A's sets come back intact.
	c.SetIdentity(ctx, a)
	assert.Equal(t, []string{"1"}, c.Liked())
	assert.Equal(t, []string{"2"}, c.Saved())
}

func TestCollection_SetIdentity_SignOutClearsInMemoryOnly(t *testing.T) {
	ctx := context.Background()
	kv := store.NewMemory()
	c := newTestCollection(t, kv)

	a := testIdentity("user-a")
	c.SetIdentity(ctx, a)
	c.ToggleLike(ctx, "1")

	c.SetIdentity(ctx, nil)
	assert.Empty(t, c.Liked())

	// The persisted set is untouched.
	value, ok, err := kv.Get(ctx, ports.InteractionKey("user-a", ports.InteractionLikes))
	require.NoError(t, err)
	require.True(t, ok)
	assert.JSONEq(t, `["1"]`, value)

	c.SetIdentity(ctx, a)
	assert.Equal(t, []string{"1"}, c.Liked())
}

func TestCollection_SetIdentity_CorruptSetDegradesToEmpty(t *testing.T) {
	ctx := context.Background()
	kv := store.NewMemory()
	require.NoError(t, kv.Set(ctx,
		ports.InteractionKey("user-a", ports.InteractionLikes), "{not json"))

	c := newTestCollection(t, kv)
	c.SetIdentity(ctx, testIdentity("user-a"))

	assert.Empty(t, c.Liked())

	// The next toggle rewrites the key with valid state.
	c.ToggleLike(ctx, "1")

	value, ok, err := kv.Get(ctx, ports.InteractionKey("user-a", ports.InteractionLikes))
	require.NoError(t, err)
	require.True(t, ok)
	assert.JSONEq(t, `["1"]`, value)
}

func TestCollection_Filtered_ReturnsCopies(t *testing.T) {
	c := newTestCollection(t, nil)

	result := c.Filtered()
	result[0].Likes = 9999

	assert.Equal(t, 45, findQuote(t, c.Filtered(), "1").Likes)
}
