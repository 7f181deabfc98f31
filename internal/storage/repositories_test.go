package storage

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testDB(t *testing.T) *Repositories {
	t.Helper()

	db, err := Open(context.Background(), OpenOptions{
		Driver: "sqlite",
		DSN:    ":memory:",
	})
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	return NewRepositories(db)
}

func TestDestinationUpsertAndGet(t *testing.T) {
	repos := testDB(t)
	ctx := context.Background()

	d := &Destination{
		ID:          "12",
		Name:        "Pantai Papuma",
		Category:    "Pantai",
		Address:     "Wuluhan, Jember",
		Description: "Pantai pasir putih dengan batu karang.",
		TicketPrice: "Rp 15.000",
	}
	require.NoError(t, repos.Destinations.Upsert(ctx, d))

	got, err := repos.Destinations.GetByID(ctx, "12")
	require.NoError(t, err)
	assert.Equal(t, "Pantai Papuma", got.Name)
	assert.Equal(t, "Pantai", got.Category)

	// Second upsert replaces fields instead of failing.
	d.Description = "Updated"
	require.NoError(t, repos.Destinations.Upsert(ctx, d))

	got, err = repos.Destinations.GetByID(ctx, "12")
	require.NoError(t, err)
	assert.Equal(t, "Updated", got.Description)
}

func TestDestinationGetMissing(t *testing.T) {
	repos := testDB(t)

	_, err := repos.Destinations.GetByID(context.Background(), "nope")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestSessionCreateAssignsID(t *testing.T) {
	repos := testDB(t)
	ctx := context.Background()

	s := &ChatSession{UserID: 7, Title: "dimana pantai yang sepi"}
	require.NoError(t, repos.Sessions.Create(ctx, s))
	assert.NotZero(t, s.ID)

	got, err := repos.Sessions.GetByID(ctx, s.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(7), got.UserID)
}

func TestMessageAppendAndOrder(t *testing.T) {
	repos := testDB(t)
	ctx := context.Background()

	s := &ChatSession{UserID: 1, Title: "t"}
	require.NoError(t, repos.Sessions.Create(ctx, s))

	base := time.Now().Add(-time.Hour)
	msgs := []*ChatMessage{
		{SessionID: s.ID, Sender: SenderUser, Content: "first", Timestamp: base},
		{SessionID: s.ID, Sender: SenderAssistant, Content: "second", Timestamp: base.Add(time.Minute)},
		{SessionID: s.ID, Sender: SenderUser, Content: "third", Timestamp: base.Add(2 * time.Minute)},
	}
	for _, m := range msgs {
		require.NoError(t, repos.Messages.Append(ctx, m))
	}

	// Recent is newest first and capped.
	recent, err := repos.Messages.Recent(ctx, s.ID, 2)
	require.NoError(t, err)
	require.Len(t, recent, 2)
	assert.Equal(t, "third", recent[0].Content)
	assert.Equal(t, "second", recent[1].Content)

	// Full listing is chronological.
	all, err := repos.Messages.ListBySession(ctx, s.ID)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "first", all[0].Content)
	assert.Equal(t, "third", all[2].Content)
}

func TestMessageRecommendationsRoundTrip(t *testing.T) {
	repos := testDB(t)
	ctx := context.Background()

	s := &ChatSession{UserID: 1}
	require.NoError(t, repos.Sessions.Create(ctx, s))

	m := &ChatMessage{
		SessionID: s.ID,
		Sender:    SenderAssistant,
		Content:   "coba Pantai Papuma, Tretan",
		Recommendations: []RecommendationCard{
			{ID: "12", Name: "Pantai Papuma", Category: "Pantai"},
		},
	}
	require.NoError(t, repos.Messages.Append(ctx, m))

	all, err := repos.Messages.ListBySession(ctx, s.ID)
	require.NoError(t, err)
	require.Len(t, all, 1)
	require.Len(t, all[0].Recommendations, 1)
	assert.Equal(t, "Pantai Papuma", all[0].Recommendations[0].Name)
}
