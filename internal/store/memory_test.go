package store

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/qween-code/barter-qween/internal/testutil"
	"github.com/qween-code/barter-qween/internal/types"
)

func loadedStore(t *testing.T, onChange OnChangeFunc) *Memory {
	t.Helper()
	m := NewMemory(onChange)
	require.NoError(t, m.LoadSnapshot("testdata/snapshot.yaml"))
	return m
}

func TestLoadSnapshot(t *testing.T) {
	m := loadedStore(t, nil)
	ctx := context.Background()

	items, convs, offers := m.Counts()
	assert.Equal(t, 2, items)
	assert.Equal(t, 1, convs)
	assert.Equal(t, 1, offers)

	guitar, err := m.GetItem(ctx, "guitar")
	require.NoError(t, err)
	require.NotNil(t, guitar.MonetaryValue)
	assert.Equal(t, 420.0, *guitar.MonetaryValue)
	require.NotNil(t, guitar.BarterCondition)
	assert.Equal(t, types.BarterConditionCategorySpecific, guitar.BarterCondition.Type)
	assert.Equal(t, []string{"Sports", "Electronics"}, guitar.BarterCondition.AcceptedCategories)

	toks, err := m.Tokens(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, []types.DeviceToken{"tok-alice-phone", "tok-alice-tablet"}, toks)
}

func TestLoadSnapshot_MatchesFixture(t *testing.T) {
	var snap Snapshot
	testutil.LoadFixture(t, "testdata/snapshot.yaml", &snap)
	m := loadedStore(t, nil)
	ctx := context.Background()

	for _, want := range snap.Items {
		got, err := m.GetItem(ctx, want.ID)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}
	for _, c := range snap.Conversations {
		got, err := m.Participants(ctx, c.ID)
		require.NoError(t, err)
		assert.Equal(t, c.ParticipantIDs, got)
	}
}

func TestLoadSnapshot_Errors(t *testing.T) {
	m := NewMemory(nil)
	assert.Error(t, m.LoadSnapshot("testdata/missing.yaml"))
}

func TestGetItem_NotFound(t *testing.T) {
	m := NewMemory(nil)
	_, err := m.GetItem(context.Background(), "nope")
	assert.ErrorIs(t, err, types.ErrNotFound)
}

func TestParticipants(t *testing.T) {
	m := loadedStore(t, nil)
	ctx := context.Background()

	p, err := m.Participants(ctx, "conv-1")
	require.NoError(t, err)
	assert.Equal(t, []string{"alice", "bob"}, p)

	// Returned slice is a copy.
	p[0] = "mallory"
	p2, _ := m.Participants(ctx, "conv-1")
	assert.Equal(t, "alice", p2[0])

	_, err = m.Participants(ctx, "conv-x")
	assert.ErrorIs(t, err, types.ErrNotFound)
}

func TestTokens_UnknownUserIsEmpty(t *testing.T) {
	m := NewMemory(nil)
	toks, err := m.Tokens(context.Background(), "ghost")
	require.NoError(t, err)
	assert.Empty(t, toks)
}

func TestAddDeviceToken_Idempotent(t *testing.T) {
	m := NewMemory(nil)
	m.AddDeviceToken("alice", "t1")
	m.AddDeviceToken("alice", "t1")
	m.AddDeviceToken("alice", "t2")
	toks, _ := m.Tokens(context.Background(), "alice")
	assert.Equal(t, []types.DeviceToken{"t1", "t2"}, toks)
}

func TestCreateMessage_FiresChange(t *testing.T) {
	var changes []Change
	m := loadedStore(t, func(c Change) { changes = append(changes, c) })

	msg, err := m.CreateMessage(context.Background(), "conv-1", "alice", "hello")
	require.NoError(t, err)
	assert.NotEmpty(t, msg.ID)
	assert.False(t, msg.CreatedAt.IsZero())

	require.Len(t, changes, 1)
	assert.Equal(t, ChangeMessageCreated, changes[0].Type)
	require.NotNil(t, changes[0].Message)
	assert.Equal(t, msg, *changes[0].Message)
}

func TestCreateMessage_Validation(t *testing.T) {
	called := false
	m := loadedStore(t, func(Change) { called = true })

	_, err := m.CreateMessage(context.Background(), "conv-x", "alice", "hi")
	assert.ErrorIs(t, err, types.ErrNotFound)

	_, err = m.CreateMessage(context.Background(), "conv-1", "mallory", "hi")
	assert.ErrorIs(t, err, types.ErrInvalidArgument)

	assert.False(t, called)
}

func TestCreateTradeOffer(t *testing.T) {
	var changes []Change
	m := loadedStore(t, func(c Change) { changes = append(changes, c) })

	offer, err := m.CreateTradeOffer(context.Background(), types.TradeOffer{
		FromUserID:      "bob",
		ToUserID:        "alice",
		OfferedItemID:   "guitar",
		RequestedItemID: "bike",
		Status:          types.TradeStatusCompleted, // ignored
	})
	require.NoError(t, err)
	assert.NotEmpty(t, offer.ID)
	assert.Equal(t, types.TradeStatusPending, offer.Status)
	assert.Equal(t, "Acoustic guitar", offer.OfferedItemTitle)

	require.Len(t, changes, 1)
	assert.Equal(t, ChangeTradeOfferCreated, changes[0].Type)
	assert.Nil(t, changes[0].TradeOfferBefore)
	assert.Equal(t, offer, *changes[0].TradeOfferAfter)

	_, err = m.CreateTradeOffer(context.Background(), types.TradeOffer{FromUserID: "bob"})
	assert.ErrorIs(t, err, types.ErrInvalidArgument)
}

func TestUpdateTradeOfferStatus(t *testing.T) {
	var changes []Change
	m := loadedStore(t, func(c Change) { changes = append(changes, c) })
	ctx := context.Background()

	after, err := m.UpdateTradeOfferStatus(ctx, "trade-1", types.TradeStatusAccepted)
	require.NoError(t, err)
	assert.Equal(t, types.TradeStatusAccepted, after.Status)

	require.Len(t, changes, 1)
	assert.Equal(t, ChangeTradeOfferUpdated, changes[0].Type)
	assert.Equal(t, types.TradeStatusPending, changes[0].TradeOfferBefore.Status)
	assert.Equal(t, types.TradeStatusAccepted, changes[0].TradeOfferAfter.Status)

	_, err = m.UpdateTradeOfferStatus(ctx, "trade-1", types.TradeStatusRejected)
	assert.ErrorIs(t, err, types.ErrInvalidTransition)

	_, err = m.UpdateTradeOfferStatus(ctx, "trade-x", types.TradeStatusAccepted)
	assert.ErrorIs(t, err, types.ErrNotFound)

	got, err := m.GetTradeOffer(ctx, "trade-1")
	require.NoError(t, err)
	assert.Equal(t, types.TradeStatusAccepted, got.Status)
	assert.Len(t, changes, 1)
}

func TestMemory_ConcurrentAccess(t *testing.T) {
	m := loadedStore(t, nil)
	ctx := context.Background()

	var wg sync.WaitGroup
	for range 20 {
		wg.Add(3)
		go func() {
			defer wg.Done()
			_, _ = m.CreateMessage(ctx, "conv-1", "bob", "ping")
		}()
		go func() {
			defer wg.Done()
			_, _ = m.Tokens(ctx, "alice")
		}()
		go func() {
			defer wg.Done()
			m.AddDeviceToken("carol", "tok-carol")
		}()
	}
	wg.Wait()

	toks, _ := m.Tokens(ctx, "carol")
	assert.Equal(t, []types.DeviceToken{"tok-carol"}, toks)
}
