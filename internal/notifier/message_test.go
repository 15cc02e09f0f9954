package notifier

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/qween-code/barter-qween/internal/types"
)

func TestBuildMessage_StatusChanged(t *testing.T) {
	tests := []struct {
		status    types.TradeStatus
		wantTitle string
		wantBody  string
	}{
		{types.TradeStatusAccepted, "Trade accepted", "Your offer was accepted"},
		{types.TradeStatusRejected, "Trade rejected", "Your offer was rejected"},
		{types.TradeStatusCancelled, "Trade cancelled", "Offer was cancelled"},
		{types.TradeStatusCompleted, "Trade completed", "Trade completed successfully"},
		{types.TradeStatusPending, "Trade updated", "Status: pending"},
		{types.TradeStatus("disputed"), "Trade updated", "Status: disputed"},
	}

	for _, tt := range tests {
		t.Run(string(tt.status), func(t *testing.T) {
			msg, err := BuildMessage(types.TradeOfferStatusChanged{
				TradeID:        "trade-1",
				PreviousStatus: "whatever",
				NewStatus:      tt.status,
			})
			require.NoError(t, err)
			assert.Equal(t, tt.wantTitle, msg.Notification.Title)
			assert.Equal(t, tt.wantBody, msg.Notification.Body)
			assert.Equal(t, "trade_"+string(tt.status), msg.Data[DataKeyType])
			assert.Equal(t, "trade-1", msg.Data[DataKeyEntityID])
		})
	}
}

func TestBuildMessage_TradeOfferCreated_TitleIsBody(t *testing.T) {
	msg, err := BuildMessage(types.TradeOfferCreated{TradeID: "trade-2", ToUserID: "bob", OfferedItemTitle: "Road bike"})
	require.NoError(t, err)
	assert.Equal(t, types.Notification{Title: "New trade offer", Body: "Road bike"}, msg.Notification)
	assert.Equal(t, "trade-2", msg.Data[DataKeyEntityID])
}

func TestBuildMessage_TradeOfferCreated_NoTitle(t *testing.T) {
	msg, err := BuildMessage(types.TradeOfferCreated{TradeID: "trade-2", ToUserID: "bob"})
	require.NoError(t, err)
	assert.Equal(t, "You received a trade offer", msg.Notification.Body)
	assert.Equal(t, "new_trade_offer", msg.Data[DataKeyType])
}

func TestBuildMessage_MessageCreated(t *testing.T) {
	msg, err := BuildMessage(types.MessageCreated{ConversationID: "conv-1", SenderID: "alice", Text: ""})
	require.NoError(t, err)
	assert.Equal(t, types.Notification{Title: "New message", Body: ""}, msg.Notification)
	assert.Equal(t, map[string]string{"type": "new_message", "entityId": "conv-1"}, msg.Data)
}

func TestBuildMessage_Unsupported(t *testing.T) {
	_, err := BuildMessage(nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, types.ErrInvalidArgument)

	_, err = BuildMessage(&types.MessageCreated{ConversationID: "conv-1"})
	assert.ErrorIs(t, err, types.ErrInvalidArgument)
}
