package notifier

import (
	"fmt"

	"github.com/qween-code/barter-qween/internal/types"
)

// Data payload keys.
const (
	DataKeyType     = "type"
	DataKeyEntityID = "entityId"
)

// Message is the rendered push content for one event.
type Message struct {
	Notification types.Notification `json:"notification"`
	Data         map[string]string  `json:"data"`
}

var statusMessages = map[types.TradeStatus]types.Notification{
	types.TradeStatusAccepted:  {Title: "Trade accepted", Body: "Your offer was accepted"},
	types.TradeStatusRejected:  {Title: "Trade rejected", Body: "Your offer was rejected"},
	types.TradeStatusCancelled: {Title: "Trade cancelled", Body: "Offer was cancelled"},
	types.TradeStatusCompleted: {Title: "Trade completed", Body: "Trade completed successfully"},
}

// BuildMessage renders the notification and data payload for an event.
func BuildMessage(e types.Event) (Message, error) {
	switch ev := e.(type) {
	case types.MessageCreated:
		return newMessage(types.Notification{Title: "New message", Body: ev.Text}, "new_message", ev.ConversationID), nil

	case types.TradeOfferCreated:
		body := ev.OfferedItemTitle
		if body == "" {
			body = "You received a trade offer"
		}
		return newMessage(types.Notification{Title: "New trade offer", Body: body}, "new_trade_offer", ev.TradeID), nil

	case types.TradeOfferStatusChanged:
		n, ok := statusMessages[ev.NewStatus]
		if !ok {
			n = types.Notification{Title: "Trade updated", Body: fmt.Sprintf("Status: %s", ev.NewStatus)}
		}
		return newMessage(n, "trade_"+string(ev.NewStatus), ev.TradeID), nil

	default:
		return Message{}, fmt.Errorf("%w: unsupported event %T", types.ErrInvalidArgument, e)
	}
}

func newMessage(n types.Notification, kind, entityID string) Message {
	return Message{
		Notification: n,
		Data: map[string]string{
			DataKeyType:     kind,
			DataKeyEntityID: entityID,
		},
	}
}
