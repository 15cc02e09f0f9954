package types

import "time"

// TradeStatus is the lifecycle state of a trade offer.
type TradeStatus string

const (
	TradeStatusPending   TradeStatus = "pending"
	TradeStatusAccepted  TradeStatus = "accepted"
	TradeStatusRejected  TradeStatus = "rejected"
	TradeStatusCancelled TradeStatus = "cancelled"
	TradeStatusCompleted TradeStatus = "completed"
)

var tradeTransitions = map[TradeStatus][]TradeStatus{
	TradeStatusPending:  {TradeStatusAccepted, TradeStatusRejected, TradeStatusCancelled},
	TradeStatusAccepted: {TradeStatusCompleted},
}

// CanTransitionTo reports whether moving from s to next is a legal trade transition.
// The notifier does not use this; it reacts to any observed status difference.
func (s TradeStatus) CanTransitionTo(next TradeStatus) bool {
	for _, allowed := range tradeTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// DeviceToken is an opaque push delivery address owned by one user.
type DeviceToken string

// Conversation is a message thread between users.
type Conversation struct {
	ID             string   `json:"id"`
	ParticipantIDs []string `json:"participantIds"`
}

// Message is a single chat message within a conversation.
type Message struct {
	ID             string    `json:"id"`
	ConversationID string    `json:"conversationId"`
	SenderID       string    `json:"senderId"`
	Text           string    `json:"text"`
	CreatedAt      time.Time `json:"createdAt"`
}

// TradeOffer proposes exchanging one item for another, optionally with cash.
type TradeOffer struct {
	ID               string      `json:"id"`
	FromUserID       string      `json:"fromUserId"`
	ToUserID         string      `json:"toUserId"`
	OfferedItemID    string      `json:"offeredItemId"`
	RequestedItemID  string      `json:"requestedItemId"`
	OfferedItemTitle string      `json:"offeredItemTitle,omitempty"`
	Status           TradeStatus `json:"status"`
	CashDifferential *float64    `json:"cashDifferential,omitempty"`
	CreatedAt        time.Time   `json:"createdAt"`
	UpdatedAt        time.Time   `json:"updatedAt"`
}
