package types

import "context"

// ItemStore resolves listed items. Used by the request layer before scoring.
//
// GetItem returns an error wrapping ErrNotFound when the item does not exist.
type ItemStore interface {
	GetItem(ctx context.Context, id string) (Item, error)
}

// ConversationStore resolves the participants of a conversation.
//
// Participants returns an error wrapping ErrNotFound when the conversation
// does not exist. The returned slice is in participant order.
type ConversationStore interface {
	Participants(ctx context.Context, conversationID string) ([]string, error)
}

// UserTokenStore resolves the push device tokens a user owns.
//
// Implementations must be safe for concurrent use; the notifier calls Tokens
// for several users in parallel. An empty result is not an error.
type UserTokenStore interface {
	Tokens(ctx context.Context, userID string) ([]DeviceToken, error)
}

// Notification is the user-visible part of a push message.
type Notification struct {
	Title string `json:"title"`
	Body  string `json:"body"`
}

// MulticastResult reports per-token delivery counts for one multicast send.
type MulticastResult struct {
	SuccessCount int `json:"successCount"`
	FailureCount int `json:"failureCount"`
}

// PushTransport delivers one notification to many device tokens in a single call.
//
// A non-nil error means the call as a whole failed; per-token failures are
// reported through MulticastResult.FailureCount instead.
type PushTransport interface {
	SendMulticast(ctx context.Context, tokens []DeviceToken, n Notification, data map[string]string) (MulticastResult, error)
}
