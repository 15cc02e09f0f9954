package types

import (
	"encoding/json"
	"fmt"
)

// EventKind is the wire tag of a notification event.
type EventKind string

const (
	EventKindMessageCreated          EventKind = "messageCreated"
	EventKindTradeOfferCreated       EventKind = "tradeOfferCreated"
	EventKindTradeOfferStatusChanged EventKind = "tradeOfferStatusChanged"
)

// Event is a store change the notifier reacts to. The set of implementations
// is closed: MessageCreated, TradeOfferCreated and TradeOfferStatusChanged.
// Empty string fields mean the value was absent in the source snapshot.
type Event interface {
	Kind() EventKind
	isEvent()
}

// MessageCreated fires when a message is added to a conversation.
type MessageCreated struct {
	ConversationID string `json:"conversationId"`
	SenderID       string `json:"senderId"`
	Text           string `json:"text"`
}

// TradeOfferCreated fires when a new trade offer is stored.
type TradeOfferCreated struct {
	TradeID          string `json:"tradeId"`
	ToUserID         string `json:"toUserId"`
	OfferedItemTitle string `json:"offeredItemTitle"`
}

// TradeOfferStatusChanged carries the status of a trade offer before and after an update.
type TradeOfferStatusChanged struct {
	TradeID        string      `json:"tradeId"`
	FromUserID     string      `json:"fromUserId"`
	ToUserID       string      `json:"toUserId"`
	PreviousStatus TradeStatus `json:"previousStatus"`
	NewStatus      TradeStatus `json:"newStatus"`
}

func (MessageCreated) Kind() EventKind          { return EventKindMessageCreated }
func (TradeOfferCreated) Kind() EventKind       { return EventKindTradeOfferCreated }
func (TradeOfferStatusChanged) Kind() EventKind { return EventKindTradeOfferStatusChanged }

func (MessageCreated) isEvent()          {}
func (TradeOfferCreated) isEvent()       {}
func (TradeOfferStatusChanged) isEvent() {}

// eventEnvelope is the JSON shape of an event: {"kind": ..., "event": {...}}.
type eventEnvelope struct {
	Kind  EventKind       `json:"kind"`
	Event json.RawMessage `json:"event"`
}

// MarshalEvent encodes an event with its kind tag.
func MarshalEvent(e Event) ([]byte, error) {
	body, err := json.Marshal(e)
	if err != nil {
		return nil, fmt.Errorf("encoding %s event: %w", e.Kind(), err)
	}
	return json.Marshal(eventEnvelope{Kind: e.Kind(), Event: body})
}

// UnmarshalEvent decodes an event previously encoded by MarshalEvent.
func UnmarshalEvent(data []byte) (Event, error) {
	var env eventEnvelope
	if err := json.Unmarshal(data, &env); err != nil {
		return nil, fmt.Errorf("decoding event envelope: %w", err)
	}

	var (
		e   Event
		err error
	)
	switch env.Kind {
	case EventKindMessageCreated:
		var v MessageCreated
		err = decodeBody(env.Event, &v)
		e = v
	case EventKindTradeOfferCreated:
		var v TradeOfferCreated
		err = decodeBody(env.Event, &v)
		e = v
	case EventKindTradeOfferStatusChanged:
		var v TradeOfferStatusChanged
		err = decodeBody(env.Event, &v)
		e = v
	default:
		return nil, fmt.Errorf("%w: unknown event kind %q", ErrInvalidArgument, env.Kind)
	}
	if err != nil {
		return nil, fmt.Errorf("decoding %s event: %w", env.Kind, err)
	}
	return e, nil
}

func decodeBody(raw json.RawMessage, v any) error {
	if len(raw) == 0 {
		return nil
	}
	return json.Unmarshal(raw, v)
}
