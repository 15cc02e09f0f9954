package store

import (
	"context"
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/google/uuid"
	"sigs.k8s.io/yaml"

	"github.com/qween-code/barter-qween/internal/types"
)

// ChangeType names the kind of store mutation.
type ChangeType string

const (
	ChangeMessageCreated    ChangeType = "message_created"
	ChangeTradeOfferCreated ChangeType = "trade_offer_created"
	ChangeTradeOfferUpdated ChangeType = "trade_offer_updated"
)

// Change describes one mutation. Before is nil for creations.
type Change struct {
	Type             ChangeType
	Message          *types.Message
	TradeOfferBefore *types.TradeOffer
	TradeOfferAfter  *types.TradeOffer
}

// OnChangeFunc is called after every mutation, outside the store lock.
type OnChangeFunc func(change Change)

// Snapshot is the on-disk shape of a store fixture.
type Snapshot struct {
	Items         []types.Item                   `json:"items"`
	Conversations []types.Conversation           `json:"conversations"`
	DeviceTokens  map[string][]types.DeviceToken `json:"deviceTokens"`
	TradeOffers   []types.TradeOffer             `json:"tradeOffers"`
}

// Memory is a concurrent-safe in-memory implementation of the item,
// conversation and device-token collaborators. Nothing is persisted.
type Memory struct {
	mu            sync.RWMutex
	items         map[string]types.Item
	conversations map[string]types.Conversation
	tokens        map[string][]types.DeviceToken
	tradeOffers   map[string]types.TradeOffer
	messages      map[string]types.Message
	onChange      OnChangeFunc
	now           func() time.Time
}

// NewMemory creates an empty store with an optional change callback.
func NewMemory(onChange OnChangeFunc) *Memory {
	return &Memory{
		items:         make(map[string]types.Item),
		conversations: make(map[string]types.Conversation),
		tokens:        make(map[string][]types.DeviceToken),
		tradeOffers:   make(map[string]types.TradeOffer),
		messages:      make(map[string]types.Message),
		onChange:      onChange,
		now:           time.Now,
	}
}

// SetOnChange replaces the change callback. Use when the subscriber is built after the store.
func (m *Memory) SetOnChange(fn OnChangeFunc) {
	m.mu.Lock()
	m.onChange = fn
	m.mu.Unlock()
}

// LoadSnapshot reads a YAML or JSON fixture into the store. Loading does not
// fire change callbacks.
func (m *Memory) LoadSnapshot(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading snapshot: %w", err)
	}
	var snap Snapshot
	if err := yaml.Unmarshal(data, &snap); err != nil {
		return fmt.Errorf("parsing snapshot %s: %w", path, err)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	for _, it := range snap.Items {
		m.items[it.ID] = it
	}
	for _, c := range snap.Conversations {
		m.conversations[c.ID] = c
	}
	for user, toks := range snap.DeviceTokens {
		m.tokens[user] = append([]types.DeviceToken(nil), toks...)
	}
	for _, to := range snap.TradeOffers {
		m.tradeOffers[to.ID] = to
	}
	return nil
}

// PutItem adds or replaces an item.
func (m *Memory) PutItem(it types.Item) {
	m.mu.Lock()
	m.items[it.ID] = it
	m.mu.Unlock()
}

// GetItem implements types.ItemStore.
func (m *Memory) GetItem(_ context.Context, id string) (types.Item, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	it, ok := m.items[id]
	if !ok {
		return types.Item{}, fmt.Errorf("item %q: %w", id, types.ErrNotFound)
	}
	return it, nil
}

// PutConversation adds or replaces a conversation.
func (m *Memory) PutConversation(c types.Conversation) {
	m.mu.Lock()
	m.conversations[c.ID] = c
	m.mu.Unlock()
}

// Participants implements types.ConversationStore.
func (m *Memory) Participants(_ context.Context, conversationID string) ([]string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	c, ok := m.conversations[conversationID]
	if !ok {
		return nil, fmt.Errorf("conversation %q: %w", conversationID, types.ErrNotFound)
	}
	return append([]string(nil), c.ParticipantIDs...), nil
}

// AddDeviceToken registers a device token for a user. Registering the same token twice is a no-op.
func (m *Memory) AddDeviceToken(userID string, token types.DeviceToken) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, t := range m.tokens[userID] {
		if t == token {
			return
		}
	}
	m.tokens[userID] = append(m.tokens[userID], token)
}

// Tokens implements types.UserTokenStore.
func (m *Memory) Tokens(_ context.Context, userID string) ([]types.DeviceToken, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return append([]types.DeviceToken(nil), m.tokens[userID]...), nil
}

// CreateMessage stores a new message in an existing conversation and fires
// ChangeMessageCreated. The sender must be a participant.
func (m *Memory) CreateMessage(_ context.Context, conversationID, senderID, text string) (types.Message, error) {
	m.mu.Lock()
	c, ok := m.conversations[conversationID]
	if !ok {
		m.mu.Unlock()
		return types.Message{}, fmt.Errorf("conversation %q: %w", conversationID, types.ErrNotFound)
	}
	if !contains(c.ParticipantIDs, senderID) {
		m.mu.Unlock()
		return types.Message{}, fmt.Errorf("%w: %q is not a participant of %q", types.ErrInvalidArgument, senderID, conversationID)
	}
	msg := types.Message{
		ID:             uuid.NewString(),
		ConversationID: conversationID,
		SenderID:       senderID,
		Text:           text,
		CreatedAt:      m.now().UTC(),
	}
	m.messages[msg.ID] = msg
	onChange := m.onChange
	m.mu.Unlock()

	if onChange != nil {
		onChange(Change{Type: ChangeMessageCreated, Message: &msg})
	}
	return msg, nil
}

// CreateTradeOffer stores a new pending offer and fires ChangeTradeOfferCreated.
// ID, Status and timestamps are assigned by the store.
func (m *Memory) CreateTradeOffer(_ context.Context, offer types.TradeOffer) (types.TradeOffer, error) {
	if offer.FromUserID == "" || offer.ToUserID == "" {
		return types.TradeOffer{}, fmt.Errorf("%w: fromUserId and toUserId are required", types.ErrInvalidArgument)
	}

	m.mu.Lock()
	now := m.now().UTC()
	offer.ID = uuid.NewString()
	offer.Status = types.TradeStatusPending
	offer.CreatedAt, offer.UpdatedAt = now, now
	if it, ok := m.items[offer.OfferedItemID]; ok && offer.OfferedItemTitle == "" {
		offer.OfferedItemTitle = it.Title
	}
	m.tradeOffers[offer.ID] = offer
	onChange := m.onChange
	m.mu.Unlock()

	if onChange != nil {
		after := offer
		onChange(Change{Type: ChangeTradeOfferCreated, TradeOfferAfter: &after})
	}
	return offer, nil
}

// GetTradeOffer returns a trade offer by ID.
func (m *Memory) GetTradeOffer(_ context.Context, id string) (types.TradeOffer, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	to, ok := m.tradeOffers[id]
	if !ok {
		return types.TradeOffer{}, fmt.Errorf("trade offer %q: %w", id, types.ErrNotFound)
	}
	return to, nil
}

// UpdateTradeOfferStatus moves an offer to a new status if the transition is
// legal and fires ChangeTradeOfferUpdated with both snapshots.
func (m *Memory) UpdateTradeOfferStatus(_ context.Context, id string, status types.TradeStatus) (types.TradeOffer, error) {
	m.mu.Lock()
	before, ok := m.tradeOffers[id]
	if !ok {
		m.mu.Unlock()
		return types.TradeOffer{}, fmt.Errorf("trade offer %q: %w", id, types.ErrNotFound)
	}
	if !before.Status.CanTransitionTo(status) {
		m.mu.Unlock()
		return types.TradeOffer{}, fmt.Errorf("%w: %s -> %s", types.ErrInvalidTransition, before.Status, status)
	}
	after := before
	after.Status = status
	after.UpdatedAt = m.now().UTC()
	m.tradeOffers[id] = after
	onChange := m.onChange
	m.mu.Unlock()

	if onChange != nil {
		b, a := before, after
		onChange(Change{Type: ChangeTradeOfferUpdated, TradeOfferBefore: &b, TradeOfferAfter: &a})
	}
	return after, nil
}

// Counts returns the number of stored items, conversations and trade offers.
func (m *Memory) Counts() (items, conversations, tradeOffers int) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.items), len(m.conversations), len(m.tradeOffers)
}

func contains(ids []string, id string) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}
