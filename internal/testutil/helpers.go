// Package testutil provides shared test helpers for the barter-qween project.
// Import this in test files to avoid duplicating item builders and collaborator fakes.
package testutil

import (
	"context"
	"fmt"
	"os"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
	"sigs.k8s.io/yaml"

	"github.com/qween-code/barter-qween/internal/types"
)

// LoadFixture reads a YAML or JSON file into out.
// Fails the test immediately if the file can't be read or parsed.
func LoadFixture(t *testing.T, path string, out any) {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err, "failed to read fixture %s", path)
	require.NoError(t, yaml.Unmarshal(data, out), "failed to parse fixture %s", path)
}

// MakeItem creates a test Item. A zero value leaves MonetaryValue unset.
func MakeItem(id string, value float64, category, condition, city string) types.Item {
	it := types.Item{
		ID:        id,
		Title:     "Item " + id,
		Category:  category,
		Condition: condition,
		City:      city,
	}
	if value != 0 {
		it.MonetaryValue = types.Value(value)
	}
	return it
}

// Flexible returns a copy of it with a flexible barter condition.
func Flexible(it types.Item) types.Item {
	it.BarterCondition = &types.BarterCondition{Type: types.BarterConditionFlexible}
	return it
}

// Accepting returns a copy of it that only accepts the given categories.
func Accepting(it types.Item, categories ...string) types.Item {
	it.BarterCondition = &types.BarterCondition{
		Type:               types.BarterConditionCategorySpecific,
		AcceptedCategories: categories,
	}
	return it
}

// FakeConversations is an in-memory ConversationStore that records lookups.
type FakeConversations struct {
	mu    sync.Mutex
	Convs map[string][]string
	Err   error
	Calls []string
}

// NewFakeConversations creates a FakeConversations seeded with the given conversations.
func NewFakeConversations(convs map[string][]string) *FakeConversations {
	return &FakeConversations{Convs: convs}
}

// Participants implements types.ConversationStore.
func (f *FakeConversations) Participants(_ context.Context, conversationID string) ([]string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Calls = append(f.Calls, conversationID)
	if f.Err != nil {
		return nil, f.Err
	}
	p, ok := f.Convs[conversationID]
	if !ok {
		return nil, fmt.Errorf("conversation %q: %w", conversationID, types.ErrNotFound)
	}
	return p, nil
}

// CallCount returns the number of lookups made so far.
func (f *FakeConversations) CallCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.Calls)
}

// FakeTokens is an in-memory UserTokenStore. Users listed in Fail return an error;
// users listed in Block wait until the context is done.
type FakeTokens struct {
	mu     sync.Mutex
	ByUser map[string][]types.DeviceToken
	Fail   map[string]bool
	Block  map[string]bool
	Calls  []string
}

// NewFakeTokens creates a FakeTokens seeded with the given tokens.
func NewFakeTokens(tokens map[string][]types.DeviceToken) *FakeTokens {
	return &FakeTokens{
		ByUser: tokens,
		Fail:   map[string]bool{},
		Block:  map[string]bool{},
	}
}

// Tokens implements types.UserTokenStore.
func (f *FakeTokens) Tokens(ctx context.Context, userID string) ([]types.DeviceToken, error) {
	f.mu.Lock()
	f.Calls = append(f.Calls, userID)
	fail, block := f.Fail[userID], f.Block[userID]
	tokens := f.ByUser[userID]
	f.mu.Unlock()

	if block {
		<-ctx.Done()
		return nil, ctx.Err()
	}
	if fail {
		return nil, fmt.Errorf("token lookup for %q: %w", userID, types.ErrCollaboratorUnavailable)
	}
	return tokens, nil
}

// Called returns the user IDs looked up so far, in call order.
func (f *FakeTokens) Called() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.Calls...)
}

// MulticastCall is one recorded FakeTransport.SendMulticast invocation.
type MulticastCall struct {
	Tokens       []types.DeviceToken
	Notification types.Notification
	Data         map[string]string
}

// FakeTransport is a PushTransport that records sends. Failed tokens count
// toward FailureCount; Err fails the whole call.
type FakeTransport struct {
	mu     sync.Mutex
	Sends  []MulticastCall
	Failed map[types.DeviceToken]bool
	Err    error
}

// NewFakeTransport creates an empty FakeTransport.
func NewFakeTransport() *FakeTransport {
	return &FakeTransport{Failed: map[types.DeviceToken]bool{}}
}

// SendMulticast implements types.PushTransport.
func (f *FakeTransport) SendMulticast(_ context.Context, tokens []types.DeviceToken, n types.Notification, data map[string]string) (types.MulticastResult, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Sends = append(f.Sends, MulticastCall{
		Tokens:       append([]types.DeviceToken(nil), tokens...),
		Notification: n,
		Data:         data,
	})
	if f.Err != nil {
		return types.MulticastResult{}, f.Err
	}
	var res types.MulticastResult
	for _, tok := range tokens {
		if f.Failed[tok] {
			res.FailureCount++
		} else {
			res.SuccessCount++
		}
	}
	return res, nil
}

// Calls returns a copy of the recorded sends.
func (f *FakeTransport) Calls() []MulticastCall {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]MulticastCall(nil), f.Sends...)
}
