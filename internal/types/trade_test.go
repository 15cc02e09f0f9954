package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTradeStatus_CanTransitionTo(t *testing.T) {
	tests := []struct {
		from, to TradeStatus
		want     bool
	}{
		{TradeStatusPending, TradeStatusAccepted, true},
		{TradeStatusPending, TradeStatusRejected, true},
		{TradeStatusPending, TradeStatusCancelled, true},
		{TradeStatusPending, TradeStatusCompleted, false},
		{TradeStatusAccepted, TradeStatusCompleted, true},
		{TradeStatusAccepted, TradeStatusRejected, false},
		{TradeStatusRejected, TradeStatusPending, false},
		{TradeStatusCompleted, TradeStatusCompleted, false},
		{TradeStatus("archived"), TradeStatusPending, false},
	}
	for _, tt := range tests {
		t.Run(string(tt.from)+"->"+string(tt.to), func(t *testing.T) {
			assert.Equal(t, tt.want, tt.from.CanTransitionTo(tt.to))
		})
	}
}

func TestItem_HasValue(t *testing.T) {
	assert.False(t, Item{}.HasValue())
	assert.False(t, Item{MonetaryValue: Value(0)}.HasValue())
	assert.False(t, Item{MonetaryValue: Value(-5)}.HasValue())
	assert.True(t, Item{MonetaryValue: Value(1)}.HasValue())
}

func TestBarterCondition_Accepts(t *testing.T) {
	bc := BarterCondition{Type: BarterConditionCategorySpecific, AcceptedCategories: []string{"Books", "Games"}}
	assert.True(t, bc.Accepts("Books"))
	assert.False(t, bc.Accepts("books"))
	assert.False(t, BarterCondition{}.Accepts("Books"))
}
