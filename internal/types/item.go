package types

// BarterConditionType describes which categories an item owner accepts in exchange.
type BarterConditionType string

const (
	BarterConditionFlexible         BarterConditionType = "flexible"
	BarterConditionCategorySpecific BarterConditionType = "categorySpecific"
)

// Condition labels used by listings. Any other label is accepted as-is; the
// scorer only compares labels for equality.
const (
	ConditionBrandNew = "Brand New"
	ConditionLikeNew  = "Like New"
	ConditionGood     = "Good"
)

// BarterCondition restricts what an item owner is willing to receive.
type BarterCondition struct {
	Type               BarterConditionType `json:"type"`
	AcceptedCategories []string            `json:"acceptedCategories,omitempty"`
}

// Accepts reports whether category is in the accepted set.
func (bc BarterCondition) Accepts(category string) bool {
	for _, c := range bc.AcceptedCategories {
		if c == category {
			return true
		}
	}
	return false
}

// Item is a listed item as read from the item store. The core never mutates it.
type Item struct {
	ID      string `json:"id"`
	Title   string `json:"title,omitempty"`
	OwnerID string `json:"ownerId,omitempty"`

	// MonetaryValue is optional; nil and non-positive values mean "unknown".
	MonetaryValue *float64 `json:"monetaryValue,omitempty"`

	Category  string `json:"category"`
	Condition string `json:"condition"`

	// City is empty when the listing carries no location.
	City string `json:"city,omitempty"`

	// BarterCondition is nil for listings that never declared one (treated as flexible).
	BarterCondition *BarterCondition `json:"barterCondition,omitempty"`
}

// HasValue reports whether the item carries a usable monetary value.
func (it Item) HasValue() bool {
	return it.MonetaryValue != nil && *it.MonetaryValue > 0
}

// CategorySpecific reports whether the item restricts accepted categories.
func (it Item) CategorySpecific() bool {
	return it.BarterCondition != nil && it.BarterCondition.Type == BarterConditionCategorySpecific
}

// Value returns a pointer to v, for building items in code and tests.
func Value(v float64) *float64 {
	return &v
}
