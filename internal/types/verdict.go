package types

// PaymentDirection says which way a suggested cash differential flows,
// seen from the party making the offer.
type PaymentDirection string

const (
	// PaymentFromRequester means the offering party pays the differential.
	PaymentFromRequester PaymentDirection = "fromRequester"
	// PaymentToRequester means the offering party receives the differential.
	PaymentToRequester PaymentDirection = "toRequester"
)

// ScoreBreakdown holds the four independently bounded partial scores.
type ScoreBreakdown struct {
	Value     int `json:"value"`     // max 50
	Category  int `json:"category"`  // max 20
	Condition int `json:"condition"` // max 15
	Location  int `json:"location"`  // max 15
}

// Total is the compatibility score.
func (b ScoreBreakdown) Total() int {
	return b.Value + b.Category + b.Condition + b.Location
}

// MatchVerdict is the result of scoring an offered item against a requested one.
// It is built once per call and never mutated afterwards.
type MatchVerdict struct {
	IsMatch            bool   `json:"isMatch"`
	CompatibilityScore int    `json:"compatibilityScore"`
	Reason             string `json:"reason"`

	// Set only when the values differ by 30% or more.
	SuggestedCashDifferential *float64          `json:"suggestedCashDifferential,omitempty"`
	SuggestedPaymentDirection *PaymentDirection `json:"suggestedPaymentDirection,omitempty"`

	Breakdown ScoreBreakdown `json:"breakdown"`
}
