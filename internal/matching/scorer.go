package matching

import (
	"fmt"
	"math"

	"go.uber.org/zap"

	"github.com/qween-code/barter-qween/internal/types"
)

// MatchThreshold is the minimum compatibility score for a match.
const MatchThreshold = 60

const (
	valueNearEqual   = 50
	valueClose       = 30
	valueFar         = 10
	valueUnknown     = 25
	nearEqualPercent = 10.0
	closePercent     = 30.0
	cashRounding     = 50.0

	categoryAccepted = 20
	categoryRejected = 0
	categoryOpen     = 10

	conditionSame      = 15
	conditionDifferent = 5

	locationSame      = 15
	locationDifferent = 5
	locationUnknown   = 7
)

// Scorer computes barter compatibility verdicts.
type Scorer struct {
	logger *zap.Logger
}

// NewScorer creates a Scorer that writes its audit lines to logger.
func NewScorer(logger *zap.Logger) *Scorer {
	return &Scorer{logger: logger.Named("matching")}
}

// Score evaluates offered against requested and returns a fresh verdict.
func (s *Scorer) Score(offered, requested types.Item) types.MatchVerdict {
	v := Evaluate(offered, requested)

	verdict := "no_match"
	if v.IsMatch {
		verdict = "match"
	}
	matchScore.Observe(float64(v.CompatibilityScore))
	matchVerdictTotal.WithLabelValues(verdict).Inc()

	s.logger.Info("Barter match calculated",
		zap.String("event", "barter_match_calculated"),
		zap.String("offered_item_id", offered.ID),
		zap.String("requested_item_id", requested.ID),
		zap.Int("compatibility_score", v.CompatibilityScore),
		zap.Bool("is_match", v.IsMatch),
	)
	return v
}

// Evaluate is the side-effect-free scoring function behind Scorer.Score.
func Evaluate(offered, requested types.Item) types.MatchVerdict {
	var v types.MatchVerdict

	v.Breakdown.Value, v.SuggestedCashDifferential, v.SuggestedPaymentDirection = valueScore(offered, requested)
	v.Breakdown.Category = categoryScore(offered, requested)
	v.Breakdown.Condition = conditionScore(offered, requested)
	v.Breakdown.Location = locationScore(offered, requested)

	v.CompatibilityScore = v.Breakdown.Total()
	v.IsMatch = v.CompatibilityScore >= MatchThreshold
	v.Reason = reason(v.CompatibilityScore, v.IsMatch)
	return v
}

func valueScore(offered, requested types.Item) (int, *float64, *types.PaymentDirection) {
	if !offered.HasValue() || !requested.HasValue() {
		return valueUnknown, nil, nil
	}
	v1, v2 := *offered.MonetaryValue, *requested.MonetaryValue

	diff := math.Abs(v1 - v2)
	avg := v1/2 + v2/2
	if avg == 0 || math.IsNaN(avg) || math.IsInf(avg, 0) {
		return valueUnknown, nil, nil
	}
	// diff*100 keeps the band edges exact but overflows for huge values.
	diffPct := diff * 100 / avg
	if math.IsInf(diffPct, 0) {
		diffPct = diff / avg * 100
	}

	switch {
	case diffPct < nearEqualPercent:
		return valueNearEqual, nil, nil
	case diffPct < closePercent:
		return valueClose, nil, nil
	}

	cash := math.Round(diff/cashRounding) * cashRounding
	dir := types.PaymentFromRequester
	if v1 > v2 {
		dir = types.PaymentToRequester
	}
	return valueFar, &cash, &dir
}

func categoryScore(offered, requested types.Item) int {
	if !requested.CategorySpecific() {
		return categoryOpen
	}
	if requested.BarterCondition.Accepts(offered.Category) {
		return categoryAccepted
	}
	return categoryRejected
}

func conditionScore(offered, requested types.Item) int {
	if offered.Condition == requested.Condition {
		return conditionSame
	}
	return conditionDifferent
}

func locationScore(offered, requested types.Item) int {
	if offered.City == "" || requested.City == "" {
		return locationUnknown
	}
	if offered.City == requested.City {
		return locationSame
	}
	return locationDifferent
}

func reason(score int, isMatch bool) string {
	if isMatch {
		return fmt.Sprintf("Good match! Score: %d/100", score)
	}
	return fmt.Sprintf("Low compatibility. Score: %d/100. Try other options.", score)
}
