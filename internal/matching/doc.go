// Package matching scores how compatible two listed items are as a barter pair.
//
// # Contract
//
// Scorer.Score(offered, requested) sums four independently bounded terms:
//
//	value      max 50  both values known: <10% apart 50, <30% apart 30, else 10 + cash suggestion
//	                   otherwise a neutral 25
//	category   max 20  requested item is categorySpecific: 20 if offered category accepted, else 0
//	                   otherwise 10
//	condition  max 15  equal labels 15, else 5
//	location   max 15  both cities known: equal 15, else 5; otherwise 7
//
// A pair matches when the total reaches MatchThreshold (60).
//
// The cash suggestion is |v1-v2| rounded to the nearest 50. Its direction is
// toRequester when the offered item is worth more, fromRequester otherwise.
//
// The caller resolves both items and guarantees they are distinct. Score has no
// error path; a zero or non-finite average value falls back to the neutral
// value term.
//
// # Side effects
//
// Each call writes one audit line ("Barter match calculated") and updates the
// barter_match_* metrics. Neither affects the returned verdict. Scorer holds no
// mutable state and is safe for concurrent use.
package matching
