package models

const (
	CategoryPositive = "positive"
	CategoryNegative = "negative"
	CategoryNeutral  = "neutral"
)

// CompoundThreshold is the dead zone around zero: compounds within
// (-0.05, 0.05) are neutral, the boundary values are not.
const CompoundThreshold = 0.05

type SentimentResult struct {
	Positive float64 `json:"positive"`
	Negative float64 `json:"negative"`
	Neutral  float64 `json:"neutral"`
	Compound float64 `json:"compound"`
}

// Dominant maps the compound score onto a category label.
func (r SentimentResult) Dominant() string {
	return DominantCategory(r.Compound)
}

func DominantCategory(compound float64) string {
	switch {
	case compound >= CompoundThreshold:
		return CategoryPositive
	case compound <= -CompoundThreshold:
		return CategoryNegative
	default:
		return CategoryNeutral
	}
}

// NeutralResult is the substitute for texts that cannot be scored.
func NeutralResult() SentimentResult {
	return SentimentResult{Positive: 0, Negative: 0, Neutral: 1, Compound: 0}
}
