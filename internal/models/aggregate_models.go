package models

// MovieAggregate is the per-movie statistical summary computed from the
// corpus. It is built fresh per request and owns no reference back to the
// corpus.
type MovieAggregate struct {
	MovieID             int                `json:"movie_id"`
	MovieTitle          string             `json:"movie_title"`
	TotalReviews        int                `json:"total_reviews"`
	AvgRating           float64            `json:"avg_rating"`
	CategoryPercentages map[string]float64 `json:"category_percentages"`
	AvgCompound         float64            `json:"avg_compound"`
	SampleReviews       []string           `json:"sample_reviews"`
	CompoundScores      []float64          `json:"compound_scores"`
}

type MonthCount struct {
	Month string `json:"month"`
	Count int    `json:"count"`
}

// RatingPoint pairs a review's rating with its compound score; only rows
// carrying both enter the correlation.
type RatingPoint struct {
	Rating   float64 `json:"rating"`
	Compound float64 `json:"compound"`
}

// CorpusOverview is the corpus-wide summary backing the overview dashboard.
type CorpusOverview struct {
	TotalReviews    int           `json:"total_reviews"`
	AvgRating       float64       `json:"avg_rating"`
	AvgCompound     float64       `json:"avg_compound"`
	ReviewsPerMonth []MonthCount  `json:"reviews_per_month"`
	RatingPoints    []RatingPoint `json:"rating_points"`
	Correlation     float64       `json:"correlation"`
}
