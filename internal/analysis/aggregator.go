package analysis

import (
	"log/slog"
	"math"
	"strings"

	"github.com/kinopulse/kinopulse/config"
	"github.com/kinopulse/kinopulse/internal/corpus"
	"github.com/kinopulse/kinopulse/internal/models"
	"github.com/kinopulse/kinopulse/internal/sentiment"
)

// Aggregator computes per-movie sentiment statistics from the corpus.
// Aggregates are built fresh per call; the only shared state is the corpus
// cache inside the loader.
type Aggregator struct {
	corpus     *corpus.Loader
	classifier *sentiment.Classifier

	ratingMissingAsZero bool
}

func NewAggregator(loader *corpus.Loader, classifier *sentiment.Classifier, cfg config.Config) *Aggregator {
	return &Aggregator{
		corpus:              loader,
		classifier:          classifier,
		ratingMissingAsZero: cfg.RatingMissingAsZero,
	}
}

const sampleSize = 10

// MovieStats builds the aggregate for a movie. Nil means no data: corpus
// absent, no matching rows, or no extractable texts. That is a normal
// outcome, never an error.
func (a *Aggregator) MovieStats(movieID int) *models.MovieAggregate {
	if !a.corpus.Load() {
		return nil
	}

	rows := a.corpus.MovieReviews(movieID)
	if len(rows) == 0 {
		slog.Info("[Aggregator] No reviews found for movie",
			slog.Int("movie_id", movieID))
		return nil
	}

	texts := extractTexts(rows)
	if len(texts) == 0 {
		// All texts empty or missing; without texts the percentages divide
		// by zero, so this is the same no-data outcome.
		slog.Info("[Aggregator] Movie has rows but no review texts",
			slog.Int("movie_id", movieID))
		return nil
	}

	results := a.classifier.ClassifyBatch(texts)

	total := len(texts)
	var positive, negative, neutral int
	compounds := make([]float64, 0, total)
	for _, r := range results {
		switch r.Dominant() {
		case models.CategoryPositive:
			positive++
		case models.CategoryNegative:
			negative++
		default:
			neutral++
		}
		compounds = append(compounds, r.Compound)
	}

	sample := texts
	if len(sample) > sampleSize {
		sample = sample[:sampleSize]
	}

	return &models.MovieAggregate{
		MovieID:      movieID,
		MovieTitle:   a.corpus.MovieTitle(movieID),
		TotalReviews: total,
		AvgRating:    a.avgRating(rows),
		CategoryPercentages: map[string]float64{
			models.CategoryPositive: float64(positive) / float64(total) * 100,
			models.CategoryNegative: float64(negative) / float64(total) * 100,
			models.CategoryNeutral:  float64(neutral) / float64(total) * 100,
		},
		AvgCompound:    mean(compounds),
		SampleReviews:  sample,
		CompoundScores: compounds,
	}
}

// SentimentDistribution derives integer counts from the aggregate by
// truncating percentage*total/100. The truncation is deliberate: counts may
// sum to slightly less than total_reviews, and the pie renderer consumes
// them as-is.
func (a *Aggregator) SentimentDistribution(movieID int) map[string]int {
	agg := a.MovieStats(movieID)
	if agg == nil {
		return nil
	}
	return DistributionFor(agg)
}

func DistributionFor(agg *models.MovieAggregate) map[string]int {
	total := float64(agg.TotalReviews)
	dist := make(map[string]int, len(agg.CategoryPercentages))
	for category, pct := range agg.CategoryPercentages {
		dist[category] = int(pct * total / 100)
	}
	return dist
}

// MovieRatings returns the movie's rating values for chart rendering, in
// corpus order, missing values excluded. Nil when no data.
func (a *Aggregator) MovieRatings(movieID int) []float64 {
	if !a.corpus.Load() {
		return nil
	}
	rows := a.corpus.MovieReviews(movieID)
	if len(rows) == 0 {
		return nil
	}

	ratings := make([]float64, 0, len(rows))
	for _, r := range rows {
		if !math.IsNaN(r.Rating) {
			ratings = append(ratings, r.Rating)
		}
	}
	return ratings
}

func (a *Aggregator) avgRating(rows []models.Review) float64 {
	if a.corpus.Schema().RatingColumn == "" {
		return 0.0
	}

	var sum float64
	var n int
	for _, r := range rows {
		switch {
		case !math.IsNaN(r.Rating):
			sum += r.Rating
			n++
		case a.ratingMissingAsZero:
			n++
		}
	}
	if n == 0 {
		return 0.0
	}
	return sum / float64(n)
}

func extractTexts(rows []models.Review) []string {
	texts := make([]string, 0, len(rows))
	for _, r := range rows {
		if strings.TrimSpace(r.Text) != "" {
			texts = append(texts, r.Text)
		}
	}
	return texts
}

func mean(values []float64) float64 {
	if len(values) == 0 {
		return 0.0
	}
	var sum float64
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}
