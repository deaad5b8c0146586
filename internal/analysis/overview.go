package analysis

import (
	"math"
	"sort"
	"strings"

	"github.com/kinopulse/kinopulse/internal/models"
)

// CorpusOverview summarizes the whole corpus for the overview dashboard:
// monthly review counts, mean rating, mean compound and the rating↔compound
// correlation. Nil when the corpus is absent or holds no texts.
func (a *Aggregator) CorpusOverview() *models.CorpusOverview {
	if !a.corpus.Load() {
		return nil
	}
	rows := a.corpus.AllReviews()
	if len(rows) == 0 {
		return nil
	}

	texts := extractTexts(rows)
	if len(texts) == 0 {
		return nil
	}
	results := a.classifier.ClassifyBatch(texts)

	var ratingSum float64
	var ratingN int
	monthly := make(map[string]int)
	points := make([]models.RatingPoint, 0, len(rows))
	compounds := make([]float64, 0, len(results))

	next := 0 // index into results, advanced per non-empty text
	for _, r := range rows {
		hasText := strings.TrimSpace(r.Text) != ""
		var compound float64
		if hasText {
			compound = results[next].Compound
			compounds = append(compounds, compound)
			next++
		}

		if !math.IsNaN(r.Rating) {
			ratingSum += r.Rating
			ratingN++
			if hasText {
				points = append(points, models.RatingPoint{Rating: r.Rating, Compound: compound})
			}
		}
		if !r.Date.IsZero() {
			monthly[r.Date.Format("2006-01")]++
		}
	}

	overview := &models.CorpusOverview{
		TotalReviews:    len(texts),
		AvgCompound:     mean(compounds),
		ReviewsPerMonth: sortedMonths(monthly),
		RatingPoints:    points,
		Correlation:     pearson(points),
	}
	if ratingN > 0 {
		overview.AvgRating = ratingSum / float64(ratingN)
	}
	return overview
}

func sortedMonths(monthly map[string]int) []models.MonthCount {
	months := make([]models.MonthCount, 0, len(monthly))
	for month, count := range monthly {
		months = append(months, models.MonthCount{Month: month, Count: count})
	}
	sort.Slice(months, func(i, j int) bool { return months[i].Month < months[j].Month })
	return months
}

// pearson computes the correlation coefficient over rating/compound pairs,
// 0 when fewer than two points or either series has no variance.
func pearson(points []models.RatingPoint) float64 {
	n := float64(len(points))
	if n < 2 {
		return 0.0
	}

	var sumX, sumY float64
	for _, p := range points {
		sumX += p.Compound
		sumY += p.Rating
	}
	meanX := sumX / n
	meanY := sumY / n

	var cov, varX, varY float64
	for _, p := range points {
		dx := p.Compound - meanX
		dy := p.Rating - meanY
		cov += dx * dy
		varX += dx * dx
		varY += dy * dy
	}
	if varX == 0 || varY == 0 {
		return 0.0
	}
	return cov / math.Sqrt(varX*varY)
}
