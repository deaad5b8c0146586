package analysis

import (
	"math"
	"testing"

	"github.com/kinopulse/kinopulse/config"
	"github.com/kinopulse/kinopulse/internal/models"
)

const overviewCSV = `movie_id,review_text,rating,review_date
1,"Wonderful, I loved every minute",9,2023-01-10
1,"Terrible and boring, hated it",2,2023-01-20
2,"Great fun, really enjoyed it",8,2023-02-05
2,"Awful, the worst thing I have seen",1,2023-02-15
3,"It exists and has a runtime",5,2023-03-01
`

func TestCorpusOverview(t *testing.T) {
	a := newTestAggregator(t, overviewCSV, config.Config{})

	o := a.CorpusOverview()
	if o == nil {
		t.Fatal("CorpusOverview() = nil, want overview")
	}

	if o.TotalReviews != 5 {
		t.Errorf("TotalReviews = %d, want 5", o.TotalReviews)
	}
	if want := (9.0 + 2.0 + 8.0 + 1.0 + 5.0) / 5.0; math.Abs(o.AvgRating-want) > 1e-9 {
		t.Errorf("AvgRating = %v, want %v", o.AvgRating, want)
	}

	wantMonths := []models.MonthCount{
		{Month: "2023-01", Count: 2},
		{Month: "2023-02", Count: 2},
		{Month: "2023-03", Count: 1},
	}
	if len(o.ReviewsPerMonth) != len(wantMonths) {
		t.Fatalf("ReviewsPerMonth = %v", o.ReviewsPerMonth)
	}
	for i, want := range wantMonths {
		if o.ReviewsPerMonth[i] != want {
			t.Errorf("ReviewsPerMonth[%d] = %v, want %v", i, o.ReviewsPerMonth[i], want)
		}
	}

	if len(o.RatingPoints) != 5 {
		t.Errorf("RatingPoints length = %d, want 5", len(o.RatingPoints))
	}
	// High ratings pair with positive texts and low with negative, so the
	// correlation should come out clearly positive.
	if o.Correlation <= 0 {
		t.Errorf("Correlation = %v, want > 0", o.Correlation)
	}
	if o.Correlation > 1+1e-9 || o.Correlation < -1-1e-9 {
		t.Errorf("Correlation = %v out of [-1,1]", o.Correlation)
	}
}

func TestCorpusOverviewNoDates(t *testing.T) {
	a := newTestAggregator(t, "movie_id,review_text,rating\n1,nice film,7\n", config.Config{})

	o := a.CorpusOverview()
	if o == nil {
		t.Fatal("CorpusOverview() = nil")
	}
	if len(o.ReviewsPerMonth) != 0 {
		t.Errorf("ReviewsPerMonth = %v, want empty without a date column", o.ReviewsPerMonth)
	}
}

func TestPearson(t *testing.T) {
	perfect := []models.RatingPoint{
		{Rating: 1, Compound: -0.5},
		{Rating: 5, Compound: 0.0},
		{Rating: 9, Compound: 0.5},
	}
	if r := pearson(perfect); math.Abs(r-1.0) > 1e-9 {
		t.Errorf("pearson(perfect positive) = %v, want 1", r)
	}

	inverse := []models.RatingPoint{
		{Rating: 9, Compound: -0.5},
		{Rating: 1, Compound: 0.5},
	}
	if r := pearson(inverse); math.Abs(r+1.0) > 1e-9 {
		t.Errorf("pearson(perfect inverse) = %v, want -1", r)
	}

	if r := pearson(nil); r != 0 {
		t.Errorf("pearson(nil) = %v, want 0", r)
	}
	if r := pearson(perfect[:1]); r != 0 {
		t.Errorf("pearson(single point) = %v, want 0", r)
	}

	flat := []models.RatingPoint{
		{Rating: 5, Compound: -0.5},
		{Rating: 5, Compound: 0.5},
	}
	if r := pearson(flat); r != 0 {
		t.Errorf("pearson(no rating variance) = %v, want 0", r)
	}
}
