package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/kinopulse/kinopulse/config"
	"github.com/kinopulse/kinopulse/internal/analysis"
	"github.com/kinopulse/kinopulse/internal/charts"
	"github.com/kinopulse/kinopulse/internal/corpus"
	"github.com/kinopulse/kinopulse/internal/models"
	"github.com/kinopulse/kinopulse/internal/sentiment"
)

const testCSV = `movie_id,movie_title,review_text,rating,review_date
1,Interstellar,"I loved it, truly wonderful",9,2023-01-10
1,Interstellar,"Terrible, I hated every minute",2,2023-01-12
1,Interstellar,"It has a beginning and an end",5,2023-02-01
2,Dune,"Stunning and beautiful, a great watch",8,2023-03-05
3,Up,so so,4,2023-03-06
`

func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	path := filepath.Join(t.TempDir(), "reviews.csv")
	if err := os.WriteFile(path, []byte(testCSV), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg := config.Config{UseExistingData: true, ExistingDataFile: path}

	loader := corpus.NewLoader(cfg)
	aggregator := analysis.NewAggregator(loader, sentiment.NewClassifier(), cfg)
	renderer, err := charts.NewRenderer(cfg)
	if err != nil {
		t.Fatal(err)
	}

	return New(aggregator, renderer, nil, nil).Router()
}

func get(t *testing.T, router *gin.Engine, path string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestHealthz(t *testing.T) {
	router := newTestRouter(t)

	rec := get(t, router, "/healthz")
	if rec.Code != http.StatusOK {
		t.Errorf("/healthz status = %d, want 200", rec.Code)
	}
}

func TestMovieStatsEndpoint(t *testing.T) {
	router := newTestRouter(t)

	rec := get(t, router, "/api/movies/1/stats")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}

	var agg models.MovieAggregate
	if err := json.Unmarshal(rec.Body.Bytes(), &agg); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if agg.MovieID != 1 || agg.MovieTitle != "Interstellar" {
		t.Errorf("aggregate = %+v", agg)
	}
	if agg.TotalReviews != 3 {
		t.Errorf("TotalReviews = %d, want 3", agg.TotalReviews)
	}
}

func TestMovieStatsNotFound(t *testing.T) {
	router := newTestRouter(t)

	if rec := get(t, router, "/api/movies/999/stats"); rec.Code != http.StatusNotFound {
		t.Errorf("unknown movie status = %d, want 404", rec.Code)
	}
}

func TestMovieStatsBadID(t *testing.T) {
	router := newTestRouter(t)

	if rec := get(t, router, "/api/movies/abc/stats"); rec.Code != http.StatusBadRequest {
		t.Errorf("bad id status = %d, want 400", rec.Code)
	}
}

func TestMovieDistributionEndpoint(t *testing.T) {
	router := newTestRouter(t)

	rec := get(t, router, "/api/movies/1/distribution")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}

	var dist map[string]int
	if err := json.Unmarshal(rec.Body.Bytes(), &dist); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	for _, category := range []string{models.CategoryPositive, models.CategoryNegative, models.CategoryNeutral} {
		if _, ok := dist[category]; !ok {
			t.Errorf("distribution missing category %q: %v", category, dist)
		}
	}
}

func TestMovieChartEndpoints(t *testing.T) {
	router := newTestRouter(t)

	for _, kind := range []string{"sentiment", "scores", "ratings", "dashboard"} {
		t.Run(kind, func(t *testing.T) {
			rec := get(t, router, "/api/movies/1/charts/"+kind)
			if rec.Code != http.StatusOK {
				t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
			}
			if ct := rec.Header().Get("Content-Type"); ct != "image/png" {
				t.Errorf("Content-Type = %q, want image/png", ct)
			}
			if rec.Body.Len() == 0 {
				t.Error("empty image body")
			}
		})
	}
}

func TestMovieChartUnknownKind(t *testing.T) {
	router := newTestRouter(t)

	if rec := get(t, router, "/api/movies/1/charts/sparkline"); rec.Code != http.StatusNotFound {
		t.Errorf("unknown kind status = %d, want 404", rec.Code)
	}
}

func TestWordCloudInsufficientTextEndpoint(t *testing.T) {
	router := newTestRouter(t)

	// movie 3's only review cleans down to nothing, which is a 404 empty
	// state rather than an error
	rec := get(t, router, "/api/movies/3/charts/wordcloud")
	if rec.Code != http.StatusNotFound {
		t.Errorf("wordcloud status = %d, want 404", rec.Code)
	}
}

func TestOverviewEndpoints(t *testing.T) {
	router := newTestRouter(t)

	rec := get(t, router, "/api/overview")
	if rec.Code != http.StatusOK {
		t.Fatalf("overview status = %d", rec.Code)
	}
	var o models.CorpusOverview
	if err := json.Unmarshal(rec.Body.Bytes(), &o); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if o.TotalReviews != 5 {
		t.Errorf("TotalReviews = %d, want 5", o.TotalReviews)
	}

	for _, kind := range []string{"timeline", "correlation"} {
		t.Run(kind, func(t *testing.T) {
			rec := get(t, router, "/api/overview/charts/"+kind)
			if rec.Code != http.StatusOK {
				t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
			}
			if ct := rec.Header().Get("Content-Type"); ct != "image/png" {
				t.Errorf("Content-Type = %q, want image/png", ct)
			}
		})
	}
}

func TestNoCorpusEverythingAbsent(t *testing.T) {
	gin.SetMode(gin.TestMode)

	prev, _ := os.Getwd()
	if err := os.Chdir(t.TempDir()); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { os.Chdir(prev) })

	cfg := config.Config{UseExistingData: false}
	loader := corpus.NewLoader(cfg)
	aggregator := analysis.NewAggregator(loader, sentiment.NewClassifier(), cfg)
	renderer, err := charts.NewRenderer(cfg)
	if err != nil {
		t.Fatal(err)
	}
	router := New(aggregator, renderer, nil, nil).Router()

	for _, path := range []string{
		"/api/movies/1/stats",
		"/api/movies/1/distribution",
		"/api/movies/1/charts/sentiment",
		"/api/overview",
	} {
		if rec := get(t, router, path); rec.Code != http.StatusNotFound {
			t.Errorf("%s status = %d, want 404 without corpus", path, rec.Code)
		}
	}
}
