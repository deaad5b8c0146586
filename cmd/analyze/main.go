package main

import (
	"bytes"
	"encoding/json"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/kinopulse/kinopulse/config"
	"github.com/kinopulse/kinopulse/internal/analysis"
	"github.com/kinopulse/kinopulse/internal/charts"
	"github.com/kinopulse/kinopulse/internal/corpus"
	"github.com/kinopulse/kinopulse/internal/logging"
	"github.com/kinopulse/kinopulse/internal/sentiment"
)

// analyze computes a movie's aggregate, prints it as JSON and writes every
// chart as a PNG file. Useful for eyeballing the pipeline without the
// server.
func main() {
	movie := flag.Int("movie", 0, "movie id to analyze")
	out := flag.String("out", "charts", "output directory for PNG files")
	overview := flag.Bool("overview", false, "also write corpus-wide overview charts")
	flag.Parse()

	env := os.Getenv("APP_ENV")
	if env == "" {
		env = "dev"
	}
	config.LoadEnv(env)
	logging.InitLogger()

	if *movie == 0 && !*overview {
		fmt.Fprintln(os.Stderr, "usage: analyze -movie <id> [-out dir] [-overview]")
		os.Exit(2)
	}

	cfg := config.FromEnv()
	loader := corpus.NewLoader(cfg)
	aggregator := analysis.NewAggregator(loader, sentiment.NewClassifier(), cfg)
	renderer, err := charts.NewRenderer(cfg)
	if err != nil {
		slog.Error("[Analyze] Failed to initialize renderer", slog.String("error", err.Error()))
		os.Exit(1)
	}

	if err := os.MkdirAll(*out, 0o755); err != nil {
		slog.Error("[Analyze] Failed to create output directory", slog.String("error", err.Error()))
		os.Exit(1)
	}

	if *movie != 0 {
		analyzeMovie(aggregator, renderer, *movie, *out)
	}
	if *overview {
		analyzeCorpus(aggregator, renderer, *out)
	}
}

func analyzeMovie(aggregator *analysis.Aggregator, renderer *charts.Renderer, movieID int, out string) {
	agg := aggregator.MovieStats(movieID)
	if agg == nil {
		slog.Warn("[Analyze] No reviews found for movie", slog.Int("movie_id", movieID))
		return
	}

	encoded, _ := json.MarshalIndent(agg, "", "  ")
	fmt.Println(string(encoded))

	dist := analysis.DistributionFor(agg)
	ratings := aggregator.MovieRatings(movieID)

	write := func(name string, buf *bytes.Buffer, err error) {
		switch {
		case err != nil:
			slog.Error("[Analyze] Chart failed",
				slog.String("chart", name),
				slog.String("error", err.Error()))
		case buf == nil:
			slog.Info("[Analyze] Chart skipped, not enough data", slog.String("chart", name))
		default:
			path := filepath.Join(out, fmt.Sprintf("%s_%d.png", name, movieID))
			if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
				slog.Error("[Analyze] Failed to write chart",
					slog.String("path", path),
					slog.String("error", err.Error()))
				return
			}
			slog.Info("[Analyze] Chart written", slog.String("path", path))
		}
	}

	buf, err := renderer.SentimentPie(dist, agg.MovieTitle)
	write("sentiment", buf, err)
	buf, err = renderer.ScoreHistogram(agg.CompoundScores, agg.MovieTitle)
	write("scores", buf, err)
	buf, err = renderer.RatingDistribution(ratings, agg.MovieTitle)
	write("ratings", buf, err)
	buf, err = renderer.WordCloud(agg.SampleReviews, agg.MovieTitle)
	write("wordcloud", buf, err)
	buf, err = renderer.SummaryDashboard(agg, dist, ratings, agg.MovieTitle)
	write("dashboard", buf, err)
}

func analyzeCorpus(aggregator *analysis.Aggregator, renderer *charts.Renderer, out string) {
	o := aggregator.CorpusOverview()
	if o == nil {
		slog.Warn("[Analyze] No corpus loaded, skipping overview")
		return
	}

	write := func(name string, buf *bytes.Buffer, err error) {
		switch {
		case err != nil:
			slog.Error("[Analyze] Chart failed",
				slog.String("chart", name),
				slog.String("error", err.Error()))
		case buf == nil:
			slog.Info("[Analyze] Chart skipped, not enough data", slog.String("chart", name))
		default:
			path := filepath.Join(out, name+".png")
			if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
				slog.Error("[Analyze] Failed to write chart",
					slog.String("path", path),
					slog.String("error", err.Error()))
				return
			}
			slog.Info("[Analyze] Chart written", slog.String("path", path))
		}
	}

	buf, err := renderer.ReviewsTimeline(o.ReviewsPerMonth, "Reviews per month")
	write("timeline", buf, err)
	buf, err = renderer.RatingCorrelation(o.RatingPoints, o.Correlation, "Rating vs sentiment")
	write("correlation", buf, err)
}
