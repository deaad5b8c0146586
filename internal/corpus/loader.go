package corpus

import (
	"fmt"
	"log/slog"
	"math"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"

	"github.com/kinopulse/kinopulse/config"
	"github.com/kinopulse/kinopulse/internal/models"
)

const movieIDColumn = "movie_id"

var (
	textColumnCandidates   = []string{"review_text", "review", "text", "content", "comment"}
	ratingColumnCandidates = []string{"rating", "score", "user_rating", "grade"}
	dateColumnCandidates   = []string{"review_date", "date", "timestamp", "created_at"}

	// Checked in order when the configured data file is absent; one-level-up
	// variants first, matching the layout the corpus ships in.
	fallbackPaths = []string{
		"../data/processed/reviews_2023_final.csv",
		"data/processed/reviews_2023_final.csv",
		"../data/processed/reviews_2023_cleaned.csv",
		"data/processed/reviews_2023_cleaned.csv",
	}

	dateLayouts = []string{
		"2006-01-02",
		time.RFC3339,
		"2006-01-02 15:04:05",
	}
)

// Schema is the column resolution computed once at load time and reused for
// every lookup. RatingColumn and DateColumn are empty when nothing resolved.
type Schema struct {
	TextColumn    string
	RatingColumn  string
	DateColumn    string
	HasMovieID    bool
	HasMovieTitle bool
}

// Loader owns the process-wide corpus cache: loaded lazily exactly once,
// immutable afterwards. A failed load is a normal outcome, not an error;
// callers observe it as Load() == false and absent lookups.
type Loader struct {
	cfg config.Config

	once   sync.Once
	loaded bool
	df     dataframe.DataFrame
	schema Schema
	source string
}

func NewLoader(cfg config.Config) *Loader {
	return &Loader{cfg: cfg}
}

// Load resolves and parses the corpus on first call; subsequent calls return
// the cached outcome.
func (l *Loader) Load() bool {
	l.once.Do(l.load)
	return l.loaded
}

func (l *Loader) load() {
	path, ok := l.resolvePath()
	if !ok {
		slog.Warn("[CorpusLoader] No corpus file found, reviews unavailable")
		return
	}

	f, err := os.Open(path)
	if err != nil {
		slog.Error("[CorpusLoader] Failed to open corpus file",
			slog.String("path", path),
			slog.String("error", err.Error()))
		return
	}
	defer f.Close()

	df := dataframe.ReadCSV(f,
		dataframe.HasHeader(true),
		dataframe.DetectTypes(true))
	if df.Err != nil {
		slog.Error("[CorpusLoader] Failed to parse corpus file",
			slog.String("path", path),
			slog.String("error", df.Err.Error()))
		return
	}

	l.df = df
	l.schema = resolveSchema(df)
	l.source = path
	l.loaded = true

	if !l.schema.HasMovieID {
		slog.Warn("[CorpusLoader] Corpus has no movie_id column, per-movie lookups will be empty",
			slog.String("path", path))
	}

	slog.Info("[CorpusLoader] Corpus loaded",
		slog.String("path", path),
		slog.Int("reviews", df.Nrow()),
		slog.String("text_column", l.schema.TextColumn),
		slog.String("rating_column", l.schema.RatingColumn))
}

// resolvePath walks the candidate locations with first-existing-wins
// semantics: the configured primary file, then the fixed fallback list.
func (l *Loader) resolvePath() (string, bool) {
	var candidates []string
	if l.cfg.UseExistingData && l.cfg.ExistingDataFile != "" {
		candidates = append(candidates, l.cfg.ExistingDataFile)
	}
	candidates = append(candidates, fallbackPaths...)

	for _, path := range candidates {
		if info, err := os.Stat(path); err == nil && !info.IsDir() {
			return path, true
		}
	}
	return "", false
}

func resolveSchema(df dataframe.DataFrame) Schema {
	names := df.Names()
	types := df.Types()

	has := func(name string) bool {
		for _, n := range names {
			if n == name {
				return true
			}
		}
		return false
	}

	s := Schema{
		HasMovieID:    has(movieIDColumn),
		HasMovieTitle: has("movie_title"),
	}

	for _, cand := range textColumnCandidates {
		if has(cand) {
			s.TextColumn = cand
			break
		}
	}
	if s.TextColumn == "" {
		// Fall back to the first string-typed column, then the first column
		// overall. The corpus schema is not guaranteed; rejecting it outright
		// helps nobody.
		for i, typ := range types {
			if typ == series.String {
				s.TextColumn = names[i]
				break
			}
		}
	}
	if s.TextColumn == "" && len(names) > 0 {
		s.TextColumn = names[0]
	}

	for _, cand := range ratingColumnCandidates {
		if has(cand) {
			s.RatingColumn = cand
			break
		}
	}
	for _, cand := range dateColumnCandidates {
		if has(cand) {
			s.DateColumn = cand
			break
		}
	}

	return s
}

func (l *Loader) Loaded() bool { return l.loaded }

// Source is the path the corpus was loaded from, empty when not loaded.
func (l *Loader) Source() string { return l.source }

func (l *Loader) Schema() Schema { return l.schema }

// MovieReviews returns the movie's rows in corpus order, nil when the corpus
// is absent or no rows match. Texts may be empty; callers filter.
func (l *Loader) MovieReviews(movieID int) []models.Review {
	if !l.Load() || !l.schema.HasMovieID {
		return nil
	}

	sub := l.df.Filter(dataframe.F{
		Colname:    movieIDColumn,
		Comparator: series.Eq,
		Comparando: movieID,
	})
	if sub.Err != nil {
		slog.Warn("[CorpusLoader] movie_id filter failed",
			slog.Int("movie_id", movieID),
			slog.String("error", sub.Err.Error()))
		return nil
	}
	if sub.Nrow() == 0 {
		return nil
	}
	return l.rows(sub, movieID)
}

// AllReviews returns every corpus row, nil when the corpus is absent.
func (l *Loader) AllReviews() []models.Review {
	if !l.Load() {
		return nil
	}
	return l.rows(l.df, 0)
}

func (l *Loader) rows(df dataframe.DataFrame, movieID int) []models.Review {
	n := df.Nrow()
	reviews := make([]models.Review, 0, n)

	textCol := df.Col(l.schema.TextColumn)

	var idCol, ratingCol, dateCol series.Series
	if l.schema.HasMovieID {
		idCol = df.Col(movieIDColumn)
	}
	if l.schema.RatingColumn != "" {
		ratingCol = df.Col(l.schema.RatingColumn)
	}
	if l.schema.DateColumn != "" {
		dateCol = df.Col(l.schema.DateColumn)
	}

	for i := 0; i < n; i++ {
		r := models.Review{MovieID: movieID, Rating: math.NaN()}

		if l.schema.HasMovieID {
			if el := idCol.Elem(i); !el.IsNA() {
				r.MovieID = int(el.Float())
			}
		}
		if el := textCol.Elem(i); !el.IsNA() {
			r.Text = el.String()
		}
		if l.schema.RatingColumn != "" {
			if el := ratingCol.Elem(i); !el.IsNA() {
				r.Rating = el.Float()
			}
		}
		if l.schema.DateColumn != "" {
			if el := dateCol.Elem(i); !el.IsNA() {
				r.Date = parseDate(el.String())
			}
		}

		reviews = append(reviews, r)
	}
	return reviews
}

// MovieTitle resolves the display title for a movie, falling back to a
// generated one when the corpus carries no movie_title column.
func (l *Loader) MovieTitle(movieID int) string {
	if l.Load() && l.schema.HasMovieID && l.schema.HasMovieTitle {
		sub := l.df.Filter(dataframe.F{
			Colname:    movieIDColumn,
			Comparator: series.Eq,
			Comparando: movieID,
		})
		if sub.Err == nil && sub.Nrow() > 0 {
			if el := sub.Col("movie_title").Elem(0); !el.IsNA() {
				if title := strings.TrimSpace(el.String()); title != "" {
					return title
				}
			}
		}
	}
	return fmt.Sprintf("Movie %d", movieID)
}

func parseDate(raw string) time.Time {
	raw = strings.TrimSpace(raw)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t
		}
	}
	return time.Time{}
}
