package corpus

import (
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/kinopulse/kinopulse/config"
)

func writeCorpus(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

func chdir(t *testing.T, dir string) {
	t.Helper()
	prev, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { os.Chdir(prev) })
}

const sampleCSV = `movie_id,movie_title,review_text,rating,review_date
1,Interstellar,Great movie,9,2023-01-15
1,Interstellar,,7,2023-02-20
1,Interstellar,Boring and slow,NaN,2023-02-25
2,Dune,Stunning visuals,8,2023-03-01
`

func TestLoadFromConfiguredFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "reviews.csv")
	writeCorpus(t, path, sampleCSV)

	l := NewLoader(config.Config{UseExistingData: true, ExistingDataFile: path})
	if !l.Load() {
		t.Fatal("Load() = false, want true")
	}
	if l.Source() != path {
		t.Errorf("Source() = %q, want %q", l.Source(), path)
	}

	s := l.Schema()
	if s.TextColumn != "review_text" {
		t.Errorf("TextColumn = %q, want review_text", s.TextColumn)
	}
	if s.RatingColumn != "rating" {
		t.Errorf("RatingColumn = %q, want rating", s.RatingColumn)
	}
	if s.DateColumn != "review_date" {
		t.Errorf("DateColumn = %q, want review_date", s.DateColumn)
	}
	if !s.HasMovieID || !s.HasMovieTitle {
		t.Errorf("schema flags = %+v", s)
	}
}

func TestMovieReviews(t *testing.T) {
	path := filepath.Join(t.TempDir(), "reviews.csv")
	writeCorpus(t, path, sampleCSV)

	l := NewLoader(config.Config{UseExistingData: true, ExistingDataFile: path})

	rows := l.MovieReviews(1)
	if len(rows) != 3 {
		t.Fatalf("MovieReviews(1) returned %d rows, want 3", len(rows))
	}
	if rows[0].Text != "Great movie" || rows[0].Rating != 9 {
		t.Errorf("rows[0] = %+v", rows[0])
	}
	if rows[1].Text != "" {
		t.Errorf("rows[1].Text = %q, want empty", rows[1].Text)
	}
	if !math.IsNaN(rows[2].Rating) {
		t.Errorf("rows[2].Rating = %v, want NaN", rows[2].Rating)
	}
	if rows[0].Date.IsZero() || rows[0].Date.Format("2006-01-02") != "2023-01-15" {
		t.Errorf("rows[0].Date = %v", rows[0].Date)
	}

	if got := l.MovieReviews(999); got != nil {
		t.Errorf("MovieReviews(999) = %v, want nil", got)
	}
}

func TestMovieTitle(t *testing.T) {
	path := filepath.Join(t.TempDir(), "reviews.csv")
	writeCorpus(t, path, sampleCSV)

	l := NewLoader(config.Config{UseExistingData: true, ExistingDataFile: path})
	if got := l.MovieTitle(2); got != "Dune" {
		t.Errorf("MovieTitle(2) = %q, want Dune", got)
	}
	if got := l.MovieTitle(42); got != "Movie 42" {
		t.Errorf("MovieTitle(42) = %q, want Movie 42", got)
	}
}

func TestLoadFallbackPaths(t *testing.T) {
	dir := t.TempDir()
	writeCorpus(t, filepath.Join(dir, "data", "processed", "reviews_2023_cleaned.csv"), sampleCSV)
	chdir(t, dir)

	l := NewLoader(config.Config{UseExistingData: false})
	if !l.Load() {
		t.Fatal("Load() = false, want true via fallback path")
	}
	if l.Source() != "data/processed/reviews_2023_cleaned.csv" {
		t.Errorf("Source() = %q", l.Source())
	}
}

func TestLoadFallbackPriority(t *testing.T) {
	dir := t.TempDir()
	writeCorpus(t, filepath.Join(dir, "data", "processed", "reviews_2023_final.csv"), sampleCSV)
	writeCorpus(t, filepath.Join(dir, "data", "processed", "reviews_2023_cleaned.csv"), sampleCSV)
	chdir(t, dir)

	l := NewLoader(config.Config{UseExistingData: false})
	if !l.Load() {
		t.Fatal("Load() = false, want true")
	}
	if l.Source() != "data/processed/reviews_2023_final.csv" {
		t.Errorf("Source() = %q, want final.csv to win over cleaned.csv", l.Source())
	}
}

func TestLoadNoCorpus(t *testing.T) {
	chdir(t, t.TempDir())

	l := NewLoader(config.Config{UseExistingData: false})
	if l.Load() {
		t.Fatal("Load() = true, want false with no corpus anywhere")
	}
	if rows := l.MovieReviews(1); rows != nil {
		t.Errorf("MovieReviews after failed load = %v, want nil", rows)
	}
	if rows := l.AllReviews(); rows != nil {
		t.Errorf("AllReviews after failed load = %v, want nil", rows)
	}
}

func TestSchemaFallbackColumns(t *testing.T) {
	t.Run("alternate candidate names", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "reviews.csv")
		writeCorpus(t, path, "movie_id,comment,grade\n1,Nice film,8\n")

		l := NewLoader(config.Config{UseExistingData: true, ExistingDataFile: path})
		l.Load()
		if s := l.Schema(); s.TextColumn != "comment" || s.RatingColumn != "grade" {
			t.Errorf("schema = %+v, want comment/grade", s)
		}
	})

	t.Run("first string column when no candidate matches", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "reviews.csv")
		writeCorpus(t, path, "movie_id,votes,opinion\n1,12,Loved it\n")

		l := NewLoader(config.Config{UseExistingData: true, ExistingDataFile: path})
		l.Load()
		if s := l.Schema(); s.TextColumn != "opinion" {
			t.Errorf("TextColumn = %q, want opinion (first string column)", s.TextColumn)
		}
	})

	t.Run("missing rating column reported as absent", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "reviews.csv")
		writeCorpus(t, path, "movie_id,review_text\n1,Nice film\n")

		l := NewLoader(config.Config{UseExistingData: true, ExistingDataFile: path})
		l.Load()
		if s := l.Schema(); s.RatingColumn != "" {
			t.Errorf("RatingColumn = %q, want empty", s.RatingColumn)
		}
		rows := l.MovieReviews(1)
		if len(rows) != 1 || !math.IsNaN(rows[0].Rating) {
			t.Errorf("rows = %+v, want single row with NaN rating", rows)
		}
	})
}
