package sentiment

import (
	"testing"

	"github.com/kinopulse/kinopulse/internal/models"
)

func TestDominantCategoryBoundaries(t *testing.T) {
	tests := []struct {
		compound float64
		want     string
	}{
		{0.05, models.CategoryPositive},
		{-0.05, models.CategoryNegative},
		{0.0, models.CategoryNeutral},
		{0.0499, models.CategoryNeutral},
		{-0.0499, models.CategoryNeutral},
		{0.9, models.CategoryPositive},
		{-0.9, models.CategoryNegative},
	}

	for _, tt := range tests {
		if got := models.DominantCategory(tt.compound); got != tt.want {
			t.Errorf("DominantCategory(%v) = %q, want %q", tt.compound, got, tt.want)
		}
	}
}

func TestClassifyEmptyText(t *testing.T) {
	c := NewClassifier()

	for _, text := range []string{"", "   ", "\n\t"} {
		got := c.Classify(text)
		want := models.NeutralResult()
		if got != want {
			t.Errorf("Classify(%q) = %+v, want neutral default %+v", text, got, want)
		}
	}
}

func TestClassifyPolarity(t *testing.T) {
	c := NewClassifier()

	pos := c.Classify("I love this movie, it is absolutely fantastic!")
	if pos.Compound < models.CompoundThreshold {
		t.Errorf("positive text compound = %v, want >= %v", pos.Compound, models.CompoundThreshold)
	}
	if pos.Dominant() != models.CategoryPositive {
		t.Errorf("positive text dominant = %q", pos.Dominant())
	}

	neg := c.Classify("This is terrible. I hate everything about it.")
	if neg.Compound > -models.CompoundThreshold {
		t.Errorf("negative text compound = %v, want <= %v", neg.Compound, -models.CompoundThreshold)
	}
	if neg.Dominant() != models.CategoryNegative {
		t.Errorf("negative text dominant = %q", neg.Dominant())
	}
}

func TestClassifyStripsMarkdown(t *testing.T) {
	c := NewClassifier()

	plain := c.Classify("great wonderful amazing")
	marked := c.Classify("**great** [wonderful](https://example.com/x) amazing")
	if plain.Dominant() != marked.Dominant() {
		t.Errorf("markdown changed dominant category: plain %q, marked %q",
			plain.Dominant(), marked.Dominant())
	}
}

func TestClassifyBatchPreservesOrderAndLength(t *testing.T) {
	c := NewClassifier()

	texts := []string{
		"An absolutely wonderful experience",
		"",
		"Horrible, a complete waste of time",
		"The movie runs for two hours",
	}
	results := c.ClassifyBatch(texts)
	if len(results) != len(texts) {
		t.Fatalf("batch length = %d, want %d", len(results), len(texts))
	}

	if results[0].Dominant() != models.CategoryPositive {
		t.Errorf("results[0] dominant = %q, want positive", results[0].Dominant())
	}
	if results[1] != models.NeutralResult() {
		t.Errorf("results[1] = %+v, want neutral default", results[1])
	}
	if results[2].Dominant() != models.CategoryNegative {
		t.Errorf("results[2] dominant = %q, want negative", results[2].Dominant())
	}
}

func TestClassifyBatchEmptyInput(t *testing.T) {
	c := NewClassifier()

	if got := c.ClassifyBatch(nil); len(got) != 0 {
		t.Errorf("ClassifyBatch(nil) length = %d, want 0", len(got))
	}
}
