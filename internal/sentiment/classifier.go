package sentiment

import (
	"log/slog"
	"regexp"
	"strings"

	"github.com/jonreiter/govader"
	"github.com/russross/blackfriday/v2"

	"github.com/kinopulse/kinopulse/internal/models"
)

// Classifier wraps the VADER polarity scorer. A single instance is built at
// startup and shared; PolarityScores holds no mutable state between calls.
type Classifier struct {
	analyzer *govader.SentimentIntensityAnalyzer
}

func NewClassifier() *Classifier {
	return &Classifier{analyzer: govader.NewSentimentIntensityAnalyzer()}
}

var (
	linkPattern = regexp.MustCompile(`\[(.*?)\]\((https?:\/\/[^\s\)]+)\)`)
	urlPattern  = regexp.MustCompile(`https?://\S+|www\.\S+`)
	tagPattern  = regexp.MustCompile(`<[^>]*>`)
)

func removeLinks(input string) string {
	input = linkPattern.ReplaceAllString(input, "$1") // Keep only the text
	return urlPattern.ReplaceAllString(input, "")
}

// toPlainText strips markdown markup and links so formatting never skews the
// polarity score.
func toPlainText(input string) string {
	output := blackfriday.Run([]byte(input), blackfriday.WithNoExtensions())
	stripped := tagPattern.ReplaceAllString(string(output), " ")
	plainText := strings.Join(strings.Fields(stripped), " ")

	return removeLinks(plainText)
}

// Classify scores a single text. It never fails the caller: empty input and
// any internal scoring error both come back as the neutral default.
func (c *Classifier) Classify(text string) models.SentimentResult {
	plainText := toPlainText(text)
	if strings.TrimSpace(plainText) == "" {
		return models.NeutralResult()
	}

	return c.score(plainText)
}

func (c *Classifier) score(text string) (result models.SentimentResult) {
	defer func() {
		if r := recover(); r != nil {
			slog.Error("[Classifier] Scoring failed, substituting neutral",
				slog.Any("panic", r))
			result = models.NeutralResult()
		}
	}()

	scores := c.analyzer.PolarityScores(text)
	return models.SentimentResult{
		Positive: scores.Positive,
		Negative: scores.Negative,
		Neutral:  scores.Neutral,
		Compound: scores.Compound,
	}
}

// ClassifyBatch scores texts independently, preserving input order and
// length. A text that cannot be scored becomes a neutral entry, never a gap.
func (c *Classifier) ClassifyBatch(texts []string) []models.SentimentResult {
	results := make([]models.SentimentResult, 0, len(texts))
	for _, text := range texts {
		results = append(results, c.Classify(text))
	}
	return results
}
