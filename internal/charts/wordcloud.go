package charts

import (
	"bytes"
	"math"
	"regexp"
	"sort"
	"strings"
)

const (
	wordCloudWidth  = 1200
	wordCloudHeight = 800
	maxCloudWords   = 100
	minCleanedRunes = 10
)

// Everything outside Cyrillic/Latin letters and whitespace is noise for the
// cloud.
var nonLetterPattern = regexp.MustCompile(`[^а-яёА-ЯЁa-zA-Z\s]`)

// Generic function words plus movie-domain words that dominate every review
// without saying anything.
var stopWords = map[string]struct{}{
	"это": {}, "что": {}, "все": {}, "еще": {}, "уже": {}, "для": {},
	"как": {}, "так": {}, "или": {}, "его": {}, "мне": {}, "мой": {},
	"они": {}, "она": {}, "оно": {}, "мои": {}, "был": {}, "была": {},
	"было": {}, "были": {}, "есть": {}, "под": {}, "над": {},
	"фильм": {}, "кино": {}, "смотреть": {}, "посмотрел": {}, "видел": {},
	"this": {}, "that": {}, "with": {}, "have": {}, "been": {}, "were": {},
	"they": {}, "film": {}, "movie": {}, "watch": {}, "watched": {},
}

var cloudPalette = []string{
	"#440154", "#46327E", "#365C8D", "#277F8E",
	"#1FA187", "#4AC16D", "#A0DA39", "#FDE725",
}

type cloudWord struct {
	text  string
	count int
}

// WordCloud renders a frequency-weighted cloud from the texts. A nil buffer
// with nil error is the expected no-signal outcome: after cleaning, fewer
// than 10 characters remain.
func (r *Renderer) WordCloud(texts []string, title string) (*bytes.Buffer, error) {
	words := cleanCloudWords(strings.Join(texts, " "))

	cleaned := strings.TrimSpace(strings.Join(words, " "))
	if len([]rune(cleaned)) < minCleanedRunes {
		return nil, nil
	}

	ranked := rankWords(words)
	if len(ranked) > maxCloudWords {
		ranked = ranked[:maxCloudWords]
	}

	dc := r.canvas(wordCloudWidth, wordCloudHeight, title)

	area := rect{x: 20, y: 70, w: wordCloudWidth - 40, h: wordCloudHeight - 90}
	cx := area.x + area.w/2
	cy := area.y + area.h/2
	maxCount := float64(ranked[0].count)

	var placed []rect
	for i, w := range ranked {
		size := 16 + 68*math.Sqrt(float64(w.count)/maxCount)
		dc.SetFontFace(r.boldFace(size))
		tw, th := dc.MeasureString(w.text)

		x, y, ok := placeOnSpiral(cx, cy, tw, th, area, placed)
		if !ok {
			continue // no room left for this word
		}

		placed = append(placed, rect{x: x - tw/2 - 3, y: y - th/2 - 3, w: tw + 6, h: th + 6})
		dc.SetHexColor(cloudPalette[i%len(cloudPalette)])
		dc.DrawStringAnchored(w.text, x, y, 0.5, 0.5)
	}

	return encodePNG(dc)
}

// cleanCloudWords applies the cloud cleaning rules: strip non-letters, drop
// short words, drop stop words. Words come back lowercased.
func cleanCloudWords(text string) []string {
	text = nonLetterPattern.ReplaceAllString(text, " ")

	var words []string
	for _, w := range strings.Fields(text) {
		if len([]rune(w)) <= 3 {
			continue
		}
		w = strings.ToLower(w)
		if _, stop := stopWords[w]; stop {
			continue
		}
		words = append(words, w)
	}
	return words
}

func rankWords(words []string) []cloudWord {
	freq := make(map[string]int)
	for _, w := range words {
		freq[w]++
	}

	ranked := make([]cloudWord, 0, len(freq))
	for w, c := range freq {
		ranked = append(ranked, cloudWord{text: w, count: c})
	}
	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].count != ranked[j].count {
			return ranked[i].count > ranked[j].count
		}
		return ranked[i].text < ranked[j].text
	})
	return ranked
}

// placeOnSpiral walks an archimedean spiral from the center until the word's
// bounding box fits inside the area without touching anything already
// placed.
func placeOnSpiral(cx, cy, tw, th float64, area rect, placed []rect) (float64, float64, bool) {
	for step := 0; step < 4000; step++ {
		theta := 0.12 * float64(step)
		radius := 1.4 * theta
		x := cx + radius*math.Cos(theta)
		y := cy + radius*math.Sin(theta)*0.7 // flatten to match the canvas shape

		box := rect{x: x - tw/2, y: y - th/2, w: tw, h: th}
		if box.x < area.x || box.y < area.y ||
			box.x+box.w > area.x+area.w || box.y+box.h > area.y+area.h {
			continue
		}
		if overlapsAny(box, placed) {
			continue
		}
		return x, y, true
	}
	return 0, 0, false
}

func overlapsAny(box rect, placed []rect) bool {
	for _, p := range placed {
		if box.x < p.x+p.w && box.x+box.w > p.x &&
			box.y < p.y+p.h && box.y+box.h > p.y {
			return true
		}
	}
	return false
}
