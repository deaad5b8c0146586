package charts

import (
	"bytes"
	"sort"
	"strconv"

	"github.com/fogleman/gg"
)

// ratingTier picks the bar color for a rating value. The full chart uses the
// four-tier scale; the dashboard panel keeps the coarser three-tier one.
func ratingTier(v float64) string {
	switch {
	case v >= 8:
		return colorPositive
	case v >= 6:
		return colorGold
	case v >= 4:
		return colorOrange
	default:
		return colorNegative
	}
}

func dashboardRatingTier(v float64) string {
	switch {
	case v >= 7:
		return colorPositive
	case v >= 5:
		return colorNeutral
	default:
		return colorNegative
	}
}

// RatingDistribution renders one bar per distinct rating value present,
// color-tiered by value and annotated with counts.
func (r *Renderer) RatingDistribution(ratings []float64, title string) (*bytes.Buffer, error) {
	dc := r.canvas(1000, 600, title)
	r.drawRatingBars(dc, rect{x: 80, y: 80, w: 860, h: 430}, ratings, ratingTier)
	return encodePNG(dc)
}

func (r *Renderer) drawRatingBars(dc *gg.Context, rc rect, ratings []float64, tier func(float64) string) {
	values, counts := countRatings(ratings)

	maxCount := 0
	for _, c := range counts {
		if c > maxCount {
			maxCount = c
		}
	}
	maxY := niceCeil(float64(maxCount))

	r.drawFrame(dc, rc, maxY)
	if len(values) == 0 {
		return
	}

	slot := rc.w / float64(len(values))
	barW := slot * 0.7
	for i, v := range values {
		barH := float64(counts[i]) / maxY * rc.h
		x := rc.x + float64(i)*slot + (slot-barW)/2
		y := rc.y + rc.h - barH

		dc.SetHexColor(tier(v))
		dc.DrawRectangle(x, y, barW, barH)
		dc.Fill()

		dc.SetFontFace(r.boldFace(14))
		dc.SetHexColor(colorText)
		dc.DrawStringAnchored(strconv.Itoa(counts[i]), x+barW/2, y-12, 0.5, 0.5)

		dc.SetFontFace(r.face(14))
		dc.DrawStringAnchored(formatRating(v), x+barW/2, rc.y+rc.h+18, 0.5, 0.5)
	}

	dc.SetFontFace(r.face(15))
	dc.SetHexColor(colorText)
	dc.DrawStringAnchored("Rating", rc.x+rc.w/2, rc.y+rc.h+44, 0.5, 0.5)
}

func countRatings(ratings []float64) ([]float64, []int) {
	freq := make(map[float64]int)
	for _, v := range ratings {
		freq[v]++
	}

	values := make([]float64, 0, len(freq))
	for v := range freq {
		values = append(values, v)
	}
	sort.Float64s(values)

	counts := make([]int, len(values))
	for i, v := range values {
		counts[i] = freq[v]
	}
	return values, counts
}

func formatRating(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
