package charts

import (
	"bytes"
	"fmt"

	"github.com/fogleman/gg"

	"github.com/kinopulse/kinopulse/internal/models"
)

// SummaryDashboard composes the movie's pie chart, rating bars, per-review
// compound score line and a text statistics panel onto one canvas. A missing
// sub-input silently omits its panel; the composite never fails because one
// panel has nothing to show.
func (r *Renderer) SummaryDashboard(agg *models.MovieAggregate, distribution map[string]int, ratings []float64, title string) (*bytes.Buffer, error) {
	dc := gg.NewContext(1600, 1200)
	dc.SetRGB(1, 1, 1)
	dc.Clear()

	dc.SetFontFace(r.boldFace(30))
	dc.SetHexColor(colorText)
	dc.DrawStringAnchored(title, 800, 46, 0.5, 0.5)

	if total := sumCounts(distribution); total > 0 {
		r.panelTitle(dc, "Sentiment distribution", 400, 100)
		r.drawPie(dc, rect{x: 120, y: 120, w: 560, h: 400}, distribution)
	}

	if len(ratings) > 0 {
		r.panelTitle(dc, "Rating distribution", 1200, 100)
		r.drawRatingBars(dc, rect{x: 940, y: 140, w: 560, h: 350}, ratings, dashboardRatingTier)
	}

	if len(agg.CompoundScores) > 0 {
		r.panelTitle(dc, "Sentiment per review", 800, 570)
		r.drawScoreLine(dc, rect{x: 100, y: 600, w: 1400, h: 320}, agg.CompoundScores)
	}

	r.drawStatsPanel(dc, rect{x: 100, y: 990, w: 1400, h: 170}, agg, distribution)

	return encodePNG(dc)
}

func (r *Renderer) panelTitle(dc *gg.Context, text string, cx, y float64) {
	dc.SetFontFace(r.boldFace(18))
	dc.SetHexColor(colorText)
	dc.DrawStringAnchored(text, cx, y, 0.5, 0.5)
}

// drawScoreLine plots compound scores in review order (index-ordered, not
// time-ordered) with the zero line and the ±0.05 boundaries for reference.
func (r *Renderer) drawScoreLine(dc *gg.Context, rc rect, scores []float64) {
	r.drawScoreAxes(dc, rc)

	xFor := func(i int) float64 {
		if len(scores) == 1 {
			return rc.x + rc.w/2
		}
		return rc.x + float64(i)/float64(len(scores)-1)*rc.w
	}
	yFor := func(v float64) float64 {
		return rc.y + rc.h/2 - v*rc.h/2
	}

	dc.SetHexColor(colorPrimary)
	dc.SetLineWidth(2)
	for i, v := range scores {
		if i == 0 {
			dc.MoveTo(xFor(i), yFor(v))
		} else {
			dc.LineTo(xFor(i), yFor(v))
		}
	}
	dc.Stroke()

	if len(scores) == 1 {
		dc.SetHexColor(colorPrimary)
		dc.DrawCircle(xFor(0), yFor(scores[0]), 4)
		dc.Fill()
	}
}

func (r *Renderer) drawScoreAxes(dc *gg.Context, rc rect) {
	dc.SetHexColor(colorText)
	dc.SetLineWidth(1.5)
	dc.DrawLine(rc.x, rc.y, rc.x, rc.y+rc.h)
	dc.DrawLine(rc.x, rc.y+rc.h, rc.x+rc.w, rc.y+rc.h)
	dc.Stroke()

	dc.SetFontFace(r.face(13))
	for _, v := range []float64{-1, -0.5, 0, 0.5, 1} {
		y := rc.y + rc.h/2 - v*rc.h/2
		dc.SetHexColor(colorText)
		dc.DrawStringAnchored(formatTick(v), rc.x-8, y, 1, 0.5)
	}

	for _, line := range []struct {
		v   float64
		hex string
	}{
		{0, "#888888"},
		{models.CompoundThreshold, colorPositive},
		{-models.CompoundThreshold, colorNegative},
	} {
		y := rc.y + rc.h/2 - line.v*rc.h/2
		dc.SetHexColor(line.hex)
		dc.SetLineWidth(1)
		dc.SetDash(6, 4)
		dc.DrawLine(rc.x, y, rc.x+rc.w, y)
		dc.Stroke()
		dc.SetDash()
	}
}

func (r *Renderer) drawStatsPanel(dc *gg.Context, rc rect, agg *models.MovieAggregate, distribution map[string]int) {
	dc.SetHexColor(colorPanelBG)
	dc.DrawRoundedRectangle(rc.x, rc.y, rc.w, rc.h, 12)
	dc.Fill()

	lines := []string{
		fmt.Sprintf("Movie: %s", agg.MovieTitle),
		fmt.Sprintf("Total reviews: %d    Average rating: %.1f/10    Average sentiment: %.3f",
			agg.TotalReviews, agg.AvgRating, agg.AvgCompound),
		fmt.Sprintf("Positive: %d    Negative: %d    Neutral: %d",
			distribution[models.CategoryPositive],
			distribution[models.CategoryNegative],
			distribution[models.CategoryNeutral]),
	}

	dc.SetFontFace(r.face(19))
	dc.SetHexColor(colorText)
	for i, line := range lines {
		dc.DrawStringAnchored(line, rc.x+rc.w/2, rc.y+38+float64(i)*44, 0.5, 0.5)
	}
}

func sumCounts(distribution map[string]int) int {
	total := 0
	for _, c := range distribution {
		total += c
	}
	return total
}
