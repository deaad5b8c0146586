package charts

import (
	"bytes"
	"fmt"
	"strconv"

	"github.com/kinopulse/kinopulse/internal/models"
)

// ReviewsTimeline renders the per-month review count line. Nil buffer means
// no dated reviews to plot, the expected outcome for corpora without a date
// column.
func (r *Renderer) ReviewsTimeline(months []models.MonthCount, title string) (*bytes.Buffer, error) {
	if len(months) == 0 {
		return nil, nil
	}

	dc := r.canvas(1200, 600, title)
	rc := rect{x: 90, y: 80, w: 1040, h: 420}

	maxCount := 0
	for _, m := range months {
		if m.Count > maxCount {
			maxCount = m.Count
		}
	}
	maxY := niceCeil(float64(maxCount))

	r.drawFrame(dc, rc, maxY)

	xFor := func(i int) float64 {
		if len(months) == 1 {
			return rc.x + rc.w/2
		}
		return rc.x + float64(i)/float64(len(months)-1)*rc.w
	}
	yFor := func(c int) float64 {
		return rc.y + rc.h - float64(c)/maxY*rc.h
	}

	dc.SetHexColor(colorPrimary)
	dc.SetLineWidth(2.5)
	for i, m := range months {
		if i == 0 {
			dc.MoveTo(xFor(i), yFor(m.Count))
		} else {
			dc.LineTo(xFor(i), yFor(m.Count))
		}
	}
	dc.Stroke()

	for i, m := range months {
		dc.SetHexColor(colorPrimary)
		dc.DrawCircle(xFor(i), yFor(m.Count), 5)
		dc.Fill()
	}

	// month labels, thinned when the axis gets crowded
	step := len(months)/12 + 1
	dc.SetFontFace(r.face(13))
	dc.SetHexColor(colorText)
	for i := 0; i < len(months); i += step {
		dc.DrawStringAnchored(months[i].Month, xFor(i), rc.y+rc.h+20, 0.5, 0.5)
	}

	dc.SetFontFace(r.face(15))
	dc.DrawStringAnchored("Reviews per month", rc.x+rc.w/2, rc.y+rc.h+48, 0.5, 0.5)

	return encodePNG(dc)
}

// RatingCorrelation renders the compound-vs-rating scatter annotated with
// the Pearson coefficient. Nil buffer when fewer than two points exist.
func (r *Renderer) RatingCorrelation(points []models.RatingPoint, correlation float64, title string) (*bytes.Buffer, error) {
	if len(points) < 2 {
		return nil, nil
	}

	dc := r.canvas(1000, 700, title)
	rc := rect{x: 90, y: 80, w: 840, h: 520}

	r.drawFrame(dc, rc, 10) // rating scale 0..10

	xFor := func(compound float64) float64 {
		return rc.x + (compound+1)/2*rc.w
	}
	yFor := func(rating float64) float64 {
		return rc.y + rc.h - rating/10*rc.h
	}

	dc.SetFontFace(r.face(13))
	dc.SetHexColor(colorText)
	for _, v := range []float64{-1, -0.5, 0, 0.5, 1} {
		x := xFor(v)
		dc.DrawLine(x, rc.y+rc.h, x, rc.y+rc.h+6)
		dc.Stroke()
		dc.DrawStringAnchored(formatTick(v), x, rc.y+rc.h+20, 0.5, 0.5)
	}
	dc.SetFontFace(r.face(15))
	dc.DrawStringAnchored("Compound score", rc.x+rc.w/2, rc.y+rc.h+48, 0.5, 0.5)

	dc.SetRGBA(0.12, 0.47, 0.71, 0.35)
	for _, p := range points {
		dc.DrawCircle(xFor(p.Compound), yFor(p.Rating), 5)
		dc.Fill()
	}

	dc.SetFontFace(r.boldFace(17))
	dc.SetHexColor(colorText)
	dc.DrawStringAnchored(
		fmt.Sprintf("Pearson r = %s", strconv.FormatFloat(correlation, 'f', 3, 64)),
		rc.x+16, rc.y+20, 0, 0.5)

	return encodePNG(dc)
}
