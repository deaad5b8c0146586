package charts

import (
	"bytes"

	"github.com/kinopulse/kinopulse/internal/models"
)

const histogramBins = 20

// ScoreHistogram renders the compound score distribution: 20 equal-width
// bins over [-1,1], each bar colored by its midpoint's category, with dashed
// reference lines marking the ±0.05 dead zone.
func (r *Renderer) ScoreHistogram(scores []float64, title string) (*bytes.Buffer, error) {
	dc := r.canvas(1200, 600, title)
	rc := rect{x: 90, y: 80, w: 1040, h: 420}

	bins := make([]int, histogramBins)
	for _, s := range scores {
		idx := int((s + 1) / 2 * histogramBins)
		if idx < 0 {
			idx = 0
		}
		if idx >= histogramBins {
			idx = histogramBins - 1 // s == 1.0 lands in the last bin
		}
		bins[idx]++
	}

	maxCount := 0
	for _, c := range bins {
		if c > maxCount {
			maxCount = c
		}
	}
	maxY := niceCeil(float64(maxCount))

	r.drawFrame(dc, rc, maxY)

	binW := rc.w / histogramBins
	for i, count := range bins {
		if count == 0 {
			continue
		}
		mid := -1 + (float64(i)+0.5)*2/histogramBins
		switch models.DominantCategory(mid) {
		case models.CategoryPositive:
			dc.SetHexColor(colorPositive)
		case models.CategoryNegative:
			dc.SetHexColor(colorNegative)
		default:
			dc.SetHexColor(colorNeutral)
		}
		barH := float64(count) / maxY * rc.h
		dc.DrawRectangle(rc.x+float64(i)*binW+1, rc.y+rc.h-barH, binW-2, barH)
		dc.Fill()
	}

	// x axis ticks
	dc.SetFontFace(r.face(13))
	dc.SetHexColor(colorText)
	for _, v := range []float64{-1, -0.5, 0, 0.5, 1} {
		x := rc.x + (v+1)/2*rc.w
		dc.DrawLine(x, rc.y+rc.h, x, rc.y+rc.h+6)
		dc.Stroke()
		dc.DrawStringAnchored(formatTick(v), x, rc.y+rc.h+20, 0.5, 0.5)
	}
	dc.SetFontFace(r.face(15))
	dc.DrawStringAnchored("Compound score", rc.x+rc.w/2, rc.y+rc.h+48, 0.5, 0.5)

	// dead zone boundaries
	for _, line := range []struct {
		v   float64
		hex string
	}{
		{-models.CompoundThreshold, colorNegative},
		{models.CompoundThreshold, colorPositive},
	} {
		x := rc.x + (line.v+1)/2*rc.w
		dc.SetHexColor(line.hex)
		dc.SetLineWidth(1.5)
		dc.SetDash(6, 4)
		dc.DrawLine(x, rc.y, x, rc.y+rc.h)
		dc.Stroke()
		dc.SetDash()
	}

	// legend patches
	dc.SetFontFace(r.face(14))
	for i, c := range categoryOrder {
		ly := rc.y + 10 + float64(i)*24
		lx := rc.x + rc.w - 190
		dc.SetHexColor(c.hex)
		dc.DrawRectangle(lx, ly, 16, 16)
		dc.Fill()
		dc.SetHexColor(colorText)
		dc.DrawStringAnchored(c.label, lx+24, ly+8, 0, 0.5)
	}

	return encodePNG(dc)
}
