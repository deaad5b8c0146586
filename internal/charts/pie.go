package charts

import (
	"bytes"
	"fmt"
	"math"

	"github.com/fogleman/gg"

	"github.com/kinopulse/kinopulse/internal/models"
)

var categoryOrder = []struct {
	key   string
	hex   string
	label string
}{
	{models.CategoryPositive, colorPositive, "Positive"},
	{models.CategoryNegative, colorNegative, "Negative"},
	{models.CategoryNeutral, colorNeutral, "Neutral"},
}

// SentimentPie renders the category share pie: fixed colors per category,
// percentage labels on the wedges, legend on the right. Callers guard
// against an all-zero distribution; here it just yields an empty chart.
func (r *Renderer) SentimentPie(distribution map[string]int, title string) (*bytes.Buffer, error) {
	dc := r.canvas(1000, 800, title)
	r.drawPie(dc, rect{x: 60, y: 80, w: 620, h: 660}, distribution)
	r.drawCategoryLegend(dc, 730, 300, distribution)
	return encodePNG(dc)
}

func (r *Renderer) drawPie(dc *gg.Context, rc rect, distribution map[string]int) {
	total := 0
	for _, c := range categoryOrder {
		total += distribution[c.key]
	}
	if total == 0 {
		return
	}

	cx := rc.x + rc.w/2
	cy := rc.y + rc.h/2
	radius := math.Min(rc.w, rc.h) / 2 * 0.92

	angle := -math.Pi / 2 // start at twelve o'clock
	for _, c := range categoryOrder {
		count := distribution[c.key]
		if count == 0 {
			continue
		}
		frac := float64(count) / float64(total)
		next := angle + frac*2*math.Pi

		dc.SetHexColor(c.hex)
		dc.MoveTo(cx, cy)
		dc.DrawArc(cx, cy, radius, angle, next)
		dc.ClosePath()
		dc.Fill()

		mid := (angle + next) / 2
		labelR := radius * 0.6
		dc.SetFontFace(r.boldFace(18))
		dc.SetRGB(1, 1, 1)
		dc.DrawStringAnchored(
			fmt.Sprintf("%.1f%%", frac*100),
			cx+labelR*math.Cos(mid),
			cy+labelR*math.Sin(mid),
			0.5, 0.5)

		angle = next
	}

	dc.SetHexColor("#FFFFFF")
	dc.SetLineWidth(2)
	dc.DrawCircle(cx, cy, radius)
	dc.Stroke()
}

func (r *Renderer) drawCategoryLegend(dc *gg.Context, x, y float64, distribution map[string]int) {
	dc.SetFontFace(r.face(16))
	for i, c := range categoryOrder {
		ly := y + float64(i)*34
		dc.SetHexColor(c.hex)
		dc.DrawRectangle(x, ly, 20, 20)
		dc.Fill()
		dc.SetHexColor(colorText)
		dc.DrawStringAnchored(
			fmt.Sprintf("%s (%d)", c.label, distribution[c.key]),
			x+30, ly+10, 0, 0.5)
	}
}
