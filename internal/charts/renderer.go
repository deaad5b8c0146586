package charts

import (
	"bytes"
	"fmt"
	"math"
	"os"
	"strconv"

	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goregular"

	"github.com/kinopulse/kinopulse/config"
)

const (
	colorPositive = "#2E8B57"
	colorNegative = "#DC143C"
	colorNeutral  = "#4682B4"
	colorPrimary  = "#1f77b4"
	colorGold     = "#FFD700"
	colorOrange   = "#FFA500"
	colorGrid     = "#D8D8D8"
	colorText     = "#222222"
	colorPanelBG  = "#EFEFEF"
)

// Renderer rasterizes aggregate data into PNG buffers. The parsed fonts are
// immutable and shared; faces are minted per call because truetype faces
// carry glyph caches that are not safe for concurrent renders. Every render
// builds a fresh drawing context, so calls are independent and leave no
// styling state behind.
type Renderer struct {
	regular *truetype.Font
	bold    *truetype.Font
}

// NewRenderer loads the chart fonts: the embedded Go fonts (Latin plus
// Cyrillic coverage) or the TTF configured via CHART_FONT.
func NewRenderer(cfg config.Config) (*Renderer, error) {
	regularTTF := goregular.TTF
	boldTTF := gobold.TTF
	if cfg.ChartFont != "" {
		data, err := os.ReadFile(cfg.ChartFont)
		if err != nil {
			return nil, fmt.Errorf("read chart font %s: %w", cfg.ChartFont, err)
		}
		regularTTF = data
		boldTTF = data
	}

	regular, err := truetype.Parse(regularTTF)
	if err != nil {
		return nil, fmt.Errorf("parse chart font: %w", err)
	}
	bold, err := truetype.Parse(boldTTF)
	if err != nil {
		return nil, fmt.Errorf("parse bold chart font: %w", err)
	}

	return &Renderer{regular: regular, bold: bold}, nil
}

func (r *Renderer) face(points float64) font.Face {
	return truetype.NewFace(r.regular, &truetype.Options{Size: points})
}

func (r *Renderer) boldFace(points float64) font.Face {
	return truetype.NewFace(r.bold, &truetype.Options{Size: points})
}

// rect is a drawing region inside a context; panels address the canvas
// through these instead of absolute coordinates.
type rect struct {
	x, y, w, h float64
}

func (r *Renderer) canvas(w, h int, title string) *gg.Context {
	dc := gg.NewContext(w, h)
	dc.SetRGB(1, 1, 1)
	dc.Clear()
	if title != "" {
		dc.SetFontFace(r.boldFace(24))
		dc.SetHexColor(colorText)
		dc.DrawStringAnchored(title, float64(w)/2, 36, 0.5, 0.5)
	}
	return dc
}

func encodePNG(dc *gg.Context) (*bytes.Buffer, error) {
	var buf bytes.Buffer
	if err := dc.EncodePNG(&buf); err != nil {
		return nil, fmt.Errorf("encode chart png: %w", err)
	}
	return &buf, nil
}

// drawFrame draws the plot border and horizontal grid lines with y-axis
// labels for a 0..maxY value scale.
func (r *Renderer) drawFrame(dc *gg.Context, rc rect, maxY float64) {
	dc.SetHexColor(colorText)
	dc.SetLineWidth(1.5)
	dc.DrawLine(rc.x, rc.y, rc.x, rc.y+rc.h)
	dc.DrawLine(rc.x, rc.y+rc.h, rc.x+rc.w, rc.y+rc.h)
	dc.Stroke()

	steps := 5
	dc.SetFontFace(r.face(13))
	for i := 0; i <= steps; i++ {
		v := maxY * float64(i) / float64(steps)
		y := rc.y + rc.h - rc.h*float64(i)/float64(steps)
		if i > 0 {
			dc.SetHexColor(colorGrid)
			dc.SetLineWidth(1)
			dc.SetDash(4, 4)
			dc.DrawLine(rc.x, y, rc.x+rc.w, y)
			dc.Stroke()
			dc.SetDash()
		}
		dc.SetHexColor(colorText)
		dc.DrawStringAnchored(formatTick(v), rc.x-8, y, 1, 0.5)
	}
}

func formatTick(v float64) string {
	if v == math.Trunc(v) {
		return strconv.Itoa(int(v))
	}
	return strconv.FormatFloat(v, 'f', 1, 64)
}

// niceCeil rounds a count up to a scale that yields readable grid steps.
func niceCeil(v float64) float64 {
	if v <= 5 {
		return 5
	}
	magnitude := math.Pow(10, math.Floor(math.Log10(v)))
	for _, m := range []float64{1, 2, 2.5, 5, 10} {
		if v <= m*magnitude {
			return m * magnitude
		}
	}
	return 10 * magnitude
}
