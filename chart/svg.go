// Package chart renders lines-of-code history as a static SVG line chart.
package chart

import (
	"fmt"
	"strings"
	"time"
)

// Point is one rendered sample. Points are spaced evenly along the x axis by
// index, not by elapsed time.
type Point struct {
	Date time.Time
	LOC  int
}

type Options struct {
	Width      int
	Height     int
	Pad        int
	DateFormat string
	TimeFormat string
}

func DefaultOptions() Options {
	return Options{
		Width:      900,
		Height:     260,
		Pad:        40,
		DateFormat: "02.01.2006",
		TimeFormat: "15:04",
	}
}

// maxDateLabels caps the rotated x-axis labels regardless of point count.
const maxDateLabels = 10

// Render produces an SVG 1.1 document for the points. Empty input yields a
// minimal placeholder instead of an error.
func Render(points []Point, theme Theme, opts Options) string {
	if len(points) == 0 {
		return fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d"><text x="12" y="24">No data</text></svg>`,
			opts.Width, opts.Height)
	}

	w := float64(opts.Width)
	h := float64(opts.Height)
	pad := float64(opts.Pad)
	n := len(points)

	maxLOC := 0
	for _, p := range points {
		if p.LOC > maxLOC {
			maxLOC = p.LOC
		}
	}
	ymax := UpperBound(maxLOC)

	sx := func(i int) float64 {
		den := n - 1
		if den < 1 {
			den = 1
		}
		return pad + float64(i)*(w-2*pad)/float64(den)
	}
	sy := func(v int) float64 {
		return h - pad - float64(v)*(h-2*pad)/float64(ymax)
	}

	var path strings.Builder
	for i, p := range points {
		if i == 0 {
			fmt.Fprintf(&path, "M %.2f %.2f", sx(i), sy(p.LOC))
		} else {
			fmt.Fprintf(&path, " L %.2f %.2f", sx(i), sy(p.LOC))
		}
	}

	// short-lived projects label with times, long-lived ones with dates
	spanDays := int(points[n-1].Date.Sub(points[0].Date).Hours() / 24)
	labelFormat := opts.DateFormat
	if spanDays <= 2 {
		labelFormat = opts.TimeFormat
	}

	step := 1
	if n > maxDateLabels {
		step = n / maxDateLabels
	}

	b := &strings.Builder{}
	fmt.Fprintf(b, `<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" style="font-family: -apple-system, BlinkMacSystemFont, 'Segoe UI', Helvetica, Arial, sans-serif;">`+"\n",
		opts.Width, opts.Height+30)
	fmt.Fprintf(b, `  <rect width="100%%" height="100%%" fill="%s"/>`+"\n", theme.Background)
	b.WriteString("  <g>\n")

	// horizontal gridlines at nice tick values, 6 spanning 0..ymax
	for i := 0; i <= 5; i++ {
		val := ymax * i / 5
		y := sy(val)
		fmt.Fprintf(b, `    <line x1="%.0f" y1="%.2f" x2="%.0f" y2="%.2f" stroke="%s"/>`+"\n",
			pad, y, w-pad, y, theme.Grid)
		fmt.Fprintf(b, `    <text x="%.0f" y="%.2f" font-size="10" fill="%s" text-anchor="end">%s</text>`+"\n",
			pad-8, y+4, theme.Text, FormatValue(val))
	}

	// vertical gridlines with rotated date labels, subsampled
	for i, p := range points {
		if n > maxDateLabels && i%step != 0 {
			continue
		}
		x := sx(i)
		ly := h - pad + 15
		fmt.Fprintf(b, `    <line x1="%.2f" y1="%.0f" x2="%.2f" y2="%.0f" stroke="%s" opacity="0.5"/>`+"\n",
			x, pad, x, h-pad, theme.Grid)
		fmt.Fprintf(b, `    <text x="%.2f" y="%.2f" font-size="9" fill="%s" text-anchor="middle" transform="rotate(-45 %.2f %.2f)">%s</text>`+"\n",
			x, ly, theme.Text, x, ly, p.Date.Format(labelFormat))
	}

	fmt.Fprintf(b, `    <line x1="%.0f" y1="%.0f" x2="%.0f" y2="%.0f" stroke="%s"/>`+"\n",
		pad, h-pad, w-pad, h-pad, theme.Axis)
	fmt.Fprintf(b, `    <line x1="%.0f" y1="%.0f" x2="%.0f" y2="%.0f" stroke="%s"/>`+"\n",
		pad, pad, pad, h-pad, theme.Axis)

	fmt.Fprintf(b, `    <path d="%s" fill="none" stroke="%s" stroke-width="2"/>`+"\n",
		path.String(), theme.Line)
	last := points[n-1]
	fmt.Fprintf(b, `    <circle cx="%.2f" cy="%.2f" r="3" fill="%s"/>`+"\n",
		sx(n-1), sy(last.LOC), theme.Point)

	b.WriteString("  </g>\n</svg>\n")
	return b.String()
}
