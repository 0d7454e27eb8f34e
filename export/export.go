// Package export renders a scaling configuration for consumption outside
// the engine: CSS custom properties per breakpoint, and an SVG chart of a
// token's values across the breakpoint range.
package export

import (
	"fmt"
	"io"
	"sort"
	"strings"
	"unicode"

	svg "github.com/ajstarks/svgo"

	"vpscale/scale"
)

// fallbackSample is the reference value used for tokens without an entry in
// the sample map.
const fallbackSample = 16.0

// DefaultSamples returns reference design values for the built-in tokens.
// Exports scale these samples to every breakpoint.
func DefaultSamples() map[string]float64 {
	return map[string]float64{
		"fontSize":   16,
		"spacing":    8,
		"radius":     4,
		"iconSize":   24,
		"lineHeight": 1.5,
	}
}

// CSS writes one rule block per breakpoint, exposing every token as a
// custom property scaled from its sample value.
func CSS(e *scale.Engine, samples map[string]float64, w io.Writer) error {
	if samples == nil {
		samples = DefaultSamples()
	}
	tokens := e.TokenNames()
	cfg := e.Config()

	for _, bp := range sortedByWidth(cfg.Breakpoints) {
		ratio, err := e.Ratio(bp)
		if err != nil {
			return err
		}
		fmt.Fprintf(w, "/* %s - %gx%g (ratio %.4g) */\n", bp.Name, bp.Width, bp.Height, ratio)
		fmt.Fprintf(w, "[data-breakpoint=%q] {\n", bp.Name)
		for _, name := range tokens {
			sample := samples[name]
			if sample == 0 {
				sample = fallbackSample
			}
			res, err := e.ScaleValue(sample, bp, scale.Options{Token: name})
			if err != nil {
				return err
			}
			unit := cfg.Strategy.Tokens[name].Unit
			fmt.Fprintf(w, "  --%s: %g%s;\n", PropertyName(name), res.Scaled, unit)
		}
		fmt.Fprintln(w, "}")
		fmt.Fprintln(w)
	}
	return nil
}

// Chart canvas geometry.
const (
	chartWidth  = 640
	chartHeight = 400
	chartMargin = 60
)

// Chart writes an SVG plotting a token's scaled value at every breakpoint,
// ordered by breakpoint width. The sample value anchors the curve.
func Chart(e *scale.Engine, token string, sample float64, w io.Writer) error {
	cfg := e.Config()
	breakpoints := sortedByWidth(cfg.Breakpoints)
	if len(breakpoints) == 0 {
		return fmt.Errorf("no breakpoints to chart")
	}

	type point struct {
		bp     scale.Breakpoint
		scaled float64
	}
	points := make([]point, 0, len(breakpoints))
	maxScaled := 0.0
	for _, bp := range breakpoints {
		res, err := e.ScaleValue(sample, bp, scale.Options{Token: token})
		if err != nil {
			return err
		}
		points = append(points, point{bp: bp, scaled: res.Scaled})
		if res.Scaled > maxScaled {
			maxScaled = res.Scaled
		}
	}
	if maxScaled == 0 {
		maxScaled = 1
	}

	plotW := chartWidth - 2*chartMargin
	plotH := chartHeight - 2*chartMargin

	canvas := svg.New(w)
	canvas.Start(chartWidth, chartHeight)
	canvas.Title(fmt.Sprintf("%s across breakpoints", token))

	// Axes
	canvas.Line(chartMargin, chartHeight-chartMargin, chartWidth-chartMargin, chartHeight-chartMargin,
		"stroke:#9ca3af;stroke-width:1")
	canvas.Line(chartMargin, chartMargin, chartMargin, chartHeight-chartMargin,
		"stroke:#9ca3af;stroke-width:1")
	canvas.Text(chartWidth/2, chartHeight-chartMargin/3,
		fmt.Sprintf("%s (sample %g)", token, sample),
		"text-anchor:middle;font-size:13px;font-family:sans-serif;fill:#374151")

	xs := make([]int, len(points))
	ys := make([]int, len(points))
	for i, p := range points {
		if len(points) == 1 {
			xs[i] = chartMargin + plotW/2
		} else {
			xs[i] = chartMargin + i*plotW/(len(points)-1)
		}
		ys[i] = chartHeight - chartMargin - int(p.scaled/maxScaled*float64(plotH))
	}

	canvas.Polyline(xs, ys, "fill:none;stroke:#7d56f4;stroke-width:2")
	for i, p := range points {
		canvas.Circle(xs[i], ys[i], 4, "fill:#7d56f4")
		canvas.Text(xs[i], chartHeight-chartMargin+18, p.bp.Name,
			"text-anchor:middle;font-size:11px;font-family:sans-serif;fill:#6b7280")
		canvas.Text(xs[i], ys[i]-10, fmt.Sprintf("%g", p.scaled),
			"text-anchor:middle;font-size:11px;font-family:sans-serif;fill:#374151")
	}

	canvas.End()
	return nil
}

func sortedByWidth(bps []scale.Breakpoint) []scale.Breakpoint {
	out := append([]scale.Breakpoint(nil), bps...)
	sort.Slice(out, func(i, j int) bool { return out[i].Width < out[j].Width })
	return out
}

// PropertyName converts a camelCase token name into a CSS custom-property
// name (fontSize -> font-size).
func PropertyName(name string) string {
	var b strings.Builder
	for i, r := range name {
		if unicode.IsUpper(r) {
			if i > 0 {
				b.WriteByte('-')
			}
			b.WriteRune(unicode.ToLower(r))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}
