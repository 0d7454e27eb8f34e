package scale

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestApplyCurve(t *testing.T) {
	tests := []struct {
		name  string
		curve Curve
		value float64
		ratio float64
		want  float64
	}{
		{name: "ease-in is sqrt of ratio", curve: CurveEaseIn, value: 10, ratio: 0.25, want: 5},
		{name: "ease-out is ratio squared", curve: CurveEaseOut, value: 10, ratio: 0.5, want: 2.5},
		{name: "ease-in-out lower half", curve: CurveEaseInOut, value: 10, ratio: 0.25, want: 1.25},
		{name: "ease-in-out midpoint", curve: CurveEaseInOut, value: 10, ratio: 0.5, want: 5},
		{name: "ease-in-out upper half", curve: CurveEaseInOut, value: 10, ratio: 0.75, want: 8.75},
		{name: "linear passes through", curve: CurveLinear, value: 10, ratio: 0.3, want: 10},
		{name: "custom passes through", curve: CurveCustom, value: 10, ratio: 0.3, want: 10},
		{name: "unknown passes through", curve: Curve("bounce"), value: 10, ratio: 0.3, want: 10},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ApplyCurve(tt.curve, tt.value, tt.ratio)
			assert.InDelta(t, tt.want, got, 1e-12)
		})
	}
}

func TestApplyCurveGoldenRatio(t *testing.T) {
	got := ApplyCurve(CurveGoldenRatio, 10, 0.25)
	want := 10 * math.Pow(0.25, 1/1.618033988749895)
	assert.InDelta(t, want, got, 1e-12)

	// The golden-ratio curve sits between ease-in (exponent 0.5) and
	// linear (exponent 1) for ratios below one.
	easeIn := ApplyCurve(CurveEaseIn, 10, 0.25)
	assert.Greater(t, got, 10*0.25)
	assert.Less(t, got, easeIn)
}

func TestCurveThroughPipeline(t *testing.T) {
	cfg := testConfig()
	cfg.Strategy.Tokens["heading"] = Token{
		Scale:     Factor(1),
		Curve:     CurveEaseOut,
		Precision: ptrInt(4),
	}
	e, err := New(cfg)
	if err != nil {
		t.Fatal(err)
	}

	tablet := Breakpoint{Name: "tablet", Width: 768, Height: 1024}
	res, err := e.ScaleValue(10, tablet, Options{Token: "heading"})
	if err != nil {
		t.Fatal(err)
	}
	// 10 * 0.4 = 4, ease-out multiplies by ratio^2 = 0.16.
	assert.InDelta(t, 0.64, res.Scaled, 1e-9)
}
