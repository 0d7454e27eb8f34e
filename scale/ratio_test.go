package scale

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOriginRatio(t *testing.T) {
	base := Breakpoint{Name: "wide", Width: 1920, Height: 1080}
	target := Breakpoint{Name: "tablet", Width: 768, Height: 1024}

	tests := []struct {
		origin Origin
		want   float64
	}{
		{OriginWidth, 768.0 / 1920.0},
		{OriginHeight, 1024.0 / 1080.0},
		{OriginMin, 768.0 / 1080.0},
		{OriginMax, 1024.0 / 1920.0},
		{OriginDiagonal, math.Hypot(768, 1024) / math.Hypot(1920, 1080)},
		{OriginArea, (768.0 * 1024.0) / (1920.0 * 1080.0)},
	}
	for _, tt := range tests {
		t.Run(string(tt.origin), func(t *testing.T) {
			got, err := originRatio(tt.origin, base, target)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestOriginRatioUnknown(t *testing.T) {
	base := Breakpoint{Name: "wide", Width: 1920, Height: 1080}
	_, err := originRatio("perimeter", base, base)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidConfig)
}

func TestBuildRatioTable(t *testing.T) {
	cfg := testConfig()
	table, err := buildRatioTable(cfg)
	require.NoError(t, err)

	require.Len(t, table, 3, "exactly one entry per breakpoint")
	assert.Equal(t, 0.203125, table["wide-mobile"])
	assert.Equal(t, 0.4, table["wide-tablet"])
	assert.Equal(t, 1.0, table["wide-wide"], "base relates to itself with ratio 1")
}

func TestBuildRatioTableUnknownOrigin(t *testing.T) {
	cfg := testConfig()
	cfg.Strategy.Origin = "volume"
	_, err := buildRatioTable(cfg)
	assert.ErrorIs(t, err, ErrInvalidConfig)
}
