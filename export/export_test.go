package export

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"vpscale/scale"
)

func newEngine(t *testing.T) *scale.Engine {
	t.Helper()
	e, err := scale.New(scale.DefaultConfig())
	require.NoError(t, err)
	return e
}

func TestCSS(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, CSS(newEngine(t), nil, &buf))
	out := buf.String()

	for _, bp := range []string{"mobile", "tablet", "desktop", "wide"} {
		assert.Contains(t, out, `[data-breakpoint="`+bp+`"]`)
	}
	assert.Contains(t, out, "--font-size:")
	assert.Contains(t, out, "--line-height:")
	assert.Contains(t, out, "px;")

	// Breakpoints come out ordered by width, narrowest first.
	assert.Less(t, strings.Index(out, `"mobile"`), strings.Index(out, `"wide"`))

	// At the base breakpoint the sample passes through untouched.
	assert.Contains(t, out, "--font-size: 16px;")
}

func TestCSSCustomSamples(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, CSS(newEngine(t), map[string]float64{"fontSize": 32}, &buf))
	assert.Contains(t, buf.String(), "--font-size: 32px;", "custom sample at base")
}

func TestChart(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Chart(newEngine(t), "fontSize", 16, &buf))
	out := buf.String()

	assert.Contains(t, out, "<svg")
	assert.Contains(t, out, "</svg>")
	assert.Contains(t, out, "polyline")
	assert.Contains(t, out, "fontSize across breakpoints")
	for _, bp := range []string{"mobile", "tablet", "desktop", "wide"} {
		assert.Contains(t, out, bp)
	}
}

func TestPropertyName(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"fontSize", "font-size"},
		{"lineHeight", "line-height"},
		{"spacing", "spacing"},
		{"XHeight", "x-height"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, PropertyName(tt.in))
	}
}
