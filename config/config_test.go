package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"vpscale/scale"
)

const sampleYAML = `base: desktop
breakpoints:
  - name: phone
    width: 390
    height: 844
    alias: sm
  - name: desktop
    width: 1920
    height: 1080
strategy:
  origin: diagonal
  tokens:
    fontSize:
      scale: 0.85
      min: 12
      max: 48
      unit: px
    spacing:
      scale: 0.9
      step: 2
      curve: ease-in
  rounding:
    mode: floor
    precision: 2
  cache: false
`

func writeTemp(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadYAML(t *testing.T) {
	cfg, err := Load(writeTemp(t, "vpscale.yaml", sampleYAML))
	require.NoError(t, err)
	require.NoError(t, cfg.Validate())

	assert.Equal(t, "desktop", cfg.Base.Name)
	assert.Len(t, cfg.Breakpoints, 2)
	assert.Equal(t, scale.OriginDiagonal, cfg.Strategy.Origin)
	assert.Equal(t, scale.ModeFluid, cfg.Strategy.Mode, "mode defaults when omitted")
	assert.Equal(t, scale.RoundFloor, cfg.Strategy.Rounding.Mode)
	assert.Equal(t, 2, cfg.Strategy.Rounding.Precision)
	assert.False(t, cfg.Strategy.Performance.CacheEnabled)

	font, ok := cfg.Strategy.Tokens["fontSize"]
	require.True(t, ok)
	assert.Equal(t, 0.85, font.Scale.Resolve(0.4))
	require.NotNil(t, font.Min)
	assert.Equal(t, 12.0, *font.Min)
	assert.Equal(t, "px", font.Unit)

	spacing := cfg.Strategy.Tokens["spacing"]
	assert.Equal(t, scale.CurveEaseIn, spacing.Curve)
}

func TestLoadJSON(t *testing.T) {
	path := writeTemp(t, "vpscale.json", `{
  "base": "sm",
  "breakpoints": [
    {"name": "phone", "width": 390, "height": 844, "alias": "sm"}
  ]
}`)
	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "phone", cfg.Base.Name, "base resolves through alias")
	assert.Equal(t, scale.OriginWidth, cfg.Strategy.Origin)
	assert.NotEmpty(t, cfg.Strategy.Tokens, "omitted tokens fall back to defaults")
}

func TestLoadBaseMissing(t *testing.T) {
	path := writeTemp(t, "vpscale.yaml", `base: tv
breakpoints:
  - name: phone
    width: 390
    height: 844
`)
	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "tv")
}

func TestLoadMissingExplicitPath(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err, "an explicitly named missing file is an error")
}

func TestLoadEmptyFileUsesDefaults(t *testing.T) {
	cfg, err := Load(writeTemp(t, "vpscale.yaml", ""))
	require.NoError(t, err)
	require.NoError(t, cfg.Validate())
	assert.Equal(t, "wide", cfg.Base.Name)
	assert.Len(t, cfg.Breakpoints, 4)
}

func TestSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out", "vpscale.yaml")
	original := scale.DefaultConfig()
	require.NoError(t, Save(original, path))

	loaded, err := Load(path)
	require.NoError(t, err)
	require.NoError(t, loaded.Validate())

	assert.Equal(t, original.Base, loaded.Base)
	assert.Equal(t, original.Breakpoints, loaded.Breakpoints)
	assert.Equal(t, original.Strategy.Origin, loaded.Strategy.Origin)
	assert.Equal(t, len(original.Strategy.Tokens), len(loaded.Strategy.Tokens))

	origFont := original.Strategy.Tokens["fontSize"]
	loadedFont := loaded.Strategy.Tokens["fontSize"]
	assert.Equal(t, origFont.Scale.Resolve(0.5), loadedFont.Scale.Resolve(0.5))
	assert.Equal(t, *origFont.Min, *loadedFont.Min)
	assert.Equal(t, *origFont.Max, *loadedFont.Max)
}
