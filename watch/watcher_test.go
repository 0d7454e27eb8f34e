package watch

import (
	"os"
	"path/filepath"
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

func TestReloadAppliesNewConfig(t *testing.T) {
	e := newEngine(t)
	path := filepath.Join(t.TempDir(), "vpscale.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`base: wide
breakpoints:
  - name: wide
    width: 1920
    height: 1080
strategy:
  origin: area
`), 0o644))

	w, err := New(e, path, nil)
	require.NoError(t, err)
	defer w.Close()

	w.reload()
	assert.Equal(t, scale.OriginArea, e.Config().Strategy.Origin)
	assert.Len(t, e.Config().Breakpoints, 1)
}

func TestReloadKeepsPreviousOnBrokenConfig(t *testing.T) {
	e := newEngine(t)
	before := e.Config()

	path := filepath.Join(t.TempDir(), "vpscale.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`base: tv
breakpoints:
  - name: phone
    width: 390
    height: 844
`), 0o644))

	w, err := New(e, path, nil)
	require.NoError(t, err)
	defer w.Close()

	w.reload()
	assert.Equal(t, before.Base, e.Config().Base, "previous generation stays live")
	assert.Equal(t, before.Strategy.Origin, e.Config().Strategy.Origin)
}

func TestShouldReloadDebounces(t *testing.T) {
	e := newEngine(t)
	path := filepath.Join(t.TempDir(), "vpscale.yaml")
	require.NoError(t, os.WriteFile(path, []byte(""), 0o644))

	w, err := New(e, path, nil)
	require.NoError(t, err)
	defer w.Close()

	assert.True(t, w.shouldReload())
	assert.False(t, w.shouldReload(), "events inside the window coalesce")
}
