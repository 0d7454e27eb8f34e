// Package config loads and saves scaling configurations. Files are YAML by
// default; a .json extension switches to JSON. The file schema references
// the base breakpoint by name, so a config stays a single flat document.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"vpscale/scale"
)

const ConfigFileName = "vpscale.yaml"

// GetConfigDir returns the path to the application's configuration directory.
func GetConfigDir() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get config home directory: %w", err)
	}
	return filepath.Join(homeDir, ".vpscale"), nil
}

// DefaultPath returns the default config file location.
func DefaultPath() (string, error) {
	dir, err := GetConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, ConfigFileName), nil
}

// File is the on-disk schema of a scaling configuration.
type File struct {
	Base        string           `yaml:"base" json:"base"`
	Breakpoints []BreakpointSpec `yaml:"breakpoints" json:"breakpoints"`
	Strategy    StrategySpec     `yaml:"strategy" json:"strategy"`
}

// BreakpointSpec is one viewport descriptor.
type BreakpointSpec struct {
	Name   string            `yaml:"name" json:"name"`
	Width  float64           `yaml:"width" json:"width"`
	Height float64           `yaml:"height" json:"height"`
	Alias  string            `yaml:"alias,omitempty" json:"alias,omitempty"`
	Custom map[string]string `yaml:"custom,omitempty" json:"custom,omitempty"`
}

// TokenSpec is one token rule. File-based scales are always constant
// factors; ratio-dependent scale functions are code-only.
type TokenSpec struct {
	Scale      float64  `yaml:"scale" json:"scale"`
	Min        *float64 `yaml:"min,omitempty" json:"min,omitempty"`
	Max        *float64 `yaml:"max,omitempty" json:"max,omitempty"`
	Step       *float64 `yaml:"step,omitempty" json:"step,omitempty"`
	Curve      string   `yaml:"curve,omitempty" json:"curve,omitempty"`
	Unit       string   `yaml:"unit,omitempty" json:"unit,omitempty"`
	Precision  *int     `yaml:"precision,omitempty" json:"precision,omitempty"`
	Responsive bool     `yaml:"responsive,omitempty" json:"responsive,omitempty"`
}

// StrategySpec mirrors scale.Strategy with per-field defaults applied at
// load time.
type StrategySpec struct {
	Origin        string               `yaml:"origin,omitempty" json:"origin,omitempty"`
	Mode          string               `yaml:"mode,omitempty" json:"mode,omitempty"`
	Tokens        map[string]TokenSpec `yaml:"tokens,omitempty" json:"tokens,omitempty"`
	Rounding      *RoundingSpec        `yaml:"rounding,omitempty" json:"rounding,omitempty"`
	Accessibility *AccessibilitySpec   `yaml:"accessibility,omitempty" json:"accessibility,omitempty"`
	Cache         *bool                `yaml:"cache,omitempty" json:"cache,omitempty"`
}

type RoundingSpec struct {
	Mode      string `yaml:"mode,omitempty" json:"mode,omitempty"`
	Precision int    `yaml:"precision,omitempty" json:"precision,omitempty"`
}

type AccessibilitySpec struct {
	MinFontSize          float64 `yaml:"minFontSize,omitempty" json:"minFontSize,omitempty"`
	MinTapTarget         float64 `yaml:"minTapTarget,omitempty" json:"minTapTarget,omitempty"`
	ContrastPreservation bool    `yaml:"contrastPreservation,omitempty" json:"contrastPreservation,omitempty"`
}

// Load reads a configuration file and maps it onto a scale.Config. An empty
// path resolves to the default location; a missing file at the default
// location yields the built-in defaults.
func Load(path string) (scale.Config, error) {
	usingDefaultPath := path == ""
	if usingDefaultPath {
		var err error
		path, err = DefaultPath()
		if err != nil {
			return scale.Config{}, err
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) && usingDefaultPath {
			return scale.DefaultConfig(), nil
		}
		return scale.Config{}, fmt.Errorf("failed to read config: %w", err)
	}

	var f File
	if strings.EqualFold(filepath.Ext(path), ".json") {
		err = json.Unmarshal(data, &f)
	} else {
		err = yaml.Unmarshal(data, &f)
	}
	if err != nil {
		return scale.Config{}, fmt.Errorf("failed to parse config %s: %w", path, err)
	}

	cfg, err := f.ToScale()
	if err != nil {
		return scale.Config{}, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Save writes a configuration to path, creating parent directories as
// needed. The extension picks the format, same as Load.
func Save(cfg scale.Config, path string) error {
	f := FromScale(cfg)

	var (
		data []byte
		err  error
	)
	if strings.EqualFold(filepath.Ext(path), ".json") {
		data, err = json.MarshalIndent(f, "", "  ")
	} else {
		data, err = yaml.Marshal(f)
	}
	if err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}

// ToScale maps the file schema onto a scale.Config, filling defaults for
// omitted strategy fields and resolving the base reference. Structural
// validation is left to the engine.
func (f File) ToScale() (scale.Config, error) {
	breakpoints := f.Breakpoints
	baseName := f.Base
	if len(breakpoints) == 0 {
		def := scale.DefaultConfig()
		breakpoints = fromScaleBreakpoints(def.Breakpoints)
		if baseName == "" {
			baseName = def.Base.Name
		}
	}
	if baseName == "" {
		return scale.Config{}, fmt.Errorf("config names no base breakpoint")
	}

	var base *BreakpointSpec
	for i := range breakpoints {
		if breakpoints[i].Name == baseName || breakpoints[i].Alias == baseName {
			base = &breakpoints[i]
			break
		}
	}
	if base == nil {
		return scale.Config{}, fmt.Errorf("base breakpoint %q is not in the breakpoint list", baseName)
	}

	strategy := scale.Strategy{
		Origin: scale.Origin(defaultString(f.Strategy.Origin, string(scale.OriginWidth))),
		Mode:   scale.Mode(defaultString(f.Strategy.Mode, string(scale.ModeFluid))),
		Rounding: scale.Rounding{
			Mode:      scale.RoundNearest,
			Precision: 1,
		},
		Performance: scale.Performance{CacheEnabled: true},
	}
	if f.Strategy.Rounding != nil {
		strategy.Rounding.Mode = scale.RoundingMode(defaultString(f.Strategy.Rounding.Mode, string(scale.RoundNearest)))
		if f.Strategy.Rounding.Precision > 0 {
			strategy.Rounding.Precision = f.Strategy.Rounding.Precision
		}
	}
	if f.Strategy.Accessibility != nil {
		strategy.Accessibility = scale.Accessibility{
			MinFontSize:          f.Strategy.Accessibility.MinFontSize,
			MinTapTarget:         f.Strategy.Accessibility.MinTapTarget,
			ContrastPreservation: f.Strategy.Accessibility.ContrastPreservation,
		}
	}
	if f.Strategy.Cache != nil {
		strategy.Performance.CacheEnabled = *f.Strategy.Cache
	}

	if f.Strategy.Tokens == nil {
		strategy.Tokens = scale.DefaultTokens()
	} else {
		strategy.Tokens = make(map[string]scale.Token, len(f.Strategy.Tokens))
		for name, spec := range f.Strategy.Tokens {
			strategy.Tokens[name] = scale.Token{
				Scale:      scale.Factor(spec.Scale),
				Min:        spec.Min,
				Max:        spec.Max,
				Step:       spec.Step,
				Curve:      scale.Curve(spec.Curve),
				Unit:       spec.Unit,
				Precision:  spec.Precision,
				Responsive: spec.Responsive,
			}
		}
	}

	return scale.Config{
		Base:        toScaleBreakpoint(*base),
		Breakpoints: toScaleBreakpoints(breakpoints),
		Strategy:    strategy,
	}, nil
}

// FromScale maps a scale.Config back onto the file schema. Ratio-dependent
// scale functions serialize as their value at ratio 1.
func FromScale(cfg scale.Config) File {
	f := File{
		Base:        cfg.Base.Name,
		Breakpoints: fromScaleBreakpoints(cfg.Breakpoints),
		Strategy: StrategySpec{
			Origin: string(cfg.Strategy.Origin),
			Mode:   string(cfg.Strategy.Mode),
			Rounding: &RoundingSpec{
				Mode:      string(cfg.Strategy.Rounding.Mode),
				Precision: cfg.Strategy.Rounding.Precision,
			},
			Accessibility: &AccessibilitySpec{
				MinFontSize:          cfg.Strategy.Accessibility.MinFontSize,
				MinTapTarget:         cfg.Strategy.Accessibility.MinTapTarget,
				ContrastPreservation: cfg.Strategy.Accessibility.ContrastPreservation,
			},
			Cache: &cfg.Strategy.Performance.CacheEnabled,
		},
	}
	if cfg.Strategy.Tokens != nil {
		f.Strategy.Tokens = make(map[string]TokenSpec, len(cfg.Strategy.Tokens))
		for name, tok := range cfg.Strategy.Tokens {
			f.Strategy.Tokens[name] = TokenSpec{
				Scale:      tok.Scale.Resolve(1),
				Min:        tok.Min,
				Max:        tok.Max,
				Step:       tok.Step,
				Curve:      string(tok.Curve),
				Unit:       tok.Unit,
				Precision:  tok.Precision,
				Responsive: tok.Responsive,
			}
		}
	}
	return f
}

func toScaleBreakpoint(spec BreakpointSpec) scale.Breakpoint {
	return scale.Breakpoint{
		Name:   spec.Name,
		Width:  spec.Width,
		Height: spec.Height,
		Alias:  spec.Alias,
		Custom: spec.Custom,
	}
}

func toScaleBreakpoints(specs []BreakpointSpec) []scale.Breakpoint {
	out := make([]scale.Breakpoint, len(specs))
	for i, spec := range specs {
		out[i] = toScaleBreakpoint(spec)
	}
	return out
}

func fromScaleBreakpoints(bps []scale.Breakpoint) []BreakpointSpec {
	out := make([]BreakpointSpec, len(bps))
	for i, bp := range bps {
		out[i] = BreakpointSpec{
			Name:   bp.Name,
			Width:  bp.Width,
			Height: bp.Height,
			Alias:  bp.Alias,
			Custom: bp.Custom,
		}
	}
	return out
}

func defaultString(v, def string) string {
	if v == "" {
		return def
	}
	return v
}
