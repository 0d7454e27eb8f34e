package scale

import (
	"fmt"
	"time"
)

// Origin selects which dimension of a breakpoint drives the scaling ratio.
type Origin string

const (
	OriginWidth    Origin = "width"
	OriginHeight   Origin = "height"
	OriginMin      Origin = "min"
	OriginMax      Origin = "max"
	OriginDiagonal Origin = "diagonal"
	OriginArea     Origin = "area"
)

func (o Origin) valid() bool {
	switch o {
	case OriginWidth, OriginHeight, OriginMin, OriginMax, OriginDiagonal, OriginArea:
		return true
	}
	return false
}

// Mode describes the overall scaling behavior of a strategy.
type Mode string

const (
	// ModeFluid scales continuously with the ratio.
	ModeFluid Mode = "fluid"
	// ModeStepped favors quantized values (tokens typically carry a step).
	ModeStepped Mode = "stepped"
	// ModeAdaptive mixes fluid and stepped behavior per token.
	ModeAdaptive Mode = "adaptive"
)

func (m Mode) valid() bool {
	switch m {
	case ModeFluid, ModeStepped, ModeAdaptive:
		return true
	}
	return false
}

// Curve names a non-linear transform applied after the scale factor.
type Curve string

const (
	CurveLinear      Curve = "linear"
	CurveEaseIn      Curve = "ease-in"
	CurveEaseOut     Curve = "ease-out"
	CurveEaseInOut   Curve = "ease-in-out"
	CurveGoldenRatio Curve = "golden-ratio"
	CurveCustom      Curve = "custom"
)

// RoundingMode selects the rounding function used by precision rounding.
type RoundingMode string

const (
	RoundNearest RoundingMode = "round"
	RoundFloor   RoundingMode = "floor"
	RoundCeil    RoundingMode = "ceil"
)

func (m RoundingMode) valid() bool {
	switch m {
	case RoundNearest, RoundFloor, RoundCeil, "":
		return true
	}
	return false
}

// Breakpoint is a named viewport descriptor. Breakpoints are treated as
// immutable once part of a configuration.
type Breakpoint struct {
	Name   string            `json:"name"`
	Width  float64           `json:"width"`
	Height float64           `json:"height"`
	Alias  string            `json:"alias,omitempty"`
	Custom map[string]string `json:"custom,omitempty"`
}

// Scale is a token's scale factor: either a constant multiplier or a pure
// function of the breakpoint ratio. The zero value resolves to a neutral
// multiplier of 1.
type Scale struct {
	factor float64
	fn     func(ratio float64) float64
}

// Factor returns a constant scale.
func Factor(f float64) Scale { return Scale{factor: f} }

// RatioFunc returns a ratio-dependent scale. The function must be a pure,
// deterministic function of its argument.
func RatioFunc(fn func(ratio float64) float64) Scale { return Scale{fn: fn} }

// IsFunc reports whether the scale is ratio-dependent.
func (s Scale) IsFunc() bool { return s.fn != nil }

// Resolve returns the effective multiplier for ratio.
func (s Scale) Resolve(ratio float64) float64 {
	if s.fn != nil {
		return s.fn(ratio)
	}
	if s.factor == 0 {
		return 1
	}
	return s.factor
}

// Token is the scaling rule for one class of design value (font size,
// spacing, radius, ...). Nil bounds, step, and precision mean "not set".
type Token struct {
	Scale      Scale
	Min        *float64
	Max        *float64
	Step       *float64
	Curve      Curve
	Unit       string
	Precision  *int
	Responsive bool
}

// Rounding configures precision rounding for tokens that do not set their
// own precision.
type Rounding struct {
	Mode      RoundingMode `json:"mode"`
	Precision int          `json:"precision"`
}

// Accessibility carries minimum-size floors. The scaling pipeline does not
// consult these; they are configuration the binding layer reads back.
type Accessibility struct {
	MinFontSize          float64 `json:"minFontSize"`
	MinTapTarget         float64 `json:"minTapTarget"`
	ContrastPreservation bool    `json:"contrastPreservation"`
}

// Performance holds engine-level performance switches.
type Performance struct {
	// CacheEnabled gates result memoization. Disabled, every request
	// behaves as if bypassCache were set.
	CacheEnabled bool `json:"cacheEnabled"`
}

// Strategy bundles the scaling rules of a configuration.
type Strategy struct {
	Origin        Origin
	Mode          Mode
	Tokens        map[string]Token
	Rounding      Rounding
	Accessibility Accessibility
	Performance   Performance
}

// Config is a full scaling configuration: a base breakpoint, the breakpoint
// set (which must contain the base), and a strategy.
type Config struct {
	Base        Breakpoint
	Breakpoints []Breakpoint
	Strategy    Strategy
}

// Validate checks the structural invariants of the configuration: positive
// dimensions, unique breakpoint names, base membership, and known enum
// values. All violations wrap ErrInvalidConfig.
func (c Config) Validate() error {
	if c.Base.Name == "" {
		return fmt.Errorf("%w: base breakpoint has no name", ErrInvalidConfig)
	}
	if len(c.Breakpoints) == 0 {
		return fmt.Errorf("%w: no breakpoints configured", ErrInvalidConfig)
	}
	seen := make(map[string]struct{}, len(c.Breakpoints))
	baseFound := false
	for _, bp := range append([]Breakpoint{c.Base}, c.Breakpoints...) {
		if bp.Width <= 0 || bp.Height <= 0 {
			return fmt.Errorf("%w: breakpoint %q has non-positive dimensions %gx%g",
				ErrInvalidConfig, bp.Name, bp.Width, bp.Height)
		}
	}
	for _, bp := range c.Breakpoints {
		if bp.Name == "" {
			return fmt.Errorf("%w: breakpoint with empty name", ErrInvalidConfig)
		}
		if _, dup := seen[bp.Name]; dup {
			return fmt.Errorf("%w: duplicate breakpoint name %q", ErrInvalidConfig, bp.Name)
		}
		seen[bp.Name] = struct{}{}
		if bp.Name == c.Base.Name || (bp.Alias != "" && bp.Alias == c.Base.Alias) {
			baseFound = true
		}
	}
	if !baseFound {
		return fmt.Errorf("%w: base breakpoint %q is not in the breakpoint list",
			ErrInvalidConfig, c.Base.Name)
	}
	if !c.Strategy.Origin.valid() {
		return fmt.Errorf("%w: unknown scaling origin %q", ErrInvalidConfig, c.Strategy.Origin)
	}
	if !c.Strategy.Mode.valid() {
		return fmt.Errorf("%w: unknown scaling mode %q", ErrInvalidConfig, c.Strategy.Mode)
	}
	if !c.Strategy.Rounding.Mode.valid() {
		return fmt.Errorf("%w: unknown rounding mode %q", ErrInvalidConfig, c.Strategy.Rounding.Mode)
	}
	if c.Strategy.Accessibility.MinFontSize < 0 || c.Strategy.Accessibility.MinTapTarget < 0 {
		return fmt.Errorf("%w: negative accessibility floor", ErrInvalidConfig)
	}
	return nil
}

// clone returns a copy of the configuration with its own breakpoint slice
// and token map, so callers can hold it without aliasing engine state.
func (c Config) clone() Config {
	out := c
	out.Breakpoints = append([]Breakpoint(nil), c.Breakpoints...)
	if c.Strategy.Tokens != nil {
		tokens := make(map[string]Token, len(c.Strategy.Tokens))
		for name, tok := range c.Strategy.Tokens {
			tokens[name] = tok
		}
		out.Strategy.Tokens = tokens
	}
	return out
}

// Constraints reports which pipeline constraints were binding for a result.
// Detection is by exact equality between the final value and the bound (or
// the nearest step multiple), so a value that lands on a bound naturally is
// indistinguishable from a clamped one.
type Constraints struct {
	MinApplied  bool `json:"minApplied"`
	MaxApplied  bool `json:"maxApplied"`
	StepApplied bool `json:"stepApplied"`
}

// PerformanceInfo describes how a single result was produced.
type PerformanceInfo struct {
	ComputationTime time.Duration `json:"computationTime"`
	CacheHit        bool          `json:"cacheHit"`
}

// ScaledValue is the result record of one scale request.
type ScaledValue struct {
	Original    float64         `json:"original"`
	Scaled      float64         `json:"scaled"`
	Breakpoint  Breakpoint      `json:"targetBreakpoint"`
	Ratio       float64         `json:"ratio"`
	Constraints Constraints     `json:"constraints"`
	Performance PerformanceInfo `json:"performance"`
}

// Options are the per-request knobs of ScaleValue. Nil numeric fields fall
// back to the token's values; an empty Token means ratio-only scaling.
type Options struct {
	Token       string
	Scale       *float64
	Min         *float64
	Max         *float64
	Step        *float64
	BypassCache bool
}
