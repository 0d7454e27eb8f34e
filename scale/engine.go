package scale

import (
	"fmt"
	"log/slog"
	"math"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/sahilm/fuzzy"
)

// Engine owns one configuration generation plus the mutable state derived
// from it: the ratio table, the result cache, and the running metrics. All
// state is private to the instance and guarded by a single lock, so a
// config replacement is atomic from the point of view of readers.
type Engine struct {
	mu      sync.RWMutex
	cfg     Config
	ratios  map[string]float64
	cache   *resultCache
	metrics metricsState
	logger  *slog.Logger
}

// Option configures an Engine at construction time.
type Option func(*Engine)

// WithLogger sets the logger used for non-fatal degradation warnings.
func WithLogger(l *slog.Logger) Option {
	return func(e *Engine) { e.logger = l }
}

// New validates cfg, precomputes the ratio table, and returns an engine
// ready to serve scale requests for every configured breakpoint.
func New(cfg Config, opts ...Option) (*Engine, error) {
	e := &Engine{
		cache:  newResultCache(),
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(e)
	}
	if err := e.install(cfg); err != nil {
		return nil, err
	}
	return e, nil
}

// install validates and swaps in a configuration. Callers hold no lock; the
// swap itself takes the write lock so readers never observe a half-applied
// generation.
func (e *Engine) install(cfg Config) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	cfg = cfg.clone()
	ratios, err := buildRatioTable(cfg)
	if err != nil {
		return err
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	e.cfg = cfg
	e.ratios = ratios
	e.cache.clear()
	e.metrics.syncMemory(0)
	return nil
}

// UpdateConfig replaces the configuration wholesale: the ratio table is
// rebuilt, the cache is emptied, and the memory estimate drops to zero.
// Operation counters survive the replacement.
func (e *Engine) UpdateConfig(cfg Config) error {
	return e.install(cfg)
}

// ScaleValue derives the equivalent of value at the target breakpoint.
//
// With no token option the result is value multiplied by the breakpoint's
// precomputed ratio. A token runs the full pipeline in fixed order: scale
// factor, curve, min clamp, max clamp, step quantization, precision
// rounding. An unknown token name degrades to ratio-only scaling with a
// logged warning; a breakpoint outside the configuration is a contract
// violation and returns ErrInvalidBreakpoint.
func (e *Engine) ScaleValue(value float64, target Breakpoint, opts Options) (ScaledValue, error) {
	key := cacheKey(value, target.Name, opts)

	e.mu.Lock()
	defer e.mu.Unlock()

	useCache := e.cfg.Strategy.Performance.CacheEnabled && !opts.BypassCache
	if useCache {
		if cached, ok := e.cache.get(key); ok {
			cached.Performance.CacheHit = true
			e.metrics.recordHit(e.cache.len())
			return cached, nil
		}
	}

	start := time.Now()

	ratio, ok := e.ratios[ratioKey(e.cfg.Base.Name, target.Name)]
	if !ok {
		return ScaledValue{}, fmt.Errorf("%w: %q has no precomputed ratio", ErrInvalidBreakpoint, target.Name)
	}

	scaled := value * ratio
	var cons Constraints
	switch {
	case target.Name == e.cfg.Base.Name:
		// Scaling at the base is an identity operation regardless of
		// token rules.
		scaled = value
	case opts.Token == "":
		// Ratio-only scaling, no pipeline.
	default:
		tok, found := e.cfg.Strategy.Tokens[opts.Token]
		if !found {
			e.warnUnknownToken(opts.Token)
		} else {
			scaled, cons = e.runPipeline(scaled, ratio, tok, opts)
		}
	}

	if math.IsNaN(scaled) || math.IsInf(scaled, 0) {
		return ScaledValue{}, fmt.Errorf("%w: non-finite result for value %g at %q",
			ErrScalingFailed, value, target.Name)
	}

	result := ScaledValue{
		Original:    value,
		Scaled:      scaled,
		Breakpoint:  target,
		Ratio:       ratio,
		Constraints: cons,
		Performance: PerformanceInfo{ComputationTime: time.Since(start)},
	}

	if useCache {
		e.cache.set(key, result)
	}
	e.metrics.recordMiss(result.Performance.ComputationTime, e.cache.len())
	return result, nil
}

// runPipeline applies a token's rule chain to an already ratio-scaled
// value. Order is fixed: scale factor, curve, floor, ceiling, step,
// precision. Binding constraints are detected afterwards by exact equality
// against the final value.
func (e *Engine) runPipeline(value, ratio float64, tok Token, opts Options) (float64, Constraints) {
	v := value

	if opts.Scale != nil {
		v *= *opts.Scale
	} else {
		v *= tok.Scale.Resolve(ratio)
	}

	if tok.Curve != "" && tok.Curve != CurveLinear {
		v = ApplyCurve(tok.Curve, v, ratio)
	}

	// Floor before ceiling: with inconsistent bounds the ceiling wins.
	min := firstOf(opts.Min, tok.Min)
	max := firstOf(opts.Max, tok.Max)
	if min != nil && v < *min {
		v = *min
	}
	if max != nil && v > *max {
		v = *max
	}

	step := firstOf(opts.Step, tok.Step)
	if step != nil && *step > 0 {
		v = math.Round(v / *step) * (*step)
	}

	v = roundToPrecision(v, e.effectivePrecision(tok), e.cfg.Strategy.Rounding.Mode)

	// Equality-based detection cannot distinguish a clamped value from one
	// that landed on the bound naturally; that ambiguity is kept as is.
	var cons Constraints
	if min != nil && v == *min {
		cons.MinApplied = true
	}
	if max != nil && v == *max {
		cons.MaxApplied = true
	}
	if step != nil && *step > 0 && v == math.Round(v / *step)*(*step) {
		cons.StepApplied = true
	}
	return v, cons
}

// effectivePrecision resolves a token's rounding precision: the token's own
// value, else the strategy default, else one decimal digit.
func (e *Engine) effectivePrecision(tok Token) int {
	if tok.Precision != nil {
		return *tok.Precision
	}
	if e.cfg.Strategy.Rounding.Precision > 0 {
		return e.cfg.Strategy.Rounding.Precision
	}
	return 1
}

func roundToPrecision(v float64, digits int, mode RoundingMode) float64 {
	pow := math.Pow(10, float64(digits))
	switch mode {
	case RoundFloor:
		return math.Floor(v*pow) / pow
	case RoundCeil:
		return math.Ceil(v*pow) / pow
	default:
		return math.Round(v*pow) / pow
	}
}

// warnUnknownToken logs the non-fatal unknown-token degradation, with a
// fuzzy-matched suggestion when one of the configured names is close.
func (e *Engine) warnUnknownToken(name string) {
	names := make([]string, 0, len(e.cfg.Strategy.Tokens))
	for n := range e.cfg.Strategy.Tokens {
		names = append(names, n)
	}
	sort.Strings(names)
	if matches := fuzzy.Find(name, names); len(matches) > 0 {
		e.logger.Warn("unknown scaling token, falling back to ratio-only scaling",
			"token", name, "didYouMean", matches[0].Str)
		return
	}
	e.logger.Warn("unknown scaling token, falling back to ratio-only scaling", "token", name)
}

// ClearCache empties the result cache and resets the memory estimate.
// Operation counters and the hit rate are untouched.
func (e *Engine) ClearCache() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.cache.clear()
	e.metrics.syncMemory(0)
}

// InvalidateCache removes cached results whose key contains pattern, e.g. a
// breakpoint name. An empty pattern clears everything.
func (e *Engine) InvalidateCache(pattern string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.cache.invalidate(pattern)
	e.metrics.syncMemory(e.cache.len())
}

// Metrics returns a snapshot copy of the running performance counters.
func (e *Engine) Metrics() Metrics {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.metrics.snapshot()
}

// Config returns a copy of the active configuration.
func (e *Engine) Config() Config {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.cfg.clone()
}

// LookupBreakpoint resolves a configured breakpoint by name or alias.
func (e *Engine) LookupBreakpoint(name string) (Breakpoint, bool) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	for _, bp := range e.cfg.Breakpoints {
		if bp.Name == name || (bp.Alias != "" && bp.Alias == name) {
			return bp, true
		}
	}
	return Breakpoint{}, false
}

// Ratio returns the precomputed scaling ratio for a configured breakpoint.
func (e *Engine) Ratio(target Breakpoint) (float64, error) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	ratio, ok := e.ratios[ratioKey(e.cfg.Base.Name, target.Name)]
	if !ok {
		return 0, fmt.Errorf("%w: %q has no precomputed ratio", ErrInvalidBreakpoint, target.Name)
	}
	return ratio, nil
}

// TokenNames returns the configured token names in sorted order.
func (e *Engine) TokenNames() []string {
	e.mu.RLock()
	defer e.mu.RUnlock()
	names := make([]string, 0, len(e.cfg.Strategy.Tokens))
	for n := range e.cfg.Strategy.Tokens {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// cacheKey encodes a request as the ordered tuple
// (value, breakpoint, token, scale, min, max, step), with "default"
// standing in for unset options. Keys are plain strings so substring
// invalidation by breakpoint name works.
func cacheKey(value float64, breakpoint string, opts Options) string {
	parts := []string{
		strconv.FormatFloat(value, 'g', -1, 64),
		breakpoint,
		orDefault(opts.Token),
		floatOrDefault(opts.Scale),
		floatOrDefault(opts.Min),
		floatOrDefault(opts.Max),
		floatOrDefault(opts.Step),
	}
	return strings.Join(parts, ":")
}

func orDefault(s string) string {
	if s == "" {
		return "default"
	}
	return s
}

func floatOrDefault(f *float64) string {
	if f == nil {
		return "default"
	}
	return strconv.FormatFloat(*f, 'g', -1, 64)
}

func firstOf(values ...*float64) *float64 {
	for _, v := range values {
		if v != nil {
			return v
		}
	}
	return nil
}
