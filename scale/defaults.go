package scale

// Default configuration: four device-class breakpoints with a desktop-wide
// base, and a token set covering the common design-value classes.

// DefaultBreakpoints returns the built-in breakpoint set.
func DefaultBreakpoints() []Breakpoint {
	return []Breakpoint{
		{Name: "mobile", Width: 390, Height: 844, Alias: "sm"},
		{Name: "tablet", Width: 768, Height: 1024, Alias: "md"},
		{Name: "desktop", Width: 1440, Height: 900, Alias: "lg"},
		{Name: "wide", Width: 1920, Height: 1080, Alias: "xl"},
	}
}

// DefaultTokens returns the built-in token rules.
func DefaultTokens() map[string]Token {
	return map[string]Token{
		"fontSize": {
			Scale:      Factor(0.85),
			Min:        ptr(12.0),
			Max:        ptr(48.0),
			Unit:       "px",
			Precision:  ptrInt(1),
			Responsive: true,
		},
		"spacing": {
			Scale:      Factor(0.9),
			Min:        ptr(2.0),
			Step:       ptr(2.0),
			Unit:       "px",
			Precision:  ptrInt(0),
			Responsive: true,
		},
		"radius": {
			Scale:     Factor(0.95),
			Min:       ptr(2.0),
			Max:       ptr(24.0),
			Unit:      "px",
			Precision: ptrInt(1),
		},
		"iconSize": {
			Scale:     Factor(1),
			Min:       ptr(16.0),
			Max:       ptr(64.0),
			Step:      ptr(4.0),
			Unit:      "px",
			Precision: ptrInt(0),
		},
		"lineHeight": {
			Scale:     Factor(0.95),
			Min:       ptr(1.2),
			Max:       ptr(2.0),
			Curve:     CurveEaseOut,
			Precision: ptrInt(2),
		},
	}
}

// DefaultConfig returns a ready-to-use configuration with the wide
// breakpoint as base.
func DefaultConfig() Config {
	breakpoints := DefaultBreakpoints()
	return Config{
		Base:        breakpoints[len(breakpoints)-1],
		Breakpoints: breakpoints,
		Strategy: Strategy{
			Origin: OriginWidth,
			Mode:   ModeFluid,
			Tokens: DefaultTokens(),
			Rounding: Rounding{
				Mode:      RoundNearest,
				Precision: 1,
			},
			Accessibility: Accessibility{
				MinFontSize:          12,
				MinTapTarget:         44,
				ContrastPreservation: true,
			},
			Performance: Performance{CacheEnabled: true},
		},
	}
}

func ptr(v float64) *float64 { return &v }

func ptrInt(v int) *int { return &v }
