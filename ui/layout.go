package ui

// Width breakpoints for the preview's own rendering. The preview degrades
// the same way the values it displays do: fewer columns as width shrinks.
const (
	// MinWidth is the absolute minimum terminal width.
	MinWidth = 40

	// CompactWidth triggers compact rendering (constraint column dropped).
	CompactWidth = 64

	// FullWidth shows all columns with generous spacing.
	FullWidth = 90
)

// Column constraints
const (
	nameColMin = 10
	nameColMax = 20
	valueCol   = 12
)

// DisplayMode selects how much detail the preview renders.
type DisplayMode int

const (
	// DisplayFull shows name, sample, scaled value, and constraints.
	DisplayFull DisplayMode = iota

	// DisplayCompact drops the constraint column.
	DisplayCompact

	// DisplayMinimal shows name and scaled value only.
	DisplayMinimal
)

// String returns the string representation of the display mode.
func (m DisplayMode) String() string {
	switch m {
	case DisplayFull:
		return "full"
	case DisplayCompact:
		return "compact"
	case DisplayMinimal:
		return "minimal"
	default:
		return "unknown"
	}
}

// DetermineDisplayMode picks the rendering mode for a terminal width.
func DetermineDisplayMode(width int) DisplayMode {
	switch {
	case width >= FullWidth:
		return DisplayFull
	case width >= CompactWidth:
		return DisplayCompact
	default:
		return DisplayMinimal
	}
}

// nameColumnWidth sizes the token-name column from the total width.
func nameColumnWidth(totalWidth int) int {
	computed := totalWidth / 4
	return clamp(computed, nameColMin, nameColMax)
}

func clamp(value, minVal, maxVal int) int {
	if value < minVal {
		return minVal
	}
	if value > maxVal {
		return maxVal
	}
	return value
}
