package scale

import "math"

// goldenRatio is φ, used by the golden-ratio curve exponent 1/φ.
const goldenRatio = 1.618033988749895

// ApplyCurve transforms a ratio-scaled value through a named curve. The
// transform is a pure function of (value, ratio); the ratio, not the value,
// shapes the curve. Unknown and custom curve names pass the value through
// unchanged rather than erroring. Callers skip the curve step entirely for
// CurveLinear.
func ApplyCurve(curve Curve, value, ratio float64) float64 {
	switch curve {
	case CurveEaseIn:
		return value * math.Sqrt(ratio)
	case CurveEaseOut:
		return value * ratio * ratio
	case CurveEaseInOut:
		if ratio < 0.5 {
			return value * 2 * ratio * ratio
		}
		t := -2*ratio + 2
		return value * (1 - t*t/2)
	case CurveGoldenRatio:
		return value * math.Pow(ratio, 1/goldenRatio)
	default:
		return value
	}
}
