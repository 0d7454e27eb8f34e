package scale

import (
	"fmt"
	"math"
)

// ratioKey builds the ratio-table key for a base/target pair.
func ratioKey(base, target string) string {
	return base + "-" + target
}

// buildRatioTable precomputes the scaling ratio of every breakpoint against
// the base under the strategy's origin. The table is rebuilt wholesale on
// every configuration replacement and never mutated in place.
func buildRatioTable(cfg Config) (map[string]float64, error) {
	table := make(map[string]float64, len(cfg.Breakpoints))
	for _, bp := range cfg.Breakpoints {
		ratio, err := originRatio(cfg.Strategy.Origin, cfg.Base, bp)
		if err != nil {
			return nil, err
		}
		table[ratioKey(cfg.Base.Name, bp.Name)] = ratio
	}
	return table, nil
}

// originRatio relates target to base under the given origin dimension.
func originRatio(origin Origin, base, target Breakpoint) (float64, error) {
	switch origin {
	case OriginWidth:
		return target.Width / base.Width, nil
	case OriginHeight:
		return target.Height / base.Height, nil
	case OriginMin:
		return math.Min(target.Width, target.Height) / math.Min(base.Width, base.Height), nil
	case OriginMax:
		return math.Max(target.Width, target.Height) / math.Max(base.Width, base.Height), nil
	case OriginDiagonal:
		return math.Hypot(target.Width, target.Height) / math.Hypot(base.Width, base.Height), nil
	case OriginArea:
		return (target.Width * target.Height) / (base.Width * base.Height), nil
	default:
		return 0, fmt.Errorf("%w: unknown scaling origin %q", ErrInvalidConfig, origin)
	}
}
