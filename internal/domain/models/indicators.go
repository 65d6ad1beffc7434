package models

// Pattern classifies the recent price structure of a symbol.
type Pattern int

const (
	PatternUnknown Pattern = iota
	PatternGoldenCross
	PatternDeathCross
	PatternBullFlag
	PatternBearFlag
	PatternAscendingTriangle
	PatternDescendingTriangle
	PatternConsolidation
)

func (p Pattern) String() string {
	switch p {
	case PatternGoldenCross:
		return "golden_cross"
	case PatternDeathCross:
		return "death_cross"
	case PatternBullFlag:
		return "bull_flag"
	case PatternBearFlag:
		return "bear_flag"
	case PatternAscendingTriangle:
		return "ascending_triangle"
	case PatternDescendingTriangle:
		return "descending_triangle"
	case PatternConsolidation:
		return "consolidation"
	default:
		return "unknown"
	}
}

// ParsePattern maps a pattern name back to its enum value.
// Unrecognized names map to PatternUnknown.
func ParsePattern(s string) Pattern {
	for p := PatternUnknown; p <= PatternConsolidation; p++ {
		if p.String() == s {
			return p
		}
	}
	return PatternUnknown
}

// Bullish reports whether the pattern reads long.
func (p Pattern) Bullish() bool {
	switch p {
	case PatternGoldenCross, PatternBullFlag, PatternAscendingTriangle:
		return true
	}
	return false
}

// Bearish reports whether the pattern reads short.
func (p Pattern) Bearish() bool {
	switch p {
	case PatternDeathCross, PatternBearFlag, PatternDescendingTriangle:
		return true
	}
	return false
}

// MarshalText renders the pattern name for JSON payloads.
func (p Pattern) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}

// UnmarshalText parses a pattern name.
func (p *Pattern) UnmarshalText(b []byte) error {
	*p = ParsePattern(string(b))
	return nil
}

// IndicatorSet is a per-symbol snapshot of computed technical
// indicators. Derived fresh every scoring cycle, never mutated in place.
type IndicatorSet struct {
	Symbol            string  `json:"symbol"`
	RSI               float64 `json:"rsi"`                // 0..100
	MACDHistogram     float64 `json:"macd_histogram"`     // signed
	BollingerPosition float64 `json:"bollinger_position"` // -1..1
	VolumeRatio       float64 `json:"volume_ratio"`       // >= 0
	Volatility        float64 `json:"volatility"`         // annualized, >= 0
	OptionsSignal     float64 `json:"options_signal"`     // -1..1
	PriceChangePct    float64 `json:"price_change_pct"`
	Pattern           Pattern `json:"pattern"`
}
