package models

import "time"

// Action is the recommended position change for a symbol.
type Action int

const (
	ActionHold Action = iota
	ActionBuy
	ActionSell
	ActionStrongBuy
	ActionStrongSell
)

func (a Action) String() string {
	switch a {
	case ActionBuy:
		return "BUY"
	case ActionSell:
		return "SELL"
	case ActionStrongBuy:
		return "STRONG_BUY"
	case ActionStrongSell:
		return "STRONG_SELL"
	default:
		return "HOLD"
	}
}

// Long reports whether the action opens or adds to a long position.
func (a Action) Long() bool {
	return a == ActionBuy || a == ActionStrongBuy
}

// Short reports whether the action opens or adds to a short position.
func (a Action) Short() bool {
	return a == ActionSell || a == ActionStrongSell
}

// MarshalText renders the action name for JSON payloads.
func (a Action) MarshalText() ([]byte, error) {
	return []byte(a.String()), nil
}

// RiskLevel buckets a recommendation by signal strength.
type RiskLevel int

const (
	RiskHigh RiskLevel = iota
	RiskMedium
	RiskLow
)

func (r RiskLevel) String() string {
	switch r {
	case RiskLow:
		return "LOW"
	case RiskMedium:
		return "MEDIUM"
	default:
		return "HIGH"
	}
}

// MarshalText renders the risk level name for JSON payloads.
func (r RiskLevel) MarshalText() ([]byte, error) {
	return []byte(r.String()), nil
}

// Recommendation is one actionable, ranked output of a scan cycle.
// HOLD entries never appear in emitted lists.
type Recommendation struct {
	Symbol      string    `json:"symbol"`
	Action      Action    `json:"action"`
	Confidence  float64   `json:"confidence"` // 0..100
	ModelScore  float64   `json:"model_score"`
	EntryPrice  float64   `json:"entry_price"`
	StopLoss    float64   `json:"stop_loss"`
	TakeProfit  float64   `json:"take_profit"`
	Pattern     Pattern   `json:"pattern"`
	RiskLevel   RiskLevel `json:"risk_level"`
	Strength    float64   `json:"strength"` // 0..100
	Rationale   []string  `json:"rationale"`
	GeneratedAt time.Time `json:"generated_at"`
}
