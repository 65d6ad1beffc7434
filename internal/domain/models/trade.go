package models

import "time"

// Trade is a closed (executed or simulated) position outcome reported
// back by an execution collaborator.
type Trade struct {
	Symbol   string             `json:"symbol"`
	Features map[string]float64 `json:"features"`
	Profit   float64            `json:"profit"`
	Pattern  Pattern            `json:"pattern"`
	ClosedAt time.Time          `json:"closed_at"`
}

// PatternStat summarizes realized outcomes for one chart pattern.
type PatternStat struct {
	Wins  int `json:"wins"`
	Total int `json:"total"`
}

// PerformanceMetrics is derived from the bounded trade log.
type PerformanceMetrics struct {
	TotalTrades  int                    `json:"total_trades"`
	WinRate      float64                `json:"win_rate"`      // percent
	ProfitFactor float64                `json:"profit_factor"` // avg win / avg loss
	SharpeRatio  float64                `json:"sharpe_ratio"`
	MaxDrawdown  float64                `json:"max_drawdown"` // percent decline from peak
	Patterns     map[string]PatternStat `json:"patterns"`
}
