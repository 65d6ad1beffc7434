package models

// Requests for the scoring HTTP endpoints. Defined in domain for consistency and reuse.

type QuotesRequest struct {
	Symbols string `query:"symbols" json:"symbols" validate:"required"`
}

type IndicatorsRequest struct {
	Symbol string `param:"symbol" json:"symbol" validate:"required"`
}

type RecordTradeRequest struct {
	Symbol   string             `json:"symbol" validate:"required"`
	Profit   float64            `json:"profit"`
	Pattern  string             `json:"pattern" default:"unknown"`
	Features map[string]float64 `json:"features"`
}
