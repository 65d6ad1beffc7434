package models

import "time"

// ContractType distinguishes call and put contracts.
type ContractType string

const (
	ContractCall ContractType = "CALL"
	ContractPut  ContractType = "PUT"
)

// FlowSentiment tags an options flow entry with its directional read.
type FlowSentiment string

const (
	SentimentBullish FlowSentiment = "BULLISH"
	SentimentBearish FlowSentiment = "BEARISH"
	SentimentNeutral FlowSentiment = "NEUTRAL"
)

// OptionsFlowEntry is a single normalized options flow record.
type OptionsFlowEntry struct {
	Symbol    string        `json:"symbol"`
	Contract  ContractType  `json:"contract"`
	Strike    float64       `json:"strike"`
	Expiry    time.Time     `json:"expiry"`
	Premium   float64       `json:"premium"`
	Volume    float64       `json:"volume"`
	Sentiment FlowSentiment `json:"sentiment"`
}
