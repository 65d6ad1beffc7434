package service

import "MarketPulse/internal/domain/models"

// Predictor is the trainable path of the scoring engine: a weighted
// linear model with sigmoid output and single-sample online updates.
type Predictor interface {
	Predict(features map[string]float64) float64
	Train(features map[string]float64, target float64)
}

// ConfidenceScorer is the deterministic heuristic path. It is kept
// separate from Predictor on purpose: the two are independently
// testable and are not required to agree.
type ConfidenceScorer interface {
	Confidence(ind models.IndicatorSet) float64
}
