package scoring

import (
	"encoding/json"
	"fmt"
	"math"
	"sync"

	"MarketPulse/internal/domain/models"
	domsvc "MarketPulse/internal/domain/service"
)

// Feature keys shared by the model defaults and FeatureVector. Weights
// and previous gradients always carry exactly this key set.
var featureKeys = []string{
	"rsi",
	"macd",
	"bollinger",
	"volume_ratio",
	"volatility",
	"options_signal",
}

// Model is a weighted linear model with sigmoid output and a
// single-sample online gradient update with one-step momentum.
// Train is serialized; Predict takes a read lock so it never observes a
// torn weight vector.
type Model struct {
	mu       sync.RWMutex
	weights  map[string]float64
	bias     float64
	lr       float64
	momentum float64
	prevGrad map[string]float64
}

// State is the serialized form persisted across sessions.
type State struct {
	Weights       map[string]float64 `json:"weights"`
	Bias          float64            `json:"bias"`
	LearningRate  float64            `json:"learning_rate"`
	Momentum      float64            `json:"momentum"`
	PrevGradients map[string]float64 `json:"prev_gradients"`
}

// NewModel creates a model with default weights.
func NewModel(learningRate, momentum float64) *Model {
	if learningRate <= 0 {
		learningRate = 0.01
	}
	if momentum < 0 {
		momentum = 0
	}
	m := &Model{
		lr:       learningRate,
		momentum: momentum,
		weights:  make(map[string]float64, len(featureKeys)),
		prevGrad: make(map[string]float64, len(featureKeys)),
	}
	for _, k := range featureKeys {
		m.weights[k] = 0.1
		m.prevGrad[k] = 0
	}
	return m
}

// Predict returns sigmoid(bias + sum(weight*feature)) in (0, 1).
// Feature keys without a matching weight are ignored.
func (m *Model) Predict(features map[string]float64) float64 {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.predictLocked(features)
}

func (m *Model) predictLocked(features map[string]float64) float64 {
	z := m.bias
	for k, v := range features {
		if w, ok := m.weights[k]; ok {
			z += w * v
		}
	}
	return sigmoid(z)
}

// Train applies one online stochastic update toward target (0 or 1).
// The momentum term carries exactly one previous gradient per feature,
// not an exponential accumulation.
func (m *Model) Train(features map[string]float64, target float64) {
	m.mu.Lock()
	defer m.mu.Unlock()

	pred := m.predictLocked(features)
	errTerm := target - pred
	for k, v := range features {
		w, ok := m.weights[k]
		if !ok {
			continue
		}
		grad := errTerm * v * pred * (1 - pred)
		m.weights[k] = w + m.lr*grad + m.momentum*m.prevGrad[k]
		m.prevGrad[k] = grad
	}
	m.bias += m.lr * errTerm
}

// State snapshots the model for persistence.
func (m *Model) State() ([]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	st := State{
		Weights:       make(map[string]float64, len(m.weights)),
		Bias:          m.bias,
		LearningRate:  m.lr,
		Momentum:      m.momentum,
		PrevGradients: make(map[string]float64, len(m.prevGrad)),
	}
	for k, v := range m.weights {
		st.Weights[k] = v
	}
	for k, v := range m.prevGrad {
		st.PrevGradients[k] = v
	}
	b, err := json.Marshal(st)
	if err != nil {
		return nil, fmt.Errorf("marshal model state: %w", err)
	}
	return b, nil
}

// Restore merges persisted state over the defaults. Unknown keys are
// dropped and missing keys keep their defaults, so partial or older
// saved state never breaks startup. Corrupt state returns an error and
// leaves the model untouched.
func (m *Model) Restore(data []byte) error {
	var st State
	if err := json.Unmarshal(data, &st); err != nil {
		return fmt.Errorf("parse model state: %w", err)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	for _, k := range featureKeys {
		if w, ok := st.Weights[k]; ok {
			m.weights[k] = w
		}
		if g, ok := st.PrevGradients[k]; ok {
			m.prevGrad[k] = g
		}
	}
	m.bias = st.Bias
	if st.LearningRate > 0 {
		m.lr = st.LearningRate
	}
	if st.Momentum > 0 && st.Momentum < 1 {
		m.momentum = st.Momentum
	}
	return nil
}

// FeatureVector flattens an indicator snapshot into the model's input
// space. RSI is scaled to 0..1 to keep feature magnitudes comparable.
func FeatureVector(ind models.IndicatorSet) map[string]float64 {
	return map[string]float64{
		"rsi":            ind.RSI / 100,
		"macd":           ind.MACDHistogram,
		"bollinger":      ind.BollingerPosition,
		"volume_ratio":   ind.VolumeRatio,
		"volatility":     ind.Volatility,
		"options_signal": ind.OptionsSignal,
	}
}

func sigmoid(z float64) float64 {
	return 1 / (1 + math.Exp(-z))
}

var _ domsvc.Predictor = (*Model)(nil)
