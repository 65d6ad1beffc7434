package scoring

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"MarketPulse/internal/domain/models"
)

func TestPredictStaysInOpenUnitInterval(t *testing.T) {
	m := NewModel(0.01, 0.9)

	vectors := []map[string]float64{
		{},
		{"rsi": 0.5, "macd": 1.2, "volume_ratio": 2},
		{"rsi": -100, "macd": -100, "bollinger": -100},
		{"rsi": 1000, "volume_ratio": 1000},
	}
	for _, fv := range vectors {
		p := m.Predict(fv)
		assert.Greater(t, p, 0.0)
		assert.Less(t, p, 1.0)
	}
}

func TestPredictIgnoresUnknownFeatures(t *testing.T) {
	m := NewModel(0.01, 0.9)

	base := map[string]float64{"rsi": 0.6, "macd": 0.2}
	withNoise := map[string]float64{"rsi": 0.6, "macd": 0.2, "astrology": 42}
	assert.Equal(t, m.Predict(base), m.Predict(withNoise))
}

func TestTrainMovesPredictionTowardTarget(t *testing.T) {
	m := NewModel(0.05, 0.5)
	features := map[string]float64{
		"rsi":          0.4,
		"macd":         0.3,
		"volume_ratio": 1.5,
	}

	prev := m.Predict(features)
	for i := 0; i < 50; i++ {
		m.Train(features, 1)
		cur := m.Predict(features)
		require.GreaterOrEqual(t, cur, prev, "iteration %d", i)
		prev = cur
	}
	assert.Greater(t, prev, 0.9)
}

func TestTrainTowardZeroDecreasesPrediction(t *testing.T) {
	m := NewModel(0.05, 0.5)
	features := map[string]float64{"rsi": 0.8, "volume_ratio": 2}

	before := m.Predict(features)
	for i := 0; i < 50; i++ {
		m.Train(features, 0)
	}
	assert.Less(t, m.Predict(features), before)
}

func TestStateRoundTrip(t *testing.T) {
	m := NewModel(0.02, 0.8)
	for i := 0; i < 10; i++ {
		m.Train(map[string]float64{"rsi": 0.7, "macd": 0.1}, 1)
	}
	b, err := m.State()
	require.NoError(t, err)

	restored := NewModel(0.01, 0.9)
	require.NoError(t, restored.Restore(b))

	fv := map[string]float64{"rsi": 0.7, "macd": 0.1, "volume_ratio": 1.1}
	assert.InDelta(t, m.Predict(fv), restored.Predict(fv), 1e-12)
}

func TestRestoreMergesPartialState(t *testing.T) {
	m := NewModel(0.01, 0.9)
	def := m.Predict(map[string]float64{"macd": 1})

	// Older save that only knew about rsi.
	require.NoError(t, m.Restore([]byte(`{"weights":{"rsi":0.9},"bias":0}`)))

	assert.Equal(t, def, m.Predict(map[string]float64{"macd": 1}))
	assert.NotEqual(t, def, m.Predict(map[string]float64{"rsi": 1}))
}

func TestRestoreCorruptStateFails(t *testing.T) {
	m := NewModel(0.01, 0.9)
	assert.Error(t, m.Restore([]byte("not json")))

	// Model remains usable after a failed restore.
	p := m.Predict(map[string]float64{"rsi": 0.5})
	assert.Greater(t, p, 0.0)
	assert.Less(t, p, 1.0)
}

func TestFeatureVectorMatchesModelKeys(t *testing.T) {
	fv := FeatureVector(models.IndicatorSet{RSI: 55, MACDHistogram: 0.2, VolumeRatio: 1.3})
	m := NewModel(0.01, 0.9)

	m.mu.RLock()
	defer m.mu.RUnlock()
	require.Len(t, fv, len(m.weights))
	for k := range fv {
		_, ok := m.weights[k]
		assert.True(t, ok, "feature %q has no weight", k)
	}
}
