package usecase

import (
	"fmt"
	"sort"
	"time"

	"MarketPulse/internal/domain/models"
	"MarketPulse/internal/service/scoring"
)

// Action thresholds and price offsets. The wide offsets apply when
// annualized volatility exceeds the volatility knee.
const (
	buyThreshold        = 0.65
	strongBuyThreshold  = 0.80
	sellThreshold       = 0.35
	strongSellThreshold = 0.20
	volatilityKnee      = 0.3
)

// Generator turns indicator snapshots into actionable recommendations.
// The heuristic confidence drives the action; the trainable model's
// probability rides along as a separate score and never gates it.
type Generator struct {
	model     *scoring.Model
	heuristic scoring.Heuristic
}

// NewGenerator creates a recommendation generator.
func NewGenerator(model *scoring.Model) *Generator {
	return &Generator{model: model, heuristic: scoring.NewHeuristic()}
}

// Generate evaluates one symbol. It returns nil for symbols that
// resolve to HOLD or lack a usable price; those are skipped, never
// failed.
func (g *Generator) Generate(ind models.IndicatorSet, quote *models.Quote) *models.Recommendation {
	if !quote.Valid() {
		return nil
	}

	confidence := g.heuristic.Confidence(ind)
	action := deriveAction(confidence, ind)
	if action == models.ActionHold {
		return nil
	}

	strength := strengthScore(quote)
	target, stop := priceLevels(action, quote.Price, ind.Volatility)

	return &models.Recommendation{
		Symbol:      quote.Symbol,
		Action:      action,
		Confidence:  confidence * 100,
		ModelScore:  g.model.Predict(scoring.FeatureVector(ind)),
		EntryPrice:  quote.Price,
		TakeProfit:  target,
		StopLoss:    stop,
		Pattern:     ind.Pattern,
		RiskLevel:   riskLevel(strength),
		Strength:    strength,
		Rationale:   rationale(ind),
		GeneratedAt: time.Now(),
	}
}

// Rank sorts recommendations by confidence descending, breaking ties
// on raw strength.
func (g *Generator) Rank(recs []models.Recommendation) []models.Recommendation {
	sort.SliceStable(recs, func(i, j int) bool {
		if recs[i].Confidence != recs[j].Confidence {
			return recs[i].Confidence > recs[j].Confidence
		}
		return recs[i].Strength > recs[j].Strength
	})
	return recs
}

func deriveAction(confidence float64, ind models.IndicatorSet) models.Action {
	switch {
	case confidence > buyThreshold && ind.MACDHistogram > 0 && ind.RSI < 70:
		if confidence > strongBuyThreshold {
			return models.ActionStrongBuy
		}
		return models.ActionBuy
	case confidence < sellThreshold && ind.MACDHistogram < 0 && ind.RSI > 30:
		if confidence < strongSellThreshold {
			return models.ActionStrongSell
		}
		return models.ActionSell
	}
	return models.ActionHold
}

// priceLevels returns (takeProfit, stopLoss) as multiplicative offsets
// from the entry price.
func priceLevels(action models.Action, price, volatility float64) (float64, float64) {
	wide := volatility > volatilityKnee
	switch action {
	case models.ActionBuy, models.ActionStrongBuy:
		if wide {
			return price * 1.08, price * 0.95
		}
		return price * 1.05, price * 0.98
	case models.ActionSell, models.ActionStrongSell:
		if wide {
			return price * 0.92, price * 1.05
		}
		return price * 0.95, price * 1.02
	case models.ActionHold:
	}
	return price, price
}

// strengthScore maps price momentum and volume confirmation onto 0..100.
func strengthScore(quote *models.Quote) float64 {
	change := quote.ChangePct()
	if change < 0 {
		change = -change
	}
	s := 50 + 5*change + 20*(quote.VolumeRatio()-1)
	if s < 0 {
		return 0
	}
	if s > 100 {
		return 100
	}
	return s
}

func riskLevel(strength float64) models.RiskLevel {
	switch {
	case strength > 80:
		return models.RiskLow
	case strength > 50:
		return models.RiskMedium
	default:
		return models.RiskHigh
	}
}

// rationale lists the conditions that fired, in a fixed order. It is
// never empty.
func rationale(ind models.IndicatorSet) []string {
	var reasons []string

	if ind.Pattern != models.PatternUnknown && ind.Pattern != models.PatternConsolidation {
		reasons = append(reasons, fmt.Sprintf("%s pattern detected", ind.Pattern))
	}
	switch {
	case ind.RSI < 30:
		reasons = append(reasons, fmt.Sprintf("RSI oversold at %.0f", ind.RSI))
	case ind.RSI > 70:
		reasons = append(reasons, fmt.Sprintf("RSI overbought at %.0f", ind.RSI))
	}
	switch {
	case ind.MACDHistogram > 0:
		reasons = append(reasons, "MACD histogram positive")
	case ind.MACDHistogram < 0:
		reasons = append(reasons, "MACD histogram negative")
	}
	if ind.VolumeRatio > 1.5 {
		reasons = append(reasons, fmt.Sprintf("volume %.1fx average", ind.VolumeRatio))
	}
	switch {
	case ind.OptionsSignal > 0.3:
		reasons = append(reasons, "bullish options flow")
	case ind.OptionsSignal < -0.3:
		reasons = append(reasons, "bearish options flow")
	}

	if len(reasons) == 0 {
		reasons = append(reasons, "Technical setup")
	}
	return reasons
}
