package indicators

import (
	"math"

	"MarketPulse/internal/domain/models"
)

// Pure indicator calculators. Every function tolerates short input by
// returning its documented neutral default instead of an error, so a
// cold history store never breaks a scan cycle.

const (
	rsiPeriod       = 14
	bollingerWindow = 20
	tradingDays     = 252
)

// RSI computes the Relative Strength Index over the first `period`
// deltas of prices. Returns the neutral 50 when fewer than period+1
// samples are available, and 100 when the average loss is exactly zero.
func RSI(prices []float64, period int) float64 {
	if period <= 0 {
		period = rsiPeriod
	}
	if len(prices) < period+1 {
		return 50
	}
	var gains, losses float64
	for i := 1; i <= period; i++ {
		delta := prices[i] - prices[i-1]
		if delta > 0 {
			gains += delta
		} else {
			losses -= delta
		}
	}
	avgGain := gains / float64(period)
	avgLoss := losses / float64(period)
	if avgLoss == 0 {
		return 100
	}
	rs := avgGain / avgLoss
	return 100 - 100/(1+rs)
}

// MACDHistogram computes the MACD line (EMA12 - EMA26) over the series
// and subtracts a 9-period EMA smoothing of the successive histogram
// values. Returns 0 with fewer than 26 price points.
func MACDHistogram(prices []float64) float64 {
	if len(prices) < 26 {
		return 0
	}
	fast := ema(prices, 12)
	slow := ema(prices, 26)
	macd := make([]float64, len(prices))
	for i := range prices {
		macd[i] = fast[i] - slow[i]
	}
	signal := ema(macd, 9)
	return macd[len(macd)-1] - signal[len(signal)-1]
}

// ema returns the exponential moving average series, seeded with the
// first value.
func ema(xs []float64, period int) []float64 {
	out := make([]float64, len(xs))
	if len(xs) == 0 {
		return out
	}
	k := 2.0 / (float64(period) + 1)
	out[0] = xs[0]
	for i := 1; i < len(xs); i++ {
		out[i] = xs[i]*k + out[i-1]*(1-k)
	}
	return out
}

// BollingerPosition places price inside the 20-close Bollinger envelope
// (mean +/- 2 population standard deviations), clamped to [-1, 1].
// Returns 0 with fewer than 20 samples or a flat window.
func BollingerPosition(prices []float64, price float64) float64 {
	if len(prices) < bollingerWindow {
		return 0
	}
	window := prices[len(prices)-bollingerWindow:]
	mean := meanOf(window)
	sd := stddev(window, mean)
	if sd == 0 {
		return 0
	}
	return clamp((price-mean)/(2*sd), -1, 1)
}

// Volatility computes the annualized standard deviation of simple daily
// returns. Returns 0 with fewer than 2 samples.
func Volatility(prices []float64) float64 {
	if len(prices) < 2 {
		return 0
	}
	returns := make([]float64, 0, len(prices)-1)
	for i := 1; i < len(prices); i++ {
		if prices[i-1] == 0 {
			continue
		}
		returns = append(returns, prices[i]/prices[i-1]-1)
	}
	if len(returns) == 0 {
		return 0
	}
	sd := stddev(returns, meanOf(returns))
	return sd * math.Sqrt(tradingDays)
}

// OptionsSignal aggregates flow entries into a premium skew in [-1, 1]:
// (bullish premium - bearish premium) / total premium. Returns 0 with
// no entries or no premium.
func OptionsSignal(entries []models.OptionsFlowEntry) float64 {
	var bullish, bearish, total float64
	for _, e := range entries {
		total += e.Premium
		switch e.Sentiment {
		case models.SentimentBullish:
			bullish += e.Premium
		case models.SentimentBearish:
			bearish += e.Premium
		}
	}
	if total == 0 {
		return 0
	}
	return (bullish - bearish) / total
}

// Compute derives the full per-symbol indicator snapshot from one
// consistent quote, the accumulated close history, and the symbol's
// options flow.
func Compute(quote *models.Quote, closes []float64, flow []models.OptionsFlowEntry) models.IndicatorSet {
	vol := Volatility(closes)
	return models.IndicatorSet{
		Symbol:            quote.Symbol,
		RSI:               RSI(closes, rsiPeriod),
		MACDHistogram:     MACDHistogram(closes),
		BollingerPosition: BollingerPosition(closes, quote.Price),
		VolumeRatio:       quote.VolumeRatio(),
		Volatility:        vol,
		OptionsSignal:     OptionsSignal(flow),
		PriceChangePct:    quote.ChangePct(),
		Pattern:           ClassifyPattern(closes, vol),
	}
}

func meanOf(xs []float64) float64 {
	if len(xs) == 0 {
		return 0
	}
	var sum float64
	for _, x := range xs {
		sum += x
	}
	return sum / float64(len(xs))
}

// stddev is the population standard deviation.
func stddev(xs []float64, mean float64) float64 {
	if len(xs) == 0 {
		return 0
	}
	var sq float64
	for _, x := range xs {
		d := x - mean
		sq += d * d
	}
	return math.Sqrt(sq / float64(len(xs)))
}

func clamp(x, lo, hi float64) float64 {
	if x < lo {
		return lo
	}
	if x > hi {
		return hi
	}
	return x
}
