// Package indicator provides the technical indicator calculations used by
// the block evaluation engine: RSI, SMA, EMA, and a simplified MACD.
//
// All functions are total: insufficient input yields a defined neutral
// fallback instead of an error. They look only at the trailing window of
// the input, with no look-ahead.
package indicator

// RSI computes the relative strength index over the trailing period window
// using simple (non-Wilder) averages of gains and losses.
//
// With fewer than period+1 closes there are no deltas to average, so the
// neutral value 50 is returned. When the window has no losses the result
// is 100.
func RSI(closes []float64, period int) float64 {
	if len(closes) < period+1 {
		return 50
	}

	var gains, losses float64
	for i := len(closes) - period; i < len(closes); i++ {
		delta := closes[i] - closes[i-1]
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

// DefaultRSIPeriod is the lookback used when a block does not specify one.
const DefaultRSIPeriod = 14

// SMA computes the arithmetic mean of the trailing period closes. The
// second return value is false when there is not enough data.
func SMA(closes []float64, period int) (float64, bool) {
	if period <= 0 || len(closes) < period {
		return 0, false
	}
	var sum float64
	for _, c := range closes[len(closes)-period:] {
		sum += c
	}
	return sum / float64(period), true
}

// EMA computes an exponential moving average seeded with the SMA of the
// first period points, then smoothed forward with k = 2/(period+1).
//
// With fewer than period samples it degenerates to the last data point.
// That is not a true EMA, but downstream MACD math depends on this exact
// fallback, so it stays.
func EMA(data []float64, period int) float64 {
	if len(data) == 0 {
		return 0
	}
	if len(data) < period {
		return data[len(data)-1]
	}

	k := 2 / float64(period+1)
	var ema float64
	for _, v := range data[:period] {
		ema += v
	}
	ema /= float64(period)

	for i := period; i < len(data); i++ {
		ema = data[i]*k + ema*(1-k)
	}
	return ema
}

// MACDResult holds the three MACD output series values for the latest bar.
type MACDResult struct {
	MACD      float64
	Signal    float64
	Histogram float64
}

// MACD computes the MACD line as EMA(fast) - EMA(slow). The signal line is
// fixed at zero rather than being a smoothed EMA of the MACD line, and the
// histogram therefore equals the MACD line. Simplified on purpose; the
// entry rule only tests the sign of the MACD line.
//
// With fewer than slow+signal closes a zeroed result is returned.
func MACD(closes []float64, fast, slow, signal int) MACDResult {
	if len(closes) < slow+signal {
		return MACDResult{}
	}

	macdLine := EMA(closes, fast) - EMA(closes, slow)
	return MACDResult{MACD: macdLine, Signal: 0, Histogram: macdLine}
}

// Default MACD periods, matching the common 12/26/9 convention.
const (
	DefaultMACDFast   = 12
	DefaultMACDSlow   = 26
	DefaultMACDSignal = 9
)
