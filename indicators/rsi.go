package indicators

import "github.com/GaiusCaesarBC/Nexus-Signal-Frontend-sub002/pricing"

// DefaultRSIPeriod is the conventional RSI lookback.
const DefaultRSIPeriod = 14

// RSI calculates the Relative Strength Index over windows of period
// close-to-close deltas.
//
// Each window's average gain and average loss are plain means over the
// window (not Wilder-smoothed). A point is emitted at the bar that ends the
// window, so the result has len(bars)-period points.
//
// Degenerate windows never produce NaN or Inf:
//   - no losses and some gains: 100
//   - no gains and no losses (flat closes): 50
func RSI(bars []pricing.Bar, period int) Series {
	if period <= 0 || len(bars) <= period {
		return Series{}
	}

	deltas := make([]float64, len(bars)-1)
	for i := 1; i < len(bars); i++ {
		deltas[i-1] = bars[i].Close - bars[i-1].Close
	}

	out := make(Series, 0, len(deltas)-period+1)
	for end := period; end <= len(deltas); end++ {
		gains, losses := 0.0, 0.0
		for _, d := range deltas[end-period : end] {
			if d > 0 {
				gains += d
			} else {
				losses -= d
			}
		}
		avgGain := gains / float64(period)
		avgLoss := losses / float64(period)

		out = append(out, Point{Time: bars[end].Time, Value: rsiValue(avgGain, avgLoss)})
	}
	return out
}

func rsiValue(avgGain, avgLoss float64) float64 {
	if avgLoss == 0 {
		if avgGain == 0 {
			return 50
		}
		return 100
	}
	rs := avgGain / avgLoss
	return 100 - 100/(1+rs)
}
