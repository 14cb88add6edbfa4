package indicators

import (
	"math"

	"github.com/GaiusCaesarBC/Nexus-Signal-Frontend-sub002/pricing"
)

// DefaultATRPeriod is the conventional ATR lookback.
const DefaultATRPeriod = 14

// TrueRange calculates the True Range for a bar given the previous bar.
func TrueRange(current, previous pricing.Bar) float64 {
	highLow := current.High - current.Low
	highClose := math.Abs(current.High - previous.Close)
	lowClose := math.Abs(current.Low - previous.Close)

	return math.Max(highLow, math.Max(highClose, lowClose))
}

// TrueRanges returns the true range of bars[1:]; the first bar has no
// previous close and contributes none.
func TrueRanges(bars []pricing.Bar) []float64 {
	if len(bars) < 2 {
		return []float64{}
	}
	out := make([]float64, 0, len(bars)-1)
	for i := 1; i < len(bars); i++ {
		out = append(out, TrueRange(bars[i], bars[i-1]))
	}
	return out
}

// ATR calculates the Average True Range as the simple moving average of
// true ranges over period bars. This is not Wilder's smoothed ATR; use
// ATRWilder for that.
//
// The result has len(bars)-period points, each stamped with the time of the
// bar ending its window.
func ATR(bars []pricing.Bar, period int) Series {
	return smaOf(bars, TrueRanges(bars), period)
}

// ATRWilder calculates the Average True Range with Wilder's smoothing.
// The first value is the average of the first period true ranges; later
// values are (prev*(period-1) + tr) / period.
func ATRWilder(bars []pricing.Bar, period int) Series {
	trueRanges := TrueRanges(bars)
	if period <= 0 || len(trueRanges) < period {
		return Series{}
	}

	// Calculate initial ATR as SMA of first 'period' true ranges
	sum := 0.0
	for i := 0; i < period; i++ {
		sum += trueRanges[i]
	}
	atr := sum / float64(period)

	out := make(Series, 0, len(trueRanges)-period+1)
	out = append(out, Point{Time: bars[period].Time, Value: atr})

	// Smooth remaining values using Wilder's method
	for i := period; i < len(trueRanges); i++ {
		atr = (atr*float64(period-1) + trueRanges[i]) / float64(period)
		out = append(out, Point{Time: bars[i+1].Time, Value: atr})
	}
	return out
}
