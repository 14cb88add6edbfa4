package indicators

import "github.com/GaiusCaesarBC/Nexus-Signal-Frontend-sub002/pricing"

// SMA calculates the Simple Moving Average of closes for every complete
// window of the given period.
//
// The result has max(0, len(bars)-period+1) points; an invalid period
// yields an empty series.
func SMA(bars []pricing.Bar, period int) Series {
	return smaOf(bars, pricing.Closes(bars), period)
}

// smaOf averages values over a sliding window, stamping each point with the
// time of the bar that closes the window. values[i] belongs to bars[i+lag]
// where lag = len(bars)-len(values).
func smaOf(bars []pricing.Bar, values []float64, period int) Series {
	if period <= 0 || len(values) < period {
		return Series{}
	}
	lag := len(bars) - len(values)

	out := make(Series, 0, len(values)-period+1)
	sum := 0.0
	for i, v := range values {
		sum += v
		if i >= period {
			sum -= values[i-period]
		}
		if i >= period-1 {
			out = append(out, Point{Time: bars[i+lag].Time, Value: sum / float64(period)})
		}
	}
	return out
}

// EMA calculates the Exponential Moving Average of closes.
//
// The first value is the SMA of the first period closes, emitted at
// bars[period-1].Time; each later value is (close-prev)*k + prev with
// k = 2/(period+1).
func EMA(bars []pricing.Bar, period int) Series {
	if period <= 0 || len(bars) < period {
		return Series{}
	}

	multiplier := 2.0 / float64(period+1)

	// Start with SMA for first value
	sma := 0.0
	for i := 0; i < period; i++ {
		sma += bars[i].Close
	}
	ema := sma / float64(period)

	out := make(Series, 0, len(bars)-period+1)
	out = append(out, Point{Time: bars[period-1].Time, Value: ema})

	for i := period; i < len(bars); i++ {
		ema = (bars[i].Close-ema)*multiplier + ema
		out = append(out, Point{Time: bars[i].Time, Value: ema})
	}
	return out
}
