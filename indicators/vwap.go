package indicators

import "github.com/GaiusCaesarBC/Nexus-Signal-Frontend-sub002/pricing"

// VWAP calculates the cumulative Volume-Weighted Average Price from the
// first bar of the series, one point per bar. There are no session resets;
// slice the input to start a new session.
//
// While cumulative volume is still zero the bar's typical price is used,
// so a zero-volume prefix never yields NaN.
func VWAP(bars []pricing.Bar) Series {
	out := make(Series, len(bars))

	var cumTPV, cumVol float64
	for i, b := range bars {
		tp := b.TypicalPrice()
		cumTPV += tp * b.Volume
		cumVol += b.Volume

		v := tp
		if cumVol > 0 {
			v = cumTPV / cumVol
		}
		out[i] = Point{Time: b.Time, Value: v}
	}
	return out
}
