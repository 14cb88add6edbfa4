package pricing

// Bar is one OHLCV observation for a fixed interval.
//
// Time is an ordinal or a unix timestamp in seconds; the engine only relies
// on it being strictly increasing across a series.
type Bar struct {
	Time int64 `json:"time"`

	Open  float64 `json:"open"`
	High  float64 `json:"high"`
	Low   float64 `json:"low"`
	Close float64 `json:"close"`

	Volume float64 `json:"volume"`
}

// TypicalPrice returns (high+low+close)/3.
func (b Bar) TypicalPrice() float64 {
	return (b.High + b.Low + b.Close) / 3
}

// Closes extracts the closing prices of a series.
func Closes(bars []Bar) []float64 {
	out := make([]float64, len(bars))
	for i, b := range bars {
		out[i] = b.Close
	}
	return out
}

// Window returns the bars whose Time falls in [from, to). A zero bound is
// open. The returned slice aliases bars.
func Window(bars []Bar, from, to int64) []Bar {
	lo, hi := 0, len(bars)
	if from != 0 {
		for lo < hi && bars[lo].Time < from {
			lo++
		}
	}
	if to != 0 {
		for hi > lo && bars[hi-1].Time >= to {
			hi--
		}
	}
	return bars[lo:hi]
}
