// Package indicators provides technical analysis indicators over a bar series.
//
// Every function is pure: it reads the caller's bars, never mutates them and
// returns freshly allocated output. Insufficient history is not an error; it
// yields an empty Series, which callers should read as "not yet computable".
package indicators

import "github.com/GaiusCaesarBC/Nexus-Signal-Frontend-sub002/pricing"

// Point is one indicator value aligned to the bar with the same Time.
type Point struct {
	Time  int64   `json:"time"`
	Value float64 `json:"value"`
}

// Series is an ordered, possibly empty, sequence of points aligned to a
// suffix of the input bars.
type Series []Point

// Values returns the point values in order.
func (s Series) Values() []float64 {
	out := make([]float64, len(s))
	for i, p := range s {
		out[i] = p.Value
	}
	return out
}

// Last returns the most recent point, if any.
func (s Series) Last() (Point, bool) {
	if len(s) == 0 {
		return Point{}, false
	}
	return s[len(s)-1], true
}

// Histogram colors.
const (
	Positive = "positive"
	Negative = "negative"
)

// HistogramPoint is a Point carrying a sign tag for display.
type HistogramPoint struct {
	Time  int64   `json:"time"`
	Value float64 `json:"value"`
	Color string  `json:"color"`
}

func colorOf(v float64) string {
	if v >= 0 {
		return Positive
	}
	return Negative
}

// Pair joins two points sharing the same Time.
type Pair struct {
	Time int64
	A    float64
	B    float64
}

// AlignByTime pairs the points of a and b that share a Time. Both series
// must be ordered by Time; points present in only one series are dropped.
func AlignByTime(a, b Series) []Pair {
	out := make([]Pair, 0, min(len(a), len(b)))
	i, j := 0, 0
	for i < len(a) && j < len(b) {
		switch {
		case a[i].Time < b[j].Time:
			i++
		case a[i].Time > b[j].Time:
			j++
		default:
			out = append(out, Pair{Time: a[i].Time, A: a[i].Value, B: b[j].Value})
			i++
			j++
		}
	}
	return out
}

// SyntheticBars turns a derived series back into bars so it can be fed
// through a bar-based primitive as if it were a closing-price series.
func SyntheticBars(s Series) []pricing.Bar {
	out := make([]pricing.Bar, len(s))
	for i, p := range s {
		out[i] = pricing.Bar{Time: p.Time, Open: p.Value, High: p.Value, Low: p.Value, Close: p.Value}
	}
	return out
}
