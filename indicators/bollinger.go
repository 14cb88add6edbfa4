package indicators

import (
	"math"

	"github.com/GaiusCaesarBC/Nexus-Signal-Frontend-sub002/pricing"
)

// Conventional Bollinger parameters.
const (
	DefaultBollingerPeriod     = 20
	DefaultBollingerMultiplier = 2.0
)

// Bands holds the three Bollinger lines, all aligned to the same times.
type Bands struct {
	Middle Series `json:"middle"`
	Upper  Series `json:"upper"`
	Lower  Series `json:"lower"`
}

// Bollinger computes Bollinger Bands: the SMA of closes plus and minus
// multiplier population standard deviations of the same window.
func Bollinger(bars []pricing.Bar, period int, multiplier float64) Bands {
	middle := SMA(bars, period)
	out := Bands{
		Middle: middle,
		Upper:  make(Series, len(middle)),
		Lower:  make(Series, len(middle)),
	}

	for i, m := range middle {
		// middle[i] closes the window ending at bars[i+period-1]
		window := bars[i : i+period]

		sq := 0.0
		for _, b := range window {
			d := b.Close - m.Value
			sq += d * d
		}
		// population, not sample, deviation
		sd := math.Sqrt(sq / float64(period))

		out.Upper[i] = Point{Time: m.Time, Value: m.Value + multiplier*sd}
		out.Lower[i] = Point{Time: m.Time, Value: m.Value - multiplier*sd}
	}
	return out
}
