package indicators

import "github.com/GaiusCaesarBC/Nexus-Signal-Frontend-sub002/pricing"

// Conventional MACD periods.
const (
	DefaultMACDFast   = 12
	DefaultMACDSlow   = 26
	DefaultMACDSignal = 9
)

// MACDResult holds the three MACD outputs. They have different lengths;
// combine them by Time, not by index.
type MACDResult struct {
	MACD      Series           `json:"macd"`
	Signal    Series           `json:"signal"`
	Histogram []HistogramPoint `json:"histogram"`
}

func emptyMACD() MACDResult {
	return MACDResult{MACD: Series{}, Signal: Series{}, Histogram: []HistogramPoint{}}
}

// MACD computes the MACD line (fast EMA minus slow EMA), its signal line
// (an EMA of the MACD line) and the histogram (MACD minus signal).
//
// The fast EMA starts slow-fast bars earlier than the slow EMA, so
// macd[i] = fast[i+(slow-fast)] - slow[i] and len(macd) == len(slowEMA).
// If any stage lacks history, all three outputs are empty.
func MACD(bars []pricing.Bar, fast, slow, signal int) MACDResult {
	if fast <= 0 || slow <= fast || signal <= 0 {
		return emptyMACD()
	}

	emaFast := EMA(bars, fast)
	emaSlow := EMA(bars, slow)
	if len(emaSlow) == 0 {
		return emptyMACD()
	}

	shift := slow - fast
	line := make(Series, len(emaSlow))
	for i, p := range emaSlow {
		line[i] = Point{Time: p.Time, Value: emaFast[i+shift].Value - p.Value}
	}

	sig := EMA(SyntheticBars(line), signal)
	if len(sig) == 0 {
		return emptyMACD()
	}

	offset := len(line) - len(sig)
	hist := make([]HistogramPoint, len(sig))
	for i, p := range sig {
		v := line[i+offset].Value - p.Value
		hist[i] = HistogramPoint{Time: p.Time, Value: v, Color: colorOf(v)}
	}

	return MACDResult{MACD: line, Signal: sig, Histogram: hist}
}
