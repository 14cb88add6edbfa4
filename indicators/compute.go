package indicators

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/GaiusCaesarBC/Nexus-Signal-Frontend-sub002/pricing"
)

var (
	// ErrUnknownIndicator is returned by Compute for an unsupported name.
	ErrUnknownIndicator = errors.New("unknown indicator")
	// ErrInvalidSpec is returned by Compute for structurally invalid parameters.
	ErrInvalidSpec = errors.New("invalid indicator spec")
)

// Indicator names understood by Compute.
const (
	NameSMA       = "sma"
	NameEMA       = "ema"
	NameRSI       = "rsi"
	NameMACD      = "macd"
	NameBollinger = "bollinger"
	NameATR       = "atr"
	NameVWAP      = "vwap"
)

// ATR smoothing modes.
const (
	SmoothingSimple = "simple"
	SmoothingWilder = "wilder"
)

// DefaultMAPeriod is used for SMA/EMA when no period is given.
const DefaultMAPeriod = 20

// Spec names one indicator computation and its parameters. Zero values
// mean "use the default".
type Spec struct {
	Name       string  `json:"name" yaml:"name"`
	Period     int     `json:"period,omitempty" yaml:"period,omitempty"`
	Fast       int     `json:"fast,omitempty" yaml:"fast,omitempty"`
	Slow       int     `json:"slow,omitempty" yaml:"slow,omitempty"`
	Signal     int     `json:"signal,omitempty" yaml:"signal,omitempty"`
	Multiplier float64 `json:"multiplier,omitempty" yaml:"multiplier,omitempty"`
	Smoothing  string  `json:"smoothing,omitempty" yaml:"smoothing,omitempty"`
}

// Names lists the supported indicator names in sorted order.
func Names() []string {
	names := []string{NameSMA, NameEMA, NameRSI, NameMACD, NameBollinger, NameATR, NameVWAP}
	sort.Strings(names)
	return names
}

// WithDefaults returns a copy with defaults filled for the named indicator.
func (s Spec) WithDefaults() Spec {
	s.Name = strings.ToLower(strings.TrimSpace(s.Name))
	switch s.Name {
	case NameSMA, NameEMA:
		if s.Period == 0 {
			s.Period = DefaultMAPeriod
		}
	case NameRSI:
		if s.Period == 0 {
			s.Period = DefaultRSIPeriod
		}
	case NameATR:
		if s.Period == 0 {
			s.Period = DefaultATRPeriod
		}
		if s.Smoothing == "" {
			s.Smoothing = SmoothingSimple
		}
	case NameBollinger:
		if s.Period == 0 {
			s.Period = DefaultBollingerPeriod
		}
		if s.Multiplier == 0 {
			s.Multiplier = DefaultBollingerMultiplier
		}
	case NameMACD:
		if s.Fast == 0 {
			s.Fast = DefaultMACDFast
		}
		if s.Slow == 0 {
			s.Slow = DefaultMACDSlow
		}
		if s.Signal == 0 {
			s.Signal = DefaultMACDSignal
		}
	}
	return s
}

// Validate reports structurally invalid parameters. Periods longer than
// the available history are valid; they just produce empty output.
func (s Spec) Validate() error {
	s = s.WithDefaults()
	switch s.Name {
	case NameSMA, NameEMA, NameRSI:
		if s.Period < 1 {
			return fmt.Errorf("%w: %s period must be positive, got %d", ErrInvalidSpec, s.Name, s.Period)
		}
	case NameATR:
		if s.Period < 1 {
			return fmt.Errorf("%w: atr period must be positive, got %d", ErrInvalidSpec, s.Period)
		}
		if s.Smoothing != SmoothingSimple && s.Smoothing != SmoothingWilder {
			return fmt.Errorf("%w: atr smoothing must be %q or %q, got %q", ErrInvalidSpec, SmoothingSimple, SmoothingWilder, s.Smoothing)
		}
	case NameBollinger:
		if s.Period < 1 {
			return fmt.Errorf("%w: bollinger period must be positive, got %d", ErrInvalidSpec, s.Period)
		}
		if s.Multiplier < 0 {
			return fmt.Errorf("%w: bollinger multiplier must not be negative, got %v", ErrInvalidSpec, s.Multiplier)
		}
	case NameMACD:
		if s.Fast < 1 || s.Slow < 1 || s.Signal < 1 {
			return fmt.Errorf("%w: macd periods must be positive (got %d/%d/%d)", ErrInvalidSpec, s.Fast, s.Slow, s.Signal)
		}
		if s.Fast >= s.Slow {
			return fmt.Errorf("%w: macd requires fast < slow (got %d/%d)", ErrInvalidSpec, s.Fast, s.Slow)
		}
	case NameVWAP:
	default:
		return fmt.Errorf("%w: %q", ErrUnknownIndicator, s.Name)
	}
	return nil
}

// Key returns a stable label such as "sma(20)" or "macd(12,26,9)".
func (s Spec) Key() string {
	s = s.WithDefaults()
	switch s.Name {
	case NameSMA, NameEMA, NameRSI:
		return fmt.Sprintf("%s(%d)", s.Name, s.Period)
	case NameATR:
		if s.Smoothing == SmoothingWilder {
			return fmt.Sprintf("atr(%d,wilder)", s.Period)
		}
		return fmt.Sprintf("atr(%d)", s.Period)
	case NameBollinger:
		return fmt.Sprintf("bollinger(%d,%g)", s.Period, s.Multiplier)
	case NameMACD:
		return fmt.Sprintf("macd(%d,%d,%d)", s.Fast, s.Slow, s.Signal)
	default:
		return s.Name
	}
}

// Output is the named result of one Spec. Single-line indicators use the
// line name "value".
type Output struct {
	Key       string            `json:"key"`
	Name      string            `json:"name"`
	Lines     map[string]Series `json:"lines"`
	Histogram []HistogramPoint  `json:"histogram,omitempty"`
}

// LineNames returns the output's line names in sorted order.
func (o Output) LineNames() []string {
	names := make([]string, 0, len(o.Lines))
	for n := range o.Lines {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// Empty reports whether no line has any point.
func (o Output) Empty() bool {
	for _, s := range o.Lines {
		if len(s) > 0 {
			return false
		}
	}
	return len(o.Histogram) == 0
}

// Compute runs the indicator described by spec over bars. It returns an
// error only for an unknown name or invalid parameters; short input gives
// empty lines.
func Compute(bars []pricing.Bar, spec Spec) (Output, error) {
	if err := spec.Validate(); err != nil {
		return Output{}, err
	}
	spec = spec.WithDefaults()

	out := Output{Key: spec.Key(), Name: spec.Name}
	switch spec.Name {
	case NameSMA:
		out.Lines = single(SMA(bars, spec.Period))
	case NameEMA:
		out.Lines = single(EMA(bars, spec.Period))
	case NameRSI:
		out.Lines = single(RSI(bars, spec.Period))
	case NameATR:
		if spec.Smoothing == SmoothingWilder {
			out.Lines = single(ATRWilder(bars, spec.Period))
		} else {
			out.Lines = single(ATR(bars, spec.Period))
		}
	case NameVWAP:
		out.Lines = single(VWAP(bars))
	case NameBollinger:
		b := Bollinger(bars, spec.Period, spec.Multiplier)
		out.Lines = map[string]Series{"middle": b.Middle, "upper": b.Upper, "lower": b.Lower}
	case NameMACD:
		m := MACD(bars, spec.Fast, spec.Slow, spec.Signal)
		out.Lines = map[string]Series{"macd": m.MACD, "signal": m.Signal}
		out.Histogram = m.Histogram
	}
	return out, nil
}

func single(s Series) map[string]Series {
	return map[string]Series{"value": s}
}
