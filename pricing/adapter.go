package pricing

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"sort"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// ErrMalformed is returned by the adapter for structurally invalid input.
var ErrMalformed = errors.New("malformed bar")

// MalformedError describes which record and field failed validation.
type MalformedError struct {
	Index  int
	Field  string
	Reason string
}

func (e *MalformedError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("bar %d: %s", e.Index, e.Reason)
	}
	return fmt.Sprintf("bar %d: %s: %s", e.Index, e.Field, e.Reason)
}

func (e *MalformedError) Unwrap() error { return ErrMalformed }

func malformed(i int, field, format string, args ...any) error {
	return &MalformedError{Index: i, Field: field, Reason: fmt.Sprintf(format, args...)}
}

// Record is a loosely typed bar as decoded from an external source.
type Record map[string]any

// Key aliases accepted by Normalize, in lookup order.
var (
	timeKeys   = []string{"time", "t", "timestamp", "date"}
	openKeys   = []string{"open", "o"}
	highKeys   = []string{"high", "h"}
	lowKeys    = []string{"low", "l"}
	closeKeys  = []string{"close", "c"}
	volumeKeys = []string{"volume", "v", "vol"}
)

// Normalize converts heterogeneous records into a validated Bar Series.
// Records are sorted by time before validation; duplicates are rejected.
func Normalize(records []Record) ([]Bar, error) {
	bars := make([]Bar, 0, len(records))
	for i, rec := range records {
		b, err := toBar(i, rec)
		if err != nil {
			return nil, err
		}
		bars = append(bars, b)
	}

	sort.SliceStable(bars, func(i, j int) bool { return bars[i].Time < bars[j].Time })

	if err := Validate(bars); err != nil {
		return nil, err
	}
	return bars, nil
}

// DecodeJSON reads a JSON array of bar records and normalizes it.
func DecodeJSON(r io.Reader) ([]Bar, error) {
	dec := json.NewDecoder(r)
	dec.UseNumber()

	var records []Record
	if err := dec.Decode(&records); err != nil {
		return nil, fmt.Errorf("decode bars: %w", err)
	}
	return Normalize(records)
}

// Validate checks the Bar Series invariants: strictly increasing time,
// finite prices, low <= open,close <= high and non-negative volume.
func Validate(bars []Bar) error {
	for i, b := range bars {
		for _, f := range []struct {
			name string
			v    float64
		}{{"open", b.Open}, {"high", b.High}, {"low", b.Low}, {"close", b.Close}, {"volume", b.Volume}} {
			if math.IsNaN(f.v) || math.IsInf(f.v, 0) {
				return malformed(i, f.name, "not a finite number")
			}
		}

		if b.Low > b.High {
			return malformed(i, "low", "low %v above high %v", b.Low, b.High)
		}
		if b.Open < b.Low || b.Open > b.High {
			return malformed(i, "open", "open %v outside [%v, %v]", b.Open, b.Low, b.High)
		}
		if b.Close < b.Low || b.Close > b.High {
			return malformed(i, "close", "close %v outside [%v, %v]", b.Close, b.Low, b.High)
		}
		if b.Volume < 0 {
			return malformed(i, "volume", "negative volume %v", b.Volume)
		}

		if i > 0 && b.Time <= bars[i-1].Time {
			if b.Time == bars[i-1].Time {
				return malformed(i, "time", "duplicate time %d", b.Time)
			}
			return malformed(i, "time", "time %d not after %d", b.Time, bars[i-1].Time)
		}
	}
	return nil
}

func toBar(i int, rec Record) (Bar, error) {
	var (
		b   Bar
		err error
	)

	tv, ok := lookup(rec, timeKeys)
	if !ok {
		return Bar{}, malformed(i, "time", "missing")
	}
	if b.Time, err = parseTime(tv); err != nil {
		return Bar{}, malformed(i, "time", "%v", err)
	}

	fields := []struct {
		name string
		keys []string
		dst  *float64
	}{
		{"open", openKeys, &b.Open},
		{"high", highKeys, &b.High},
		{"low", lowKeys, &b.Low},
		{"close", closeKeys, &b.Close},
	}
	for _, f := range fields {
		v, ok := lookup(rec, f.keys)
		if !ok {
			return Bar{}, malformed(i, f.name, "missing")
		}
		if *f.dst, err = parseNumber(v); err != nil {
			return Bar{}, malformed(i, f.name, "%v", err)
		}
	}

	// Volume is optional; indices without volume feeds report none.
	if v, ok := lookup(rec, volumeKeys); ok && v != nil {
		if b.Volume, err = parseNumber(v); err != nil {
			return Bar{}, malformed(i, "volume", "%v", err)
		}
	}

	return b, nil
}

func lookup(rec Record, keys []string) (any, bool) {
	for _, k := range keys {
		if v, ok := rec[k]; ok {
			return v, true
		}
	}
	// Fall back to a case-insensitive match ("Close", "VOLUME").
	for k, v := range rec {
		for _, want := range keys {
			if strings.EqualFold(k, want) {
				return v, true
			}
		}
	}
	return nil, false
}

func parseNumber(v any) (float64, error) {
	switch x := v.(type) {
	case float64:
		return x, nil
	case float32:
		return float64(x), nil
	case int:
		return float64(x), nil
	case int64:
		return float64(x), nil
	case json.Number:
		return decimalFloat(x.String())
	case string:
		return decimalFloat(x)
	case nil:
		return 0, errors.New("null value")
	default:
		return 0, fmt.Errorf("unsupported type %T", v)
	}
}

func decimalFloat(s string) (float64, error) {
	d, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil {
		return 0, fmt.Errorf("bad number %q: %w", s, err)
	}
	f, _ := d.Float64()
	return f, nil
}

// ParseTime parses Unix seconds or an RFC3339 timestamp.
func ParseTime(s string) (int64, error) {
	return parseTime(s)
}

var (
	minTime = decimal.NewFromInt(math.MinInt64)
	maxTime = decimal.NewFromInt(math.MaxInt64)
)

func parseTime(v any) (int64, error) {
	switch x := v.(type) {
	case json.Number:
		return parseTime(x.String())
	case string:
		s := strings.TrimSpace(x)
		if s == "" {
			return 0, errors.New("empty time")
		}
		if d, err := decimal.NewFromString(s); err == nil {
			if !d.IsInteger() {
				return 0, fmt.Errorf("fractional time %q", s)
			}
			if d.LessThan(minTime) || d.GreaterThan(maxTime) {
				return 0, fmt.Errorf("time %s out of range", s)
			}
			return d.IntPart(), nil
		}
		// Accept RFC3339 or RFC3339Nano.
		t, err := time.Parse(time.RFC3339, s)
		if err != nil {
			t2, err2 := time.Parse(time.RFC3339Nano, s)
			if err2 != nil {
				return 0, fmt.Errorf("bad time %q: %w", s, err)
			}
			t = t2
		}
		return t.Unix(), nil
	default:
		f, err := parseNumber(v)
		if err != nil {
			return 0, err
		}
		if f != math.Trunc(f) {
			return 0, fmt.Errorf("fractional time %v", f)
		}
		if f < -(1<<63) || f >= 1<<63 {
			return 0, fmt.Errorf("time %v out of range", f)
		}
		return int64(f), nil
	}
}
