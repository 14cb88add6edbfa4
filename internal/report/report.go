// Package report wraps indicator outputs in an identified envelope and
// writes them as JSON or long-format CSV.
package report

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/GaiusCaesarBC/Nexus-Signal-Frontend-sub002/indicators"
	"github.com/GaiusCaesarBC/Nexus-Signal-Frontend-sub002/pkg/id"
	"github.com/GaiusCaesarBC/Nexus-Signal-Frontend-sub002/pricing"
)

// Output formats.
const (
	FormatJSON = "json"
	FormatCSV  = "csv"
)

type Report struct {
	ID          string              `json:"id"`
	Symbol      string              `json:"symbol,omitempty"`
	GeneratedAt time.Time           `json:"generated_at"`
	Bars        int                 `json:"bars"`
	From        int64               `json:"from,omitempty"`
	To          int64               `json:"to,omitempty"`
	Results     []indicators.Output `json:"results"`
}

// Builder stamps reports with IDs and generation times.
type Builder struct {
	ids *id.Generator
	now func() time.Time
}

// NewBuilder returns a Builder using clock now (time.Now when nil).
func NewBuilder(now func() time.Time) *Builder {
	if now == nil {
		now = time.Now
	}
	return &Builder{ids: id.NewGenerator(now), now: now}
}

// Build assembles a report for the outputs computed over bars.
func (b *Builder) Build(symbol string, bars []pricing.Bar, results []indicators.Output) Report {
	if results == nil {
		results = []indicators.Output{}
	}
	r := Report{
		ID:          b.ids.New(),
		Symbol:      symbol,
		GeneratedAt: b.now().UTC(),
		Bars:        len(bars),
		Results:     results,
	}
	if len(bars) > 0 {
		r.From = bars[0].Time
		r.To = bars[len(bars)-1].Time
	}
	return r
}

// Write encodes r to w in the given format.
func Write(w io.Writer, format string, r Report) error {
	switch format {
	case FormatJSON, "":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(r)
	case FormatCSV:
		return WriteCSV(w, r)
	default:
		return fmt.Errorf("unknown output format %q", format)
	}
}

// WriteCSV writes one row per point:
//
//	indicator,line,time,value,color
//
// Lines are emitted in sorted order; histogram rows use line "histogram".
func WriteCSV(w io.Writer, r Report) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"indicator", "line", "time", "value", "color"}); err != nil {
		return err
	}

	for _, res := range r.Results {
		for _, line := range res.LineNames() {
			for _, p := range res.Lines[line] {
				if err := cw.Write([]string{res.Key, line, strconv.FormatInt(p.Time, 10), f(p.Value), ""}); err != nil {
					return err
				}
			}
		}
		for _, h := range res.Histogram {
			if err := cw.Write([]string{res.Key, "histogram", strconv.FormatInt(h.Time, 10), f(h.Value), h.Color}); err != nil {
				return err
			}
		}
	}

	cw.Flush()
	return cw.Error()
}

func f(x float64) string {
	return strconv.FormatFloat(x, 'f', -1, 64)
}
