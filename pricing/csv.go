package pricing

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// ReadCSV reads bar rows of the form:
//
//	time,open,high,low,close[,volume]
//
// where time is an integer ordinal/unix timestamp or RFC3339(Nano).
// A single header row ("time,...") is allowed. Empty and short rows are
// skipped. The result is normalized like any other record source.
func ReadCSV(r io.Reader) ([]Bar, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	var (
		records  []Record
		sawFirst bool
		line     int
	)
	for {
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read csv: %w", err)
		}
		line++
		if len(row) == 0 {
			continue
		}

		// Allow a single header row
		if !sawFirst {
			sawFirst = true
			if strings.EqualFold(strings.TrimSpace(row[0]), "time") {
				continue
			}
		}

		rec, ok := csvRecord(row)
		if !ok {
			continue
		}
		records = append(records, rec)
	}

	return Normalize(records)
}

func csvRecord(row []string) (Record, bool) {
	// Need at least: time,open,high,low,close
	if len(row) < 5 {
		return nil, false
	}
	ts := strings.TrimSpace(row[0])
	if ts == "" {
		return nil, false
	}

	rec := Record{
		"time":  ts,
		"open":  strings.TrimSpace(row[1]),
		"high":  strings.TrimSpace(row[2]),
		"low":   strings.TrimSpace(row[3]),
		"close": strings.TrimSpace(row[4]),
	}
	if len(row) > 5 {
		if v := strings.TrimSpace(row[5]); v != "" {
			rec["volume"] = v
		}
	}
	return rec, true
}

// WriteCSV writes bars in the format ReadCSV accepts, header included.
func WriteCSV(w io.Writer, bars []Bar) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"time", "open", "high", "low", "close", "volume"}); err != nil {
		return err
	}
	for _, b := range bars {
		err := cw.Write([]string{
			fmt.Sprint(b.Time),
			f(b.Open),
			f(b.High),
			f(b.Low),
			f(b.Close),
			f(b.Volume),
		})
		if err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func f(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
