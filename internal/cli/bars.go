package cli

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/GaiusCaesarBC/Nexus-Signal-Frontend-sub002/config"
	"github.com/GaiusCaesarBC/Nexus-Signal-Frontend-sub002/indicators"
	"github.com/GaiusCaesarBC/Nexus-Signal-Frontend-sub002/pricing"
	"github.com/GaiusCaesarBC/Nexus-Signal-Frontend-sub002/store"
)

// loadBars reads the bars described by in, restricted to [From, To).
func loadBars(ctx context.Context, in config.InputConfig) ([]pricing.Bar, error) {
	if in.Format == "sqlite" {
		db, err := store.Open(in.Path)
		if err != nil {
			return nil, err
		}
		defer db.Close()
		return db.LoadBars(ctx, in.Symbol, in.From, in.To)
	}

	bars, err := readBarsFile(in.Path, in.Format)
	if err != nil {
		return nil, err
	}
	return pricing.Window(bars, in.From, in.To), nil
}

// readBarsFile decodes a CSV or JSON bar file.
func readBarsFile(path, format string) ([]pricing.Bar, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var bars []pricing.Bar
	switch format {
	case "csv":
		bars, err = pricing.ReadCSV(f)
	case "json":
		bars, err = pricing.DecodeJSON(f)
	default:
		return nil, fmt.Errorf("unsupported input format %q", format)
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return bars, nil
}

// formatFromPath guesses csv or json from a file extension.
func formatFromPath(path string) string {
	if strings.HasSuffix(strings.ToLower(path), ".json") {
		return "json"
	}
	return "csv"
}

// parseIndicator parses the --indicator shorthand: a name optionally
// followed by ":" and comma separated parameters, e.g. "sma:20",
// "macd:12,26,9", "bollinger:20,2.5", "atr:14,wilder" or "vwap".
func parseIndicator(s string) (indicators.Spec, error) {
	name, params, _ := strings.Cut(strings.TrimSpace(s), ":")
	spec := indicators.Spec{Name: strings.ToLower(name)}

	var args []string
	if params != "" {
		args = strings.Split(params, ",")
	}
	ints := func(dst ...*int) error {
		if len(args) > len(dst) {
			return fmt.Errorf("indicator %q: too many parameters", s)
		}
		for i, a := range args {
			n, err := strconv.Atoi(strings.TrimSpace(a))
			if err != nil {
				return fmt.Errorf("indicator %q: bad parameter %q", s, a)
			}
			*dst[i] = n
		}
		return nil
	}

	var err error
	switch spec.Name {
	case indicators.NameSMA, indicators.NameEMA, indicators.NameRSI:
		err = ints(&spec.Period)
	case indicators.NameMACD:
		err = ints(&spec.Fast, &spec.Slow, &spec.Signal)
	case indicators.NameBollinger:
		if len(args) == 2 {
			m, perr := strconv.ParseFloat(strings.TrimSpace(args[1]), 64)
			if perr != nil {
				return spec, fmt.Errorf("indicator %q: bad multiplier %q", s, args[1])
			}
			spec.Multiplier = m
			args = args[:1]
		}
		err = ints(&spec.Period)
	case indicators.NameATR:
		if len(args) == 2 {
			spec.Smoothing = strings.ToLower(strings.TrimSpace(args[1]))
			args = args[:1]
		}
		err = ints(&spec.Period)
	case indicators.NameVWAP:
		if len(args) > 0 {
			err = fmt.Errorf("indicator %q: vwap takes no parameters", s)
		}
	}
	if err != nil {
		return spec, err
	}
	return spec, spec.Validate()
}
