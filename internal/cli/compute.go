package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/GaiusCaesarBC/Nexus-Signal-Frontend-sub002/indicators"
	"github.com/GaiusCaesarBC/Nexus-Signal-Frontend-sub002/internal/engine"
	"github.com/GaiusCaesarBC/Nexus-Signal-Frontend-sub002/internal/report"
	"github.com/GaiusCaesarBC/Nexus-Signal-Frontend-sub002/pricing"
)

func newComputeCmd(rc *RootConfig) *cobra.Command {
	var (
		inputPath   string
		inputFormat string
		symbol      string
		fromStr     string
		toStr       string
		specs       []string
		outputPath  string
		outFormat   string
	)

	cmd := &cobra.Command{
		Use:   "compute",
		Short: "Compute indicators over a bar file or stored symbol",
		Long: `Compute one or more indicators and write a report.

Bars come from the config file's input section unless overridden by flags.
Indicators use the shorthand name[:params], e.g.

  signals compute -i bars.csv --indicator sma:20 --indicator macd:12,26,9
  signals compute --format sqlite --symbol EUR_USD --indicator atr:14,wilder -o atr.csv --out-format csv`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := *rc.Config
			flags := cmd.Flags()

			if flags.Changed("input") {
				cfg.Input.Path = inputPath
				if !flags.Changed("format") {
					cfg.Input.Format = formatFromPath(inputPath)
				}
			}
			if flags.Changed("format") {
				cfg.Input.Format = inputFormat
			}
			if flags.Changed("symbol") {
				cfg.Input.Symbol = symbol
			}
			if cfg.Input.Format == "sqlite" && !flags.Changed("input") {
				// A configured sqlite path wins unless --db is given.
				fromConfig := rc.Config.Input.Format == "sqlite" && cfg.Input.Path != ""
				if cmd.Flag("db").Changed || !fromConfig {
					cfg.Input.Path = rc.DBPath
				}
			}

			var err error
			if fromStr != "" {
				if cfg.Input.From, err = pricing.ParseTime(fromStr); err != nil {
					return fmt.Errorf("bad --from: %w", err)
				}
			}
			if toStr != "" {
				if cfg.Input.To, err = pricing.ParseTime(toStr); err != nil {
					return fmt.Errorf("bad --to: %w", err)
				}
			}

			if len(specs) > 0 {
				cfg.Indicators = make([]indicators.Spec, 0, len(specs))
				for _, s := range specs {
					spec, err := parseIndicator(s)
					if err != nil {
						return err
					}
					cfg.Indicators = append(cfg.Indicators, spec)
				}
			}
			if flags.Changed("output") {
				cfg.Output.Path = outputPath
			}
			if flags.Changed("out-format") {
				cfg.Output.Format = outFormat
			}

			if err := cfg.Validate(); err != nil {
				return err
			}

			ctx := cmd.Context()
			bars, err := loadBars(ctx, cfg.Input)
			if err != nil {
				return err
			}
			rc.Logger.Info("loaded bars",
				zap.String("source", cfg.Input.Path),
				zap.String("symbol", cfg.Input.Symbol),
				zap.Int("bars", len(bars)))

			eng := engine.New(rc.Logger, engine.WithLimit(cfg.Server.Workers))
			results, err := eng.ComputeAll(ctx, bars, cfg.Indicators)
			if err != nil {
				return err
			}

			rep := report.NewBuilder(nil).Build(cfg.Input.Symbol, bars, results)

			if err := writeReport(cmd.OutOrStdout(), cfg.Output.Path, cfg.Output.Format, rep); err != nil {
				return err
			}

			rc.Logger.Info("report written",
				zap.String("id", rep.ID),
				zap.Int("indicators", len(results)),
				zap.String("output", cfg.Output.Path))
			return nil
		},
	}

	cmd.Flags().StringVarP(&inputPath, "input", "i", "", "Bar file (CSV or JSON)")
	cmd.Flags().StringVar(&inputFormat, "format", "", "Input format: csv|json|sqlite")
	cmd.Flags().StringVar(&symbol, "symbol", "", "Symbol (required for sqlite input)")
	cmd.Flags().StringVar(&fromStr, "from", "", "Start time inclusive (unix seconds or RFC3339)")
	cmd.Flags().StringVar(&toStr, "to", "", "End time exclusive (unix seconds or RFC3339)")
	cmd.Flags().StringArrayVar(&specs, "indicator", nil, "Indicator name[:params] (repeatable)")
	cmd.Flags().StringVarP(&outputPath, "output", "o", "", "Report file (default stdout)")
	cmd.Flags().StringVar(&outFormat, "out-format", "", "Report format: json|csv")

	return cmd
}

// writeReport writes rep to path, or to w when path is empty.
func writeReport(w io.Writer, path, format string, rep report.Report) (err error) {
	if path == "" {
		return report.Write(w, format, rep)
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()

	return report.Write(f, format, rep)
}
