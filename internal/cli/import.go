package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/GaiusCaesarBC/Nexus-Signal-Frontend-sub002/store"
)

func newImportCmd(rc *RootConfig) *cobra.Command {
	var (
		file   string
		format string
		symbol string
	)

	cmd := &cobra.Command{
		Use:   "import",
		Short: "Import a CSV or JSON bar file into the SQLite database",
		Long: `Validate a bar file and upsert it into the --db database under a symbol.

Example:
  signals import --file eurusd_h1.csv --symbol EUR_USD --db ./signals.sqlite`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if symbol == "" {
				return fmt.Errorf("--symbol is required")
			}
			if format == "" {
				format = formatFromPath(file)
			}

			bars, err := readBarsFile(file, format)
			if err != nil {
				return err
			}

			db, err := store.Open(rc.DBPath)
			if err != nil {
				return err
			}
			defer db.Close()

			if err := db.InsertBars(cmd.Context(), symbol, bars); err != nil {
				return err
			}

			counts, err := db.Symbols(cmd.Context())
			if err != nil {
				return err
			}
			rc.Logger.Info("imported bars",
				zap.String("symbol", symbol),
				zap.Int("bars", len(bars)),
				zap.Int("stored", counts[symbol]),
				zap.String("db", rc.DBPath))
			fmt.Fprintf(cmd.OutOrStdout(), "✓ Imported %d bars for %s (%d stored)\n", len(bars), symbol, counts[symbol])
			return nil
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "", "Bar file to import (required)")
	cmd.Flags().StringVar(&format, "format", "", "File format: csv|json (default from extension)")
	cmd.Flags().StringVar(&symbol, "symbol", "", "Symbol to store the bars under (required)")
	_ = cmd.MarkFlagRequired("file")

	return cmd
}
