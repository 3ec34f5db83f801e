package commands

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/username/bigmacindex/src/config"
	"github.com/username/bigmacindex/src/importer"
	"github.com/username/bigmacindex/src/logger"
	"github.com/username/bigmacindex/src/store/sqlite"
)

var csvPath string

var importCmd = &cobra.Command{
	Use:   "import",
	Short: "Load the Big Mac Index CSV into the database",
	Long: `Load the published Big Mac Index CSV into the database.

Rows are appended in one transaction; an existing table is kept and any
missing columns are added first.

Examples:
  bigmacindex import                              # Uses CSV_PATH
  bigmacindex import --csv big-mac-full-index.csv`,
	RunE: func(cmd *cobra.Command, args []string) error {
		path := csvPath
		if path == "" {
			path = config.Cfg.CSVPath
		}
		return runImport(cmd.Context(), cmd.OutOrStdout(), config.Cfg.DatabasePath, path, config.Cfg.CacheTTL)
	},
}

func init() {
	importCmd.Flags().StringVar(&csvPath, "csv", "", "CSV file to import (overrides CSV_PATH)")
}

// runImport writes through its own store handle, so a running server's result
// cache is not flushed; cacheTTL is only reported.
func runImport(ctx context.Context, out io.Writer, databasePath, path string, cacheTTL time.Duration) error {
	file, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open CSV file: %w", err)
	}
	defer file.Close()

	st, err := sqlite.New(databasePath)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer st.Close()

	start := time.Now()
	logger.L.Info("Importing CSV", "path", path, "database", databasePath)
	stats, err := importer.Import(ctx, file, st)
	if err != nil {
		return err
	}

	fmt.Fprintf(out, "Imported %s of %s rows (%s skipped, %s empty cells) in %s\n",
		humanize.Comma(int64(stats.Inserted)),
		humanize.Comma(int64(stats.Rows)),
		humanize.Comma(int64(stats.Skipped)),
		humanize.Comma(int64(stats.NullCells)),
		time.Since(start).Round(time.Millisecond))
	if stats.Inserted > 0 {
		fmt.Fprintf(out, "A running server keeps serving cached results for up to CACHE_TTL (%s); restart it to pick these rows up now\n",
			cacheTTL)
	}
	return nil
}
