package cmd

import (
	"fmt"
	"io"

	tableparser "github.com/RedSunAtNight/TableParser"
	"github.com/RedSunAtNight/TableParser/internal/report"
	"github.com/spf13/cobra"
	"go.uber.org/multierr"
	"go.uber.org/zap"
)

func newDetectCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "detect FILE...",
		Short: "Detect the delimiter of one or more tables",
		Long: `Detect the delimiter of each FILE and print a report.

The last row of the table seeds the candidate characters; each candidate must
occur equally often in every sampled row. Remaining ties are broken by a fixed
order of precedence: tab, stray punctuation, wrapper characters, quote
balancing, comma over period, and finally the most frequent character.

Examples:
  # Human readable report
  tableparser detect data.csv

  # Machine readable reports for several files
  tableparser detect --format json *.csv.gz`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			format, err := report.ParseFormat(a.cfg.Output.Format)
			if err != nil {
				return err
			}
			var errs error
			for _, path := range args {
				if err := a.detectFile(cmd.OutOrStdout(), path, format); err != nil {
					a.logger.Error("detection failed", zap.String("file", path), zap.Error(err))
					errs = multierr.Append(errs, err)
				}
			}
			return errs
		},
	}

	cmd.Flags().StringP("format", "o", "text", "report format (text/json/yaml)")
	cmd.Flags().Int("sample-rows", tableparser.DefaultSampleRows, "rows counted for tables longer than --truncate-above")
	cmd.Flags().Int("truncate-above", tableparser.DefaultTruncateAbove, "row count above which counting is truncated")
	return cmd
}

func (a *app) detectFile(w io.Writer, path string, format report.Format) error {
	rows, err := tableparser.Open(path)
	if err != nil {
		a.metrics.Observe(tableparser.Result{}, err)
		return err
	}
	res, err := a.detector().Detect(rows)
	a.metrics.Observe(res, err)
	if err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	return report.Render(w, format, report.FromResult(path, res))
}
