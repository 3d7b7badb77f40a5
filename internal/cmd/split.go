package cmd

import (
	"bufio"
	"strings"

	"github.com/spf13/cobra"
)

func newSplitCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "split FILE",
		Short: "Split a table into cells",
		Long: `Split every row of FILE into cells and print them joined by --out-delimiter.

The delimiter is detected unless --delimiter is given. A manual delimiter may
be several characters long; the column count is then taken from the first row.
Rows with fewer delimiters than the first are an error. Surplus delimiters stay
in the last cell.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			tbl, err := a.table(args[0])
			if err != nil {
				return err
			}
			records, err := tbl.Records()
			if err != nil {
				return err
			}

			out := bufio.NewWriter(cmd.OutOrStdout())
			for _, rec := range records {
				if _, err := out.WriteString(strings.Join(rec, a.cfg.Output.Delimiter)); err != nil {
					return err
				}
				if err := out.WriteByte('\n'); err != nil {
					return err
				}
			}
			return out.Flush()
		},
	}

	cmd.Flags().StringP("delimiter", "d", "", "input delimiter; skips detection")
	cmd.Flags().String("out-delimiter", "\t", "delimiter placed between output cells")
	return cmd
}
