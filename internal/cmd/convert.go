package cmd

import (
	"errors"
	"io"
	"os"

	tableparser "github.com/RedSunAtNight/TableParser"
	"github.com/spf13/cobra"
	"go.uber.org/multierr"
)

func newConvertCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "convert FILE",
		Short: "Rewrite a table with a different delimiter",
		Long: `Rewrite FILE with --out-delimiter, quoting cells that contain it.

Without --delimiter the whole table is loaded and its delimiter detected.
With --delimiter the file is streamed row by row instead.

Examples:
  # Semicolon separated export to TSV
  tableparser convert export.txt > export.tsv

  # Known pipe delimiter, CSV output with CRLF line endings
  tableparser convert -d '|' --out-delimiter , --crlf dump.psv.zst`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			w := tableparser.NewWriter(cmd.OutOrStdout())
			w.Delimiter = a.cfg.Output.Delimiter
			w.UseCRLF = a.cfg.Output.CRLF

			var err error
			if a.cfg.Detect.Delimiter != "" {
				err = a.convertStream(w, args[0])
			} else {
				err = a.convertTable(w, args[0])
			}
			if err != nil {
				return err
			}
			return w.Flush()
		},
	}

	cmd.Flags().StringP("delimiter", "d", "", "input delimiter; streams the file without detection")
	cmd.Flags().String("out-delimiter", "\t", "delimiter placed between output cells")
	cmd.Flags().Bool("crlf", false, "terminate output rows with \\r\\n")
	return cmd
}

func (a *app) convertTable(w *tableparser.Writer, path string) error {
	tbl, err := a.table(path)
	if err != nil {
		return err
	}
	records, err := tbl.Records()
	if err != nil {
		return err
	}
	return w.WriteAll(records)
}

func (a *app) convertStream(w *tableparser.Writer, path string) (err error) {
	f, err := os.Open(path) //nolint:gosec // path is chosen by the caller
	if err != nil {
		return &tableparser.FileError{Path: path, Err: err}
	}
	defer func() { err = multierr.Append(err, f.Close()) }()

	src, err := tableparser.NewDecompressor(f, tableparser.CompressionForPath(path))
	if err != nil {
		return &tableparser.FileError{Path: path, Err: err}
	}
	defer func() { err = multierr.Append(err, src.Close()) }()

	r := tableparser.NewReader(src)
	r.Delimiter = a.cfg.Detect.Delimiter
	r.ReuseRecord = true
	for {
		rec, err := r.Read()
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return &tableparser.FileError{Path: path, Line: r.Line(), Err: err}
		}
		if err := w.Write(rec); err != nil {
			return err
		}
	}
}
