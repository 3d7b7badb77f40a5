package cmd

import (
	"github.com/RedSunAtNight/TableParser/internal/report"
	"github.com/RedSunAtNight/TableParser/internal/watch"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func newWatchCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "watch FILE",
		Short: "Re-detect the delimiter whenever a table changes",
		Long: `Print a detection report for FILE, then again each time it is written,
until interrupted.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			format, err := report.ParseFormat(a.cfg.Output.Format)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			path := args[0]

			if err := a.detectFile(out, path, format); err != nil {
				a.logger.Warn("initial detection failed", zap.String("file", path), zap.Error(err))
			}

			w, err := watch.New(path, a.cfg.Watch.Debounce, func(string) {
				if err := a.detectFile(out, path, format); err != nil {
					a.logger.Warn("detection failed", zap.String("file", path), zap.Error(err))
				}
			}, a.logger)
			if err != nil {
				return err
			}
			defer func() { _ = w.Close() }()

			a.logger.Info("watching", zap.String("file", w.Path()))
			return w.Run(cmd.Context())
		},
	}

	cmd.Flags().StringP("format", "o", "text", "report format (text/json/yaml)")
	cmd.Flags().Duration("debounce", 0, "quiet period before re-detecting (default from config, 200ms)")
	return cmd
}
