// Package cmd implements the tableparser command line.
package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	tableparser "github.com/RedSunAtNight/TableParser"
	"github.com/RedSunAtNight/TableParser/internal/config"
	"github.com/RedSunAtNight/TableParser/internal/logging"
	"github.com/RedSunAtNight/TableParser/internal/metrics"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

// flagKeys maps command line flags to config keys. A flag is bound only on
// the command that defines it.
var flagKeys = map[string]string{
	"log-level":        "log.level",
	"log-format":       "log.format",
	"metrics-textfile": "metrics.textfile",
	"format":           "output.format",
	"out-delimiter":    "output.delimiter",
	"crlf":             "output.crlf",
	"delimiter":        "detect.delimiter",
	"sample-rows":      "detect.sample_rows",
	"truncate-above":   "detect.truncate_above",
	"debounce":         "watch.debounce",
}

// app carries the state shared by every command of one invocation.
type app struct {
	v       *viper.Viper
	cfgFile string

	cfg     *config.Config
	logger  *zap.Logger
	metrics *metrics.Collector
}

// Execute runs the root command until it finishes or the process is
// interrupted.
func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return NewRootCmd().ExecuteContext(ctx)
}

// NewRootCmd builds the command tree with a fresh configuration.
func NewRootCmd() *cobra.Command {
	a := &app{v: viper.New(), logger: zap.NewNop()}

	root := &cobra.Command{
		Use:   "tableparser",
		Short: "Infer the delimiter of text tables and split them into columns",
		Long: `tableparser guesses the field separator of a row-oriented text table
(CSV, TSV, pipe- or semicolon-separated, ...) from the data itself,
reports the column count, and splits or converts the table.

Compressed inputs (.gz, .zst, .lz4, .sz) are decoded transparently.`,
		SilenceUsage:       true,
		PersistentPreRunE:  a.setup,
		PersistentPostRunE: a.teardown,
	}

	root.PersistentFlags().StringVarP(&a.cfgFile, "config", "c", "", "config file (default is $HOME/.config/tableparser/config.yaml)")
	root.PersistentFlags().String("log-level", "info", "log level (debug/info/warn/error)")
	root.PersistentFlags().String("log-format", "console", "log format (console/json)")
	root.PersistentFlags().String("metrics-textfile", "", "write Prometheus metrics to this file after the command")

	root.AddCommand(
		newDetectCmd(a),
		newSplitCmd(a),
		newConvertCmd(a),
		newWatchCmd(a),
		newVersionCmd(),
	)
	return root
}

func (a *app) setup(cmd *cobra.Command, _ []string) error {
	config.Configure(a.v, a.cfgFile)
	for name, key := range flagKeys {
		if f := cmd.Flags().Lookup(name); f != nil {
			if err := a.v.BindPFlag(key, f); err != nil {
				return err
			}
		}
	}
	if err := config.ReadInConfig(a.v); err != nil {
		return err
	}

	cfg, err := config.Load(a.v)
	if err != nil {
		return err
	}
	a.cfg = cfg

	logCfg := logging.DefaultConfig()
	logCfg.Level = cfg.Log.Level
	logCfg.Encoding = cfg.Log.Format
	logCfg.Development = cfg.Log.Development
	logger, err := logging.New(logCfg)
	if err != nil {
		return err
	}
	a.logger = logger
	a.metrics = metrics.NewCollector()

	if used := a.v.ConfigFileUsed(); used != "" {
		a.logger.Debug("loaded config", zap.String("file", used))
	}
	return nil
}

func (a *app) teardown(_ *cobra.Command, _ []string) error {
	defer func() { _ = a.logger.Sync() }()
	if a.cfg == nil || a.cfg.Metrics.Textfile == "" {
		return nil
	}
	return a.metrics.WriteTextfile(a.cfg.Metrics.Textfile)
}

// detector builds a Detector from the loaded configuration.
func (a *app) detector() *tableparser.Detector {
	opts := append(a.cfg.DetectorOptions(), tableparser.WithLogger(a.logger))
	return tableparser.NewDetector(opts...)
}

// table opens path and prepares a Table, honouring a configured delimiter.
func (a *app) table(path string) (*tableparser.Table, error) {
	rows, err := tableparser.Open(path)
	if err != nil {
		a.metrics.Observe(tableparser.Result{}, err)
		return nil, err
	}
	tbl := tableparser.NewTable(rows, a.detector())
	if d := a.cfg.Detect.Delimiter; d != "" {
		tbl.SetDelimiter(d)
		return tbl, nil
	}
	res, err := tbl.Detect()
	a.metrics.Observe(res, err)
	if err != nil {
		return nil, err
	}
	a.logger.Info("detected delimiter",
		zap.String("file", path),
		zap.String("delimiter", tableparser.DelimiterName(res.Delimiter)),
		zap.Int("columns", res.Columns),
		zap.Stringer("status", res.Status))
	return tbl, nil
}
