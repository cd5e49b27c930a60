package cmd

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/bisegni/lcdio/pkg/path"
	"github.com/bisegni/lcdio/pkg/reader"
	"github.com/bisegni/lcdio/pkg/record"
)

var (
	flagMode        string
	flagHeader      bool
	flagTable       string
	flagLimit       int
	flagPretty      bool
	flagVerbose     bool
	flagInteractive bool
)

var rootCmd = &cobra.Command{
	Use:   "lcdio [file] [path]",
	Short: "Uniform reader for CSV, TSV, JSON, JSONL, YAML, TOML, Parquet and SQLite files",
	Long: `lcdio reads heterogeneous data files through one record model:
every row or document becomes a record you can index by position,
by field name, or by a compound path into nested data.

The format is guessed from the file extension, or forced with --mode.

Examples:
  lcdio names.csv --header
  lcdio names.csv --header name
  lcdio data.json 'items[0].name'
  lcdio config.toml 'a.better'
  lcdio traces.parquet --limit 10
  lcdio chinook.db --table albums
  cat rows.jsonl | lcdio --mode jsonl -`,
	Args:          cobra.RangeArgs(1, 2),
	RunE:          runRoot,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&flagMode, "mode", "", "format mode (csv, tsv, json, jsonl, yaml, toml, parquet, sqlite)")
	pf.BoolVar(&flagHeader, "header", false, "treat the first row of delimited text as field names")
	pf.StringVar(&flagTable, "table", "", "table to read from a SQLite database (default: first table)")
	pf.BoolVarP(&flagVerbose, "verbose", "v", false, "log adapter selection and per-record warnings")

	rootCmd.Flags().IntVar(&flagLimit, "limit", 0, "stop after this many records (0 = all)")
	rootCmd.Flags().BoolVar(&flagPretty, "pretty", false, "indent the JSON output")
	rootCmd.Flags().BoolVarP(&flagInteractive, "interactive", "i", false, "explore the file in a path REPL")

	viper.SetEnvPrefix("lcdio")
	viper.AutomaticEnv()
	_ = viper.BindPFlag("limit", rootCmd.Flags().Lookup("limit"))
	_ = viper.BindPFlag("pretty", rootCmd.Flags().Lookup("pretty"))
	_ = viper.BindPFlag("mode", pf.Lookup("mode"))
}

func newLogger() *zap.Logger {
	if !flagVerbose {
		return zap.NewNop()
	}
	logger, err := zap.NewDevelopment()
	if err != nil {
		return zap.NewNop()
	}
	return logger
}

// openOptions assembles the reader options shared by all commands.
func openOptions(logger *zap.Logger) ([]reader.Option, error) {
	opts := []reader.Option{
		reader.WithHeader(flagHeader),
		reader.WithLogger(logger),
	}
	if mode := viper.GetString("mode"); mode != "" {
		valid := false
		for _, m := range reader.Modes() {
			if string(m) == mode {
				valid = true
				break
			}
		}
		if !valid {
			return nil, errors.Wrapf(reader.ErrUnknownMode, "%q", mode)
		}
		opts = append(opts, reader.WithMode(reader.Mode(mode)))
	}
	if flagTable != "" {
		opts = append(opts, reader.WithTable(flagTable))
	}
	return opts, nil
}

// sourceArg maps the conventional "-" argument to stdin.
func sourceArg(arg string) any {
	if arg == "-" {
		return any(os.Stdin)
	}
	return arg
}

func runRoot(cmd *cobra.Command, args []string) error {
	logger := newLogger()
	defer logger.Sync()

	opts, err := openOptions(logger)
	if err != nil {
		return err
	}

	if flagInteractive {
		return runInteractive(sourceArg(args[0]), opts)
	}

	var indices []record.Index
	if len(args) == 2 {
		if indices, err = path.Parse(args[1]); err != nil {
			return err
		}
	}

	s, err := reader.Open(sourceArg(args[0]), opts...)
	if err != nil {
		return err
	}
	defer s.Close()

	limit := viper.GetInt("limit")
	count := 0
	for s.Next() {
		if limit > 0 && count >= limit {
			break
		}
		count++
		rec := s.Record()
		if len(indices) == 0 {
			if err := printJSON(cmd.OutOrStdout(), rec); err != nil {
				return err
			}
			continue
		}
		val, err := rec.Resolve(indices...)
		if err != nil {
			// Keep scanning: heterogeneous rows may simply lack the
			// field. The failure still shows up under --verbose.
			logger.Warn("resolve failed", zap.Int("record", count), zap.Error(err))
			val = record.Null()
		}
		if err := printJSON(cmd.OutOrStdout(), val); err != nil {
			return err
		}
	}
	return s.Err()
}

func printJSON(w io.Writer, v json.Marshaler) error {
	b, err := v.MarshalJSON()
	if err != nil {
		return err
	}
	if viper.GetBool("pretty") {
		var buf bytes.Buffer
		if err := json.Indent(&buf, b, "", "  "); err != nil {
			return err
		}
		b = buf.Bytes()
	}
	_, err = fmt.Fprintln(w, string(b))
	return err
}
