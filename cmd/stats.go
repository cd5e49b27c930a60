package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/bisegni/lcdio/pkg/reader"
)

var statsCmd = &cobra.Command{
	Use:   "stats [file]",
	Short: "Show record count and field names of a data file",
	Long: `Scan the file once and report how many records it holds, the field
names of the first record, and whether the format knew the row count
up front (columnar and relational sources do).

Examples:
  lcdio stats names.csv --header
  lcdio stats traces.parquet
  lcdio stats chinook.db --table albums`,
	Args: cobra.ExactArgs(1),
	RunE: runStats,
}

func init() {
	rootCmd.AddCommand(statsCmd)
}

func runStats(cmd *cobra.Command, args []string) error {
	logger := newLogger()
	defer logger.Sync()

	opts, err := openOptions(logger)
	if err != nil {
		return err
	}
	s, err := reader.Open(sourceArg(args[0]), opts...)
	if err != nil {
		return err
	}
	defer s.Close()

	declared, sized := s.Len()

	var fields []string
	hasHeader := false
	count := 0
	width := 0
	for s.Next() {
		rec := s.Record()
		if count == 0 {
			fields = rec.Fields()
			hasHeader = rec.HasHeader()
			width = rec.Len()
		}
		count++
	}
	if err := s.Err(); err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "records: %d\n", count)
	if sized {
		fmt.Fprintf(out, "declared length: %d\n", declared)
	} else {
		fmt.Fprintln(out, "declared length: not supported by this format")
	}
	if hasHeader {
		fmt.Fprintf(out, "fields (%d): %s\n", len(fields), strings.Join(fields, ", "))
	} else if count > 0 {
		fmt.Fprintf(out, "fields: none (first record has %d positional values)\n", width)
	}
	return nil
}
