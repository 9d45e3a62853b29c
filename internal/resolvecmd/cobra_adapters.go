package resolvecmd

import (
	"fmt"
	"os"

	"github.com/draft-club/Entitity-Resolution-with-similarity-matching/internal/results"
	"github.com/spf13/cobra"
)

// NewRunCmd creates the run command for the full pipeline described by config.yaml
func NewRunCmd() *cobra.Command {
	var configPath string
	var verbose bool

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run the full entity resolution pipeline from a config file",
		Long: `Load the source and target datasets, map their columns to the canonical
schema, drop sparse columns, normalize the address column, then score every
record against every other and export the ranked results.

Settings come from config.yaml (or --config) and may be overridden with
RESOLVER_* environment variables, e.g. RESOLVER_COLUMNS_ADDRESS_COLUMN.`,
		Example: `  # Use ./config.yaml
  resolver run

  # Use another config with debug logging
  resolver run --config configs/dblp-scholar.yaml --verbose`,
		RunE: func(cmd *cobra.Command, args []string) error {
			setupLogging(verbose)
			return executeRun(configPath, cmd.OutOrStdout())
		},
	}

	cmd.Flags().StringVar(&configPath, "config", "", "Path to config file (default ./config.yaml)")
	cmd.Flags().BoolVar(&verbose, "verbose", false, "Verbose logging")

	return cmd
}

// NewScoreCmd creates the score command for ranking a single file
func NewScoreCmd() *cobra.Command {
	var opts scoreOptions
	var verbose bool

	cmd := &cobra.Command{
		Use:   "score",
		Short: "Score and rank the records of one dataset file",
		Long: `Compute cosine_avg_sim, jaro_avg_sim and combined_avg_sim for every record
of a single CSV, TSV, JSONL or Parquet file and export the ranked table.

Column kinds are inferred from the data unless declared with --textual and
--structured. Only textual columns enter the cosine score.`,
		Example: `  # Rank a CSV and write results.csv and results.xlsx
  resolver score --input DBLP1.csv --output out/results.csv

  # Latin-1 input, address matching, extra formats
  resolver score --input Scholar.csv --encoding windows-1252 --address-column venue --formats csv,parquet,sqlite

  # Keep ids out of the cosine score
  resolver score --input DBLP1.csv --structured id,year`,
		RunE: func(cmd *cobra.Command, args []string) error {
			setupLogging(verbose)

			if _, err := os.Stat(opts.input); os.IsNotExist(err) {
				return fmt.Errorf("dataset file not found: %s", opts.input)
			}
			return executeScore(opts, cmd.OutOrStdout())
		},
	}

	cmd.Flags().StringVar(&opts.input, "input", "", "Path to dataset file (required)")
	cmd.Flags().StringVar(&opts.encoding, "encoding", "utf-8", "Encoding of CSV/TSV input")
	cmd.Flags().StringVar(&opts.output, "output", "entity_resolution_results.csv", "Base path for exported results")
	cmd.Flags().StringVar(&opts.addressColumn, "address-column", "", "Address-like column for Jaro-Winkler scoring")
	cmd.Flags().StringSliceVar(&opts.formats, "formats", []string{string(results.CSV), string(results.XLSX)}, "Export formats (csv, xlsx, parquet, sqlite)")
	cmd.Flags().StringSliceVar(&opts.textual, "textual", nil, "Columns to treat as textual")
	cmd.Flags().StringSliceVar(&opts.structured, "structured", nil, "Columns to treat as structured")
	cmd.Flags().StringVar(&opts.sortBy, "sort-by", "", "Column to order records by before limiting")
	cmd.Flags().IntVar(&opts.limit, "limit", 0, "Maximum number of records to score (0 for all)")
	cmd.Flags().IntVar(&opts.top, "top", 10, "Number of top ranked records to print")
	cmd.Flags().BoolVar(&verbose, "verbose", false, "Verbose logging")

	_ = cmd.MarkFlagRequired("input")
	return cmd
}

// NewDescribeCmd creates the describe command for profiling a dataset
func NewDescribeCmd() *cobra.Command {
	var input string
	var encoding string
	var sample int
	var outputYAML string
	var verbose bool

	cmd := &cobra.Command{
		Use:   "describe",
		Short: "Profile the columns of a dataset file",
		Long: `Print the inferred kind, missing values and unique values of every column,
plus how many cells are missing per row.`,
		Example: `  # Profile the first 1000 records
  resolver describe --input DBLP1.csv --sample 1000

  # Save the profile as YAML
  resolver describe --input Scholar.csv --encoding windows-1252 --output-yaml output/data_description.yaml`,
		RunE: func(cmd *cobra.Command, args []string) error {
			setupLogging(verbose)

			if _, err := os.Stat(input); os.IsNotExist(err) {
				return fmt.Errorf("dataset file not found: %s", input)
			}
			return executeDescribe(input, encoding, sample, outputYAML, cmd.OutOrStdout())
		},
	}

	cmd.Flags().StringVar(&input, "input", "", "Path to dataset file (required)")
	cmd.Flags().StringVar(&encoding, "encoding", "utf-8", "Encoding of CSV/TSV input")
	cmd.Flags().IntVar(&sample, "sample", 0, "Number of records to profile (0 for all)")
	cmd.Flags().StringVar(&outputYAML, "output-yaml", "", "Optional path to save the profile as YAML")
	cmd.Flags().BoolVar(&verbose, "verbose", false, "Verbose logging")

	_ = cmd.MarkFlagRequired("input")
	return cmd
}
