package cmd

import (
	"github.com/draft-club/Entitity-Resolution-with-similarity-matching/internal/resolvecmd"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "resolver",
		Short: "Bibliographic entity resolution with similarity matching",
		Long: `Resolver ranks bibliographic records by how likely they are to duplicate
other records in the same table.

Every textual column is compared with TF-IDF cosine similarity over word
1-3 grams; an optional address-like column adds a Jaro-Winkler score. The
ranked table is exported as CSV plus a spreadsheet, with Parquet and SQLite
available on request.`,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			// Load .env file if present (ignore errors)
			_ = godotenv.Load()
		},
	}

	cmd.AddCommand(resolvecmd.NewRunCmd())
	cmd.AddCommand(resolvecmd.NewScoreCmd())
	cmd.AddCommand(resolvecmd.NewDescribeCmd())

	return cmd
}
