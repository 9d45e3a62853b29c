package resolvecmd

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/draft-club/Entitity-Resolution-with-similarity-matching/internal/dataset"
	"github.com/draft-club/Entitity-Resolution-with-similarity-matching/internal/prepare"
	"github.com/draft-club/Entitity-Resolution-with-similarity-matching/internal/table"
)

func executeDescribe(input, encoding string, sample int, outputYAML string, out io.Writer) error {
	loader := dataset.NewLoader(input, encoding)

	var (
		tbl *table.Table
		err error
	)
	if sample > 0 {
		slog.Info("Loading sample from dataset", "limit", sample)
		tbl, err = loader.LoadSample(sample)
	} else {
		slog.Info("Loading full dataset")
		tbl, err = loader.Load()
	}
	if err != nil {
		return fmt.Errorf("failed to load dataset: %w", err)
	}

	desc := prepare.Describe(tbl)
	desc.Print(out)

	if outputYAML != "" {
		if err := desc.SaveYAML(outputYAML); err != nil {
			return err
		}
		fmt.Fprintf(out, "\nDescription saved to: %s\n", outputYAML)
	}
	return nil
}
