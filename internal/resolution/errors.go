package resolution

import "fmt"

// DataQualityError means the input cannot be scored as given: an attribute
// whose whole corpus is empty after preprocessing, or a table with no
// textual attributes at all. It is not recoverable without fixing the data.
type DataQualityError struct {
	Column string
	Reason string
}

func (e *DataQualityError) Error() string {
	if e.Column == "" {
		return fmt.Sprintf("data quality: %s", e.Reason)
	}
	return fmt.Sprintf("data quality: column %q: %s", e.Column, e.Reason)
}

// ExportError wraps any failure while writing ranked results
type ExportError struct {
	Path   string
	Format string
	Err    error
}

func (e *ExportError) Error() string {
	return fmt.Sprintf("failed to export %s results to %s: %v", e.Format, e.Path, e.Err)
}

func (e *ExportError) Unwrap() error {
	return e.Err
}
