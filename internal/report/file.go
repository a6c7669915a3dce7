package report

import (
	"fmt"
	"os"
)

// WriteReport renders the reports as plain text into a file,
// overwriting any previous run's output.
func WriteReport(path string, reps ...*Report) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("writing report %s: %w", path, err)
	}
	// Warnings belong in the report file too, not on a stream that is
	// gone once the run ends.
	r := NewRenderer(f, f, ModeText)
	renderErr := r.RenderAll(reps)
	if closeErr := f.Close(); renderErr == nil {
		renderErr = closeErr
	}
	if renderErr != nil {
		return fmt.Errorf("writing report %s: %w", path, renderErr)
	}
	return nil
}
