package outwriter

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/parityscope/parityscope/internal/contract"
)

// writeWithFile handles the common pattern of opening a file, writing to
// it, and cleaning up. It accepts a writer function that takes an
// io.Writer and returns an error.
func writeWithFile(outputFile string, writer func(io.Writer) error, successMsg string) error {
	file, err := contract.SelectOutputFile(outputFile)
	if err != nil {
		return err
	}
	// Only close if it's not stdout
	if file != os.Stdout {
		defer func() { _ = file.Close() }()
	}

	if err := writer(file); err != nil {
		return err
	}

	if file != os.Stdout {
		fmt.Fprintf(os.Stderr, "%s to %s\n", successMsg, outputFile)
	}
	return nil
}

// writeJSON is a generic JSON encoder that handles indentation consistently.
func writeJSON(w io.Writer, data any) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(data); err != nil {
		return fmt.Errorf("failed to encode JSON: %w", err)
	}
	return nil
}

// createFormatters creates the formatter closures shared across output
// types. fmtPct renders a fraction as a percentage; fmtRatio renders a
// PDR; both render nil as the missing-value marker.
func createFormatters(precision int) (fmtPct func(*float64) string, fmtRatio func(*float64) string) {
	fmtPct = func(v *float64) string {
		if v == nil {
			return missingValue
		}
		return fmt.Sprintf("%.*f%%", precision, *v*100)
	}
	fmtRatio = func(v *float64) string {
		if v == nil {
			return missingValue
		}
		return fmt.Sprintf("%.*f", precision, *v)
	}
	return fmtPct, fmtRatio
}

// csvOptional renders a nullable float for CSV output, using an empty
// cell for absent values.
func csvOptional(v *float64, precision int) string {
	if v == nil {
		return ""
	}
	return fmt.Sprintf("%.*f", precision, *v)
}
