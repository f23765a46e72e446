package contract

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/fatih/color"
)

// Diversity label constants, keyed on the 0-100 diversity score.
const (
	StrongValue   = "Strong"   // near-parity across domains
	AdequateValue = "Adequate" // most domains near parity
	LimitedValue  = "Limited"  // notable representation gaps
	PoorValue     = "Poor"     // severe representation gaps
)

// Color variables for console output.
var (
	StrongColor   = color.New(color.FgGreen, color.Bold) // strongColor signals a healthy design.
	AdequateColor = color.New(color.FgCyan)              // adequateColor signals acceptable parity.
	LimitedColor  = color.New(color.FgYellow)            // limitedColor signals caution.
	PoorColor     = color.New(color.FgRed, color.Bold)   // poorColor signals severe gaps.
)

// GetPlainLabel returns a plain text label for a 0-100 diversity score.
// This is the core logic used for CSV, JSON, and table printing.
func GetPlainLabel(score float64) string {
	switch {
	case score >= 80:
		return StrongValue
	case score >= 60:
		return AdequateValue
	case score >= 40:
		return LimitedValue
	default:
		return PoorValue
	}
}

// GetColorLabel returns a colored text label for console output (table).
// It uses GetPlainLabel to determine the string, and then applies the
// appropriate color.
func GetColorLabel(score float64) string {
	text := GetPlainLabel(score)

	switch text {
	case StrongValue:
		return StrongColor.Sprint(text)
	case AdequateValue:
		return AdequateColor.Sprint(text)
	case LimitedValue:
		return LimitedColor.Sprint(text)
	default: // "Poor"
		return PoorColor.Sprint(text)
	}
}

// SelectOutputFile returns the appropriate file handle for output, based
// on the provided file path. An empty path means stdout.
func SelectOutputFile(filePath string) (*os.File, error) {
	if filePath == "" {
		return os.Stdout, nil
	}
	return os.Create(filePath)
}

// TruncateLabel shortens a display label to max runes, marking the cut
// with a trailing ellipsis. Labels at or under the limit pass through.
func TruncateLabel(label string, max int) string {
	if max <= 1 {
		return label
	}
	runes := []rune(label)
	if len(runes) <= max {
		return label
	}
	return string(runes[:max-1]) + "…"
}

// GetHistoryDBFilePath returns the path to the SQLite DB file for run
// history storage.
func GetHistoryDBFilePath() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ".parityscope_history.db"
	}
	return filepath.Join(homeDir, ".parityscope_history.db")
}

// LogFatal logs an error and exits the program.
func LogFatal(msg string, err error) {
	_, _ = fmt.Fprintf(os.Stderr, "Fatal %s: %v\n", msg, err)
	os.Exit(1)
}

// LogWarn logs a warning message to stderr.
func LogWarn(msg string, err error) {
	if err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "Warning: %s: %v\n", msg, err)
		return
	}
	_, _ = fmt.Fprintf(os.Stderr, "Warning: %s\n", msg)
}
