package contract

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/fatih/color"
	"github.com/vanadhikar/sifarish/schema"
)

// Priority label constants for display.
const (
	HighLabel   = "High"
	MediumLabel = "Medium"
	LowLabel    = "Low"
)

// Color variables for console output.
var (
	HighColor   = color.New(color.FgRed, color.Bold) // highColor flags the most urgent third.
	MediumColor = color.New(color.FgYellow)          // mediumColor represents standard caution, not bold.
	LowColor    = color.New(color.FgCyan)            // lowColor represents informational / low-priority signal.
)

// GetPlainLabel returns the plain text label for a priority tier. This is the
// core logic used for CSV, JSON, and table printing.
func GetPlainLabel(p schema.PriorityLevel) string {
	switch p {
	case schema.HighPriority:
		return HighLabel
	case schema.LowPriority:
		return LowLabel
	default:
		return MediumLabel
	}
}

// GetColorLabel returns a colored text label for console output (table).
// It uses GetPlainLabel to determine the string, then applies the color.
func GetColorLabel(p schema.PriorityLevel) string {
	text := GetPlainLabel(p)
	switch p {
	case schema.HighPriority:
		return HighColor.Sprint(text)
	case schema.LowPriority:
		return LowColor.Sprint(text)
	default:
		return MediumColor.Sprint(text)
	}
}

// SelectOutputFile returns the appropriate file handle for output, based on
// the provided file path. It falls back to os.Stdout when no path is given.
func SelectOutputFile(filePath string) (*os.File, error) {
	if filePath == "" {
		return os.Stdout, nil
	}
	return os.Create(filePath)
}

// TruncateText shortens a display string to maxLen runes, keeping the tail
// visible since names and locations differ most at the end.
func TruncateText(s string, maxLen int) string {
	if maxLen <= 0 || len([]rune(s)) <= maxLen {
		return s
	}
	rr := []rune(s)
	if maxLen <= 3 {
		return string(rr[:maxLen])
	}
	return "..." + string(rr[len(rr)-(maxLen-3):])
}

// LogFatal logs an error and exits the program.
func LogFatal(msg string, err error) {
	_, _ = fmt.Fprintf(os.Stderr, "Fatal %s: %v\n", msg, err)
	os.Exit(1)
}

// LogWarn logs a warning message to stderr.
func LogWarn(msg string, err error) {
	_, _ = fmt.Fprintf(os.Stderr, "Warn %s: %v\n", msg, err)
}

// LogRecommendHeader prints a concise, 2-line header for a recommendation run.
func LogRecommendHeader(cfg *Config) {
	name := filepath.Base(cfg.ClaimsPath)
	if name == "" || name == "." {
		name = "claims"
	}

	mode := "multi-scheme"
	if cfg.Filters.SchemeID != "" {
		mode = "scheme: " + cfg.Filters.SchemeID
	}
	fmt.Printf("🔎 Claims: %s (%s)\n", name, mode)

	if active := describeFilters(cfg.Filters); active != "" {
		fmt.Printf("🧭 Filters: %s\n", active)
	}
}

// describeFilters renders the non-empty facets for the run header.
func describeFilters(f schema.Filters) string {
	var parts []string
	add := func(label, v string) {
		if v != "" {
			parts = append(parts, label+"="+v)
		}
	}
	add("state", f.State)
	add("district", f.District)
	add("village", f.Village)
	add("tribe", f.TribalGroup)
	add("type", f.ClaimType)
	add("water", string(f.WaterLevel))
	add("income", string(f.IncomeLevel))
	add("priority", string(f.Priority))
	add("search", f.Search)
	if f.OnlyEligible {
		parts = append(parts, "eligible-only")
	}
	return strings.Join(parts, " ")
}

// GetStoreDBFilePath returns the path to the SQLite DB file for run tracking.
func GetStoreDBFilePath() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ".sifarish_runs.db"
	}
	return filepath.Join(homeDir, ".sifarish_runs.db")
}
