package output

import (
	"fmt"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/rpgo/rothtrad/internal/domain"
)

// Formatter defines a pluggable output formatter that returns a byte slice.
// Implementations should be pure (no side effects besides deterministic formatting).
type Formatter interface {
	Format(results *domain.ComparisonResult) ([]byte, error)
	// Name returns a short identifier for logging / debugging.
	Name() string
}

// FormatterFunc adapter to allow ordinary functions to act as a Formatter.
type FormatterFunc struct {
	ID string
	F  func(*domain.ComparisonResult) ([]byte, error)
}

func (ff FormatterFunc) Format(r *domain.ComparisonResult) ([]byte, error) { return ff.F(r) }
func (ff FormatterFunc) Name() string                                      { return ff.ID }

// WriteFormatted runs a formatter and writes output to a timestamped file with extension.
func WriteFormatted(f Formatter, results *domain.ComparisonResult, ext string) (string, error) {
	return WriteFormattedTo(f, results, fmt.Sprintf("rothtrad_report_%s.%s", time.Now().Format("20060102_150405"), ext))
}

// WriteFormattedTo runs a formatter and writes output to the given path.
func WriteFormattedTo(f Formatter, results *domain.ComparisonResult, filename string) (string, error) {
	data, err := f.Format(results)
	if err != nil {
		return "", err
	}
	if err := os.WriteFile(filename, data, 0644); err != nil {
		return "", fmt.Errorf("failed to write %s report: %w", f.Name(), err)
	}
	return filename, nil
}

// builtInFormatters stores available formatters.
var builtInFormatters = []Formatter{
	ConsoleFormatter{},
	ConsoleLiteFormatter{},
	CSVSummarizer{},
	CSVDetailedExporter{},
	CSVCurveExporter{},
	JSONFormatter{},
}

// GetFormatterByName fetches a registered formatter.
func GetFormatterByName(name string) Formatter {
	n := NormalizeFormatName(name)
	for _, f := range builtInFormatters {
		if f.Name() == n {
			return f
		}
	}
	return nil
}

// aliasMap provides user-friendly synonyms for format names.
var aliasMap = map[string]string{
	"text":         "console",
	"verbose":      "console",
	"summary":      "console-lite",
	"lite":         "console-lite",
	"csv-detailed": "detailed-csv",
	"csv-summary":  "csv",
	"csv-curve":    "curve-csv",
	"curve":        "curve-csv",
	"json-pretty":  "json",
}

// NormalizeFormatName lowers and resolves aliases.
func NormalizeFormatName(name string) string {
	n := strings.ToLower(strings.TrimSpace(name))
	if mapped, ok := aliasMap[n]; ok {
		return mapped
	}
	return n
}

// AvailableFormatterNames returns the canonical formatter names.
func AvailableFormatterNames() []string {
	names := make([]string, 0, len(builtInFormatters))
	for _, f := range builtInFormatters {
		names = append(names, f.Name())
	}
	sort.Strings(names)
	return names
}

// AvailableFormatAliases returns the supported alias keys.
func AvailableFormatAliases() []string {
	keys := make([]string, 0, len(aliasMap))
	for k := range aliasMap {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// FileExtension returns the file extension a formatter's output is written with.
func FileExtension(name string) string {
	n := NormalizeFormatName(name)
	switch {
	case strings.Contains(n, "csv"):
		return "csv"
	case n == "json":
		return "json"
	default:
		return "txt"
	}
}
