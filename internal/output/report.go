package output

import (
	"fmt"
	"io"
	"strings"

	"github.com/rpgo/rothtrad/internal/domain"
)

func resolveFormatter(format string) (Formatter, error) {
	if f := GetFormatterByName(format); f != nil {
		return f, nil
	}
	return nil, fmt.Errorf("%w: %q. Try one of: %s (aliases: %s)", ErrUnsupportedFormat, format,
		strings.Join(AvailableFormatterNames(), ", "), strings.Join(AvailableFormatAliases(), ", "))
}

// GenerateReport writes the named format to a timestamped file and returns its name.
// The special format "all" writes the console report plus the detailed CSV.
func GenerateReport(results *domain.ComparisonResult, format string) (string, error) {
	if NormalizeFormatName(format) == "all" {
		if _, err := WriteFormatted(ConsoleFormatter{}, results, "txt"); err != nil {
			return "", err
		}
		return WriteFormatted(CSVDetailedExporter{}, results, "csv")
	}
	f, err := resolveFormatter(format)
	if err != nil {
		return "", err
	}
	return WriteFormatted(f, results, FileExtension(f.Name()))
}

// WriteReport renders the named format to w.
func WriteReport(w io.Writer, results *domain.ComparisonResult, format string) error {
	f, err := resolveFormatter(format)
	if err != nil {
		return err
	}
	data, err := f.Format(results)
	if err != nil {
		return err
	}
	_, err = w.Write(data)
	return err
}

// SaveReport writes the named format to path.
func SaveReport(results *domain.ComparisonResult, format, path string) (string, error) {
	f, err := resolveFormatter(format)
	if err != nil {
		return "", err
	}
	return WriteFormattedTo(f, results, path)
}
