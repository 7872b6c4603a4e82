package output

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteReport(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteReport(&buf, buildTestComparison(), "summary"))
	assert.True(t, strings.HasPrefix(buf.String(), "TRADITIONAL VS ROTH SUMMARY"))
}

func TestWriteFormattedTo(t *testing.T) {
	path := filepath.Join(t.TempDir(), "report.csv")
	name, err := WriteFormattedTo(CSVSummarizer{}, buildTestComparison(), path)
	require.NoError(t, err)
	assert.Equal(t, path, name)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(data), "Year,Age,"))
}

func TestSaveReport(t *testing.T) {
	path := filepath.Join(t.TempDir(), "curve.csv")
	_, err := SaveReport(buildTestComparison(), "curve", path)
	require.NoError(t, err)
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(data), "TraditionalSplit,"))

	_, err = SaveReport(buildTestComparison(), "pdf", path)
	assert.True(t, errors.Is(err, ErrUnsupportedFormat))
}

func TestGenerateReport(t *testing.T) {
	t.Chdir(t.TempDir())

	name, err := GenerateReport(buildTestComparison(), "json")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(name, "rothtrad_report_"))
	assert.True(t, strings.HasSuffix(name, ".json"))
	_, err = os.Stat(name)
	require.NoError(t, err)

	name, err = GenerateReport(buildTestComparison(), "all")
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(name, ".csv"))
}

func TestUnknownFormatErrorIncludesSuggestions(t *testing.T) {
	_, err := GenerateReport(buildTestComparison(), "definitely-not-a-format")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUnsupportedFormat))
	msg := err.Error()
	assert.Contains(t, msg, "unsupported report format")
	assert.Contains(t, msg, "Try one of:")

	err = WriteReport(&bytes.Buffer{}, buildTestComparison(), "html")
	assert.True(t, errors.Is(err, ErrUnsupportedFormat))
}
