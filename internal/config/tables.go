package config

import (
	_ "embed"
	"fmt"
	"os"

	"github.com/rpgo/rothtrad/internal/domain"
	"gopkg.in/yaml.v3"
)

//go:embed data/tax_tables.yaml
var defaultTaxTables []byte

// LoadDefaultTables parses the tax tables compiled into the binary
func LoadDefaultTables() (*domain.TaxTableSet, error) {
	return ParseTables(defaultTaxTables)
}

// LoadTablesFromFile parses tax tables from a YAML file on disk
func LoadTablesFromFile(filename string) (*domain.TaxTableSet, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read tax tables %s: %w", filename, err)
	}
	return ParseTables(data)
}

// LoadTables loads tables from path, or the embedded defaults when path is empty
func LoadTables(path string) (*domain.TaxTableSet, error) {
	if path == "" {
		return LoadDefaultTables()
	}
	return LoadTablesFromFile(path)
}

// ParseTables decodes and validates a tax table document
func ParseTables(data []byte) (*domain.TaxTableSet, error) {
	var set domain.TaxTableSet
	if err := yaml.Unmarshal(data, &set); err != nil {
		return nil, fmt.Errorf("failed to parse tax tables: %w", err)
	}
	if len(set.Years) == 0 {
		return nil, fmt.Errorf("tax tables contain no plan years")
	}
	for year, ty := range set.Years {
		if ty == nil {
			return nil, fmt.Errorf("tax tables: plan year %d is empty", year)
		}
		ty.Year = year
		if err := ty.Validate(); err != nil {
			return nil, fmt.Errorf("tax tables validation failed: %w", err)
		}
	}
	return &set, nil
}
