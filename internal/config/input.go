package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/rpgo/rothtrad/internal/domain"
	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

// InputParser handles parsing of scenario files
type InputParser struct{}

// NewInputParser creates a new input parser
func NewInputParser() *InputParser {
	return &InputParser{}
}

// LoadFromFile loads a scenario from a YAML or JSON file
func (ip *InputParser) LoadFromFile(filename string) (*domain.ScenarioInput, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", filename, err)
	}
	return ip.Parse(data)
}

// Parse decodes a scenario document on top of the default scenario and
// validates the result. JSON documents parse as YAML. Unknown keys are
// rejected so a misspelled field never falls back to its default.
func (ip *InputParser) Parse(data []byte) (*domain.ScenarioInput, error) {
	scenario := domain.DefaultScenario()
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&scenario); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%w: failed to parse scenario: %v", domain.ErrInvalidInput, err)
	}

	if err := scenario.Validate(); err != nil {
		return nil, fmt.Errorf("scenario validation failed: %w", err)
	}

	return &scenario, nil
}

// SaveToFile writes a scenario as YAML
func (ip *InputParser) SaveToFile(scenario *domain.ScenarioInput, filename string) error {
	data, err := ip.Marshal(scenario)
	if err != nil {
		return err
	}
	if err := os.WriteFile(filename, data, 0o644); err != nil {
		return fmt.Errorf("failed to write file %s: %w", filename, err)
	}
	return nil
}

// Marshal renders a scenario as YAML
func (ip *InputParser) Marshal(scenario *domain.ScenarioInput) ([]byte, error) {
	data, err := yaml.Marshal(scenario)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal scenario: %w", err)
	}
	return data, nil
}

// CreateExampleScenario creates an example scenario: a mid-career saver in
// California planning to retire to Texas, with a bonus, an existing balance
// and a mega backdoor Roth.
func (ip *InputParser) CreateExampleScenario() *domain.ScenarioInput {
	scenario := domain.DefaultScenario()
	scenario.CurrentAge = 35
	scenario.RetirementAge = 65
	scenario.PlanYear = 2025
	scenario.AnnualSalary = decimal.NewFromInt(150000)
	scenario.AnnualBonus = decimal.NewFromInt(15000)
	scenario.Initial401kBalance = decimal.NewFromInt(85000)
	scenario.InitialTaxableBalance = decimal.NewFromInt(20000)
	scenario.ContributionMode = domain.ContributionDollar
	scenario.ContributionAmount = decimal.NewFromInt(23500)
	scenario.MegaBackdoorContribution = decimal.NewFromInt(10000)
	scenario.TraditionalSplit = decimal.NewFromInt(60)
	scenario.ExpectedRetirementIncome = decimal.NewFromInt(90000)
	scenario.CurrentState = "CA"
	scenario.RetirementState = "TX"
	return &scenario
}
