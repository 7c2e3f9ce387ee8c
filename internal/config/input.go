package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/rpgo/valuation-engine/internal/domain"
	"github.com/rpgo/valuation-engine/pkg/dateutil"
	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

var hundred = decimal.NewFromInt(100)

// ParseRate parses a rate written either as a percentage ("12%", "12.5 %")
// or as a decimal fraction ("0.12"). The result is always a fraction.
func ParseRate(s string) (decimal.Decimal, error) {
	raw := strings.TrimSpace(s)
	if raw == "" {
		return decimal.Zero, fmt.Errorf("empty rate")
	}
	if pct, ok := strings.CutSuffix(raw, "%"); ok {
		d, err := decimal.NewFromString(strings.TrimSpace(pct))
		if err != nil {
			return decimal.Zero, fmt.Errorf("invalid percentage %q", s)
		}
		return d.Div(hundred), nil
	}
	d, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid rate %q", s)
	}
	return d, nil
}

// Rate is a YAML rate field accepting the forms ParseRate understands.
type Rate struct {
	decimal.Decimal
}

// UnmarshalYAML implements yaml.Unmarshaler.
func (r *Rate) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.ScalarNode {
		return fmt.Errorf("line %d: rate must be a scalar", value.Line)
	}
	d, err := ParseRate(value.Value)
	if err != nil {
		return fmt.Errorf("line %d: %w", value.Line, err)
	}
	r.Decimal = d
	return nil
}

// PlanFile is the YAML layout of a plan file. Age comes from current_age or
// birth_date; the accumulation phase from accumulation_years or target_date.
type PlanFile struct {
	Name                 string           `yaml:"name"`
	PlanType             string           `yaml:"plan_type"`
	InitialAmount        decimal.Decimal  `yaml:"initial_amount"`
	MonthlyDeposit       decimal.Decimal  `yaml:"monthly_deposit"`
	ExpectedReturn       Rate             `yaml:"expected_return"`
	Inflation            Rate             `yaml:"inflation"`
	DesiredMonthlyIncome decimal.Decimal  `yaml:"desired_monthly_income"`
	AccumulationYears    *int             `yaml:"accumulation_years"`
	TargetDate           *time.Time       `yaml:"target_date"`
	CurrentAge           *int             `yaml:"current_age"`
	BirthDate            *time.Time       `yaml:"birth_date"`
	HorizonAge           *int             `yaml:"horizon_age"`
	LegacyTarget         *decimal.Decimal `yaml:"legacy_target"`
}

// Plan is a named plan ready for valuation.
type Plan struct {
	Name   string
	Params domain.PlanParameters
}

// InputParser handles parsing of plan files
type InputParser struct {
	// Now is the reference date for ages and target dates.
	Now func() time.Time
}

// NewInputParser creates a new input parser
func NewInputParser() *InputParser {
	return &InputParser{Now: time.Now}
}

// LoadFromFile loads a plan from a YAML file
func (ip *InputParser) LoadFromFile(filename string) (*Plan, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", filename, err)
	}
	plan, err := ip.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filename, err)
	}
	return plan, nil
}

// Parse decodes and validates a YAML plan document.
func (ip *InputParser) Parse(data []byte) (*Plan, error) {
	var file PlanFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if err := ip.ValidatePlanFile(&file); err != nil {
		return nil, fmt.Errorf("plan validation failed: %w", err)
	}

	plan, err := ip.buildPlan(&file)
	if err != nil {
		return nil, err
	}
	if err := plan.Params.Validate(); err != nil {
		return nil, fmt.Errorf("plan validation failed: %w", err)
	}
	return plan, nil
}

// ValidatePlanFile checks the fields whose presence depends on each other.
func (ip *InputParser) ValidatePlanFile(file *PlanFile) error {
	if strings.TrimSpace(file.PlanType) == "" {
		return fmt.Errorf("plan_type is required")
	}
	planType, err := domain.ParsePlanType(file.PlanType)
	if err != nil {
		return err
	}

	switch {
	case file.CurrentAge != nil && file.BirthDate != nil:
		return fmt.Errorf("current_age and birth_date are mutually exclusive")
	case file.AccumulationYears != nil && file.TargetDate != nil:
		return fmt.Errorf("accumulation_years and target_date are mutually exclusive")
	case file.AccumulationYears == nil && file.TargetDate == nil:
		return fmt.Errorf("accumulation_years or target_date is required")
	}

	if file.TargetDate != nil && dateutil.YearsUntilDate(ip.now(), *file.TargetDate) <= 0 {
		return fmt.Errorf("target_date %s is not in the future", file.TargetDate.Format(time.DateOnly))
	}
	if file.BirthDate != nil && file.BirthDate.After(ip.now()) {
		return fmt.Errorf("birth_date %s is in the future", file.BirthDate.Format(time.DateOnly))
	}

	if file.HorizonAge != nil {
		if planType != domain.PlanTypeDeplete {
			return fmt.Errorf("horizon_age only applies to %s plans", domain.PlanTypeDeplete)
		}
		if *file.HorizonAge <= 0 {
			return fmt.Errorf("horizon_age must be positive")
		}
	}
	if planType == domain.PlanTypeDeplete && file.CurrentAge == nil && file.BirthDate == nil {
		return fmt.Errorf("current_age or birth_date is required for %s plans", planType)
	}
	if file.LegacyTarget != nil && planType != domain.PlanTypeLegacy {
		return fmt.Errorf("legacy_target only applies to %s plans", domain.PlanTypeLegacy)
	}
	return nil
}

func (ip *InputParser) buildPlan(file *PlanFile) (*Plan, error) {
	planType, err := domain.ParsePlanType(file.PlanType)
	if err != nil {
		return nil, err
	}
	strategy, err := domain.NewStrategy(planType)
	if err != nil {
		return nil, err
	}
	switch s := strategy.(type) {
	case domain.DepleteByFixedHorizon:
		if file.HorizonAge != nil {
			s.HorizonAge = *file.HorizonAge
		}
		strategy = s
	case domain.TargetLegacy:
		if file.LegacyTarget != nil {
			s.LegacyTarget = *file.LegacyTarget
		}
		strategy = s
	}

	now := ip.now()
	params := domain.PlanParameters{
		InitialAmount:        file.InitialAmount,
		MonthlyDeposit:       file.MonthlyDeposit,
		ExpectedReturn:       file.ExpectedReturn.Decimal,
		Inflation:            file.Inflation.Decimal,
		DesiredMonthlyIncome: file.DesiredMonthlyIncome,
		Strategy:             strategy,
	}
	if file.AccumulationYears != nil {
		params.AccumulationYears = *file.AccumulationYears
	} else {
		params.AccumulationYears = dateutil.MonthsBetween(now, *file.TargetDate) / 12
	}
	if file.CurrentAge != nil {
		params.CurrentAge = *file.CurrentAge
	} else if file.BirthDate != nil {
		params.CurrentAge = dateutil.Age(*file.BirthDate, now)
	}

	return &Plan{Name: file.Name, Params: params}, nil
}

func (ip *InputParser) now() time.Time {
	if ip.Now == nil {
		return time.Now()
	}
	return ip.Now()
}

// CreateExamplePlan returns a sample plan used by the CLI demo.
func (ip *InputParser) CreateExamplePlan() *Plan {
	return &Plan{
		Name: "Example depletion plan",
		Params: domain.PlanParameters{
			InitialAmount:        decimal.NewFromInt(50000),
			MonthlyDeposit:       decimal.NewFromInt(1500),
			ExpectedReturn:       decimal.NewFromFloat(0.08),
			Inflation:            decimal.NewFromFloat(0.03),
			DesiredMonthlyIncome: decimal.NewFromInt(6000),
			AccumulationYears:    25,
			CurrentAge:           40,
			Strategy:             domain.DepleteByFixedHorizon{HorizonAge: domain.DefaultHorizonAge},
		},
	}
}
