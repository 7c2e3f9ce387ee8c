package domain

import (
	"errors"
	"fmt"
	"strings"

	"github.com/rpgo/valuation-engine/pkg/dateutil"
	"github.com/shopspring/decimal"
)

// DefaultHorizonAge is the age at which a depletion plan runs out of capital.
const DefaultHorizonAge = 100

// DefaultLegacyTarget is the bequest a legacy plan leaves on top of the income stream.
var DefaultLegacyTarget = decimal.NewFromInt(1_000_000)

var (
	// ErrUnknownPlanType is returned when a plan type tag cannot be parsed.
	ErrUnknownPlanType = errors.New("unknown plan type")
	// ErrInvalidPlan is returned when plan parameters fail validation.
	ErrInvalidPlan = errors.New("invalid plan parameters")
)

// PlanType tags the drawdown strategies. The numeric values match the legacy
// string tags "1", "2" and "3".
type PlanType int

const (
	PlanTypeDeplete PlanType = iota + 1
	PlanTypeLegacy
	PlanTypePreserve
)

func (pt PlanType) String() string {
	switch pt {
	case PlanTypeDeplete:
		return "deplete_by_fixed_horizon"
	case PlanTypeLegacy:
		return "target_legacy"
	case PlanTypePreserve:
		return "preserve_principal"
	default:
		return "unknown"
	}
}

// ParsePlanType accepts the legacy numeric tags as well as the strategy names.
func ParsePlanType(s string) (PlanType, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "1", "deplete", "deplete_by_fixed_horizon":
		return PlanTypeDeplete, nil
	case "2", "legacy", "target_legacy":
		return PlanTypeLegacy, nil
	case "3", "preserve", "preserve_principal":
		return PlanTypePreserve, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownPlanType, s)
	}
}

// PlanStrategy is the closed set of drawdown strategies. Only the variants
// declared in this package implement it.
type PlanStrategy interface {
	PlanType() PlanType
	isPlanStrategy()
}

// DepleteByFixedHorizon withdraws the inflation-adjusted income every month
// until HorizonAge, leaving nothing behind.
type DepleteByFixedHorizon struct {
	HorizonAge int `json:"horizon_age"`
}

// TargetLegacy funds a perpetual income and leaves LegacyTarget as a bequest.
type TargetLegacy struct {
	LegacyTarget decimal.Decimal `json:"legacy_target"`
}

// PreservePrincipal lives on the monthly return only, keeping the principal intact.
type PreservePrincipal struct{}

func (DepleteByFixedHorizon) PlanType() PlanType { return PlanTypeDeplete }
func (TargetLegacy) PlanType() PlanType          { return PlanTypeLegacy }
func (PreservePrincipal) PlanType() PlanType     { return PlanTypePreserve }

func (DepleteByFixedHorizon) isPlanStrategy() {}
func (TargetLegacy) isPlanStrategy()          {}
func (PreservePrincipal) isPlanStrategy()     {}

// NewStrategy returns the strategy for a plan type with its documented defaults.
func NewStrategy(pt PlanType) (PlanStrategy, error) {
	switch pt {
	case PlanTypeDeplete:
		return DepleteByFixedHorizon{HorizonAge: DefaultHorizonAge}, nil
	case PlanTypeLegacy:
		return TargetLegacy{LegacyTarget: DefaultLegacyTarget}, nil
	case PlanTypePreserve:
		return PreservePrincipal{}, nil
	default:
		return nil, fmt.Errorf("%w: %d", ErrUnknownPlanType, int(pt))
	}
}

// PlanParameters is the immutable input of a single plan valuation.
// Rates are decimal fractions.
type PlanParameters struct {
	InitialAmount        decimal.Decimal `json:"initial_amount"`
	MonthlyDeposit       decimal.Decimal `json:"monthly_deposit"`
	ExpectedReturn       decimal.Decimal `json:"expected_return"`
	Inflation            decimal.Decimal `json:"inflation"`
	DesiredMonthlyIncome decimal.Decimal `json:"desired_monthly_income"`
	AccumulationYears    int             `json:"accumulation_years"`
	CurrentAge           int             `json:"current_age"`
	Strategy             PlanStrategy    `json:"strategy"`
}

// FinalAge is the age at the end of the accumulation phase.
func (p PlanParameters) FinalAge() int {
	return dateutil.AgeAfterYears(p.CurrentAge, p.AccumulationYears)
}

// Validate checks the parameters the valuation formulas cannot handle.
func (p PlanParameters) Validate() error {
	minusOne := decimal.NewFromInt(-1)
	switch {
	case p.AccumulationYears < 0:
		return fmt.Errorf("%w: accumulation years cannot be negative", ErrInvalidPlan)
	case p.CurrentAge < 0:
		return fmt.Errorf("%w: current age cannot be negative", ErrInvalidPlan)
	case p.InitialAmount.IsNegative():
		return fmt.Errorf("%w: initial amount cannot be negative", ErrInvalidPlan)
	case p.MonthlyDeposit.IsNegative():
		return fmt.Errorf("%w: monthly deposit cannot be negative", ErrInvalidPlan)
	case p.DesiredMonthlyIncome.IsNegative():
		return fmt.Errorf("%w: desired monthly income cannot be negative", ErrInvalidPlan)
	case p.ExpectedReturn.LessThanOrEqual(minusOne):
		return fmt.Errorf("%w: expected return must be above -100%%", ErrInvalidPlan)
	case p.Inflation.LessThanOrEqual(minusOne):
		return fmt.Errorf("%w: inflation must be above -100%%", ErrInvalidPlan)
	}
	if s, ok := p.Strategy.(TargetLegacy); ok && s.LegacyTarget.IsNegative() {
		return fmt.Errorf("%w: legacy target cannot be negative", ErrInvalidPlan)
	}
	return nil
}

// PlanDiagnostics reports the silent degradation paths taken during a valuation.
type PlanDiagnostics struct {
	UnknownStrategy bool `json:"unknown_strategy,omitempty"`
}

// PlanValuationResult is derived from PlanParameters and never mutated afterwards.
type PlanValuationResult struct {
	RequiredFutureValue decimal.Decimal `json:"required_future_value"`
	// InflationAdjustedIncome is an ANNUAL-equivalent figure: the desired monthly
	// income times 12, inflated over the accumulation years.
	InflationAdjustedIncome decimal.Decimal `json:"inflation_adjusted_income"`
	RealReturn              decimal.Decimal `json:"real_return"`
	InflationReturn         decimal.Decimal `json:"inflation_return"`
	TotalMonthlyReturn      decimal.Decimal `json:"total_monthly_return"`
	RequiredMonthlyDeposit  decimal.Decimal `json:"required_monthly_deposit"`
	ProjectedFutureValue    decimal.Decimal `json:"projected_future_value"`
	Shortfall               decimal.Decimal `json:"shortfall"`
	Diagnostics             PlanDiagnostics `json:"diagnostics"`
}

// ValuationReport pairs a plan with its valuation for the output formatters.
// Amounts are in Currency, USD when unset.
type ValuationReport struct {
	Name     string              `json:"name,omitempty"`
	Currency string              `json:"currency,omitempty"`
	PlanType string              `json:"plan_type"`
	Plan     PlanParameters      `json:"plan"`
	Result   PlanValuationResult `json:"result"`
}

// NewValuationReport builds a report for the given plan and result.
func NewValuationReport(name string, plan PlanParameters, result PlanValuationResult) *ValuationReport {
	planType := PlanType(0).String()
	if plan.Strategy != nil {
		planType = plan.Strategy.PlanType().String()
	}
	return &ValuationReport{Name: name, PlanType: planType, Plan: plan, Result: result}
}

// CurrencyCode returns the report currency, defaulting to USD.
func (r *ValuationReport) CurrencyCode() string {
	if r.Currency == "" {
		return "USD"
	}
	return r.Currency
}
