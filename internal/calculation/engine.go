package calculation

import (
	"fmt"

	"github.com/rpgo/valuation-engine/internal/domain"
	"github.com/rpgo/valuation-engine/pkg/dateutil"
	pkgdecimal "github.com/rpgo/valuation-engine/pkg/decimal"
	"github.com/rpgo/valuation-engine/pkg/finance"
	"github.com/shopspring/decimal"
)

var monthsPerYear = decimal.NewFromInt(finance.MonthsPerYear)

// PlanValuationEngine sizes the capital a retirement plan needs at the end of
// its accumulation phase and the monthly contribution that reaches it.
type PlanValuationEngine struct {
	Logger Logger
}

// NewPlanValuationEngine creates a new valuation engine with a no-op logger
func NewPlanValuationEngine() *PlanValuationEngine {
	return &PlanValuationEngine{Logger: NopLogger{}}
}

// SetLogger sets the logger for the engine. If nil is provided, a no-op logger is used.
func (pe *PlanValuationEngine) SetLogger(l Logger) {
	pe.Logger = orNop(l)
}

// Valuate computes the full valuation of a plan.
func (pe *PlanValuationEngine) Valuate(params domain.PlanParameters) (*domain.PlanValuationResult, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}
	logger := orNop(pe.Logger)
	years := params.AccumulationYears

	// Annual-equivalent income, inflated to the start of the drawdown phase.
	income := pkgdecimal.NewMoneyFromDecimal(params.DesiredMonthlyIncome).
		Annual().
		Grow(params.Inflation, years)

	result := &domain.PlanValuationResult{
		InflationAdjustedIncome: income.Decimal,
	}

	required, err := pe.requiredFutureValue(params, income, &result.Diagnostics)
	if err != nil {
		return nil, err
	}
	result.RequiredFutureValue = required

	result.RealReturn = required.Mul(params.ExpectedReturn).Div(monthsPerYear)
	result.InflationReturn = required.Mul(params.Inflation).Div(monthsPerYear)
	result.TotalMonthlyReturn = result.RealReturn.Add(result.InflationReturn)

	deposit, err := requiredMonthlyDeposit(params, required)
	if err != nil {
		return nil, err
	}
	result.RequiredMonthlyDeposit = deposit

	initial := pkgdecimal.NewMoneyFromDecimal(params.InitialAmount).Float()
	monthly := pkgdecimal.NewMoneyFromDecimal(params.MonthlyDeposit).Float()
	projected := decimal.NewFromFloat(finance.FutureValue(initial, monthly, params.ExpectedReturn.InexactFloat64(), years))
	result.ProjectedFutureValue = projected
	result.Shortfall = decimal.Max(required.Sub(projected), decimal.Zero)

	logger.Debugf("valuated plan: required=%s deposit=%s projected=%s",
		required.StringFixed(2), deposit.StringFixed(2), projected.StringFixed(2))
	return result, nil
}

// requiredFutureValue branches on the drawdown strategy. A nil strategy takes
// the silent path: zero required capital, flagged in the diagnostics.
func (pe *PlanValuationEngine) requiredFutureValue(params domain.PlanParameters, income pkgdecimal.Money, diag *domain.PlanDiagnostics) (decimal.Decimal, error) {
	expectedReturn := params.ExpectedReturn.InexactFloat64()

	switch s := params.Strategy.(type) {
	case domain.DepleteByFixedHorizon:
		horizonYears := dateutil.YearsUntilAge(params.FinalAge(), s.HorizonAge)
		withdrawal := income.Monthly().Float()
		pv, err := finance.PV(finance.YearlyToMonthly(expectedReturn), horizonYears*finance.MonthsPerYear, -withdrawal, 0)
		if err != nil {
			return decimal.Zero, fmt.Errorf("depletion capital: %w", err)
		}
		return decimal.NewFromFloat(pv), nil

	case domain.TargetLegacy:
		monthlyRate := finance.YearlyToMonthly(expectedReturn)
		if monthlyRate <= 0 {
			return decimal.Zero, fmt.Errorf("perpetual income at a %s return: %w", params.ExpectedReturn, finance.ErrNoSolution)
		}
		perpetuity := income.Monthly().Div(decimal.NewFromFloat(monthlyRate)).Decimal
		return decimal.Max(perpetuity.Add(s.LegacyTarget), s.LegacyTarget), nil

	case domain.PreservePrincipal:
		if !params.ExpectedReturn.IsPositive() {
			return decimal.Zero, fmt.Errorf("principal preservation at a %s return: %w", params.ExpectedReturn, finance.ErrNoSolution)
		}
		return income.Div(params.ExpectedReturn.Div(monthsPerYear)).Decimal, nil

	default:
		diag.UnknownStrategy = true
		orNop(pe.Logger).Warnf("plan has no drawdown strategy, required capital defaults to zero")
		return decimal.Zero, nil
	}
}

// requiredMonthlyDeposit solves the contribution that grows the initial amount
// to the required capital, at the monthly equivalent of return plus inflation.
func requiredMonthlyDeposit(params domain.PlanParameters, required decimal.Decimal) (decimal.Decimal, error) {
	months := params.AccumulationYears * finance.MonthsPerYear
	if months == 0 {
		return decimal.Zero, nil
	}
	annualRate := params.ExpectedReturn.Add(params.Inflation).InexactFloat64()
	monthlyRate := finance.YearlyToMonthly(annualRate)
	payment, err := finance.PMT(monthlyRate, months, -params.InitialAmount.InexactFloat64(), required.InexactFloat64(), false)
	if err != nil {
		return decimal.Zero, fmt.Errorf("required monthly deposit: %w", err)
	}
	return decimal.NewFromFloat(-payment), nil
}
