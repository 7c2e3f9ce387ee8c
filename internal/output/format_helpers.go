package output

import (
	"strconv"

	"github.com/rpgo/valuation-engine/internal/domain"
	pkgdecimal "github.com/rpgo/valuation-engine/pkg/decimal"
	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// FormatCurrency formats an amount with the symbol and separators of the currency code.
func FormatCurrency(amount decimal.Decimal, code string) string {
	return pkgdecimal.Display(amount, code)
}

// FormatPercentage formats a decimal fraction as a percentage with 2 decimals.
func FormatPercentage(fraction decimal.Decimal) string {
	return fraction.Mul(hundred).StringFixed(2) + "%"
}

func intToString(i int) string { return strconv.Itoa(i) }

func boolToString(b bool) string { return strconv.FormatBool(b) }

// strategyDetail describes the strategy parameters in a short phrase.
func strategyDetail(s domain.PlanStrategy, code string) string {
	switch v := s.(type) {
	case domain.DepleteByFixedHorizon:
		return "capital runs out at age " + intToString(v.HorizonAge)
	case domain.TargetLegacy:
		return "perpetual income plus a legacy of " + FormatCurrency(v.LegacyTarget, code)
	case domain.PreservePrincipal:
		return "income from returns only, principal kept"
	default:
		return "no strategy"
	}
}

// reportRow is one labelled figure shared by the tabular formatters.
type reportRow struct {
	Label string
	Value string
}

func reportRows(r *domain.ValuationReport) []reportRow {
	code := r.CurrencyCode()
	p, res := r.Plan, r.Result
	return []reportRow{
		{"Initial amount", FormatCurrency(p.InitialAmount, code)},
		{"Monthly deposit", FormatCurrency(p.MonthlyDeposit, code)},
		{"Expected return", FormatPercentage(p.ExpectedReturn)},
		{"Inflation", FormatPercentage(p.Inflation)},
		{"Desired monthly income", FormatCurrency(p.DesiredMonthlyIncome, code)},
		{"Accumulation years", intToString(p.AccumulationYears)},
		{"Age at retirement", intToString(p.FinalAge())},
		{"Inflation-adjusted income (annual)", FormatCurrency(res.InflationAdjustedIncome, code)},
		{"Required future value", FormatCurrency(res.RequiredFutureValue, code)},
		{"Real return (monthly)", FormatCurrency(res.RealReturn, code)},
		{"Inflation return (monthly)", FormatCurrency(res.InflationReturn, code)},
		{"Total monthly return", FormatCurrency(res.TotalMonthlyReturn, code)},
		{"Required monthly deposit", FormatCurrency(res.RequiredMonthlyDeposit, code)},
		{"Projected future value", FormatCurrency(res.ProjectedFutureValue, code)},
		{"Shortfall", FormatCurrency(res.Shortfall, code)},
	}
}
