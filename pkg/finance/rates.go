// Package finance holds the time-value-of-money primitives used by the
// valuation engine. Rates are decimal fractions (0.12 means 12%), never
// percentages.
package finance

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
)

// MonthsPerYear is the number of compounding periods in a year for monthly plans.
const MonthsPerYear = 12

// CompoundRates composes a sequence of periodic rates into a single rate:
// (1+r1)*(1+r2)*...*(1+rN) - 1.
//
// An empty sequence returns 0, not -1: no periods means no change.
func CompoundRates(rates []float64) float64 {
	if len(rates) == 0 {
		return 0
	}
	factors := make([]float64, len(rates))
	for i, r := range rates {
		factors[i] = 1 + r
	}
	return floats.Prod(factors) - 1
}

// YearlyToMonthly converts an annual rate into the equivalent monthly rate.
func YearlyToMonthly(yearlyRate float64) float64 {
	if yearlyRate == 0 {
		return 0
	}
	return math.Pow(1+yearlyRate, 1.0/MonthsPerYear) - 1
}

// MonthlyToYearly converts a monthly rate into the equivalent annual rate.
func MonthlyToYearly(monthlyRate float64) float64 {
	if monthlyRate == 0 {
		return 0
	}
	return math.Pow(1+monthlyRate, MonthsPerYear) - 1
}

// EffectiveAnnualRate returns the annual rate equivalent to a nominal rate
// compounded periodsPerYear times a year.
func EffectiveAnnualRate(nominalRate float64, periodsPerYear int) (float64, error) {
	if periodsPerYear < 1 {
		return 0, fmt.Errorf("effective annual rate with %d periods per year: %w", periodsPerYear, ErrInvalidPeriods)
	}
	if periodsPerYear == 1 {
		return nominalRate, nil
	}
	n := float64(periodsPerYear)
	return math.Pow(1+nominalRate/n, n) - 1, nil
}

// RealRate removes inflation from a nominal rate (Fisher relation).
func RealRate(nominalRate, inflation float64) float64 {
	return (1+nominalRate)/(1+inflation) - 1
}
