package finance

import (
	"fmt"
	"math"
)

// All solvers below work on the time-value identity
//
//	FV = PV*(1+r)^n + PMT*((1+r)^n - 1)/r * (1 + r*due)
//
// where due is 1 for payments made at the start of each period.

// FutureValue compounds a principal and a stream of end-of-month deposits
// at the monthly equivalent of yearlyRate over years*12 months.
func FutureValue(principal, monthlyDeposit, yearlyRate float64, years int) float64 {
	r := YearlyToMonthly(yearlyRate)
	months := float64(years * MonthsPerYear)
	if r == 0 {
		return principal + monthlyDeposit*months
	}
	growth := math.Pow(1+r, months)
	return principal*growth + monthlyDeposit*(growth-1)/r
}

// PMT solves for the constant payment per period. A payment that pays down
// an obligation is negative. Payments due at the beginning of a period are
// discounted by one extra factor of (1+rate).
func PMT(rate float64, periods int, presentValue, futureValue float64, dueAtBeginning bool) (float64, error) {
	if periods <= 0 {
		return 0, fmt.Errorf("pmt over %d periods: %w", periods, ErrInvalidPeriods)
	}
	n := float64(periods)
	if rate == 0 {
		return -(futureValue + presentValue) / n, nil
	}
	growth := math.Pow(1+rate, n)
	due := 1.0
	if dueAtBeginning {
		due = 1 + rate
	}
	return -rate * (futureValue + presentValue*growth) / (due * (growth - 1)), nil
}

// NPER solves for the number of periods needed to move presentValue to
// futureValue with the given payment per period.
func NPER(rate, payment, presentValue, futureValue float64) (float64, error) {
	if payment == 0 {
		return 0, fmt.Errorf("nper: %w", ErrInvalidPayment)
	}
	if rate == 0 {
		return -(futureValue + presentValue) / payment, nil
	}
	if rate <= -1 {
		return 0, fmt.Errorf("nper at rate %g: %w", rate, ErrNoSolution)
	}
	num := payment - futureValue*rate
	den := payment + presentValue*rate
	if den == 0 || num/den <= 0 {
		return 0, fmt.Errorf("nper: payment %g never reaches %g: %w", payment, futureValue, ErrNoSolution)
	}
	return math.Log(num/den) / math.Log(1+rate), nil
}

// PV solves for the amount that, together with the payment stream, grows to
// futureValue after the given number of periods. With a zero rate this is
// futureValue - payment*periods.
func PV(rate float64, periods int, payment, futureValue float64) (float64, error) {
	if periods < 0 {
		return 0, fmt.Errorf("pv over %d periods: %w", periods, ErrInvalidPeriods)
	}
	n := float64(periods)
	if rate == 0 {
		return futureValue - payment*n, nil
	}
	growth := math.Pow(1+rate, n)
	return (futureValue - payment*(growth-1)/rate) / growth, nil
}
