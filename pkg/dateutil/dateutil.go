package dateutil

import (
	"time"
)

// Age calculates the age at a given date
func Age(birthDate, atDate time.Time) int {
	age := atDate.Year() - birthDate.Year()
	if atDate.Month() < birthDate.Month() ||
		(atDate.Month() == birthDate.Month() && atDate.Day() < birthDate.Day()) {
		age--
	}
	return age
}

// AgeAfterYears returns the age a person of currentAge reaches after the given number of years
func AgeAfterYears(currentAge, years int) int {
	return currentAge + years
}

// YearsUntilAge returns the whole years from fromAge until toAge, never negative
func YearsUntilAge(fromAge, toAge int) int {
	if toAge <= fromAge {
		return 0
	}
	return toAge - fromAge
}

// YearsUntilDate calculates the number of years between two dates
func YearsUntilDate(fromDate, toDate time.Time) float64 {
	duration := toDate.Sub(fromDate)
	return duration.Hours() / 24 / 365.25
}

// MonthsBetween counts whole calendar months from one date to another
func MonthsBetween(fromDate, toDate time.Time) int {
	months := (toDate.Year()-fromDate.Year())*12 + int(toDate.Month()-fromDate.Month())
	if toDate.Day() < fromDate.Day() {
		months--
	}
	return months
}
