package dateutil

import (
	"fmt"
	"time"
)

// PeriodLayout is the textual form of a Period, e.g. "03/2024".
const PeriodLayout = "01/2006"

// Period identifies one calendar month. It is the key of every FX quote series.
type Period struct {
	Year  int
	Month time.Month
}

// NewPeriod returns a normalized Period; a month outside 1..12 rolls over into
// the neighbouring years.
func NewPeriod(year int, month time.Month) Period {
	t := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	return Period{Year: t.Year(), Month: t.Month()}
}

// PeriodOf returns the Period containing t.
func PeriodOf(t time.Time) Period {
	return Period{Year: t.Year(), Month: t.Month()}
}

// ParsePeriod parses a "MM/YYYY" key. A single-digit month ("3/2024") is accepted.
func ParsePeriod(s string) (Period, error) {
	t, err := time.Parse("1/2006", s)
	if err != nil {
		return Period{}, fmt.Errorf("invalid period %q want format MM/YYYY: %w", s, err)
	}
	return PeriodOf(t), nil
}

// MustParsePeriod is like ParsePeriod but panics on error.
func MustParsePeriod(s string) Period {
	p, err := ParsePeriod(s)
	if err != nil {
		panic(err.Error())
	}
	return p
}

// String formats the period as "MM/YYYY".
func (p Period) String() string {
	return fmt.Sprintf("%02d/%04d", int(p.Month), p.Year)
}

// Prev returns the immediately preceding calendar month.
func (p Period) Prev() Period { return p.AddMonths(-1) }

// Next returns the following calendar month.
func (p Period) Next() Period { return p.AddMonths(1) }

// AddMonths shifts the period by n months.
func (p Period) AddMonths(n int) Period { return NewPeriod(p.Year, p.Month+time.Month(n)) }

// Before reports whether p is earlier than q.
func (p Period) Before(q Period) bool {
	return p.Year < q.Year || (p.Year == q.Year && p.Month < q.Month)
}

// IsZero reports whether p is the zero Period.
func (p Period) IsZero() bool { return p.Year == 0 && p.Month == 0 }

// MarshalText implements encoding.TextMarshaler so periods can key JSON and YAML maps.
func (p Period) MarshalText() ([]byte, error) { return []byte(p.String()), nil }

// UnmarshalText implements encoding.TextUnmarshaler.
func (p *Period) UnmarshalText(text []byte) error {
	parsed, err := ParsePeriod(string(text))
	if err != nil {
		return err
	}
	*p = parsed
	return nil
}
