// Package quotes holds monthly FX quote series and the loaders that read them.
package quotes

import (
	"sort"

	"github.com/rpgo/valuation-engine/pkg/dateutil"
	"github.com/shopspring/decimal"
)

// Series is a monthly quote series: units of domestic currency per unit of
// the quoted foreign currency. It satisfies domain.FXQuoteSeries.
//
// A Series is safe for concurrent reads once loaded; Set is not.
type Series struct {
	quotes map[dateutil.Period]decimal.Decimal
}

// NewSeries creates an empty series.
func NewSeries() *Series {
	return &Series{quotes: make(map[dateutil.Period]decimal.Decimal)}
}

// Set records the quote for a month, replacing any previous one.
func (s *Series) Set(p dateutil.Period, quote decimal.Decimal) {
	s.quotes[p] = quote
}

// Quote returns the quote for a month.
func (s *Series) Quote(p dateutil.Period) (decimal.Decimal, bool) {
	if s == nil {
		return decimal.Zero, false
	}
	q, ok := s.quotes[p]
	return q, ok
}

// Len returns the number of months quoted.
func (s *Series) Len() int {
	if s == nil {
		return 0
	}
	return len(s.quotes)
}

// Periods returns the quoted months in chronological order.
func (s *Series) Periods() []dateutil.Period {
	if s == nil {
		return nil
	}
	periods := make([]dateutil.Period, 0, len(s.quotes))
	for p := range s.quotes {
		periods = append(periods, p)
	}
	sort.Slice(periods, func(i, j int) bool { return periods[i].Before(periods[j]) })
	return periods
}
