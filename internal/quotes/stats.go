package quotes

import (
	"math"

	"github.com/rpgo/valuation-engine/pkg/dateutil"
	"github.com/rpgo/valuation-engine/pkg/finance"
	"github.com/shopspring/decimal"
	"gonum.org/v1/gonum/stat"
)

// Stats summarizes a quote series and its month-over-month variation.
type Stats struct {
	Count int               `json:"count"`
	First dateutil.Period   `json:"first"`
	Last  dateutil.Period   `json:"last"`
	Min   decimal.Decimal   `json:"min"`
	Max   decimal.Decimal   `json:"max"`
	Gaps  []dateutil.Period `json:"gaps,omitempty"`

	// Variations counts the month pairs both quoted; CumulativeVariation
	// compounds all of them.
	Variations           int     `json:"variations"`
	MeanVariation        float64 `json:"mean_variation"`
	Volatility           float64 `json:"volatility"`
	AnnualizedVolatility float64 `json:"annualized_volatility"`
	CumulativeVariation  float64 `json:"cumulative_variation"`
}

// Stats computes summary statistics. Months missing inside the quoted range
// are reported as gaps and break the variation chain.
func (s *Series) Stats() Stats {
	periods := s.Periods()
	if len(periods) == 0 {
		return Stats{}
	}

	st := Stats{
		Count: len(periods),
		First: periods[0],
		Last:  periods[len(periods)-1],
		Min:   s.quotes[periods[0]],
		Max:   s.quotes[periods[0]],
	}

	var variations []float64
	for p := st.First; !st.Last.Before(p); p = p.Next() {
		q, ok := s.quotes[p]
		if !ok {
			st.Gaps = append(st.Gaps, p)
			continue
		}
		st.Min = decimal.Min(st.Min, q)
		st.Max = decimal.Max(st.Max, q)

		prev, ok := s.quotes[p.Prev()]
		if !ok || !prev.IsPositive() {
			continue
		}
		variations = append(variations, q.Sub(prev).Div(prev).InexactFloat64())
	}

	st.Variations = len(variations)
	if len(variations) > 0 {
		st.MeanVariation = stat.Mean(variations, nil)
		st.CumulativeVariation = finance.CompoundRates(variations)
	}
	if len(variations) > 1 {
		st.Volatility = stat.StdDev(variations, nil)
		st.AnnualizedVolatility = st.Volatility * math.Sqrt(finance.MonthsPerYear)
	}
	return st
}
