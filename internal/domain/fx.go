package domain

import (
	"github.com/rpgo/valuation-engine/pkg/dateutil"
	"github.com/shopspring/decimal"
)

// FXQuoteSeries supplies one spot quote per calendar month, expressed as units
// of domestic currency per unit of foreign currency. The engine only reads it.
type FXQuoteSeries interface {
	Quote(period dateutil.Period) (decimal.Decimal, bool)
}

// QuoteFunc adapts a plain lookup function to FXQuoteSeries.
type QuoteFunc func(period dateutil.Period) (decimal.Decimal, bool)

// Quote calls f.
func (f QuoteFunc) Quote(period dateutil.Period) (decimal.Decimal, bool) { return f(period) }

// Conversion is the diagnostic form of a currency conversion.
type Conversion struct {
	Value        decimal.Decimal `json:"value"`
	Converted    bool            `json:"converted"`
	QuoteMissing bool            `json:"quote_missing,omitempty"`
}

// GainDecomposition splits a converted gain into market and currency parts.
// Total always equals MarketReturn + FXEffect.
type GainDecomposition struct {
	MarketReturn  decimal.Decimal `json:"market_return"`
	FXEffect      decimal.Decimal `json:"fx_effect"`
	Total         decimal.Decimal `json:"total"`
	QuotesMissing bool            `json:"quotes_missing,omitempty"`
}

// NewGainDecomposition derives Total from its two components.
func NewGainDecomposition(marketReturn, fxEffect decimal.Decimal) GainDecomposition {
	return GainDecomposition{
		MarketReturn: marketReturn,
		FXEffect:     fxEffect,
		Total:        marketReturn.Add(fxEffect),
	}
}
