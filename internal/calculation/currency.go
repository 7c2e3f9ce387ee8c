package calculation

import (
	"errors"
	"fmt"
	"strings"

	"github.com/rpgo/valuation-engine/internal/domain"
	"github.com/rpgo/valuation-engine/pkg/dateutil"
	pkgdecimal "github.com/rpgo/valuation-engine/pkg/decimal"
	"github.com/shopspring/decimal"
)

var (
	// ErrUnknownCurrency is returned for a code missing from the ISO 4217 table.
	ErrUnknownCurrency = errors.New("unknown currency")
	// ErrCurrencyPair is returned when the quoted currency is the domestic one.
	ErrCurrencyPair = errors.New("foreign and domestic currency must differ")
)

var one = decimal.NewFromInt(1)

// direction of a conversion relative to the quote series.
type direction int

const (
	sameCurrency direction = iota
	toDomestic             // foreign amount re-expressed in domestic currency: multiply
	toForeign              // domestic amount re-expressed in foreign currency: divide
	unsupported            // the pair is not the quoted one
)

// CurrencyReturnAdjuster re-expresses values, returns and gains recorded in
// one currency in the session's display currency. The quote series gives
// units of domestic currency per unit of the foreign currency, so only that
// pair converts. Any other pair comes back unconverted.
//
// Missing quotes never fail a call: the value comes back unconverted.
type CurrencyReturnAdjuster struct {
	quotes   domain.FXQuoteSeries
	domestic string
	foreign  string
	display  string
	cache    ConversionCache
	logger   Logger
}

// AdjusterOption configures a CurrencyReturnAdjuster.
type AdjusterOption func(*CurrencyReturnAdjuster)

// WithCache injects the conversion memo. The default is NopCache.
func WithCache(c ConversionCache) AdjusterOption {
	return func(a *CurrencyReturnAdjuster) {
		if c != nil {
			a.cache = c
		}
	}
}

// WithLogger injects a logger. The default is NopLogger.
func WithLogger(l Logger) AdjusterOption {
	return func(a *CurrencyReturnAdjuster) { a.logger = orNop(l) }
}

// NewCurrencyReturnAdjuster creates an adjuster for quotes of foreign priced in
// domestic, showing results in display.
func NewCurrencyReturnAdjuster(quotes domain.FXQuoteSeries, domestic, foreign, display string, opts ...AdjusterOption) (*CurrencyReturnAdjuster, error) {
	dom, ok := pkgdecimal.NormalizeCurrency(domestic)
	if !ok {
		return nil, fmt.Errorf("domestic currency %q: %w", domestic, ErrUnknownCurrency)
	}
	frn, ok := pkgdecimal.NormalizeCurrency(foreign)
	if !ok {
		return nil, fmt.Errorf("foreign currency %q: %w", foreign, ErrUnknownCurrency)
	}
	if frn == dom {
		return nil, fmt.Errorf("%s quotes: %w", dom, ErrCurrencyPair)
	}
	disp, ok := pkgdecimal.NormalizeCurrency(display)
	if !ok {
		return nil, fmt.Errorf("display currency %q: %w", display, ErrUnknownCurrency)
	}
	if quotes == nil {
		quotes = domain.QuoteFunc(func(dateutil.Period) (decimal.Decimal, bool) { return decimal.Zero, false })
	}
	a := &CurrencyReturnAdjuster{
		quotes:   quotes,
		domestic: dom,
		foreign:  frn,
		display:  disp,
		cache:    NopCache{},
		logger:   NopLogger{},
	}
	for _, opt := range opts {
		opt(a)
	}
	return a, nil
}

// DomesticCurrency returns the currency the quotes are denominated in.
func (a *CurrencyReturnAdjuster) DomesticCurrency() string { return a.domestic }

// ForeignCurrency returns the currency the quotes price.
func (a *CurrencyReturnAdjuster) ForeignCurrency() string { return a.foreign }

// DisplayCurrency returns the currency results are expressed in.
func (a *CurrencyReturnAdjuster) DisplayCurrency() string { return a.display }

// WithDisplayCurrency returns a copy of the adjuster showing results in another
// currency. The copy shares the quote series, cache and logger.
func (a *CurrencyReturnAdjuster) WithDisplayCurrency(code string) (*CurrencyReturnAdjuster, error) {
	disp, ok := pkgdecimal.NormalizeCurrency(code)
	if !ok {
		return nil, fmt.Errorf("display currency %q: %w", code, ErrUnknownCurrency)
	}
	cp := *a
	cp.display = disp
	return &cp, nil
}

func (a *CurrencyReturnAdjuster) direction(original string) direction {
	orig := strings.ToUpper(strings.TrimSpace(original))
	switch {
	case orig == a.display:
		return sameCurrency
	case orig == a.foreign && a.display == a.domestic:
		return toDomestic
	case orig == a.domestic && a.display == a.foreign:
		return toForeign
	default:
		return unsupported
	}
}

// quote returns a usable (strictly positive) quote for the period.
func (a *CurrencyReturnAdjuster) quote(period dateutil.Period) (decimal.Decimal, bool) {
	q, ok := a.quotes.Quote(period)
	if !ok || !q.IsPositive() {
		return decimal.Zero, false
	}
	return q, true
}

// ConvertValue re-expresses value, recorded in originalCurrency, in the display
// currency using the period's quote. Without a quote the value is returned as is.
func (a *CurrencyReturnAdjuster) ConvertValue(value decimal.Decimal, period dateutil.Period, originalCurrency string) decimal.Decimal {
	return a.Convert(value, period, originalCurrency).Value
}

// Convert is ConvertValue with diagnostics.
func (a *CurrencyReturnAdjuster) Convert(value decimal.Decimal, period dateutil.Period, originalCurrency string) domain.Conversion {
	dir := a.direction(originalCurrency)
	switch dir {
	case sameCurrency:
		return domain.Conversion{Value: value}
	case unsupported:
		a.logger.Warnf("cannot convert %s to %s with %s/%s quotes", originalCurrency, a.display, a.domestic, a.foreign)
		return domain.Conversion{Value: value}
	}

	key := a.cacheKey(value, period, originalCurrency)
	if cached, ok := a.cache.Get(key); ok {
		return domain.Conversion{Value: cached, Converted: true}
	}

	q, ok := a.quote(period)
	if !ok {
		a.logger.Debugf("no FX quote for %s, %s left unconverted", period, originalCurrency)
		return domain.Conversion{Value: value, QuoteMissing: true}
	}

	var converted decimal.Decimal
	if dir == toDomestic {
		converted = value.Mul(q)
	} else {
		converted = value.Div(q)
	}
	a.cache.Set(key, converted)
	return domain.Conversion{Value: converted, Converted: true}
}

// cacheKey identifies a conversion across processes sharing a cache, so it
// names the quoted pair as well as the conversion itself.
func (a *CurrencyReturnAdjuster) cacheKey(value decimal.Decimal, period dateutil.Period, original string) string {
	return strings.Join([]string{
		a.domestic + "/" + a.foreign,
		period.String(),
		strings.ToUpper(strings.TrimSpace(original)),
		a.display,
		value.String(),
	}, "|")
}

// fxVariation returns the relative change of the quote from the previous month.
func (a *CurrencyReturnAdjuster) fxVariation(period dateutil.Period) (now, prev, variation decimal.Decimal, ok bool) {
	now, okNow := a.quote(period)
	prev, okPrev := a.quote(period.Prev())
	if !okNow || !okPrev {
		return decimal.Zero, decimal.Zero, decimal.Zero, false
	}
	return now, prev, now.Sub(prev).Div(prev), true
}

// AdjustReturnWithFX re-expresses a periodic return (decimal fraction) earned
// in originalCurrency as a return in the display currency, compounding in the
// month-over-month currency move.
func (a *CurrencyReturnAdjuster) AdjustReturnWithFX(periodReturn decimal.Decimal, period dateutil.Period, originalCurrency string) decimal.Decimal {
	dir := a.direction(originalCurrency)
	if dir == sameCurrency || dir == unsupported {
		return periodReturn
	}
	_, _, variation, ok := a.fxVariation(period)
	if !ok {
		a.logger.Debugf("no FX quotes around %s, return left unadjusted", period)
		return periodReturn
	}
	growth := one.Add(periodReturn)
	if dir == toDomestic {
		return growth.Mul(one.Add(variation)).Sub(one)
	}
	return growth.Div(one.Add(variation)).Sub(one)
}

// DecomposeGain splits a gain earned on principal in originalCurrency into the
// market return and the currency effect, both in the display currency. The
// previous month's quote is the baseline of the currency effect.
func (a *CurrencyReturnAdjuster) DecomposeGain(gain, principal decimal.Decimal, period dateutil.Period, originalCurrency string) domain.GainDecomposition {
	dir := a.direction(originalCurrency)
	if dir == sameCurrency {
		return domain.NewGainDecomposition(gain, decimal.Zero)
	}

	now, prev, _, ok := a.fxVariation(period)
	if !ok || dir == unsupported {
		g := domain.NewGainDecomposition(a.ConvertValue(gain, period, originalCurrency), decimal.Zero)
		g.QuotesMissing = !ok
		return g
	}

	if dir == toDomestic {
		return domain.NewGainDecomposition(gain.Mul(now), principal.Mul(now.Sub(prev)))
	}
	fx := principal.Mul(one.Div(now).Sub(one.Div(prev)))
	return domain.NewGainDecomposition(gain.Div(now), fx)
}
