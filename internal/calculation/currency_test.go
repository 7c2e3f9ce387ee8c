package calculation

import (
	"testing"

	"github.com/rpgo/valuation-engine/internal/domain"
	"github.com/rpgo/valuation-engine/pkg/dateutil"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	feb = dateutil.MustParsePeriod("02/2024")
	mar = dateutil.MustParsePeriod("03/2024")
	apr = dateutil.MustParsePeriod("04/2024")
)

// brlPerUSD quotes BRL per USD; January and April are missing.
func brlPerUSD(calls *int) domain.FXQuoteSeries {
	quotes := map[dateutil.Period]decimal.Decimal{
		feb: decimal.RequireFromString("5.00"),
		mar: decimal.RequireFromString("5.50"),
	}
	return domain.QuoteFunc(func(p dateutil.Period) (decimal.Decimal, bool) {
		if calls != nil {
			*calls++
		}
		q, ok := quotes[p]
		return q, ok
	})
}

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func assertDecimal(t *testing.T, want string, got decimal.Decimal) {
	t.Helper()
	assert.True(t, dec(want).Equal(got), "want %s, got %s", want, got)
}

func newAdjuster(t *testing.T, display string, opts ...AdjusterOption) *CurrencyReturnAdjuster {
	t.Helper()
	a, err := NewCurrencyReturnAdjuster(brlPerUSD(nil), "brl", "usd", display, opts...)
	require.NoError(t, err)
	return a
}

func TestNewCurrencyReturnAdjusterValidatesCodes(t *testing.T) {
	a := newAdjuster(t, "usd")
	assert.Equal(t, "BRL", a.DomesticCurrency())
	assert.Equal(t, "USD", a.ForeignCurrency())
	assert.Equal(t, "USD", a.DisplayCurrency())

	_, err := NewCurrencyReturnAdjuster(nil, "ZZZ", "USD", "USD")
	assert.ErrorIs(t, err, ErrUnknownCurrency)
	_, err = NewCurrencyReturnAdjuster(nil, "BRL", "", "BRL")
	assert.ErrorIs(t, err, ErrUnknownCurrency)
	_, err = NewCurrencyReturnAdjuster(nil, "BRL", "USD", "")
	assert.ErrorIs(t, err, ErrUnknownCurrency)
	_, err = NewCurrencyReturnAdjuster(nil, "BRL", "brl", "BRL")
	assert.ErrorIs(t, err, ErrCurrencyPair)

	_, err = a.WithDisplayCurrency("QQQ")
	assert.ErrorIs(t, err, ErrUnknownCurrency)
}

func TestConvertValue(t *testing.T) {
	toBRL := newAdjuster(t, "BRL")
	assertDecimal(t, "550", toBRL.ConvertValue(dec("100"), mar, "USD"))

	toUSD, err := toBRL.WithDisplayCurrency("USD")
	require.NoError(t, err)
	assertDecimal(t, "100", toUSD.ConvertValue(dec("550"), mar, "BRL"))
	assert.Equal(t, "BRL", toBRL.DisplayCurrency())
}

func TestConvertValueIdentity(t *testing.T) {
	a := newAdjuster(t, "USD")
	for _, p := range []dateutil.Period{feb, mar, apr, {}} {
		assertDecimal(t, "123.45", a.ConvertValue(dec("123.45"), p, "usd"))
		assertDecimal(t, "0.07", a.AdjustReturnWithFX(dec("0.07"), p, "USD"))
		g := a.DecomposeGain(dec("10"), dec("100"), p, "USD")
		assertDecimal(t, "10", g.Total)
		assert.True(t, g.FXEffect.IsZero())
	}
}

func TestConvertMissingQuoteFailsSoft(t *testing.T) {
	a := newAdjuster(t, "BRL")

	conv := a.Convert(dec("100"), apr, "USD")
	assertDecimal(t, "100", conv.Value)
	assert.False(t, conv.Converted)
	assert.True(t, conv.QuoteMissing)

	conv = a.Convert(dec("100"), mar, "USD")
	assert.True(t, conv.Converted)
	assert.False(t, conv.QuoteMissing)
}

func TestConvertUnsupportedPair(t *testing.T) {
	tests := []struct {
		name     string
		display  string
		original string
	}{
		{"Third currency into domestic", "BRL", "EUR"},
		{"Third currency into foreign", "USD", "EUR"},
		{"Domestic into a third currency", "EUR", "BRL"},
		{"Foreign into a third currency", "EUR", "USD"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			logger := &recordingLogger{}
			a := newAdjuster(t, tt.display, WithLogger(logger))

			conv := a.Convert(dec("100"), mar, tt.original)
			assertDecimal(t, "100", conv.Value)
			assert.False(t, conv.Converted)
			assert.False(t, conv.QuoteMissing)

			assertDecimal(t, "0.10", a.AdjustReturnWithFX(dec("0.10"), mar, tt.original))

			g := a.DecomposeGain(dec("10"), dec("100"), mar, tt.original)
			assertDecimal(t, "10", g.MarketReturn)
			assert.True(t, g.FXEffect.IsZero())
			assertDecimal(t, "10", g.Total)
			assert.NotEmpty(t, logger.warnings)
		})
	}
}

func TestAdjustReturnWithFX(t *testing.T) {
	toBRL := newAdjuster(t, "BRL")
	// the dollar gained 10% against the real in March
	assertDecimal(t, "0.21", toBRL.AdjustReturnWithFX(dec("0.10"), mar, "USD"))

	toUSD := newAdjuster(t, "USD")
	assertDecimal(t, "0.1", toUSD.AdjustReturnWithFX(dec("0.21"), mar, "BRL"))

	// February has no January baseline, April has no quote at all
	assertDecimal(t, "0.10", toBRL.AdjustReturnWithFX(dec("0.10"), feb, "USD"))
	assertDecimal(t, "0.10", toBRL.AdjustReturnWithFX(dec("0.10"), apr, "USD"))
}

func TestDecomposeGain(t *testing.T) {
	toBRL := newAdjuster(t, "BRL")
	g := toBRL.DecomposeGain(dec("10"), dec("100"), mar, "USD")
	assertDecimal(t, "55", g.MarketReturn)
	assertDecimal(t, "50", g.FXEffect)
	assertDecimal(t, "105", g.Total)
	assert.False(t, g.QuotesMissing)

	toUSD := newAdjuster(t, "USD")
	g = toUSD.DecomposeGain(dec("55"), dec("500"), mar, "BRL")
	assertDecimal(t, "10", g.MarketReturn)
	assert.InDelta(t, -9.0909090909, g.FXEffect.InexactFloat64(), 1e-9)
	assert.True(t, g.Total.Equal(g.MarketReturn.Add(g.FXEffect)))
}

func TestDecomposeGainFallsBackWithoutBaseline(t *testing.T) {
	toBRL := newAdjuster(t, "BRL")

	// February converts but has no previous quote
	g := toBRL.DecomposeGain(dec("10"), dec("100"), feb, "USD")
	assertDecimal(t, "50", g.MarketReturn)
	assert.True(t, g.FXEffect.IsZero())
	assertDecimal(t, "50", g.Total)
	assert.True(t, g.QuotesMissing)

	// April has nothing: the gain is left unconverted
	g = toBRL.DecomposeGain(dec("10"), dec("100"), apr, "USD")
	assertDecimal(t, "10", g.MarketReturn)
	assertDecimal(t, "10", g.Total)
}

func TestDecompositionTotalInvariant(t *testing.T) {
	for _, display := range []string{"BRL", "USD"} {
		a := newAdjuster(t, display)
		for _, orig := range []string{"BRL", "USD", "EUR"} {
			for _, p := range []dateutil.Period{feb, mar, apr} {
				g := a.DecomposeGain(dec("37.5"), dec("1234.56"), p, orig)
				assert.True(t, g.Total.Equal(g.MarketReturn.Add(g.FXEffect)), "%s->%s %s", orig, display, p)
			}
		}
	}
}

func TestConvertValueIsMemoized(t *testing.T) {
	calls := 0
	cache := NewMemoryCache()
	a, err := NewCurrencyReturnAdjuster(brlPerUSD(&calls), "BRL", "USD", "BRL", WithCache(cache), WithLogger(nil))
	require.NoError(t, err)

	first := a.ConvertValue(dec("100"), mar, "USD")
	second := a.ConvertValue(dec("100"), mar, "USD")
	assert.True(t, first.Equal(second))
	assert.Equal(t, 1, calls)
	assert.Equal(t, 1, cache.Len())

	// misses are not memoized
	a.ConvertValue(dec("100"), apr, "USD")
	a.ConvertValue(dec("100"), apr, "USD")
	assert.Equal(t, 3, calls)
	assert.Equal(t, 1, cache.Len())
}

func TestSharedCacheSeparatesQuotedPairs(t *testing.T) {
	cache := NewMemoryCache()
	usd, err := NewCurrencyReturnAdjuster(brlPerUSD(nil), "BRL", "USD", "BRL", WithCache(cache))
	require.NoError(t, err)
	eurQuotes := domain.QuoteFunc(func(dateutil.Period) (decimal.Decimal, bool) {
		return dec("6.00"), true
	})
	eur, err := NewCurrencyReturnAdjuster(eurQuotes, "BRL", "EUR", "BRL", WithCache(cache))
	require.NoError(t, err)

	assertDecimal(t, "550", usd.ConvertValue(dec("100"), mar, "USD"))
	assertDecimal(t, "600", eur.ConvertValue(dec("100"), mar, "EUR"))
	// USD amounts are not the EUR session's pair, cached or not
	assertDecimal(t, "100", eur.ConvertValue(dec("100"), mar, "USD"))
	assert.Equal(t, 2, cache.Len())
}
