package main

import (
	"encoding/json"
	"fmt"

	"github.com/rpgo/valuation-engine/internal/calculation"
	"github.com/rpgo/valuation-engine/internal/config"
	"github.com/rpgo/valuation-engine/internal/quotes"
	"github.com/rpgo/valuation-engine/pkg/dateutil"
	"github.com/spf13/cobra"
)

type fxOptions struct {
	quotesFile string
	period     string
	from       string
}

func newFXCmd(a *app) *cobra.Command {
	opts := &fxOptions{}
	cmd := &cobra.Command{
		Use:   "fx",
		Short: "Re-express values, returns and gains in the display currency",
	}
	pf := cmd.PersistentFlags()
	pf.StringVarP(&opts.quotesFile, "quotes", "q", "", "quote series file (.csv, .yaml or CBR .xml)")
	pf.StringVarP(&opts.period, "period", "p", "", "month of the figure, MM/YYYY")
	pf.StringVar(&opts.from, "from", "", "currency the figure was recorded in")
	_ = cmd.MarkPersistentFlagRequired("quotes")

	cmd.AddCommand(
		&cobra.Command{
			Use:   "convert <value>",
			Short: "Convert a value with the month's quote",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				value, err := parseDecimalArg("value", args[0])
				if err != nil {
					return err
				}
				return a.withAdjuster(opts, func(adj *calculation.CurrencyReturnAdjuster, p dateutil.Period) error {
					conv := adj.Convert(value, p, opts.from)
					if conv.QuoteMissing {
						a.logger.Warnf("no quote for %s, value left unconverted", p)
					}
					fmt.Fprintln(cmd.OutOrStdout(), conv.Value.StringFixed(2))
					return nil
				})
			},
		},
		&cobra.Command{
			Use:   "adjust <return>",
			Short: "Compound a periodic return with the month's currency move",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				r, err := config.ParseRate(args[0])
				if err != nil {
					return err
				}
				return a.withAdjuster(opts, func(adj *calculation.CurrencyReturnAdjuster, p dateutil.Period) error {
					adjusted := adj.AdjustReturnWithFX(r, p, opts.from)
					printRate(cmd.OutOrStdout(), adjusted.InexactFloat64())
					return nil
				})
			},
		},
		&cobra.Command{
			Use:   "decompose <gain> <principal>",
			Short: "Split a gain into market return and currency effect",
			Args:  cobra.ExactArgs(2),
			RunE: func(cmd *cobra.Command, args []string) error {
				gain, err := parseDecimalArg("gain", args[0])
				if err != nil {
					return err
				}
				principal, err := parseDecimalArg("principal", args[1])
				if err != nil {
					return err
				}
				return a.withAdjuster(opts, func(adj *calculation.CurrencyReturnAdjuster, p dateutil.Period) error {
					g := adj.DecomposeGain(gain, principal, p, opts.from)
					if g.QuotesMissing {
						a.logger.Warnf("quotes around %s missing, currency effect not separated", p)
					}
					out := cmd.OutOrStdout()
					fmt.Fprintf(out, "market return: %s\n", g.MarketReturn.StringFixed(2))
					fmt.Fprintf(out, "fx effect:     %s\n", g.FXEffect.StringFixed(2))
					fmt.Fprintf(out, "total:         %s\n", g.Total.StringFixed(2))
					return nil
				})
			},
		},
		&cobra.Command{
			Use:   "stats",
			Short: "Summary statistics of the quote series",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				series, err := quotes.LoadFile(opts.quotesFile)
				if err != nil {
					return err
				}
				data, err := json.MarshalIndent(series.Stats(), "", "  ")
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), string(data))
				return nil
			},
		},
	)
	return cmd
}

// withAdjuster loads the quotes, builds a session adjuster and runs fn for the requested period.
func (a *app) withAdjuster(opts *fxOptions, fn func(*calculation.CurrencyReturnAdjuster, dateutil.Period) error) error {
	if opts.from == "" {
		return fmt.Errorf("--from is required")
	}
	period, err := dateutil.ParsePeriod(opts.period)
	if err != nil {
		return fmt.Errorf("--period: %w", err)
	}
	series, err := quotes.LoadFile(opts.quotesFile)
	if err != nil {
		return err
	}
	a.logger.Debugf("loaded %d quotes from %s", series.Len(), opts.quotesFile)

	var cache calculation.ConversionCache = calculation.NewMemoryCache()
	if a.settings.RedisAddr != "" {
		rc := calculation.NewRedisCache(a.settings.RedisAddr, a.settings.CacheTTL)
		rc.SetLogger(a.logger)
		defer rc.Close()
		cache = rc
	}

	adj, err := calculation.NewCurrencyReturnAdjuster(series,
		a.settings.DomesticCurrency, a.settings.ForeignCurrency, a.settings.DisplayCurrency,
		calculation.WithCache(cache), calculation.WithLogger(a.logger))
	if err != nil {
		return err
	}
	return fn(adj, period)
}
