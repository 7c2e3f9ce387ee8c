package main

import (
	"fmt"
	"io"

	"github.com/rpgo/valuation-engine/internal/config"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// app carries what every subcommand shares once the root command has run.
type app struct {
	envFile  string
	logLevel string
	logJSON  bool
	domestic string
	foreign  string
	display  string

	settings *config.Settings
	logger   *logrus.Logger
}

func newRootCmd() *cobra.Command {
	a := &app{}
	root := &cobra.Command{
		Use:           "valuation",
		Short:         "Savings plan valuation and FX-adjusted returns",
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.init(cmd)
		},
	}

	pf := root.PersistentFlags()
	pf.StringVar(&a.envFile, "env-file", ".env", "dotenv file with VALUATION_* settings")
	pf.StringVar(&a.logLevel, "log-level", "", "log level (overrides VALUATION_LOG_LEVEL)")
	pf.BoolVar(&a.logJSON, "log-json", false, "log as JSON")
	pf.StringVar(&a.domestic, "domestic", "", "domestic currency (overrides VALUATION_DOMESTIC_CURRENCY)")
	pf.StringVar(&a.foreign, "foreign", "", "currency priced by the quote series (overrides VALUATION_FOREIGN_CURRENCY)")
	pf.StringVar(&a.display, "display", "", "display currency (overrides VALUATION_DISPLAY_CURRENCY)")

	root.AddCommand(
		newFVCmd(),
		newPMTCmd(),
		newNPERCmd(),
		newPVCmd(),
		newRatesCmd(),
		newPlanCmd(a),
		newFXCmd(a),
	)
	return root
}

func (a *app) init(cmd *cobra.Command) error {
	settings, err := config.LoadSettings(a.envFile)
	if err != nil {
		return err
	}
	if a.logLevel != "" {
		settings.LogLevel = a.logLevel
	}
	if a.logJSON {
		settings.LogJSON = true
	}
	if a.domestic != "" {
		settings.DomesticCurrency = a.domestic
	}
	if a.foreign != "" {
		settings.ForeignCurrency = a.foreign
	}
	if a.display != "" {
		settings.DisplayCurrency = a.display
	}
	a.settings = settings
	a.logger = newLogger(cmd.ErrOrStderr(), settings)
	a.logger.Debugf("settings: domestic=%s foreign=%s display=%s redis=%q",
		settings.DomesticCurrency, settings.ForeignCurrency, settings.DisplayCurrency, settings.RedisAddr)
	return nil
}

func newLogger(w io.Writer, s *config.Settings) *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(w)
	if s.LogJSON {
		logger.SetFormatter(&logrus.JSONFormatter{})
	} else {
		logger.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true})
	}
	level, err := logrus.ParseLevel(s.LogLevel)
	if err != nil {
		level = logrus.InfoLevel
	}
	logger.SetLevel(level)
	return logger
}

// rateFlag reads a rate flag written as "12%" or "0.12".
func rateFlag(cmd *cobra.Command, name string) (float64, error) {
	raw, err := cmd.Flags().GetString(name)
	if err != nil {
		return 0, err
	}
	r, err := config.ParseRate(raw)
	if err != nil {
		return 0, fmt.Errorf("--%s: %w", name, err)
	}
	return r.InexactFloat64(), nil
}

func parseRateArg(arg string) (float64, error) {
	r, err := config.ParseRate(arg)
	if err != nil {
		return 0, err
	}
	return r.InexactFloat64(), nil
}

func parseDecimalArg(name, arg string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(arg)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%s: invalid number %q", name, arg)
	}
	return d, nil
}

func printAmount(w io.Writer, v float64) {
	fmt.Fprintln(w, decimal.NewFromFloat(v).StringFixed(2))
}

func printRate(w io.Writer, r float64) {
	fmt.Fprintf(w, "%.10f (%.4f%%)\n", r, r*100)
}
