package main

import (
	"fmt"
	"strconv"

	"github.com/rpgo/valuation-engine/pkg/finance"
	"github.com/spf13/cobra"
)

func newFVCmd() *cobra.Command {
	var principal, deposit float64
	var years int
	cmd := &cobra.Command{
		Use:   "fv",
		Short: "Future value of a principal plus monthly deposits",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			rate, err := rateFlag(cmd, "rate")
			if err != nil {
				return err
			}
			if years < 0 {
				return fmt.Errorf("--years cannot be negative")
			}
			printAmount(cmd.OutOrStdout(), finance.FutureValue(principal, deposit, rate, years))
			return nil
		},
	}
	cmd.Flags().Float64Var(&principal, "principal", 0, "initial amount")
	cmd.Flags().Float64Var(&deposit, "deposit", 0, "end-of-month deposit")
	cmd.Flags().String("rate", "0", "annual rate, e.g. 12% or 0.12")
	cmd.Flags().IntVar(&years, "years", 0, "number of years")
	return cmd
}

func newPMTCmd() *cobra.Command {
	var periods int
	var pv, fv float64
	var due bool
	cmd := &cobra.Command{
		Use:   "pmt",
		Short: "Constant payment per period that moves --pv to --fv",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			rate, err := rateFlag(cmd, "rate")
			if err != nil {
				return err
			}
			payment, err := finance.PMT(rate, periods, pv, fv, due)
			if err != nil {
				return err
			}
			printAmount(cmd.OutOrStdout(), payment)
			return nil
		},
	}
	cmd.Flags().String("rate", "0", "rate per period")
	cmd.Flags().IntVar(&periods, "periods", 0, "number of periods")
	cmd.Flags().Float64Var(&pv, "pv", 0, "present value")
	cmd.Flags().Float64Var(&fv, "fv", 0, "future value")
	cmd.Flags().BoolVar(&due, "due", false, "payments at the beginning of each period")
	return cmd
}

func newNPERCmd() *cobra.Command {
	var payment, pv, fv float64
	cmd := &cobra.Command{
		Use:   "nper",
		Short: "Number of periods needed to move --pv to --fv",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			rate, err := rateFlag(cmd, "rate")
			if err != nil {
				return err
			}
			n, err := finance.NPER(rate, payment, pv, fv)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), strconv.FormatFloat(n, 'f', 4, 64))
			return nil
		},
	}
	cmd.Flags().String("rate", "0", "rate per period")
	cmd.Flags().Float64Var(&payment, "payment", 0, "payment per period")
	cmd.Flags().Float64Var(&pv, "pv", 0, "present value")
	cmd.Flags().Float64Var(&fv, "fv", 0, "future value")
	return cmd
}

func newPVCmd() *cobra.Command {
	var periods int
	var payment, fv float64
	cmd := &cobra.Command{
		Use:   "pv",
		Short: "Present value that grows to --fv alongside the payments",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			rate, err := rateFlag(cmd, "rate")
			if err != nil {
				return err
			}
			v, err := finance.PV(rate, periods, payment, fv)
			if err != nil {
				return err
			}
			printAmount(cmd.OutOrStdout(), v)
			return nil
		},
	}
	cmd.Flags().String("rate", "0", "rate per period")
	cmd.Flags().IntVar(&periods, "periods", 0, "number of periods")
	cmd.Flags().Float64Var(&payment, "payment", 0, "payment per period")
	cmd.Flags().Float64Var(&fv, "fv", 0, "future value")
	return cmd
}

func newRatesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "rates",
		Short: "Rate conversions",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "monthly <annual-rate>",
		Short: "Monthly equivalent of an annual rate",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := parseRateArg(args[0])
			if err != nil {
				return err
			}
			printRate(cmd.OutOrStdout(), finance.YearlyToMonthly(r))
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "yearly <monthly-rate>",
		Short: "Annual equivalent of a monthly rate",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := parseRateArg(args[0])
			if err != nil {
				return err
			}
			printRate(cmd.OutOrStdout(), finance.MonthlyToYearly(r))
			return nil
		},
	})

	effective := &cobra.Command{
		Use:   "effective <nominal-rate>",
		Short: "Effective annual rate of a nominal rate",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := parseRateArg(args[0])
			if err != nil {
				return err
			}
			periods, err := cmd.Flags().GetInt("periods")
			if err != nil {
				return err
			}
			eff, err := finance.EffectiveAnnualRate(r, periods)
			if err != nil {
				return err
			}
			printRate(cmd.OutOrStdout(), eff)
			return nil
		},
	}
	effective.Flags().Int("periods", finance.MonthsPerYear, "compounding periods per year")
	cmd.AddCommand(effective)

	cmd.AddCommand(&cobra.Command{
		Use:   "compound <rate>...",
		Short: "Compose a sequence of periodic rates",
		Args:  cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			rates := make([]float64, 0, len(args))
			for _, arg := range args {
				r, err := parseRateArg(arg)
				if err != nil {
					return err
				}
				rates = append(rates, r)
			}
			printRate(cmd.OutOrStdout(), finance.CompoundRates(rates))
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "real <nominal-rate> <inflation>",
		Short: "Real rate after inflation",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			nominal, err := parseRateArg(args[0])
			if err != nil {
				return err
			}
			inflation, err := parseRateArg(args[1])
			if err != nil {
				return err
			}
			printRate(cmd.OutOrStdout(), finance.RealRate(nominal, inflation))
			return nil
		},
	})
	return cmd
}
