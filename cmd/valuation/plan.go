package main

import (
	"fmt"

	"github.com/rpgo/valuation-engine/internal/calculation"
	"github.com/rpgo/valuation-engine/internal/config"
	"github.com/rpgo/valuation-engine/internal/domain"
	"github.com/rpgo/valuation-engine/internal/output"
	pkgdecimal "github.com/rpgo/valuation-engine/pkg/decimal"
	"github.com/spf13/cobra"
)

func newPlanCmd(a *app) *cobra.Command {
	var file, format, saveDir, currency string
	var example bool
	cmd := &cobra.Command{
		Use:   "plan",
		Short: "Value a savings plan from a YAML file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			parser := config.NewInputParser()
			var plan *config.Plan
			switch {
			case example:
				plan = parser.CreateExamplePlan()
			case file != "":
				p, err := parser.LoadFromFile(file)
				if err != nil {
					return err
				}
				plan = p
			default:
				return fmt.Errorf("either --file or --example is required")
			}

			code := a.settings.DomesticCurrency
			if currency != "" {
				code = currency
			}
			code, ok := pkgdecimal.NormalizeCurrency(code)
			if !ok {
				return fmt.Errorf("currency %q: %w", code, calculation.ErrUnknownCurrency)
			}

			engine := calculation.NewPlanValuationEngine()
			engine.SetLogger(a.logger)
			result, err := engine.Valuate(plan.Params)
			if err != nil {
				return err
			}
			report := domain.NewValuationReport(plan.Name, plan.Params, *result)
			report.Currency = code
			a.logger.Infof("valued %s plan %q: required %s", report.PlanType, plan.Name, result.RequiredFutureValue.StringFixed(2))

			formatter := output.GetFormatterByName(format)
			if formatter == nil {
				_, err := output.Render(report, format)
				return err
			}
			if saveDir != "" {
				path, err := output.WriteFormatted(formatter, report, saveDir)
				if err != nil {
					return err
				}
				a.logger.Infof("report written to %s", path)
				return nil
			}
			data, err := formatter.Format(report)
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(data)
			return err
		},
	}
	cmd.Flags().StringVarP(&file, "file", "f", "", "plan YAML file")
	cmd.Flags().BoolVar(&example, "example", false, "value the built-in example plan")
	cmd.Flags().StringVar(&format, "format", "console", "output format: "+fmt.Sprint(output.AvailableFormatterNames()))
	cmd.Flags().StringVar(&saveDir, "save-dir", "", "write the report to a timestamped file in this directory")
	cmd.Flags().StringVar(&currency, "currency", "", "currency of the plan amounts (default: domestic currency)")
	return cmd
}
