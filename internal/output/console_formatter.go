package output

import (
	"bytes"
	"fmt"

	"github.com/rpgo/valuation-engine/internal/domain"
)

// ConsoleFormatter provides a plain-text summary for terminals and logs.
type ConsoleFormatter struct{}

func (c ConsoleFormatter) Name() string { return "console" }

func (c ConsoleFormatter) Format(report *domain.ValuationReport) ([]byte, error) {
	var buf bytes.Buffer
	title := "PLAN VALUATION"
	if report.Name != "" {
		title += ": " + report.Name
	}
	fmt.Fprintln(&buf, title)
	fmt.Fprintln(&buf, "================================")
	fmt.Fprintf(&buf, "Strategy: %s (%s)\n", report.PlanType, strategyDetail(report.Plan.Strategy, report.CurrencyCode()))
	fmt.Fprintln(&buf)

	width := 0
	rows := reportRows(report)
	for _, row := range rows {
		width = max(width, len(row.Label))
	}
	for _, row := range rows {
		fmt.Fprintf(&buf, "%-*s  %s\n", width, row.Label, row.Value)
	}

	if report.Result.Diagnostics.UnknownStrategy {
		fmt.Fprintln(&buf)
		fmt.Fprintln(&buf, "WARNING: no drawdown strategy selected, required capital not computed")
	} else if report.Result.Shortfall.IsPositive() {
		fmt.Fprintln(&buf)
		fmt.Fprintf(&buf, "Current deposits fall short by %s; deposit %s per month to reach the target.\n",
			FormatCurrency(report.Result.Shortfall, report.CurrencyCode()),
			FormatCurrency(report.Result.RequiredMonthlyDeposit, report.CurrencyCode()))
	}
	return buf.Bytes(), nil
}
