package output

import (
	"bytes"
	"fmt"

	"github.com/charmbracelet/glamour"
	"github.com/rpgo/valuation-engine/internal/domain"
)

// MarkdownFormatter renders the report as a markdown document.
type MarkdownFormatter struct{}

func (m MarkdownFormatter) Name() string { return "markdown" }

func (m MarkdownFormatter) Format(report *domain.ValuationReport) ([]byte, error) {
	var buf bytes.Buffer
	title := "Plan valuation"
	if report.Name != "" {
		title = report.Name
	}
	fmt.Fprintf(&buf, "# %s\n\n", title)
	fmt.Fprintf(&buf, "**Strategy:** `%s`, %s.\n\n", report.PlanType, strategyDetail(report.Plan.Strategy, report.CurrencyCode()))
	fmt.Fprintln(&buf, "| Figure | Value |")
	fmt.Fprintln(&buf, "|---|---:|")
	for _, row := range reportRows(report) {
		fmt.Fprintf(&buf, "| %s | %s |\n", row.Label, row.Value)
	}
	if report.Result.Diagnostics.UnknownStrategy {
		fmt.Fprintln(&buf)
		fmt.Fprintln(&buf, "> **Warning:** no drawdown strategy selected, required capital not computed.")
	}
	return buf.Bytes(), nil
}

// GlamourFormatter renders the markdown report for a terminal.
type GlamourFormatter struct {
	// Style is a glamour standard style ("dark", "light", "notty", ...); dark when empty.
	Style string
}

func (g GlamourFormatter) Name() string { return "pretty" }

func (g GlamourFormatter) Format(report *domain.ValuationReport) ([]byte, error) {
	md, err := MarkdownFormatter{}.Format(report)
	if err != nil {
		return nil, err
	}
	style := g.Style
	if style == "" {
		style = "dark"
	}
	out, err := glamour.Render(string(md), style)
	if err != nil {
		return nil, fmt.Errorf("render markdown: %w", err)
	}
	return []byte(out), nil
}
