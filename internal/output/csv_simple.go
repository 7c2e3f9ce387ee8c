package output

import (
	"bytes"
	"encoding/csv"

	"github.com/rpgo/valuation-engine/internal/domain"
)

// CSVSummarizer writes the report as a single CSV row with plain decimal values.
type CSVSummarizer struct{}

func (c CSVSummarizer) Name() string { return "csv" }

func (c CSVSummarizer) Format(report *domain.ValuationReport) ([]byte, error) {
	buf := &bytes.Buffer{}
	w := csv.NewWriter(buf)
	header := []string{"Name", "Currency", "PlanType", "InitialAmount", "MonthlyDeposit", "ExpectedReturn", "Inflation", "DesiredMonthlyIncome", "AccumulationYears", "CurrentAge", "InflationAdjustedIncome", "RequiredFutureValue", "RealReturn", "InflationReturn", "TotalMonthlyReturn", "RequiredMonthlyDeposit", "ProjectedFutureValue", "Shortfall", "UnknownStrategy"}
	if err := w.Write(header); err != nil {
		return nil, err
	}
	p, res := report.Plan, report.Result
	row := []string{
		report.Name,
		report.CurrencyCode(),
		report.PlanType,
		p.InitialAmount.StringFixed(2),
		p.MonthlyDeposit.StringFixed(2),
		p.ExpectedReturn.String(),
		p.Inflation.String(),
		p.DesiredMonthlyIncome.StringFixed(2),
		intToString(p.AccumulationYears),
		intToString(p.CurrentAge),
		res.InflationAdjustedIncome.StringFixed(2),
		res.RequiredFutureValue.StringFixed(2),
		res.RealReturn.StringFixed(2),
		res.InflationReturn.StringFixed(2),
		res.TotalMonthlyReturn.StringFixed(2),
		res.RequiredMonthlyDeposit.StringFixed(2),
		res.ProjectedFutureValue.StringFixed(2),
		res.Shortfall.StringFixed(2),
		boolToString(res.Diagnostics.UnknownStrategy),
	}
	if err := w.Write(row); err != nil {
		return nil, err
	}
	w.Flush()
	return buf.Bytes(), w.Error()
}
