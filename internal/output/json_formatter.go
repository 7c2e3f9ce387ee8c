package output

import (
	"encoding/json"

	"github.com/rpgo/valuation-engine/internal/domain"
)

// JSONFormatter serializes the valuation report as pretty-printed JSON.
type JSONFormatter struct{}

func (j JSONFormatter) Name() string { return "json" }

func (j JSONFormatter) Format(report *domain.ValuationReport) ([]byte, error) {
	return json.MarshalIndent(report, "", "  ")
}
