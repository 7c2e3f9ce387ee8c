package domain

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePlanType(t *testing.T) {
	tests := []struct {
		in   string
		want PlanType
	}{
		{"1", PlanTypeDeplete},
		{"deplete", PlanTypeDeplete},
		{"2", PlanTypeLegacy},
		{" Target_Legacy ", PlanTypeLegacy},
		{"3", PlanTypePreserve},
		{"preserve_principal", PlanTypePreserve},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParsePlanType(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	_, err := ParsePlanType("4")
	assert.ErrorIs(t, err, ErrUnknownPlanType)
}

func TestNewStrategyDefaults(t *testing.T) {
	s, err := NewStrategy(PlanTypeDeplete)
	require.NoError(t, err)
	assert.Equal(t, DepleteByFixedHorizon{HorizonAge: 100}, s)

	s, err = NewStrategy(PlanTypeLegacy)
	require.NoError(t, err)
	legacy, ok := s.(TargetLegacy)
	require.True(t, ok)
	assert.True(t, legacy.LegacyTarget.Equal(decimal.NewFromInt(1000000)))

	s, err = NewStrategy(PlanTypePreserve)
	require.NoError(t, err)
	assert.Equal(t, PlanTypePreserve, s.PlanType())

	_, err = NewStrategy(PlanType(9))
	assert.ErrorIs(t, err, ErrUnknownPlanType)
}

func validPlan() PlanParameters {
	return PlanParameters{
		InitialAmount:        decimal.NewFromInt(10000),
		MonthlyDeposit:       decimal.NewFromInt(500),
		ExpectedReturn:       decimal.NewFromFloat(0.08),
		Inflation:            decimal.NewFromFloat(0.03),
		DesiredMonthlyIncome: decimal.NewFromInt(5000),
		AccumulationYears:    25,
		CurrentAge:           40,
		Strategy:             PreservePrincipal{},
	}
}

func TestPlanParametersValidate(t *testing.T) {
	assert.NoError(t, validPlan().Validate())
	assert.Equal(t, 65, validPlan().FinalAge())

	mutations := map[string]func(p *PlanParameters){
		"negative years":       func(p *PlanParameters) { p.AccumulationYears = -1 },
		"negative age":         func(p *PlanParameters) { p.CurrentAge = -3 },
		"negative initial":     func(p *PlanParameters) { p.InitialAmount = decimal.NewFromInt(-1) },
		"negative deposit":     func(p *PlanParameters) { p.MonthlyDeposit = decimal.NewFromInt(-1) },
		"negative income":      func(p *PlanParameters) { p.DesiredMonthlyIncome = decimal.NewFromInt(-1) },
		"total loss return":    func(p *PlanParameters) { p.ExpectedReturn = decimal.NewFromInt(-1) },
		"total loss inflation": func(p *PlanParameters) { p.Inflation = decimal.NewFromFloat(-1.5) },
		"negative legacy": func(p *PlanParameters) {
			p.Strategy = TargetLegacy{LegacyTarget: decimal.NewFromInt(-5)}
		},
	}
	for name, mutate := range mutations {
		t.Run(name, func(t *testing.T) {
			p := validPlan()
			mutate(&p)
			assert.ErrorIs(t, p.Validate(), ErrInvalidPlan)
		})
	}
}

func TestValuationReportJSON(t *testing.T) {
	report := NewValuationReport("base", validPlan(), PlanValuationResult{
		RequiredFutureValue: decimal.NewFromInt(1000),
	})
	assert.Equal(t, "preserve_principal", report.PlanType)

	data, err := json.Marshal(report)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"plan_type":"preserve_principal"`)
	assert.Contains(t, string(data), `"required_future_value":"1000"`)

	assert.Equal(t, "unknown", NewValuationReport("", PlanParameters{}, PlanValuationResult{}).PlanType)

	assert.Equal(t, "USD", report.CurrencyCode())
	report.Currency = "BRL"
	assert.Equal(t, "BRL", report.CurrencyCode())
}

func TestGainDecompositionTotal(t *testing.T) {
	g := NewGainDecomposition(decimal.NewFromFloat(120.5), decimal.NewFromFloat(-20.25))
	assert.True(t, g.Total.Equal(decimal.NewFromFloat(100.25)))
}
