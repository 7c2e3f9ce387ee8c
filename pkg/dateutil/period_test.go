package dateutil

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePeriod(t *testing.T) {
	tests := []struct {
		in      string
		want    Period
		wantErr bool
	}{
		{in: "03/2024", want: Period{2024, time.March}},
		{in: "3/2024", want: Period{2024, time.March}},
		{in: "12/1999", want: Period{1999, time.December}},
		{in: "13/2024", wantErr: true},
		{in: "2024-03", wantErr: true},
		{in: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParsePeriod(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestPeriodString(t *testing.T) {
	assert.Equal(t, "03/2024", Period{2024, time.March}.String())
	assert.Equal(t, "11/2023", MustParsePeriod("11/2023").String())
}

func TestPeriodArithmetic(t *testing.T) {
	jan := MustParsePeriod("01/2024")
	assert.Equal(t, MustParsePeriod("12/2023"), jan.Prev())
	assert.Equal(t, MustParsePeriod("02/2024"), jan.Next())
	assert.Equal(t, MustParsePeriod("01/2026"), jan.AddMonths(24))
	assert.True(t, jan.Prev().Before(jan))
	assert.False(t, jan.Before(jan))
	assert.Equal(t, Period{2025, time.January}, NewPeriod(2024, 13))
	assert.Equal(t, jan, PeriodOf(time.Date(2024, 1, 31, 23, 0, 0, 0, time.UTC)))
}

func TestPeriodTextRoundTrip(t *testing.T) {
	in := map[Period]float64{MustParsePeriod("02/2024"): 4.97}
	data, err := json.Marshal(in)
	require.NoError(t, err)
	assert.JSONEq(t, `{"02/2024":4.97}`, string(data))

	var out map[Period]float64
	require.NoError(t, json.Unmarshal(data, &out))
	assert.Equal(t, in, out)
}
