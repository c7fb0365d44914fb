package reference

import (
	"math"
	"testing"

	"github.com/rotisserie/eris"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/nitro-cli/internal/model"
)

func TestDefault_EveryRowLooksUpToItsValue(t *testing.T) {
	tbl, err := Default()
	require.NoError(t, err)
	require.Equal(t, 80, tbl.Len())

	for _, row := range tbl.Rows() {
		got, err := tbl.Lookup(row.Key())
		require.NoError(t, err, row.Key().String())
		assert.Equal(t, row.PPB, got, row.Key().String())
	}
}

func TestDefault_KnownValue(t *testing.T) {
	tbl, err := Default()
	require.NoError(t, err)

	got, err := tbl.LookupRaw("1mM", "0.01mg/L", "25", "3.15")
	require.NoError(t, err)
	assert.InDelta(t, 3.6e-3, got, 1e-12)
}

func TestDefault_IsIllustrative(t *testing.T) {
	tbl, err := Default()
	require.NoError(t, err)
	assert.True(t, tbl.Illustrative())

	loaded, err := NewTable([]Row{{Amine: "1 M", Nitrite: "3 mg/L", Temperature: "25", PH: "5", PPB: 1}})
	require.NoError(t, err)
	assert.False(t, loaded.Illustrative())
}

func TestDefault_NoMatch(t *testing.T) {
	tbl, err := Default()
	require.NoError(t, err)

	for _, amine := range AmineOptions {
		for _, temp := range TemperatureOptions {
			for _, ph := range PHOptions {
				_, err := tbl.LookupRaw(amine, "1 M", temp, ph)
				assert.True(t, eris.Is(err, model.ErrNoMatch), "amine=%s temp=%s ph=%s", amine, temp, ph)
			}
		}
	}
}

func TestLookup_KeyOutsideTable(t *testing.T) {
	tbl, err := NewTable([]Row{
		{Amine: "1 mM", Nitrite: "3 mg/L", Temperature: "35", PH: "5", PPB: 1.5},
	})
	require.NoError(t, err)

	_, err = tbl.Lookup(Key{Amine: "1 M", Nitrite: "3 mg/L", Temperature: "35", PH: "5"})
	assert.True(t, eris.Is(err, model.ErrNoMatch))

	_, err = tbl.Lookup(Key{})
	assert.True(t, eris.Is(err, model.ErrNoMatch))
}

func TestLookupRaw_InvalidOption(t *testing.T) {
	tbl, err := Default()
	require.NoError(t, err)

	_, err = tbl.LookupRaw("2 M", "3 mg/L", "25", "5")
	assert.True(t, eris.Is(err, model.ErrInvalidInput))
	assert.False(t, eris.Is(err, model.ErrNoMatch))
}

func TestNewTable_DuplicateKeepsFirst(t *testing.T) {
	tbl, err := NewTable([]Row{
		{Amine: "1 M", Nitrite: "3 mg/L", Temperature: "45", PH: "7", PPB: 10},
		{Amine: "1M", Nitrite: "3mg/L", Temperature: "45 °C", PH: "7.0", PPB: 20},
	})
	require.NoError(t, err)
	assert.Equal(t, 1, tbl.Len())

	got, err := tbl.LookupRaw("1 M", "3 mg/L", "45", "7")
	require.NoError(t, err)
	assert.Equal(t, 10.0, got)
}

func TestNewTable_NormalisesLabels(t *testing.T) {
	tbl, err := NewTable([]Row{
		{Amine: "1mM", Nitrite: "0.01mg/L", Temperature: "25(1h)", PH: "9.0", PPB: 0.5},
	})
	require.NoError(t, err)

	rows := tbl.Rows()
	require.Len(t, rows, 1)
	assert.Equal(t, Row{Amine: "1 mM", Nitrite: "0.01 mg/L", Temperature: "25 (1 h)", PH: "9", PPB: 0.5}, rows[0])
}

func TestNewTable_Errors(t *testing.T) {
	tests := []struct {
		name string
		rows []Row
	}{
		{"empty", nil},
		{"unknown amine", []Row{{Amine: "5 M", Nitrite: "3 mg/L", Temperature: "25", PH: "5", PPB: 1}}},
		{"unknown pH", []Row{{Amine: "1 M", Nitrite: "3 mg/L", Temperature: "25", PH: "4", PPB: 1}}},
		{"negative ppb", []Row{{Amine: "1 M", Nitrite: "3 mg/L", Temperature: "25", PH: "5", PPB: -1}}},
		{"NaN ppb", []Row{{Amine: "1 M", Nitrite: "3 mg/L", Temperature: "25", PH: "5", PPB: math.NaN()}}},
		{"+Inf ppb", []Row{{Amine: "1 M", Nitrite: "3 mg/L", Temperature: "25", PH: "5", PPB: math.Inf(1)}}},
		{"-Inf ppb", []Row{{Amine: "1 M", Nitrite: "3 mg/L", Temperature: "25", PH: "5", PPB: math.Inf(-1)}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewTable(tt.rows)
			assert.Error(t, err)
		})
	}
}

func TestRows_ReturnsCopy(t *testing.T) {
	tbl, err := Default()
	require.NoError(t, err)

	rows := tbl.Rows()
	rows[0].PPB = 999

	got, err := tbl.Lookup(tbl.Rows()[0].Key())
	require.NoError(t, err)
	assert.NotEqual(t, 999.0, got)
}
