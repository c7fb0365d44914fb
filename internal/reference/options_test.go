package reference

import (
	"testing"

	"github.com/rotisserie/eris"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/nitro-cli/internal/model"
)

func TestParseKey_Spellings(t *testing.T) {
	tests := []struct {
		name                     string
		amine, nitrite, temp, ph string
		want                     Key
	}{
		{
			name:  "display labels",
			amine: "1 mM", nitrite: "0.01 mg/L", temp: "25", ph: "3.15",
			want: Key{Amine: "1 mM", Nitrite: "0.01 mg/L", Temperature: "25", PH: "3.15"},
		},
		{
			name:  "compact labels",
			amine: "1mM", nitrite: "0.01mg/L", temp: "25(1h)", ph: "3.15",
			want: Key{Amine: "1 mM", Nitrite: "0.01 mg/L", Temperature: "25 (1 h)", PH: "3.15"},
		},
		{
			name:  "unit suffix and decimal forms",
			amine: " 1 M ", nitrite: "1M", temp: "55 °C", ph: "7.00",
			want: Key{Amine: "1 M", Nitrite: "1 M", Temperature: "55", PH: "7"},
		},
		{
			name:  "compatibility characters",
			amine: "1 M", nitrite: "3 mg/L", temp: "35℃", ph: "5,0",
			want: Key{Amine: "1 M", Nitrite: "3 mg/L", Temperature: "35", PH: "5"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseKey(tt.amine, tt.nitrite, tt.temp, tt.ph)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseKey_Invalid(t *testing.T) {
	tests := []struct {
		name                     string
		amine, nitrite, temp, ph string
		field                    string
	}{
		{"amine case matters", "1 mm", "3 mg/L", "25", "5", "amine"},
		{"unknown nitrite", "1 M", "5 mg/L", "25", "5", "nitrite"},
		{"unknown temperature", "1 M", "3 mg/L", "30", "5", "temperature"},
		{"non-numeric pH", "1 M", "3 mg/L", "25", "acid", "ph"},
		{"blank pH", "1 M", "3 mg/L", "25", "", "ph"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseKey(tt.amine, tt.nitrite, tt.temp, tt.ph)
			require.Error(t, err)
			assert.True(t, eris.Is(err, model.ErrInvalidInput))

			var fe *model.FieldError
			require.ErrorAs(t, err, &fe)
			assert.Equal(t, tt.field, fe.Field)
		})
	}
}

func TestAllOptions_ReturnsCopies(t *testing.T) {
	opts := AllOptions()
	opts.PH[0] = "1"
	assert.Equal(t, "3.15", PHOptions[0])
	assert.Len(t, AllOptions().Nitrite, 3)
}
