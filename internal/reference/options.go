// Package reference holds the nitrosamine formation reference table and the
// exact-match lookup over it.
package reference

import (
	"strconv"
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"

	"github.com/sells-group/nitro-cli/internal/model"
)

// Option sets accepted for each lookup dimension, in display order.
var (
	AmineOptions       = []string{"1 mM", "1 M"}
	NitriteOptions     = []string{"0.01 mg/L", "3 mg/L", "1 M"}
	TemperatureOptions = []string{"25", "35", "45", "55", "25 (1 h)"}
	PHOptions          = []string{"3.15", "5", "7", "9"}
)

// Key identifies one reference row. Fields hold display labels from the
// option sets, so two keys built from equivalent spellings compare equal.
type Key struct {
	Amine       string `json:"amine" yaml:"amina"`
	Nitrite     string `json:"nitrite" yaml:"nitrito"`
	Temperature string `json:"temperature" yaml:"temperatura"`
	PH          string `json:"ph" yaml:"pH"`
}

func (k Key) String() string {
	return "amina=" + k.Amine + " nitrito=" + k.Nitrite + " temperatura=" + k.Temperature + " pH=" + k.PH
}

// ParseKey resolves raw form values against the option sets. Each value may
// use any spacing or Unicode compatibility form of the label ("1mM", "25(1h)",
// "25 °C", "5.0").
func ParseKey(amine, nitrite, temperature, ph string) (Key, error) {
	var k Key
	var ok bool
	if k.Amine, ok = match(AmineOptions, amine, canonicalLabel); !ok {
		return Key{}, model.InvalidField("amine")
	}
	if k.Nitrite, ok = match(NitriteOptions, nitrite, canonicalLabel); !ok {
		return Key{}, model.InvalidField("nitrite")
	}
	if k.Temperature, ok = match(TemperatureOptions, temperature, canonicalTemperature); !ok {
		return Key{}, model.InvalidField("temperature")
	}
	if k.PH, ok = match(PHOptions, ph, canonicalNumber); !ok {
		return Key{}, model.InvalidField("ph")
	}
	return k, nil
}

func match(options []string, raw string, canon func(string) string) (string, bool) {
	want := canon(raw)
	if want == "" {
		return "", false
	}
	for _, opt := range options {
		if canon(opt) == want {
			return opt, true
		}
	}
	return "", false
}

// canonicalLabel folds compatibility characters and drops whitespace. Case is
// kept: "mM" and "M" differ only by case.
func canonicalLabel(s string) string {
	s = norm.NFKC.String(s)
	return strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, s)
}

func canonicalTemperature(s string) string {
	s = canonicalLabel(s)
	for _, unit := range []string{"°C", "oC", "°", "C"} {
		if i := strings.Index(s, unit); i >= 0 {
			s = s[:i] + s[i+len(unit):]
			break
		}
	}
	return s
}

func canonicalNumber(s string) string {
	s = strings.ReplaceAll(canonicalLabel(s), ",", ".")
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return ""
	}
	return strconv.FormatFloat(f, 'g', -1, 64)
}
