package reference

import (
	"math"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/sells-group/nitro-cli/internal/model"
)

// Row is one reference measurement: the predicted nitrosamine formed, in ppb,
// for a combination of amine quantity, nitrite level, temperature and pH.
type Row struct {
	Amine       string  `csv:"amina" yaml:"amina" json:"amine"`
	Nitrite     string  `csv:"nitrito" yaml:"nitrito" json:"nitrite"`
	Temperature string  `csv:"temperatura" yaml:"temperatura" json:"temperature"`
	PH          string  `csv:"pH" yaml:"pH" json:"ph"`
	PPB         float64 `csv:"ppb" yaml:"ppb" json:"ppb"`
}

// Key returns the row's lookup key.
func (r Row) Key() Key {
	return Key{Amine: r.Amine, Nitrite: r.Nitrite, Temperature: r.Temperature, PH: r.PH}
}

// Table is an immutable, key-unique reference table.
type Table struct {
	rows         []Row
	index        map[Key]int
	illustrative bool
}

// NewTable validates rows against the option sets and indexes them. Labels are
// rewritten to their display form. When two rows share a key the first one
// wins and the duplicate is logged.
func NewTable(rows []Row) (*Table, error) {
	t := &Table{
		rows:  make([]Row, 0, len(rows)),
		index: make(map[Key]int, len(rows)),
	}
	for i, r := range rows {
		key, err := ParseKey(r.Amine, r.Nitrite, r.Temperature, r.PH)
		if err != nil {
			return nil, eris.Wrapf(err, "reference: row %d", i+1)
		}
		if r.PPB < 0 || math.IsNaN(r.PPB) || math.IsInf(r.PPB, 0) {
			return nil, eris.Wrapf(model.InvalidField("ppb"), "reference: row %d", i+1)
		}
		if _, dup := t.index[key]; dup {
			zap.L().Warn("reference: duplicate key ignored",
				zap.Int("row", i+1),
				zap.Stringer("key", key),
			)
			continue
		}
		r.Amine, r.Nitrite, r.Temperature, r.PH = key.Amine, key.Nitrite, key.Temperature, key.PH
		t.index[key] = len(t.rows)
		t.rows = append(t.rows, r)
	}
	if len(t.rows) == 0 {
		return nil, eris.New("reference: table is empty")
	}
	return t, nil
}

// Lookup returns the stored ppb for key, or model.ErrNoMatch.
func (t *Table) Lookup(key Key) (float64, error) {
	i, ok := t.index[key]
	if !ok {
		return 0, eris.Wrapf(model.ErrNoMatch, "reference: lookup %s", key)
	}
	return t.rows[i].PPB, nil
}

// LookupRaw parses the four form values and looks them up.
func (t *Table) LookupRaw(amine, nitrite, temperature, ph string) (float64, error) {
	key, err := ParseKey(amine, nitrite, temperature, ph)
	if err != nil {
		return 0, err
	}
	return t.Lookup(key)
}

// Rows returns a copy of the rows in load order.
func (t *Table) Rows() []Row {
	out := make([]Row, len(t.rows))
	copy(out, t.rows)
	return out
}

// Illustrative reports whether the table is the bundled sample rather than
// a published reference table.
func (t *Table) Illustrative() bool {
	return t.illustrative
}

// Len returns the number of distinct rows.
func (t *Table) Len() int {
	return len(t.rows)
}

// Options lists the selectable values for each dimension.
type Options struct {
	Amine       []string `json:"amine"`
	Nitrite     []string `json:"nitrite"`
	Temperature []string `json:"temperature"`
	PH          []string `json:"ph"`
}

// AllOptions returns the full option sets, including values the loaded table
// may not cover.
func AllOptions() Options {
	return Options{
		Amine:       append([]string(nil), AmineOptions...),
		Nitrite:     append([]string(nil), NitriteOptions...),
		Temperature: append([]string(nil), TemperatureOptions...),
		PH:          append([]string(nil), PHOptions...),
	}
}
