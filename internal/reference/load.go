package reference

import (
	"bytes"
	_ "embed"
	"encoding/csv"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/jszwec/csvutil"
	"github.com/rotisserie/eris"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

//go:embed data/ashworth.csv
var ashworthCSV []byte

// Default returns the table bundled with the binary. Apart from
// (1 mM, 0.01 mg/L, 25, 3.15) its values are illustrative, so the table is
// marked as such and every report built on it says so.
func Default() (*Table, error) {
	rows, err := ParseCSV(bytes.NewReader(ashworthCSV))
	if err != nil {
		return nil, eris.Wrap(err, "reference: parse bundled table")
	}
	t, err := NewTable(rows)
	if err != nil {
		return nil, err
	}
	t.illustrative = true
	zap.L().Warn("reference: using the bundled table with illustrative values; set reference.path to the published table",
		zap.Int("rows", t.Len()),
	)
	return t, nil
}

// Load reads a reference table from path. The format follows the extension:
// .csv, .xlsx, or .yaml/.yml. An empty path loads the bundled table.
func Load(path string) (*Table, error) {
	if path == "" {
		return Default()
	}

	var rows []Row
	var err error
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".csv":
		rows, err = readFile(path, ParseCSV)
	case ".yaml", ".yml":
		rows, err = readFile(path, ParseYAML)
	case ".xlsx":
		rows, err = ReadXLSX(path, XLSXOptions{})
	default:
		return nil, eris.Errorf("reference: unsupported table format %q", ext)
	}
	if err != nil {
		return nil, err
	}

	t, err := NewTable(rows)
	if err != nil {
		return nil, err
	}
	zap.L().Info("reference table loaded",
		zap.String("path", path),
		zap.Int("rows", t.Len()),
	)
	return t, nil
}

func readFile(path string, parse func(io.Reader) ([]Row, error)) ([]Row, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, eris.Wrap(err, "reference: open table")
	}
	defer f.Close() //nolint:errcheck
	return parse(f)
}

// ParseCSV decodes rows with the header amina,nitrito,temperatura,pH,ppb.
// Column order is free; unknown columns are ignored.
func ParseCSV(r io.Reader) ([]Row, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true

	dec, err := csvutil.NewDecoder(cr)
	if err != nil {
		return nil, eris.Wrap(err, "reference: read csv header")
	}

	var rows []Row
	for {
		var row Row
		if err := dec.Decode(&row); err == io.EOF {
			break
		} else if err != nil {
			return nil, eris.Wrapf(err, "reference: decode csv row %d", len(rows)+1)
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// ParseYAML decodes a YAML sequence of rows keyed like the CSV header.
func ParseYAML(r io.Reader) ([]Row, error) {
	var rows []Row
	if err := yaml.NewDecoder(r).Decode(&rows); err != nil {
		if err == io.EOF {
			return nil, nil
		}
		return nil, eris.Wrap(err, "reference: decode yaml")
	}
	return rows, nil
}
