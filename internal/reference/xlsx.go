package reference

import (
	"strconv"
	"strings"

	"github.com/rotisserie/eris"
	"github.com/tealeg/xlsx/v2"
)

// XLSXOptions selects the sheet holding the reference table.
type XLSXOptions struct {
	SheetIndex int    // default 0
	SheetName  string // if set, overrides SheetIndex
}

// ReadXLSX reads reference rows from a spreadsheet whose first row is the
// header amina,nitrito,temperatura,pH,ppb. Blank rows are skipped. Decimal
// commas in the ppb column are accepted.
func ReadXLSX(path string, opts XLSXOptions) ([]Row, error) {
	f, err := xlsx.OpenFile(path)
	if err != nil {
		return nil, eris.Wrap(err, "reference: open xlsx")
	}

	sheet, err := getSheet(f, opts)
	if err != nil {
		return nil, err
	}
	if len(sheet.Rows) == 0 {
		return nil, eris.New("reference: xlsx sheet is empty")
	}

	cols, err := headerColumns(rowToStrings(sheet.Rows[0]))
	if err != nil {
		return nil, err
	}

	var rows []Row
	for i, r := range sheet.Rows[1:] {
		cells := rowToStrings(r)
		if isBlank(cells) {
			continue
		}
		cell := func(name string) string {
			if j := cols[name]; j < len(cells) {
				return strings.TrimSpace(cells[j])
			}
			return ""
		}
		ppb, err := strconv.ParseFloat(strings.ReplaceAll(cell("ppb"), ",", "."), 64)
		if err != nil {
			return nil, eris.Wrapf(err, "reference: xlsx row %d: parse ppb", i+2)
		}
		rows = append(rows, Row{
			Amine:       cell("amina"),
			Nitrite:     cell("nitrito"),
			Temperature: cell("temperatura"),
			PH:          cell("ph"),
			PPB:         ppb,
		})
	}
	return rows, nil
}

var requiredColumns = []string{"amina", "nitrito", "temperatura", "ph", "ppb"}

func headerColumns(header []string) (map[string]int, error) {
	cols := make(map[string]int, len(header))
	for i, h := range header {
		cols[strings.ToLower(strings.TrimSpace(h))] = i
	}
	for _, name := range requiredColumns {
		if _, ok := cols[name]; !ok {
			return nil, eris.Errorf("reference: xlsx header missing column %q", name)
		}
	}
	return cols, nil
}

func getSheet(f *xlsx.File, opts XLSXOptions) (*xlsx.Sheet, error) {
	if opts.SheetName != "" {
		sheet, ok := f.Sheet[opts.SheetName]
		if !ok {
			return nil, eris.Errorf("reference: sheet %q not found", opts.SheetName)
		}
		return sheet, nil
	}

	if opts.SheetIndex >= len(f.Sheets) {
		return nil, eris.Errorf("reference: sheet index %d out of range (file has %d sheets)", opts.SheetIndex, len(f.Sheets))
	}

	return f.Sheets[opts.SheetIndex], nil
}

func rowToStrings(row *xlsx.Row) []string {
	cells := make([]string, len(row.Cells))
	for j, cell := range row.Cells {
		cells[j] = cell.String()
	}
	return cells
}

func isBlank(cells []string) bool {
	for _, c := range cells {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}
