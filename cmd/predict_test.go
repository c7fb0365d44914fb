//go:build !integration

package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/nitro-cli/internal/model"
	"github.com/sells-group/nitro-cli/internal/reference"
	"github.com/sells-group/nitro-cli/internal/session"
)

func TestPredictToFile(t *testing.T) {
	svc := newTestService(t, nil)
	dir := filepath.Join(t.TempDir(), "out")
	var out bytes.Buffer

	path, err := predictToFile(context.Background(), svc, validInput(), false, dir, &out)
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(dir, "Predicao_Losartana.html"), path)
	assert.Contains(t, out.String(), "Resultado: 0.0036 ppb")
	assert.Contains(t, out.String(), "Risco: baixo")
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "Quadro 1 - Valores Informados")
}

func TestPredictToFile_LLM(t *testing.T) {
	svc := newTestService(t, stubNarrator{text: "Texto do modelo."})
	dir := t.TempDir()

	path, err := predictToFile(context.Background(), svc, validInput(), true, dir, &bytes.Buffer{})
	require.NoError(t, err)

	assert.Equal(t, "Predicao_IA_Losartana.html", filepath.Base(path))
}

func TestPredictToFile_NoMatchWritesNothing(t *testing.T) {
	svc := newTestService(t, nil)
	dir := t.TempDir()
	in := validInput()
	in.Nitrite = "1 M"
	var out bytes.Buffer

	_, err := predictToFile(context.Background(), svc, in, false, dir, &out)
	require.Error(t, err)

	assert.ErrorIs(t, err, model.ErrNoMatch)
	assert.Empty(t, out.String())
	files, _ := os.ReadDir(dir)
	assert.Empty(t, files)
}

func TestLoadEntries(t *testing.T) {
	const doc = `
- ifa: Losartana
  manufacturer: Acme
  plant: Planta 1
  dmf_ref: DMF-001
  global_risk: 2
  nitrosamine_name: NDMA
  nitrosamine_risk: low
- ifa: Valsartana
  manufacturer: Beta
  global_risk: 1.5
`
	store := session.NewStore()
	require.NoError(t, loadEntries(strings.NewReader(doc), store))

	list := store.List()
	require.Len(t, list, 2)
	assert.Equal(t, "Losartana", list[0].IFA)
	require.NotNil(t, list[0].NitrosamineRisk)
	assert.Equal(t, model.RiskLow, *list[0].NitrosamineRisk)
	assert.Equal(t, "Valsartana", list[1].IFA)
	assert.False(t, list[1].HasNitrosamine())
	assert.NotEmpty(t, list[1].ID)
}

func TestLoadEntries_Errors(t *testing.T) {
	store := session.NewStore()
	assert.Error(t, loadEntries(strings.NewReader("ifa: [unclosed"), store))

	err := loadEntries(strings.NewReader("- manufacturer: Acme\n  global_risk: 1\n"), store)
	assert.ErrorIs(t, err, model.ErrMissingRequiredField)
	assert.Equal(t, 0, store.Len())
}

func TestLoadEntries_EmptyFile(t *testing.T) {
	store := session.NewStore()
	require.NoError(t, loadEntries(strings.NewReader(""), store))
	assert.Equal(t, 0, store.Len())
}

func TestAnalysisToFile(t *testing.T) {
	svc := newTestService(t, nil)
	store := session.NewStore()
	_, err := store.Add(model.Entry{IFA: "Losartana", Manufacturer: "Acme", GlobalRisk: 2})
	require.NoError(t, err)
	dir := t.TempDir()

	path, err := analysisToFile(svc, "Cozaar 50 mg", store, dir)
	require.NoError(t, err)

	assert.Equal(t, "AR_Cozaar_50_mg.html", filepath.Base(path))
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "Acme")

	_, err = analysisToFile(svc, "", store, dir)
	assert.ErrorIs(t, err, model.ErrMissingRequiredField)
}

func TestPrintTable(t *testing.T) {
	table, err := reference.Default()
	require.NoError(t, err)

	var text bytes.Buffer
	require.NoError(t, printTable(&text, table, "text"))
	assert.Contains(t, text.String(), "AMINA")
	assert.Contains(t, text.String(), "0.0036")
	assert.Contains(t, text.String(), "80 rows")
	assert.Contains(t, text.String(), "valores ilustrativos")

	var y bytes.Buffer
	require.NoError(t, printTable(&y, table, "yaml"))
	assert.Contains(t, y.String(), "amina: 1 mM")
	assert.Contains(t, y.String(), "ppb: 0.0036")

	assert.Error(t, printTable(&bytes.Buffer{}, table, "xml"))
}

func TestPrintTable_PublishedTableHasNoNote(t *testing.T) {
	table, err := reference.NewTable([]reference.Row{
		{Amine: "1 mM", Nitrite: "0.01 mg/L", Temperature: "25 °C", PH: "3.15", PPB: 0.0036},
	})
	require.NoError(t, err)

	var text bytes.Buffer
	require.NoError(t, printTable(&text, table, "text"))
	assert.Contains(t, text.String(), "1 rows")
	assert.NotContains(t, text.String(), "valores ilustrativos")
}
