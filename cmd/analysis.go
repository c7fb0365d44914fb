package main

import (
	"fmt"
	"io"
	"os"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/sells-group/nitro-cli/internal/metrics"
	"github.com/sells-group/nitro-cli/internal/model"
	"github.com/sells-group/nitro-cli/internal/predict"
	"github.com/sells-group/nitro-cli/internal/session"
)

var analysisCmd = &cobra.Command{
	Use:   "analysis",
	Short: "Write the aggregate risk analysis report for a product",
	Long: `Read the evaluated sources from a YAML file and write the aggregate
risk analysis (AR) report for a product.

The entries file is a YAML list:

  - ifa: Losartana
    manufacturer: Acme
    plant: Plant 1
    dmf_ref: DMF-001
    global_risk: 2
    nitrosamine_name: NDMA
    nitrosamine_risk: low`,
	RunE: runAnalysis,
}

func init() {
	f := analysisCmd.Flags()
	f.String("product", "", "product name (required)")
	f.String("entries", "", "YAML file with the evaluated sources")
	f.String("out", "", "output directory (default from config)")

	rootCmd.AddCommand(analysisCmd)
}

func runAnalysis(cmd *cobra.Command, _ []string) error {
	product, _ := cmd.Flags().GetString("product")
	entriesPath, _ := cmd.Flags().GetString("entries")
	outDir, _ := cmd.Flags().GetString("out")
	if outDir == "" {
		outDir = cfg.Report.OutDir
	}

	store := session.NewStore()
	if entriesPath != "" {
		f, err := os.Open(entriesPath)
		if err != nil {
			return eris.Wrapf(err, "analysis: open %s", entriesPath)
		}
		defer f.Close() //nolint:errcheck
		if err := loadEntries(f, store); err != nil {
			return err
		}
	}

	svc, err := initService(cfg, metrics.New())
	if err != nil {
		return err
	}
	path, err := analysisToFile(svc, product, store, outDir)
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Relatório: %s\n", path)
	zap.L().Info("risk analysis written",
		zap.String("product", product),
		zap.Int("entries", store.Len()),
		zap.String("path", path),
	)
	return nil
}

// loadEntries decodes a YAML list of entries into store, in file order.
func loadEntries(r io.Reader, store *session.Store) error {
	var entries []model.Entry
	if err := yaml.NewDecoder(r).Decode(&entries); err != nil && err != io.EOF {
		return eris.Wrap(err, "analysis: decode entries")
	}
	for i, e := range entries {
		if _, err := store.Add(e); err != nil {
			return eris.Wrapf(err, "analysis: entry %d", i+1)
		}
	}
	return nil
}

func analysisToFile(svc *predict.Service, product string, store *session.Store, outDir string) (string, error) {
	doc, err := svc.RenderRiskAnalysis(product, store.List())
	if err != nil {
		return "", err
	}
	return writeReport(outDir, doc)
}
