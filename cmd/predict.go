package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sells-group/nitro-cli/internal/metrics"
	"github.com/sells-group/nitro-cli/internal/model"
	"github.com/sells-group/nitro-cli/internal/predict"
	"github.com/sells-group/nitro-cli/internal/report"
)

var predictCmd = &cobra.Command{
	Use:   "predict",
	Short: "Predict nitrosamine formation and write the HTML report",
	Long: `Look up the predicted nitrosamine formation for the given process
conditions, classify it against the acceptable intake and write the report.

Examples:
  # Standard report in the current directory
  predict --ifa Losartana --nitrosamine NDMA --limit 96 --dose 150 \
    --ph 3.15 --pka 10.2 --nitrite "0.01 mg/L" --amine "1 mM" --temperature 25

  # Narrative written by the language model, into ./out
  predict --llm --out out ...`,
	RunE: runPredict,
}

func init() {
	f := predictCmd.Flags()
	f.String("ifa", "", "active pharmaceutical ingredient (IFA)")
	f.String("nitrosamine", "", "nitrosamine name")
	f.String("limit", "", "acceptable intake limit in ng/day")
	f.String("dose", "", "maximum daily dose in mg/day")
	f.String("ph", "", "process pH (3.15, 5, 7, 9)")
	f.String("pka", "", "amine pKa (9.5 to 14)")
	f.String("nitrite", "", "nitrite level (0.01 mg/L, 3 mg/L, 1 M)")
	f.String("amine", "", "amine quantity (1 mM, 1 M)")
	f.String("temperature", "", "process temperature in °C (25, 35, 45, 55, 25 (1 h))")
	f.Bool("llm", false, "have the language model write the narrative")
	f.String("out", "", "output directory (default from config)")

	rootCmd.AddCommand(predictCmd)
}

func runPredict(cmd *cobra.Command, _ []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	f := cmd.Flags()
	in := model.PredictionInput{}
	for name, dst := range map[string]*string{
		"ifa": &in.IFA, "nitrosamine": &in.Nitrosamine, "limit": &in.Limit,
		"dose": &in.Dose, "ph": &in.PH, "pka": &in.PKa, "nitrite": &in.Nitrite,
		"amine": &in.Amine, "temperature": &in.Temperature,
	} {
		*dst, _ = f.GetString(name)
	}
	useLLM, _ := f.GetBool("llm")
	outDir, _ := f.GetString("out")
	if outDir == "" {
		outDir = cfg.Report.OutDir
	}

	svc, err := initService(cfg, metrics.New())
	if err != nil {
		return err
	}

	path, err := predictToFile(ctx, svc, in, useLLM, outDir, cmd.OutOrStdout())
	if err != nil {
		return err
	}
	zap.L().Info("report written", zap.String("path", path))
	return nil
}

// predictToFile runs one prediction, prints the result line to w and writes
// the report into outDir. It returns the report path.
func predictToFile(ctx context.Context, svc *predict.Service, in model.PredictionInput, useLLM bool, outDir string, w io.Writer) (string, error) {
	var (
		p   *model.Prediction
		err error
	)
	if useLLM {
		p, err = svc.PredictWithLLM(ctx, in)
	} else {
		p, err = svc.Predict(ctx, in)
	}
	if err != nil {
		return "", err
	}

	fmt.Fprintf(w, "Resultado: %s ppb\n", report.FormatNumber(p.PPB))
	fmt.Fprintf(w, "Risco: %s (%s da especificação)\n", p.Assessment.Level.Label(), report.FormatPercent(p.Assessment.Percentage))

	doc, err := svc.RenderPrediction(p)
	if err != nil {
		return "", err
	}
	path, err := writeReport(outDir, doc)
	if err != nil {
		return "", err
	}
	fmt.Fprintf(w, "Relatório: %s\n", path)
	return path, nil
}

func writeReport(dir string, doc *predict.Document) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", eris.Wrapf(err, "report: create %s", dir)
	}
	path := filepath.Join(dir, doc.Filename)
	if err := os.WriteFile(path, []byte(doc.HTML), 0o644); err != nil {
		return "", eris.Wrapf(err, "report: write %s", path)
	}
	return path, nil
}
