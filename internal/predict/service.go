// Package predict turns a prediction request into a rendered report:
// validate, look up, assess, narrate, render.
package predict

import (
	"context"
	"strings"
	"time"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/sells-group/nitro-cli/internal/metrics"
	"github.com/sells-group/nitro-cli/internal/model"
	"github.com/sells-group/nitro-cli/internal/reference"
	"github.com/sells-group/nitro-cli/internal/report"
	"github.com/sells-group/nitro-cli/internal/risk"
)

// pKa bounds accepted on the input form.
const (
	MinPKa = 9.5
	MaxPKa = 14.0
)

// ErrLLMDisabled is returned by PredictWithLLM when no narrator is configured.
var ErrLLMDisabled = eris.New("predict: language model narrative is not configured")

// Narrator writes the narrative paragraph(s) for a prediction.
type Narrator interface {
	Narrate(ctx context.Context, p model.Prediction) (string, error)
}

// Document is a rendered report ready for download.
type Document struct {
	Filename string `json:"filename"`
	HTML     string `json:"html"`
}

// Service runs predictions against one reference table.
type Service struct {
	table    *reference.Table
	calc     risk.Calculator
	narrator Narrator
	metrics  *metrics.Metrics
	now      func() time.Time
}

// NewService builds a Service. narrator and m may be nil.
func NewService(table *reference.Table, calc risk.Calculator, narrator Narrator, m *metrics.Metrics) *Service {
	return &Service{
		table:    table,
		calc:     calc,
		narrator: narrator,
		metrics:  m,
		now:      time.Now,
	}
}

// Table returns the reference table the service looks up against.
func (s *Service) Table() *reference.Table {
	return s.table
}

// LLMEnabled reports whether PredictWithLLM can be used.
func (s *Service) LLMEnabled() bool {
	return s.narrator != nil
}

// Predict validates in, looks up the formation estimate and classifies it.
// The returned prediction carries the standard narrative.
func (s *Service) Predict(ctx context.Context, in model.PredictionInput) (*model.Prediction, error) {
	p, err := s.predict(in)
	if err != nil {
		s.metrics.PredictionFailed(failureKind(err))
		return nil, err
	}
	s.metrics.PredictionDone(string(p.Assessment.Level))

	zap.L().Info("prediction complete",
		zap.String("ifa", p.Input.IFA),
		zap.String("nitrosamine", p.Input.Nitrosamine),
		zap.Float64("ppb", p.PPB),
		zap.Float64("percentage", p.Assessment.Percentage),
		zap.String("level", string(p.Assessment.Level)),
	)
	return p, nil
}

func (s *Service) predict(in model.PredictionInput) (*model.Prediction, error) {
	in = trimInput(in)
	if in.IFA == "" {
		return nil, model.MissingField("ifa")
	}
	if in.Nitrosamine == "" {
		return nil, model.MissingField("nitrosamine")
	}

	pka, err := risk.ParseQuantity(in.PKa)
	if err != nil || pka < MinPKa || pka > MaxPKa {
		return nil, model.InvalidField("pka")
	}

	key, err := reference.ParseKey(in.Amine, in.Nitrite, in.Temperature, in.PH)
	if err != nil {
		return nil, err
	}
	in.Amine, in.Nitrite, in.Temperature, in.PH = key.Amine, key.Nitrite, key.Temperature, key.PH

	ppb, err := s.table.Lookup(key)
	if err != nil {
		return nil, err
	}

	assessment, err := s.calc.Assess(in.Limit, in.Dose, ppb)
	if err != nil {
		return nil, err
	}

	p := &model.Prediction{
		Input:        in,
		PKa:          pka,
		PPB:          ppb,
		Assessment:   assessment,
		Illustrative: s.table.Illustrative(),
		CreatedAt:    s.now().UTC(),
	}
	p.Narrative = report.Narrative(*p)
	return p, nil
}

// PredictWithLLM runs Predict and replaces the narrative with the language
// model's text. Lookup and classification stay local.
func (s *Service) PredictWithLLM(ctx context.Context, in model.PredictionInput) (*model.Prediction, error) {
	if s.narrator == nil {
		return nil, ErrLLMDisabled
	}
	p, err := s.Predict(ctx, in)
	if err != nil {
		return nil, err
	}

	text, err := s.narrator.Narrate(ctx, *p)
	if err != nil {
		s.metrics.LLMRequest("error")
		return nil, eris.Wrap(err, "predict: narrate")
	}
	s.metrics.LLMRequest("ok")

	p.Narrative = text
	p.Generated = true
	return p, nil
}

// RenderPrediction renders p as a downloadable document.
func (s *Service) RenderPrediction(p *model.Prediction) (*Document, error) {
	html, err := report.RenderPrediction(*p)
	if err != nil {
		return nil, err
	}
	kind := report.KindPrediction
	if p.Generated {
		kind = report.KindPredictionLLM
	}
	s.metrics.ReportRendered(kind)
	return &Document{Filename: report.Filename(kind, p.Input.IFA), HTML: html}, nil
}

// RenderRiskAnalysis renders the aggregate report over entries.
func (s *Service) RenderRiskAnalysis(product string, entries []model.Entry) (*Document, error) {
	html, err := report.RenderRiskAnalysis(product, entries, s.now())
	if err != nil {
		return nil, err
	}
	s.metrics.ReportRendered(report.KindRiskAnalysis)
	return &Document{
		Filename: report.Filename(report.KindRiskAnalysis, product),
		HTML:     html,
	}, nil
}

func trimInput(in model.PredictionInput) model.PredictionInput {
	for _, f := range []*string{
		&in.IFA, &in.Nitrosamine, &in.Limit, &in.Dose, &in.PH,
		&in.PKa, &in.Nitrite, &in.Amine, &in.Temperature,
	} {
		*f = strings.TrimSpace(*f)
	}
	return in
}

func failureKind(err error) string {
	switch {
	case eris.Is(err, model.ErrNoMatch):
		return "no_match"
	case eris.Is(err, model.ErrMissingRequiredField):
		return "missing_field"
	case eris.Is(err, model.ErrInvalidInput):
		return "invalid_input"
	default:
		return "other"
	}
}
