package main

import (
	"embed"
	"html/template"
	"mime"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/sells-group/nitro-cli/internal/model"
	"github.com/sells-group/nitro-cli/internal/predict"
	"github.com/sells-group/nitro-cli/internal/reference"
	"github.com/sells-group/nitro-cli/internal/report"
	"github.com/sells-group/nitro-cli/internal/risk"
	"github.com/sells-group/nitro-cli/internal/session"
)

//go:embed templates/*.html.tmpl
var pageFS embed.FS

var pageFuncs = template.FuncMap{
	"deref": func(s *string) string {
		if s == nil {
			return ""
		}
		return *s
	},
}

var pages = map[string]*template.Template{
	"form":    parsePage("form.html.tmpl"),
	"result":  parsePage("result.html.tmpl"),
	"entries": parsePage("entries.html.tmpl"),
}

func parsePage(name string) *template.Template {
	return template.Must(template.New(name).Funcs(pageFuncs).
		ParseFS(pageFS, "templates/layout.html.tmpl", "templates/"+name))
}

// Message shown when the language model call fails after retries.
const llmFailureMessage = "Não foi possível gerar o texto com o modelo de linguagem. Tente novamente."

var defaultInput = model.PredictionInput{
	PH:          reference.PHOptions[0],
	PKa:         report.FormatNumber(predict.MinPKa),
	Nitrite:     reference.NitriteOptions[0],
	Amine:       reference.AmineOptions[0],
	Temperature: reference.TemperatureOptions[0],
}

type formPage struct {
	Error   string
	Input   model.PredictionInput
	Options reference.Options
	MinPKa  float64
	MaxPKa  float64
}

type resultPage struct {
	Error      string
	Input      model.PredictionInput
	PPB        string
	Percentage string
	Level      string
	LevelKey   string
	Narrative  string
	LLMEnabled bool
	SampleNote string
}

type entriesPage struct {
	Error   string
	Entries []model.Entry
	Draft   entryDraft
	Product string
}

// entryDraft is the entry form as submitted.
type entryDraft struct {
	IFA             string
	Manufacturer    string
	Plant           string
	DMFRef          string
	GlobalRisk      string
	NitrosamineName string
	NitrosamineRisk string
}

func (d entryDraft) entry() (model.Entry, error) {
	e := model.Entry{
		IFA:          strings.TrimSpace(d.IFA),
		Manufacturer: strings.TrimSpace(d.Manufacturer),
		Plant:        strings.TrimSpace(d.Plant),
		DMFRef:       strings.TrimSpace(d.DMFRef),
	}
	if strings.TrimSpace(d.GlobalRisk) == "" {
		return e, model.MissingField("global_risk")
	}
	gr, err := risk.ParseQuantity(d.GlobalRisk)
	if err != nil {
		return e, model.InvalidField("global_risk")
	}
	e.GlobalRisk = gr

	if name := strings.TrimSpace(d.NitrosamineName); name != "" {
		e.NitrosamineName = &name
	}
	if strings.TrimSpace(d.NitrosamineRisk) != "" {
		lvl, err := model.ParseRiskLevel(d.NitrosamineRisk)
		if err != nil {
			return e, err
		}
		e.NitrosamineRisk = &lvl
	}
	return e, nil
}

func formInput(r *http.Request) model.PredictionInput {
	return model.PredictionInput{
		IFA:         r.FormValue("ifa"),
		Nitrosamine: r.FormValue("nitrosamine"),
		Limit:       r.FormValue("limit"),
		Dose:        r.FormValue("dose"),
		PH:          r.FormValue("ph"),
		PKa:         r.FormValue("pka"),
		Nitrite:     r.FormValue("nitrite"),
		Amine:       r.FormValue("amine"),
		Temperature: r.FormValue("temperature"),
	}
}

func formDraft(r *http.Request) entryDraft {
	return entryDraft{
		IFA:             r.FormValue("ifa"),
		Manufacturer:    r.FormValue("manufacturer"),
		Plant:           r.FormValue("plant"),
		DMFRef:          r.FormValue("dmf_ref"),
		GlobalRisk:      r.FormValue("global_risk"),
		NitrosamineName: r.FormValue("nitrosamine_name"),
		NitrosamineRisk: r.FormValue("nitrosamine_risk"),
	}
}

func (s *server) handleForm(w http.ResponseWriter, _ *http.Request) {
	s.renderForm(w, http.StatusOK, defaultInput, "")
}

func (s *server) handlePredict(w http.ResponseWriter, r *http.Request) {
	in := formInput(r)
	p, err := s.svc.Predict(r.Context(), in)
	if err != nil {
		s.renderForm(w, http.StatusUnprocessableEntity, in, model.UserMessage(err))
		return
	}
	note := ""
	if p.Illustrative {
		note = report.SampleNote
	}
	renderPage(w, "result", http.StatusOK, resultPage{
		Input:      p.Input,
		PPB:        report.FormatNumber(p.PPB),
		Percentage: report.FormatPercent(p.Assessment.Percentage),
		Level:      p.Assessment.Level.Label(),
		LevelKey:   string(p.Assessment.Level),
		Narrative:  p.Narrative,
		LLMEnabled: s.svc.LLMEnabled(),
		SampleNote: note,
	})
}

// handleReport renders the prediction report as a download. variant=llm asks
// the language model for the narrative.
func (s *server) handleReport(w http.ResponseWriter, r *http.Request) {
	in := formInput(r)
	p, status, msg := s.predict(r, in)
	if p == nil {
		if status == http.StatusNotFound {
			http.NotFound(w, r)
			return
		}
		s.renderForm(w, status, in, msg)
		return
	}
	doc, err := s.svc.RenderPrediction(p)
	if err != nil {
		zap.L().Error("render prediction report", zap.Error(err))
		s.renderForm(w, http.StatusInternalServerError, in, model.UserMessage(err))
		return
	}
	writeDocument(w, doc)
}

// predict runs the variant requested by r and maps failures to a status and a
// user message.
func (s *server) predict(r *http.Request, in model.PredictionInput) (*model.Prediction, int, string) {
	var (
		p   *model.Prediction
		err error
	)
	if r.URL.Query().Get("variant") == "llm" {
		p, err = s.svc.PredictWithLLM(r.Context(), in)
	} else {
		p, err = s.svc.Predict(r.Context(), in)
	}
	if err == nil {
		return p, http.StatusOK, ""
	}
	status, msg := predictionStatus(err)
	return nil, status, msg
}

func predictionStatus(err error) (int, string) {
	switch {
	case eris.Is(err, predict.ErrLLMDisabled):
		return http.StatusNotFound, "Geração de texto não configurada."
	case eris.Is(err, model.ErrInvalidInput), eris.Is(err, model.ErrNoMatch), eris.Is(err, model.ErrMissingRequiredField):
		return http.StatusUnprocessableEntity, model.UserMessage(err)
	default:
		zap.L().Error("generated prediction failed", zap.Error(err))
		return http.StatusBadGateway, llmFailureMessage
	}
}

func (s *server) handleEntries(w http.ResponseWriter, r *http.Request) {
	draft := entryDraft{
		IFA:             r.URL.Query().Get("ifa"),
		NitrosamineName: r.URL.Query().Get("nitrosamine_name"),
		NitrosamineRisk: r.URL.Query().Get("nitrosamine_risk"),
	}
	s.renderEntries(w, s.store(w, r), http.StatusOK, draft, "", "")
}

func (s *server) handleAddEntry(w http.ResponseWriter, r *http.Request) {
	draft := formDraft(r)
	st := s.store(w, r)
	e, err := draft.entry()
	if err == nil {
		_, err = st.Add(e)
	}
	if err != nil {
		s.renderEntries(w, st, http.StatusUnprocessableEntity, draft, "", model.UserMessage(err))
		return
	}
	http.Redirect(w, r, "/entries", http.StatusSeeOther)
}

func (s *server) handleDeleteEntry(w http.ResponseWriter, r *http.Request) {
	st := s.store(w, r)
	if err := st.Remove(chi.URLParam(r, "id")); err != nil {
		if eris.Is(err, session.ErrNotFound) {
			http.NotFound(w, r)
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	http.Redirect(w, r, "/entries", http.StatusSeeOther)
}

func (s *server) handleRiskAnalysis(w http.ResponseWriter, r *http.Request) {
	product := r.URL.Query().Get("product")
	st := s.store(w, r)
	doc, err := s.svc.RenderRiskAnalysis(product, st.List())
	if err != nil {
		s.renderEntries(w, st, http.StatusUnprocessableEntity, entryDraft{}, product, model.UserMessage(err))
		return
	}
	writeDocument(w, doc)
}

func (s *server) renderForm(w http.ResponseWriter, status int, in model.PredictionInput, msg string) {
	renderPage(w, "form", status, formPage{
		Error:   msg,
		Input:   in,
		Options: reference.AllOptions(),
		MinPKa:  predict.MinPKa,
		MaxPKa:  predict.MaxPKa,
	})
}

func (s *server) renderEntries(w http.ResponseWriter, st *session.Store, status int, draft entryDraft, product, msg string) {
	renderPage(w, "entries", status, entriesPage{
		Error:   msg,
		Entries: st.List(),
		Draft:   draft,
		Product: product,
	})
}

func renderPage(w http.ResponseWriter, name string, status int, data any) {
	var b strings.Builder
	if err := pages[name].ExecuteTemplate(&b, "layout", data); err != nil {
		zap.L().Error("render page", zap.String("page", name), zap.Error(err))
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = w.Write([]byte(b.String()))
}

// attachment builds a Content-Disposition value, falling back to an ASCII
// file name when the header cannot carry the given one.
func attachment(filename string) string {
	if v := mime.FormatMediaType("attachment", map[string]string{"filename": filename}); v != "" {
		return v
	}
	return `attachment; filename="relatorio.html"`
}
