package main

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rotisserie/eris"

	"github.com/sells-group/nitro-cli/internal/model"
	"github.com/sells-group/nitro-cli/internal/predict"
	"github.com/sells-group/nitro-cli/internal/reference"
	"github.com/sells-group/nitro-cli/internal/report"
	"github.com/sells-group/nitro-cli/internal/session"
)

type optionsResponse struct {
	reference.Options
	MinPKa     float64 `json:"min_pka"`
	MaxPKa     float64 `json:"max_pka"`
	LLMEnabled bool    `json:"llm_enabled"`
}

type predictionResponse struct {
	Result     string            `json:"result"`
	Prediction *model.Prediction `json:"prediction"`
	Report     *predict.Document `json:"report"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func (s *server) apiOptions(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, optionsResponse{
		Options:    reference.AllOptions(),
		MinPKa:     predict.MinPKa,
		MaxPKa:     predict.MaxPKa,
		LLMEnabled: s.svc.LLMEnabled(),
	})
}

func (s *server) apiPredict(w http.ResponseWriter, r *http.Request) {
	var in model.PredictionInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}

	p, status, msg := s.predict(r, in)
	if p == nil {
		writeJSON(w, status, errorResponse{Error: msg})
		return
	}
	doc, err := s.svc.RenderPrediction(p)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: model.UserMessage(err)})
		return
	}
	writeJSON(w, http.StatusOK, predictionResponse{
		Result:     "Resultado: " + report.FormatNumber(p.PPB) + " ppb",
		Prediction: p,
		Report:     doc,
	})
}

func (s *server) apiListEntries(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.store(w, r).List())
}

func (s *server) apiAddEntry(w http.ResponseWriter, r *http.Request) {
	var e model.Entry
	if err := json.NewDecoder(r.Body).Decode(&e); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}
	// IDs are always assigned by the store.
	e.ID = ""

	added, err := s.store(w, r).Add(e)
	if err != nil {
		writeJSON(w, http.StatusUnprocessableEntity, errorResponse{Error: model.UserMessage(err)})
		return
	}
	writeJSON(w, http.StatusCreated, added)
}

func (s *server) apiDeleteEntry(w http.ResponseWriter, r *http.Request) {
	err := s.store(w, r).Remove(chi.URLParam(r, "id"))
	switch {
	case err == nil:
		w.WriteHeader(http.StatusNoContent)
	case eris.Is(err, session.ErrNotFound):
		writeJSON(w, http.StatusNotFound, errorResponse{Error: "entry not found"})
	default:
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: err.Error()})
	}
}
