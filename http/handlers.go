package http

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"fraudcheck/fraud"
	"fraudcheck/logging"
	"fraudcheck/ml"
	"fraudcheck/monitoring"
)

// Analyzer scores one parsed transaction.
type Analyzer interface {
	Analyze(ctx context.Context, tx fraud.Transaction) (*fraud.Result, error)
}

// Handler serves the form pages and the health endpoint.
type Handler struct {
	analyzer  Analyzer
	artifacts *ml.Artifacts
	location  *time.Location
	now       func() time.Time
}

func NewHandler(analyzer Analyzer, artifacts *ml.Artifacts, loc *time.Location) *Handler {
	if loc == nil {
		loc = time.UTC
	}
	return &Handler{
		analyzer:  analyzer,
		artifacts: artifacts,
		location:  loc,
		now:       time.Now,
	}
}

func (h *Handler) Register(mux *http.ServeMux) {
	mux.HandleFunc("GET /{$}", h.handleForm)
	mux.HandleFunc("POST /analyze", h.handleAnalyze)
	mux.HandleFunc("GET /api/health", h.handleHealth)
}

func (h *Handler) handleForm(w http.ResponseWriter, r *http.Request) {
	today := h.now().In(h.location).Format(fraud.DateLayout)
	form := formValues{
		Date: today,
		Hour: strconv.Itoa(fraud.DefaultHour),
	}
	h.render(w, r, http.StatusOK, newPage(form))
}

func (h *Handler) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	logger := logging.FromContext(r.Context())

	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form submission", http.StatusBadRequest)
		return
	}
	form := readForm(r)
	page := newPage(form)

	if missing := form.missingRequired(); len(missing) > 0 {
		page.Notice = "Please enter " + strings.Join(missing, " and ") + " before analyzing."
		h.render(w, r, http.StatusBadRequest, page)
		return
	}

	tx, err := form.raw().Parse()
	if err != nil {
		monitoring.ObserveError(string(fraud.Kind(err)))
		logger.Info("rejected submission", zap.Error(err))
		page.Error = inputMessage(err)
		h.render(w, r, http.StatusBadRequest, page)
		return
	}

	start := time.Now()
	result, err := h.analyzer.Analyze(r.Context(), tx)
	if err != nil {
		kind := fraud.Kind(err)
		monitoring.ObserveError(string(kind))
		if kind == fraud.KindInputParse {
			page.Error = inputMessage(err)
			h.render(w, r, http.StatusBadRequest, page)
			return
		}
		logger.Error("analysis failed", zap.String("kind", string(kind)), zap.Error(err))
		page.Error = "The transaction could not be analyzed. Please try again later."
		h.render(w, r, http.StatusInternalServerError, page)
		return
	}
	monitoring.ObserveVerdict(result.Verdict.String(), time.Since(start))
	logger.Info("transaction analyzed",
		zap.Stringer("verdict", result.Verdict),
		zap.Float64("confidence", result.Confidence),
	)

	page.Result = newResultView(result, tx, form, h.location)
	h.render(w, r, http.StatusOK, page)
}

type healthResponse struct {
	Status    string          `json:"status"`
	Artifacts *artifactStatus `json:"artifacts,omitempty"`
}

type artifactStatus struct {
	Scaler     string `json:"scaler"`
	Classifier string `json:"classifier"`
	Features   int    `json:"features"`
}

func (h *Handler) handleHealth(w http.ResponseWriter, r *http.Request) {
	resp := healthResponse{Status: "ok"}
	code := http.StatusOK
	if h.artifacts == nil || h.artifacts.Scaler == nil || h.artifacts.Classifier == nil {
		resp.Status = "unavailable"
		code = http.StatusServiceUnavailable
	} else {
		resp.Artifacts = &artifactStatus{
			Scaler:     h.artifacts.ScalerType,
			Classifier: h.artifacts.ClassifierType,
			Features:   h.artifacts.NumFeatures(),
		}
	}
	writeJSON(w, code, resp)
}

func (h *Handler) render(w http.ResponseWriter, r *http.Request, code int, page *pageData) {
	var buf bytes.Buffer
	if err := pageTemplate.Execute(&buf, page); err != nil {
		logging.FromContext(r.Context()).Error("render page", zap.Error(err))
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(code)
	_, _ = buf.WriteTo(w)
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

// inputMessage is the text shown for a rejected field.
func inputMessage(err error) string {
	var inputErr *fraud.InputError
	if !errors.As(err, &inputErr) {
		return "The submission was rejected."
	}
	label := fieldLabels[inputErr.Field]
	if label == "" {
		label = inputErr.Field
	}
	switch {
	case errors.Is(err, fraud.ErrRequired):
		return label + " is required."
	case errors.Is(err, fraud.ErrNotNumeric):
		return label + " must be a number."
	case errors.Is(err, fraud.ErrOutOfRange):
		return label + " is out of range."
	case errors.Is(err, fraud.ErrUnknownLabel):
		return label + " has an unknown value."
	default:
		return label + " is invalid."
	}
}
