package api

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"leak-diagnostic/internal/catalog"
	"leak-diagnostic/internal/common/errors"
	"leak-diagnostic/internal/common/logger"
	"leak-diagnostic/internal/session"
)

type Handler struct {
	registry *Registry
	log      logger.Logger
}

func NewHandler(registry *Registry, log logger.Logger) *Handler {
	if log == nil {
		log = logger.NewNoOpLogger()
	}
	return &Handler{registry: registry, log: log}
}

func (h *Handler) Router() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)

	r.Get("/healthz", h.healthz)
	r.Get("/metrics", promhttp.Handler().ServeHTTP)
	r.Get("/api/v1/industries", h.listIndustries)

	r.Route("/api/v1/sessions", func(r chi.Router) {
		r.Post("/", h.createSession)
		r.Route("/{sessionID}", func(r chi.Router) {
			r.Get("/", h.getSession)
			r.Post("/industry", h.selectIndustry)
			r.Post("/revenue", h.setRevenue)
			r.Post("/begin", h.beginQuiz)
			r.Post("/answers", h.recordAnswer)
			r.Post("/advance", h.advance)
			r.Post("/retreat", h.retreat)
			r.Post("/report", h.submitEmail)
			r.Post("/restart", h.restart)
		})
	})
	return r
}

func (h *Handler) healthz(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"status":   "ok",
		"sessions": h.registry.Len(),
	})
}

func (h *Handler) listIndustries(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"industries": catalog.Industries(),
	})
}

func (h *Handler) createSession(w http.ResponseWriter, r *http.Request) {
	var req createSessionRequest
	if r.ContentLength > 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, err)
			return
		}
	}

	ctrl, err := h.registry.Create(r.Context(), session.Referral{
		Name:            req.Name,
		Company:         req.Company,
		Email:           req.Email,
		Industry:        req.Industry,
		RevenueMillions: req.RevenueMillions,
	})
	if err != nil {
		h.writeFlowError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, viewOf(ctrl))
}

func (h *Handler) getSession(w http.ResponseWriter, r *http.Request) {
	ctrl, ok := h.registry.Get(chi.URLParam(r, "sessionID"))
	if !ok {
		writeError(w, http.StatusNotFound, errSessionNotFound)
		return
	}
	writeJSON(w, http.StatusOK, viewOf(ctrl))
}

func (h *Handler) selectIndustry(w http.ResponseWriter, r *http.Request) {
	h.sessionOp(w, r, func(ctrl *session.Controller) error {
		var req industryRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			return errDecode(err)
		}
		return ctrl.SelectIndustry(req.Industry)
	})
}

func (h *Handler) setRevenue(w http.ResponseWriter, r *http.Request) {
	h.sessionOp(w, r, func(ctrl *session.Controller) error {
		var req revenueRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			return errDecode(err)
		}
		return ctrl.SetRevenue(req.Revenue)
	})
}

func (h *Handler) beginQuiz(w http.ResponseWriter, r *http.Request) {
	h.sessionOp(w, r, func(ctrl *session.Controller) error {
		return ctrl.BeginQuiz()
	})
}

func (h *Handler) recordAnswer(w http.ResponseWriter, r *http.Request) {
	h.sessionOp(w, r, func(ctrl *session.Controller) error {
		var req answerRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			return errDecode(err)
		}
		return ctrl.RecordResponse(req.QuestionID, req.OptionIndex)
	})
}

func (h *Handler) advance(w http.ResponseWriter, r *http.Request) {
	h.sessionOp(w, r, func(ctrl *session.Controller) error {
		return ctrl.Advance(r.Context())
	})
}

func (h *Handler) retreat(w http.ResponseWriter, r *http.Request) {
	h.sessionOp(w, r, func(ctrl *session.Controller) error {
		return ctrl.Retreat()
	})
}

func (h *Handler) submitEmail(w http.ResponseWriter, r *http.Request) {
	h.sessionOp(w, r, func(ctrl *session.Controller) error {
		var req reportRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			return errDecode(err)
		}
		return ctrl.SubmitEmail(r.Context(), req.Email)
	})
}

func (h *Handler) restart(w http.ResponseWriter, r *http.Request) {
	ctrl, err := h.registry.Restart(r.Context(), chi.URLParam(r, "sessionID"))
	if err != nil {
		if err == errSessionNotFound {
			writeError(w, http.StatusNotFound, err)
			return
		}
		h.writeFlowError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, viewOf(ctrl))
}

// sessionOp resolves the session, runs one controller operation and writes
// the refreshed view. Flow errors map onto the shared status scheme.
func (h *Handler) sessionOp(w http.ResponseWriter, r *http.Request, op func(*session.Controller) error) {
	ctrl, ok := h.registry.Get(chi.URLParam(r, "sessionID"))
	if !ok {
		writeError(w, http.StatusNotFound, errSessionNotFound)
		return
	}
	if err := op(ctrl); err != nil {
		h.writeFlowError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, viewOf(ctrl))
}

type decodeError struct{ err error }

func (d decodeError) Error() string { return "invalid request body: " + d.err.Error() }

func errDecode(err error) error { return decodeError{err: err} }

// writeFlowError maps the error taxonomy onto HTTP statuses: local
// validation is 422, upstream failures are 502, pipeline failures are 500.
func (h *Handler) writeFlowError(w http.ResponseWriter, err error) {
	if _, ok := err.(decodeError); ok {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	status := http.StatusInternalServerError
	switch errors.CodeOf(err) {
	case errors.ErrCodeInvalidQuestion,
		errors.ErrCodeIncompleteAnswer,
		errors.ErrCodeIncompleteAssessment,
		errors.ErrCodeInvalidTransition,
		errors.ErrCodeInvalidInput:
		status = http.StatusUnprocessableEntity
	case errors.ErrCodeNetwork,
		errors.ErrCodeScoringService,
		errors.ErrCodeDelivery:
		status = http.StatusBadGateway
	case errors.ErrCodeRasterization:
		status = http.StatusInternalServerError
	}

	writeJSON(w, status, errorResponse{
		Error:     errors.UserMessage(err),
		Code:      string(errors.CodeOf(err)),
		Retryable: errors.IsRetryable(err),
	})
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, errorResponse{Error: err.Error()})
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
