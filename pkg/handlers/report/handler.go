package report

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/de-tools/assessment-atlas/pkg/adapters"
	"github.com/de-tools/assessment-atlas/pkg/models/api"
	"github.com/de-tools/assessment-atlas/pkg/models/domain"
	"github.com/de-tools/assessment-atlas/pkg/services/report"
	"github.com/rs/zerolog"
)

// maxBodyBytes caps a submitted assessment document
const maxBodyBytes = 4 << 20

// Handler serves report generation. defaults apply when a request does not choose its own options.
type Handler struct {
	service  report.Service
	defaults report.Request
}

func NewHandler(service report.Service, defaults report.Request) *Handler {
	return &Handler{service: service, defaults: defaults}
}

// GenerateReport accepts an assessment as JSON and returns the report.
// Query parameters: detail=brief|standard|detailed, agents=a,b.
func (h *Handler) GenerateReport(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := zerolog.Ctx(ctx)

	req, data, ok := h.decode(w, r)
	if !ok {
		return
	}

	rep, err := h.service.Generate(ctx, data, req)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	logger.Info().
		Str("assessment", rep.AssessmentID).
		Int("sections", len(rep.Sections)).
		Int("invalid", rep.InvalidSections()).
		Msg("report generated")
	writeJSON(w, r, http.StatusOK, adapters.MapReportDomainToApi(rep))
}

func (h *Handler) ValidateAssessment(w http.ResponseWriter, r *http.Request) {
	req, data, ok := h.decode(w, r)
	if !ok {
		return
	}

	results, err := h.service.Validate(data, req)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, adapters.MapValidationsToApi(results))
}

func (h *Handler) ListAgents(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, r, http.StatusOK, adapters.MapAgentInfoToApi(h.service.ListAgents()))
}

func (h *Handler) decode(w http.ResponseWriter, r *http.Request) (report.Request, *domain.AssessmentData, bool) {
	req := h.defaults
	query := r.URL.Query()

	if detail := query.Get("detail"); detail != "" {
		level, err := domain.ParseDetailLevel(detail)
		if err != nil {
			writeError(w, r, http.StatusBadRequest, err.Error())
			return req, nil, false
		}
		req.DetailLevel = level
	}
	if names := query.Get("agents"); names != "" {
		req.Agents = nil
		for _, name := range strings.Split(names, ",") {
			if name = strings.TrimSpace(name); name != "" {
				req.Agents = append(req.Agents, name)
			}
		}
	}

	var data domain.AssessmentData
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(&data); err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid assessment payload: "+err.Error())
		return req, nil, false
	}
	return req, &data, true
}

func writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	status := http.StatusInternalServerError
	if errors.Is(err, report.ErrAgentNotRegistered) {
		status = http.StatusBadRequest
	}
	writeError(w, r, status, err.Error())
}

func writeError(w http.ResponseWriter, r *http.Request, status int, message string) {
	writeJSON(w, r, status, api.Error{Message: message})
}

func writeJSON(w http.ResponseWriter, r *http.Request, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		zerolog.Ctx(r.Context()).Error().
			Err(err).
			Msg("failed to encode response")
	}
}
