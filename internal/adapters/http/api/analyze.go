package api

import (
	"context"
	"errors"
	"net/http"

	"github.com/okian/salesrank/internal/adapters/dataset"
	"github.com/okian/salesrank/internal/domain/analysis"
	"github.com/okian/salesrank/internal/domain/types"
	"github.com/okian/salesrank/pkg/logger"
)

// Error codes returned in errorResponse.Code.
const (
	codeMethodNotAllowed = "method_not_allowed"
	codeInvalidDataset   = "invalid_dataset"
	codePayloadTooLarge  = "payload_too_large"
	codeCanceled         = "canceled"
	codeInternal         = "internal"
)

// AnalyzeHandler handles report requests.
type AnalyzeHandler struct {
	deps         Dependencies
	maxBodyBytes int64
	logger       logger.Logger
}

// NewAnalyzeHandler creates a new analyze handler.
func NewAnalyzeHandler(deps Dependencies, maxBodyBytes int64, l logger.Logger) *AnalyzeHandler {
	return &AnalyzeHandler{deps: deps, maxBodyBytes: maxBodyBytes, logger: l}
}

type analyzeResponse struct {
	RequestID string            `json:"request_id,omitempty"`
	Report    []types.ReportRow `json:"report"`
}

// HandleAnalyze handles POST /analyze requests. The body is a dataset
// document; the response is the report, highest profit first.
func (h *AnalyzeHandler) HandleAnalyze(w http.ResponseWriter, r *http.Request) {
	const op = "api.analyze"
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		writeError(w, r, http.StatusMethodNotAllowed, codeMethodNotAllowed, nil)
		return
	}

	body := http.MaxBytesReader(w, r.Body, h.maxBodyBytes)
	ds, err := dataset.Decode(body)
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeError(w, r, http.StatusRequestEntityTooLarge, codePayloadTooLarge, NewKind(op, ErrPayloadTooLarge))
			return
		}
		writeError(w, r, http.StatusBadRequest, codeInvalidDataset, WrapKind(op, ErrBadRequest, err))
		return
	}

	rows, err := h.deps.Analyze(r.Context(), ds)
	if err != nil {
		status, code := analysisStatus(err)
		if status >= http.StatusInternalServerError && h.logger != nil {
			h.logger.Error(r.Context(), "analysis failed",
				logger.String("requestId", RequestIDFromContext(r.Context())),
				logger.Error(err),
			)
		}
		writeError(w, r, status, code, WrapKind(op, ErrAnalysis, err))
		return
	}

	writeJSON(w, http.StatusOK, analyzeResponse{
		RequestID: RequestIDFromContext(r.Context()),
		Report:    rows,
	})
}

// analysisStatus maps an Analyze error to a status and error code. Input
// problems are the client's; a missing strategy is a server misconfiguration.
func analysisStatus(err error) (int, string) {
	switch kind := analysis.Kind(err); {
	case errors.Is(err, analysis.ErrMissingStrategy):
		return http.StatusInternalServerError, kind
	case kind != "":
		return http.StatusBadRequest, kind
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return http.StatusServiceUnavailable, codeCanceled
	default:
		return http.StatusInternalServerError, codeInternal
	}
}

func fieldErrors(err error) []dataset.FieldError {
	var verr *dataset.ValidationError
	if errors.As(err, &verr) {
		return verr.Fields
	}
	return nil
}
