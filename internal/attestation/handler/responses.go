package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"attestguard/internal/attestation"
	"attestguard/pkg/requestcontext"
)

// HealthResponse is the GET /api/health body.
type HealthResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

// ResultResponse is the verdict envelope returned by both validation
// endpoints.
type ResultResponse struct {
	Valid     bool                 `json:"valid"`
	Message   string               `json:"message"`
	Details   *attestation.Details `json:"details"`
	Timestamp string               `json:"timestamp"`
}

// ErrorResponse is the error envelope.
type ErrorResponse struct {
	Error string `json:"error"`
}

// FromVerdict converts a verdict into its transport form.
func FromVerdict(ctx context.Context, v *attestation.Verdict) ResultResponse {
	return ResultResponse{
		Valid:     v.Valid,
		Message:   v.Message,
		Details:   v.Details,
		Timestamp: requestcontext.Now(ctx).Format(time.RFC3339),
	}
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, ErrorResponse{Error: message})
}
