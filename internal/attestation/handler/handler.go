// Package handler exposes the attestation endpoints over HTTP.
package handler

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"attestguard/internal/attestation"
	"attestguard/internal/i18n"
	"attestguard/internal/understanding"
	"attestguard/pkg/requestcontext"
	"attestguard/pkg/serviceerror"
)

// Uploads are buffered in memory; certificates are single-page scans.
const maxUploadBytes = 10 << 20

// Service defines the decision-engine operations the handler needs.
type Service interface {
	Evaluate(ctx context.Context, rec attestation.Record) (*attestation.Verdict, error)
	Process(ctx context.Context, rec attestation.Record, fileName string) (*attestation.Verdict, error)
}

// Analyzer extracts structured fields from an uploaded document. Nil when
// document analysis is not configured; the evaluate endpoint still works.
type Analyzer interface {
	Analyze(ctx context.Context, fileBytes []byte, analyzerID string) (*understanding.AnalyzeResult, error)
}

// Handler wires attestation endpoints to the decision engine.
type Handler struct {
	service    Service
	analyzer   Analyzer
	analyzerID string
	catalog    *i18n.Catalog
	logger     *slog.Logger
}

// New constructs an attestation handler with its dependencies.
func New(service Service, analyzer Analyzer, analyzerID string, catalog *i18n.Catalog, logger *slog.Logger) *Handler {
	return &Handler{
		service:    service,
		analyzer:   analyzer,
		analyzerID: analyzerID,
		catalog:    catalog,
		logger:     logger,
	}
}

// Register mounts attestation endpoints on the router.
func (h *Handler) Register(r chi.Router) {
	r.Get("/health", h.HandleHealth)
	r.Post("/process-attestation", h.HandleProcessAttestation)
	r.Post("/attestations/evaluate", h.HandleEvaluate)
}

// HandleHealth handles GET /api/health requests.
func (h *Handler) HandleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, HealthResponse{Status: "healthy", Message: "API is running"})
}

// HandleProcessAttestation handles POST /api/process-attestation requests:
// multipart upload, document analysis, validation, full Dutch details map.
func (h *Handler) HandleProcessAttestation(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)
	lang := requestcontext.Language(ctx)
	start := time.Now()

	if h.analyzer == nil {
		writeError(w, http.StatusServiceUnavailable, h.catalog.Get(i18n.KeyAnalyzerNotSet, lang, nil))
		return
	}

	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		writeError(w, http.StatusBadRequest, h.catalog.Get(i18n.KeyNoFileUploaded, lang, nil))
		return
	}
	file, header, err := r.FormFile("file")
	if err != nil {
		writeError(w, http.StatusBadRequest, h.catalog.Get(i18n.KeyNoFileUploaded, lang, nil))
		return
	}
	defer file.Close()

	content, err := io.ReadAll(io.LimitReader(file, maxUploadBytes))
	if err != nil {
		h.logger.ErrorContext(ctx, "reading upload failed", "request_id", requestID, "error", err)
		writeError(w, http.StatusInternalServerError, h.catalog.Get(i18n.KeyFileProcessingError, lang, nil))
		return
	}
	fileName := header.Filename
	fileSize := len(content)

	h.logger.InfoContext(ctx, "attestation upload received",
		"request_id", requestID,
		"file_name", fileName,
		"file_size", fileSize,
	)

	analysis, err := h.analyzer.Analyze(ctx, content, h.analyzerID)
	if err != nil {
		category, _ := serviceerror.CategoryOf(err)
		h.logger.ErrorContext(ctx, "document analysis failed",
			"request_id", requestID,
			"file_name", fileName,
			"category", string(category),
			"error", err,
		)
		writeError(w, http.StatusBadGateway, h.catalog.Get(i18n.KeyDocumentAnalysisError, lang, nil))
		return
	}

	rec := attestation.ExtractRecord(ctx, analysis, h.logger)

	verdict, err := h.service.Process(ctx, rec, fileName)
	if err != nil {
		h.logger.ErrorContext(ctx, "attestation processing failed",
			"request_id", requestID,
			"file_name", fileName,
			"error", err,
		)
		writeError(w, http.StatusInternalServerError, h.catalog.Get(i18n.KeyDatabaseError, lang, map[string]string{"error": err.Error()}))
		return
	}

	verdict.Details.Set("Bestandsgrootte", fmt.Sprintf("%.2f KB", float64(fileSize)/1024))

	h.logger.InfoContext(ctx, "attestation processed",
		"request_id", requestID,
		"file_name", fileName,
		"valid", verdict.Valid,
		"fraud", verdict.Fraud,
		"case_id", verdict.CaseID,
		"duration_ms", time.Since(start).Milliseconds(),
	)

	writeJSON(w, http.StatusOK, FromVerdict(ctx, verdict))
}

// HandleEvaluate handles POST /api/attestations/evaluate requests: an
// already-extracted record, validated without opening an audit case.
func (h *Handler) HandleEvaluate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)
	lang := requestcontext.Language(ctx)

	var req EvaluateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, h.catalog.Get(i18n.KeyValidationError, lang, map[string]string{"error": "invalid request body"}))
		return
	}

	verdict, err := h.service.Evaluate(ctx, req.ToRecord())
	if err != nil {
		h.logger.ErrorContext(ctx, "attestation evaluation failed",
			"request_id", requestID,
			"error", err,
		)
		writeError(w, http.StatusInternalServerError, h.catalog.Get(i18n.KeyDatabaseError, lang, map[string]string{"error": err.Error()}))
		return
	}

	h.logger.InfoContext(ctx, "attestation evaluated",
		"request_id", requestID,
		"valid", verdict.Valid,
		"fraud", verdict.Fraud,
	)

	writeJSON(w, http.StatusOK, FromVerdict(ctx, verdict))
}
