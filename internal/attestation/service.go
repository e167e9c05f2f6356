package attestation

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"attestguard/internal/fraudcase"
	"attestguard/internal/i18n"
	"attestguard/internal/registry"
	"attestguard/pkg/requestcontext"
)

// CaseRecorder opens a rejection audit case. Implemented by
// fraudcase.Service.
type CaseRecorder interface {
	Record(ctx context.Context, input fraudcase.Input) (*fraudcase.Case, error)
}

// Service is the decision engine: rules plus doctor matching plus verdict.
// It holds no per-request state; a verdict is a pure function of the record,
// the reference time, and the registry contents.
type Service struct {
	matcher  *Matcher
	recorder CaseRecorder
	catalog  *i18n.Catalog
	logger   *slog.Logger
	metrics  *Metrics
}

// Option configures optional service dependencies.
type Option func(*Service)

// WithCaseRecorder enables rejection audit cases.
func WithCaseRecorder(r CaseRecorder) Option {
	return func(s *Service) { s.recorder = r }
}

// WithMetrics attaches prometheus metrics.
func WithMetrics(m *Metrics) Option {
	return func(s *Service) { s.metrics = m }
}

// NewService constructs the engine on top of a registry store.
func NewService(store registry.Store, catalog *i18n.Catalog, logger *slog.Logger, opts ...Option) *Service {
	s := &Service{
		matcher: NewMatcher(store, catalog, logger),
		catalog: catalog,
		logger:  logger,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Evaluate runs rules and matching over a record and returns the verdict
// without opening a case. Errors are registry failures only.
func (s *Service) Evaluate(ctx context.Context, rec Record) (*Verdict, error) {
	start := time.Now()
	violations := ValidateRules(ctx, rec, s.catalog, s.logger)
	match, err := s.matcher.Match(ctx, rec.Doctor)
	if err != nil {
		return nil, err
	}
	s.metrics.IncrementMatch(match.Status)

	verdict := buildVerdict(ctx, s.catalog, verdictInput{
		Record:     rec,
		Violations: violations,
		Match:      match,
	})
	s.metrics.IncrementVerdict(verdict)
	s.metrics.ObserveEvaluate(time.Since(start))
	return verdict, nil
}

// Process is the full workflow for an uploaded document: evaluate, open an
// audit case when rejecting, and build the display details. Case recording
// is advisory; its failure never blocks the verdict.
func (s *Service) Process(ctx context.Context, rec Record, fileName string) (*Verdict, error) {
	start := time.Now()
	violations := ValidateRules(ctx, rec, s.catalog, s.logger)
	match, err := s.matcher.Match(ctx, rec.Doctor)
	if err != nil {
		return nil, err
	}
	s.metrics.IncrementMatch(match.Status)
	s.logger.InfoContext(ctx, "record evaluated",
		"violations", len(violations), "match_status", string(match.Status))

	caseID := ""
	if match.Status.Fraud() || len(violations) > 0 {
		caseID = s.recordCase(ctx, rec, violations, match)
	}

	verdict := buildVerdict(ctx, s.catalog, verdictInput{
		Record:     rec,
		Violations: violations,
		Match:      match,
		FileName:   fileName,
		CaseID:     caseID,
	})
	s.metrics.IncrementVerdict(verdict)
	s.metrics.ObserveEvaluate(time.Since(start))
	return verdict, nil
}

// recordCase opens the audit case and returns its ID, or "" when recording
// is disabled or fails.
func (s *Service) recordCase(ctx context.Context, rec Record, violations []string, match *MatchResult) string {
	if s.recorder == nil {
		return ""
	}
	lang := requestcontext.Language(ctx)

	var reasons []string
	if match.Status.Fraud() {
		reasons = append(reasons, s.catalog.Get(i18n.KeyFraudReasonNotFound, lang, nil))
	}
	reasons = append(reasons, violations...)

	c, err := s.recorder.Record(ctx, fraudcase.Input{
		ClaimedRizivNumber: rec.Doctor.RizivNumber,
		ClaimedDoctorName:  rec.Doctor.Name,
		ClaimedStartDate:   rec.IncapacityStartDate,
		ClaimedEndDate:     rec.IncapacityEndDate,
		PatientIdentifier:  rec.PatientNationalNumber,
		DoctorFound:        match.Status.Found(),
		Reason:             strings.Join(reasons, "; "),
	})
	if err != nil {
		s.logger.WarnContext(ctx, "case recording failed, returning verdict without case id", "error", err)
		return ""
	}
	s.logger.InfoContext(ctx, "rejection case opened", "case_id", c.CaseID, "priority", c.PriorityScore)
	return c.CaseID
}
