package fraudcase

import (
	"context"
	"log/slog"
	"strconv"

	"github.com/google/uuid"

	"attestguard/internal/fraudcase/publisher"
	"attestguard/pkg/requestcontext"
)

// Service builds and persists fraud cases.
type Service struct {
	store     Store
	publisher publisher.Publisher
	logger    *slog.Logger
	metrics   *Metrics
}

// Option configures optional service dependencies.
type Option func(*Service)

// WithPublisher emits a case-opened event after each successful insert.
func WithPublisher(p publisher.Publisher) Option {
	return func(s *Service) { s.publisher = p }
}

// WithMetrics attaches prometheus metrics.
func WithMetrics(m *Metrics) Option {
	return func(s *Service) { s.metrics = m }
}

// NewService constructs the case recorder.
func NewService(store Store, logger *slog.Logger, opts ...Option) *Service {
	s := &Service{store: store, logger: logger}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Record opens a case for a rejected submission. The case gets a fresh UUID
// on every call; repeated submissions of the same document open new cases.
// The store error is returned so the caller can log it, but callers treat
// recording as advisory and still return the verdict without a case ID.
func (s *Service) Record(ctx context.Context, input Input) (*Case, error) {
	now := requestcontext.Now(ctx)

	matchStatus := RizivMatchNotFound
	if input.DoctorFound {
		matchStatus = RizivMatchFound
	}

	score, reason := scorePriority(input.Reason)

	c := &Case{
		CaseID:             uuid.NewString(),
		SubmissionDate:     now,
		SubmissionChannel:  submissionChannel,
		SubmitterCompany:   submitterCompany,
		DocumentType:       documentType,
		ClaimedRizivNumber: input.ClaimedRizivNumber,
		ClaimedDoctorName:  input.ClaimedDoctorName,
		ClaimedStartDate:   input.ClaimedStartDate,
		ClaimedEndDate:     input.ClaimedEndDate,
		PatientIdentifier:  input.PatientIdentifier,
		RizivMatchStatus:   matchStatus,
		DocumentAnomalies:  input.Reason,
		PriorityScore:      score,
		PriorityReason:     reason,
		Status:             CaseStatusNew,
		CreatedAt:          now,
		UpdatedAt:          now,
	}

	if err := s.store.Insert(ctx, c); err != nil {
		s.metrics.IncrementInsertFailure()
		return nil, err
	}

	s.metrics.IncrementOpened(strconv.Itoa(score))
	s.logger.InfoContext(ctx, "fraud case created",
		"case_id", c.CaseID,
		"priority_score", score,
		"riziv_match_status", matchStatus,
	)

	s.publishOpened(ctx, c)
	return c, nil
}

// publishOpened emits the audit event; failures are logged and swallowed so
// a broker outage never blocks the verdict.
func (s *Service) publishOpened(ctx context.Context, c *Case) {
	if s.publisher == nil {
		return
	}
	event := publisher.CaseOpened{
		CaseID:             c.CaseID,
		PatientIdentifier:  c.PatientIdentifier,
		ClaimedRizivNumber: c.ClaimedRizivNumber,
		RizivMatchStatus:   string(c.RizivMatchStatus),
		PriorityScore:      c.PriorityScore,
		PriorityReason:     c.PriorityReason,
		OpenedAt:           c.CreatedAt,
	}
	if err := s.publisher.PublishCaseOpened(ctx, event); err != nil {
		s.logger.WarnContext(ctx, "failed to publish case-opened event",
			"case_id", c.CaseID,
			"error", err,
		)
	}
}
