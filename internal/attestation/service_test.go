package attestation

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"attestguard/internal/fraudcase"
	"attestguard/internal/i18n"
	"attestguard/internal/registry"
	"attestguard/pkg/requestcontext"
)

type EngineSuite struct {
	suite.Suite
	registry *registry.InMemoryStore
	cases    *fraudcase.InMemoryStore
	service  *Service
}

func TestEngineSuite(t *testing.T) {
	suite.Run(t, new(EngineSuite))
}

func (s *EngineSuite) SetupTest() {
	s.registry = registry.NewInMemoryStore()
	s.registry.Seed(&registry.Entry{RizivNumber: "12345-67", FirstName: "Jan", LastName: "Peeters", City: "Antwerpen"})
	s.cases = fraudcase.NewInMemoryStore()
	recorder := fraudcase.NewService(s.cases, discard())
	s.service = NewService(s.registry, i18n.Default(), discard(), WithCaseRecorder(recorder))
}

func (s *EngineSuite) ctx() context.Context {
	return requestcontext.WithTime(context.Background(), time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC))
}

func (s *EngineSuite) TestProcessApprovedOpensNoCase() {
	verdict, err := s.service.Process(s.ctx(), fullRecord(), "attest.pdf")
	s.Require().NoError(err)

	s.True(verdict.Valid)
	s.Empty(verdict.CaseID)
	s.Empty(s.cases.All(), "approved documents never open cases")
}

func (s *EngineSuite) TestProcessViolationOpensCase() {
	rec := fullRecord()
	rec.HasSignature = false

	verdict, err := s.service.Process(s.ctx(), rec, "attest.pdf")
	s.Require().NoError(err)

	s.False(verdict.Valid)
	s.False(verdict.Fraud)
	s.Require().NotEmpty(verdict.CaseID)

	all := s.cases.All()
	s.Require().Len(all, 1)
	c := all[0]
	s.Equal(verdict.CaseID, c.CaseID)
	s.Equal(fraudcase.RizivMatchFound, c.RizivMatchStatus, "doctor was verified, only the rules failed")
	s.Equal(6, c.PriorityScore, "missing signature scores 6")
	s.Equal("Er ontbreekt een handtekening van de arts op het document", c.DocumentAnomalies)
}

func (s *EngineSuite) TestProcessFraudOpensHighPriorityCase() {
	rec := fullRecord()
	rec.Doctor = DoctorClaim{Name: "Dr. Piet Nergens", RizivNumber: "00000-00"}

	verdict, err := s.service.Process(s.ctx(), rec, "attest.pdf")
	s.Require().NoError(err)

	s.True(verdict.Fraud)
	s.Require().NotEmpty(verdict.CaseID)

	all := s.cases.All()
	s.Require().Len(all, 1)
	c := all[0]
	s.Equal(fraudcase.RizivMatchNotFound, c.RizivMatchStatus)
	s.Equal(8, c.PriorityScore)
	s.Equal("Arts niet in database - mogelijk fraude", c.PriorityReason)
	s.Equal("00000-00", c.ClaimedRizivNumber)
	s.Equal("Dr. Piet Nergens", c.ClaimedDoctorName)
	s.Equal("86.05.12-123.45", c.PatientIdentifier)
}

func (s *EngineSuite) TestProcessFraudWithViolationsConcatenatesAnomalies() {
	rec := fullRecord()
	rec.HasSignature = false
	rec.Doctor = DoctorClaim{Name: "Dr. Piet Nergens"}

	verdict, err := s.service.Process(s.ctx(), rec, "attest.pdf")
	s.Require().NoError(err)
	s.True(verdict.Fraud)

	all := s.cases.All()
	s.Require().Len(all, 1)
	s.Equal("Arts niet gevonden in geregistreerde artsen database; Er ontbreekt een handtekening van de arts op het document",
		all[0].DocumentAnomalies)
	s.Equal(8, all[0].PriorityScore, "fraud reason wins the priority table")
}

func (s *EngineSuite) TestProcessCaseIDLandsInDetails() {
	rec := fullRecord()
	rec.HasSignature = false

	verdict, err := s.service.Process(s.ctx(), rec, "attest.pdf")
	s.Require().NoError(err)

	caseID, ok := verdict.Details.Get("Zaak ID")
	s.True(ok)
	s.Equal(verdict.CaseID, caseID)
}

func (s *EngineSuite) TestEvaluateNeverOpensCase() {
	rec := fullRecord()
	rec.HasSignature = false
	rec.Doctor = DoctorClaim{Name: "Dr. Piet Nergens"}

	verdict, err := s.service.Evaluate(s.ctx(), rec)
	s.Require().NoError(err)

	s.False(verdict.Valid)
	s.Empty(verdict.CaseID)
	s.Empty(s.cases.All(), "evaluate is the side-effect-free entry point")
}

func (s *EngineSuite) TestEvaluateIdempotent() {
	ctx := s.ctx()
	rec := fullRecord()

	first, err := s.service.Evaluate(ctx, rec)
	s.Require().NoError(err)
	second, err := s.service.Evaluate(ctx, rec)
	s.Require().NoError(err)
	s.Equal(first, second)
}

type failingRecorder struct{}

func (failingRecorder) Record(context.Context, fraudcase.Input) (*fraudcase.Case, error) {
	return nil, errors.New("case repository unavailable")
}

func (s *EngineSuite) TestRecorderFailureIsAdvisory() {
	service := NewService(s.registry, i18n.Default(), discard(), WithCaseRecorder(failingRecorder{}))

	rec := fullRecord()
	rec.HasSignature = false

	verdict, err := service.Process(s.ctx(), rec, "attest.pdf")
	s.Require().NoError(err, "case recording must never block the verdict")
	s.False(verdict.Valid)
	s.Empty(verdict.CaseID)

	_, ok := verdict.Details.Get("Zaak ID")
	s.False(ok)
}

func (s *EngineSuite) TestWithoutRecorderStillRejects() {
	service := NewService(s.registry, i18n.Default(), discard())

	rec := fullRecord()
	rec.HasSignature = false

	verdict, err := service.Process(s.ctx(), rec, "attest.pdf")
	s.Require().NoError(err)
	s.False(verdict.Valid)
	s.Empty(verdict.CaseID)
}

func (s *EngineSuite) TestRegistryFailureSurfaces() {
	wantErr := errors.New("connection refused")
	service := NewService(&failingRegistry{err: wantErr}, i18n.Default(), discard())

	_, err := service.Process(s.ctx(), fullRecord(), "attest.pdf")
	s.ErrorIs(err, wantErr)
}
