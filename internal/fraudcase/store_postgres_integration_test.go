//go:build integration

package fraudcase_test

import (
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"attestguard/internal/fraudcase"
	"attestguard/pkg/requestcontext"
	"attestguard/pkg/testutil/containers"
)

const fraudCasesSchema = `
CREATE TABLE IF NOT EXISTS fraud_cases (
    case_id              UUID PRIMARY KEY,
    submission_date      TIMESTAMPTZ NOT NULL,
    submission_channel   TEXT NOT NULL,
    submitter_company    TEXT NOT NULL,
    document_type        TEXT NOT NULL,
    claimed_riziv_number TEXT NOT NULL DEFAULT '',
    claimed_doctor_name  TEXT NOT NULL DEFAULT '',
    claimed_start_date   TEXT NOT NULL DEFAULT '',
    claimed_end_date     TEXT NOT NULL DEFAULT '',
    patient_identifier   TEXT NOT NULL DEFAULT '',
    riziv_match_status   TEXT NOT NULL,
    document_anomalies   TEXT NOT NULL DEFAULT '',
    priority_score       INT NOT NULL,
    priority_reason      TEXT NOT NULL DEFAULT '',
    case_status          TEXT NOT NULL,
    created_at           TIMESTAMPTZ NOT NULL,
    updated_at           TIMESTAMPTZ NOT NULL
)`

type PostgresCaseSuite struct {
	suite.Suite
	postgres *containers.PostgresContainer
	store    *fraudcase.PostgresStore
}

func TestPostgresCaseSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	suite.Run(t, new(PostgresCaseSuite))
}

func (s *PostgresCaseSuite) SetupSuite() {
	s.postgres = containers.NewPostgresContainer(s.T())
	s.Require().NoError(s.postgres.ApplySchema(context.Background(), fraudCasesSchema))
	s.store = fraudcase.NewPostgres(s.postgres.DB)
}

func (s *PostgresCaseSuite) SetupTest() {
	s.Require().NoError(s.postgres.TruncateTables(context.Background(), "fraud_cases"))
}

func (s *PostgresCaseSuite) TestInsertAndLoadRoundTrip() {
	service := fraudcase.NewService(s.store, slog.New(slog.DiscardHandler))
	now := time.Date(2026, 3, 10, 9, 30, 0, 0, time.UTC)
	ctx := requestcontext.WithTime(context.Background(), now)

	created, err := service.Record(ctx, fraudcase.Input{
		ClaimedRizivNumber: "00000-00",
		ClaimedDoctorName:  "Dr. Piet Nergens",
		ClaimedStartDate:   "2026-03-01",
		ClaimedEndDate:     "2026-03-14",
		PatientIdentifier:  "86.05.12-123.45",
		DoctorFound:        false,
		Reason:             "Arts niet gevonden in geregistreerde artsen database",
	})
	s.Require().NoError(err)

	loaded, err := s.store.FindByID(ctx, created.CaseID)
	s.Require().NoError(err)

	s.Equal(created.CaseID, loaded.CaseID)
	s.Equal("Online Portaal", loaded.SubmissionChannel)
	s.Equal("Automatisch Systeem", loaded.SubmitterCompany)
	s.Equal("Afwezigheidsattest", loaded.DocumentType)
	s.Equal(fraudcase.RizivMatchNotFound, loaded.RizivMatchStatus)
	s.Equal(8, loaded.PriorityScore)
	s.Equal("Arts niet in database - mogelijk fraude", loaded.PriorityReason)
	s.Equal(fraudcase.CaseStatusNew, loaded.Status)
	s.True(loaded.SubmissionDate.Equal(now))
}

func (s *PostgresCaseSuite) TestDuplicateSubmissionsOpenDistinctCases() {
	service := fraudcase.NewService(s.store, slog.New(slog.DiscardHandler))
	ctx := context.Background()
	input := fraudcase.Input{
		ClaimedDoctorName: "Dr. Piet Nergens",
		Reason:            "Er ontbreekt een handtekening van de arts op het document",
	}

	first, err := service.Record(ctx, input)
	s.Require().NoError(err)
	second, err := service.Record(ctx, input)
	s.Require().NoError(err)

	s.NotEqual(first.CaseID, second.CaseID)

	var count int
	s.Require().NoError(s.postgres.DB.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM fraud_cases").Scan(&count))
	s.Equal(2, count)
}
