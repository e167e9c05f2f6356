package fraudcase

import (
	"context"
	"database/sql"

	"attestguard/pkg/serviceerror"
)

const serviceName = "SQL Database"

// PostgresStore persists cases in the fraud_cases table.
//
// Schema:
//
//	CREATE TABLE fraud_cases (
//	    case_id              UUID PRIMARY KEY,
//	    submission_date      TIMESTAMPTZ NOT NULL,
//	    submission_channel   TEXT NOT NULL,
//	    submitter_company    TEXT NOT NULL,
//	    document_type        TEXT NOT NULL,
//	    claimed_riziv_number TEXT NOT NULL DEFAULT '',
//	    claimed_doctor_name  TEXT NOT NULL DEFAULT '',
//	    claimed_start_date   TEXT NOT NULL DEFAULT '',
//	    claimed_end_date     TEXT NOT NULL DEFAULT '',
//	    patient_identifier   TEXT NOT NULL DEFAULT '',
//	    riziv_match_status   TEXT NOT NULL,
//	    document_anomalies   TEXT NOT NULL DEFAULT '',
//	    priority_score       INT NOT NULL,
//	    priority_reason      TEXT NOT NULL DEFAULT '',
//	    case_status          TEXT NOT NULL,
//	    created_at           TIMESTAMPTZ NOT NULL,
//	    updated_at           TIMESTAMPTZ NOT NULL
//	)
type PostgresStore struct {
	db *sql.DB
}

// NewPostgres constructs a PostgreSQL-backed case store.
func NewPostgres(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

func (s *PostgresStore) Insert(ctx context.Context, c *Case) error {
	query := `
		INSERT INTO fraud_cases (
			case_id, submission_date, submission_channel, submitter_company,
			document_type, claimed_riziv_number, claimed_doctor_name,
			claimed_start_date, claimed_end_date, patient_identifier,
			riziv_match_status, document_anomalies, priority_score,
			priority_reason, case_status, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)
	`
	_, err := s.db.ExecContext(ctx, query,
		c.CaseID,
		c.SubmissionDate,
		c.SubmissionChannel,
		c.SubmitterCompany,
		c.DocumentType,
		c.ClaimedRizivNumber,
		c.ClaimedDoctorName,
		c.ClaimedStartDate,
		c.ClaimedEndDate,
		c.PatientIdentifier,
		string(c.RizivMatchStatus),
		c.DocumentAnomalies,
		c.PriorityScore,
		c.PriorityReason,
		string(c.Status),
		c.CreatedAt,
		c.UpdatedAt,
	)
	if err != nil {
		return serviceerror.Classify(serviceName, err)
	}
	return nil
}

// FindByID loads one case, used by integration tests and ops tooling.
func (s *PostgresStore) FindByID(ctx context.Context, caseID string) (*Case, error) {
	var c Case
	err := s.db.QueryRowContext(ctx, `
		SELECT case_id, submission_date, submission_channel, submitter_company,
		       document_type, claimed_riziv_number, claimed_doctor_name,
		       claimed_start_date, claimed_end_date, patient_identifier,
		       riziv_match_status, document_anomalies, priority_score,
		       priority_reason, case_status, created_at, updated_at
		FROM fraud_cases WHERE case_id = $1`, caseID,
	).Scan(
		&c.CaseID, &c.SubmissionDate, &c.SubmissionChannel, &c.SubmitterCompany,
		&c.DocumentType, &c.ClaimedRizivNumber, &c.ClaimedDoctorName,
		&c.ClaimedStartDate, &c.ClaimedEndDate, &c.PatientIdentifier,
		&c.RizivMatchStatus, &c.DocumentAnomalies, &c.PriorityScore,
		&c.PriorityReason, &c.Status, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		return nil, serviceerror.Classify(serviceName, err)
	}
	return &c, nil
}
