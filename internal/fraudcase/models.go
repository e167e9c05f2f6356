// Package fraudcase records the audit trail for rejected submissions.
//
// "Fraud case" is the system's generic term for any rejection audit record,
// not proof of actual fraud: a missing signature opens a case just like an
// unverifiable doctor does. Cases get a fresh identifier on every call; there
// is deliberately no idempotency key, so resubmitting the same document opens
// a new case.
package fraudcase

import "time"

// RizivMatchStatus records whether the claimed doctor was ultimately found.
// A RIZIV row that exists but fails the name check counts as NOT_FOUND.
type RizivMatchStatus string

const (
	RizivMatchFound    RizivMatchStatus = "FOUND"
	RizivMatchNotFound RizivMatchStatus = "NOT_FOUND"
)

// CaseStatus is the workflow state of a case. New cases always start at NEW;
// later states belong to the case-handling backoffice, not this service.
type CaseStatus string

const CaseStatusNew CaseStatus = "NEW"

// Fixed submission metadata for cases opened by this service.
const (
	submissionChannel = "Online Portaal"
	submitterCompany  = "Automatisch Systeem"
	documentType      = "Afwezigheidsattest"
)

// Case is one rejection audit record.
type Case struct {
	CaseID             string
	SubmissionDate     time.Time
	SubmissionChannel  string
	SubmitterCompany   string
	DocumentType       string
	ClaimedRizivNumber string
	ClaimedDoctorName  string
	ClaimedStartDate   string
	ClaimedEndDate     string
	PatientIdentifier  string
	RizivMatchStatus   RizivMatchStatus
	DocumentAnomalies  string
	PriorityScore      int
	PriorityReason     string
	Status             CaseStatus
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

// Input carries the claim fields and rejection reason a case is built from.
type Input struct {
	ClaimedRizivNumber string
	ClaimedDoctorName  string
	ClaimedStartDate   string
	ClaimedEndDate     string
	PatientIdentifier  string
	DoctorFound        bool
	Reason             string
}
