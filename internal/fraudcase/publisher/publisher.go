// Package publisher emits audit events for opened fraud cases.
//
// Publishing is advisory: the recorder logs failures and still returns the
// case. Downstream consumers (case-handling backoffice, reporting) tail the
// topic; they are not part of this service.
package publisher

import (
	"context"
	"time"
)

// CaseOpened is the event body published when a case is created.
type CaseOpened struct {
	CaseID             string    `json:"case_id"`
	PatientIdentifier  string    `json:"patient_identifier,omitempty"`
	ClaimedRizivNumber string    `json:"claimed_riziv_number,omitempty"`
	RizivMatchStatus   string    `json:"riziv_match_status"`
	PriorityScore      int       `json:"priority_score"`
	PriorityReason     string    `json:"priority_reason"`
	OpenedAt           time.Time `json:"opened_at"`
}

// Publisher delivers case-opened events.
type Publisher interface {
	PublishCaseOpened(ctx context.Context, event CaseOpened) error
	Close()
}
