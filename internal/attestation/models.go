// Package attestation implements the validation decision engine for medical
// absence certificates: field extraction, rule evaluation, tiered doctor
// matching, and the final verdict.
package attestation

import (
	"bytes"
	"encoding/json"

	"attestguard/internal/registry"
)

// DoctorClaim is the doctor identity as extracted from the document.
// Empty string means "not extracted".
type DoctorClaim struct {
	Name           string `json:"name"`
	RizivNumber    string `json:"riziv_number"`
	Address        string `json:"address"`
	PostalCodeCity string `json:"postal_code_city"`
	Phone          string `json:"phone"`
}

// Record is the flat, normalized extraction of one certificate.
// Dates are ISO strings ("" = absent); an absent date is distinct from an
// unparseable one, which only surfaces during rule evaluation.
type Record struct {
	PatientName           string `json:"patient_name"`
	PatientNationalNumber string `json:"patient_national_number"`
	PatientBirthDate      string `json:"patient_birth_date"`
	PatientAddress        string `json:"patient_address"`
	PatientPostalCodeCity string `json:"patient_postal_code_city"`

	IncapacityStartDate string `json:"incapacity_start_date"`
	IncapacityEndDate   string `json:"incapacity_end_date"`
	CertificateDate     string `json:"certificate_date"`

	HasSignature        bool  `json:"has_signature"`
	AllowedToLeaveHouse *bool `json:"allowed_to_leave_house,omitempty"`

	Doctor  DoctorClaim `json:"doctor_info"`
	Summary string      `json:"summary"`
}

// MatchStatus is the outcome of doctor-identity matching.
type MatchStatus string

const (
	MatchVerifiedByRiziv    MatchStatus = "verified_riziv"
	MatchVerifiedByNameCity MatchStatus = "verified_name_city"
	MatchVerifiedByName     MatchStatus = "verified_name"
	MatchNameMismatchFraud  MatchStatus = "fraud_name_mismatch"
	MatchNotFoundFraud      MatchStatus = "fraud_not_found"
)

// Fraud reports whether the status is one of the two fraud outcomes.
func (s MatchStatus) Fraud() bool {
	return s == MatchNameMismatchFraud || s == MatchNotFoundFraud
}

// Found reports whether the doctor was ultimately verified. A RIZIV row that
// exists but fails the name check counts as not found.
func (s MatchStatus) Found() bool {
	return s == MatchVerifiedByRiziv || s == MatchVerifiedByNameCity || s == MatchVerifiedByName
}

// MatchResult is the outcome of resolving a claim against the registry.
type MatchResult struct {
	Status  MatchStatus
	Matched *registry.Entry // nil unless verified
	Message string          // localized description of the applied tier
}

// FraudType labels why a verdict is fraudulent.
type FraudType string

const (
	FraudTypeNone         FraudType = ""
	FraudTypeNameMismatch FraudType = "name_mismatch"
	FraudTypeNotFound     FraudType = "not_found"
)

// FraudType derives the verdict fraud label from the match status.
func (r *MatchResult) FraudType() FraudType {
	switch r.Status {
	case MatchNameMismatchFraud:
		return FraudTypeNameMismatch
	case MatchNotFoundFraud:
		return FraudTypeNotFound
	default:
		return FraudTypeNone
	}
}

// Verdict is the final decision for one certificate.
type Verdict struct {
	Valid       bool
	Message     string
	Violations  []string
	Fraud       bool
	FraudType   FraudType
	DoctorFound bool
	CaseID      string
	Details     *Details
}

// Details is an insertion-ordered key→value map of display fields. The key
// set and its Dutch labels are the externally observed contract, so order
// must survive JSON encoding; values are strings or string lists.
type Details struct {
	fields []detailField
}

type detailField struct {
	key   string
	value any
}

// NewDetails returns an empty ordered details map.
func NewDetails() *Details {
	return &Details{}
}

// Set appends a string field, replacing the value if the key exists.
func (d *Details) Set(key, value string) {
	d.set(key, value)
}

// SetList appends a list field, replacing the value if the key exists.
func (d *Details) SetList(key string, values []string) {
	d.set(key, values)
}

func (d *Details) set(key string, value any) {
	for i := range d.fields {
		if d.fields[i].key == key {
			d.fields[i].value = value
			return
		}
	}
	d.fields = append(d.fields, detailField{key: key, value: value})
}

// Get returns the value for key.
func (d *Details) Get(key string) (any, bool) {
	for _, f := range d.fields {
		if f.key == key {
			return f.value, true
		}
	}
	return nil, false
}

// Keys returns the keys in insertion order.
func (d *Details) Keys() []string {
	keys := make([]string, len(d.fields))
	for i, f := range d.fields {
		keys[i] = f.key
	}
	return keys
}

// Len returns the number of fields.
func (d *Details) Len() int {
	return len(d.fields)
}

// MarshalJSON encodes the details as a JSON object in insertion order.
func (d *Details) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, f := range d.fields {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(f.key)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		value, err := json.Marshal(f.value)
		if err != nil {
			return nil, err
		}
		buf.Write(value)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}
