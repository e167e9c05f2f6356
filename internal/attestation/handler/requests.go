package handler

import "attestguard/internal/attestation"

// EvaluateRequest is the transport form of an already-extracted record.
type EvaluateRequest struct {
	PatientName           string `json:"patient_name"`
	PatientNationalNumber string `json:"patient_national_number"`
	PatientBirthDate      string `json:"patient_birth_date"`
	PatientAddress        string `json:"patient_address"`
	PatientPostalCodeCity string `json:"patient_postal_code_city"`

	IncapacityStartDate string `json:"incapacity_start_date"`
	IncapacityEndDate   string `json:"incapacity_end_date"`
	CertificateDate     string `json:"certificate_date"`

	HasSignature        bool  `json:"has_signature"`
	AllowedToLeaveHouse *bool `json:"allowed_to_leave_house"`

	Doctor struct {
		Name           string `json:"name"`
		RizivNumber    string `json:"riziv_number"`
		Address        string `json:"address"`
		PostalCodeCity string `json:"postal_code_city"`
		Phone          string `json:"phone"`
	} `json:"doctor_info"`

	Summary string `json:"summary"`
}

// ToRecord converts the transport form into the engine's record.
func (r EvaluateRequest) ToRecord() attestation.Record {
	return attestation.Record{
		PatientName:           r.PatientName,
		PatientNationalNumber: r.PatientNationalNumber,
		PatientBirthDate:      r.PatientBirthDate,
		PatientAddress:        r.PatientAddress,
		PatientPostalCodeCity: r.PatientPostalCodeCity,
		IncapacityStartDate:   r.IncapacityStartDate,
		IncapacityEndDate:     r.IncapacityEndDate,
		CertificateDate:       r.CertificateDate,
		HasSignature:          r.HasSignature,
		AllowedToLeaveHouse:   r.AllowedToLeaveHouse,
		Doctor: attestation.DoctorClaim{
			Name:           r.Doctor.Name,
			RizivNumber:    r.Doctor.RizivNumber,
			Address:        r.Doctor.Address,
			PostalCodeCity: r.Doctor.PostalCodeCity,
			Phone:          r.Doctor.Phone,
		},
		Summary: r.Summary,
	}
}
