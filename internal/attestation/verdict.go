package attestation

import (
	"context"

	"attestguard/internal/i18n"
	"attestguard/pkg/requestcontext"
)

const processedAtLayout = "02-01-2006 15:04:05"

// Display labels. These Dutch keys are read by existing consumers of the
// details map and must not change.
const (
	detailFileName         = "Bestandsnaam"
	detailProcessedAt      = "Verwerkt op"
	detailStatus           = "Status"
	detailPatient          = "Patiënt"
	detailNationalNumber   = "Rijksregisternummer"
	detailBirthDate        = "Geboortedatum"
	detailPatientAddress   = "Adres patiënt"
	detailPatientPostal    = "Postcode en gemeente patiënt"
	detailDoctor           = "Arts"
	detailRizivNumber      = "RIZIV Nummer"
	detailDoctorAddress    = "Adres arts"
	detailDoctorPostal     = "Postcode en gemeente arts"
	detailDoctorPhone      = "Telefoonnummer arts"
	detailCaseID           = "Zaak ID"
	detailIncapacityFrom   = "Onmogelijkheid vanaf"
	detailIncapacityUntil  = "Onmogelijkheid tot"
	detailSummary          = "Samenvatting"
	detailAllowedToLeave   = "Mag huis verlaten"
	detailWarnings         = "Waarschuwingen"
	detailSignature        = "Handtekening"
	detailRejectionReason  = "Reden"
	detailValidationErrors = "Fouten"

	statusApproved = "Goedgekeurd"
	statusRejected = "Afgekeurd"
)

type verdictInput struct {
	Record     Record
	Violations []string
	Match      *MatchResult
	FileName   string
	CaseID     string
}

// buildVerdict assembles the final decision and its display details. Fraud
// wins the top-level message over rule violations, but violations are still
// carried into the details for audit.
func buildVerdict(ctx context.Context, catalog *i18n.Catalog, in verdictInput) *Verdict {
	lang := requestcontext.Language(ctx)
	fraud := in.Match.Status.Fraud()
	valid := len(in.Violations) == 0 && !fraud

	rec := in.Record
	details := NewDetails()
	details.Set(detailFileName, in.FileName)
	details.Set(detailProcessedAt, requestcontext.Now(ctx).Format(processedAtLayout))
	if valid {
		details.Set(detailStatus, statusApproved)
	} else {
		details.Set(detailStatus, statusRejected)
	}
	details.Set(detailPatient, rec.PatientName)
	details.Set(detailNationalNumber, rec.PatientNationalNumber)
	details.Set(detailBirthDate, rec.PatientBirthDate)
	details.Set(detailPatientAddress, rec.PatientAddress)
	details.Set(detailPatientPostal, rec.PatientPostalCodeCity)
	details.Set(detailDoctor, rec.Doctor.Name)
	details.Set(detailRizivNumber, rec.Doctor.RizivNumber)
	details.Set(detailDoctorAddress, rec.Doctor.Address)
	details.Set(detailDoctorPostal, rec.Doctor.PostalCodeCity)
	details.Set(detailDoctorPhone, rec.Doctor.Phone)

	if in.CaseID != "" {
		details.Set(detailCaseID, in.CaseID)
	}
	if rec.IncapacityStartDate != "" {
		details.Set(detailIncapacityFrom, rec.IncapacityStartDate)
	}
	if rec.IncapacityEndDate != "" {
		details.Set(detailIncapacityUntil, rec.IncapacityEndDate)
	}
	if rec.Summary != "" {
		details.Set(detailSummary, rec.Summary)
	}
	if rec.AllowedToLeaveHouse != nil {
		key := i18n.KeyNo
		if *rec.AllowedToLeaveHouse {
			key = i18n.KeyYes
		}
		details.Set(detailAllowedToLeave, catalog.Get(key, lang, nil))
	}

	verdict := &Verdict{
		Valid:       valid,
		Violations:  in.Violations,
		Fraud:       fraud,
		FraudType:   in.Match.FraudType(),
		DoctorFound: in.Match.Status.Found(),
		CaseID:      in.CaseID,
		Details:     details,
	}

	if valid {
		if in.Match.Message != "" {
			details.SetList(detailWarnings, []string{in.Match.Message})
		}
		verdict.Message = catalog.Get(i18n.KeyResultApproved, lang, nil)
		return verdict
	}

	if rec.HasSignature {
		details.Set(detailSignature, catalog.Get(i18n.KeyYes, lang, nil))
	} else {
		details.Set(detailSignature, catalog.Get(i18n.KeyNo, lang, nil))
	}

	if fraud {
		details.Set(detailRejectionReason, catalog.Get(i18n.KeyFraudReasonNotFound, lang, nil))
		if len(in.Violations) > 0 {
			details.SetList(detailValidationErrors, in.Violations)
		}
		verdict.Message = catalog.Get(i18n.KeyResultRejectedFraud, lang, nil)
		return verdict
	}

	details.SetList(detailValidationErrors, in.Violations)
	verdict.Message = catalog.Get(i18n.KeyResultRejected, lang, nil)
	return verdict
}
