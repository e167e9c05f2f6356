package attestation

import (
	"context"
	"log/slog"

	"attestguard/internal/understanding"
)

type fieldKind int

const (
	kindString fieldKind = iota
	kindDate
	kindBoolean
)

// fieldBindings maps analyzer field names onto Record attributes. Extraction
// consults only this table; unrecognized analyzer fields are ignored and
// confidence scores are carried through without altering the value.
var fieldBindings = []struct {
	name    string
	kind    fieldKind
	setText func(*Record, string)
	setBool func(*Record, *bool)
}{
	{name: "PatientName", kind: kindString, setText: func(r *Record, v string) { r.PatientName = v }},
	{name: "PatientNationalNumber", kind: kindString, setText: func(r *Record, v string) { r.PatientNationalNumber = v }},
	{name: "PatientBirthDate", kind: kindDate, setText: func(r *Record, v string) { r.PatientBirthDate = v }},
	{name: "PatientAddress", kind: kindString, setText: func(r *Record, v string) { r.PatientAddress = v }},
	{name: "PatientPostalCodeCity", kind: kindString, setText: func(r *Record, v string) { r.PatientPostalCodeCity = v }},
	{name: "IncapacityStartDate", kind: kindDate, setText: func(r *Record, v string) { r.IncapacityStartDate = v }},
	{name: "IncapacityEndDate", kind: kindDate, setText: func(r *Record, v string) { r.IncapacityEndDate = v }},
	{name: "CertificateDate", kind: kindDate, setText: func(r *Record, v string) { r.CertificateDate = v }},
	{name: "DoctorHasSigned", kind: kindBoolean, setBool: func(r *Record, v *bool) { r.HasSignature = v != nil && *v }},
	{name: "IsAllowedToLeaveHouse", kind: kindBoolean, setBool: func(r *Record, v *bool) { r.AllowedToLeaveHouse = v }},
	{name: "DoctorName", kind: kindString, setText: func(r *Record, v string) { r.Doctor.Name = v }},
	{name: "DoctorRizivNumber", kind: kindString, setText: func(r *Record, v string) { r.Doctor.RizivNumber = v }},
	{name: "DoctorAddress", kind: kindString, setText: func(r *Record, v string) { r.Doctor.Address = v }},
	{name: "DoctorPostalCodeCity", kind: kindString, setText: func(r *Record, v string) { r.Doctor.PostalCodeCity = v }},
	{name: "DoctorPhoneNumber", kind: kindString, setText: func(r *Record, v string) { r.Doctor.Phone = v }},
	{name: "Summary", kind: kindString, setText: func(r *Record, v string) { r.Summary = v }},
}

// ExtractRecord flattens an analysis result into a Record. Only the first
// content item is read; a result without content yields a zero Record so the
// downstream rules can reject it on their own terms.
func ExtractRecord(ctx context.Context, result *understanding.AnalyzeResult, logger *slog.Logger) Record {
	var rec Record
	if result == nil || len(result.Result.Contents) == 0 {
		logger.WarnContext(ctx, "analysis result has no content items")
		return rec
	}
	fields := result.Result.Contents[0].Fields
	for _, binding := range fieldBindings {
		value, ok := fields[binding.name]
		if !ok {
			continue
		}
		switch binding.kind {
		case kindString:
			binding.setText(&rec, value.ValueString)
		case kindDate:
			binding.setText(&rec, value.ValueDate)
		case kindBoolean:
			binding.setBool(&rec, value.ValueBoolean)
		}
	}
	return rec
}
