// Package understandingtest provides canned analysis results for tests.
package understandingtest

import "attestguard/internal/understanding"

func boolPtr(b bool) *bool { return &b }

func result(fields map[string]understanding.FieldValue) *understanding.AnalyzeResult {
	return &understanding.AnalyzeResult{
		Status: "Succeeded",
		Result: understanding.AnalyzeBody{
			Contents: []understanding.Content{{Fields: fields}},
		},
	}
}

// ValidResult is a clean certificate: signed, past dates, doctor Jan Peeters
// with RIZIV number 12345-67.
func ValidResult() *understanding.AnalyzeResult {
	return result(map[string]understanding.FieldValue{
		"PatientName":           {ValueString: "Els Vermeulen"},
		"PatientNationalNumber": {ValueString: "86.05.12-123.45"},
		"PatientBirthDate":      {ValueDate: "1986-05-12"},
		"PatientAddress":        {ValueString: "Kerkstraat 1, Gent"},
		"PatientPostalCodeCity": {ValueString: "9000 Gent"},
		"IncapacityStartDate":   {ValueDate: "2020-03-01"},
		"IncapacityEndDate":     {ValueDate: "2020-03-14"},
		"CertificateDate":       {ValueDate: "2020-03-01"},
		"DoctorHasSigned":       {ValueBoolean: boolPtr(true)},
		"IsAllowedToLeaveHouse": {ValueBoolean: boolPtr(true)},
		"DoctorName":            {ValueString: "Dr. Jan Peeters"},
		"DoctorRizivNumber":     {ValueString: "12345-67"},
		"DoctorAddress":         {ValueString: "Stationsstraat 5, Antwerpen"},
		"DoctorPostalCodeCity":  {ValueString: "2000 Antwerpen"},
		"DoctorPhoneNumber":     {ValueString: "+32 3 123 45 67"},
		"Summary":               {ValueString: "Griep, twee weken rust."},
	})
}

// UnknownDoctorResult is a signed certificate from a doctor no registry
// knows.
func UnknownDoctorResult() *understanding.AnalyzeResult {
	r := ValidResult()
	fields := r.Result.Contents[0].Fields
	fields["DoctorName"] = understanding.FieldValue{ValueString: "Dr. Piet Nergens"}
	fields["DoctorRizivNumber"] = understanding.FieldValue{ValueString: "00000-00"}
	return r
}
