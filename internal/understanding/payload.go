// Package understanding is the boundary to the external document-analysis
// service: a thin client plus the typed extraction payload it returns.
package understanding

// FieldValue is one typed extracted field. Exactly one of the Value members
// is populated depending on the field kind; Confidence may accompany any of
// them but is not used to alter extraction.
type FieldValue struct {
	ValueString  string   `json:"valueString,omitempty"`
	ValueDate    string   `json:"valueDate,omitempty"`
	ValueBoolean *bool    `json:"valueBoolean,omitempty"`
	Confidence   *float64 `json:"confidence,omitempty"`
}

// Content is one analyzed content item; fields are keyed by analyzer field
// name (PatientName, DoctorRizivNumber, ...).
type Content struct {
	Fields map[string]FieldValue `json:"fields"`
}

// AnalyzeBody holds the content items of a completed analysis.
type AnalyzeBody struct {
	Contents []Content `json:"contents"`
}

// OperationError is the error payload of a failed analysis operation.
type OperationError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// AnalyzeResult is the envelope returned by the operation endpoint.
type AnalyzeResult struct {
	Status string          `json:"status"`
	Result AnalyzeBody     `json:"result"`
	Error  *OperationError `json:"error,omitempty"`
}
