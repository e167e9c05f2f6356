package attestation

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"attestguard/internal/i18n"
	"attestguard/pkg/requestcontext"
)

func verdictContext() context.Context {
	now := time.Date(2026, 3, 10, 14, 30, 45, 0, time.UTC)
	return requestcontext.WithTime(context.Background(), now)
}

func fullRecord() Record {
	return Record{
		PatientName:           "Els Vermeulen",
		PatientNationalNumber: "86.05.12-123.45",
		PatientBirthDate:      "1986-05-12",
		PatientAddress:        "Kerkstraat 1, Gent",
		PatientPostalCodeCity: "9000 Gent",
		IncapacityStartDate:   "2026-03-01",
		IncapacityEndDate:     "2026-03-14",
		CertificateDate:       "2026-03-01",
		HasSignature:          true,
		AllowedToLeaveHouse:   boolPtr(true),
		Doctor: DoctorClaim{
			Name:           "Dr. Jan Peeters",
			RizivNumber:    "12345-67",
			Address:        "Stationsstraat 5, Antwerpen",
			PostalCodeCity: "2000 Antwerpen",
			Phone:          "+32 3 123 45 67",
		},
		Summary: "Griep, twee weken rust.",
	}
}

func verifiedMatch() *MatchResult {
	return &MatchResult{
		Status:  MatchVerifiedByRiziv,
		Message: "Arts geverifieerd via RIZIV nummer: 12345-67",
	}
}

func TestVerdictApproved(t *testing.T) {
	v := buildVerdict(verdictContext(), i18n.Default(), verdictInput{
		Record:   fullRecord(),
		Match:    verifiedMatch(),
		FileName: "attest.pdf",
	})

	assert.True(t, v.Valid)
	assert.False(t, v.Fraud)
	assert.Equal(t, FraudTypeNone, v.FraudType)
	assert.True(t, v.DoctorFound)
	assert.Equal(t, "Uw afwezigheidsattest is geldig en goedgekeurd.", v.Message)

	assert.Equal(t, []string{
		"Bestandsnaam", "Verwerkt op", "Status",
		"Patiënt", "Rijksregisternummer", "Geboortedatum", "Adres patiënt", "Postcode en gemeente patiënt",
		"Arts", "RIZIV Nummer", "Adres arts", "Postcode en gemeente arts", "Telefoonnummer arts",
		"Onmogelijkheid vanaf", "Onmogelijkheid tot", "Samenvatting", "Mag huis verlaten",
		"Waarschuwingen",
	}, v.Details.Keys())

	status, _ := v.Details.Get("Status")
	assert.Equal(t, "Goedgekeurd", status)
	processedAt, _ := v.Details.Get("Verwerkt op")
	assert.Equal(t, "10-03-2026 14:30:45", processedAt)
	leave, _ := v.Details.Get("Mag huis verlaten")
	assert.Equal(t, "Ja", leave)
	warnings, _ := v.Details.Get("Waarschuwingen")
	assert.Equal(t, []string{"Arts geverifieerd via RIZIV nummer: 12345-67"}, warnings)
}

func TestVerdictRejectedByViolations(t *testing.T) {
	rec := fullRecord()
	rec.HasSignature = false
	violations := []string{"Er ontbreekt een handtekening van de arts op het document"}

	v := buildVerdict(verdictContext(), i18n.Default(), verdictInput{
		Record:     rec,
		Violations: violations,
		Match:      verifiedMatch(),
		FileName:   "attest.pdf",
		CaseID:     "af7c1fe6-d669-414e-b066-e9733f0de7a8",
	})

	assert.False(t, v.Valid)
	assert.False(t, v.Fraud)
	assert.Equal(t, "Uw afwezigheidsattest kon niet worden goedgekeurd.", v.Message)

	status, _ := v.Details.Get("Status")
	assert.Equal(t, "Afgekeurd", status)
	caseID, _ := v.Details.Get("Zaak ID")
	assert.Equal(t, "af7c1fe6-d669-414e-b066-e9733f0de7a8", caseID)
	signature, _ := v.Details.Get("Handtekening")
	assert.Equal(t, "Nee", signature)
	errs, _ := v.Details.Get("Fouten")
	assert.Equal(t, violations, errs)

	_, hasWarnings := v.Details.Get("Waarschuwingen")
	assert.False(t, hasWarnings, "warnings belong to approved verdicts only")
	_, hasReason := v.Details.Get("Reden")
	assert.False(t, hasReason)
}

func TestVerdictRejectedByFraud(t *testing.T) {
	v := buildVerdict(verdictContext(), i18n.Default(), verdictInput{
		Record:   fullRecord(),
		Match:    &MatchResult{Status: MatchNotFoundFraud, Message: "⚠️ FRAUDE GEDETECTEERD"},
		FileName: "attest.pdf",
		CaseID:   "af7c1fe6-d669-414e-b066-e9733f0de7a8",
	})

	assert.False(t, v.Valid)
	assert.True(t, v.Fraud)
	assert.Equal(t, FraudTypeNotFound, v.FraudType)
	assert.False(t, v.DoctorFound)
	assert.Equal(t, "Het document is afgekeurd. De arts kon niet worden geverifieerd in onze database van geregistreerde artsen.", v.Message)

	reason, _ := v.Details.Get("Reden")
	assert.Equal(t, "Arts niet gevonden in geregistreerde artsen database", reason)
	signature, _ := v.Details.Get("Handtekening")
	assert.Equal(t, "Ja", signature)
	_, hasErrors := v.Details.Get("Fouten")
	assert.False(t, hasErrors, "no violations to carry")
}

func TestVerdictFraudOverridesViolationsButKeepsThem(t *testing.T) {
	rec := fullRecord()
	rec.HasSignature = false
	violations := []string{"Er ontbreekt een handtekening van de arts op het document"}

	v := buildVerdict(verdictContext(), i18n.Default(), verdictInput{
		Record:     rec,
		Violations: violations,
		Match:      &MatchResult{Status: MatchNameMismatchFraud},
	})

	assert.True(t, v.Fraud)
	assert.Equal(t, FraudTypeNameMismatch, v.FraudType)
	assert.Contains(t, v.Message, "Het document is afgekeurd.")

	// Fraud owns the top-level message and the Reden field, but the rule
	// violations stay visible for audit.
	errs, _ := v.Details.Get("Fouten")
	assert.Equal(t, violations, errs)
}

func TestVerdictFraudImpliesInvalid(t *testing.T) {
	for _, status := range []MatchStatus{MatchNameMismatchFraud, MatchNotFoundFraud} {
		v := buildVerdict(verdictContext(), i18n.Default(), verdictInput{
			Record: fullRecord(),
			Match:  &MatchResult{Status: status},
		})
		assert.False(t, v.Valid, string(status))
		assert.True(t, v.Fraud, string(status))
	}
}

func TestVerdictMissingIdentityFields(t *testing.T) {
	v := buildVerdict(verdictContext(), i18n.Default(), verdictInput{
		Record: Record{HasSignature: true},
		Match:  &MatchResult{Status: MatchNotFoundFraud},
	})

	// Missing identity fields surface as empty strings, not placeholders.
	patient, ok := v.Details.Get("Patiënt")
	assert.True(t, ok)
	assert.Equal(t, "", patient)
	doctor, ok := v.Details.Get("Arts")
	assert.True(t, ok)
	assert.Equal(t, "", doctor)
	riziv, ok := v.Details.Get("RIZIV Nummer")
	assert.True(t, ok)
	assert.Equal(t, "", riziv)

	for _, key := range []string{"Onmogelijkheid vanaf", "Onmogelijkheid tot", "Samenvatting", "Mag huis verlaten", "Zaak ID"} {
		_, ok := v.Details.Get(key)
		assert.False(t, ok, key)
	}
}

func TestVerdictIdempotent(t *testing.T) {
	ctx := verdictContext()
	in := verdictInput{Record: fullRecord(), Match: verifiedMatch(), FileName: "attest.pdf"}

	first := buildVerdict(ctx, i18n.Default(), in)
	second := buildVerdict(ctx, i18n.Default(), in)
	assert.Equal(t, first, second)
}

func TestDetailsJSONPreservesInsertionOrder(t *testing.T) {
	v := buildVerdict(verdictContext(), i18n.Default(), verdictInput{
		Record:   fullRecord(),
		Match:    verifiedMatch(),
		FileName: "attest.pdf",
	})

	raw, err := json.Marshal(v.Details)
	require.NoError(t, err)

	dec := json.NewDecoder(bytes.NewReader(raw))
	tok, err := dec.Token()
	require.NoError(t, err)
	require.Equal(t, json.Delim('{'), tok)

	var keys []string
	for dec.More() {
		keyTok, err := dec.Token()
		require.NoError(t, err)
		keys = append(keys, keyTok.(string))

		var value any
		require.NoError(t, dec.Decode(&value))
	}
	assert.Equal(t, v.Details.Keys(), keys)
}
