package attestation

import (
	"context"
	"log/slog"
	"time"

	"attestguard/internal/i18n"
	"attestguard/pkg/requestcontext"
)

const displayDateLayout = "02-01-2006"

// dateLayouts are the accepted input forms, tried in order: ISO first, then
// the Belgian day-first form documents occasionally carry.
var dateLayouts = []string{"2006-01-02", displayDateLayout}

// parseDate parses a certificate date. Empty input and unparseable input both
// return ok=false; the caller decides whether that is worth a log line.
func parseDate(value string) (time.Time, bool) {
	if value == "" {
		return time.Time{}, false
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// ValidateRules runs the date and signature rules over a record and returns
// the localized violation messages. Unparseable dates are logged and treated
// as absent rather than failing the document: extraction quality must not
// turn into rejections.
func ValidateRules(ctx context.Context, rec Record, catalog *i18n.Catalog, logger *slog.Logger) []string {
	lang := requestcontext.Language(ctx)
	now := requestcontext.Now(ctx)
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)

	var violations []string

	if start, ok := parseDate(rec.IncapacityStartDate); ok {
		if start.After(today) {
			violations = append(violations, catalog.Get(i18n.KeyValidationStartDateFuture, lang, map[string]string{
				"date": start.Format(displayDateLayout),
			}))
		}
	} else if rec.IncapacityStartDate != "" {
		logger.WarnContext(ctx, "unparseable incapacity start date", "value", rec.IncapacityStartDate)
	}

	// An end date in the future is the normal case for a running incapacity
	// period and is never a violation; parsing only feeds the log.
	if _, ok := parseDate(rec.IncapacityEndDate); !ok && rec.IncapacityEndDate != "" {
		logger.WarnContext(ctx, "unparseable incapacity end date", "value", rec.IncapacityEndDate)
	}

	if cert, ok := parseDate(rec.CertificateDate); ok {
		if cert.After(today) {
			violations = append(violations, catalog.Get(i18n.KeyValidationCertDateFuture, lang, map[string]string{
				"date": cert.Format(displayDateLayout),
			}))
		}
	} else if rec.CertificateDate != "" {
		logger.WarnContext(ctx, "unparseable certificate date", "value", rec.CertificateDate)
	}

	if !rec.HasSignature {
		violations = append(violations, catalog.Get(i18n.KeyValidationSignatureMissing, lang, nil))
	}

	return violations
}
