package middleware

import (
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"attestguard/pkg/requestcontext"
)

// RequestMeta stamps every request with an ID, the request time, and the
// negotiated UI language. Handlers and services read these back through
// pkg/requestcontext instead of touching the request directly.
func RequestMeta(defaultLanguage string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()

			requestID := r.Header.Get("X-Request-ID")
			if requestID == "" {
				requestID = uuid.NewString()
			}
			ctx = requestcontext.WithRequestID(ctx, requestID)
			ctx = requestcontext.WithTime(ctx, time.Now())
			ctx = requestcontext.WithLanguage(ctx, negotiateLanguage(r, defaultLanguage))

			w.Header().Set("X-Request-ID", requestID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// negotiateLanguage picks the UI language: an explicit query/form value wins,
// then the first supported Accept-Language entry, then the configured default.
func negotiateLanguage(r *http.Request, fallback string) string {
	if lang := r.URL.Query().Get("language"); supportedLanguage(lang) {
		return lang
	}
	if header := r.Header.Get("Accept-Language"); header != "" {
		for _, part := range strings.Split(header, ",") {
			tag := strings.TrimSpace(strings.SplitN(part, ";", 2)[0])
			if len(tag) >= 2 && supportedLanguage(tag[:2]) {
				return tag[:2]
			}
		}
	}
	if supportedLanguage(fallback) {
		return fallback
	}
	return "nl"
}

func supportedLanguage(lang string) bool {
	return lang == "nl" || lang == "fr" || lang == "en"
}
