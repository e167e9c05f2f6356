package i18n

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetFallsBackToDutch(t *testing.T) {
	c := Default()

	t.Run("unknown language", func(t *testing.T) {
		got := c.Get(KeyNotFound, "de", nil)
		assert.Equal(t, "Niet gevonden", got)
	})

	t.Run("empty language", func(t *testing.T) {
		got := c.Get(KeyYes, "", nil)
		assert.Equal(t, "Ja", got)
	})

	t.Run("unknown key yields empty string", func(t *testing.T) {
		assert.Empty(t, c.Get("no_such_key", LangDutch, nil))
	})
}

func TestGetFormatsParams(t *testing.T) {
	c := Default()

	got := c.Get(KeyDoctorVerifiedRiziv, LangEnglish, map[string]string{"riziv": "12345-67"})
	assert.Equal(t, "Doctor verified via RIZIV number: 12345-67", got)

	got = c.Get(KeyFraudNameMismatch, LangDutch, map[string]string{
		"doc_name": "Dr. Karel Janssens",
		"db_name":  "Jan Peeters",
	})
	assert.Contains(t, got, "Dr. Karel Janssens")
	assert.Contains(t, got, "Jan Peeters")
}

func TestGetLeavesUnmatchedPlaceholders(t *testing.T) {
	c := Default()
	got := c.Get(KeyDatabaseError, LangDutch, nil)
	assert.Contains(t, got, "{error}")
}

// expectedParams pins the parameter names each template may use. Renaming a
// placeholder in the catalog without updating the call sites fails here.
var expectedParams = map[string][]string{
	KeyDoctorVerifiedRiziv:       {"riziv"},
	KeyDoctorVerifiedNameCity:    {"name"},
	KeyDoctorVerifiedName:        {"name"},
	KeyFraudNameMismatch:         {"doc_name", "db_name"},
	KeyDocumentProcessError:      {"error"},
	KeyDatabaseError:             {"error"},
	KeyValidationError:           {"error"},
	KeyFraudCaseCreationError:    {"error"},
	KeyValidationStartDateFuture: {"date"},
	KeyValidationCertDateFuture:  {"date"},
	KeyConfigurationError:        {"error"},
}

var placeholderRe = regexp.MustCompile(`\{([a-z_]+)\}`)

func TestTemplateParamsMatchDeclaredSet(t *testing.T) {
	for key, byLocale := range messages {
		allowed := map[string]bool{}
		for _, p := range expectedParams[key] {
			allowed[p] = true
		}
		for locale, template := range byLocale {
			for _, m := range placeholderRe.FindAllStringSubmatch(template, -1) {
				assert.Truef(t, allowed[m[1]],
					"message %q locale %q uses undeclared parameter %q", key, locale, m[1])
			}
		}
	}
}

func TestEveryKeyHasDutchFallback(t *testing.T) {
	for key, byLocale := range messages {
		_, ok := byLocale[LangDutch]
		require.Truef(t, ok, "message %q is missing the Dutch fallback", key)
	}
}

func TestEveryKeyCoversAllLocales(t *testing.T) {
	for key, byLocale := range messages {
		for _, lang := range []string{LangDutch, LangFrench, LangEnglish} {
			assert.Containsf(t, byLocale, lang, "message %q is missing locale %q", key, lang)
		}
	}
}
