package attestation

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"attestguard/internal/i18n"
	"attestguard/internal/registry"
	"attestguard/pkg/requestcontext"
)

// Matcher resolves a doctor claim against the registry through three tiers:
// RIZIV number, last name plus city, last name alone. Errors are registry
// failures only; a doctor that cannot be verified is a fraud result, not an
// error.
type Matcher struct {
	registry registry.Store
	catalog  *i18n.Catalog
	logger   *slog.Logger
}

// NewMatcher returns a matcher backed by the given registry store.
func NewMatcher(store registry.Store, catalog *i18n.Catalog, logger *slog.Logger) *Matcher {
	return &Matcher{registry: store, catalog: catalog, logger: logger}
}

// titleWords are stripped from extracted doctor names before tokenizing.
var titleWords = []string{"Dr.", "Arts", "Doctor"}

// nameTokens splits a claimed doctor name into comparable tokens: titles and
// periods removed, original casing preserved for query use.
func nameTokens(name string) []string {
	for _, title := range titleWords {
		name = strings.ReplaceAll(name, title, "")
	}
	name = strings.ReplaceAll(name, ".", "")
	return strings.Fields(name)
}

func containsToken(tokens []string, want string) bool {
	for _, t := range tokens {
		if strings.EqualFold(t, want) {
			return true
		}
	}
	return false
}

// nameMatchesEntry checks the claimed name tokens against a registry row.
// Both first and last name must appear as tokens; when the registry row has
// no first name, the last name alone decides.
func nameMatchesEntry(entry *registry.Entry, tokens []string) bool {
	first := strings.TrimSpace(entry.FirstName)
	last := strings.TrimSpace(entry.LastName)
	if last == "" {
		return false
	}
	if first == "" {
		return containsToken(tokens, last)
	}
	return containsToken(tokens, first) && containsToken(tokens, last)
}

// cityFromAddress extracts the city as the text after the last comma of an
// address line. No comma means no extractable city.
func cityFromAddress(address string) string {
	idx := strings.LastIndex(address, ",")
	if idx < 0 {
		return ""
	}
	return strings.TrimSpace(address[idx+1:])
}

// Match resolves claim through the tiers and never returns both a result and
// an error.
func (m *Matcher) Match(ctx context.Context, claim DoctorClaim) (*MatchResult, error) {
	lang := requestcontext.Language(ctx)
	riziv := strings.TrimSpace(claim.RizivNumber)
	name := strings.TrimSpace(claim.Name)

	// Tier 1: exact RIZIV lookup. A hit is decisive either way; only a
	// missing row falls through to name matching.
	if riziv != "" {
		entry, err := m.registry.LookupByRiziv(ctx, riziv)
		switch {
		case err == nil:
			tokens := nameTokens(name)
			if nameMatchesEntry(entry, tokens) {
				return &MatchResult{
					Status:  MatchVerifiedByRiziv,
					Matched: entry,
					Message: m.catalog.Get(i18n.KeyDoctorVerifiedRiziv, lang, map[string]string{"riziv": riziv}),
				}, nil
			}
			m.logger.WarnContext(ctx, "riziv number found but claimed name does not match registry",
				"riziv_number", riziv, "claimed_name", name)
			return &MatchResult{
				Status: MatchNameMismatchFraud,
				Message: m.catalog.Get(i18n.KeyFraudNameMismatch, lang, map[string]string{
					"doc_name": name,
					"db_name":  strings.TrimSpace(entry.FirstName + " " + entry.LastName),
				}),
			}, nil
		case errors.Is(err, registry.ErrNotFound):
			m.logger.InfoContext(ctx, "riziv number not in registry, falling back to name search", "riziv_number", riziv)
		default:
			return nil, err
		}
	}

	// Tier 2: surname search, optionally narrowed by the city taken from the
	// claimed address. Narrowing that eliminates every candidate discards the
	// tier entirely.
	if tokens := nameTokens(name); len(tokens) >= 2 {
		lastName := tokens[len(tokens)-1]
		candidates, err := m.registry.SearchByLastName(ctx, lastName)
		if err != nil {
			return nil, err
		}
		if len(candidates) > 0 {
			city := cityFromAddress(strings.TrimSpace(claim.Address))
			if city == "" {
				return &MatchResult{
					Status:  MatchVerifiedByName,
					Matched: candidates[0],
					Message: m.catalog.Get(i18n.KeyDoctorVerifiedName, lang, map[string]string{"name": name}),
				}, nil
			}
			refined, err := m.registry.SearchByLastNameAndCity(ctx, lastName, city)
			if err != nil {
				return nil, err
			}
			if len(refined) > 0 {
				return &MatchResult{
					Status:  MatchVerifiedByNameCity,
					Matched: refined[0],
					Message: m.catalog.Get(i18n.KeyDoctorVerifiedNameCity, lang, map[string]string{"name": name}),
				}, nil
			}
			m.logger.WarnContext(ctx, "surname candidates eliminated by city refinement",
				"last_name", lastName, "city", city, "candidates", len(candidates))
		}
	}

	// Tier 3: unverifiable.
	message := m.catalog.Get(i18n.KeyFraudDetected, lang, nil)
	switch {
	case riziv != "":
		message += " (RIZIV: " + riziv + ")"
	case name != "":
		message += " (Naam: " + name + ")"
	}
	return &MatchResult{Status: MatchNotFoundFraud, Message: message}, nil
}
