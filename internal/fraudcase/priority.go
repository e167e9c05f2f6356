package fraudcase

import "strings"

// priorityRule maps a keyword in the rejection reason to a triage score.
// Rules are evaluated top-down; the first match wins, so an unverified
// doctor outranks a missing signature even when both are present.
type priorityRule struct {
	keyword string // matched case-insensitively against the reason text
	score   int
	reason  string
}

var priorityRules = []priorityRule{
	{keyword: "niet gevonden", score: 8, reason: "Arts niet in database - mogelijk fraude"},
	{keyword: "handtekening", score: 6, reason: "Ontbrekende handtekening"},
}

// defaultPriorityScore is the medium priority for reasons no rule covers;
// the reason text passes through unchanged.
const defaultPriorityScore = 5

// scorePriority resolves the triage score and reason for a rejection.
func scorePriority(rejectionReason string) (int, string) {
	lowered := strings.ToLower(rejectionReason)
	for _, rule := range priorityRules {
		if strings.Contains(lowered, rule.keyword) {
			return rule.score, rule.reason
		}
	}
	return defaultPriorityScore, rejectionReason
}
