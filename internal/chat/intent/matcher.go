// Package intent matches incoming messages against the ordered rule tables.
package intent

import (
	"strings"

	"farmtech-assist/internal/chat/rules"
)

// IntentGeneral is returned when no generic rule matches.
const IntentGeneral = "general"

// Matcher resolves messages to intents by first match in declaration order.
// It holds read-only tables and is safe for concurrent use.
type Matcher struct {
	table *rules.Table
}

func NewMatcher(table *rules.Table) *Matcher {
	return &Matcher{table: table}
}

// Detect returns the first generic intent whose pattern matches the message,
// or IntentGeneral when none does.
func (m *Matcher) Detect(message string) string {
	lowered := strings.ToLower(message)
	for i := range m.table.Generic {
		if m.table.Generic[i].Matches(lowered) {
			return m.table.Generic[i].Intent
		}
	}
	return IntentGeneral
}

// DetectPersonalized returns the first matching personalized intent. The
// boolean reports whether anything matched.
func (m *Matcher) DetectPersonalized(message string) (string, bool) {
	lowered := strings.ToLower(message)
	for i := range m.table.Personalized {
		if m.table.Personalized[i].Matches(lowered) {
			return m.table.Personalized[i].Intent, true
		}
	}
	return "", false
}
