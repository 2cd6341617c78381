package rules

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"farmtech-assist/internal/chat/model"
)

func TestLoad(t *testing.T) {
	table, err := Load()
	require.NoError(t, err)
	require.NotNil(t, table)

	t.Run("generic rules in declaration order", func(t *testing.T) {
		wantOrder := []string{
			"greeting", "equipment_search", "rental_process", "pricing",
			"booking_status", "help", "equipment_types", "thanks",
		}
		var got []string
		for _, r := range table.Generic {
			got = append(got, r.Intent)
		}
		assert.Equal(t, wantOrder, got)
	})

	t.Run("personalized rules in declaration order", func(t *testing.T) {
		wantOrder := []string{
			"my_profile", "my_bookings", "my_equipment", "pending_requests",
			"cancel_booking", "approve_request", "reject_request",
		}
		var got []string
		for _, r := range table.Personalized {
			got = append(got, r.Intent)
		}
		assert.Equal(t, wantOrder, got)
	})

	t.Run("every generic rule covers both languages", func(t *testing.T) {
		for _, r := range table.Generic {
			for _, lang := range []model.Language{model.LangEnglish, model.LangKannada} {
				assert.NotEmpty(t, r.Responses[lang], "intent %s responses %s", r.Intent, lang)
				assert.NotEmpty(t, r.Suggestions[lang], "intent %s suggestions %s", r.Intent, lang)
			}
		}
	})

	t.Run("defaults present for both languages", func(t *testing.T) {
		for _, lang := range []model.Language{model.LangEnglish, model.LangKannada} {
			d, ok := table.Defaults[lang]
			require.True(t, ok, "missing defaults for %s", lang)
			assert.NotEmpty(t, d.Response)
			assert.NotEmpty(t, d.Suggestions)
		}
	})

	t.Run("dictionary has no empty sides", func(t *testing.T) {
		require.NotEmpty(t, table.Dictionary)
		for _, e := range table.Dictionary {
			assert.NotEmpty(t, e.EN)
			assert.NotEmpty(t, e.KN)
		}
	})
}

func TestRuleMatches(t *testing.T) {
	table, err := Load()
	require.NoError(t, err)

	byIntent := make(map[string]*Rule)
	for i := range table.Generic {
		byIntent[table.Generic[i].Intent] = &table.Generic[i]
	}

	tests := []struct {
		name    string
		intent  string
		message string
		want    bool
	}{
		{"greeting english", "greeting", "hello there", true},
		{"greeting uppercase", "greeting", "HELLO", true},
		{"greeting kannada", "greeting", "ನಮಸ್ಕಾರ", true},
		{"greeting no match inside word", "greeting", "this is highway", false},
		{"equipment search needs both halves", "equipment_search", "i need a tractor", true},
		{"equipment search verb alone", "equipment_search", "i need something", false},
		{"pricing keyword", "pricing", "what is the price", true},
		{"pricing kannada", "pricing", "ಬೆಲೆ ಏನು", true},
		{"thanks", "thanks", "thanks a lot", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rule, ok := byIntent[tt.intent]
			require.True(t, ok)
			assert.Equal(t, tt.want, rule.Matches(tt.message))
		})
	}
}
