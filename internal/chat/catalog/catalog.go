// Package catalog picks response variants for generic intents.
package catalog

import (
	"math/rand"
	"sync"

	"farmtech-assist/internal/chat/model"
	"farmtech-assist/internal/chat/rules"
)

// Catalog selects a response variant uniformly at random for an intent and
// language. The rand source is injectable so tests can pin the selection.
type Catalog struct {
	byIntent map[string]*rules.Rule
	defaults map[model.Language]rules.Default

	mu  sync.Mutex
	rng *rand.Rand
}

// New builds a Catalog over the generic rule table. rng may be nil, in which
// case an unseeded source is created.
func New(table *rules.Table, rng *rand.Rand) *Catalog {
	if rng == nil {
		rng = rand.New(rand.NewSource(rand.Int63()))
	}
	c := &Catalog{
		byIntent: make(map[string]*rules.Rule, len(table.Generic)),
		defaults: table.Defaults,
		rng:      rng,
	}
	for i := range table.Generic {
		c.byIntent[table.Generic[i].Intent] = &table.Generic[i]
	}
	return c
}

// Respond returns a response text and the suggestion list for the intent in
// the given language. Unknown intents get the language's default reply.
func (c *Catalog) Respond(intentName string, lang model.Language) (string, []string) {
	lang = lang.Normalize()
	rule, ok := c.byIntent[intentName]
	if !ok {
		d := c.defaults[lang]
		return d.Response, d.Suggestions
	}

	variants := rule.Responses[lang]
	c.mu.Lock()
	text := variants[c.rng.Intn(len(variants))]
	c.mu.Unlock()
	return text, rule.Suggestions[lang]
}
