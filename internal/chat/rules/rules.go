// Package rules loads the chatbot's rule tables from embedded YAML: the
// generic intent rules (patterns, response variants, suggestions), the
// personalized intent patterns, and the bilingual term dictionary.
//
// Declaration order inside the YAML files is a contract: intent matching
// returns the first rule that matches, so reordering entries changes
// behavior. Tables are immutable once loaded and safe for concurrent readers.
package rules

import (
	"embed"
	"fmt"
	"regexp"

	"gopkg.in/yaml.v3"

	"farmtech-assist/internal/chat/model"
	commonerrors "farmtech-assist/internal/common/errors"
)

//go:embed data/intents.yaml data/personal.yaml data/dictionary.yaml
var dataFS embed.FS

// Rule is one intent rule with its compiled patterns. Generic rules carry
// responses and suggestions for every supported language; personalized rules
// carry patterns only, because their replies are rendered from user data.
type Rule struct {
	Intent      string
	Responses   map[model.Language][]string
	Suggestions map[model.Language][]string

	patterns []*regexp.Regexp
}

// Matches reports whether any of the rule's patterns matches the message.
// The caller is expected to pass the message lowercased; English patterns are
// additionally compiled case-insensitive.
func (r *Rule) Matches(message string) bool {
	for _, p := range r.patterns {
		if p.MatchString(message) {
			return true
		}
	}
	return false
}

// Default is the fallback response for a language when no intent matches.
type Default struct {
	Response    string
	Suggestions []string
}

// DictEntry is one bilingual dictionary pair, in declaration order.
type DictEntry struct {
	EN string
	KN string
}

// Table holds every rule table the engine needs, loaded once at startup.
type Table struct {
	Generic      []Rule
	Personalized []Rule
	Defaults     map[model.Language]Default
	Dictionary   []DictEntry
}

type yamlIntent struct {
	Intent   string `yaml:"intent"`
	Patterns struct {
		EN []string `yaml:"en"`
		KN []string `yaml:"kn"`
	} `yaml:"patterns"`
	Responses   map[string][]string `yaml:"responses"`
	Suggestions map[string][]string `yaml:"suggestions"`
}

type yamlDefault struct {
	Response    string   `yaml:"response"`
	Suggestions []string `yaml:"suggestions"`
}

type yamlIntentsFile struct {
	Intents  []yamlIntent           `yaml:"intents"`
	Defaults map[string]yamlDefault `yaml:"defaults"`
}

type yamlPersonalFile struct {
	Intents []yamlIntent `yaml:"intents"`
}

type yamlDictFile struct {
	Terms []struct {
		EN string `yaml:"en"`
		KN string `yaml:"kn"`
	} `yaml:"terms"`
}

// Load parses and compiles the embedded rule tables. It fails with a
// RULES_INVALID error when a rule is malformed or when a generic intent is
// missing responses or suggestions for a supported language.
func Load() (*Table, error) {
	t, err := load()
	if err != nil {
		return nil, commonerrors.NewRulesInvalidError(err)
	}
	return t, nil
}

func load() (*Table, error) {
	t := &Table{
		Defaults: make(map[model.Language]Default),
	}

	var intentsFile yamlIntentsFile
	if err := decodeEmbedded("data/intents.yaml", &intentsFile); err != nil {
		return nil, err
	}
	for _, yi := range intentsFile.Intents {
		rule, err := buildRule(yi, true)
		if err != nil {
			return nil, fmt.Errorf("intent %q: %w", yi.Intent, err)
		}
		t.Generic = append(t.Generic, rule)
	}
	for langCode, d := range intentsFile.Defaults {
		lang := model.Language(langCode)
		if lang != model.LangEnglish && lang != model.LangKannada {
			return nil, fmt.Errorf("defaults: unsupported language %q", langCode)
		}
		t.Defaults[lang] = Default{Response: d.Response, Suggestions: d.Suggestions}
	}
	for _, lang := range []model.Language{model.LangEnglish, model.LangKannada} {
		if _, ok := t.Defaults[lang]; !ok {
			return nil, fmt.Errorf("defaults: missing language %q", lang)
		}
	}

	var personalFile yamlPersonalFile
	if err := decodeEmbedded("data/personal.yaml", &personalFile); err != nil {
		return nil, err
	}
	for _, yi := range personalFile.Intents {
		rule, err := buildRule(yi, false)
		if err != nil {
			return nil, fmt.Errorf("personalized intent %q: %w", yi.Intent, err)
		}
		t.Personalized = append(t.Personalized, rule)
	}

	var dictFile yamlDictFile
	if err := decodeEmbedded("data/dictionary.yaml", &dictFile); err != nil {
		return nil, err
	}
	for _, term := range dictFile.Terms {
		if term.EN == "" || term.KN == "" {
			return nil, fmt.Errorf("dictionary: empty side in pair %q/%q", term.EN, term.KN)
		}
		t.Dictionary = append(t.Dictionary, DictEntry{EN: term.EN, KN: term.KN})
	}

	return t, nil
}

func decodeEmbedded(name string, out interface{}) error {
	raw, err := dataFS.ReadFile(name)
	if err != nil {
		return fmt.Errorf("read %s: %w", name, err)
	}
	if err := yaml.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("parse %s: %w", name, err)
	}
	return nil
}

func buildRule(yi yamlIntent, generic bool) (Rule, error) {
	if yi.Intent == "" {
		return Rule{}, fmt.Errorf("missing intent id")
	}
	if len(yi.Patterns.EN)+len(yi.Patterns.KN) == 0 {
		return Rule{}, fmt.Errorf("no patterns declared")
	}

	rule := Rule{Intent: yi.Intent}

	// English patterns run against the lowercased message, but are compiled
	// case-insensitive anyway so raw messages match too. Kannada patterns are
	// compiled verbatim: the script has no case, and \b boundaries do not
	// apply to Kannada letters under RE2, so the tables omit them.
	for _, p := range yi.Patterns.EN {
		re, err := regexp.Compile("(?i)" + p)
		if err != nil {
			return Rule{}, fmt.Errorf("pattern %q: %w", p, err)
		}
		rule.patterns = append(rule.patterns, re)
	}
	for _, p := range yi.Patterns.KN {
		re, err := regexp.Compile(p)
		if err != nil {
			return Rule{}, fmt.Errorf("pattern %q: %w", p, err)
		}
		rule.patterns = append(rule.patterns, re)
	}

	if !generic {
		return rule, nil
	}

	rule.Responses = make(map[model.Language][]string, len(yi.Responses))
	for langCode, variants := range yi.Responses {
		rule.Responses[model.Language(langCode)] = variants
	}
	rule.Suggestions = make(map[model.Language][]string, len(yi.Suggestions))
	for langCode, s := range yi.Suggestions {
		rule.Suggestions[model.Language(langCode)] = s
	}
	for _, lang := range []model.Language{model.LangEnglish, model.LangKannada} {
		if len(rule.Responses[lang]) == 0 {
			return Rule{}, fmt.Errorf("no %s responses", lang)
		}
		if len(rule.Suggestions[lang]) == 0 {
			return Rule{}, fmt.Errorf("no %s suggestions", lang)
		}
	}
	return rule, nil
}
