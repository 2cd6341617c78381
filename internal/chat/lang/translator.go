// Package lang implements rule-based translation between English and Kannada
// plus script-based language detection.
package lang

import (
	"regexp"
	"sort"
	"strings"

	"farmtech-assist/internal/chat/model"
	"farmtech-assist/internal/chat/rules"
)

// Translator substitutes dictionary terms between English and Kannada. It is
// immutable after construction and safe for concurrent use.
type Translator struct {
	forward []forwardTerm
	reverse []reverseTerm
}

type forwardTerm struct {
	re *regexp.Regexp
	kn string
}

type reverseTerm struct {
	kn string
	en string
}

// NewTranslator builds a Translator from the dictionary entries. Forward terms
// are applied longest-first so phrases win over their component words. The
// reverse map collapses duplicates: when several English terms share a Kannada
// form, the entry declared last wins.
func NewTranslator(dict []rules.DictEntry) *Translator {
	ordered := make([]rules.DictEntry, len(dict))
	copy(ordered, dict)
	sort.SliceStable(ordered, func(i, j int) bool {
		return len(ordered[i].EN) > len(ordered[j].EN)
	})

	t := &Translator{}
	for _, e := range ordered {
		re := regexp.MustCompile(`(?i)\b` + regexp.QuoteMeta(e.EN) + `\b`)
		t.forward = append(t.forward, forwardTerm{re: re, kn: e.KN})
	}

	rev := make(map[string]string, len(dict))
	var keys []string
	for _, e := range dict {
		if _, seen := rev[e.KN]; !seen {
			keys = append(keys, e.KN)
		}
		rev[e.KN] = e.EN
	}
	sort.SliceStable(keys, func(i, j int) bool {
		return len(keys[i]) > len(keys[j])
	})
	for _, kn := range keys {
		t.reverse = append(t.reverse, reverseTerm{kn: kn, en: rev[kn]})
	}
	return t
}

// Translate converts text between the two supported languages. Identical or
// unsupported language pairs return the text unchanged.
func (t *Translator) Translate(text string, src, dst model.Language) string {
	if src == dst {
		return text
	}
	switch {
	case src == model.LangEnglish && dst == model.LangKannada:
		return t.enToKn(text)
	case src == model.LangKannada && dst == model.LangEnglish:
		return t.knToEn(text)
	default:
		return text
	}
}

func (t *Translator) enToKn(text string) string {
	out := strings.ToLower(text)
	for _, term := range t.forward {
		out = term.re.ReplaceAllString(out, term.kn)
	}
	return out
}

// knToEn uses plain substring replacement. Kannada has no case and word
// boundaries do not apply to its letters under RE2, so a term can match inside
// a longer word. Longest-first ordering limits the damage.
func (t *Translator) knToEn(text string) string {
	out := text
	for _, term := range t.reverse {
		out = strings.ReplaceAll(out, term.kn, term.en)
	}
	return out
}

// DetectLanguage reports Kannada when the text contains any rune in the
// Kannada Unicode block (U+0C80 to U+0CFF), English otherwise. Empty input is
// English.
func DetectLanguage(text string) model.Language {
	for _, r := range text {
		if r >= 0x0C80 && r <= 0x0CFF {
			return model.LangKannada
		}
	}
	return model.LangEnglish
}
