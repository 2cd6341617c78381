// Package engine resolves chat messages into replies. Resolution order:
// confirmed actions, personalized intents, generic intents, default. The
// engine is stateless per request and total: it always produces a Reply.
package engine

import (
	"context"
	"regexp"
	"strings"

	"farmtech-assist/internal/chat/catalog"
	"farmtech-assist/internal/chat/classifier"
	"farmtech-assist/internal/chat/intent"
	"farmtech-assist/internal/chat/model"
	"farmtech-assist/internal/common/logger"
)

// Engine wires the matcher, catalog, action executor and the optional
// classifier into the resolution chain.
type Engine struct {
	matcher    *intent.Matcher
	catalog    *catalog.Catalog
	executor   ActionExecutor
	classifier classifier.Classifier
	log        logger.Logger
}

// ActionExecutor dispatches a confirmed action and renders the outcome.
type ActionExecutor interface {
	Execute(ctx context.Context, kind model.ActionKind, lang model.Language, userID int64, targetID string) model.Reply
}

// New builds an Engine. clf may be nil, in which case generic intent
// detection uses the rule matcher alone.
func New(matcher *intent.Matcher, cat *catalog.Catalog, executor ActionExecutor, clf classifier.Classifier, log logger.Logger) *Engine {
	return &Engine{
		matcher:    matcher,
		catalog:    cat,
		executor:   executor,
		classifier: clf,
		log:        log,
	}
}

var (
	confirmCancelRe  = regexp.MustCompile(`confirm.*cancel.*#?(\d+)`)
	confirmApproveRe = regexp.MustCompile(`confirm.*approve.*#?(\d+)`)
	confirmRejectRe  = regexp.MustCompile(`confirm.*reject.*#?(\d+)`)

	// Kannada confirmations carry the id anywhere in the message.
	kannadaIDRe = regexp.MustCompile(`#?(\d+)`)

	numberRe = regexp.MustCompile(`\b(\d+)\b`)
)

// Resolve turns a message into a Reply. rec may be nil for anonymous
// sessions; confirmations and personalized intents need a record.
func (e *Engine) Resolve(ctx context.Context, message string, lang model.Language, rec *model.UserRecord) model.Reply {
	lang = lang.Normalize()

	if rec != nil {
		if kind, targetID, ok := detectConfirmation(message); ok {
			return e.executor.Execute(ctx, kind, lang, rec.ID, targetID)
		}

		if personalIntent, ok := e.matcher.DetectPersonalized(message); ok {
			return e.renderPersonalized(personalIntent, lang, rec, message)
		}
	}

	detected := e.detectGeneric(ctx, message)
	text, suggestions := e.catalog.Respond(detected, lang)
	return model.Reply{
		Text:        text,
		Intent:      detected,
		Language:    lang,
		Suggestions: suggestions,
	}
}

// detectConfirmation recognizes the stateless second step of an action:
// an English "confirm <verb> #<id>" phrase, or a Kannada confirmation word
// combined with an action keyword and a digit sequence.
func detectConfirmation(message string) (model.ActionKind, string, bool) {
	lowered := strings.ToLower(message)

	if m := confirmCancelRe.FindStringSubmatch(lowered); m != nil {
		return model.ActionCancelBooking, m[1], true
	}
	if m := confirmApproveRe.FindStringSubmatch(lowered); m != nil {
		return model.ActionApproveRequest, m[1], true
	}
	if m := confirmRejectRe.FindStringSubmatch(lowered); m != nil {
		return model.ActionRejectRequest, m[1], true
	}

	if strings.Contains(message, "ದೃಢೀಕರಿಸಿ") || strings.Contains(message, "ದೃಢೀಕರಣ") {
		if strings.Contains(message, "ರದ್ದು") {
			if m := kannadaIDRe.FindStringSubmatch(message); m != nil {
				return model.ActionCancelBooking, m[1], true
			}
		}
		if strings.Contains(message, "ಅನುಮೋದನೆ") || strings.Contains(message, "ಅನುಮೋದಿಸಿ") {
			if m := kannadaIDRe.FindStringSubmatch(message); m != nil {
				return model.ActionApproveRequest, m[1], true
			}
		}
		if strings.Contains(message, "ತಿರಸ್ಕಾರ") || strings.Contains(message, "ತಿರಸ್ಕರಿಸಿ") {
			if m := kannadaIDRe.FindStringSubmatch(message); m != nil {
				return model.ActionRejectRequest, m[1], true
			}
		}
	}

	return "", "", false
}

// detectGeneric consults the classifier when available and confident enough,
// otherwise the rule matcher. Classifier failures degrade to rules.
func (e *Engine) detectGeneric(ctx context.Context, message string) string {
	if e.classifier != nil {
		predicted, confidence, err := e.classifier.Predict(ctx, message)
		if err != nil {
			e.log.Warn("classifier unavailable, using rule matcher", map[string]interface{}{
				"error": err.Error(),
			})
		} else if confidence > classifier.ConfidenceThreshold {
			return predicted
		}
	}
	return e.matcher.Detect(message)
}

// extractNumber returns the first bare digit sequence in the message.
func extractNumber(message string) (string, bool) {
	m := numberRe.FindStringSubmatch(message)
	if m == nil {
		return "", false
	}
	return m[1], true
}
