// Package action dispatches confirmed state-changing actions to the rental
// platform backend and maps every outcome to a user-facing reply.
package action

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"farmtech-assist/internal/chat/model"
	commonerrors "farmtech-assist/internal/common/errors"
	"farmtech-assist/internal/common/logger"
	"farmtech-assist/internal/common/metrics"
)

// DispatchRecorder receives one event per dispatched action outcome.
type DispatchRecorder interface {
	RecordActionDispatched(ctx context.Context, action, outcome string)
}

// Executor performs exactly one POST per confirmed action. It never retries
// and always returns a Reply, folding failures into localized text.
type Executor struct {
	baseURL  string
	client   *http.Client
	log      logger.Logger
	recorder DispatchRecorder
}

// Option configures optional Executor behavior.
type Option func(*Executor)

// WithRecorder reports dispatch outcomes to an additional metrics sink.
func WithRecorder(r DispatchRecorder) Option {
	return func(e *Executor) {
		e.recorder = r
	}
}

func NewExecutor(baseURL string, client *http.Client, log logger.Logger, opts ...Option) *Executor {
	if client == nil {
		client = http.DefaultClient
	}
	e := &Executor{
		baseURL: baseURL,
		client:  client,
		log:     log,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

type errorBody struct {
	Error string `json:"error"`
}

// Execute dispatches the action and renders the outcome as a Reply in the
// given language. It is total: transport failures and backend rejections
// become replies, never errors.
func (e *Executor) Execute(ctx context.Context, kind model.ActionKind, lang model.Language, userID int64, targetID string) model.Reply {
	lang = lang.Normalize()

	payload := map[string]interface{}{
		"action":           string(kind),
		"userId":           userID,
		kind.TargetField(): targetID,
	}
	body, _ := json.Marshal(payload)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, e.baseURL+"/api/chatbot-data/action", bytes.NewReader(body))
	if err != nil {
		return e.render(kind, OutcomeTransport, lang, err.Error())
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := e.client.Do(req)
	if err != nil {
		dispatchErr := commonerrors.NewActionTransportFailedError(string(kind), err)
		e.log.Warn("action dispatch failed", map[string]interface{}{
			"action":    string(kind),
			"userId":    userID,
			"target":    targetID,
			"code":      string(dispatchErr.Code),
			"retryable": dispatchErr.Retryable,
			"error":     dispatchErr.Details,
		})
		e.record(ctx, kind, OutcomeTransport)
		return e.render(kind, OutcomeTransport, lang, err.Error())
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		reason := "Unknown error"
		var eb errorBody
		if decodeErr := json.NewDecoder(resp.Body).Decode(&eb); decodeErr == nil && eb.Error != "" {
			reason = eb.Error
		}
		dispatchErr := commonerrors.NewActionRejectedError(string(kind), reason)
		e.log.Info("action rejected by backend", map[string]interface{}{
			"action":    string(kind),
			"userId":    userID,
			"target":    targetID,
			"status":    resp.StatusCode,
			"code":      string(dispatchErr.Code),
			"retryable": dispatchErr.Retryable,
			"reason":    reason,
		})
		e.record(ctx, kind, OutcomeRejected)
		return e.render(kind, OutcomeRejected, lang, reason)
	}

	e.log.Info("action executed", map[string]interface{}{
		"action": string(kind),
		"userId": userID,
		"target": targetID,
	})
	e.record(ctx, kind, OutcomeSuccess)
	return e.render(kind, OutcomeSuccess, lang, targetID)
}

func (e *Executor) record(ctx context.Context, kind model.ActionKind, outcome Outcome) {
	metrics.ActionDispatchesTotal.WithLabelValues(string(kind), string(outcome)).Inc()
	if e.recorder != nil {
		e.recorder.RecordActionDispatched(ctx, string(kind), string(outcome))
	}
}

func (e *Executor) render(kind model.ActionKind, outcome Outcome, lang model.Language, arg string) model.Reply {
	text := outcomeTexts[kind][outcome][lang]
	return model.Reply{
		Text:        fmt.Sprintf(text.Format, arg),
		Intent:      text.Intent,
		Language:    lang,
		Suggestions: text.Suggestions,
	}
}
