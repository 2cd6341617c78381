package server

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"farmtech-assist/internal/chat/lang"
	"farmtech-assist/internal/chat/model"
	commonerrors "farmtech-assist/internal/common/errors"
	"farmtech-assist/internal/common/metrics"
	"farmtech-assist/internal/common/validation"
)

type chatRequest struct {
	Message  string `json:"message"`
	Language string `json:"language"`
	Context  struct {
		UserID   int64  `json:"userId"`
		Location string `json:"location"`
	} `json:"context"`
}

type translateRequest struct {
	Text       string `json:"text"`
	SourceLang string `json:"source_lang"`
	TargetLang string `json:"target_lang"`
}

type detectRequest struct {
	Text string `json:"text"`
}

// decodeValidated reads the body once, checks it against the schema, and
// decodes it into out. It returns false after writing the error response.
func decodeValidated(c *gin.Context, schema map[string]interface{}, out interface{}) bool {
	raw, err := c.GetRawData()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "failed to read request body"})
		return false
	}

	var payload map[string]interface{}
	if err := json.Unmarshal(raw, &payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid JSON body"})
		return false
	}

	violations, err := validation.ValidateAgainstSchema(payload, schema)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return false
	}
	if len(violations) > 0 {
		reqErr := commonerrors.NewRequestInvalidError(strings.Join(violations, "; "))
		c.JSON(http.StatusBadRequest, gin.H{"error": reqErr.Details})
		return false
	}

	if err := json.Unmarshal(raw, out); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request shape"})
		return false
	}
	return true
}

func (s *Server) handleChat(c *gin.Context) {
	var req chatRequest
	if !decodeValidated(c, validation.ChatRequestSchema, &req) {
		return
	}
	if strings.TrimSpace(req.Message) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Message is required"})
		return
	}

	language := model.Language(req.Language).Normalize()
	ctx := c.Request.Context()

	var rec *model.UserRecord
	if req.Context.UserID > 0 && s.users != nil {
		fetched, err := s.users.Fetch(ctx, req.Context.UserID)
		if err != nil {
			// Continue without user data, replies just lose personalization.
			s.log.Warn("user data fetch failed", map[string]interface{}{
				"requestId": c.GetString("requestID"),
				"userId":    req.Context.UserID,
				"error":     err.Error(),
			})
		} else {
			rec = fetched
		}
	}

	start := time.Now()
	reply := s.engine.Resolve(ctx, req.Message, language, rec)
	elapsed := time.Since(start)

	metrics.ChatMessagesTotal.WithLabelValues(reply.Intent, string(reply.Language)).Inc()
	metrics.ResolutionDuration.WithLabelValues(reply.Intent).Observe(elapsed.Seconds())
	if s.obs != nil {
		s.obs.RecordChatResolved(ctx, reply.Intent, string(reply.Language))
		s.obs.RecordResolutionDuration(ctx, elapsed, reply.Intent)
	}

	s.log.Debug("chat resolved", map[string]interface{}{
		"requestId": c.GetString("requestID"),
		"intent":    reply.Intent,
		"language":  string(reply.Language),
	})

	c.JSON(http.StatusOK, reply)
}

func (s *Server) handleTranslate(c *gin.Context) {
	var req translateRequest
	if !decodeValidated(c, validation.TranslateRequestSchema, &req) {
		return
	}
	if req.Text == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Text is required"})
		return
	}

	src := model.Language(req.SourceLang).Normalize()
	dst := model.Language(req.TargetLang).Normalize()
	translated := s.translator.Translate(req.Text, src, dst)

	c.JSON(http.StatusOK, gin.H{
		"original":    req.Text,
		"translated":  translated,
		"source_lang": string(src),
		"target_lang": string(dst),
	})
}

func (s *Server) handleDetectLanguage(c *gin.Context) {
	var req detectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid JSON body"})
		return
	}
	if req.Text == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Text is required"})
		return
	}

	detected := lang.DetectLanguage(req.Text)
	name := "English"
	if detected == model.LangKannada {
		name = "Kannada"
	}

	c.JSON(http.StatusOK, gin.H{
		"text":              req.Text,
		"detected_language": string(detected),
		"language_name":     name,
	})
}
