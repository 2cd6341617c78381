package server

import (
	"encoding/json"
	"math/rand"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"farmtech-assist/internal/chat/action"
	"farmtech-assist/internal/chat/catalog"
	"farmtech-assist/internal/chat/engine"
	"farmtech-assist/internal/chat/intent"
	"farmtech-assist/internal/chat/lang"
	"farmtech-assist/internal/chat/model"
	"farmtech-assist/internal/chat/rules"
	"farmtech-assist/internal/chat/userdata"
	"farmtech-assist/internal/common/logger"
)

func newTestServer(t *testing.T, backendURL string) *Server {
	t.Helper()
	table, err := rules.Load()
	require.NoError(t, err)

	log := logger.NewTestLogger(t)
	exec := action.NewExecutor(backendURL, nil, log)
	eng := engine.New(
		intent.NewMatcher(table),
		catalog.New(table, rand.New(rand.NewSource(1))),
		exec,
		nil,
		log,
	)

	var users *userdata.Client
	if backendURL != "" {
		users = userdata.NewClient(backendURL, nil, log)
	}
	return New(eng, users, lang.NewTranslator(table.Dictionary), nil, log)
}

func postJSON(t *testing.T, router http.Handler, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestHealth(t *testing.T) {
	router := newTestServer(t, "").Router()

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	var body map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "healthy", body["status"])
	assert.Equal(t, "FarmTech AI Chatbot", body["service"])
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))
}

func TestChatValidation(t *testing.T) {
	router := newTestServer(t, "").Router()

	t.Run("missing message", func(t *testing.T) {
		w := postJSON(t, router, "/api/chatbot/chat", `{"language": "en"}`)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("blank message", func(t *testing.T) {
		w := postJSON(t, router, "/api/chatbot/chat", `{"message": "   "}`)
		require.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "Message is required")
	})

	t.Run("invalid JSON", func(t *testing.T) {
		w := postJSON(t, router, "/api/chatbot/chat", `{broken`)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("non-integer userId", func(t *testing.T) {
		w := postJSON(t, router, "/api/chatbot/chat", `{"message": "hi", "context": {"userId": "abc"}}`)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestChatAnonymous(t *testing.T) {
	router := newTestServer(t, "").Router()

	w := postJSON(t, router, "/api/chatbot/chat", `{"message": "hello there", "language": "en"}`)
	require.Equal(t, http.StatusOK, w.Code)

	var reply model.Reply
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &reply))
	assert.Equal(t, "greeting", reply.Intent)
	assert.Equal(t, model.LangEnglish, reply.Language)
	assert.NotEmpty(t, reply.Text)
	assert.NotEmpty(t, reply.Suggestions)
}

func TestChatPersonalized(t *testing.T) {
	backend := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/chatbot-data/user/42", r.URL.Path)
		json.NewEncoder(w).Encode(model.UserRecord{
			ID:   42,
			Name: "Manjunath",
			Role: model.RoleOwner,
			Bookings: []model.Booking{
				{ID: 7, Equipment: model.EquipmentRef{Name: "John Deere 5050D"}, Status: "CONFIRMED", StartDate: "2026-09-01", TotalPrice: 1500},
			},
		})
	}))
	defer backend.Close()

	router := newTestServer(t, backend.URL).Router()

	w := postJSON(t, router, "/api/chatbot/chat", `{"message": "show my bookings", "language": "en", "context": {"userId": 42}}`)
	require.Equal(t, http.StatusOK, w.Code)

	var reply model.Reply
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &reply))
	assert.Equal(t, "my_bookings", reply.Intent)
	assert.Contains(t, reply.Text, "John Deere 5050D")
}

func TestChatDegradesWhenBackendDown(t *testing.T) {
	backend := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer backend.Close()

	router := newTestServer(t, backend.URL).Router()

	w := postJSON(t, router, "/api/chatbot/chat", `{"message": "show my bookings", "language": "en", "context": {"userId": 42}}`)
	require.Equal(t, http.StatusOK, w.Code)

	var reply model.Reply
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &reply))
	assert.NotEqual(t, "my_bookings", reply.Intent)
}

func TestTranslate(t *testing.T) {
	router := newTestServer(t, "").Router()

	t.Run("english to kannada", func(t *testing.T) {
		w := postJSON(t, router, "/api/chatbot/translate", `{"text": "hello tractor", "source_lang": "en", "target_lang": "kn"}`)
		require.Equal(t, http.StatusOK, w.Code)

		var body map[string]string
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		assert.Equal(t, "hello tractor", body["original"])
		assert.Contains(t, body["translated"], "ಹಲೋ")
		assert.Equal(t, "en", body["source_lang"])
		assert.Equal(t, "kn", body["target_lang"])
	})

	t.Run("missing fields", func(t *testing.T) {
		w := postJSON(t, router, "/api/chatbot/translate", `{"text": "hello"}`)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestDetectLanguage(t *testing.T) {
	router := newTestServer(t, "").Router()

	t.Run("kannada", func(t *testing.T) {
		w := postJSON(t, router, "/api/chatbot/detect-language", `{"text": "ನಮಸ್ಕಾರ"}`)
		require.Equal(t, http.StatusOK, w.Code)

		var body map[string]string
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		assert.Equal(t, "kn", body["detected_language"])
		assert.Equal(t, "Kannada", body["language_name"])
	})

	t.Run("english", func(t *testing.T) {
		w := postJSON(t, router, "/api/chatbot/detect-language", `{"text": "hello"}`)
		require.Equal(t, http.StatusOK, w.Code)

		var body map[string]string
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		assert.Equal(t, "en", body["detected_language"])
		assert.Equal(t, "English", body["language_name"])
	})

	t.Run("empty text", func(t *testing.T) {
		w := postJSON(t, router, "/api/chatbot/detect-language", `{"text": ""}`)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}
