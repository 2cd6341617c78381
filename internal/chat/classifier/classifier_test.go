package classifier

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	commonerrors "farmtech-assist/internal/common/errors"
)

func TestHTTPClassifierPredict(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/predict", r.URL.Path)

		var req map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "find me a tractor", req["text"])

		json.NewEncoder(w).Encode(map[string]interface{}{
			"intent":     "equipment_search",
			"confidence": 0.91,
		})
	}))
	defer server.Close()

	c := NewHTTPClassifier(server.URL, 2*time.Second)
	intent, confidence, err := c.Predict(context.Background(), "find me a tractor")
	require.NoError(t, err)
	assert.Equal(t, "equipment_search", intent)
	assert.InDelta(t, 0.91, confidence, 0.001)
}

func TestHTTPClassifierErrors(t *testing.T) {
	t.Run("non-200 status", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		}))
		defer server.Close()

		c := NewHTTPClassifier(server.URL, 2*time.Second)
		_, _, err := c.Predict(context.Background(), "hello")
		require.Error(t, err)

		var stdErr *commonerrors.StandardError
		require.ErrorAs(t, err, &stdErr)
		assert.Equal(t, commonerrors.ErrCodeClassifierUnavailable, stdErr.Code)
		assert.Contains(t, stdErr.Details, "status 500")
		assert.True(t, stdErr.Retryable)
	})

	t.Run("unreachable service", func(t *testing.T) {
		c := NewHTTPClassifier("http://127.0.0.1:1", 200*time.Millisecond)
		_, _, err := c.Predict(context.Background(), "hello")
		require.Error(t, err)

		var stdErr *commonerrors.StandardError
		require.ErrorAs(t, err, &stdErr)
		assert.Equal(t, commonerrors.ErrCodeClassifierUnavailable, stdErr.Code)
	})

	t.Run("slow service times out", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			time.Sleep(500 * time.Millisecond)
		}))
		defer server.Close()

		c := NewHTTPClassifier(server.URL, 100*time.Millisecond)
		_, _, err := c.Predict(context.Background(), "hello")
		require.Error(t, err)

		var stdErr *commonerrors.StandardError
		require.ErrorAs(t, err, &stdErr)
		assert.Equal(t, commonerrors.ErrCodeClassifierTimeout, stdErr.Code)
		assert.True(t, stdErr.Retryable)
	})

	t.Run("cancelled context", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			time.Sleep(200 * time.Millisecond)
		}))
		defer server.Close()

		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		c := NewHTTPClassifier(server.URL, 2*time.Second)
		_, _, err := c.Predict(ctx, "hello")
		require.Error(t, err)
	})
}
