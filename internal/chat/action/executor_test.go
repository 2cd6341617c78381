package action

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"farmtech-assist/internal/chat/model"
	"farmtech-assist/internal/common/logger"
)

func TestExecuteSuccess(t *testing.T) {
	var got map[string]interface{}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/api/chatbot-data/action", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
	}))
	defer server.Close()

	e := NewExecutor(server.URL, server.Client(), logger.NewTestLogger(t))
	reply := e.Execute(context.Background(), model.ActionCancelBooking, model.LangEnglish, 42, "7")

	assert.Equal(t, "cancel_booking", got["action"])
	assert.Equal(t, float64(42), got["userId"])
	assert.Equal(t, "7", got["bookingId"])

	assert.Equal(t, "cancel_booking_confirmed", reply.Intent)
	assert.Contains(t, reply.Text, "✅ Booking #7 has been cancelled successfully!")
	assert.Equal(t, []string{"My bookings", "Find equipment", "Help"}, reply.Suggestions)
}

func TestExecuteTargetFieldPerAction(t *testing.T) {
	tests := []struct {
		kind  model.ActionKind
		field string
	}{
		{model.ActionCancelBooking, "bookingId"},
		{model.ActionApproveRequest, "candidateId"},
		{model.ActionRejectRequest, "candidateId"},
	}
	for _, tt := range tests {
		t.Run(string(tt.kind), func(t *testing.T) {
			var got map[string]interface{}
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
				w.WriteHeader(http.StatusOK)
			}))
			defer server.Close()

			e := NewExecutor(server.URL, server.Client(), logger.NewNoOpLogger())
			e.Execute(context.Background(), tt.kind, model.LangEnglish, 1, "33")
			assert.Equal(t, "33", got[tt.field])
		})
	}
}

func TestExecuteBackendRejection(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(map[string]string{"error": "booking already completed"})
	}))
	defer server.Close()

	e := NewExecutor(server.URL, server.Client(), logger.NewNoOpLogger())
	reply := e.Execute(context.Background(), model.ActionCancelBooking, model.LangEnglish, 42, "7")

	assert.Equal(t, "cancel_booking_failed", reply.Intent)
	assert.Contains(t, reply.Text, "❌ Failed to cancel booking: booking already completed")
	assert.Equal(t, []string{"My bookings", "Help"}, reply.Suggestions)
}

func TestExecuteRejectionWithoutErrorBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	e := NewExecutor(server.URL, server.Client(), logger.NewNoOpLogger())
	reply := e.Execute(context.Background(), model.ActionApproveRequest, model.LangEnglish, 42, "9")

	assert.Equal(t, "approve_request_failed", reply.Intent)
	assert.Contains(t, reply.Text, "Unknown error")
}

func TestExecuteTransportFailure(t *testing.T) {
	e := NewExecutor("http://127.0.0.1:1", &http.Client{Timeout: 200 * time.Millisecond}, logger.NewNoOpLogger())
	reply := e.Execute(context.Background(), model.ActionRejectRequest, model.LangEnglish, 42, "5")

	assert.Equal(t, "reject_request_error", reply.Intent)
	assert.Contains(t, reply.Text, "❌ Error rejecting request:")
	assert.Contains(t, reply.Text, "Please try again later.")
}

type stubRecorder struct {
	actions  []string
	outcomes []string
}

func (s *stubRecorder) RecordActionDispatched(ctx context.Context, action, outcome string) {
	s.actions = append(s.actions, action)
	s.outcomes = append(s.outcomes, outcome)
}

func TestExecuteReportsOutcomes(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusOK)
		}))
		defer server.Close()

		rec := &stubRecorder{}
		e := NewExecutor(server.URL, server.Client(), logger.NewNoOpLogger(), WithRecorder(rec))
		e.Execute(context.Background(), model.ActionCancelBooking, model.LangEnglish, 42, "7")

		require.Len(t, rec.outcomes, 1)
		assert.Equal(t, "cancel_booking", rec.actions[0])
		assert.Equal(t, string(OutcomeSuccess), rec.outcomes[0])
	})

	t.Run("transport failure", func(t *testing.T) {
		rec := &stubRecorder{}
		e := NewExecutor("http://127.0.0.1:1", &http.Client{Timeout: 200 * time.Millisecond}, logger.NewNoOpLogger(), WithRecorder(rec))
		e.Execute(context.Background(), model.ActionApproveRequest, model.LangEnglish, 42, "5")

		require.Len(t, rec.outcomes, 1)
		assert.Equal(t, "approve_request", rec.actions[0])
		assert.Equal(t, string(OutcomeTransport), rec.outcomes[0])
	})
}

func TestExecuteKannadaReplies(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	e := NewExecutor(server.URL, server.Client(), logger.NewNoOpLogger())
	reply := e.Execute(context.Background(), model.ActionApproveRequest, model.LangKannada, 42, "9")

	assert.Equal(t, "approve_request_confirmed", reply.Intent)
	assert.Contains(t, reply.Text, "✅ ವಿನಂತಿ #9 ಯಶಸ್ವಿಯಾಗಿ ಅನುಮೋದಿಸಲಾಗಿದೆ!")
	assert.Equal(t, []string{"ಬಾಕಿ ವಿನಂತಿಗಳು", "ನನ್ನ ಉಪಕರಣ", "ಸಹಾಯ"}, reply.Suggestions)
	assert.Equal(t, model.LangKannada, reply.Language)
}
