package userdata

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"farmtech-assist/internal/chat/model"
	"farmtech-assist/internal/common/config"
	"farmtech-assist/internal/common/database"
	"farmtech-assist/internal/common/logger"
)

func newBackendStub(t *testing.T, hits *int) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if hits != nil {
			*hits++
		}
		require.Equal(t, "/api/chatbot-data/user/42", r.URL.Path)
		json.NewEncoder(w).Encode(model.UserRecord{
			ID:   42,
			Name: "Manjunath",
			Role: model.RoleOwner,
			Bookings: []model.Booking{
				{ID: 7, Equipment: model.EquipmentRef{Name: "John Deere 5050D", Type: "TRACTOR"}, Status: "CONFIRMED"},
			},
		})
	}))
}

func TestFetch(t *testing.T) {
	server := newBackendStub(t, nil)
	defer server.Close()

	c := NewClient(server.URL, server.Client(), logger.NewTestLogger(t))
	rec, err := c.Fetch(context.Background(), 42)
	require.NoError(t, err)
	assert.Equal(t, int64(42), rec.ID)
	assert.Equal(t, "Manjunath", rec.Name)
	assert.Equal(t, model.RoleOwner, rec.Role)
	require.Len(t, rec.Bookings, 1)
	assert.Equal(t, "John Deere 5050D", rec.Bookings[0].Equipment.Name)
}

func TestFetchBackendErrors(t *testing.T) {
	t.Run("non-200 status", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNotFound)
		}))
		defer server.Close()

		c := NewClient(server.URL, server.Client(), logger.NewNoOpLogger())
		_, err := c.Fetch(context.Background(), 42)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "USER_FETCH_FAILED")
	})

	t.Run("malformed body", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte("not json"))
		}))
		defer server.Close()

		c := NewClient(server.URL, server.Client(), logger.NewNoOpLogger())
		_, err := c.Fetch(context.Background(), 42)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "USER_DATA_MALFORMED")
	})

	t.Run("unreachable backend", func(t *testing.T) {
		c := NewClient("http://127.0.0.1:1", &http.Client{Timeout: 200 * time.Millisecond}, logger.NewNoOpLogger())
		_, err := c.Fetch(context.Background(), 42)
		require.Error(t, err)
	})
}

func TestFetchWithCache(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb, err := database.NewRedis(config.RedisConfig{Address: mr.Addr()})
	require.NoError(t, err)
	defer rdb.Close()

	hits := 0
	server := newBackendStub(t, &hits)
	defer server.Close()

	c := NewClient(server.URL, server.Client(), logger.NewNoOpLogger(), WithCache(rdb, time.Minute))

	rec, err := c.Fetch(context.Background(), 42)
	require.NoError(t, err)
	assert.Equal(t, "Manjunath", rec.Name)
	assert.Equal(t, 1, hits)

	// Second fetch is served from the cache.
	rec, err = c.Fetch(context.Background(), 42)
	require.NoError(t, err)
	assert.Equal(t, "Manjunath", rec.Name)
	assert.Equal(t, 1, hits)

	// Expiry forces a refetch.
	mr.FastForward(2 * time.Minute)
	_, err = c.Fetch(context.Background(), 42)
	require.NoError(t, err)
	assert.Equal(t, 2, hits)
}

func TestFetchCorruptCacheEntryFallsThrough(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb, err := database.NewRedis(config.RedisConfig{Address: mr.Addr()})
	require.NoError(t, err)
	defer rdb.Close()

	require.NoError(t, mr.Set("chatbot:user:42", "{broken"))

	hits := 0
	server := newBackendStub(t, &hits)
	defer server.Close()

	c := NewClient(server.URL, server.Client(), logger.NewNoOpLogger(), WithCache(rdb, time.Minute))
	rec, err := c.Fetch(context.Background(), 42)
	require.NoError(t, err)
	assert.Equal(t, "Manjunath", rec.Name)
	assert.Equal(t, 1, hits)
}
