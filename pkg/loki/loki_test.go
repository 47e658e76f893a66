package loki

import (
	"compress/gzip"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type MockLogger struct{}

func (m *MockLogger) Error(msg string, args ...any) {
}

func Test_ConfigValidation(t *testing.T) {
	cfg := Config{}
	_, err := New(context.Background(), cfg, &MockLogger{})
	assert.Error(t, err)

	cfg.Url = "http://localhost:3100/loki/api/v1/push"
	pusher, err := New(context.Background(), cfg, &MockLogger{})
	require.NoError(t, err)
	defer pusher.Stop()

	assert.Equal(t, cfg.Url, pusher.config.Url)
	assert.Equal(t, 500, pusher.config.BatchMaxSize)
	assert.Equal(t, 5*time.Second, pusher.config.BatchMaxWait)
	assert.Equal(t, map[string]string{}, pusher.config.Labels)
}

func Test_Pusher_Stop_ShouldFlushPendingEntries(t *testing.T) {

	var mu sync.Mutex
	var received []pushRequest

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gz, err := gzip.NewReader(r.Body)
		if !assert.NoError(t, err) {
			return
		}
		var req pushRequest
		assert.NoError(t, json.NewDecoder(gz).Decode(&req))

		mu.Lock()
		received = append(received, req)
		mu.Unlock()
		w.WriteHeader(http.StatusNoContent)
	}))
	defer server.Close()

	pusher, err := New(context.Background(), Config{
		Url:          server.URL,
		BatchMaxWait: time.Hour,
		Labels:       map[string]string{"app": "test"},
	}, &MockLogger{})
	require.NoError(t, err)

	assert.True(t, pusher.Push(LogEntry{Level: "info", Message: "first"}))
	assert.True(t, pusher.Push(LogEntry{Level: "error", Message: "second"}))
	pusher.Stop()

	mu.Lock()
	defer mu.Unlock()
	require.Len(t, received, 1)
	require.Len(t, received[0].Streams, 1)
	assert.Equal(t, "test", received[0].Streams[0].Stream["app"])
	assert.Len(t, received[0].Streams[0].Values, 2)

	var entry LogEntry
	require.NoError(t, json.Unmarshal([]byte(received[0].Streams[0].Values[0][1]), &entry))
	assert.Equal(t, "first", entry.Message)
}
