package tui

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"codeberg.org/codescribe/server/internal/scribe"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newAPIServer(t *testing.T) *httptest.Server {
	t.Helper()

	mux := http.NewServeMux()

	mux.HandleFunc("GET /health", func(w http.ResponseWriter, _ *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{
			"status":     "healthy",
			"ai_enabled": true,
			"model":      "gpt-4o-mini",

			"llm_timeout_seconds": 120,
		})
	})

	mux.HandleFunc("POST /analyze", func(w http.ResponseWriter, r *http.Request) {
		var req analyzeRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			w.WriteHeader(http.StatusBadRequest)
			return
		}

		w.Header().Set("Content-Type", "application/json")

		switch {
		case req.Action == "boom":
			w.WriteHeader(http.StatusInternalServerError)
			_, _ = w.Write([]byte("upstream exploded"))
		case req.Action != "explain" && req.Action != "readme":
			w.WriteHeader(http.StatusBadRequest)
			_ = json.NewEncoder(w).Encode(map[string]any{"ok": false, "error": "Unknown action."})
		case req.Code == "" && req.Action != "readme":
			w.WriteHeader(http.StatusBadRequest)
			_ = json.NewEncoder(w).Encode(map[string]any{"ok": false, "error": "No code received."})
		case req.Action == "readme":
			w.WriteHeader(http.StatusTooManyRequests)
			_ = json.NewEncoder(w).Encode(map[string]any{"ok": false, "error": "too many requests"})
		default:
			_ = json.NewEncoder(w).Encode(map[string]any{"ok": true, "result": "explained " + req.Code, "demo": true})
		}
	})

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)

	return srv
}

func TestAPIClient_Connect(t *testing.T) {
	srv := newAPIServer(t)
	client := NewAPIClient(srv.URL + "/")

	require.NoError(t, client.Connect(context.Background()))

	assert.True(t, client.AIEnabled())
	assert.Equal(t, "gpt-4o-mini", client.Model())
	assert.Equal(t, srv.URL, client.Name())
	assert.Equal(t, 135*time.Second, client.httpClient.Timeout)
}

func TestAPIClient_ConnectWithoutTimeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{"status": "healthy", "model": "m"})
	}))
	defer srv.Close()

	client := NewAPIClient(srv.URL)
	require.NoError(t, client.Connect(context.Background()))

	assert.Equal(t, apiRequestTimeout, client.httpClient.Timeout)
}

func TestAPIClient_ConnectFailure(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	defer srv.Close()

	err := NewAPIClient(srv.URL).Connect(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "404")
}

func TestAPIClient_Run(t *testing.T) {
	srv := newAPIServer(t)
	client := NewAPIClient(srv.URL)
	require.NoError(t, client.Connect(context.Background()))

	result, err := client.Run(context.Background(), "explain", "x = 1")
	require.NoError(t, err)

	assert.True(t, result.OK)
	assert.True(t, result.Demo)
	assert.Equal(t, "explained x = 1", result.Text)
	assert.Equal(t, "gpt-4o-mini", result.Model)
}

func TestAPIClient_RunErrors(t *testing.T) {
	srv := newAPIServer(t)
	client := NewAPIClient(srv.URL)

	_, err := client.Run(context.Background(), "translate", "x = 1")
	assert.True(t, scribe.IsUnknownAction(err))

	_, err = client.Run(context.Background(), "explain", "")
	assert.True(t, scribe.IsInputError(err))
	assert.False(t, scribe.IsUnknownAction(err))

	_, err = client.Run(context.Background(), "readme", "")
	require.Error(t, err)
	assert.False(t, scribe.IsInputError(err))
	assert.Contains(t, err.Error(), "429")

	_, err = client.Run(context.Background(), "boom", "x")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "upstream exploded")
}
