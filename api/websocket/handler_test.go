package websocket

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"codeberg.org/codescribe/server/internal/config"
	"codeberg.org/codescribe/server/internal/scribe"
	ws "codeberg.org/codescribe/server/internal/websocket"
	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupServer(t *testing.T, cfg *config.Config) string {
	t.Helper()
	gin.SetMode(gin.TestMode)

	router := gin.New()
	RegisterRoutes(context.Background(), router.Group("/api/v1"), scribe.New(scribe.Config{}), cfg)

	srv := httptest.NewServer(router)
	t.Cleanup(srv.Close)

	return "ws" + strings.TrimPrefix(srv.URL, "http") + "/api/v1/ws"
}

func TestSessionHandler_Welcome(t *testing.T) {
	url := setupServer(t, &config.Config{Provider: config.ProviderOpenAI, AllowedOrigins: []string{"*"}})

	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	defer conn.Close()

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(5*time.Second)))

	var msg ws.Message
	require.NoError(t, conn.ReadJSON(&msg))

	assert.Equal(t, ws.TypeWelcome, msg.Type)
	assert.NotEmpty(t, msg.SessionID)
}

func TestSessionHandler_RejectsOrigin(t *testing.T) {
	url := setupServer(t, &config.Config{AllowedOrigins: []string{"http://app.test"}})

	header := http.Header{}
	header.Set("Origin", "http://evil.test")

	_, resp, err := websocket.DefaultDialer.Dial(url, header)
	require.Error(t, err)
	require.NotNil(t, resp)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}

func TestSessionHandler_PlainHTTP(t *testing.T) {
	gin.SetMode(gin.TestMode)

	router := gin.New()
	RegisterRoutes(context.Background(), router.Group("/api/v1"), scribe.New(scribe.Config{}), &config.Config{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/ws", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}
