package analyze

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	apierrors "codeberg.org/codescribe/server/internal/errors"
	"codeberg.org/codescribe/server/internal/llm"
	"codeberg.org/codescribe/server/internal/scribe"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubGenerator struct {
	text string
	err  error
}

func (s *stubGenerator) Complete(_ context.Context, _ llm.CompletionRequest) (*llm.CompletionResponse, error) {
	if s.err != nil {
		return nil, s.err
	}

	return &llm.CompletionResponse{Text: s.text}, nil
}

func (s *stubGenerator) Model() string          { return "stub-model" }
func (s *stubGenerator) Provider() llm.Provider { return llm.ProviderOpenAI }

func newRouter(gen llm.TextGenerator) *gin.Engine {
	gin.SetMode(gin.TestMode)

	router := gin.New()
	RegisterRoutes(router, scribe.New(scribe.Config{Generator: gen}))

	return router
}

func post(t *testing.T, router *gin.Engine, body string) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(http.MethodPost, "/analyze", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	return w
}

func TestHandler_Success(t *testing.T) {
	router := newRouter(&stubGenerator{text: "  it prints hi  "})

	w := post(t, router, `{"action":"explain","code":"print('hi')"}`)

	require.Equal(t, http.StatusOK, w.Code)

	var resp Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.OK)
	assert.False(t, resp.Demo)
	assert.Equal(t, "it prints hi", resp.Result)
}

func TestHandler_DemoMode(t *testing.T) {
	router := newRouter(nil)

	w := post(t, router, `{"action":"explain","code":"print('hi')"}`)

	require.Equal(t, http.StatusOK, w.Code)

	var resp Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.OK)
	assert.True(t, resp.Demo)
	assert.True(t, strings.HasPrefix(resp.Result, "### (Demo Output)"))
}

func TestHandler_BackendFailureStill200(t *testing.T) {
	router := newRouter(&stubGenerator{err: errors.New("401 invalid key")})

	w := post(t, router, `{"action":"audit","code":"x = 1"}`)

	require.Equal(t, http.StatusOK, w.Code)

	var resp Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.OK)
	assert.True(t, strings.HasPrefix(resp.Result, "(LLM error: openai: 401 invalid key)"))
}

func TestHandler_BadRequests(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		message string
		code    string
	}{
		{"blank code", `{"action":"audit","code":""}`, msgNoCode, apierrors.CodeValidationError},
		{"whitespace code", `{"action":"tests","code":"  \n"}`, msgNoCode, apierrors.CodeValidationError},
		{"missing code", `{"action":"docs"}`, msgNoCode, apierrors.CodeValidationError},
		{"unknown action", `{"action":"bogus","code":"x=1"}`, msgUnknownAction, apierrors.CodeUnknownAction},
		{"unknown action blank code", `{"action":"bogus","code":""}`, msgUnknownAction, apierrors.CodeUnknownAction},
		{"malformed json", `{"action":`, "invalid request body", apierrors.CodeBadRequest},
		{"empty body", ``, "invalid request body", apierrors.CodeBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := post(t, newRouter(nil), tt.body)

			require.Equal(t, http.StatusBadRequest, w.Code)

			var resp apierrors.ErrorResponse
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
			assert.False(t, resp.OK)
			assert.Equal(t, tt.message, resp.Error)
			assert.Equal(t, tt.code, resp.Code)
		})
	}
}

func TestHandler_ReadmeBlankCode(t *testing.T) {
	w := post(t, newRouter(nil), `{"action":"README","code":""}`)

	require.Equal(t, http.StatusOK, w.Code)

	var resp Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Contains(t, resp.Result, "(Describe your project here)")
}

func TestRegisterRoutes_Middleware(t *testing.T) {
	gin.SetMode(gin.TestMode)

	router := gin.New()
	RegisterRoutes(router, scribe.New(scribe.Config{}), func(c *gin.Context) {
		apierrors.TooManyRequests(c, "")
	})

	w := post(t, router, `{"action":"explain","code":"x"}`)

	assert.Equal(t, http.StatusTooManyRequests, w.Code)
}
