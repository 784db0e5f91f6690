package tui

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"codeberg.org/codescribe/server/internal/scribe"
)

const (
	// used until the server reports its own bound
	apiRequestTimeout = 75 * time.Second

	// added to the server's backend bound so a degraded result still arrives
	apiRequestHeadroom = 15 * time.Second
)

// error strings written by POST /analyze
const (
	apiErrNoCode        = "No code received."
	apiErrUnknownAction = "Unknown action."
)

// creates a client for the server at endpoint, e.g. http://localhost:8080
func NewAPIClient(endpoint string) *APIClient {
	return &APIClient{
		endpoint: strings.TrimRight(endpoint, "/"),
		httpClient: &http.Client{
			Timeout: apiRequestTimeout,
		},
	}
}

// reads AI mode, model and backend timeout from the server's health endpoint
func (c *APIClient) Connect(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.endpoint+"/health", nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to connect: %w", err)
	}
	defer resp.Body.Close() //nolint:errcheck

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("health check failed with status %d", resp.StatusCode)
	}

	var health healthResponse
	if err := json.NewDecoder(resp.Body).Decode(&health); err != nil {
		return fmt.Errorf("failed to parse health response: %w", err)
	}

	c.model = health.Model
	c.aiEnabled = health.AIEnabled

	if health.LLMTimeoutSeconds > 0 {
		c.httpClient.Timeout = time.Duration(health.LLMTimeoutSeconds)*time.Second + apiRequestHeadroom
	}

	return nil
}

// sends an analyze request. input errors come back as the dispatcher's error types.
func (c *APIClient) Run(ctx context.Context, action, code string) (scribe.Result, error) {
	payloadBytes, err := json.Marshal(analyzeRequest{Action: action, Code: code})
	if err != nil {
		return scribe.Result{}, fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint+"/analyze", bytes.NewReader(payloadBytes))
	if err != nil {
		return scribe.Result{}, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return scribe.Result{}, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close() //nolint:errcheck

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return scribe.Result{}, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		var errResp apiErrorResponse
		if err := json.Unmarshal(body, &errResp); err == nil && errResp.Error != "" {
			return scribe.Result{}, mapAPIError(resp.StatusCode, action, errResp.Error)
		}

		return scribe.Result{}, fmt.Errorf("request failed with status %d: %s", resp.StatusCode, string(body))
	}

	var result analyzeResponse
	if err := json.Unmarshal(body, &result); err != nil {
		return scribe.Result{}, fmt.Errorf("failed to parse response: %w", err)
	}

	return scribe.Result{
		OK:    result.OK,
		Text:  result.Result,
		Demo:  result.Demo,
		Model: c.model,
	}, nil
}

func (c *APIClient) AIEnabled() bool {
	return c.aiEnabled
}

func (c *APIClient) Model() string {
	return c.model
}

func (c *APIClient) Name() string {
	return c.endpoint
}

func mapAPIError(status int, action, message string) error {
	if status == http.StatusBadRequest {
		switch message {
		case apiErrUnknownAction:
			return &scribe.UnknownActionError{Action: action}
		case apiErrNoCode:
			return &scribe.ValidationError{Message: "no code received"}
		}
	}

	return fmt.Errorf("server returned %d: %s", status, message)
}

type analyzeRequest struct {
	Action string `json:"action"`
	Code   string `json:"code"`
}

type analyzeResponse struct {
	OK     bool   `json:"ok"`
	Result string `json:"result"`
	Demo   bool   `json:"demo"`
}

type apiErrorResponse struct {
	OK    bool   `json:"ok"`
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
}

type healthResponse struct {
	Status    string `json:"status"`
	AIEnabled bool   `json:"ai_enabled"`
	Model     string `json:"model"`

	LLMTimeoutSeconds int `json:"llm_timeout_seconds"`
}
