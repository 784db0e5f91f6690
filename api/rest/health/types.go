package health

// health check response
type Response struct {
	Status    string `json:"status"`
	Service   string `json:"service"`
	Version   string `json:"version,omitempty"`
	AIEnabled bool   `json:"ai_enabled"`
	Model     string `json:"model"`

	LLMTimeoutSeconds int `json:"llm_timeout_seconds"`
}

type PingResponse struct {
	Message string `json:"message"`
}
