package websocket

import (
	"encoding/json"
	"sync"
	"time"

	"codeberg.org/codescribe/server/internal/llm"
	"codeberg.org/codescribe/server/internal/scribe"
	"github.com/gorilla/websocket"
)

// message type constants for websocket communication
const (
	// is sent to a connecting client with session info
	TypeWelcome = "welcome"

	// is sent by clients to store a credential for this connection only
	TypeSetKey = "set_key"

	// is sent by server after set_key is processed
	TypeKeyStatus = "key_status"

	// is sent by clients to run an action
	TypeAction = "action"

	// is sent by server with the action output
	TypeResult = "result"

	// is sent when a request cannot be processed
	TypeError = "error"

	// is sent by clients to keep the connection alive
	TypePing = "ping"

	// is sent by server in response to ping
	TypePong = "pong"
)

// connection constants
const (
	// time allowed to write a message to the peer
	writeWait = 10 * time.Second

	// time allowed to read the next pong message from the peer
	pongWait = 60 * time.Second

	// send pings to peer with this period (must be less than pongWait)
	pingPeriod = (pongWait * 9) / 10

	// maximum message size allowed from peer
	maxMessageSize = 512 * 1024 // 512 KB

	// in-flight actions per connection
	maxConcurrentActions = 4
)

// envelope for every websocket message
type Message struct {
	Type      string          `json:"type"`
	RequestID string          `json:"request_id,omitempty"` // echoed back on the reply
	SessionID string          `json:"session_id,omitempty"`
	Timestamp time.Time       `json:"timestamp"`
	Payload   json.RawMessage `json:"payload,omitempty"`
}

type WelcomePayload struct {
	SessionID string   `json:"session_id"`
	Model     string   `json:"model"`
	AIEnabled bool     `json:"ai_enabled"`
	Actions   []string `json:"actions"`
}

type SetKeyPayload struct {
	APIKey string `json:"api_key"`
}

type KeyStatusPayload struct {
	AIEnabled bool   `json:"ai_enabled"`
	Source    string `json:"source"` // "server", "session" or "none"
}

type ActionPayload struct {
	Action string `json:"action"`
	Code   string `json:"code"`
}

type ResultPayload struct {
	Action string `json:"action"`
	Result string `json:"result"`
	Demo   bool   `json:"demo"`
}

type ErrorPayload struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

// builds a generator from a credential entered during the session
type GeneratorFactory func(apiKey string) (llm.TextGenerator, error)

// one interactive connection. the session credential lives only as long as the connection.
type Session struct {
	ID string

	conn       *websocket.Conn
	base       *scribe.Dispatcher
	newGen     GeneratorFactory
	writeMu    sync.Mutex
	mu         sync.RWMutex
	dispatcher *scribe.Dispatcher // base, or base with the session generator
	slots      chan struct{}
	wg         sync.WaitGroup
}
