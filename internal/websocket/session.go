package websocket

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"codeberg.org/codescribe/server/internal/logger"
	"codeberg.org/codescribe/server/internal/scribe"
	"github.com/gorilla/websocket"
)

const (
	keySourceServer  = "server"
	keySourceSession = "session"
	keySourceNone    = "none"
)

// creates a session around an upgraded connection
func NewSession(conn *websocket.Conn, dispatcher *scribe.Dispatcher, newGen GeneratorFactory) (*Session, error) {
	id, err := GenerateSessionID()
	if err != nil {
		return nil, fmt.Errorf("failed to generate session id: %w", err)
	}

	return &Session{
		ID:         id,
		conn:       conn,
		base:       dispatcher,
		newGen:     newGen,
		dispatcher: dispatcher,
		slots:      make(chan struct{}, maxConcurrentActions),
	}, nil
}

// serves the connection until the peer goes away or ctx is done.
// in-flight actions are cancelled when Serve returns.
func (s *Session) Serve(ctx context.Context) {
	ctx, cancel := context.WithCancel(ctx)

	defer func() {
		cancel()
		s.wg.Wait()
		s.conn.Close()
	}()

	s.conn.SetReadLimit(maxMessageSize)
	_ = s.conn.SetReadDeadline(time.Now().Add(pongWait))
	s.conn.SetPongHandler(func(string) error {
		return s.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	go s.pingLoop(ctx)

	if err := s.send(TypeWelcome, "", WelcomePayload{
		SessionID: s.ID,
		Model:     s.base.Model(),
		AIEnabled: s.base.AIEnabled(),
		Actions:   actionNames(),
	}); err != nil {
		logger.Warn("failed to send welcome", "session_id", s.ID, "error", err)
		return
	}

	for {
		_, data, err := s.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				logger.Warn("websocket read error", "session_id", s.ID, "error", err)
			}
			return
		}

		var msg Message
		if err := json.Unmarshal(data, &msg); err != nil {
			s.sendError("", "invalid_message", "message is not valid JSON")
			continue
		}

		s.handle(ctx, &msg)
	}
}

func (s *Session) handle(ctx context.Context, msg *Message) {
	switch msg.Type {
	case TypeAction:
		var payload ActionPayload
		if err := json.Unmarshal(msg.Payload, &payload); err != nil {
			s.sendError(msg.RequestID, "invalid_payload", "invalid action payload")
			return
		}

		select {
		case s.slots <- struct{}{}:
		default:
			s.sendError(msg.RequestID, "too_many_requests", "too many actions in flight")
			return
		}

		s.wg.Add(1)

		go func() {
			defer func() {
				<-s.slots
				s.wg.Done()
			}()

			s.runAction(ctx, msg.RequestID, payload)
		}()

	case TypeSetKey:
		var payload SetKeyPayload
		if err := json.Unmarshal(msg.Payload, &payload); err != nil {
			s.sendError(msg.RequestID, "invalid_payload", "invalid set_key payload")
			return
		}

		s.setKey(msg.RequestID, payload.APIKey)

	case TypePing:
		_ = s.send(TypePong, msg.RequestID, nil)

	default:
		s.sendError(msg.RequestID, "unknown_type", fmt.Sprintf("unknown message type %q", msg.Type))
	}
}

func (s *Session) runAction(ctx context.Context, requestID string, payload ActionPayload) {
	s.mu.RLock()
	dispatcher := s.dispatcher
	s.mu.RUnlock()

	result, err := dispatcher.Run(ctx, payload.Action, payload.Code)
	if err != nil {
		code := "validation_error"
		if scribe.IsUnknownAction(err) {
			code = "unknown_action"
		}

		s.sendError(requestID, code, err.Error())
		return
	}

	if err := s.send(TypeResult, requestID, ResultPayload{
		Action: strings.ToLower(strings.TrimSpace(payload.Action)),
		Result: result.Text,
		Demo:   result.Demo,
	}); err != nil {
		logger.Debug("failed to deliver result", "session_id", s.ID, "error", err)
	}
}

// the configured credential always wins; a session key only fills in when
// the server runs without one. an empty key clears it.
func (s *Session) setKey(requestID, apiKey string) {
	if s.base.AIEnabled() {
		_ = s.send(TypeKeyStatus, requestID, KeyStatusPayload{AIEnabled: true, Source: keySourceServer})
		return
	}

	apiKey = strings.TrimSpace(apiKey)
	if apiKey == "" {
		s.mu.Lock()
		s.dispatcher = s.base
		s.mu.Unlock()

		_ = s.send(TypeKeyStatus, requestID, KeyStatusPayload{AIEnabled: false, Source: keySourceNone})
		return
	}

	if s.newGen == nil {
		s.sendError(requestID, "unsupported", "session credentials are not supported")
		return
	}

	gen, err := s.newGen(apiKey)
	if err != nil {
		s.sendError(requestID, "invalid_key", err.Error())
		return
	}

	s.mu.Lock()
	s.dispatcher = s.base.WithGenerator(gen)
	s.mu.Unlock()

	_ = s.send(TypeKeyStatus, requestID, KeyStatusPayload{AIEnabled: true, Source: keySourceSession})
}

func (s *Session) pingLoop(ctx context.Context) {
	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			// unblocks the read loop on shutdown
			_ = s.conn.WriteControl(websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseNormalClosure, "session closed"),
				time.Now().Add(writeWait))
			s.conn.Close()
			return
		case <-ticker.C:
			s.writeMu.Lock()
			_ = s.conn.SetWriteDeadline(time.Now().Add(writeWait))
			err := s.conn.WriteMessage(websocket.PingMessage, nil)
			s.writeMu.Unlock()

			if err != nil {
				return
			}
		}
	}
}

func (s *Session) send(msgType, requestID string, payload any) error {
	msg := Message{
		Type:      msgType,
		RequestID: requestID,
		SessionID: s.ID,
		Timestamp: time.Now(),
	}

	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return fmt.Errorf("failed to marshal payload: %w", err)
		}
		msg.Payload = data
	}

	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	_ = s.conn.SetWriteDeadline(time.Now().Add(writeWait))

	return s.conn.WriteJSON(msg)
}

func (s *Session) sendError(requestID, code, message string) {
	if err := s.send(TypeError, requestID, ErrorPayload{Error: code, Message: message}); err != nil {
		logger.Debug("failed to deliver error", "session_id", s.ID, "error", err)
	}
}

func actionNames() []string {
	actions := scribe.Actions()
	names := make([]string, len(actions))

	for i, a := range actions {
		names[i] = string(a)
	}

	return names
}
