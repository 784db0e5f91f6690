package main

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"os/signal"
	"time"

	"github.com/gorilla/websocket"
)

type Message struct {
	Type      string          `json:"type"`
	RequestID string          `json:"request_id,omitempty"`
	SessionID string          `json:"session_id,omitempty"`
	Timestamp time.Time       `json:"timestamp"`
	Payload   json.RawMessage `json:"payload,omitempty"`
}

func main() {
	if len(os.Args) < 3 {
		fmt.Println("Usage: go run test_websocket.go <action> <file> [api_key]")
		fmt.Println("Example: go run test_websocket.go explain main.py")
		os.Exit(1)
	}

	action := os.Args[1]

	code, err := os.ReadFile(os.Args[2])
	if err != nil {
		log.Fatal("read:", err)
	}

	endpoint := os.Getenv("CODESCRIBE_WS_ENDPOINT")
	if endpoint == "" {
		endpoint = "ws://localhost:8080/api/v1/ws"
	}

	fmt.Printf("Connecting to %s\n", endpoint)

	c, _, err := websocket.DefaultDialer.Dial(endpoint, nil)
	if err != nil {
		log.Fatal("dial:", err)
	}
	defer c.Close()

	fmt.Println("✅ Connected to WebSocket!")

	// handle interrupt
	interrupt := make(chan os.Signal, 1)
	signal.Notify(interrupt, os.Interrupt)

	done := make(chan struct{})

	// read messages until the result or an error arrives
	go func() {
		defer close(done)
		for {
			var msg Message
			if err := c.ReadJSON(&msg); err != nil {
				log.Println("read:", err)
				return
			}

			fmt.Printf("📨 Received %s: %s\n", msg.Type, msg.Payload)

			if msg.RequestID == "action-1" && (msg.Type == "result" || msg.Type == "error") {
				return
			}
		}
	}()

	if len(os.Args) > 3 {
		send(c, "set_key", "key-1", map[string]string{"api_key": os.Args[3]})
	}

	send(c, "action", "action-1", map[string]string{"action": action, "code": string(code)})

	select {
	case <-done:
	case <-interrupt:
		fmt.Println("interrupted")
	case <-time.After(90 * time.Second):
		fmt.Println("timed out waiting for result")
	}

	// close cleanly
	err = c.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
	if err != nil {
		log.Println("write close:", err)
	}
}

func send(c *websocket.Conn, msgType, requestID string, payload any) {
	data, err := json.Marshal(payload)
	if err != nil {
		log.Fatal("marshal:", err)
	}

	msg := Message{Type: msgType, RequestID: requestID, Timestamp: time.Now(), Payload: data}
	if err := c.WriteJSON(msg); err != nil {
		log.Fatal("write:", err)
	}

	fmt.Printf("📤 Sent %s\n", msgType)
}
