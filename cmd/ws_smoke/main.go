// Command ws_smoke plays one round against a running server over WebSocket.
package main

import (
	"bytes"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"os"
	"time"

	"github.com/gorilla/websocket"
)

func main() {
	port := os.Getenv("APP_PORT")
	if port == "" {
		port = "8080"
	}
	move := flag.String("move", "rock", "move to play: rock, paper or scissor")
	flag.Parse()

	// use 127.0.0.1 to prefer IPv4 (avoid resolving to [::1])
	base := fmt.Sprintf("127.0.0.1:%s", port)

	res, err := http.Post("http://"+base+"/api/v1/session", "application/json", bytes.NewReader(nil))
	if err != nil {
		log.Fatalf("create session: %v", err)
	}
	var sess struct {
		Token     string `json:"token"`
		SessionID string `json:"session_id"`
	}
	err = json.NewDecoder(res.Body).Decode(&sess)
	res.Body.Close()
	if err != nil || sess.Token == "" {
		log.Fatalf("decode session (status %d): %v", res.StatusCode, err)
	}
	log.Printf("session %s", sess.SessionID)

	wsURL := fmt.Sprintf("ws://%s/ws?token=%s", base, url.QueryEscape(sess.Token))
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	if err != nil {
		log.Fatalf("dial: %v", err)
	}
	defer conn.Close()

	readUntil := func(want string) map[string]any {
		deadline := time.Now().Add(3 * time.Second)
		for time.Now().Before(deadline) {
			_ = conn.SetReadDeadline(deadline)
			_, msg, err := conn.ReadMessage()
			if err != nil {
				log.Fatalf("read: %v", err)
			}
			var obj map[string]any
			_ = json.Unmarshal(msg, &obj)
			if t, _ := obj["type"].(string); t == want {
				log.Printf("got: %s", string(msg))
				return obj
			}
		}
		log.Fatalf("timed out waiting for %q", want)
		return nil
	}

	readUntil("state")

	send := func(v any) {
		if err := conn.WriteJSON(v); err != nil {
			log.Fatalf("write: %v", err)
		}
	}

	send(map[string]string{"type": "pick", "value": *move})
	result := readUntil("result")
	if payload, ok := result["payload"].(map[string]any); ok {
		log.Printf("banner: %v", payload["banner"])
	}

	send(map[string]string{"type": "restart"})
	readUntil("state")

	log.Println("smoke test finished")
}
