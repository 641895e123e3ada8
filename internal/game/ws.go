package game

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true }, // deployed behind a reverse proxy
}

type ClientConn struct {
	ws   *websocket.Conn
	send chan []byte

	closeOnce sync.Once
}

func (c *ClientConn) Close() {
	c.closeOnce.Do(func() {
		close(c.send)
		if c.ws != nil {
			_ = c.ws.Close()
		}
	})
}

// handleWS is the WebSocket entry into a room.
// GET /ws/{roomID}?token=...&passcode=...
func (s *Server) handleWS(w http.ResponseWriter, r *http.Request) {
	roomID, ok := roomIDFromWSPath(r.URL.Path)
	if !ok {
		http.Error(w, "missing or malformed room id", http.StatusBadRequest)
		return
	}

	token := r.URL.Query().Get("token")
	if token == "" {
		if h := r.Header.Get("Authorization"); strings.HasPrefix(h, "Bearer ") {
			token = strings.TrimPrefix(h, "Bearer ")
		}
	}
	if token == "" {
		http.Error(w, "missing token", http.StatusUnauthorized)
		return
	}

	claims, err := s.tokens.Verify(token)
	if err != nil {
		http.Error(w, "invalid token", http.StatusUnauthorized)
		return
	}

	room, found, err := s.rooms.GetOrLoad(r.Context(), roomID)
	if err != nil {
		http.Error(w, "storage error", http.StatusInternalServerError)
		return
	}
	if !found {
		http.Error(w, "room not found", http.StatusNotFound)
		return
	}

	if err := s.rooms.CheckPasscode(room, r.URL.Query().Get("passcode")); err != nil {
		if errors.Is(err, ErrWrongPasscode) {
			http.Error(w, "wrong passcode", http.StatusForbidden)
			return
		}
		http.Error(w, "passcode check failed", http.StatusInternalServerError)
		return
	}

	ws, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		return
	}

	cc := &ClientConn{
		ws:   ws,
		send: make(chan []byte, 64),
	}

	// writer loop
	go func() {
		ticker := time.NewTicker(25 * time.Second)
		defer ticker.Stop()

		for {
			select {
			case msg, ok := <-cc.send:
				if !ok {
					return
				}
				_ = ws.WriteMessage(websocket.TextMessage, msg)
			case <-ticker.C:
				_ = ws.WriteMessage(websocket.PingMessage, []byte{})
			}
		}
	}()

	room.Attach(claims.PlayerID, claims.Name, cc)

	// reader loop
	for {
		_, data, err := ws.ReadMessage()
		if err != nil {
			break
		}

		var env Envelope
		if err := json.Unmarshal(data, &env); err != nil {
			room.SendErrorTo(cc, "bad_json", "invalid json")
			continue
		}

		if err := room.Dispatch(claims.PlayerID, env); err != nil {
			room.SendErrorTo(cc, "rejected", err.Error())
		}
	}

	// disconnect
	room.Detach(cc)
	cc.Close()
	room.BroadcastState()
}
