package game

import (
	"net/http"
	"strings"

	"example.com/longwave/internal/auth"
	"example.com/longwave/internal/state"
)

// TokenVerifier checks a guest token and returns its claims.
type TokenVerifier interface {
	Verify(token string) (*auth.Claims, error)
}

type Server struct {
	rooms  *RoomService
	tokens TokenVerifier
}

func NewServer(rooms *RoomService, tokens TokenVerifier) *Server {
	return &Server{rooms: rooms, tokens: tokens}
}

func (s *Server) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("/ws/", s.handleWS)
}

// roomIDFromWSPath extracts the room id from /ws/{roomID}; ids are exactly
// four characters from the room-code alphabet.
func roomIDFromWSPath(path string) (string, bool) {
	rest, ok := strings.CutPrefix(path, "/ws/")
	if !ok || rest == "" || strings.Contains(rest, "/") {
		return "", false
	}
	if !state.ValidID(rest) {
		return "", false
	}
	return rest, true
}
