package httpapi

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"example.com/longwave/internal/game"
	"example.com/longwave/internal/state"
	"example.com/longwave/internal/store"
)

// RoomHandler creates rooms and serves their finished-game history.
type RoomHandler struct {
	Rooms   *game.RoomService
	Results *store.ResultsStore
}

type CreateRoomRequest struct {
	Language string `json:"language"`
	Passcode string `json:"passcode"`
}

type CreateRoomResponse struct {
	RoomID string `json:"roomId"`
}

// Create handles POST /api/rooms. Requires a guest token; the caller
// becomes the room's game master.
func (h *RoomHandler) Create(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method_not_allowed", "use POST")
		return
	}

	claims, ok := ClaimsFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized", "missing auth context")
		return
	}

	var req CreateRoomRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", "invalid json")
		return
	}

	room, err := h.Rooms.Create(r.Context(), claims.PlayerID, req.Language, req.Passcode)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "internal", "failed to create room")
		return
	}

	writeJSON(w, http.StatusOK, CreateRoomResponse{RoomID: room.ID()})
}

// History handles GET /api/rooms/{roomId}/results.
func (h *RoomHandler) History(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method_not_allowed", "use GET")
		return
	}

	roomID, ok := roomIDFromResultsPath(r.URL.Path)
	if !ok {
		writeError(w, http.StatusBadRequest, "bad_request", "missing or malformed room id")
		return
	}

	results, err := h.Results.ListByRoom(r.Context(), roomID, 20)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "internal", "failed to load results")
		return
	}
	left, right, err := h.teamWins(r.Context(), roomID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "internal", "failed to load results")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"results":       results,
		"leftTeamWins":  left,
		"rightTeamWins": right,
	})
}

func (h *RoomHandler) teamWins(ctx context.Context, roomID string) (int, int, error) {
	return h.Results.TeamWins(ctx, roomID)
}

// roomIDFromResultsPath extracts the room id from
// /api/rooms/{roomId}/results.
func roomIDFromResultsPath(path string) (string, bool) {
	rest, ok := strings.CutPrefix(path, "/api/rooms/")
	if !ok {
		return "", false
	}
	roomID, ok := strings.CutSuffix(rest, "/results")
	if !ok || strings.Contains(roomID, "/") {
		return "", false
	}
	if !state.ValidID(roomID) {
		return "", false
	}
	return roomID, true
}
