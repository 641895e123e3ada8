package httpapi

import (
	"encoding/json"
	"net/http"
	"strings"

	"example.com/longwave/internal/auth"
	"example.com/longwave/internal/state"
)

// GuestHandler issues guest identities: a short player id plus a signed
// token binding it to a display name. No registration, no passwords.
type GuestHandler struct {
	Auth *auth.Service
}

type GuestRequest struct {
	Name string `json:"name"`
}

type GuestResponse struct {
	PlayerID    string `json:"playerId"`
	AccessToken string `json:"accessToken"`
}

func (h *GuestHandler) Create(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method_not_allowed", "use POST")
		return
	}

	var req GuestRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", "invalid json")
		return
	}
	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		writeError(w, http.StatusBadRequest, "bad_request", "name is required")
		return
	}

	playerID := state.RandomFourCharacterString()
	token, err := h.Auth.Sign(playerID, req.Name)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "internal", "failed to sign token")
		return
	}

	writeJSON(w, http.StatusOK, GuestResponse{
		PlayerID:    playerID,
		AccessToken: token,
	})
}
