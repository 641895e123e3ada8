package game

import (
	"encoding/json"

	"example.com/longwave/internal/state"
)

// Envelope WS envelope: {"type":"...","payload":{...}}
type Envelope struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

// inbound payloads

type JoinTeamPayload struct {
	Team state.Team `json:"team"`
}

type ChooseGameTypePayload struct {
	GameType state.GameType `json:"gameType"`
}

type SubmitCluePayload struct {
	Clue string `json:"clue"`
}

type MoveGuessPayload struct {
	Guess int `json:"guess"`
}

type CounterGuessPayload struct {
	Direction state.Direction `json:"direction"`
}

type SetTeamNamePayload struct {
	Team state.Team `json:"team"`
	Name string     `json:"name"`
}

type SetPointsToWinPayload struct {
	Points int `json:"points"`
}

type AdjustScorePayload struct {
	Team  state.Team `json:"team"`
	Delta int        `json:"delta"`
}

type KickPlayerPayload struct {
	PlayerID string `json:"playerId"`
}

type SetNamePayload struct {
	Name string `json:"name"`
}

// outbound payloads

// StatePayload carries the full shared document plus per-connection
// context. Card is resolved server-side so every client renders the same
// pair for the current deck position.
type StatePayload struct {
	RoomID string          `json:"roomId"`
	You    string          `json:"you"`
	Card   [2]string       `json:"card"`
	State  state.GameState `json:"state"`
}

type ErrorPayload struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}
