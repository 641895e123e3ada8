package game

import (
	"encoding/json"
	"errors"
	"sync"
	"time"

	"example.com/longwave/internal/state"
)

// Room hosts one shared GameState document. Every action from any attached
// client is funneled through Dispatch, which computes a patch with the pure
// core, merges it, and re-broadcasts the merged document to everyone. There
// is no other mutable game state.
type Room struct {
	id string
	mu sync.Mutex

	state state.GameState
	cards state.CardLookup

	// conn -> playerID; a player may hold several connections (tabs).
	conns map[*ClientConn]string

	passcodeHash string

	onPersist   func(RoomSnapshot)
	onResult    func(GameResult)
	resultSaved bool
}

// GameResult is the record of a finished match handed to the archive.
type GameResult struct {
	RoomID      string
	GameType    state.GameType
	WinningTeam state.Team
	LeftScore   int
	RightScore  int
	CoopScore   int
	TurnsTaken  int
	FinishedAt  time.Time
}

// ID returns the room's 4-character code.
func (r *Room) ID() string {
	return r.id
}

func NewRoom(id string, g state.GameState, cards state.CardLookup) *Room {
	return &Room{
		id:    id,
		state: g,
		cards: cards,
		conns: make(map[*ClientConn]string),
	}
}

// Attach registers a connection and makes sure the player exists in the
// shared document, then sends everyone the merged state.
func (r *Room) Attach(playerID, name string, cc *ClientConn) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.conns[cc] = playerID
	r.applyLocked(state.EnsurePlayer(playerID, name, r.state))
}

// Detach drops a connection. The player entry stays in the document; only
// an explicit kick removes it.
func (r *Room) Detach(cc *ClientConn) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.conns, cc)
}

// Dispatch routes one inbound envelope. A returned error means the action
// was rejected for this actor; the document is untouched and nobody else
// hears about it.
func (r *Room) Dispatch(playerID string, env Envelope) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	g := r.state
	var (
		p   state.Patch
		err error
	)

	switch env.Type {
	case "join_team":
		var in JoinTeamPayload
		if err := json.Unmarshal(env.Payload, &in); err != nil {
			return errBadPayload
		}
		p, err = state.JoinTeam(playerID, in.Team, g)

	case "choose_game_type":
		var in ChooseGameTypePayload
		if err := json.Unmarshal(env.Payload, &in); err != nil {
			return errBadPayload
		}
		p, err = state.ChooseGameType(playerID, in.GameType, g, r.cards)

	case "start_team_game":
		p, err = state.NewTeamGame(playerID, g, r.cards)

	case "submit_clue":
		var in SubmitCluePayload
		if err := json.Unmarshal(env.Payload, &in); err != nil {
			return errBadPayload
		}
		p, err = state.SubmitClue(playerID, in.Clue, g)

	case "move_guess":
		var in MoveGuessPayload
		if err := json.Unmarshal(env.Payload, &in); err != nil {
			return errBadPayload
		}
		p, err = state.MoveGuess(playerID, in.Guess, g)

	case "confirm_guess":
		p, err = state.ConfirmGuess(playerID, g)

	case "counter_guess":
		var in CounterGuessPayload
		if err := json.Unmarshal(env.Payload, &in); err != nil {
			return errBadPayload
		}
		p, err = state.ScoreTeamRound(playerID, in.Direction, g)

	case "next_round":
		p, err = state.NewRound(playerID, g, r.cards)

	case "set_team_name":
		var in SetTeamNamePayload
		if err := json.Unmarshal(env.Payload, &in); err != nil {
			return errBadPayload
		}
		p, err = state.SetTeamName(playerID, in.Team, in.Name, g)

	case "set_points_to_win":
		var in SetPointsToWinPayload
		if err := json.Unmarshal(env.Payload, &in); err != nil {
			return errBadPayload
		}
		p, err = state.SetPointsToWin(playerID, in.Points, g)

	case "adjust_score":
		var in AdjustScorePayload
		if err := json.Unmarshal(env.Payload, &in); err != nil {
			return errBadPayload
		}
		p, err = state.AdjustScore(playerID, in.Team, in.Delta, g)

	case "skip_clue_giver":
		p, err = state.SkipClueGiver(playerID, g)

	case "redraw_card":
		p, err = state.RedrawCard(playerID, g)

	case "kick_player":
		var in KickPlayerPayload
		if err := json.Unmarshal(env.Payload, &in); err != nil {
			return errBadPayload
		}
		p, err = state.KickPlayer(playerID, in.PlayerID, g)

	case "reset_game":
		p, err = state.ResetGame(playerID, g)

	case "set_name":
		var in SetNamePayload
		if err := json.Unmarshal(env.Payload, &in); err != nil {
			return errBadPayload
		}
		p, err = state.SetPlayerName(playerID, in.Name, g)

	default:
		return errors.New("unknown message type")
	}

	if err != nil {
		return err
	}
	r.applyLocked(p)
	return nil
}

var errBadPayload = errors.New("invalid payload")

func (r *Room) applyLocked(p state.Patch) {
	pre := r.state
	r.state = p.Apply(pre)

	r.noteResultLocked(pre)
	r.broadcastStateLocked()
	r.persistLocked()
}

// noteResultLocked archives a match exactly once when it crosses into a
// finished state; a reset (or any transition back out) re-arms it.
func (r *Room) noteResultLocked(pre state.GameState) {
	if !matchFinished(r.state) {
		r.resultSaved = false
		return
	}
	if r.resultSaved || matchFinished(pre) || r.onResult == nil {
		return
	}
	r.resultSaved = true

	winner, _ := state.Winner(r.state)
	r.onResult(GameResult{
		RoomID:      r.id,
		GameType:    r.state.GameType,
		WinningTeam: winner,
		LeftScore:   r.state.LeftScore,
		RightScore:  r.state.RightScore,
		CoopScore:   r.state.CoopScore,
		TurnsTaken:  r.state.TurnsTaken,
		FinishedAt:  time.Now(),
	})
}

func matchFinished(g state.GameState) bool {
	if _, ok := state.Winner(g); ok {
		return true
	}
	return state.CoopFinished(g) && g.RoundPhase == state.PhaseViewScore
}

// BroadcastState resends the current document to every connection.
func (r *Room) BroadcastState() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.broadcastStateLocked()
}

// SendStateTo sends the current document to a single connection.
func (r *Room) SendStateTo(cc *ClientConn) {
	r.mu.Lock()
	defer r.mu.Unlock()

	playerID, ok := r.conns[cc]
	if !ok {
		return
	}
	r.sendLocked(cc, Envelope{Type: "state", Payload: mustJSON(r.statePayloadLocked(playerID))})
}

// SendErrorTo reports a rejected action to the offending client only.
func (r *Room) SendErrorTo(cc *ClientConn, code, message string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sendLocked(cc, Envelope{
		Type:    "error",
		Payload: mustJSON(ErrorPayload{Code: code, Message: message}),
	})
}

func (r *Room) broadcastStateLocked() {
	for cc, playerID := range r.conns {
		r.sendLocked(cc, Envelope{Type: "state", Payload: mustJSON(r.statePayloadLocked(playerID))})
	}
}

func (r *Room) statePayloadLocked(playerID string) StatePayload {
	return StatePayload{
		RoomID: r.id,
		You:    playerID,
		Card:   r.cards(r.state.DeckSeed, r.state.DeckIndex, r.state.DeckLanguage),
		State:  r.state,
	}
}

func (r *Room) sendLocked(cc *ClientConn, env Envelope) {
	if cc == nil {
		return
	}
	b, _ := json.Marshal(env)
	select {
	case cc.send <- b:
	default:
		// slow reader: drop the frame, the next broadcast supersedes it
	}
}

func (r *Room) persistLocked() {
	if r.onPersist == nil {
		return
	}
	r.onPersist(r.snapshotLocked())
}

func mustJSON(v any) json.RawMessage {
	b, _ := json.Marshal(v)
	return b
}
