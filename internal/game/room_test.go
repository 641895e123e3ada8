package game

import (
	"context"
	"encoding/json"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"example.com/longwave/internal/state"
)

func newTestConn() *ClientConn {
	return &ClientConn{
		ws:   nil,
		send: make(chan []byte, 256),
	}
}

func readEnvelopesNonBlocking(c *ClientConn) []Envelope {
	var envs []Envelope
	for {
		select {
		case msg := <-c.send:
			var env Envelope
			if json.Unmarshal(msg, &env) == nil {
				envs = append(envs, env)
			}
		default:
			return envs
		}
	}
}

func findLastState(envs []Envelope) (StatePayload, bool) {
	for i := len(envs) - 1; i >= 0; i-- {
		if envs[i].Type != "state" {
			continue
		}
		var st StatePayload
		if json.Unmarshal(envs[i].Payload, &st) == nil {
			return st, true
		}
	}
	return StatePayload{}, false
}

type memPersist struct {
	mu sync.Mutex
	m  map[string][]byte
}

func (p *memPersist) Save(ctx context.Context, roomID string, snap RoomSnapshot) error {
	b, err := json.Marshal(snap)
	if err != nil {
		return err
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.m == nil {
		p.m = make(map[string][]byte)
	}
	p.m[roomID] = b
	return nil
}

func (p *memPersist) Load(ctx context.Context, roomID string) (RoomSnapshot, bool, error) {
	p.mu.Lock()
	b, ok := p.m[roomID]
	p.mu.Unlock()
	if !ok {
		return RoomSnapshot{}, false, nil
	}
	return decodeSnapshot(b)
}

func (p *memPersist) Exists(ctx context.Context, roomID string) (bool, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	_, ok := p.m[roomID]
	return ok, nil
}

func testCards(seed string, index int, language string) [2]string {
	return [2]string{"cold", "hot"}
}

func mustDispatch(t *testing.T, r *Room, playerID, msgType string, payload any) {
	t.Helper()
	b, err := json.Marshal(payload)
	require.NoError(t, err)
	require.NoError(t, r.Dispatch(playerID, Envelope{Type: msgType, Payload: b}), "%s by %s", msgType, playerID)
}

func TestRoom_TeamsFlow(t *testing.T) {
	persist := &memPersist{}
	svc := NewRoomService(Config{DefaultDeckLanguage: "en"}, persist, testCards, nil)

	room, err := svc.Create(context.Background(), "gm", "en", "")
	require.NoError(t, err)

	gm := newTestConn()
	room.Attach("gm", "GM", gm)
	conns := map[string]*ClientConn{}
	for _, pid := range []string{"p1", "p2", "p3", "p4"} {
		cc := newTestConn()
		conns[pid] = cc
		room.Attach(pid, "Player "+pid, cc)
	}

	mustDispatch(t, room, "p1", "join_team", JoinTeamPayload{Team: state.TeamLeft})
	mustDispatch(t, room, "p2", "join_team", JoinTeamPayload{Team: state.TeamLeft})
	mustDispatch(t, room, "p3", "join_team", JoinTeamPayload{Team: state.TeamRight})
	mustDispatch(t, room, "p4", "join_team", JoinTeamPayload{Team: state.TeamRight})

	mustDispatch(t, room, "gm", "choose_game_type", ChooseGameTypePayload{GameType: state.GameTypeTeams})
	assert.Equal(t, state.PhasePickTeams, room.State().RoundPhase)

	mustDispatch(t, room, "gm", "start_team_game", struct{}{})
	g := room.State()
	require.Equal(t, state.PhaseGiveClue, g.RoundPhase)
	require.NotEmpty(t, g.ClueGiver)
	assert.Equal(t, 1, g.LeftScore+g.RightScore, "exactly one handicap point on the board")

	// Play the round out with whoever ended up where.
	giver := g.ClueGiver
	giverTeam := g.Players[giver].Team
	teammate := otherMember(g, giverTeam, giver)
	opponent := otherMember(g, state.TeamReverse(giverTeam), "")
	require.NotEmpty(t, teammate)
	require.NotEmpty(t, opponent)

	mustDispatch(t, room, giver, "submit_clue", SubmitCluePayload{Clue: "lukewarm"})
	mustDispatch(t, room, teammate, "move_guess", MoveGuessPayload{Guess: 14})
	mustDispatch(t, room, teammate, "confirm_guess", struct{}{})
	assert.Equal(t, state.PhaseCounterGuess, room.State().RoundPhase)

	mustDispatch(t, room, opponent, "counter_guess", CounterGuessPayload{Direction: state.DirectionLeft})
	g = room.State()
	assert.Equal(t, state.PhaseViewScore, g.RoundPhase)

	mustDispatch(t, room, "gm", "next_round", struct{}{})
	g = room.State()
	assert.Equal(t, state.PhaseGiveClue, g.RoundPhase)
	assert.Equal(t, 1, g.TurnsTaken)
	require.NotNil(t, g.PreviousTurn)
	assert.Equal(t, "lukewarm", g.PreviousTurn.Clue)
	assert.Equal(t, 14, g.PreviousTurn.Guess)

	// Every connection saw the same final document.
	for pid, cc := range conns {
		st, ok := findLastState(readEnvelopesNonBlocking(cc))
		require.True(t, ok, "no state frame for %s", pid)
		assert.Equal(t, pid, st.You)
		assert.Equal(t, room.ID(), st.RoomID)
		assert.Equal(t, g.TurnsTaken, st.State.TurnsTaken)
		assert.Equal(t, [2]string{"cold", "hot"}, st.Card)
	}

	// And every applied action persisted a snapshot.
	snap, found, err := persist.Load(context.Background(), room.ID())
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, g.TurnsTaken, snap.State.TurnsTaken)
	assert.Equal(t, g.ClueGiver, snap.State.ClueGiver)
}

func otherMember(g state.GameState, team state.Team, exclude string) string {
	for _, pid := range state.TeamMembers(g, team) {
		if pid != exclude {
			return pid
		}
	}
	return ""
}

func TestRoom_RejectedActionLeavesStateAlone(t *testing.T) {
	svc := NewRoomService(Config{DefaultDeckLanguage: "en"}, &memPersist{}, testCards, nil)
	room, err := svc.Create(context.Background(), "gm", "en", "")
	require.NoError(t, err)

	cc := newTestConn()
	room.Attach("p1", "Alice", cc)
	before := room.State()
	drainBefore := readEnvelopesNonBlocking(cc)
	require.NotEmpty(t, drainBefore)

	err = room.Dispatch("p1", Envelope{Type: "start_team_game", Payload: []byte(`{}`)})
	require.Error(t, err)
	assert.Equal(t, before.RoundPhase, room.State().RoundPhase)
	assert.Empty(t, readEnvelopesNonBlocking(cc), "a rejected action broadcasts nothing")

	err = room.Dispatch("p1", Envelope{Type: "no_such_type", Payload: []byte(`{}`)})
	require.Error(t, err)

	err = room.Dispatch("p1", Envelope{Type: "join_team", Payload: []byte(`"broken`)})
	assert.ErrorIs(t, err, errBadPayload)
}

func TestRoom_ArchivesResultOnce(t *testing.T) {
	var results []GameResult
	svc := NewRoomService(Config{DefaultDeckLanguage: "en"}, &memPersist{}, testCards, func(res GameResult) {
		results = append(results, res)
	})
	room, err := svc.Create(context.Background(), "gm", "en", "")
	require.NoError(t, err)

	room.Attach("gm", "GM", newTestConn())
	room.Attach("p1", "Alice", newTestConn())
	room.Attach("p2", "Bob", newTestConn())
	mustDispatch(t, room, "p1", "join_team", JoinTeamPayload{Team: state.TeamLeft})
	mustDispatch(t, room, "p2", "join_team", JoinTeamPayload{Team: state.TeamRight})
	mustDispatch(t, room, "gm", "choose_game_type", ChooseGameTypePayload{GameType: state.GameTypeTeams})
	mustDispatch(t, room, "gm", "set_points_to_win", SetPointsToWinPayload{Points: 1})

	// With a 1-point target the starting handicap decides the match on the
	// spot: whichever team does not give the first clue wins.
	mustDispatch(t, room, "gm", "start_team_game", struct{}{})
	require.Len(t, results, 1)
	g := room.State()
	wantWinner := state.TeamReverse(g.Players[g.ClueGiver].Team)
	assert.Equal(t, wantWinner, results[0].WinningTeam)
	assert.Equal(t, room.ID(), results[0].RoomID)
	assert.Equal(t, state.GameTypeTeams, results[0].GameType)

	// Later patches on the finished match do not archive again.
	mustDispatch(t, room, "gm", "set_team_name", SetTeamNamePayload{Team: state.TeamLeft, Name: "Sharks"})
	assert.Len(t, results, 1)

	// A reset re-arms archiving for the next match.
	mustDispatch(t, room, "gm", "reset_game", struct{}{})
	mustDispatch(t, room, "gm", "set_points_to_win", SetPointsToWinPayload{Points: 1})
	room.Attach("gm", "GM", newTestConn())
	room.Attach("p1", "Alice", newTestConn())
	room.Attach("p2", "Bob", newTestConn())
	mustDispatch(t, room, "p1", "join_team", JoinTeamPayload{Team: state.TeamLeft})
	mustDispatch(t, room, "p2", "join_team", JoinTeamPayload{Team: state.TeamRight})
	mustDispatch(t, room, "gm", "choose_game_type", ChooseGameTypePayload{GameType: state.GameTypeTeams})
	mustDispatch(t, room, "gm", "start_team_game", struct{}{})
	assert.Len(t, results, 2)
}
