package game

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"example.com/longwave/internal/state"
)

func TestRoomService_CreateAndReload(t *testing.T) {
	ctx := context.Background()
	persist := &memPersist{}
	svc := NewRoomService(Config{DefaultDeckLanguage: "de"}, persist, testCards, nil)

	room, err := svc.Create(ctx, "gm", "", "")
	require.NoError(t, err)
	require.True(t, state.ValidID(room.ID()))

	g := room.State()
	assert.Equal(t, "gm", g.CreatorID)
	assert.Equal(t, "de", g.DeckLanguage, "empty language falls back to the configured default")
	assert.Equal(t, state.PhaseSetupGame, g.RoundPhase)

	// Cached lookups hand back the same room.
	same, found, err := svc.GetOrLoad(ctx, room.ID())
	require.NoError(t, err)
	require.True(t, found)
	assert.Same(t, room, same)

	// Play a little, then rehydrate through a fresh service as if the
	// process had restarted.
	room.Attach("gm", "GM", newTestConn())
	room.Attach("p1", "Alice", newTestConn())
	mustDispatch(t, room, "gm", "set_points_to_win", SetPointsToWinPayload{Points: 25})

	svc2 := NewRoomService(Config{DefaultDeckLanguage: "de"}, persist, testCards, nil)
	reloaded, found, err := svc2.GetOrLoad(ctx, room.ID())
	require.NoError(t, err)
	require.True(t, found)

	g2 := reloaded.State()
	assert.Equal(t, 25, g2.PointsToWin)
	assert.Equal(t, "gm", g2.CreatorID)
	assert.Equal(t, "Alice", g2.Players["p1"].Name)
	assert.Equal(t, g.DeckSeed, g2.DeckSeed)

	_, found, err = svc2.GetOrLoad(ctx, "zzzz")
	require.NoError(t, err)
	assert.False(t, found)
}

func TestRoomService_Passcode(t *testing.T) {
	ctx := context.Background()
	svc := NewRoomService(Config{DefaultDeckLanguage: "en"}, &memPersist{}, testCards, nil)

	open, err := svc.Create(ctx, "gm", "en", "")
	require.NoError(t, err)
	assert.NoError(t, svc.CheckPasscode(open, ""))
	assert.NoError(t, svc.CheckPasscode(open, "anything"))

	locked, err := svc.Create(ctx, "gm", "en", "hunter2")
	require.NoError(t, err)
	assert.NoError(t, svc.CheckPasscode(locked, "hunter2"))
	assert.ErrorIs(t, svc.CheckPasscode(locked, "wrong"), ErrWrongPasscode)
	assert.ErrorIs(t, svc.CheckPasscode(locked, ""), ErrWrongPasscode)

	// The hash survives a reload; the plain passcode is never stored.
	persist := &memPersist{}
	svc = NewRoomService(Config{DefaultDeckLanguage: "en"}, persist, testCards, nil)
	locked, err = svc.Create(ctx, "gm", "en", "hunter2")
	require.NoError(t, err)

	svc2 := NewRoomService(Config{DefaultDeckLanguage: "en"}, persist, testCards, nil)
	reloaded, found, err := svc2.GetOrLoad(ctx, locked.ID())
	require.NoError(t, err)
	require.True(t, found)
	assert.NoError(t, svc2.CheckPasscode(reloaded, "hunter2"))
	assert.ErrorIs(t, svc2.CheckPasscode(reloaded, "wrong"), ErrWrongPasscode)
}

func TestDecodeSnapshot_MergesOverDefaults(t *testing.T) {
	// A sparse snapshot written by an older build: unknown-to-it fields keep
	// their defaults instead of zeroing out.
	raw := []byte(`{"roomId":"bcdf","state":{"creatorId":"gm","leftScore":3}}`)
	snap, ok, err := decodeSnapshot(raw)
	require.NoError(t, err)
	require.True(t, ok)

	assert.Equal(t, "bcdf", snap.RoomID)
	assert.Equal(t, "gm", snap.State.CreatorID)
	assert.Equal(t, 3, snap.State.LeftScore)
	assert.Equal(t, state.DefaultPointsToWin, snap.State.PointsToWin)
	assert.Equal(t, -1, snap.State.TurnsTaken)
	assert.NotEmpty(t, snap.State.DeckSeed)
	assert.NotNil(t, snap.State.Players)

	_, _, err = decodeSnapshot([]byte(`{broken`))
	assert.Error(t, err)
}
