package game

import "example.com/longwave/internal/state"

// RoomSnapshot is the serializable form of a room kept in Redis.
type RoomSnapshot struct {
	RoomID       string          `json:"roomId"`
	State        state.GameState `json:"state"`
	PasscodeHash string          `json:"passcodeHash,omitempty"`
}

func (r *Room) snapshotLocked() RoomSnapshot {
	return RoomSnapshot{
		RoomID:       r.id,
		State:        r.state,
		PasscodeHash: r.passcodeHash,
	}
}

func (r *Room) restore(snap RoomSnapshot) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.state = snap.State
	r.passcodeHash = snap.PasscodeHash
	// a restored finished match was already archived before the restart
	r.resultSaved = matchFinished(r.state)
}

// State returns a copy of the current shared document.
func (r *Room) State() state.GameState {
	r.mu.Lock()
	defer r.mu.Unlock()
	return state.Patch{}.Apply(r.state)
}
