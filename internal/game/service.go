package game

import (
	"context"
	"errors"
	"sync"

	"golang.org/x/crypto/bcrypt"

	"example.com/longwave/internal/state"
)

type Config struct {
	// DefaultDeckLanguage is used when room creation does not name one.
	DefaultDeckLanguage string
}

// RoomService owns the in-memory room cache and rehydrates rooms from
// persistent storage (Redis) after a restart.
type RoomService struct {
	mu sync.Mutex
	in map[string]*Room

	cfg      Config
	persist  RoomPersistence
	cards    state.CardLookup
	onResult func(GameResult)
}

func NewRoomService(cfg Config, persist RoomPersistence, cards state.CardLookup, onResult func(GameResult)) *RoomService {
	return &RoomService{
		in:       make(map[string]*Room),
		cfg:      cfg,
		persist:  persist,
		cards:    cards,
		onResult: onResult,
	}
}

// idAttempts bounds the collision check when drawing a fresh room id.
const idAttempts = 10

// Create makes a room under a fresh 4-character id. Ids are checked
// against storage and redrawn on collision; a failing check is treated as
// "probably free" and the candidate is accepted rather than surfacing an
// error to the creator.
func (s *RoomService) Create(ctx context.Context, creatorID, language, passcode string) (*Room, error) {
	roomID := state.RandomFourCharacterString()
	for i := 0; i < idAttempts; i++ {
		candidate := state.RandomFourCharacterString()
		exists, err := s.persist.Exists(ctx, candidate)
		if err != nil || !exists {
			roomID = candidate
			break
		}
	}

	if language == "" {
		language = s.cfg.DefaultDeckLanguage
	}
	g := state.InitialGameState(language)
	g.CreatorID = creatorID

	r := NewRoom(roomID, g, s.cards)
	if passcode != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(passcode), bcrypt.DefaultCost)
		if err != nil {
			return nil, err
		}
		r.passcodeHash = string(hash)
	}
	s.hook(r)

	r.mu.Lock()
	snap := r.snapshotLocked()
	r.mu.Unlock()
	if err := s.persist.Save(ctx, roomID, snap); err != nil {
		return nil, err
	}

	s.mu.Lock()
	s.in[roomID] = r
	s.mu.Unlock()

	return r, nil
}

// GetOrLoad returns a cached room or rehydrates it from storage.
func (s *RoomService) GetOrLoad(ctx context.Context, roomID string) (*Room, bool, error) {
	s.mu.Lock()
	r, ok := s.in[roomID]
	s.mu.Unlock()
	if ok {
		return r, true, nil
	}

	snap, found, err := s.persist.Load(ctx, roomID)
	if err != nil || !found {
		return nil, false, err
	}

	r = NewRoom(roomID, state.InitialGameState(""), s.cards)
	r.restore(snap)
	s.hook(r)

	s.mu.Lock()
	// another goroutine may have loaded it meanwhile; keep the first one
	if existing, ok := s.in[roomID]; ok {
		r = existing
	} else {
		s.in[roomID] = r
	}
	s.mu.Unlock()

	return r, true, nil
}

// hook wires persistence and archiving into a room. Every applied patch
// saves a snapshot.
func (s *RoomService) hook(r *Room) {
	roomID := r.id
	r.onPersist = func(snap RoomSnapshot) {
		_ = s.persist.Save(context.Background(), roomID, snap)
	}
	r.onResult = s.onResult
}

var ErrWrongPasscode = errors.New("wrong room passcode")

// CheckPasscode verifies a join attempt against the room's passcode hash.
// Rooms without a passcode admit everyone.
func (s *RoomService) CheckPasscode(r *Room, passcode string) error {
	r.mu.Lock()
	hash := r.passcodeHash
	r.mu.Unlock()

	if hash == "" {
		return nil
	}
	if bcrypt.CompareHashAndPassword([]byte(hash), []byte(passcode)) != nil {
		return ErrWrongPasscode
	}
	return nil
}
