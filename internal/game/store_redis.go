package game

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"example.com/longwave/internal/state"
)

// RoomPersistence puts/fetches room snapshots. Redis-backed in production;
// tests use an in-memory stand-in.
type RoomPersistence interface {
	Save(ctx context.Context, roomID string, snap RoomSnapshot) error
	Load(ctx context.Context, roomID string) (RoomSnapshot, bool, error)
	Exists(ctx context.Context, roomID string) (bool, error)
}

type RedisRoomStore struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewRedisRoomStore(rdb *redis.Client, ttl time.Duration) *RedisRoomStore {
	return &RedisRoomStore{rdb: rdb, ttl: ttl}
}

func (s *RedisRoomStore) key(roomID string) string {
	return fmt.Sprintf("room:%s:snapshot", roomID)
}

func (s *RedisRoomStore) Save(ctx context.Context, roomID string, snap RoomSnapshot) error {
	b, err := json.Marshal(snap)
	if err != nil {
		return err
	}
	return s.rdb.Set(ctx, s.key(roomID), b, s.ttl).Err()
}

func (s *RedisRoomStore) Load(ctx context.Context, roomID string) (RoomSnapshot, bool, error) {
	val, err := s.rdb.Get(ctx, s.key(roomID)).Bytes()
	if err == redis.Nil {
		return RoomSnapshot{}, false, nil
	}
	if err != nil {
		return RoomSnapshot{}, false, err
	}
	return decodeSnapshot(val)
}

func (s *RedisRoomStore) Exists(ctx context.Context, roomID string) (bool, error) {
	n, err := s.rdb.Exists(ctx, s.key(roomID)).Result()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// decodeSnapshot unmarshals over a defaults-filled document, so a partial
// or older snapshot merges field-by-field over InitialGameState instead of
// failing.
func decodeSnapshot(b []byte) (RoomSnapshot, bool, error) {
	snap := RoomSnapshot{State: state.InitialGameState("")}
	if err := json.Unmarshal(b, &snap); err != nil {
		return RoomSnapshot{}, false, err
	}
	return snap, true, nil
}
