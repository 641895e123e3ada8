package store

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

// GameResult is one finished match as archived in Postgres.
type GameResult struct {
	ID          string    `json:"id"`
	RoomID      string    `json:"roomId"`
	GameType    int       `json:"gameType"`
	WinningTeam int       `json:"winningTeam"`
	LeftScore   int       `json:"leftScore"`
	RightScore  int       `json:"rightScore"`
	CoopScore   int       `json:"coopScore"`
	TurnsTaken  int       `json:"turnsTaken"`
	FinishedAt  time.Time `json:"finishedAt"`
}

type ResultsStore struct {
	db *pgxpool.Pool
}

func NewResultsStore(db *pgxpool.Pool) *ResultsStore {
	return &ResultsStore{db: db}
}

func (s *ResultsStore) Record(ctx context.Context, r GameResult) error {
	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	if r.FinishedAt.IsZero() {
		r.FinishedAt = time.Now()
	}
	_, err := s.db.Exec(ctx, `
		INSERT INTO game_results
			(id, room_id, game_type, winning_team, left_score, right_score, coop_score, turns_taken, finished_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`, r.ID, r.RoomID, r.GameType, r.WinningTeam, r.LeftScore, r.RightScore, r.CoopScore, r.TurnsTaken, r.FinishedAt)
	return err
}

func (s *ResultsStore) ListByRoom(ctx context.Context, roomID string, limit int) ([]GameResult, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := s.db.Query(ctx, `
		SELECT id, room_id, game_type, winning_team, left_score, right_score, coop_score, turns_taken, finished_at
		FROM game_results
		WHERE room_id = $1
		ORDER BY finished_at DESC
		LIMIT $2
	`, roomID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []GameResult
	for rows.Next() {
		var r GameResult
		if err := rows.Scan(
			&r.ID, &r.RoomID, &r.GameType, &r.WinningTeam,
			&r.LeftScore, &r.RightScore, &r.CoopScore, &r.TurnsTaken, &r.FinishedAt,
		); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

// TeamWins tallies how often each team has won in a room.
func (s *ResultsStore) TeamWins(ctx context.Context, roomID string) (left, right int, err error) {
	err = s.db.QueryRow(ctx, `
		SELECT
			COUNT(*) FILTER (WHERE winning_team = 1),
			COUNT(*) FILTER (WHERE winning_team = 2)
		FROM game_results
		WHERE room_id = $1
	`, roomID).Scan(&left, &right)
	return left, right, err
}
