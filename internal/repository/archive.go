// Package repository persists completed-game summaries to PostgreSQL.
package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/breachline/breach-server-go/internal/game"
)

const schema = `
CREATE TABLE IF NOT EXISTS completed_games (
    id          BIGSERIAL PRIMARY KEY,
    game_id     TEXT NOT NULL,
    winner      TEXT NOT NULL,
    turns       INT NOT NULL,
    started_at  TIMESTAMPTZ NOT NULL,
    finished_at TIMESTAMPTZ NOT NULL,
    log         TEXT[] NOT NULL DEFAULT '{}',
    archived_at TIMESTAMPTZ NOT NULL DEFAULT now()
);
CREATE INDEX IF NOT EXISTS completed_games_game_id_idx ON completed_games (game_id);
`

// Archive stores finished games. Safe for concurrent use; pgxpool handles
// connection sharing.
type Archive struct {
	pool   *pgxpool.Pool
	logger *zap.Logger
}

// ArchivedGame is a stored completed-game record.
type ArchivedGame struct {
	ID         int64
	GameID     string
	Winner     string
	Turns      int
	StartedAt  time.Time
	FinishedAt time.Time
	Log        []string
}

// New connects to the database and ensures the archive schema exists.
func New(ctx context.Context, url string, maxConns int32, logger *zap.Logger) (*Archive, error) {
	cfg, err := pgxpool.ParseConfig(url)
	if err != nil {
		return nil, fmt.Errorf("parse database url: %w", err)
	}
	cfg.MaxConns = maxConns

	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("connect to database: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}
	if _, err := pool.Exec(ctx, schema); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ensure archive schema: %w", err)
	}

	if logger != nil {
		logger.Info("game archive ready")
	}
	return &Archive{pool: pool, logger: logger}, nil
}

// Close releases the connection pool.
func (a *Archive) Close() {
	a.pool.Close()
}

// Save writes a finished game's summary.
func (a *Archive) Save(ctx context.Context, s *game.Summary) error {
	if s == nil {
		return fmt.Errorf("summary is required")
	}

	_, err := a.pool.Exec(ctx, `
		INSERT INTO completed_games (game_id, winner, turns, started_at, finished_at, log)
		VALUES ($1, $2, $3, $4, $5, $6)
	`, s.GameID, s.Winner, s.Turns, s.StartedAt, s.FinishedAt, s.Log)
	if err != nil {
		return fmt.Errorf("archive game %s: %w", s.GameID, err)
	}

	if a.logger != nil {
		a.logger.Info("archived completed game",
			zap.String("game_id", s.GameID),
			zap.String("winner", s.Winner),
			zap.Int("turns", s.Turns))
	}
	return nil
}

// Recent returns the most recently archived games, newest first.
func (a *Archive) Recent(ctx context.Context, limit int) ([]ArchivedGame, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := a.pool.Query(ctx, `
		SELECT id, game_id, winner, turns, started_at, finished_at, log
		FROM completed_games
		ORDER BY archived_at DESC
		LIMIT $1
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("query archived games: %w", err)
	}
	defer rows.Close()

	var games []ArchivedGame
	for rows.Next() {
		var g ArchivedGame
		if err := rows.Scan(&g.ID, &g.GameID, &g.Winner, &g.Turns, &g.StartedAt, &g.FinishedAt, &g.Log); err != nil {
			return nil, fmt.Errorf("scan archived game: %w", err)
		}
		games = append(games, g)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate archived games: %w", err)
	}
	return games, nil
}
