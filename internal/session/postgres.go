package session

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"starfield-server/internal/shared/database"

	"github.com/google/uuid"
)

// PostgresRepository stores sessions in the viewer_sessions table. It runs
// against a *database.DB or, inside a transaction, a *database.Tx.
type PostgresRepository struct {
	db     database.Executor
	logger *slog.Logger
}

func NewPostgresRepository(db database.Executor, logger *slog.Logger) *PostgresRepository {
	logger.Debug("Initializing postgres session repository")

	return &PostgresRepository{
		db:     db,
		logger: logger,
	}
}

func selectionColumns(s *Session) (x, y sql.NullInt64, px, py sql.NullFloat64) {
	if s.Selected == nil {
		return
	}
	x = sql.NullInt64{Int64: s.Selected.Cell.X, Valid: true}
	y = sql.NullInt64{Int64: s.Selected.Cell.Y, Valid: true}
	px = sql.NullFloat64{Float64: s.Selected.Position.X, Valid: true}
	py = sql.NullFloat64{Float64: s.Selected.Position.Y, Valid: true}
	return
}

func (r *PostgresRepository) Create(ctx context.Context, s *Session) error {
	logger := r.logger.With("component", "session_postgres_repository", "operation", "create", "session_id", s.ID)

	x, y, px, py := selectionColumns(s)

	query := `
		INSERT INTO viewer_sessions (id, pan_x, pan_y, move_up, move_down, move_left, move_right,
			selected_x, selected_y, selected_px, selected_py, created_at, updated_at, expires_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
	`

	_, err := r.db.ExecContext(ctx, query,
		s.ID, s.Pan.X, s.Pan.Y,
		s.Directions.Up, s.Directions.Down, s.Directions.Left, s.Directions.Right,
		x, y, px, py,
		s.CreatedAt, s.UpdatedAt, s.ExpiresAt,
	)
	if err != nil {
		logger.Error("Failed to create session", "error", err)
		return fmt.Errorf("failed to create session: %w", err)
	}

	return nil
}

func (r *PostgresRepository) Get(ctx context.Context, id uuid.UUID) (*Session, error) {
	logger := r.logger.With("component", "session_postgres_repository", "operation", "get", "session_id", id)

	query := `
		SELECT id, pan_x, pan_y, move_up, move_down, move_left, move_right,
			selected_x, selected_y, selected_px, selected_py, created_at, updated_at, expires_at
		FROM viewer_sessions
		WHERE id = $1 AND expires_at > NOW()
	`

	var s Session
	var x, y sql.NullInt64
	var px, py sql.NullFloat64

	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&s.ID, &s.Pan.X, &s.Pan.Y,
		&s.Directions.Up, &s.Directions.Down, &s.Directions.Left, &s.Directions.Right,
		&x, &y, &px, &py,
		&s.CreatedAt, &s.UpdatedAt, &s.ExpiresAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		logger.Error("Failed to get session", "error", err)
		return nil, fmt.Errorf("failed to get session: %w", err)
	}

	if x.Valid && y.Valid {
		s.Selected = &Selection{}
		s.Selected.Cell.X, s.Selected.Cell.Y = x.Int64, y.Int64
		s.Selected.Position.X, s.Selected.Position.Y = px.Float64, py.Float64
	}

	return &s, nil
}

func (r *PostgresRepository) Update(ctx context.Context, s *Session) error {
	logger := r.logger.With("component", "session_postgres_repository", "operation", "update", "session_id", s.ID)

	x, y, px, py := selectionColumns(s)

	query := `
		UPDATE viewer_sessions
		SET pan_x = $2, pan_y = $3, move_up = $4, move_down = $5, move_left = $6, move_right = $7,
			selected_x = $8, selected_y = $9, selected_px = $10, selected_py = $11,
			updated_at = $12, expires_at = $13
		WHERE id = $1 AND expires_at > NOW()
	`

	result, err := r.db.ExecContext(ctx, query,
		s.ID, s.Pan.X, s.Pan.Y,
		s.Directions.Up, s.Directions.Down, s.Directions.Left, s.Directions.Right,
		x, y, px, py,
		s.UpdatedAt, s.ExpiresAt,
	)
	if err != nil {
		logger.Error("Failed to update session", "error", err)
		return fmt.Errorf("failed to update session: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check updated rows: %w", err)
	}
	if rows == 0 {
		return ErrNotFound
	}

	return nil
}

func (r *PostgresRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.ExecContext(ctx, "DELETE FROM viewer_sessions WHERE id = $1", id)
	if err != nil {
		r.logger.Error("Failed to delete session", "component", "session_postgres_repository", "operation", "delete", "session_id", id, "error", err)
		return fmt.Errorf("failed to delete session: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check deleted rows: %w", err)
	}
	if rows == 0 {
		return ErrNotFound
	}

	return nil
}

// DeleteExpired removes sessions past their expiry.
func (r *PostgresRepository) DeleteExpired(ctx context.Context) (int64, error) {
	result, err := r.db.ExecContext(ctx, "DELETE FROM viewer_sessions WHERE expires_at <= NOW()")
	if err != nil {
		return 0, fmt.Errorf("failed to delete expired sessions: %w", err)
	}
	return result.RowsAffected()
}
