// Package looks persists saved try-on looks in PostgreSQL.
package looks

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/nailtryon/tryon/internal/palette"
	"github.com/nailtryon/tryon/internal/render"
)

// ErrNotFound is returned when no look matches an id.
var ErrNotFound = errors.New("look not found")

// Look is a saved try-on: the photograph it was rendered from, the polish
// and the finish, and when it was saved.
type Look struct {
	ID        int64
	SourceRef string
	Color     palette.Color
	Shape     render.Shape
	Length    render.Length
	Finish    render.Finish
	SavedAt   time.Time
}

// Store manages the PostgreSQL connection.
type Store struct {
	conn *pgx.Conn
}

// New establishes a connection to the database and ensures the schema is initialized.
func New(ctx context.Context, connString string) (*Store, error) {
	conn, err := pgx.Connect(ctx, connString)
	if err != nil {
		return nil, err
	}

	if err := initSchema(ctx, conn); err != nil {
		conn.Close(ctx)
		return nil, fmt.Errorf("failed to initialize database schema: %w", err)
	}

	return &Store{conn: conn}, nil
}

// initSchema creates the looks table if it doesn't exist.
func initSchema(ctx context.Context, conn *pgx.Conn) error {
	query := `
		CREATE TABLE IF NOT EXISTS saved_looks (
			id BIGSERIAL PRIMARY KEY,
			source_ref TEXT NOT NULL,
			color CHAR(7) NOT NULL,
			shape TEXT NOT NULL,
			length TEXT NOT NULL,
			coats INT NOT NULL,
			top_coat TEXT NOT NULL,
			saved_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		);
		CREATE INDEX IF NOT EXISTS saved_looks_saved_at_idx ON saved_looks (saved_at DESC);
	`
	_, err := conn.Exec(ctx, query)
	return err
}

// Close terminates the database connection.
func (s *Store) Close(ctx context.Context) {
	s.conn.Close(ctx)
}

// Save records a look and returns it with its id and timestamp filled in.
func (s *Store) Save(ctx context.Context, l Look) (Look, error) {
	err := s.conn.QueryRow(ctx, `
		INSERT INTO saved_looks (source_ref, color, shape, length, coats, top_coat)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, saved_at
	`, l.SourceRef, l.Color.Hex(), l.Shape.String(), l.Length.String(), l.Finish.Coats, l.Finish.TopCoat.String(),
	).Scan(&l.ID, &l.SavedAt)
	if err != nil {
		return Look{}, err
	}
	return l, nil
}

// List returns every saved look, newest first.
func (s *Store) List(ctx context.Context) ([]Look, error) {
	rows, err := s.conn.Query(ctx, `
		SELECT id, source_ref, color, shape, length, coats, top_coat, saved_at
		FROM saved_looks
		ORDER BY saved_at DESC, id DESC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var looks []Look
	for rows.Next() {
		var (
			l                      Look
			hex, shape, length, tc string
		)
		if err := rows.Scan(&l.ID, &l.SourceRef, &hex, &shape, &length, &l.Finish.Coats, &tc, &l.SavedAt); err != nil {
			return nil, err
		}
		c, ok := palette.ParseHex(hex)
		if !ok {
			return nil, fmt.Errorf("look %d: invalid colour %q", l.ID, hex)
		}
		l.Color = c
		l.Shape = render.ParseShape(shape)
		l.Length = render.ParseLength(length)
		l.Finish.TopCoat = render.ParseTopCoat(tc)
		looks = append(looks, l)
	}
	return looks, rows.Err()
}

// Delete removes a look by id.
func (s *Store) Delete(ctx context.Context, id int64) error {
	tag, err := s.conn.Exec(ctx, "DELETE FROM saved_looks WHERE id = $1", id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: %d", ErrNotFound, id)
	}
	return nil
}

// Reset drops the looks table and recreates it empty.
func (s *Store) Reset(ctx context.Context) error {
	if _, err := s.conn.Exec(ctx, `DROP TABLE IF EXISTS saved_looks CASCADE;`); err != nil {
		return err
	}
	return initSchema(ctx, s.conn)
}
