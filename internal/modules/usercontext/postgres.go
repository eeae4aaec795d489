// README: Context store backed by PostgreSQL, JSONB row per user.
package usercontext

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PostgresStore struct {
	db *pgxpool.Pool
}

func NewPostgresStore(db *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{db: db}
}

func (s *PostgresStore) Get(ctx context.Context, userID string) (*UserContext, error) {
	var raw []byte
	err := s.db.QueryRow(ctx, `
		SELECT data
		FROM user_contexts
		WHERE user_id = $1`, userID,
	).Scan(&raw)
	if errors.Is(err, pgx.ErrNoRows) {
		return New(userID), nil
	}
	if err != nil {
		return nil, fmt.Errorf("load context %s: %w", userID, err)
	}

	var uc UserContext
	if err := json.Unmarshal(raw, &uc); err != nil {
		return nil, fmt.Errorf("decode context %s: %w", userID, err)
	}
	if uc.Preferences == nil {
		uc.Preferences = map[string]string{}
	}
	return &uc, nil
}

func (s *PostgresStore) Put(ctx context.Context, uc *UserContext) error {
	raw, err := json.Marshal(uc)
	if err != nil {
		return fmt.Errorf("encode context %s: %w", uc.UserID, err)
	}
	_, err = s.db.Exec(ctx, `
		INSERT INTO user_contexts (user_id, data, updated_at)
		VALUES ($1, $2, now())
		ON CONFLICT (user_id)
		DO UPDATE SET data = EXCLUDED.data, updated_at = now()`,
		uc.UserID, raw,
	)
	if err != nil {
		return fmt.Errorf("save context %s: %w", uc.UserID, err)
	}
	return nil
}

func (s *PostgresStore) Close() error {
	s.db.Close()
	return nil
}
