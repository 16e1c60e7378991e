package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rgehrsitz/rmgo/internal/domain"
)

const schema = `
CREATE TABLE IF NOT EXISTS profiles (
  id         UUID PRIMARY KEY,
  name       TEXT NOT NULL,
  data       JSONB NOT NULL,
  created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
  updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
)`

// PostgresProfileStore stores profiles as JSONB rows.
type PostgresProfileStore struct {
	DB *pgxpool.Pool
}

// Connect opens a pool for databaseURL.
func Connect(ctx context.Context, databaseURL string) (*pgxpool.Pool, error) {
	poolCfg, err := pgxpool.ParseConfig(databaseURL)
	if err != nil {
		return nil, err
	}
	poolCfg.MaxConnLifetime = time.Hour
	poolCfg.MaxConns = 10
	poolCfg.MinConns = 1
	return pgxpool.NewWithConfig(ctx, poolCfg)
}

// NewPostgresProfileStore creates the profiles table if needed.
func NewPostgresProfileStore(ctx context.Context, db *pgxpool.Pool) (*PostgresProfileStore, error) {
	if _, err := db.Exec(ctx, schema); err != nil {
		return nil, fmt.Errorf("create profiles table: %w", err)
	}
	return &PostgresProfileStore{DB: db}, nil
}

func (s *PostgresProfileStore) Create(ctx context.Context, p domain.Profile) (domain.Profile, error) {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	data, err := json.Marshal(p)
	if err != nil {
		return domain.Profile{}, err
	}
	_, err = s.DB.Exec(ctx, `
    INSERT INTO profiles (id, name, data)
    VALUES ($1, $2, $3)
  `, p.ID, p.Name, data)
	if err != nil {
		return domain.Profile{}, fmt.Errorf("insert profile: %w", err)
	}
	return p, nil
}

func (s *PostgresProfileStore) Get(ctx context.Context, id string) (domain.Profile, error) {
	if _, err := uuid.Parse(id); err != nil {
		return domain.Profile{}, ErrNotFound
	}
	var data []byte
	err := s.DB.QueryRow(ctx, `SELECT data FROM profiles WHERE id = $1`, id).Scan(&data)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.Profile{}, ErrNotFound
	}
	if err != nil {
		return domain.Profile{}, err
	}
	return decodeProfile(data)
}

func (s *PostgresProfileStore) Update(ctx context.Context, p domain.Profile) (domain.Profile, error) {
	if _, err := uuid.Parse(p.ID); err != nil {
		return domain.Profile{}, ErrNotFound
	}
	data, err := json.Marshal(p)
	if err != nil {
		return domain.Profile{}, err
	}
	tag, err := s.DB.Exec(ctx, `
    UPDATE profiles SET name = $2, data = $3, updated_at = now()
    WHERE id = $1
  `, p.ID, p.Name, data)
	if err != nil {
		return domain.Profile{}, fmt.Errorf("update profile: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.Profile{}, ErrNotFound
	}
	return p, nil
}

func (s *PostgresProfileStore) List(ctx context.Context) ([]domain.Profile, error) {
	rows, err := s.DB.Query(ctx, `SELECT data FROM profiles ORDER BY name, id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.Profile
	for rows.Next() {
		var data []byte
		if err := rows.Scan(&data); err != nil {
			return nil, err
		}
		p, err := decodeProfile(data)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (s *PostgresProfileStore) Close() { s.DB.Close() }

func decodeProfile(data []byte) (domain.Profile, error) {
	var p domain.Profile
	if err := json.Unmarshal(data, &p); err != nil {
		return domain.Profile{}, fmt.Errorf("decode profile: %w", err)
	}
	return p, nil
}
