package kvstore

import (
	"context"
	"database/sql"
	"errors"
	"time"
)

// PostgresStore guarda as chaves na tabela kv_entries (ver sql/).
type PostgresStore struct {
	DB        *sql.DB
	DBTimeout time.Duration
}

// NewPostgresStore recebe o pool já configurado por database.NewPostgresDB.
func NewPostgresStore(db *sql.DB, dbTimeout time.Duration) *PostgresStore {
	return &PostgresStore{DB: db, DBTimeout: dbTimeout}
}

// Get busca o valor da chave.
func (s *PostgresStore) Get(ctx context.Context, key string) (string, error) {
	ctxTimeout, cancel := context.WithTimeout(ctx, s.DBTimeout)
	defer cancel()

	var value string
	err := s.DB.QueryRowContext(ctxTimeout, `SELECT value FROM kv_entries WHERE key = $1`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", ErrNotFound
	}
	if err != nil {
		return "", err
	}
	return value, nil
}

// Set faz upsert do valor inteiro da chave.
func (s *PostgresStore) Set(ctx context.Context, key string, value string) error {
	ctxTimeout, cancel := context.WithTimeout(ctx, s.DBTimeout)
	defer cancel()

	const upsertSQL = `
		INSERT INTO kv_entries (key, value, updated_at)
		VALUES ($1, $2, now())
		ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value, updated_at = now()`

	_, err := s.DB.ExecContext(ctxTimeout, upsertSQL, key, value)
	return err
}

// Delete remove a chave (sem erro se não existir).
func (s *PostgresStore) Delete(ctx context.Context, key string) error {
	ctxTimeout, cancel := context.WithTimeout(ctx, s.DBTimeout)
	defer cancel()

	_, err := s.DB.ExecContext(ctxTimeout, `DELETE FROM kv_entries WHERE key = $1`, key)
	return err
}
