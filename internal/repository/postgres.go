// Package repository содержит хранилища токенов сеансов консоли.
package repository

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"

	"github.com/mmeshcher/flora-console/internal/session"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

// PostgresStore хранит токены сеансов в PostgreSQL.
type PostgresStore struct {
	pool   *pgxpool.Pool
	delays []time.Duration
}

// NewPostgresStore подключается к БД и применяет миграции.
func NewPostgresStore(ctx context.Context, dsn string) (*PostgresStore, error) {
	cfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("parse pool config: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("create pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	s := &PostgresStore{
		pool:   pool,
		delays: []time.Duration{1 * time.Second, 3 * time.Second, 5 * time.Second},
	}

	if err := s.runMigrations(ctx); err != nil {
		pool.Close()
		return nil, err
	}

	return s, nil
}

func (s *PostgresStore) runMigrations(ctx context.Context) error {
	db := stdlib.OpenDBFromPool(s.pool)
	defer db.Close()

	goose.SetBaseFS(migrationsFS)

	if err := goose.SetDialect("postgres"); err != nil {
		return fmt.Errorf("set dialect: %w", err)
	}

	if err := goose.UpContext(ctx, db, "migrations"); err != nil {
		return fmt.Errorf("run migrations: %w", err)
	}

	return nil
}

func (s *PostgresStore) withRetry(ctx context.Context, fn func() error) error {
	return retry(ctx, s.delays, fn)
}

// retry повторяет fn при временных ошибках БД с заданными паузами.
func retry(ctx context.Context, delays []time.Duration, fn func() error) error {
	var err error
	for i := 0; i <= len(delays); i++ {
		err = fn()
		if err == nil || !isRetryable(err) || i == len(delays) {
			return err
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(delays[i]):
		}
	}
	return err
}

func isRetryable(err error) bool {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == pgerrcode.SerializationFailure ||
			pgErr.Code == pgerrcode.DeadlockDetected ||
			pgerrcode.IsConnectionException(pgErr.Code)
	}

	return isConnectionError(err)
}

func isConnectionError(err error) bool {
	msg := err.Error()
	return strings.Contains(msg, "connection refused") ||
		strings.Contains(msg, "broken pipe") ||
		strings.Contains(msg, "connection reset by peer")
}

// Close закрывает пул соединений с БД.
func (s *PostgresStore) Close() error {
	s.pool.Close()
	return nil
}

// Load возвращает токен сеанса и отмечает время последнего обращения.
func (s *PostgresStore) Load(ctx context.Context, id string) (string, error) {
	var token string
	err := s.withRetry(ctx, func() error {
		return s.pool.QueryRow(ctx,
			`UPDATE sessions SET last_seen_at = now() WHERE id = $1 RETURNING token`,
			id,
		).Scan(&token)
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", session.ErrNotFound
		}
		return "", fmt.Errorf("load session: %w", err)
	}
	return token, nil
}

// Save сохраняет токен сеанса, перезаписывая существующий.
func (s *PostgresStore) Save(ctx context.Context, id, token string) error {
	err := s.withRetry(ctx, func() error {
		_, err := s.pool.Exec(ctx,
			`INSERT INTO sessions (id, token) VALUES ($1, $2)
			 ON CONFLICT (id) DO UPDATE SET token = EXCLUDED.token, last_seen_at = now()`,
			id, token,
		)
		return err
	})
	if err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	return nil
}

// Delete удаляет сеанс.
func (s *PostgresStore) Delete(ctx context.Context, id string) error {
	var affected int64
	err := s.withRetry(ctx, func() error {
		tag, err := s.pool.Exec(ctx, `DELETE FROM sessions WHERE id = $1`, id)
		affected = tag.RowsAffected()
		return err
	})
	if err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	if affected == 0 {
		return session.ErrNotFound
	}
	return nil
}

// PurgeIdle удаляет сеансы, к которым не обращались дольше idle, и возвращает их число.
func (s *PostgresStore) PurgeIdle(ctx context.Context, idle time.Duration) (int64, error) {
	var affected int64
	err := s.withRetry(ctx, func() error {
		tag, err := s.pool.Exec(ctx,
			`DELETE FROM sessions WHERE last_seen_at < $1`,
			time.Now().Add(-idle),
		)
		affected = tag.RowsAffected()
		return err
	})
	if err != nil {
		return 0, fmt.Errorf("purge sessions: %w", err)
	}
	return affected, nil
}
