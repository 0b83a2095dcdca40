package postgres

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	domainErrors "github.com/polkiloo/cleanorder/internal/domain/errors"
	"github.com/polkiloo/cleanorder/internal/domain/model"
	"github.com/polkiloo/cleanorder/internal/domain/repository"
)

// pgxPool is the subset of *pgxpool.Pool used by Storage.
type pgxPool interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	BeginTx(ctx context.Context, txOptions pgx.TxOptions) (pgx.Tx, error)
	Ping(ctx context.Context) error
	Close()
}

var newPgxPool = func(ctx context.Context, cfg *pgxpool.Config) (pgxPool, error) {
	return pgxpool.NewWithConfig(ctx, cfg)
}

// Storage acts as repository facade backed by PostgreSQL.
type Storage struct {
	pool   pgxPool
	logger *slog.Logger
}

type preferenceRepository struct {
	storage *Storage
}

type reminderRepository struct {
	storage *Storage
}

var _ repository.Factory = (*Storage)(nil)

// New creates storage with schema initialization.
func New(ctx context.Context, dsn string, logger *slog.Logger) (*Storage, error) {
	cfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("parse dsn: %w", err)
	}

	pool, err := newPgxPool(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("connect db: %w", err)
	}

	storage := &Storage{pool: pool, logger: logger}
	if err := storage.initSchema(ctx); err != nil {
		pool.Close()
		return nil, err
	}

	return storage, nil
}

// Close releases database resources.
func (s *Storage) Close() {
	if s.pool != nil {
		s.pool.Close()
	}
}

// Factory methods for domain repositories.
func (s *Storage) Preferences() repository.PreferenceRepository {
	return &preferenceRepository{storage: s}
}

func (s *Storage) Reminders() repository.ReminderRepository {
	return &reminderRepository{storage: s}
}

func (s *Storage) initSchema(ctx context.Context) error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS preferences (
            key TEXT PRIMARY KEY,
            value TEXT NOT NULL,
            updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
        )`,
		`CREATE TABLE IF NOT EXISTS reminders (
            id BIGSERIAL PRIMARY KEY,
            order_id TEXT NOT NULL,
            fire_at TIMESTAMPTZ NOT NULL,
            status TEXT NOT NULL,
            created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
            updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
        )`,
		`CREATE INDEX IF NOT EXISTS idx_reminders_due ON reminders(status, fire_at)`,
	}

	for _, stmt := range statements {
		if _, err := s.pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("init schema: %w", err)
		}
	}

	return nil
}

// --- PreferenceRepository implementation ---

func (r *preferenceRepository) Get(ctx context.Context, key string) (string, bool, error) {
	const query = `SELECT value FROM preferences WHERE key=$1`
	var value string
	err := r.storage.pool.QueryRow(ctx, query, key).Scan(&value)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", false, nil
		}
		return "", false, err
	}
	return value, true, nil
}

func (r *preferenceRepository) Set(ctx context.Context, key, value string) error {
	const query = `INSERT INTO preferences (key, value) VALUES ($1, $2)
                   ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value, updated_at = NOW()`
	_, err := r.storage.pool.Exec(ctx, query, key, value)
	return err
}

func (r *preferenceRepository) Delete(ctx context.Context, key string) error {
	const query = `DELETE FROM preferences WHERE key=$1`
	_, err := r.storage.pool.Exec(ctx, query, key)
	return err
}

// --- ReminderRepository implementation ---

func (r *reminderRepository) Enqueue(ctx context.Context, orderID string, fireAt time.Time) (*model.Reminder, error) {
	const query = `INSERT INTO reminders (order_id, fire_at, status) VALUES ($1, $2, $3) RETURNING id, created_at`
	reminder := model.Reminder{OrderID: orderID, FireAt: fireAt, Status: model.ReminderStatusPending}
	if err := r.storage.pool.QueryRow(ctx, query, orderID, fireAt, model.ReminderStatusPending).Scan(&reminder.ID, &reminder.CreatedAt); err != nil {
		return nil, err
	}
	return &reminder, nil
}

// firingLease is how long a FIRING claim holds before another poll may take
// the reminder over. It covers processes that died between claim and MarkDone.
const firingLease = 5 * time.Minute

func (r *reminderRepository) ClaimDue(ctx context.Context, now time.Time, limit int) ([]model.Reminder, error) {
	const selectQuery = `SELECT id, order_id, fire_at, status, created_at
                         FROM reminders
                         WHERE (status = 'PENDING' OR (status = 'FIRING' AND updated_at <= $3))
                           AND fire_at <= $1
                         ORDER BY fire_at
                         LIMIT $2
                         FOR UPDATE SKIP LOCKED`

	var reminders []model.Reminder
	err := r.storage.WithinTransaction(ctx, func(tx pgx.Tx) error {
		rows, err := tx.Query(ctx, selectQuery, now, limit, now.Add(-firingLease))
		if err != nil {
			return err
		}
		for rows.Next() {
			var rem model.Reminder
			if err := rows.Scan(&rem.ID, &rem.OrderID, &rem.FireAt, &rem.Status, &rem.CreatedAt); err != nil {
				rows.Close()
				return err
			}
			reminders = append(reminders, rem)
		}
		rows.Close()
		if err := rows.Err(); err != nil {
			return err
		}

		for i := range reminders {
			if _, err := tx.Exec(ctx, `UPDATE reminders SET status='FIRING', updated_at=NOW() WHERE id=$1`, reminders[i].ID); err != nil {
				return err
			}
			reminders[i].Status = model.ReminderStatusFiring
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return reminders, nil
}

func (r *reminderRepository) MarkDone(ctx context.Context, id int64) error {
	const query = `UPDATE reminders SET status=$1, updated_at=NOW() WHERE id=$2`
	tag, err := r.storage.pool.Exec(ctx, query, model.ReminderStatusDone, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domainErrors.ErrNotFound
	}
	return nil
}

func (r *reminderRepository) Release(ctx context.Context, id int64) error {
	const query = `UPDATE reminders SET status=$1, updated_at=NOW() WHERE id=$2 AND status=$3`
	tag, err := r.storage.pool.Exec(ctx, query, model.ReminderStatusPending, id, model.ReminderStatusFiring)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domainErrors.ErrNotFound
	}
	return nil
}

// WithinTransaction executes function inside transaction boundary.
func (s *Storage) WithinTransaction(ctx context.Context, fn func(pgx.Tx) error) (err error) {
	tx, err := s.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback(ctx)
		} else {
			err = tx.Commit(ctx)
		}
	}()

	err = fn(tx)
	return err
}

// HealthCheck verifies database connectivity.
func (s *Storage) HealthCheck(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	return s.pool.Ping(ctx)
}
