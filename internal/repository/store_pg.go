package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

const uniqueViolation = "23505"

// seedLockKey names the advisory lock that serialises seeding across app
// instances sharing one database.
const seedLockKey int64 = 0x66697473656564

// dbtx is satisfied by both *pgxpool.Pool and pgx.Tx.
type dbtx interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// pgPool is the part of *pgxpool.Pool the store needs.
type pgPool interface {
	dbtx
	BeginTx(ctx context.Context, txOptions pgx.TxOptions) (pgx.Tx, error)
}

// pgQueries runs the queries against either the pool or an open transaction.
// lockRows adds FOR UPDATE to single-class reads, which only has an effect
// inside a transaction.
type pgQueries struct {
	db       dbtx
	lockRows bool
}

type PGStore struct {
	pgQueries
	pool pgPool
}

func NewPGStore(pool pgPool) *PGStore {
	return &PGStore{
		pgQueries: pgQueries{db: pool},
		pool:      pool,
	}
}

// RunInTx uses READ COMMITTED. Booking transactions start by locking the class
// row, so concurrent bookings for one class run one after another.
func (s *PGStore) RunInTx(ctx context.Context, fn func(q Queries) error) error {
	return s.inTx(ctx, func(tx pgx.Tx) error {
		return fn(&pgQueries{db: tx, lockRows: true})
	})
}

// SeedInTx holds a transaction-scoped advisory lock while fn runs, so a second
// instance starting at the same time sees the classes the first one added.
func (s *PGStore) SeedInTx(ctx context.Context, fn func(q ClassSeeder) error) error {
	return s.inTx(ctx, func(tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, `SELECT pg_advisory_xact_lock($1)`, seedLockKey); err != nil {
			return fmt.Errorf("acquire seed lock: %w", err)
		}
		return fn(&pgQueries{db: tx})
	})
}

func (s *PGStore) inTx(ctx context.Context, fn func(tx pgx.Tx) error) error {
	tx, err := s.pool.BeginTx(ctx, pgx.TxOptions{IsoLevel: pgx.ReadCommitted})
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback(ctx)

	if err := fn(tx); err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit tx: %w", err)
	}
	return nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolation
}

var (
	_ Store       = (*PGStore)(nil)
	_ ClassSeeder = (*PGStore)(nil)
	_ Seeder      = (*PGStore)(nil)
)
