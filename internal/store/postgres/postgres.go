// Package postgres implements store.Store on PostgreSQL with sqlx.
package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
	"github.com/zo0o0ot/cl-leagify-fantasy-auction-sub000/internal/dbconfig"
	"github.com/zo0o0ot/cl-leagify-fantasy-auction-sub000/internal/store"
)

// Connect opens and verifies a Postgres connection via the pgx stdlib driver,
// applying the configured pool limits.
func Connect(ctx context.Context, cfg dbconfig.Config) (*sqlx.DB, error) {
	db, err := sqlx.ConnectContext(ctx, "pgx", cfg.DSN())
	if err != nil {
		return nil, fmt.Errorf("connecting to database: %w", err)
	}
	db.SetMaxOpenConns(cfg.MaxOpenConns)
	db.SetMaxIdleConns(cfg.MaxIdleConns)
	db.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	if err := db.PingContext(ctx); err != nil {
		return nil, fmt.Errorf("pinging database: %w", err)
	}
	return db, nil
}

// queryer is satisfied by both *sqlx.DB and *sqlx.Tx, so repositories run
// unchanged inside and outside transactions.
type queryer interface {
	sqlx.ExtContext
	GetContext(ctx context.Context, dest interface{}, query string, args ...interface{}) error
	SelectContext(ctx context.Context, dest interface{}, query string, args ...interface{}) error
}

// Store implements store.Store. The zero tx means operations run directly on
// the pool; a tx-bound Store routes everything through its transaction.
type Store struct {
	db *sqlx.DB
	tx *sqlx.Tx
}

// New creates a Store on the given connection pool.
func New(db *sqlx.DB) *Store {
	return &Store{db: db}
}

func (s *Store) q() queryer {
	if s.tx != nil {
		return s.tx
	}
	return s.db
}

func (s *Store) Auctions() store.AuctionRepository               { return auctionRepo{s} }
func (s *Store) Teams() store.TeamRepository                     { return teamRepo{s} }
func (s *Store) Users() store.UserRepository                     { return userRepo{s} }
func (s *Store) Roles() store.RoleRepository                     { return roleRepo{s} }
func (s *Store) Bids() store.BidRepository                       { return bidRepo{s} }
func (s *Store) Nominations() store.NominationRepository         { return nominationRepo{s} }
func (s *Store) RosterPositions() store.RosterPositionRepository { return positionRepo{s} }
func (s *Store) DraftPicks() store.DraftPickRepository           { return pickRepo{s} }
func (s *Store) Schools() store.SchoolRepository                 { return schoolRepo{s} }

// WithTx runs fn inside a transaction. If the Store is already
// transaction-bound, fn joins the open transaction; the outermost caller
// decides commit or rollback.
func (s *Store) WithTx(ctx context.Context, fn func(tx store.Store) error) error {
	if s.tx != nil {
		return fn(s)
	}

	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	bound := &Store{db: s.db, tx: tx}
	if err := fn(bound); err != nil {
		_ = tx.Rollback()
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}
	return nil
}

// mapErr converts driver sentinels to store sentinels. Unique-index
// violations surface as ErrConflict.
func mapErr(err error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return store.ErrNotFound
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return store.ErrConflict
	}
	return err
}

// requireRow converts an UPDATE/DELETE result into ErrNotFound when no row
// matched.
func requireRow(res sql.Result, err error) error {
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return store.ErrNotFound
	}
	return nil
}
