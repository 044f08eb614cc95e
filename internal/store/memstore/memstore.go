// Package memstore is an in-memory store.Store used by unit tests and local
// single-process runs. Transactions are serialized under one mutex; rollback
// restores a deep snapshot taken at transaction start, so a failed operation
// leaves no partial writes, matching the postgres implementation's semantics.
package memstore

import (
	"context"

	"sync"

	"github.com/google/uuid"
	"github.com/zo0o0ot/cl-leagify-fantasy-auction-sub000/internal/models"
	"github.com/zo0o0ot/cl-leagify-fantasy-auction-sub000/internal/store"
)

type data struct {
	auctions  map[uuid.UUID]models.Auction
	teams     map[uuid.UUID]models.Team
	users     map[uuid.UUID]models.User
	roles     []models.UserRole
	bids      []models.BidHistory
	noms      []models.NominationOrder
	positions map[uuid.UUID]models.RosterPosition
	picks     map[uuid.UUID]models.DraftPick
	schools   map[uuid.UUID]models.School
}

func newData() *data {
	return &data{
		auctions:  make(map[uuid.UUID]models.Auction),
		teams:     make(map[uuid.UUID]models.Team),
		users:     make(map[uuid.UUID]models.User),
		positions: make(map[uuid.UUID]models.RosterPosition),
		picks:     make(map[uuid.UUID]models.DraftPick),
		schools:   make(map[uuid.UUID]models.School),
	}
}

// runner abstracts locked (top-level) vs unlocked (in-transaction) access.
type runner interface {
	run(fn func(d *data) error) error
}

// Store is the top-level in-memory store.
type Store struct {
	mu sync.Mutex
	d  *data
}

// New returns an empty in-memory store.
func New() *Store {
	return &Store{d: newData()}
}

func (s *Store) run(fn func(d *data) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return fn(s.d)
}

// WithTx serializes the whole transaction under the store mutex and rolls the
// dataset back to a snapshot if fn fails.
func (s *Store) WithTx(ctx context.Context, fn func(tx store.Store) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	snapshot := s.d.clone()
	if err := fn(&txStore{s: s}); err != nil {
		s.d = snapshot
		return err
	}
	return nil
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

// txStore is the transaction-bound view handed to WithTx callbacks. The
// enclosing WithTx already holds the store mutex, so repository calls access
// the dataset directly, and a nested WithTx joins the open transaction.
type txStore struct {
	s *Store
}

func (t *txStore) run(fn func(d *data) error) error {
	return fn(t.s.d)
}

func (t *txStore) WithTx(ctx context.Context, fn func(tx store.Store) error) error {
	return fn(t)
}

func (t *txStore) Auctions() store.AuctionRepository               { return auctionRepo{t} }
func (t *txStore) Teams() store.TeamRepository                     { return teamRepo{t} }
func (t *txStore) Users() store.UserRepository                     { return userRepo{t} }
func (t *txStore) Roles() store.RoleRepository                     { return roleRepo{t} }
func (t *txStore) Bids() store.BidRepository                       { return bidRepo{t} }
func (t *txStore) Nominations() store.NominationRepository         { return nominationRepo{t} }
func (t *txStore) RosterPositions() store.RosterPositionRepository { return positionRepo{t} }
func (t *txStore) DraftPicks() store.DraftPickRepository           { return pickRepo{t} }
func (t *txStore) Schools() store.SchoolRepository                 { return schoolRepo{t} }
