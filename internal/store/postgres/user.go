package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/zo0o0ot/cl-leagify-fantasy-auction-sub000/internal/models"
)

type userRepo struct{ s *Store }

func (r userRepo) Create(ctx context.Context, u *models.User) error {
	_, err := r.s.q().ExecContext(ctx,
		`INSERT INTO users (id, auction_id, display_name, connected,
			has_tested_bidding, is_ready_to_draft, has_passed_on_test_bid, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		u.ID, u.AuctionID, u.DisplayName, u.Connected,
		u.HasTestedBidding, u.IsReadyToDraft, u.HasPassedOnTestBid, u.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("inserting user: %w", mapErr(err))
	}
	return nil
}

func (r userRepo) Get(ctx context.Context, id uuid.UUID) (*models.User, error) {
	var u models.User
	err := r.s.q().GetContext(ctx, &u, `SELECT * FROM users WHERE id = $1`, id)
	if err != nil {
		return nil, mapErr(err)
	}
	return &u, nil
}

func (r userRepo) GetByDisplayName(ctx context.Context, auctionID uuid.UUID, name string) (*models.User, error) {
	var u models.User
	err := r.s.q().GetContext(ctx, &u,
		`SELECT * FROM users WHERE auction_id = $1 AND LOWER(display_name) = LOWER($2)`,
		auctionID, name)
	if err != nil {
		return nil, mapErr(err)
	}
	return &u, nil
}

func (r userRepo) ListByAuction(ctx context.Context, auctionID uuid.UUID) ([]models.User, error) {
	var users []models.User
	err := r.s.q().SelectContext(ctx, &users,
		`SELECT * FROM users WHERE auction_id = $1 ORDER BY created_at ASC`, auctionID)
	if err != nil {
		return nil, fmt.Errorf("listing users: %w", err)
	}
	return users, nil
}

func (r userRepo) Update(ctx context.Context, u *models.User) error {
	return requireRow(r.s.q().ExecContext(ctx,
		`UPDATE users SET display_name = $2, connected = $3,
			has_tested_bidding = $4, is_ready_to_draft = $5, has_passed_on_test_bid = $6
		 WHERE id = $1`,
		u.ID, u.DisplayName, u.Connected,
		u.HasTestedBidding, u.IsReadyToDraft, u.HasPassedOnTestBid,
	))
}

func (r userRepo) ResetPracticeFlags(ctx context.Context, auctionID uuid.UUID, clearTested bool) error {
	_, err := r.s.q().ExecContext(ctx,
		`UPDATE users SET has_passed_on_test_bid = FALSE,
			has_tested_bidding = CASE WHEN $2 THEN FALSE ELSE has_tested_bidding END
		 WHERE auction_id = $1`,
		auctionID, clearTested,
	)
	if err != nil {
		return fmt.Errorf("resetting practice flags: %w", err)
	}
	return nil
}

type roleRepo struct{ s *Store }

func (r roleRepo) Create(ctx context.Context, ur *models.UserRole) error {
	_, err := r.s.q().ExecContext(ctx,
		`INSERT INTO user_roles (id, auction_id, user_id, team_id, role)
		 VALUES ($1, $2, $3, $4, $5)`,
		ur.ID, ur.AuctionID, ur.UserID, ur.TeamID, ur.Role,
	)
	if err != nil {
		return fmt.Errorf("inserting user role: %w", err)
	}
	return nil
}

func (r roleRepo) ListByUser(ctx context.Context, auctionID, userID uuid.UUID) ([]models.UserRole, error) {
	var roles []models.UserRole
	err := r.s.q().SelectContext(ctx, &roles,
		`SELECT * FROM user_roles WHERE auction_id = $1 AND user_id = $2`,
		auctionID, userID)
	if err != nil {
		return nil, fmt.Errorf("listing user roles: %w", err)
	}
	return roles, nil
}
