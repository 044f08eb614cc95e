// Package service exposes the auction engine over HTTP JSON endpoints.
package service

import (
	"net/http"

	"github.com/rs/zerolog"
	"github.com/zo0o0ot/cl-leagify-fantasy-auction-sub000/internal/auction"
	"github.com/zo0o0ot/cl-leagify-fantasy-auction-sub000/internal/bidding"
	"github.com/zo0o0ot/cl-leagify-fantasy-auction-sub000/internal/gateway"
	"github.com/zo0o0ot/cl-leagify-fantasy-auction-sub000/internal/nomination"
	"github.com/zo0o0ot/cl-leagify-fantasy-auction-sub000/internal/roster"
)

// Service wires the engine apps to HTTP handlers.
type Service struct {
	auctions    *auction.App
	bidding     *bidding.App
	nominations *nomination.App
	roster      *roster.App
	gateway     *gateway.ConnectionManager
	logger      zerolog.Logger
}

// NewService creates the HTTP service. gateway may be nil when the process
// runs without a WebSocket fan-out.
func NewService(
	auctions *auction.App,
	bid *bidding.App,
	nominations *nomination.App,
	rosterApp *roster.App,
	gw *gateway.ConnectionManager,
	logger zerolog.Logger,
) *Service {
	return &Service{
		auctions:    auctions,
		bidding:     bid,
		nominations: nominations,
		roster:      rosterApp,
		gateway:     gw,
		logger:      logger.With().Str("component", "service").Logger(),
	}
}

// RegisterRoutes attaches every endpoint to mux.
func (s *Service) RegisterRoutes(mux *http.ServeMux) {
	// Auction lifecycle and room setup.
	mux.HandleFunc("POST /api/auctions", s.handleCreateAuction)
	mux.HandleFunc("GET /api/auctions/{id}", s.handleGetAuction)
	mux.HandleFunc("GET /api/auctions/code/{code}", s.handleGetByJoinCode)
	mux.HandleFunc("GET /api/auctions/recover/{code}", s.handleRecoverAuction)
	mux.HandleFunc("POST /api/auctions/{id}/status", s.handleSetStatus)
	mux.HandleFunc("POST /api/auctions/join", s.handleJoinAuction)
	mux.HandleFunc("POST /api/auctions/{id}/ready", s.handleSetReady)
	mux.HandleFunc("GET /api/auctions/{id}/users", s.handleListUsers)

	// Teams and roles.
	mux.HandleFunc("POST /api/auctions/{id}/teams", s.handleCreateTeam)
	mux.HandleFunc("GET /api/auctions/{id}/teams", s.handleListTeams)
	mux.HandleFunc("POST /api/auctions/{id}/proxy", s.handleLinkProxyCoach)

	// Schools and roster shape.
	mux.HandleFunc("POST /api/auctions/{id}/schools", s.handleAddSchool)
	mux.HandleFunc("GET /api/auctions/{id}/schools", s.handleListSchools)
	mux.HandleFunc("POST /api/auctions/{id}/roster-positions", s.handleAddPosition)
	mux.HandleFunc("GET /api/auctions/{id}/roster-positions", s.handleListPositions)

	// Live bidding.
	mux.HandleFunc("POST /api/auctions/{id}/bids", s.handlePlaceBid)
	mux.HandleFunc("GET /api/auctions/{id}/bids", s.handleBidHistory)
	mux.HandleFunc("POST /api/auctions/{id}/settle", s.handleSettleBidding)

	// Nomination order.
	mux.HandleFunc("POST /api/auctions/{id}/nominations", s.handleAppendNomination)
	mux.HandleFunc("GET /api/auctions/{id}/nominations", s.handleListNominations)
	mux.HandleFunc("POST /api/auctions/{id}/nominations/skip", s.handleSkipNomination)
	mux.HandleFunc("POST /api/auctions/{id}/advance-turn", s.handleAdvanceTurn)

	// Roster assignment.
	mux.HandleFunc("GET /api/auctions/{id}/picks", s.handleListPicks)
	mux.HandleFunc("POST /api/picks/{id}/assign", s.handleAssignManual)
	mux.HandleFunc("POST /api/picks/{id}/assign-auto", s.handleAssignAuto)

	// Practice waiting room.
	mux.HandleFunc("GET /api/auctions/{id}/practice", s.handlePracticeState)
	mux.HandleFunc("POST /api/auctions/{id}/practice/bids", s.handlePlacePracticeBid)
	mux.HandleFunc("POST /api/auctions/{id}/practice/pass", s.handlePassPractice)
	mux.HandleFunc("POST /api/auctions/{id}/practice/complete", s.handleCompletePracticeRound)
	mux.HandleFunc("POST /api/auctions/{id}/practice/reset", s.handleResetPracticeBids)

	if s.gateway != nil {
		mux.HandleFunc("GET /ws/auctions/{id}", s.handleWebSocket)
	}
}
