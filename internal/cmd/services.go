package main

import (
	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog"
	"github.com/zo0o0ot/cl-leagify-fantasy-auction-sub000/internal/auction"
	"github.com/zo0o0ot/cl-leagify-fantasy-auction-sub000/internal/bidding"
	"github.com/zo0o0ot/cl-leagify-fantasy-auction-sub000/internal/events"
	"github.com/zo0o0ot/cl-leagify-fantasy-auction-sub000/internal/gateway"
	"github.com/zo0o0ot/cl-leagify-fantasy-auction-sub000/internal/nomination"
	"github.com/zo0o0ot/cl-leagify-fantasy-auction-sub000/internal/roster"
	"github.com/zo0o0ot/cl-leagify-fantasy-auction-sub000/internal/service"
	"github.com/zo0o0ot/cl-leagify-fantasy-auction-sub000/internal/store"
)

// Services holds every wired application.
type Services struct {
	Auctions    *auction.App
	Bidding     *bidding.App
	Nominations *nomination.App
	Roster      *roster.App
	HTTP        *service.Service
}

func newServices(st store.Store, bc events.Broadcaster, cm *gateway.ConnectionManager, clk clockwork.Clock, logger zerolog.Logger) *Services {
	auctions := auction.NewApp(st, bc, clk, logger)
	nominations := nomination.NewApp(st, bc, logger)
	bid := bidding.NewApp(st, bc, nominations, clk, logger)
	rosterApp := roster.NewApp(st, bc, clk, logger)

	return &Services{
		Auctions:    auctions,
		Bidding:     bid,
		Nominations: nominations,
		Roster:      rosterApp,
		HTTP:        service.NewService(auctions, bid, nominations, rosterApp, cm, logger),
	}
}
