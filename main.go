package main

import (
	"context"
	"fmt"
	"os"

	auction "github.com/Abhijit03/auction-app/internal/auctionService"
	bidding "github.com/Abhijit03/auction-app/internal/biddingService"
	"github.com/Abhijit03/auction-app/internal/bootstrap"
	"github.com/Abhijit03/auction-app/internal/config"
	"github.com/Abhijit03/auction-app/internal/events"
	"github.com/Abhijit03/auction-app/internal/repository"
	"github.com/Abhijit03/auction-app/internal/server"
	"github.com/Abhijit03/auction-app/utils"
)

func main() {
	ctx := context.Background()

	cfg, err := config.Load(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}
	utils.SetLevel(cfg.LogLevel)

	store, cleanup, err := newStore(ctx, cfg)
	if err != nil {
		utils.Fatal("failed to initialize store", map[string]any{"error": err.Error()})
	}
	defer cleanup()

	if err := bootstrap.Run(ctx, store, cfg.Bootstrap); err != nil {
		utils.Fatal("bootstrap failed", map[string]any{"error": err.Error()})
	}

	dispatcher := events.NewDispatcher(cfg.EventWorkers, func(e events.BidEvent) {
		// Placeholder consumer: a presentation layer subscribes here for
		// live price updates.
		utils.Info("bid accepted", map[string]any{
			"auction_id": e.AuctionID,
			"bidder_id":  e.BidderID,
			"new_price":  utils.FormatAmount(e.NewPrice),
			"bid_count":  e.BidCount,
		})
	})
	dispatcher.Start(ctx)

	biddingSvc := bidding.NewBiddingService(store, dispatcher)
	auctionSvc := auction.NewAuctionService(store)

	router := server.SetupRouter(biddingSvc, auctionSvc)

	fmt.Printf("Starting auction server on %s...\n", cfg.Addr())
	if err := router.Run(cfg.Addr()); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to start server: %v\n", err)
		os.Exit(1)
	}
}

// newStore selects the Postgres store when DATABASE_URL is configured and
// falls back to the in-memory store otherwise.
func newStore(ctx context.Context, cfg *config.Config) (repository.AuctionStore, func(), error) {
	if cfg.DatabaseURL == "" {
		utils.Info("using in-memory store", nil)
		return repository.NewMemoryStore(), func() {}, nil
	}

	pg, err := repository.NewPostgresStore(ctx, cfg.DatabaseURL)
	if err != nil {
		return nil, nil, err
	}
	utils.Info("using postgres store", nil)
	return pg, pg.Close, nil
}
