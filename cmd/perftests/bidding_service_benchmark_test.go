package perftests

import (
	"context"
	"fmt"
	"math/rand"
	"sync/atomic"
	"testing"
	"time"

	bidding "github.com/Abhijit03/auction-app/internal/biddingService"
	model "github.com/Abhijit03/auction-app/internal/models"
	repository "github.com/Abhijit03/auction-app/internal/repository"
)

func benchAuction(auctionID string, startingPrice int64) model.Auction {
	now := time.Now().UTC()
	return model.Auction{
		AuctionID:     auctionID,
		SellerID:      "seller_bench",
		CategoryID:    "cat_bench",
		Title:         "benchmark listing " + auctionID,
		StartingPrice: startingPrice,
		CurrentPrice:  startingPrice,
		EndTime:       now.Add(24 * time.Hour),
		IsActive:      true,
		CreatedAt:     now,
	}
}

// Benchmark 1: PlaceBid - Isolated Auctions (Low Contention - Micro Benchmark)
func Benchmark_PlaceBid_Isolated(b *testing.B) {
	ctx := context.Background()
	store := repository.NewMemoryStore()
	svc := bidding.NewBiddingService(store, nil)

	for i := 0; i < b.N; i++ {
		if err := store.CreateAuction(ctx, benchAuction(fmt.Sprintf("auction_%d", i), 5000)); err != nil {
			b.Fatalf("failed to seed auction: %v", err)
		}
	}

	b.ReportAllocs()
	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		bidderID := fmt.Sprintf("bidder_%d", i)
		auctionID := fmt.Sprintf("auction_%d", i)
		amount := int64(5001 + rand.Intn(10000))
		if _, err := svc.PlaceBid(ctx, auctionID, bidderID, amount); err != nil {
			b.Fatalf("failed to place bid: %v", err)
		}
	}
}

// Benchmark 2: PlaceBid - Shared Auction (High Contention - Concurrency Benchmark)
func Benchmark_PlaceBid_ConcurrentSharedAuction(b *testing.B) {
	ctx := context.Background()
	store := repository.NewMemoryStore()
	svc := bidding.NewBiddingService(store, nil)

	if err := store.CreateAuction(ctx, benchAuction("shared_auction_1", 5000)); err != nil {
		b.Fatalf("failed to seed auction: %v", err)
	}

	b.ReportAllocs()
	b.ResetTimer()

	var lastBid int64 = 5000

	b.RunParallel(func(pb *testing.PB) {
		rnd := rand.New(rand.NewSource(time.Now().UnixNano()))
		for pb.Next() {
			bidderID := fmt.Sprintf("bidder_parallel_%d", rnd.Int())
			nextBid := atomic.AddInt64(&lastBid, int64(rnd.Intn(5)+1))
			_, _ = svc.PlaceBid(ctx, "shared_auction_1", bidderID, nextBid)
		}
	})
}

// Benchmark 3: GetHighestBid - Single-Threaded (Low Contention)
func Benchmark_GetHighestBid_SingleThreaded(b *testing.B) {
	ctx := context.Background()
	store := repository.NewMemoryStore()
	svc := bidding.NewBiddingService(store, nil)

	for i := 0; i < b.N; i++ {
		auctionID := fmt.Sprintf("auction_%d", i)
		if err := store.CreateAuction(ctx, benchAuction(auctionID, 5000)); err != nil {
			b.Fatalf("failed to seed auction: %v", err)
		}
		for j := 0; j < 10; j++ {
			bidderID := fmt.Sprintf("bidder_%d_%d", i, j)
			amount := int64(5000 + (j+1)*100)
			if _, err := svc.PlaceBid(ctx, auctionID, bidderID, amount); err != nil {
				b.Fatalf("failed to seed bid: %v", err)
			}
		}
	}

	b.ReportAllocs()
	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		auctionID := fmt.Sprintf("auction_%d", i)
		if _, err := svc.GetHighestBid(ctx, auctionID); err != nil {
			b.Fatalf("failed to get highest bid: %v", err)
		}
	}
}

// Benchmark 4: GetHighestBid - Concurrent (High Contention)
func Benchmark_GetHighestBid_ConcurrentSharedAuction(b *testing.B) {
	ctx := context.Background()
	store := repository.NewMemoryStore()
	svc := bidding.NewBiddingService(store, nil)

	if err := store.CreateAuction(ctx, benchAuction("shared_auction_1", 5000)); err != nil {
		b.Fatalf("failed to seed auction: %v", err)
	}
	for j := 0; j < 100; j++ {
		bidderID := fmt.Sprintf("bidder_%d", j)
		amount := int64(5000 + (j+1)*10)
		if _, err := svc.PlaceBid(ctx, "shared_auction_1", bidderID, amount); err != nil {
			b.Fatalf("failed to seed bid: %v", err)
		}
	}

	b.ReportAllocs()
	b.ResetTimer()

	var counter int64

	b.RunParallel(func(pb *testing.PB) {
		for pb.Next() {
			if _, err := svc.GetHighestBid(ctx, "shared_auction_1"); err != nil {
				b.Fatalf("failed to get highest bid: %v", err)
			}
			atomic.AddInt64(&counter, 1)
		}
	})
}

// Benchmark 5: Mixed Workload (Readers + Writers concurrently)
func Benchmark_MixedWorkload_SharedAuction(b *testing.B) {
	ctx := context.Background()
	store := repository.NewMemoryStore()
	svc := bidding.NewBiddingService(store, nil)

	if err := store.CreateAuction(ctx, benchAuction("shared_auction_1", 5000)); err != nil {
		b.Fatalf("failed to seed auction: %v", err)
	}
	for j := 0; j < 50; j++ {
		bidderID := fmt.Sprintf("bidder_seed_%d", j)
		amount := int64(5000 + (j+1)*20)
		if _, err := svc.PlaceBid(ctx, "shared_auction_1", bidderID, amount); err != nil {
			b.Fatalf("failed to seed bid: %v", err)
		}
	}

	b.ReportAllocs()
	b.ResetTimer()

	var lastBid int64 = 6000
	var counter int64

	// Ratio: 70% readers, 30% writers
	b.RunParallel(func(pb *testing.PB) {
		rnd := rand.New(rand.NewSource(time.Now().UnixNano()))
		for pb.Next() {
			opType := rnd.Intn(10)
			switch {
			case opType < 3:
				bidderID := fmt.Sprintf("bidder_writer_%d", rnd.Int())
				nextBid := atomic.AddInt64(&lastBid, int64(rnd.Intn(5)+1))
				_, _ = svc.PlaceBid(ctx, "shared_auction_1", bidderID, nextBid)
			default:
				_, _ = svc.GetHighestBid(ctx, "shared_auction_1")
			}
			atomic.AddInt64(&counter, 1)
		}
	})
}
