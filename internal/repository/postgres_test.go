package repository

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/Abhijit03/auction-app/internal/auctionerrors"
	model "github.com/Abhijit03/auction-app/internal/models"

	"github.com/stretchr/testify/require"
)

var testPG *PostgresStore

// TestMain connects to the database named by TEST_DATABASE_URL and applies
// the migration. When the variable is unset the Postgres tests are skipped,
// so a plain `go test ./...` needs no infrastructure.
func TestMain(m *testing.M) {
	connString := os.Getenv("TEST_DATABASE_URL")
	if connString == "" {
		os.Exit(m.Run())
	}

	ctx := context.Background()
	store, err := NewPostgresStore(ctx, connString)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Unable to connect to database: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	migration, err := os.ReadFile("../../migrations/001_init.sql")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Unable to read migration: %v\n", err)
		os.Exit(1)
	}
	if _, err := store.Pool().Exec(ctx, string(migration)); err != nil && !strings.Contains(err.Error(), "already exists") {
		fmt.Fprintf(os.Stderr, "Unable to apply migration: %v\n", err)
		os.Exit(1)
	}

	if _, err := store.Pool().Exec(ctx, "TRUNCATE TABLE bids, auctions, categories, users"); err != nil {
		fmt.Fprintf(os.Stderr, "Unable to truncate tables: %v\n", err)
		os.Exit(1)
	}

	testPG = store
	os.Exit(m.Run())
}

func requirePG(t *testing.T) *PostgresStore {
	t.Helper()
	if testPG == nil {
		t.Skip("TEST_DATABASE_URL not set; skipping postgres store tests")
	}
	return testPG
}

// seedPG inserts a seller, a category and a fresh auction, returning the ids.
func seedPG(t *testing.T, store *PostgresStore, tag string, endTime time.Time) (sellerID, categoryID, auctionID string) {
	t.Helper()
	ctx := context.Background()
	now := time.Now().UTC()

	sellerID = "seller-" + tag
	categoryID = "cat-" + tag
	auctionID = "auction-" + tag

	require.NoError(t, store.CreateUser(ctx, model.User{UserID: sellerID, Username: "seller-" + tag, CreatedAt: now}))
	require.NoError(t, store.CreateCategory(ctx, model.Category{CategoryID: categoryID, Name: "Category " + tag, CreatedAt: now}))
	require.NoError(t, store.CreateAuction(ctx, model.Auction{
		AuctionID:     auctionID,
		SellerID:      sellerID,
		CategoryID:    categoryID,
		Title:         "Auction " + tag,
		StartingPrice: 10000,
		CurrentPrice:  10000,
		EndTime:       endTime,
		IsActive:      true,
		CreatedAt:     now,
	}))
	return sellerID, categoryID, auctionID
}

func TestPostgresStore_ApplyBid(t *testing.T) {
	store := requirePG(t)
	ctx := context.Background()
	now := time.Now().UTC()

	_, _, auctionID := seedPG(t, store, "apply", now.Add(time.Hour))
	bidderID := "bidder-apply"
	require.NoError(t, store.CreateUser(ctx, model.User{UserID: bidderID, Username: bidderID, CreatedAt: now}))

	result, err := store.ApplyBid(ctx, model.Bid{
		BidID: "bid-apply-1", AuctionID: auctionID, BidderID: bidderID, Amount: 15000, CreatedAt: now,
	}, now)
	require.NoError(t, err)
	require.Equal(t, int64(15000), result.NewPrice)
	require.Equal(t, 1, result.BidCount)

	// Equal amount is rejected against the committed price.
	_, err = store.ApplyBid(ctx, model.Bid{
		BidID: "bid-apply-2", AuctionID: auctionID, BidderID: bidderID, Amount: 15000, CreatedAt: now,
	}, now)
	require.True(t, errors.Is(err, auctionerrors.ErrBidTooLow))

	a, err := store.GetAuction(ctx, auctionID)
	require.NoError(t, err)
	require.Equal(t, int64(15000), a.CurrentPrice)

	bids, err := store.GetBidsByAuction(ctx, auctionID)
	require.NoError(t, err)
	require.Len(t, bids, 1)
}

func TestPostgresStore_ApplyBid_Ended(t *testing.T) {
	store := requirePG(t)
	ctx := context.Background()
	now := time.Now().UTC()

	_, _, auctionID := seedPG(t, store, "ended", now.Add(-time.Minute))
	bidderID := "bidder-ended"
	require.NoError(t, store.CreateUser(ctx, model.User{UserID: bidderID, Username: bidderID, CreatedAt: now}))

	_, err := store.ApplyBid(ctx, model.Bid{
		BidID: "bid-ended-1", AuctionID: auctionID, BidderID: bidderID, Amount: 20000, CreatedAt: now,
	}, now)
	require.True(t, errors.Is(err, auctionerrors.ErrAuctionEnded))
}

func TestPostgresStore_ApplyBid_Concurrent(t *testing.T) {
	store := requirePG(t)
	ctx := context.Background()
	now := time.Now().UTC()

	_, _, auctionID := seedPG(t, store, "race", now.Add(time.Hour))

	const concurrentCount = 20
	for i := 0; i < concurrentCount; i++ {
		id := fmt.Sprintf("bidder-race-%d", i)
		require.NoError(t, store.CreateUser(ctx, model.User{UserID: id, Username: id, CreatedAt: now}))
	}

	var wg sync.WaitGroup
	for i := 0; i < concurrentCount; i++ {
		wg.Add(1)
		i := i
		go func() {
			defer wg.Done()
			_, err := store.ApplyBid(ctx, model.Bid{
				BidID:     fmt.Sprintf("bid-race-%d", i),
				AuctionID: auctionID,
				BidderID:  fmt.Sprintf("bidder-race-%d", i),
				Amount:    int64(10001 + i),
				CreatedAt: now,
			}, now)
			if err != nil && !errors.Is(err, auctionerrors.ErrBidTooLow) {
				t.Errorf("unexpected error: %v", err)
			}
		}()
	}
	wg.Wait()

	a, err := store.GetAuction(ctx, auctionID)
	require.NoError(t, err)
	require.Equal(t, int64(10001+concurrentCount-1), a.CurrentPrice)

	bids, err := store.GetBidsByAuction(ctx, auctionID)
	require.NoError(t, err)
	require.NotEmpty(t, bids)
	for i := 1; i < len(bids); i++ {
		require.Greater(t, bids[i].Amount, bids[i-1].Amount)
	}
}

func TestPostgresStore_Categories(t *testing.T) {
	store := requirePG(t)
	ctx := context.Background()
	now := time.Now().UTC()

	_, categoryID, _ := seedPG(t, store, "cats", now.Add(time.Hour))

	// Duplicate name
	err := store.CreateCategory(ctx, model.Category{CategoryID: "cat-cats-dup", Name: "Category cats", CreatedAt: now})
	require.True(t, errors.Is(err, auctionerrors.ErrDuplicateCategory))

	// In use
	err = store.DeleteCategory(ctx, categoryID)
	require.True(t, errors.Is(err, auctionerrors.ErrCategoryInUse))

	// Free category deletes fine
	require.NoError(t, store.CreateCategory(ctx, model.Category{CategoryID: "cat-cats-free", Name: "Category cats free", CreatedAt: now}))
	require.NoError(t, store.DeleteCategory(ctx, "cat-cats-free"))
}

func TestPostgresStore_ListActive(t *testing.T) {
	store := requirePG(t)
	ctx := context.Background()
	now := time.Now().UTC()

	sellerID, categoryID, openID := seedPG(t, store, "list", now.Add(time.Hour))

	require.NoError(t, store.CreateAuction(ctx, model.Auction{
		AuctionID: "auction-list-ended", SellerID: sellerID, CategoryID: categoryID,
		Title: "ended", StartingPrice: 1000, CurrentPrice: 1000,
		EndTime: now.Add(-time.Minute), IsActive: true, CreatedAt: now,
	}))

	active, err := store.ListActive(ctx, now, 100, 0)
	require.NoError(t, err)

	ids := make([]string, 0, len(active))
	for _, a := range active {
		ids = append(ids, a.AuctionID)
	}
	require.Contains(t, ids, openID)
	require.NotContains(t, ids, "auction-list-ended")
}
