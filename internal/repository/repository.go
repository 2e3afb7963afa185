package repository

import (
	"context"
	"time"

	model "github.com/Abhijit03/auction-app/internal/models"
)

// AuctionStore defines durable storage for the auction system. ApplyBid is
// the single atomic read-modify-write primitive: no other operation may
// change an auction's current price or insert a bid.
type AuctionStore interface {
	CreateUser(ctx context.Context, user model.User) error
	GetUser(ctx context.Context, userID string) (model.User, error)
	GetUserByUsername(ctx context.Context, username string) (model.User, error)

	CreateCategory(ctx context.Context, category model.Category) error
	GetCategory(ctx context.Context, categoryID string) (model.Category, error)
	GetCategoryByName(ctx context.Context, name string) (model.Category, error)
	ListCategories(ctx context.Context) ([]model.Category, error)
	DeleteCategory(ctx context.Context, categoryID string) error

	CreateAuction(ctx context.Context, auction model.Auction) error
	GetAuction(ctx context.Context, auctionID string) (model.Auction, error)
	SetAuctionActive(ctx context.Context, auctionID string, active bool) error
	ListActive(ctx context.Context, now time.Time, limit, offset int) ([]model.Auction, error)
	ListByCategory(ctx context.Context, categoryID string) ([]model.Auction, error)

	// ApplyBid validates and records a bid as one atomic unit: inside the
	// auction's critical section it re-checks that the auction is biddable
	// at now and that bid.Amount strictly exceeds the current price, then
	// inserts the bid and raises the current price together. Concurrent
	// callers against the same auction serialize here; the loser of a race
	// is reported ErrBidTooLow against the freshly committed price.
	ApplyBid(ctx context.Context, bid model.Bid, now time.Time) (model.BidResult, error)
	GetBidsByAuction(ctx context.Context, auctionID string) ([]model.Bid, error)
	GetHighestBid(ctx context.Context, auctionID string) (model.Bid, error)
}
