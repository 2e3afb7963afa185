package repository

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/Abhijit03/auction-app/internal/auctionerrors"
	"github.com/Abhijit03/auction-app/internal/lifecycle"
	model "github.com/Abhijit03/auction-app/internal/models"
)

// auctionState holds one auction and its bids behind a dedicated mutex, so
// bid application on one auction never blocks bids on another.
type auctionState struct {
	mu      sync.Mutex
	auction model.Auction
	bids    []model.Bid
}

// MemoryStore is a concurrency-safe in-memory implementation of AuctionStore.
// The outer RWMutex guards the maps; each auction carries its own lock for
// the atomic bid section.
type MemoryStore struct {
	mu         sync.RWMutex
	auctions   map[string]*auctionState  // key: auctionID
	users      map[string]model.User     // key: userID
	categories map[string]model.Category // key: categoryID
}

// NewMemoryStore creates a new in-memory store instance
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		auctions:   make(map[string]*auctionState),
		users:      make(map[string]model.User),
		categories: make(map[string]model.Category),
	}
}

// CreateUser adds a user record
func (s *MemoryStore) CreateUser(_ context.Context, user model.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.users[user.UserID] = user
	return nil
}

// GetUser returns a user by id
func (s *MemoryStore) GetUser(_ context.Context, userID string) (model.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	user, ok := s.users[userID]
	if !ok {
		return model.User{}, fmt.Errorf("get user %s: %w", userID, auctionerrors.ErrUserNotFound)
	}
	return user, nil
}

// GetUserByUsername returns a user by username
func (s *MemoryStore) GetUserByUsername(_ context.Context, username string) (model.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, user := range s.users {
		if user.Username == username {
			return user, nil
		}
	}
	return model.User{}, fmt.Errorf("get user by username %s: %w", username, auctionerrors.ErrUserNotFound)
}

// CreateCategory adds a category record
func (s *MemoryStore) CreateCategory(_ context.Context, category model.Category) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, c := range s.categories {
		if c.Name == category.Name {
			return fmt.Errorf("create category %s: %w", category.Name, auctionerrors.ErrDuplicateCategory)
		}
	}
	s.categories[category.CategoryID] = category
	return nil
}

// GetCategory returns a category by id
func (s *MemoryStore) GetCategory(_ context.Context, categoryID string) (model.Category, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	category, ok := s.categories[categoryID]
	if !ok {
		return model.Category{}, fmt.Errorf("get category %s: %w", categoryID, auctionerrors.ErrCategoryNotFound)
	}
	return category, nil
}

// GetCategoryByName returns a category by its unique name
func (s *MemoryStore) GetCategoryByName(_ context.Context, name string) (model.Category, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, c := range s.categories {
		if c.Name == name {
			return c, nil
		}
	}
	return model.Category{}, fmt.Errorf("get category by name %s: %w", name, auctionerrors.ErrCategoryNotFound)
}

// ListCategories returns all categories sorted by name
func (s *MemoryStore) ListCategories(_ context.Context) ([]model.Category, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	categories := make([]model.Category, 0, len(s.categories))
	for _, c := range s.categories {
		categories = append(categories, c)
	}
	sort.Slice(categories, func(i, j int) bool { return categories[i].Name < categories[j].Name })
	return categories, nil
}

// DeleteCategory removes a category. Refused while any auction references it.
func (s *MemoryStore) DeleteCategory(_ context.Context, categoryID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.categories[categoryID]; !ok {
		return fmt.Errorf("delete category %s: %w", categoryID, auctionerrors.ErrCategoryNotFound)
	}
	for _, st := range s.auctions {
		if st.auction.CategoryID == categoryID {
			return fmt.Errorf("delete category %s: %w", categoryID, auctionerrors.ErrCategoryInUse)
		}
	}
	delete(s.categories, categoryID)
	return nil
}

// CreateAuction adds an auction with no bids
func (s *MemoryStore) CreateAuction(_ context.Context, auction model.Auction) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.auctions[auction.AuctionID] = &auctionState{auction: auction}
	return nil
}

// GetAuction returns a snapshot of an auction
func (s *MemoryStore) GetAuction(_ context.Context, auctionID string) (model.Auction, error) {
	st, err := s.state(auctionID)
	if err != nil {
		return model.Auction{}, err
	}

	st.mu.Lock()
	defer st.mu.Unlock()
	return st.auction, nil
}

// SetAuctionActive toggles the listing's active flag. Idempotent; has no
// effect on the end time, so an ended auction stays non-biddable.
func (s *MemoryStore) SetAuctionActive(_ context.Context, auctionID string, active bool) error {
	st, err := s.state(auctionID)
	if err != nil {
		return err
	}

	st.mu.Lock()
	defer st.mu.Unlock()
	st.auction.IsActive = active
	return nil
}

// ListActive returns auctions biddable at now, newest first
func (s *MemoryStore) ListActive(_ context.Context, now time.Time, limit, offset int) ([]model.Auction, error) {
	auctions := s.snapshotAuctions()

	active := make([]model.Auction, 0, len(auctions))
	for _, a := range auctions {
		if lifecycle.IsAuctionActive(a, now) {
			active = append(active, a)
		}
	}
	sort.Slice(active, func(i, j int) bool { return active[i].CreatedAt.After(active[j].CreatedAt) })

	if offset >= len(active) {
		return []model.Auction{}, nil
	}
	active = active[offset:]
	if limit > 0 && limit < len(active) {
		active = active[:limit]
	}
	return active, nil
}

// ListByCategory returns all auctions in a category, newest first
func (s *MemoryStore) ListByCategory(_ context.Context, categoryID string) ([]model.Auction, error) {
	s.mu.RLock()
	if _, ok := s.categories[categoryID]; !ok {
		s.mu.RUnlock()
		return nil, fmt.Errorf("list auctions for category %s: %w", categoryID, auctionerrors.ErrCategoryNotFound)
	}
	s.mu.RUnlock()

	auctions := s.snapshotAuctions()
	matched := make([]model.Auction, 0)
	for _, a := range auctions {
		if a.CategoryID == categoryID {
			matched = append(matched, a)
		}
	}
	sort.Slice(matched, func(i, j int) bool { return matched[i].CreatedAt.After(matched[j].CreatedAt) })
	return matched, nil
}

// ApplyBid runs the atomic validate-and-write for one bid. The liveness and
// price checks are re-executed under the auction's lock so two racing bids
// serialize: the first commit raises the price, the second is rejected
// against the new floor.
func (s *MemoryStore) ApplyBid(_ context.Context, bid model.Bid, now time.Time) (model.BidResult, error) {
	st, err := s.state(bid.AuctionID)
	if err != nil {
		return model.BidResult{}, err
	}

	st.mu.Lock()
	defer st.mu.Unlock()

	if !lifecycle.IsAuctionActive(st.auction, now) {
		return model.BidResult{}, fmt.Errorf("apply bid for auction %s: %w", bid.AuctionID, auctionerrors.ErrAuctionEnded)
	}
	if bid.Amount <= st.auction.CurrentPrice {
		return model.BidResult{}, fmt.Errorf("apply bid for auction %s: %w: current price is %d",
			bid.AuctionID, auctionerrors.ErrBidTooLow, st.auction.CurrentPrice)
	}

	st.bids = append(st.bids, bid)
	st.auction.CurrentPrice = bid.Amount

	return model.BidResult{
		Bid:      bid,
		NewPrice: st.auction.CurrentPrice,
		BidCount: len(st.bids),
	}, nil
}

// GetBidsByAuction returns all bids for an auction in acceptance order
func (s *MemoryStore) GetBidsByAuction(_ context.Context, auctionID string) ([]model.Bid, error) {
	st, err := s.state(auctionID)
	if err != nil {
		return nil, err
	}

	st.mu.Lock()
	defer st.mu.Unlock()
	return append([]model.Bid(nil), st.bids...), nil
}

// GetHighestBid returns the winning bid so far for an auction
func (s *MemoryStore) GetHighestBid(_ context.Context, auctionID string) (model.Bid, error) {
	st, err := s.state(auctionID)
	if err != nil {
		return model.Bid{}, err
	}

	st.mu.Lock()
	defer st.mu.Unlock()

	if len(st.bids) == 0 {
		return model.Bid{}, fmt.Errorf("get highest bid for auction %s: %w", auctionID, auctionerrors.ErrNoBids)
	}
	// Accepted amounts strictly increase, so the last bid is the highest.
	return st.bids[len(st.bids)-1], nil
}

func (s *MemoryStore) state(auctionID string) (*auctionState, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	st, ok := s.auctions[auctionID]
	if !ok {
		return nil, fmt.Errorf("auction %s: %w", auctionID, auctionerrors.ErrAuctionNotFound)
	}
	return st, nil
}

func (s *MemoryStore) snapshotAuctions() []model.Auction {
	s.mu.RLock()
	states := make([]*auctionState, 0, len(s.auctions))
	for _, st := range s.auctions {
		states = append(states, st)
	}
	s.mu.RUnlock()

	auctions := make([]model.Auction, 0, len(states))
	for _, st := range states {
		st.mu.Lock()
		auctions = append(auctions, st.auction)
		st.mu.Unlock()
	}
	return auctions
}
