package auction

import (
	"context"
	"fmt"
	"time"

	"github.com/Abhijit03/auction-app/internal/auctionerrors"
	"github.com/Abhijit03/auction-app/internal/models"
	"github.com/Abhijit03/auction-app/internal/repository"
	"github.com/Abhijit03/auction-app/utils"
)

// AuctionService owns auction lifecycle and read paths: creating listings,
// the administrative active toggle, and the query surface. It never touches
// an auction's current price or bids; that is the bidding engine's job.
type AuctionService struct {
	store repository.AuctionStore
}

// NewAuctionService creates a new AuctionService instance
func NewAuctionService(store repository.AuctionStore) *AuctionService {
	return &AuctionService{store: store}
}

// CreateAuction lists an item for auction. The current price starts at the
// starting price and the listing starts active.
func (s *AuctionService) CreateAuction(ctx context.Context, sellerID, categoryID, title, description string, startingPrice int64, endTime time.Time) (models.Auction, error) {
	if sellerID == "" || categoryID == "" || title == "" {
		return models.Auction{}, fmt.Errorf("service: %w - missing sellerID, categoryID or title", auctionerrors.ErrInvalidAuction)
	}
	if startingPrice <= 0 {
		return models.Auction{}, fmt.Errorf("service: %w - non-positive starting price", auctionerrors.ErrInvalidAuction)
	}

	now := time.Now().UTC()
	if !endTime.After(now) {
		return models.Auction{}, fmt.Errorf("service: %w - end time must be in the future", auctionerrors.ErrInvalidAuction)
	}

	if _, err := s.store.GetUser(ctx, sellerID); err != nil {
		return models.Auction{}, fmt.Errorf("service: failed to resolve seller %s: %w", sellerID, err)
	}
	if _, err := s.store.GetCategory(ctx, categoryID); err != nil {
		return models.Auction{}, fmt.Errorf("service: failed to resolve category %s: %w", categoryID, err)
	}

	a := models.Auction{
		AuctionID:     utils.GenerateID(),
		SellerID:      sellerID,
		CategoryID:    categoryID,
		Title:         title,
		Description:   description,
		StartingPrice: startingPrice,
		CurrentPrice:  startingPrice,
		EndTime:       endTime.UTC(),
		IsActive:      true,
		CreatedAt:     now,
	}

	if err := s.store.CreateAuction(ctx, a); err != nil {
		return models.Auction{}, fmt.Errorf("service: failed to create auction: %w", err)
	}

	return a, nil
}

// SetAuctionActive toggles the listing's active flag. Allowed for admins and
// for the auction's own seller; idempotent. The end time is untouched, so an
// ended auction stays non-biddable either way.
func (s *AuctionService) SetAuctionActive(ctx context.Context, actorID, auctionID string, active bool) error {
	actor, err := s.store.GetUser(ctx, actorID)
	if err != nil {
		return fmt.Errorf("service: failed to resolve actor %s: %w", actorID, err)
	}

	a, err := s.store.GetAuction(ctx, auctionID)
	if err != nil {
		return fmt.Errorf("service: failed to load auction %s: %w", auctionID, err)
	}

	if !actor.IsAdmin && actor.UserID != a.SellerID {
		return fmt.Errorf("service: %w - user %s may not toggle auction %s",
			auctionerrors.ErrPermissionDenied, actorID, auctionID)
	}

	if err := s.store.SetAuctionActive(ctx, auctionID, active); err != nil {
		return fmt.Errorf("service: failed to set auction %s active=%t: %w", auctionID, active, err)
	}
	return nil
}

// GetAuction returns a single auction snapshot
func (s *AuctionService) GetAuction(ctx context.Context, auctionID string) (models.Auction, error) {
	if auctionID == "" {
		return models.Auction{}, fmt.Errorf("service: %w - empty auction ID", auctionerrors.ErrInvalidAuction)
	}

	a, err := s.store.GetAuction(ctx, auctionID)
	if err != nil {
		return models.Auction{}, fmt.Errorf("service: failed to get auction %s: %w", auctionID, err)
	}
	return a, nil
}

// ListActive returns currently biddable auctions, newest first
func (s *AuctionService) ListActive(ctx context.Context, limit, offset int) ([]models.Auction, error) {
	if offset < 0 {
		offset = 0
	}

	auctions, err := s.store.ListActive(ctx, time.Now().UTC(), limit, offset)
	if err != nil {
		return nil, fmt.Errorf("service: failed to list active auctions: %w", err)
	}
	return auctions, nil
}

// ListByCategory returns all auctions in a category, newest first
func (s *AuctionService) ListByCategory(ctx context.Context, categoryID string) ([]models.Auction, error) {
	if categoryID == "" {
		return nil, fmt.Errorf("service: %w - empty category ID", auctionerrors.ErrInvalidAuction)
	}

	auctions, err := s.store.ListByCategory(ctx, categoryID)
	if err != nil {
		return nil, fmt.Errorf("service: failed to list auctions for category %s: %w", categoryID, err)
	}
	return auctions, nil
}

// CreateCategory adds a category. Admin-only.
func (s *AuctionService) CreateCategory(ctx context.Context, actorID, name, description string) (models.Category, error) {
	if err := s.requireAdmin(ctx, actorID); err != nil {
		return models.Category{}, err
	}
	if name == "" {
		return models.Category{}, fmt.Errorf("service: %w - empty category name", auctionerrors.ErrInvalidAuction)
	}

	c := models.Category{
		CategoryID:  utils.GenerateID(),
		Name:        name,
		Description: description,
		CreatedAt:   time.Now().UTC(),
	}

	if err := s.store.CreateCategory(ctx, c); err != nil {
		return models.Category{}, fmt.Errorf("service: failed to create category %s: %w", name, err)
	}
	return c, nil
}

// DeleteCategory removes a category. Admin-only; refused while auctions
// still reference it.
func (s *AuctionService) DeleteCategory(ctx context.Context, actorID, categoryID string) error {
	if err := s.requireAdmin(ctx, actorID); err != nil {
		return err
	}

	if err := s.store.DeleteCategory(ctx, categoryID); err != nil {
		return fmt.Errorf("service: failed to delete category %s: %w", categoryID, err)
	}
	return nil
}

// ListCategories returns all categories
func (s *AuctionService) ListCategories(ctx context.Context) ([]models.Category, error) {
	categories, err := s.store.ListCategories(ctx)
	if err != nil {
		return nil, fmt.Errorf("service: failed to list categories: %w", err)
	}
	return categories, nil
}

// requireAdmin is the explicit capability check wrapping administrative
// operations.
func (s *AuctionService) requireAdmin(ctx context.Context, actorID string) error {
	actor, err := s.store.GetUser(ctx, actorID)
	if err != nil {
		return fmt.Errorf("service: failed to resolve actor %s: %w", actorID, err)
	}
	if !actor.IsAdmin {
		return fmt.Errorf("service: %w - user %s is not an admin", auctionerrors.ErrPermissionDenied, actorID)
	}
	return nil
}
