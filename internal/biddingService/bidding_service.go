package bidding

import (
	"context"
	"fmt"
	"time"

	"github.com/Abhijit03/auction-app/internal/auctionerrors"
	"github.com/Abhijit03/auction-app/internal/events"
	"github.com/Abhijit03/auction-app/internal/lifecycle"
	"github.com/Abhijit03/auction-app/internal/models"
	"github.com/Abhijit03/auction-app/internal/repository"
	"github.com/Abhijit03/auction-app/utils"
)

// BiddingService is the bidding engine: it validates and applies bids
// against an auction. All current-price mutation funnels through here into
// the store's atomic ApplyBid.
//
// Race policy: first committed bid wins a price level. A caller that loses
// the race is told ErrBidTooLow against the freshly committed price; the
// engine never retries internally.
type BiddingService struct {
	store     repository.AuctionStore
	publisher events.Publisher
}

// NewBiddingService creates a new BiddingService instance. publisher may be
// nil when no live-update consumer is wired.
func NewBiddingService(store repository.AuctionStore, publisher events.Publisher) *BiddingService {
	return &BiddingService{
		store:     store,
		publisher: publisher,
	}
}

// PlaceBid validates and records a bid. Amounts are minor currency units.
// Preconditions are checked in order, each reported as a distinct error:
// auction exists, auction is biddable now, bidder is not the seller, amount
// is positive, amount strictly exceeds the current price. The decisive price
// check is re-executed inside the store's atomic section.
func (s *BiddingService) PlaceBid(ctx context.Context, auctionID, bidderID string, amount int64) (models.BidResult, error) {
	if auctionID == "" || bidderID == "" {
		return models.BidResult{}, fmt.Errorf("service: %w - missing auctionID or bidderID", auctionerrors.ErrInvalidBid)
	}

	now := time.Now().UTC()

	auction, err := s.store.GetAuction(ctx, auctionID)
	if err != nil {
		return models.BidResult{}, fmt.Errorf("service: failed to load auction %s: %w", auctionID, err)
	}
	if !lifecycle.IsAuctionActive(auction, now) {
		return models.BidResult{}, fmt.Errorf("service: auction %s closed at %s: %w",
			auctionID, auction.EndTime.UTC().Format(time.RFC3339), auctionerrors.ErrAuctionEnded)
	}
	if bidderID == auction.SellerID {
		return models.BidResult{}, fmt.Errorf("service: %w - bidder %s is the seller of auction %s",
			auctionerrors.ErrSelfBid, bidderID, auctionID)
	}
	if amount <= 0 {
		return models.BidResult{}, fmt.Errorf("service: %w - non-positive bid amount", auctionerrors.ErrInvalidAmount)
	}
	if amount <= auction.CurrentPrice {
		return models.BidResult{}, fmt.Errorf("service: %w - current price is %s",
			auctionerrors.ErrBidTooLow, utils.FormatAmount(auction.CurrentPrice))
	}

	bid := models.Bid{
		BidID:     utils.GenerateID(),
		AuctionID: auctionID,
		BidderID:  bidderID,
		Amount:    amount,
		CreatedAt: now,
	}

	result, err := s.store.ApplyBid(ctx, bid, now)
	if err != nil {
		// A concurrent bid may have raised the price since the snapshot
		// read; the store reports the rejection against the new floor.
		return models.BidResult{}, fmt.Errorf("service: failed to apply bid for auction %s by bidder %s: %w",
			auctionID, bidderID, err)
	}

	if s.publisher != nil {
		s.publisher.Publish(events.BidEvent{
			AuctionID: auctionID,
			BidderID:  bidderID,
			NewPrice:  result.NewPrice,
			BidCount:  result.BidCount,
		})
	}

	return result, nil
}

// GetBidsForAuction returns all bids for an auction in acceptance order
func (s *BiddingService) GetBidsForAuction(ctx context.Context, auctionID string) ([]models.Bid, error) {
	if auctionID == "" {
		return nil, fmt.Errorf("service: %w - empty auction ID", auctionerrors.ErrInvalidBid)
	}

	bids, err := s.store.GetBidsByAuction(ctx, auctionID)
	if err != nil {
		return nil, fmt.Errorf("service: failed to get bids for auction %s: %w", auctionID, err)
	}

	return bids, nil
}

// GetHighestBid returns the winning bid so far for an auction
func (s *BiddingService) GetHighestBid(ctx context.Context, auctionID string) (models.Bid, error) {
	if auctionID == "" {
		return models.Bid{}, fmt.Errorf("service: %w - empty auction ID", auctionerrors.ErrInvalidBid)
	}

	bid, err := s.store.GetHighestBid(ctx, auctionID)
	if err != nil {
		return models.Bid{}, fmt.Errorf("service: failed to get highest bid for auction %s: %w", auctionID, err)
	}

	return bid, nil
}
