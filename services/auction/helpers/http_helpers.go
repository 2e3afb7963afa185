package helpers

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/Abhijit03/auction-app/internal/auctionerrors"
	model "github.com/Abhijit03/auction-app/internal/models"
	"github.com/Abhijit03/auction-app/utils"

	"github.com/gin-gonic/gin"
)

// HandleBindError sends a standardized JSON error for binding failures
func HandleBindError(c *gin.Context, handlerName string, err error) {
	wrappedErr := fmt.Errorf("invalid request payload: %w", err)
	utils.JSONError(c, http.StatusBadRequest, wrappedErr, "invalid request payload")
	utils.Warn(handlerName+": binding error", map[string]any{"error": err.Error()})
}

// MapErrorToHTTP maps domain/service errors to HTTP status code and message
func MapErrorToHTTP(err error) (int, string) {
	switch {
	case errors.Is(err, auctionerrors.ErrAuctionNotFound):
		return http.StatusNotFound, "auction not found"
	case errors.Is(err, auctionerrors.ErrCategoryNotFound):
		return http.StatusNotFound, "category not found"
	case errors.Is(err, auctionerrors.ErrUserNotFound):
		return http.StatusNotFound, "user not found"
	case errors.Is(err, auctionerrors.ErrAuctionEnded):
		return http.StatusConflict, "auction has ended"
	case errors.Is(err, auctionerrors.ErrSelfBid):
		return http.StatusForbidden, "sellers cannot bid on their own auction"
	case errors.Is(err, auctionerrors.ErrInvalidAmount):
		return http.StatusBadRequest, "invalid bid amount"
	case errors.Is(err, auctionerrors.ErrBidTooLow):
		return http.StatusConflict, "bid amount too low"
	case errors.Is(err, auctionerrors.ErrInvalidBid):
		return http.StatusBadRequest, "invalid bid details"
	case errors.Is(err, auctionerrors.ErrInvalidAuction):
		return http.StatusBadRequest, "invalid auction details"
	case errors.Is(err, auctionerrors.ErrPermissionDenied):
		return http.StatusForbidden, "permission denied"
	case errors.Is(err, auctionerrors.ErrDuplicateCategory):
		return http.StatusConflict, "category already exists"
	case errors.Is(err, auctionerrors.ErrCategoryInUse):
		return http.StatusConflict, "category has auctions and cannot be deleted"
	case errors.Is(err, auctionerrors.ErrStorageConflict):
		return http.StatusServiceUnavailable, "storage conflict, please retry"
	case errors.Is(err, auctionerrors.ErrNoBids):
		return http.StatusOK, "no bids found for auction"
	default:
		return http.StatusInternalServerError, "internal server error"
	}
}

// LogSuccess is a small helper to standardize logging of successful operations
func LogSuccess(handlerName, message string, ctx map[string]any) {
	utils.Info(handlerName+": "+message, ctx)
}

// ToAuctionResponse converts an auction to its wire shape
func ToAuctionResponse(a model.Auction) AuctionResponse {
	return AuctionResponse{
		AuctionID:     a.AuctionID,
		SellerID:      a.SellerID,
		CategoryID:    a.CategoryID,
		Title:         a.Title,
		Description:   a.Description,
		StartingPrice: utils.FormatAmount(a.StartingPrice),
		CurrentPrice:  utils.FormatAmount(a.CurrentPrice),
		EndTime:       a.EndTime.UTC().Format(time.RFC3339),
		IsActive:      a.IsActive,
		CreatedAt:     a.CreatedAt.UTC().Format(time.RFC3339),
	}
}

// ToAuctionResponses converts a slice of auctions to wire shape
func ToAuctionResponses(auctions []model.Auction) []AuctionResponse {
	out := make([]AuctionResponse, 0, len(auctions))
	for _, a := range auctions {
		out = append(out, ToAuctionResponse(a))
	}
	return out
}

// ToBidResponse converts a bid to its wire shape
func ToBidResponse(b model.Bid) BidResponse {
	return BidResponse{
		BidID:     b.BidID,
		AuctionID: b.AuctionID,
		BidderID:  b.BidderID,
		Amount:    utils.FormatAmount(b.Amount),
		CreatedAt: b.CreatedAt.UTC().Format(time.RFC3339),
	}
}
