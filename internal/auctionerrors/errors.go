package auctionerrors

import "errors"

// Repository-level errors
var (
	ErrAuctionNotFound  = errors.New("auction not found")
	ErrCategoryNotFound = errors.New("category not found")
	ErrUserNotFound     = errors.New("user not found")
	ErrNoBids           = errors.New("no bids found for auction")
	ErrStorageConflict  = errors.New("storage conflict")
)

// business logic errors
var (
	ErrInvalidAuction    = errors.New("invalid auction")
	ErrInvalidBid        = errors.New("invalid bid")
	ErrAuctionEnded      = errors.New("auction has ended")
	ErrSelfBid           = errors.New("sellers cannot bid on their own auction")
	ErrInvalidAmount     = errors.New("invalid bid amount")
	ErrBidTooLow         = errors.New("bid amount too low")
	ErrPermissionDenied  = errors.New("permission denied")
	ErrCategoryInUse     = errors.New("category has auctions and cannot be deleted")
	ErrDuplicateCategory = errors.New("category already exists")
)
