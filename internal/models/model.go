package models

import "time"

// User represents a participant in the marketplace. Authentication lives in
// an external identity layer; the core only needs identity and the admin bit.
type User struct {
	UserID    string    `json:"user_id"`
	Username  string    `json:"username"`
	IsAdmin   bool      `json:"is_admin"`
	CreatedAt time.Time `json:"created_at"`
}

// Category classifies auctions
type Category struct {
	CategoryID  string    `json:"category_id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
}

// Auction represents a listed item. All prices are in minor currency units
// (cents); CurrentPrice equals the highest accepted bid amount, or
// StartingPrice while no bid exists.
type Auction struct {
	AuctionID     string    `json:"auction_id"`
	SellerID      string    `json:"seller_id"`
	CategoryID    string    `json:"category_id"`
	Title         string    `json:"title"`
	Description   string    `json:"description"`
	StartingPrice int64     `json:"starting_price"`
	CurrentPrice  int64     `json:"current_price"`
	EndTime       time.Time `json:"end_time"`
	IsActive      bool      `json:"is_active"`
	CreatedAt     time.Time `json:"created_at"`
}

// Bid represents an accepted offer on an auction. Immutable once recorded.
type Bid struct {
	BidID     string    `json:"bid_id"`
	AuctionID string    `json:"auction_id"`
	BidderID  string    `json:"bidder_id"`
	Amount    int64     `json:"amount"`
	CreatedAt time.Time `json:"created_at"`
}

// BidResult is returned on a successful bid placement: the recorded bid plus
// the auction's updated price and total bid count.
type BidResult struct {
	Bid      Bid   `json:"bid"`
	NewPrice int64 `json:"new_price"`
	BidCount int   `json:"bid_count"`
}
