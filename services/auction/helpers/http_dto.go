package helpers

// Request/Response DTOs. Amounts travel as decimal currency strings and are
// converted to minor units at the boundary.

type PlaceBidRequest struct {
	AuctionID string `json:"auction_id" binding:"required"`
	BidderID  string `json:"bidder_id" binding:"required"`
	Amount    string `json:"amount" binding:"required"`
}

type BidResponse struct {
	BidID     string `json:"bid_id"`
	AuctionID string `json:"auction_id"`
	BidderID  string `json:"bidder_id"`
	Amount    string `json:"amount"`
	CreatedAt string `json:"created_at"`
}

type PlaceBidResponse struct {
	BidID    string `json:"bid_id"`
	NewPrice string `json:"new_price"`
	BidCount int    `json:"bid_count"`
}

type CreateAuctionRequest struct {
	SellerID      string `json:"seller_id" binding:"required"`
	CategoryID    string `json:"category_id" binding:"required"`
	Title         string `json:"title" binding:"required"`
	Description   string `json:"description"`
	StartingPrice string `json:"starting_price" binding:"required"`
	EndTime       string `json:"end_time" binding:"required"` // RFC3339
}

type AuctionResponse struct {
	AuctionID     string `json:"auction_id"`
	SellerID      string `json:"seller_id"`
	CategoryID    string `json:"category_id"`
	Title         string `json:"title"`
	Description   string `json:"description"`
	StartingPrice string `json:"starting_price"`
	CurrentPrice  string `json:"current_price"`
	EndTime       string `json:"end_time"`
	IsActive      bool   `json:"is_active"`
	CreatedAt     string `json:"created_at"`
}

type SetActiveRequest struct {
	Active *bool `json:"active" binding:"required"`
}

type CreateCategoryRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
}

type CategoryResponse struct {
	CategoryID  string `json:"category_id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}
