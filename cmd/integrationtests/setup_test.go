package integrationtests

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http/httptest"
	"testing"
	"time"

	auction "github.com/Abhijit03/auction-app/internal/auctionService"
	bidding "github.com/Abhijit03/auction-app/internal/biddingService"
	model "github.com/Abhijit03/auction-app/internal/models"
	"github.com/Abhijit03/auction-app/internal/repository"
	"github.com/Abhijit03/auction-app/internal/server"
	"github.com/Abhijit03/auction-app/services/auction/helpers"

	"github.com/gin-gonic/gin"
)

// Fixture is the in-memory application a test drives end to end.
type Fixture struct {
	Router *gin.Engine
	Store  *repository.MemoryStore
}

// SetupTestRouter initializes the full router over an in-memory store and
// seeds it with the given users, categories and auctions.
func SetupTestRouter(t *testing.T, users []model.User, categories []model.Category, auctions []model.Auction) *Fixture {
	t.Helper()
	gin.SetMode(gin.TestMode)

	ctx := context.Background()
	store := repository.NewMemoryStore()
	for _, u := range users {
		if err := store.CreateUser(ctx, u); err != nil {
			t.Fatalf("failed to seed user %s: %v", u.UserID, err)
		}
	}
	for _, c := range categories {
		if err := store.CreateCategory(ctx, c); err != nil {
			t.Fatalf("failed to seed category %s: %v", c.Name, err)
		}
	}
	for _, a := range auctions {
		if err := store.CreateAuction(ctx, a); err != nil {
			t.Fatalf("failed to seed auction %s: %v", a.AuctionID, err)
		}
	}

	biddingService := bidding.NewBiddingService(store, nil)
	auctionService := auction.NewAuctionService(store)
	return &Fixture{
		Router: server.SetupRouter(biddingService, auctionService),
		Store:  store,
	}
}

// ExecuteRequest executes an HTTP request with an optional identity header
// and parses the JSON response envelope.
func ExecuteRequest(t *testing.T, f *Fixture, method, url, actorID string, body any) (map[string]any, *httptest.ResponseRecorder) {
	t.Helper()

	var reqBody []byte
	var err error

	switch v := body.(type) {
	case nil:
	case []byte:
		reqBody = v
	case string:
		reqBody = []byte(v)
	default:
		reqBody, err = json.Marshal(v)
		if err != nil {
			t.Fatalf("failed to marshal body: %v", err)
		}
	}

	req := httptest.NewRequest(method, url, bytes.NewReader(reqBody))
	req.Header.Set("Content-Type", "application/json")
	if actorID != "" {
		req.Header.Set(helpers.UserIDHeader, actorID)
	}

	w := httptest.NewRecorder()
	f.Router.ServeHTTP(w, req)

	var resp map[string]any
	if len(w.Body.Bytes()) > 0 {
		if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
			t.Fatalf("failed to unmarshal response: %v", err)
		}
	}
	return resp, w
}

// Data extracts the data field of a response envelope as an object.
func Data(t *testing.T, resp map[string]any) map[string]any {
	t.Helper()
	data, ok := resp["data"].(map[string]any)
	if !ok {
		t.Fatalf("response has no object data: %v", resp)
	}
	return data
}

// DataList extracts the data field of a response envelope as a list.
func DataList(t *testing.T, resp map[string]any) []any {
	t.Helper()
	data, ok := resp["data"].([]any)
	if !ok {
		t.Fatalf("response has no list data: %v", resp)
	}
	return data
}

func openAuction(auctionID, sellerID, categoryID string, price int64) model.Auction {
	now := time.Now().UTC()
	return model.Auction{
		AuctionID:     auctionID,
		SellerID:      sellerID,
		CategoryID:    categoryID,
		Title:         "seeded listing " + auctionID,
		StartingPrice: price,
		CurrentPrice:  price,
		EndTime:       now.Add(time.Hour),
		IsActive:      true,
		CreatedAt:     now,
	}
}
