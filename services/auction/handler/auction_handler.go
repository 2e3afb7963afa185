package handler

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"time"

	model "github.com/Abhijit03/auction-app/internal/models"
	"github.com/Abhijit03/auction-app/services/auction/helpers"
	"github.com/Abhijit03/auction-app/utils"

	"github.com/gin-gonic/gin"
)

type AuctionServiceInterface interface {
	CreateAuction(ctx context.Context, sellerID, categoryID, title, description string, startingPrice int64, endTime time.Time) (model.Auction, error)
	SetAuctionActive(ctx context.Context, actorID, auctionID string, active bool) error
	GetAuction(ctx context.Context, auctionID string) (model.Auction, error)
	ListActive(ctx context.Context, limit, offset int) ([]model.Auction, error)
	ListByCategory(ctx context.Context, categoryID string) ([]model.Auction, error)
	CreateCategory(ctx context.Context, actorID, name, description string) (model.Category, error)
	DeleteCategory(ctx context.Context, actorID, categoryID string) error
	ListCategories(ctx context.Context) ([]model.Category, error)
}

type AuctionHandler struct {
	service AuctionServiceInterface
}

func NewAuctionHandler(service AuctionServiceInterface) *AuctionHandler {
	return &AuctionHandler{service: service}
}

// CreateAuctionHandler handles POST /auctions
func (h *AuctionHandler) CreateAuctionHandler(c *gin.Context) {
	var req helpers.CreateAuctionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.HandleBindError(c, "CreateAuctionHandler", err)
		return
	}

	startingPrice, err := utils.ParseAmount(req.StartingPrice)
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, err, "invalid starting price")
		utils.Warn("CreateAuctionHandler: unparseable starting price", map[string]any{"starting_price": req.StartingPrice})
		return
	}

	endTime, err := time.Parse(time.RFC3339, req.EndTime)
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, err, "invalid end time, expected RFC3339")
		utils.Warn("CreateAuctionHandler: unparseable end time", map[string]any{"end_time": req.EndTime})
		return
	}

	a, err := h.service.CreateAuction(c.Request.Context(), req.SellerID, req.CategoryID, req.Title, req.Description, startingPrice, endTime)
	if err != nil {
		status, message := helpers.MapErrorToHTTP(err)
		utils.JSONError(c, status, fmt.Errorf("%s: %w", message, err), message)
		utils.Error("CreateAuctionHandler: failed to create auction", map[string]any{
			"seller_id":   req.SellerID,
			"category_id": req.CategoryID,
			"error":       err.Error(),
		})
		return
	}

	utils.JSONResponse(c, http.StatusCreated, helpers.ToAuctionResponse(a), "auction created successfully")
	helpers.LogSuccess("CreateAuctionHandler", "auction created successfully", map[string]any{
		"auction_id": a.AuctionID,
		"seller_id":  a.SellerID,
	})
}

// GetAuctionHandler handles GET /auctions/:auction_id
func (h *AuctionHandler) GetAuctionHandler(c *gin.Context) {
	auctionID := c.Param("auction_id")
	a, err := h.service.GetAuction(c.Request.Context(), auctionID)
	if err != nil {
		status, message := helpers.MapErrorToHTTP(err)
		utils.JSONError(c, status, fmt.Errorf("%s: %w", message, err), message)
		utils.Warn("GetAuctionHandler: error retrieving auction", map[string]any{"auction_id": auctionID, "error": err.Error()})
		return
	}

	utils.JSONResponse(c, http.StatusOK, helpers.ToAuctionResponse(a), "auction retrieved successfully")
}

// ListActiveAuctionsHandler handles GET /auctions?limit=&offset=
func (h *AuctionHandler) ListActiveAuctionsHandler(c *gin.Context) {
	limit := parseIntQuery(c, "limit", 50)
	offset := parseIntQuery(c, "offset", 0)

	auctions, err := h.service.ListActive(c.Request.Context(), limit, offset)
	if err != nil {
		status, message := helpers.MapErrorToHTTP(err)
		utils.JSONError(c, status, fmt.Errorf("%s: %w", message, err), message)
		utils.Warn("ListActiveAuctionsHandler: error listing auctions", map[string]any{"error": err.Error()})
		return
	}

	utils.JSONResponse(c, http.StatusOK, helpers.ToAuctionResponses(auctions), "active auctions retrieved successfully")
}

// SetAuctionActiveHandler handles PATCH /auctions/:auction_id/active
func (h *AuctionHandler) SetAuctionActiveHandler(c *gin.Context) {
	actorID := helpers.ActorID(c)
	if actorID == "" {
		utils.JSONError(c, http.StatusUnauthorized, fmt.Errorf("missing %s header", helpers.UserIDHeader), "identity required")
		return
	}

	var req helpers.SetActiveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.HandleBindError(c, "SetAuctionActiveHandler", err)
		return
	}

	auctionID := c.Param("auction_id")
	if err := h.service.SetAuctionActive(c.Request.Context(), actorID, auctionID, *req.Active); err != nil {
		status, message := helpers.MapErrorToHTTP(err)
		utils.JSONError(c, status, fmt.Errorf("%s: %w", message, err), message)
		utils.Warn("SetAuctionActiveHandler: toggle failed", map[string]any{
			"auction_id": auctionID,
			"actor_id":   actorID,
			"error":      err.Error(),
		})
		return
	}

	utils.JSONResponse(c, http.StatusOK, gin.H{"auction_id": auctionID, "active": *req.Active}, "auction active flag updated")
	helpers.LogSuccess("SetAuctionActiveHandler", "auction active flag updated", map[string]any{
		"auction_id": auctionID,
		"active":     *req.Active,
		"actor_id":   actorID,
	})
}

// ListByCategoryHandler handles GET /categories/:category_id/auctions
func (h *AuctionHandler) ListByCategoryHandler(c *gin.Context) {
	categoryID := c.Param("category_id")
	auctions, err := h.service.ListByCategory(c.Request.Context(), categoryID)
	if err != nil {
		status, message := helpers.MapErrorToHTTP(err)
		utils.JSONError(c, status, fmt.Errorf("%s: %w", message, err), message)
		utils.Warn("ListByCategoryHandler: error listing auctions", map[string]any{"category_id": categoryID, "error": err.Error()})
		return
	}

	utils.JSONResponse(c, http.StatusOK, helpers.ToAuctionResponses(auctions), "auctions retrieved successfully")
}

// ListCategoriesHandler handles GET /categories
func (h *AuctionHandler) ListCategoriesHandler(c *gin.Context) {
	categories, err := h.service.ListCategories(c.Request.Context())
	if err != nil {
		status, message := helpers.MapErrorToHTTP(err)
		utils.JSONError(c, status, fmt.Errorf("%s: %w", message, err), message)
		return
	}

	resp := make([]helpers.CategoryResponse, 0, len(categories))
	for _, cat := range categories {
		resp = append(resp, helpers.CategoryResponse{
			CategoryID:  cat.CategoryID,
			Name:        cat.Name,
			Description: cat.Description,
		})
	}
	utils.JSONResponse(c, http.StatusOK, resp, "categories retrieved successfully")
}

// CreateCategoryHandler handles POST /categories
func (h *AuctionHandler) CreateCategoryHandler(c *gin.Context) {
	actorID := helpers.ActorID(c)
	if actorID == "" {
		utils.JSONError(c, http.StatusUnauthorized, fmt.Errorf("missing %s header", helpers.UserIDHeader), "identity required")
		return
	}

	var req helpers.CreateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.HandleBindError(c, "CreateCategoryHandler", err)
		return
	}

	cat, err := h.service.CreateCategory(c.Request.Context(), actorID, req.Name, req.Description)
	if err != nil {
		status, message := helpers.MapErrorToHTTP(err)
		utils.JSONError(c, status, fmt.Errorf("%s: %w", message, err), message)
		utils.Warn("CreateCategoryHandler: create failed", map[string]any{"name": req.Name, "actor_id": actorID, "error": err.Error()})
		return
	}

	resp := helpers.CategoryResponse{CategoryID: cat.CategoryID, Name: cat.Name, Description: cat.Description}
	utils.JSONResponse(c, http.StatusCreated, resp, "category created successfully")
	helpers.LogSuccess("CreateCategoryHandler", "category created successfully", map[string]any{
		"category_id": cat.CategoryID,
		"name":        cat.Name,
	})
}

// DeleteCategoryHandler handles DELETE /categories/:category_id
func (h *AuctionHandler) DeleteCategoryHandler(c *gin.Context) {
	actorID := helpers.ActorID(c)
	if actorID == "" {
		utils.JSONError(c, http.StatusUnauthorized, fmt.Errorf("missing %s header", helpers.UserIDHeader), "identity required")
		return
	}

	categoryID := c.Param("category_id")
	if err := h.service.DeleteCategory(c.Request.Context(), actorID, categoryID); err != nil {
		status, message := helpers.MapErrorToHTTP(err)
		utils.JSONError(c, status, fmt.Errorf("%s: %w", message, err), message)
		utils.Warn("DeleteCategoryHandler: delete failed", map[string]any{"category_id": categoryID, "actor_id": actorID, "error": err.Error()})
		return
	}

	utils.JSONResponse(c, http.StatusOK, gin.H{"category_id": categoryID}, "category deleted successfully")
}

func parseIntQuery(c *gin.Context, name string, fallback int) int {
	raw := c.Query(name)
	if raw == "" {
		return fallback
	}
	v, err := strconv.Atoi(raw)
	if err != nil || v < 0 {
		return fallback
	}
	return v
}
