package server

import (
	auction "github.com/Abhijit03/auction-app/internal/auctionService"
	bidding "github.com/Abhijit03/auction-app/internal/biddingService"
	handler "github.com/Abhijit03/auction-app/services/auction/handler"

	"github.com/gin-gonic/gin"
)

// SetupRouter configures all Gin routes for the application
func SetupRouter(biddingService *bidding.BiddingService, auctionService *auction.AuctionService) *gin.Engine {
	router := gin.New() // New router without default middleware for full control over middleware and logging

	router.Use(gin.Recovery())          // recover from panics
	router.Use(RequestLoggerMiddleware) // custom request logging
	router.Use(IdentityMiddleware)      // user id from the external identity layer

	biddingHandler := handler.NewBiddingHandler(biddingService)
	auctionHandler := handler.NewAuctionHandler(auctionService)

	bids := router.Group("/bids")
	{
		bids.POST("", biddingHandler.PlaceBidHandler)
	}

	auctions := router.Group("/auctions")
	{
		auctions.GET("", auctionHandler.ListActiveAuctionsHandler)
		auctions.POST("", auctionHandler.CreateAuctionHandler)
		auctions.GET("/:auction_id", auctionHandler.GetAuctionHandler)
		auctions.GET("/:auction_id/bids", biddingHandler.GetBidsByAuctionHandler)
		auctions.GET("/:auction_id/highest", biddingHandler.GetHighestBidHandler)
		auctions.PATCH("/:auction_id/active", auctionHandler.SetAuctionActiveHandler)
	}

	categories := router.Group("/categories")
	{
		categories.GET("", auctionHandler.ListCategoriesHandler)
		categories.POST("", auctionHandler.CreateCategoryHandler)
		categories.DELETE("/:category_id", auctionHandler.DeleteCategoryHandler)
		categories.GET("/:category_id/auctions", auctionHandler.ListByCategoryHandler)
	}

	return router
}
