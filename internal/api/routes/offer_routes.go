package routes

import (
	"recruit-api/internal/api/handlers"

	"github.com/gin-gonic/gin"
)

// RegisterOfferRoutes registers the public catalogue and the recruiter's own
// offer management.
func RegisterOfferRoutes(rg *gin.RouterGroup, offerHandler handlers.OfferHandlerInterface, optionalAuth, authMiddleware, recruiterOnly gin.HandlerFunc) {
	offers := rg.Group("/offers")
	offers.Use(optionalAuth)
	{
		offers.GET("", offerHandler.ListOffers)
		offers.GET("/:id", offerHandler.GetOffer)
	}

	mine := rg.Group("/recruiter/offers")
	mine.Use(authMiddleware, recruiterOnly)
	{
		mine.POST("", offerHandler.CreateOffer)
		mine.GET("", offerHandler.ListMyOffers)
		mine.PUT("/:id", offerHandler.UpdateOffer)
		mine.POST("/:id/submit", offerHandler.SubmitOffer)
		mine.PATCH("/:id/visibility", offerHandler.SetOfferOpen)
	}
}
