// README: HTTP router registration.
package http

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"jetzy/internal/http/handlers"
	"jetzy/internal/http/middleware"
	"jetzy/internal/modules/conversation"
	"jetzy/internal/modules/travel"
	"jetzy/internal/modules/usercontext"
)

func NewRouter(
	conv *conversation.Service,
	travelSvc *travel.Service,
	store usercontext.Store,
	log *zap.Logger,
) *gin.Engine {
	r := gin.New()
	r.Use(middleware.Recovery(log))
	r.Use(middleware.Logging(log))
	r.Use(middleware.CORS())

	chat := handlers.NewChatHandler(conv)
	r.POST("/api/chat", chat.Chat)

	search := handlers.NewTravelHandler(travelSvc)
	r.POST("/api/flights/search", search.SearchFlights)
	r.POST("/api/restaurants/search", search.SearchRestaurants)
	r.POST("/api/transport/search", search.SearchTransport)

	user := handlers.NewUserHandler(store)
	r.GET("/api/user/:id/preferences", user.GetPreferences)
	r.PUT("/api/user/:id/preferences", user.UpdatePreferences)
	r.PUT("/api/user/:id/location", user.UpdateLocation)

	r.GET("/api/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":    "online",
			"timestamp": time.Now().UTC(),
		})
	})

	return r
}
