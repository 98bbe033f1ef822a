package handlers

import (
	"errors"
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/rs/cors"
	"go.uber.org/zap"

	"github.com/calvinlm/Arco-Prototype/logging"
	"github.com/calvinlm/Arco-Prototype/models"
	"github.com/calvinlm/Arco-Prototype/services"
)

// ProfileHistory supplies the read-only parts of the profile screen.
type ProfileHistory interface {
	SavedDesigns() []models.SavedDesign
	Orders() []models.OrderHistory
}

// Server holds everything the HTTP handlers need.
type Server struct {
	Sessions   *services.SessionRegistry
	Catalog    *services.Catalog
	Currencies *services.CurrencyConverter
	Redirector *services.CheckoutRedirector
	History    ProfileHistory
	Tokens     *TokenIssuer
	Logger     *zap.Logger
}

var configureBinding sync.Once

// Router registers every route on a new gin engine.
func (s *Server) Router() *gin.Engine {
	logger := logging.OrNop(s.Logger)
	configureBinding.Do(func() {
		if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
			services.ConfigureValidator(v)
		}
	})

	router := gin.New()
	router.Use(gin.Recovery(), RequestLogger(logger))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":   "healthy",
			"message":  "Arco server is running",
			"sessions": s.Sessions.Len(),
			"currency": gin.H{
				"default":   s.Currencies.DefaultCurrency(),
				"available": s.Currencies.Currencies(),
			},
		})
	})

	api := router.Group("/api/v1")
	{
		api.POST("/sessions", s.CreateSession)
		api.DELETE("/sessions", s.SessionMiddleware(), s.EndSession)

		products := api.Group("/products")
		{
			products.GET("", s.ListProducts)
			products.GET("/:id", s.GetProduct)
		}

		plans := api.Group("/floor-plans")
		{
			plans.GET("", s.ListFloorPlans)
			plans.GET("/:id", s.GetFloorPlan)
		}

		cart := api.Group("/cart", s.SessionMiddleware())
		{
			cart.GET("", s.GetCart)
			cart.GET("/summary", s.GetCartSummary)
			cart.GET("/events", s.CartEvents)
			cart.POST("/items", s.AddCartItem)
			cart.PUT("/items/:id", s.UpdateCartItem)
			cart.DELETE("/items/:id", s.RemoveCartItem)
			cart.DELETE("", s.ClearCart)
		}

		api.POST("/checkout", s.SessionMiddleware(), s.Checkout)

		room := api.Group("/room", s.SessionMiddleware())
		{
			room.GET("", s.GetRoom)
			room.PUT("/plan", s.SelectFloorPlan)
			room.PUT("/view", s.SetViewMode)
			room.POST("/items", s.PlaceItem)
			room.PUT("/items/:id/select", s.SelectPlacedItem)
			room.DELETE("/items/:id", s.RemovePlacedItem)
		}

		me := api.Group("", s.SessionMiddleware())
		{
			me.GET("/settings", s.GetSettings)
			me.PUT("/settings", s.UpdateSettings)
			me.GET("/profile", s.GetProfile)
			me.PUT("/profile", s.UpdateProfile)
		}
	}

	return router
}

// Handler wraps the router with CORS for the given origins.
func (s *Server) Handler(allowedOrigins []string) http.Handler {
	c := cors.New(cors.Options{
		AllowedOrigins: allowedOrigins,
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Content-Type", "Authorization"},
	})
	return c.Handler(s.Router())
}

// respondError maps service errors to HTTP statuses.
func respondError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, services.ErrProductNotFound),
		errors.Is(err, services.ErrFloorPlanNotFound),
		errors.Is(err, services.ErrPlacedItemNotFound):
		status = http.StatusNotFound
	case errors.Is(err, services.ErrEmptyCart):
		status = http.StatusConflict
	case errors.Is(err, services.ErrUnknownCategory),
		errors.Is(err, services.ErrUnknownPlatform),
		errors.Is(err, services.ErrInvalidCustomer),
		errors.Is(err, services.ErrInvalidViewMode),
		errors.Is(err, services.ErrInvalidSetting),
		errors.Is(err, services.ErrInvalidProfile):
		status = http.StatusBadRequest
	}
	c.JSON(status, gin.H{"error": err.Error()})
}

// respondBindError reports a body that failed its binding rules as kind, and
// anything else as malformed.
func respondBindError(c *gin.Context, err, kind error) {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		respondError(c, services.InvalidFields(kind, verrs))
		return
	}
	c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
}
