package routes

import (
	"log/slog"
	"net/http"

	"food-ordering-api/handlers"
	"food-ordering-api/middleware"
	"food-ordering-api/store"

	"github.com/gin-gonic/gin"
)

type Deps struct {
	Store      *store.Store
	Tokens     *middleware.TokenService
	Logger     *slog.Logger
	CORSOrigin string
}

// NewRouter builds the engine with the shared middleware stack and every route.
func NewRouter(d Deps) (*gin.Engine, error) {
	if err := handlers.RegisterValidators(); err != nil {
		return nil, err
	}

	logger := d.Logger
	if logger == nil {
		logger = slog.Default()
	}

	r := gin.New()
	r.Use(gin.Recovery(), middleware.RequestLogger(logger), middleware.CORS(d.CORSOrigin))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "healthy",
			"service": "Food Ordering API",
		})
	})

	SetupRoutes(r, handlers.New(d.Store, d.Tokens), d.Tokens)
	return r, nil
}

func SetupRoutes(r *gin.Engine, h *handlers.Handler, tokens *middleware.TokenService) {
	// ── Public routes ──────────────────────────────────────────────
	public := r.Group("/api")
	{
		public.GET("/categories", h.ListCategories)
		public.GET("/meals", h.ListMeals)
		public.POST("/orders", h.PlaceOrder)
		public.POST("/login", h.Login)
	}

	// ── Admin routes ───────────────────────────────────────────────
	admin := r.Group("/api/admin")
	admin.Use(tokens.AuthRequired())
	{
		admin.GET("/me", h.Me)
		admin.GET("/orders", h.AdminListOrders)

		admin.POST("/meals", h.CreateMeal)
		admin.PUT("/meals/:id", h.UpdateMeal)
		admin.DELETE("/meals/:id", h.DeleteMeal)

		admin.POST("/categories", h.CreateCategory)
		admin.DELETE("/categories/:id", h.DeleteCategory)
	}
}
