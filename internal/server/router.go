package server

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/akulinich/foodgram-backend/internal/handlers"
	"github.com/akulinich/foodgram-backend/internal/middleware"
)

type RouterConfig struct {
	AuthHandler         *handlers.AuthHandler
	AuthMiddleware      *middleware.AuthMiddleware
	UserHandler         *handlers.UserHandler
	RecipeHandler       *handlers.RecipeHandler
	IngredientHandler   *handlers.IngredientHandler
	TagHandler          *handlers.TagHandler
	FavoriteHandler     *handlers.FavoriteHandler
	SubscriptionHandler *handlers.SubscriptionHandler
	CartHandler         *handlers.CartHandler
	MediaRoot           string
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	router := gin.Default()

	// Cors
	router.Use(cors.New(cors.Config{
		AllowOrigins: []string{
			"http://localhost:80",
			"http://localhost:3000",
			"http://localhost:5174",
		},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "PATCH", "OPTIONS"},
		AllowHeaders:     []string{"Authorization", "Content-Type", "X-Requested-With"},
		AllowCredentials: true,
	}))

	// ===============
	// || Public    ||
	// ===============
	router.GET("/healthcheck", handlers.HealthCheck)
	router.Static("/media", cfg.MediaRoot)
	api := router.Group("/api")
	{
		api.POST("/register", cfg.AuthHandler.Register)
		api.POST("/login", cfg.AuthHandler.Login)
		api.POST("/refresh", cfg.AuthHandler.Refresh)
		api.GET("/recipes", cfg.RecipeHandler.List)
		api.GET("/recipes/:id", cfg.RecipeHandler.Get)
		api.GET("/ingredients", cfg.IngredientHandler.List)
		api.GET("/tags", cfg.TagHandler.List)
	}

	// ===============
	// || Protected ||
	// ===============
	protected := router.Group("/api")
	protected.Use(cfg.AuthMiddleware.RequireAuth())
	// Auth
	protected.POST("/logout", cfg.AuthHandler.Logout)
	// User
	protected.GET("/users/me", cfg.UserHandler.GetMe)
	protected.GET("/users/:id", cfg.UserHandler.GetByID)
	// Recipes
	protected.POST("/recipes", cfg.RecipeHandler.Create)
	protected.PATCH("/recipes/:id", cfg.RecipeHandler.Update)
	protected.DELETE("/recipes/:id", cfg.RecipeHandler.Delete)
	// Favorites
	protected.GET("/favorites", cfg.FavoriteHandler.List)
	protected.POST("/recipes/:id/favorite", cfg.FavoriteHandler.Add)
	protected.DELETE("/recipes/:id/favorite", cfg.FavoriteHandler.Remove)
	// Subscriptions
	protected.GET("/subscriptions", cfg.SubscriptionHandler.List)
	protected.POST("/users/:id/subscribe", cfg.SubscriptionHandler.Subscribe)
	protected.DELETE("/users/:id/subscribe", cfg.SubscriptionHandler.Unsubscribe)
	// Shopping cart
	protected.POST("/recipes/:id/shopping_cart", cfg.CartHandler.Add)
	protected.DELETE("/recipes/:id/shopping_cart", cfg.CartHandler.Remove)
	protected.GET("/recipes/download_shopping_cart", cfg.CartHandler.Download)

	return router
}
