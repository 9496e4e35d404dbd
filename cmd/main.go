package main

import (
	"fmt"
	"os"
	"time"

	redisclient "github.com/akulinich/foodgram-backend/internal/clients/redis"
	"github.com/akulinich/foodgram-backend/internal/config"
	"github.com/akulinich/foodgram-backend/internal/db"
	"github.com/akulinich/foodgram-backend/internal/handlers"
	"github.com/akulinich/foodgram-backend/internal/logger"
	"github.com/akulinich/foodgram-backend/internal/media"
	"github.com/akulinich/foodgram-backend/internal/middleware"
	"github.com/akulinich/foodgram-backend/internal/pdf"
	"github.com/akulinich/foodgram-backend/internal/repos"
	"github.com/akulinich/foodgram-backend/internal/server"
	"github.com/akulinich/foodgram-backend/internal/services"
)

func main() {
	// Logger
	logMode := os.Getenv("LOG_MODE")
	if logMode == "" {
		logMode = "development"
	}
	log, err := logger.New(logMode)
	if err != nil {
		fmt.Printf("Failed to init logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	// Config
	log.Info("Loading configuration from main...")
	cfg, err := config.Load(log)
	if err != nil {
		log.Fatal("Could not load configuration", "error", err)
	}

	// Postgres
	postgresService, err := db.NewPostgresService(cfg.Postgres, log)
	if err != nil {
		log.Fatal("Postgres init failed", "error", err)
	}
	if err = postgresService.AutoMigrateAll(); err != nil {
		log.Fatal("Postgres auto migration failed", "error", err)
	}
	thePG := postgresService.DB()

	// Media storage
	mediaStore, err := media.NewStore(cfg.MediaRoot, log)
	if err != nil {
		log.Fatal("Could not init media store", "error", err)
	}

	// Redis token denylist. The server still runs without it, logout then
	// only drops the refresh token.
	var denylist redisclient.TokenDenylist
	if cfg.RedisAddr != "" {
		denylist, err = redisclient.NewTokenDenylist(cfg.RedisAddr, log)
		if err != nil {
			log.Warn("Could not init token denylist", "error", err)
			denylist = nil
		}
	}

	// Repos
	log.Info("Setting up Repos from main...")
	userRepo := repos.NewUserRepo(thePG, log)
	userTokenRepo := repos.NewUserTokenRepo(thePG, log)
	ingredientRepo := repos.NewIngredientRepo(thePG, log)
	tagRepo := repos.NewTagRepo(thePG, log)
	recipeRepo := repos.NewRecipeRepo(thePG, log)
	recipeIngredientRepo := repos.NewRecipeIngredientRepo(thePG, log)
	shoppingListRepo := repos.NewShoppingListRepo(thePG, log)
	favoriteRepo := repos.NewFavoriteRepo(thePG, log)
	subscriptionRepo := repos.NewSubscriptionRepo(thePG, log)

	// Services
	log.Info("Setting up Services from main...")
	avatarService, err := services.NewAvatarService(cfg.AvatarFontPath, userRepo, mediaStore, log)
	if err != nil {
		log.Warn("Could not init AvatarService, registration proceeds without avatars", "error", err)
		avatarService = nil
	}
	authService := services.NewAuthService(
		thePG,
		log,
		userRepo,
		userTokenRepo,
		avatarService,
		denylist,
		cfg.JWTSecretKey,
		time.Duration(cfg.AccessTokenTTL)*time.Second,
		time.Duration(cfg.RefreshTokenTTL)*time.Second,
	)
	userService := services.NewUserService(thePG, log, userRepo)
	ingredientService := services.NewIngredientService(thePG, log, ingredientRepo)
	tagService := services.NewTagService(thePG, log, tagRepo)
	recipeService := services.NewRecipeService(thePG, log, cfg, recipeRepo, recipeIngredientRepo, ingredientRepo, tagRepo, mediaStore)
	cartService := services.NewCartService(thePG, log, shoppingListRepo, recipeRepo, recipeIngredientRepo)
	favoriteService := services.NewFavoriteService(thePG, log, favoriteRepo, recipeRepo)
	subscriptionService := services.NewSubscriptionService(thePG, log, subscriptionRepo, userRepo, recipeRepo)

	// PDF renderer. A missing font is a configuration error, the export
	// endpoint cannot degrade gracefully.
	renderer, err := pdf.NewRenderer(cfg.Export, log)
	if err != nil {
		log.Fatal("Could not init PDF renderer", "error", err)
	}

	// Handlers
	log.Info("Setting up Handlers from main...")
	authHandler := handlers.NewAuthHandler(authService)
	userHandler := handlers.NewUserHandler(userService)
	recipeHandler := handlers.NewRecipeHandler(recipeService)
	ingredientHandler := handlers.NewIngredientHandler(ingredientService)
	tagHandler := handlers.NewTagHandler(tagService)
	favoriteHandler := handlers.NewFavoriteHandler(favoriteService)
	subscriptionHandler := handlers.NewSubscriptionHandler(subscriptionService)
	cartHandler, err := handlers.NewCartHandler(log, cartService, renderer, cfg.Export)
	if err != nil {
		log.Fatal("Could not init CartHandler", "error", err)
	}

	// Middleware
	authMiddleware := middleware.NewAuthMiddleware(log, authService)

	// Router
	router := server.NewRouter(server.RouterConfig{
		AuthHandler:         authHandler,
		AuthMiddleware:      authMiddleware,
		UserHandler:         userHandler,
		RecipeHandler:       recipeHandler,
		IngredientHandler:   ingredientHandler,
		TagHandler:          tagHandler,
		FavoriteHandler:     favoriteHandler,
		SubscriptionHandler: subscriptionHandler,
		CartHandler:         cartHandler,
		MediaRoot:           mediaStore.Root(),
	})

	log.Info("Starting server", "port", cfg.Port)
	if err := router.Run(":" + cfg.Port); err != nil {
		log.Fatal("Server stopped", "error", err)
	}
}
