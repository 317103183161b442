package main

import (
	"context"
	"log"
	"log/slog"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/cors"

	"github.com/LemonieOff/ARDeco-server-sub000/internal/auth"
	"github.com/LemonieOff/ARDeco-server-sub000/internal/config"
	"github.com/LemonieOff/ARDeco-server-sub000/internal/handler"
	"github.com/LemonieOff/ARDeco-server-sub000/internal/httputil"
	"github.com/LemonieOff/ARDeco-server-sub000/internal/middleware"
	"github.com/LemonieOff/ARDeco-server-sub000/internal/policy"
	"github.com/LemonieOff/ARDeco-server-sub000/internal/repository/postgres"
	blockSvc "github.com/LemonieOff/ARDeco-server-sub000/internal/service/block"
	catalogSvc "github.com/LemonieOff/ARDeco-server-sub000/internal/service/catalog"
	commentSvc "github.com/LemonieOff/ARDeco-server-sub000/internal/service/comment"
	gallerySvc "github.com/LemonieOff/ARDeco-server-sub000/internal/service/gallery"
	socialSvc "github.com/LemonieOff/ARDeco-server-sub000/internal/service/social"
)

func main() {
	// Load .env file (silently ignore if it doesn't exist - for production)
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Setup structured logging
	logLevel := slog.LevelInfo
	if cfg.Environment == "dev" {
		logLevel = slog.LevelDebug
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel,
	}))
	slog.SetDefault(logger)

	logger.Info("server starting",
		"environment", cfg.Environment,
		"port", cfg.Port,
		"table_prefix", cfg.TablePrefix,
	)

	// Token verifier
	verifier, err := auth.NewJWKSVerifier(cfg.JWKSURL, logger)
	if err != nil {
		log.Fatalf("Failed to create token verifier: %v", err)
	}
	defer verifier.Close()

	// Create pgx connection pool
	ctx := context.Background()
	pool, err := postgres.CreateConnectionPool(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to create connection pool: %v", err)
	}
	defer pool.Close()

	logger.Info("database connected",
		"max_conns", 25,
		"min_conns", 5,
	)

	// Create repositories
	repoConfig := &postgres.RepositoryConfig{
		Pool:   pool,
		Tables: postgres.NewTableNames(cfg.TablePrefix),
		Logger: logger,
	}
	userRepo := postgres.NewUserRepository(repoConfig)
	blockRepo := postgres.NewBlockRepository(repoConfig)
	galleryRepo := postgres.NewGalleryRepository(repoConfig)
	commentRepo := postgres.NewCommentRepository(repoConfig)
	likeRepo := postgres.NewLikeRepository(repoConfig)
	favoriteRepo := postgres.NewFavoriteRepository(repoConfig)
	catalogRepo := postgres.NewCatalogRepository(repoConfig)
	archiveRepo := postgres.NewArchiveRepository(repoConfig)
	txManager := postgres.NewTransactionManager(pool)

	// Policy engine - every endpoint's access decision goes through it
	engine := policy.NewEngine(blockRepo)

	// Actor resolution (token -> user -> actor)
	resolver := auth.NewResolver(verifier, userRepo, logger)

	// Services
	blocks := blockSvc.NewService(blockRepo, logger)
	galleries := gallerySvc.NewService(galleryRepo, engine, logger)
	comments := commentSvc.NewService(commentRepo, galleryRepo, userRepo, engine, logger)
	social := socialSvc.NewService(likeRepo, favoriteRepo, galleryRepo, catalogRepo, engine, logger)
	catalog := catalogSvc.NewService(catalogRepo, archiveRepo, txManager, engine, logger)

	// Handlers
	galleryHandler := handler.NewGalleryHandler(galleries, logger)
	commentHandler := handler.NewCommentHandler(comments, logger)
	blockHandler := handler.NewBlockHandler(blocks, logger)
	socialHandler := handler.NewSocialHandler(social, logger)
	catalogHandler := handler.NewCatalogHandler(catalog, logger)

	logger.Info("services initialized")

	// Create HTTP router (Go 1.22+ enhanced patterns)
	mux := http.NewServeMux()

	// Health check
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		httputil.RespondOK(w, http.StatusOK, "OK", map[string]string{"status": "healthy"})
	})

	// Gallery routes
	mux.HandleFunc("GET /api/galleries", galleryHandler.ListPublic)
	mux.HandleFunc("POST /api/galleries", galleryHandler.Create)
	mux.HandleFunc("GET /api/galleries/{id}", galleryHandler.Get)
	mux.HandleFunc("PATCH /api/galleries/{id}", galleryHandler.Update)
	mux.HandleFunc("DELETE /api/galleries/{id}", galleryHandler.Delete)
	mux.HandleFunc("GET /api/users/{id}/galleries", galleryHandler.ListForUser)

	// Comment routes
	mux.HandleFunc("GET /api/galleries/{id}/comments", commentHandler.List)
	mux.HandleFunc("POST /api/galleries/{id}/comments", commentHandler.Create)
	mux.HandleFunc("PATCH /api/comments/{id}", commentHandler.Update)
	mux.HandleFunc("DELETE /api/comments/{id}", commentHandler.Delete)

	// Like routes
	mux.HandleFunc("POST /api/galleries/{id}/like", socialHandler.Like)
	mux.HandleFunc("DELETE /api/galleries/{id}/like", socialHandler.Unlike)
	mux.HandleFunc("GET /api/galleries/{id}/likes", socialHandler.LikeCount)
	mux.HandleFunc("GET /api/galleries/{id}/liked", socialHandler.Liked)

	// Favorite routes
	mux.HandleFunc("GET /api/favorites/galleries", socialHandler.ListFavoriteGalleries)
	mux.HandleFunc("POST /api/favorites/galleries/{id}", socialHandler.FavoriteGallery)
	mux.HandleFunc("DELETE /api/favorites/galleries/{id}", socialHandler.UnfavoriteGallery)
	mux.HandleFunc("GET /api/favorites/furniture", socialHandler.ListFavoriteFurniture)
	mux.HandleFunc("POST /api/favorites/furniture/{id}", socialHandler.FavoriteFurniture)
	mux.HandleFunc("DELETE /api/favorites/furniture/{id}", socialHandler.UnfavoriteFurniture)

	// Block routes
	mux.HandleFunc("GET /api/blocks", blockHandler.List)
	mux.HandleFunc("GET /api/blocks/{id}", blockHandler.Check)
	mux.HandleFunc("POST /api/blocks/{id}", blockHandler.Block)
	mux.HandleFunc("DELETE /api/blocks/{id}", blockHandler.Unblock)

	// Catalog routes (company-scoped mutations carry company_api_key)
	mux.HandleFunc("GET /api/catalog/{id}", catalogHandler.Get)
	mux.HandleFunc("GET /api/companies/{id}/catalog", catalogHandler.List)
	mux.HandleFunc("POST /api/companies/{id}/catalog", catalogHandler.Create)
	mux.HandleFunc("DELETE /api/companies/{id}/catalog", catalogHandler.ArchiveAll)
	mux.HandleFunc("POST /api/companies/{id}/catalog/archive", catalogHandler.ArchiveArray)
	mux.HandleFunc("DELETE /api/companies/{id}/catalog/{item}", catalogHandler.Archive)
	mux.HandleFunc("GET /api/companies/{id}/archive", catalogHandler.ListArchive)
	mux.HandleFunc("POST /api/companies/{id}/archive/{record}/restore", catalogHandler.Restore)

	// Build middleware chain
	var root http.Handler = mux

	// Apply middleware in reverse order (they wrap each other)
	// Order: CORS -> RequestID -> Recovery -> Auth -> Routes
	root = middleware.Auth(resolver, logger)(root)
	root = middleware.Recovery(logger)(root)
	root = middleware.RequestID(root)

	// CORS - Must be before auth to handle OPTIONS pre-flight requests
	corsHandler := cors.New(cors.Options{
		AllowedOrigins:   strings.Split(cfg.CORSOrigins, ","),
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Origin", "Content-Type", "Accept", "Authorization", "X-Request-ID"},
		AllowCredentials: true,
	})
	root = corsHandler.Handler(root)

	// Create HTTP server
	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      root,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	logger.Info("server listening", "port", cfg.Port)
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatalf("Failed to start server: %v", err)
	}
}
