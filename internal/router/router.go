package router

import (
	"time"

	"github.com/labstack/echo/v4"
	eMiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/unihelp-app/backend/internal/cache"
	"github.com/unihelp-app/backend/internal/feed"
	"github.com/unihelp-app/backend/internal/handlers"
	"github.com/unihelp-app/backend/internal/middleware"
	"github.com/unihelp-app/backend/internal/models"
	"github.com/unihelp-app/backend/internal/repositories"
	"github.com/unihelp-app/backend/pkg/config"
	"github.com/unihelp-app/backend/pkg/mail"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// feedCacheTTL bounds how stale cached anonymous feed pages can get
const feedCacheTTL = 30 * time.Second

// SetupMiddleware configures global Echo middleware
func SetupMiddleware(e *echo.Echo) {
	e.Use(eMiddleware.Recover())
	e.Use(eMiddleware.CORS())
}

// SetupRoutes configures all application routes and injects dependencies.
// Routes come in two flavors under /api/v1: reads accept an optional bearer
// token so anonymous viewers get neutral interaction flags, writes require one.
func SetupRoutes(e *echo.Echo, db *gorm.DB, rdb *redis.Client, mailer mail.Mailer, cfg *config.Config) error {
	err := db.AutoMigrate(
		&models.Account{},
		&models.Post{},
		&models.PostStats{},
		&models.Photo{},
		&models.Tag{},
		&models.Comment{},
		&models.Like{},
		&models.Bookmark{},
		&models.Poll{},
		&models.PollAnswer{},
		&models.PollVote{},
	)
	if err != nil {
		return err
	}
	zap.L().Info("auto-migrations completed")

	// Health check - always accessible
	e.GET("/health", handlers.HealthCheck)

	// --- Initialize Repositories ---
	statsRepo := repositories.NewPostgresStatsRepository(db)
	accountRepo := repositories.NewPostgresAccountRepository(db)
	postRepo := repositories.NewPostgresPostRepository(db, statsRepo)
	commentRepo := repositories.NewPostgresCommentRepository(db, statsRepo)
	likeRepo := repositories.NewPostgresLikeRepository(db, statsRepo)
	bookmarkRepo := repositories.NewPostgresBookmarkRepository(db, statsRepo)
	pollRepo := repositories.NewPostgresPollRepository(db)
	voteRepo := repositories.NewPostgresPollVoteRepository(db)
	tagRepo := repositories.NewPostgresTagRepository(db)

	composer := feed.NewComposer(likeRepo, bookmarkRepo, voteRepo)
	feedCache := cache.NewFeedCache(rdb, feedCacheTTL)

	// --- Unprotected routes for authentication ---
	authGroup := e.Group("/api/v1/auth")
	authHandler := handlers.NewAuthHandler(accountRepo, mailer, cfg.JWTSecret, cfg.PublicBaseURL)
	authHandler.RegisterAuthRoutes(authGroup)

	// --- Read routes: anonymous allowed, token honored when present ---
	public := e.Group("/api/v1")
	public.Use(middleware.OptionalJWTAuth(cfg.JWTSecret))

	// --- Write routes: require JWT authentication ---
	protected := e.Group("/api/v1")
	protected.Use(middleware.JWTAuth(cfg.JWTSecret))

	accountHandler := handlers.NewAccountHandler(accountRepo, postRepo, likeRepo, bookmarkRepo, composer)
	accountHandler.RegisterAccountRoutes(public, protected)

	postHandler := handlers.NewPostHandler(postRepo, composer, feedCache)
	postHandler.RegisterPostRoutes(public, protected)

	commentHandler := handlers.NewCommentHandler(commentRepo)
	commentHandler.RegisterCommentRoutes(public, protected)

	likeHandler := handlers.NewLikeHandler(likeRepo)
	likeHandler.RegisterLikeRoutes(protected)

	bookmarkHandler := handlers.NewBookmarkHandler(bookmarkRepo)
	bookmarkHandler.RegisterBookmarkRoutes(protected)

	pollHandler := handlers.NewPollHandler(postRepo, pollRepo, voteRepo, composer, feedCache)
	pollHandler.RegisterPollRoutes(public, protected)

	tagHandler := handlers.NewTagHandler(tagRepo)
	tagHandler.RegisterTagRoutes(public)

	searchHandler := handlers.NewSearchHandler(postRepo, accountRepo, tagRepo, composer)
	searchHandler.RegisterSearchRoutes(public)

	zap.L().Info("all routes configured")
	return nil
}
