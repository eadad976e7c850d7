package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"anoa.com/bookcommunity/internal/config"
	"anoa.com/bookcommunity/internal/jobs"
	"anoa.com/bookcommunity/internal/middleware"
	"anoa.com/bookcommunity/pkg/response"
	"anoa.com/bookcommunity/pkg/storage"

	adminHttp "anoa.com/bookcommunity/internal/modules/admin/delivery/http"
	adminService "anoa.com/bookcommunity/internal/modules/admin/service"

	bookHttp "anoa.com/bookcommunity/internal/modules/book/delivery/http"
	bookRepo "anoa.com/bookcommunity/internal/modules/book/repository"
	bookService "anoa.com/bookcommunity/internal/modules/book/service"

	bookcaseHttp "anoa.com/bookcommunity/internal/modules/bookcase/delivery/http"
	bookcaseRepo "anoa.com/bookcommunity/internal/modules/bookcase/repository"
	bookcaseService "anoa.com/bookcommunity/internal/modules/bookcase/service"

	categoryHttp "anoa.com/bookcommunity/internal/modules/category/delivery/http"
	categoryRepo "anoa.com/bookcommunity/internal/modules/category/repository"
	categoryService "anoa.com/bookcommunity/internal/modules/category/service"

	commentHttp "anoa.com/bookcommunity/internal/modules/comment/delivery/http"
	commentRepo "anoa.com/bookcommunity/internal/modules/comment/repository"
	commentService "anoa.com/bookcommunity/internal/modules/comment/service"

	notiHttp "anoa.com/bookcommunity/internal/modules/notification/delivery/http"
	notifService "anoa.com/bookcommunity/internal/modules/notification/service"

	searchService "anoa.com/bookcommunity/internal/modules/search/service"

	statHttp "anoa.com/bookcommunity/internal/modules/stat/delivery/http"
	statRepo "anoa.com/bookcommunity/internal/modules/stat/repository"
	statService "anoa.com/bookcommunity/internal/modules/stat/service"

	userHttp "anoa.com/bookcommunity/internal/modules/user/delivery/http"
	userRepo "anoa.com/bookcommunity/internal/modules/user/repository"
	userService "anoa.com/bookcommunity/internal/modules/user/service"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/meilisearch/meilisearch-go"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

const jobTimeout = 30 * time.Minute

type Server struct {
	engine      *gin.Engine
	httpServer  *http.Server
	scheduler   *jobs.Scheduler
	limiter     *middleware.IPRateLimiter
	stopLimiter context.CancelFunc
}

func NewServer(ctx context.Context, cfg *config.Config, db *gorm.DB, redisClient *redis.Client) (*Server, error) {
	coverStorage, err := newCoverStorage(ctx, cfg)
	if err != nil {
		return nil, err
	}

	var meiliSvc searchService.MeiliSearchService
	if cfg.MeiliSearchHost != "" {
		meiliHost := cfg.MeiliSearchHost
		if !strings.HasPrefix(meiliHost, "http") {
			meiliHost = "http://" + meiliHost + ":7700"
		}
		meiliClient := meilisearch.New(meiliHost, meilisearch.WithAPIKey(cfg.MeiliMasterKey))
		meiliSvc = searchService.NewMeiliSearchService(meiliClient)
	} else {
		slog.Info("MEILISEARCH_HOST not set, book search falls back to the database")
	}

	userRepository := userRepo.NewUserRepository(db)
	authSvc := userService.NewAuthService(userRepository, cfg.JWTSecret, cfg.JWTTTL)
	authHandler := userHttp.NewAuthHandler(authSvc)

	categoryRepository := categoryRepo.NewCategoryRepository(db)
	bookRepository := bookRepo.NewBookRepository(db)

	categorySvc := categoryService.NewCategoryService(categoryRepository, bookRepository)
	categoryHandler := categoryHttp.NewCategoryHandler(categorySvc)

	bookSvc := bookService.NewService(bookRepository, categoryRepository, coverStorage, meiliSvc)
	bookHandler := bookHttp.NewBookHandler(bookSvc)

	// Notification Module
	notificationSvc := notifService.NewNotificationService(redisClient)
	notificationHandler := notiHttp.NewNotificationHandler(notificationSvc, originSet(cfg.AllowedOrigins))

	commentSvc := commentService.NewCommentService(commentRepo.NewCommentRepository(db), bookRepository, notificationSvc, redisClient, cfg.RateLimitComment)
	commentHandler := commentHttp.NewCommentHandler(commentSvc)

	bookcaseSvc := bookcaseService.NewService(bookcaseRepo.NewBookCaseRepository(db), bookRepository)
	bookcaseHandler := bookcaseHttp.NewBookCaseHandler(bookcaseSvc)

	adminHandler := adminHttp.NewAdminHandler(adminService.NewAdminService(userRepository))
	statHandler := statHttp.NewStatHandler(statService.NewStatService(statRepo.NewStatRepository(db)))

	scheduler := jobs.NewScheduler(jobTimeout)
	if meiliSvc != nil {
		if err := scheduler.Register(jobs.NewSearchReindexJob(bookRepository, meiliSvc, cfg.SearchReindexSchedule)); err != nil {
			return nil, err
		}
	}

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()

	setupCORS(router, cfg.AllowedOrigins)

	limiter := middleware.NewIPRateLimiter(cfg.IPRateLimitRPS, cfg.IPRateLimitBurst)

	router.Use(gin.Recovery())
	router.Use(gin.LoggerWithConfig(gin.LoggerConfig{
		SkipPaths: []string{"/health"},
	}))
	router.Use(limiter.Middleware())

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	authMiddleware := middleware.NewAuthMiddleware(userRepository, cfg.JWTSecret)

	api := router.Group("/api")
	api.Use(authMiddleware.Authenticate())

	auth := api.Group("/auth")
	{
		auth.POST("/register", authHandler.Register)
		auth.POST("/login", authHandler.Login)
		auth.GET("/me", authMiddleware.RequireAuth(), authHandler.Me)
	}

	books := api.Group("/books")
	{
		books.GET("", bookHandler.ListBooks)
		books.GET("/search", bookHandler.SearchBooks)
		books.GET("/:book_id", bookHandler.GetBook)
		books.POST("", authMiddleware.RequireAuth(), bookHandler.CreateBook)
		books.DELETE("/:book_id", authMiddleware.RequireAuth(), bookHandler.DeleteBook)

		books.GET("/:book_id/comments", commentHandler.ListComments)
		books.GET("/:book_id/comments/:comment_id", commentHandler.GetComment)
		books.POST("/:book_id/comments", authMiddleware.RequireAuth(), commentHandler.CreateComment)
		books.PATCH("/:book_id/comments/:comment_id", authMiddleware.RequireAuth(), commentHandler.UpdateComment)
		books.DELETE("/:book_id/comments/:comment_id", authMiddleware.RequireAuth(), commentHandler.DeleteComment)
	}

	categories := api.Group("/categories")
	{
		categories.GET("", categoryHandler.GetAllCategories)
		categories.GET("/:id", categoryHandler.GetCategory)
		categories.POST("", authMiddleware.RequireAuth(), categoryHandler.CreateCategory)
		categories.PUT("/:id", authMiddleware.RequireAuth(), categoryHandler.UpdateCategory)
		categories.PATCH("/:id", authMiddleware.RequireAuth(), categoryHandler.PatchCategory)
		categories.DELETE("/:id", authMiddleware.RequireAuth(), categoryHandler.DeleteCategory)
	}

	bookcase := api.Group("/bookcase")
	bookcase.Use(authMiddleware.RequireAuth(), bookcaseHttp.ScopeOwnBookCase())
	{
		bookcase.GET("", bookcaseHandler.ListBookCases)

		bookcase.GET("/items", bookcaseHandler.ListOwnItems)
		bookcase.POST("/items", bookcaseHandler.CreateOwnItem)
		bookcase.GET("/items/:item_id", bookcaseHandler.GetOwnItem)
		bookcase.PUT("/items/:item_id", bookcaseHandler.ReplaceOwnItem)
		bookcase.PATCH("/items/:item_id", bookcaseHandler.PatchOwnItem)
		bookcase.DELETE("/items/:item_id", bookcaseHandler.DeleteOwnItem)

		bookcase.GET("/:bookcase_id", bookcaseHandler.GetBookCase)
		bookcase.DELETE("/:bookcase_id", bookcaseHandler.DeleteBookCase)

		adminItems := bookcase.Group("/:bookcase_id/items")
		adminItems.Use(authMiddleware.RequireAdmin())
		{
			adminItems.GET("", bookcaseHandler.ListItems)
			adminItems.POST("", bookcaseHandler.CreateItem)
			adminItems.GET("/:item_id", bookcaseHandler.GetItem)
			adminItems.PUT("/:item_id", bookcaseHandler.ReplaceItem)
			adminItems.PATCH("/:item_id", bookcaseHandler.PatchItem)
			adminItems.DELETE("/:item_id", bookcaseHandler.DeleteItem)
		}
	}

	adminGroup := api.Group("/admin")
	adminGroup.Use(authMiddleware.RequireAdmin())
	{
		adminGroup.GET("/comments/stream", notificationHandler.StreamWaitingComments)
		adminGroup.GET("/users", adminHandler.GetAllUsers)
		adminGroup.PATCH("/users/:id/role", adminHandler.UpdateUserRole)
		adminGroup.GET("/stats", statHandler.GetCatalogStats)
		adminGroup.GET("/jobs", listJobs(scheduler))
		adminGroup.POST("/jobs/:name/run", runJob(scheduler))
	}

	return &Server{
		engine:    router,
		scheduler: scheduler,
		limiter:   limiter,
	}, nil
}

// Handler exposes the router, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.engine
}

// Run serves addr and starts background workers. It returns once the
// listener stops; call Shutdown to stop it.
func (s *Server) Run(addr string) error {
	limiterCtx, cancel := context.WithCancel(context.Background())
	s.stopLimiter = cancel
	go s.limiter.Run(limiterCtx)

	s.scheduler.Start()

	s.httpServer = &http.Server{
		Addr:              addr,
		Handler:           s.engine,
		ReadHeaderTimeout: 10 * time.Second,
	}
	slog.Info("server listening", slog.String("addr", addr))
	if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *Server) Shutdown(ctx context.Context) error {
	if s.stopLimiter != nil {
		s.stopLimiter()
	}
	s.scheduler.Stop(ctx)
	if s.httpServer == nil {
		return nil
	}
	return s.httpServer.Shutdown(ctx)
}

func listJobs(scheduler *jobs.Scheduler) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"data": scheduler.Names()})
	}
}

func runJob(scheduler *jobs.Scheduler) gin.HandlerFunc {
	return func(c *gin.Context) {
		name := c.Param("name")
		if err := scheduler.RunByName(c.Request.Context(), name); err != nil {
			response.ResponseError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "job " + name + " finished"})
	}
}

func newCoverStorage(ctx context.Context, cfg *config.Config) (storage.ImageStorage, error) {
	switch cfg.CoverStorage {
	case "cloudinary":
		s, err := storage.NewCloudinaryStorage(storage.CloudinaryOptions{
			CloudName:    cfg.CloudinaryCloudName,
			APIKey:       cfg.CloudinaryAPIKey,
			APISecret:    cfg.CloudinaryAPISecret,
			UploadFolder: cfg.CloudinaryUploadFolder,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to initialize cloudinary storage: %w", err)
		}
		return s, nil
	case "s3":
		s, err := storage.NewS3Storage(ctx, storage.S3Options{
			Bucket:          cfg.AWSS3Bucket,
			Region:          cfg.AWSRegion,
			AccessKeyID:     cfg.AWSAccessKeyID,
			SecretAccessKey: cfg.AWSSecretAccessKey,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to initialize s3 storage: %w", err)
		}
		return s, nil
	}

	slog.Info("COVER_STORAGE not set, cover uploads are disabled")
	return nil, nil
}

func splitOrigins(allowedOrigins string) []string {
	var origins []string
	for _, o := range strings.Split(allowedOrigins, ",") {
		if o = strings.TrimSpace(o); o != "" {
			origins = append(origins, o)
		}
	}
	if len(origins) == 0 {
		origins = []string{"http://localhost:3000"}
	}
	return origins
}

func originSet(allowedOrigins string) map[string]bool {
	set := make(map[string]bool)
	for _, o := range splitOrigins(allowedOrigins) {
		set[o] = true
	}
	return set
}

func setupCORS(router *gin.Engine, allowedOrigins string) {
	router.Use(cors.New(cors.Config{
		AllowOrigins:     splitOrigins(allowedOrigins),
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "HEAD", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length", "Retry-After"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
}
