package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/listindia/listindia-api/internal/audit"
	"github.com/listindia/listindia-api/internal/auth"
	"github.com/listindia/listindia-api/internal/config"
	"github.com/listindia/listindia-api/internal/handlers"
	infraRepo "github.com/listindia/listindia-api/internal/infra/repository"
	"github.com/listindia/listindia-api/internal/middleware"
	"github.com/listindia/listindia-api/internal/models"
	"github.com/listindia/listindia-api/internal/rating"
	"github.com/listindia/listindia-api/internal/storage"
	ucReview "github.com/listindia/listindia-api/internal/usecase/review"
)

func RegisterRoutes(
	r *gin.Engine,
	db *gorm.DB,
	rdb *redis.Client,
	cfg *config.Config,
	logger zerolog.Logger,
) {

	// ======================================================
	// INFRA (SINGLETONS)
	// ======================================================
	reviewRepo := infraRepo.NewReviewGormRepository(db)
	userRepo := infraRepo.NewUserGormRepository(db)

	tokens := auth.NewTokenService(cfg)
	aggregator := rating.NewAggregator(reviewRepo, logger)
	uploader := storage.NewS3Uploader(cfg)

	auditLogger := audit.New(db)
	auditDispatcher := audit.NewDispatcher(auditLogger)

	// ======================================================
	// USE CASES — REVIEWS
	// ======================================================
	createReviewUC := ucReview.NewCreateReview(reviewRepo, aggregator, auditDispatcher)
	updateReviewUC := ucReview.NewUpdateReview(reviewRepo, aggregator, auditDispatcher)
	deleteReviewUC := ucReview.NewDeleteReview(reviewRepo, aggregator, auditDispatcher)

	// ======================================================
	// HANDLERS
	// ======================================================
	authHandler := handlers.NewAuthHandler(db, tokens, auditDispatcher)
	userHandler := handlers.NewUserHandler(db)
	businessHandler := handlers.NewBusinessHandler(db)
	reviewHandler := handlers.NewReviewHandler(db, createReviewUC, updateReviewUC, deleteReviewUC)
	uploadHandler := handlers.NewUploadHandler(db, uploader)
	adminHandler := handlers.NewAdminHandler(db, auditDispatcher)

	// ======================================================
	// MIDDLEWARE
	// ======================================================
	requireAuth := middleware.RequireAuth(tokens, userRepo)
	optionalAuth := middleware.OptionalAuth(tokens, userRepo)

	generalLimiter := middleware.RateLimit(rdb, middleware.LimitGeneral, logger)
	authLimiter := middleware.RateLimit(rdb, middleware.LimitAuth, logger)
	businessCreateLimiter := middleware.RateLimit(rdb, middleware.LimitBusinessCreate, logger)
	searchLimiter := middleware.RateLimit(rdb, middleware.LimitSearch, logger)

	// ======================================================
	// API (JSON)
	// ======================================================
	api := r.Group("/api")
	api.Use(generalLimiter)
	{
		// ------------------------------
		// AUTH
		// ------------------------------
		api.POST("/auth/register", authLimiter, authHandler.Register)
		api.POST("/auth/login", authLimiter, authHandler.Login)
		api.GET("/auth/me", requireAuth, authHandler.Me)

		// ------------------------------
		// BUSINESSES (public reads)
		// ------------------------------
		api.GET("/businesses", searchLimiter, optionalAuth, businessHandler.List)
		api.GET("/businesses/:id", optionalAuth, businessHandler.Get)
		api.GET("/businesses/:id/reviews", optionalAuth, reviewHandler.ListByBusiness)
		api.GET("/businesses/:id/reviews/stats", reviewHandler.Stats)
		api.GET("/featured", businessHandler.Featured)
		api.GET("/categories", businessHandler.Categories)
		api.GET("/cities", businessHandler.Cities)

		// ------------------------------
		// BUSINESSES (owner writes)
		// ------------------------------
		api.POST("/businesses",
			businessCreateLimiter,
			requireAuth,
			middleware.RequireRole(models.RoleBusiness),
			middleware.RequireVerified(),
			businessHandler.Create,
		)

		me := api.Group("/me")
		me.Use(requireAuth)
		{
			me.GET("/profile", userHandler.GetProfile)
			me.PUT("/profile", userHandler.UpdateProfile)
			me.GET("/businesses", userHandler.MyBusinesses)
			me.PUT("/businesses/:id", businessHandler.Update)
			me.POST("/businesses/:id/image", uploadHandler.BusinessImage)
			me.GET("/reviews", reviewHandler.MyReviews)
		}

		// ------------------------------
		// REVIEWS
		// ------------------------------
		api.POST("/reviews", requireAuth, reviewHandler.Create)
		api.PUT("/reviews/:id", requireAuth, reviewHandler.Update)
		api.DELETE("/reviews/:id", requireAuth, reviewHandler.Delete)

		// ------------------------------
		// ADMIN
		// ------------------------------
		admin := api.Group("/admin")
		admin.Use(requireAuth, middleware.RequireRole(models.RoleAdmin))
		{
			admin.PATCH("/businesses/:id/approve", adminHandler.Approve)
			admin.PATCH("/businesses/:id/feature", adminHandler.Feature)
			admin.GET("/audit-logs", adminHandler.AuditLogs)
		}
	}
}
