package router

import (
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"gwp-backend/internal/config"
	"gwp-backend/internal/handler"
	"gwp-backend/internal/metrics"
	"gwp-backend/internal/middleware"
	"gwp-backend/internal/repository"
	"gwp-backend/internal/service"
	"gwp-backend/internal/session"
	"gwp-backend/internal/storage"
	"gwp-backend/internal/utils"
	"gwp-backend/pkg/limiter"
)

// Deps are the long-lived resources the routes share.
type Deps struct {
	Logger   *logrus.Logger
	DB       *gorm.DB
	Sessions session.Store
	Files    storage.Provider

	// Metrics and Uploads are optional.
	Metrics *metrics.Metrics
	Uploads limiter.Limiter
}

// SetupRouter wires repositories, services and handlers onto a gin engine.
func SetupRouter(cfg *config.Config, deps Deps) *gin.Engine {
	logger, db, sessions, files, m := deps.Logger, deps.DB, deps.Sessions, deps.Files, deps.Metrics

	if cfg.Server.ProductionMode {
		gin.SetMode(gin.ReleaseMode)
	}
	utils.ExposeInternalErrors = cfg.Server.ShouldExposeErrors()

	r := gin.New()
	r.MaxMultipartMemory = cfg.Storage.MaxUploadBytes()

	r.Use(middleware.LoggerMiddleware(logger))
	r.Use(gin.Recovery())
	r.Use(middleware.CORS(&cfg.CORS))
	if m != nil {
		r.Use(middleware.MetricsMiddleware(m))
	}

	userRepo := repository.NewUserRepository(db)
	planRepo := repository.NewPlanRepository(db)
	milestoneRepo := repository.NewMilestoneRepository(db)
	documentRepo := repository.NewDocumentRepository(db)
	observationRepo := repository.NewObservationRepository(db)
	repositoryDocRepo := repository.NewRepositoryDocRepository(db)
	statsRepo := repository.NewStatsRepository(db)

	authz := service.NewAuthorizer(cfg.Auth.AdminUserIDs)
	authService := service.NewAuthService(userRepo, sessions, &cfg.Auth, logger)
	userService := service.NewUserService(userRepo, authz)
	planService := service.NewPlanService(planRepo, files, logger)
	milestoneService := service.NewMilestoneService(milestoneRepo)
	documentService := service.NewDocumentService(documentRepo, planRepo, files, logger)
	observationService := service.NewObservationService(observationRepo, authz)
	repositoryService := service.NewRepositoryService(repositoryDocRepo, files, logger)
	statsService := service.NewStatsService(statsRepo)

	authHandler := handler.NewAuthHandler(authService)
	userHandler := handler.NewUserHandler(userService)
	planHandler := handler.NewPlanHandler(planService)
	milestoneHandler := handler.NewMilestoneHandler(milestoneService)
	documentHandler := handler.NewDocumentHandler(documentService, m)
	observationHandler := handler.NewObservationHandler(observationService)
	repositoryHandler := handler.NewRepositoryHandler(repositoryService, m)
	statsHandler := handler.NewStatsHandler(statsService)

	r.GET("/", statsHandler.Health)
	if m != nil && cfg.Metrics.Enabled {
		r.GET(cfg.Metrics.Path, gin.WrapH(m.Handler()))
	}

	// public
	r.POST("/auth/login", authHandler.Login)
	r.POST("/auth/register", authHandler.Register)
	r.GET("/uploads/:filename", documentHandler.Serve)

	authorized := r.Group("")
	authorized.Use(middleware.AuthMiddleware(sessions))
	{
		authorized.POST("/auth/logout", authHandler.Logout)
		authorized.GET("/auth/me", authHandler.GetMe)

		authorized.GET("/usuarios", userHandler.List)
		authorized.PUT("/usuarios/:id", userHandler.Update)

		authorized.GET("/plan-maestro", planHandler.List)
		authorized.POST("/plan-maestro", planHandler.Create)
		authorized.GET("/plan-maestro/:id", planHandler.Get)
		authorized.PUT("/plan-maestro/:id", planHandler.Update)
		authorized.DELETE("/plan-maestro/:id", planHandler.Delete)
		authorized.GET("/plan-maestro/:id/hitos", milestoneHandler.ListByPlan)
		authorized.GET("/plan-maestro/:id/documentos", documentHandler.ListByPlan)
		authorized.GET("/plan-maestro/:id/observaciones", observationHandler.ListByPlan)
		authorized.POST("/plan-maestro/:id/observaciones", observationHandler.Create)

		authorized.GET("/hitos", milestoneHandler.List)
		authorized.POST("/hitos", milestoneHandler.Create)
		authorized.PUT("/hitos/:id", milestoneHandler.Update)
		authorized.DELETE("/hitos/:id", milestoneHandler.Delete)

		authorized.GET("/documentos", documentHandler.List)
		authorized.DELETE("/documentos/:id", documentHandler.Delete)
		authorized.POST("/upload", append(uploadGuard(cfg, deps), documentHandler.Upload)...)

		authorized.GET("/observaciones", observationHandler.List)
		authorized.PUT("/observaciones/:id", observationHandler.Update)
		authorized.DELETE("/observaciones/:id", observationHandler.Delete)

		authorized.GET("/repositorio", repositoryHandler.List)
		authorized.POST("/repositorio", append(uploadGuard(cfg, deps), repositoryHandler.Create)...)
		authorized.PUT("/repositorio/:id", repositoryHandler.Update)
		authorized.DELETE("/repositorio/:id", repositoryHandler.Delete)

		authorized.GET("/stats", statsHandler.Stats)

		admin := authorized.Group("")
		admin.Use(middleware.AdminMiddleware(authz))
		{
			admin.POST("/usuarios", userHandler.Create)
			admin.DELETE("/usuarios/:id", userHandler.Delete)
		}
	}

	return r
}

// uploadGuard caps the body size and the uploads in flight of each user.
func uploadGuard(cfg *config.Config, deps Deps) []gin.HandlerFunc {
	guard := []gin.HandlerFunc{middleware.BodyLimit(cfg.Storage.MaxUploadBytes())}
	if deps.Uploads != nil {
		guard = append(guard, middleware.UploadLimit(deps.Uploads, deps.Logger))
	}
	return guard
}
