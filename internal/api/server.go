package api

import (
	"fmt"

	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	swaggerfiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"gorm.io/gorm"

	"github.com/blwclub/membership-portal/docs"
	v1 "github.com/blwclub/membership-portal/internal/api/handler/v1"
	"github.com/blwclub/membership-portal/internal/api/middleware"
	"github.com/blwclub/membership-portal/internal/config"
	"github.com/blwclub/membership-portal/internal/domain"
	"github.com/blwclub/membership-portal/internal/metrics"
	"github.com/blwclub/membership-portal/internal/repository"
	"github.com/blwclub/membership-portal/internal/repository/dao"
	"github.com/blwclub/membership-portal/internal/service"
	"github.com/blwclub/membership-portal/internal/session"
)

type Server struct {
	Config *config.AppConfig
	Router *gin.Engine

	Auth         *service.AuthService
	Feed         *v1.FeedHandler
	LoginLimiter *middleware.RateLimiter

	sessions *session.Store
}

func NewServer(conf *config.AppConfig, db *gorm.DB, backend session.Backend) (*Server, error) {
	gin.SetMode(conf.Gin.Mode)
	engine := gin.New()
	// ClientIP keys the login limiter, so forwarded headers only count from
	// configured proxies. None are trusted by default.
	if err := engine.SetTrustedProxies(conf.API.TrustedProxies); err != nil {
		return nil, fmt.Errorf("engine.SetTrustedProxies -> %w", err)
	}

	s := &Server{
		Config:       conf,
		Router:       engine,
		Feed:         v1.NewFeedHandler(conf.API),
		LoginLimiter: middleware.NewRateLimiter(conf.API.LoginRatePerSecond, conf.API.LoginRateBurst),
		sessions:     session.NewStore(backend, conf.Session.TTL, conf.Session.DraftTTL),
	}

	s.MountMiddlewares()

	userRepo := repository.NewUserRepository(dao.NewUserDAO(db))
	authHandler, err := s.initAuthHandler(userRepo)
	if err != nil {
		return nil, err
	}
	userHandler := s.initUserHandler(userRepo)

	appSvc := s.initApplicationService(db)
	s.MountHandlers(
		authHandler,
		userHandler,
		v1.NewApplyHandler(appSvc),
		v1.NewApplicationHandler(appSvc),
		v1.NewAdminHandler(appSvc),
	)

	return s, nil
}

func (s *Server) initAuthHandler(repo *repository.UserRepository) (*v1.AuthHandler, error) {
	svc, err := service.NewAuthService(repo, s.sessions, s.Config.API.PasswordPattern)
	if err != nil {
		return nil, fmt.Errorf("service.NewAuthService -> %w", err)
	}
	s.Auth = svc

	return v1.NewAuthHandler(s.Config.API, svc), nil
}

func (s *Server) initUserHandler(repo *repository.UserRepository) *v1.UserHandler {
	svc := service.NewUserService(repo, s.sessions)
	handler := v1.NewUserHandler(svc)

	return handler
}

func (s *Server) initApplicationService(db *gorm.DB) *service.ApplicationService {
	applicationDAO := dao.NewApplicationDAO(db)
	repo := repository.NewApplicationRepository(applicationDAO)

	return service.NewApplicationService(repo, s.sessions, s.Feed)
}

func (s *Server) MountMiddlewares() {
	// Logger and Recovery are needed unless we use gin.Default().
	s.Router.Use(gin.Logger())
	s.Router.Use(gin.Recovery())
	s.Router.Use(requestid.New())
	s.Router.Use(middleware.ConfigCORS(s.Config.API))
	s.Router.Use(metrics.Middleware())
}

func (s *Server) MountHandlers(
	authHandler *v1.AuthHandler,
	userHandler *v1.UserHandler,
	applyHandler *v1.ApplyHandler,
	applicationHandler *v1.ApplicationHandler,
	adminHandler *v1.AdminHandler,
) {
	const basePath = "/api/v1"

	authenticator := middleware.NewAuthenticator(s.Config.API.JWTSigningKey, s.sessions)

	public := s.Router.Group(basePath)
	{
		public.POST("/auth/register", authHandler.HandleRegister)
		public.POST("/auth/login", s.LoginLimiter.Handler(), authHandler.HandleLogin)
		public.GET("/auth/session", authHandler.HandleSession)
		public.GET("/sports", v1.HandleGetSports)
	}

	members := s.Router.Group(basePath, authenticator.VerifyJWT())
	{
		members.POST("/auth/logout", authHandler.HandleLogout)

		members.GET("/users/me", userHandler.HandleGetMe)
		members.PUT("/users/me/profile", userHandler.HandleUpdateProfile)

		members.POST("/apply/:sport", applyHandler.HandleStartDraft)
		members.GET("/apply/:sport", applyHandler.HandleGetDraft)
		members.DELETE("/apply/:sport", applyHandler.HandleDiscardDraft)
		members.PUT("/apply/:sport/personal-info", applyHandler.HandleUpdatePersonalInfo)
		members.PUT("/apply/:sport/family-details", applyHandler.HandleUpdateFamilyDetails)
		members.PUT("/apply/:sport/sport-specific", applyHandler.HandleUpdateSportSpecific)
		members.PUT("/apply/:sport/documents", applyHandler.HandleUpdateDocuments)
		members.POST("/apply/:sport/next", applyHandler.HandleNextStep)
		members.POST("/apply/:sport/previous", applyHandler.HandlePreviousStep)
		members.POST("/apply/:sport/submit", applyHandler.HandleSubmit)

		members.GET("/applications", applicationHandler.HandleListMine)
		members.GET("/applications/:id", applicationHandler.HandleGetApplication)
	}

	admin := s.Router.Group(basePath+"/admin", authenticator.VerifyJWT(), middleware.RequireRole(domain.RoleAdmin))
	{
		admin.GET("/applications", adminHandler.HandleListApplications)
		admin.GET("/stats", adminHandler.HandleGetStats)
		admin.GET("/applications/:id/fee-quote", adminHandler.HandleGetFeeQuote)
		admin.POST("/applications/:id/approve", adminHandler.HandleApprove)
		admin.POST("/applications/:id/reject", adminHandler.HandleReject)
		admin.PUT("/applications/:id/payment", adminHandler.HandleUpdatePayment)
		admin.GET("/feed", s.Feed.HandleWebSocket)
	}

	s.Router.GET("/", v1.HandleHealthcheck)
	s.Router.GET("/metrics", gin.WrapH(metrics.Handler()))

	// Setup Swagger UI.
	docs.SwaggerInfo.Host = s.Config.API.BaseURL
	docs.SwaggerInfo.BasePath = basePath
	docs.SwaggerInfo.Title = "Club membership portal API"
	docs.SwaggerInfo.Description = "Membership applications, review and payment tracking for the sports club."
	docs.SwaggerInfo.Version = "1.0"
	s.Router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerfiles.Handler))
}
