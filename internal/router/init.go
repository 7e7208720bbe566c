package router

import (
	"context"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/dealexpress/dealexpress-api/config"
	"github.com/dealexpress/dealexpress-api/internal/application"
	"github.com/dealexpress/dealexpress-api/internal/container"
	"github.com/dealexpress/dealexpress-api/internal/domain/repository"
	"github.com/dealexpress/dealexpress-api/internal/infrastructure/lock"
	handlers "github.com/dealexpress/dealexpress-api/internal/interface/http"
	"github.com/dealexpress/dealexpress-api/internal/interface/middleware"
	"github.com/dealexpress/dealexpress-api/internal/router/modules"
	"github.com/dealexpress/dealexpress-api/pkg/helpers"
)

// Services groups the application services the HTTP modules are built from.
type Services struct {
	Auth     *application.AuthService
	Deals    *application.DealService
	Votes    *application.VoteService
	Comments *application.CommentService
	Admin    *application.AdminService
}

// NewServices wires every service over one repository set.
func NewServices(repos repository.Set, jwt *helpers.JWTManager, locker application.Locker, events application.EventPublisher, logger *logrus.Logger) Services {
	if locker == nil {
		locker = lock.NewKeyedMutex()
	}
	if events == nil {
		events = application.NopPublisher{}
	}
	return Services{
		Auth:     application.NewAuthService(repos.Users, jwt, logger),
		Deals:    application.NewDealService(repos.Deals, repos.Comments, repos.Votes, events, logger),
		Votes:    application.NewVoteService(repos.Deals, repos.Votes, locker, logger),
		Comments: application.NewCommentService(repos.Deals, repos.Comments, logger),
		Admin:    application.NewAdminService(repos.Users, events, logger),
	}
}

func buildServices() Services {
	return NewServices(
		container.GetRepositories(),
		container.GetJWT(),
		container.GetLocker(),
		container.GetPublisher(),
		container.GetLogger(),
	)
}

func healthChecks() map[string]modules.Pinger {
	checks := map[string]modules.Pinger{}
	if pool := container.GetPGPool(); pool != nil {
		checks["postgres"] = pool.Ping
	}
	if rdb := container.GetRedis(); rdb != nil {
		checks["redis"] = func(ctx context.Context) error { return rdb.Ping(ctx).Err() }
	}
	return checks
}

// AddModules registers the API modules for svc on r.
func AddModules(r *Registry, svc Services, logger *logrus.Logger, checks map[string]modules.Pinger) {
	auth := middleware.Auth(svc.Auth, logger)

	r.Add(modules.NewAuthModule(handlers.NewAuthHandler(svc.Auth, logger), auth))
	r.Add(modules.NewDealModule(handlers.NewDealHandler(svc.Deals, svc.Comments, svc.Votes, logger), auth))
	r.Add(modules.NewCommentModule(handlers.NewCommentHandler(svc.Comments, logger), auth))
	r.Add(modules.NewAdminModule(handlers.NewAdminHandler(svc.Deals, svc.Admin, logger), auth))
	r.Add(modules.NewDebugModule(checks))
}

// NewEngine builds the gin engine with the global middleware chain and all modules.
func NewEngine(cfg *config.Config, svc Services, logger *logrus.Logger, checks map[string]modules.Pinger) *gin.Engine {
	engine := gin.New()
	engine.Use(
		middleware.RequestIDMiddleware(),
		middleware.RealIP(),
		middleware.Recovery(logger),
	)
	if cfg.HTTPLogEnabled {
		engine.Use(middleware.AccessLog(logger))
	}
	corsCfg := cors.Config{
		AllowMethods:  []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Authorization", middleware.RequestIDHeader},
		ExposeHeaders: []string{middleware.RequestIDHeader},
	}
	if origins := cfg.CORSOrigins(); len(origins) > 0 {
		corsCfg.AllowOrigins = origins
		corsCfg.AllowCredentials = true
	} else {
		corsCfg.AllowAllOrigins = true
	}
	engine.Use(cors.New(corsCfg))

	reg := NewRegistry(engine)
	AddModules(reg, svc, logger, checks)
	reg.RegisterAll()
	return engine
}

// Setup builds the engine from the container singletons.
func Setup() *gin.Engine {
	return NewEngine(container.GetConfig(), buildServices(), container.GetLogger(), healthChecks())
}
