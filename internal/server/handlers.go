package server

import (
	"net/http"
	"time"

	authHttp "github.com/clipforge/clipforge-backend/internal/auth/delivery/http"
	authRepository "github.com/clipforge/clipforge-backend/internal/auth/repository"
	authUsecase "github.com/clipforge/clipforge-backend/internal/auth/usecase"
	"github.com/clipforge/clipforge-backend/internal/engines"
	"github.com/clipforge/clipforge-backend/internal/middleware"
	taskHttp "github.com/clipforge/clipforge-backend/internal/videotasks/delivery/http"
	taskRepository "github.com/clipforge/clipforge-backend/internal/videotasks/repository"
	taskUsecase "github.com/clipforge/clipforge-backend/internal/videotasks/usecase"
	"github.com/clipforge/clipforge-backend/pkg/utils"
	"github.com/labstack/echo/v4"
)

func (s *Server) MapHandlers(e *echo.Echo) error {
	aRepo := authRepository.NewAuthRepo(s.db)
	tRepo := taskRepository.NewTaskRepo(s.db)
	tAWSRepo := taskRepository.NewAwsRepository(s.s3Client, s.cfg)

	cacheTTL := time.Duration(s.cfg.Poller.CacheTTLSeconds) * time.Second
	if cacheTTL <= 0 {
		cacheTTL = 5 * time.Second
	}
	tRedisRepo := taskRepository.NewStatusCacheRepo(s.redisClient, s.cfg.Redis.StatusPrefix, cacheTTL)

	engineProvider := engines.NewProvider(s.cfg)

	authUC := authUsecase.NewAuthUseCase(s.cfg, aRepo, s.logger)
	taskUC := taskUsecase.NewVideoTaskUseCase(s.cfg, tRepo, tRedisRepo, tAWSRepo, engineProvider, s.logger)

	authHandlers := authHttp.NewAuthHandler(s.cfg, authUC, s.logger)
	taskHandlers := taskHttp.NewVideoTaskHandler(taskUC)

	mw := middleware.NewMiddlewareManager(authUC, s.cfg, []string{"*"}, s.logger)

	v1 := e.Group("/api/v1")
	health := v1.Group("/health")
	authGroup := v1.Group("/auth")
	taskGroup := v1.Group("/videos")

	authHttp.MapAuthRoutes(authGroup, authHandlers, mw)
	taskHttp.MapVideoTaskRoutes(taskGroup, taskHandlers, mw)
	health.GET("", func(c echo.Context) error {
		s.logger.Infof("Health check RequestID: %s", utils.GetRequestID(c))
		return c.JSON(http.StatusOK, map[string]string{"status": "OK"})
	})
	return nil
}
