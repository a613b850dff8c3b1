package middleware

import (
	"github.com/clipforge/clipforge-backend/internal/auth"
	"github.com/clipforge/clipforge-backend/internal/config"
	"github.com/clipforge/clipforge-backend/pkg/logger"
)

type MiddlewareManager struct {
	authUC  auth.UseCase
	cfg     *config.Config
	origins []string
	logger  logger.Logger
}

// Middleware manager constructor
func NewMiddlewareManager(authUC auth.UseCase, cfg *config.Config, origins []string, logger logger.Logger) *MiddlewareManager {
	return &MiddlewareManager{authUC: authUC, cfg: cfg, origins: origins, logger: logger}
}
