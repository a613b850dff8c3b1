package sweeper

import (
	"context"
	"time"

	"github.com/clipforge/clipforge-backend/internal/config"
	"github.com/clipforge/clipforge-backend/internal/videotasks"
	"github.com/clipforge/clipforge-backend/pkg/logger"
	"github.com/clipforge/clipforge-backend/pkg/utils"
)

const defaultInterval = time.Minute

// Sweeper periodically reconciles tasks that have gone quiet and fails tasks
// stuck non-terminal past the configured maximum age. It runs beside the API
// so tasks nobody is polling still reach a terminal state eventually.
type Sweeper struct {
	cfg    *config.Config
	taskUC videotasks.UseCase
	logger logger.Logger
}

func NewSweeper(cfg *config.Config, taskUC videotasks.UseCase, logger logger.Logger) *Sweeper {
	return &Sweeper{
		cfg:    cfg,
		taskUC: taskUC,
		logger: logger,
	}
}

// Run blocks until the context is cancelled.
func (s *Sweeper) Run(ctx context.Context) {
	interval := time.Duration(s.cfg.Sweeper.IntervalSeconds) * time.Second
	if interval <= 0 {
		interval = defaultInterval
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	s.logger.Infof("Starting sweeper, interval: %s, max task age: %s", interval, s.cfg.Sweeper.MaxTaskAge)
	for {
		select {
		case <-ctx.Done():
			s.logger.Infof("sweeper stopped: %v", ctx.Err())
			return
		case <-ticker.C:
			if ok, usage := utils.CheckCPUUsage(s.cfg.Sweeper.MaxCPUUsage); !ok {
				s.logger.Infof("CPU usage is high: %.2f%%, skipping sweep pass", usage)
				continue
			}
			swept, err := s.taskUC.SweepStaleTasks(ctx)
			if err != nil {
				s.logger.Errorf("sweep pass failed: %v", err)
				continue
			}
			if swept > 0 {
				s.logger.Infof("sweep pass marked %d expired tasks as failed", swept)
			}
		}
	}
}
