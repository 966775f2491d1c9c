package app

import (
	"context"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/studyforge/core/internal/models"
	"github.com/studyforge/core/internal/modules/audio"
	"github.com/studyforge/core/internal/modules/study/reconcile"
	pkgcron "github.com/studyforge/core/internal/pkg/cron"
)

// recentSessionWindow bounds the background reconcile sweep; older sessions
// are reconciled lazily when they are read.
const (
	recentSessionWindow = 48 * time.Hour
	reconcileBatchLimit = 100
)

// registerCronJobs registers all scheduled background jobs.
func registerCronJobs(sched *pkgcron.Scheduler, db *gorm.DB, audioSvc *audio.Service, reconciler *reconcile.Service, logger *zap.Logger) {
	cronLogger := logger.Named("CronService")

	if audioSvc != nil {
		sched.Register(pkgcron.Job{
			Name:        "cleanup_temp_audio",
			Description: "Remove temp preview audio older than one hour",
			Interval:    time.Hour,
			Fn: func(ctx context.Context) error {
				n, err := audioSvc.CleanupExpired(ctx)
				if err != nil {
					cronLogger.Warn("temp audio cleanup failed", zap.Error(err))
					return err
				}
				if n > 0 {
					cronLogger.Info("temp audio cleanup done", zap.Int("removed", n))
				}
				return nil
			},
		})
	}

	sched.Register(pkgcron.Job{
		Name:        "reconcile_recent_sessions",
		Description: "Sync recent sessions' monologue rows with blob storage",
		Interval:    6 * time.Hour,
		Fn: func(ctx context.Context) error {
			var list []models.StudySession
			err := db.WithContext(ctx).
				Where("updated_at > ?", time.Now().Add(-recentSessionWindow)).
				Order("updated_at DESC").
				Limit(reconcileBatchLimit).
				Find(&list).Error
			if err != nil {
				cronLogger.Warn("loading recent sessions failed", zap.Error(err))
				return err
			}

			for i := range list {
				if _, err := reconciler.Reconcile(ctx, &list[i]); err != nil {
					cronLogger.Warn("session reconcile failed",
						zap.String("session_id", list[i].ID), zap.Error(err))
				}
			}
			cronLogger.Info("session reconcile sweep done", zap.Int("sessions", len(list)))
			return nil
		},
	})
}
