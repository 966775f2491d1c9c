package reconcile

import (
	"context"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/studyforge/core/internal/models"
	"github.com/studyforge/core/internal/pkg/blobstore"
)

type blobLister interface {
	List(ctx context.Context, prefix string) ([]blobstore.Object, error)
	Delete(ctx context.Context, pathnames []string) error
}

// Service keeps monologue rows consistent with the audio blobs in storage.
type Service struct {
	db     *gorm.DB
	blobs  blobLister
	logger *zap.Logger
}

func NewService(db *gorm.DB, blobs blobLister, logger *zap.Logger) *Service {
	return &Service{db: db, blobs: blobs, logger: logger}
}

// Reconcile syncs one session's monologue rows against blob storage and
// returns the session's content rows afterwards. Listing failures fail open:
// the rows already in the database are returned unchanged. Individual apply
// failures are logged and the best available rows are returned.
func (s *Service) Reconcile(ctx context.Context, session *models.StudySession) ([]models.GeneratedContentModel, error) {
	rows, err := s.fetchRows(ctx, session.ID)
	if err != nil {
		return nil, err
	}
	if s.blobs == nil {
		return rows, nil
	}

	objects, err := s.blobs.List(ctx, Prefix(session.ID))
	if err != nil {
		s.logger.Warn("blob listing failed, returning unreconciled rows",
			zap.String("session_id", session.ID), zap.Error(err))
		return rows, nil
	}

	plan := BuildPlan(session.ID, session.UserID, rows, objects)
	if plan.Empty() {
		return rows, nil
	}
	s.apply(ctx, session.ID, plan)

	refetched, err := s.fetchRows(ctx, session.ID)
	if err != nil {
		s.logger.Error("refetch after reconcile failed",
			zap.String("session_id", session.ID), zap.Error(err))
		return rows, nil
	}
	return refetched, nil
}

func (s *Service) fetchRows(ctx context.Context, sessionID string) ([]models.GeneratedContentModel, error) {
	var rows []models.GeneratedContentModel
	err := s.db.WithContext(ctx).
		Where("session_id = ?", sessionID).
		Order("created_at ASC").
		Find(&rows).Error
	return rows, err
}

func (s *Service) apply(ctx context.Context, sessionID string, plan Plan) {
	log := s.logger.With(zap.String("session_id", sessionID))

	if len(plan.Inserts) > 0 {
		if err := s.db.WithContext(ctx).Create(&plan.Inserts).Error; err != nil {
			log.Error("insert reconciled monologues failed",
				zap.Int("count", len(plan.Inserts)), zap.Error(err))
		} else {
			log.Info("inserted reconciled monologues", zap.Int("count", len(plan.Inserts)))
		}
	}

	for _, u := range plan.Updates {
		err := s.db.WithContext(ctx).
			Model(&models.GeneratedContentModel{}).
			Where("id = ?", u.RowID).
			Update("content", u.Content).Error
		if err != nil {
			log.Error("update reconciled monologue failed",
				zap.String("row_id", u.RowID), zap.Error(err))
		}
	}

	if len(plan.StaleRowIDs) > 0 {
		// Blobs first so a failure never orphans storage behind deleted rows.
		if err := s.blobs.Delete(ctx, plan.StalePaths); err != nil {
			log.Error("delete stale blobs failed", zap.Error(err))
		}
		err := s.db.WithContext(ctx).
			Where("id IN ?", plan.StaleRowIDs).
			Delete(&models.GeneratedContentModel{}).Error
		if err != nil {
			log.Error("delete stale monologue rows failed", zap.Error(err))
		} else {
			log.Info("removed stale monologue rows", zap.Int("count", len(plan.StaleRowIDs)))
		}
	}
}
