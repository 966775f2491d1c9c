package sessions

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/studyforge/core/internal/models"
	"github.com/studyforge/core/internal/modules/study/reconcile"
	"github.com/studyforge/core/internal/pkg/pagination"
	"github.com/studyforge/core/internal/pkg/response"
)

type Service struct {
	db         *gorm.DB
	reconciler *reconcile.Service
}

func NewService(db *gorm.DB, reconciler *reconcile.Service) *Service {
	return &Service{db: db, reconciler: reconciler}
}

func (s *Service) Create(ctx context.Context, userID, title, description string) (*models.StudySession, error) {
	session := models.StudySession{
		UserID:      userID,
		Title:       title,
		Description: description,
	}
	if err := s.db.WithContext(ctx).Create(&session).Error; err != nil {
		return nil, err
	}
	return &session, nil
}

func (s *Service) List(ctx context.Context, userID string, q pagination.Query) ([]models.StudySession, response.Pagination, error) {
	tx := s.db.WithContext(ctx).
		Model(&models.StudySession{}).
		Where("user_id = ?", userID).
		Order("created_at DESC")

	var list []models.StudySession
	pag, err := pagination.Paginate(tx, q, &list)
	return list, pag, err
}

// Get returns a session with its content rows, reconciling monologue rows
// against blob storage on the way out.
func (s *Service) Get(ctx context.Context, userID, id string) (*models.StudySession, []models.GeneratedContentModel, error) {
	var session models.StudySession
	err := s.db.WithContext(ctx).
		First(&session, "id = ? AND user_id = ?", id, userID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, nil
		}
		return nil, nil, err
	}

	content, err := s.reconciler.Reconcile(ctx, &session)
	if err != nil {
		return nil, nil, err
	}
	return &session, content, nil
}
