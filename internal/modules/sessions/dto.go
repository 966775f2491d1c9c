package sessions

import "github.com/studyforge/core/internal/models"

type CreateSessionDTO struct {
	Title       string `json:"title" binding:"required"`
	Description string `json:"description"`
}

type sessionDetailResponse struct {
	models.StudySession
	GeneratedContent []models.GeneratedContentModel `json:"generatedContent"`
}
