package models

// StudySession represents one processing run or a user-created workspace.
// Created once per successful pipeline run (or directly by the user) and
// never mutated afterwards except timestamps.
type StudySession struct {
	Base
	UserID      string `json:"user_id"     gorm:"index;not null"`
	Title       string `json:"title"       gorm:"not null"`
	Description string `json:"description" gorm:"type:text"`
}

func (StudySession) TableName() string { return "study_sessions" }
