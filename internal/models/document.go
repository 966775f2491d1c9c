package models

// Document source-kind tags.
const (
	FileTypeText    = "text"
	FileTypeYouTube = "youtube"
)

// DocumentModel is the source material snapshot for a pipeline run.
// Content holds only a bounded excerpt (ExcerptLimit chars); the full source
// is never persisted.
type DocumentModel struct {
	Base
	UserID   string `json:"user_id"   gorm:"index;not null"`
	Title    string `json:"title"     gorm:"not null"`
	Content  string `json:"content"   gorm:"type:text;not null"`
	FileURL  string `json:"file_url"  gorm:"size:1000"`
	FileType string `json:"file_type" gorm:"size:50"`
}

func (DocumentModel) TableName() string { return "documents" }

// ExcerptLimit bounds the stored content excerpt.
const ExcerptLimit = 1000

// Excerpt truncates text to ExcerptLimit characters. Counted in runes so a
// multibyte character is never split.
func Excerpt(text string) string {
	runes := []rune(text)
	if len(runes) <= ExcerptLimit {
		return text
	}
	return string(runes[:ExcerptLimit])
}
