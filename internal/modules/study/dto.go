package study

// ProcessVideoDTO is the transcript-based video processing request.
type ProcessVideoDTO struct {
	YouTubeURL string `json:"youtubeUrl" binding:"required"`
	Mode       string `json:"processingOption"`
}

// YouTubeCompositeDTO is the direct-video composite generation request.
type YouTubeCompositeDTO struct {
	URL       string `json:"url"       binding:"required"`
	SessionID string `json:"sessionId" binding:"required"`
}

type processResponse struct {
	Message        string `json:"message"`
	InputSource    string `json:"inputSource"`
	ResultText     string `json:"resultText,omitempty"`
	FlashcardsText string `json:"flashcardsText,omitempty"`
	SummaryText    string `json:"summaryText,omitempty"`
	MonologueText  string `json:"monologueText,omitempty"`
	AudioFilePath  string `json:"audioFilePath,omitempty"`
	SessionID      string `json:"sessionId,omitempty"`
}
