package chat

// Message is one entry in the client-held conversation history.
type Message struct {
	Role    string `json:"role" binding:"required"`
	Content string `json:"content"`
}

// ChatDTO is the request payload. History includes the in-flight message as
// its last element, mirroring what chat clients send.
type ChatDTO struct {
	Message    string    `json:"message" binding:"required"`
	Context    string    `json:"context"`
	History    []Message `json:"history"`
	DocumentID string    `json:"documentId"`
}

type chatResponse struct {
	Response string `json:"response"`
}
