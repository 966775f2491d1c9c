package genai

import (
	"context"
	"errors"
	"fmt"
	"strings"

	appcfg "github.com/studyforge/core/internal/config"
	googlegenai "google.golang.org/genai"
)

// SamplingConfig fixes the decoding parameters for one call site.
type SamplingConfig struct {
	Temperature     float32
	TopP            float32
	TopK            float32
	MaxOutputTokens int32
}

// Turn is one prior exchange in a multi-turn conversation.
type Turn struct {
	Role string // "user" or "model"
	Text string
}

// Request describes one generation call. Exactly one of InlineData, Text, or
// FileURI carries the source content; Prompt always leads the parts. History,
// when present, precedes the final user message.
type Request struct {
	Model      string
	Prompt     string
	InlineData []byte // uploaded file bytes, sent inline
	InlineMIME string
	Text       string // assembled text block (e.g. prompt + transcript)
	FileURI    string // remote media reference
	FileMIME   string
	History    []Turn
	Sampling   *SamplingConfig
}

// Client wraps the Gemini API for text generation.
type Client struct {
	cfg   appcfg.GeminiConfig
	inner *googlegenai.Client
}

// NewClient builds a generative client. A missing API key is not an error
// here; it is reported as a credential failure on the first Generate call so
// the service can boot without generation configured.
func NewClient(ctx context.Context, cfg appcfg.GeminiConfig) (*Client, error) {
	c := &Client{cfg: cfg}
	if strings.TrimSpace(cfg.APIKey) == "" {
		return c, nil
	}

	inner, err := googlegenai.NewClient(ctx, &googlegenai.ClientConfig{
		APIKey:  cfg.APIKey,
		Backend: googlegenai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("init gemini client: %w", err)
	}
	c.inner = inner
	return c, nil
}

// Generate runs one text generation call and returns the generated text.
// All failures carry an ErrorKind distinguishable via KindOf.
func (c *Client) Generate(ctx context.Context, req Request) (string, error) {
	if c.inner == nil {
		return "", &Error{Kind: KindCredential, Err: errors.New("gemini api key is not configured")}
	}

	model := strings.TrimSpace(req.Model)
	if model == "" {
		model = c.cfg.Model
	}

	parts := []*googlegenai.Part{googlegenai.NewPartFromText(req.Prompt)}
	switch {
	case len(req.InlineData) > 0:
		parts = append(parts, googlegenai.NewPartFromBytes(req.InlineData, req.InlineMIME))
	case req.FileURI != "":
		mime := req.FileMIME
		if mime == "" {
			mime = "video/*"
		}
		parts = append(parts, googlegenai.NewPartFromURI(req.FileURI, mime))
	case req.Text != "":
		parts = append(parts, googlegenai.NewPartFromText(req.Text))
	}

	contents := make([]*googlegenai.Content, 0, len(req.History)+1)
	for _, turn := range req.History {
		role := googlegenai.Role(googlegenai.RoleUser)
		if turn.Role == "model" {
			role = googlegenai.RoleModel
		}
		contents = append(contents, googlegenai.NewContentFromParts(
			[]*googlegenai.Part{googlegenai.NewPartFromText(turn.Text)}, role))
	}
	contents = append(contents, googlegenai.NewContentFromParts(parts, googlegenai.RoleUser))

	var genCfg *googlegenai.GenerateContentConfig
	if req.Sampling != nil {
		genCfg = &googlegenai.GenerateContentConfig{
			Temperature:     googlegenai.Ptr(req.Sampling.Temperature),
			TopP:            googlegenai.Ptr(req.Sampling.TopP),
			TopK:            googlegenai.Ptr(req.Sampling.TopK),
			MaxOutputTokens: req.Sampling.MaxOutputTokens,
		}
	}

	resp, err := c.inner.Models.GenerateContent(ctx, model, contents, genCfg)
	if err != nil {
		return "", classify(err)
	}

	text := resp.Text()
	if strings.TrimSpace(text) == "" {
		if blockedBySafety(resp) {
			return "", &Error{Kind: KindSafety, Err: errors.New("generation blocked by safety settings")}
		}
		return "", &Error{Kind: KindUpstream, Err: errors.New("empty response from model")}
	}
	return text, nil
}

func blockedBySafety(resp *googlegenai.GenerateContentResponse) bool {
	if resp == nil {
		return false
	}
	if resp.PromptFeedback != nil && resp.PromptFeedback.BlockReason == googlegenai.BlockedReasonSafety {
		return true
	}
	for _, cand := range resp.Candidates {
		if cand != nil && cand.FinishReason == googlegenai.FinishReasonSafety {
			return true
		}
	}
	return false
}
