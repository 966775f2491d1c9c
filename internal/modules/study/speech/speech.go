package speech

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	appcfg "github.com/studyforge/core/internal/config"
	"github.com/studyforge/core/internal/pkg/blobstore"
)

// maxSpeakChars is the hard input limit of the speech API.
const maxSpeakChars = 2000

const defaultEndpoint = "https://api.deepgram.com/v1/speak"

// Artifact references one uploaded audio blob.
type Artifact struct {
	URL      string `json:"url"`
	Pathname string `json:"pathname"`
}

// Synthesizer turns monologue text into spoken audio and uploads it to blob
// storage. Audio is a best-effort enrichment: every failure path returns a
// nil artifact instead of an error so callers can proceed text-only.
type Synthesizer struct {
	cfg    appcfg.DeepgramConfig
	store  *blobstore.Store
	client *http.Client
	logger *zap.Logger
}

func NewSynthesizer(cfg appcfg.DeepgramConfig, store *blobstore.Store, logger *zap.Logger) *Synthesizer {
	return &Synthesizer{
		cfg:    cfg,
		store:  store,
		client: &http.Client{Timeout: 60 * time.Second},
		logger: logger,
	}
}

// Truncate clips text to the speech API input limit. Deterministic prefix so
// repeated runs over the same text produce the same audio.
func Truncate(text string) string {
	runes := []rune(text)
	if len(runes) <= maxSpeakChars {
		return text
	}
	return string(runes[:maxSpeakChars])
}

// Synthesize renders text to mp3 and uploads it under the given key prefix.
// Returns nil when the API key is missing, synthesis yields no audio, or the
// upload fails.
func (s *Synthesizer) Synthesize(ctx context.Context, text, prefix string) *Artifact {
	if strings.TrimSpace(s.cfg.APIKey) == "" {
		s.logger.Warn("speech synthesis skipped: api key not configured")
		return nil
	}
	if s.store == nil {
		s.logger.Warn("speech synthesis skipped: blob storage not configured")
		return nil
	}

	text = Truncate(text)
	if strings.TrimSpace(text) == "" {
		return nil
	}

	audio, err := s.speak(ctx, text)
	if err != nil {
		s.logger.Warn("speech synthesis failed", zap.Error(err))
		return nil
	}
	if len(audio) == 0 {
		s.logger.Warn("speech synthesis returned no audio")
		return nil
	}

	name := fmt.Sprintf("conversation-%d-%s.mp3", time.Now().UnixMilli(), uuid.NewString()[:8])
	key := name
	if prefix != "" {
		key = strings.TrimSuffix(prefix, "/") + "/" + name
	}

	publicURL, err := s.store.Put(ctx, key, audio, "audio/mpeg")
	if err != nil {
		s.logger.Warn("audio upload failed", zap.String("key", key), zap.Error(err))
		return nil
	}

	s.logger.Info("audio artifact uploaded",
		zap.String("pathname", key),
		zap.Int("bytes", len(audio)))
	return &Artifact{URL: publicURL, Pathname: key}
}

// Render synthesizes text to mp3 bytes without uploading anything. The text
// is truncated to the API input limit first.
func (s *Synthesizer) Render(ctx context.Context, text string) ([]byte, error) {
	if strings.TrimSpace(s.cfg.APIKey) == "" {
		return nil, errors.New("speech api key is not configured")
	}
	text = Truncate(text)
	if strings.TrimSpace(text) == "" {
		return nil, errors.New("no text to synthesize")
	}
	return s.speak(ctx, text)
}

func (s *Synthesizer) speak(ctx context.Context, text string) ([]byte, error) {
	endpoint := strings.TrimSpace(s.cfg.Endpoint)
	if endpoint == "" {
		endpoint = defaultEndpoint
	}
	voice := strings.TrimSpace(s.cfg.VoiceModel)
	if voice == "" {
		voice = "aura-arcas-en"
	}

	payload, err := json.Marshal(map[string]string{"text": text})
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		endpoint+"?model="+voice, bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Token "+s.cfg.APIKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
		return nil, fmt.Errorf("speak api status %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}
	return io.ReadAll(resp.Body)
}
