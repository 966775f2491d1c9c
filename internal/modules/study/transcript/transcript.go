package transcript

import (
	"context"
	"encoding/json"
	"encoding/xml"
	"errors"
	"fmt"
	"html"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// Typed failures callers branch on when a video has no usable transcript.
var (
	ErrInvalidURL          = errors.New("not a valid youtube url")
	ErrTranscriptsDisabled = errors.New("transcripts are disabled for this video")
	ErrNoTranscript        = errors.New("no transcript could be found for this video")
)

// Segment is one caption cue from the timedtext feed.
type Segment struct {
	Text     string
	Start    float64
	Duration float64
}

// Fetcher pulls caption transcripts from YouTube's public watch pages.
type Fetcher struct {
	client *http.Client
}

func NewFetcher() *Fetcher {
	return &Fetcher{
		client: &http.Client{Timeout: 30 * time.Second},
	}
}

// Fetch returns the full transcript text for a YouTube video URL. A video
// with an empty caption feed yields "" with a nil error.
func (f *Fetcher) Fetch(ctx context.Context, videoURL string) (string, error) {
	videoID, err := ExtractVideoID(videoURL)
	if err != nil {
		return "", err
	}

	track, err := f.findCaptionTrack(ctx, videoID)
	if err != nil {
		return "", err
	}

	segments, err := f.fetchSegments(ctx, track)
	if err != nil {
		return "", err
	}
	return JoinSegments(segments), nil
}

// ExtractVideoID pulls the 11-character video id out of watch and short-link
// URL forms.
func ExtractVideoID(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	u, err := url.Parse(raw)
	if err != nil {
		return "", ErrInvalidURL
	}

	host := strings.TrimPrefix(strings.ToLower(u.Hostname()), "www.")
	switch host {
	case "youtube.com", "m.youtube.com":
		if id := u.Query().Get("v"); id != "" {
			return id, nil
		}
		for _, prefix := range []string{"/embed/", "/shorts/", "/live/"} {
			if strings.HasPrefix(u.Path, prefix) {
				if id := strings.SplitN(strings.TrimPrefix(u.Path, prefix), "/", 2)[0]; id != "" {
					return id, nil
				}
			}
		}
	case "youtu.be":
		if id := strings.Trim(u.Path, "/"); id != "" {
			return strings.SplitN(id, "/", 2)[0], nil
		}
	}
	return "", ErrInvalidURL
}

// JoinSegments concatenates cue texts with single spaces, preserving cue
// order and any whitespace the feed itself carries.
func JoinSegments(segments []Segment) string {
	if len(segments) == 0 {
		return ""
	}
	texts := make([]string, len(segments))
	for i, seg := range segments {
		texts[i] = seg.Text
	}
	return strings.Join(texts, " ")
}

type captionTrack struct {
	BaseURL      string `json:"baseUrl"`
	LanguageCode string `json:"languageCode"`
	Kind         string `json:"kind"`
}

func (f *Fetcher) findCaptionTrack(ctx context.Context, videoID string) (*captionTrack, error) {
	watchURL := "https://www.youtube.com/watch?v=" + url.QueryEscape(videoID)
	body, err := f.get(ctx, watchURL)
	if err != nil {
		return nil, fmt.Errorf("fetch watch page: %w", err)
	}

	page := string(body)
	tracks, ok := parseCaptionTracks(page)
	if !ok {
		if strings.Contains(page, `"playabilityStatus":`) {
			return nil, ErrTranscriptsDisabled
		}
		return nil, ErrNoTranscript
	}
	if len(tracks) == 0 {
		return nil, ErrNoTranscript
	}

	// Prefer a manually authored English track, then any English, then the
	// first track the page offers.
	var english *captionTrack
	for i := range tracks {
		if !strings.HasPrefix(tracks[i].LanguageCode, "en") {
			continue
		}
		if tracks[i].Kind != "asr" {
			return &tracks[i], nil
		}
		if english == nil {
			english = &tracks[i]
		}
	}
	if english != nil {
		return english, nil
	}
	return &tracks[0], nil
}

// parseCaptionTracks extracts the captionTracks JSON array embedded in the
// watch page markup.
func parseCaptionTracks(page string) ([]captionTrack, bool) {
	const marker = `"captionTracks":`
	start := strings.Index(page, marker)
	if start < 0 {
		return nil, false
	}
	rest := page[start+len(marker):]

	end := strings.Index(rest, `]`)
	if end < 0 {
		return nil, false
	}
	raw := rest[:end+1]

	var tracks []captionTrack
	if err := json.Unmarshal([]byte(raw), &tracks); err != nil {
		return nil, false
	}
	return tracks, true
}

type timedText struct {
	XMLName xml.Name   `xml:"transcript"`
	Texts   []cueEntry `xml:"text"`
}

type cueEntry struct {
	Start float64 `xml:"start,attr"`
	Dur   float64 `xml:"dur,attr"`
	Value string  `xml:",chardata"`
}

func (f *Fetcher) fetchSegments(ctx context.Context, track *captionTrack) ([]Segment, error) {
	body, err := f.get(ctx, track.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("fetch timedtext: %w", err)
	}
	return ParseTimedText(body)
}

// ParseTimedText decodes a timedtext XML payload into ordered segments. Cues
// carry HTML-escaped text on top of the XML escaping.
func ParseTimedText(body []byte) ([]Segment, error) {
	var doc timedText
	if err := xml.Unmarshal(body, &doc); err != nil {
		return nil, fmt.Errorf("decode timedtext: %w", err)
	}

	segments := make([]Segment, 0, len(doc.Texts))
	for _, cue := range doc.Texts {
		text := html.UnescapeString(cue.Value)
		if text == "" {
			continue
		}
		segments = append(segments, Segment{
			Text:     text,
			Start:    cue.Start,
			Duration: cue.Dur,
		})
	}
	return segments, nil
}

func (f *Fetcher) get(ctx context.Context, rawURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept-Language", "en-US,en")
	req.Header.Set("User-Agent", "Mozilla/5.0 (compatible; studyforge/1.0)")

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %d", resp.StatusCode)
	}
	return io.ReadAll(resp.Body)
}
