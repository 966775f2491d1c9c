package transcript

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractVideoID(t *testing.T) {
	cases := []struct {
		url  string
		want string
	}{
		{"https://www.youtube.com/watch?v=dQw4w9WgXcQ", "dQw4w9WgXcQ"},
		{"https://youtube.com/watch?v=abc123&t=10s", "abc123"},
		{"https://youtu.be/dQw4w9WgXcQ", "dQw4w9WgXcQ"},
		{"https://youtu.be/dQw4w9WgXcQ?si=xyz", "dQw4w9WgXcQ"},
		{"https://www.youtube.com/embed/dQw4w9WgXcQ", "dQw4w9WgXcQ"},
		{"https://www.youtube.com/shorts/dQw4w9WgXcQ", "dQw4w9WgXcQ"},
	}
	for _, tc := range cases {
		got, err := ExtractVideoID(tc.url)
		require.NoError(t, err, tc.url)
		assert.Equal(t, tc.want, got, tc.url)
	}
}

func TestExtractVideoIDRejectsNonYouTube(t *testing.T) {
	for _, u := range []string{
		"https://vimeo.com/12345",
		"https://www.youtube.com/watch",
		"not a url at all ://",
		"",
	} {
		_, err := ExtractVideoID(u)
		assert.ErrorIs(t, err, ErrInvalidURL, u)
	}
}

func TestJoinSegmentsPreservesCueWhitespace(t *testing.T) {
	segments := []Segment{
		{Text: "Hello "},
		{Text: "world "},
		{Text: "today"},
	}
	assert.Equal(t, "Hello  world  today", JoinSegments(segments))
}

func TestJoinSegmentsEmpty(t *testing.T) {
	assert.Equal(t, "", JoinSegments(nil))
	assert.Equal(t, "", JoinSegments([]Segment{}))
}

func TestParseTimedText(t *testing.T) {
	body := []byte(`<?xml version="1.0" encoding="utf-8"?>
<transcript>
  <text start="0.5" dur="2.1">Hello &amp;amp; welcome</text>
  <text start="2.6" dur="1.9">to the &amp;#39;show&amp;#39;</text>
  <text start="4.5" dur="1.0"></text>
</transcript>`)

	segments, err := ParseTimedText(body)
	require.NoError(t, err)
	require.Len(t, segments, 2)

	assert.Equal(t, "Hello & welcome", segments[0].Text)
	assert.Equal(t, 0.5, segments[0].Start)
	assert.Equal(t, 2.1, segments[0].Duration)
	assert.Equal(t, "to the 'show'", segments[1].Text)
}

func TestParseTimedTextInvalidXML(t *testing.T) {
	_, err := ParseTimedText([]byte("<transcript><text>unterminated"))
	assert.Error(t, err)
}

func TestParseCaptionTracks(t *testing.T) {
	page := `...stuff..."captionTracks":[{"baseUrl":"https://www.youtube.com/api/timedtext?v=abc&lang=en","languageCode":"en","kind":"asr"},{"baseUrl":"https://www.youtube.com/api/timedtext?v=abc&lang=de","languageCode":"de"}],"audioTracks":[...`

	tracks, ok := parseCaptionTracks(page)
	require.True(t, ok)
	require.Len(t, tracks, 2)
	assert.Equal(t, "https://www.youtube.com/api/timedtext?v=abc&lang=en", tracks[0].BaseURL)
	assert.Equal(t, "en", tracks[0].LanguageCode)
	assert.Equal(t, "asr", tracks[0].Kind)
	assert.Equal(t, "de", tracks[1].LanguageCode)
}

func TestParseCaptionTracksMissing(t *testing.T) {
	_, ok := parseCaptionTracks(`<html>"playabilityStatus":{"status":"OK"}</html>`)
	assert.False(t, ok)
}
