package models

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
)

func TestContentPayloadValidateTextKinds(t *testing.T) {
	ok := ContentPayload{Text: "some text"}
	assert.NoError(t, ok.Validate(ContentKindFlashcards))
	assert.NoError(t, ok.Validate(ContentKindSummary))

	assert.Error(t, ContentPayload{}.Validate(ContentKindSummary))
	assert.Error(t, ContentPayload{Text: "   "}.Validate(ContentKindFlashcards))

	mixed := ContentPayload{Text: "t", AudioPath: "https://x/a.mp3"}
	assert.Error(t, mixed.Validate(ContentKindSummary))
}

func TestContentPayloadValidateMonologue(t *testing.T) {
	fromPipeline := ContentPayload{Text: "spoken", AudioPath: "https://x/a.mp3"}
	assert.NoError(t, fromPipeline.Validate(ContentKindMonologue))

	textOnly := ContentPayload{Text: "spoken"}
	assert.NoError(t, textOnly.Validate(ContentKindMonologue))

	reconciled := ContentPayload{AudioURL: "https://x/a.mp3", Pathname: "monologues/s/a.mp3"}
	assert.NoError(t, reconciled.Validate(ContentKindMonologue))

	assert.Error(t, ContentPayload{}.Validate(ContentKindMonologue))
	assert.Error(t, ContentPayload{AudioURL: "https://x/a.mp3"}.Validate(ContentKindMonologue))
}

func TestContentPayloadValidateComposite(t *testing.T) {
	composite := ContentPayload{Summary: "s", Flashcards: "f", Podcast: "p"}
	assert.NoError(t, composite.Validate(ContentKindYouTube))

	partial := ContentPayload{Summary: "s"}
	assert.NoError(t, partial.Validate(ContentKindYouTube))

	assert.Error(t, ContentPayload{}.Validate(ContentKindYouTube))
}

func TestContentPayloadValidateUnknownKind(t *testing.T) {
	assert.Error(t, ContentPayload{Text: "x"}.Validate("podcast-remix"))
}

func TestExcerpt(t *testing.T) {
	assert.Equal(t, "short", Excerpt("short"))

	long := strings.Repeat("x", ExcerptLimit+50)
	got := Excerpt(long)
	assert.Len(t, got, ExcerptLimit)
	assert.Equal(t, strings.Repeat("x", ExcerptLimit), got)
}

func TestExcerptCountsRunes(t *testing.T) {
	long := strings.Repeat("ü", ExcerptLimit+5)
	got := Excerpt(long)
	assert.True(t, utf8.ValidString(got))
	assert.Equal(t, ExcerptLimit, utf8.RuneCountInString(got))
	assert.Equal(t, strings.Repeat("ü", ExcerptLimit), got)
}
