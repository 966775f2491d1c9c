package study

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/studyforge/core/internal/modules/study/contentstore"
	"github.com/studyforge/core/internal/modules/study/genai"
	"github.com/studyforge/core/internal/modules/study/speech"
	"github.com/studyforge/core/internal/modules/study/transcript"
)

type fakeGen struct {
	text    string
	err     error
	lastReq genai.Request
}

func (f *fakeGen) Generate(_ context.Context, req genai.Request) (string, error) {
	f.lastReq = req
	return f.text, f.err
}

type fakeTranscripts struct {
	text string
	err  error
}

func (f *fakeTranscripts) Fetch(context.Context, string) (string, error) {
	return f.text, f.err
}

type fakeSynth struct {
	artifact *speech.Artifact
	called   bool
	lastText string
}

func (f *fakeSynth) Synthesize(_ context.Context, text, _ string) *speech.Artifact {
	f.called = true
	f.lastText = text
	return f.artifact
}

type fakeSaver struct {
	sessionID string
	called    bool
	last      contentstore.Input
}

func (f *fakeSaver) Save(_ context.Context, _ string, in contentstore.Input) string {
	f.called = true
	f.last = in
	return f.sessionID
}

func newTestService(gen *fakeGen, tr *fakeTranscripts, synth *fakeSynth, saver *fakeSaver) *Service {
	return NewService(nil, gen, tr, synth, saver, "gemini-1.5-pro", zap.NewNop())
}

func validFile(mode string) FileInput {
	return FileInput{
		Name: "notes.txt",
		MIME: "text/plain",
		Size: 5,
		Data: []byte("hello"),
		Mode: mode,
	}
}

func statusOf(t *testing.T, err error) *StatusError {
	t.Helper()
	var se *StatusError
	require.ErrorAs(t, err, &se)
	return se
}

func TestProcessFileRejectsMissingFile(t *testing.T) {
	svc := newTestService(&fakeGen{}, &fakeTranscripts{}, &fakeSynth{}, &fakeSaver{})

	_, err := svc.ProcessFile(context.Background(), "u1", FileInput{Mode: "summary"})
	se := statusOf(t, err)
	assert.Equal(t, http.StatusBadRequest, se.Status)
	assert.Equal(t, "No file provided.", se.Message)
}

func TestProcessFileRejectsOversizedFile(t *testing.T) {
	svc := newTestService(&fakeGen{}, &fakeTranscripts{}, &fakeSynth{}, &fakeSaver{})

	in := validFile("summary")
	in.Size = maxUploadBytes + 1
	_, err := svc.ProcessFile(context.Background(), "u1", in)
	assert.Equal(t, "File exceeds 15MB limit.", statusOf(t, err).Message)
}

func TestProcessFileRejectsUnsupportedType(t *testing.T) {
	svc := newTestService(&fakeGen{}, &fakeTranscripts{}, &fakeSynth{}, &fakeSaver{})

	in := validFile("summary")
	in.MIME = "image/png"
	_, err := svc.ProcessFile(context.Background(), "u1", in)
	assert.Equal(t, "Unsupported file type (PDF, DOC, DOCX, TXT only).", statusOf(t, err).Message)
}

func TestProcessFileAllModeExtractsSectionsAndSynthesizes(t *testing.T) {
	gen := &fakeGen{text: "FLASHCARDS:\ncards\nSUMMARY:\nthe summary\nMONOLOGUE:\nAlex: spoken words"}
	synth := &fakeSynth{artifact: &speech.Artifact{URL: "https://blob/a.mp3", Pathname: "a.mp3"}}
	saver := &fakeSaver{sessionID: "sess-1"}
	svc := newTestService(gen, &fakeTranscripts{}, synth, saver)

	res, err := svc.ProcessFile(context.Background(), "u1", validFile("all"))
	require.NoError(t, err)

	assert.Equal(t, "cards", res.Flashcards)
	assert.Equal(t, "the summary", res.Summary)
	assert.Equal(t, "spoken words", res.Monologue)
	require.NotNil(t, res.Audio)
	assert.Equal(t, "sess-1", res.SessionID)

	assert.True(t, synth.called)
	assert.Equal(t, "spoken words", synth.lastText)

	assert.Equal(t, "all", saver.last.Kind)
	assert.Equal(t, contentstore.SourceFile, saver.last.SourceType)
	assert.Equal(t, "notes.txt", saver.last.SourceName)
	assert.Equal(t, "https://blob/a.mp3", saver.last.AudioPath)

	assert.Equal(t, []byte("hello"), gen.lastReq.InlineData)
	assert.Equal(t, "text/plain", gen.lastReq.InlineMIME)
}

func TestProcessFileConversationModeSynthesizesStrippedText(t *testing.T) {
	gen := &fakeGen{text: "Alex: Welcome to the episode."}
	synth := &fakeSynth{}
	svc := newTestService(gen, &fakeTranscripts{}, synth, &fakeSaver{})

	res, err := svc.ProcessFile(context.Background(), "u1", validFile("conversation"))
	require.NoError(t, err)

	assert.Equal(t, "Welcome to the episode.", res.Monologue)
	assert.Equal(t, "Welcome to the episode.", synth.lastText)
	assert.Nil(t, res.Audio)
	assert.Empty(t, res.SessionID)
}

func TestProcessFileUnknownModeDefaultsToSummary(t *testing.T) {
	gen := &fakeGen{text: "generated text"}
	synth := &fakeSynth{}
	saver := &fakeSaver{}
	svc := newTestService(gen, &fakeTranscripts{}, synth, saver)

	res, err := svc.ProcessFile(context.Background(), "u1", validFile("bogus"))
	require.NoError(t, err)

	assert.Equal(t, "generated text", res.Summary)
	assert.Empty(t, res.Monologue)
	assert.False(t, synth.called)
	assert.Equal(t, "summary", saver.last.Kind)
}

func TestProcessFilePropagatesGenerationError(t *testing.T) {
	gen := &fakeGen{err: &genai.Error{Kind: genai.KindSafety, Err: errors.New("blocked")}}
	saver := &fakeSaver{}
	svc := newTestService(gen, &fakeTranscripts{}, &fakeSynth{}, saver)

	_, err := svc.ProcessFile(context.Background(), "u1", validFile("summary"))
	assert.Equal(t, genai.KindSafety, genai.KindOf(err))
	assert.False(t, saver.called)
}

func TestProcessVideoRejectsNonYouTubeURL(t *testing.T) {
	svc := newTestService(&fakeGen{}, &fakeTranscripts{}, &fakeSynth{}, &fakeSaver{})

	_, err := svc.ProcessVideo(context.Background(), "u1", "https://vimeo.com/1", "all")
	se := statusOf(t, err)
	assert.Equal(t, http.StatusBadRequest, se.Status)
	assert.Equal(t, "Invalid YouTube URL provided.", se.Message)
}

func TestProcessVideoEmptyTranscriptFails(t *testing.T) {
	svc := newTestService(&fakeGen{}, &fakeTranscripts{text: ""}, &fakeSynth{}, &fakeSaver{})

	_, err := svc.ProcessVideo(context.Background(), "u1", "https://www.youtube.com/watch?v=abc", "all")
	se := statusOf(t, err)
	assert.Equal(t, http.StatusUnprocessableEntity, se.Status)
	assert.Equal(t, "Could not retrieve transcript for the video.", se.Message)
}

func TestProcessVideoTranscriptsDisabled(t *testing.T) {
	tr := &fakeTranscripts{err: transcript.ErrTranscriptsDisabled}
	svc := newTestService(&fakeGen{}, tr, &fakeSynth{}, &fakeSaver{})

	_, err := svc.ProcessVideo(context.Background(), "u1", "https://www.youtube.com/watch?v=abc", "all")
	assert.Equal(t, "Transcripts are disabled for this video.", statusOf(t, err).Message)
}

func TestProcessVideoUsesVideoModelAndSampling(t *testing.T) {
	gen := &fakeGen{text: "SUMMARY: a summary"}
	tr := &fakeTranscripts{text: "the transcript words"}
	saver := &fakeSaver{sessionID: "sess-2"}
	svc := newTestService(gen, tr, &fakeSynth{}, saver)

	res, err := svc.ProcessVideo(context.Background(), "u1", "https://youtu.be/abc123xyz00", "")
	require.NoError(t, err)

	assert.Equal(t, "gemini-1.5-pro", gen.lastReq.Model)
	assert.True(t, strings.HasPrefix(gen.lastReq.Text, "Video Transcript:\n\n"))
	assert.Contains(t, gen.lastReq.Text, "the transcript words")
	require.NotNil(t, gen.lastReq.Sampling)
	assert.InDelta(t, 0.7, float64(gen.lastReq.Sampling.Temperature), 1e-6)
	assert.Equal(t, int32(8192), gen.lastReq.Sampling.MaxOutputTokens)

	// Empty mode defaults to "all" for video processing.
	assert.Equal(t, "all", saver.last.Kind)
	assert.Equal(t, contentstore.SourceYouTube, saver.last.SourceType)
	assert.Equal(t, "a summary", res.Summary)
	assert.Equal(t, "sess-2", res.SessionID)
}

func TestProcessVideoMonologueStripsPrefix(t *testing.T) {
	gen := &fakeGen{text: "Alex: Today we cover the basics."}
	synth := &fakeSynth{artifact: &speech.Artifact{URL: "u", Pathname: "p"}}
	svc := newTestService(gen, &fakeTranscripts{text: "words"}, synth, &fakeSaver{})

	res, err := svc.ProcessVideo(context.Background(), "u1", "https://www.youtube.com/watch?v=abc", "monologue")
	require.NoError(t, err)

	assert.Equal(t, "Today we cover the basics.", res.Monologue)
	assert.Equal(t, "Today we cover the basics.", synth.lastText)
	require.NotNil(t, res.Audio)
}
