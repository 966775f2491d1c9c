package chat

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/studyforge/core/internal/modules/study/genai"
)

type fakeGen struct {
	got   genai.Request
	reply string
}

func (f *fakeGen) Generate(_ context.Context, req genai.Request) (string, error) {
	f.got = req
	return f.reply, nil
}

func TestBuildPrompt(t *testing.T) {
	assert.Equal(t, "hello", BuildPrompt("", "hello"))
	assert.Equal(t,
		"Context: the summary\n\nUser Question: hello",
		BuildPrompt("the summary", "hello"))
}

func TestNormalizeHistoryDropsInFlightMessage(t *testing.T) {
	turns := NormalizeHistory([]Message{
		{Role: "user", Content: "first"},
		{Role: "assistant", Content: "reply"},
		{Role: "user", Content: "current question"},
	})
	require.Len(t, turns, 2)
	assert.Equal(t, genai.Turn{Role: "user", Text: "first"}, turns[0])
	assert.Equal(t, genai.Turn{Role: "model", Text: "reply"}, turns[1])
}

func TestNormalizeHistoryDropsLeadingModelTurns(t *testing.T) {
	turns := NormalizeHistory([]Message{
		{Role: "assistant", Content: "welcome"},
		{Role: "user", Content: "question"},
		{Role: "assistant", Content: "answer"},
		{Role: "user", Content: "current"},
	})
	require.Len(t, turns, 2)
	assert.Equal(t, "user", turns[0].Role)
	assert.Equal(t, "question", turns[0].Text)
	assert.Equal(t, "model", turns[1].Role)
}

func TestNormalizeHistoryCollapsesRepeatedRoles(t *testing.T) {
	turns := NormalizeHistory([]Message{
		{Role: "user", Content: "one"},
		{Role: "user", Content: "two"},
		{Role: "assistant", Content: "reply"},
		{Role: "user", Content: "current"},
	})
	require.Len(t, turns, 2)
	assert.Equal(t, "one", turns[0].Text)
	assert.Equal(t, "reply", turns[1].Text)
}

func TestNormalizeHistoryEmpty(t *testing.T) {
	assert.Empty(t, NormalizeHistory(nil))
	assert.Empty(t, NormalizeHistory([]Message{{Role: "user", Content: "only current"}}))
}

func TestRespondUsesClientContextWithoutDocument(t *testing.T) {
	gen := &fakeGen{reply: "an answer"}
	svc := NewService(nil, gen, zap.NewNop())

	text, err := svc.Respond(context.Background(), ChatDTO{
		Message: "what is this about?",
		Context: "pasted context",
		History: []Message{
			{Role: "user", Content: "earlier"},
			{Role: "assistant", Content: "earlier reply"},
			{Role: "user", Content: "what is this about?"},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, "an answer", text)

	assert.Equal(t, "Context: pasted context\n\nUser Question: what is this about?", gen.got.Prompt)
	require.Len(t, gen.got.History, 2)
	require.NotNil(t, gen.got.Sampling)
	assert.Equal(t, int32(1000), gen.got.Sampling.MaxOutputTokens)
	assert.Equal(t, float32(0.8), gen.got.Sampling.TopP)
}
