package study

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeMode(t *testing.T) {
	assert.Equal(t, ModeFlashcards, normalizeMode("flashcards"))
	assert.Equal(t, ModeMonologue, normalizeMode("conversation"))
	assert.Equal(t, ModeMonologue, normalizeMode("monologue"))
	assert.Equal(t, ModeAll, normalizeMode("all"))
	assert.Equal(t, ModeSummary, normalizeMode(""))
	assert.Equal(t, ModeSummary, normalizeMode("bogus"))
}

func TestPromptForSourceDescription(t *testing.T) {
	assert.Contains(t, promptFor(ModeSummary, sourceDocument), "the attached document")
	assert.Contains(t, promptFor(ModeSummary, sourceVideo), "this video")
}

func TestPromptForAllRequestsHeadings(t *testing.T) {
	p := promptFor(ModeAll, sourceDocument)
	for _, heading := range []string{"FLASHCARDS", "SUMMARY", "MONOLOGUE"} {
		assert.Contains(t, p, heading)
	}
}

func TestPromptForMonologueConstraints(t *testing.T) {
	p := promptFor(ModeMonologue, sourceVideo)
	assert.Contains(t, p, "Alex")
	assert.Contains(t, p, "1800-2000 characters")
	assert.True(t, strings.Contains(p, `"Alex: [monologue content]"`))
}
