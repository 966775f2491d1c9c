package speech

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTruncateShortTextUnchanged(t *testing.T) {
	assert.Equal(t, "hello", Truncate("hello"))
	assert.Equal(t, "", Truncate(""))
}

func TestTruncateAtLimit(t *testing.T) {
	exact := strings.Repeat("a", maxSpeakChars)
	assert.Equal(t, exact, Truncate(exact))

	over := exact + "overflow"
	got := Truncate(over)
	assert.Len(t, got, maxSpeakChars)
	assert.Equal(t, exact, got)
}

func TestTruncateCountsRunes(t *testing.T) {
	over := strings.Repeat("ü", maxSpeakChars+5)
	got := Truncate(over)
	assert.Equal(t, maxSpeakChars, len([]rune(got)))
	assert.Equal(t, strings.Repeat("ü", maxSpeakChars), got)
}
