package study

import (
	"regexp"
	"strings"
)

// Sections holds the parts extracted from an "all" mode response.
type Sections struct {
	Flashcards string
	Summary    string
	Monologue  string
}

// Section markers must start a line; the colon is optional and models emit
// the headings in any order.
var (
	markerRe        = regexp.MustCompile(`(?im)^[ \t]*(FLASHCARDS|SUMMARY|MONOLOGUE)\b[ \t]*:?[ \t]*`)
	speakerPrefixRe = regexp.MustCompile(`(?i)^[a-z]+[ \t]*:[ \t]*`)
)

// ExtractSections splits a combined response into its labeled sections. A
// missing marker leaves its section empty; a response without any markers
// yields all-empty sections. The monologue section is returned without its
// speaker prefix.
func ExtractSections(text string) Sections {
	matches := markerRe.FindAllStringSubmatchIndex(text, -1)

	var out Sections
	for i, m := range matches {
		name := strings.ToUpper(text[m[2]:m[3]])
		start := m[1]
		end := len(text)
		if i+1 < len(matches) {
			end = matches[i+1][0]
		}
		body := strings.TrimSpace(text[start:end])

		switch name {
		case "FLASHCARDS":
			if out.Flashcards == "" {
				out.Flashcards = body
			}
		case "SUMMARY":
			if out.Summary == "" {
				out.Summary = body
			}
		case "MONOLOGUE":
			if out.Monologue == "" {
				out.Monologue = StripSpeakerPrefix(body)
			}
		}
	}
	return out
}

// StripSpeakerPrefix removes a leading "Name:" speaker tag from monologue
// text so the synthesized audio does not read the name aloud.
func StripSpeakerPrefix(text string) string {
	text = strings.TrimSpace(text)
	return strings.TrimSpace(speakerPrefixRe.ReplaceAllString(text, ""))
}
