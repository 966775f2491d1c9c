package study

// Processing modes accepted by the pipeline. "conversation" is the legacy
// client spelling of the monologue mode and normalizes to it.
const (
	ModeFlashcards   = "flashcards"
	ModeSummary      = "summary"
	ModeMonologue    = "monologue"
	ModeConversation = "conversation"
	ModeAll          = "all"
)

type sourceKind int

const (
	sourceDocument sourceKind = iota
	sourceVideo
)

func (k sourceKind) contentDesc() string {
	if k == sourceVideo {
		return "this video"
	}
	return "the attached document"
}

// normalizeMode folds aliases and maps every unknown mode onto summary.
func normalizeMode(mode string) string {
	switch mode {
	case ModeFlashcards, ModeSummary, ModeMonologue, ModeAll:
		return mode
	case ModeConversation:
		return ModeMonologue
	default:
		return ModeSummary
	}
}

// promptFor returns the fixed generation instruction for a normalized mode.
func promptFor(mode string, source sourceKind) string {
	desc := source.contentDesc()
	switch mode {
	case ModeFlashcards:
		return "Generate concise flashcards (question/answer format) covering the key points of " + desc + ":"
	case ModeMonologue:
		return "Create a comprehensive spoken monologue by a single speaker (named Alex) discussing the key points from " + desc + ". " +
			"The monologue should be between 1800-2000 characters (aim for close to 2000 but do not exceed it). " +
			"Make it sound natural and conversational, as if Alex is presenting a podcast episode discussing the content. " +
			`Structure the response simply as "Alex: [monologue content]" without additional formatting.`
	case ModeAll:
		return "Process " + desc + ` and provide:
1. FLASHCARDS: Generate a set of concise flashcards (question/answer format) covering the key points.
2. SUMMARY: Provide a detailed summary highlighting the main arguments, topics, and conclusions.
3. MONOLOGUE: Create a comprehensive spoken monologue by a single speaker (named Alex) discussing the key points. The monologue should be between 1800-2000 characters (aim for close to 2000 but do not exceed it). Make it sound natural and conversational, as if Alex is presenting a podcast episode.

Format your response with clear headings (FLASHCARDS, SUMMARY, MONOLOGUE) separating each section.`
	case ModeSummary:
		return "Provide a detailed summary of " + desc + ", highlighting the main arguments, topics, and conclusions:"
	default:
		return "Summarize the key information in " + desc + ":"
	}
}

// Direct-video prompts used by the composite YouTube endpoint, which sends
// the video itself to the model instead of a transcript.
func videoSummaryPrompt() string {
	return "Please provide a detailed summary of this YouTube video, highlighting the main arguments, topics, and conclusions:"
}

func videoFlashcardsPrompt() string {
	return "Generate concise flashcards (question/answer format) covering the key points of this YouTube video:"
}

func videoPodcastPrompt() string {
	return "Create a comprehensive spoken monologue by a single speaker (named Alex) discussing the key points from this YouTube video. " +
		"Make it sound natural and conversational, as if Alex is presenting a podcast episode."
}
