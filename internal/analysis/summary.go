package analysis

import "strings"

const (
	// DefaultSummarySentences is how many leading sentences make the summary.
	DefaultSummarySentences = 3
	// summaryFallbackChars bounds the raw-text fallback when no sentence
	// boundary is found.
	summaryFallbackChars = 240
	// SummaryUnavailable marks reports whose transcript could not be produced.
	SummaryUnavailable = "Transcript unavailable."
)

// Summarize produces an extractive summary: the first sentenceCount
// sentences of the transcript, split on terminal punctuation.
func Summarize(transcript string, sentenceCount int) string {
	if strings.TrimSpace(transcript) == "" {
		return SummaryUnavailable
	}
	if sentenceCount < 1 {
		sentenceCount = 1
	}

	sentences := splitSentences(transcript)
	if len(sentences) == 0 {
		text := strings.TrimSpace(transcript)
		if len(text) > summaryFallbackChars {
			return text[:summaryFallbackChars]
		}
		return text
	}

	if len(sentences) > sentenceCount {
		sentences = sentences[:sentenceCount]
	}
	return strings.Join(sentences, " ")
}

// splitSentences cuts the text after each terminal punctuation run followed
// by whitespace. The trailing fragment counts as a sentence even without
// terminal punctuation.
func splitSentences(text string) []string {
	var sentences []string
	var current strings.Builder
	runes := []rune(strings.TrimSpace(text))

	flush := func() {
		if s := strings.TrimSpace(current.String()); s != "" {
			sentences = append(sentences, s)
		}
		current.Reset()
	}

	for i, r := range runes {
		current.WriteRune(r)
		if isTerminal(r) && i+1 < len(runes) && isSpace(runes[i+1]) {
			flush()
		}
	}
	flush()

	return sentences
}

func isTerminal(r rune) bool {
	return r == '.' || r == '!' || r == '?'
}

func isSpace(r rune) bool {
	return r == ' ' || r == '\t' || r == '\n' || r == '\r'
}
