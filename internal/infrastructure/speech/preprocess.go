package speech

import "strings"

const (
	maxSentences = 4
	maxChars     = 500
)

// preprocessText shortens the input before synthesis: at most four sentences
// and 500 characters, with an ellipsis when truncated mid-text.
func preprocessText(text string) string {
	sentences := splitSentences(strings.TrimSpace(text))
	if len(sentences) > maxSentences {
		sentences = sentences[:maxSentences]
	}

	summary := strings.Join(sentences, " ")
	if runes := []rune(summary); len(runes) > maxChars {
		return string(runes[:maxChars-3]) + "..."
	}
	return summary
}

// splitSentences breaks text on sentence-ending punctuation followed by
// whitespace, keeping the punctuation with its sentence.
func splitSentences(text string) []string {
	var sentences []string
	start := 0
	runes := []rune(text)

	for i := 0; i < len(runes); i++ {
		switch runes[i] {
		case '.', '!', '?':
			// Consume any run of closing punctuation.
			for i+1 < len(runes) && (runes[i+1] == '.' || runes[i+1] == '!' || runes[i+1] == '?') {
				i++
			}
			end := i + 1
			if end < len(runes) && runes[end] != ' ' && runes[end] != '\n' && runes[end] != '\t' {
				continue
			}
			sentence := strings.TrimSpace(string(runes[start:end]))
			if sentence != "" {
				sentences = append(sentences, sentence)
			}
			start = end
		}
	}

	if rest := strings.TrimSpace(string(runes[start:])); rest != "" {
		sentences = append(sentences, rest)
	}
	return sentences
}
