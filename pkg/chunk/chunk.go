// Package chunk splits line-oriented text into pieces that fit a platform's
// per-message size limit.
package chunk

import "strings"

// Lines groups lines into chunks of at most limit characters, never breaking
// a line across chunks. A single line longer than limit is truncated to fit.
// Order is preserved, so each chunk continues the list where the previous one
// stopped.
func Lines(lines []string, limit int) []string {
	var chunks []string
	var b strings.Builder

	for _, line := range lines {
		if len(line) > limit {
			line = line[:limit]
		}
		if b.Len() > 0 && b.Len()+1+len(line) > limit {
			chunks = append(chunks, b.String())
			b.Reset()
		}
		if b.Len() > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(line)
	}
	if b.Len() > 0 {
		chunks = append(chunks, b.String())
	}
	return chunks
}
