package chunk

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLines(t *testing.T) {
	t.Run("keeps everything in one chunk when it fits", func(t *testing.T) {
		chunks := Lines([]string{"aa", "bb", "cc"}, 20)
		assert.Equal(t, []string{"aa\nbb\ncc"}, chunks)
	})

	t.Run("never splits a line across chunks", func(t *testing.T) {
		chunks := Lines([]string{"aaaa", "bbbb", "cccc"}, 9)
		assert.Equal(t, []string{"aaaa\nbbbb", "cccc"}, chunks)
	})

	t.Run("truncates a single overlong line", func(t *testing.T) {
		chunks := Lines([]string{strings.Repeat("x", 50)}, 10)
		assert.Equal(t, []string{strings.Repeat("x", 10)}, chunks)
	})

	t.Run("preserves line order across chunks", func(t *testing.T) {
		lines := []string{"1. a", "2. b", "3. c", "4. d", "5. e"}
		chunks := Lines(lines, 9)
		assert.Equal(t, strings.Join(lines, "\n"), strings.Join(chunks, "\n"))
	})

	t.Run("returns nothing for no input", func(t *testing.T) {
		assert.Empty(t, Lines(nil, 10))
		assert.Empty(t, Lines([]string{}, 10))
	})
}
