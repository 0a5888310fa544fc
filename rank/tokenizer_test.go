package rank

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTokenize(t *testing.T) {
	t.Run("lowercases and splits on punctuation", func(t *testing.T) {
		tokens := Tokenize("SF food trucks: affordable street eats near SOMA")
		assert.Equal(t, []string{"sf", "food", "trucks", "affordable", "street", "eats", "near", "soma"}, tokens)
	})

	t.Run("splits hyphenated words", func(t *testing.T) {
		tokens := Tokenize("Budget-friendly meal")
		assert.Equal(t, []string{"budget", "friendly", "meal"}, tokens)
	})

	t.Run("keeps digits", func(t *testing.T) {
		tokens := Tokenize("open 24 hours, $15 entry")
		assert.Equal(t, []string{"open", "24", "hours", "15", "entry"}, tokens)
	})

	t.Run("empty input yields empty sequence", func(t *testing.T) {
		assert.Empty(t, Tokenize(""))
		assert.Empty(t, Tokenize("  ...!?  "))
	})

	t.Run("deterministic", func(t *testing.T) {
		first := Tokenize("Jazz club in New Orleans on Frenchmen Street")
		second := Tokenize("Jazz club in New Orleans on Frenchmen Street")
		assert.Equal(t, first, second)
	})
}
