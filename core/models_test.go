package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseID(t *testing.T) {
	t.Run("decimal ids", func(t *testing.T) {
		id, err := ParseID("42")
		require.NoError(t, err)
		assert.Equal(t, ID(42), id)
	})

	t.Run("rejects non-numeric input", func(t *testing.T) {
		_, err := ParseID("forty-two")
		assert.Error(t, err)
		_, err = ParseID("-1")
		assert.Error(t, err)
	})
}

func TestIDFromContent(t *testing.T) {
	t.Run("deterministic", func(t *testing.T) {
		assert.Equal(t, IDFromContent("harbor cruise"), IDFromContent("harbor cruise"))
	})

	t.Run("content sensitive", func(t *testing.T) {
		assert.NotEqual(t, IDFromContent("harbor cruise"), IDFromContent("harbor cruise "))
	})
}

func TestFingerprint(t *testing.T) {
	docs := func(texts ...string) []*Document {
		out := make([]*Document, len(texts))
		for i, text := range texts {
			out[i] = &Document{Id: ID(i + 1), Text: text}
		}
		return out
	}

	t.Run("stable for identical corpora", func(t *testing.T) {
		assert.Equal(t, Fingerprint(docs("a", "b")), Fingerprint(docs("a", "b")))
	})

	t.Run("changes with content", func(t *testing.T) {
		assert.NotEqual(t, Fingerprint(docs("a", "b")), Fingerprint(docs("a", "c")))
	})

	t.Run("changes with order", func(t *testing.T) {
		a := []*Document{{Id: 1, Text: "a"}, {Id: 2, Text: "b"}}
		b := []*Document{{Id: 2, Text: "b"}, {Id: 1, Text: "a"}}
		assert.NotEqual(t, Fingerprint(a), Fingerprint(b))
	})

	t.Run("distinct from a single document id", func(t *testing.T) {
		doc := &Document{Id: IDFromContent("solo"), Text: "solo"}
		assert.NotEqual(t, doc.Id, Fingerprint([]*Document{doc}))
	})
}

func TestValidateDocument(t *testing.T) {
	t.Run("valid document", func(t *testing.T) {
		assert.NoError(t, ValidateDocument(&Document{Id: 1, Text: "museum visit"}))
	})

	t.Run("optional tags may be empty", func(t *testing.T) {
		assert.NoError(t, ValidateDocument(&Document{Text: "untagged record"}))
	})

	t.Run("nil document", func(t *testing.T) {
		assert.ErrorIs(t, ValidateDocument(nil), ErrInvalidDocument)
	})

	t.Run("empty text", func(t *testing.T) {
		err := ValidateDocument(&Document{Id: 1})
		assert.ErrorIs(t, err, ErrInvalidDocument)
		assert.ErrorIs(t, err, ErrEmptyText)
	})
}
