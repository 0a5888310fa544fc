package storage

import (
	"testing"

	"github.com/poiesic/rankit/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVectorSerialization(t *testing.T) {
	t.Run("round trip", func(t *testing.T) {
		vec := []float32{0.25, -1.5, 0, 3.14159, -0.001}
		got, err := UnmarshalVector(MarshalVector(vec))
		require.NoError(t, err)
		assert.Equal(t, vec, got)
	})

	t.Run("empty vector", func(t *testing.T) {
		got, err := UnmarshalVector(MarshalVector(nil))
		require.NoError(t, err)
		assert.Empty(t, got)
	})

	t.Run("truncated data fails", func(t *testing.T) {
		data := MarshalVector([]float32{1, 2, 3})
		_, err := UnmarshalVector(data[:len(data)-2])
		assert.ErrorIs(t, err, ErrSerializationFailed)
	})

	t.Run("garbage fails", func(t *testing.T) {
		_, err := UnmarshalVector([]byte{0xff})
		assert.ErrorIs(t, err, ErrSerializationFailed)
	})
}

func TestIDSerialization(t *testing.T) {
	t.Run("round trip", func(t *testing.T) {
		for _, id := range []core.ID{0, 1, 255, 1 << 20, 1<<64 - 1} {
			got, err := UnmarshalID(MarshalID(id))
			require.NoError(t, err)
			assert.Equal(t, id, got)
		}
	})

	t.Run("empty data fails", func(t *testing.T) {
		_, err := UnmarshalID(nil)
		assert.ErrorIs(t, err, ErrSerializationFailed)
	})
}
