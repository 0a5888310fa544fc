package badger

import (
	"encoding/binary"
	"fmt"

	"github.com/poiesic/rankit/core"
)

// Key prefixes for different data types
const (
	vectorPrefix      = "docvec"
	fingerprintKeyStr = "catfp:bound"
)

// makeVectorKey generates a key for a cached document vector.
// Format: prefix:model:id (ID in BigEndian so iteration order is stable).
func makeVectorKey(model string, id core.ID) []byte {
	prefix := fmt.Sprintf("%s:%s:", vectorPrefix, model)
	buf := make([]byte, len(prefix)+8)
	offset := copy(buf, prefix)
	binary.BigEndian.PutUint64(buf[offset:], uint64(id))
	return buf
}

// fingerprintKey is the key holding the catalogue fingerprint this
// cache was bound to.
func fingerprintKey() []byte {
	return []byte(fingerprintKeyStr)
}
