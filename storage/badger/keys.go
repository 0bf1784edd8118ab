package badger

import (
	"github.com/poiesic/talentrank/core"
	"github.com/poiesic/talentrank/storage"
)

const vectorPrefix = "vec:"

// makeVectorKey generates the key for a cached vector.
// Format: prefix + raw ID.
func makeVectorKey(id core.ID) []byte {
	buf := make([]byte, 0, len(vectorPrefix)+8)
	buf = append(buf, vectorPrefix...)
	return append(buf, storage.MarshalID(id)...)
}
