package badger

import "github.com/poiesic/talentrank/storage"

// NewMemoryVectorCache creates an in-memory vector cache for testing.
// Closing the cache closes its backend.
func NewMemoryVectorCache() (storage.VectorCache, error) {
	return OpenVectorCache("", true, nil)
}
