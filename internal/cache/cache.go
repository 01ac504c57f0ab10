package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"time"
)

// Cache defines the interface for caching
type Cache interface {
	Get(key string) ([]byte, bool)
	Set(key string, value []byte, ttl time.Duration) error
	Delete(key string) error
	Clear() error
}

// PromptKey generates a cache key from a raw prompt. Prompts are arbitrary
// user text, so they are hashed rather than embedded in the key.
func PromptKey(prompt string) string {
	hash := sha256.Sum256([]byte(prompt))
	return "rapiddocs:v1:" + hex.EncodeToString(hash[:])
}
