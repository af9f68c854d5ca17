package usecase

import (
	"crypto/sha256"
	"encoding/hex"

	"skill-match/internal/domain/matching"
)

// SuggestionsCachePrefix is shared by every suggestion entry so a catalog
// change can purge them by pattern.
const SuggestionsCachePrefix = "suggest:"

// SuggestionsCacheKey hashes the normalized query, keeping keys bounded for
// arbitrary input.
func SuggestionsCacheKey(query string) string {
	sum := sha256.Sum256([]byte(matching.Normalize(query)))
	return SuggestionsCachePrefix + hex.EncodeToString(sum[:])
}
