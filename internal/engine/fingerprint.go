package engine

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"

	"preventivo/internal/core"
)

// fingerprint derives a stable content hash of an input snapshot. Two
// engines over equal categories and settings share cache entries; any
// change to the inputs changes the key and so invalidates the memo.
func fingerprint(categories []core.Category, settings core.Settings) string {
	b, err := json.Marshal(core.Estimate{Categories: categories, Settings: settings})
	if err != nil {
		// Domain structs marshal cleanly; an error here means a caller
		// smuggled in something unencodable, so skip caching for it.
		return ""
	}
	sum := sha256.Sum256(b)
	return hex.EncodeToString(sum[:])
}
