package model

import (
	"encoding/hex"
	"strings"

	"golang.org/x/crypto/sha3"
)

// PostingFingerprint returns a stable identifier for posting text.
// Whitespace runs are collapsed and case is folded first so reformatted
// copies of the same posting share a fingerprint.
func PostingFingerprint(text string) string {
	canonical := strings.ToLower(strings.Join(strings.Fields(text), " "))
	sum := sha3.Sum256([]byte(canonical))
	return hex.EncodeToString(sum[:])
}
