package idgen

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
)

// GenerateSecureID returns a prefixed identifier with a random hex suffix of
// the requested byte length, e.g. "wdgt_9f86d081884c7d65".
func GenerateSecureID(prefix string, length int) (string, error) {
	if length <= 0 {
		return "", fmt.Errorf("idgen: length must be positive, got %d", length)
	}

	buf := make([]byte, length)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("idgen: read random bytes: %w", err)
	}

	return fmt.Sprintf("%s_%s", prefix, hex.EncodeToString(buf)), nil
}
