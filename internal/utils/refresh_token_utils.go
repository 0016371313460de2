package utils

import (
	"crypto/sha256"
	"encoding/hex"
)

// DigestSecret returns the hex SHA256 of a secret. Bcrypt only reads the first 72 bytes of
// its input and signed tokens are longer, so secrets are digested before bcrypt sees them.
func DigestSecret(secret string) string {
	sum := sha256.Sum256([]byte(secret))
	return hex.EncodeToString(sum[:])
}
