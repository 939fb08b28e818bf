// Package token generates opaque secrets: bearer tokens and email
// verification tokens. Only the hex sha256 of a secret is persisted.
package token

import (
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/base64"
	"encoding/hex"
	"fmt"
)

// DefaultEntropyBytes is the amount of randomness in a bearer token
const DefaultEntropyBytes = 16

// Generator implements both auth.TokenGenerator and principal.SecretGenerator
type Generator struct {
	entropy int
}

func NewGenerator(entropyBytes int) *Generator {
	if entropyBytes < DefaultEntropyBytes {
		entropyBytes = DefaultEntropyBytes
	}
	return &Generator{entropy: entropyBytes}
}

// Generate returns a url-safe plain secret and its storage hash
func (g *Generator) Generate() (string, string, error) {
	buf := make([]byte, g.entropy)
	if _, err := rand.Read(buf); err != nil {
		return "", "", fmt.Errorf("failed to generate random bytes: %w", err)
	}

	plain := base64.RawURLEncoding.EncodeToString(buf)
	return plain, g.Hash(plain), nil
}

func (g *Generator) Hash(plain string) string {
	sum := sha256.Sum256([]byte(plain))
	return hex.EncodeToString(sum[:])
}

func (g *Generator) Verify(plain, hash string) bool {
	return subtle.ConstantTimeCompare([]byte(g.Hash(plain)), []byte(hash)) == 1
}
