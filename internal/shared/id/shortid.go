// Package id generates the public identifiers exposed over the API.
// Internal numeric keys never leave the service.
package id

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"strings"

	"github.com/google/uuid"
)

// Base62 alphabet: 0-9, A-Z, a-z
const alphabet = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz"

// DefaultLength is the length of the random part of a prefixed id
const DefaultLength = 12

// Prefixes for different entity types (Stripe-style)
const (
	PrefixOrganization = "org"
	PrefixRole         = "rl"
	PrefixPlan         = "pl"
	PrefixMembership   = "mb"
)

var alphabetLen = big.NewInt(int64(len(alphabet)))

// Generate creates a cryptographically random base62 string of the given length.
func Generate(length int) (string, error) {
	if length <= 0 {
		length = DefaultLength
	}

	var sb strings.Builder
	sb.Grow(length)
	for i := 0; i < length; i++ {
		n, err := rand.Int(rand.Reader, alphabetLen)
		if err != nil {
			return "", fmt.Errorf("failed to generate random number: %w", err)
		}
		sb.WriteByte(alphabet[n.Int64()])
	}
	return sb.String(), nil
}

// New returns "prefix_xxxxxxxxxxxx".
func New(prefix string) (string, error) {
	s, err := Generate(DefaultLength)
	if err != nil {
		return "", err
	}
	return prefix + "_" + s, nil
}

// HasPrefix reports whether s looks like an id minted by New(prefix).
func HasPrefix(s, prefix string) bool {
	rest, ok := strings.CutPrefix(s, prefix+"_")
	if !ok || len(rest) != DefaultLength {
		return false
	}
	for i := 0; i < len(rest); i++ {
		if !strings.ContainsRune(alphabet, rune(rest[i])) {
			return false
		}
	}
	return true
}

// NewPrincipalUUID returns the stable external identifier of an operator or customer.
func NewPrincipalUUID() string {
	return uuid.NewString()
}
