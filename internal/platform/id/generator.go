package id

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
)

// Generator creates opaque IDs for entities and short single-use codes
// for invites.
type Generator interface {
	NewID() (string, error)
	NewCode() (string, error)
}

const (
	idBytes   = 16
	codeBytes = 8
)

type RandomGenerator struct{}

func NewRandomGenerator() *RandomGenerator {
	return &RandomGenerator{}
}

func (g *RandomGenerator) NewID() (string, error) {
	return randomHex(idBytes)
}

// NewCode returns a shorter token suitable for sharing over email.
func (g *RandomGenerator) NewCode() (string, error) {
	return randomHex(codeBytes)
}

func randomHex(n int) (string, error) {
	buf := make([]byte, n)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("read random bytes: %w", err)
	}
	return hex.EncodeToString(buf), nil
}
