package utils

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"math/big"
	"sync"

	"github.com/google/uuid"
)

// IDGenerator produces identifiers for projects and sections. It is injected
// so that composition behaviour stays deterministic under test.
type IDGenerator interface {
	NewID(prefix string) (string, error)
}

// RandomIDs generates hex-based IDs with a prefix (used for sections).
type RandomIDs struct{}

func (RandomIDs) NewID(prefix string) (string, error) { return NewID(prefix) }

// UUIDs generates "prefix_<uuid>" identifiers, or a bare uuid for an empty prefix.
type UUIDs struct{}

func (UUIDs) NewID(prefix string) (string, error) {
	id, err := uuid.NewRandom()
	if err != nil {
		return "", err
	}
	if prefix == "" {
		return id.String(), nil
	}
	return prefix + "_" + id.String(), nil
}

// SequentialIDs hands out "prefix-1", "prefix-2", ... per prefix.
type SequentialIDs struct {
	mu   sync.Mutex
	next map[string]int
}

func NewSequentialIDs() *SequentialIDs {
	return &SequentialIDs{next: make(map[string]int)}
}

func (s *SequentialIDs) NewID(prefix string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.next[prefix]++
	return fmt.Sprintf("%s-%d", prefix, s.next[prefix]), nil
}

// NewID generates a new hex-based ID with a prefix.
// Format: "prefix_hexstring" (e.g., "sec_a1b2c3d4e5f6...")
func NewID(prefix string) (string, error) {
	b := make([]byte, 16)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return fmt.Sprintf("%s_%s", prefix, hex.EncodeToString(b)), nil
}

// NewTextID generates a new human-readable numeric ID with a prefix (used for fallback website urls).
// Format: "prefix-12345-6789" (e.g., "site-12345-6789")
func NewTextID(prefix string) (string, error) {
	a, err := randInt(10000, 99999)
	if err != nil {
		return "", err
	}
	b, err := randInt(1000, 9999)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%s-%05d-%04d", prefix, a, b), nil
}

// Picker chooses an index in [0, n). Used to pick a default project thumbnail.
type Picker func(n int) int

// RandomPicker picks uniformly using crypto/rand, falling back to 0.
func RandomPicker(n int) int {
	if n <= 1 {
		return 0
	}
	v, err := randInt(0, int64(n-1))
	if err != nil {
		return 0
	}
	return int(v)
}

func randInt(min, max int64) (int64, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(max-min+1))
	if err != nil {
		return 0, err
	}
	return min + n.Int64(), nil
}
