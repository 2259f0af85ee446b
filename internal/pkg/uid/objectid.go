package uid

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"os"
	"strings"
	"sync/atomic"
	"time"
)

// ObjectIDGenerator produces 24-char hex identifiers (4-byte unix timestamp,
// 5-byte node hash, 3-byte counter). Used for request correlation IDs where
// rough time ordering and cheap generation matter more than global
// uniqueness guarantees.
type ObjectIDGenerator struct {
	node    [5]byte
	counter uint32
}

// NewObjectIDGenerator seeds the node bytes from the machine identity and
// the counter from crypto/rand.
func NewObjectIDGenerator() (*ObjectIDGenerator, error) {
	g := &ObjectIDGenerator{}

	sum := sha256.Sum256([]byte(nodeIdentity()))
	copy(g.node[:], sum[:5])

	var seed [4]byte
	if _, err := rand.Read(seed[:]); err != nil {
		return nil, err
	}
	g.counter = uint32(seed[0])<<16 | uint32(seed[1])<<8 | uint32(seed[2])

	return g, nil
}

func nodeIdentity() string {
	if b, err := os.ReadFile("/etc/machine-id"); err == nil {
		if s := strings.TrimSpace(string(b)); s != "" {
			return s
		}
	}
	if h, err := os.Hostname(); err == nil && h != "" {
		return h
	}
	return "localhost"
}

// Generate returns the next identifier.
func (g *ObjectIDGenerator) Generate() string {
	var raw [12]byte

	ts := uint32(time.Now().Unix())
	raw[0] = byte(ts >> 24)
	raw[1] = byte(ts >> 16)
	raw[2] = byte(ts >> 8)
	raw[3] = byte(ts)

	copy(raw[4:9], g.node[:])

	c := atomic.AddUint32(&g.counter, 1)
	raw[9] = byte(c >> 16)
	raw[10] = byte(c >> 8)
	raw[11] = byte(c)

	var buf [24]byte
	hex.Encode(buf[:], raw[:])
	return string(buf[:])
}
