// Package id generates time-sortable report identifiers.
package id

import (
	cryptoRand "crypto/rand"
	"encoding/binary"
	"io"
	"math/rand"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"
)

// Generator produces monotonic ULIDs. IDs generated within the same
// millisecond remain lexicographically increasing.
type Generator struct {
	mu      sync.Mutex
	now     func() time.Time
	entropy io.Reader
}

// NewGenerator returns a generator using clock now (time.Now when nil)
// and entropy seeded from crypto/rand.
func NewGenerator(now func() time.Time) *Generator {
	if now == nil {
		now = time.Now
	}

	var seed int64
	_ = binary.Read(cryptoRand.Reader, binary.LittleEndian, &seed)
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	return &Generator{
		now:     now,
		entropy: ulid.Monotonic(rand.New(rand.NewSource(seed)), 0),
	}
}

// New returns the next ULID string.
func (g *Generator) New() string {
	g.mu.Lock()
	defer g.mu.Unlock()

	id, err := ulid.New(ulid.Timestamp(g.now().UTC()), g.entropy)
	if err != nil {
		// Only possible if the clock goes backwards past the monotonic window.
		panic(err)
	}
	return id.String()
}

// Time extracts the generation time encoded in a ULID string.
func Time(s string) (time.Time, error) {
	id, err := ulid.ParseStrict(s)
	if err != nil {
		return time.Time{}, err
	}
	return ulid.Time(id.Time()).UTC(), nil
}
