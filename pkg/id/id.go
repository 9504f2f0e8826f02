// Package id mints identifiers for closed-trade journal rows.
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

var (
	mu      sync.Mutex
	entropy io.Reader
)

func init() {
	// A crypto/rand-seeded PRNG wrapped in ulid.Monotonic keeps IDs
	// unpredictable yet strictly increasing within one millisecond.
	var seed int64
	_ = binary.Read(cryptoRand.Reader, binary.LittleEndian, &seed)
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	entropy = ulid.Monotonic(rand.New(rand.NewSource(seed)), 0)
}

// New returns a fresh trade ID. IDs are ULID strings, so journal rows
// keyed by them sort in the order the trades were recorded.
func New() string {
	mu.Lock()
	defer mu.Unlock()

	id, err := ulid.New(ulid.Timestamp(time.Now().UTC()), entropy)
	if err != nil {
		// Only possible if the entropy source fails or time runs backwards.
		panic(err)
	}
	return id.String()
}
