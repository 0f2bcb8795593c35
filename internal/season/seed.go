package season

import (
	"encoding/binary"
	"fmt"

	"golang.org/x/crypto/blake2b"
)

// SeedManager deterministically maps identifying information to RNG
// seeds. Seeds depend only on (season label, week, home id, away id,
// base seed), never on scheduling or execution order.
type SeedManager struct {
	BaseSeed int64
}

// GameSeed derives the seed for one game. The key is digested with
// BLAKE2b-8 and folded to a positive 31-bit value, with zero mapped to 1.
func (m SeedManager) GameSeed(seasonLabel string, week int, homeID, awayID string) int64 {
	key := fmt.Sprintf("%s|%d|%s|%s|%d", seasonLabel, week, homeID, awayID, m.BaseSeed)
	return m.fold(key)
}

// StreamSeed derives a seed for a named auxiliary stream, such as the
// standings tie-break draws.
func (m SeedManager) StreamSeed(seasonLabel, purpose string) int64 {
	key := fmt.Sprintf("%s|%s|%d", seasonLabel, purpose, m.BaseSeed)
	return m.fold(key)
}

func (m SeedManager) fold(key string) int64 {
	h, err := blake2b.New(8, nil)
	if err != nil {
		panic(err) // only reachable with an invalid digest size
	}
	h.Write([]byte(key))
	value := binary.BigEndian.Uint64(h.Sum(nil))
	seed := int64(value % (1<<31 - 1))
	if seed == 0 {
		seed = 1
	}
	return seed
}
