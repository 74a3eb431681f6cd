// internal/daily/daily.go
//
// Deterministic daily puzzles: every player gets the same board on a given
// date. The generator seed is HMAC-SHA256(salt, YYYY-MM-DD).

package daily

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/binary"
	"time"

	"github.com/robalobadob/flow/internal/generator"
)

// DateKey returns YYYY-MM-DD in UTC.
func DateKey(t time.Time) string {
	return t.UTC().Format("2006-01-02")
}

// Seed returns a deterministic generator seed for a date.
func Seed(date time.Time, salt string) uint64 {
	h := hmac.New(sha256.New, []byte(salt))
	h.Write([]byte(DateKey(date)))
	sum := h.Sum(nil)
	// first 8 bytes are plenty for a PCG seed
	return binary.BigEndian.Uint64(sum[:8])
}

// Puzzle generates the daily puzzle for a date.
func Puzzle(date time.Time, salt string, rows, colors int) (generator.Puzzle, error) {
	return generator.Generate(generator.NewRand(Seed(date, salt)), rows, colors)
}
