// Package random provides the random sources used by the applicant generator.
//
// Generation only ever needs uniform floats in [0, 1), so a [Source] is the single capability threaded through
// the game. Production code uses [NewCryptoSource]; tests inject [NewScripted] or [Constant] to force branches.
package random

import (
	"crypto/rand"
	"encoding/binary"
	"math"
	"math/big"
	"sync"
)

// Source yields uniformly distributed floats in [0, 1).
type Source interface {
	Float64() float64
}

// CryptoSource draws from crypto/rand. It needs no seeding and is safe for concurrent use.
type CryptoSource struct{}

// NewCryptoSource returns the production Source.
func NewCryptoSource() CryptoSource {
	return CryptoSource{}
}

// float64 has a 53-bit mantissa, so the top 53 of 64 drawn bits fill [0, 1) evenly.
const (
	mantissaBits = 53
	unusedBits   = 64 - mantissaBits
)

// Float64 returns 53 random bits scaled to [0, 1).
func (CryptoSource) Float64() float64 {
	var b [8]byte
	if _, err := rand.Read(b[:]); err != nil {
		// crypto/rand only fails when the OS entropy source is broken.
		panic(err)
	}
	return float64(binary.BigEndian.Uint64(b[:])>>unusedBits) / (1 << mantissaBits)
}

// Scripted returns the scripted values in order and the fallback once they run out.
type Scripted struct {
	mu       sync.Mutex
	values   []float64
	fallback float64
	draws    int
}

// NewScripted creates a Source that replays values and then repeats fallback forever.
func NewScripted(fallback float64, values ...float64) *Scripted {
	return &Scripted{
		mu:       sync.Mutex{},
		values:   values,
		fallback: clamp(fallback),
		draws:    0,
	}
}

// Constant creates a Source that always returns v.
func Constant(v float64) *Scripted {
	return NewScripted(v)
}

func (s *Scripted) Float64() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.draws
	s.draws++
	if i < len(s.values) {
		return clamp(s.values[i])
	}
	return s.fallback
}

// Draws reports how many values have been consumed.
func (s *Scripted) Draws() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.draws
}

// clamp keeps scripted values inside [0, 1) so that index computations stay in range.
func clamp(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v >= 1 {
		return math.Nextafter(1, 0)
	}
	return v
}

// Intn returns a uniform integer in [0, n).
func Intn(src Source, n int) int {
	if n <= 0 {
		return 0
	}
	return int(math.Floor(src.Float64() * float64(n)))
}

// Between returns a uniform integer in [lo, hi].
func Between(src Source, lo, hi int) int {
	return Intn(src, hi-lo+1) + lo
}

// Uniform returns a float in [lo, lo+width).
func Uniform(src Source, lo, width float64) float64 {
	return lo + src.Float64()*width
}

// Flip reports whether a draw exceeds threshold, i.e. it succeeds with probability 1-threshold.
func Flip(src Source, threshold float64) bool {
	return src.Float64() > threshold
}

// Choice picks one element of items uniformly.
func Choice[T any](src Source, items []T) T {
	return items[Intn(src, len(items))]
}

var allowedLetters = []rune("abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ")

// Letters returns n cryptographically random ASCII letters.
func Letters(n uint) (string, error) {
	letters := make([]rune, n)
	for i := range letters {
		letterIndex, err := rand.Int(rand.Reader, big.NewInt(int64(len(allowedLetters))))
		if err != nil {
			return "", err //nolint:wrapcheck // crypto/rand errors are self-explanatory
		}
		letters[i] = allowedLetters[letterIndex.Int64()]
	}
	return string(letters), nil
}
