package random

import (
	"encoding/binary"
	"fmt"
	"math/rand/v2"
	"strings"

	"gonum.org/v1/gonum/mathext/prng"
)

// Algorithm selects the pseudo-random generator backing a State
type Algorithm uint8

const (
	// PCG is the default: math/rand/v2 PCG seeded with (seed, seed)
	PCG Algorithm = iota
	// ChaCha8 is math/rand/v2 ChaCha8 with a SplitMix64-expanded seed
	ChaCha8
	// MT19937 is gonum's 32-bit Mersenne Twister; snapshots are large (2.5 KiB per draw)
	MT19937
	// Xoshiro256 is gonum's xoshiro256**
	Xoshiro256
	// SplitMix64 is gonum's SplitMix64
	SplitMix64
)

var algorithmNames = map[Algorithm]string{
	PCG:        "pcg",
	ChaCha8:    "chacha8",
	MT19937:    "mt19937",
	Xoshiro256: "xoshiro256",
	SplitMix64: "splitmix64",
}

func (a Algorithm) String() string {
	if name, ok := algorithmNames[a]; ok {
		return name
	}
	return fmt.Sprintf("Algorithm(%d)", uint8(a))
}

// ParseAlgorithm resolves a case-insensitive algorithm name, empty selects PCG
func ParseAlgorithm(name string) (Algorithm, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" {
		return PCG, nil
	}
	for alg, n := range algorithmNames {
		if n == name {
			return alg, nil
		}
	}
	return 0, fmt.Errorf("random: unknown algorithm %q", name)
}

// backend is an immutable generator snapshot.
// next returns one draw and the successor snapshot; the receiver is never modified.
type backend interface {
	next() (uint64, backend)
}

// Value receivers below operate on a copy of the generator internals, so the
// snapshot held by the caller's State is left untouched.

type pcgBackend struct{ src rand.PCG }

func (b pcgBackend) next() (uint64, backend) {
	v := b.src.Uint64()
	return v, b
}

type chachaBackend struct{ src rand.ChaCha8 }

func (b chachaBackend) next() (uint64, backend) {
	v := b.src.Uint64()
	return v, b
}

type mtBackend struct{ src prng.MT19937 }

func (b mtBackend) next() (uint64, backend) {
	v := b.src.Uint64()
	return v, b
}

type xoshiroBackend struct{ src prng.Xoshiro256starstar }

func (b xoshiroBackend) next() (uint64, backend) {
	v := b.src.Uint64()
	return v, b
}

type splitmixBackend struct{ src prng.SplitMix64 }

func (b splitmixBackend) next() (uint64, backend) {
	v := b.src.Uint64()
	return v, b
}

// State is an opaque, immutable snapshot of generator internals.
// Every draw consumes a State and yields a successor; reusing a State replays
// the same draws. The zero State is invalid.
type State struct {
	b   backend
	alg Algorithm
}

// New returns a PCG state for the seed
func New(seed uint64) State {
	return NewWith(PCG, seed)
}

// NewWith returns a state of the given algorithm for the seed
func NewWith(alg Algorithm, seed uint64) State {
	var b backend
	switch alg {
	case PCG:
		b = pcgBackend{src: *rand.NewPCG(seed, seed)}
	case ChaCha8:
		b = chachaBackend{src: *rand.NewChaCha8(expandSeed(seed))}
	case MT19937:
		src := prng.NewMT19937()
		src.Seed(seed)
		b = mtBackend{src: *src}
	case Xoshiro256:
		b = xoshiroBackend{src: *prng.NewXoshiro256starstar(seed)}
	case SplitMix64:
		b = splitmixBackend{src: *prng.NewSplitMix64(seed)}
	default:
		panic(fmt.Sprintf("random: unknown algorithm %d", uint8(alg)))
	}
	return State{b: b, alg: alg}
}

// FromEntropy seeds a state from the runtime's entropy source.
// The seed is returned so the run can be replayed with NewWith.
func FromEntropy(alg Algorithm) (State, uint64) {
	seed := rand.Uint64()
	return NewWith(alg, seed), seed
}

// expandSeed stretches a 64-bit seed into a ChaCha8 key with SplitMix64
func expandSeed(seed uint64) [32]byte {
	var key [32]byte
	sm := prng.NewSplitMix64(seed)
	for i := 0; i < 4; i++ {
		binary.LittleEndian.PutUint64(key[i*8:], sm.Uint64())
	}
	return key
}

// Valid reports whether the state was produced by a constructor
func (s State) Valid() bool {
	return s.b != nil
}

// Algorithm returns the generator kind
func (s State) Algorithm() Algorithm {
	return s.alg
}

// Uint64 is the single primitive draw every other computation is built on
func (s State) Uint64() (uint64, State) {
	if s.b == nil {
		panic("random: draw from uninitialized State")
	}
	v, next := s.b.next()
	return v, State{b: next, alg: s.alg}
}
