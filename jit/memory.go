package jit

import "github.com/holiman/uint256"

// symMemory is a sparse model of the EVM's byte-addressable memory, keyed
// by 32-byte-aligned offset as spec.md's design notes recommend ("prefer a
// hash mapping indexed by offset, not a dense array — the high-water mark
// is the only dense scalar that matters"). Reads of an absent key are zero,
// matching real EVM memory semantics for never-touched words.
type symMemory struct {
	words     map[uint64]uint256.Int
	highWater uint64 // largest touched offset, rounded up to a multiple of 32
}

func newSymMemory() *symMemory {
	return &symMemory{words: make(map[uint64]uint256.Int)}
}

func roundUp32(n uint64) uint64 {
	return (n + 31) &^ 31
}

// store records an MSTORE at offset (must be 32-byte aligned for the
// planner's own writes; the emitter doesn't enforce this on behalf of
// callers that intentionally write unaligned, e.g. none in this codebase).
func (m *symMemory) store(offset uint64, v *uint256.Int) {
	m.words[offset] = *v
	if hw := roundUp32(offset + 32); hw > m.highWater {
		m.highWater = hw
	}
}

// store8 records an MSTORE8 at offset: it only advances the high-water
// mark, since single-byte writes don't correspond to a whole tracked word.
func (m *symMemory) store8(offset uint64) {
	if hw := roundUp32(offset + 1); hw > m.highWater {
		m.highWater = hw
	}
}

// load returns the last full word stored at offset, or zero if untouched.
func (m *symMemory) load(offset uint64) uint256.Int {
	return m.words[offset]
}
