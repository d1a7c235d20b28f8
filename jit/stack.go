package jit

import (
	"fmt"

	"github.com/holiman/uint256"
)

// symStack is the emitter's model of the EVM operand stack: an ordered
// sequence of statically-known 256-bit values. Backed by a plain slice, the
// same choice go-ethereum's own interpreter Stack makes (see the `Stack`
// type in core/vm), because DUP reachability only ever needs to inspect the
// top handful of slots.
type symStack struct {
	data []uint256.Int
}

func newSymStack() *symStack {
	return &symStack{data: make([]uint256.Int, 0, 32)}
}

func (s *symStack) push(v *uint256.Int) {
	s.data = append(s.data, *v)
}

func (s *symStack) pop() uint256.Int {
	n := len(s.data)
	if n == 0 {
		panic(&ErrStackUnderflow{required: 1, have: 0})
	}
	v := s.data[n-1]
	s.data = s.data[:n-1]
	return v
}

func (s *symStack) peek(depthFromTop int) *uint256.Int {
	idx := len(s.data) - 1 - depthFromTop
	if idx < 0 {
		panic(&ErrStackUnderflow{required: depthFromTop + 1, have: len(s.data)})
	}
	return &s.data[idx]
}

func (s *symStack) len() int {
	return len(s.data)
}

// swapTop exchanges the top two stack items (SWAP1).
func (s *symStack) swapTop() {
	n := len(s.data)
	if n < 2 {
		panic(&ErrStackUnderflow{required: 2, have: n})
	}
	s.data[n-1], s.data[n-2] = s.data[n-2], s.data[n-1]
}

// dup duplicates the item at depthFromTop (0 == current top) onto the top
// of the stack, i.e. DUPn where n = depthFromTop+1.
func (s *symStack) dup(depthFromTop int) {
	v := *s.peek(depthFromTop)
	s.push(&v)
}

// lastIndexOf returns the shallowest depth-from-top (0 == top) at which v
// appears within the top maxDepth slots, or -1 if absent. Spec.md's design
// notes call this out explicitly as the primitive DUP reachability is built
// on ("Implementers should back it with a dynamic array ... and use
// last_index_of").
func (s *symStack) lastIndexOf(v *uint256.Int, maxDepth int) int {
	n := len(s.data)
	limit := maxDepth
	if limit > n {
		limit = n
	}
	for depth := 0; depth < limit; depth++ {
		if s.data[n-1-depth].Eq(v) {
			return depth
		}
	}
	return -1
}

// ErrStackUnderflow indicates the symbolic stack model was asked to pop or
// peek more items than it has — an emitter bug, not an ineligible-input
// condition (spec.md §7).
type ErrStackUnderflow struct {
	required int
	have     int
}

func (e *ErrStackUnderflow) Error() string {
	return fmt.Sprintf("jit: symbolic stack underflow: need %d, have %d", e.required, e.have)
}
