package jit

import (
	"testing"

	"github.com/holiman/uint256"
)

func TestSymStackPushPop(t *testing.T) {
	s := newSymStack()
	a := uint256.NewInt(1)
	b := uint256.NewInt(2)
	s.push(a)
	s.push(b)
	if s.len() != 2 {
		t.Fatalf("len = %d, want 2", s.len())
	}
	got := s.pop()
	if !got.Eq(b) {
		t.Fatalf("pop = %v, want %v", got.String(), b.String())
	}
	got = s.pop()
	if !got.Eq(a) {
		t.Fatalf("pop = %v, want %v", got.String(), a.String())
	}
}

func TestSymStackPopUnderflow(t *testing.T) {
	s := newSymStack()
	defer func() {
		if r := recover(); r == nil {
			t.Fatal("expected panic on empty pop")
		}
	}()
	s.pop()
}

func TestSymStackDupAndSwap(t *testing.T) {
	s := newSymStack()
	one := uint256.NewInt(1)
	two := uint256.NewInt(2)
	s.push(one)
	s.push(two)
	s.dup(1) // DUP2: duplicate `one`
	if top := s.peek(0); !top.Eq(one) {
		t.Fatalf("after dup(1), top = %v, want 1", top.String())
	}
	s.swapTop()
	if top := s.peek(0); !top.Eq(two) {
		t.Fatalf("after swapTop, top = %v, want 2", top.String())
	}
}

func TestSymStackLastIndexOf(t *testing.T) {
	s := newSymStack()
	for i := 1; i <= 20; i++ {
		s.push(uint256.NewInt(uint64(i)))
	}
	// top of stack is 20, so value 5 sits at depth 20-5=15 from the top.
	if depth := s.lastIndexOf(uint256.NewInt(5), 16); depth != 15 {
		t.Fatalf("lastIndexOf(5, 16) = %d, want 15", depth)
	}
	if depth := s.lastIndexOf(uint256.NewInt(1), 16); depth != -1 {
		t.Fatalf("lastIndexOf(1, 16) = %d, want -1 (out of reach)", depth)
	}
	if depth := s.lastIndexOf(uint256.NewInt(999), 16); depth != -1 {
		t.Fatalf("lastIndexOf(999, 16) = %d, want -1 (absent)", depth)
	}
}
