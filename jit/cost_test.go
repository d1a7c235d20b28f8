package jit

import (
	"testing"

	"github.com/holiman/uint256"
)

func maxU256() *uint256.Int {
	return new(uint256.Int).Not(new(uint256.Int))
}

func TestPushCostZero(t *testing.T) {
	if c := pushCost(new(uint256.Int), Rules{PUSH0: true}); c != 1 {
		t.Fatalf("pushCost(0, PUSH0=true) = %d, want 1", c)
	}
	if c := pushCost(new(uint256.Int), Rules{PUSH0: false}); c != 2 {
		t.Fatalf("pushCost(0, PUSH0=false) = %d, want 2", c)
	}
}

func TestPushCostByteLen(t *testing.T) {
	v := uint256.NewInt(0xABCD)
	if c := pushCost(v, DefaultRules()); c != 3 { // opcode + 2 immediate bytes
		t.Fatalf("pushCost(0xABCD) = %d, want 3", c)
	}
}

// TestEmitPushIntRoundtrip exercises EmitPushInt over values chosen to
// favor each of the four hard-constant strategies in turn, checking only
// that the symbolic stack ends up holding the exact requested value — the
// strategy the cost model picks may vary, but correctness must not.
func TestEmitPushIntRoundtrip(t *testing.T) {
	allOnes := maxU256()

	nearMax := new(uint256.Int).Sub(allOnes, uint256.NewInt(4)) // 2^256 - 5

	values := []*uint256.Int{
		new(uint256.Int).Not(uint256.NewInt(5)), // cheap via NOT
		nearMax,                                 // cheap via SUB or NOT
		new(uint256.Int).Sub(new(uint256.Int), uint256.NewInt(300)), // sign-extend-shaped
		new(uint256.Int).Lsh(uint256.NewInt(0xABCD), 200),           // zero low bits: no hard-constant strategy applies, literal
		allOnes,
		uint256.NewInt(0),
		uint256.NewInt(32),
		uint256.NewInt(0xe0),
	}
	for _, v := range values {
		e := NewEmitter(DefaultRules())
		e.EmitPushInt(v)
		if e.stack.len() != 1 {
			t.Fatalf("EmitPushInt(%s): stack len = %d, want 1", v.Hex(), e.stack.len())
		}
		got := e.stack.peek(0)
		if !got.Eq(v) {
			t.Fatalf("EmitPushInt(%s): stack top = %s, want %s", v.Hex(), got.Hex(), v.Hex())
		}
	}
}

func TestBestConstantEncodingBeatsLiteralForAllOnesNeighbors(t *testing.T) {
	v := new(uint256.Int).Not(uint256.NewInt(3)) // 2^256 - 4, 32-byte literal
	enc := bestConstantEncoding(v, DefaultRules())
	literalCost := pushCost(v, DefaultRules())
	if enc.cost >= literalCost {
		t.Fatalf("expected a hard-constant encoding to beat the 33-byte literal: got cost %d vs literal %d", enc.cost, literalCost)
	}
}

func TestSignExtendHelper(t *testing.T) {
	// -1 as an 8-bit two's complement value, sign-extended, is all-ones.
	x := uint256.NewInt(0xFF)
	got := signExtend(x, 0)
	want := maxU256()
	if !got.Eq(want) {
		t.Fatalf("signExtend(0xFF, 0) = %s, want %s", got.Hex(), want.Hex())
	}
}

func TestShiftNotEncodingFindsCandidate(t *testing.T) {
	// SHIFT-NOT round-trips when v's low s bits are already all ones: the
	// reconstruction forces them to 1 regardless of what NOT(v) held there.
	low64Ones := new(uint256.Int).Sub(new(uint256.Int).Lsh(uint256.NewInt(1), 64), uint256.NewInt(1))
	v := new(uint256.Int).Or(new(uint256.Int).Lsh(uint256.NewInt(0x42), 64), low64Ones)
	enc, ok := shiftNotEncoding(v, DefaultRules())
	if !ok {
		t.Fatal("expected a SHIFT-NOT candidate for a word with 64 trailing one-bits, got none")
	}
	if enc.cost <= 0 {
		t.Fatalf("encoding cost = %d, want positive", enc.cost)
	}
	// Correctness: NOT((NOT(v) >> s) << s) must equal v for the s chosen.
	notV := new(uint256.Int).Not(v)
	// Recover s from the emitted steps: second step is PUSH1(s).
	sVal := enc.steps[1].val
	s := uint(sVal.Uint64())
	shifted := new(uint256.Int).Rsh(notV, s)
	reconstructed := new(uint256.Int).Lsh(shifted, s)
	reconstructed.Not(reconstructed)
	if !reconstructed.Eq(v) {
		t.Fatalf("SHIFT-NOT encoding does not round-trip: got %s, want %s", reconstructed.Hex(), v.Hex())
	}
}
