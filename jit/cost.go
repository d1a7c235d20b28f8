package jit

import "github.com/holiman/uint256"

// pushCost returns the byte cost of pushing v via a plain PUSHk (or PUSH0),
// ignoring DUP reachability and named-constant rewrites — the baseline any
// other encoding has to beat. When rules.PUSH0 is false, pushing zero costs
// 2 bytes (PUSH1 0x00) instead of 1.
func pushCost(v *uint256.Int, rules Rules) int {
	if v.IsZero() {
		if rules.PUSH0 {
			return 1
		}
		return 2
	}
	return 1 + v.ByteLen()
}

// encoding describes one way to materialize a constant on the stack: a
// sequence of steps, each either a push of a value or a bare opcode, and
// the total byte cost of emitting them.
type encoding struct {
	// steps to emit, in order. A step with a non-nil val is a push of that
	// value (PUSH0/PUSHk chosen by the caller against rules); a step with a
	// nil val and op set is a bare opcode.
	steps []encStep
	cost  int
}

type encStep struct {
	val *uint256.Int // non-nil: push this value
	op  OpCode       // used when val == nil
}

var u256One = uint256.NewInt(1)

// bestConstantEncoding implements spec.md §4.1's four hard-constant
// synthesis strategies plus the plain-literal baseline, returning whichever
// is cheapest; ties go to the first-considered strategy (literal, then NOT,
// then SUB, then SIGNEXTEND, then SHIFT-AND-NOT), so a hard-constant
// strategy is used only when strictly shorter than the literal.
func bestConstantEncoding(v *uint256.Int, rules Rules) encoding {
	literal := encoding{steps: []encStep{{val: v}}, cost: pushCost(v, rules)}
	best := literal

	// Strategy 1: PUSHk(~v); NOT
	notV := new(uint256.Int).Not(v)
	if c := pushCost(notV, rules) + 1; c < best.cost {
		best = encoding{steps: []encStep{{val: notV}, {op: NOT}}, cost: c}
	}

	// Strategy 2: push (-v mod 2^256), push 0, SUB computes 0 - that = v.
	negV := new(uint256.Int).Sub(new(uint256.Int), v)
	if c := pushCost(negV, rules) + pushCost(new(uint256.Int), rules) + 1; c < best.cost {
		zero := new(uint256.Int)
		best = encoding{steps: []encStep{{val: negV}, {val: zero}, {op: SUB}}, cost: c}
	}

	// Strategy 3: PUSHk(v truncated to numBytes); PUSH1(numBytes-1); SIGNEXTEND.
	if enc, ok := signExtendEncoding(v, rules); ok && enc.cost < best.cost {
		best = enc
	}

	// Strategy 4: PUSHk(~v >> s); PUSH1(s); SHL; NOT, s in {8,...,248}.
	if enc, ok := shiftNotEncoding(v, rules); ok && enc.cost < best.cost {
		best = enc
	}

	return best
}

func signExtendEncoding(v *uint256.Int, rules Rules) (encoding, bool) {
	for numBytes := 1; numBytes <= 31; numBytes++ {
		truncated := truncateBytes(v, numBytes)
		signByte := numBytes - 1
		got := signExtend(truncated, signByte)
		if got.Eq(v) {
			cost := (1 + numBytes) + 2 + 1
			sBytes := uint256.NewInt(uint64(signByte))
			return encoding{
				steps: []encStep{{val: truncated}, {val: sBytes}, {op: SIGNEXTEND}},
				cost:  cost,
			}, true
		}
	}
	return encoding{}, false
}

func shiftNotEncoding(v *uint256.Int, rules Rules) (encoding, bool) {
	notV := new(uint256.Int).Not(v)
	for s := 8; s <= 248; s += 8 {
		shifted := new(uint256.Int).Rsh(notV, uint(s))
		reconstructed := new(uint256.Int).Lsh(shifted, uint(s))
		reconstructed.Not(reconstructed)
		if reconstructed.Eq(v) {
			cost := pushCost(shifted, rules) + 2 + 1 + 1
			sBytes := uint256.NewInt(uint64(s))
			return encoding{
				steps: []encStep{{val: shifted}, {val: sBytes}, {op: SHL}, {op: NOT}},
				cost:  cost,
			}, true
		}
	}
	return encoding{}, false
}

// truncateBytes returns the low numBytes bytes of v, as a value.
func truncateBytes(v *uint256.Int, numBytes int) *uint256.Int {
	b := v.Bytes32()
	out := make([]byte, numBytes)
	copy(out, b[32-numBytes:])
	return new(uint256.Int).SetBytes(out)
}

// signExtend mirrors go-ethereum's opSignExtend / uint256.Int.ExtendSign:
// sign-extends x, treating it as a (signByte+1)-byte two's complement value.
func signExtend(x *uint256.Int, signByte int) *uint256.Int {
	back := uint256.NewInt(uint64(signByte))
	out := new(uint256.Int).Set(x)
	out.ExtendSign(out, back)
	return out
}
