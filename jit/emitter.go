package jit

import "github.com/holiman/uint256"

const dupReach = 16

var (
	u256Zero        = new(uint256.Int)
	u256CalldataLen = uint256.NewInt(32)
	u256SelfAddr    = uint256.NewInt(0xe0)
	u256AllOnes     = new(uint256.Int).Not(new(uint256.Int))
)

// Emitter tracks the symbolic EVM state used to drive both passes of the
// synthesiser: the ops/imm sequence emitted so far, the operand stack and
// memory models, and the frequency and push-order counters the word
// planner reads for pre-seed discovery (spec.md §4.2). Its word-reuse
// cache (ReuseCandidate/RecordWordOrigin) is not consulted by Plan, which
// keeps its own reuse map. It mirrors the role go-ethereum's own `program.Program` plays as a
// bytecode builder, generalized with the symbolic reasoning spec.md needs.
type Emitter struct {
	rules Rules

	ops []OpCode
	imm [][]byte // parallel to ops; nil for opcodes with no immediate

	stack *symStack
	mem   *symMemory

	// freq counts how many times a value has been requested via
	// EmitPushInt, keyed by its 32-byte big-endian form, consulted by the
	// planner to rank pre-seed candidates. Requests satisfied by a DUP are
	// counted like any other; the counter is never decremented.
	freq map[[32]byte]int

	// pushSeq records the order in which a distinct value was first
	// requested via EmitPushInt, used as a pre-seed tie-breaker.
	pushSeq    map[[32]byte]int
	nextPushNo int

	// reuse is the word-reuse cache: hex(word) -> the base memory offset
	// where it was first materialized, plus an estimated reuse cost. A
	// missing entry means "never seen"; reuseNever marks "seen, but judged
	// not worth reusing again" per spec.md's data model.
	reuseBase map[[32]byte]uint64
	reuseCost map[[32]byte]int
}

const reuseNever = -1

func NewEmitter(rules Rules) *Emitter {
	return &Emitter{
		rules:     rules,
		stack:     newSymStack(),
		mem:       newSymMemory(),
		freq:      make(map[[32]byte]int),
		pushSeq:   make(map[[32]byte]int),
		reuseBase: make(map[[32]byte]uint64),
		reuseCost: make(map[[32]byte]int),
	}
}

func key(v *uint256.Int) [32]byte {
	return v.Bytes32()
}

// Bytes returns the concatenated bytecode emitted so far.
func (e *Emitter) Bytes() []byte {
	out := make([]byte, 0, len(e.ops)*2)
	for i, op := range e.ops {
		out = append(out, byte(op))
		out = append(out, e.imm[i]...)
	}
	return out
}

func (e *Emitter) Len() int {
	n := 0
	for i, op := range e.ops {
		_ = op
		n += 1 + len(e.imm[i])
	}
	return n
}

// HighWater returns the current memory high-water mark.
func (e *Emitter) HighWater() uint64 { return e.mem.highWater }

// FrequencyOf reports how many times v has been requested via EmitPushInt
// or EmitPushBytes so far — spec.md's "frequency counters keyed by value,"
// consulted by the planner when building the pre-seed list.
func (e *Emitter) FrequencyOf(v *uint256.Int) int {
	return e.freq[key(v)]
}

// PushOrder reports the order in which v was first pushed (0-based), or -1
// if it has never been pushed.
func (e *Emitter) PushOrder(v *uint256.Int) int {
	if n, ok := e.pushSeq[key(v)]; ok {
		return n
	}
	return -1
}

// ReuseCandidate reports the cached base offset for word v and whether
// reusing it (vs re-synthesizing) is still considered worthwhile.
func (e *Emitter) ReuseCandidate(v *uint256.Int) (offset uint64, worthwhile bool) {
	k := key(v)
	base, seen := e.reuseBase[k]
	if !seen {
		return 0, false
	}
	return base, e.reuseCost[k] != reuseNever
}

// RecordWordOrigin remembers that v was first materialized at memory offset
// base, for later WORD REUSE consideration. cost is the byte cost the
// planner spent synthesizing it there; pass reuseNever to mark it as not
// worth reusing (e.g. a word already trivially cheap to re-synthesize).
func (e *Emitter) RecordWordOrigin(v *uint256.Int, base uint64, cost int) {
	k := key(v)
	if _, seen := e.reuseBase[k]; seen {
		return
	}
	e.reuseBase[k] = base
	e.reuseCost[k] = cost
}

func (e *Emitter) emitRaw(op OpCode, imm []byte) {
	e.ops = append(e.ops, op)
	e.imm = append(e.imm, imm)
}

// EmitOp emits a non-push opcode, applying its stack and memory effects to
// the symbolic model. It covers exactly the opcode vocabulary spec.md §3
// lists as "opcode semantics modeled."
func (e *Emitter) EmitOp(op OpCode) {
	e.emitRaw(op, nil)
	switch op {
	case ADDRESS:
		e.stack.push(u256SelfAddr)
	case CALLDATASIZE:
		e.stack.push(u256CalldataLen)
	case MSIZE:
		e.stack.push(uint256.NewInt(e.mem.highWater))
	case NOT:
		x := e.stack.pop()
		r := new(uint256.Int).Not(&x)
		e.stack.push(r)
	case SUB:
		x := e.stack.pop()
		y := e.stack.pop()
		r := new(uint256.Int).Sub(&x, &y)
		e.stack.push(r)
	case AND:
		x := e.stack.pop()
		y := e.stack.pop()
		r := new(uint256.Int).And(&x, &y)
		e.stack.push(r)
	case OR:
		x := e.stack.pop()
		y := e.stack.pop()
		r := new(uint256.Int).Or(&x, &y)
		e.stack.push(r)
	case XOR:
		x := e.stack.pop()
		y := e.stack.pop()
		r := new(uint256.Int).Xor(&x, &y)
		e.stack.push(r)
	case SHL:
		shift := e.stack.pop()
		val := e.stack.pop()
		r := new(uint256.Int)
		if shift.LtUint64(256) {
			r.Lsh(&val, uint(shift.Uint64()))
		}
		e.stack.push(r)
	case SHR:
		shift := e.stack.pop()
		val := e.stack.pop()
		r := new(uint256.Int)
		if shift.LtUint64(256) {
			r.Rsh(&val, uint(shift.Uint64()))
		}
		e.stack.push(r)
	case SIGNEXTEND:
		back := e.stack.pop()
		val := e.stack.pop()
		r := new(uint256.Int).Set(&val)
		r.ExtendSign(r, &back)
		e.stack.push(r)
	case SWAP1:
		e.stack.swapTop()
	case DUP1, DUP1 + 1, DUP1 + 2, DUP1 + 3, DUP1 + 4, DUP1 + 5, DUP1 + 6, DUP1 + 7,
		DUP1 + 8, DUP1 + 9, DUP1 + 10, DUP1 + 11, DUP1 + 12, DUP1 + 13, DUP1 + 14, DUP1 + 15:
		e.stack.dup(int(op - DUP1))
	case MLOAD:
		off := e.stack.pop()
		v := e.mem.load(off.Uint64())
		e.stack.push(&v)
	case MSTORE:
		off := e.stack.pop()
		val := e.stack.pop()
		e.mem.store(off.Uint64(), &val)
	case MSTORE8:
		off := e.stack.pop()
		e.stack.pop() // value; only the low byte matters, not tracked symbolically
		e.mem.store8(off.Uint64())
	case MCOPY:
		dst := e.stack.pop()
		_ = e.stack.pop() // src
		size := e.stack.pop()
		if hw := roundUp32(dst.Uint64() + size.Uint64()); hw > e.mem.highWater {
			e.mem.highWater = hw
		}
	case CALLVALUE, GAS, RETURNDATASIZE:
		e.stack.push(u256Zero) // value unknown to the symbolic model; never consulted
	case CALLDATALOAD:
		e.stack.pop() // offset
		e.stack.push(u256Zero)
	case CALL:
		for i := 0; i < 7; i++ {
			e.stack.pop()
		}
		e.stack.push(u256Zero)
	case RETURNDATACOPY:
		for i := 0; i < 3; i++ {
			e.stack.pop()
		}
	case RETURN:
		e.stack.pop()
		e.stack.pop()
	case STOP:
		// no-op
	default:
		panic(&ErrUnknownOp{Op: op})
	}
}

// EmitDupRaw emits DUPn for the given 1-based n without touching frequency
// bookkeeping, for callers that manage it themselves.
func (e *Emitter) EmitDupRaw(n int) {
	e.EmitOp(DUPn(n))
}

// EmitPushBytes requests the literal byte run b be on top of the stack,
// routed through the same DUP/peephole/hard-constant policy as
// EmitPushInt — the byte run's integer value is all that matters to the
// emitter, not the width it arrived in (spec.md's push_bytes and push_int
// are two names for one underlying decision).
func (e *Emitter) EmitPushBytes(b []byte) {
	e.EmitPushInt(new(uint256.Int).SetBytes(b))
}

// EmitPushInt ensures v is on top of the symbolic stack, choosing the
// cheapest of: DUP (if v is within the top 16 slots), a named-constant
// rewrite (CALLDATASIZE/MSIZE/ADDRESS/PUSH0+NOT), a hard-constant synthesis
// strategy, or a plain PUSHk — exactly the policy spec.md §4.1 describes.
func (e *Emitter) EmitPushInt(v *uint256.Int) {
	defer e.recordPush(v)

	if depth := e.stack.lastIndexOf(v, dupReach); depth >= 0 {
		e.EmitOp(DUPn(depth + 1))
		return
	}

	switch {
	case v.IsZero():
		e.pushZero()
		return
	case v.Eq(u256CalldataLen):
		e.EmitOp(CALLDATASIZE)
		return
	case e.mem.highWater != 0 && v.Eq(uint256.NewInt(e.mem.highWater)):
		e.EmitOp(MSIZE)
		return
	case v.Eq(u256SelfAddr):
		e.EmitOp(ADDRESS)
		return
	case v.Eq(u256AllOnes):
		e.pushZero()
		e.EmitOp(NOT)
		return
	}

	enc := bestConstantEncoding(v, e.rules)
	e.emitEncoding(enc)
}

func (e *Emitter) pushZero() {
	if e.rules.PUSH0 {
		e.emitRaw(PUSH0, nil)
	} else {
		e.emitRaw(PUSH1, []byte{0x00})
	}
	e.stack.push(u256Zero)
}

func (e *Emitter) pushLiteral(v *uint256.Int) {
	if v.IsZero() {
		e.pushZero()
		return
	}
	n := v.ByteLen()
	b := v.Bytes32()
	e.emitRaw(PUSHn(n), b[32-n:])
	e.stack.push(v)
}

func (e *Emitter) emitEncoding(enc encoding) {
	for _, step := range enc.steps {
		if step.val != nil {
			e.pushLiteral(step.val)
			continue
		}
		e.EmitOp(step.op)
	}
}

func (e *Emitter) recordPush(v *uint256.Int) {
	k := key(v)
	if _, seen := e.pushSeq[k]; !seen {
		e.pushSeq[k] = e.nextPushNo
		e.nextPushNo++
	}
	e.freq[k]++
}

// EmitTrailer appends the fixed CALL/RETURNDATACOPY/RETURN trailer every
// JIT contract ends with (spec.md §4.3 step 6 / §6): raw opcodes, not
// routed through the push peephole policy — except that each of its four
// zero-pushes still respects Rules.PUSH0, since spec.md's fixed 12-byte
// trailer (`34 5f 35 5a f1 3d 5f 5f 3e 3d 5f f3`) implicitly assumes PUSH0
// is available (the spec's own baseline). On a pre-Shanghai target each
// 0x5f becomes a 2-byte PUSH1 0x00 instead, growing the trailer to 16
// bytes; the other 8 opcodes are unconditionally fixed.
func (e *Emitter) EmitTrailer() {
	seq := []OpCode{
		CALLVALUE, PUSH0, CALLDATALOAD, GAS, CALL,
		RETURNDATASIZE, PUSH0, PUSH0, RETURNDATACOPY,
		RETURNDATASIZE, PUSH0, RETURN,
	}
	for _, op := range seq {
		if op == PUSH0 {
			e.pushZero()
			continue
		}
		e.EmitOp(op)
	}
}

// ErrUnknownOp indicates the emitter was asked to emit an opcode outside
// the vocabulary it knows how to reason about symbolically.
type ErrUnknownOp struct {
	Op OpCode
}

func (e *ErrUnknownOp) Error() string {
	return "jit: emitter has no symbolic model for opcode " + e.Op.String()
}
