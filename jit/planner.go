package jit

import "github.com/holiman/uint256"

// wordSize is the EVM word width; spec.md's padded buffer is built from
// 32-byte chunks throughout.
const wordSize = 32

// selectorPad is the fixed left-padding applied to the original calldata so
// the 4-byte ABI selector lands right-aligned in the first word.
const selectorPad = 28

// preSeedLimit is the number of pre-seed values carried into the second
// pass, per spec.md §4.2's explicit "truncated to the top 15" (the design
// notes' open question lists {13,14,15} as all acceptable; the component
// algorithm itself commits to 15, so that's what's implemented).
const preSeedLimit = 15

// padBuffer builds spec.md §3's padded buffer B: 28 zero bytes, the
// original data, then zero-padding up to the next multiple of 32.
func padBuffer(data []byte) []byte {
	n := selectorPad + len(data)
	total := roundUp32(uint64(n))
	b := make([]byte, total)
	copy(b[selectorPad:], data)
	return b
}

type segment struct {
	start, end int // inclusive, 0..31 within the word
}

func segmentsOf(word []byte) []segment {
	var segs []segment
	i := 0
	for i < len(word) {
		if word[i] == 0 {
			i++
			continue
		}
		j := i
		for j < len(word) && word[j] != 0 {
			j++
		}
		segs = append(segs, segment{start: i, end: j - 1})
		i = j
	}
	return segs
}

func isAllZero(word []byte) bool {
	for _, b := range word {
		if b != 0 {
			return false
		}
	}
	return true
}

func wordValue(word []byte) *uint256.Int {
	return new(uint256.Int).SetBytes(word)
}

// strategyKind tags which of the five candidate strategies the planner
// picked for a given word, so the caller knows whether to append the shared
// finishing push_int(base);MSTORE (every strategy except MSTORE8 and
// MCOPY-based word reuse, which write memory themselves).
type strategyKind int

const (
	stratLiteral strategyKind = iota
	stratShlOr
	stratMstore8
	stratWordReuse
	stratWordReuseMcopy
	stratPeephole
)

// u256Word32 is the fixed copy length MCOPY-based word reuse always uses:
// one full 32-byte word.
var u256Word32 = uint256.NewInt(wordSize)

// reuseCostPerUse estimates the per-occurrence byte cost of reusing a word
// first materialized at originBase, under rules. With MCOPY available this
// is a single three-operand copy; otherwise MLOAD into the stack followed
// by the shared push_int(base);MSTORE finishing step.
func reuseCostPerUse(originBase uint64, rules Rules) int {
	if rules.MCOPY {
		return pushCost(u256Word32, rules) + pushCost(uint256.NewInt(originBase), rules) + pushCost(uint256.NewInt(0), rules) + 1
	}
	return pushCost(uint256.NewInt(originBase), rules) + 1
}

// wordReuseCandidate builds the candidate for reusing the word first seen
// at originBase to also populate dstBase. Spec.md §4.2 describes the
// MLOAD-based form (`PUSHn(origin); MLOAD; PUSHm(base); MSTORE`); when
// Rules reports MCOPY (EIP-5656) available, the MLOAD/MSTORE pair is
// replaced by a single MCOPY (pushes of length 32, origin and base, then
// MCOPY), the enrichment spec_full.md's SUPPLEMENTED FEATURES adds.
func wordReuseCandidate(originBase, dstBase uint64, rules Rules) candidate {
	if rules.MCOPY {
		steps := []Step{
			numStep(new(uint256.Int).Set(u256Word32)),
			numStep(uint256.NewInt(originBase)),
			numStep(uint256.NewInt(dstBase)),
			opStep(MCOPY),
		}
		cost := pushCost(u256Word32, rules) + pushCost(uint256.NewInt(originBase), rules) + pushCost(uint256.NewInt(dstBase), rules) + 1
		return candidate{kind: stratWordReuseMcopy, cost: cost, steps: steps}
	}
	return candidate{
		kind: stratWordReuse,
		cost: pushCost(uint256.NewInt(originBase), rules) + 1,
		steps: []Step{
			numStep(uint256.NewInt(originBase)),
			opStep(MLOAD),
		},
	}
}

type candidate struct {
	kind  strategyKind
	cost  int
	steps []Step
}

// reuseInfo is the planner's own bookkeeping for the word-reuse cache,
// kept separate from the Emitter so planning can look ahead (it needs the
// total occurrence count of a word before deciding whether caching it pays
// off net, per spec.md §4.2).
type reuseInfo struct {
	originBase uint64
	costPerUse int
	worthwhile bool
}

// Plan runs the first pass (spec.md §4.2) over data and returns the
// resulting plan together with the emitter state pass one accumulated
// (frequency counters and push order), from which the plan's pre-seed list
// was built. The second pass needs only the plan.
func Plan(data []byte, rules Rules) (*Plan, *Emitter) {
	b := padBuffer(data)
	e := NewEmitter(rules)

	occurrences := make(map[[32]byte]int)
	for base := 0; base < len(b); base += wordSize {
		w := b[base : base+wordSize]
		if isAllZero(w) {
			continue
		}
		occurrences[wordValue(w).Bytes32()]++
	}

	reuse := make(map[[32]byte]*reuseInfo)
	var steps []Step

	emit := func(st Step) {
		applyStep(e, st)
		steps = append(steps, st)
	}

	for base := 0; base < len(b); base += wordSize {
		w := b[base : base+wordSize]
		if isAllZero(w) {
			continue
		}
		wv := wordValue(w)
		wk := wv.Bytes32()
		segs := segmentsOf(w)

		// Candidates are built in spec.md §4.2 step 4's tie-break order —
		// LITERAL, WORD REUSE, SHL/OR, MSTORE8, peephole — so bestOf's
		// strict '<' comparison naturally favors the earlier-listed
		// strategy when two candidates cost the same.
		cands := []candidate{literalCandidate(w, segs)}
		if ri, seen := reuse[wk]; seen && ri.worthwhile {
			cands = append(cands, wordReuseCandidate(ri.originBase, uint64(base), rules))
		}
		cands = append(cands, shlOrCandidate(w, segs, rules))
		if c, ok := mstore8Candidate(base, w, segs); ok {
			cands = append(cands, c)
		}
		if c, ok := peepholeCandidate(wv, rules); ok {
			cands = append(cands, c)
		}

		best := bestOf(cands)

		if _, seen := reuse[wk]; !seen {
			lit := literalCandidate(w, segs)
			if lit.cost > 8 {
				costPerUse := reuseCostPerUse(uint64(base), rules)
				total := occurrences[wk]
				withReuse := lit.cost + (total-1)*costPerUse
				withoutReuse := total * lit.cost
				reuse[wk] = &reuseInfo{
					originBase: uint64(base),
					costPerUse: costPerUse,
					worthwhile: withReuse < withoutReuse,
				}
			} else {
				reuse[wk] = &reuseInfo{worthwhile: false}
			}
		}

		for _, st := range best.steps {
			emit(st)
		}
		if best.kind != stratMstore8 && best.kind != stratWordReuseMcopy {
			emit(numStep(uint256.NewInt(uint64(base))))
			emit(opStep(MSTORE))
		}
	}

	// Trailer pushed by the planner, outside the word loop (spec.md §4.2).
	emit(numStep(new(uint256.Int)))                     // retSize
	emit(numStep(new(uint256.Int)))                     // retOffset
	emit(numStep(uint256.NewInt(uint64(len(data)))))    // argsSize
	emit(numStep(uint256.NewInt(uint64(selectorPad))))  // argsOffset

	plan := &Plan{Steps: steps, PreSeed: buildPreSeed(e)}
	return plan, e
}

func bestOf(cands []candidate) candidate {
	best := cands[0]
	for _, c := range cands[1:] {
		if c.cost < best.cost {
			best = c
		}
	}
	return best
}

func literalCandidate(word []byte, segs []segment) candidate {
	tail := word[segs[0].start:]
	return candidate{
		kind:  stratLiteral,
		cost:  1 + len(tail),
		steps: []Step{bytesStep(append([]byte(nil), tail...))},
	}
}

func shlOrCandidate(word []byte, segs []segment, rules Rules) candidate {
	cost := 0
	var steps []Step
	for i, seg := range segs {
		chunk := append([]byte(nil), word[seg.start:seg.end+1]...)
		cost += 1 + len(chunk)
		steps = append(steps, bytesStep(chunk))
		if shift := (31 - seg.end) * 8; shift > 0 {
			cost += 3
			steps = append(steps, numStep(uint256.NewInt(uint64(shift))), opStep(SHL))
		}
		if i > 0 {
			cost++
			steps = append(steps, opStep(OR))
		}
	}
	return candidate{kind: stratShlOr, cost: cost, steps: steps}
}

func mstore8Candidate(base int, word []byte, segs []segment) (candidate, bool) {
	for _, seg := range segs {
		if seg.start != seg.end {
			return candidate{}, false
		}
	}
	var steps []Step
	for _, seg := range segs {
		steps = append(steps,
			bytesStep([]byte{word[seg.start]}),
			numStep(uint256.NewInt(uint64(base+seg.start))),
			opStep(MSTORE8),
		)
	}
	return candidate{kind: stratMstore8, cost: 3 * len(segs), steps: steps}, true
}

func peepholeCandidate(wv *uint256.Int, rules Rules) (candidate, bool) {
	enc := bestConstantEncoding(wv, rules)
	if len(enc.steps) == 1 && enc.steps[0].val != nil {
		return candidate{}, false // no peephole beat the literal; don't double-count it
	}
	return candidate{kind: stratPeephole, cost: enc.cost, steps: encodingToSteps(enc)}, true
}

func encodingToSteps(enc encoding) []Step {
	steps := make([]Step, 0, len(enc.steps))
	for _, s := range enc.steps {
		if s.val != nil {
			steps = append(steps, numStep(s.val))
		} else {
			steps = append(steps, opStep(s.op))
		}
	}
	return steps
}

// applyStep replays a single Step against an emitter, exactly as both
// passes do (spec.md §4.3 step 5: "calling emit_push_int, emit_push_bytes,
// or emit_op exactly as recorded").
func applyStep(e *Emitter, st Step) {
	switch st.Kind {
	case StepNum:
		e.EmitPushInt(st.Num)
	case StepBytes:
		e.EmitPushBytes(st.Bytes)
	case StepOp:
		e.EmitOp(st.Op)
	}
}

// reservedConstants are excluded from the pre-seed list regardless of
// frequency, per spec.md §4.2: they already have single-byte peepholes
// (0, 1, 32, 0xe0) and gain nothing from a dedicated stack slot.
func reserved(v *uint256.Int) bool {
	return v.IsZero() || v.IsUint64() && (v.Uint64() == 1 || v.Uint64() == 32 || v.Uint64() == 0xe0)
}

var u256Max128 = func() *uint256.Int {
	v := new(uint256.Int).Lsh(uint256.NewInt(1), 128)
	v.Sub(v, uint256.NewInt(1))
	return v
}()

// buildPreSeed implements spec.md §4.2's pre-seed discovery: frequency > 1,
// excluding reserved constants, sorted by first-appearance order descending
// (most-recently-first-seen first), filtered to <= 2^128-1, then truncated
// to the top preSeedLimit.
func buildPreSeed(e *Emitter) []uint256.Int {
	type candVal struct {
		v    uint256.Int
		seq  int
		freq int
	}
	var all []candVal
	for k, seq := range e.pushSeq {
		v := new(uint256.Int).SetBytes(k[:])
		if reserved(v) {
			continue
		}
		if v.Gt(u256Max128) {
			continue
		}
		freq := e.freq[k]
		if freq <= 1 {
			continue
		}
		all = append(all, candVal{v: *v, seq: seq, freq: freq})
	}
	// Most-recently-first-seen first == descending push order.
	for i := 1; i < len(all); i++ {
		j := i
		for j > 0 && all[j-1].seq < all[j].seq {
			all[j-1], all[j] = all[j], all[j-1]
			j--
		}
	}
	if len(all) > preSeedLimit {
		all = all[:preSeedLimit]
	}
	out := make([]uint256.Int, len(all))
	for i, c := range all {
		out[i] = c.v
	}
	return out
}
