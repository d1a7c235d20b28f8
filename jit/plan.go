package jit

import "github.com/holiman/uint256"

// StepKind tags a Plan Step's payload, mirroring spec.md's tagged-union
// description of the word planner's output: "push a literal integer, push a
// literal byte run, or emit a bare opcode."
type StepKind int

const (
	StepNum StepKind = iota
	StepBytes
	StepOp
)

// Step is one instruction in a Plan. Exactly one of Num/Bytes/Op is
// meaningful, selected by Kind.
type Step struct {
	Kind  StepKind
	Num   *uint256.Int
	Bytes []byte
	Op    OpCode
}

func numStep(v *uint256.Int) Step { return Step{Kind: StepNum, Num: v} }
func bytesStep(b []byte) Step     { return Step{Kind: StepBytes, Bytes: b} }
func opStep(o OpCode) Step        { return Step{Kind: StepOp, Op: o} }

// Plan is the first pass's language-neutral output: the sequence of pushes
// and opcodes needed to reconstruct the target data in memory and hand it
// off to the fixed CALL trailer, plus the pre-seed list derived from
// frequency analysis of the values the plan pushes more than once.
type Plan struct {
	Steps []Step
	// PreSeed lists the values worth pushing onto the stack before replay
	// begins in pass two, most-valuable first, so later DUPs can reach
	// them. Spec.md §4.2/§4.3.
	PreSeed []uint256.Int
}
