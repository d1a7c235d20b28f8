package jit

import "strconv"

// Rules describes which opcode-level features the target chain's EVM
// supports. The synthesiser is otherwise fork-agnostic, but two EIPs change
// the cheapest available encoding for constructs the spec's cost model
// reasons about, so they're modeled the same way go-ethereum's
// core/vm/eips.go models feature activation: a set of booleans flipped by
// EIP number, rather than by named fork ("Shanghai", "Cancun", ...), so a
// caller that knows only "the target supports EIP-3855" doesn't have to
// reconstruct which named fork that implies.
type Rules struct {
	// PUSH0 (EIP-3855). When false, the emitter falls back to PUSH1 0x00
	// wherever the peephole in spec.md §4.1 would otherwise emit PUSH0.
	PUSH0 bool
	// MCOPY (EIP-5656). When true, the WORD REUSE strategy (spec.md §4.2)
	// emits a single MCOPY instead of MLOAD+MSTORE.
	MCOPY bool
}

// DefaultRules targets the most recent ruleset the synthesiser knows about
// (Cancun: PUSH0 and MCOPY both available), matching spec.md's own
// assumption that PUSH0 is always available.
func DefaultRules() Rules {
	return Rules{PUSH0: true, MCOPY: true}
}

type activator func(*Rules)

// activators maps an EIP number to the function that enables it. Mirrors
// core/vm/eips.go's EnableEIP/ValidEip/ActivateableEips trio, restricted to
// the two EIPs that actually change the synthesiser's behavior.
var activators = map[int]activator{
	3855: func(r *Rules) { r.PUSH0 = true },
	5656: func(r *Rules) { r.MCOPY = true },
}

// EnableEIP activates the named EIP on r. It returns an error for any EIP
// number the synthesiser doesn't have an opinion about, the same contract
// as core/vm's EnableEIP.
func EnableEIP(eipNum int, r *Rules) error {
	fn, ok := activators[eipNum]
	if !ok {
		return &ErrUnsupportedEIP{EIP: eipNum}
	}
	fn(r)
	return nil
}

// ValidEip reports whether eipNum is one the synthesiser recognizes.
func ValidEip(eipNum int) bool {
	_, ok := activators[eipNum]
	return ok
}

// ErrUnsupportedEIP is returned by EnableEIP for an EIP number with no
// effect on bytecode synthesis.
type ErrUnsupportedEIP struct {
	EIP int
}

func (e *ErrUnsupportedEIP) Error() string {
	return "jit: eip " + strconv.Itoa(e.EIP) + " has no effect on calldata synthesis"
}
