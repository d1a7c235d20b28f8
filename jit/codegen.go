package jit

import "github.com/holiman/uint256"

// Generate runs the second pass (spec.md §4.3): a fresh emitter, pre-seeded
// with the plan's most valuable constants, replaying the plan so DUPn
// peepholes can fire against the pre-seeded stack, then the fixed trailer.
func Generate(plan *Plan, rules Rules) []byte {
	e := NewEmitter(rules)

	one := uint256.NewInt(1)
	e.EmitPushInt(one)
	for i := range plan.PreSeed {
		e.EmitPushInt(&plan.PreSeed[i])
	}
	e.EmitPushInt(one)

	for _, st := range plan.Steps {
		applyStep(e, st)
	}

	e.EmitTrailer()

	return e.Bytes()
}
