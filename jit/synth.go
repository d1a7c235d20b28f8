package jit

// Synthesise produces the EVM bytecode that reconstructs data in memory and
// forwards it as calldata to whatever 32-byte address it is later handed,
// per spec.md §2–§4. It runs both compiler passes and a self-check of the
// emitted stack discipline before returning; a verification failure
// indicates an emitter bug, not a problem with data, and panics rather than
// returning an error (spec.md §7: "implementations should fail fast").
func Synthesise(data []byte, rules Rules) []byte {
	plan, _ := Plan(data, rules)
	code := Generate(plan, rules)
	verifyStackDiscipline(code, rules)
	return code
}
