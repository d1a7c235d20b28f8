// Package jit synthesises a minimal EVM contract that reconstructs an
// arbitrary byte string in memory and forwards it as calldata to a target
// address supplied at call time.
//
// The synthesiser is a two-pass compiler. Plan walks the padded input one
// 32-byte word at a time and picks, per word, whichever of five candidate
// encodings (plain literal, shifted-and-ORed segments, per-byte MSTORE8,
// reuse of an identical earlier word, or a NOT/SUB/SIGNEXTEND/SHL rewrite
// of the whole word) costs the fewest emitted bytes; the result is a
// language-neutral Plan. Generate resets the emitter, pre-seeds the stack
// with the constants Plan found most frequent, and replays the Plan so
// DUPn can reach pre-seeded values it otherwise couldn't. Synthesise ties
// the two passes together and self-checks the result before returning.
//
// Everything here is pure and single-threaded: an Emitter, Plan, and the
// resulting bytecode are scoped to one call and share no state with any
// other.
package jit
