// Package rewriter implements spec.md §4.4's payload rewriter: it
// inspects an eth_call JSON-RPC request, validates eligibility, selects
// among the jit, flz and cdrle packages, and substitutes a request that
// targets the fixed decompressor address with a state override carrying
// the chosen bytecode.
package rewriter
