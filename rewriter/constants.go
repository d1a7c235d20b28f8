package rewriter

import "github.com/ethereum/go-ethereum/common"

// DecompressorAddress is the fixed address, per spec.md §6, at which the
// synthesised (or forwarder) contract is installed via state override. Its
// last byte is 0xe0 by construction, so the synthesiser can reproduce
// ADDRESS's low byte with a single peephole (jit.EmitPushInt).
var DecompressorAddress = common.HexToAddress("0x00000000000000000000000000000000000000e0")

// Multicall3Address is the only pre-existing state-override key the
// eligibility gate in spec.md §4.4 tolerates alongside DecompressorAddress.
var Multicall3Address = common.HexToAddress("0xca11bde05977b3631167028862be2a173976ca11")

// MinDataHexLen is the minimum hex-character length of eligible calldata,
// per spec.md §4.4 and §6 (~575 bytes, 1150 hex characters).
const MinDataHexLen = 1150

// JIT selection size bounds, in hex characters (spec.md §4.4/§6): below
// jitLowBound or at/above jitHighBound, JIT is preferred outright; in
// between, FLZ and CD are both computed and the shorter wins.
const (
	jitLowBound  = 3000
	jitHighBound = 8000
)

// Algorithm names accepted as an explicit hint to CompressCall.
const (
	AlgorithmJIT = "jit"
	AlgorithmFLZ = "flz"
	AlgorithmCD  = "cd"
)
