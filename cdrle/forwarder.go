package cdrle

import (
	"github.com/ethereum/go-ethereum/common"

	"github.com/tadpole-labs/eth-compress/jit"
)

// addressOffset mirrors flz's forwarder layout (spec.md §6 describes both
// forwarders as sharing the same "address at a well-known offset" shape):
// five single-byte opcodes push retSize, retOffset, argsSize, argsOffset and
// value, then the PUSH20 opcode precedes the embedded address.
const addressOffset = 6

// Forwarder returns the fixed CD forwarder bytecode with to embedded at
// addressOffset, structurally identical to flz.Forwarder: it forwards the
// call's calldata and value to to and relays the return data. On-chain
// decompression of the RLE-encoded calldata is performed by to itself and
// is outside this repository's design surface, same as cd_compress.
func Forwarder(to common.Address) []byte {
	code := []byte{
		byte(jit.PUSH0),        // retSize
		byte(jit.PUSH0),        // retOffset
		byte(jit.CALLDATASIZE), // argsSize
		byte(jit.PUSH0),        // argsOffset
		byte(jit.CALLVALUE),    // value
		byte(jit.PUSHn(20)),
	}
	code = append(code, to.Bytes()...)
	code = append(code,
		byte(jit.GAS),
		byte(jit.CALL),
		byte(jit.RETURNDATASIZE),
		byte(jit.PUSH0),
		byte(jit.PUSH0),
		byte(jit.RETURNDATACOPY),
		byte(jit.RETURNDATASIZE),
		byte(jit.PUSH0),
		byte(jit.RETURN),
	)
	return code
}
