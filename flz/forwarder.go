package flz

import (
	"github.com/ethereum/go-ethereum/common"

	"github.com/tadpole-labs/eth-compress/jit"
)

// addressOffset is the well-known byte offset of the embedded 20-byte
// target address within the forwarder template, per spec.md §6's
// description of the FLZ/CD forwarders ("parameterised by a single 20-byte
// address inserted at a well-known offset"). It follows the five
// single-byte opcodes that push retSize, retOffset, argsSize, argsOffset
// and value onto the CALL argument stack, and the PUSH20 opcode that
// pushes the address itself.
const addressOffset = 6

// Forwarder returns the fixed FLZ forwarder bytecode with to embedded at
// addressOffset. The template forwards the call's full calldata and value
// to to and relays the return data verbatim; it does not itself perform
// on-chain decompression, which spec.md §1 places outside this repository's
// design surface along with flz_compress/flz_decompress — on a real
// deployment to is the address of a contract that decompresses the
// FLZ-encoded calldata before acting on it.
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
