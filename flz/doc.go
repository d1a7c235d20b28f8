// Package flz wraps a real LZ77-family compressor behind the interface
// spec.md §1 specifies only as a black box: flz_compress(bytes) -> bytes.
// The package also carries the fixed forwarder bytecode template paired
// with FLZ-compressed calldata (spec.md §6); the decompression performed
// on-chain by the real target contract at the decompressor address is, like
// the compressor itself, outside this repository's design surface — the
// forwarder only establishes the call-and-return plumbing around it.
package flz
