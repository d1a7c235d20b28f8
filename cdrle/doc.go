// Package cdrle implements spec.md §1's other black-box encoder,
// cd_compress(bytes) -> bytes: a calldata-specific run-length scheme that
// exploits the fact that ABI-encoded calldata is mostly zero bytes (padding
// around short integers and addresses). Unlike flz, no package in the
// retrieved corpus wraps a general-purpose RLE codec suited to this narrow
// shape, so this one is hand-rolled on the standard library; see DESIGN.md
// for why that's the one part of this repository without a third-party
// dependency behind it.
package cdrle
