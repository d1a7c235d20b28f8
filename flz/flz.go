package flz

import "github.com/golang/snappy"

// Compress stands in for spec.md's black-box flz_compress. It is a real
// LZ77-family compressor, the same family FastLZ belongs to, rather than a
// stub: go-ethereum itself reaches for snappy whenever it needs an
// off-the-shelf LZ77 implementation instead of rolling its own.
func Compress(data []byte) []byte {
	return snappy.Encode(nil, data)
}

// Decompress reverses Compress. Used by tests and by any component that
// wants to verify a round trip before shipping compressed calldata.
func Decompress(compressed []byte) ([]byte, error) {
	return snappy.Decode(nil, compressed)
}
