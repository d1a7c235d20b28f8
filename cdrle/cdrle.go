package cdrle

import (
	"encoding/binary"
	"fmt"
)

// Compress implements cd_compress: data is split into an alternating
// sequence of (zero run, non-zero run) pairs, each run length written as a
// varint, with only the non-zero run's literal bytes actually stored. ABI
// calldata is dominated by zero padding, so the zero runs collapse to a
// couple of bytes each while the non-zero runs (selectors, addresses,
// packed values) are carried verbatim.
func Compress(data []byte) []byte {
	out := make([]byte, 0, len(data)/2+binary.MaxVarintLen64)
	out = appendUvarint(out, uint64(len(data)))

	i := 0
	for i < len(data) {
		zeroStart := i
		for i < len(data) && data[i] == 0 {
			i++
		}
		zeroRun := i - zeroStart

		nonZeroStart := i
		for i < len(data) && data[i] != 0 {
			i++
		}
		nonZeroRun := i - nonZeroStart

		out = appendUvarint(out, uint64(zeroRun))
		out = appendUvarint(out, uint64(nonZeroRun))
		out = append(out, data[nonZeroStart:nonZeroStart+nonZeroRun]...)
	}
	return out
}

// Decompress reverses Compress.
func Decompress(compressed []byte) ([]byte, error) {
	total, n := binary.Uvarint(compressed)
	if n <= 0 {
		return nil, &ErrMalformed{Reason: "missing length header"}
	}
	rest := compressed[n:]

	out := make([]byte, 0, total)
	for uint64(len(out)) < total {
		zeroRun, n := binary.Uvarint(rest)
		if n <= 0 {
			return nil, &ErrMalformed{Reason: "truncated zero-run length"}
		}
		rest = rest[n:]

		nonZeroRun, n := binary.Uvarint(rest)
		if n <= 0 {
			return nil, &ErrMalformed{Reason: "truncated non-zero-run length"}
		}
		rest = rest[n:]

		if uint64(len(rest)) < nonZeroRun {
			return nil, &ErrMalformed{Reason: "truncated literal run"}
		}

		out = append(out, make([]byte, zeroRun)...)
		out = append(out, rest[:nonZeroRun]...)
		rest = rest[nonZeroRun:]
	}
	if uint64(len(out)) != total {
		return nil, &ErrMalformed{Reason: "decoded length mismatch"}
	}
	return out, nil
}

func appendUvarint(buf []byte, v uint64) []byte {
	var tmp [binary.MaxVarintLen64]byte
	n := binary.PutUvarint(tmp[:], v)
	return append(buf, tmp[:n]...)
}

// ErrMalformed is returned by Decompress when compressed is not a value
// Compress could have produced.
type ErrMalformed struct {
	Reason string
}

func (e *ErrMalformed) Error() string {
	return fmt.Sprintf("cdrle: malformed input: %s", e.Reason)
}
