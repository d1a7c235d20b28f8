package rewriter

import "fmt"

// ErrUnknownAlgorithm is returned by CompressCall when given an algorithm
// hint outside {jit, flz, cd}.
type ErrUnknownAlgorithm struct {
	Algorithm string
}

func (e *ErrUnknownAlgorithm) Error() string {
	return fmt.Sprintf("rewriter: unknown algorithm hint %q", e.Algorithm)
}
