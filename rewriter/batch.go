package rewriter

import (
	"context"
	"encoding/json"

	"golang.org/x/sync/errgroup"
)

// CompressBatch runs CompressCall over payloads concurrently. Spec.md §5
// states invocations are independent and share no state, so fanning the
// batch out over errgroup is a direct API for that guarantee rather than a
// departure from it: each goroutine owns only its own slice element.
func CompressBatch(payloads []json.RawMessage, algorithm string) ([]json.RawMessage, error) {
	results := make([]json.RawMessage, len(payloads))
	g, _ := errgroup.WithContext(context.Background())
	for i, p := range payloads {
		i, p := i, p
		g.Go(func() error {
			out, _, err := CompressCall(p, algorithm)
			if err != nil {
				return err
			}
			results[i] = out
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
