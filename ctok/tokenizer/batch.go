package tokenizer

import (
	"context"
	"errors"
	"sync"

	"github.com/sourcegraph/conc/pool"
)

// Batch helpers. Elements of a batch are independent: results keep input
// order and one bad element never aborts the rest unless strict mode is
// requested.

// EncodeBatch encodes every text concurrently and returns the encodings in
// input order. The only possible failure is context cancellation.
func (t *CharacterTokenizer) EncodeBatch(ctx context.Context, texts []string) ([]*Encoding, error) {
	out := make([]*Encoding, len(texts))
	p := pool.New().WithContext(ctx).WithCancelOnError()
	for i, text := range texts {
		i, text := i, text
		p.Go(func(ctx context.Context) error {
			if err := ctx.Err(); err != nil {
				return err
			}
			out[i] = t.Encode(text)
			return nil
		})
	}
	if err := p.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

// DecodeBatch decodes a batch of character id sequences concurrently. In
// strict mode the first failure cancels the batch and is returned as an
// ItemError naming the offending element. Otherwise all elements are
// attempted, successes are kept in place and the failures are joined into
// the returned error, each wrapped in an ItemError.
func (t *CharacterTokenizer) DecodeBatch(ctx context.Context, batch []CharacterIDs, strict bool) ([]string, error) {
	out := make([]string, len(batch))
	p := pool.New().WithContext(ctx)
	if strict {
		p = p.WithCancelOnError().WithFirstError()
	}

	var mu sync.Mutex
	var failed []error
	for i, ids := range batch {
		i, ids := i, ids
		p.Go(func(ctx context.Context) error {
			if err := ctx.Err(); err != nil {
				return err
			}
			token, err := t.DecodeIDs(ids)
			if err != nil {
				itemErr := &ItemError{Index: i, Err: err}
				if strict {
					return itemErr
				}
				mu.Lock()
				failed = append(failed, itemErr)
				mu.Unlock()
				return nil
			}
			out[i] = token
			return nil
		})
	}
	if err := p.Wait(); err != nil {
		return nil, err
	}
	if len(failed) > 0 {
		return out, errors.Join(failed...)
	}
	return out, nil
}
