package schnorrsig

import (
	"context"
	"crypto/rand"
	"fmt"
	"sync"
	"sync/atomic"
)

// SignBatch signs every message with an independent nonce, spreading the
// work across config.NumWorkers goroutines. Signatures are returned in the
// order of messages.
//
// The first failure stops the batch and is returned; no partial result is
// returned. Cancelling ctx stops the batch with ctx.Err().
func (s *Signer) SignBatch(
	ctx context.Context,
	messages [][]byte,
	config BatchConfig,
) ([]*Signature, error) {
	if len(messages) == 0 {
		return []*Signature{}, nil
	}

	random := config.Rand
	if random == nil {
		random = rand.Reader
	}

	numWorkers := workerCount(config.NumWorkers, len(messages))
	logger.Debugf("signing [%d] messages with [%d] workers", len(messages), numWorkers)

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	signatures := make([]*Signature, len(messages))
	workChan := make(chan int, numWorkers)
	signed := int64(0)

	var (
		firstErr error
		errOnce  sync.Once
	)
	fail := func(err error) {
		errOnce.Do(func() {
			firstErr = err
			cancel()
		})
	}

	// Generate work
	go func() {
		defer close(workChan)
		for i := range messages {
			select {
			case <-ctx.Done():
				return
			case workChan <- i:
			}
		}
	}()

	var wg sync.WaitGroup
	for w := 0; w < numWorkers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for {
				select {
				case <-ctx.Done():
					return
				case i, ok := <-workChan:
					if !ok {
						return
					}

					signature, err := s.SignWithRand(random, messages[i])
					if err != nil {
						fail(fmt.Errorf("message [%d]: %w", i, err))
						return
					}
					signatures[i] = signature

					if n := atomic.AddInt64(&signed, 1); n%1000 == 0 {
						logger.Debugf("signed [%d] of [%d] messages", n, len(messages))
					}
				}
			}
		}()
	}

	wg.Wait()

	if firstErr != nil {
		return nil, firstErr
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	return signatures, nil
}
