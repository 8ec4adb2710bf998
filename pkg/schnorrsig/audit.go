package schnorrsig

import (
	"context"
	"sync"
)

// AuditNonceReuse scans signatures for repeated nonce commitments. A repeated
// commitment with differing challenges leaks the secret key; the first key
// recovered from such a pair is returned.
//
// When pub is non-nil a recovered key is only reported if it matches pub.
// A nil result with a nil error means no reuse was found.
func AuditNonceReuse(
	ctx context.Context,
	signatures []*Signature,
	pub *PublicKey,
	config AuditConfig,
) (*AuditResult, error) {
	if len(signatures) < 2 {
		return nil, nil
	}

	logger.Debugf("auditing [%d] signatures for nonce reuse", len(signatures))

	pairs := reusedCommitmentPairs(signatures, config.MaxPairs)
	if len(pairs) == 0 {
		logger.Debug("no repeated commitments found")
		return nil, nil
	}

	logger.Warnf("found [%d] signature pairs sharing a commitment", len(pairs))

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	numWorkers := workerCount(config.NumWorkers, len(pairs))
	resultChan := make(chan *AuditResult, 1)
	workChan := make(chan [2]int, numWorkers)

	parent := ctx
	ctx, cancel := context.WithCancel(parent)
	defer cancel()

	// Generate work
	go func() {
		defer close(workChan)
		for _, pair := range pairs {
			select {
			case <-ctx.Done():
				return
			case workChan <- pair:
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
				case pair, ok := <-workChan:
					if !ok {
						return
					}

					result := tryPair(signatures, pair, pub)
					if result == nil {
						continue
					}

					select {
					case resultChan <- result:
						cancel()
					default:
						result.SecretKey.Zero()
					}
					return
				}
			}
		}()
	}

	wg.Wait()

	select {
	case result := <-resultChan:
		return result, nil
	default:
	}

	return nil, parent.Err()
}

// reusedCommitmentPairs groups signatures by commitment and returns every
// pair inside a group, in index order, up to maxPairs (0 = no limit).
func reusedCommitmentPairs(signatures []*Signature, maxPairs int) [][2]int {
	groups := make(map[[CommitmentSize]byte][]int)
	order := make([][CommitmentSize]byte, 0)
	for i, sig := range signatures {
		if _, seen := groups[sig.R]; !seen {
			order = append(order, sig.R)
		}
		groups[sig.R] = append(groups[sig.R], i)
	}

	var pairs [][2]int
	for _, r := range order {
		indices := groups[r]
		for i := 0; i < len(indices); i++ {
			for j := i + 1; j < len(indices); j++ {
				if maxPairs > 0 && len(pairs) >= maxPairs {
					return pairs
				}
				pairs = append(pairs, [2]int{indices[i], indices[j]})
			}
		}
	}
	return pairs
}

// tryPair attempts recovery from a single signature pair.
func tryPair(signatures []*Signature, pair [2]int, pub *PublicKey) *AuditResult {
	key, err := RecoverKeyFromNonceReuse(signatures[pair[0]], signatures[pair[1]])
	if err != nil {
		logger.Debugf("pair [%d, %d] did not yield a key: [%v]", pair[0], pair[1], err)
		return nil
	}

	verified := false
	if pub != nil {
		if !VerifyRecoveredKey(key, pub) {
			key.Zero()
			return nil
		}
		verified = true
	}

	return &AuditResult{
		SecretKey:     key,
		Address:       AddressOf(key.PubKey()),
		SignaturePair: pair,
		Verified:      verified,
	}
}
