package schnorrsig

import (
	"io"
	"runtime"
)

// BatchConfig configures parallel signing of many messages.
type BatchConfig struct {
	// NumWorkers controls parallelization (0 = auto-detect)
	NumWorkers int

	// Rand is the nonce source shared by all workers; it must be safe for
	// concurrent use. Nil selects crypto/rand.
	Rand io.Reader
}

// DefaultBatchConfig returns a sensible default configuration.
func DefaultBatchConfig() BatchConfig {
	return BatchConfig{
		NumWorkers: 0, // Auto-detect
	}
}

// AuditConfig configures the nonce-reuse audit.
type AuditConfig struct {
	// MaxPairs limits the number of candidate signature pairs to test
	// (0 = no limit)
	MaxPairs int

	// NumWorkers controls parallelization (0 = auto-detect)
	NumWorkers int
}

// DefaultAuditConfig returns a sensible default configuration.
func DefaultAuditConfig() AuditConfig {
	return AuditConfig{
		MaxPairs:   0,
		NumWorkers: 0, // Auto-detect
	}
}

func workerCount(configured, jobs int) int {
	n := configured
	if n <= 0 {
		n = runtime.NumCPU()
	}
	if jobs > 0 && n > jobs {
		n = jobs
	}
	if n < 1 {
		n = 1
	}
	return n
}
