package generation

import (
	"errors"
	"fmt"
	"math/rand/v2"

	"dialogsynth/internal/logger"
	"dialogsynth/internal/types"
)

// FixedTopicList is used instead of sampling when fixed topics are requested.
var FixedTopicList = []string{
	"Erneuerung Kreditkarte",
	"Adressänderung",
	"Börsenauftrag",
	"Hypotheken",
	"Fremdwährungen bestellen",
}

var ErrEmptyPool = errors.New("cannot sample from an empty pool")

// NewRand returns a seeded source. A zero seed draws a random one.
func NewRand(seed int64) *rand.Rand {
	if seed == 0 {
		return rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	return rand.New(rand.NewPCG(uint64(seed), uint64(seed)))
}

// sampleIndices draws n distinct indices from [0, size). n larger than size is
// clamped with a warning.
func sampleIndices(rng *rand.Rand, size, n int, what string, log *logger.Logger) ([]int, error) {
	if size == 0 {
		return nil, fmt.Errorf("sample %s: %w", what, ErrEmptyPool)
	}
	if n < 0 {
		return nil, fmt.Errorf("sample %s: negative sample size %d", what, n)
	}
	if n > size {
		log.WithField("component", "sampling").
			WithField("requested", n).
			WithField("available", size).
			Warnf("requested more %s than available, using all", what)
		n = size
	}
	return rng.Perm(size)[:n], nil
}

// SampleTopics draws n topics without replacement.
func SampleTopics(rng *rand.Rand, pool []string, n int, log *logger.Logger) ([]string, error) {
	idx, err := sampleIndices(rng, len(pool), n, "topics", log)
	if err != nil {
		return nil, err
	}
	out := make([]string, len(idx))
	for i, j := range idx {
		out[i] = pool[j]
	}
	return out, nil
}

// Example is a sampled example call with its position in the source file.
type Example struct {
	Index int
	Call  types.CallScript
}

// SampleExamples draws n example calls without replacement.
func SampleExamples(rng *rand.Rand, calls []types.CallScript, n int, log *logger.Logger) ([]Example, error) {
	idx, err := sampleIndices(rng, len(calls), n, "examples", log)
	if err != nil {
		return nil, err
	}
	out := make([]Example, len(idx))
	for i, j := range idx {
		out[i] = Example{Index: j, Call: calls[j]}
	}
	return out, nil
}
