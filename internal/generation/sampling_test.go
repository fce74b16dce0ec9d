package generation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dialogsynth/internal/logger"
	"dialogsynth/internal/types"
)

func TestSampleTopicsWithoutReplacement(t *testing.T) {
	pool := []string{"a", "b", "c", "d", "e"}

	got, err := SampleTopics(NewRand(42), pool, 3, logger.Discard())
	require.NoError(t, err)
	require.Len(t, got, 3)

	seen := map[string]bool{}
	for _, topic := range got {
		assert.Contains(t, pool, topic)
		assert.False(t, seen[topic], "duplicate topic %s", topic)
		seen[topic] = true
	}
}

func TestSampleTopicsDeterministicUnderSeed(t *testing.T) {
	pool := []string{"a", "b", "c", "d", "e", "f"}
	first, err := SampleTopics(NewRand(9), pool, 4, logger.Discard())
	require.NoError(t, err)
	second, err := SampleTopics(NewRand(9), pool, 4, logger.Discard())
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestSampleTopicsClampsToPool(t *testing.T) {
	got, err := SampleTopics(NewRand(1), []string{"a", "b"}, 10, logger.Discard())
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"a", "b"}, got)
}

func TestSampleErrors(t *testing.T) {
	_, err := SampleTopics(NewRand(1), nil, 1, logger.Discard())
	assert.ErrorIs(t, err, ErrEmptyPool)

	_, err = SampleTopics(NewRand(1), []string{"a"}, -1, logger.Discard())
	assert.Error(t, err)

	_, err = SampleExamples(NewRand(1), nil, 2, logger.Discard())
	assert.ErrorIs(t, err, ErrEmptyPool)
}

func TestSampleExamplesKeepsSourceIndex(t *testing.T) {
	calls := []types.CallScript{{"n": 0}, {"n": 1}, {"n": 2}}

	got, err := SampleExamples(NewRand(3), calls, 2, logger.Discard())
	require.NoError(t, err)
	require.Len(t, got, 2)
	for _, ex := range got {
		assert.Equal(t, ex.Index, ex.Call["n"])
	}
}

func TestSampleZero(t *testing.T) {
	got, err := SampleTopics(NewRand(1), []string{"a"}, 0, logger.Discard())
	require.NoError(t, err)
	assert.Empty(t, got)
}
