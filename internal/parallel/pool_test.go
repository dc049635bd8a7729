package parallel_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"rulesynth/internal/parallel"
)

func TestRunPreservesOrder(t *testing.T) {
	out := parallel.Run(10, 4, func(i int) int { return i * i })
	for i, v := range out {
		assert.Equal(t, i*i, v)
	}
}

func TestRunSingleWorker(t *testing.T) {
	out := parallel.Run(5, 1, func(i int) int { return i + 1 })
	assert.Equal(t, []int{1, 2, 3, 4, 5}, out)
}
