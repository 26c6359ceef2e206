package version

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestString(t *testing.T) {
	old := GitCommit
	t.Cleanup(func() { GitCommit = old })
	GitCommit = "abc1234"
	assert.Contains(t, String(), Version)
	assert.Contains(t, String(), "abc1234")
}
