package version

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestString(t *testing.T) {
	v, c, b := Version, GitCommit, BuildTime
	t.Cleanup(func() { Version, GitCommit, BuildTime = v, c, b })

	Version, GitCommit, BuildTime = "3.0", "", ""
	assert.Equal(t, "3.0", String())

	GitCommit = "abc123"
	assert.Equal(t, "3.0 (abc123)", String())

	BuildTime = "2024-05-06"
	assert.Equal(t, "3.0 (abc123, built 2024-05-06)", String())
}
