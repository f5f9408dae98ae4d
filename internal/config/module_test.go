package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestTimeoutsAreMappedSeparately(t *testing.T) {
	t.Parallel()

	cfg := Default()
	cfg.Git.Timeout = 30 * time.Second
	cfg.Git.InitTimeout = 10 * time.Minute

	assert.Equal(t, 30*time.Second, gitConfigFrom(cfg).Timeout)
	assert.Equal(t, 10*time.Minute, repositoryConfigFrom(cfg).Timeout)
}

func TestDefault_InitTimeoutCoversSeveralOperations(t *testing.T) {
	t.Parallel()

	cfg := Default()

	// an initialization runs ls-remote, clone and checkout in sequence
	assert.Greater(t, cfg.Git.InitTimeout, cfg.Git.Timeout)
	assert.Equal(t, "substring", cfg.Git.BranchMatch)
}
