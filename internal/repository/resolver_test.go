package repository

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

func TestResolver_Probe(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		match   BranchMatch
		heads   []string
		branch  string
		exists  bool
		initial string
	}{
		{
			name:    "branch present",
			heads:   []string{"refs/heads/main", "refs/heads/sb-2.7.x"},
			branch:  "sb-2.7.x",
			exists:  true,
			initial: "refs/heads/sb-2.7.x",
		},
		{
			name:    "branch missing falls back to main",
			heads:   []string{"refs/heads/main"},
			branch:  "sb-2.7.x",
			exists:  false,
			initial: "refs/heads/main",
		},
		{
			name:    "substring of another head counts as present",
			heads:   []string{"refs/heads/main", "refs/heads/release-10"},
			branch:  "release-1",
			exists:  true,
			initial: "refs/heads/release-1",
		},
		{
			name:    "exact mode ignores substring matches",
			match:   BranchMatchExact,
			heads:   []string{"refs/heads/main", "refs/heads/release-10"},
			branch:  "release-1",
			exists:  false,
			initial: "refs/heads/main",
		},
		{
			name:    "exact mode finds the branch",
			match:   BranchMatchExact,
			heads:   []string{"refs/heads/release-1"},
			branch:  "release-1",
			exists:  true,
			initial: "refs/heads/release-1",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			resolver, err := NewResolver(newFakeVCS(tt.heads...), Config{BranchMatch: tt.match}, zaptest.NewLogger(t))
			require.NoError(t, err)

			target := mustGitHub(t, "org/repo/"+tt.branch)

			existence, err := resolver.Probe(context.Background(), target)
			require.NoError(t, err)
			assert.Equal(t, tt.exists, existence.Exists)

			ref, err := resolver.ResolveInitialRef(context.Background(), target)
			require.NoError(t, err)
			assert.Equal(t, tt.initial, ref)
		})
	}
}

func TestResolver_ProbesOncePerTarget(t *testing.T) {
	t.Parallel()

	vcs := newFakeVCS("refs/heads/main")
	resolver, err := NewResolver(vcs, Config{}, zaptest.NewLogger(t))
	require.NoError(t, err)

	var wg sync.WaitGroup
	for range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, probeErr := resolver.Probe(context.Background(), mustGitHub(t, "org/repo/feature"))
			assert.NoError(t, probeErr)
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, vcs.count("list"))

	_, err = resolver.Probe(context.Background(), mustGitHub(t, "org/other/feature"))
	require.NoError(t, err)
	assert.Equal(t, 2, vcs.count("list"))
}

func TestResolver_FailureIsCached(t *testing.T) {
	t.Parallel()

	vcs := newFakeVCS()
	vcs.listErr = errors.New("connection refused")

	resolver, err := NewResolver(vcs, Config{}, zaptest.NewLogger(t))
	require.NoError(t, err)

	target := mustGitHub(t, "org/repo/main")
	for range 2 {
		_, probeErr := resolver.Probe(context.Background(), target)
		assert.ErrorIs(t, probeErr, ErrRepositoryAccess)
	}

	assert.Equal(t, 1, vcs.count("list"))
}

func TestNewResolver_UnknownMatch(t *testing.T) {
	t.Parallel()

	_, err := NewResolver(newFakeVCS(), Config{BranchMatch: "regex"}, zaptest.NewLogger(t))
	assert.ErrorIs(t, err, ErrUnsupportedBranchMatch)
}
