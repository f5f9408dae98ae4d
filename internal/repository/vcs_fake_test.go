package repository

import (
	"context"
	"sync"
	"testing"

	"github.com/apiarycd/release-manager/internal/git"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

type fakeVCS struct {
	mu sync.Mutex

	heads     []string
	listErr   error
	status    git.Status
	statusErr error
	addErr    error
	commitErr error
	pushErr   error

	// cloneGate, when set, blocks Clone until closed.
	cloneGate chan struct{}

	calls      map[string]int
	clonedRefs []string
	created    []string
	checkedOut []string
	added      [][]string
	messages   []string
	pushes     []git.PushRequest
}

func newFakeVCS(heads ...string) *fakeVCS {
	return &fakeVCS{
		heads: heads,
		status: git.Status{
			Modified:  map[string]struct{}{},
			Untracked: map[string]struct{}{},
		},
		calls: map[string]int{},
	}
}

func (f *fakeVCS) record(name string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls[name]++
}

func (f *fakeVCS) count(name string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[name]
}

func (f *fakeVCS) total() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for _, c := range f.calls {
		n += c
	}
	return n
}

func (f *fakeVCS) ListRemoteBranches(_ context.Context, _ string, _ git.Credentials) ([]string, error) {
	f.record("list")
	return f.heads, f.listErr
}

func (f *fakeVCS) Clone(_ context.Context, req git.CloneRequest) (*git.Repository, error) {
	if f.cloneGate != nil {
		<-f.cloneGate
	}
	f.record("clone")
	f.mu.Lock()
	f.clonedRefs = append(f.clonedRefs, req.Reference)
	f.mu.Unlock()
	return &git.Repository{Path: req.Directory, URL: req.URL}, nil
}

func (f *fakeVCS) CreateBranch(_ context.Context, _ string, name string) error {
	f.record("create")
	f.mu.Lock()
	f.created = append(f.created, name)
	f.mu.Unlock()
	return nil
}

func (f *fakeVCS) Checkout(_ context.Context, _ string, name string) error {
	f.record("checkout")
	f.mu.Lock()
	f.checkedOut = append(f.checkedOut, name)
	f.mu.Unlock()
	return nil
}

func (f *fakeVCS) Status(_ context.Context, _ string) (git.Status, error) {
	f.record("status")
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.status, f.statusErr
}

func (f *fakeVCS) Add(_ context.Context, _ string, files []string) error {
	f.record("add")
	f.mu.Lock()
	f.added = append(f.added, files)
	f.mu.Unlock()
	return f.addErr
}

func (f *fakeVCS) Commit(_ context.Context, _ string, message string) (string, error) {
	f.record("commit")
	f.mu.Lock()
	f.messages = append(f.messages, message)
	f.mu.Unlock()
	if f.commitErr != nil {
		return "", f.commitErr
	}
	return "0123456789abcdef", nil
}

func (f *fakeVCS) Push(_ context.Context, req git.PushRequest) error {
	f.record("push")
	f.mu.Lock()
	f.pushes = append(f.pushes, req)
	f.mu.Unlock()
	return f.pushErr
}

func (f *fakeVCS) markModified(paths ...string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, p := range paths {
		f.status.Modified[p] = struct{}{}
	}
}

func (f *fakeVCS) markUntracked(paths ...string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, p := range paths {
		f.status.Untracked[p] = struct{}{}
	}
}

type fixture struct {
	vcs          *fakeVCS
	registry     *Registry
	orchestrator *Orchestrator
	prom         *prometheus.Registry
}

func newFixture(t *testing.T, vcs *fakeVCS, match BranchMatch) *fixture {
	t.Helper()

	logger := zaptest.NewLogger(t)
	config := Config{WorkDir: t.TempDir(), BranchMatch: match}

	prom := prometheus.NewRegistry()
	metrics, err := NewMetrics(prom)
	require.NoError(t, err)

	resolver, err := NewResolver(vcs, config, logger)
	require.NoError(t, err)

	registry := NewRegistry(vcs, resolver, metrics, config, logger)
	t.Cleanup(func() { _ = registry.Close(context.Background()) })

	return &fixture{
		vcs:          vcs,
		registry:     registry,
		orchestrator: NewOrchestrator(registry, vcs, metrics, logger),
		prom:         prom,
	}
}

func mustGitHub(t *testing.T, ref string) Target {
	t.Helper()

	target, err := ParseGitHub(ref, "token")
	require.NoError(t, err)
	return target
}
