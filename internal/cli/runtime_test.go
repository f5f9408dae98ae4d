package cli_test

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/dgraph-io/badger/v4"
	"github.com/go-playground/validator/v10"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/apiarycd/release-manager/internal/cli"
	"github.com/apiarycd/release-manager/internal/git"
	"github.com/apiarycd/release-manager/internal/history"
	"github.com/apiarycd/release-manager/internal/hosting"
	"github.com/apiarycd/release-manager/internal/release"
	"github.com/apiarycd/release-manager/internal/repository"
)

// remote is an in-memory stand-in for a hosted repository.
type remote struct {
	branches []string
	files    map[string]string
}

// fakeVCS serves clones from in-memory remotes and reports every file whose
// content differs from the last commit as modified.
type fakeVCS struct {
	mu       sync.Mutex
	remotes  map[string]*remote
	baseline map[string]map[string]string
	pushes   map[string][]string
}

func newFakeVCS(remotes map[string]*remote) *fakeVCS {
	return &fakeVCS{
		remotes:  remotes,
		baseline: map[string]map[string]string{},
		pushes:   map[string][]string{},
	}
}

func (f *fakeVCS) ListRemoteBranches(_ context.Context, url string, _ git.Credentials) ([]string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	r, ok := f.remotes[url]
	if !ok {
		return nil, git.ErrListFailed
	}

	return r.branches, nil
}

func (f *fakeVCS) Clone(_ context.Context, req git.CloneRequest) (*git.Repository, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	r := f.remotes[req.URL]
	files := map[string]string{}
	for name, content := range r.files {
		if err := os.WriteFile(filepath.Join(req.Directory, name), []byte(content), 0o644); err != nil {
			return nil, err
		}
		files[name] = content
	}
	f.baseline[req.Directory] = files

	return &git.Repository{Path: req.Directory, URL: req.URL}, nil
}

func (f *fakeVCS) CreateBranch(context.Context, string, string) error { return nil }

func (f *fakeVCS) Checkout(context.Context, string, string) error { return nil }

func (f *fakeVCS) Status(_ context.Context, path string) (git.Status, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	status := git.Status{Modified: map[string]struct{}{}, Untracked: map[string]struct{}{}}

	entries, err := os.ReadDir(path)
	if err != nil {
		return status, err
	}
	for _, entry := range entries {
		content, readErr := os.ReadFile(filepath.Join(path, entry.Name()))
		if readErr != nil {
			return status, readErr
		}

		committed, tracked := f.baseline[path][entry.Name()]
		switch {
		case !tracked:
			status.Untracked[entry.Name()] = struct{}{}
		case committed != string(content):
			status.Modified[entry.Name()] = struct{}{}
		}
	}

	return status, nil
}

func (f *fakeVCS) Add(_ context.Context, path string, files []string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	for _, name := range files {
		content, err := os.ReadFile(filepath.Join(path, name))
		if err != nil {
			return err
		}
		f.baseline[path][name] = string(content)
	}

	return nil
}

func (f *fakeVCS) Commit(context.Context, string, string) (string, error) {
	return "c0ffee0123456789", nil
}

func (f *fakeVCS) Push(_ context.Context, req git.PushRequest) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.pushes[req.Path] = append(f.pushes[req.Path], req.RefSpec)

	return nil
}

func (f *fakeVCS) refSpecs() []string {
	f.mu.Lock()
	defer f.mu.Unlock()

	specs := make([]string, 0)
	for _, pushed := range f.pushes {
		specs = append(specs, pushed...)
	}

	return specs
}

type readerFunc func(ctx context.Context, org, repo, branch, path string) ([]byte, error)

func (f readerFunc) ReadFile(ctx context.Context, org, repo, branch, path string) ([]byte, error) {
	return f(ctx, org, repo, branch, path)
}

// staticReader serves the same content for every path.
func staticReader(content string) hosting.Reader {
	return readerFunc(func(context.Context, string, string, string, string) ([]byte, error) {
		return []byte(content), nil
	})
}

type fixture struct {
	vcs      *fakeVCS
	runtime  *cli.Runtime
	journal  *history.Service
	registry *repository.Registry
}

func newFixture(t *testing.T, vcs *fakeVCS, readers hosting.Readers) *fixture {
	t.Helper()

	logger := zap.NewNop()
	cfg := repository.Config{WorkDir: t.TempDir(), BranchMatch: repository.BranchMatchExact}

	metrics, err := repository.NewMetrics(prometheus.NewRegistry())
	require.NoError(t, err)
	resolver, err := repository.NewResolver(vcs, cfg, logger)
	require.NoError(t, err)
	registry := repository.NewRegistry(vcs, resolver, metrics, cfg, logger)
	t.Cleanup(func() { _ = registry.Close(context.Background()) })
	orchestrator := repository.NewOrchestrator(registry, vcs, metrics, logger)

	releases, err := release.NewService(release.Config{}, validator.New(), logger)
	require.NoError(t, err)

	db, err := badger.Open(badger.DefaultOptions("").WithInMemory(true).WithLogger(nil))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	journal := history.NewService(history.NewRepository(db), logger)

	settings := cli.Settings{
		GitHubToken:    "gh-token",
		GitLabHost:     "gitlab.com",
		GitLabUsername: "bot",
		GitLabToken:    "gl-token",
	}

	return &fixture{
		vcs:      vcs,
		runtime:  cli.NewRuntime(settings, registry, orchestrator, releases, journal, readers, logger),
		journal:  journal,
		registry: registry,
	}
}
