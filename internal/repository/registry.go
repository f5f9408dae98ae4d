package repository

import (
	"context"
	"errors"
	"fmt"
	"os"
	"sync"

	"github.com/apiarycd/release-manager/internal/git"
	"go.uber.org/zap"
)

// Task is the shared, possibly still running, initialization of one target.
type Task struct {
	target Target
	done   chan struct{}

	mu  sync.Mutex
	dir string

	handle *Handle
	err    error
}

func newTask(target Target) *Task {
	return &Task{
		target: target,
		done:   make(chan struct{}),
	}
}

func (t *Task) Target() Target { return t.target }

// Done is closed once the initialization finished, successfully or not.
func (t *Task) Done() <-chan struct{} { return t.done }

// Wait blocks until the initialization finished or ctx is done.
func (t *Task) Wait(ctx context.Context) (*Handle, error) {
	select {
	case <-t.done:
		return t.handle, t.err
	case <-ctx.Done():
		return nil, fmt.Errorf("waiting for %s: %w", t.target, ctx.Err())
	}
}

func (t *Task) setDir(dir string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.dir = dir
}

// Dir returns the scratch directory of the initialization, empty before it was created.
func (t *Task) Dir() string {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.dir
}

func (t *Task) finished() bool {
	select {
	case <-t.done:
		return true
	default:
		return false
	}
}

func (t *Task) complete(handle *Handle, err error) {
	t.handle = handle
	t.err = err
	close(t.done)
}

// Registry maps targets to their single initialization task.
type Registry struct {
	vcs      VCS
	resolver *Resolver
	metrics  *Metrics
	config   Config

	mu    sync.Mutex
	tasks map[Key]*Task

	logger *zap.Logger
}

func NewRegistry(vcs VCS, resolver *Resolver, metrics *Metrics, config Config, logger *zap.Logger) *Registry {
	return &Registry{
		vcs:      vcs,
		resolver: resolver,
		metrics:  metrics,
		config:   config,

		tasks: map[Key]*Task{},

		logger: logger,
	}
}

// EnsureInitialized returns the initialization task of target, starting it if
// this is the first request for the target's key. The sequence runs detached from
// ctx cancellation because the task is shared by every caller.
func (r *Registry) EnsureInitialized(ctx context.Context, target Target) *Task {
	r.mu.Lock()
	defer r.mu.Unlock()

	if task, ok := r.tasks[target.Key()]; ok {
		r.logger.Debug("reusing initialization", zap.Stringer("target", target))
		return task
	}

	task := newTask(target)
	r.tasks[target.Key()] = task

	go r.initialize(context.WithoutCancel(ctx), task)

	return task
}

// Get returns the task of a previously registered target.
func (r *Registry) Get(target Target) (*Task, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	task, ok := r.tasks[target.Key()]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNotInitialized, target)
	}

	return task, nil
}

// Close removes the working copies of every initialization. Running
// initializations are awaited until ctx is done, after which their scratch
// directories are removed regardless.
func (r *Registry) Close(ctx context.Context) error {
	r.mu.Lock()
	tasks := make([]*Task, 0, len(r.tasks))
	for _, t := range r.tasks {
		tasks = append(tasks, t)
	}
	r.mu.Unlock()

	var errs []error
	for _, t := range tasks {
		select {
		case <-t.Done():
		case <-ctx.Done():
			if t.finished() {
				break
			}
			r.logger.Warn("initialization still running, removing scratch directory", zap.Stringer("target", t.target))
			if dir := t.Dir(); dir != "" {
				if err := os.RemoveAll(dir); err != nil {
					errs = append(errs, fmt.Errorf("failed to remove scratch directory of %s: %w", t.target, err))
				}
			}
			continue
		}

		if t.handle == nil {
			continue
		}

		if err := t.handle.Close(); err != nil {
			errs = append(errs, fmt.Errorf("failed to remove working copy of %s: %w", t.target, err))
		}
	}

	return errors.Join(errs...)
}

func (r *Registry) initialize(ctx context.Context, task *Task) {
	if r.config.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.config.Timeout)
		defer cancel()
	}

	handle, err := r.checkout(ctx, task)
	r.metrics.initialized(task.target.Kind(), err)
	task.complete(handle, err)
}

func (r *Registry) checkout(ctx context.Context, task *Task) (*Handle, error) {
	target := task.target
	logger := r.logger.With(zap.Stringer("target", target))
	logger.Info("initializing repository")

	existence, err := r.resolver.Probe(ctx, target)
	if err != nil {
		return nil, err
	}

	dir, err := os.MkdirTemp(r.config.WorkDir, target.Provider().DirectoryPrefix(target.Org(), target.Repo()))
	if err != nil {
		logger.Error("failed to create working copy directory", zap.Error(err))
		return nil, fmt.Errorf("%w: %s: %w", ErrRepositoryAccess, target, err)
	}
	task.setDir(dir)

	handle, err := r.populate(ctx, target, existence, dir)
	if err != nil {
		logger.Error("failed to initialize repository", zap.Error(err))
		if rmErr := os.RemoveAll(dir); rmErr != nil {
			logger.Warn("failed to remove working copy", zap.String("directory", dir), zap.Error(rmErr))
		}
		return nil, fmt.Errorf("%w: %s: %w", ErrRepositoryAccess, target, err)
	}

	logger.Info("repository initialized",
		zap.String("directory", dir),
		zap.Bool("branch_created", handle.Created()))

	return handle, nil
}

func (r *Registry) populate(ctx context.Context, target Target, existence BranchExistence, dir string) (*Handle, error) {
	_, err := r.vcs.Clone(ctx, git.CloneRequest{
		URL:         target.CloneURL(),
		Reference:   initialRef(target, existence),
		Directory:   dir,
		Credentials: target.Credentials(),
	})
	if err != nil {
		return nil, err
	}

	if existence.Missing() {
		if branchErr := r.vcs.CreateBranch(ctx, dir, target.Branch()); branchErr != nil {
			return nil, branchErr
		}
	}

	if coErr := r.vcs.Checkout(ctx, dir, target.Branch()); coErr != nil {
		return nil, coErr
	}

	return newHandle(target, dir, existence.Missing()), nil
}
