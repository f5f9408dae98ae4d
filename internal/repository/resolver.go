package repository

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/samber/lo"
	"go.uber.org/zap"
)

// BranchExistence is the cached answer of a branch existence probe.
type BranchExistence struct {
	Exists bool
}

// Missing reports whether the branch has to be created locally.
func (b BranchExistence) Missing() bool { return !b.Exists }

type probe struct {
	done   chan struct{}
	result BranchExistence
	err    error
}

// Resolver decides whether a target branch exists on the remote. Each target is
// probed at most once per process; failures are cached as well.
type Resolver struct {
	vcs   VCS
	match BranchMatch

	mu     sync.Mutex
	probes map[Key]*probe

	logger *zap.Logger
}

func NewResolver(vcs VCS, config Config, logger *zap.Logger) (*Resolver, error) {
	match := config.BranchMatch
	if match == "" {
		match = BranchMatchSubstring
	}
	if match != BranchMatchSubstring && match != BranchMatchExact {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedBranchMatch, match)
	}

	return &Resolver{
		vcs:   vcs,
		match: match,

		probes: map[Key]*probe{},

		logger: logger,
	}, nil
}

// Probe lists the remote heads of target and reports whether its branch exists.
func (r *Resolver) Probe(ctx context.Context, target Target) (BranchExistence, error) {
	r.mu.Lock()
	p, ok := r.probes[target.Key()]
	if !ok {
		p = &probe{done: make(chan struct{})}
		r.probes[target.Key()] = p
	}
	r.mu.Unlock()

	if !ok {
		p.result, p.err = r.probe(ctx, target)
		close(p.done)
	}

	select {
	case <-p.done:
		return p.result, p.err
	case <-ctx.Done():
		return BranchExistence{}, fmt.Errorf("%w: %s: %w", ErrRepositoryAccess, target, ctx.Err())
	}
}

// ResolveInitialRef returns the reference to clone: the branch itself when it
// exists, the provider default branch otherwise.
func (r *Resolver) ResolveInitialRef(ctx context.Context, target Target) (string, error) {
	existence, err := r.Probe(ctx, target)
	if err != nil {
		return "", err
	}

	return initialRef(target, existence), nil
}

func initialRef(target Target, existence BranchExistence) string {
	if existence.Missing() {
		return "refs/heads/" + target.Provider().DefaultBranch()
	}

	return "refs/heads/" + target.Branch()
}

func (r *Resolver) probe(ctx context.Context, target Target) (BranchExistence, error) {
	logger := r.logger.With(zap.Stringer("target", target))

	heads, err := r.vcs.ListRemoteBranches(ctx, target.CloneURL(), target.Credentials())
	if err != nil {
		logger.Error("failed to probe branch", zap.Error(err))
		return BranchExistence{}, fmt.Errorf("%w: %s: %w", ErrRepositoryAccess, target, err)
	}

	exists := lo.ContainsBy(heads, func(head string) bool {
		return r.matches(head, target.Branch())
	})

	logger.Info("branch probed",
		zap.Bool("exists", exists),
		zap.String("match", string(r.match)))

	return BranchExistence{Exists: exists}, nil
}

func (r *Resolver) matches(head, branch string) bool {
	if r.match == BranchMatchExact {
		return head == "refs/heads/"+branch
	}

	return strings.Contains(head, branch)
}
