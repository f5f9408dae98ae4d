package repository

import (
	"context"
	"fmt"

	"github.com/apiarycd/release-manager/internal/git"
	"go.uber.org/zap"
)

// Orchestrator runs commit/push transactions against initialized working copies.
type Orchestrator struct {
	registry *Registry
	vcs      VCS
	metrics  *Metrics

	logger *zap.Logger
}

func NewOrchestrator(registry *Registry, vcs VCS, metrics *Metrics, logger *zap.Logger) *Orchestrator {
	return &Orchestrator{
		registry: registry,
		vcs:      vcs,
		metrics:  metrics,

		logger: logger,
	}
}

// CommitAndPush waits for the initialization of target and runs one transaction
// on its working copy. The target must have been registered with EnsureInitialized.
func (o *Orchestrator) CommitAndPush(ctx context.Context, target Target, message string, mutations ...Mutation) (Result, error) {
	task, err := o.registry.Get(target)
	if err != nil {
		return Result{}, err
	}

	handle, err := task.Wait(ctx)
	if err != nil {
		return Result{}, err
	}

	return o.Commit(ctx, handle, message, mutations...)
}

// Commit applies mutations in order, then stages, commits and pushes exactly the
// files they changed. Nothing is committed when no mutation changed anything.
// A failed transaction leaves the working copy as is.
func (o *Orchestrator) Commit(ctx context.Context, handle *Handle, message string, mutations ...Mutation) (Result, error) {
	unlock := handle.lock()
	defer unlock()

	target := handle.Target()
	logger := o.logger.With(zap.Stringer("target", target))

	result, err := o.commit(ctx, handle, message, mutations)
	switch {
	case err != nil:
		o.metrics.transaction(target.Kind(), outcomeFailed)
		logger.Error("transaction failed", zap.Error(err))
		return result, fmt.Errorf("%w: %s: %w", ErrRepositoryTransaction, target, err)
	case result.NoOp:
		o.metrics.transaction(target.Kind(), outcomeNoOp)
		logger.Info("no changes detected")
	default:
		o.metrics.transaction(target.Kind(), outcomePushed)
		logger.Info("pushed",
			zap.String("commit", result.CommitID),
			zap.Strings("files", result.ChangeSet))
	}

	return result, nil
}

func (o *Orchestrator) commit(ctx context.Context, handle *Handle, message string, mutations []Mutation) (Result, error) {
	root := handle.Root()

	written := make([]string, 0, len(mutations))
	for i, mutate := range mutations {
		path, err := mutate(ctx, root, written)
		if err != nil {
			return Result{}, fmt.Errorf("mutation %d: %w", i, err)
		}
		written = append(written, path)
	}

	status, err := o.vcs.Status(ctx, root)
	if err != nil {
		return Result{}, err
	}

	if status.IsClean() {
		return Result{NoOp: true}, nil
	}

	changes := ComputeChangeSet(root, written, status)
	if changes.IsEmpty() {
		return Result{NoOp: true}, nil
	}

	if addErr := o.vcs.Add(ctx, root, changes); addErr != nil {
		return Result{ChangeSet: changes}, addErr
	}

	commitID, err := o.vcs.Commit(ctx, root, message)
	if err != nil {
		return Result{ChangeSet: changes}, err
	}

	refSpec := handle.Target().RefSpec()
	err = o.vcs.Push(ctx, git.PushRequest{
		Path:        root,
		RefSpec:     refSpec,
		Credentials: handle.Target().Credentials(),
	})
	if err != nil {
		return Result{ChangeSet: changes, CommitID: commitID}, err
	}

	return Result{
		ChangeSet: changes,
		CommitID:  commitID,
		RefSpec:   refSpec,
	}, nil
}
