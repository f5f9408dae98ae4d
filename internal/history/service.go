package history

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/apiarycd/release-manager/internal/repository"
)

type Service struct {
	entries *Repository

	logger *zap.Logger
}

func NewService(entries *Repository, logger *zap.Logger) *Service {
	return &Service{
		entries: entries,

		logger: logger,
	}
}

// Record journals the outcome of a commit/push transaction against target.
func (s *Service) Record(
	ctx context.Context,
	target repository.Target,
	message string,
	result repository.Result,
	txErr error,
) (*Entry, error) {
	draft := EntryDraft{
		Target:   target.String(),
		Provider: string(target.Kind()),
		Branch:   target.Branch(),
		Message:  message,
		CommitID: result.CommitID,
		Files:    result.ChangeSet,
		Outcome:  OutcomePushed,
	}

	switch {
	case txErr != nil:
		draft.Outcome = OutcomeFailed
		draft.Error = txErr.Error()
	case result.NoOp:
		draft.Outcome = OutcomeNoOp
	}

	entry, err := s.entries.Create(ctx, draft)
	if err != nil {
		s.logger.Error("failed to record transaction", zap.Stringer("target", target), zap.Error(err))
		return nil, fmt.Errorf("failed to record transaction: %w", err)
	}

	s.logger.Info("transaction recorded",
		zap.Stringer("id", entry.ID),
		zap.Stringer("target", target),
		zap.String("outcome", string(entry.Outcome)))

	return entry, nil
}

// List returns journal entries, newest first, optionally restricted to one target.
func (s *Service) List(ctx context.Context, target *repository.Target, limit int) ([]Entry, error) {
	if target == nil {
		return s.entries.List(ctx, limit)
	}

	return s.entries.ListByTarget(ctx, target.String(), limit)
}

// Get returns the entry with the given textual id.
func (s *Service) Get(ctx context.Context, id string) (*Entry, error) {
	parsed, err := uuid.Parse(id)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidID, err)
	}

	return s.entries.GetByID(ctx, parsed)
}
