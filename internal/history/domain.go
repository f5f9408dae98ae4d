package history

import (
	"time"

	"github.com/google/uuid"
)

type Outcome string

const (
	OutcomePushed Outcome = "pushed"
	OutcomeNoOp   Outcome = "noop"
	OutcomeFailed Outcome = "failed"
)

// EntryDraft describes one commit/push transaction before it is stored.
type EntryDraft struct {
	Target   string
	Provider string
	Branch   string
	Message  string
	CommitID string
	Files    []string
	Outcome  Outcome
	Error    string
}

type Entry struct {
	EntryDraft

	ID        uuid.UUID
	CreatedAt time.Time
}
