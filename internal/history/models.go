package history

import (
	"time"

	"github.com/goccy/go-json"
	"github.com/google/uuid"

	"github.com/apiarycd/release-manager/pkg/badgerfx"
)

const (
	prefix = "txn:"

	prefixByID     = prefix + "id:"
	prefixByTarget = prefix + "target:"
)

type entryModel struct {
	ID        uuid.UUID `json:"id"`
	CreatedAt time.Time `json:"created_at"`

	Target   string   `json:"target"`
	Provider string   `json:"provider"`
	Branch   string   `json:"branch"`
	Message  string   `json:"message"`
	CommitID string   `json:"commit_id,omitempty"`
	Files    []string `json:"files,omitempty"`
	Outcome  Outcome  `json:"outcome"`
	Error    string   `json:"error,omitempty"`
}

func newEntryModel(draft EntryDraft, now time.Time) *entryModel {
	return &entryModel{
		ID:        uuid.Must(uuid.NewV7()),
		CreatedAt: now,

		Target:   draft.Target,
		Provider: draft.Provider,
		Branch:   draft.Branch,
		Message:  draft.Message,
		CommitID: draft.CommitID,
		Files:    draft.Files,
		Outcome:  draft.Outcome,
		Error:    draft.Error,
	}
}

func newEntry(model *entryModel) *Entry {
	return &Entry{
		EntryDraft: EntryDraft{
			Target:   model.Target,
			Provider: model.Provider,
			Branch:   model.Branch,
			Message:  model.Message,
			CommitID: model.CommitID,
			Files:    model.Files,
			Outcome:  model.Outcome,
			Error:    model.Error,
		},
		ID:        model.ID,
		CreatedAt: model.CreatedAt,
	}
}

func keyByID(id uuid.UUID) string {
	return prefixByID + id.String()
}

func prefixForTarget(target string) string {
	return prefixByTarget + target + "|"
}

// StorageKey implements badgerfx.Entity. Version 7 ids sort by creation time.
func (m *entryModel) StorageKey() string {
	return keyByID(m.ID)
}

// StorageIndexes implements badgerfx.Entity.
func (m *entryModel) StorageIndexes() []string {
	// `txn:target:<target>|<id>`
	return []string{
		prefixForTarget(m.Target) + m.ID.String(),
	}
}

func (m *entryModel) MarshalStorage() ([]byte, error) {
	return json.Marshal(m)
}

func (m *entryModel) UnmarshalStorage(data []byte) error {
	return json.Unmarshal(data, m)
}

var _ badgerfx.Entity = (*entryModel)(nil)
