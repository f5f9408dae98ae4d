package repository

import "time"

type BranchMatch string

const (
	// BranchMatchSubstring treats the branch as present when any remote head contains its name.
	BranchMatchSubstring BranchMatch = "substring"
	// BranchMatchExact requires a remote head named exactly refs/heads/<branch>.
	BranchMatchExact BranchMatch = "exact"
)

type Config struct {
	// WorkDir is the parent of the scratch working copies. Empty means os.TempDir().
	WorkDir string
	// Timeout bounds a whole initialization sequence. Zero means no timeout.
	Timeout     time.Duration
	BranchMatch BranchMatch
}
