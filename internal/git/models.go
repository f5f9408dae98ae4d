package git

// Credentials holds HTTPS basic auth credentials. The zero value means anonymous access.
type Credentials struct {
	Username string
	Password string
}

// IsZero reports whether no credentials were supplied.
func (c Credentials) IsZero() bool {
	return c.Username == "" && c.Password == ""
}

// Repository represents a cloned Git repository.
type Repository struct {
	Path string // Path to the working copy
	URL  string // Original repository URL
}

// Status is the worktree status split into the two sets the commit path cares about.
// Paths are slash separated and relative to the worktree root.
type Status struct {
	Modified  map[string]struct{} // Tracked files with uncommitted changes (staged or not)
	Untracked map[string]struct{} // Files unknown to the index
}

func (s Status) IsModified(path string) bool {
	_, ok := s.Modified[path]
	return ok
}

func (s Status) IsUntracked(path string) bool {
	_, ok := s.Untracked[path]
	return ok
}

func (s Status) IsClean() bool {
	return len(s.Modified) == 0 && len(s.Untracked) == 0
}
