package git

// CloneRequest represents the request to clone a repository.
type CloneRequest struct {
	URL         string      // Git repository URL
	Reference   string      // Full reference name to clone, e.g. refs/heads/main
	Directory   string      // Directory to clone into, must be empty or missing
	Credentials Credentials // HTTPS credentials
}

// PushRequest represents the request to push a working copy.
type PushRequest struct {
	Path        string      // Working copy path
	RefSpec     string      // e.g. refs/heads/b:refs/heads/b
	Credentials Credentials // HTTPS credentials
}
