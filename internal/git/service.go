package git

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/config"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/go-git/go-git/v5/plumbing/transport"
	githttp "github.com/go-git/go-git/v5/plumbing/transport/http"
	"github.com/go-git/go-git/v5/storage/memory"
	"go.uber.org/zap"
)

const remoteName = "origin"

type Service struct {
	config Config

	logger *zap.Logger
}

// NewService creates a new GitService.
func NewService(config Config, logger *zap.Logger) *Service {
	return &Service{
		config: config,

		logger: logger,
	}
}

// ListRemoteBranches returns the full names of all heads advertised by the remote.
func (s *Service) ListRemoteBranches(ctx context.Context, url string, creds Credentials) ([]string, error) {
	s.logger.Info("listing remote branches", zap.String("url", url))

	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	remote := git.NewRemote(memory.NewStorage(), &config.RemoteConfig{
		Name: remoteName,
		URLs: []string{url},
	})

	refs, err := remote.ListContext(ctx, &git.ListOptions{Auth: s.auth(creds)})
	if errors.Is(err, transport.ErrEmptyRemoteRepository) {
		s.logger.Warn("remote repository is empty", zap.String("url", url))
		return []string{}, nil
	}
	if err != nil {
		s.logger.Error("failed to list remote branches", zap.Error(err))
		return nil, s.wrap(ErrListFailed, err)
	}

	branches := make([]string, 0, len(refs))
	for _, ref := range refs {
		if ref.Name().IsBranch() {
			branches = append(branches, ref.Name().String())
		}
	}

	s.logger.Info("remote branches listed",
		zap.String("url", url),
		zap.Int("count", len(branches)))

	return branches, nil
}

// Clone clones a single reference of a repository to the specified directory.
func (s *Service) Clone(ctx context.Context, req CloneRequest) (*Repository, error) {
	s.logger.Info("cloning repository",
		zap.String("url", req.URL),
		zap.String("directory", req.Directory),
		zap.String("reference", req.Reference))

	if entries, readErr := os.ReadDir(req.Directory); readErr == nil && len(entries) > 0 {
		return nil, fmt.Errorf("%w: %s", ErrRepositoryNotEmpty, req.Directory)
	}

	cloneOptions := &git.CloneOptions{
		URL:          req.URL,
		Auth:         s.auth(req.Credentials),
		SingleBranch: true,
		Tags:         git.NoTags,
	}

	if req.Reference != "" {
		cloneOptions.ReferenceName = plumbing.ReferenceName(req.Reference)
	}

	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	_, err := git.PlainCloneContext(ctx, req.Directory, false, cloneOptions)
	if err != nil {
		s.logger.Error("failed to clone repository", zap.Error(err))
		return nil, s.wrap(ErrCloneFailed, err)
	}

	s.logger.Info("repository cloned successfully",
		zap.String("url", req.URL),
		zap.String("directory", req.Directory))

	return &Repository{
		Path: req.Directory,
		URL:  req.URL,
	}, nil
}

// CreateBranch creates a local branch pointing at the current HEAD without checking it out.
func (s *Service) CreateBranch(_ context.Context, repoPath, name string) error {
	s.logger.Info("creating branch",
		zap.String("path", repoPath),
		zap.String("branch", name))

	repo, err := git.PlainOpen(repoPath)
	if err != nil {
		s.logger.Error("failed to open repository", zap.Error(err))
		return fmt.Errorf("%w: %w", ErrRepositoryNotFound, err)
	}

	head, err := repo.Head()
	if err != nil {
		s.logger.Error("failed to get HEAD", zap.Error(err))
		return fmt.Errorf("%w: %w", ErrInvalidRepository, err)
	}

	ref := plumbing.NewHashReference(plumbing.NewBranchReferenceName(name), head.Hash())
	if setErr := repo.Storer.SetReference(ref); setErr != nil {
		s.logger.Error("failed to create branch", zap.Error(setErr))
		return fmt.Errorf("%w: %w", ErrBranchCreateFailed, setErr)
	}

	s.logger.Info("branch created",
		zap.String("branch", name),
		zap.String("hash", head.Hash().String()))

	return nil
}

// Checkout switches the worktree to an existing local branch.
func (s *Service) Checkout(_ context.Context, repoPath, name string) error {
	s.logger.Info("checking out branch",
		zap.String("path", repoPath),
		zap.String("branch", name))

	repo, err := git.PlainOpen(repoPath)
	if err != nil {
		s.logger.Error("failed to open repository", zap.Error(err))
		return fmt.Errorf("%w: %w", ErrRepositoryNotFound, err)
	}

	refName := plumbing.NewBranchReferenceName(name)
	if _, refErr := repo.Reference(refName, true); refErr != nil {
		s.logger.Error("failed to get reference", zap.Error(refErr))
		return fmt.Errorf("%w: %s: %w", ErrBranchNotFound, name, refErr)
	}

	worktree, err := repo.Worktree()
	if err != nil {
		s.logger.Error("failed to get worktree", zap.Error(err))
		return fmt.Errorf("%w: %w", ErrInvalidRepository, err)
	}

	if coErr := worktree.Checkout(&git.CheckoutOptions{Branch: refName}); coErr != nil {
		s.logger.Error("failed to checkout branch", zap.Error(coErr))
		return fmt.Errorf("%w: %w", ErrCheckoutFailed, coErr)
	}

	s.logger.Info("branch checked out", zap.String("branch", name))

	return nil
}

// Status reports tracked files with uncommitted changes and untracked files.
func (s *Service) Status(_ context.Context, repoPath string) (Status, error) {
	s.logger.Debug("getting status", zap.String("path", repoPath))

	worktree, err := s.worktree(repoPath)
	if err != nil {
		return Status{}, err
	}

	st, err := worktree.Status()
	if err != nil {
		s.logger.Error("failed to get status", zap.Error(err))
		return Status{}, fmt.Errorf("%w: %w", ErrStatusFailed, err)
	}

	result := Status{
		Modified:  map[string]struct{}{},
		Untracked: map[string]struct{}{},
	}
	for path, fs := range st {
		switch {
		case fs.Worktree == git.Untracked && fs.Staging == git.Untracked:
			result.Untracked[path] = struct{}{}
		case fs.Worktree != git.Unmodified || fs.Staging != git.Unmodified:
			result.Modified[path] = struct{}{}
		}
	}

	s.logger.Debug("status retrieved",
		zap.String("path", repoPath),
		zap.Int("modified", len(result.Modified)),
		zap.Int("untracked", len(result.Untracked)))

	return result, nil
}

// Add stages the given worktree-relative paths.
func (s *Service) Add(_ context.Context, repoPath string, files []string) error {
	worktree, err := s.worktree(repoPath)
	if err != nil {
		return err
	}

	for _, file := range files {
		if _, addErr := worktree.Add(file); addErr != nil {
			s.logger.Error("failed to stage file", zap.String("file", file), zap.Error(addErr))
			return fmt.Errorf("%w: %s: %w", ErrAddFailed, file, addErr)
		}
		s.logger.Info("added", zap.String("file", file))
	}

	return nil
}

// Commit records the staged changes and returns the new commit hash.
func (s *Service) Commit(_ context.Context, repoPath, message string) (string, error) {
	worktree, err := s.worktree(repoPath)
	if err != nil {
		return "", err
	}

	hash, err := worktree.Commit(message, &git.CommitOptions{
		Author: &object.Signature{
			Name:  s.config.Author.Name,
			Email: s.config.Author.Email,
			When:  time.Now(),
		},
	})
	if err != nil {
		s.logger.Error("failed to commit", zap.Error(err))
		return "", fmt.Errorf("%w: %w", ErrCommitFailed, err)
	}

	s.logger.Info("committed",
		zap.String("path", repoPath),
		zap.String("hash", hash.String()))

	return hash.String(), nil
}

// Push pushes a refspec to origin.
func (s *Service) Push(ctx context.Context, req PushRequest) error {
	s.logger.Info("pushing",
		zap.String("path", req.Path),
		zap.String("refspec", req.RefSpec))

	repo, err := git.PlainOpen(req.Path)
	if err != nil {
		s.logger.Error("failed to open repository", zap.Error(err))
		return fmt.Errorf("%w: %w", ErrRepositoryNotFound, err)
	}

	refSpec := config.RefSpec(req.RefSpec)
	if validateErr := refSpec.Validate(); validateErr != nil {
		return fmt.Errorf("%w: %w", ErrPushFailed, validateErr)
	}

	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	err = repo.PushContext(ctx, &git.PushOptions{
		RemoteName: remoteName,
		RefSpecs:   []config.RefSpec{refSpec},
		Auth:       s.auth(req.Credentials),
	})
	if err != nil && !errors.Is(err, git.NoErrAlreadyUpToDate) {
		s.logger.Error("failed to push", zap.Error(err))
		return s.wrap(ErrPushFailed, err)
	}

	s.logger.Info("pushed", zap.String("refspec", req.RefSpec))

	return nil
}

// withTimeout bounds a single network operation by the configured timeout.
func (s *Service) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if s.config.Timeout <= 0 {
		return context.WithCancel(ctx)
	}

	return context.WithTimeout(ctx, s.config.Timeout)
}

func (s *Service) worktree(repoPath string) (*git.Worktree, error) {
	repo, err := git.PlainOpen(repoPath)
	if err != nil {
		s.logger.Error("failed to open repository", zap.Error(err))
		return nil, fmt.Errorf("%w: %w", ErrRepositoryNotFound, err)
	}

	worktree, err := repo.Worktree()
	if err != nil {
		s.logger.Error("failed to get worktree", zap.Error(err))
		return nil, fmt.Errorf("%w: %w", ErrInvalidRepository, err)
	}

	return worktree, nil
}

func (s *Service) auth(creds Credentials) transport.AuthMethod {
	if creds.IsZero() {
		return nil
	}

	return &githttp.BasicAuth{
		Username: creds.Username,
		Password: creds.Password,
	}
}

func (s *Service) wrap(sentinel, err error) error {
	if errors.Is(err, transport.ErrAuthenticationRequired) || errors.Is(err, transport.ErrAuthorizationFailed) {
		return fmt.Errorf("%w: %w: %w", sentinel, ErrAuthenticationFailed, err)
	}

	return fmt.Errorf("%w: %w", sentinel, err)
}
