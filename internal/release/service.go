package release

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/valyala/fasttemplate"
	"go.uber.org/zap"

	"github.com/apiarycd/release-manager/internal/repository"
)

const (
	templateStart = "{{"
	templateEnd   = "}}"
)

type Service struct {
	message *fasttemplate.Template

	validator *validator.Validate
	logger    *zap.Logger
}

func NewService(config Config, validator *validator.Validate, logger *zap.Logger) (*Service, error) {
	text := config.CommitMessage
	if text == "" {
		text = DefaultCommitMessage
	}

	message, err := fasttemplate.NewTemplate(text, templateStart, templateEnd)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidTemplate, err)
	}

	return &Service{
		message: message,

		validator: validator,
		logger:    logger,
	}, nil
}

// Load reads the release definition from a working copy.
func (s *Service) Load(root string) (*Release, error) {
	data, err := os.ReadFile(filepath.Join(root, FileName))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDecodeFailed, err)
	}

	return Decode(data)
}

// Validate checks the structural constraints of r.
func (s *Service) Validate(r *Release) error {
	if err := s.validator.Struct(r); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidRelease, err)
	}

	return nil
}

// Prepare applies the schedule to r and validates the result.
func (s *Service) Prepare(r *Release, releaseDate, eolDate string) error {
	if err := s.Validate(r); err != nil {
		return err
	}

	if err := r.SetSchedule(releaseDate, eolDate); err != nil {
		return err
	}

	if problems := r.ValidateSchedule(); len(problems) > 0 {
		return fmt.Errorf("%w: %s", ErrInvalidSchedule, strings.Join(problems, "; "))
	}

	s.logger.Info("release scheduled",
		zap.String("version", r.Version),
		zap.String("release", r.Schedule.Release),
		zap.String("due", r.Schedule.Due),
		zap.String("eol", r.Schedule.EOL))

	return nil
}

// CommitMessage renders the configured commit message for r.
func (s *Service) CommitMessage(r *Release) string {
	values := map[string]any{
		"version": r.Version,
		"key":     r.Key,
		"release": "",
		"due":     "",
		"eol":     "",
	}
	if r.Schedule != nil {
		values["release"] = r.Schedule.Release
		values["due"] = r.Schedule.Due
		values["eol"] = r.Schedule.EOL
	}

	return s.message.ExecuteString(values)
}

// UpdateFile returns a mutation that writes r to the release file of the
// working copy.
func (s *Service) UpdateFile(r *Release) repository.Mutation {
	return func(_ context.Context, root string, _ []string) (string, error) {
		data, err := Encode(r)
		if err != nil {
			return "", err
		}

		path := filepath.Join(root, FileName)
		if writeErr := os.WriteFile(path, data, 0o644); writeErr != nil {
			return "", fmt.Errorf("%w: %w", ErrEncodeFailed, writeErr)
		}

		s.logger.Debug("release file written", zap.String("path", path))

		return path, nil
	}
}
