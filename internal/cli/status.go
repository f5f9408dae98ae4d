package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/apiarycd/release-manager/internal/release"
	"github.com/apiarycd/release-manager/internal/repository"
)

// StatusCmd prints the release definition of a release branch.
type StatusCmd struct {
	Git     string `help:"Git reference in the <github org>/<github repo>/<branch> format" short:"g" xor:"source"`
	GitLab  string `help:"GitLab project in the <group>/<project> format" name:"gitlab" xor:"source"`
	Release string `help:"Release identifier of the GitLab release branch"`
}

var errMissingSource = errors.New("one of --git or --gitlab is required")

func (c *StatusCmd) Validate() error {
	if c.Git == "" && c.GitLab == "" {
		return errMissingSource
	}

	return nil
}

func (c *StatusCmd) Run(ctx context.Context, rt *Runtime, out io.Writer) error {
	var (
		target repository.Target
		err    error
	)
	if c.GitLab != "" {
		target, err = rt.gitLabTarget(c.GitLab, c.Release)
	} else {
		target, err = rt.gitHubTarget(c.Git)
	}
	if err != nil {
		return err
	}

	data, err := rt.readers.ReadFile(ctx, target, release.FileName)
	if err != nil {
		return fmt.Errorf("failed to read release definition: %w", err)
	}

	rel, err := release.Decode(data)
	if err != nil {
		return err
	}

	fmt.Fprintf(out, "target:   %s\n", target)
	fmt.Fprintf(out, "source:   %s\n", target.RawURL(release.FileName))
	fmt.Fprintf(out, "version:  %s\n", rel.Version)
	if rel.Key != "" {
		fmt.Fprintf(out, "ticket:   %s\n", rel.Key)
	}
	if rel.Schedule != nil {
		fmt.Fprintf(out, "release:  %s\n", rel.Schedule.Release)
		fmt.Fprintf(out, "due:      %s\n", rel.Schedule.Due)
		fmt.Fprintf(out, "eol:      %s\n", rel.Schedule.EOL)
	}
	fmt.Fprintf(out, "components: %d\n", len(rel.Components))

	problems := rel.ValidateSchedule()
	if validateErr := rt.releases.Validate(rel); validateErr != nil {
		problems = append(problems, validateErr.Error())
	}
	if len(problems) == 0 {
		return nil
	}

	for _, problem := range problems {
		fmt.Fprintf(out, "  - %s\n", problem)
	}

	return fmt.Errorf("%w: %s", release.ErrInvalidRelease, strings.Join(problems, "; "))
}
