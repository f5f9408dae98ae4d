package cli

import (
	"context"
	"fmt"
	"io"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/apiarycd/release-manager/internal/repository"
)

// StartReleaseCmd schedules a release and pushes the updated definition.
type StartReleaseCmd struct {
	Git         string `help:"Git reference in the <github org>/<github repo>/<branch> format" short:"g" required:""`
	GitLab      string `help:"GitLab project in the <group>/<project> format that receives a copy on the release branch" name:"gitlab"`
	ReleaseDate string `help:"Release date (yyyy-mm-dd)" short:"r" required:""`
	EOLDate     string `help:"End of life date (yyyy-mm-dd)" short:"e" required:"" name:"eol-date"`
}

func (c *StartReleaseCmd) Run(ctx context.Context, rt *Runtime, out io.Writer) error {
	primary, err := rt.gitHubTarget(c.Git)
	if err != nil {
		return err
	}

	tasks := []*repository.Task{rt.registry.EnsureInitialized(ctx, primary)}

	handle, err := tasks[0].Wait(ctx)
	if err != nil {
		return err
	}

	rel, err := rt.releases.Load(handle.Root())
	if err != nil {
		return fmt.Errorf("failed to read release definition: %w", err)
	}

	if prepErr := rt.releases.Prepare(rel, c.ReleaseDate, c.EOLDate); prepErr != nil {
		return prepErr
	}

	if c.GitLab != "" {
		mirror, mirrorErr := rt.gitLabTarget(c.GitLab, rel.Version)
		if mirrorErr != nil {
			return mirrorErr
		}
		tasks = append(tasks, rt.registry.EnsureInitialized(ctx, mirror))
	}

	message := rt.releases.CommitMessage(rel)
	results := make([]repository.Result, len(tasks))

	g, gctx := errgroup.WithContext(ctx)
	for i, task := range tasks {
		g.Go(func() error {
			handle, waitErr := task.Wait(gctx)
			if waitErr != nil {
				return waitErr
			}

			result, txErr := rt.orchestrator.Commit(gctx, handle, message, rt.releases.UpdateFile(rel))
			if _, recErr := rt.journal.Record(gctx, task.Target(), message, result, txErr); recErr != nil {
				rt.logger.Warn("transaction not journaled", zap.Error(recErr))
			}
			results[i] = result

			return txErr
		})
	}
	if waitErr := g.Wait(); waitErr != nil {
		return waitErr
	}

	fmt.Fprintf(out, "release %s scheduled for %s (due %s, eol %s)\n",
		rel.Version, rel.Schedule.Release, rel.Schedule.Due, rel.Schedule.EOL)
	for i, task := range tasks {
		printResult(out, task.Target(), results[i])
	}

	return nil
}

func printResult(out io.Writer, target repository.Target, result repository.Result) {
	if result.NoOp {
		fmt.Fprintf(out, "%s: no changes\n", target)
		return
	}

	fmt.Fprintf(out, "%s: pushed %s (%d files) to %s\n", target, shortID(result.CommitID), len(result.ChangeSet), result.RefSpec)
}

func shortID(id string) string {
	const size = 8
	if len(id) <= size {
		return id
	}

	return id[:size]
}
