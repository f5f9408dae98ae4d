package cli

import (
	"context"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/apiarycd/release-manager/internal/history"
	"github.com/apiarycd/release-manager/internal/repository"
)

// HistoryCmd lists journaled transactions, newest first.
type HistoryCmd struct {
	ID      string `help:"Show a single entry in detail" name:"id" xor:"filter"`
	Git     string `help:"Only show transactions of this <github org>/<github repo>/<branch> target" short:"g" xor:"filter"`
	GitLab  string `help:"Only show transactions of this <group>/<project> GitLab project" name:"gitlab" xor:"filter"`
	Release string `help:"Release identifier of the GitLab release branch"`
	Limit   int    `help:"Maximum number of entries (0 = unlimited)" default:"20" short:"n"`
}

func (c *HistoryCmd) Run(ctx context.Context, rt *Runtime, out io.Writer) error {
	if c.ID != "" {
		entry, err := rt.journal.Get(ctx, c.ID)
		if err != nil {
			return err
		}

		printEntry(out, entry)
		return nil
	}

	target, err := c.target(rt)
	if err != nil {
		return err
	}

	entries, err := rt.journal.List(ctx, target, c.Limit)
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tTIME\tTARGET\tOUTCOME\tCOMMIT\tFILES\tERROR")
	for _, entry := range entries {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
			entry.ID,
			entry.CreatedAt.Format(time.RFC3339),
			entry.Target,
			entry.Outcome,
			shortID(entry.CommitID),
			strings.Join(entry.Files, ","),
			entry.Error,
		)
	}

	return w.Flush()
}

func (c *HistoryCmd) target(rt *Runtime) (*repository.Target, error) {
	var (
		target repository.Target
		err    error
	)
	switch {
	case c.GitLab != "":
		target, err = rt.gitLabTarget(c.GitLab, c.Release)
	case c.Git != "":
		target, err = rt.gitHubTarget(c.Git)
	default:
		return nil, nil //nolint:nilnil //no filter
	}
	if err != nil {
		return nil, err
	}

	return &target, nil
}

func printEntry(out io.Writer, entry *history.Entry) {
	fmt.Fprintf(out, "id:       %s\n", entry.ID)
	fmt.Fprintf(out, "time:     %s\n", entry.CreatedAt.Format(time.RFC3339))
	fmt.Fprintf(out, "target:   %s\n", entry.Target)
	fmt.Fprintf(out, "outcome:  %s\n", entry.Outcome)
	fmt.Fprintf(out, "message:  %s\n", entry.Message)
	if entry.CommitID != "" {
		fmt.Fprintf(out, "commit:   %s\n", entry.CommitID)
	}
	for _, file := range entry.Files {
		fmt.Fprintf(out, "  - %s\n", file)
	}
	if entry.Error != "" {
		fmt.Fprintf(out, "error:    %s\n", entry.Error)
	}
}
