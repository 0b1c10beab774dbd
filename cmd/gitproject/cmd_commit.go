package main

import (
	"fmt"
	"regexp"
	"time"

	"github.com/spf13/cobra"

	"github.com/utkarsh5026/gitproject/cmd/ui"
	"github.com/utkarsh5026/gitproject/pkg/commitmanager"
	"github.com/utkarsh5026/gitproject/pkg/config"
	"github.com/utkarsh5026/gitproject/pkg/objects/commit"
)

var authorPattern = regexp.MustCompile(`^\s*([^<>]+?)\s*(?:<([^<>]*)>)?\s*$`)

func newCommitCmd() *cobra.Command {
	var (
		message    string
		author     string
		date       string
		allowEmpty bool
		strict     bool
	)

	cmd := &cobra.Command{
		Use:   "commit",
		Short: "Record the staged changes as a new snapshot",
		Long: `Create a new commit from the staged changes.
The new tree holds the staged additions and links to the previous snapshot
for everything else. Edits and deletions are resolved against the ancestor
trees.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openRepository(cmd.Context())
			if err != nil {
				return err
			}

			opts := commitmanager.CommitOptions{
				Summary:    message,
				AllowEmpty: allowEmpty,
				Strict:     strict,
			}
			if author != "" {
				person, err := parseAuthor(author)
				if err != nil {
					return err
				}
				cfg := s.repo.Config()
				cfg.SetCommandLine(config.KeyUserName, person.Name)
				cfg.SetCommandLine(config.KeyUserEmail, person.Email)
			}
			if date != "" {
				if opts.Date, err = time.Parse(commit.DateFormat, date); err != nil {
					return fmt.Errorf("invalid date %q (want YYYY/MM/DD): %w", date, err)
				}
			}

			c, err := s.commits.CreateCommit(cmd.Context(), opts)
			if err != nil {
				if commitmanager.IsNoChanges(err) {
					return fmt.Errorf("nothing to commit (use --allow-empty to record an empty commit)")
				}
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%s [%s] %s\n",
				ui.Green(ui.IconCommit),
				ui.Yellow(c.Fingerprint().Short()),
				ui.Cyan(c.Summary))
			fmt.Fprintf(out, "%s %s\n", ui.Cyan(ui.IconAuthor), ui.Blue(c.Author))
			return nil
		},
	}

	cmd.Flags().StringVarP(&message, "message", "m", "", "Commit summary")
	cmd.Flags().StringVar(&author, "author", "", `Override the author ("Name <email>")`)
	cmd.Flags().StringVar(&date, "date", "", "Override the commit date (YYYY/MM/DD)")
	cmd.Flags().BoolVar(&allowEmpty, "allow-empty", false, "Allow a commit with nothing staged")
	cmd.Flags().BoolVar(&strict, "strict", false, "Fail when an edit or deletion matches no ancestor entry")

	return cmd
}

func parseAuthor(s string) (*commit.Person, error) {
	m := authorPattern.FindStringSubmatch(s)
	if m == nil {
		return nil, fmt.Errorf("invalid author %q (want \"Name <email>\")", s)
	}
	return commit.NewPerson(m[1], m[2])
}
