package main

import (
	"fmt"
	"io"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/utkarsh5026/gitproject/cmd/ui"
	"github.com/utkarsh5026/gitproject/pkg/objects"
	"github.com/utkarsh5026/gitproject/pkg/objects/commit"
)

func newLogCmd() *cobra.Command {
	var (
		limit    int
		useTable bool
		forward  bool
	)

	cmd := &cobra.Command{
		Use:   "log [commit]",
		Short: "Show commit history",
		Long: `Show the commit history starting at the given commit (HEAD by default),
following parent links. With --forward the child links are followed instead,
listing the commits made after the given one.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var start objects.Fingerprint
			if len(args) > 0 {
				fp, err := objects.ParseFingerprint(args[0])
				if err != nil {
					return err
				}
				start = fp
			}

			s, err := openRepository(cmd.Context())
			if err != nil {
				return err
			}

			var history []*commit.Commit
			if forward {
				if start.IsZero() {
					return fmt.Errorf("--forward needs a starting commit")
				}
				history, err = s.commits.Descendants(cmd.Context(), start, limit)
			} else {
				history, err = s.commits.History(cmd.Context(), start, limit)
			}
			if err != nil {
				return fmt.Errorf("failed to get history: %w", err)
			}

			out := cmd.OutOrStdout()
			if len(history) == 0 {
				fmt.Fprintln(out, ui.WarningMessage("No commits yet"))
				return nil
			}

			if useTable {
				return displayCommitsAsTable(out, history)
			}
			displayCommitsDetailed(out, history)
			return nil
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "Limit the number of commits to show (0 for all)")
	cmd.Flags().BoolVarP(&useTable, "table", "t", false, "Display commits in table format")
	cmd.Flags().BoolVar(&forward, "forward", false, "Follow child links from the given commit")

	return cmd
}

func displayCommitsDetailed(out io.Writer, history []*commit.Commit) {
	fmt.Fprintln(out, ui.Header(" Commit History "))

	for i, c := range history {
		fmt.Fprintln(out, ui.FormatCommitDetailed(ui.CommitInfo{
			Fingerprint: c.Fingerprint().String(),
			Tree:        c.Tree.String(),
			Author:      c.Author,
			Date:        c.DateString(),
			Summary:     c.Summary,
		}))
		if i < len(history)-1 {
			fmt.Fprintln(out, ui.FormatCommitSeparator())
		}
	}
}

func displayCommitsAsTable(out io.Writer, history []*commit.Commit) error {
	table := tablewriter.NewWriter(out)
	table.Header("Commit", "Author", "Date", "Summary")

	for _, c := range history {
		summary := c.Summary
		if len(summary) > 50 {
			summary = summary[:47] + "..."
		}
		if err := table.Append(c.Fingerprint().Short(), c.Author, c.DateString(), summary); err != nil {
			return err
		}
	}

	return table.Render()
}
