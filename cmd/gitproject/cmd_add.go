package main

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/utkarsh5026/gitproject/cmd/ui"
	"github.com/utkarsh5026/gitproject/pkg/index"
)

func newAddCmd() *cobra.Command {
	var all bool

	cmd := &cobra.Command{
		Use:   "add [path...]",
		Short: "Stage files or directories for the next commit",
		Long: `Stage files or directories for the next commit.
A file is stored as a blob and a directory as a tree. With --all every
top-level entry of the working directory that is not ignored or already
staged is added.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !all && len(args) == 0 {
				return fmt.Errorf("nothing specified, nothing added (use --all to stage everything)")
			}

			s, err := openRepository(cmd.Context())
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()

			if all {
				result, err := s.stager.AddAll()
				if err != nil {
					return err
				}
				for _, entry := range result.Added {
					fmt.Fprintln(out, ui.FormatChange(ui.ChangeAdded, entry.Path))
				}
				for _, path := range result.Skipped {
					fmt.Fprintf(out, "%s %s\n", ui.Dim("skipped:"), path)
				}
				return nil
			}

			for _, path := range args {
				entry, err := stagePath(s, path)
				if err != nil {
					return err
				}
				if entry == nil {
					fmt.Fprintf(out, "%s %s (empty file)\n", ui.Dim("skipped:"), path)
					continue
				}
				fmt.Fprintln(out, ui.FormatChange(ui.ChangeAdded, entry.Path))
			}
			return nil
		},
	}

	cmd.Flags().BoolVarP(&all, "all", "A", false, "Stage every top-level entry of the working directory")

	return cmd
}

// stagePath adds a file or directory depending on what path names.
func stagePath(s *session, path string) (*index.Entry, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve path: %w", err)
	}
	if s.repo.FS().IsDir(abs) {
		return s.stager.AddDirectory(abs)
	}
	return s.stager.AddFile(abs)
}
