package main

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/utkarsh5026/gitproject/cmd/ui"
	"github.com/utkarsh5026/gitproject/pkg/index"
)

func newEditCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "edit <path...>",
		Short: "Stage edits to paths recorded in earlier commits",
		Long: `Mark paths as edited. The next commit finds each path in the ancestor
trees and stores its current content from the working directory.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return forEachPath(cmd, args, ui.ChangeEdited, func(s *session, abs string) (*index.Entry, error) {
				return s.stager.MarkEdited(abs)
			})
		},
	}
}

func newRmCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "rm <path...>",
		Short: "Stage the removal of paths from the next snapshot",
		Long: `Mark paths as deleted. The next commit leaves them out of its snapshot.
The working directory is not touched.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return forEachPath(cmd, args, ui.ChangeDeleted, func(s *session, abs string) (*index.Entry, error) {
				return s.stager.MarkDeleted(abs)
			})
		},
	}
}

func newResetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "reset <path...>",
		Short: "Unstage paths",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openRepository(cmd.Context())
			if err != nil {
				return err
			}
			for _, path := range args {
				abs, err := filepath.Abs(path)
				if err != nil {
					return fmt.Errorf("failed to resolve path: %w", err)
				}
				if err := s.stager.Unstage(abs); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", ui.Dim("unstaged:"), path)
			}
			return nil
		},
	}
}

func forEachPath(cmd *cobra.Command, args []string, kind ui.ChangeKind, stage func(*session, string) (*index.Entry, error)) error {
	s, err := openRepository(cmd.Context())
	if err != nil {
		return err
	}
	for _, path := range args {
		abs, err := filepath.Abs(path)
		if err != nil {
			return fmt.Errorf("failed to resolve path: %w", err)
		}
		entry, err := stage(s, abs)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), ui.FormatChange(kind, entry.Path))
	}
	return nil
}
