package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/utkarsh5026/gitproject/cmd/ui"
	"github.com/utkarsh5026/gitproject/pkg/index"
)

func newStatusCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show HEAD and the staged changes",
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openRepository(cmd.Context())
			if err != nil {
				return err
			}

			head, err := s.commits.Head()
			if err != nil {
				return err
			}
			idx, err := s.stager.Load()
			if err != nil {
				return fmt.Errorf("failed to read index: %w", err)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, ui.Header(" Repository Status "))
			fmt.Fprintln(out, ui.HeadInfo(head.String()))
			fmt.Fprintln(out)

			if idx.IsEmpty() {
				fmt.Fprintln(out, ui.Green(fmt.Sprintf("  %s  Nothing staged", ui.IconCheck)))
				return nil
			}

			fmt.Fprintln(out, ui.Section("Changes to be committed:"))
			for _, entry := range idx.Entries() {
				fmt.Fprintln(out, ui.FormatChange(changeKind(entry.Op), entry.Path))
			}
			return nil
		},
	}

	return cmd
}

func changeKind(op index.Op) ui.ChangeKind {
	switch op {
	case index.OpEdit:
		return ui.ChangeEdited
	case index.OpDelete:
		return ui.ChangeDeleted
	default:
		return ui.ChangeAdded
	}
}
