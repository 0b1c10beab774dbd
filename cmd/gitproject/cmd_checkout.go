package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/utkarsh5026/gitproject/cmd/ui"
	"github.com/utkarsh5026/gitproject/pkg/objects"
	"github.com/utkarsh5026/gitproject/pkg/workdir"
)

func newCheckoutCmd() *cobra.Command {
	var dryRun bool

	cmd := &cobra.Command{
		Use:   "checkout [commit]",
		Short: "Replace the working directory with a commit's snapshot",
		Long: `Replace the working directory with the snapshot of a commit (HEAD by
default). Everything outside .gitproject is removed first, so uncommitted
work is lost. HEAD and the index are not changed.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var target objects.Fingerprint
			if len(args) > 0 {
				fp, err := objects.ParseFingerprint(args[0])
				if err != nil {
					return err
				}
				target = fp
			}

			s, err := openRepository(cmd.Context())
			if err != nil {
				return err
			}

			var opts []workdir.Option
			if dryRun {
				opts = append(opts, workdir.WithDryRun())
			}

			result, err := workdir.NewManager(s.repo).Checkout(cmd.Context(), target, opts...)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if result.DryRun {
				for _, op := range result.Operations {
					fmt.Fprintf(out, "%-5s %s\n", op.Action, op.Path)
				}
				return nil
			}
			fmt.Fprintln(out, ui.SuccessMessage(
				fmt.Sprintf("Checked out %s (%d files, %d directories)", result.Commit.Short(), result.FilesWritten, result.DirsCreated)))
			return nil
		},
	}

	cmd.Flags().BoolVarP(&dryRun, "dry-run", "n", false, "Only list what would be written")

	return cmd
}
