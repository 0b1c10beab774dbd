package main

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/utkarsh5026/gitproject/cmd/ui"
	"github.com/utkarsh5026/gitproject/pkg/fsio"
	"github.com/utkarsh5026/gitproject/pkg/objects"
	"github.com/utkarsh5026/gitproject/pkg/repository/scpath"
	"github.com/utkarsh5026/gitproject/pkg/repository/sourcerepo"
)

func newInitCmd() *cobra.Command {
	var compression string

	cmd := &cobra.Command{
		Use:   "init [path]",
		Short: "Create an empty repository",
		Long: `Create an empty repository in the current directory or the given path.
This creates a .gitproject directory holding the object store, the index,
HEAD and the repository configuration.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := "."
			if len(args) > 0 {
				path = args[0]
			}

			absPath, err := filepath.Abs(path)
			if err != nil {
				return fmt.Errorf("failed to resolve path: %w", err)
			}
			repoPath, err := scpath.NewRepositoryPath(absPath)
			if err != nil {
				return fmt.Errorf("invalid path: %w", err)
			}

			codec, err := objects.ParseCodec(compression)
			if err != nil {
				return err
			}

			repo, err := sourcerepo.Initialize(cmd.Context(), fsio.NewOSFS(), repoPath, codec)
			if err != nil {
				return fmt.Errorf("failed to initialize repository: %w", err)
			}

			fmt.Fprintln(cmd.OutOrStdout(),
				ui.SuccessMessage("Initialized empty repository in", repo.SourceDirectory().String()))
			return nil
		},
	}

	cmd.Flags().StringVar(&compression, "compression", "", "Object compression (none, gzip, zstd); defaults to gzip")

	return cmd
}
