package main

import (
	"fmt"
	"io"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/utkarsh5026/gitproject/pkg/objects"
	"github.com/utkarsh5026/gitproject/pkg/objects/tree"
)

func newCatFileCmd() *cobra.Command {
	var asTree bool

	cmd := &cobra.Command{
		Use:   "cat-file <fingerprint>",
		Short: "Print a stored object",
		Long: `Print the payload stored under a fingerprint. Objects carry no type
header, so --tree is needed to render a tree as a table.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			fp, err := objects.ParseFingerprint(args[0])
			if err != nil {
				return err
			}

			s, err := openRepository(cmd.Context())
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if asTree {
				t, err := tree.Read(s.repo.ObjectStore(), fp)
				if err != nil {
					return err
				}
				return displayTree(out, t)
			}

			payload, err := s.repo.ObjectStore().Get(fp)
			if err != nil {
				return err
			}
			_, err = out.Write(payload)
			return err
		},
	}

	cmd.Flags().BoolVar(&asTree, "tree", false, "Parse the object as a tree")

	return cmd
}

func displayTree(out io.Writer, t *tree.Tree) error {
	table := tablewriter.NewWriter(out)
	table.Header("Kind", "Fingerprint", "Name")

	for _, e := range t.Entries() {
		name := e.Name
		if e.IsPreviousLink() {
			name = "(previous tree)"
		}
		if err := table.Append(string(e.Kind), e.Fingerprint.String(), name); err != nil {
			return fmt.Errorf("render tree: %w", err)
		}
	}
	return table.Render()
}
