package main

import (
	"fmt"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/utkarsh5026/gitproject/pkg/config"
)

func newConfigCmd() *cobra.Command {
	var (
		list      bool
		unset     bool
		levelName string
	)

	cmd := &cobra.Command{
		Use:   "config [key [value]]",
		Short: "Get and set configuration values",
		Long: `Read or write configuration. With one argument the effective value is
printed; with two it is written to the chosen level (repository by default).
Values resolve command line, environment, repository, user, system and then
built-in defaults, first match wins.`,
		Args: cobra.MaximumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := loadConfig(cmd)
			out := cmd.OutOrStdout()

			if list || len(args) == 0 {
				table := tablewriter.NewWriter(out)
				table.Header("Key", "Value", "Level", "Source")
				for _, entry := range cfg.List() {
					if err := table.Append(entry.Key, entry.Value, entry.Level.String(), entry.Source); err != nil {
						return err
					}
				}
				return table.Render()
			}

			level, err := config.ParseLevel(levelName)
			if err != nil {
				return err
			}

			key := args[0]
			switch {
			case unset:
				return cfg.Unset(key, level)
			case len(args) == 2:
				return cfg.Set(key, args[1], level)
			}

			entry := cfg.Get(key)
			if entry == nil {
				return fmt.Errorf("key not set: %s", key)
			}
			fmt.Fprintln(out, entry.Value)
			return nil
		},
	}

	cmd.Flags().BoolVarP(&list, "list", "l", false, "List every effective value")
	cmd.Flags().BoolVar(&unset, "unset", false, "Remove the key from the chosen level")
	cmd.Flags().StringVar(&levelName, "level", config.RepositoryLevel.String(), "Level to write (repository, user, system)")

	return cmd
}
