package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/utkarsh5026/gitproject/pkg/commitmanager"
	"github.com/utkarsh5026/gitproject/pkg/common/logger"
	"github.com/utkarsh5026/gitproject/pkg/config"
	"github.com/utkarsh5026/gitproject/pkg/fsio"
	"github.com/utkarsh5026/gitproject/pkg/index"
	"github.com/utkarsh5026/gitproject/pkg/repository/sourcerepo"
)

// session bundles the opened repository with the managers the commands use.
type session struct {
	repo    *sourcerepo.SourceRepository
	stager  *index.Manager
	commits *commitmanager.Manager
}

// openRepository finds the repository enclosing the current directory and
// finishes any commit an earlier process left half done.
func openRepository(ctx context.Context) (*session, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("failed to get current directory: %w", err)
	}

	repo, err := sourcerepo.Find(ctx, fsio.NewOSFS(), cwd)
	if err != nil {
		return nil, err
	}

	commits := commitmanager.NewManager(repo)
	if err := commits.Initialize(ctx); err != nil {
		return nil, fmt.Errorf("failed to recover repository: %w", err)
	}

	return &session{
		repo:    repo,
		stager:  index.NewManager(repo.FS(), repo.WorkingDirectory(), repo.ObjectStore()),
		commits: commits,
	}, nil
}

// loadConfig returns the configuration seen from the current directory with
// the command's flags applied. The repository level is included when the
// directory is inside a repository.
func loadConfig(cmd *cobra.Command) *config.Manager {
	ctx := cmd.Context()
	fs := fsio.NewOSFS()

	var cfg *config.Manager
	if cwd, e := os.Getwd(); e == nil {
		if repo, e := sourcerepo.Find(ctx, fs, cwd); e == nil {
			cfg = repo.Config()
		}
	}
	if cfg == nil {
		cfg = config.NewManager(fs, "")
		if e := cfg.Load(ctx); e != nil {
			logger.Warn("ignoring unreadable configuration", "error", e)
		}
	}

	applyFlags(cmd, cfg)
	return cfg
}
