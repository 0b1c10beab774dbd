// Package sourcerepo creates, opens and locates repositories.
package sourcerepo

import (
	"context"
	"log/slog"

	"github.com/utkarsh5026/gitproject/pkg/common/err"
	"github.com/utkarsh5026/gitproject/pkg/common/logger"
	"github.com/utkarsh5026/gitproject/pkg/config"
	"github.com/utkarsh5026/gitproject/pkg/fsio"
	"github.com/utkarsh5026/gitproject/pkg/objects"
	"github.com/utkarsh5026/gitproject/pkg/repository/refs"
	"github.com/utkarsh5026/gitproject/pkg/repository/scpath"
	"github.com/utkarsh5026/gitproject/pkg/store"
)

const pkgName = "sourcerepo"

// SourceRepository is a working directory together with its .gitproject
// metadata directory.
//
// Layout:
//
//	<working-directory>/
//	  .gitproject/
//	    objects/<fingerprint>   one file per object
//	    index                   staging log
//	    HEAD                    head commit (absent before the first commit)
//	    config.json             repository configuration
//	  file1.txt
//	  ...
type SourceRepository struct {
	fs          fsio.FS
	workingDir  scpath.RepositoryPath
	sourceDir   scpath.SourcePath
	objectStore *store.FileObjectStore
	head        *refs.Head
	config      *config.Manager
	logger      *slog.Logger
}

var _ Repository = (*SourceRepository)(nil)

// Initialize creates a new repository at path. The codec is recorded in the
// repository configuration and used for every object written afterwards.
//
// Directory structure created:
//   - .gitproject/
//   - .gitproject/objects/
//
// Files created:
//   - .gitproject/config.json (core.compression)
func Initialize(ctx context.Context, fs fsio.FS, path scpath.RepositoryPath, codec objects.Codec) (*SourceRepository, error) {
	exists, e := Exists(fs, path)
	if e != nil {
		return nil, e
	}
	if exists {
		return nil, err.New(pkgName, err.CodeInvalidInput, "Initialize", "already a gitproject repository: "+path.String(), nil)
	}
	codec, e = objects.ParseCodec(codec.String())
	if e != nil {
		return nil, e
	}

	sourceDir := path.SourcePath()
	if e := fs.MkdirAll(sourceDir.String(), 0o755); e != nil {
		return nil, err.New(pkgName, err.CodeIOFailure, "Initialize", "failed to create "+sourceDir.String(), e)
	}

	repoConfig := config.NewStore(fs, sourceDir.ConfigPath().String(), config.RepositoryLevel)
	repoConfig.Set(config.KeyCompression, codec.String())
	if e := repoConfig.Save(); e != nil {
		return nil, e
	}

	repo, e := open(ctx, fs, path)
	if e != nil {
		return nil, e
	}
	if e := repo.objectStore.Initialize(); e != nil {
		return nil, e
	}

	repo.logger.Info("initialized repository", "path", path, "codec", codec)
	return repo, nil
}

// Open opens an existing repository rooted exactly at path.
func Open(ctx context.Context, fs fsio.FS, path scpath.RepositoryPath) (*SourceRepository, error) {
	exists, e := Exists(fs, path)
	if e != nil {
		return nil, e
	}
	if !exists {
		return nil, err.New(pkgName, err.CodeNotFound, "Open", "not a gitproject repository: "+path.String(), nil)
	}
	return open(ctx, fs, path)
}

func open(ctx context.Context, fs fsio.FS, path scpath.RepositoryPath) (*SourceRepository, error) {
	sourceDir := path.SourcePath()

	cfg := config.NewManager(fs, sourceDir)
	if e := cfg.Load(ctx); e != nil {
		return nil, e
	}

	codec, e := objects.ParseCodec(cfg.GetString(config.KeyCompression, ""))
	if e != nil {
		return nil, e
	}

	return &SourceRepository{
		fs:          fs,
		workingDir:  path,
		sourceDir:   sourceDir,
		objectStore: store.NewFileObjectStore(fs, sourceDir, codec),
		head:        refs.NewHead(fs, sourceDir),
		config:      cfg,
		logger:      logger.With("component", "repository", "path", path.String()),
	}, nil
}

// FS returns the file system the repository lives on.
func (sr *SourceRepository) FS() fsio.FS {
	return sr.fs
}

// WorkingDirectory returns the path to the repository's working directory
func (sr *SourceRepository) WorkingDirectory() scpath.RepositoryPath {
	return sr.workingDir
}

// SourceDirectory returns the path to the .gitproject directory
func (sr *SourceRepository) SourceDirectory() scpath.SourcePath {
	return sr.sourceDir
}

// ObjectStore returns the object store for this repository
func (sr *SourceRepository) ObjectStore() store.ObjectStore {
	return sr.objectStore
}

// FileObjectStore exposes the concrete store for diagnostics such as
// listing every object.
func (sr *SourceRepository) FileObjectStore() *store.FileObjectStore {
	return sr.objectStore
}

func (sr *SourceRepository) Head() *refs.Head {
	return sr.head
}

func (sr *SourceRepository) Config() *config.Manager {
	return sr.config
}

func (sr *SourceRepository) Logger() *slog.Logger {
	return sr.logger
}
