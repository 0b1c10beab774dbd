package sourcerepo

import (
	"log/slog"

	"github.com/utkarsh5026/gitproject/pkg/config"
	"github.com/utkarsh5026/gitproject/pkg/fsio"
	"github.com/utkarsh5026/gitproject/pkg/repository/refs"
	"github.com/utkarsh5026/gitproject/pkg/repository/scpath"
	"github.com/utkarsh5026/gitproject/pkg/store"
)

// Repository is what the commit and checkout layers need from an opened
// repository.
type Repository interface {
	// FS is the file system the working directory and metadata live on
	FS() fsio.FS

	// WorkingDirectory returns the path to the repository's working directory
	WorkingDirectory() scpath.RepositoryPath

	// SourceDirectory returns the path to the .gitproject directory
	SourceDirectory() scpath.SourcePath

	// ObjectStore returns the object store for this repository
	ObjectStore() store.ObjectStore

	// Head returns the HEAD pointer
	Head() *refs.Head

	// Config returns the loaded configuration hierarchy
	Config() *config.Manager

	// Logger returns the repository-scoped logger
	Logger() *slog.Logger
}
