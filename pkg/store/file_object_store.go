package store

import (
	"fmt"
	"log/slog"
	"sort"

	"github.com/utkarsh5026/gitproject/pkg/common/err"
	"github.com/utkarsh5026/gitproject/pkg/common/logger"
	"github.com/utkarsh5026/gitproject/pkg/fsio"
	"github.com/utkarsh5026/gitproject/pkg/objects"
	"github.com/utkarsh5026/gitproject/pkg/repository/scpath"
)

const pkgName = "store"

const objectFileMode = 0o444

// FileObjectStore keeps one file per object under .gitproject/objects.
//
// Directory Structure:
//
//	.gitproject/objects/
//	  da39a3ee5e6b4b0d3255bfef95601890afd80709
//	  aaf4c61ddcc5e8a2dabede0f3b482cd9aea9434d
//	  ...
//
// Each file holds the payload encoded with the store's codec. The fingerprint
// is always computed over the decoded payload.
type FileObjectStore struct {
	fs         fsio.FS
	sourcePath scpath.SourcePath
	codec      objects.Codec
	logger     *slog.Logger
}

// NewFileObjectStore creates a store rooted at sourcePath using codec.
func NewFileObjectStore(fs fsio.FS, sourcePath scpath.SourcePath, codec objects.Codec) *FileObjectStore {
	return &FileObjectStore{
		fs:         fs,
		sourcePath: sourcePath,
		codec:      codec,
		logger:     logger.With("component", "store"),
	}
}

// Initialize creates the objects directory.
func (s *FileObjectStore) Initialize() error {
	if e := s.fs.MkdirAll(s.sourcePath.ObjectsPath().String(), 0o755); e != nil {
		return ioFailure("Initialize", "failed to create objects directory", e)
	}
	return nil
}

// Codec returns the codec payloads are stored with.
func (s *FileObjectStore) Codec() objects.Codec {
	return s.codec
}

// Put stores payload if it is not already present.
//
// The process:
//  1. Compute the fingerprint over the raw payload
//  2. Return early if objects/<fingerprint> exists
//  3. Encode with the codec and write atomically
func (s *FileObjectStore) Put(payload []byte) (objects.Fingerprint, error) {
	fp := objects.ComputeFingerprint(payload)
	path := s.sourcePath.ObjectFilePath(fp.String()).String()

	if s.fs.Exists(path) {
		s.logger.Debug("object already present", "fingerprint", fp.Short())
		return fp, nil
	}

	if e := s.write(path, payload); e != nil {
		return "", err.New(pkgName, err.CodeIOFailure, "Put", "failed to write object "+fp.String(), e)
	}

	s.logger.Debug("object written", "fingerprint", fp.Short(), "size", len(payload))
	return fp, nil
}

// PutAs stores payload under fp if nothing is stored there yet.
func (s *FileObjectStore) PutAs(fp objects.Fingerprint, payload []byte) error {
	if e := fp.Validate(); e != nil {
		return e
	}
	path := s.sourcePath.ObjectFilePath(fp.String()).String()
	if s.fs.Exists(path) {
		s.logger.Debug("object already present", "fingerprint", fp.Short())
		return nil
	}
	if e := s.write(path, payload); e != nil {
		return ioFailure("PutAs", "failed to write object "+fp.String(), e)
	}
	s.logger.Debug("object written", "fingerprint", fp.Short(), "size", len(payload))
	return nil
}

// Get reads and decodes the object stored under fp.
func (s *FileObjectStore) Get(fp objects.Fingerprint) ([]byte, error) {
	if e := fp.Validate(); e != nil {
		return nil, e
	}

	data, e := s.fs.ReadFile(s.sourcePath.ObjectFilePath(fp.String()).String())
	if e != nil {
		if fsio.IsNotExist(e) {
			return nil, notFound("Get", fp)
		}
		return nil, ioFailure("Get", "failed to read object "+fp.String(), e)
	}

	payload, e := s.codec.Decode(data)
	if e != nil {
		return nil, err.New(pkgName, err.CodeMalformedRecord, "Get",
			fmt.Sprintf("object %s cannot be decoded with %s", fp, s.codec), e)
	}
	return payload, nil
}

// Has reports whether fp is stored.
func (s *FileObjectStore) Has(fp objects.Fingerprint) (bool, error) {
	if e := fp.Validate(); e != nil {
		return false, e
	}

	_, e := s.fs.Stat(s.sourcePath.ObjectFilePath(fp.String()).String())
	if e == nil {
		return true, nil
	}
	if fsio.IsNotExist(e) {
		return false, nil
	}
	return false, ioFailure("Has", "failed to check object existence", e)
}

// Overwrite replaces the payload of an existing object under the same
// fingerprint. This deliberately breaks content addressing and is used only
// to record a commit's child.
func (s *FileObjectStore) Overwrite(fp objects.Fingerprint, payload []byte) error {
	ok, e := s.Has(fp)
	if e != nil {
		return e
	}
	if !ok {
		return notFound("Overwrite", fp)
	}

	if e := s.write(s.sourcePath.ObjectFilePath(fp.String()).String(), payload); e != nil {
		return ioFailure("Overwrite", "failed to overwrite object "+fp.String(), e)
	}

	s.logger.Debug("object overwritten", "fingerprint", fp.Short())
	return nil
}

// Fingerprints lists every stored object in lexicographic order. Stray files
// whose names are not fingerprints are ignored.
func (s *FileObjectStore) Fingerprints() ([]objects.Fingerprint, error) {
	entries, e := s.fs.ReadDir(s.sourcePath.ObjectsPath().String())
	if e != nil {
		if fsio.IsNotExist(e) {
			return nil, nil
		}
		return nil, ioFailure("Fingerprints", "failed to list objects", e)
	}

	var out []objects.Fingerprint
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if fp, e := objects.ParseFingerprint(entry.Name()); e == nil {
			out = append(out, fp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out, nil
}

// Count returns the number of stored objects.
func (s *FileObjectStore) Count() (int, error) {
	fps, e := s.Fingerprints()
	return len(fps), e
}

func (s *FileObjectStore) write(path string, payload []byte) error {
	encoded, e := s.codec.Encode(payload)
	if e != nil {
		return fmt.Errorf("encode: %w", e)
	}
	return s.fs.WriteFileAtomic(path, encoded, objectFileMode)
}

func notFound(op string, fp objects.Fingerprint) error {
	return err.New(pkgName, err.CodeNotFound, op, "object not found: "+fp.String(), nil)
}

func ioFailure(op, message string, cause error) error {
	return err.New(pkgName, err.CodeIOFailure, op, message, cause)
}
