package commitmanager

import (
	"encoding/json"

	"github.com/utkarsh5026/gitproject/pkg/common/err"
	"github.com/utkarsh5026/gitproject/pkg/fsio"
	"github.com/utkarsh5026/gitproject/pkg/objects"
	"github.com/utkarsh5026/gitproject/pkg/repository/scpath"
)

// journalRecord is the write-ahead record of a commit whose object is stored
// but whose parent link, HEAD update and index clear may not have happened.
//
// Format (.gitproject/journal):
//
//	{"commit": "<fingerprint>", "parent": "<fingerprint or empty>"}
type journalRecord struct {
	Commit objects.Fingerprint `json:"commit"`
	Parent objects.Fingerprint `json:"parent"`
}

type journal struct {
	fs   fsio.FS
	path string
}

func newJournal(fs fsio.FS, sourceDir scpath.SourcePath) *journal {
	return &journal{fs: fs, path: sourceDir.JournalPath().String()}
}

// write records rec atomically. Once it returns, the commit is durable and
// Recover will finish it.
func (j *journal) write(rec journalRecord) error {
	data, e := json.Marshal(rec)
	if e != nil {
		return err.New(pkgName, err.CodeIOFailure, "journal", "failed to encode journal", e)
	}
	if e := j.fs.WriteFileAtomic(j.path, data, 0o644); e != nil {
		return err.New(pkgName, err.CodeIOFailure, "journal", "failed to write "+j.path, e)
	}
	return nil
}

// read returns the outstanding record, or nil when there is none.
func (j *journal) read() (*journalRecord, error) {
	data, e := j.fs.ReadFile(j.path)
	if e != nil {
		if fsio.IsNotExist(e) {
			return nil, nil
		}
		return nil, err.New(pkgName, err.CodeIOFailure, "journal", "failed to read "+j.path, e)
	}

	var rec journalRecord
	if e := json.Unmarshal(data, &rec); e != nil {
		return nil, err.New(pkgName, err.CodeMalformedRecord, "journal", "invalid journal record", e)
	}
	if e := rec.Commit.Validate(); e != nil {
		return nil, err.New(pkgName, err.CodeMalformedRecord, "journal", "invalid commit in journal", e)
	}
	if !rec.Parent.IsZero() {
		if e := rec.Parent.Validate(); e != nil {
			return nil, err.New(pkgName, err.CodeMalformedRecord, "journal", "invalid parent in journal", e)
		}
	}
	return &rec, nil
}

func (j *journal) remove() error {
	if e := j.fs.Remove(j.path); e != nil && !fsio.IsNotExist(e) {
		return err.New(pkgName, err.CodeIOFailure, "journal", "failed to remove "+j.path, e)
	}
	return nil
}
