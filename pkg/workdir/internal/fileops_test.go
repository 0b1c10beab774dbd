package internal

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/utkarsh5026/gitproject/pkg/common/err"
	"github.com/utkarsh5026/gitproject/pkg/fsio"
	"github.com/utkarsh5026/gitproject/pkg/repository/scpath"
)

func TestFileOps_Clear(t *testing.T) {
	mfs := fsio.NewMemoryFS()
	require.NoError(t, mfs.MkdirAll("/w/.gitproject/objects", 0o755))
	require.NoError(t, mfs.WriteFile("/w/.gitproject/HEAD", []byte("x"), 0o644))
	require.NoError(t, mfs.MkdirAll("/w/src/deep", 0o755))
	require.NoError(t, mfs.WriteFile("/w/src/deep/a.go", []byte("a"), 0o644))
	require.NoError(t, mfs.WriteFile("/w/.gitprojectignore", []byte("*.log"), 0o644))
	require.NoError(t, mfs.WriteFile("/w/top.txt", []byte("t"), 0o644))

	removed, e := NewFileOps(mfs, scpath.RepositoryPath("/w")).Clear()
	require.NoError(t, e)

	assert.Equal(t, []string{".gitprojectignore", "src", "top.txt"}, removed)
	assert.True(t, mfs.Exists("/w/.gitproject/HEAD"))
	assert.True(t, mfs.IsDir("/w/.gitproject/objects"))
	assert.False(t, mfs.Exists("/w/src"))
	assert.False(t, mfs.Exists("/w/top.txt"))
}

func TestFileOps_ApplyOperation(t *testing.T) {
	mfs := fsio.NewMemoryFS()
	require.NoError(t, mfs.MkdirAll("/w", 0o755))
	ops := NewFileOps(mfs, scpath.RepositoryPath("/w"))

	require.NoError(t, ops.ApplyOperation(Operation{Path: "empty", Action: ActionCreateDir}))
	require.NoError(t, ops.ApplyOperation(Operation{Path: "a/b/c.txt", Action: ActionWriteFile, Content: []byte("c")}))
	require.NoError(t, ops.ApplyOperation(Operation{Path: "blank", Action: ActionWriteFile}))

	assert.True(t, mfs.IsDir("/w/empty"))
	data, e := mfs.ReadFile("/w/a/b/c.txt")
	require.NoError(t, e)
	assert.Equal(t, "c", string(data))
	data, e = mfs.ReadFile("/w/blank")
	require.NoError(t, e)
	assert.Empty(t, data)
}

func TestFileOps_ApplyOperation_Rejects(t *testing.T) {
	mfs := fsio.NewMemoryFS()
	require.NoError(t, mfs.MkdirAll("/w", 0o755))
	ops := NewFileOps(mfs, scpath.RepositoryPath("/w"))

	tests := []struct {
		name string
		op   Operation
	}{
		{"escapes working directory", Operation{Path: "../outside", Action: ActionWriteFile}},
		{"repository directory", Operation{Path: ".gitproject/HEAD", Action: ActionWriteFile}},
		{"unknown action", Operation{Path: "x", Action: ActionType(42)}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := ops.ApplyOperation(tt.op)
			require.Error(t, e)
			assert.True(t, errors.Is(e, err.ErrInvalidInput))
		})
	}
	assert.False(t, mfs.Exists("/outside"))
}
