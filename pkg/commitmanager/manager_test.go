package commitmanager

import (
	"context"
	"errors"
	"math"
	"os"
	"path"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/utkarsh5026/gitproject/pkg/common/err"
	"github.com/utkarsh5026/gitproject/pkg/config"
	"github.com/utkarsh5026/gitproject/pkg/fsio"
	"github.com/utkarsh5026/gitproject/pkg/index"
	"github.com/utkarsh5026/gitproject/pkg/objects"
	"github.com/utkarsh5026/gitproject/pkg/objects/blob"
	"github.com/utkarsh5026/gitproject/pkg/objects/commit"
	"github.com/utkarsh5026/gitproject/pkg/objects/tree"
	"github.com/utkarsh5026/gitproject/pkg/repository/lock"
	"github.com/utkarsh5026/gitproject/pkg/repository/scpath"
	"github.com/utkarsh5026/gitproject/pkg/repository/sourcerepo"
)

const workDir = "/work"

type fixture struct {
	t      *testing.T
	ctx    context.Context
	fs     *fsio.MemoryFS
	repo   *sourcerepo.SourceRepository
	stager *index.Manager
	mgr    *Manager
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	t.Setenv(config.EnvAuthorName, "Test User")
	t.Setenv(config.EnvAuthorEmail, "")

	ctx := context.Background()
	mfs := fsio.NewMemoryFS()
	require.NoError(t, mfs.MkdirAll(workDir, 0o755))

	repo, e := sourcerepo.Initialize(ctx, mfs, scpath.RepositoryPath(workDir), objects.CodecGzip)
	require.NoError(t, e)

	mgr := NewManager(repo)
	require.NoError(t, mgr.Initialize(ctx))

	return &fixture{
		t:      t,
		ctx:    ctx,
		fs:     mfs,
		repo:   repo,
		stager: index.NewManager(mfs, repo.WorkingDirectory(), repo.ObjectStore()),
		mgr:    mgr,
	}
}

func (f *fixture) write(name, content string) {
	f.t.Helper()
	full := path.Join(workDir, name)
	require.NoError(f.t, f.fs.MkdirAll(path.Dir(full), 0o755))
	require.NoError(f.t, f.fs.WriteFile(full, []byte(content), 0o644))
}

func (f *fixture) add(name, content string) {
	f.t.Helper()
	f.write(name, content)
	_, e := f.stager.AddFile(name)
	require.NoError(f.t, e)
}

func (f *fixture) commit(summary string) (*commit.Commit, objects.Fingerprint) {
	f.t.Helper()
	author, e := commit.NewPerson("Ada", "ada@example.com")
	require.NoError(f.t, e)

	c, e := f.mgr.CreateCommit(f.ctx, CommitOptions{
		Summary: summary,
		Author:  author,
		Date:    time.Date(2024, 3, 9, 12, 0, 0, 0, time.UTC),
	})
	require.NoError(f.t, e)
	return c, c.Fingerprint()
}

func (f *fixture) tree(fp objects.Fingerprint) *tree.Tree {
	f.t.Helper()
	t, e := tree.Read(f.repo.ObjectStore(), fp)
	require.NoError(f.t, e)
	return t
}

func (f *fixture) blobContent(t *tree.Tree, name string) string {
	f.t.Helper()
	entry, ok := t.Lookup(name)
	require.True(f.t, ok, "tree has no entry %q", name)
	b, e := blob.Read(f.repo.ObjectStore(), entry.Fingerprint)
	require.NoError(f.t, e)
	return string(b.Content())
}

func (f *fixture) writeLock(pid int) {
	f.t.Helper()
	lockPath := f.repo.SourceDirectory().LockPath().String()
	require.NoError(f.t, f.fs.WriteFile(lockPath, []byte(strconv.Itoa(pid)+"\n"), 0o644))
}

func names(entries []tree.Entry) []string {
	out := make([]string, 0, len(entries))
	for _, e := range entries {
		out = append(out, e.Name)
	}
	return out
}

func TestCreateCommit_FirstCommit(t *testing.T) {
	f := newFixture(t)
	f.add("f1", "file1")
	f.add("f2", "file2")

	c1, fp1 := f.commit("first")

	assert.True(t, c1.IsRoot())
	assert.Equal(t, "2024/03/09", c1.DateString())
	assert.Equal(t, "Ada <ada@example.com>", c1.Author)

	tr := f.tree(c1.Tree)
	assert.Equal(t, []string{"f1", "f2"}, names(tr.Blobs()))
	assert.True(t, tr.PreviousTreeLink().IsZero(), "first tree must not link anywhere")

	head, e := f.mgr.Head()
	require.NoError(t, e)
	assert.Equal(t, fp1, head)

	idx, e := f.stager.Load()
	require.NoError(t, e)
	assert.True(t, idx.IsEmpty(), "index must be cleared after a commit")
	assert.False(t, f.fs.Exists("/work/.gitproject/journal"))
	assert.False(t, f.fs.Exists("/work/.gitproject/lock"))
}

func TestCreateCommit_LinksPreviousTreeAndChild(t *testing.T) {
	f := newFixture(t)
	f.add("f1", "file1")
	f.add("f2", "file2")
	c1, fp1 := f.commit("C1")

	f.add("f3", "file3")
	f.write("dir/nested.txt", "nested")
	_, e := f.stager.AddDirectory("dir")
	require.NoError(t, e)
	c2, fp2 := f.commit("C2")

	assert.Equal(t, fp1, c2.Parent)

	tr := f.tree(c2.Tree)
	assert.Equal(t, c1.Tree, tr.PreviousTreeLink())
	assert.Equal(t, []string{"f3"}, names(tr.Blobs()))
	assert.Equal(t, []string{"dir"}, names(tr.Subtrees()))

	stored, e := commit.Read(f.repo.ObjectStore(), fp1)
	require.NoError(t, e)
	assert.Equal(t, fp2, stored.Child, "parent must record its child")
	assert.Equal(t, fp1, stored.Fingerprint(), "identity must not change when the child is linked")

	raw, e := f.repo.ObjectStore().Get(fp1)
	require.NoError(t, e)
	assert.NotEqual(t, fp1, objects.ComputeFingerprint(raw))
}

func TestCreateCommit_EditDeleteAdd(t *testing.T) {
	f := newFixture(t)
	f.add("f1", "file1")
	f.add("f2", "file2")
	c1, _ := f.commit("C1")

	f.write("f1", "file1 edited")
	_, e := f.stager.MarkEdited("f1")
	require.NoError(t, e)
	_, e = f.stager.MarkDeleted("f2")
	require.NoError(t, e)
	f.add("f3", "file3")

	c2, _ := f.commit("C2")

	tr := f.tree(c2.Tree)
	assert.Equal(t, []string{"f1", "f3"}, names(tr.Blobs()))
	assert.Equal(t, "file1 edited", f.blobContent(tr, "f1"))
	assert.False(t, tr.Has("f2"))
	assert.True(t, tr.PreviousTreeLink().IsZero(), "must not link to C1's tree")
	assert.Equal(t, c1.Tree, c2.Tree)
}

func TestCreateCommit_ResolvesDeepAncestor(t *testing.T) {
	f := newFixture(t)
	f.add("f1", "file1")
	f.add("f2", "file2")
	f.commit("C1")

	f.add("f3", "file3")
	f.commit("C2")

	_, e := f.stager.MarkDeleted("f1")
	require.NoError(t, e)
	c3, _ := f.commit("C3")

	tr := f.tree(c3.Tree)
	assert.Equal(t, []string{"f2", "f3"}, names(tr.Blobs()))
	assert.True(t, tr.PreviousTreeLink().IsZero())
}

func TestCreateCommit_KeepsSharingOlderHistory(t *testing.T) {
	f := newFixture(t)
	f.add("f1", "file1")
	f.commit("C1")
	f.add("f2", "file2")
	c2, _ := f.commit("C2")
	f.add("f3", "file3")
	f.commit("C3")

	_, e := f.stager.MarkDeleted("f3")
	require.NoError(t, e)
	c4, _ := f.commit("C4")

	tr := f.tree(c4.Tree)
	assert.Equal(t, 0, tr.Len())
	assert.Equal(t, c2.Tree, tr.PreviousTreeLink(), "history older than the deletion is reused")
}

func TestCreateCommit_DeletedNameNotInheritedFromOlderTree(t *testing.T) {
	f := newFixture(t)
	f.add("f1", "file1")
	f.add("f2", "file2")
	f.commit("C1")

	f.add("f1", "file1 again")
	c2, _ := f.commit("C2")
	require.Equal(t, []string{"f1"}, names(f.tree(c2.Tree).Blobs()))

	_, e := f.stager.MarkDeleted("f1")
	require.NoError(t, e)
	c3, _ := f.commit("C3")

	tr := f.tree(c3.Tree)
	assert.Equal(t, []string{"f2"}, names(tr.Blobs()))
	assert.True(t, tr.PreviousTreeLink().IsZero(), "C1's tree still holds f1 and must not be linked")
}

func TestCreateCommit_EditedFileNowEmpty(t *testing.T) {
	f := newFixture(t)
	f.add("f1", "file1")
	f.add("f2", "file2")
	f.commit("C1")

	f.write("f1", "")
	_, e := f.stager.MarkEdited("f1")
	require.NoError(t, e)
	c2, _ := f.commit("C2")

	tr := f.tree(c2.Tree)
	assert.Equal(t, []string{"f2"}, names(tr.Blobs()))
}

func TestCreateCommit_UnresolvedEntriesDropped(t *testing.T) {
	f := newFixture(t)
	f.add("f1", "file1")
	c1, _ := f.commit("C1")

	_, e := f.stager.MarkDeleted("never-existed")
	require.NoError(t, e)
	c2, _ := f.commit("C2")

	tr := f.tree(c2.Tree)
	assert.Equal(t, []string{"f1"}, names(tr.Blobs()))
	assert.True(t, tr.PreviousTreeLink().IsZero())
	assert.Equal(t, c1.Tree, c2.Tree)
}

func TestCreateCommit_StrictRejectsUnresolved(t *testing.T) {
	f := newFixture(t)
	f.add("f1", "file1")
	_, fp1 := f.commit("C1")

	_, e := f.stager.MarkDeleted("never-existed")
	require.NoError(t, e)

	_, e = f.mgr.CreateCommit(f.ctx, CommitOptions{Summary: "C2", Strict: true})
	require.Error(t, e)
	assert.True(t, errors.Is(e, err.ErrNotFound), "got %v", e)

	var commitErr *CommitError
	require.True(t, errors.As(e, &commitErr))
	assert.Equal(t, "build tree", commitErr.Op)

	head, _ := f.mgr.Head()
	assert.Equal(t, fp1, head, "HEAD must not move")
	idx, _ := f.stager.Load()
	assert.Equal(t, 1, idx.Count(), "index must be kept")
	assert.False(t, f.fs.Exists("/work/.gitproject/lock"))
}

func TestCreateCommit_FirstCommitWithEditsOnly(t *testing.T) {
	f := newFixture(t)
	f.write("f1", "file1")
	_, e := f.stager.MarkEdited("f1")
	require.NoError(t, e)

	c1, _ := f.commit("C1")
	assert.Equal(t, objects.EmptyFingerprint, c1.Tree, "nothing resolves, so the tree is empty")
}

func TestCreateCommit_EmptyIndex(t *testing.T) {
	f := newFixture(t)

	_, e := f.mgr.CreateCommit(f.ctx, CommitOptions{Summary: "nothing"})
	assert.True(t, errors.Is(e, ErrNoChanges), "got %v", e)
	assert.True(t, IsNoChanges(e))

	f.add("f1", "file1")
	c1, fp1 := f.commit("C1")

	c2, e := f.mgr.CreateCommit(f.ctx, CommitOptions{Summary: "empty", AllowEmpty: true})
	require.NoError(t, e)
	assert.Equal(t, fp1, c2.Parent)
	tr := f.tree(c2.Tree)
	assert.Equal(t, c1.Tree, tr.PreviousTreeLink())
	assert.Equal(t, 0, tr.Len())
}

func TestCreateCommit_CommandLineAuthor(t *testing.T) {
	f := newFixture(t)
	t.Setenv(config.EnvAuthorEmail, "env@example.com")
	require.NoError(t, f.repo.Config().Load(f.ctx))
	f.add("f1", "file1")

	cfg := f.repo.Config()
	cfg.SetCommandLine(config.KeyUserName, "Grace Hopper")
	cfg.SetCommandLine(config.KeyUserEmail, "")

	c, e := f.mgr.CreateCommit(f.ctx, CommitOptions{Summary: "by flag"})
	require.NoError(t, e)
	assert.Equal(t, "Grace Hopper", c.Author, "an empty command-line email hides the environment one")
}

func TestCreateCommit_EmptySummary(t *testing.T) {
	f := newFixture(t)
	f.add("f1", "file1")

	_, e := f.mgr.CreateCommit(f.ctx, CommitOptions{Summary: "  "})
	assert.True(t, errors.Is(e, ErrEmptyMessage), "got %v", e)
}

func TestCreateCommit_DefaultAuthor(t *testing.T) {
	f := newFixture(t)
	f.add("f1", "file1")

	c, e := f.mgr.CreateCommit(f.ctx, CommitOptions{Summary: "by env"})
	require.NoError(t, e)
	assert.Equal(t, "Test User", c.Author)
	assert.Equal(t, time.Now().Format(commit.DateFormat), c.DateString())
}

func TestCreateCommit_Locked(t *testing.T) {
	f := newFixture(t)
	f.add("f1", "file1")

	held, e := lock.Acquire(f.fs, f.repo.SourceDirectory())
	require.NoError(t, e)

	_, e = f.mgr.CreateCommit(f.ctx, CommitOptions{Summary: "blocked"})
	assert.True(t, errors.Is(e, err.ErrLockFailed), "got %v", e)

	require.NoError(t, held.Release())
	_, e = f.mgr.CreateCommit(f.ctx, CommitOptions{Summary: "unblocked"})
	assert.NoError(t, e)
}

func TestCreateCommit_Cancelled(t *testing.T) {
	f := newFixture(t)
	f.add("f1", "file1")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, e := f.mgr.CreateCommit(ctx, CommitOptions{Summary: "cancelled"})
	assert.ErrorIs(t, e, context.Canceled)
}

func TestRecover_FinishesInterruptedCommit(t *testing.T) {
	f := newFixture(t)
	f.add("f1", "file1")
	c1, fp1 := f.commit("C1")

	// Reproduce a run that died right after the commit point.
	f.add("f2", "file2")
	idx, e := f.stager.Load()
	require.NoError(t, e)
	treeFp, e := f.mgr.treeBuilder.BuildFromIndex(f.ctx, idx, c1.Tree, false)
	require.NoError(t, e)
	author, _ := commit.NewPerson("Ada", "")
	c2, e := commit.NewCommitBuilder().Tree(treeFp).Parent(fp1).Author(author).Summary("C2").Build()
	require.NoError(t, e)
	fp2, e := c2.Write(f.repo.ObjectStore())
	require.NoError(t, e)
	require.NoError(t, f.mgr.journal.write(journalRecord{Commit: fp2, Parent: fp1}))
	f.writeLock(math.MaxInt32)

	reopened := NewManager(f.repo)
	require.NoError(t, reopened.Initialize(f.ctx))

	head, _ := reopened.Head()
	assert.Equal(t, fp2, head)
	stored, e := commit.Read(f.repo.ObjectStore(), fp1)
	require.NoError(t, e)
	assert.Equal(t, fp2, stored.Child)
	idx, _ = f.stager.Load()
	assert.True(t, idx.IsEmpty())
	assert.False(t, f.fs.Exists("/work/.gitproject/journal"))
	assert.False(t, f.fs.Exists("/work/.gitproject/lock"), "the dead writer's lock is broken and ours released")

	require.NoError(t, reopened.Recover(f.ctx), "recovering twice is a no-op")
}

func TestRecover_LeavesLiveHoldersJournal(t *testing.T) {
	f := newFixture(t)
	f.add("f1", "file1")
	c1, fp1 := f.commit("C1")

	author, _ := commit.NewPerson("Ada", "")
	c2, e := commit.NewCommitBuilder().Tree(c1.Tree).Parent(fp1).Author(author).Summary("C2").Build()
	require.NoError(t, e)
	fp2, e := c2.Write(f.repo.ObjectStore())
	require.NoError(t, e)
	require.NoError(t, f.mgr.journal.write(journalRecord{Commit: fp2, Parent: fp1}))
	f.writeLock(os.Getpid())

	require.NoError(t, f.mgr.Recover(f.ctx))

	head, _ := f.mgr.Head()
	assert.Equal(t, fp1, head, "a running commit owns the journal")
	assert.True(t, f.fs.Exists("/work/.gitproject/journal"))
	assert.Equal(t, os.Getpid(), lock.Holder(f.fs, f.repo.SourceDirectory()))
}

func TestRecover_DiscardsJournalForMissingCommit(t *testing.T) {
	f := newFixture(t)
	missing := objects.ComputeFingerprint([]byte("never stored"))
	require.NoError(t, f.mgr.journal.write(journalRecord{Commit: missing}))

	require.NoError(t, f.mgr.Recover(f.ctx))
	head, _ := f.mgr.Head()
	assert.True(t, head.IsZero())
	assert.False(t, f.fs.Exists("/work/.gitproject/journal"))
}

func TestRecover_MalformedJournal(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, f.fs.WriteFile("/work/.gitproject/journal", []byte(`{"commit": "nope"}`), 0o644))

	e := f.mgr.Recover(f.ctx)
	assert.True(t, errors.Is(e, err.ErrMalformedRecord), "got %v", e)
}

func TestHistoryAndDescendants(t *testing.T) {
	f := newFixture(t)
	f.add("f1", "1")
	_, fp1 := f.commit("C1")
	f.add("f2", "2")
	_, fp2 := f.commit("C2")
	f.add("f3", "3")
	_, fp3 := f.commit("C3")

	fingerprints := func(cs []*commit.Commit) []objects.Fingerprint {
		out := make([]objects.Fingerprint, 0, len(cs))
		for _, c := range cs {
			out = append(out, c.Fingerprint())
		}
		return out
	}

	history, e := f.mgr.History(f.ctx, "", 0)
	require.NoError(t, e)
	assert.Equal(t, []objects.Fingerprint{fp3, fp2, fp1}, fingerprints(history))

	history, e = f.mgr.History(f.ctx, fp2, 0)
	require.NoError(t, e)
	assert.Equal(t, []objects.Fingerprint{fp2, fp1}, fingerprints(history))

	history, e = f.mgr.History(f.ctx, "", 2)
	require.NoError(t, e)
	assert.Len(t, history, 2)

	descendants, e := f.mgr.Descendants(f.ctx, fp1, 0)
	require.NoError(t, e)
	assert.Equal(t, []objects.Fingerprint{fp2, fp3}, fingerprints(descendants))

	descendants, e = f.mgr.Descendants(f.ctx, fp3, 0)
	require.NoError(t, e)
	assert.Empty(t, descendants)
}

func TestHistory_EmptyRepository(t *testing.T) {
	f := newFixture(t)
	history, e := f.mgr.History(f.ctx, "", 10)
	require.NoError(t, e)
	assert.Empty(t, history)
}

func TestGetCommit_NotFound(t *testing.T) {
	f := newFixture(t)
	_, e := f.mgr.GetCommit(f.ctx, objects.ComputeFingerprint([]byte("x")))
	assert.True(t, errors.Is(e, err.ErrNotFound), "got %v", e)
}
