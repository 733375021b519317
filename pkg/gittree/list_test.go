package gittree

import (
	"context"
	"os/exec"
	"path/filepath"
	"sort"
	"testing"
	"time"

	"github.com/go-git/go-billy/v5/util"
	gogit "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing/object"

	"github.com/loic-sharma/NuGet.Dependents/pkg/errors"
)

// requireGit skips tests that fetch over the file transport, which shells
// out to git-upload-pack.
func requireGit(t *testing.T) {
	t.Helper()
	if _, err := exec.LookPath("git-upload-pack"); err == nil {
		return
	}
	if _, err := exec.LookPath("git"); err != nil {
		t.Skip("git not installed")
	}
}

// sourceRepo creates a non-bare repository on disk with files committed on
// the default branch and returns its path.
func sourceRepo(t *testing.T, files map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	repo, err := gogit.PlainInit(dir, false)
	if err != nil {
		t.Fatalf("init: %v", err)
	}
	if len(files) == 0 {
		return dir
	}

	wt, err := repo.Worktree()
	if err != nil {
		t.Fatalf("worktree: %v", err)
	}
	for name, content := range files {
		if err := util.WriteFile(wt.Filesystem, name, []byte(content), 0o644); err != nil {
			t.Fatalf("write %s: %v", name, err)
		}
		if _, err := wt.Add(name); err != nil {
			t.Fatalf("add %s: %v", name, err)
		}
	}
	_, err = wt.Commit("initial", &gogit.CommitOptions{
		Author: &object.Signature{Name: "test", Email: "test@example.com", When: time.Unix(1700000000, 0)},
	})
	if err != nil {
		t.Fatalf("commit: %v", err)
	}
	return dir
}

func TestList(t *testing.T) {
	requireGit(t)
	src := sourceRepo(t, map[string]string{
		"App/App.csproj":      "<Project />",
		"lib/packages.config": "<packages />",
		"README.md":           "# readme",
	})

	listing, err := List(context.Background(), src, "master", Options{})
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(listing.Commit) != 40 {
		t.Errorf("Commit = %q, want a full hash", listing.Commit)
	}

	got := append([]string(nil), listing.Paths...)
	sort.Strings(got)
	want := []string{"App/App.csproj", "README.md", "lib/packages.config"}
	if len(got) != len(want) {
		t.Fatalf("Paths = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Paths[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestListFiles(t *testing.T) {
	requireGit(t)
	src := sourceRepo(t, map[string]string{"a.csproj": "<Project />"})

	paths, err := ListFiles(context.Background(), src, "master")
	if err != nil {
		t.Fatalf("ListFiles: %v", err)
	}
	if len(paths) != 1 || paths[0] != "a.csproj" {
		t.Errorf("paths = %v, want [a.csproj]", paths)
	}
}

func TestList_UnknownBranch(t *testing.T) {
	requireGit(t)
	src := sourceRepo(t, map[string]string{"a.csproj": "<Project />"})

	listing, err := List(context.Background(), src, "does-not-exist", Options{})
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if !listing.Empty() || listing.Commit != "" {
		t.Errorf("listing = %+v, want empty", listing)
	}
}

func TestList_EmptyRemote(t *testing.T) {
	requireGit(t)
	src := sourceRepo(t, nil)

	listing, err := List(context.Background(), src, "master", Options{})
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if !listing.Empty() {
		t.Errorf("Paths = %v, want empty", listing.Paths)
	}
}

func TestList_UnreachableRemote(t *testing.T) {
	requireGit(t)
	missing := filepath.Join(t.TempDir(), "nope")

	_, err := List(context.Background(), missing, "master", Options{})
	if err == nil {
		t.Fatal("expected error")
	}
	if !errors.Is(err, errors.ErrCodeNetwork) {
		t.Errorf("code = %s, want %s", errors.GetCode(err), errors.ErrCodeNetwork)
	}
}

func TestList_ReleasesWorkspace(t *testing.T) {
	requireGit(t)
	tmp := t.TempDir()
	t.Setenv("TMPDIR", tmp)
	src := sourceRepo(t, map[string]string{"a.csproj": "<Project />"})

	if _, err := List(context.Background(), src, "master", Options{}); err != nil {
		t.Fatalf("List: %v", err)
	}
	matches, _ := filepath.Glob(filepath.Join(tmp, workspacePrefix+"-*"))
	if len(matches) != 0 {
		t.Errorf("workspace not released: %v", matches)
	}
}

func TestAuth(t *testing.T) {
	if auth("https://github.com/a/b.git", "") != nil {
		t.Error("no token should give no auth")
	}
	if auth("/local/path", "tok") != nil {
		t.Error("local paths should not carry auth")
	}
	if auth("https://github.com/a/b.git", "tok") == nil {
		t.Error("https with token should carry auth")
	}
}
