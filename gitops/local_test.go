/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package gitops

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
)

// initRemote creates a bare-ish "remote" repository with one commit on
// master and returns its path plus the head hash.
func initRemote(t *testing.T) (string, plumbing.Hash) {
	t.Helper()

	dir := t.TempDir()
	repo, err := git.PlainInit(dir, false)
	if err != nil {
		t.Fatalf("PlainInit: %v", err)
	}

	worktree, err := repo.Worktree()
	if err != nil {
		t.Fatalf("Worktree: %v", err)
	}

	path := filepath.Join(dir, "README.md")
	if err := os.WriteFile(path, []byte("hello\n"), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	if _, err := worktree.Add("README.md"); err != nil {
		t.Fatalf("Add: %v", err)
	}

	hash, err := worktree.Commit("initial", &git.CommitOptions{
		Author: &object.Signature{
			Name:  "gitops-test",
			Email: "gitops-test@chainguard.dev",
			When:  time.Now(),
		},
	})
	if err != nil {
		t.Fatalf("Commit: %v", err)
	}

	return dir, hash
}

// cloneRemote clones the remote into a fresh working directory, the way a
// workflow checkout would exist before the run starts.
func cloneRemote(t *testing.T, remote string) string {
	t.Helper()

	dir := t.TempDir()
	if _, err := git.PlainClone(dir, false, &git.CloneOptions{URL: remote}); err != nil {
		t.Fatalf("PlainClone: %v", err)
	}
	return dir
}

func TestOpenMissing(t *testing.T) {
	if _, err := Open(t.TempDir(), nil); err == nil {
		t.Fatalf("expected error opening a directory without a repository")
	}
}

func TestFetchAndCheckout(t *testing.T) {
	ctx := context.Background()
	remote, head := initRemote(t)
	workdir := cloneRemote(t, remote)

	l, err := Open(workdir, nil)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}

	if err := l.FetchBranch(ctx, "master", 0); err != nil {
		t.Fatalf("FetchBranch: %v", err)
	}
	if err := l.Checkout(ctx, "master"); err != nil {
		t.Fatalf("Checkout: %v", err)
	}

	ref, err := l.repo.Head()
	if err != nil {
		t.Fatalf("Head: %v", err)
	}
	if ref.Name() != plumbing.NewBranchReferenceName("master") {
		t.Errorf("HEAD = %s, want refs/heads/master", ref.Name())
	}
	if ref.Hash() != head {
		t.Errorf("HEAD hash = %s, want %s", ref.Hash(), head)
	}
}

func TestCheckoutMissingBranch(t *testing.T) {
	remote, _ := initRemote(t)
	workdir := cloneRemote(t, remote)

	l, err := Open(workdir, nil)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if err := l.Checkout(context.Background(), "no-such-branch"); err == nil {
		t.Fatalf("expected error for missing branch")
	}
}

func TestCreateBranch(t *testing.T) {
	ctx := context.Background()
	remote, head := initRemote(t)
	workdir := cloneRemote(t, remote)

	l, err := Open(workdir, nil)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}

	if err := l.CreateBranch(ctx, "claude-issue-101", "master"); err != nil {
		t.Fatalf("CreateBranch: %v", err)
	}

	ref, err := l.repo.Head()
	if err != nil {
		t.Fatalf("Head: %v", err)
	}
	if ref.Name() != plumbing.NewBranchReferenceName("claude-issue-101") {
		t.Errorf("HEAD = %s, want refs/heads/claude-issue-101", ref.Name())
	}
	if ref.Hash() != head {
		t.Errorf("branch hash = %s, want base hash %s", ref.Hash(), head)
	}
}

func TestCreateBranchMissingBase(t *testing.T) {
	remote, _ := initRemote(t)
	workdir := cloneRemote(t, remote)

	l, err := Open(workdir, nil)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if err := l.CreateBranch(context.Background(), "new", "no-such-base"); err == nil {
		t.Fatalf("expected error for missing base branch")
	}
}
