/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package branch

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
)

// fakeGit records the local git operations a Setup performed.
type fakeGit struct {
	fetches   []string
	checkouts []string
	created   []string
	fetchErr  error
}

func (f *fakeGit) FetchBranch(_ context.Context, branch string, depth int) error {
	if f.fetchErr != nil {
		return f.fetchErr
	}
	f.fetches = append(f.fetches, fmt.Sprintf("%s@%d", branch, depth))
	return nil
}

func (f *fakeGit) Checkout(_ context.Context, branch string) error {
	f.checkouts = append(f.checkouts, branch)
	return nil
}

func (f *fakeGit) CreateBranch(_ context.Context, name, base string) error {
	f.created = append(f.created, name+"<-"+base)
	return nil
}

func newTestManager(hosting Hosting, git Git, cfg Config) *Manager {
	m := NewManager(hosting, git, nil, cfg)
	m.now = func() time.Time { return time.Date(2026, 8, 27, 9, 5, 0, 0, time.UTC) }
	return m
}

// Scenario A: open PR #42 with head feature-x, base main and 5 commits.
// The fetch depth is floored at 20 and the head branch is reused.
func TestSetupOpenPullRequest(t *testing.T) {
	git := &fakeGit{}
	m := newTestManager(&fakeHosting{}, git, Config{Prefix: "claude-"})

	entity := &Entity{
		Number:  42,
		IsPR:    true,
		State:   "open",
		HeadRef: "feature-x",
		BaseRef: "main",
		Commits: 5,
	}

	state, err := m.Setup(context.Background(), testRepo, entity)
	if err != nil {
		t.Fatalf("Setup: %v", err)
	}

	want := &State{BaseBranch: "main", CurrentBranch: "feature-x"}
	if diff := cmp.Diff(want, state); diff != "" {
		t.Errorf("state mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"feature-x@20"}, git.fetches); diff != "" {
		t.Errorf("fetches mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"feature-x"}, git.checkouts); diff != "" {
		t.Errorf("checkouts mismatch (-want +got):\n%s", diff)
	}
	if len(git.created) != 0 {
		t.Errorf("unexpected branch creation: %v", git.created)
	}
}

func TestSetupOpenPullRequestDeepHistory(t *testing.T) {
	git := &fakeGit{}
	m := newTestManager(&fakeHosting{}, git, Config{})

	entity := &Entity{Number: 1, IsPR: true, State: "open", HeadRef: "big", BaseRef: "main", Commits: 75}
	if _, err := m.Setup(context.Background(), testRepo, entity); err != nil {
		t.Fatalf("Setup: %v", err)
	}
	if diff := cmp.Diff([]string{"big@75"}, git.fetches); diff != "" {
		t.Errorf("fetches mismatch (-want +got):\n%s", diff)
	}
}

// Scenario B: closed PR #7 with no explicit base and no guidance creates
// claude-pr-7 from the repository default.
func TestSetupClosedPullRequest(t *testing.T) {
	hosting := &fakeHosting{
		defaultBranch: "main",
		refs:          map[string]string{"main": "abc123"},
	}
	git := &fakeGit{}
	m := newTestManager(hosting, git, Config{Prefix: "claude-"})

	entity := &Entity{Number: 7, IsPR: true, State: "closed"}
	state, err := m.Setup(context.Background(), testRepo, entity)
	if err != nil {
		t.Fatalf("Setup: %v", err)
	}

	want := &State{BaseBranch: "main", WorkingBranch: "claude-pr-7", CurrentBranch: "claude-pr-7"}
	if diff := cmp.Diff(want, state); diff != "" {
		t.Errorf("state mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"claude-pr-7<-main"}, git.created); diff != "" {
		t.Errorf("created mismatch (-want +got):\n%s", diff)
	}
}

func TestSetupMergedPullRequestCreatesBranch(t *testing.T) {
	hosting := &fakeHosting{
		defaultBranch: "main",
		refs:          map[string]string{"main": "abc123"},
	}
	git := &fakeGit{}
	m := newTestManager(hosting, git, Config{Prefix: "claude-"})

	entity := &Entity{Number: 12, IsPR: true, State: "closed", Merged: true, HeadRef: "done", BaseRef: "main"}
	state, err := m.Setup(context.Background(), testRepo, entity)
	if err != nil {
		t.Fatalf("Setup: %v", err)
	}
	if state.WorkingBranch != "claude-pr-12" {
		t.Errorf("got working branch %q, want %q", state.WorkingBranch, "claude-pr-12")
	}
}

func TestSetupIssue(t *testing.T) {
	hosting := &fakeHosting{
		defaultBranch: "main",
		refs:          map[string]string{"main": "abc123"},
	}
	git := &fakeGit{}
	m := newTestManager(hosting, git, Config{Prefix: "claude-"})

	entity := &Entity{Number: 101, State: "open"}
	state, err := m.Setup(context.Background(), testRepo, entity)
	if err != nil {
		t.Fatalf("Setup: %v", err)
	}

	want := &State{BaseBranch: "main", WorkingBranch: "claude-issue-101", CurrentBranch: "claude-issue-101"}
	if diff := cmp.Diff(want, state); diff != "" {
		t.Errorf("state mismatch (-want +got):\n%s", diff)
	}
}

func TestSetupIssueWithTimestamp(t *testing.T) {
	hosting := &fakeHosting{
		defaultBranch: "main",
		refs:          map[string]string{"main": "abc123"},
	}
	m := newTestManager(hosting, &fakeGit{}, Config{Prefix: "claude-", WithTimestamp: true})

	state, err := m.Setup(context.Background(), testRepo, &Entity{Number: 101, State: "open"})
	if err != nil {
		t.Fatalf("Setup: %v", err)
	}
	if state.WorkingBranch != "claude-issue-101-20260827-0905" {
		t.Errorf("got %q, want timestamped name", state.WorkingBranch)
	}
}

// Commit-signing mode names the branch but leaves creation to the signing
// service, so the current branch stays at the base.
func TestSetupDeferredCreation(t *testing.T) {
	hosting := &fakeHosting{
		defaultBranch: "main",
		refs:          map[string]string{"main": "abc123"},
	}
	git := &fakeGit{}
	m := newTestManager(hosting, git, Config{Prefix: "claude-", DeferCreation: true})

	state, err := m.Setup(context.Background(), testRepo, &Entity{Number: 101, State: "open"})
	if err != nil {
		t.Fatalf("Setup: %v", err)
	}

	want := &State{BaseBranch: "main", WorkingBranch: "claude-issue-101", CurrentBranch: "main"}
	if diff := cmp.Diff(want, state); diff != "" {
		t.Errorf("state mismatch (-want +got):\n%s", diff)
	}
	if len(git.created) != 0 || len(git.fetches) != 0 || len(git.checkouts) != 0 {
		t.Errorf("local git touched in signing mode: %+v", git)
	}
}

func TestSetupExplicitBase(t *testing.T) {
	hosting := &fakeHosting{
		refs: map[string]string{"develop": "def456"},
	}
	git := &fakeGit{}
	m := newTestManager(hosting, git, Config{Prefix: "claude-", ExplicitBase: "develop"})

	state, err := m.Setup(context.Background(), testRepo, &Entity{Number: 3, State: "open"})
	if err != nil {
		t.Fatalf("Setup: %v", err)
	}
	if state.BaseBranch != "develop" {
		t.Errorf("got base %q, want %q", state.BaseBranch, "develop")
	}
	if hosting.defaultCalls != 0 {
		t.Errorf("default branch fetched despite explicit base")
	}
}

// A base branch that does not exist on the remote is fatal; no partial
// state is returned.
func TestSetupMissingBaseRef(t *testing.T) {
	hosting := &fakeHosting{defaultBranch: "main"} // no refs at all
	git := &fakeGit{}
	m := newTestManager(hosting, git, Config{Prefix: "claude-"})

	state, err := m.Setup(context.Background(), testRepo, &Entity{Number: 101, State: "open"})
	var nferr *RefNotFoundError
	if !errors.As(err, &nferr) {
		t.Fatalf("got err=%v, want RefNotFoundError", err)
	}
	if state != nil {
		t.Errorf("got partial state %+v, want nil", state)
	}
	if len(git.created) != 0 {
		t.Errorf("branch created despite missing base ref: %v", git.created)
	}
}
