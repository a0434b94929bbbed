/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package branch

import "context"

// Entity is a read-only snapshot of the issue or pull request that
// triggered a run. HeadRef, BaseRef and Commits are only populated for
// pull requests.
type Entity struct {
	Number int
	IsPR   bool

	// State is "open" or "closed" as reported by the hosting API.
	State  string
	Merged bool

	HeadRef string
	BaseRef string
	Commits int

	Title string
	Body  string
}

// Open reports whether the entity is an open, unmerged pull request or an
// open issue.
func (e *Entity) Open() bool {
	return e.State == "open" && !e.Merged
}

// State records the outcome of branch setup. CurrentBranch always names a
// branch that exists at the moment the record is returned. WorkingBranch
// is empty only when the run operates directly on an existing pull request
// branch with no new branch created.
type State struct {
	BaseBranch    string
	WorkingBranch string
	CurrentBranch string
}

// Hosting is the read-only GitHub API surface the package consumes.
type Hosting interface {
	// Entity fetches a snapshot of the triggering issue or pull request.
	Entity(ctx context.Context, repo Repo, number int, isPR bool) (*Entity, error)

	// DefaultBranch returns the repository's current default branch.
	DefaultBranch(ctx context.Context, repo Repo) (string, error)

	// ListBranches returns the names of all branches in the repository.
	ListBranches(ctx context.Context, repo Repo) ([]string, error)

	// ResolveRef returns the commit SHA of refs/heads/<branch>, or a
	// *RefNotFoundError when the branch does not exist on the remote.
	ResolveRef(ctx context.Context, repo Repo, branch string) (string, error)
}

// Git is the local version-control surface the package consumes. All
// operations act on the process's working directory checkout.
type Git interface {
	// FetchBranch fetches the named branch from origin. A positive depth
	// bounds history; zero or negative means a full fetch.
	FetchBranch(ctx context.Context, branch string, depth int) error

	// Checkout checks out the named branch, creating the local branch from
	// its remote-tracking ref when needed.
	Checkout(ctx context.Context, branch string) error

	// CreateBranch creates and checks out a new branch from base.
	CreateBranch(ctx context.Context, name, base string) error
}

// Repo identifies the repository a run operates on.
type Repo struct {
	Owner string
	Name  string
}

func (r Repo) String() string {
	return r.Owner + "/" + r.Name
}

// SuggestRequest carries the context an Advisor needs to propose a branch
// name. Branches is the live branch list the suggestion is validated
// against.
type SuggestRequest struct {
	Guidance string
	Branches []string
	Title    string
	Body     string
}

// Advisor proposes an existing branch to base work on. Implementations
// must absorb every internal failure: ok is false when there is no usable
// suggestion, and no error is ever surfaced.
type Advisor interface {
	SuggestBranch(ctx context.Context, req SuggestRequest) (name string, ok bool)
}
