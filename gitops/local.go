/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package gitops

import (
	"context"
	"errors"
	"fmt"

	"github.com/chainguard-dev/clog"
	"github.com/go-git/go-git/v5"
	gitconfig "github.com/go-git/go-git/v5/config"
	"github.com/go-git/go-git/v5/plumbing"
	githttp "github.com/go-git/go-git/v5/plumbing/transport/http"
	"golang.org/x/oauth2"
)

// Local operates on an existing checkout in the run's working directory.
// The token source authenticates fetches against origin; it may be nil for
// remotes that need no credentials.
type Local struct {
	repo        *git.Repository
	tokenSource oauth2.TokenSource
}

// Open opens the repository at path. The path must already contain a
// checkout; the run does not clone.
func Open(path string, tokenSource oauth2.TokenSource) (*Local, error) {
	repo, err := git.PlainOpen(path)
	if err != nil {
		return nil, fmt.Errorf("opening repository at %s: %w", path, err)
	}
	return &Local{repo: repo, tokenSource: tokenSource}, nil
}

// FetchBranch fetches the named branch from origin into its remote
// tracking ref. A positive depth bounds the history fetched; zero or
// negative fetches the full branch.
func (l *Local) FetchBranch(ctx context.Context, branch string, depth int) error {
	auth, err := l.auth()
	if err != nil {
		return fmt.Errorf("getting token: %w", err)
	}

	opts := &git.FetchOptions{
		RemoteName: "origin",
		RefSpecs: []gitconfig.RefSpec{
			gitconfig.RefSpec(fmt.Sprintf("+refs/heads/%s:refs/remotes/origin/%s", branch, branch)),
		},
		Auth: auth,
	}
	if depth > 0 {
		opts.Depth = depth
	}

	clog.FromContext(ctx).With("branch", branch).With("depth", depth).Debug("Fetching branch")
	if err := l.repo.FetchContext(ctx, opts); err != nil && !errors.Is(err, git.NoErrAlreadyUpToDate) {
		return fmt.Errorf("fetching %s: %w", branch, err)
	}
	return nil
}

// Checkout checks out the named branch. The local branch ref is created or
// moved to the remote-tracking position when one exists; otherwise an
// existing local branch is used as-is.
func (l *Local) Checkout(ctx context.Context, branch string) error {
	refName := plumbing.NewBranchReferenceName(branch)

	if remoteRef, err := l.repo.Reference(plumbing.NewRemoteReferenceName("origin", branch), true); err == nil {
		localRef := plumbing.NewHashReference(refName, remoteRef.Hash())
		if err := l.repo.Storer.SetReference(localRef); err != nil {
			return fmt.Errorf("setting branch reference: %w", err)
		}
	} else if _, err := l.repo.Reference(refName, true); err != nil {
		return fmt.Errorf("branch %s not found locally or on origin: %w", branch, err)
	}

	worktree, err := l.repo.Worktree()
	if err != nil {
		return fmt.Errorf("getting worktree: %w", err)
	}
	if err := worktree.Checkout(&git.CheckoutOptions{Branch: refName, Force: true}); err != nil {
		return fmt.Errorf("checking out %s: %w", branch, err)
	}

	clog.FromContext(ctx).With("branch", branch).Debug("Checked out branch")
	return nil
}

// CreateBranch creates a new branch at base's commit and checks it out.
// The base is resolved from its remote-tracking ref first, then from a
// local branch.
func (l *Local) CreateBranch(ctx context.Context, name, base string) error {
	baseRef, err := l.repo.Reference(plumbing.NewRemoteReferenceName("origin", base), true)
	if err != nil {
		baseRef, err = l.repo.Reference(plumbing.NewBranchReferenceName(base), true)
		if err != nil {
			return fmt.Errorf("resolving base %s: %w", base, err)
		}
	}

	refName := plumbing.NewBranchReferenceName(name)
	if err := l.repo.Storer.SetReference(plumbing.NewHashReference(refName, baseRef.Hash())); err != nil {
		return fmt.Errorf("setting branch reference: %w", err)
	}

	worktree, err := l.repo.Worktree()
	if err != nil {
		return fmt.Errorf("getting worktree: %w", err)
	}
	if err := worktree.Checkout(&git.CheckoutOptions{Branch: refName, Force: true}); err != nil {
		return fmt.Errorf("checking out %s: %w", name, err)
	}

	clog.FromContext(ctx).With("branch", name).With("base", base).Info("Created branch")
	return nil
}

func (l *Local) auth() (*githttp.BasicAuth, error) {
	if l.tokenSource == nil {
		return nil, nil
	}
	token, err := l.tokenSource.Token()
	if err != nil {
		return nil, err
	}
	return &githttp.BasicAuth{
		Username: "unused-when-using-access-tokens",
		Password: token.AccessToken,
	}, nil
}
