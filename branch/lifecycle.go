/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package branch

import (
	"context"
	"fmt"
	"time"

	"github.com/chainguard-dev/clog"
)

// fetchDepthFloor bounds how little history is fetched for an open pull
// request. The depth is max(commit count, floor) so the whole PR is
// covered without fetching the full repository.
const fetchDepthFloor = 20

// Config carries the branch-creation knobs for a Manager. All values come
// from explicit configuration; the package reads no ambient state.
type Config struct {
	// Prefix is prepended to generated branch names, e.g. "claude-".
	Prefix string

	// ExplicitBase, when set, short-circuits base branch resolution.
	ExplicitBase string

	// Guidance, when set, enables the AI advisor step of resolution.
	Guidance string

	// WithTimestamp appends a minute-level timestamp to generated names.
	WithTimestamp bool

	// DeferCreation skips local branch creation so a signing-capable
	// service can create the branch on first commit (commit-signing mode).
	DeferCreation bool
}

// Manager implements the branch lifecycle decision: reuse an open pull
// request's head branch, or create a new working branch from a resolved
// base. States are terminal per run; Setup is called exactly once.
type Manager struct {
	hosting  Hosting
	git      Git
	resolver *Resolver
	cfg      Config

	now func() time.Time
}

// NewManager constructs a Manager. The resolver is built from the same
// hosting client; advisor may be nil.
func NewManager(hosting Hosting, git Git, advisor Advisor, cfg Config) *Manager {
	return &Manager{
		hosting:  hosting,
		git:      git,
		resolver: NewResolver(hosting, advisor),
		cfg:      cfg,
		now:      time.Now,
	}
}

// Setup decides and prepares the branch for a run. Open pull requests are
// checked out directly; issues and closed or merged pull requests get a
// new branch from the resolved base. A nonexistent base ref is fatal.
func (m *Manager) Setup(ctx context.Context, repo Repo, entity *Entity) (*State, error) {
	if entity.IsPR && entity.Open() {
		return m.checkoutExisting(ctx, entity)
	}
	return m.createNew(ctx, repo, entity)
}

// checkoutExisting fetches and checks out an open pull request's head
// branch. No new branch is created, so WorkingBranch stays empty.
func (m *Manager) checkoutExisting(ctx context.Context, entity *Entity) (*State, error) {
	log := clog.FromContext(ctx)

	depth := max(entity.Commits, fetchDepthFloor)
	log.With("branch", entity.HeadRef).With("depth", depth).Info("Checking out existing pull request branch")

	if err := m.git.FetchBranch(ctx, entity.HeadRef, depth); err != nil {
		return nil, fmt.Errorf("fetching %s: %w", entity.HeadRef, err)
	}
	if err := m.git.Checkout(ctx, entity.HeadRef); err != nil {
		return nil, fmt.Errorf("checking out %s: %w", entity.HeadRef, err)
	}

	return &State{
		BaseBranch:    entity.BaseRef,
		CurrentBranch: entity.HeadRef,
	}, nil
}

// createNew resolves a base branch and creates a deterministic working
// branch from it. In commit-signing mode the branch is only named, never
// created locally; the signing service creates it on first commit.
func (m *Manager) createNew(ctx context.Context, repo Repo, entity *Entity) (*State, error) {
	log := clog.FromContext(ctx)

	base, err := m.resolver.Resolve(ctx, repo, entity, m.cfg.ExplicitBase, m.cfg.Guidance)
	if err != nil {
		return nil, err
	}

	// Branching from a ref that does not exist on the remote is
	// unrecoverable; stop before touching the local checkout.
	if _, err := m.hosting.ResolveRef(ctx, repo, base); err != nil {
		return nil, err
	}

	kind := "issue"
	if entity.IsPR {
		kind = "pr"
	}
	name := Name(m.cfg.Prefix, kind, entity.Number, m.now(), m.cfg.WithTimestamp)

	if m.cfg.DeferCreation {
		log.With("branch", name).With("base", base).Info("Deferring branch creation to signing service")
		return &State{
			BaseBranch:    base,
			WorkingBranch: name,
			CurrentBranch: base,
		}, nil
	}

	log.With("branch", name).With("base", base).Info("Creating working branch")
	if err := m.git.FetchBranch(ctx, base, fetchDepthFloor); err != nil {
		return nil, fmt.Errorf("fetching base %s: %w", base, err)
	}
	if err := m.git.CreateBranch(ctx, name, base); err != nil {
		return nil, fmt.Errorf("creating branch %s from %s: %w", name, base, err)
	}

	return &State{
		BaseBranch:    base,
		WorkingBranch: name,
		CurrentBranch: name,
	}, nil
}
