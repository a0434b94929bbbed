/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package run

import (
	"context"
	"fmt"

	"chainguard.dev/issueagent/branch"
	"chainguard.dev/issueagent/event"
	"github.com/chainguard-dev/clog"
)

// Runner executes the event-to-branch pipeline for one run.
type Runner struct {
	hosting  branch.Hosting
	branches *branch.Manager
	repo     branch.Repo
}

// New constructs a Runner for the given repository.
func New(hosting branch.Hosting, branches *branch.Manager, repo branch.Repo) *Runner {
	return &Runner{
		hosting:  hosting,
		branches: branches,
		repo:     repo,
	}
}

// Result is what a completed run hands to downstream stages: the canonical
// descriptor and the branch state the agent operates with.
type Result struct {
	Descriptor event.Descriptor
	Branch     *branch.State
}

// Run normalizes the raw event and prepares the branch. Validation and
// ref-resolution failures propagate; no partial result is ever returned.
func (r *Runner) Run(ctx context.Context, raw *event.Raw) (*Result, error) {
	log := clog.FromContext(ctx)

	// Issue comments on issues can only be fully validated once branch
	// setup has produced the working and base branches.
	deferred := event.Kind(raw.Kind) == event.KindIssueComment && !raw.EntityIsPR

	var desc event.Descriptor
	var err error
	if !deferred {
		if desc, err = event.Normalize(raw); err != nil {
			return nil, err
		}
	} else if raw.Number == 0 {
		// Setup needs an entity to branch for; report the same failure
		// Normalize would after setup.
		return nil, &event.ValidationError{Event: raw.Kind, Field: "issue number"}
	}

	entity, err := r.hosting.Entity(ctx, r.repo, raw.Number, raw.EntityIsPR)
	if err != nil {
		return nil, fmt.Errorf("fetching entity %s#%d: %w", r.repo, raw.Number, err)
	}

	state, err := r.branches.Setup(ctx, r.repo, entity)
	if err != nil {
		return nil, err
	}

	if deferred {
		raw.BaseBranch = state.BaseBranch
		raw.Common.WorkingBranch = state.WorkingBranch
		if desc, err = event.Normalize(raw); err != nil {
			return nil, err
		}
	}

	log.With("kind", desc.Kind()).
		With("base", state.BaseBranch).
		With("current", state.CurrentBranch).
		Info("Run prepared")

	return &Result{Descriptor: desc, Branch: state}, nil
}
