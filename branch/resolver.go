/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package branch

import (
	"context"
	"fmt"

	"github.com/chainguard-dev/clog"
)

// Resolver determines the base branch to branch from. Precedence, first
// match wins:
//
//  1. An explicitly configured branch is returned verbatim.
//  2. With a guidance prompt configured, the Advisor is consulted; any
//     failure or empty suggestion falls through.
//  3. The repository's default branch.
//
// Steps 1 and 2 never fail; only an inability to fetch the default branch
// surfaces as an error.
type Resolver struct {
	hosting Hosting
	advisor Advisor // nil disables the AI step
}

// NewResolver constructs a Resolver. The advisor may be nil, in which case
// the guidance step is skipped entirely.
func NewResolver(hosting Hosting, advisor Advisor) *Resolver {
	return &Resolver{
		hosting: hosting,
		advisor: advisor,
	}
}

// Resolve returns the base branch for a run. The explicit value is trusted
// without an existence check; guidance enables the advisor step.
func (r *Resolver) Resolve(ctx context.Context, repo Repo, entity *Entity, explicit, guidance string) (string, error) {
	log := clog.FromContext(ctx)

	if explicit != "" {
		log.With("branch", explicit).Debug("Using explicitly configured base branch")
		return explicit, nil
	}

	if guidance != "" && r.advisor != nil {
		if name, ok := r.suggested(ctx, repo, entity, guidance); ok {
			log.With("branch", name).Info("Using advisor-suggested base branch")
			return name, nil
		}
	}

	name, err := r.hosting.DefaultBranch(ctx, repo)
	if err != nil {
		return "", fmt.Errorf("fetching default branch for %s: %w", repo, err)
	}
	log.With("branch", name).Debug("Using repository default branch")
	return name, nil
}

// suggested runs the advisor step. Every failure is absorbed here: a
// missing branch list, an advisor error, or an unrecognized suggestion all
// degrade to "no suggestion" so the chain can fall through.
func (r *Resolver) suggested(ctx context.Context, repo Repo, entity *Entity, guidance string) (string, bool) {
	log := clog.FromContext(ctx)

	branches, err := r.hosting.ListBranches(ctx, repo)
	if err != nil {
		log.With("error", err).Debug("Listing branches for advisor failed, falling back")
		return "", false
	}

	req := SuggestRequest{
		Guidance: guidance,
		Branches: branches,
	}
	if entity != nil {
		req.Title = entity.Title
		req.Body = entity.Body
	}

	return r.advisor.SuggestBranch(ctx, req)
}
