/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package branch

import (
	"context"
	"fmt"
	"net/http"

	"github.com/google/go-github/v84/github"
)

// GitHubHosting implements Hosting against the GitHub REST API.
type GitHubHosting struct {
	gh *github.Client
}

// NewGitHubHosting wraps a configured go-github client.
func NewGitHubHosting(gh *github.Client) *GitHubHosting {
	return &GitHubHosting{gh: gh}
}

var _ Hosting = (*GitHubHosting)(nil)

// Entity fetches the triggering issue or pull request snapshot.
func (h *GitHubHosting) Entity(ctx context.Context, repo Repo, number int, isPR bool) (*Entity, error) {
	if isPR {
		pr, _, err := h.gh.PullRequests.Get(ctx, repo.Owner, repo.Name, number)
		if err != nil {
			return nil, fmt.Errorf("fetching pull request %s#%d: %w", repo, number, err)
		}
		return &Entity{
			Number:  pr.GetNumber(),
			IsPR:    true,
			State:   pr.GetState(),
			Merged:  pr.GetMerged(),
			HeadRef: pr.GetHead().GetRef(),
			BaseRef: pr.GetBase().GetRef(),
			Commits: pr.GetCommits(),
			Title:   pr.GetTitle(),
			Body:    pr.GetBody(),
		}, nil
	}

	issue, _, err := h.gh.Issues.Get(ctx, repo.Owner, repo.Name, number)
	if err != nil {
		return nil, fmt.Errorf("fetching issue %s#%d: %w", repo, number, err)
	}
	return &Entity{
		Number: issue.GetNumber(),
		State:  issue.GetState(),
		Title:  issue.GetTitle(),
		Body:   issue.GetBody(),
	}, nil
}

// DefaultBranch returns the repository's current default branch.
func (h *GitHubHosting) DefaultBranch(ctx context.Context, repo Repo) (string, error) {
	r, _, err := h.gh.Repositories.Get(ctx, repo.Owner, repo.Name)
	if err != nil {
		return "", fmt.Errorf("fetching repository %s: %w", repo, err)
	}
	return r.GetDefaultBranch(), nil
}

// ListBranches returns all branch names, paginating as needed.
func (h *GitHubHosting) ListBranches(ctx context.Context, repo Repo) ([]string, error) {
	opts := &github.BranchListOptions{
		ListOptions: github.ListOptions{PerPage: 100},
	}

	var names []string
	for {
		branches, resp, err := h.gh.Repositories.ListBranches(ctx, repo.Owner, repo.Name, opts)
		if err != nil {
			return nil, fmt.Errorf("listing branches for %s: %w", repo, err)
		}
		for _, b := range branches {
			names = append(names, b.GetName())
		}
		if resp.NextPage == 0 {
			return names, nil
		}
		opts.Page = resp.NextPage
	}
}

// ResolveRef returns the SHA of refs/heads/<branch>. A 404 from the API is
// reported as *RefNotFoundError so callers can treat it as fatal.
func (h *GitHubHosting) ResolveRef(ctx context.Context, repo Repo, branch string) (string, error) {
	ref, resp, err := h.gh.Git.GetRef(ctx, repo.Owner, repo.Name, "heads/"+branch)
	if err != nil {
		if resp != nil && resp.StatusCode == http.StatusNotFound {
			return "", &RefNotFoundError{Repo: repo, Branch: branch}
		}
		return "", fmt.Errorf("resolving ref heads/%s in %s: %w", branch, repo, err)
	}
	return ref.GetObject().GetSHA(), nil
}
