/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

// Package main runs the event-to-branch pipeline for a single workflow
// invocation: it decodes the triggering webhook payload, normalizes it
// into a canonical descriptor, prepares the branch the agent will operate
// on, and emits the resolved branch names as workflow outputs.
package main

import (
	"context"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"chainguard.dev/issueagent/advisor"
	"chainguard.dev/issueagent/branch"
	"chainguard.dev/issueagent/event"
	"chainguard.dev/issueagent/gitops"
	"chainguard.dev/issueagent/run"
	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
	"github.com/chainguard-dev/clog"
	"github.com/google/go-github/v84/github"
	"github.com/sethvargo/go-envconfig"
	"golang.org/x/oauth2"
)

type config struct {
	GitHubToken string `env:"GITHUB_TOKEN,required"`

	EventName  string `env:"GITHUB_EVENT_NAME,required"`
	EventPath  string `env:"GITHUB_EVENT_PATH,required"`
	Repository string `env:"GITHUB_REPOSITORY,required"`
	Workspace  string `env:"GITHUB_WORKSPACE,default=."`
	OutputPath string `env:"GITHUB_OUTPUT"`

	// Branch lifecycle knobs.
	BaseBranch       string `env:"BASE_BRANCH"`
	BranchPrefix     string `env:"BRANCH_PREFIX,default=claude-"`
	BranchTimestamp  bool   `env:"BRANCH_TIMESTAMP,default=false"`
	UseCommitSigning bool   `env:"USE_COMMIT_SIGNING,default=false"`

	// Advisor configuration; the advisor is enabled only when both a
	// guidance prompt and an API key are present.
	BranchGuidance  string `env:"BRANCH_GUIDANCE"`
	AnthropicAPIKey string `env:"ANTHROPIC_API_KEY"`
	AdvisorModel    string `env:"ADVISOR_MODEL,default=claude-sonnet-4-5"`

	// Trigger configuration passed through to the descriptor.
	TriggerPhrase      string `env:"TRIGGER_PHRASE,default=@claude"`
	TriggerUsername    string `env:"TRIGGER_USERNAME"`
	AssigneeTrigger    string `env:"ASSIGNEE_TRIGGER"`
	LabelTrigger       string `env:"LABEL_TRIGGER"`
	DirectPrompt       string `env:"DIRECT_PROMPT"`
	CustomInstructions string `env:"CUSTOM_INSTRUCTIONS"`
	AllowedTools       string `env:"ALLOWED_TOOLS"`
	DisallowedTools    string `env:"DISALLOWED_TOOLS"`
	StatusCommentID    int64  `env:"STATUS_COMMENT_ID"`
}

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	var cfg config
	if err := envconfig.Process(ctx, &cfg); err != nil {
		clog.FatalContextf(ctx, "processing config: %v", err)
	}

	owner, name, ok := strings.Cut(cfg.Repository, "/")
	if !ok {
		clog.FatalContextf(ctx, "GITHUB_REPOSITORY %q is not owner/name", cfg.Repository)
	}
	repo := branch.Repo{Owner: owner, Name: name}

	payload, err := os.ReadFile(cfg.EventPath)
	if err != nil {
		clog.FatalContextf(ctx, "reading event payload: %v", err)
	}

	raw, err := event.FromWebhook(cfg.EventName, payload, event.Common{
		Repository:         event.Repository{Owner: owner, Name: name},
		StatusCommentID:    cfg.StatusCommentID,
		TriggerPhrase:      cfg.TriggerPhrase,
		TriggerUsername:    cfg.TriggerUsername,
		CustomInstructions: cfg.CustomInstructions,
		AllowedTools:       splitTools(cfg.AllowedTools),
		DisallowedTools:    splitTools(cfg.DisallowedTools),
		DirectPrompt:       cfg.DirectPrompt,
	})
	if err != nil {
		clog.FatalContextf(ctx, "decoding %s event: %v", cfg.EventName, err)
	}
	raw.AssigneeTrigger = cfg.AssigneeTrigger

	tokenSource := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: cfg.GitHubToken})
	hosting := branch.NewGitHubHosting(github.NewClient(nil).WithAuthToken(cfg.GitHubToken))

	git, err := gitops.Open(cfg.Workspace, tokenSource)
	if err != nil {
		clog.FatalContextf(ctx, "opening workspace checkout: %v", err)
	}

	var adv branch.Advisor
	if cfg.BranchGuidance != "" && cfg.AnthropicAPIKey != "" {
		a, err := advisor.New(
			anthropic.NewClient(option.WithAPIKey(cfg.AnthropicAPIKey)),
			advisor.WithModel(cfg.AdvisorModel),
		)
		if err != nil {
			clog.FatalContextf(ctx, "creating advisor: %v", err)
		}
		adv = a
		clog.InfoContextf(ctx, "Branch advisor enabled with model %s", cfg.AdvisorModel)
	}

	manager := branch.NewManager(hosting, git, adv, branch.Config{
		Prefix:        cfg.BranchPrefix,
		ExplicitBase:  cfg.BaseBranch,
		Guidance:      cfg.BranchGuidance,
		WithTimestamp: cfg.BranchTimestamp,
		DeferCreation: cfg.UseCommitSigning,
	})

	result, err := run.New(hosting, manager, repo).Run(ctx, raw)
	if err != nil {
		clog.FatalContextf(ctx, "run failed: %v", err)
	}

	if cfg.OutputPath != "" {
		if err := run.WriteOutputs(cfg.OutputPath, result.Branch); err != nil {
			clog.FatalContextf(ctx, "writing outputs: %v", err)
		}
	}

	clog.InfoContextf(ctx, "Prepared %s run on branch %s (base %s)",
		result.Descriptor.Kind(), result.Branch.CurrentBranch, result.Branch.BaseBranch)
}

func splitTools(s string) []string {
	if s == "" {
		return nil
	}
	var out []string
	for part := range strings.SplitSeq(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
