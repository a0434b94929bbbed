/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package advisor

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"chainguard.dev/issueagent/branch"
	"github.com/anthropics/anthropic-sdk-go"
	"github.com/chainguard-dev/clog"
)

const (
	defaultModel     = "claude-sonnet-4-5"
	defaultMaxTokens = 256

	// maxListedBranches bounds the request size on repositories with very
	// large branch counts.
	maxListedBranches = 200
)

// Advisor implements branch.Advisor against the Anthropic completion API.
type Advisor struct {
	client    anthropic.Client
	model     string
	maxTokens int64
	metrics   *tokenMetrics
}

var _ branch.Advisor = (*Advisor)(nil)

// Option configures an Advisor.
type Option func(*Advisor) error

// WithModel overrides the model name.
func WithModel(model string) Option {
	return func(a *Advisor) error {
		if !strings.HasPrefix(model, "claude-") {
			return fmt.Errorf("model %q does not appear to be a Claude model (expected claude-* format)", model)
		}
		a.model = model
		return nil
	}
}

// WithMaxTokens bounds the completion size.
func WithMaxTokens(tokens int64) Option {
	return func(a *Advisor) error {
		if tokens <= 0 {
			return fmt.Errorf("max tokens must be positive, got %d", tokens)
		}
		a.maxTokens = tokens
		return nil
	}
}

// New constructs an Advisor around a configured Anthropic client.
func New(client anthropic.Client, opts ...Option) (*Advisor, error) {
	a := &Advisor{
		client:    client,
		model:     defaultModel,
		maxTokens: defaultMaxTokens,
		metrics:   newTokenMetrics("chainguard.ai.issueagent"),
	}
	for _, opt := range opts {
		if err := opt(a); err != nil {
			return nil, fmt.Errorf("applying option: %w", err)
		}
	}
	return a, nil
}

// SuggestBranch proposes an existing branch for the request. The answer is
// discarded unless it exactly names a branch from req.Branches; no error
// ever escapes this boundary.
func (a *Advisor) SuggestBranch(ctx context.Context, req branch.SuggestRequest) (string, bool) {
	log := clog.FromContext(ctx)

	if len(req.Branches) == 0 {
		log.Debug("Advisor has no branches to choose from")
		return "", false
	}

	message, err := a.client.Messages.New(ctx, anthropic.MessageNewParams{
		Model:     anthropic.Model(a.model),
		MaxTokens: a.maxTokens,
		System: []anthropic.TextBlockParam{{
			Text: systemPrompt(req),
		}},
		Messages: []anthropic.MessageParam{{
			Role: anthropic.MessageParamRoleUser,
			Content: []anthropic.ContentBlockParamUnion{
				anthropic.NewTextBlock(userPrompt(req)),
			},
		}},
	})
	if err != nil {
		log.With("error", err).Debug("Advisor request failed, falling back")
		return "", false
	}

	if message.Usage.InputTokens > 0 || message.Usage.OutputTokens > 0 {
		a.metrics.record(ctx, a.model, message.Usage.InputTokens, message.Usage.OutputTokens)
	}

	candidate := extractCandidate(message)
	if candidate == "" {
		log.Debug("Advisor returned no candidate")
		return "", false
	}

	// Never trust a name the remote does not already have; an unknown
	// suggestion must not be created blindly.
	if !slices.Contains(req.Branches, candidate) {
		log.With("candidate", candidate).Debug("Advisor suggestion not in branch list, discarding")
		return "", false
	}

	return candidate, true
}

// systemPrompt combines the caller guidance with the live branch list and
// entity context.
func systemPrompt(req branch.SuggestRequest) string {
	var b strings.Builder
	b.WriteString("You select the single most appropriate existing git branch to base new work on.\n\n")

	if req.Guidance != "" {
		b.WriteString(req.Guidance)
		b.WriteString("\n\n")
	}

	b.WriteString("Existing branches:\n")
	branches := req.Branches
	if len(branches) > maxListedBranches {
		branches = branches[:maxListedBranches]
	}
	for _, name := range branches {
		fmt.Fprintf(&b, "- %s\n", name)
	}

	b.WriteString("\nReply with exactly one branch name from the list above and nothing else. ")
	b.WriteString("If none applies, reply with an empty message.")
	return b.String()
}

func userPrompt(req branch.SuggestRequest) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Title: %s\n", req.Title)
	if req.Body != "" {
		fmt.Fprintf(&b, "\n%s\n", req.Body)
	}
	return b.String()
}

// extractCandidate pulls a single branch name out of the response text,
// tolerating surrounding whitespace and backticks.
func extractCandidate(message *anthropic.Message) string {
	var text string
	for _, content := range message.Content {
		if content.Type == "text" {
			text = content.Text
			break
		}
	}

	line, _, _ := strings.Cut(strings.TrimSpace(text), "\n")
	return strings.Trim(strings.TrimSpace(line), "`")
}
