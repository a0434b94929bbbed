/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package event

// Kind identifies a supported GitHub event kind. The set is closed;
// Normalize rejects anything outside it.
type Kind string

const (
	KindReviewComment Kind = "pull_request_review_comment"
	KindReview        Kind = "pull_request_review"
	KindIssueComment  Kind = "issue_comment"
	KindIssues        Kind = "issues"
	KindPullRequest   Kind = "pull_request"
)

// Issue sub-actions handled by Normalize.
const (
	ActionOpened   = "opened"
	ActionAssigned = "assigned"
	ActionLabeled  = "labeled"
)

// Repository identifies the repository a run operates on.
type Repository struct {
	Owner string
	Name  string
}

// Common carries the fields shared by every descriptor variant. Variants
// embed it by composition; there is no inheritance relationship between
// kinds.
type Common struct {
	Repository Repository

	// StatusCommentID is the identifier of the single status comment the
	// agent continuously updates during a run.
	StatusCommentID int64

	TriggerPhrase   string
	TriggerUsername string

	CustomInstructions string
	AllowedTools       []string
	DisallowedTools    []string

	// DirectPrompt is instruction text supplied out-of-band, bypassing
	// trigger-phrase detection.
	DirectPrompt string

	// WorkingBranch is the resolved branch the agent will commit to. Only
	// populated for kinds validated after branch setup.
	WorkingBranch string
}

// Descriptor is the canonical, validated representation of a triggering
// event. Exactly one variant is active per descriptor; the sealed marker
// keeps the set closed to this package.
type Descriptor interface {
	Kind() Kind
	sealed()
}

// ReviewComment describes a comment left on a pull request diff.
type ReviewComment struct {
	Common
	PRNumber    int
	CommentID   int64
	CommentBody string
}

func (ReviewComment) Kind() Kind { return KindReviewComment }
func (ReviewComment) sealed()    {}

// Review describes a submitted pull request review.
type Review struct {
	Common
	PRNumber   int
	ReviewBody string
}

func (Review) Kind() Kind { return KindReview }
func (Review) sealed()    {}

// Comment describes a conversation comment on an issue or pull request.
// When the entity is an issue, the comment can only be validated after
// branch setup, so IssueNumber, BaseBranch and Common.WorkingBranch are
// required; for pull requests only PRNumber is.
type Comment struct {
	Common
	CommentID   int64
	CommentBody string

	IsPR        bool
	PRNumber    int
	IssueNumber int
	BaseBranch  string
}

func (Comment) Kind() Kind { return KindIssueComment }
func (Comment) sealed()    {}

// IssueOpened describes a freshly opened issue.
type IssueOpened struct {
	Common
	IssueNumber int
}

func (IssueOpened) Kind() Kind { return KindIssues }
func (IssueOpened) sealed()    {}

// IssueAssigned describes an issue assignment. AssigneeTrigger is the
// username whose assignment triggers a run; a DirectPrompt in Common is an
// accepted substitute at construction time.
type IssueAssigned struct {
	Common
	IssueNumber     int
	AssigneeTrigger string
}

func (IssueAssigned) Kind() Kind { return KindIssues }
func (IssueAssigned) sealed()    {}

// IssueLabeled describes a label being added to an issue.
type IssueLabeled struct {
	Common
	IssueNumber  int
	LabelTrigger string
}

func (IssueLabeled) Kind() Kind { return KindIssues }
func (IssueLabeled) sealed()    {}

// PullRequest describes a pull request lifecycle event. Action is carried
// through unvalidated; it is informational only.
type PullRequest struct {
	Common
	PRNumber int
	Action   string
}

func (PullRequest) Kind() Kind { return KindPullRequest }
func (PullRequest) sealed()    {}
