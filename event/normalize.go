/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package event

// Raw is the loosely-typed payload Normalize validates. Fields are
// populated from the webhook body (FromWebhook) and, for issue comments,
// from branch setup before normalization runs. Zero values mean "absent".
type Raw struct {
	Kind   string
	Action string

	// EntityIsPR reports whether the triggering entity is a pull request.
	EntityIsPR bool

	// Number is the issue or pull request number.
	Number int

	CommentID   int64
	CommentBody string
	ReviewBody  string

	// Label is the label name for "labeled" issue actions.
	Label string

	// AssigneeTrigger is the configured assignee username for "assigned"
	// issue actions.
	AssigneeTrigger string

	// BaseBranch is the resolved base branch. Only knowable after branch
	// setup; required for issue comments on issues.
	BaseBranch string

	Common Common
}

// Normalize converts a Raw payload into exactly one canonical descriptor
// variant, or fails with a typed error. It performs no I/O and reads no
// ambient state.
func Normalize(raw *Raw) (Descriptor, error) {
	switch Kind(raw.Kind) {
	case KindReviewComment:
		return normalizeReviewComment(raw)
	case KindReview:
		return normalizeReview(raw)
	case KindIssueComment:
		return normalizeComment(raw)
	case KindIssues:
		return normalizeIssue(raw)
	case KindPullRequest:
		return normalizePullRequest(raw)
	default:
		return nil, &UnsupportedEventError{Kind: raw.Kind}
	}
}

func normalizeReviewComment(raw *Raw) (Descriptor, error) {
	switch {
	case raw.Number == 0:
		return nil, &ValidationError{Event: raw.Kind, Field: "pull request number"}
	case !raw.EntityIsPR:
		return nil, &ValidationError{Event: raw.Kind, Field: "pull request entity"}
	case raw.CommentBody == "":
		return nil, &ValidationError{Event: raw.Kind, Field: "comment body"}
	}

	return ReviewComment{
		Common:      raw.Common,
		PRNumber:    raw.Number,
		CommentID:   raw.CommentID,
		CommentBody: raw.CommentBody,
	}, nil
}

func normalizeReview(raw *Raw) (Descriptor, error) {
	switch {
	case raw.Number == 0:
		return nil, &ValidationError{Event: raw.Kind, Field: "pull request number"}
	case !raw.EntityIsPR:
		return nil, &ValidationError{Event: raw.Kind, Field: "pull request entity"}
	case raw.ReviewBody == "":
		return nil, &ValidationError{Event: raw.Kind, Field: "review body"}
	}

	return Review{
		Common:     raw.Common,
		PRNumber:   raw.Number,
		ReviewBody: raw.ReviewBody,
	}, nil
}

func normalizeComment(raw *Raw) (Descriptor, error) {
	switch {
	case raw.CommentID == 0:
		return nil, &ValidationError{Event: raw.Kind, Field: "comment id"}
	case raw.CommentBody == "":
		return nil, &ValidationError{Event: raw.Kind, Field: "comment body"}
	}

	c := Comment{
		Common:      raw.Common,
		CommentID:   raw.CommentID,
		CommentBody: raw.CommentBody,
		IsPR:        raw.EntityIsPR,
	}

	if raw.EntityIsPR {
		if raw.Number == 0 {
			return nil, &ValidationError{Event: raw.Kind, Field: "pull request number"}
		}
		c.PRNumber = raw.Number
		return c, nil
	}

	// Issue comments are validated after branch setup, which is the only
	// point where the working and base branches are knowable.
	switch {
	case raw.Common.WorkingBranch == "":
		return nil, &ValidationError{Event: raw.Kind, Field: "working branch"}
	case raw.BaseBranch == "":
		return nil, &ValidationError{Event: raw.Kind, Field: "base branch"}
	case raw.Number == 0:
		return nil, &ValidationError{Event: raw.Kind, Field: "issue number"}
	}
	c.IssueNumber = raw.Number
	c.BaseBranch = raw.BaseBranch
	return c, nil
}

func normalizeIssue(raw *Raw) (Descriptor, error) {
	if raw.Number == 0 {
		return nil, &ValidationError{Event: raw.Kind, Field: "issue number"}
	}

	switch raw.Action {
	case ActionAssigned:
		if raw.AssigneeTrigger == "" && raw.Common.DirectPrompt == "" {
			return nil, &ValidationError{Event: raw.Kind, Field: "assignee trigger"}
		}
		return IssueAssigned{
			Common:          raw.Common,
			IssueNumber:     raw.Number,
			AssigneeTrigger: raw.AssigneeTrigger,
		}, nil

	case ActionLabeled:
		if raw.Label == "" {
			return nil, &ValidationError{Event: raw.Kind, Field: "label trigger"}
		}
		return IssueLabeled{
			Common:       raw.Common,
			IssueNumber:  raw.Number,
			LabelTrigger: raw.Label,
		}, nil

	case ActionOpened:
		return IssueOpened{
			Common:      raw.Common,
			IssueNumber: raw.Number,
		}, nil

	default:
		return nil, &UnsupportedActionError{Kind: raw.Kind, Action: raw.Action}
	}
}

func normalizePullRequest(raw *Raw) (Descriptor, error) {
	switch {
	case raw.Number == 0:
		return nil, &ValidationError{Event: raw.Kind, Field: "pull request number"}
	case !raw.EntityIsPR:
		return nil, &ValidationError{Event: raw.Kind, Field: "pull request entity"}
	}

	return PullRequest{
		Common:   raw.Common,
		PRNumber: raw.Number,
		Action:   raw.Action,
	}, nil
}
