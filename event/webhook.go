/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package event

import (
	"fmt"

	"github.com/google/go-github/v84/github"
)

// FromWebhook decodes a GitHub webhook payload into a Raw ready for
// Normalize. The event name is the X-GitHub-Event value (GITHUB_EVENT_NAME
// in Actions). Branch fields are left empty; the run fills them in after
// branch setup when the kind requires it.
func FromWebhook(eventName string, payload []byte, common Common) (*Raw, error) {
	ev, err := github.ParseWebHook(eventName, payload)
	if err != nil {
		return nil, fmt.Errorf("parsing %s payload: %w", eventName, err)
	}

	raw := &Raw{
		Kind:   eventName,
		Common: common,
	}

	switch ev := ev.(type) {
	case *github.IssueCommentEvent:
		raw.Action = ev.GetAction()
		raw.Number = ev.GetIssue().GetNumber()
		raw.EntityIsPR = ev.GetIssue().IsPullRequest()
		raw.CommentID = ev.GetComment().GetID()
		raw.CommentBody = ev.GetComment().GetBody()

	case *github.PullRequestReviewCommentEvent:
		raw.Action = ev.GetAction()
		raw.Number = ev.GetPullRequest().GetNumber()
		raw.EntityIsPR = true
		raw.CommentID = ev.GetComment().GetID()
		raw.CommentBody = ev.GetComment().GetBody()

	case *github.PullRequestReviewEvent:
		raw.Action = ev.GetAction()
		raw.Number = ev.GetPullRequest().GetNumber()
		raw.EntityIsPR = true
		raw.ReviewBody = ev.GetReview().GetBody()

	case *github.IssuesEvent:
		raw.Action = ev.GetAction()
		raw.Number = ev.GetIssue().GetNumber()
		raw.Label = ev.GetLabel().GetName()

	case *github.PullRequestEvent:
		raw.Action = ev.GetAction()
		raw.Number = ev.GetPullRequest().GetNumber()
		raw.EntityIsPR = true

	default:
		return nil, &UnsupportedEventError{Kind: eventName}
	}

	return raw, nil
}
