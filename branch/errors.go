/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package branch

import "fmt"

// RefNotFoundError reports that a branch the run must branch from does not
// exist on the remote. Branching from a nonexistent ref is unrecoverable,
// so callers treat this as fatal.
type RefNotFoundError struct {
	Repo   Repo
	Branch string
}

func (e *RefNotFoundError) Error() string {
	return fmt.Sprintf("ref heads/%s not found in %s", e.Branch, e.Repo)
}
