/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package run

import (
	"fmt"
	"os"

	"chainguard.dev/issueagent/branch"
)

// WriteOutputs appends the run's named outputs to the workflow outputs
// file in key=value form. The working branch line is omitted when no new
// branch was created, matching its absence in the branch state.
func WriteOutputs(path string, state *branch.State) error {
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("opening outputs file: %w", err)
	}
	if _, err := fmt.Fprintf(f, "base_branch=%s\n", state.BaseBranch); err != nil {
		f.Close()
		return fmt.Errorf("writing outputs: %w", err)
	}
	if state.WorkingBranch != "" {
		if _, err := fmt.Fprintf(f, "working_branch=%s\n", state.WorkingBranch); err != nil {
			f.Close()
			return fmt.Errorf("writing outputs: %w", err)
		}
	}

	return f.Close()
}
