/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

// Package gitops performs the local version-control operations a run
// needs: depth-bounded fetches, checkouts, and branch creation. All
// operations act on the run's own working-directory checkout; nothing here
// touches remote refs beyond fetching them.
package gitops
