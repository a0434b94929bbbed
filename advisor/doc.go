/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

// Package advisor asks Claude to pick an existing branch to base work on.
// It is an optional enhancement on the base-branch resolution chain: a
// single bounded completion request whose answer is only trusted when it
// names a branch from the live branch list. Every internal failure,
// including missing credentials and API errors, is converted into "no
// suggestion" so the caller can degrade to the repository default.
package advisor
