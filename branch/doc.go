/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

// Package branch decides which branch a run operates on. A Manager looks
// at the triggering entity and its state: open pull requests get their
// head branch fetched and checked out; everything else (issues, closed or
// merged pull requests) gets a fresh deterministic branch created from a
// base branch resolved through an ordered fallback chain (explicit
// configuration, then an optional AI suggestion validated against the real
// branch list, then the repository default).
//
// The package consumes its collaborators as small interfaces: Hosting for
// the GitHub API surface it reads, Git for local checkout operations, and
// Advisor for AI branch suggestions. The gitops and advisor packages
// provide the concrete implementations.
package branch
