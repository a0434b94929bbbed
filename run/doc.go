/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

// Package run wires a single automation run together: normalize the
// triggering event, set up the branch the agent will operate on, and emit
// the run outputs downstream stages consume.
//
// Issue comments on issues are the one kind validated after branch setup,
// because their required working and base branches only exist once setup
// has run. Every other kind is validated first.
package run
