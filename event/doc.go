/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

// Package event normalizes GitHub collaboration events into canonical
// descriptors. A Descriptor is one of a closed set of variants, one per
// supported event kind, and each variant enforces its required fields at
// construction: a Descriptor either exists with everything its kind needs,
// or Normalize returns a typed error naming what was missing.
//
// Normalization is a pure function over a Raw payload. FromWebhook is the
// only place that touches GitHub's wire format; it decodes a webhook body
// into a Raw that Normalize can consume.
package event
