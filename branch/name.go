/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package branch

import (
	"fmt"
	"strings"
	"time"
)

// MaxNameLength is the longest branch name Name will produce. GitHub
// rejects refs longer than 244 bytes.
const MaxNameLength = 244

// timestampLayout is minute-resolution, lowercase, hyphen-delimited and
// zero-padded, so the suffix survives SanitizeRef unchanged.
const timestampLayout = "20060102-1504"

// Name builds the deterministic branch name for an entity:
// {prefix}{kind}-{number}, with a minute-level timestamp suffix when
// withTimestamp is set to reduce collisions across concurrent runs on the
// same entity. The result is always sanitized and bounded.
func Name(prefix, kind string, number int, now time.Time, withTimestamp bool) string {
	name := fmt.Sprintf("%s%s-%d", prefix, kind, number)
	if withTimestamp {
		name += "-" + now.Format(timestampLayout)
	}
	return SanitizeRef(name)
}

// SanitizeRef normalizes a candidate branch name into a valid hosting
// reference: lowercase, alphanumerics and single hyphens only, no leading
// or trailing hyphen, at most MaxNameLength bytes. Sanitizing an already
// sanitized name returns it unchanged.
func SanitizeRef(name string) string {
	var b strings.Builder
	b.Grow(len(name))

	lastHyphen := true // suppresses a leading hyphen
	for _, r := range strings.ToLower(name) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			lastHyphen = false
		default:
			if !lastHyphen {
				b.WriteByte('-')
				lastHyphen = true
			}
		}
	}

	out := b.String()
	if len(out) > MaxNameLength {
		out = out[:MaxNameLength]
	}
	return strings.TrimRight(out, "-")
}
