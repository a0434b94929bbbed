/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package event

import "fmt"

// ValidationError reports a required field that was absent for the event
// variant being constructed. It always names both the field and the event
// kind so run logs are actionable without replaying the payload.
type ValidationError struct {
	Event string
	Field string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s event is missing required field %q", e.Event, e.Field)
}

// UnsupportedEventError reports an event kind outside the supported set.
type UnsupportedEventError struct {
	Kind string
}

func (e *UnsupportedEventError) Error() string {
	return fmt.Sprintf("unsupported event kind %q", e.Kind)
}

// UnsupportedActionError reports a sub-action the system does not handle
// for an otherwise supported event kind.
type UnsupportedActionError struct {
	Kind   string
	Action string
}

func (e *UnsupportedActionError) Error() string {
	return fmt.Sprintf("unsupported action %q for %s event", e.Action, e.Kind)
}
