/*
   Copyright 2025 The Kismet Authors

   Licensed under the Apache License, Version 2.0 (the "License");
   you may not use this file except in compliance with the License.
   You may obtain a copy of the License at

       http://www.apache.org/licenses/LICENSE-2.0

   Unless required by applicable law or agreed to in writing, software
   distributed under the License is distributed on an "AS IS" BASIS,
   WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
   See the License for the specific language governing permissions and
   limitations under the License.
*/

package kismet

import (
	"fmt"

	"github.com/kukalajet/kismet/tag"
)

// Fault is the canonical tagged failure variant of kismet.
//
// It carries:
//   - Tag: the discriminant identifying which variant of the error union
//     this fault is (required);
//   - Message: human-oriented description (what went wrong);
//   - Fields: the variant's named payload fields;
//   - Cause: wrapped underlying error for debugging / unwrapping.
//
// The Tag uniquely determines which payload fields are present; it is set at
// construction and never changes afterwards. All mutation helpers (WithX)
// return a shallow copy, so Fault instances can be safely shared and
// modified in a functional style.
type Fault struct {
	// Tag is the discriminant of the fault, e.g. "NotFound",
	// "storage.Timeout". Must be a validated tag from kismet/tag.
	Tag tag.Tag

	// Message is a human-readable explanation. This is what should end up
	// in logs or in the "message" field of an HTTP error response.
	Message string

	// Fields is the variant's payload: named values whose presence and
	// meaning are fixed by the Tag (e.g. {"id": "123"} for a NotFound).
	// The map is treated as immutable: WithField/WithFields always copy it.
	Fields map[string]any

	// Cause holds the wrapped underlying error (if any). This is used for
	// errors.Is / errors.As and for debugging in lower layers.
	Cause error
}

// NewFault is a convenience constructor for Fault.
//
// Usage:
//
//	return kismet.NewFault(tag.NotFound,
//	    kismet.WithMessageOption("user does not exist"),
//	    kismet.WithFieldOption("id", "123"),
//	)
//
// It always returns a *new* Fault and applies all provided options in order.
func NewFault(t tag.Tag, opts ...FaultOption) *Fault {
	f := &Fault{Tag: t}
	for _, opt := range opts {
		f = opt(f)
	}
	return f
}

// Unknown builds the reserved UnknownFailure fault from a raised error.
//
// It retains the original error as the cause and derives a best-effort
// message from it. This is what the wrapping constructors stamp when the
// caller supplied no domain-specific mapping.
func Unknown(cause error) *Fault {
	f := &Fault{Tag: tag.UnknownFailure, Cause: cause}
	if cause != nil {
		f.Message = cause.Error()
	}
	return f
}

// UnknownValue builds the reserved UnknownFailure fault from an arbitrary
// raised value (e.g. a recovered panic value that is not an error).
//
// If the value is an error it behaves exactly like Unknown; otherwise the
// value is preserved in the "value" payload field and the message is its
// default formatting.
func UnknownValue(v any) *Fault {
	if err, ok := v.(error); ok {
		return Unknown(err)
	}
	return &Fault{
		Tag:     tag.UnknownFailure,
		Message: fmt.Sprint(v),
		Fields:  map[string]any{"value": v},
	}
}

// Error implements the built-in error interface.
//
// The format is:
//
//	<tag>: <message>
//
// or, when Message is empty, just the tag. This makes the fault both human-
// and machine-scannable in logs.
func (f *Fault) Error() string {
	if f == nil {
		return "<nil>"
	}
	if f.Message != "" {
		return fmt.Sprintf("%s: %s", f.Tag, f.Message)
	}
	return string(f.Tag)
}

// Unwrap returns the underlying cause, enabling errors.Is / errors.As chains.
func (f *Fault) Unwrap() error { return f.Cause }

// ErrorTag returns the discriminant as a string.
//
// This satisfies the apis.TaggedError contract without the root package
// having to import apis, so transport adapters can recognize kismet faults
// behind plain error values.
func (f *Fault) ErrorTag() string { return string(f.Tag) }

// ErrorCause returns the wrapped underlying error, satisfying the
// apis.CausedError contract. May return nil.
func (f *Fault) ErrorCause() error { return f.Cause }

// Field returns the named payload field and whether it is present.
func (f *Fault) Field(name string) (any, bool) {
	v, ok := f.Fields[name]
	return v, ok
}

// WithMessage returns a shallow copy of f with a replaced human message.
// Useful when you want to keep the Tag and payload but present the message
// in a different language or context.
func (f *Fault) WithMessage(msg string) *Fault {
	cp := *f
	cp.Message = msg
	return &cp
}

// WithField returns a shallow copy of f with one extra payload field.
//
// The method always copies the map to preserve immutability. This prevents
// surprising modifications across goroutines or shared fault values.
func (f *Fault) WithField(k string, v any) *Fault {
	cp := *f
	// No payload yet — create a new single-entry map.
	if len(cp.Fields) == 0 {
		cp.Fields = map[string]any{k: v}
		return &cp
	}
	// Copy existing payload and add one more.
	m := make(map[string]any, len(cp.Fields)+1)
	for k0, v0 := range cp.Fields {
		m[k0] = v0
	}
	m[k] = v
	cp.Fields = m
	return &cp
}

// WithFields returns a shallow copy of f with all provided kv merged into
// the payload.
//
// If the Fault already has Fields, both maps are copied and merged,
// with kv taking precedence on key conflicts.
func (f *Fault) WithFields(kv map[string]any) *Fault {
	if len(kv) == 0 {
		return f
	}
	cp := *f
	// No existing payload — just copy kv.
	if len(cp.Fields) == 0 {
		m := make(map[string]any, len(kv))
		for k, v := range kv {
			m[k] = v
		}
		cp.Fields = m
		return &cp
	}
	// Merge existing + new.
	m := make(map[string]any, len(cp.Fields)+len(kv))
	for k0, v0 := range cp.Fields {
		m[k0] = v0
	}
	for k, v := range kv {
		m[k] = v
	}
	cp.Fields = m
	return &cp
}

// WithCause returns a shallow copy of f with the given underlying cause
// attached. If err is nil, the original fault is returned unchanged.
func (f *Fault) WithCause(err error) *Fault {
	if err == nil {
		return f
	}
	cp := *f
	cp.Cause = err
	return &cp
}
