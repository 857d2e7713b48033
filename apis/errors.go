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

package apis

// TaggedError represents an error carrying a discriminant *tag* — the unit
// of error identity in kismet.
//
// A tag names one variant of a domain's error union, such as:
//   - "NotFound"             — a referenced object does not exist,
//   - "storage.Timeout"      — a storage call exceeded its deadline,
//   - "UnknownFailure"       — a raised value with no domain mapping.
//
// Tags are intended to be stable and enumerable. They are the primary value
// that higher-level adapters (HTTP, gRPC) use to decide which status to
// return to the client, and the key the matcher dispatches on.
//
// Implementations are expected to return a tag already validated by the
// kismet/tag package. Adapters should treat unknown or empty tags as
// internal/server errors.
type TaggedError interface {
	error

	// ErrorTag returns the discriminant tag.
	//
	// The returned value MUST be non-empty and MUST already be valid
	// according to the rules of kismet/tag. Callers should not try to "fix"
	// or "guess" the value here — if it's invalid, it should be handled as
	// an internal error at the boundary.
	ErrorTag() string
}

// FieldedError represents an error that exposes its variant's named payload
// fields. This is what lets adapters serialize a fault's payload without
// knowing the concrete error type.
//
// Implementations SHOULD return a slice that is safe to iterate over and
// that will not be modified by the callee. Returning nil is allowed and
// simply means "no payload".
type FieldedError interface {
	error

	// ErrorFields returns the payload fields of the error. May return nil.
	ErrorFields() []Field
}

// CausedError represents an error that exposes its underlying cause.
//
// While Go 1.13 introduced errors.Unwrap, having this interface in apis
// keeps the contract explicit in places where we don't want to depend on
// errors.As / errors.Is directly.
//
// Implementations SHOULD return the direct, immediate cause of the error.
// If there is no underlying cause, they SHOULD return nil.
type CausedError interface {
	error

	// ErrorCause returns the underlying error that triggered this error, if
	// any. May return nil.
	ErrorCause() error
}
