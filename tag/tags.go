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

package tag

// Reserved tags
//
// These tags have special meaning inside kismet itself. Applications may
// match on them but should not redefine them.
const (
	// UnknownFailure is the reserved discriminant for "an exception was
	// caught but no domain-specific mapping was supplied".
	//
	// It is stamped by the wrapping constructors (kismet.Wrap and friends)
	// when a computation returns a plain Go error or panics and the caller
	// did not provide a custom mapping. The resulting fault retains the
	// original raised value as its cause and carries a best-effort message.
	//
	// Because it participates in exhaustive matching like any other tag,
	// callers handling wrapped computations must either map raised values
	// to domain tags up front or supply a handler for UnknownFailure.
	UnknownFailure Tag = "UnknownFailure"
)

// Conventional domain tags
//
// Nothing in kismet requires these: any valid tag can discriminate a fault.
// They exist so that independent services converge on the same spelling for
// the most common failure modes, and so that the transport mapper can ship
// sensible defaults for them.
const (
	// Internal indicates an internal, non-classified failure.
	// Use this as the fallback when no more specific domain tag applies.
	// The root cause is typically attached as the fault cause.
	//
	// The transport mapper defaults this to HTTP 500.
	Internal Tag = "Internal"

	// Invalid indicates that an input value, entity, or payload violates
	// a structural or semantic invariant.
	//
	// The transport mapper defaults this to HTTP 400.
	Invalid Tag = "Invalid"

	// NotFound indicates that the requested entity does not exist in the
	// current domain scope or storage.
	// Use this for lookups by ID, name, key, or reference.
	//
	// The transport mapper defaults this to HTTP 404.
	NotFound Tag = "NotFound"

	// AlreadyExists indicates that the target entity cannot be created
	// because an entity with the same primary identity already exists.
	//
	// The transport mapper defaults this to HTTP 409.
	AlreadyExists Tag = "AlreadyExists"

	// Conflict indicates a domain-state conflict or uniqueness violation:
	// version mismatches, concurrent updates, and collisions that are not
	// strictly "already exists" cases.
	//
	// The transport mapper defaults this to HTTP 409.
	Conflict Tag = "Conflict"

	// Unauthorized indicates that the caller is not authenticated or the
	// authentication context could not be established.
	//
	// The transport mapper defaults this to HTTP 401.
	Unauthorized Tag = "Unauthorized"

	// Forbidden indicates that the caller is authenticated but does not
	// have sufficient privileges to perform the target operation.
	//
	// The transport mapper defaults this to HTTP 403.
	Forbidden Tag = "Forbidden"

	// Timeout indicates that the operation could not complete within the
	// allotted time budget. The cause may be context.DeadlineExceeded or
	// similar.
	//
	// The transport mapper defaults this to HTTP 504.
	Timeout Tag = "Timeout"

	// Canceled indicates that the operation was explicitly canceled by
	// the caller or by context propagation.
	//
	// The transport mapper defaults this to HTTP 408.
	Canceled Tag = "Canceled"

	// Unavailable indicates that a required downstream dependency or
	// service is temporarily unreachable.
	//
	// The transport mapper defaults this to HTTP 503.
	Unavailable Tag = "Unavailable"

	// RateLimited indicates that the caller has exceeded the allowed
	// request or action rate in the current time window.
	//
	// The transport mapper defaults this to HTTP 429.
	RateLimited Tag = "RateLimited"
)
