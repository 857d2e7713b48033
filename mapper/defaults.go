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

package mapper

import (
	"net/http"

	"github.com/kukalajet/kismet/tag"
	"google.golang.org/grpc/codes"
)

// defaultHTTP defines the library's built-in HTTP mappings for the
// conventional tags shipped by kismet/tag. These are only defaults: domains
// declare their own tags and register rules for them at the boundary where
// HTTP is actually produced (REST gateway, HTTP handler, etc.).
var defaultHTTP = map[tag.Tag]int{
	// 5xx — server / dependency / transient issues.
	tag.Internal:       http.StatusInternalServerError, // Generic internal failure; do not expose internal details.
	tag.UnknownFailure: http.StatusInternalServerError, // Captured raised value with no domain mapping; never a client fault.
	tag.Unavailable:    http.StatusServiceUnavailable,  // Service or a required dependency is temporarily unreachable.
	tag.Timeout:        http.StatusGatewayTimeout,      // Operation exceeded the time budget.
	tag.Canceled:       http.StatusRequestTimeout,      // Caller canceled; integrators may switch to nginx-style 499.

	// 4xx — client/protocol/resource issues.
	tag.Invalid:       http.StatusBadRequest,
	tag.NotFound:      http.StatusNotFound,
	tag.AlreadyExists: http.StatusConflict,
	tag.Conflict:      http.StatusConflict,

	// AuthN / AuthZ.
	tag.Unauthorized: http.StatusUnauthorized,
	tag.Forbidden:    http.StatusForbidden,

	// Rate/quotas.
	tag.RateLimited: http.StatusTooManyRequests,
}

// defaultGRPC defines the library's built-in gRPC mappings for the
// conventional tags. These values align with canonical gRPC status codes
// while preserving the tag's higher-level meaning. As with HTTP, callers may
// override these at the transport edge if a different policy is required.
var defaultGRPC = map[tag.Tag]codes.Code{
	// Internal / server-side / unexpected.
	tag.Internal:       codes.Internal,
	tag.UnknownFailure: codes.Unknown, // Unmapped raised value — canonical "unknown" status.

	// Input / resource state.
	tag.Invalid:       codes.InvalidArgument,
	tag.NotFound:      codes.NotFound,
	tag.AlreadyExists: codes.AlreadyExists,
	tag.Conflict:      codes.Aborted, // General conflict (concurrent updates, etc.).

	// AuthN / AuthZ.
	tag.Unauthorized: codes.Unauthenticated,
	tag.Forbidden:    codes.PermissionDenied,

	// Availability / time / cancellation.
	tag.Unavailable: codes.Unavailable,
	tag.Timeout:     codes.DeadlineExceeded,
	tag.Canceled:    codes.Canceled,

	// Rate/quotas.
	tag.RateLimited: codes.ResourceExhausted,
}
