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

// Package mapper provides deterministic, immutable mappings from kismet
// fault tags to transport-level statuses for HTTP and gRPC.
//
// # Overview
//
// A fault's tag is a dot-separated, hierarchical discriminant (e.g.
// "NotFound", "storage.pg.Timeout"). Transport layers (HTTP handlers, REST
// gateways, gRPC servers) need to turn a tag into concrete status codes.
// Package mapper does that in a way that is:
//
//   - immutable — a Mapper is a snapshot, safe for concurrent reuse;
//   - overridable — callers can change library defaults per tag;
//   - prefix-aware — callers can add fine-grained rules for tag namespaces;
//   - dual — HTTP and gRPC are resolved with the same logic.
//
// # Resolution model
//
// A Mapper resolves statuses in the following order:
//
//  1. exact override for the tag;
//  2. longest-prefix-match (LPM) on the tag's dotted namespace;
//  3. per-tag default (library or user-adjusted);
//  4. global fallback (500 / codes.Internal).
//
// Prefix rules are segment-aware: tags are treated as "."-separated
// segments, and "*" matches exactly one segment. For example:
//
//	WithHTTPPrefix("storage.pg", http.StatusServiceUnavailable)
//	WithHTTPPrefix("storage.*.Timeout", http.StatusGatewayTimeout)
//
// The more specific prefix wins.
//
// # Library defaults
//
// The package ships with defaults for the conventional tags in kismet/tag,
// mapping them to standard net/http constants and grpc/codes values (e.g.
// tag.Invalid -> 400 / InvalidArgument, tag.Unauthorized -> 401 /
// Unauthenticated, tag.UnknownFailure -> 500 / Unknown). These can be
// adjusted at build time.
//
// # Building a mapper
//
// A Mapper is created once and reused:
//
//	m, err := mapper.New(
//	    mapper.WithHTTPOverride(tag.Canceled, 499),       // nginx-style
//	    mapper.WithHTTPPrefix("storage.pg", 503),
//	)
//	if err != nil {
//	    // invalid prefix, etc.
//	}
//
//	st := m.Status("storage.pg.Timeout")
//	// st.HTTP == 503, st.GRPC == codes.DeadlineExceeded
//
// Options can also be loaded from configuration via FromViper.
//
// # Diagnostics
//
// For debugging and tests, Mapper.Explain returns a human-readable trace of
// how a particular tag was resolved, including which tier matched and, for
// prefixes, which pattern was used.
//
// This is intended for inspection and logging, not for stable machine
// parsing.
//
// # Immutability
//
// All user-provided inputs are copied during New. After construction, the
// Mapper does not observe further changes to the caller's maps or slices.
// This makes it safe to share a single instance across handlers, goroutines,
// and requests.
package mapper
