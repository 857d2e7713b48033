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
	"github.com/kukalajet/kismet/tag"
	"google.golang.org/grpc/codes"
)

// Option configures the Mapper at build time.
// All options are applied to an internal builder and then frozen into
// an immutable Mapper.
type Option func(*builder)

// WithHTTPDefault sets or replaces the library-level default HTTP status
// for the given tag. This affects the fallback value used when no prefix
// rule or exact override matches.
func WithHTTPDefault(t tag.Tag, http int) Option {
	return func(b *builder) { b.httpDefaults[t] = http }
}

// WithGRPCDefault sets or replaces the library-level default gRPC status
// for the given tag. This affects the fallback value used when no prefix
// rule or exact override matches.
func WithGRPCDefault(t tag.Tag, grpc int) Option {
	return func(b *builder) { b.grpcDefaults[t] = grpc }
}

// WithHTTPOverride registers an exact HTTP override for the given tag.
// Overrides take precedence over both defaults and prefix (LPM) rules.
func WithHTTPOverride(t tag.Tag, http int) Option {
	return func(b *builder) { b.httpOverride[t] = http }
}

// WithGRPCOverride registers an exact gRPC override for the given tag.
// Overrides take precedence over both defaults and prefix (LPM) rules.
func WithGRPCOverride(t tag.Tag, grpc int) Option {
	return func(b *builder) { b.grpcOverride[t] = grpc }
}

// WithHTTPPrefix adds an HTTP longest-prefix-match rule. The rule is
// evaluated against the fault tag (dot-separated). A more specific prefix
// wins. Use "*" to match a single segment.
func WithHTTPPrefix(prefix string, http int) Option {
	return func(b *builder) { b.httpPrefixes = append(b.httpPrefixes, prefixRule{prefix, http}) }
}

// WithGRPCPrefix adds a gRPC longest-prefix-match rule. The rule is
// evaluated against the fault tag (dot-separated). A more specific prefix
// wins. Use "*" to match a single segment.
func WithGRPCPrefix(prefix string, grpc int) Option {
	return func(b *builder) { b.grpcPrefixes = append(b.grpcPrefixes, prefixRule{prefix, grpc}) }
}

// WithFallback replaces the ultimate fallback statuses used for tags the
// mapper has never heard of. Zero values keep the built-in fallback
// (500 / codes.Internal).
func WithFallback(http int, grpc codes.Code) Option {
	return func(b *builder) {
		if http != 0 {
			b.fallbackHTTP = http
		}
		if grpc != 0 {
			b.fallbackGRPC = grpc
		}
	}
}
