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

type prefixRule struct {
	// prefix is the raw, dot-separated tag prefix (may contain "*").
	// It is validated/normalized when we build the trie.
	prefix string
	// val is the numeric transport status to apply when this prefix matches.
	// For HTTP this is the final value; for gRPC we store ints in the builder
	// and convert to codes.Code later.
	val int
}

type builder struct {
	// user-provided adjustments (applied on top of library defaults)

	// httpDefaults holds per-tag HTTP defaults that override library defaults.
	httpDefaults map[tag.Tag]int
	// grpcDefaults holds per-tag gRPC defaults as ints; converted to codes.Code in New().
	grpcDefaults map[tag.Tag]int

	// httpOverride holds exact per-tag HTTP overrides (higher than defaults
	// and prefix rules).
	httpOverride map[tag.Tag]int
	// grpcOverride holds exact per-tag gRPC overrides as ints; converted in New().
	grpcOverride map[tag.Tag]int

	// httpPrefixes holds LPM rules for HTTP, defined as raw prefixRule
	// and later compiled into a segment trie.
	httpPrefixes []prefixRule
	// grpcPrefixes holds LPM rules for gRPC.
	grpcPrefixes []prefixRule

	// global fallbacks used when a tag has no default at all.
	fallbackHTTP int
	fallbackGRPC codes.Code
}

// newBuilder creates an empty builder with maps pre-sized
// to hold typical numbers of entries.
func newBuilder() *builder {
	return &builder{
		// we size the maps roughly to the number of built-in defaults
		httpDefaults: make(map[tag.Tag]int, len(defaultHTTP)),
		grpcDefaults: make(map[tag.Tag]int, len(defaultGRPC)),

		// overrides are usually few
		httpOverride: make(map[tag.Tag]int),
		grpcOverride: make(map[tag.Tag]int),

		// hard fallbacks if the tag was never seen
		fallbackHTTP: http.StatusInternalServerError,
		fallbackGRPC: codes.Internal,
	}
}
