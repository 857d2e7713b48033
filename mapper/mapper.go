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
	"fmt"
	"strings"

	"github.com/kukalajet/kismet/apis"
	"github.com/kukalajet/kismet/mapper/internal/segmenttrie"
	"github.com/kukalajet/kismet/tag"
	"google.golang.org/grpc/codes"
)

// New constructs an immutable apis.Mapper snapshot.
//
// The resulting apis.Mapper is fully thread-safe and designed for long-lived reuse.
// Each build creates a self-contained mapper instance — no shared references
// to global state or user-provided structures remain.
//
// Build process overview:
//
//  1. Seed the builder with library defaults (HTTP & gRPC).
//  2. Apply user-provided options (defaults, overrides, prefix rules).
//  3. Normalize and validate all tag prefixes.
//  4. Build the segment tries (HTTP & gRPC) supporting longest-prefix-match
//     with '*' as a single-segment wildcard.
//  5. Freeze all maps and tries into immutable copies (fresh allocations).
//
// Errors returned from this function indicate invalid prefixes or configuration
// issues during normalization or trie construction.
func New(opts ...Option) (apis.Mapper, error) {
	// (0) Start with an empty builder.
	b := newBuilder()

	// (1) Seed the builder with package-level defaults.
	// Copy into builder-owned maps to prevent external mutation.
	for k, v := range defaultHTTP {
		b.httpDefaults[k] = v
	}
	for k, v := range defaultGRPC {
		// Keep values as int for internal uniformity;
		// convert to codes.Code when freezing the final snapshot.
		b.grpcDefaults[k] = int(v)
	}

	// (2) Apply user-supplied options (defaults, overrides, prefixes, etc.).
	for _, opt := range opts {
		opt(b)
	}

	// (3) Build the HTTP prefix trie.
	// Each rule prefix is normalized and validated before insertion.
	var httpTrie *segmenttrie.Trie[int]
	if len(b.httpPrefixes) > 0 {
		httpTrie = segmenttrie.New[int]()
		for _, r := range b.httpPrefixes {
			p, err := normalizeAndValidatePrefix(r.prefix)
			if err != nil {
				return nil, fmt.Errorf("mapper: invalid HTTP tag-prefix %q: %w", r.prefix, err)
			}
			if err := httpTrie.Insert(p, r.val); err != nil {
				return nil, fmt.Errorf("mapper: cannot insert HTTP prefix %q: %w", p, err)
			}
		}
	}

	// (4) Build the gRPC prefix trie.
	// Values are stored as int in the builder and converted to codes.Code here.
	var grpcTrie *segmenttrie.Trie[codes.Code]
	if len(b.grpcPrefixes) > 0 {
		grpcTrie = segmenttrie.New[codes.Code]()
		for _, r := range b.grpcPrefixes {
			p, err := normalizeAndValidatePrefix(r.prefix)
			if err != nil {
				return nil, fmt.Errorf("mapper: invalid gRPC tag-prefix %q: %w", r.prefix, err)
			}
			if err := grpcTrie.Insert(p, codes.Code(r.val)); err != nil {
				return nil, fmt.Errorf("mapper: cannot insert gRPC prefix %q: %w", p, err)
			}
		}
	}

	// (5) Freeze everything into a read-only snapshot.
	// Each map is freshly allocated; tries are immutable after build.
	m := &mapper{
		httpDefault:  freezeHTTP(b.httpDefaults),
		grpcDefault:  freezeGRPC(b.grpcDefaults),
		httpOverride: freezeHTTP(b.httpOverride),
		grpcOverride: freezeGRPC(b.grpcOverride),
		httpTrie:     httpTrie,
		grpcTrie:     grpcTrie,

		fallbackHTTP: b.fallbackHTTP,
		fallbackGRPC: b.fallbackGRPC,
	}

	return m, nil
}

// mapper is an immutable mapper implementation that combines per-tag
// defaults, exact overrides, and a segment-aware prefix trie over the tag's
// dot-separated namespace. Lookups are O(depth) and safe for concurrent use
// once constructed.
type mapper struct {
	// httpDefault holds the base HTTP status for a given tag.
	// Used when no prefix rule and no override are present.
	httpDefault map[tag.Tag]int

	// grpcDefault holds the base gRPC status for a given tag.
	grpcDefault map[tag.Tag]codes.Code

	// httpOverride holds explicit HTTP statuses for specific tags.
	// These take precedence over both prefix rules and defaults.
	httpOverride map[tag.Tag]int

	// grpcOverride holds explicit gRPC statuses for specific tags.
	grpcOverride map[tag.Tag]codes.Code

	// httpTrie resolves HTTP statuses based on tag prefixes
	// (dot-separated, with "*" for one-segment wildcards). May be nil.
	httpTrie *segmenttrie.Trie[int]

	// grpcTrie resolves gRPC statuses based on tag prefixes. May be nil.
	grpcTrie *segmenttrie.Trie[codes.Code]

	// fallbackHTTP is used when there is no rule at all for a tag.
	// Typically http.StatusInternalServerError.
	fallbackHTTP int

	// fallbackGRPC is used when there is no rule at all for a tag.
	// Typically codes.Internal.
	fallbackGRPC codes.Code
}

// HTTPStatus resolves an HTTP status for the given tag.
//
// Resolution order (highest to lowest):
//  1. exact per-tag override (explicitly registered);
//  2. longest-prefix-match rule on the tag's namespace;
//  3. per-tag default (library or user overridden);
//  4. hardcoded ultimate fallback (500).
//
// The tag is treated as a dot-separated string for prefix matching.
func (m *mapper) HTTPStatus(t tag.Tag) int {
	// 1. Fast path: exact override for this tag.
	if v, ok := m.httpOverride[t]; ok {
		return v
	}

	// 2. Prefix LPM over the tag.
	if m.httpTrie != nil {
		if v, ok := m.httpTrie.Match(string(t)); ok {
			return v
		}
	}

	// 3. Per-tag default.
	if v, ok := m.httpDefault[t]; ok {
		return v
	}

	// 4. Ultimate fallback: HTTP must never be zero.
	return m.fallbackHTTP
}

// GRPCStatus resolves a gRPC status for the given tag.
// Uses the same precedence as HTTPStatus, but returns gRPC codes.
//
// Resolution order:
//  1. exact per-tag override;
//  2. LPM on the tag's namespace;
//  3. per-tag default;
//  4. hardcoded fallback (codes.Internal).
func (m *mapper) GRPCStatus(t tag.Tag) codes.Code {
	// 1. Exact override.
	if v, ok := m.grpcOverride[t]; ok {
		return v
	}

	// 2. Trie-based LPM.
	if m.grpcTrie != nil {
		if v, ok := m.grpcTrie.Match(string(t)); ok {
			return v
		}
	}

	// 3. Default for this tag.
	if v, ok := m.grpcDefault[t]; ok {
		return v
	}

	// 4. Ultimate fallback.
	return m.fallbackGRPC
}

// Status resolves both HTTP and gRPC using the same inputs.
// This keeps HTTP/gRPC decisions consistent for a single logical fault.
func (m *mapper) Status(t tag.Tag) apis.Status {
	return apis.Status{
		HTTP: m.HTTPStatus(t),
		GRPC: m.GRPCStatus(t),
	}
}

// Explain produces a textual trace of how the mapper resolved HTTP and gRPC
// statuses for a particular tag.
//
// This is primarily a diagnostic tool: it shows which tier matched
// (override, prefix, default, or fallback) and, for prefix matches,
// which pattern was used.
//
// Example output:
//
//	tag="storage.pg.Timeout"
//	http: source=prefix pattern="storage.pg" -> 503
//	grpc: source=default -> UNAVAILABLE(14)
//
// Notes:
//   - source ∈ {override | prefix | default | fallback}
//   - pattern is the rule as it was stored in the trie (may contain "*")
func (m *mapper) Explain(t tag.Tag) string {
	var b strings.Builder
	_, _ = fmt.Fprintf(&b, "tag=%q\n", t)
	_, _ = fmt.Fprintln(&b, m.explainHTTP(t))
	_, _ = fmt.Fprintln(&b, m.explainGRPC(t))
	return strings.TrimSuffix(b.String(), "\n")
}

// explainHTTP returns a formatted line describing how the HTTP status was
// chosen: override, prefix, default, or fallback.
func (m *mapper) explainHTTP(t tag.Tag) string {
	// 1) exact override
	if v, ok := m.httpOverride[t]; ok {
		return fmt.Sprintf("http: source=override -> %d", v)
	}

	// 2) LPM against the tag
	if m.httpTrie != nil {
		if v, ok, pat := m.httpTrie.MatchWithPattern(string(t)); ok {
			return fmt.Sprintf("http: source=prefix pattern=%q -> %d", pat, v)
		}
	}

	// 3) per-tag default
	if v, ok := m.httpDefault[t]; ok {
		return fmt.Sprintf("http: source=default -> %d", v)
	}

	// 4) global fallback
	return fmt.Sprintf("http: source=fallback -> %d", m.fallbackHTTP)
}

// explainGRPC returns a formatted line describing how the gRPC status was
// chosen: override, prefix, default, or fallback.
func (m *mapper) explainGRPC(t tag.Tag) string {
	// 1) exact override
	if v, ok := m.grpcOverride[t]; ok {
		return fmt.Sprintf("grpc: source=override -> %s(%d)", strings.ToUpper(v.String()), int(v))
	}

	// 2) LPM against the tag
	if m.grpcTrie != nil {
		if v, ok, pat := m.grpcTrie.MatchWithPattern(string(t)); ok {
			return fmt.Sprintf("grpc: source=prefix pattern=%q -> %s(%d)", pat, strings.ToUpper(v.String()), int(v))
		}
	}

	// 3) per-tag default
	if v, ok := m.grpcDefault[t]; ok {
		return fmt.Sprintf("grpc: source=default -> %s(%d)", strings.ToUpper(v.String()), int(v))
	}

	// 4) global fallback
	return fmt.Sprintf("grpc: source=fallback -> %s(%d)", strings.ToUpper(m.fallbackGRPC.String()), int(m.fallbackGRPC))
}

// normalizeAndValidatePrefix ensures a tag prefix is canonical and valid.
// It applies tag normalization (trimming, separator folding) and then checks
// each segment, allowing "*" as a single-segment wildcard.
func normalizeAndValidatePrefix(raw string) (string, error) {
	p := tag.Normalize(raw)
	if p == "" {
		return "", fmt.Errorf("empty prefix")
	}
	segs := strings.Split(p, ".")
	allWild := true
	for _, seg := range segs {
		if !validPrefixSegment(seg) { // allows "*" or [A-Za-z][A-Za-z0-9_]*
			return "", fmt.Errorf("invalid segment %q", seg)
		}
		if seg != "*" {
			allWild = false
		}
	}
	if allWild {
		return "", fmt.Errorf("prefix cannot consist of '*' only")
	}
	return p, nil
}

// validPrefixSegment reports whether seg is a valid trie segment for prefixes.
// Rules:
//   - empty segments are invalid;
//   - the segment "*" is allowed;
//   - otherwise the segment must match: [A-Za-z][A-Za-z0-9_]*
func validPrefixSegment(seg string) bool {
	if seg == "" {
		return false
	}
	if seg == "*" {
		return true
	}
	// [A-Za-z][A-Za-z0-9_]*
	if !isLetter(seg[0]) {
		return false
	}
	for i := 1; i < len(seg); i++ {
		c := seg[i]
		if isLetter(c) || (c >= '0' && c <= '9') || c == '_' {
			continue
		}
		return false
	}
	return true
}

func isLetter(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}
