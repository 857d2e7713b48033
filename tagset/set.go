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

package tagset

import (
	"sort"
	"strings"

	"github.com/kukalajet/kismet/tag"
)

// Set is an immutable set of fault tags.
//
// It is the runtime representation of an error union: the closed set of
// variants a fallible operation may produce. Results and wrappers carry a Set
// and combine them with the operations below — union when two fallible
// operations are chained, difference when a specific tag has been recovered.
//
// The zero value is the empty set and is ready to use. All operations return
// a new Set and never modify the receiver, so a Set can be shared freely
// across goroutines once constructed.
type Set struct {
	// m holds the members. A nil map means the empty set; the map is never
	// mutated after the Set escapes a constructor.
	m map[tag.Tag]struct{}
}

// Empty is the empty set. It is the union of no tags and the identity
// element of Union.
var Empty = Set{}

// Of builds a Set from the given tags. Duplicates collapse; order is
// irrelevant.
func Of(tags ...tag.Tag) Set {
	if len(tags) == 0 {
		return Empty
	}
	m := make(map[tag.Tag]struct{}, len(tags))
	for _, t := range tags {
		m[t] = struct{}{}
	}
	return Set{m: m}
}

// Has reports whether t is a member of the set.
func (s Set) Has(t tag.Tag) bool {
	_, ok := s.m[t]
	return ok
}

// Len returns the number of members.
func (s Set) Len() int {
	return len(s.m)
}

// IsEmpty reports whether the set has no members.
//
// An empty error union is the precondition for unconditional unwrapping:
// a result whose union is empty cannot be a failure under correct use.
func (s Set) IsEmpty() bool {
	return len(s.m) == 0
}

// Union returns the set union of s and other (duplicates collapsed).
//
// This is the combination rule for chaining: an operation that may fail
// with E1 followed by one that may fail with E2 may fail with E1 ∪ E2.
func (s Set) Union(other Set) Set {
	if other.IsEmpty() {
		return s
	}
	if s.IsEmpty() {
		return other
	}
	m := make(map[tag.Tag]struct{}, len(s.m)+len(other.m))
	for t := range s.m {
		m[t] = struct{}{}
	}
	for t := range other.m {
		m[t] = struct{}{}
	}
	return Set{m: m}
}

// Add returns a new set with the given tags added.
func (s Set) Add(tags ...tag.Tag) Set {
	if len(tags) == 0 {
		return s
	}
	return s.Union(Of(tags...))
}

// Diff returns the set difference s ∖ other.
func (s Set) Diff(other Set) Set {
	if s.IsEmpty() || other.IsEmpty() {
		return s
	}
	m := make(map[tag.Tag]struct{}, len(s.m))
	for t := range s.m {
		if _, ok := other.m[t]; !ok {
			m[t] = struct{}{}
		}
	}
	if len(m) == 0 {
		return Empty
	}
	return Set{m: m}
}

// Remove returns a new set with t removed.
//
// This is the narrowing rule for recovery: once a tag has been handled, it
// disappears from the union visible to later steps.
func (s Set) Remove(t tag.Tag) Set {
	if !s.Has(t) {
		return s
	}
	if len(s.m) == 1 {
		return Empty
	}
	m := make(map[tag.Tag]struct{}, len(s.m)-1)
	for member := range s.m {
		if member != t {
			m[member] = struct{}{}
		}
	}
	return Set{m: m}
}

// Equal reports whether s and other contain exactly the same members.
func (s Set) Equal(other Set) bool {
	if len(s.m) != len(other.m) {
		return false
	}
	for t := range s.m {
		if _, ok := other.m[t]; !ok {
			return false
		}
	}
	return true
}

// Tags returns the members in lexicographic order.
//
// The returned slice is freshly allocated on every call; callers may modify
// it without affecting the set.
func (s Set) Tags() []tag.Tag {
	if len(s.m) == 0 {
		return nil
	}
	out := make([]tag.Tag, 0, len(s.m))
	for t := range s.m {
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// String renders the set as "{A, B, C}" with members sorted. Intended for
// diagnostics and violation messages, not for machine parsing.
func (s Set) String() string {
	tags := s.Tags()
	var b strings.Builder
	b.WriteByte('{')
	for i, t := range tags {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(string(t))
	}
	b.WriteByte('}')
	return b.String()
}
