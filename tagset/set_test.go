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
	"testing"

	"github.com/kukalajet/kismet/tag"
)

func TestOf_DuplicatesCollapse(t *testing.T) {
	s := Of("NotFound", "Unauthorized", "NotFound")
	if s.Len() != 2 {
		t.Fatalf("Len = %d, want 2", s.Len())
	}
	if !s.Has("NotFound") || !s.Has("Unauthorized") {
		t.Fatal("members missing")
	}
}

func TestZeroValue_IsEmpty(t *testing.T) {
	var s Set
	if !s.IsEmpty() {
		t.Fatal("zero value must be empty")
	}
	if s.Has("NotFound") {
		t.Fatal("empty set has no members")
	}
	if got := s.Tags(); got != nil {
		t.Fatalf("Tags() on empty set = %v, want nil", got)
	}
	if !s.Equal(Empty) {
		t.Fatal("zero value must equal Empty")
	}
}

func TestUnion(t *testing.T) {
	e1 := Of("NotFound", "Timeout")
	e2 := Of("Timeout", "Unauthorized")

	u := e1.Union(e2)
	want := Of("NotFound", "Timeout", "Unauthorized")
	if !u.Equal(want) {
		t.Fatalf("Union = %v, want %v", u, want)
	}

	// order irrelevant
	if !e2.Union(e1).Equal(want) {
		t.Fatal("Union must be commutative")
	}

	// identity
	if !e1.Union(Empty).Equal(e1) || !Empty.Union(e1).Equal(e1) {
		t.Fatal("Empty must be the identity of Union")
	}
}

func TestDiff_And_Remove(t *testing.T) {
	s := Of("NotFound", "Unauthorized", "Timeout")

	d := s.Diff(Of("NotFound", "Timeout"))
	if !d.Equal(Of("Unauthorized")) {
		t.Fatalf("Diff = %v", d)
	}

	r := s.Remove("NotFound")
	if !r.Equal(Of("Unauthorized", "Timeout")) {
		t.Fatalf("Remove = %v", r)
	}

	// removing an absent tag is a no-op
	if !s.Remove("Conflict").Equal(s) {
		t.Fatal("Remove of absent tag must not change the set")
	}

	// removing the last member yields the empty set
	if !Of("X").Remove("X").IsEmpty() {
		t.Fatal("Remove of last member must yield Empty")
	}
}

func TestImmutability(t *testing.T) {
	s := Of("NotFound")
	_ = s.Add("Unauthorized")
	_ = s.Remove("NotFound")
	_ = s.Union(Of("Timeout"))

	if s.Len() != 1 || !s.Has("NotFound") {
		t.Fatalf("original set mutated: %v", s)
	}
}

func TestTags_Sorted(t *testing.T) {
	s := Of("Zeta", "Alpha", "Mid")
	got := s.Tags()
	want := []tag.Tag{"Alpha", "Mid", "Zeta"}
	if len(got) != len(want) {
		t.Fatalf("Tags = %v", got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("Tags = %v, want %v", got, want)
		}
	}
}

func TestString(t *testing.T) {
	if got := Of("B", "A").String(); got != "{A, B}" {
		t.Fatalf("String = %q, want %q", got, "{A, B}")
	}
	if got := Empty.String(); got != "{}" {
		t.Fatalf("String on empty = %q, want %q", got, "{}")
	}
}
