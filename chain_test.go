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
	"errors"
	"strings"
	"testing"

	"github.com/kukalajet/kismet/tag"
	"github.com/kukalajet/kismet/tagset"
)

func TestMap_Then_UnwrapOr(t *testing.T) {
	got := Map(Succeed(42), func(x int) int { return x * 2 }).UnwrapOr(0)
	if got != 84 {
		t.Fatalf("got %d, want 84", got)
	}
}

func TestMap_InvocationCounts(t *testing.T) {
	var calls int
	double := func(x int) int { calls++; return x * 2 }

	_ = Map(Succeed(1), double)
	if calls != 1 {
		t.Fatalf("Map on success must invoke fn exactly once, got %d", calls)
	}

	calls = 0
	out := Map(FailWith[int](NewFault(tag.NotFound)), double)
	if calls != 0 {
		t.Fatalf("Map on failure must not invoke fn, got %d", calls)
	}
	if out.Result().Fault().Tag != tag.NotFound {
		t.Fatal("failure must pass through unchanged")
	}
}

func TestCatchTag_Recovers(t *testing.T) {
	got := FailWith[int](NewFault(tag.NotFound, WithFieldOption("id", "123"))).
		CatchTag(tag.NotFound, func(*Fault) Chain[int] { return Succeed(0) }).
		UnwrapOr(-1)
	if got != 0 {
		t.Fatalf("got %d, want 0", got)
	}
}

func TestCatchTag_RemovesTagFromUnion(t *testing.T) {
	c := FailWith[int](NewFault(tag.NotFound)).
		Declare(tag.Unauthorized).
		CatchTag(tag.NotFound, func(*Fault) Chain[int] { return Succeed(0) })

	// a table without NotFound must now be accepted
	got := MatchChain(c, Cases[int, string]{
		Ok: func(v int) string { return "ok" },
		Err: map[tag.Tag]func(*Fault) string{
			tag.Unauthorized: func(*Fault) string { return "ua" },
		},
	})
	if got != "ok" {
		t.Fatalf("got %q", got)
	}
	if c.Result().Union().Has(tag.NotFound) {
		t.Fatal("NotFound must be removed from the union")
	}
}

func TestCatchTag_PassThroughStillNarrows(t *testing.T) {
	// the missed branch also discharges the tag: a Success cannot have
	// been a NotFound
	c := Succeed(5).Declare(tag.NotFound, tag.Timeout).
		CatchTag(tag.NotFound, func(*Fault) Chain[int] { return Succeed(0) })

	if !c.Result().Union().Equal(tagset.Of(tag.Timeout)) {
		t.Fatalf("union = %v", c.Result().Union())
	}
	if c.UnwrapOr(-1) != 5 {
		t.Fatal("success value must pass through")
	}

	// differently-tagged failure passes through untouched, minus the tag
	c2 := FailWith[int](NewFault(tag.Timeout)).Declare(tag.NotFound).
		CatchTag(tag.NotFound, func(*Fault) Chain[int] { return Succeed(0) })
	if c2.Result().Fault().Tag != tag.Timeout {
		t.Fatal("other failures must not be recovered")
	}
	if c2.Result().Union().Has(tag.NotFound) {
		t.Fatal("union must narrow on the pass-through path too")
	}
}

func TestCatchTag_HandlerUnionAccumulates(t *testing.T) {
	// handler that itself may fail: resulting union is (E ∖ {t}) ∪ F
	c := FailWith[int](NewFault(tag.NotFound)).Declare(tag.Timeout).
		CatchTag(tag.NotFound, func(*Fault) Chain[int] {
			return FailWith[int](NewFault(tag.Unavailable))
		})

	want := tagset.Of(tag.Timeout, tag.Unavailable)
	if !c.Result().Union().Equal(want) {
		t.Fatalf("union = %v, want %v", c.Result().Union(), want)
	}
}

func TestCatchAll_DischargesWholeUnion(t *testing.T) {
	c := FailWith[string](NewFault(tag.Timeout)).Declare(tag.NotFound).
		CatchAll(func(f *Fault) Chain[string] { return Succeed("recovered:" + string(f.Tag)) })

	if got := c.Unwrap(); got != "recovered:Timeout" {
		t.Fatalf("got %q", got)
	}

	// success path: the union empties without the handler running
	var calls int
	c2 := Succeed("v").Declare(tag.NotFound).
		CatchAll(func(*Fault) Chain[string] { calls++; return Succeed("x") })
	if calls != 0 {
		t.Fatal("CatchAll handler must not run on success")
	}
	if got := c2.Unwrap(); got != "v" {
		t.Fatalf("got %q", got)
	}
}

func TestOrElseTag(t *testing.T) {
	got := FailWith[int](NewFault(tag.NotFound)).
		OrElseTag(tag.NotFound, 99).
		Unwrap()
	if got != 99 {
		t.Fatalf("got %d", got)
	}

	// non-matching failure passes through with the union narrowed
	c := FailWith[int](NewFault(tag.Timeout)).Declare(tag.NotFound).
		OrElseTag(tag.NotFound, 99)
	if c.Result().Fault().Tag != tag.Timeout {
		t.Fatal("non-matching failure must pass through")
	}
	if c.Result().Union().Has(tag.NotFound) {
		t.Fatal("union must narrow by the handled tag")
	}
}

func TestFlatMap_UnionAccumulation(t *testing.T) {
	step1 := Succeed(1).Declare("Step1Failed")
	c := FlatMap(step1, func(v int) Chain[string] {
		return Succeed("v").Declare("Step2Failed")
	})

	want := tagset.Of("Step1Failed", "Step2Failed")
	if !c.Result().Union().Equal(want) {
		t.Fatalf("union = %v, want %v", c.Result().Union(), want)
	}

	// duplicates collapse, order irrelevant
	c2 := FlatMap(Succeed(1).Declare("A", "B"), func(int) Chain[int] {
		return Succeed(2).Declare("B", "A")
	})
	if !c2.Result().Union().Equal(tagset.Of("A", "B")) {
		t.Fatalf("union = %v", c2.Result().Union())
	}
}

func TestFlatMap_ShortCircuit(t *testing.T) {
	var step2Calls int
	first := FailWith[int](NewFault("Step1Failed"))

	c := FlatMap(first, func(int) Chain[string] {
		step2Calls++
		return Succeed("never")
	})

	if step2Calls != 0 {
		t.Fatal("second step must never run after a failure")
	}

	got := MatchChain(c, Cases[string, string]{
		Ok: func(string) string { return "ok" },
		Err: map[tag.Tag]func(*Fault) string{
			"Step1Failed": func(*Fault) string { return "first handler" },
			"Step2Failed": func(*Fault) string { return "second handler" },
		},
	})
	if got != "first handler" {
		t.Fatalf("got %q", got)
	}
}

func TestMapFault_TransformsOnlyFailure(t *testing.T) {
	c := FailWith[int](NewFault(tag.Timeout)).
		MapFault(func(f *Fault) *Fault { return NewFault(tag.Unavailable).WithCause(f) })

	if c.Result().Fault().Tag != tag.Unavailable {
		t.Fatal("fault must be replaced")
	}
	if c.Result().Union().Has(tag.Timeout) || !c.Result().Union().Has(tag.Unavailable) {
		t.Fatalf("union = %v", c.Result().Union())
	}

	var calls int
	ok := Succeed(1).MapFault(func(f *Fault) *Fault { calls++; return f })
	if calls != 0 || ok.UnwrapOr(0) != 1 {
		t.Fatal("MapFault must not touch a success")
	}
}

func TestTap_TapFault_Sequencing(t *testing.T) {
	var seen []string
	_ = Succeed("v").
		Tap(func(v string) { seen = append(seen, "tap:"+v) }).
		TapFault(func(*Fault) { seen = append(seen, "tapFault") })
	if len(seen) != 1 || seen[0] != "tap:v" {
		t.Fatalf("seen = %v", seen)
	}

	seen = nil
	_ = FailWith[string](NewFault(tag.NotFound)).
		Tap(func(string) { seen = append(seen, "tap") }).
		TapFault(func(f *Fault) { seen = append(seen, "tapFault:"+string(f.Tag)) })
	if len(seen) != 1 || seen[0] != "tapFault:NotFound" {
		t.Fatalf("seen = %v", seen)
	}
}

func TestUnwrap_RequiresEmptyUnion(t *testing.T) {
	defer func() {
		v, ok := AsViolation(recover())
		if !ok {
			t.Fatal("Unwrap with a non-empty union must panic with *Violation")
		}
		if !strings.Contains(v.Error(), "NotFound") {
			t.Fatalf("violation must name the remaining tags: %q", v.Error())
		}
	}()
	// even a Success cannot be unconditionally unwrapped while tags remain
	Succeed(1).Declare(tag.NotFound).Unwrap()
}

func TestUnwrap_AfterFullRecovery(t *testing.T) {
	got := FailWith[int](NewFault(tag.NotFound)).
		CatchTag(tag.NotFound, func(*Fault) Chain[int] { return Succeed(7) }).
		Unwrap()
	if got != 7 {
		t.Fatalf("got %d", got)
	}
}

func TestAttempt(t *testing.T) {
	c := Attempt(func() (int, error) { return 5, nil }, nil)
	if c.UnwrapOr(0) != 5 {
		t.Fatal("nil error must yield success")
	}

	boom := errors.New("boom")
	c2 := Attempt(func() (int, error) { return 0, boom }, nil)
	if f := c2.Result().Fault(); f.Tag != tag.UnknownFailure || !errors.Is(f, boom) {
		t.Fatalf("fault = %+v", f)
	}

	c3 := Attempt(func() (int, error) { return 0, boom }, func(err error) *Fault {
		return NewFault(tag.Unavailable).WithCause(err)
	})
	if c3.Result().Fault().Tag != tag.Unavailable {
		t.Fatal("custom mapping must be applied")
	}
}

func TestChain_Immutability(t *testing.T) {
	orig := FailWith[int](NewFault(tag.NotFound)).Declare(tag.Timeout)

	a := orig.CatchTag(tag.NotFound, func(*Fault) Chain[int] { return Succeed(1) })
	b := orig.CatchTag(tag.NotFound, func(*Fault) Chain[int] { return Succeed(1) })

	// two applications of the same operation yield structurally equal chains
	if a.Result().Value() != b.Result().Value() ||
		!a.Result().Union().Equal(b.Result().Union()) {
		t.Fatal("repeated transformations must agree")
	}

	// and the original is untouched by either
	if orig.Result().Fault() == nil || orig.Result().Fault().Tag != tag.NotFound {
		t.Fatal("original chain mutated")
	}
	if !orig.Result().Union().Equal(tagset.Of(tag.NotFound, tag.Timeout)) {
		t.Fatalf("original union = %v", orig.Result().Union())
	}
}

func TestChain_ResultRoundTrip(t *testing.T) {
	orig := FailWith[string](NewFault(tag.NotFound)).Declare(tag.Timeout)

	rebuilt := From(orig.Result())
	if !rebuilt.Result().Union().Equal(orig.Result().Union()) {
		t.Fatal("round trip must preserve the union")
	}
	if rebuilt.Result().Fault().Tag != orig.Result().Fault().Tag {
		t.Fatal("round trip must preserve the fault")
	}
}
