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

import (
	"bytes"
	"encoding"
	"errors"
	"regexp"
	"strings"
)

// Tag is the canonical, validated discriminant of a fault variant.
//
// It is defined as a separate type (not just string) so that other packages
// can explicitly declare which values they expect and to avoid accidental
// mixing of raw user input with validated discriminants.
//
// Tags are dot-separated identifiers with a small, fixed depth. A bare tag
// names the variant directly; extra leading segments namespace it by module
// or component.
//
// Example valid tags:
//
//   - "NotFound"
//   - "Unauthorized"
//   - "Step1Failed"
//   - "storage.Timeout"
//   - "auth.jwt.Expired"
//
// IMPORTANT: Empty tags ("") are NOT allowed. Every fault MUST carry a
// non-empty tag.
type Tag string

// MinLength and MaxLength define the allowed length range for a canonical
// kismet tag.
//
// We keep these values as separate constants so they can be referenced in
// validation errors, tests, or in other packages that want to mirror the same
// constraints.
const (
	// MinLength is the minimum length for a valid tag.
	// A single character is enough: short discriminants like "Z" are
	// legitimate in small closed unions, and rejecting them would make the
	// runtime stricter than the unions it stands in for.
	MinLength = 1

	// MaxLength is the maximum length for a valid tag.
	// 64 characters is enough for namespaced tags like
	// "storage.pg.ConnectTimeout" while still preventing unbounded or
	// accidental long strings.
	MaxLength = 64
)

const (
	// tagFmt is the canonical regular expression used to validate tags.
	//
	// The pattern is intentionally kept in a separate constant so that:
	//   - it can be referenced from tests;
	//   - it is obvious that the regexp below is derived from this exact pattern;
	//   - it is easy to keep the regexp and the segment rules in sync.
	//
	// Pattern breakdown:
	//
	//	^ - start of string;
	//	[A-Za-z][A-Za-z0-9_]* - each segment starts with an ASCII letter and
	//	                        continues with letters, digits or underscore;
	//	(\.<segment>){0,3} - up to three additional dot-separated segments;
	//	$ - end of string;
	//
	// Unlike lower-level machine codes, tags are case-sensitive: by
	// convention the variant segment is PascalCase ("NotFound") and
	// namespace segments are lowercase ("storage.NotFound"), but the
	// validator does not enforce the convention.
	tagFmt = `^[A-Za-z][A-Za-z0-9_]*(\.[A-Za-z][A-Za-z0-9_]*){0,3}$`
)

var (
	// tagRe is the compiled regular expression used at runtime to validate
	// that a string is a canonical kismet tag.
	//
	// We precompile it so that repeated validations (e.g. in factories or in
	// hot paths) do not pay the compilation cost over and over again.
	//
	// Examples of valid tags:
	//   - "NotFound"
	//   - "Step1Failed"
	//   - "storage.Timeout"
	//
	// Examples of invalid tags:
	//   - "not-found"        (dash)
	//   - "1NotFound"        (does not start with a letter)
	//   - "storage..Timeout" (empty segment)
	//   - ""                 (empty)
	tagRe = regexp.MustCompile(tagFmt)
)

var (
	// ErrTagInvalid is returned when a value cannot be parsed or validated
	// as a kismet tag.
	//
	// Having a dedicated sentinel error makes it easier for callers and tests
	// to detect "this is about tag format" vs "this is some other error".
	ErrTagInvalid = errors.New("kismet: invalid tag")
)

// Ensure Tag implements encoding.TextMarshaler / encoding.TextUnmarshaler
// so it can be embedded into larger config or API structs.
var (
	_ encoding.TextMarshaler   = (*Tag)(nil)
	_ encoding.TextUnmarshaler = (*Tag)(nil)
)

// Empty is the zero-value tag. It is never a valid discriminant; it exists so
// that callers can express "no tag" explicitly (e.g. in zero-value structs).
var Empty Tag = ""

// Parse takes a user-provided string, normalizes it and validates it.
// On success it returns a canonical Tag value.
func Parse(s string) (Tag, error) {
	s = Normalize(s)
	if err := validate(s); err != nil {
		return Empty, err
	}
	return Tag(s), nil
}

// MustParse is the panic-on-error variant of Parse. It is useful for
// declaring package-level tag constants in init() or var blocks.
func MustParse(s string) Tag {
	t, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return t
}

// Normalize takes an arbitrary string and tries to bring it closer to the
// canonical tag form.
//
// This function is intentionally conservative: it only performs obvious,
// non-lossy transformations:
//
//   - trims surrounding spaces;
//   - converts "/" to "." (callers may build namespaces with slashes);
//   - replaces "-" with "_";
//
// It deliberately does NOT change letter case — tags are case-sensitive —
// and does NOT guarantee that the result is valid. Callers should still call
// Validate/Parse after normalization.
func Normalize(s string) string {
	s = strings.TrimSpace(s)
	s = strings.ReplaceAll(s, "/", ".")
	s = strings.ReplaceAll(s, "-", "_")
	return s
}

// Validate checks whether the provided Tag is valid.
// The empty tag ("") is considered invalid.
func Validate(t Tag) error {
	return validate(string(t))
}

// String returns the canonical string representation of the tag.
func (t Tag) String() string {
	return string(t)
}

// MarshalText implements encoding.TextMarshaler.
//
// It always returns the canonical string representation.
func (t Tag) MarshalText() ([]byte, error) {
	if err := Validate(t); err != nil {
		return nil, err
	}
	return []byte(t), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
//
// It normalizes and validates the provided text before assigning.
func (t *Tag) UnmarshalText(text []byte) error {
	// We copy into a buffer to avoid changing the input slice.
	s := string(bytes.TrimSpace(text))
	parsed, err := Parse(s)
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

// validate is a helper that checks whether the provided string is a valid tag.
func validate(s string) error {
	if len(s) < MinLength || len(s) > MaxLength {
		return ErrTagInvalid
	}
	if !tagRe.MatchString(s) {
		return ErrTagInvalid
	}
	return nil
}
