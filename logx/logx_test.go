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

package logx

import (
	"bytes"
	"encoding/json"
	"errors"
	"testing"

	"github.com/rs/zerolog"

	"github.com/kukalajet/kismet"
	"github.com/kukalajet/kismet/tag"
)

func capture() (*bytes.Buffer, zerolog.Logger) {
	var buf bytes.Buffer
	return &buf, zerolog.New(&buf)
}

func TestObject_MarshalsFault(t *testing.T) {
	buf, log := capture()

	f := kismet.NewFault(tag.NotFound,
		kismet.WithMessageOption("user missing"),
		kismet.WithFieldOption("id", "123"),
		kismet.WithCauseOption(errors.New("sql: no rows")),
	)
	log.Info().Object("fault", Object(f)).Msg("lookup")

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("log output is not JSON: %v\n%s", err, buf.String())
	}
	fault, ok := entry["fault"].(map[string]any)
	if !ok {
		t.Fatalf("missing fault object: %s", buf.String())
	}
	if fault["tag"] != "NotFound" || fault["message"] != "user missing" {
		t.Fatalf("fault = %v", fault)
	}
	if fault["cause"] != "sql: no rows" {
		t.Fatalf("cause = %v", fault["cause"])
	}
	fields, ok := fault["fields"].(map[string]any)
	if !ok || fields["id"] != "123" {
		t.Fatalf("fields = %v", fault["fields"])
	}
}

func TestObject_NilFault(t *testing.T) {
	buf, log := capture()
	log.Info().Object("fault", Object(nil)).Msg("ok")

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("log output is not JSON: %v", err)
	}
	if fault, ok := entry["fault"].(map[string]any); !ok || len(fault) != 0 {
		t.Fatalf("nil fault must marshal to an empty object: %v", entry["fault"])
	}
}

func TestTapFault_LogsOnlyFailures(t *testing.T) {
	buf, log := capture()

	_ = kismet.Succeed(1).TapFault(TapFault(log))
	if buf.Len() != 0 {
		t.Fatalf("success must not log: %s", buf.String())
	}

	_ = kismet.FailWith[int](kismet.NewFault(tag.Timeout)).TapFault(TapFault(log))
	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("log output is not JSON: %v", err)
	}
	if entry["level"] != "warn" {
		t.Fatalf("level = %v", entry["level"])
	}
	fault := entry["fault"].(map[string]any)
	if fault["tag"] != "Timeout" {
		t.Fatalf("fault = %v", fault)
	}
}

func TestViolation(t *testing.T) {
	buf, log := capture()

	func() {
		defer func() {
			if v, ok := kismet.AsViolation(recover()); ok {
				Violation(log, v)
			}
		}()
		kismet.Succeed(1).Declare(tag.NotFound).Unwrap()
	}()

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("log output is not JSON: %v\n%s", err, buf.String())
	}
	msg, _ := entry["message"].(string)
	if entry["level"] != "error" || msg == "" {
		t.Fatalf("entry = %v", entry)
	}
}
