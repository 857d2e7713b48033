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

package httpx

import (
	"encoding/json"
	"errors"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/kukalajet/kismet"
	"github.com/kukalajet/kismet/mapper"
	"github.com/kukalajet/kismet/tag"
)

func testWriter(t *testing.T) Writer {
	t.Helper()
	m, err := mapper.New()
	require.NoError(t, err)
	return Writer{Mapper: m}
}

func TestWrite_StatusAndBody(t *testing.T) {
	w := testWriter(t)
	rec := httptest.NewRecorder()

	w.Write(rec, kismet.NewFault(tag.NotFound,
		kismet.WithMessageOption("user missing"),
		kismet.WithFieldOption("id", "123"),
	))

	require.Equal(t, 404, rec.Code)
	require.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Equal(t, "NotFound", body["tag"])
	require.Equal(t, "user missing", body["message"])
	require.Equal(t, float64(404), body["http_status"])

	fields, ok := body["fields"].(map[string]any)
	require.True(t, ok)
	require.Equal(t, "123", fields["id"])
}

func TestWrite_NoPayloadOmitsFields(t *testing.T) {
	w := testWriter(t)
	rec := httptest.NewRecorder()

	w.Write(rec, kismet.NewFault(tag.Forbidden))

	require.Equal(t, 403, rec.Code)
	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.NotContains(t, body, "fields")
	require.NotContains(t, body, "message")
}

func TestWrite_NonJSONPayloadFallsBackToString(t *testing.T) {
	w := testWriter(t)
	rec := httptest.NewRecorder()

	// a channel has no JSON representation; it must be stringified
	w.Write(rec, kismet.NewFault(tag.Internal,
		kismet.WithFieldOption("ch", make(chan int)),
	))

	require.Equal(t, 500, rec.Code)
	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	fields := body["fields"].(map[string]any)
	require.IsType(t, "", fields["ch"])
}

func TestWriteError(t *testing.T) {
	w := testWriter(t)

	// fault behind a wrap chain
	rec := httptest.NewRecorder()
	w.WriteError(rec, errors.Join(errors.New("ctx"), kismet.NewFault(tag.RateLimited)))
	require.Equal(t, 429, rec.Code)

	// foreign error becomes UnknownFailure -> 500
	rec = httptest.NewRecorder()
	w.WriteError(rec, errors.New("boom"))
	require.Equal(t, 500, rec.Code)
	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Equal(t, string(tag.UnknownFailure), body["tag"])
	require.Equal(t, "boom", body["message"])

	// nil writes nothing
	rec = httptest.NewRecorder()
	w.WriteError(rec, nil)
	require.Zero(t, rec.Body.Len())
}
