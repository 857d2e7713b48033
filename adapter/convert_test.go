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

package adapter

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
	"google.golang.org/grpc/codes"

	"github.com/kukalajet/kismet"
	"github.com/kukalajet/kismet/apis"
	"github.com/kukalajet/kismet/tag"
)

func TestToDescriptor(t *testing.T) {
	f := kismet.NewFault(tag.NotFound, kismet.WithMessageOption("user missing"))
	st := apis.Status{HTTP: 404, GRPC: codes.NotFound}

	got := ToDescriptor(f, st)
	require.Equal(t, apis.FaultDescriptor{
		Tag:        "NotFound",
		HTTPStatus: 404,
		GRPCCode:   int(codes.NotFound),
		Message:    "user missing",
	}, got)

	require.Zero(t, ToDescriptor(nil, st))
}

func TestToView_SortedTypedFields(t *testing.T) {
	f := kismet.NewFault(tag.RateLimited,
		kismet.WithMessageOption("slow down"),
		kismet.WithFieldOption("retryAfter", 30),
		kismet.WithFieldOption("bucket", "api"),
		kismet.WithFieldOption("hard", true),
	)

	v := ToView(f)
	require.Equal(t, "RateLimited", v.Tag)
	require.Equal(t, "slow down", v.Message)
	require.Equal(t, []apis.Field{
		{Name: "bucket", Type: "string", Value: "api"},
		{Name: "hard", Type: "boolean", Value: true},
		{Name: "retryAfter", Type: "number", Value: 30},
	}, v.Fields)
}

func TestToView_NoPayload(t *testing.T) {
	v := ToView(kismet.NewFault(tag.Canceled))
	require.Equal(t, "Canceled", v.Tag)
	require.Nil(t, v.Fields)

	require.Zero(t, ToView(nil))
}

// quotaError is a foreign error type that speaks the apis contracts
// without depending on kismet.
type quotaError struct {
	used int
}

func (e *quotaError) Error() string    { return "quota exhausted" }
func (e *quotaError) ErrorTag() string { return "RateLimited" }
func (e *quotaError) ErrorFields() []apis.Field {
	return []apis.Field{{Name: "used", Type: "number", Value: e.used}}
}

func TestFaultOf(t *testing.T) {
	t.Run("nil", func(t *testing.T) {
		require.Nil(t, FaultOf(nil))
	})

	t.Run("fault passes through", func(t *testing.T) {
		f := kismet.NewFault(tag.NotFound)
		require.Same(t, f, FaultOf(f))
	})

	t.Run("wrapped fault unwraps", func(t *testing.T) {
		f := kismet.NewFault(tag.Conflict)
		require.Same(t, f, FaultOf(fmt.Errorf("saving user: %w", f)))
	})

	t.Run("foreign tagged error keeps tag and fields", func(t *testing.T) {
		got := FaultOf(&quotaError{used: 101})
		require.Equal(t, tag.RateLimited, got.Tag)
		require.Equal(t, "quota exhausted", got.Message)
		used, ok := got.Field("used")
		require.True(t, ok)
		require.Equal(t, 101, used)
	})

	t.Run("plain error becomes UnknownFailure", func(t *testing.T) {
		cause := errors.New("boom")
		got := FaultOf(cause)
		require.Equal(t, tag.UnknownFailure, got.Tag)
		require.Equal(t, "boom", got.Message)
		require.ErrorIs(t, got, cause)
	})
}

func TestFaultSatisfiesApisContracts(t *testing.T) {
	f := kismet.NewFault(tag.Internal)
	var tagged apis.TaggedError = f
	require.Equal(t, "Internal", tagged.ErrorTag())
	var caused apis.CausedError = f
	require.Nil(t, caused.ErrorCause())
}
