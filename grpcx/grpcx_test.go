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

package grpcx

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	gcodes "google.golang.org/grpc/codes"
	gstatus "google.golang.org/grpc/status"

	"github.com/kukalajet/kismet"
	"github.com/kukalajet/kismet/apis"
	"github.com/kukalajet/kismet/mapper"
	"github.com/kukalajet/kismet/tag"
)

func testMapper(t *testing.T) apis.Mapper {
	t.Helper()
	m, err := mapper.New()
	require.NoError(t, err)
	return m
}

func intercept(t *testing.T, m apis.Mapper, handler grpc.UnaryHandler) (any, error) {
	t.Helper()
	ic := UnaryServerInterceptor(m)
	return ic(context.Background(), nil, &grpc.UnaryServerInfo{FullMethod: "/svc/Method"}, handler)
}

func TestInterceptor_PassesSuccessThrough(t *testing.T) {
	resp, err := intercept(t, testMapper(t), func(context.Context, any) (any, error) {
		return "ok", nil
	})
	require.NoError(t, err)
	require.Equal(t, "ok", resp)
}

func TestInterceptor_MapsFault(t *testing.T) {
	f := kismet.NewFault(tag.NotFound,
		kismet.WithMessageOption("user missing"),
		kismet.WithFieldOption("id", "123"),
	)

	_, err := intercept(t, testMapper(t), func(context.Context, any) (any, error) {
		return nil, f
	})
	require.Error(t, err)

	st, ok := gstatus.FromError(err)
	require.True(t, ok)
	require.Equal(t, gcodes.NotFound, st.Code())
	require.Equal(t, "NotFound: user missing", st.Message())

	view, ok := ExtractFault(err)
	require.True(t, ok)
	require.Equal(t, "NotFound", view.Tag)
	require.Equal(t, "user missing", view.Message)
	require.Len(t, view.Fields, 1)
	require.Equal(t, "id", view.Fields[0].Name)
	require.Equal(t, "123", view.Fields[0].Value)
}

func TestInterceptor_MapsWrappedFault(t *testing.T) {
	f := kismet.NewFault(tag.Unavailable)
	wrapped := errors.Join(errors.New("outer context"), f)

	_, err := intercept(t, testMapper(t), func(context.Context, any) (any, error) {
		return nil, wrapped
	})
	st, ok := gstatus.FromError(err)
	require.True(t, ok)
	require.Equal(t, gcodes.Unavailable, st.Code())
}

func TestInterceptor_ForeignErrorUntouched(t *testing.T) {
	plain := errors.New("not a fault")
	_, err := intercept(t, testMapper(t), func(context.Context, any) (any, error) {
		return nil, plain
	})
	require.Same(t, plain, err)

	_, ok := ExtractFault(err)
	require.False(t, ok)
}

func TestInterceptor_RecoversViolation(t *testing.T) {
	_, err := intercept(t, testMapper(t), func(context.Context, any) (any, error) {
		// incomplete handler table: the match panics with a *Violation
		r := kismet.Fail[int](kismet.NewFault(tag.Forbidden))
		_ = kismet.Match(r, kismet.Cases[int, string]{
			Ok:  func(int) string { return "ok" },
			Err: map[tag.Tag]func(*kismet.Fault) string{},
		})
		return nil, nil
	})
	require.Error(t, err)

	st, ok := gstatus.FromError(err)
	require.True(t, ok)
	require.Equal(t, gcodes.Internal, st.Code())
	require.Contains(t, st.Message(), "Unhandled error tag: Forbidden")
}

func TestInterceptor_ForeignPanicPropagates(t *testing.T) {
	require.PanicsWithValue(t, "not a violation", func() {
		_, _ = intercept(t, testMapper(t), func(context.Context, any) (any, error) {
			panic("not a violation")
		})
	})
}
