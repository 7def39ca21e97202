// SPDX-FileCopyrightText: © 2025 DSLab - Fondazione Bruno Kessler
//
// SPDX-License-Identifier: Apache-2.0

package config_test

import (
	"context"
	"errors"
	"io"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yadisk-tools/yadisk-sdk/sdk/config"
	"github.com/yadisk-tools/yadisk-sdk/sdk/internal/disktest"
)

func TestDoSendsTokenAndBaseURL(t *testing.T) {
	srv := disktest.New(t)
	srv.HandleJSON(http.MethodGet, "/v1/disk/", http.StatusOK, map[string]any{"total_space": 100})

	resp, err := srv.Core().Do(context.Background(), &config.Request{Method: http.MethodGet, Path: "disk/"})
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, int64(100), resp.Get("total_space").Int())

	reqs := srv.Requests()
	require.Len(t, reqs, 1)
	assert.Equal(t, "OAuth "+disktest.Token, reqs[0].Header.Get("Authorization"))
	assert.Equal(t, "application/json", reqs[0].Header.Get("Accept"))
	assert.NotEmpty(t, reqs[0].Header.Get("X-Request-Id"))
}

func TestDoWithoutAuth(t *testing.T) {
	srv := disktest.New(t)
	srv.HandleJSON(http.MethodGet, "/v1/disk/public/resources", http.StatusOK, map[string]any{"name": "a"})

	_, err := srv.Core().Do(context.Background(), &config.Request{
		Method:      http.MethodGet,
		Path:        "disk/public/resources",
		Params:      config.Params{"public_key": "key"},
		WithoutAuth: true,
	})
	require.NoError(t, err)

	reqs := srv.Requests()
	require.Len(t, reqs, 1)
	assert.Empty(t, reqs[0].Header.Get("Authorization"))
	assert.Equal(t, "key", reqs[0].Query.Get("public_key"))
}

func TestDoAbsoluteURL(t *testing.T) {
	srv := disktest.New(t)
	srv.HandleJSON(http.MethodGet, "/operations/42", http.StatusOK, map[string]any{"status": "success"})

	resp, err := srv.Core().Do(context.Background(), &config.Request{
		Method:      http.MethodGet,
		Path:        srv.URL + "/operations/42",
		AbsoluteURL: true,
	})
	require.NoError(t, err)
	assert.Equal(t, "success", resp.Get("status").String())
	assert.Len(t, srv.RequestsTo(http.MethodGet, "/operations/42"), 1)
}

func TestDoBodyAndHeaders(t *testing.T) {
	srv := disktest.New(t)
	srv.Handle(http.MethodPatch, "/v1/disk/resources", func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		assert.JSONEq(t, `{"a":1}`, string(body))
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		assert.Equal(t, "yes", r.Header.Get("X-Custom"))
		disktest.JSON(http.StatusOK, map[string]any{"path": "disk:/a"})(w, r)
	})

	_, err := srv.Core().Do(context.Background(), &config.Request{
		Method:      http.MethodPatch,
		Path:        "/disk/resources",
		Body:        strings.NewReader(`{"a":1}`),
		ContentType: "application/json",
		Header:      http.Header{"X-Custom": []string{"yes"}},
	})
	require.NoError(t, err)
}

func TestDoNoContent(t *testing.T) {
	srv := disktest.New(t)
	srv.HandleJSON(http.MethodDelete, "/v1/disk/resources", http.StatusNoContent, nil)

	resp, err := srv.Core().Do(context.Background(), &config.Request{Method: http.MethodDelete, Path: "disk/resources"})
	require.NoError(t, err)
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
	assert.Empty(t, resp.Body)
	assert.Error(t, resp.JSON(&map[string]any{}))
}

func TestDoErrorStatuses(t *testing.T) {
	tests := []struct {
		status int
		kind   error
	}{
		{http.StatusUnauthorized, config.ErrUnauthorized},
		{http.StatusForbidden, config.ErrForbidden},
		{http.StatusNotFound, config.ErrNotFound},
		{http.StatusConflict, config.ErrDiskPathConflict},
		{http.StatusPreconditionFailed, config.ErrPreconditionFailed},
		{http.StatusRequestEntityTooLarge, config.ErrPayloadTooLarge},
		{http.StatusInternalServerError, config.ErrInternalServerError},
		{http.StatusServiceUnavailable, config.ErrServiceUnavailable},
		{http.StatusInsufficientStorage, config.ErrInsufficientStorage},
		{http.StatusBadRequest, config.ErrRequest},
		{http.StatusTooManyRequests, config.ErrRequest},
	}
	for _, tt := range tests {
		t.Run(http.StatusText(tt.status), func(t *testing.T) {
			srv := disktest.New(t)
			srv.Handle(http.MethodGet, "/v1/disk/", disktest.Error(tt.status, "SomeError", "something went wrong"))

			_, err := srv.Core().Do(context.Background(), &config.Request{Method: http.MethodGet, Path: "disk/"})
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.kind)

			var apiErr *config.APIError
			require.True(t, errors.As(err, &apiErr))
			assert.Equal(t, tt.status, apiErr.StatusCode)
			assert.Equal(t, "something went wrong", apiErr.Message)
		})
	}
}

func TestDoErrorWithoutJSONBody(t *testing.T) {
	srv := disktest.New(t)
	srv.Handle(http.MethodGet, "/v1/disk/", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		_, _ = w.Write([]byte("<html>bad gateway</html>"))
	})

	_, err := srv.Core().Do(context.Background(), &config.Request{Method: http.MethodGet, Path: "disk/"})
	var apiErr *config.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.ErrorIs(t, err, config.ErrRequest)
	assert.Equal(t, http.StatusText(http.StatusBadGateway), apiErr.Message)
}

func TestDoStream(t *testing.T) {
	srv := disktest.New(t)
	srv.Handle(http.MethodGet, "/files/a.txt", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("content"))
	})

	resp, err := srv.Core().Do(context.Background(), &config.Request{
		Method:      http.MethodGet,
		Path:        srv.URL + "/files/a.txt",
		AbsoluteURL: true,
		Stream:      true,
	})
	require.NoError(t, err)
	require.NotNil(t, resp.Stream)
	defer resp.Stream.Close()
	data, err := io.ReadAll(resp.Stream)
	require.NoError(t, err)
	assert.Equal(t, "content", string(data))
	assert.Nil(t, resp.Body)
}

func TestDoValidation(t *testing.T) {
	core := config.NewHTTPCore(nil, config.DiskConfig{AccessToken: "t"})

	_, err := core.Do(context.Background(), nil)
	assert.Error(t, err)
	_, err = core.Do(context.Background(), &config.Request{Path: "disk/"})
	assert.Error(t, err)
}

func TestBuildURL(t *testing.T) {
	core := config.NewHTTPCore(nil, config.DiskConfig{})

	u, err := core.BuildURL("disk/resources", config.Params{"path": "/a b", "limit": 10}, false)
	require.NoError(t, err)
	assert.Equal(t, config.DefaultBaseURL+"disk/resources?limit=10&path=%2Fa+b", u)

	u, err = core.BuildURL("https://example.com/op?id=1", config.Params{"x": "y"}, true)
	require.NoError(t, err)
	assert.Equal(t, "https://example.com/op?id=1&x=y", u)

	u, err = core.BuildURL("/disk/", nil, false)
	require.NoError(t, err)
	assert.Equal(t, config.DefaultBaseURL+"disk/", u)
}

func TestIsSuccess(t *testing.T) {
	for _, code := range []int{200, 201, 202, 204} {
		assert.True(t, config.IsSuccess(code), code)
	}
	for _, code := range []int{203, 206, 301, 400, 500} {
		assert.False(t, config.IsSuccess(code), code)
	}
}
