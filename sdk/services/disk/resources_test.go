// SPDX-FileCopyrightText: © 2025 DSLab - Fondazione Bruno Kessler
//
// SPDX-License-Identifier: Apache-2.0

package disk_test

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yadisk-tools/yadisk-sdk/sdk/config"
	"github.com/yadisk-tools/yadisk-sdk/sdk/internal/disktest"
	"github.com/yadisk-tools/yadisk-sdk/sdk/services/disk"
)

func TestCreateFolder(t *testing.T) {
	svc, srv := newService(t)
	srv.HandleJSON(http.MethodPut, "/v1/disk/resources", http.StatusCreated, map[string]any{
		"href":   srv.URL + "/v1/disk/resources?path=disk%3A%2Fnew",
		"method": "GET",
	})

	l, err := svc.CreateFolder(context.Background(), disk.CreateFolderRequest{Path: "/new"})
	require.NoError(t, err)
	assert.Equal(t, http.MethodGet, l.Method)
	assert.Equal(t, "/new", srv.Requests()[0].Query.Get("path"))
}

func TestCreateFolderConflict(t *testing.T) {
	svc, srv := newService(t)
	srv.Handle(http.MethodPut, "/v1/disk/resources", disktest.Error(http.StatusConflict, "DiskPathPointsToExistentDirectoryError",
		"По указанному пути \"/new\" уже существует папка с таким именем."))

	_, err := svc.CreateFolder(context.Background(), disk.CreateFolderRequest{Path: "/new"})
	require.Error(t, err)
	assert.True(t, config.IsFolderAlreadyExists(err))
}

func TestCopySync(t *testing.T) {
	svc, srv := newService(t)
	srv.HandleJSON(http.MethodPost, "/v1/disk/resources/copy", http.StatusCreated, map[string]any{"href": "https://x/resource"})

	op, err := svc.Copy(context.Background(), disk.CopyRequest{From: "/a", To: "/b", Overwrite: true})
	require.NoError(t, err)
	assert.True(t, op.Done())
	assert.Equal(t, "https://x/resource", op.Href)

	q := srv.Requests()[0].Query
	assert.Equal(t, "/a", q.Get("from"))
	assert.Equal(t, "/b", q.Get("path"))
	assert.Equal(t, "true", q.Get("overwrite"))
}

func TestCopyAsyncWaits(t *testing.T) {
	svc, srv := newService(t)
	srv.HandleJSON(http.MethodPost, "/v1/disk/resources/copy", http.StatusAccepted, map[string]any{"href": srv.URL + "/v1/disk/operations/c1"})
	srv.Handle(http.MethodGet, "/v1/disk/operations/c1", disktest.Sequence(
		disktest.JSON(http.StatusOK, map[string]string{"status": "in-progress"}),
		disktest.JSON(http.StatusOK, map[string]string{"status": "success"}),
	))

	op, err := svc.Copy(context.Background(), disk.CopyRequest{From: "/dir", To: "/dir2"})
	require.NoError(t, err)
	assert.Equal(t, config.OperationSuccess, op.Status)
	assert.False(t, op.Pending)
	assert.Len(t, srv.RequestsTo(http.MethodGet, "/v1/disk/operations/c1"), 2)
}

func TestMoveNoWait(t *testing.T) {
	svc, srv := newService(t)
	href := srv.URL + "/v1/disk/operations/m1"
	srv.HandleJSON(http.MethodPost, "/v1/disk/resources/move", http.StatusAccepted, map[string]any{"href": href, "method": "GET"})

	op, err := svc.Move(context.Background(), disk.MoveRequest{
		From:        "/dir",
		To:          "/moved",
		WaitOptions: config.WaitOptions{NoWait: true},
	})
	require.NoError(t, err)
	assert.True(t, op.Pending)
	assert.False(t, op.Done())
	assert.Equal(t, href, op.Href)
	assert.Empty(t, srv.RequestsTo(http.MethodGet, "/v1/disk/operations/m1"))
}

func TestDelete(t *testing.T) {
	svc, srv := newService(t)
	srv.HandleJSON(http.MethodDelete, "/v1/disk/resources", http.StatusNoContent, nil)

	ok, err := svc.Delete(context.Background(), disk.DeleteRequest{Path: "/a", Permanently: true})
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "true", srv.Requests()[0].Query.Get("permanently"))
}

func TestDeleteAsync(t *testing.T) {
	svc, srv := newService(t)
	srv.HandleJSON(http.MethodDelete, "/v1/disk/resources", http.StatusAccepted, map[string]any{"href": srv.URL + "/v1/disk/operations/d1"})
	srv.HandleJSON(http.MethodGet, "/v1/disk/operations/d1", http.StatusOK, map[string]string{"status": "success"})

	ok, err := svc.Delete(context.Background(), disk.DeleteRequest{Path: "/big"})
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "false", srv.Requests()[0].Query.Get("permanently"))
}

func TestDeleteError(t *testing.T) {
	svc, _ := newService(t)
	ok, err := svc.Delete(context.Background(), disk.DeleteRequest{Path: "/missing"})
	assert.False(t, ok)
	assert.ErrorIs(t, err, config.ErrNotFound)
}

func TestPublishUnpublish(t *testing.T) {
	svc, srv := newService(t)
	srv.HandleJSON(http.MethodPut, "/v1/disk/resources/publish", http.StatusOK, map[string]any{"href": "https://x/meta"})
	srv.HandleJSON(http.MethodPut, "/v1/disk/resources/unpublish", http.StatusOK, map[string]any{"href": "https://x/meta"})

	l, err := svc.Publish(context.Background(), "/a")
	require.NoError(t, err)
	assert.Equal(t, "https://x/meta", l.Href)

	_, err = svc.Unpublish(context.Background(), "/a")
	require.NoError(t, err)
	assert.Len(t, srv.RequestsTo(http.MethodPut, "/v1/disk/resources/unpublish"), 1)
}

func TestValidation(t *testing.T) {
	svc, srv := newService(t)
	ctx := context.Background()

	_, err := svc.GetMetaInfo(ctx, disk.MetaRequest{})
	assert.Error(t, err)
	_, err = svc.CreateFolder(ctx, disk.CreateFolderRequest{})
	assert.Error(t, err)
	_, err = svc.Copy(ctx, disk.CopyRequest{From: "/a"})
	assert.Error(t, err)
	_, err = svc.Move(ctx, disk.MoveRequest{To: "/a"})
	assert.Error(t, err)
	_, err = svc.Delete(ctx, disk.DeleteRequest{})
	assert.Error(t, err)
	_, err = svc.Publish(ctx, "")
	assert.Error(t, err)
	_, err = svc.GetOperationStatus(ctx, "")
	assert.Error(t, err)
	assert.Empty(t, srv.Requests())
}
