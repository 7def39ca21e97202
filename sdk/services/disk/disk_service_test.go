// SPDX-FileCopyrightText: © 2025 DSLab - Fondazione Bruno Kessler
//
// SPDX-License-Identifier: Apache-2.0

package disk_test

import (
	"context"
	"net/http"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yadisk-tools/yadisk-sdk/sdk/config"
	"github.com/yadisk-tools/yadisk-sdk/sdk/internal/disktest"
	"github.com/yadisk-tools/yadisk-sdk/sdk/services/disk"
)

func newService(t *testing.T) (*disk.DiskService, *disktest.Server) {
	t.Helper()
	srv := disktest.New(t)
	return disk.NewDiskServiceFromCore(srv.Core()), srv
}

func TestNewDiskServiceRequiresToken(t *testing.T) {
	_, err := disk.NewDiskService(context.Background(), config.Config{})
	assert.Error(t, err)

	svc, err := disk.NewDiskService(context.Background(), config.Config{Disk: config.DiskConfig{AccessToken: "t"}})
	require.NoError(t, err)
	assert.NotNil(t, svc)
}

func TestGetDiskInfo(t *testing.T) {
	svc, srv := newService(t)
	srv.HandleJSON(http.MethodGet, "/v1/disk/", http.StatusOK, map[string]any{
		"total_space":    1000,
		"used_space":     250,
		"trash_size":     10,
		"system_folders": map[string]string{"downloads": "disk:/Загрузки/"},
		"user":           map[string]string{"login": "alice"},
	})

	d, err := svc.GetDiskInfo(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(1000), d.TotalSpace)
	assert.Equal(t, int64(250), d.UsedSpace)
	assert.Equal(t, "disk:/Загрузки/", d.SystemFolders["downloads"])
	require.NotNil(t, d.User)
	assert.Equal(t, "alice", d.User.Login)
}

func TestGetMetaInfo(t *testing.T) {
	svc, srv := newService(t)
	srv.HandleJSON(http.MethodGet, "/v1/disk/resources", http.StatusOK, map[string]any{
		"name": "docs",
		"path": "disk:/docs",
		"type": "dir",
		"_embedded": map[string]any{
			"path":  "disk:/docs",
			"total": 1,
			"items": []map[string]any{{"name": "a.txt", "type": "file", "size": 3, "md5": "abc"}},
		},
	})

	limit := 5
	r, err := svc.GetMetaInfo(context.Background(), disk.MetaRequest{
		Path:    "/docs",
		Limit:   &limit,
		Fields:  []string{"name", "_embedded"},
		Preview: disk.Preview{Size: "S", Crop: true},
	})
	require.NoError(t, err)
	assert.Equal(t, "dir", r.Type)
	require.NotNil(t, r.Embedded)
	require.Len(t, r.Embedded.Items, 1)
	assert.Equal(t, "abc", r.Embedded.Items[0].MD5)

	q := srv.Requests()[0].Query
	assert.Equal(t, "/docs", q.Get("path"))
	assert.Equal(t, "5", q.Get("limit"))
	assert.Equal(t, "name,_embedded", q.Get("fields"))
	assert.Equal(t, "S", q.Get("preview_size"))
	assert.Equal(t, "true", q.Get("preview_crop"))
	assert.False(t, q.Has("offset"))
	assert.False(t, q.Has("sort"))
}

func TestGetMetaInfoTrash(t *testing.T) {
	svc, srv := newService(t)
	srv.HandleJSON(http.MethodGet, "/v1/disk/trash/resources", http.StatusOK, map[string]any{"name": "old", "origin_path": "disk:/old"})

	r, err := svc.GetMetaInfo(context.Background(), disk.MetaRequest{Path: "/old", Trash: true})
	require.NoError(t, err)
	assert.Equal(t, "disk:/old", r.OriginPath)
}

func TestGetMetaInfoNotFound(t *testing.T) {
	svc, _ := newService(t)
	_, err := svc.GetMetaInfo(context.Background(), disk.MetaRequest{Path: "/missing"})
	assert.ErrorIs(t, err, config.ErrNotFound)
}

func TestListings(t *testing.T) {
	svc, srv := newService(t)
	items := map[string]any{"items": []map[string]any{{"name": "a"}, {"name": "b"}}, "limit": 2}
	srv.HandleJSON(http.MethodGet, "/v1/disk/resources/files", http.StatusOK, items)
	srv.HandleJSON(http.MethodGet, "/v1/disk/resources/last-uploaded", http.StatusOK, items)
	srv.HandleJSON(http.MethodGet, "/v1/disk/resources/public", http.StatusOK, items)
	ctx := context.Background()

	files, err := svc.GetFilesList(ctx, disk.FilesListRequest{MediaType: []string{"image", "video"}})
	require.NoError(t, err)
	assert.Len(t, files.Items, 2)

	last, err := svc.GetLastUploaded(ctx, disk.LastUploadedRequest{})
	require.NoError(t, err)
	assert.Len(t, last.Items, 2)

	pub, err := svc.GetPublishedList(ctx, disk.PublishedListRequest{Type: "file"})
	require.NoError(t, err)
	assert.Len(t, pub.Items, 2)

	assert.Equal(t, "image,video", srv.RequestsTo(http.MethodGet, "/v1/disk/resources/files")[0].Query.Get("media_type"))
	assert.Equal(t, "file", srv.RequestsTo(http.MethodGet, "/v1/disk/resources/public")[0].Query.Get("type"))
}

func TestGetOperationStatus(t *testing.T) {
	svc, srv := newService(t)
	srv.HandleJSON(http.MethodGet, "/v1/disk/operations/7", http.StatusOK, map[string]string{"status": "in-progress"})

	op, err := svc.GetOperationStatus(context.Background(), srv.URL+"/v1/disk/operations/7")
	require.NoError(t, err)
	assert.Equal(t, "in-progress", op.Status)
	assert.True(t, op.Pending)
	assert.False(t, op.Done())
}

// Runs against the real API when a token is available.
func TestGetDiskInfoIntegration(t *testing.T) {
	token := os.Getenv("YADISK_ACCESS_TOKEN")
	if token == "" {
		t.Skip("Missing env var YADISK_ACCESS_TOKEN, skipping integration test.")
	}

	svc, err := disk.NewDiskService(context.Background(), config.Config{Disk: config.DiskConfig{AccessToken: token}})
	require.NoError(t, err)

	d, err := svc.GetDiskInfo(context.Background())
	require.NoError(t, err)
	assert.Positive(t, d.TotalSpace)
}
