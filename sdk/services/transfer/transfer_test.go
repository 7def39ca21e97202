// SPDX-FileCopyrightText: © 2025 DSLab - Fondazione Bruno Kessler
//
// SPDX-License-Identifier: Apache-2.0

package transfer_test

import (
	"io"
	"net/http"
	"net/url"
	"sync"
	"testing"

	"github.com/yadisk-tools/yadisk-sdk/sdk/config"
	"github.com/yadisk-tools/yadisk-sdk/sdk/internal/disktest"
	"github.com/yadisk-tools/yadisk-sdk/sdk/services/transfer"
)

// uploads is a fake upload target: the link handler points to /upload?path=...
// and the PUT handler stores the bodies by disk path.
type uploads struct {
	mu    sync.Mutex
	files map[string]string
	order []string
}

func newUploads(srv *disktest.Server) *uploads {
	u := &uploads{files: map[string]string{}}
	srv.Handle(http.MethodGet, "/v1/disk/resources/upload", func(w http.ResponseWriter, r *http.Request) {
		href := srv.URL + "/upload?path=" + url.QueryEscape(r.URL.Query().Get("path"))
		disktest.JSON(http.StatusOK, map[string]any{"href": href, "method": "PUT", "templated": false})(w, r)
	})
	srv.Handle(http.MethodPut, "/upload", func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		p := r.URL.Query().Get("path")
		u.mu.Lock()
		u.files[p] = string(body)
		u.order = append(u.order, p)
		u.mu.Unlock()
		w.WriteHeader(http.StatusCreated)
	})
	return u
}

func (u *uploads) get(p string) (string, bool) {
	u.mu.Lock()
	defer u.mu.Unlock()
	s, ok := u.files[p]
	return s, ok
}

func (u *uploads) paths() []string {
	u.mu.Lock()
	defer u.mu.Unlock()
	return append([]string(nil), u.order...)
}

func newService(t *testing.T, s3 *config.S3Client) (*transfer.TransferService, *disktest.Server) {
	t.Helper()
	srv := disktest.New(t)
	return transfer.NewTransferServiceFromCore(srv.Core(), s3), srv
}
