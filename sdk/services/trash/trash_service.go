// SPDX-FileCopyrightText: © 2025 DSLab - Fondazione Bruno Kessler
//
// SPDX-License-Identifier: Apache-2.0

package trash

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/sirupsen/logrus"
	"github.com/yadisk-tools/yadisk-sdk/sdk/config"
	"github.com/yadisk-tools/yadisk-sdk/sdk/services/disk"
)

type TrashService struct {
	http config.CoreHTTP
	disk *disk.DiskService
}

func NewTrashService(_ context.Context, conf config.Config, opts ...config.Option) (*TrashService, error) {
	if conf.Disk.AccessToken == "" {
		return nil, errors.New("invalid disk config: access token is required")
	}
	return NewTrashServiceFromCore(config.NewHTTPCore(nil, conf.Disk, opts...)), nil
}

func NewTrashServiceFromCore(core config.CoreHTTP) *TrashService {
	return &TrashService{http: core, disk: disk.NewDiskServiceFromCore(core)}
}

type EmptyRequest struct {
	// Path removes a single resource from the trash; empty clears the whole trash.
	Path string
	config.WaitOptions
}

type RestoreRequest struct {
	Path string
	// Name renames the restored resource.
	Name      string
	Overwrite bool
	config.WaitOptions
}

// GetMetaInfo returns the metadata of a resource in the trash ("trash:/" lists it all).
func (s *TrashService) GetMetaInfo(ctx context.Context, req disk.MetaRequest) (*disk.Resource, error) {
	req.Trash = true
	return s.disk.GetMetaInfo(ctx, req)
}

// Empty clears the trash or removes one resource from it.
func (s *TrashService) Empty(ctx context.Context, req EmptyRequest) (bool, error) {
	s.http.Logger().WithField("path", req.Path).Info("empty trash")

	_, err := disk.Await(ctx, s.http, &config.Request{
		Method: http.MethodDelete,
		Path:   "disk/trash/resources",
		Params: config.Params{"path": req.Path},
	}, req.WaitOptions)
	if err != nil {
		return false, fmt.Errorf("empty trash failed: %w", err)
	}
	return true, nil
}

// Restore puts a resource back to its original place, or under Name.
func (s *TrashService) Restore(ctx context.Context, req RestoreRequest) (*disk.Operation, error) {
	if req.Path == "" {
		return nil, errors.New("path is required")
	}
	s.http.Logger().WithFields(logrus.Fields{"path": req.Path, "name": req.Name}).Info("restore from trash")

	op, err := disk.Await(ctx, s.http, &config.Request{
		Method: http.MethodPut,
		Path:   "disk/trash/resources/restore",
		Params: config.Params{
			"path":      req.Path,
			"name":      req.Name,
			"overwrite": req.Overwrite,
		},
	}, req.WaitOptions)
	if err != nil {
		return nil, fmt.Errorf("restore %s failed: %w", req.Path, err)
	}
	return op, nil
}
