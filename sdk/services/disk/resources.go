// SPDX-FileCopyrightText: © 2025 DSLab - Fondazione Bruno Kessler
//
// SPDX-License-Identifier: Apache-2.0

package disk

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/sirupsen/logrus"
	"github.com/yadisk-tools/yadisk-sdk/sdk/config"
)

// CreateFolder creates one folder; its parent must exist.
func (s *DiskService) CreateFolder(ctx context.Context, req CreateFolderRequest) (*Link, error) {
	if req.Path == "" {
		return nil, errors.New("path is required")
	}
	s.http.Logger().WithField("path", req.Path).Info("create folder")

	resp, err := s.http.Do(ctx, &config.Request{
		Method: http.MethodPut,
		Path:   "disk/resources",
		Params: config.Params{"path": req.Path, "fields": req.Fields},
	})
	if err != nil {
		return nil, fmt.Errorf("create folder %s failed: %w", req.Path, err)
	}
	var l Link
	if err := resp.JSON(&l); err != nil {
		return nil, fmt.Errorf("failed to parse response: %w", err)
	}
	return &l, nil
}

// Copy copies a file or folder. Copying a folder runs asynchronously on the server.
func (s *DiskService) Copy(ctx context.Context, req CopyRequest) (*Operation, error) {
	if req.From == "" || req.To == "" {
		return nil, errors.New("source and destination paths are required")
	}
	s.http.Logger().WithFields(logrus.Fields{"from": req.From, "to": req.To}).Info("copy resource")

	op, err := Await(ctx, s.http, &config.Request{
		Method: http.MethodPost,
		Path:   "disk/resources/copy",
		Params: config.Params{
			"from":      req.From,
			"path":      req.To,
			"overwrite": req.Overwrite,
			"fields":    req.Fields,
		},
	}, req.WaitOptions)
	if err != nil {
		return nil, fmt.Errorf("copy %s to %s failed: %w", req.From, req.To, err)
	}
	return op, nil
}

// Move moves or renames a file or folder.
func (s *DiskService) Move(ctx context.Context, req MoveRequest) (*Operation, error) {
	if req.From == "" || req.To == "" {
		return nil, errors.New("source and destination paths are required")
	}
	s.http.Logger().WithFields(logrus.Fields{"from": req.From, "to": req.To}).Info("move resource")

	op, err := Await(ctx, s.http, &config.Request{
		Method: http.MethodPost,
		Path:   "disk/resources/move",
		Params: config.Params{
			"from":      req.From,
			"path":      req.To,
			"overwrite": req.Overwrite,
			"fields":    req.Fields,
		},
	}, req.WaitOptions)
	if err != nil {
		return nil, fmt.Errorf("move %s to %s failed: %w", req.From, req.To, err)
	}
	return op, nil
}

// Delete moves a resource to the trash, or removes it for good with Permanently.
func (s *DiskService) Delete(ctx context.Context, req DeleteRequest) (bool, error) {
	if req.Path == "" {
		return false, errors.New("path is required")
	}
	s.http.Logger().WithFields(logrus.Fields{"path": req.Path, "permanently": req.Permanently}).Info("delete resource")

	_, err := Await(ctx, s.http, &config.Request{
		Method: http.MethodDelete,
		Path:   "disk/resources",
		Params: config.Params{"path": req.Path, "permanently": req.Permanently},
	}, req.WaitOptions)
	if err != nil {
		return false, fmt.Errorf("delete %s failed: %w", req.Path, err)
	}
	return true, nil
}

// Publish opens a public link to the resource; the link is read from its metadata.
func (s *DiskService) Publish(ctx context.Context, path string) (*Link, error) {
	return s.publish(ctx, "disk/resources/publish", path)
}

// Unpublish closes the public link of the resource.
func (s *DiskService) Unpublish(ctx context.Context, path string) (*Link, error) {
	return s.publish(ctx, "disk/resources/unpublish", path)
}

func (s *DiskService) publish(ctx context.Context, endpoint, path string) (*Link, error) {
	if path == "" {
		return nil, errors.New("path is required")
	}
	s.http.Logger().WithFields(logrus.Fields{"path": path, "endpoint": endpoint}).Info("change publication")

	resp, err := s.http.Do(ctx, &config.Request{
		Method: http.MethodPut,
		Path:   endpoint,
		Params: config.Params{"path": path},
	})
	if err != nil {
		return nil, fmt.Errorf("%s of %s failed: %w", endpoint, path, err)
	}
	var l Link
	if err := resp.JSON(&l); err != nil {
		return nil, fmt.Errorf("failed to parse response: %w", err)
	}
	return &l, nil
}
