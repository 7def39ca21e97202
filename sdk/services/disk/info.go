// SPDX-FileCopyrightText: © 2025 DSLab - Fondazione Bruno Kessler
//
// SPDX-License-Identifier: Apache-2.0

package disk

import (
	"context"
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/yadisk-tools/yadisk-sdk/sdk/config"
)

// GetDiskInfo returns quota and system folders of the disk.
func (s *DiskService) GetDiskInfo(ctx context.Context) (*Disk, error) {
	s.http.Logger().Info("get disk info")
	var d Disk
	if err := s.getJSON(ctx, "disk/", nil, &d); err != nil {
		return nil, fmt.Errorf("get disk info failed: %w", err)
	}
	return &d, nil
}

// GetMetaInfo returns the metadata of a file or folder on the disk or in the trash.
// Folders carry their content in Embedded, paged by Limit/Offset.
func (s *DiskService) GetMetaInfo(ctx context.Context, req MetaRequest) (*Resource, error) {
	if req.Path == "" {
		return nil, errors.New("path is required")
	}
	params := config.Params{
		"path":   req.Path,
		"sort":   req.Sort,
		"limit":  req.Limit,
		"offset": req.Offset,
		"fields": req.Fields,
	}
	req.Preview.params(params)

	endpoint := "disk/resources"
	if req.Trash {
		endpoint = "disk/trash/resources"
	}
	s.http.Logger().WithFields(logrus.Fields{"path": req.Path, "trash": req.Trash}).Info("get meta info")

	var r Resource
	if err := s.getJSON(ctx, endpoint, params, &r); err != nil {
		return nil, fmt.Errorf("get meta info of %s failed: %w", req.Path, err)
	}
	return &r, nil
}

// GetFilesList returns a flat list of all files of the disk.
func (s *DiskService) GetFilesList(ctx context.Context, req FilesListRequest) (*FilesResourceList, error) {
	params := config.Params{
		"limit":      req.Limit,
		"offset":     req.Offset,
		"media_type": req.MediaType,
		"fields":     req.Fields,
	}
	req.Preview.params(params)
	s.http.Logger().Info("get files list")

	var l FilesResourceList
	if err := s.getJSON(ctx, "disk/resources/files", params, &l); err != nil {
		return nil, fmt.Errorf("get files list failed: %w", err)
	}
	return &l, nil
}

// GetLastUploaded returns the most recently uploaded files.
func (s *DiskService) GetLastUploaded(ctx context.Context, req LastUploadedRequest) (*LastUploadedResourceList, error) {
	params := config.Params{
		"limit":      req.Limit,
		"media_type": req.MediaType,
		"fields":     req.Fields,
	}
	req.Preview.params(params)
	s.http.Logger().Info("get last uploaded")

	var l LastUploadedResourceList
	if err := s.getJSON(ctx, "disk/resources/last-uploaded", params, &l); err != nil {
		return nil, fmt.Errorf("get last uploaded failed: %w", err)
	}
	return &l, nil
}

// GetPublishedList returns the resources that have a public link.
func (s *DiskService) GetPublishedList(ctx context.Context, req PublishedListRequest) (*PublicResourcesList, error) {
	params := config.Params{
		"limit":  req.Limit,
		"offset": req.Offset,
		"type":   req.Type,
		"fields": req.Fields,
	}
	req.Preview.params(params)
	s.http.Logger().Info("get published list")

	var l PublicResourcesList
	if err := s.getJSON(ctx, "disk/resources/public", params, &l); err != nil {
		return nil, fmt.Errorf("get published list failed: %w", err)
	}
	return &l, nil
}

// GetOperationStatus reads the status of an operation started with NoWait.
func (s *DiskService) GetOperationStatus(ctx context.Context, href string) (*Operation, error) {
	if href == "" {
		return nil, errors.New("operation href is required")
	}
	resp, err := s.http.Do(ctx, &config.Request{Method: "GET", Path: href, AbsoluteURL: true})
	if err != nil {
		return nil, fmt.Errorf("get operation status failed: %w", err)
	}
	op := &Operation{Link: Link{Href: href}}
	if err := resp.JSON(op); err != nil {
		return nil, fmt.Errorf("failed to parse operation: %w", err)
	}
	op.Pending = op.Status != config.OperationSuccess
	return op, nil
}
