// SPDX-FileCopyrightText: © 2025 DSLab - Fondazione Bruno Kessler
//
// SPDX-License-Identifier: Apache-2.0

// Package public reads resources shared through a public link. Reads are sent
// without the OAuth header; saving a public resource to the disk is authenticated.
package public

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/sirupsen/logrus"
	"github.com/yadisk-tools/yadisk-sdk/sdk/config"
	"github.com/yadisk-tools/yadisk-sdk/sdk/services/disk"
)

type PublicService struct {
	http config.CoreHTTP
}

// NewPublicService does not require an access token unless SaveToDisk is used.
func NewPublicService(_ context.Context, conf config.Config, opts ...config.Option) (*PublicService, error) {
	return NewPublicServiceFromCore(config.NewHTTPCore(nil, conf.Disk, opts...)), nil
}

func NewPublicServiceFromCore(core config.CoreHTTP) *PublicService {
	return &PublicService{http: core}
}

type MetaRequest struct {
	PublicKey string // public key or public URL
	Path      string // path inside a published folder
	Sort      string
	Limit     *int
	Offset    *int
	Fields    []string
	disk.Preview
}

type DownloadRequest struct {
	PublicKey string
	Path      string
}

type SaveRequest struct {
	PublicKey string
	Path      string
	Name      string
	SavePath  string
	config.WaitOptions
}

func (s *PublicService) GetMetaInfo(ctx context.Context, req MetaRequest) (*disk.Resource, error) {
	if req.PublicKey == "" {
		return nil, errors.New("public key is required")
	}
	params := config.Params{
		"public_key":   req.PublicKey,
		"path":         req.Path,
		"sort":         req.Sort,
		"limit":        req.Limit,
		"offset":       req.Offset,
		"fields":       req.Fields,
		"preview_size": req.Size,
	}
	if req.Crop {
		params["preview_crop"] = true
	}
	s.http.Logger().WithFields(logrus.Fields{"public_key": req.PublicKey, "path": req.Path}).Info("get public meta info")

	resp, err := s.http.Do(ctx, &config.Request{
		Method:      http.MethodGet,
		Path:        "disk/public/resources",
		Params:      params,
		WithoutAuth: true,
	})
	if err != nil {
		return nil, fmt.Errorf("get public meta info failed: %w", err)
	}
	var r disk.Resource
	if err := resp.JSON(&r); err != nil {
		return nil, fmt.Errorf("failed to parse response: %w", err)
	}
	return &r, nil
}

// Download opens the content of a public file. The caller closes the reader.
func (s *PublicService) Download(ctx context.Context, req DownloadRequest) (io.ReadCloser, error) {
	if req.PublicKey == "" {
		return nil, errors.New("public key is required")
	}
	s.http.Logger().WithFields(logrus.Fields{"public_key": req.PublicKey, "path": req.Path}).Info("download public file")

	link, err := s.http.Do(ctx, &config.Request{
		Method:      http.MethodGet,
		Path:        "disk/public/resources/download",
		Params:      config.Params{"public_key": req.PublicKey, "path": req.Path},
		WithoutAuth: true,
	})
	if err != nil {
		return nil, fmt.Errorf("get public download link failed: %w", err)
	}
	href := link.Get("href").String()
	if href == "" {
		return nil, errors.New("download link without href")
	}
	content, err := s.http.Do(ctx, &config.Request{
		Method:      http.MethodGet,
		Path:        href,
		AbsoluteURL: true,
		WithoutAuth: true,
		Stream:      true,
	})
	if err != nil {
		return nil, fmt.Errorf("download public file failed: %w", err)
	}
	return content.Stream, nil
}

// SaveToDisk copies a public resource into the Downloads folder, or SavePath.
func (s *PublicService) SaveToDisk(ctx context.Context, req SaveRequest) (*disk.Operation, error) {
	if req.PublicKey == "" {
		return nil, errors.New("public key is required")
	}
	s.http.Logger().WithFields(logrus.Fields{"public_key": req.PublicKey, "save_path": req.SavePath}).Info("save public resource")

	op, err := disk.Await(ctx, s.http, &config.Request{
		Method: http.MethodPost,
		Path:   "disk/public/resources/save-to-disk",
		Params: config.Params{
			"public_key": req.PublicKey,
			"path":       req.Path,
			"name":       req.Name,
			"save_path":  req.SavePath,
		},
	}, req.WaitOptions)
	if err != nil {
		return nil, fmt.Errorf("save public resource failed: %w", err)
	}
	return op, nil
}
