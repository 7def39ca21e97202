// SPDX-FileCopyrightText: © 2025 DSLab - Fondazione Bruno Kessler
//
// SPDX-License-Identifier: Apache-2.0

package transfer

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/yadisk-tools/yadisk-sdk/sdk/config"
	"github.com/yadisk-tools/yadisk-sdk/sdk/services/disk"
	"github.com/yadisk-tools/yadisk-sdk/sdk/utils"
)

// Upload sends Content to Path in two steps: ask the API for an upload link, then
// PUT the bytes to it.
func (s *TransferService) Upload(ctx context.Context, req UploadRequest) (*UploadResult, error) {
	if req.Content == nil {
		return nil, errors.New("missing content to upload")
	}
	if req.Path == "" {
		return nil, errors.New("path is required")
	}
	log := s.http.Logger().WithField("path", req.Path)

	content := req.Content
	if req.Overwrite && req.SkipExists {
		same, rewound, err := s.isSameFile(ctx, content, req.Path)
		if err != nil {
			return nil, err
		}
		if same {
			log.Debug("file already uploaded")
			return &UploadResult{Path: req.Path, Skipped: true}, nil
		}
		content = rewound
	}

	log.Info("upload file")
	link, err := s.http.Do(ctx, &config.Request{
		Method: http.MethodGet,
		Path:   "disk/resources/upload",
		Params: config.Params{"path": req.Path, "overwrite": req.Overwrite},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get upload link for %s: %w", req.Path, err)
	}
	href := link.Get("href").String()
	if href == "" {
		return nil, errors.New("upload link without href")
	}
	method := link.Get("method").String()
	if method == "" {
		method = http.MethodPut
	}

	size := req.Size
	if size <= 0 {
		size = contentLength(content)
	}
	pw := utils.NewProgressWriter(req.Path, size, req.Progress)
	if _, err := s.http.Do(ctx, &config.Request{
		Method:        method,
		Path:          href,
		AbsoluteURL:   true,
		Body:          io.TeeReader(content, pw),
		ContentType:   "application/octet-stream",
		ContentLength: size,
	}); err != nil {
		return nil, fmt.Errorf("upload of %s failed: %w", req.Path, err)
	}
	pw.Done()
	return &UploadResult{Path: req.Path, Size: pw.Written()}, nil
}

// UploadFile uploads the local file at LocalPath.
func (s *TransferService) UploadFile(ctx context.Context, req UploadFileRequest) (*UploadResult, error) {
	f, err := os.Open(req.LocalPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open local file: %w", err)
	}
	defer f.Close()

	return s.Upload(ctx, UploadRequest{
		Content:    f,
		Path:       req.Path,
		Overwrite:  req.Overwrite,
		SkipExists: req.SkipExists,
		Progress:   req.Progress,
	})
}

// UploadFromURL asks the API to fetch url into path. The download runs on the server.
func (s *TransferService) UploadFromURL(ctx context.Context, req UploadFromURLRequest) (*disk.Operation, error) {
	if req.URL == "" || req.Path == "" {
		return nil, errors.New("url and path are required")
	}
	s.http.Logger().WithFields(logrus.Fields{"url": req.URL, "path": req.Path}).Info("upload file from url")

	op, err := disk.Await(ctx, s.http, &config.Request{
		Method: http.MethodPost,
		Path:   "disk/resources/upload",
		Params: config.Params{
			"url":               req.URL,
			"path":              req.Path,
			"fields":            req.Fields,
			"disable_redirects": req.DisableRedirects,
		},
	}, req.WaitOptions)
	if err != nil {
		return nil, fmt.Errorf("upload from %s failed: %w", req.URL, err)
	}
	return op, nil
}

// isSameFile compares the md5 of content with the one stored for path. It returns a
// reader positioned at the start of the content for the upload that may follow.
func (s *TransferService) isSameFile(ctx context.Context, content io.Reader, path string) (bool, io.Reader, error) {
	meta, err := s.disk.GetMetaInfo(ctx, disk.MetaRequest{Path: path, Fields: []string{"md5"}})
	if errors.Is(err, config.ErrNotFound) {
		return false, content, nil
	}
	if err != nil {
		return false, nil, err
	}

	seeker, ok := content.(io.Seeker)
	if !ok {
		data, err := io.ReadAll(content)
		if err != nil {
			return false, nil, fmt.Errorf("failed to read content: %w", err)
		}
		sum, err := utils.MD5Hex(bytes.NewReader(data))
		if err != nil {
			return false, nil, err
		}
		return sum == meta.MD5, bytes.NewReader(data), nil
	}

	start, err := seeker.Seek(0, io.SeekCurrent)
	if err != nil {
		return false, nil, fmt.Errorf("seek error: %w", err)
	}
	sum, err := utils.MD5Hex(content)
	if err != nil {
		return false, nil, err
	}
	if _, err := seeker.Seek(start, io.SeekStart); err != nil {
		return false, nil, fmt.Errorf("rewind error: %w", err)
	}
	return sum == meta.MD5, content, nil
}

// contentLength returns the number of bytes left in r, or -1 when it cannot tell.
func contentLength(r io.Reader) int64 {
	switch v := r.(type) {
	case interface{ Len() int }:
		return int64(v.Len())
	case *os.File:
		info, err := v.Stat()
		if err != nil || !info.Mode().IsRegular() {
			return -1
		}
		pos, err := v.Seek(0, io.SeekCurrent)
		if err != nil {
			return -1
		}
		return info.Size() - pos
	}
	return -1
}
