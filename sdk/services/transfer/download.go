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
	"path"
	"path/filepath"
	"strings"

	"github.com/spf13/cast"
	"github.com/yadisk-tools/yadisk-sdk/sdk/config"
	"github.com/yadisk-tools/yadisk-sdk/sdk/utils"
)

// Download returns the whole content of the file at Path.
func (s *TransferService) Download(ctx context.Context, req DownloadRequest) ([]byte, error) {
	var buf bytes.Buffer
	if _, err := s.DownloadTo(ctx, req, &buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// DownloadTo streams the file at Path into w and returns the number of bytes copied.
func (s *TransferService) DownloadTo(ctx context.Context, req DownloadRequest, w io.Writer) (int64, error) {
	body, size, err := s.open(ctx, req.Path)
	if err != nil {
		return 0, err
	}
	defer body.Close()

	pw := utils.NewProgressWriter(req.Path, size, req.Progress)
	n, err := io.Copy(w, io.TeeReader(body, pw))
	if err != nil {
		return n, fmt.Errorf("download of %s failed: %w", req.Path, err)
	}
	pw.Done()
	return n, nil
}

// DownloadToFile writes the file at Path to local. When local is an existing
// directory, or ends with a separator, the remote file name is kept.
func (s *TransferService) DownloadToFile(ctx context.Context, req DownloadRequest, local string) (*DownloadInfo, error) {
	target, err := localTarget(local, remoteName(req.Path))
	if err != nil {
		return nil, err
	}
	if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		return nil, fmt.Errorf("mkdir error: %w", err)
	}

	f, err := os.Create(target)
	if err != nil {
		return nil, fmt.Errorf("create file error: %w", err)
	}
	n, err := s.DownloadTo(ctx, req, f)
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		_ = os.Remove(target)
		return nil, err
	}
	return &DownloadInfo{Filename: filepath.Base(target), Size: n, Path: target}, nil
}

// open resolves the download link of path and returns the content stream with its
// size, or -1 when the server does not send one.
func (s *TransferService) open(ctx context.Context, diskPath string) (io.ReadCloser, int64, error) {
	if diskPath == "" {
		return nil, 0, errors.New("path is required")
	}
	s.http.Logger().WithField("path", diskPath).Info("download file")

	link, err := s.http.Do(ctx, &config.Request{
		Method: http.MethodGet,
		Path:   "disk/resources/download",
		Params: config.Params{"path": diskPath},
	})
	if err != nil {
		return nil, 0, fmt.Errorf("failed to get download link for %s: %w", diskPath, err)
	}
	href := link.Get("href").String()
	if href == "" {
		return nil, 0, errors.New("download link without href")
	}

	content, err := s.http.Do(ctx, &config.Request{
		Method:      http.MethodGet,
		Path:        href,
		AbsoluteURL: true,
		Stream:      true,
	})
	if err != nil {
		return nil, 0, fmt.Errorf("download of %s failed: %w", diskPath, err)
	}
	size := int64(-1)
	if v := content.Header.Get("Content-Length"); v != "" {
		if n, err := cast.ToInt64E(v); err == nil {
			size = n
		}
	}
	return content.Stream, size, nil
}

// remoteName is the last element of a disk path, with or without the "disk:" prefix.
func remoteName(diskPath string) string {
	return path.Base(strings.TrimPrefix(diskPath, "disk:"))
}

func localTarget(local, name string) (string, error) {
	if local == "" {
		return name, nil
	}
	if strings.HasSuffix(local, string(os.PathSeparator)) || strings.HasSuffix(local, "/") {
		return filepath.Join(local, name), nil
	}
	st, err := os.Stat(local)
	switch {
	case err == nil && st.IsDir():
		return filepath.Join(local, name), nil
	case err == nil, errors.Is(err, os.ErrNotExist):
		return local, nil
	default:
		return "", fmt.Errorf("stat error: %w", err)
	}
}
