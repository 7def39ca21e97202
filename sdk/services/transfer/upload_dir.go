// SPDX-FileCopyrightText: © 2025 DSLab - Fondazione Bruno Kessler
//
// SPDX-License-Identifier: Apache-2.0

package transfer

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"path"
	"path/filepath"

	"github.com/sirupsen/logrus"
	"github.com/yadisk-tools/yadisk-sdk/sdk/config"
	"github.com/yadisk-tools/yadisk-sdk/sdk/services/disk"
)

// UploadDirectory mirrors the tree under LocalPath into Path, depth first, each
// folder before its content. LocalPath itself is not created; folders that already
// exist on the disk are kept.
func (s *TransferService) UploadDirectory(ctx context.Context, req UploadDirectoryRequest) ([]UploadResult, error) {
	if req.LocalPath == "" {
		return nil, errors.New("missing required input directory")
	}
	dest := req.Path
	if dest == "" {
		dest = "/"
	}
	log := s.http.Logger().WithFields(logrus.Fields{"local_path": req.LocalPath, "path": dest})
	log.Info("upload directory")

	var results []UploadResult
	err := filepath.WalkDir(req.LocalPath, func(localPath string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return fmt.Errorf("walk error: %w", walkErr)
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		rel, err := filepath.Rel(req.LocalPath, localPath)
		if err != nil {
			return fmt.Errorf("relative path error: %w", err)
		}
		if rel == "." {
			return nil
		}
		diskPath := path.Join(dest, filepath.ToSlash(rel))

		if d.IsDir() {
			_, err := s.disk.CreateFolder(ctx, disk.CreateFolderRequest{Path: diskPath})
			if err != nil && !config.IsFolderAlreadyExists(err) {
				return err
			}
			return nil
		}

		res, err := s.UploadFile(ctx, UploadFileRequest{
			LocalPath:  localPath,
			Path:       diskPath,
			Overwrite:  req.Overwrite,
			SkipExists: req.SkipExists,
		})
		if err != nil {
			return err
		}
		results = append(results, *res)
		return nil
	})
	if err != nil {
		return results, err
	}
	log.WithField("files", len(results)).Debug("directory uploaded")
	return results, nil
}
