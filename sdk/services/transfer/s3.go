// SPDX-FileCopyrightText: © 2025 DSLab - Fondazione Bruno Kessler
//
// SPDX-License-Identifier: Apache-2.0

package transfer

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"
)

var errNoS3 = errors.New("S3 is not configured")

// MirrorToS3 streams a disk file into an S3 bucket without buffering it locally.
// It returns the location reported by S3, or "" when SkipExists found the object.
func (s *TransferService) MirrorToS3(ctx context.Context, req MirrorRequest) (string, error) {
	if s.s3 == nil {
		return "", errNoS3
	}
	key := req.Key
	if key == "" {
		key = strings.TrimPrefix(strings.TrimPrefix(req.Path, "disk:"), "/")
	}
	if key == "" {
		return "", errors.New("missing S3 key")
	}
	log := s.http.Logger().WithFields(logrus.Fields{"path": req.Path, "bucket": req.Bucket, "key": key})
	if req.SkipExists {
		exists, err := s.s3.Exists(ctx, req.Bucket, key)
		if err != nil {
			return "", err
		}
		if exists {
			log.Debug("object already in bucket")
			return "", nil
		}
	}
	log.Info("mirror to S3")

	body, _, err := s.open(ctx, req.Path)
	if err != nil {
		return "", err
	}
	defer body.Close()

	location, err := s.s3.Put(ctx, req.Bucket, key, body, "")
	if err != nil {
		return "", err
	}
	log.WithField("location", location).Debug("mirrored")
	return location, nil
}

// ImportFromS3 uploads an S3 object to the disk.
func (s *TransferService) ImportFromS3(ctx context.Context, req ImportRequest) (*UploadResult, error) {
	if s.s3 == nil {
		return nil, errNoS3
	}
	if req.Key == "" {
		return nil, errors.New("missing S3 key")
	}
	s.http.Logger().WithFields(logrus.Fields{"bucket": req.Bucket, "key": req.Key, "path": req.Path}).Info("import from S3")

	obj, err := s.s3.Get(ctx, req.Bucket, req.Key)
	if err != nil {
		return nil, err
	}
	defer obj.Body.Close()

	res, err := s.Upload(ctx, UploadRequest{
		Content:    obj.Body,
		Path:       req.Path,
		Overwrite:  req.Overwrite,
		SkipExists: req.SkipExists,
		Size:       obj.Size,
	})
	if err != nil {
		return nil, fmt.Errorf("import of key %s failed: %w", req.Key, err)
	}
	return res, nil
}
