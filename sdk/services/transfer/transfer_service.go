// SPDX-FileCopyrightText: © 2025 DSLab - Fondazione Bruno Kessler
//
// SPDX-License-Identifier: Apache-2.0

package transfer

import (
	"context"
	"errors"
	"fmt"

	"github.com/yadisk-tools/yadisk-sdk/sdk/config"
	"github.com/yadisk-tools/yadisk-sdk/sdk/services/disk"
)

type TransferService struct {
	http config.CoreHTTP
	disk *disk.DiskService
	s3   *config.S3Client
}

// NewTransferService builds the service; the S3 client is only created when an S3
// region or endpoint is configured.
func NewTransferService(ctx context.Context, conf config.Config, opts ...config.Option) (*TransferService, error) {
	if conf.Disk.AccessToken == "" {
		return nil, errors.New("invalid disk config: access token is required")
	}
	s := NewTransferServiceFromCore(config.NewHTTPCore(nil, conf.Disk, opts...), nil)

	if conf.S3.Region != "" || conf.S3.EndpointURL != "" {
		s3c, err := config.NewS3Client(ctx, conf.S3)
		if err != nil {
			return nil, fmt.Errorf("S3 init failed: %w", err)
		}
		s.s3 = s3c
	}
	return s, nil
}

// NewTransferServiceFromCore shares core with other services; s3 may be nil.
func NewTransferServiceFromCore(core config.CoreHTTP, s3 *config.S3Client) *TransferService {
	return &TransferService{http: core, disk: disk.NewDiskServiceFromCore(core), s3: s3}
}
