// SPDX-FileCopyrightText: © 2025 DSLab - Fondazione Bruno Kessler
//
// SPDX-License-Identifier: Apache-2.0

// Package sdk is a client for the Yandex Disk REST API.
//
// A Client groups the services over one HTTP core, so they share the token, the
// transport and the logger:
//
//	conf, err := utils.LoadConfig(utils.DefaultIniPath(), "")
//	client, err := sdk.New(ctx, conf, config.WithLogger(logrus.StandardLogger()))
//	info, err := client.Disk.GetDiskInfo(ctx)
package sdk

import (
	"context"
	"errors"
	"fmt"

	"github.com/yadisk-tools/yadisk-sdk/sdk/config"
	"github.com/yadisk-tools/yadisk-sdk/sdk/services/disk"
	"github.com/yadisk-tools/yadisk-sdk/sdk/services/public"
	"github.com/yadisk-tools/yadisk-sdk/sdk/services/transfer"
	"github.com/yadisk-tools/yadisk-sdk/sdk/services/trash"
)

type Client struct {
	Disk     *disk.DiskService
	Trash    *trash.TrashService
	Public   *public.PublicService
	Transfer *transfer.TransferService

	core config.CoreHTTP
}

// New builds a client from conf. The S3 mirror is enabled when conf.S3 names a
// region or an endpoint.
func New(ctx context.Context, conf config.Config, opts ...config.Option) (*Client, error) {
	if conf.Disk.AccessToken == "" {
		return nil, errors.New("invalid disk config: access token is required")
	}
	var s3c *config.S3Client
	if conf.S3.Region != "" || conf.S3.EndpointURL != "" {
		var err error
		if s3c, err = config.NewS3Client(ctx, conf.S3); err != nil {
			return nil, fmt.Errorf("S3 init failed: %w", err)
		}
	}
	return NewFromCore(config.NewHTTPCore(nil, conf.Disk, opts...), s3c), nil
}

// NewFromCore builds a client over an existing core; s3 may be nil.
func NewFromCore(core config.CoreHTTP, s3 *config.S3Client) *Client {
	return &Client{
		Disk:     disk.NewDiskServiceFromCore(core),
		Trash:    trash.NewTrashServiceFromCore(core),
		Public:   public.NewPublicServiceFromCore(core),
		Transfer: transfer.NewTransferServiceFromCore(core, s3),
		core:     core,
	}
}

// Core returns the HTTP core, for calls the services do not cover.
func (c *Client) Core() config.CoreHTTP {
	return c.core
}
