// SPDX-FileCopyrightText: © 2025 DSLab - Fondazione Bruno Kessler
//
// SPDX-License-Identifier: Apache-2.0

package disk

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/yadisk-tools/yadisk-sdk/sdk/config"
)

type DiskService struct {
	http config.CoreHTTP
}

func NewDiskService(_ context.Context, conf config.Config, opts ...config.Option) (*DiskService, error) {
	if conf.Disk.AccessToken == "" {
		return nil, errors.New("invalid disk config: access token is required")
	}
	return NewDiskServiceFromCore(config.NewHTTPCore(nil, conf.Disk, opts...)), nil
}

// NewDiskServiceFromCore builds the service on top of an existing HTTP core, so that
// several services share one transport and logger.
func NewDiskServiceFromCore(core config.CoreHTTP) *DiskService {
	return &DiskService{http: core}
}

// Await sends req and, when the API accepts it as an async operation, waits for it
// according to opts.
func Await(ctx context.Context, core config.CoreHTTP, req *config.Request, opts config.WaitOptions) (*Operation, error) {
	resp, err := core.Do(ctx, req)
	if err != nil {
		return nil, err
	}
	accepted := resp.StatusCode == http.StatusAccepted
	resp, err = core.Wait(ctx, resp, opts)
	if err != nil {
		return nil, err
	}

	op := &Operation{Pending: accepted && opts.NoWait}
	if len(resp.Body) == 0 {
		return op, nil
	}
	if err := resp.JSON(op); err != nil {
		return nil, fmt.Errorf("failed to parse operation: %w", err)
	}
	return op, nil
}

func (s *DiskService) getJSON(ctx context.Context, path string, params config.Params, out any) error {
	resp, err := s.http.Do(ctx, &config.Request{Method: http.MethodGet, Path: path, Params: params})
	if err != nil {
		return err
	}
	if err := resp.JSON(out); err != nil {
		return fmt.Errorf("failed to parse response: %w", err)
	}
	return nil
}
