// SPDX-FileCopyrightText: © 2025 DSLab - Fondazione Bruno Kessler
//
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/sirupsen/logrus"
)

const (
	// DefaultPollInterval is the pause between two status checks of an operation.
	DefaultPollInterval = 3 * time.Second

	// OperationSuccess is the only terminal status of an async operation.
	OperationSuccess = "success"
	OperationFailed  = "failed"
)

// WaitOptions controls the wait on a 202 Accepted response. The zero value waits
// with the configured poll interval.
type WaitOptions struct {
	NoWait   bool
	Interval time.Duration
}

// Wait blocks until the operation started by resp reports success. Responses other
// than 202, or NoWait, are returned untouched. There is no timeout and no retry
// limit: the loop ends on success, on a failed status check, or when ctx is done.
func (httpCore *httpCore) Wait(ctx context.Context, resp *Response, opts WaitOptions) (*Response, error) {
	if resp == nil {
		return nil, errors.New("response is nil")
	}
	if opts.NoWait || resp.StatusCode != http.StatusAccepted {
		return resp, nil
	}

	href := resp.Get("href").String()
	if href == "" {
		return nil, errors.New("accepted response without operation href")
	}

	interval := opts.Interval
	if interval <= 0 {
		interval = httpCore.diskConfig.PollInterval
	}

	log := httpCore.log.WithFields(logrus.Fields{"operation": href, "interval": interval})
	log.Debug("waiting for operation")

	for attempt := 1; ; attempt++ {
		if err := sleep(ctx, interval); err != nil {
			return nil, err
		}
		status, err := httpCore.Do(ctx, &Request{
			Method:      http.MethodGet,
			Path:        href,
			AbsoluteURL: true,
		})
		if err != nil {
			return nil, err
		}
		state := status.Get("status").String()
		if status.StatusCode == http.StatusOK && state == OperationSuccess {
			log.WithField("attempts", attempt).Debug("operation finished")
			return status, nil
		}
		// a failed status is not terminal; only ctx ends the wait
		if state == OperationFailed {
			log.WithField("attempts", attempt).Warn("operation reports failed status, still waiting")
		}
	}
}

func sleep(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
