// SPDX-FileCopyrightText: © 2025 DSLab - Fondazione Bruno Kessler
//
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/tidwall/gjson"
)

// CoreHTTP performs authenticated calls against the Disk API and waits for the
// asynchronous operations they start.
type CoreHTTP interface {
	BuildURL(path string, params Params, absolute bool) (string, error)
	Do(ctx context.Context, req *Request) (*Response, error)
	Wait(ctx context.Context, resp *Response, opts WaitOptions) (*Response, error)
	Logger() logrus.FieldLogger
}

// Request describes one outbound call.
type Request struct {
	Method string
	// Path is relative to the base URL unless AbsoluteURL is set.
	Path        string
	Params      Params
	Body        io.Reader
	ContentType string
	// ContentLength is set on the outgoing request when positive.
	ContentLength int64
	Header      http.Header
	AbsoluteURL bool
	WithoutAuth bool
	// Stream leaves the body of a successful response unread in Response.Stream.
	Stream bool
}

// Response is the envelope returned for every success status.
type Response struct {
	StatusCode int
	Header     http.Header
	Body       []byte
	Stream     io.ReadCloser
}

// JSON decodes the body into v.
func (r *Response) JSON(v any) error {
	if len(bytes.TrimSpace(r.Body)) == 0 {
		return errors.New("empty response body")
	}
	return json.Unmarshal(r.Body, v)
}

// Get returns the value at path in the JSON body.
func (r *Response) Get(path string) gjson.Result {
	return gjson.GetBytes(r.Body, path)
}

var okStatuses = map[int]bool{
	http.StatusOK:        true,
	http.StatusCreated:   true,
	http.StatusAccepted:  true,
	http.StatusNoContent: true,
}

// IsSuccess reports whether code is one of the statuses the API uses for success.
func IsSuccess(code int) bool {
	return okStatuses[code]
}

// Option configures the HTTP core shared by the services.
type Option func(*httpCore)

// WithLogger sets the structured logger used for request and operation logs.
func WithLogger(l logrus.FieldLogger) Option {
	return func(c *httpCore) {
		if l != nil {
			c.log = l
		}
	}
}

// WithHTTPClient overrides the transport used to reach the API.
func WithHTTPClient(h *http.Client) Option {
	return func(c *httpCore) {
		if h != nil {
			c.httpClient = h
		}
	}
}

type httpCore struct {
	httpClient *http.Client
	diskConfig DiskConfig
	log        logrus.FieldLogger
}

func NewHTTPCore(httpClient *http.Client, diskConfig DiskConfig, opts ...Option) CoreHTTP {
	if diskConfig.BaseURL == "" {
		diskConfig.BaseURL = DefaultBaseURL
	}
	if !strings.HasSuffix(diskConfig.BaseURL, "/") {
		diskConfig.BaseURL += "/"
	}
	if diskConfig.PollInterval <= 0 {
		diskConfig.PollInterval = DefaultPollInterval
	}
	if httpClient == nil {
		httpClient = &http.Client{Timeout: diskConfig.Timeout}
	}
	c := &httpCore{httpClient: httpClient, diskConfig: diskConfig, log: NopLogger()}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (httpCore *httpCore) Logger() logrus.FieldLogger {
	return httpCore.log
}

func (httpCore *httpCore) BuildURL(path string, params Params, absolute bool) (string, error) {
	base := path
	if !absolute {
		base = httpCore.diskConfig.BaseURL + strings.TrimPrefix(path, "/")
	}
	qs, err := params.Encode()
	if err != nil {
		return "", err
	}
	if qs == "" {
		return base, nil
	}
	sep := "?"
	if strings.Contains(base, "?") {
		sep = "&"
	}
	return base + sep + qs, nil
}

func (httpCore *httpCore) Do(ctx context.Context, r *Request) (*Response, error) {
	if r == nil {
		return nil, errors.New("request is nil")
	}
	if r.Method == "" {
		return nil, errors.New("HTTP method is required")
	}
	url, err := httpCore.BuildURL(r.Path, r.Params, r.AbsoluteURL)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, r.Method, url, r.Body)
	if err != nil {
		return nil, err
	}
	if r.ContentLength > 0 {
		req.ContentLength = r.ContentLength
	}
	req.Header.Set("Accept", "application/json")
	for k, values := range r.Header {
		req.Header.Del(k)
		for _, v := range values {
			req.Header.Add(k, v)
		}
	}
	if r.ContentType != "" {
		req.Header.Set("Content-Type", r.ContentType)
	}
	requestID := uuid.NewString()
	req.Header.Set("X-Request-Id", requestID)

	if !r.WithoutAuth {
		req.Header.Set("Authorization", "OAuth "+httpCore.diskConfig.AccessToken)
	}

	log := httpCore.log.WithFields(logrus.Fields{
		"method":     r.Method,
		"url":        url,
		"request_id": requestID,
	})

	start := time.Now()
	resp, err := httpCore.httpClient.Do(req)
	if err != nil {
		log.WithError(err).Debug("request failed")
		return nil, err
	}
	log = log.WithFields(logrus.Fields{"status": resp.StatusCode, "took": time.Since(start)})

	out := &Response{StatusCode: resp.StatusCode, Header: resp.Header}
	if IsSuccess(resp.StatusCode) && r.Stream {
		log.Debug("request streamed")
		out.Stream = resp.Body
		return out, nil
	}

	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response body: %w", err)
	}
	out.Body = body

	if IsSuccess(resp.StatusCode) {
		log.Debug("request done")
		return out, nil
	}

	apiErr := NewAPIError(resp.StatusCode, errorMessage(resp, body))
	log.WithError(apiErr).Debug("request rejected")
	return nil, apiErr
}

func errorMessage(resp *http.Response, body []byte) string {
	if gjson.ValidBytes(body) {
		if msg := gjson.GetBytes(body, "message"); msg.Exists() && msg.String() != "" {
			return msg.String()
		}
	}
	if text := http.StatusText(resp.StatusCode); text != "" {
		return text
	}
	return resp.Status
}
