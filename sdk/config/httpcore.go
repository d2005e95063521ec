// SPDX-FileCopyrightText: © 2025 DSLab - Fondazione Bruno Kessler
//
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

type CoreHTTP interface {
	BuildURL(resource, id string, params map[string]string) string
	Do(ctx context.Context, method, url string, data []byte) ([]byte, int, error)
	// Upload streams size bytes from body with a single binary request.
	Upload(ctx context.Context, method, url string, body io.Reader, size int64, hook *ProgressHook) ([]byte, int, error)
}

type httpCore struct {
	httpClient *http.Client
	coreConfig CoreConfig
}

func NewHTTPCore(httpClient *http.Client, coreConfig CoreConfig) CoreHTTP {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: coreConfig.Timeout}
	}
	return &httpCore{httpClient: httpClient, coreConfig: coreConfig}
}

func (httpCore *httpCore) BuildURL(resource, id string, params map[string]string) string {
	base := strings.TrimSuffix(httpCore.coreConfig.BaseURL, "/")
	base += "/" + strings.Trim(resource, "/")
	if id != "" {
		base += "/" + id
	}
	q := url.Values{}
	for k, v := range params {
		if v == "" {
			continue
		}
		q.Set(k, v)
	}
	if len(q) > 0 {
		base += "?" + q.Encode()
	}
	return base
}

func (httpCore *httpCore) Do(ctx context.Context, method, url string, data []byte) ([]byte, int, error) {
	var body io.Reader
	if data != nil {
		body = bytes.NewReader(data)
	}
	req, err := http.NewRequestWithContext(ctx, method, url, body)
	if err != nil {
		return nil, 0, err
	}
	req.Header.Set("Accept", "application/json")
	if data != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	return httpCore.send(req)
}

func (httpCore *httpCore) Upload(ctx context.Context, method, url string, body io.Reader, size int64, hook *ProgressHook) ([]byte, int, error) {
	key := url
	if i := strings.LastIndex(url, "/"); i >= 0 {
		key = url[i+1:]
	}

	var reader io.Reader = http.NoBody
	if size > 0 {
		reader = trackReader(body, key, size, hook)
	}
	req, err := http.NewRequestWithContext(ctx, method, url, reader)
	if err != nil {
		return nil, 0, err
	}
	req.ContentLength = size
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Content-Type", "application/octet-stream")

	if hook != nil && hook.OnStart != nil {
		hook.OnStart(key, size)
	}
	start := time.Now()
	b, status, err := httpCore.send(req)
	if err == nil && hook != nil && hook.OnDone != nil {
		hook.OnDone(key, size, time.Since(start))
	}
	return b, status, err
}

func (httpCore *httpCore) send(req *http.Request) ([]byte, int, error) {
	if tok := httpCore.coreConfig.AccessToken; tok != "" {
		req.Header.Set("Authorization", "Bearer "+tok)
	}
	if ua := httpCore.coreConfig.UserAgent; ua != "" {
		req.Header.Set("User-Agent", ua)
	}

	resp, err := httpCore.httpClient.Do(req)
	if err != nil {
		return nil, 0, fmt.Errorf("%s %s: %w", req.Method, req.URL.Redacted(), err)
	}
	defer resp.Body.Close()

	b, rerr := io.ReadAll(resp.Body)
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return b, resp.StatusCode, newAPIError(resp.StatusCode, resp.Status, b)
	}
	if rerr != nil {
		return b, resp.StatusCode, fmt.Errorf("failed to read response body: %w", rerr)
	}
	return b, resp.StatusCode, nil
}
