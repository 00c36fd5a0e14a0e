// Copyright 2025 Tracker Team
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package api is the thin request wrapper around the tracker REST surface.
// 每个远端资源对应一个方法；每次调用按需附加 bearer token；
// 本层不做任何重试，重试策略由调用方决定。
package api

import (
	"time"

	"github.com/go-resty/resty/v2"
)

const defaultTimeout = 30 * time.Second

// TokenProvider returns the current bearer token, empty when unauthenticated.
type TokenProvider func() string

type Client struct {
	http    *resty.Client
	tokenFn TokenProvider
}

type Option func(*Client)

// WithTimeout overrides the default request timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.http.SetTimeout(d)
	}
}

// WithTokenProvider sets the bearer token source.
func WithTokenProvider(fn TokenProvider) Option {
	return func(c *Client) {
		c.tokenFn = fn
	}
}

// NewClient creates an API client rooted at baseURL (e.g. "http://host/api/v1").
func NewClient(baseURL string, opts ...Option) *Client {
	httpClient := resty.New()
	httpClient.SetBaseURL(baseURL)
	httpClient.SetTimeout(defaultTimeout)
	httpClient.SetRedirectPolicy(resty.FlexibleRedirectPolicy(5))

	c := &Client{http: httpClient}
	for _, opt := range opts {
		opt(c)
	}

	// 每次请求时附加当前 token，登录后无需重建 client
	httpClient.OnBeforeRequest(func(_ *resty.Client, req *resty.Request) error {
		if c.tokenFn != nil {
			if token := c.tokenFn(); token != "" {
				req.SetAuthToken(token)
			}
		}
		return nil
	})

	return c
}

// SetTokenProvider replaces the bearer token source.
func (c *Client) SetTokenProvider(fn TokenProvider) {
	c.tokenFn = fn
}

// BaseURL returns the configured base URL.
func (c *Client) BaseURL() string {
	return c.http.BaseURL
}

// check turns a resty result into a typed error: transport failures map to
// ErrTransport, non-2xx statuses map through the taxonomy, 2xx passes.
func check(resp *resty.Response, err error) error {
	if err != nil {
		return newTransportError(err)
	}
	if resp.IsError() {
		return newStatusError(resp.StatusCode(), resp.Body())
	}
	return nil
}
