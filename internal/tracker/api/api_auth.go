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

package api

import (
	"context"

	"github.com/go-tracker/tracker/internal/tracker/model"
)

// Login exchanges credentials for an access token.
// POST /auth/login
func (c *Client) Login(ctx context.Context, email, password string) (*model.AuthResp, error) {
	var out model.AuthResp
	resp, err := c.http.R().
		SetContext(ctx).
		SetBody(&model.LoginReq{Email: email, Password: password}).
		SetResult(&out).
		Post("/auth/login")
	if err := check(resp, err); err != nil {
		return nil, err
	}
	return &out, nil
}

// Register creates a new account. 服务端对重复邮箱返回 409。
// POST /auth/register
func (c *Client) Register(ctx context.Context, req *model.RegisterReq) (*model.AuthResp, error) {
	var out model.AuthResp
	resp, err := c.http.R().
		SetContext(ctx).
		SetBody(req).
		SetResult(&out).
		Post("/auth/register")
	if err := check(resp, err); err != nil {
		return nil, err
	}
	return &out, nil
}
