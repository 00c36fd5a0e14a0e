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

// CurrentUser fetches the authenticated principal.
// GET /users/me
func (c *Client) CurrentUser(ctx context.Context) (*model.User, error) {
	var out model.User
	resp, err := c.http.R().
		SetContext(ctx).
		SetResult(&out).
		Get("/users/me")
	if err := check(resp, err); err != nil {
		return nil, err
	}
	return &out, nil
}

// ListUsers fetches the user directory. 服务端要求 manage_users 权限。
// GET /users
func (c *Client) ListUsers(ctx context.Context) ([]model.User, error) {
	var out []model.User
	resp, err := c.http.R().
		SetContext(ctx).
		SetResult(&out).
		Get("/users")
	if err := check(resp, err); err != nil {
		return nil, err
	}
	return out, nil
}

// GetUser fetches a single user by id.
// GET /users/{id}
func (c *Client) GetUser(ctx context.Context, userId string) (*model.User, error) {
	var out model.User
	resp, err := c.http.R().
		SetContext(ctx).
		SetResult(&out).
		SetPathParam("userId", userId).
		Get("/users/{userId}")
	if err := check(resp, err); err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdateUser updates profile fields of a user.
// PUT /users/{id}
func (c *Client) UpdateUser(ctx context.Context, userId string, req *model.UpdateUserReq) (*model.User, error) {
	var out model.User
	resp, err := c.http.R().
		SetContext(ctx).
		SetBody(req).
		SetResult(&out).
		SetPathParam("userId", userId).
		Put("/users/{userId}")
	if err := check(resp, err); err != nil {
		return nil, err
	}
	return &out, nil
}
