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

	"github.com/go-playground/validator/v10"

	"github.com/go-tracker/tracker/internal/tracker/model"
)

var validate = validator.New()

// ListIssues fetches the issue collection visible to the caller.
// GET /issues?status=&severity=
func (c *Client) ListIssues(ctx context.Context, filter *model.IssueFilter) ([]model.Issue, error) {
	req := c.http.R().SetContext(ctx)
	if filter != nil {
		if filter.Status != "" {
			req.SetQueryParam("status", string(filter.Status))
		}
		if filter.Severity != "" {
			req.SetQueryParam("severity", string(filter.Severity))
		}
	}

	var out []model.Issue
	resp, err := req.SetResult(&out).Get("/issues")
	if err := check(resp, err); err != nil {
		return nil, err
	}
	return out, nil
}

// GetIssue fetches a single issue by id.
// GET /issues/{id}
func (c *Client) GetIssue(ctx context.Context, issueId string) (*model.Issue, error) {
	var out model.Issue
	resp, err := c.http.R().
		SetContext(ctx).
		SetResult(&out).
		SetPathParam("issueId", issueId).
		Get("/issues/{issueId}")
	if err := check(resp, err); err != nil {
		return nil, err
	}
	return &out, nil
}

// CreateIssue creates a new issue. 请求体先在本地校验再下发。
// POST /issues
func (c *Client) CreateIssue(ctx context.Context, req *model.CreateIssueReq) (*model.Issue, error) {
	if err := validate.Struct(req); err != nil {
		return nil, err
	}

	var out model.Issue
	resp, err := c.http.R().
		SetContext(ctx).
		SetBody(req).
		SetResult(&out).
		Post("/issues")
	if err := check(resp, err); err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdateIssue partially updates an issue.
// PUT /issues/{id}
func (c *Client) UpdateIssue(ctx context.Context, issueId string, req *model.UpdateIssueReq) (*model.Issue, error) {
	if err := validate.Struct(req); err != nil {
		return nil, err
	}

	var out model.Issue
	resp, err := c.http.R().
		SetContext(ctx).
		SetBody(req).
		SetResult(&out).
		SetPathParam("issueId", issueId).
		Put("/issues/{issueId}")
	if err := check(resp, err); err != nil {
		return nil, err
	}
	return &out, nil
}

// DeleteIssue deletes an issue.
// DELETE /issues/{id}
func (c *Client) DeleteIssue(ctx context.Context, issueId string) error {
	resp, err := c.http.R().
		SetContext(ctx).
		SetPathParam("issueId", issueId).
		Delete("/issues/{issueId}")
	return check(resp, err)
}
