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

// Package controller 先拉取后过滤：fetch 全量可见集合，再用 authz
// 过滤渲染范围。重新拉取由显式动作或实时通道信号触发。
package controller

import (
	"context"
	"encoding/json"
	"errors"
	"slices"
	"sync"

	"golang.org/x/sync/singleflight"

	"github.com/go-tracker/tracker/internal/tracker/api"
	"github.com/go-tracker/tracker/internal/tracker/authz"
	"github.com/go-tracker/tracker/internal/tracker/model"
	"github.com/go-tracker/tracker/internal/tracker/session"
	"github.com/go-tracker/tracker/pkg/log"
	"github.com/go-tracker/tracker/pkg/safe"
)

// ErrNotVisible 当前角色看不到该 issue
var ErrNotVisible = errors.New("issue not visible to current role")

// ChangeFunc is notified with a fresh snapshot after every refresh.
type ChangeFunc func(issues []model.Issue)

type IssueController struct {
	api     *api.Client
	session *session.Store

	// 并发的重复 refresh 合并为一次上游请求
	group singleflight.Group

	mu        sync.RWMutex
	issues    []model.Issue
	filter    model.IssueFilter
	listeners []ChangeFunc
}

func NewIssueController(apiClient *api.Client, store *session.Store) *IssueController {
	return &IssueController{
		api:     apiClient,
		session: store,
	}
}

// SetFilter sets the list filter used by subsequent refreshes.
func (c *IssueController) SetFilter(filter model.IssueFilter) {
	c.mu.Lock()
	c.filter = filter
	c.mu.Unlock()
}

// OnChange registers a snapshot listener.
func (c *IssueController) OnChange(fn ChangeFunc) {
	c.mu.Lock()
	c.listeners = append(c.listeners, fn)
	c.mu.Unlock()
}

// Issues returns the last published snapshot.
func (c *IssueController) Issues() []model.Issue {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return slices.Clone(c.issues)
}

// Refresh fetches the issue list, filters it through the permission
// evaluator and publishes the snapshot. Overlapping calls are coalesced
// into a single upstream request; every caller gets the same result.
func (c *IssueController) Refresh(ctx context.Context) ([]model.Issue, error) {
	result, err, _ := c.group.Do("issues", func() (interface{}, error) {
		c.mu.RLock()
		filter := c.filter
		c.mu.RUnlock()

		fetched, err := c.api.ListIssues(ctx, &filter)
		if err != nil {
			return nil, err
		}

		visible := c.visible(fetched)

		c.mu.Lock()
		c.issues = visible
		listeners := slices.Clone(c.listeners)
		c.mu.Unlock()

		for _, fn := range listeners {
			fn(slices.Clone(visible))
		}
		return visible, nil
	})
	if err != nil {
		return nil, err
	}
	return result.([]model.Issue), nil
}

// Detail fetches a single issue and applies the view filter.
func (c *IssueController) Detail(ctx context.Context, issueId string) (*model.Issue, error) {
	issue, err := c.api.GetIssue(ctx, issueId)
	if err != nil {
		return nil, err
	}

	principal := c.session.Principal()
	if principal == nil || !authz.CanView(principal.Role, issue.ReporterId, principal.Id) {
		return nil, ErrNotVisible
	}
	return issue, nil
}

// OnPush adapts the controller to realtime.UpdateFunc: a push frame is
// only a staleness signal, so re-fetch the canonical list instead of
// trusting the payload. 回调幂等，可被快速连续触发。
func (c *IssueController) OnPush(json.RawMessage) {
	safe.Go(func() {
		if _, err := c.Refresh(context.Background()); err != nil {
			log.Warnf("controller: push-triggered refresh failed: %v", err)
		}
	})
}

// visible filters issues down to what the principal may see.
func (c *IssueController) visible(issues []model.Issue) []model.Issue {
	principal := c.session.Principal()
	if principal == nil {
		return nil
	}

	out := make([]model.Issue, 0, len(issues))
	for _, issue := range issues {
		if authz.CanView(principal.Role, issue.ReporterId, principal.Id) {
			out = append(out, issue)
		}
	}
	return out
}
