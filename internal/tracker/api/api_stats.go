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

// DashboardStats fetches the aggregate counters for the dashboard.
// GET /stats/dashboard
func (c *Client) DashboardStats(ctx context.Context) (*model.DashboardStats, error) {
	var out model.DashboardStats
	resp, err := c.http.R().
		SetContext(ctx).
		SetResult(&out).
		Get("/stats/dashboard")
	if err := check(resp, err); err != nil {
		return nil, err
	}
	return &out, nil
}
