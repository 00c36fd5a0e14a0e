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

package authz

import (
	"testing"

	"github.com/go-tracker/tracker/internal/tracker/model"
)

func TestHasCapability_Matrix(t *testing.T) {
	tests := []struct {
		role model.Role
		cap  Capability
		want bool
	}{
		{model.RoleAdmin, CapCreateIssue, true},
		{model.RoleAdmin, CapEditAnyIssue, true},
		{model.RoleAdmin, CapDeleteAnyIssue, true},
		{model.RoleAdmin, CapAssignIssues, true},
		{model.RoleAdmin, CapViewAllIssues, true},
		{model.RoleAdmin, CapManageUsers, true},

		{model.RoleMaintainer, CapCreateIssue, true},
		{model.RoleMaintainer, CapEditAnyIssue, true},
		{model.RoleMaintainer, CapDeleteAnyIssue, false},
		{model.RoleMaintainer, CapAssignIssues, true},
		{model.RoleMaintainer, CapViewAllIssues, true},
		{model.RoleMaintainer, CapManageUsers, false},

		{model.RoleReporter, CapCreateIssue, true},
		{model.RoleReporter, CapEditAnyIssue, false},
		{model.RoleReporter, CapDeleteAnyIssue, false},
		{model.RoleReporter, CapAssignIssues, false},
		{model.RoleReporter, CapViewAllIssues, false},
		{model.RoleReporter, CapManageUsers, false},
	}

	for _, tt := range tests {
		if got := HasCapability(tt.role, tt.cap); got != tt.want {
			t.Errorf("HasCapability(%s, %s) = %v, want %v", tt.role, tt.cap, got, tt.want)
		}
	}
}

func TestHasCapability_FailClosed(t *testing.T) {
	// 未知角色与未知能力都必须返回 false，而不是 panic
	if HasCapability(model.Role("SUPERVISOR"), CapViewAllIssues) {
		t.Error("unknown role must fail closed")
	}
	if HasCapability(model.RoleAdmin, Capability("launch_rockets")) {
		t.Error("unknown capability must fail closed")
	}
	if HasCapability(model.Role(""), Capability("")) {
		t.Error("empty inputs must fail closed")
	}
}

func TestCanView(t *testing.T) {
	tests := []struct {
		role    model.Role
		ownerId string
		actorId string
		want    bool
	}{
		{model.RoleAdmin, "u1", "u2", true},
		{model.RoleMaintainer, "u1", "u2", true},
		{model.RoleReporter, "u1", "u1", true},
		{model.RoleReporter, "u1", "u2", false},
		{model.Role("UNKNOWN"), "u1", "u2", false},
		{model.Role("UNKNOWN"), "u1", "u1", true}, // 自己的 issue 总是可见
	}
	for _, tt := range tests {
		if got := CanView(tt.role, tt.ownerId, tt.actorId); got != tt.want {
			t.Errorf("CanView(%s, %s, %s) = %v, want %v", tt.role, tt.ownerId, tt.actorId, got, tt.want)
		}
	}
}

func TestCanEdit(t *testing.T) {
	tests := []struct {
		role    model.Role
		ownerId string
		actorId string
		want    bool
	}{
		{model.RoleAdmin, "u1", "u2", true},
		{model.RoleMaintainer, "u1", "u2", true},
		{model.RoleReporter, "u1", "u1", true},
		{model.RoleReporter, "u1", "u2", false},
	}
	for _, tt := range tests {
		if got := CanEdit(tt.role, tt.ownerId, tt.actorId); got != tt.want {
			t.Errorf("CanEdit(%s, %s, %s) = %v, want %v", tt.role, tt.ownerId, tt.actorId, got, tt.want)
		}
	}
}

func TestCanDelete(t *testing.T) {
	tests := []struct {
		role    model.Role
		ownerId string
		actorId string
		want    bool
	}{
		{model.RoleAdmin, "u1", "u2", true},
		{model.RoleAdmin, "u1", "u1", true},
		// MAINTAINER 对任何 issue（包括自己的）都不能删除
		{model.RoleMaintainer, "u1", "u2", false},
		{model.RoleMaintainer, "u1", "u1", false},
		{model.RoleReporter, "u1", "u1", true},
		{model.RoleReporter, "u1", "u2", false},
	}
	for _, tt := range tests {
		if got := CanDelete(tt.role, tt.ownerId, tt.actorId); got != tt.want {
			t.Errorf("CanDelete(%s, %s, %s) = %v, want %v", tt.role, tt.ownerId, tt.actorId, got, tt.want)
		}
	}
}

func TestEvaluator_Pure(t *testing.T) {
	// 相同输入重复调用必须得到相同结果
	for i := 0; i < 3; i++ {
		if !CanDelete(model.RoleReporter, "u1", "u1") {
			t.Fatal("CanDelete must be deterministic")
		}
		if CanDelete(model.RoleMaintainer, "u1", "u2") {
			t.Fatal("CanDelete must be deterministic")
		}
	}
}
