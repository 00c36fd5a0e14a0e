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

// Package authz 客户端侧的角色能力判定。所有函数都是纯函数，
// 可在渲染路径上同步调用，未知的 (role, capability) 组合一律拒绝。
package authz

import (
	"github.com/go-tracker/tracker/internal/tracker/model"
)

// Capability 能力位
type Capability string

const (
	CapCreateIssue    Capability = "create_issue"
	CapEditAnyIssue   Capability = "edit_any_issue"
	CapDeleteAnyIssue Capability = "delete_any_issue"
	CapAssignIssues   Capability = "assign_issues"
	CapViewAllIssues  Capability = "view_all_issues"
	CapManageUsers    Capability = "manage_users"
)

// capabilitySet 单个角色的能力表，每个角色对每个能力键都有取值
type capabilitySet struct {
	createIssue    bool
	editAnyIssue   bool
	deleteAnyIssue bool
	assignIssues   bool
	viewAllIssues  bool
	manageUsers    bool
}

// capabilities 按角色展开的静态能力矩阵。
// 用 switch 穷举角色而不是 map 查表，新增角色时编译期即可暴露遗漏。
func capabilities(role model.Role) (capabilitySet, bool) {
	switch role {
	case model.RoleAdmin:
		return capabilitySet{
			createIssue:    true,
			editAnyIssue:   true,
			deleteAnyIssue: true,
			assignIssues:   true,
			viewAllIssues:  true,
			manageUsers:    true,
		}, true
	case model.RoleMaintainer:
		return capabilitySet{
			createIssue:   true,
			editAnyIssue:  true,
			assignIssues:  true,
			viewAllIssues: true,
		}, true
	case model.RoleReporter:
		return capabilitySet{
			createIssue: true,
		}, true
	}
	// 未知角色：fail closed
	return capabilitySet{}, false
}

// HasCapability reports whether the role grants the capability.
// Unknown roles and unknown capabilities always return false.
func HasCapability(role model.Role, cap Capability) bool {
	set, ok := capabilities(role)
	if !ok {
		return false
	}
	switch cap {
	case CapCreateIssue:
		return set.createIssue
	case CapEditAnyIssue:
		return set.editAnyIssue
	case CapDeleteAnyIssue:
		return set.deleteAnyIssue
	case CapAssignIssues:
		return set.assignIssues
	case CapViewAllIssues:
		return set.viewAllIssues
	case CapManageUsers:
		return set.manageUsers
	}
	return false
}

// CanView reports whether the actor may view an issue owned by ownerId.
func CanView(role model.Role, ownerId, actorId string) bool {
	if HasCapability(role, CapViewAllIssues) {
		return true
	}
	return ownerId == actorId
}

// CanEdit reports whether the actor may edit an issue owned by ownerId.
func CanEdit(role model.Role, ownerId, actorId string) bool {
	if HasCapability(role, CapEditAnyIssue) {
		return true
	}
	return ownerId == actorId
}

// CanDelete reports whether the actor may delete an issue owned by ownerId.
// MAINTAINER 即使是自己上报的 issue 也不能删除，这是沿用至今的产品矩阵，
// 不是疏漏。
func CanDelete(role model.Role, ownerId, actorId string) bool {
	if HasCapability(role, CapDeleteAnyIssue) {
		return true
	}
	return role == model.RoleReporter && ownerId == actorId
}
