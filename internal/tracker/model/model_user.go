package model

import (
	"time"
)

/**
 * @author: h.morrow.dev@gmail.com
 * @time: 2025/3/4 20:31
 * @file: model_user.go
 * @description: user model
 */

// Role 用户角色
type Role string

const (
	RoleAdmin      Role = "ADMIN"
	RoleMaintainer Role = "MAINTAINER"
	RoleReporter   Role = "REPORTER"
)

// Valid reports whether the role is one of the known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleMaintainer, RoleReporter:
		return true
	}
	return false
}

// User 已认证主体（principal），由服务端返回，客户端整体替换、从不就地修改
type User struct {
	Id        string    `json:"id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	Role      Role      `json:"role"`
	AvatarUrl string    `json:"avatar_url,omitempty"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type LoginReq struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type RegisterReq struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
	Role     Role   `json:"role,omitempty"`
}

type AuthResp struct {
	AccessToken string `json:"access_token"`
	User        *User  `json:"user"`
}

type UpdateUserReq struct {
	Name     *string `json:"name,omitempty"`
	Role     *Role   `json:"role,omitempty"`
	IsActive *bool   `json:"is_active,omitempty"`
}
