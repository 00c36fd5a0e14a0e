package model

import (
	"time"
)

/**
 * @author: h.morrow.dev@gmail.com
 * @time: 2025/3/4 20:44
 * @file: model_issue.go
 * @description: issue model
 */

// Severity 问题严重级别
type Severity string

const (
	SeverityLow      Severity = "LOW"
	SeverityMedium   Severity = "MEDIUM"
	SeverityHigh     Severity = "HIGH"
	SeverityCritical Severity = "CRITICAL"
)

// Status 问题工作流状态
type Status string

const (
	StatusOpen       Status = "OPEN"
	StatusTriaged    Status = "TRIAGED"
	StatusInProgress Status = "IN_PROGRESS"
	StatusDone       Status = "DONE"
)

// Issue 由远端 API 持有所有权；客户端仅作非权威的读缓存，
// 本地修改不跨越一次重新拉取存活。
type Issue struct {
	Id          string     `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description"` // markdown 文本
	Severity    Severity   `json:"severity"`
	Status      Status     `json:"status"`
	ReporterId  string     `json:"reporter_id"`
	Reporter    *User      `json:"reporter,omitempty"`
	AssigneeId  string     `json:"assignee_id,omitempty"`
	Assignee    *User      `json:"assignee,omitempty"`
	Tags        []string   `json:"tags"`
	Files       []FileMeta `json:"files"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// CreateIssueReq request for creating issue
type CreateIssueReq struct {
	Title       string   `json:"title" validate:"required,min=1,max=200"`
	Description string   `json:"description" validate:"required"`
	Severity    Severity `json:"severity" validate:"required,oneof=LOW MEDIUM HIGH CRITICAL"`
	Tags        []string `json:"tags"`
}

// UpdateIssueReq request for updating issue, nil 字段不下发
type UpdateIssueReq struct {
	Title       *string   `json:"title,omitempty" validate:"omitempty,min=1,max=200"`
	Description *string   `json:"description,omitempty"`
	Severity    *Severity `json:"severity,omitempty" validate:"omitempty,oneof=LOW MEDIUM HIGH CRITICAL"`
	Status      *Status   `json:"status,omitempty" validate:"omitempty,oneof=OPEN TRIAGED IN_PROGRESS DONE"`
	AssigneeId  *string   `json:"assignee_id,omitempty"`
	Tags        []string  `json:"tags,omitempty"`
}

// IssueFilter list 过滤条件，零值字段不参与过滤
type IssueFilter struct {
	Status   Status
	Severity Severity
}
