package model

/**
 * @author: h.morrow.dev@gmail.com
 * @time: 2025/3/4 21:10
 * @file: model_stats.go
 * @description: dashboard stats model
 */

// DashboardStats 服务端聚合的看板统计
type DashboardStats struct {
	TotalIssues      int            `json:"total_issues"`
	OpenIssues       int            `json:"open_issues"`
	InProgressIssues int            `json:"in_progress_issues"`
	ClosedIssues     int            `json:"closed_issues"`
	IssuesBySeverity map[string]int `json:"issues_by_severity"`
	IssuesByStatus   map[string]int `json:"issues_by_status"`
}
