package model

import (
	"encoding/json"
)

/**
 * @author: h.morrow.dev@gmail.com
 * @time: 2025/3/4 21:18
 * @file: model_push.go
 * @description: push frame model
 */

// PushFrameType 推送帧类型
type PushFrameType string

const (
	// PushIssueUpdate 服务端 issue 状态变更通知
	PushIssueUpdate PushFrameType = "issue_update"
)

// PushFrame 实时通道的统一帧结构。Data 仅作为过期信号使用，
// 订阅方应重新拉取权威列表而不是信任帧内容。
type PushFrame struct {
	Type PushFrameType   `json:"type"`
	Data json.RawMessage `json:"data"`
}
