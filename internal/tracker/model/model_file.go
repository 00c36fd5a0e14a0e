package model

import (
	"time"
)

/**
 * @author: h.morrow.dev@gmail.com
 * @time: 2025/3/4 21:02
 * @file: model_file.go
 * @description: attachment model
 */

// FileMeta 附件元数据；内容按需拉取，不预加载
type FileMeta struct {
	Id           string    `json:"id"`
	Filename     string    `json:"filename"`
	OriginalName string    `json:"original_name"`
	FileSize     int64     `json:"file_size"`
	ContentType  string    `json:"content_type"`
	CreatedAt    time.Time `json:"created_at"`
}
