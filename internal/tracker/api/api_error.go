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
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
)

// 错误分类哨兵，调用方通过 errors.Is 匹配
var (
	ErrUnauthenticated    = errors.New("unauthenticated")
	ErrForbidden          = errors.New("forbidden")
	ErrNotFound           = errors.New("not found")
	ErrConflict           = errors.New("conflict")
	ErrServiceUnavailable = errors.New("service unavailable")
	ErrTransport          = errors.New("transport error")
)

// APIError 一次失败调用的完整上下文，Unwrap 到所属分类哨兵
type APIError struct {
	StatusCode int
	Message    string
	kind       error
}

func (e *APIError) Error() string {
	if e.StatusCode > 0 {
		return fmt.Sprintf("api: %s (status %d): %s", e.kind.Error(), e.StatusCode, e.Message)
	}
	return fmt.Sprintf("api: %s: %s", e.kind.Error(), e.Message)
}

func (e *APIError) Unwrap() error {
	return e.kind
}

// errorDetail FastAPI 风格的错误响应体
type errorDetail struct {
	Detail string `json:"detail"`
}

// newStatusError maps an HTTP status code to the error taxonomy.
func newStatusError(statusCode int, body []byte) error {
	var kind error
	switch {
	case statusCode == http.StatusUnauthorized:
		kind = ErrUnauthenticated
	case statusCode == http.StatusForbidden:
		kind = ErrForbidden
	case statusCode == http.StatusNotFound:
		kind = ErrNotFound
	case statusCode == http.StatusConflict:
		kind = ErrConflict
	case statusCode >= 500:
		kind = ErrServiceUnavailable
	default:
		kind = ErrTransport
	}

	msg := http.StatusText(statusCode)
	var detail errorDetail
	if err := json.Unmarshal(body, &detail); err == nil && detail.Detail != "" {
		msg = detail.Detail
	}

	return &APIError{StatusCode: statusCode, Message: msg, kind: kind}
}

// newTransportError wraps a network-level failure.
func newTransportError(err error) error {
	return &APIError{Message: err.Error(), kind: ErrTransport}
}
