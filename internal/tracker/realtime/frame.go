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

package realtime

import (
	"bytes"
	"encoding/json"

	"github.com/pkg/errors"

	"github.com/go-tracker/tracker/internal/tracker/model"
)

// ErrMalformedFrame 无法解析的推送帧；调用方丢弃并计数，从不上抛给用户
var ErrMalformedFrame = errors.New("malformed push frame")

// DecodeFrame parses an inbound push frame.
// 服务端偶尔会送出 python dict 风格的单引号帧（{'type': ...}），
// 解析前先做防御性归一化；归一化后仍然非法的帧按 ErrMalformedFrame 处理。
func DecodeFrame(raw []byte) (*model.PushFrame, error) {
	data := bytes.TrimSpace(raw)
	if bytes.HasPrefix(data, []byte("{'")) {
		data = bytes.ReplaceAll(data, []byte("'"), []byte(`"`))
	}

	var frame model.PushFrame
	if err := json.Unmarshal(data, &frame); err != nil {
		return nil, errors.Wrap(ErrMalformedFrame, err.Error())
	}
	if frame.Type == "" {
		return nil, errors.Wrap(ErrMalformedFrame, "missing type")
	}
	return &frame, nil
}
