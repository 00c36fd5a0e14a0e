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
	"errors"
	"testing"

	"github.com/go-tracker/tracker/internal/tracker/model"
)

func TestDecodeFrame_StandardJSON(t *testing.T) {
	frame, err := DecodeFrame([]byte(`{"type": "issue_update", "data": {"id": "i1"}}`))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if frame.Type != model.PushIssueUpdate {
		t.Errorf("expected issue_update, got %s", frame.Type)
	}
	if len(frame.Data) == 0 {
		t.Error("expected data payload")
	}
}

func TestDecodeFrame_SingleQuoted(t *testing.T) {
	// python dict 风格的帧
	frame, err := DecodeFrame([]byte(`{'type': 'issue_update', 'data': {'id': 'i1', 'status': 'OPEN'}}`))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if frame.Type != model.PushIssueUpdate {
		t.Errorf("expected issue_update, got %s", frame.Type)
	}
}

func TestDecodeFrame_Malformed(t *testing.T) {
	cases := [][]byte{
		[]byte(`not json at all`),
		[]byte(`{"data": {}}`), // missing type
		[]byte(`{'type': 'issue_update', 'data':`),
		[]byte(``),
	}
	for _, raw := range cases {
		_, err := DecodeFrame(raw)
		if !errors.Is(err, ErrMalformedFrame) {
			t.Errorf("DecodeFrame(%q): expected ErrMalformedFrame, got %v", raw, err)
		}
	}
}

func TestDecodeFrame_OtherType(t *testing.T) {
	frame, err := DecodeFrame([]byte(`{"type": "heartbeat", "data": {}}`))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if frame.Type == model.PushIssueUpdate {
		t.Error("heartbeat must not decode as issue_update")
	}
}
