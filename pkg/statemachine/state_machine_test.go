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

package statemachine

import (
	"testing"
)

// 定义测试用状态
type ConnState string

const (
	ConnDisconnected ConnState = "DISCONNECTED"
	ConnConnecting   ConnState = "CONNECTING"
	ConnOpen         ConnState = "OPEN"
	ConnClosed       ConnState = "CLOSED"
)

func TestStateMachine_Basic(t *testing.T) {
	sm := NewWithState(ConnDisconnected)

	sm.Allow(ConnDisconnected, ConnConnecting).
		Allow(ConnConnecting, ConnOpen, ConnClosed).
		Allow(ConnOpen, ConnClosed)

	if sm.Current() != ConnDisconnected {
		t.Errorf("expected current state to be %v, got %v", ConnDisconnected, sm.Current())
	}
	if sm.Initial() != ConnDisconnected {
		t.Errorf("expected initial state to be %v, got %v", ConnDisconnected, sm.Initial())
	}

	// 测试合法转移
	if err := sm.TransitTo(ConnConnecting); err != nil {
		t.Errorf("expected transition to succeed, got error: %v", err)
	}
	if sm.Current() != ConnConnecting {
		t.Errorf("expected current state to be %v, got %v", ConnConnecting, sm.Current())
	}

	// 测试非法转移
	if err := sm.TransitTo(ConnDisconnected); err == nil {
		t.Error("expected invalid transition to fail")
	}
	if sm.Current() != ConnConnecting {
		t.Errorf("state must not change on invalid transition, got %v", sm.Current())
	}
}

func TestStateMachine_Hooks(t *testing.T) {
	sm := NewWithState(ConnDisconnected)
	sm.Allow(ConnDisconnected, ConnConnecting)

	var gotFrom, gotTo ConnState
	sm.OnTransition(func(from, to ConnState) {
		gotFrom, gotTo = from, to
	})

	if err := sm.TransitTo(ConnConnecting); err != nil {
		t.Fatalf("transition failed: %v", err)
	}
	if gotFrom != ConnDisconnected || gotTo != ConnConnecting {
		t.Errorf("hook got (%v, %v)", gotFrom, gotTo)
	}
}

func TestStateMachine_HistoryAndReset(t *testing.T) {
	sm := NewWithState(ConnDisconnected)
	sm.Allow(ConnDisconnected, ConnConnecting).
		Allow(ConnConnecting, ConnOpen)

	_ = sm.TransitTo(ConnConnecting)
	_ = sm.TransitTo(ConnOpen)

	history := sm.History()
	if len(history) != 2 {
		t.Fatalf("expected 2 history records, got %d", len(history))
	}
	if history[0].From != ConnDisconnected || history[1].To != ConnOpen {
		t.Errorf("unexpected history: %+v", history)
	}

	sm.Reset()
	if sm.Current() != ConnDisconnected {
		t.Errorf("expected reset to initial state, got %v", sm.Current())
	}
	if len(sm.History()) != 0 {
		t.Error("expected empty history after reset")
	}
}
