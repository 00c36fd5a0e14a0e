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

// Package realtime 实时推送通道。每个连接携带一个随机 client id，
// 收到 issue_update 帧时通知订阅方“列表已过期”；订阅方应重新拉取
// 权威数据而不是信任帧内容。
package realtime

import (
	"context"
	"encoding/json"
	"errors"
	"net/url"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gorilla/websocket"

	"github.com/go-tracker/tracker/internal/tracker/model"
	"github.com/go-tracker/tracker/pkg/id"
	"github.com/go-tracker/tracker/pkg/log"
	"github.com/go-tracker/tracker/pkg/retry"
	"github.com/go-tracker/tracker/pkg/safe"
	"github.com/go-tracker/tracker/pkg/statemachine"
)

// State 连接状态
type State string

const (
	StateDisconnected     State = "DISCONNECTED"
	StateConnecting       State = "CONNECTING"
	StateOpen             State = "OPEN"
	StateClosed           State = "CLOSED"
	StateReconnectPending State = "RECONNECT_PENDING"
)

const (
	readLimit  = 1024 * 1024 // 1MB
	pongWait   = 60 * time.Second
	writeWait  = 10 * time.Second
	pingPeriod = (pongWait * 9) / 10 // ping 发送周期，应该小于 pongWait
)

// UpdateFunc is invoked for every issue_update frame.
// 回调必须幂等且可被快速连续多次调用；合并/去抖是调用方的责任。
type UpdateFunc func(data json.RawMessage)

type Channel struct {
	endpoint string
	clientId string
	onUpdate UpdateFunc

	sm *statemachine.StateMachine[State]

	mu   sync.Mutex // 保护 conn 的写与替换
	conn *websocket.Conn

	reconnect    bool
	maxReconnect int

	dropped atomic.Uint64

	closed    chan struct{}
	closeOnce sync.Once
}

type Option func(*Channel)

// WithReconnect enables automatic reconnection with exponential backoff.
// 默认不重连：断开即 CLOSED，由调用方决定是否重建通道。
func WithReconnect(maxAttempts int) Option {
	return func(c *Channel) {
		c.reconnect = true
		c.maxReconnect = maxAttempts
	}
}

// newStateMachine 按连接生命周期建模：
// DISCONNECTED → CONNECTING → OPEN → (CLOSED | RECONNECT_PENDING)
func newStateMachine() *statemachine.StateMachine[State] {
	sm := statemachine.NewWithState(StateDisconnected)
	sm.Allow(StateDisconnected, StateConnecting).
		Allow(StateConnecting, StateOpen, StateClosed).
		Allow(StateOpen, StateClosed, StateReconnectPending).
		Allow(StateReconnectPending, StateConnecting, StateClosed)
	return sm
}

// Dial opens a push channel against baseURL (http(s) or ws(s) scheme).
// The caller must Close the channel when done.
func Dial(ctx context.Context, baseURL string, onUpdate UpdateFunc, opts ...Option) (*Channel, error) {
	endpoint, err := wsEndpoint(baseURL)
	if err != nil {
		return nil, err
	}

	c := &Channel{
		endpoint: endpoint,
		clientId: id.GetUUID(),
		onUpdate: onUpdate,
		sm:       newStateMachine(),
		closed:   make(chan struct{}),
	}
	for _, opt := range opts {
		opt(c)
	}

	if err := c.dial(ctx); err != nil {
		_ = c.sm.TransitTo(StateClosed)
		return nil, err
	}

	safe.Go(c.readLoop)
	safe.Go(c.pingLoop)
	return c, nil
}

// wsEndpoint converts the configured base URL into the push endpoint.
func wsEndpoint(baseURL string) (string, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return "", err
	}
	switch u.Scheme {
	case "http":
		u.Scheme = "ws"
	case "https":
		u.Scheme = "wss"
	case "ws", "wss":
	default:
		return "", errors.New("realtime: unsupported scheme " + u.Scheme)
	}
	u.Path = "/ws"
	u.RawQuery = ""
	return u.String(), nil
}

func (c *Channel) dial(ctx context.Context) error {
	_ = c.sm.TransitTo(StateConnecting)

	target := c.endpoint + "/" + c.clientId
	conn, _, err := websocket.DefaultDialer.DialContext(ctx, target, nil)
	if err != nil {
		return err
	}

	conn.SetReadLimit(readLimit)
	_ = conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	c.mu.Lock()
	c.conn = conn
	c.mu.Unlock()

	_ = c.sm.TransitTo(StateOpen)
	log.Debugf("realtime: connected to %s", target)
	return nil
}

// ClientId returns the random identifier used in the connection target.
func (c *Channel) ClientId() string {
	return c.clientId
}

// State returns the current connection state.
func (c *Channel) State() State {
	return c.sm.Current()
}

// Dropped returns the number of discarded malformed frames.
func (c *Channel) Dropped() uint64 {
	return c.dropped.Load()
}

// Close tears down the channel. Safe to call multiple times.
func (c *Channel) Close() error {
	var err error
	c.closeOnce.Do(func() {
		close(c.closed)
		_ = c.sm.TransitTo(StateClosed)

		c.mu.Lock()
		if c.conn != nil {
			deadline := time.Now().Add(writeWait)
			_ = c.conn.WriteControl(websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""), deadline)
			err = c.conn.Close()
		}
		c.mu.Unlock()
	})
	return err
}

func (c *Channel) isClosed() bool {
	select {
	case <-c.closed:
		return true
	default:
		return false
	}
}

// readLoop 消息处理循环。回调在本 goroutine 内单线程串行触发。
func (c *Channel) readLoop() {
	for {
		c.mu.Lock()
		conn := c.conn
		c.mu.Unlock()
		if conn == nil {
			return
		}

		_, raw, err := conn.ReadMessage()
		if err != nil {
			if c.isClosed() {
				return
			}
			if !c.reconnect {
				log.Warnf("realtime: connection lost: %v", err)
				_ = c.Close()
				return
			}
			if !c.redial() {
				return
			}
			continue
		}

		_ = conn.SetReadDeadline(time.Now().Add(pongWait))
		c.handleFrame(raw)
	}
}

// handleFrame 只处理 issue_update，其余类型忽略，坏帧静默丢弃
func (c *Channel) handleFrame(raw []byte) {
	frame, err := DecodeFrame(raw)
	if err != nil {
		c.dropped.Add(1)
		log.Debugf("realtime: dropping frame: %v", err)
		return
	}
	if frame.Type != model.PushIssueUpdate {
		return
	}
	if c.onUpdate != nil {
		c.onUpdate(frame.Data)
	}
}

// redial re-establishes the connection with exponential backoff.
// 返回 false 表示通道已进入 CLOSED。
func (c *Channel) redial() bool {
	_ = c.sm.TransitTo(StateReconnectPending)
	log.Infof("realtime: connection lost, reconnecting")

	err := retry.Do(context.Background(), func(ctx context.Context) error {
		if c.isClosed() {
			return context.Canceled
		}
		return c.dial(ctx)
	},
		retry.WithMaxAttempts(c.maxReconnect),
		retry.WithBackoff(retry.Exponential(time.Second, 30*time.Second)),
		retry.WithJitter(retry.FullJitter),
	)
	if err != nil {
		log.Warnf("realtime: reconnect failed: %v", err)
		_ = c.Close()
		return false
	}
	return true
}

// pingLoop 定期发送 ping 保持连接活跃
func (c *Channel) pingLoop() {
	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			c.mu.Lock()
			conn := c.conn
			if conn != nil {
				_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
				_ = conn.WriteMessage(websocket.PingMessage, nil)
			}
			c.mu.Unlock()
		case <-c.closed:
			return
		}
	}
}
