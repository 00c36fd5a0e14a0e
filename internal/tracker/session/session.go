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

// Package session holds the authenticated principal and access token.
// 会话整体持久化为一个 JSON blob；启动时异步恢复，恢复完成前所有
// 鉴权判断必须等待 Ready 信号。
package session

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"sync"

	"github.com/go-tracker/tracker/internal/tracker/api"
	"github.com/go-tracker/tracker/internal/tracker/model"
	"github.com/go-tracker/tracker/pkg/log"
	"github.com/go-tracker/tracker/pkg/safe"
)

var (
	// ErrInvalidCredentials 登录凭证错误，调用方应提示用户重试
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrAlreadyRegistered 邮箱已注册，调用方应引导用户去登录
	ErrAlreadyRegistered = errors.New("email already registered")
)

// 持久化命名空间，固定不变
const (
	storageDir  = "tracker"
	storageFile = "session.json"
)

// Session 会话快照。Principal 整体替换，从不就地修改。
type Session struct {
	Principal     *model.User `json:"principal,omitempty"`
	AccessToken   string      `json:"access_token,omitempty"`
	Authenticated bool        `json:"authenticated"`
}

// SignOutFunc 第三方身份提供方的登出钩子
type SignOutFunc func(ctx context.Context) error

type Store struct {
	mu      sync.RWMutex
	session Session

	api     *api.Client
	path    string
	signOut SignOutFunc

	ready     chan struct{}
	readyOnce sync.Once
}

type Option func(*Store)

// WithPath overrides the session blob location (used by tests).
func WithPath(path string) Option {
	return func(s *Store) {
		s.path = path
	}
}

// WithProviderSignOut registers an identity provider sign-out hook.
// 钩子失败不影响本地登出。
func WithProviderSignOut(fn SignOutFunc) Option {
	return func(s *Store) {
		s.signOut = fn
	}
}

// NewStore creates a session store and starts asynchronous rehydration.
// The caller must wait on Ready() before evaluating auth state.
func NewStore(apiClient *api.Client, opts ...Option) *Store {
	s := &Store{
		api:   apiClient,
		path:  defaultPath(),
		ready: make(chan struct{}),
	}
	for _, opt := range opts {
		opt(s)
	}

	safe.Go(s.rehydrate)
	return s
}

func defaultPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		dir = "."
	}
	return filepath.Join(dir, storageDir, storageFile)
}

// rehydrate restores the persisted session blob.
// 即使找到了历史会话也强制重新登录：恢复 principal 与 token 用于展示，
// 但 authenticated 置为 false。这是沿用原产品的既定策略，防止刷新后
// 静默复用会话。
func (s *Store) rehydrate() {
	defer s.readyOnce.Do(func() { close(s.ready) })

	data, err := os.ReadFile(s.path)
	if err != nil {
		if !os.IsNotExist(err) {
			log.Warnf("session: failed to read persisted session: %v", err)
		}
		return
	}

	var restored Session
	if err := json.Unmarshal(data, &restored); err != nil {
		log.Warnf("session: discarding corrupt session blob: %v", err)
		return
	}

	restored.Authenticated = false

	s.mu.Lock()
	s.session = restored
	s.mu.Unlock()
}

// Ready returns a channel closed once rehydration has completed.
func (s *Store) Ready() <-chan struct{} {
	return s.ready
}

// Token returns the current access token, empty when absent.
// 作为 api.TokenProvider 挂接到 API client。
func (s *Store) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.session.AccessToken
}

// Principal returns the current principal, nil when absent.
func (s *Store) Principal() *model.User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.session.Principal
}

// Authenticated reports whether the session is authenticated.
func (s *Store) Authenticated() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.session.Authenticated
}

// Snapshot returns a copy of the current session.
func (s *Store) Snapshot() Session {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.session
}

// Login exchanges credentials for a token and fetches the principal.
// 失败时会话状态保持不变。
func (s *Store) Login(ctx context.Context, email, password string) error {
	auth, err := s.api.Login(ctx, email, password)
	if err != nil {
		if errors.Is(err, api.ErrUnauthenticated) || errors.Is(err, api.ErrForbidden) {
			return ErrInvalidCredentials
		}
		return err
	}

	prev := s.Snapshot()

	// 先写入 token，随后的 /users/me 才能带上认证头
	s.replace(Session{AccessToken: auth.AccessToken})

	principal, err := s.api.CurrentUser(ctx)
	if err != nil {
		s.replace(prev)
		if errors.Is(err, api.ErrUnauthenticated) {
			return ErrInvalidCredentials
		}
		return err
	}

	s.replace(Session{
		Principal:     principal,
		AccessToken:   auth.AccessToken,
		Authenticated: true,
	})
	s.persist()

	log.Infof("session: %s logged in as %s", principal.Email, principal.Role)
	return nil
}

// LoginWithToken adopts an externally issued bearer token (e.g. from an
// OIDC provider) and fetches the principal with it.
// 失败时会话状态保持不变。
func (s *Store) LoginWithToken(ctx context.Context, token string) error {
	prev := s.Snapshot()

	s.replace(Session{AccessToken: token})

	principal, err := s.api.CurrentUser(ctx)
	if err != nil {
		s.replace(prev)
		if errors.Is(err, api.ErrUnauthenticated) {
			return ErrInvalidCredentials
		}
		return err
	}

	s.replace(Session{
		Principal:     principal,
		AccessToken:   token,
		Authenticated: true,
	})
	s.persist()

	log.Infof("session: %s logged in via identity provider", principal.Email)
	return nil
}

// Register creates a new account and authenticates the session.
// 重复邮箱返回 ErrAlreadyRegistered，其余失败不改变会话状态。
func (s *Store) Register(ctx context.Context, email, password, name string, role model.Role) error {
	req := &model.RegisterReq{Email: email, Password: password, Name: name, Role: role}
	auth, err := s.api.Register(ctx, req)
	if err != nil {
		if errors.Is(err, api.ErrConflict) {
			return ErrAlreadyRegistered
		}
		return err
	}

	s.replace(Session{
		Principal:     auth.User,
		AccessToken:   auth.AccessToken,
		Authenticated: true,
	})
	s.persist()

	log.Infof("session: registered %s", email)
	return nil
}

// Logout clears the session unconditionally. Provider sign-out errors are
// logged and ignored; local state is always cleared.
func (s *Store) Logout(ctx context.Context) {
	if s.signOut != nil {
		if err := s.signOut(ctx); err != nil {
			log.Warnf("session: provider sign-out failed: %v", err)
		}
	}

	s.replace(Session{})

	if err := os.Remove(s.path); err != nil && !os.IsNotExist(err) {
		log.Warnf("session: failed to remove session blob: %v", err)
	}
}

// replace swaps the session wholesale.
func (s *Store) replace(next Session) {
	s.mu.Lock()
	s.session = next
	s.mu.Unlock()
}

// persist serializes the session blob to durable storage.
func (s *Store) persist() {
	snap := s.Snapshot()
	data, err := json.MarshalIndent(&snap, "", "  ")
	if err != nil {
		log.Errorf("session: failed to marshal session: %v", err)
		return
	}

	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		log.Errorf("session: failed to create storage dir: %v", err)
		return
	}
	if err := os.WriteFile(s.path, data, 0o600); err != nil {
		log.Errorf("session: failed to write session blob: %v", err)
	}
}
