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

package session

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/go-tracker/tracker/internal/tracker/api"
	"github.com/go-tracker/tracker/internal/tracker/model"
)

// newAuthServer 模拟 /auth/* 和 /users/me
func newAuthServer(t *testing.T) *httptest.Server {
	t.Helper()
	admin := &model.User{Id: "u1", Email: "admin@example.com", Name: "Admin User", Role: model.RoleAdmin}

	mux := http.NewServeMux()
	mux.HandleFunc("POST /auth/login", func(w http.ResponseWriter, r *http.Request) {
		var req model.LoginReq
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		if req.Email == "admin@example.com" && req.Password == "password" {
			w.Header().Set("Content-Type", "application/json")
			_ = json.NewEncoder(w).Encode(&model.AuthResp{AccessToken: "tok-abc", User: admin})
			return
		}
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"detail": "Incorrect email or password"}`))
	})
	mux.HandleFunc("POST /auth/register", func(w http.ResponseWriter, r *http.Request) {
		var req model.RegisterReq
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		if req.Email == "admin@example.com" {
			w.WriteHeader(http.StatusConflict)
			_, _ = w.Write([]byte(`{"detail": "Email already registered"}`))
			return
		}
		role := req.Role
		if role == "" {
			role = model.RoleReporter
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(&model.AuthResp{
			AccessToken: "tok-new",
			User:        &model.User{Id: "u9", Email: req.Email, Name: req.Name, Role: role},
		})
	})
	mux.HandleFunc("GET /users/me", func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer tok-abc" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(admin)
	})

	return httptest.NewServer(mux)
}

func newTestStore(t *testing.T, srvURL string) *Store {
	t.Helper()
	c := api.NewClient(srvURL)
	store := NewStore(c, WithPath(filepath.Join(t.TempDir(), "session.json")))
	c.SetTokenProvider(store.Token)
	<-store.Ready()
	return store
}

func TestLogin_Success(t *testing.T) {
	srv := newAuthServer(t)
	defer srv.Close()
	store := newTestStore(t, srv.URL)

	assert.False(t, store.Authenticated())

	err := store.Login(context.Background(), "admin@example.com", "password")
	require.NoError(t, err)

	assert.True(t, store.Authenticated())
	assert.NotEmpty(t, store.Token())
	require.NotNil(t, store.Principal())
	assert.Equal(t, "admin@example.com", store.Principal().Email)
	assert.Equal(t, model.RoleAdmin, store.Principal().Role)
}

func TestLogin_InvalidCredentials(t *testing.T) {
	srv := newAuthServer(t)
	defer srv.Close()
	store := newTestStore(t, srv.URL)

	err := store.Login(context.Background(), "admin@example.com", "wrong")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	// 状态保持不变
	assert.False(t, store.Authenticated())
	assert.Empty(t, store.Token())
	assert.Nil(t, store.Principal())
}

func TestLoginWithToken_Success(t *testing.T) {
	srv := newAuthServer(t)
	defer srv.Close()
	store := newTestStore(t, srv.URL)

	err := store.LoginWithToken(context.Background(), "tok-abc")
	require.NoError(t, err)
	assert.True(t, store.Authenticated())
	assert.Equal(t, "tok-abc", store.Token())
	assert.Equal(t, "admin@example.com", store.Principal().Email)
}

func TestLoginWithToken_Rejected(t *testing.T) {
	srv := newAuthServer(t)
	defer srv.Close()
	store := newTestStore(t, srv.URL)

	err := store.LoginWithToken(context.Background(), "tok-forged")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	// 状态保持不变
	assert.False(t, store.Authenticated())
	assert.Empty(t, store.Token())
}

func TestRegister_Duplicate(t *testing.T) {
	srv := newAuthServer(t)
	defer srv.Close()
	store := newTestStore(t, srv.URL)

	err := store.Register(context.Background(), "admin@example.com", "pw", "Dup", "")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrAlreadyRegistered)
	assert.NotErrorIs(t, err, ErrInvalidCredentials)
	assert.False(t, store.Authenticated())
}

func TestRegister_Success(t *testing.T) {
	srv := newAuthServer(t)
	defer srv.Close()
	store := newTestStore(t, srv.URL)

	err := store.Register(context.Background(), "new@example.com", "pw", "New User", model.RoleReporter)
	require.NoError(t, err)
	assert.True(t, store.Authenticated())
	assert.Equal(t, model.RoleReporter, store.Principal().Role)
}

func TestLogout_ClearsStateEvenWhenProviderFails(t *testing.T) {
	srv := newAuthServer(t)
	defer srv.Close()

	path := filepath.Join(t.TempDir(), "session.json")
	c := api.NewClient(srv.URL)
	store := NewStore(c,
		WithPath(path),
		WithProviderSignOut(func(ctx context.Context) error {
			return errors.New("provider unavailable")
		}),
	)
	c.SetTokenProvider(store.Token)
	<-store.Ready()

	require.NoError(t, store.Login(context.Background(), "admin@example.com", "password"))
	require.True(t, store.Authenticated())

	store.Logout(context.Background())

	assert.False(t, store.Authenticated())
	assert.Empty(t, store.Token())
	assert.Nil(t, store.Principal())
	_, err := os.Stat(path)
	assert.True(t, os.IsNotExist(err), "session blob must be removed")
}

func TestRehydrate_ForcesRelogin(t *testing.T) {
	srv := newAuthServer(t)
	defer srv.Close()

	path := filepath.Join(t.TempDir(), "session.json")

	// 第一个 store 登录并持久化
	c1 := api.NewClient(srv.URL)
	store1 := NewStore(c1, WithPath(path))
	c1.SetTokenProvider(store1.Token)
	<-store1.Ready()
	require.NoError(t, store1.Login(context.Background(), "admin@example.com", "password"))

	// 第二个 store 模拟进程重启后的恢复
	c2 := api.NewClient(srv.URL)
	store2 := NewStore(c2, WithPath(path))
	<-store2.Ready()

	// principal 恢复用于展示，但必须强制重新登录
	require.NotNil(t, store2.Principal())
	assert.Equal(t, "admin@example.com", store2.Principal().Email)
	assert.False(t, store2.Authenticated(), "restored session must not be treated as authenticated")
}

func TestRehydrate_CorruptBlob(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o600))

	store := NewStore(api.NewClient("http://127.0.0.1:0"), WithPath(path))
	<-store.Ready()

	assert.False(t, store.Authenticated())
	assert.Nil(t, store.Principal())
}
