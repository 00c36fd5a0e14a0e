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

// Package sso 第三方身份提供方登录（OIDC 授权码流程）。
// CLI 场景下在本地起一个回调监听，把用户引导到托管登录页。
package sso

import (
	"context"
	"fmt"
	"net/http"

	"github.com/coreos/go-oidc/v3/oidc"
	"github.com/pkg/errors"
	"golang.org/x/oauth2"

	"github.com/go-tracker/tracker/internal/tracker/config"
	"github.com/go-tracker/tracker/internal/tracker/model"
	"github.com/go-tracker/tracker/pkg/id"
	"github.com/go-tracker/tracker/pkg/log"
)

// UserInfo 从 id_token claims 提取的用户信息
type UserInfo struct {
	Email     string
	Name      string
	AvatarURL string
	Role      model.Role
	// RawIDToken 原始 id_token，作为 bearer 凭证传给后端
	RawIDToken string
}

type OIDCLogin struct {
	provider *oidc.Provider
	verifier *oidc.IDTokenVerifier
	config   *oauth2.Config
	state    string
	port     int
}

// NewOIDCLogin discovers the provider and prepares the auth-code flow.
func NewOIDCLogin(ctx context.Context, cfg config.SSOConfig) (*OIDCLogin, error) {
	if cfg.Issuer == "" || cfg.ClientId == "" {
		return nil, errors.New("sso: issuer and client id are required")
	}

	provider, err := oidc.NewProvider(ctx, cfg.Issuer)
	if err != nil {
		return nil, errors.Wrap(err, "sso: provider discovery failed")
	}

	redirectURL := fmt.Sprintf("http://127.0.0.1:%d/callback", cfg.RedirectPort)
	return &OIDCLogin{
		provider: provider,
		verifier: provider.Verifier(&oidc.Config{ClientID: cfg.ClientId}),
		config: &oauth2.Config{
			ClientID:     cfg.ClientId,
			ClientSecret: cfg.ClientSecret,
			RedirectURL:  redirectURL,
			Scopes:       []string{oidc.ScopeOpenID, "email", "profile"},
			Endpoint:     provider.Endpoint(),
		},
		state: id.GetUUIDWithoutDashes(),
		port:  cfg.RedirectPort,
	}, nil
}

// AuthURL returns the hosted sign-in URL the user should open.
func (l *OIDCLogin) AuthURL() string {
	return l.config.AuthCodeURL(l.state)
}

// WaitCallback serves the local redirect endpoint until the provider
// calls back, then exchanges the code and verifies the id_token.
// state 不匹配的回调一律拒绝。
func (l *OIDCLogin) WaitCallback(ctx context.Context) (*UserInfo, error) {
	type result struct {
		code string
		err  error
	}
	done := make(chan result, 1)

	mux := http.NewServeMux()
	mux.HandleFunc("/callback", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("state") != l.state {
			http.Error(w, "state mismatch", http.StatusBadRequest)
			done <- result{err: errors.New("sso: state mismatch")}
			return
		}
		code := r.URL.Query().Get("code")
		if code == "" {
			http.Error(w, "missing code", http.StatusBadRequest)
			done <- result{err: errors.New("sso: missing authorization code")}
			return
		}
		fmt.Fprintln(w, "Signed in. You can close this window.")
		done <- result{code: code}
	})

	srv := &http.Server{Addr: fmt.Sprintf("127.0.0.1:%d", l.port), Handler: mux}
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			done <- result{err: err}
		}
	}()
	defer func() {
		if err := srv.Shutdown(context.Background()); err != nil {
			log.Warnf("sso: callback server shutdown: %v", err)
		}
	}()

	var res result
	select {
	case res = <-done:
	case <-ctx.Done():
		return nil, ctx.Err()
	}
	if res.err != nil {
		return nil, res.err
	}

	token, err := l.config.Exchange(ctx, res.code)
	if err != nil {
		return nil, errors.Wrap(err, "sso: token exchange failed")
	}
	return l.userInfo(ctx, token)
}

// VerifyState 校验回调 state（供测试与自定义回调处理使用）
func (l *OIDCLogin) VerifyState(state string) bool {
	return state == l.state
}

func (l *OIDCLogin) userInfo(ctx context.Context, token *oauth2.Token) (*UserInfo, error) {
	rawIDToken, ok := token.Extra("id_token").(string)
	if !ok {
		return nil, errors.New("sso: missing id_token")
	}

	idToken, err := l.verifier.Verify(ctx, rawIDToken)
	if err != nil {
		return nil, errors.Wrap(err, "sso: invalid id_token")
	}

	var claims map[string]any
	if err := idToken.Claims(&claims); err != nil {
		return nil, err
	}
	return mapClaims(claims, rawIDToken), nil
}

// mapClaims 标准 OIDC claims 到用户信息的映射。
// role claim 缺失或非法时落到 REPORTER。
func mapClaims(claims map[string]any, rawIDToken string) *UserInfo {
	info := &UserInfo{Role: model.RoleReporter, RawIDToken: rawIDToken}
	if v, ok := claims["email"].(string); ok {
		info.Email = v
	}
	if v, ok := claims["name"].(string); ok {
		info.Name = v
	}
	if v, ok := claims["picture"].(string); ok {
		info.AvatarURL = v
	}
	if v, ok := claims["role"].(string); ok && model.Role(v).Valid() {
		info.Role = model.Role(v)
	}
	return info
}
