package config

import (
	"sync"

	"github.com/go-tracker/tracker/pkg/conf"
	"github.com/go-tracker/tracker/pkg/log"
)

/**
 * @author: h.morrow.dev@gmail.com
 * @time: 2025/3/5 19:27
 * @file: config.go
 * @description: application config
 */

// APIConfig 远端 REST 服务配置
type APIConfig struct {
	// BaseURL REST 基地址，可用 TRACKER_API_BASE_URL 覆盖
	BaseURL string
}

// RealtimeConfig 推送通道配置
type RealtimeConfig struct {
	// Reconnect 是否自动重连（默认关闭，断开即终止）
	Reconnect bool
	// MaxAttempts 每轮重连的最大尝试次数
	MaxAttempts int
}

// SSOConfig 第三方身份提供方（OIDC）配置
type SSOConfig struct {
	Issuer       string
	ClientId     string
	ClientSecret string
	// RedirectPort 本地回调监听端口
	RedirectPort int
}

type AppConfig struct {
	Log      log.Conf
	API      APIConfig
	Realtime RealtimeConfig
	SSO      SSOConfig
}

var (
	cfg  AppConfig
	once sync.Once
)

// NewConf loads the application config from confDir (config.toml),
// falling back to defaults plus TRACKER_* environment overrides.
func NewConf(confDir string) AppConfig {
	once.Do(func() {
		cfg = defaults()
		if err := conf.LoadConfigFile(confDir, &cfg); err != nil {
			log.Warnf("config: %v, using defaults", err)
		}
		if base := conf.GetEnv("API_BASE_URL", ""); base != "" {
			cfg.API.BaseURL = base
		}
	})
	return cfg
}

func defaults() AppConfig {
	return AppConfig{
		Log: *log.SetDefaults(),
		API: APIConfig{
			BaseURL: "http://localhost:8000/api/v1",
		},
		Realtime: RealtimeConfig{
			Reconnect:   false,
			MaxAttempts: 5,
		},
		SSO: SSOConfig{
			RedirectPort: 8910,
		},
	}
}
