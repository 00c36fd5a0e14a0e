package conf

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"

	"github.com/go-tracker/tracker/pkg/log"
)

/**
 * @author: h.morrow.dev@gmail.com
 * @time: 2025/3/3 20:46
 * @file: conf.go
 * @description: config loader
 */

const envPrefix = "TRACKER"

// LoadConfigFile 读取 TOML 配置文件并反序列化到 cfg，支持 TRACKER_* 环境变量覆盖。
// cfg 必须是指针。配置变更时自动重新解析。
func LoadConfigFile(confDir string, cfg interface{}) error {
	cfgValue := reflect.ValueOf(cfg)
	if cfgValue.Kind() != reflect.Ptr || cfgValue.IsNil() {
		return errors.New("cfg must be a non-nil pointer")
	}

	vCfg := viper.New()
	vCfg.AddConfigPath(confDir)
	vCfg.SetConfigName("config")
	vCfg.SetConfigType("toml")
	vCfg.SetEnvPrefix(envPrefix)
	vCfg.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	vCfg.AutomaticEnv()

	if err := vCfg.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		// 配置文件不存在时仍可仅依赖环境变量与默认值运行
		if !errors.As(err, &notFound) {
			return fmt.Errorf("failed to read configuration file: %v", err)
		}
	}

	// 配置动态改变时，回调函数
	vCfg.WatchConfig()
	vCfg.OnConfigChange(func(e fsnotify.Event) {
		log.Infof("the configuration changed, re-analyze the configuration file: %s", e.Name)
		if err := vCfg.Unmarshal(cfg); err != nil {
			log.Errorf("failed to unmarshal configuration file: %v", err)
		}
	})
	if err := vCfg.Unmarshal(cfg); err != nil {
		return fmt.Errorf("failed to unmarshal configuration file: %v", err)
	}

	return nil
}

// GetEnv 读取带 TRACKER 前缀的环境变量，未设置时返回默认值。
func GetEnv(key, fallback string) string {
	v := viper.New()
	v.SetEnvPrefix(envPrefix)
	v.AutomaticEnv()
	if s := v.GetString(key); s != "" {
		return s
	}
	return fallback
}
