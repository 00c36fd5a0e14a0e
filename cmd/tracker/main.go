package main

import (
	"github.com/spf13/cobra"

	"github.com/go-tracker/tracker/internal/tracker/api"
	"github.com/go-tracker/tracker/internal/tracker/config"
	"github.com/go-tracker/tracker/internal/tracker/session"
	"github.com/go-tracker/tracker/pkg/log"
	"github.com/go-tracker/tracker/pkg/version"
)

/**
 * @author: h.morrow.dev@gmail.com
 * @time: 2025/3/6 20:14
 * @file: main.go
 * @description: tracker cli program
 */

var confDir string

var rootCmd = &cobra.Command{
	Use:   "tracker",
	Short: "tracker is a command line client for the issue tracker",
	Long:  "tracker is a command line client for the issue tracker",
	Run: func(cmd *cobra.Command, args []string) {
		err := cmd.Help()
		if err != nil {
			return
		}
	},
}

// app bundles the wired client stack shared by all subcommands.
type app struct {
	cfg   config.AppConfig
	api   *api.Client
	store *session.Store
}

// newApp 装配配置、日志、API 客户端与会话；
// 等待会话恢复完成后才返回。
func newApp() *app {
	cfg := config.NewConf(confDir)
	log.MustInit(&cfg.Log)

	apiClient := api.NewClient(cfg.API.BaseURL)
	store := session.NewStore(apiClient)
	apiClient.SetTokenProvider(store.Token)
	<-store.Ready()

	return &app{cfg: cfg, api: apiClient, store: store}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&confDir, "conf", "", "conf dir path, e.g. --conf ./conf.d")
	rootCmd.AddCommand(version.VersionCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		panic(err)
	}
}
