package main

import (
	"encoding/json"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/go-tracker/tracker/internal/tracker/controller"
	"github.com/go-tracker/tracker/internal/tracker/realtime"
	"github.com/go-tracker/tracker/internal/tracker/tui"
	"github.com/go-tracker/tracker/pkg/log"
)

/**
 * @author: h.morrow.dev@gmail.com
 * @time: 2025/3/6 22:20
 * @file: cmd_ui.go
 * @description: interactive terminal ui
 */

var uiCmd = &cobra.Command{
	Use:   "ui",
	Short: "open the interactive terminal ui",
	RunE: func(cmd *cobra.Command, args []string) error {
		a := newApp()

		ctrl := controller.NewIssueController(a.api, a.store)
		m := tui.New(ctrl, a.api)

		// 推送通道失败不阻止 UI 启动，仅降级为手动刷新
		var opts []realtime.Option
		if a.cfg.Realtime.Reconnect {
			opts = append(opts, realtime.WithReconnect(a.cfg.Realtime.MaxAttempts))
		}
		ch, err := realtime.Dial(cmd.Context(), a.cfg.API.BaseURL, func(data json.RawMessage) {
			ctrl.OnPush(data)
		}, opts...)
		if err != nil {
			log.Warnf("ui: push channel unavailable: %v", err)
		} else {
			defer func() {
				if err := ch.Close(); err != nil {
					log.Warnf("ui: close push channel: %v", err)
				}
			}()
		}

		_, err = tea.NewProgram(m, tea.WithAltScreen()).Run()
		return err
	},
}

func init() {
	rootCmd.AddCommand(uiCmd)
}
