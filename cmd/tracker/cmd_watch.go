package main

import (
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/go-tracker/tracker/internal/tracker/realtime"
	"github.com/go-tracker/tracker/pkg/log"
)

/**
 * @author: h.morrow.dev@gmail.com
 * @time: 2025/3/6 22:08
 * @file: cmd_watch.go
 * @description: realtime watch command
 */

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "print live issue updates from the push channel",
	RunE: func(cmd *cobra.Command, args []string) error {
		a := newApp()

		var opts []realtime.Option
		if a.cfg.Realtime.Reconnect {
			opts = append(opts, realtime.WithReconnect(a.cfg.Realtime.MaxAttempts))
		}

		ch, err := realtime.Dial(cmd.Context(), a.cfg.API.BaseURL, func(data json.RawMessage) {
			fmt.Printf("issue update: %s\n", data)
		}, opts...)
		if err != nil {
			return err
		}
		defer func() {
			if err := ch.Close(); err != nil {
				log.Warnf("watch: close: %v", err)
			}
		}()

		fmt.Printf("watching as client %s (ctrl+c to stop)\n", ch.ClientId())

		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		<-quit
		return nil
	},
}

func init() {
	rootCmd.AddCommand(watchCmd)
}
