package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"
)

/**
 * @author: h.morrow.dev@gmail.com
 * @time: 2025/3/6 21:24
 * @file: cmd_file.go
 * @description: attachment commands
 */

var fileOut string

var fileCmd = &cobra.Command{
	Use:   "file",
	Short: "manage issue attachments",
}

var fileUploadCmd = &cobra.Command{
	Use:   "upload <issue-id> <path>",
	Short: "attach a local file to an issue",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		a := newApp()
		ctx, cancel := context.WithTimeout(cmd.Context(), 2*time.Minute)
		defer cancel()

		f, err := os.Open(args[1])
		if err != nil {
			return err
		}
		defer f.Close()

		meta, err := a.api.UploadFile(ctx, args[0], filepath.Base(args[1]), f)
		if err != nil {
			return err
		}
		fmt.Printf("uploaded %s (%d bytes) as %s\n", meta.OriginalName, meta.FileSize, meta.Id)
		return nil
	},
}

var fileGetCmd = &cobra.Command{
	Use:   "get <file-id>",
	Short: "download an attachment",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a := newApp()
		ctx, cancel := context.WithTimeout(cmd.Context(), 2*time.Minute)
		defer cancel()

		data, err := a.api.DownloadFile(ctx, args[0])
		if err != nil {
			return err
		}

		out := fileOut
		if out == "" {
			out = args[0]
		}
		if err := os.WriteFile(out, data, 0o644); err != nil {
			return err
		}
		fmt.Printf("wrote %s (%d bytes)\n", out, len(data))
		return nil
	},
}

var fileDeleteCmd = &cobra.Command{
	Use:   "delete <file-id>",
	Short: "remove an attachment",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a := newApp()
		ctx, cancel := context.WithTimeout(cmd.Context(), 30*time.Second)
		defer cancel()

		if err := a.api.DeleteFile(ctx, args[0]); err != nil {
			return err
		}
		fmt.Printf("deleted %s\n", args[0])
		return nil
	},
}

func init() {
	fileGetCmd.Flags().StringVarP(&fileOut, "out", "o", "", "output path (defaults to the file id)")

	fileCmd.AddCommand(fileUploadCmd, fileGetCmd, fileDeleteCmd)
	rootCmd.AddCommand(fileCmd)
}
