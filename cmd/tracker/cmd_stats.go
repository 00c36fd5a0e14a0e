package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

/**
 * @author: h.morrow.dev@gmail.com
 * @time: 2025/3/6 21:55
 * @file: cmd_stats.go
 * @description: dashboard stats command
 */

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "show dashboard statistics",
	RunE: func(cmd *cobra.Command, args []string) error {
		a := newApp()
		ctx, cancel := context.WithTimeout(cmd.Context(), 30*time.Second)
		defer cancel()

		stats, err := a.api.DashboardStats(ctx)
		if err != nil {
			return err
		}

		fmt.Printf("total: %d  open: %d  in progress: %d  closed: %d\n",
			stats.TotalIssues, stats.OpenIssues, stats.InProgressIssues, stats.ClosedIssues)
		fmt.Println("\nby severity:")
		for _, sev := range []string{"CRITICAL", "HIGH", "MEDIUM", "LOW"} {
			fmt.Printf("  %-10s %d\n", sev, stats.IssuesBySeverity[sev])
		}
		fmt.Println("\nby status:")
		for _, st := range []string{"OPEN", "TRIAGED", "IN_PROGRESS", "DONE"} {
			fmt.Printf("  %-12s %d\n", st, stats.IssuesByStatus[st])
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(statsCmd)
}
