package main

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/go-tracker/tracker/internal/tracker/authz"
	"github.com/go-tracker/tracker/internal/tracker/controller"
	"github.com/go-tracker/tracker/internal/tracker/model"
)

/**
 * @author: h.morrow.dev@gmail.com
 * @time: 2025/3/6 21:02
 * @file: cmd_issue.go
 * @description: issue commands
 */

var (
	issueStatus   string
	issueSeverity string

	issueTitle    string
	issueDesc     string
	issueTags     []string
	issueAssignee string
)

var issueCmd = &cobra.Command{
	Use:   "issue",
	Short: "manage issues",
}

var issueListCmd = &cobra.Command{
	Use:   "list",
	Short: "list issues visible to the current user",
	RunE: func(cmd *cobra.Command, args []string) error {
		a := newApp()
		ctx, cancel := context.WithTimeout(cmd.Context(), 30*time.Second)
		defer cancel()

		ctrl := controller.NewIssueController(a.api, a.store)
		ctrl.SetFilter(model.IssueFilter{
			Status:   model.Status(strings.ToUpper(issueStatus)),
			Severity: model.Severity(strings.ToUpper(issueSeverity)),
		})

		issues, err := ctrl.Refresh(ctx)
		if err != nil {
			return err
		}
		if len(issues) == 0 {
			fmt.Println("no issues")
			return nil
		}
		for _, is := range issues {
			fmt.Printf("%-36s  %-8s  %-12s  %s\n", is.Id, is.Severity, is.Status, is.Title)
		}
		return nil
	},
}

var issueGetCmd = &cobra.Command{
	Use:   "get <issue-id>",
	Short: "show one issue",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a := newApp()
		ctx, cancel := context.WithTimeout(cmd.Context(), 30*time.Second)
		defer cancel()

		ctrl := controller.NewIssueController(a.api, a.store)
		issue, err := ctrl.Detail(ctx, args[0])
		if err != nil {
			return err
		}

		fmt.Printf("%s\n%s · %s\n", issue.Title, issue.Severity, issue.Status)
		fmt.Printf("reporter: %s  assignee: %s\n", issue.ReporterId, issue.AssigneeId)
		if len(issue.Tags) > 0 {
			fmt.Printf("tags: %s\n", strings.Join(issue.Tags, ", "))
		}
		for _, f := range issue.Files {
			fmt.Printf("attachment: %s (%s, %d bytes)\n", f.Id, f.OriginalName, f.FileSize)
		}
		fmt.Printf("\n%s\n", issue.Description)
		return nil
	},
}

var issueCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "create an issue",
	RunE: func(cmd *cobra.Command, args []string) error {
		a := newApp()
		ctx, cancel := context.WithTimeout(cmd.Context(), 30*time.Second)
		defer cancel()

		issue, err := a.api.CreateIssue(ctx, &model.CreateIssueReq{
			Title:       issueTitle,
			Description: issueDesc,
			Severity:    model.Severity(strings.ToUpper(issueSeverity)),
			Tags:        issueTags,
		})
		if err != nil {
			return err
		}
		fmt.Printf("created %s\n", issue.Id)
		return nil
	},
}

var issueUpdateCmd = &cobra.Command{
	Use:   "update <issue-id>",
	Short: "update issue fields",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a := newApp()
		ctx, cancel := context.WithTimeout(cmd.Context(), 30*time.Second)
		defer cancel()

		req := &model.UpdateIssueReq{}
		if cmd.Flags().Changed("title") {
			req.Title = &issueTitle
		}
		if cmd.Flags().Changed("description") {
			req.Description = &issueDesc
		}
		if cmd.Flags().Changed("severity") {
			sev := model.Severity(strings.ToUpper(issueSeverity))
			req.Severity = &sev
		}
		if cmd.Flags().Changed("status") {
			st := model.Status(strings.ToUpper(issueStatus))
			req.Status = &st
		}
		if cmd.Flags().Changed("assignee") {
			req.AssigneeId = &issueAssignee
		}
		if cmd.Flags().Changed("tags") {
			req.Tags = issueTags
		}

		issue, err := a.api.UpdateIssue(ctx, args[0], req)
		if err != nil {
			return err
		}
		fmt.Printf("updated %s\n", issue.Id)
		return nil
	},
}

var issueDeleteCmd = &cobra.Command{
	Use:   "delete <issue-id>",
	Short: "delete an issue",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a := newApp()
		ctx, cancel := context.WithTimeout(cmd.Context(), 30*time.Second)
		defer cancel()

		// 先在本地按权限矩阵预判，省一次必然 403 的往返
		issue, err := a.api.GetIssue(ctx, args[0])
		if err != nil {
			return err
		}
		if p := a.store.Principal(); p != nil && !authz.CanDelete(p.Role, issue.ReporterId, p.Id) {
			return fmt.Errorf("role %s cannot delete issue %s", p.Role, issue.Id)
		}

		if err := a.api.DeleteIssue(ctx, args[0]); err != nil {
			return err
		}
		fmt.Printf("deleted %s\n", args[0])
		return nil
	},
}

func init() {
	issueListCmd.Flags().StringVar(&issueStatus, "status", "", "filter by status: OPEN, TRIAGED, IN_PROGRESS or DONE")
	issueListCmd.Flags().StringVar(&issueSeverity, "severity", "", "filter by severity: LOW, MEDIUM, HIGH or CRITICAL")

	issueCreateCmd.Flags().StringVarP(&issueTitle, "title", "t", "", "issue title")
	issueCreateCmd.Flags().StringVarP(&issueDesc, "description", "d", "", "issue description (markdown)")
	issueCreateCmd.Flags().StringVar(&issueSeverity, "severity", "MEDIUM", "issue severity")
	issueCreateCmd.Flags().StringSliceVar(&issueTags, "tags", nil, "issue tags")

	issueUpdateCmd.Flags().StringVarP(&issueTitle, "title", "t", "", "new title")
	issueUpdateCmd.Flags().StringVarP(&issueDesc, "description", "d", "", "new description")
	issueUpdateCmd.Flags().StringVar(&issueSeverity, "severity", "", "new severity")
	issueUpdateCmd.Flags().StringVar(&issueStatus, "status", "", "new status")
	issueUpdateCmd.Flags().StringVar(&issueAssignee, "assignee", "", "assignee user id")
	issueUpdateCmd.Flags().StringSliceVar(&issueTags, "tags", nil, "new tags")

	issueCmd.AddCommand(issueListCmd, issueGetCmd, issueCreateCmd, issueUpdateCmd, issueDeleteCmd)
	rootCmd.AddCommand(issueCmd)
}
