package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/go-tracker/tracker/internal/tracker/authz"
	"github.com/go-tracker/tracker/internal/tracker/model"
)

/**
 * @author: h.morrow.dev@gmail.com
 * @time: 2025/3/6 21:40
 * @file: cmd_user.go
 * @description: user directory commands
 */

var (
	userName   string
	userRole   string
	userActive bool
)

var userCmd = &cobra.Command{
	Use:   "user",
	Short: "manage users",
}

var userListCmd = &cobra.Command{
	Use:   "list",
	Short: "list all users",
	RunE: func(cmd *cobra.Command, args []string) error {
		a := newApp()
		ctx, cancel := context.WithTimeout(cmd.Context(), 30*time.Second)
		defer cancel()

		users, err := a.api.ListUsers(ctx)
		if err != nil {
			return err
		}
		for _, u := range users {
			active := "active"
			if !u.IsActive {
				active = "inactive"
			}
			fmt.Printf("%-36s  %-10s  %-8s  %s <%s>\n", u.Id, u.Role, active, u.Name, u.Email)
		}
		return nil
	},
}

var userGetCmd = &cobra.Command{
	Use:   "get <user-id>",
	Short: "show one user",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a := newApp()
		ctx, cancel := context.WithTimeout(cmd.Context(), 30*time.Second)
		defer cancel()

		u, err := a.api.GetUser(ctx, args[0])
		if err != nil {
			return err
		}
		fmt.Printf("%s <%s>\nrole: %s  active: %t\ncreated: %s\n",
			u.Name, u.Email, u.Role, u.IsActive, u.CreatedAt.Format(time.RFC3339))
		return nil
	},
}

var userUpdateCmd = &cobra.Command{
	Use:   "update <user-id>",
	Short: "update a user (admin only)",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a := newApp()
		ctx, cancel := context.WithTimeout(cmd.Context(), 30*time.Second)
		defer cancel()

		if p := a.store.Principal(); p != nil && !authz.HasCapability(p.Role, authz.CapManageUsers) {
			return fmt.Errorf("role %s cannot manage users", p.Role)
		}

		req := &model.UpdateUserReq{}
		if cmd.Flags().Changed("name") {
			req.Name = &userName
		}
		if cmd.Flags().Changed("role") {
			role, err := parseRole(userRole)
			if err != nil {
				return err
			}
			req.Role = &role
		}
		if cmd.Flags().Changed("active") {
			req.IsActive = &userActive
		}

		u, err := a.api.UpdateUser(ctx, args[0], req)
		if err != nil {
			return err
		}
		fmt.Printf("updated %s\n", u.Id)
		return nil
	},
}

func init() {
	userUpdateCmd.Flags().StringVar(&userName, "name", "", "new display name")
	userUpdateCmd.Flags().StringVar(&userRole, "role", "", "new role: ADMIN, MAINTAINER or REPORTER")
	userUpdateCmd.Flags().BoolVar(&userActive, "active", true, "account enabled")

	userCmd.AddCommand(userListCmd, userGetCmd, userUpdateCmd)
	rootCmd.AddCommand(userCmd)
}
