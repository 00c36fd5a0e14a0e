package main

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/go-tracker/tracker/internal/tracker/model"
	"github.com/go-tracker/tracker/internal/tracker/sso"
	"github.com/go-tracker/tracker/pkg/log"
)

/**
 * @author: h.morrow.dev@gmail.com
 * @time: 2025/3/6 20:31
 * @file: cmd_auth.go
 * @description: auth commands
 */

var (
	loginEmail    string
	loginPassword string
	loginSSO      bool

	registerName string
	registerRole string
)

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "sign in with email/password or an identity provider",
	RunE: func(cmd *cobra.Command, args []string) error {
		a := newApp()
		ctx, cancel := context.WithTimeout(cmd.Context(), 2*time.Minute)
		defer cancel()

		if loginSSO {
			return ssoLogin(ctx, a)
		}

		password := loginPassword
		if password == "" {
			fmt.Fprint(os.Stderr, "password: ")
			raw, err := term.ReadPassword(int(os.Stdin.Fd()))
			fmt.Fprintln(os.Stderr)
			if err != nil {
				return err
			}
			password = string(raw)
		}

		if err := a.store.Login(ctx, loginEmail, password); err != nil {
			return err
		}
		p := a.store.Principal()
		fmt.Printf("logged in as %s (%s)\n", p.Email, p.Role)
		return nil
	},
}

// ssoLogin 走 OIDC 授权码流程：打印登录链接，等本地回调拿 code
func ssoLogin(ctx context.Context, a *app) error {
	login, err := sso.NewOIDCLogin(ctx, a.cfg.SSO)
	if err != nil {
		return err
	}

	fmt.Printf("open the following URL in your browser:\n\n  %s\n\n", login.AuthURL())
	fmt.Println("waiting for the provider callback...")

	info, err := login.WaitCallback(ctx)
	if err != nil {
		return err
	}
	log.Infof("sso: provider returned identity %s", info.Email)

	if err := a.store.LoginWithToken(ctx, info.RawIDToken); err != nil {
		return err
	}
	p := a.store.Principal()
	fmt.Printf("logged in as %s (%s)\n", p.Email, p.Role)
	return nil
}

var registerCmd = &cobra.Command{
	Use:   "register",
	Short: "create a new account",
	RunE: func(cmd *cobra.Command, args []string) error {
		a := newApp()
		ctx, cancel := context.WithTimeout(cmd.Context(), 30*time.Second)
		defer cancel()

		fmt.Fprint(os.Stderr, "password: ")
		raw, err := term.ReadPassword(int(os.Stdin.Fd()))
		fmt.Fprintln(os.Stderr)
		if err != nil {
			return err
		}

		role, err := parseRole(registerRole)
		if err != nil {
			return err
		}
		if err := a.store.Register(ctx, loginEmail, string(raw), registerName, role); err != nil {
			return err
		}
		fmt.Printf("registered %s\n", loginEmail)
		return nil
	},
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "clear the local session",
	RunE: func(cmd *cobra.Command, args []string) error {
		a := newApp()
		ctx, cancel := context.WithTimeout(cmd.Context(), 30*time.Second)
		defer cancel()

		a.store.Logout(ctx)
		fmt.Println("logged out")
		return nil
	},
}

var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "show the current session",
	RunE: func(cmd *cobra.Command, args []string) error {
		a := newApp()

		p := a.store.Principal()
		if p == nil {
			fmt.Println("not logged in")
			return nil
		}
		fmt.Printf("%s (%s) role=%s authenticated=%t\n", p.Name, p.Email, p.Role, a.store.Authenticated())

		// token 只做展示用途，不校验签名
		if exp := tokenExpiry(a.store.Token()); !exp.IsZero() {
			fmt.Printf("token expires %s\n", exp.Format(time.RFC3339))
		}
		return nil
	},
}

func parseRole(s string) (model.Role, error) {
	role := model.Role(strings.ToUpper(s))
	if !role.Valid() {
		return "", fmt.Errorf("unknown role %q", s)
	}
	return role, nil
}

// tokenExpiry parses the exp claim without verifying the signature.
func tokenExpiry(token string) time.Time {
	if token == "" {
		return time.Time{}
	}
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return time.Time{}
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return time.Time{}
	}
	return exp.Time
}

func init() {
	loginCmd.Flags().StringVarP(&loginEmail, "email", "e", "", "account email")
	loginCmd.Flags().StringVarP(&loginPassword, "password", "p", "", "account password (prompted when omitted)")
	loginCmd.Flags().BoolVar(&loginSSO, "sso", false, "sign in through the configured identity provider")

	registerCmd.Flags().StringVarP(&loginEmail, "email", "e", "", "account email")
	registerCmd.Flags().StringVarP(&registerName, "name", "n", "", "display name")
	registerCmd.Flags().StringVar(&registerRole, "role", "REPORTER", "account role: ADMIN, MAINTAINER or REPORTER")

	rootCmd.AddCommand(loginCmd, registerCmd, logoutCmd, whoamiCmd)
}
