package main

import (
	"context"
	"fmt"
	"os"
	"syscall"

	"github.com/spf13/cobra"
	"golang.org/x/crypto/ssh/terminal"

	clienterrors "github.com/jrsteele09/go-meetings-client/internal/errors"
	"github.com/jrsteele09/go-meetings-client/session"
)

func newLoginCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "login",
		Short: "Authenticate and store the session credential",
		Run: func(cmd *cobra.Command, args []string) {
			a, err := newApp(cmd)
			if err != nil {
				exitError(a, err)
			}

			email, _ := cmd.Flags().GetString("email")
			if email == "" {
				verr := &clienterrors.ValidationError{}
				verr.Add("email", "--email is required")
				exitError(a, verr)
			}

			password, _ := cmd.Flags().GetString("password")
			if password == "" {
				password, err = promptPassword()
				if err != nil {
					exitError(a, err)
				}
			}

			ctx, cancel := context.WithTimeout(context.Background(), commandTimeout)
			defer cancel()

			if _, err := a.gateway.Login(ctx, email, password); err != nil {
				exitError(a, err)
			}
			fmt.Printf("Logged in as %s\n", email)
		},
	}
	cmd.Flags().String("email", "", "account email")
	cmd.Flags().String("password", "", "account password (prompted when omitted)")
	return cmd
}

func newLogoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Clear the stored session",
		Run: func(cmd *cobra.Command, args []string) {
			a, err := newApp(cmd)
			if err != nil {
				exitError(a, err)
			}
			a.gateway.Logout()
			fmt.Println("Logged out")
		},
	}
}

func newStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show the local session state",
		Run: func(cmd *cobra.Command, args []string) {
			a, err := newApp(cmd)
			if err != nil {
				exitError(a, err)
			}

			if !a.gateway.IsAuthenticated() {
				fmt.Println("Session: anonymous")
				return
			}
			fmt.Println("Session: authenticated")

			credential, err := a.store.Load()
			if err != nil || credential == "" {
				return
			}
			// Informational only: claims are decoded without verification and
			// never used to decide whether the credential is still valid.
			claims, err := session.Inspect(credential)
			if err != nil {
				return
			}
			if claims.Subject != "" {
				fmt.Printf("Subject:  %s\n", claims.Subject)
			}
			if claims.Issuer != "" {
				fmt.Printf("Issuer:   %s\n", claims.Issuer)
			}
			if !claims.ExpiresAt.IsZero() {
				fmt.Printf("Expires:  %s\n", claims.ExpiresAt.Format("2006-01-02 15:04:05 MST"))
			}
		},
	}
}

func newWhoamiCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Look up the user the stored credential belongs to",
		Run: func(cmd *cobra.Command, args []string) {
			a, err := newApp(cmd)
			if err != nil {
				exitError(a, err)
			}

			ctx, cancel := context.WithTimeout(context.Background(), commandTimeout)
			defer cancel()

			user, err := a.gateway.CurrentUser(ctx)
			if err != nil {
				exitError(a, err)
			}

			if a.cfg.GetOutput() == "json" {
				if err := printJSON(user); err != nil {
					exitError(a, err)
				}
				return
			}
			fmt.Printf("id:    %d\nemail: %s\n", user.ID, user.Email)
		},
	}
}

func promptPassword() (string, error) {
	fmt.Fprint(os.Stderr, "Password: ")
	password, err := terminal.ReadPassword(int(syscall.Stdin))
	fmt.Fprintln(os.Stderr)
	if err != nil {
		return "", err
	}
	return string(password), nil
}
