package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/healthbridge/healthbridge/internal/domain/identity"
	"github.com/healthbridge/healthbridge/internal/platform/session"
)

func authCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "auth",
		Short: "Phone login and session management",
	}
	cmd.AddCommand(loginCmd())
	cmd.AddCommand(verifyCmd())
	cmd.AddCommand(logoutCmd())
	cmd.AddCommand(whoamiCmd())
	return cmd
}

func loginCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "login <phone>",
		Short: "Request a verification code",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := newApp()
			if err != nil {
				return err
			}
			if err := identity.NewClient(app.api).SendCode(cmd.Context(), args[0]); err != nil {
				return err
			}
			fmt.Println("Verification code sent. Run: healthbridge auth verify <phone> <code>")
			return nil
		},
	}
}

func verifyCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "verify <phone> <code>",
		Short: "Exchange the verification code for a session",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := newApp()
			if err != nil {
				return err
			}
			tok, err := identity.NewClient(app.api).VerifyCode(cmd.Context(), args[0], args[1])
			if err != nil {
				return err
			}
			if err := app.session.Save(session.Session{
				AccessToken: tok.AccessToken,
				UserID:      tok.UserID,
				Role:        string(tok.Role),
			}); err != nil {
				return err
			}
			fmt.Printf("Logged in as %s (%s)\n", tok.UserID, tok.Role)
			return nil
		},
	}
}

func logoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Discard the saved session",
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := newApp()
			if err != nil {
				return err
			}
			if err := app.session.Clear(); err != nil {
				return err
			}
			fmt.Println("Logged out")
			return nil
		},
	}
}

func whoamiCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the current session",
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := newApp()
			if err != nil {
				return err
			}
			s, err := app.session.Load()
			if err != nil {
				return err
			}
			return printJSON(s)
		},
	}
}
