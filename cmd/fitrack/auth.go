package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/wytfitness/Fitness-App-04112025/internal/session"
)

var (
	authEmail    string
	authPassword string
)

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Sign in with email and password",
	RunE: func(cmd *cobra.Command, args []string) error {
		if authEmail == "" || authPassword == "" {
			return fmt.Errorf("--email and --password are required")
		}
		return withProvider(func(p *session.Provider) error {
			if err := p.SignIn(cmd.Context(), authEmail, authPassword); err != nil {
				// Auth rejections render inline, not as a usage error.
				fmt.Fprintf(cmd.ErrOrStderr(), "Sign-in failed: %v\n", err)
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Signed in as %s\n", authEmail)
			return nil
		})
	},
}

var signupCmd = &cobra.Command{
	Use:   "signup",
	Short: "Create an account",
	RunE: func(cmd *cobra.Command, args []string) error {
		if authEmail == "" || authPassword == "" {
			return fmt.Errorf("--email and --password are required")
		}
		return withProvider(func(p *session.Provider) error {
			pending, err := p.SignUp(cmd.Context(), authEmail, authPassword)
			if err != nil {
				fmt.Fprintf(cmd.ErrOrStderr(), "Sign-up failed: %v\n", err)
				return err
			}
			if pending {
				fmt.Fprintln(cmd.OutOrStdout(), "Account created. Check your email to confirm, then run fitrack login.")
				return nil
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Signed up and in as %s\n", authEmail)
			return nil
		})
	},
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Sign out and clear the local session",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withProvider(func(p *session.Provider) error {
			return p.SignOut(cmd.Context())
		})
	},
}

var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show the signed-in user",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withProvider(func(p *session.Provider) error {
			sess := p.Current()
			if sess == nil {
				fmt.Fprintln(cmd.OutOrStdout(), "Not signed in")
				return nil
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s (expires %s)\n", sess.Email, sess.ExpiresAt.Format("2006-01-02 15:04"))
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(loginCmd, signupCmd, logoutCmd, whoamiCmd)

	for _, c := range []*cobra.Command{loginCmd, signupCmd} {
		c.Flags().StringVar(&authEmail, "email", "", "Account email")
		c.Flags().StringVar(&authPassword, "password", "", "Account password")
	}
}
