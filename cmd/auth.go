package cmd

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/lingocalm/internal/auth"
)

var signUpCmd = &cobra.Command{
	Use:   "signup",
	Short: "Create an account and sign in",
	RunE: func(cmd *cobra.Command, args []string) error {
		return authenticate(cmd, true)
	},
}

var signInCmd = &cobra.Command{
	Use:   "signin",
	Short: "Sign in to an existing account",
	RunE: func(cmd *cobra.Command, args []string) error {
		return authenticate(cmd, false)
	},
}

var signOutCmd = &cobra.Command{
	Use:   "signout",
	Short: "End the saved session",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withEnv(cmd, func(ctx context.Context, e *env) error {
			if err := e.auth.SignOut(ctx); err != nil {
				return err
			}
			fmt.Println("Signed out.")
			return nil
		})
	},
}

var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show the signed-in account",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withEnv(cmd, func(ctx context.Context, e *env) error {
			email, ok := e.auth.CurrentEmail()
			if !ok {
				fmt.Println("Not signed in.")
				return nil
			}
			id, _ := e.auth.CurrentUser()
			fmt.Printf("%s (%s)\n", email, id)
			return nil
		})
	},
}

func authenticate(cmd *cobra.Command, signUp bool) error {
	creds, err := readCredentials(cmd)
	if err != nil {
		return err
	}

	return withEnv(cmd, func(ctx context.Context, e *env) error {
		var id auth.UserID
		if signUp {
			id, err = e.auth.SignUp(ctx, creds)
		} else {
			id, err = e.auth.SignIn(ctx, creds)
		}
		if err != nil {
			return err
		}
		fmt.Printf("Signed in as %s (%s).\n", strings.TrimSpace(creds.Email), id)
		return nil
	})
}

// readCredentials takes email and password from flags, prompting on stdin
// for whichever is missing.
func readCredentials(cmd *cobra.Command) (auth.Credentials, error) {
	email, _ := cmd.Flags().GetString("email")
	password, _ := cmd.Flags().GetString("password")

	in := bufio.NewReader(os.Stdin)
	prompt := func(label string) (string, error) {
		fmt.Fprintf(cmd.OutOrStdout(), "%s: ", label)
		line, err := in.ReadString('\n')
		if err != nil && line == "" {
			return "", fmt.Errorf("read %s: %w", strings.ToLower(label), err)
		}
		return strings.TrimRight(line, "\r\n"), nil
	}

	var err error
	if email == "" {
		if email, err = prompt("Email"); err != nil {
			return auth.Credentials{}, err
		}
	}
	if password == "" {
		if password, err = prompt("Password"); err != nil {
			return auth.Credentials{}, err
		}
	}

	creds := auth.Credentials{Email: email, Password: password}
	return creds, creds.Validate()
}

func init() {
	for _, c := range []*cobra.Command{signUpCmd, signInCmd} {
		c.Flags().String("email", "", "Account email")
		c.Flags().String("password", "", "Account password (prompted when omitted)")
	}
}
