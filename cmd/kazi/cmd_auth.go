package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"kazi/internal/api"
	"kazi/internal/validate"
)

var (
	loginEmail    string
	loginPassword string
)

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Sign in with email and password",
	RunE: func(cmd *cobra.Command, args []string) error {
		email := loginEmail
		if email == "" {
			var err error
			if email, err = promptLine("Email: "); err != nil {
				return err
			}
		}
		if err := validate.Email(email); err != nil {
			return err
		}

		password := loginPassword
		if password == "" {
			var err error
			if password, err = promptSecret("Password: "); err != nil {
				return err
			}
		}

		ctx, cancel := commandContext()
		defer cancel()
		if err := sess.Login(ctx, email, password); err != nil {
			return fmt.Errorf("sign-in failed: %s", api.Message(err))
		}
		fmt.Printf("Signed in as %s\n", store.FullName())
		return nil
	},
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Sign out and discard stored credentials",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := commandContext()
		defer cancel()
		if err := sess.Logout(ctx); err != nil {
			return err
		}
		fmt.Println("Signed out.")
		return nil
	},
}

var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show the signed-in identity",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := commandContext()
		defer cancel()
		if err := requireSession(ctx); err != nil {
			return err
		}
		fmt.Printf("%s <%s>\n", store.FullName(), store.Email())
		if store.IsSuperuser() {
			fmt.Println("Platform superuser")
		}
		return nil
	},
}

var registerCmd = &cobra.Command{
	Use:   "register",
	Short: "Create an account from an invitation",
	RunE: func(cmd *cobra.Command, args []string) error {
		email, err := promptLine("Email: ")
		if err != nil {
			return err
		}
		if err := validate.Email(email); err != nil {
			return err
		}
		fullName, err := promptLine("Full name: ")
		if err != nil {
			return err
		}
		phone, err := promptLine("Phone: ")
		if err != nil {
			return err
		}
		if phone != "" {
			if err := validate.Phone(phone); err != nil {
				return err
			}
		}
		password, err := promptSecret("Password: ")
		if err != nil {
			return err
		}
		if err := validate.Password(password); err != nil {
			return err
		}

		ctx, cancel := commandContext()
		defer cancel()
		user, err := client.Register(ctx, api.RegisterRequest{
			Email:    email,
			FullName: fullName,
			Phone:    phone,
			Password: password,
		})
		if err != nil {
			return fmt.Errorf("registration failed: %s", api.Message(err))
		}
		fmt.Printf("Account created for %s. You can now sign in.\n", user.Email)
		return nil
	},
}

var otpCmd = &cobra.Command{
	Use:   "otp",
	Short: "Passwordless sign-in with a one-time code",
}

var otpRequestCmd = &cobra.Command{
	Use:   "request <email>",
	Short: "Send a one-time code to an email address",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := validate.Email(args[0]); err != nil {
			return err
		}
		ctx, cancel := commandContext()
		defer cancel()
		if err := client.RequestOTP(ctx, args[0]); err != nil {
			return fmt.Errorf("could not send code: %s", api.Message(err))
		}
		fmt.Println("Code sent. Complete sign-in with: kazi otp verify", args[0], "<code>")
		return nil
	},
}

var otpVerifyCmd = &cobra.Command{
	Use:   "verify <email> <code>",
	Short: "Exchange a one-time code for a session",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := commandContext()
		defer cancel()
		if err := sess.LoginWithOTP(ctx, args[0], args[1]); err != nil {
			return fmt.Errorf("sign-in failed: %s", api.Message(err))
		}
		fmt.Printf("Signed in as %s\n", store.FullName())
		return nil
	},
}

var passwdCmd = &cobra.Command{
	Use:   "passwd",
	Short: "Change your password",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := commandContext()
		defer cancel()
		if err := requireSession(ctx); err != nil {
			return err
		}
		current, err := promptSecret("Current password: ")
		if err != nil {
			return err
		}
		next, err := promptSecret("New password: ")
		if err != nil {
			return err
		}
		if err := validate.Password(next); err != nil {
			return err
		}
		if err := client.ChangePassword(ctx, current, next); err != nil {
			return fmt.Errorf("password change failed: %s", api.Message(err))
		}
		fmt.Println("Password changed.")
		return nil
	},
}

func promptLine(prompt string) (string, error) {
	fmt.Print(prompt)
	reader := bufio.NewReader(os.Stdin)
	line, err := reader.ReadString('\n')
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

func promptSecret(prompt string) (string, error) {
	fmt.Print(prompt)
	secret, err := term.ReadPassword(int(syscall.Stdin))
	fmt.Println()
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(secret)), nil
}

func init() {
	loginCmd.Flags().StringVar(&loginEmail, "email", "", "email address")
	loginCmd.Flags().StringVar(&loginPassword, "password", "", "password (omit to be prompted)")

	otpCmd.AddCommand(otpRequestCmd, otpVerifyCmd)
	rootCmd.AddCommand(loginCmd, logoutCmd, whoamiCmd, registerCmd, otpCmd, passwdCmd)
}
