package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/carelink/carelink/internal/api"
	"github.com/carelink/carelink/internal/authflow"
	"github.com/carelink/carelink/internal/config"
	"github.com/carelink/carelink/internal/demoapi"
	"github.com/carelink/carelink/internal/session"
	"github.com/carelink/carelink/internal/shell"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "carelink",
		Short: "CareLink appointment booking client",
	}

	rootCmd.AddCommand(loginCmd())
	rootCmd.AddCommand(registerCmd())
	rootCmd.AddCommand(logoutCmd())
	rootCmd.AddCommand(whoamiCmd())
	rootCmd.AddCommand(resetPasswordCmd())
	rootCmd.AddCommand(customerCmd())
	rootCmd.AddCommand(doctorCmd())
	rootCmd.AddCommand(adminCmd())
	rootCmd.AddCommand(pharmacistCmd())
	rootCmd.AddCommand(demoServerCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// app bundles the pieces every command needs: config, logger, session
// store, and the shared HTTP client.
type app struct {
	cfg   *config.Config
	store session.Store
	api   *api.Client
	log   zerolog.Logger
}

func newApp() (*app, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	logger := zerolog.New(os.Stderr).With().Timestamp().Logger()
	if cfg.IsDev() {
		logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()
	}

	path := cfg.SessionFile
	if path == "" {
		path, err = session.DefaultPath()
		if err != nil {
			return nil, err
		}
	}
	store := session.NewFileStore(path)

	client := api.New(cfg.APIBaseURL, time.Duration(cfg.HTTPTimeoutSecs)*time.Second, store, logger)

	return &app{cfg: cfg, store: store, api: client, log: logger}, nil
}

func (a *app) authenticator() authflow.Authenticator {
	if a.cfg.ResolvedAuthMode() == "demo" {
		return &authflow.DemoAuthenticator{}
	}
	return &authflow.APIAuthenticator{API: a.api}
}

// gate runs the shell check for a role group and prints the section header.
func (a *app) gate(ctx context.Context, sh *shell.Shell) (*session.Session, error) {
	sess, err := sh.Gate(a.store)
	if err != nil {
		return nil, err
	}
	fmt.Print(sh.Header(ctx, sess))
	return sess, nil
}

// stdin is shared by all prompts; tests swap it for a fixed input.
var stdin = bufio.NewReader(os.Stdin)

// prompt reads one line of input. A read failure with nothing typed (closed
// or exhausted stdin) is an error the caller must stop on, otherwise an
// interactive loop would spin forever re-asking a stream that can never
// answer.
func prompt(label string) (string, error) {
	fmt.Printf("%s: ", label)
	line, err := stdin.ReadString('\n')
	line = strings.TrimSpace(line)
	if err != nil && line == "" {
		return "", fmt.Errorf("read input for %q: %w", label, err)
	}
	return line, nil
}

func confirm(label string) bool {
	answer, err := prompt(label + " [y/N]")
	if err != nil {
		return false
	}
	return strings.EqualFold(answer, "y") || strings.EqualFold(answer, "yes")
}

func loginCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "login",
		Short: "Log in and store a session",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}

			email, _ := cmd.Flags().GetString("email")
			password, _ := cmd.Flags().GetString("password")
			if email == "" {
				if email, err = prompt("Email"); err != nil {
					return err
				}
			}
			if password == "" {
				if password, err = prompt("Password"); err != nil {
					return err
				}
			}

			m := authflow.New(a.authenticator(), a.store)
			if !m.SubmitLogin(cmd.Context(), email, password) {
				return errors.New(m.Err())
			}
			fmt.Println(m.Notice())
			fmt.Println("Home:", m.HomeRoute())
			return nil
		},
	}
	cmd.Flags().String("email", "", "Account email")
	cmd.Flags().String("password", "", "Account password")
	return cmd
}

func registerCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "register",
		Short: "Create a customer account",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}

			req := authflow.RegisterRequest{}
			req.Name, _ = cmd.Flags().GetString("name")
			req.Email, _ = cmd.Flags().GetString("email")
			req.Phone, _ = cmd.Flags().GetString("phone")
			req.Password, _ = cmd.Flags().GetString("password")
			if req.Name == "" {
				if req.Name, err = prompt("Name"); err != nil {
					return err
				}
			}
			if req.Email == "" {
				if req.Email, err = prompt("Email"); err != nil {
					return err
				}
			}
			if req.Password == "" {
				if req.Password, err = prompt("Password"); err != nil {
					return err
				}
			}

			m := authflow.New(a.authenticator(), a.store, authflow.WithInitialState(authflow.StateRegister))
			if !m.SubmitRegister(cmd.Context(), req) {
				return errors.New(m.Err())
			}
			fmt.Println(m.Notice())
			fmt.Println("Home:", m.HomeRoute())
			return nil
		},
	}
	cmd.Flags().String("name", "", "Full name")
	cmd.Flags().String("email", "", "Account email")
	cmd.Flags().String("phone", "", "Phone number")
	cmd.Flags().String("password", "", "Account password")
	return cmd
}

func logoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Clear the stored session",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}
			entry, err := shell.Logout(a.store)
			if err != nil {
				return err
			}
			fmt.Println("Logged out. Entry:", entry)
			return nil
		},
	}
}

func whoamiCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the current session",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}
			sess, err := a.store.Current()
			if err != nil {
				if errors.Is(err, session.ErrNoSession) {
					fmt.Println("Not logged in.")
					return nil
				}
				return err
			}
			fmt.Printf("%s (%s)\nHome: %s\n", sess.Email, sess.Role, sess.Role.Home())
			return nil
		},
	}
}

func resetPasswordCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "reset-password",
		Short: "Walk the forgot-password flow",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}

			m := authflow.New(a.authenticator(), a.store, authflow.WithInitialState(authflow.StateForgot))

			for {
				email, err := prompt("Email")
				if err != nil {
					return err
				}
				if m.SubmitForgot(email) {
					break
				}
				fmt.Println(m.Err())
			}
			fmt.Println(m.Notice())

			for {
				code, err := prompt("OTP")
				if err != nil {
					return err
				}
				if m.SubmitOTP(code) {
					break
				}
				fmt.Println(m.Err())
			}
			fmt.Println(m.Notice())

			for {
				newPassword, err := prompt("New password")
				if err != nil {
					return err
				}
				confirmPassword, err := prompt("Confirm password")
				if err != nil {
					return err
				}
				if m.SubmitReset(newPassword, confirmPassword) {
					break
				}
				fmt.Println(m.Err())
			}
			fmt.Println(m.Notice())
			return nil
		},
	}
}

func demoServerCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "demo-server",
		Short: "Run the seeded fixture API locally",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			if cfg.IsProduction() {
				return errors.New("the demo server serves fixture data and is refused in production")
			}

			logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stdout}).With().Timestamp().Logger()

			srv := demoapi.NewServer(demoapi.Options{
				Secret:     cfg.DemoJWTSecret,
				ResetEvery: time.Duration(cfg.DemoResetMinutes) * time.Minute,
				Logger:     logger,
			})
			return srv.Start(":" + cfg.DemoPort)
		},
	}
}
