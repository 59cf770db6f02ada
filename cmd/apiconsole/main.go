package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"
	"github.com/studiowebux/apiconsole/internal/cli"
	"github.com/studiowebux/apiconsole/internal/console"
)

var (
	version = "0.1.0"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := rootCmd.ExecuteContext(ctx)
	stop()

	if err != nil {
		// Controller failures were already printed by the notifier
		if !console.IsValidation(err) && !console.IsRequest(err) && !errors.Is(err, huh.ErrUserAborted) {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		os.Exit(1)
	}
}

// Global flags
var globals cli.GlobalOptions

var rootCmd = &cobra.Command{
	Use:   "apiconsole",
	Short: "API Console - manage API records from the terminal",
	Long: `API Console manages the API records held by an API Manager backend.

Run without arguments to start the interactive console, or use the
subcommands to script the same operations.

Examples:
  apiconsole login --email you@example.com     # Sign in (prompts for the password)
  apiconsole                                   # Start the interactive console
  apiconsole apis list -o json                 # First page as JSON
  apiconsole apis list --query 'items[].name'  # JMESPath over the page
  apiconsole apis create --name Users --endpoint https://api.example.com/users
  apiconsole apis delete 64f1c2 --yes
  apiconsole activity --limit 20`,
	Version:       version,
	Args:          cobra.NoArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: withEnv(func(cmd *cobra.Command, env *cli.Env, _ []string) error {
		return cli.RunConsole(cmd.Context(), env)
	}),
}

// withEnv sets up the command environment and releases it afterwards
func withEnv(run func(cmd *cobra.Command, env *cli.Env, args []string) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		env, err := cli.Setup(globals)
		if err != nil {
			return err
		}
		defer env.Close()
		return run(cmd, env, args)
	}
}

// optional returns the flag's value when it was set on the command line
func optional(cmd *cobra.Command, name string) *string {
	if !cmd.Flags().Changed(name) {
		return nil
	}
	v, _ := cmd.Flags().GetString(name)
	return &v
}

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Sign in to the backend",
	Args:  cobra.NoArgs,
	RunE: withEnv(func(cmd *cobra.Command, env *cli.Env, _ []string) error {
		return cli.Login(cmd.Context(), env, cli.LoginOptions{
			Email:         flagEmail,
			PasswordStdin: flagPasswordStdin,
		})
	}),
}

var registerCmd = &cobra.Command{
	Use:   "register",
	Short: "Create an account and sign in",
	Args:  cobra.NoArgs,
	RunE: withEnv(func(cmd *cobra.Command, env *cli.Env, _ []string) error {
		return cli.Register(cmd.Context(), env, cli.RegisterOptions{
			Username:      flagUsername,
			Email:         flagEmail,
			PasswordStdin: flagPasswordStdin,
		})
	}),
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "End the session",
	Args:  cobra.NoArgs,
	RunE: withEnv(func(_ *cobra.Command, env *cli.Env, _ []string) error {
		return cli.Logout(env)
	}),
}

var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show who the session belongs to",
	Args:  cobra.NoArgs,
	RunE: withEnv(func(cmd *cobra.Command, env *cli.Env, _ []string) error {
		return cli.Whoami(cmd.Context(), env)
	}),
}

var apisCmd = &cobra.Command{
	Use:   "apis",
	Short: "List and manage API records",
}

var apisListCmd = &cobra.Command{
	Use:   "list",
	Short: "List one page of API records",
	Args:  cobra.NoArgs,
	RunE: withEnv(func(cmd *cobra.Command, env *cli.Env, _ []string) error {
		return cli.ListAPIs(cmd.Context(), env, cli.ListOptions{Page: flagPage, Query: flagQuery})
	}),
}

var apisShowCmd = &cobra.Command{
	Use:   "show [id]",
	Short: "Show one API record (pick from a list when no id is given)",
	Args:  cobra.MaximumNArgs(1),
	RunE: withEnv(func(cmd *cobra.Command, env *cli.Env, args []string) error {
		id := ""
		if len(args) > 0 {
			id = args[0]
		}
		return cli.ShowAPI(cmd.Context(), env, id)
	}),
}

var apisCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create an API record (prompts for missing fields)",
	Args:  cobra.NoArgs,
	RunE: withEnv(func(cmd *cobra.Command, env *cli.Env, _ []string) error {
		return cli.CreateAPI(cmd.Context(), env, resourceFlags(cmd))
	}),
}

var apisUpdateCmd = &cobra.Command{
	Use:   "update <id>",
	Short: "Update an API record (prompts when no field flags are given)",
	Args:  cobra.ExactArgs(1),
	RunE: withEnv(func(cmd *cobra.Command, env *cli.Env, args []string) error {
		return cli.UpdateAPI(cmd.Context(), env, args[0], resourceFlags(cmd))
	}),
}

var apisDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete an API record",
	Args:  cobra.ExactArgs(1),
	RunE: withEnv(func(cmd *cobra.Command, env *cli.Env, args []string) error {
		return cli.DeleteAPI(cmd.Context(), env, args[0], flagYes)
	}),
}

func resourceFlags(cmd *cobra.Command) cli.ResourceFlags {
	return cli.ResourceFlags{
		Name:        optional(cmd, "name"),
		Description: optional(cmd, "description"),
		Endpoint:    optional(cmd, "endpoint"),
		Method:      optional(cmd, "method"),
		Status:      optional(cmd, "status"),
	}
}

var profileCmd = &cobra.Command{
	Use:   "profile",
	Short: "Show or update the signed-in profile",
	Args:  cobra.NoArgs,
	RunE: withEnv(func(_ *cobra.Command, env *cli.Env, _ []string) error {
		return cli.ShowProfile(env)
	}),
}

var profileShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the signed-in profile",
	Args:  cobra.NoArgs,
	RunE: withEnv(func(_ *cobra.Command, env *cli.Env, _ []string) error {
		return cli.ShowProfile(env)
	}),
}

var profileUpdateCmd = &cobra.Command{
	Use:   "update",
	Short: "Change username and email",
	Args:  cobra.NoArgs,
	RunE: withEnv(func(cmd *cobra.Command, env *cli.Env, _ []string) error {
		return cli.UpdateProfile(cmd.Context(), env, cli.ProfileFlags{
			Username: optional(cmd, "username"),
			Email:    optional(cmd, "email"),
		})
	}),
}

var passwordCmd = &cobra.Command{
	Use:   "password",
	Short: "Change the account password",
	Long: `Change the account password.

With --password-stdin the current password, the new password and its
confirmation are read from stdin, one per line.`,
	Args: cobra.NoArgs,
	RunE: withEnv(func(cmd *cobra.Command, env *cli.Env, _ []string) error {
		return cli.ChangePassword(cmd.Context(), env, cli.PasswordOptions{Stdin: flagPasswordStdin})
	}),
}

var activityCmd = &cobra.Command{
	Use:   "activity",
	Short: "Show the local journal of issued changes",
	Args:  cobra.NoArgs,
	RunE: withEnv(func(_ *cobra.Command, env *cli.Env, _ []string) error {
		return cli.ShowActivity(env, flagLimit)
	}),
}

var activityClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Empty the activity journal",
	Args:  cobra.NoArgs,
	RunE: withEnv(func(_ *cobra.Command, env *cli.Env, _ []string) error {
		return cli.ClearActivity(env, flagYes)
	}),
}

// Command flags
var (
	flagEmail         string
	flagUsername      string
	flagPasswordStdin bool
	flagPage          int
	flagQuery         string
	flagYes           bool
	flagLimit         int
)

func init() {
	rootCmd.PersistentFlags().StringVar(&globals.Server, "server", "", "Backend URL (overrides settings and the session)")
	rootCmd.PersistentFlags().StringVarP(&globals.Output, "output", "o", "", "Output format (text/json/yaml)")
	rootCmd.PersistentFlags().StringVar(&globals.LogLevel, "log-level", "", "Log level (debug/info/warn/error)")
	rootCmd.PersistentFlags().StringVar(&globals.LogFormat, "log-format", "", "Log format (text/json)")

	for _, cmd := range []*cobra.Command{loginCmd, registerCmd} {
		cmd.Flags().StringVar(&flagEmail, "email", "", "Account email")
		cmd.Flags().BoolVar(&flagPasswordStdin, "password-stdin", false, "Read the password from stdin")
	}
	registerCmd.Flags().StringVar(&flagUsername, "username", "", "Account username")
	passwordCmd.Flags().BoolVar(&flagPasswordStdin, "password-stdin", false, "Read the passwords from stdin")

	apisListCmd.Flags().IntVarP(&flagPage, "page", "p", 1, "Page to list")
	apisListCmd.Flags().StringVarP(&flagQuery, "query", "q", "", "JMESPath expression applied to the page")

	for _, cmd := range []*cobra.Command{apisCreateCmd, apisUpdateCmd} {
		cmd.Flags().String("name", "", "Display name")
		cmd.Flags().String("description", "", "Description")
		cmd.Flags().String("endpoint", "", "Endpoint URL")
		cmd.Flags().String("method", "", "HTTP method (GET/POST/PUT/DELETE/PATCH)")
	}
	apisUpdateCmd.Flags().String("status", "", "Status (active/inactive)")
	apisDeleteCmd.Flags().BoolVarP(&flagYes, "yes", "y", false, "Skip the confirmation prompt")

	profileUpdateCmd.Flags().String("username", "", "New username")
	profileUpdateCmd.Flags().String("email", "", "New email")

	activityCmd.Flags().IntVarP(&flagLimit, "limit", "n", 0, "Number of entries to show (default 50)")
	activityClearCmd.Flags().BoolVarP(&flagYes, "yes", "y", false, "Skip the confirmation prompt")

	apisCmd.AddCommand(apisListCmd, apisShowCmd, apisCreateCmd, apisUpdateCmd, apisDeleteCmd)
	profileCmd.AddCommand(profileShowCmd, profileUpdateCmd)
	activityCmd.AddCommand(activityClearCmd)

	rootCmd.AddCommand(loginCmd, registerCmd, logoutCmd, whoamiCmd, apisCmd, profileCmd, passwordCmd, activityCmd)
}
