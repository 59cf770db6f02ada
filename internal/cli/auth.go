package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/charmbracelet/huh"
	"github.com/studiowebux/apiconsole/internal/console"
	"github.com/studiowebux/apiconsole/internal/types"
	"github.com/studiowebux/apiconsole/internal/validate"
)

// LoginOptions contains options for signing in
type LoginOptions struct {
	Email string
	// PasswordStdin reads the password from the first line of stdin
	PasswordStdin bool
}

// RegisterOptions contains options for creating an account
type RegisterOptions struct {
	Username      string
	Email         string
	PasswordStdin bool
}

// Login signs in and persists the session
func Login(ctx context.Context, env *Env, opts LoginOptions) error {
	creds := types.Credentials{Email: strings.TrimSpace(opts.Email)}

	if opts.PasswordStdin {
		password, err := readLine(env)
		if err != nil {
			return err
		}
		creds.Password = password
	}

	if creds.Email == "" || creds.Password == "" {
		if !env.interactive() {
			return errors.New("email and password are required (use --email with --password-stdin)")
		}
		var fields []huh.Field
		if creds.Email == "" {
			fields = append(fields, emailInput(&creds.Email))
		}
		if creds.Password == "" {
			fields = append(fields, passwordInput("Password", &creds.Password))
		}
		if err := huh.NewForm(huh.NewGroup(fields...)).Run(); err != nil {
			return err
		}
	}
	if !validate.IsWellFormedEmail(creds.Email) {
		return errors.New(console.MsgEmailInvalid)
	}

	c, err := env.client()
	if err != nil {
		return err
	}
	grant, err := c.Login(ctx, creds)
	if err != nil {
		return fmt.Errorf("login failed: %w", err)
	}
	if err := env.Session.Start(c.BaseURL(), grant); err != nil {
		return err
	}

	env.Logger.Info("signed in", "server", c.BaseURL(), "user", grant.User.Username)
	fmt.Fprintf(env.Err, "Logged in as %s on %s\n", grant.User.Username, c.BaseURL())
	return nil
}

// Register creates an account and signs in with it
func Register(ctx context.Context, env *Env, opts RegisterOptions) error {
	reg := types.Registration{
		Username: strings.TrimSpace(opts.Username),
		Email:    strings.TrimSpace(opts.Email),
	}
	var confirm string

	if opts.PasswordStdin {
		password, err := readLine(env)
		if err != nil {
			return err
		}
		reg.Password, confirm = password, password
	}

	if reg.Username == "" || reg.Email == "" || reg.Password == "" {
		if !env.interactive() {
			return errors.New("username, email and password are required")
		}
		var fields []huh.Field
		if reg.Username == "" {
			fields = append(fields, requiredInput("Username", &reg.Username))
		}
		if reg.Email == "" {
			fields = append(fields, emailInput(&reg.Email))
		}
		if reg.Password == "" {
			fields = append(fields,
				passwordInput("Password", &reg.Password),
				passwordInput("Confirm password", &confirm),
			)
		}
		if err := huh.NewForm(huh.NewGroup(fields...)).Run(); err != nil {
			return err
		}
	}

	switch {
	case !validate.IsNonEmpty(reg.Username):
		return errors.New(console.MsgUsernameRequired)
	case !validate.IsWellFormedEmail(reg.Email):
		return errors.New(console.MsgEmailInvalid)
	case !validate.PasswordsMatch(reg.Password, confirm):
		return errors.New("Passwords do not match")
	case !validate.MeetsMinLength(reg.Password, console.MinPasswordLength):
		return errors.New(console.MsgPasswordTooShort)
	}

	c, err := env.client()
	if err != nil {
		return err
	}
	grant, err := c.Register(ctx, reg)
	if err != nil {
		return fmt.Errorf("registration failed: %w", err)
	}
	if err := env.Session.Start(c.BaseURL(), grant); err != nil {
		return err
	}

	env.Logger.Info("registered", "server", c.BaseURL(), "user", grant.User.Username)
	fmt.Fprintf(env.Err, "Registered and logged in as %s\n", grant.User.Username)
	return nil
}

// Logout ends the session
func Logout(env *Env) error {
	if !env.Session.Active() {
		fmt.Fprintln(env.Err, "Not logged in")
		return nil
	}
	if err := env.Session.End(); err != nil {
		return err
	}
	env.Logger.Info("signed out")
	fmt.Fprintln(env.Err, "Logged out")
	return nil
}

// Whoami asks the backend who the session belongs to
func Whoami(ctx context.Context, env *Env) error {
	c, err := env.authedClient(ctx)
	if err != nil {
		return err
	}
	user, err := c.Me(ctx)
	if err != nil {
		return err
	}

	out := struct {
		Server string            `json:"server" yaml:"server"`
		User   types.UserProfile `json:"user" yaml:"user"`
	}{Server: c.BaseURL(), User: user}

	return env.print(out, func(w *tabwriter.Writer) {
		fmt.Fprintf(w, "Server:\t%s\n", out.Server)
		writeProfile(w, user)
	})
}

func readLine(env *Env) (string, error) {
	line, err := env.lineReader().ReadString('\n')
	if err != nil && line == "" {
		return "", fmt.Errorf("failed to read password from stdin: %w", err)
	}
	return strings.TrimRight(line, "\r\n"), nil
}

func requiredInput(title string, value *string) *huh.Input {
	return huh.NewInput().
		Title(title).
		Value(value).
		Validate(func(s string) error {
			if !validate.IsNonEmpty(s) {
				return fmt.Errorf("%s is required", strings.ToLower(title))
			}
			return nil
		})
}

func emailInput(value *string) *huh.Input {
	return huh.NewInput().
		Title("Email").
		Placeholder("you@example.com").
		Value(value).
		Validate(func(s string) error {
			if !validate.IsWellFormedEmail(s) {
				return errors.New(console.MsgEmailInvalid)
			}
			return nil
		})
}

func passwordInput(title string, value *string) *huh.Input {
	return huh.NewInput().
		Title(title).
		EchoMode(huh.EchoModePassword).
		Value(value)
}
