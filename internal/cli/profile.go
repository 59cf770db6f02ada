package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/charmbracelet/huh"
	"github.com/studiowebux/apiconsole/internal/console"
	"github.com/studiowebux/apiconsole/internal/session"
	"github.com/studiowebux/apiconsole/internal/types"
)

// ProfileFlags are the profile fields given on the command line. A nil
// field was not given.
type ProfileFlags struct {
	Username *string
	Email    *string
}

// PasswordOptions contains options for changing the password
type PasswordOptions struct {
	// Stdin reads current, new and confirmation passwords, one per line
	Stdin bool
}

// ShowProfile prints the signed-in user held by the session
func ShowProfile(env *Env) error {
	user, ok := env.Session.CurrentUser()
	if !ok {
		return session.ErrNoSession
	}
	return env.print(user, func(w *tabwriter.Writer) {
		writeProfile(w, user)
	})
}

func writeProfile(w *tabwriter.Writer, u types.UserProfile) {
	fmt.Fprintf(w, "Username:\t%s\n", u.Username)
	fmt.Fprintf(w, "Email:\t%s\n", u.Email)
	if !u.CreatedAt.IsZero() {
		fmt.Fprintf(w, "Member since:\t%s\n", u.CreatedAt.Local(nil, console.TimeLayout))
	}
}

func (e *Env) profileEditor(ctx context.Context) (*console.ProfileEditor, error) {
	c, err := e.authedClient(ctx)
	if err != nil {
		return nil, err
	}
	return console.NewProfileEditor(c, e.Session, e.notifier(), e.options()), nil
}

// UpdateProfile changes username and email; with no flags both are
// prompted for, prefilled with the current values
func UpdateProfile(ctx context.Context, env *Env, flags ProfileFlags) error {
	p, err := env.profileEditor(ctx)
	if err != nil {
		return err
	}

	p.Edit()
	form := p.Form()
	if flags.Username != nil {
		form.Username = *flags.Username
	}
	if flags.Email != nil {
		form.Email = *flags.Email
	}

	if flags.Username == nil && flags.Email == nil {
		if !env.interactive() {
			return errors.New("nothing to update: pass --username or --email")
		}
		err := huh.NewForm(huh.NewGroup(
			requiredInput("Username", &form.Username),
			emailInput(&form.Email),
		)).Run()
		if err != nil {
			p.Cancel()
			return err
		}
	}
	form.Username = strings.TrimSpace(form.Username)
	form.Email = strings.TrimSpace(form.Email)

	if err := p.SetForm(form); err != nil {
		return err
	}
	user, err := p.Save(ctx)
	if err != nil {
		return err
	}
	return env.print(user, func(w *tabwriter.Writer) {
		writeProfile(w, user)
	})
}

// ChangePassword runs the password flow with the same local checks as the
// interactive console
func ChangePassword(ctx context.Context, env *Env, opts PasswordOptions) error {
	p, err := env.profileEditor(ctx)
	if err != nil {
		return err
	}

	p.OpenPassword()
	defer p.ClosePassword()

	var req types.PasswordChangeRequest
	defer req.Clear()

	switch {
	case opts.Stdin:
		for _, field := range []*string{&req.CurrentPassword, &req.NewPassword, &req.ConfirmPassword} {
			line, err := readLine(env)
			if err != nil {
				return err
			}
			*field = line
		}
	case env.interactive():
		err := huh.NewForm(huh.NewGroup(
			passwordInput("Current password", &req.CurrentPassword),
			passwordInput("New password", &req.NewPassword),
			passwordInput("Confirm new password", &req.ConfirmPassword),
		)).Run()
		if err != nil {
			return err
		}
	default:
		return errors.New("passwords are required (use --password-stdin)")
	}

	if err := p.SetPasswordFields(req); err != nil {
		return err
	}
	return p.SubmitPassword(ctx)
}
