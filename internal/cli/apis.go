package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/charmbracelet/huh"
	"github.com/studiowebux/apiconsole/internal/backend"
	"github.com/studiowebux/apiconsole/internal/console"
	"github.com/studiowebux/apiconsole/internal/filter"
	"github.com/studiowebux/apiconsole/internal/types"
	"github.com/studiowebux/apiconsole/internal/validate"
)

// ListOptions contains options for listing resources
type ListOptions struct {
	Page int
	// Query is a JMESPath expression applied to the page
	Query string
}

// ResourceFlags are the resource fields given on the command line. A nil
// field was not given.
type ResourceFlags struct {
	Name        *string
	Description *string
	Endpoint    *string
	Method      *string
	Status      *string
}

func (f ResourceFlags) empty() bool {
	return f.Name == nil && f.Description == nil && f.Endpoint == nil && f.Method == nil && f.Status == nil
}

// apply copies the given flags onto form
func (f ResourceFlags) apply(form *console.ResourceForm) error {
	if f.Name != nil {
		form.Name = *f.Name
	}
	if f.Description != nil {
		form.Description = *f.Description
	}
	if f.Endpoint != nil {
		form.Endpoint = *f.Endpoint
	}
	if f.Method != nil {
		m, ok := types.ParseMethod(*f.Method)
		if !ok {
			return fmt.Errorf("unknown method %q", *f.Method)
		}
		form.Method = m
	}
	if f.Status != nil {
		s, ok := types.ParseStatus(*f.Status)
		if !ok {
			return fmt.Errorf("unknown status %q (want active or inactive)", *f.Status)
		}
		form.Status = s
	}
	return nil
}

// listController builds a controller over the signed-in backend. Commands
// print at most one page, so mutations do not re-fetch it.
func (e *Env) listController(ctx context.Context, confirmer console.Confirmer) (*console.ListController, *backend.Client, error) {
	c, err := e.authedClient(ctx)
	if err != nil {
		return nil, nil, err
	}
	list := console.NewListController(c, e.notifier(), confirmer, console.ListOptions{
		Options:  e.options(),
		PageSize: e.Settings.PageSize,
		NoReload: true,
	})
	return list, c, nil
}

// ListAPIs prints one page of resources
func ListAPIs(ctx context.Context, env *Env, opts ListOptions) error {
	if opts.Query != "" && !filter.IsValidJMESPath(opts.Query) {
		return fmt.Errorf("invalid JMESPath expression %q", opts.Query)
	}

	list, _, err := env.listController(ctx, nil)
	if err != nil {
		return err
	}
	page, err := list.Load(ctx, max(opts.Page, 1))
	if err != nil {
		return err
	}

	if opts.Query != "" {
		result, err := filter.Query(page, opts.Query)
		if err != nil {
			return err
		}
		if env.Output == OutputText {
			env.Output = OutputJSON
		}
		return env.print(result, nil)
	}

	return env.print(page, func(w *tabwriter.Writer) {
		if page.Empty() {
			fmt.Fprintln(w, console.MsgNoRecords)
			return
		}
		fmt.Fprintln(w, "ID\tNAME\tMETHOD\tSTATUS\tENDPOINT")
		for _, r := range page.Items {
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n", r.ID, r.Name, r.Method, r.Status, r.Endpoint)
		}
		fmt.Fprintf(w, "\nPage %d of %d\n", page.Page, page.TotalPages)
	})
}

// ShowAPI prints one resource. Without an id the first page is offered in
// a picker.
func ShowAPI(ctx context.Context, env *Env, id string) error {
	r, err := env.resolveResource(ctx, id)
	if err != nil {
		return err
	}

	viewer := console.NewDetailViewer(r, nil, nil)
	return env.print(r, func(w *tabwriter.Writer) {
		for _, f := range viewer.Fields() {
			fmt.Fprintf(w, "%s:\t%s\n", f.Label, f.Value)
		}
	})
}

// resolveResource finds id, or lets the user pick from the first page
func (e *Env) resolveResource(ctx context.Context, id string) (types.ApiResource, error) {
	list, c, err := e.listController(ctx, nil)
	if err != nil {
		return types.ApiResource{}, err
	}

	if id != "" {
		return c.FindResource(ctx, id, list.PageSize())
	}
	if !e.interactive() {
		return types.ApiResource{}, errors.New("an API id is required")
	}

	page, err := list.Load(ctx, 1)
	if err != nil {
		return types.ApiResource{}, err
	}
	if page.Empty() {
		return types.ApiResource{}, errors.New(console.MsgNoRecords)
	}
	return pickResource(page.Items)
}

// CreateAPI creates a resource from flags, prompting for what is missing
func CreateAPI(ctx context.Context, env *Env, flags ResourceFlags) error {
	c, err := env.authedClient(ctx)
	if err != nil {
		return err
	}

	// No list to refresh afterwards, so the editor runs standalone
	ed := console.NewResourceEditor(c, env.notifier(), nil, nil, env.options())
	defer ed.Cancel(ctx)

	form := ed.Form()
	if err := flags.apply(&form); err != nil {
		return err
	}
	if (form.Name == "" || form.Endpoint == "") && env.interactive() {
		if err := resourceForm(&form, false); err != nil {
			return err
		}
	}
	if err := ed.SetForm(form); err != nil {
		return err
	}

	r, err := ed.Submit(ctx)
	if err != nil {
		return err
	}
	return env.printResource(r)
}

// UpdateAPI edits a resource; with no flags the fields are prompted for,
// prefilled with the current values
func UpdateAPI(ctx context.Context, env *Env, id string, flags ResourceFlags) error {
	c, err := env.authedClient(ctx)
	if err != nil {
		return err
	}
	original, err := c.FindResource(ctx, id, env.Settings.PageSize)
	if err != nil {
		return err
	}

	ed := console.NewResourceEditor(c, env.notifier(), &original, nil, env.options())
	defer ed.Cancel(ctx)

	form := ed.Form()
	if err := flags.apply(&form); err != nil {
		return err
	}
	if flags.empty() {
		if !env.interactive() {
			return errors.New("nothing to update: pass at least one field flag")
		}
		if err := resourceForm(&form, true); err != nil {
			return err
		}
	}
	if err := ed.SetForm(form); err != nil {
		return err
	}

	r, err := ed.Submit(ctx)
	if err != nil {
		return err
	}
	return env.printResource(r)
}

// DeleteAPI deletes a resource after confirmation; yes skips the prompt
func DeleteAPI(ctx context.Context, env *Env, id string, yes bool) error {
	list, _, err := env.listController(ctx, env.confirmer(yes))
	if err != nil {
		return err
	}

	err = list.RequestDelete(ctx, id)
	if errors.Is(err, console.ErrNotConfirmed) {
		return errors.New("delete cancelled by user")
	}
	return err
}

// confirmer asks on the terminal; yes answers every prompt
func (e *Env) confirmer(yes bool) console.Confirmer {
	return console.ConfirmerFunc(func(message string) bool {
		if yes {
			return true
		}
		if !e.interactive() {
			fmt.Fprintln(e.Err, message+" (pass --yes to confirm non-interactively)")
			return false
		}
		var ok bool
		if err := huh.NewConfirm().Title(message).Affirmative("Yes").Negative("No").Value(&ok).Run(); err != nil {
			return false
		}
		return ok
	})
}

func (e *Env) printResource(r types.ApiResource) error {
	return e.print(r, func(w *tabwriter.Writer) {
		fmt.Fprintf(w, "ID:\t%s\n", r.ID)
		fmt.Fprintf(w, "Name:\t%s\n", r.Name)
		fmt.Fprintf(w, "Method:\t%s\n", r.Method)
		fmt.Fprintf(w, "Endpoint:\t%s\n", r.Endpoint)
		fmt.Fprintf(w, "Status:\t%s\n", r.Status)
	})
}

// resourceForm prompts for the resource fields in place
func resourceForm(form *console.ResourceForm, withStatus bool) error {
	method := string(form.Method)
	if method == "" {
		method = string(types.MethodGet)
	}
	status := string(form.Status)

	methods := make([]huh.Option[string], 0, len(types.Methods))
	for _, m := range types.Methods {
		methods = append(methods, huh.NewOption(string(m), string(m)))
	}

	fields := []huh.Field{
		requiredInput("Name", &form.Name),
		huh.NewText().Title("Description").Value(&form.Description),
		huh.NewInput().
			Title("Endpoint").
			Placeholder("https://api.example.com/v1/users").
			Value(&form.Endpoint).
			Validate(func(s string) error {
				if !validate.IsNonEmpty(s) {
					return errors.New(console.MsgEndpointRequired)
				}
				return nil
			}),
		huh.NewSelect[string]().Title("Method").Options(methods...).Value(&method),
	}
	if withStatus {
		fields = append(fields, huh.NewSelect[string]().
			Title("Status").
			Options(
				huh.NewOption("active", string(types.StatusActive)),
				huh.NewOption("inactive", string(types.StatusInactive)),
			).
			Value(&status))
	}

	if err := huh.NewForm(huh.NewGroup(fields...)).Run(); err != nil {
		return err
	}

	form.Name = strings.TrimSpace(form.Name)
	form.Endpoint = strings.TrimSpace(form.Endpoint)
	form.Method = types.Method(method)
	if withStatus {
		form.Status = types.Status(status)
	}
	return nil
}
