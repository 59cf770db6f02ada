package console

import (
	"context"
	"sync"

	"github.com/studiowebux/apiconsole/internal/types"
	"github.com/studiowebux/apiconsole/internal/validate"
)

// EditorMode is the resource editor's state
type EditorMode int

const (
	ModeCreate EditorMode = iota
	ModeEdit
)

func (m EditorMode) String() string {
	if m == ModeEdit {
		return "edit"
	}
	return "create"
}

// ResourceForm holds the editable fields of a resource
type ResourceForm struct {
	Name        string
	Description string
	Endpoint    string
	Method      types.Method
	Status      types.Status
}

// CloseFunc is called when an editor closes. didMutate is true when the
// backend accepted a submission.
type CloseFunc func(ctx context.Context, didMutate bool)

// ResourceEditor is the create/edit form controller for one resource
type ResourceEditor struct {
	mu         sync.Mutex
	svc        ResourceService
	notifier   Notifier
	opts       Options
	original   *types.ApiResource
	form       ResourceForm
	submitting bool
	closed     bool
	onClose    CloseFunc
}

// NewResourceEditor opens an editor. A nil original means create mode.
func NewResourceEditor(svc ResourceService, notifier Notifier, original *types.ApiResource, onClose CloseFunc, opts Options) *ResourceEditor {
	e := &ResourceEditor{
		svc:      svc,
		notifier: notifierOrNop(notifier),
		opts:     opts,
		onClose:  onClose,
	}

	if original == nil {
		e.form = ResourceForm{Method: types.MethodGet}
		return e
	}

	r := *original
	e.original = &r
	e.form = ResourceForm{
		Name:        r.Name,
		Description: r.Description,
		Endpoint:    r.Endpoint,
		Method:      r.Method,
		Status:      r.Status,
	}
	return e
}

func (e *ResourceEditor) Mode() EditorMode {
	if e.original == nil {
		return ModeCreate
	}
	return ModeEdit
}

// Original returns the record being edited
func (e *ResourceEditor) Original() (types.ApiResource, bool) {
	if e.original == nil {
		return types.ApiResource{}, false
	}
	return *e.original, true
}

// StatusEditable reports whether the status field is shown; creation
// leaves status to the server
func (e *ResourceEditor) StatusEditable() bool {
	return e.Mode() == ModeEdit
}

func (e *ResourceEditor) Form() ResourceForm {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.form
}

// SetForm replaces the form fields. Editing stays possible while a
// submission is pending; only submit is locked.
func (e *ResourceEditor) SetForm(f ResourceForm) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.closed {
		return ErrFlowClosed
	}
	if !e.StatusEditable() {
		f.Status = ""
	}
	e.form = f
	return nil
}

// Update applies fn to the form
func (e *ResourceEditor) Update(fn func(f *ResourceForm)) error {
	f := e.Form()
	fn(&f)
	return e.SetForm(f)
}

// Submitting reports whether a submission is pending
func (e *ResourceEditor) Submitting() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.submitting
}

// CanSubmit reports whether the submit control is enabled
func (e *ResourceEditor) CanSubmit() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return !e.submitting && !e.closed
}

func (e *ResourceEditor) Closed() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.closed
}

// Submit validates the required fields and issues create or update.
// On failure the form stays open with its input.
func (e *ResourceEditor) Submit(ctx context.Context) (types.ApiResource, error) {
	e.mu.Lock()
	if e.closed {
		e.mu.Unlock()
		return types.ApiResource{}, ErrFlowClosed
	}
	if e.submitting {
		e.mu.Unlock()
		return types.ApiResource{}, ErrSubmitInFlight
	}

	form := e.form
	var verr *ValidationError
	switch {
	case !validate.IsNonEmpty(form.Name):
		verr = &ValidationError{Field: "name", Kind: KindRequired, Message: MsgNameRequired}
	case !validate.IsNonEmpty(form.Endpoint):
		verr = &ValidationError{Field: "endpoint", Kind: KindRequired, Message: MsgEndpointRequired}
	}
	if verr != nil {
		e.mu.Unlock()
		e.notifier.Notify(NoticeFailure, verr.Message)
		return types.ApiResource{}, verr
	}

	e.submitting = true
	e.mu.Unlock()

	in := types.ResourceInput{
		Name:        form.Name,
		Description: form.Description,
		Endpoint:    form.Endpoint,
		Method:      form.Method,
	}
	if in.Method == "" {
		in.Method = types.MethodGet
	}

	var (
		result types.ApiResource
		err    error
		op     types.Operation
		okMsg  string
		target types.ApiResource
	)
	if e.original == nil {
		op, okMsg = types.OpCreateResource, MsgCreated
		result, err = e.svc.CreateResource(ctx, in)
		target = result
		if err != nil {
			target = types.ApiResource{Name: form.Name}
		}
	} else {
		in.Status = form.Status
		op, okMsg = types.OpUpdateResource, MsgUpdated
		target = *e.original
		result, err = e.svc.UpdateResource(ctx, e.original.ID, in)
	}

	e.mu.Lock()
	e.submitting = false
	if err == nil {
		e.closed = true
	}
	e.mu.Unlock()

	if err != nil {
		rerr := newRequestError(string(op), MsgOperationFailed, err)
		e.opts.logger().Warn("resource submission failed", "operation", op, "id", target.ID, "error", err)
		e.opts.record(types.ActivityEntry{
			Operation: op, TargetID: target.ID, TargetName: target.Name,
			Outcome: types.OutcomeFailure, Message: rerr.Message,
		})
		e.notifier.Notify(NoticeFailure, rerr.Message)
		return types.ApiResource{}, rerr
	}

	e.opts.logger().Info("resource saved", "operation", op, "id", result.ID)
	e.opts.record(types.ActivityEntry{
		Operation: op, TargetID: result.ID, TargetName: result.Name,
		Outcome: types.OutcomeSuccess, Message: okMsg,
	})
	e.notifier.Notify(NoticeSuccess, okMsg)
	if e.onClose != nil {
		e.onClose(ctx, true)
	}
	return result, nil
}

// Cancel closes the editor and discards unsaved input
func (e *ResourceEditor) Cancel(ctx context.Context) {
	e.mu.Lock()
	if e.closed {
		e.mu.Unlock()
		return
	}
	e.closed = true
	e.mu.Unlock()

	if e.onClose != nil {
		e.onClose(ctx, false)
	}
}
