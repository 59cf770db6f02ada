package tui

import (
	"sync"

	"github.com/studiowebux/apiconsole/internal/console"
	"github.com/studiowebux/apiconsole/internal/types"
)

type fieldKind int

const (
	fieldText fieldKind = iota
	fieldSecret
	fieldOption
)

type formField struct {
	label   string
	kind    fieldKind
	value   string
	cursor  int
	options []string
}

func textField(label, value string) formField {
	return formField{label: label, kind: fieldText, value: value, cursor: len(value)}
}

func secretField(label, value string) formField {
	return formField{label: label, kind: fieldSecret, value: value, cursor: len(value)}
}

func optionField(label, value string, options []string) formField {
	return formField{label: label, kind: fieldOption, value: value, options: options}
}

// FormState holds the input buffers of an open form overlay. The owning
// controller keeps the authoritative copy; the buffers are pushed to it
// before every submit.
type FormState struct {
	mu     sync.RWMutex
	fields []formField
	focus  int
}

// NewFormState creates a form focused on its first field
func NewFormState(fields ...formField) *FormState {
	return &FormState{fields: fields}
}

// Len returns the number of fields
func (s *FormState) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.fields)
}

// GetFocus returns the focused field index
func (s *FormState) GetFocus() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.focus
}

// Navigate moves the focus by delta, wrapping around
func (s *FormState) Navigate(delta int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := len(s.fields)
	if n == 0 {
		return
	}
	s.focus = ((s.focus+delta)%n + n) % n
}

// Label returns the label of field i
func (s *FormState) Label(i int) string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if i < 0 || i >= len(s.fields) {
		return ""
	}
	return s.fields[i].label
}

func (s *FormState) Kind(i int) fieldKind {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if i < 0 || i >= len(s.fields) {
		return fieldText
	}
	return s.fields[i].kind
}

// Value returns the buffer of field i
func (s *FormState) Value(i int) string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if i < 0 || i >= len(s.fields) {
		return ""
	}
	return s.fields[i].value
}

// Cursor returns the cursor position in field i
func (s *FormState) Cursor(i int) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if i < 0 || i >= len(s.fields) {
		return 0
	}
	return s.fields[i].cursor
}

// SetValue replaces the buffer of field i and moves its cursor to the end
func (s *FormState) SetValue(i int, value string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if i < 0 || i >= len(s.fields) {
		return
	}
	s.fields[i].value = value
	s.fields[i].cursor = len(value)
}

// EditFocused applies fn to the focused text buffer. Option fields are
// left alone.
func (s *FormState) EditFocused(fn func(input *string, cursor *int) bool) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.fields) == 0 {
		return false
	}
	f := &s.fields[s.focus]
	if f.kind == fieldOption {
		return false
	}
	return fn(&f.value, &f.cursor)
}

// CycleOption steps the focused option field through its choices. A value
// outside the choices starts from the first one.
func (s *FormState) CycleOption(delta int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.fields) == 0 {
		return false
	}
	f := &s.fields[s.focus]
	if f.kind != fieldOption || len(f.options) == 0 {
		return false
	}
	idx := -1
	for i, opt := range f.options {
		if opt == f.value {
			idx = i
			break
		}
	}
	n := len(f.options)
	if idx < 0 {
		idx = 0
	} else {
		idx = ((idx+delta)%n + n) % n
	}
	f.value = f.options[idx]
	return true
}

// Editor field order
const (
	editorFieldName = iota
	editorFieldDescription
	editorFieldEndpoint
	editorFieldMethod
	editorFieldStatus
)

func methodOptions() []string {
	out := make([]string, len(types.Methods))
	for i, m := range types.Methods {
		out[i] = string(m)
	}
	return out
}

func statusOptions() []string {
	out := make([]string, len(types.Statuses))
	for i, s := range types.Statuses {
		out[i] = string(s)
	}
	return out
}

// newEditorForm fills a form from ed. The status field only exists in
// edit mode.
func newEditorForm(ed *console.ResourceEditor) *FormState {
	f := ed.Form()
	fields := []formField{
		textField("Name", f.Name),
		textField("Description", f.Description),
		textField("Endpoint", f.Endpoint),
		optionField("Method", string(f.Method), methodOptions()),
	}
	if ed.StatusEditable() {
		fields = append(fields, optionField("Status", string(f.Status), statusOptions()))
	}
	return NewFormState(fields...)
}

func (s *FormState) resourceForm() console.ResourceForm {
	return console.ResourceForm{
		Name:        s.Value(editorFieldName),
		Description: s.Value(editorFieldDescription),
		Endpoint:    s.Value(editorFieldEndpoint),
		Method:      types.Method(s.Value(editorFieldMethod)),
		Status:      types.Status(s.Value(editorFieldStatus)),
	}
}

const (
	profileFieldUsername = iota
	profileFieldEmail
)

func newProfileForm(f console.ProfileForm) *FormState {
	return NewFormState(
		textField("Username", f.Username),
		textField("Email", f.Email),
	)
}

func (s *FormState) profileForm() console.ProfileForm {
	return console.ProfileForm{
		Username: s.Value(profileFieldUsername),
		Email:    s.Value(profileFieldEmail),
	}
}

const (
	passwordFieldCurrent = iota
	passwordFieldNew
	passwordFieldConfirm
)

func newPasswordForm(req types.PasswordChangeRequest) *FormState {
	return NewFormState(
		secretField("Current password", req.CurrentPassword),
		secretField("New password", req.NewPassword),
		secretField("Confirm new password", req.ConfirmPassword),
	)
}

func (s *FormState) passwordRequest() types.PasswordChangeRequest {
	return types.PasswordChangeRequest{
		CurrentPassword: s.Value(passwordFieldCurrent),
		NewPassword:     s.Value(passwordFieldNew),
		ConfirmPassword: s.Value(passwordFieldConfirm),
	}
}
