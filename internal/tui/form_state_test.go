package tui

import (
	"sync"
	"testing"

	"github.com/studiowebux/apiconsole/internal/console"
	"github.com/studiowebux/apiconsole/internal/types"
)

func TestFormState_Navigate(t *testing.T) {
	state := NewFormState(textField("A", ""), textField("B", ""), textField("C", ""))

	if state.GetFocus() != 0 {
		t.Errorf("Expected focus 0, got %d", state.GetFocus())
	}

	state.Navigate(1)
	state.Navigate(1)
	if state.GetFocus() != 2 {
		t.Errorf("Expected focus 2, got %d", state.GetFocus())
	}

	// Wrap around forward
	state.Navigate(1)
	if state.GetFocus() != 0 {
		t.Errorf("Expected focus 0 (wrapped), got %d", state.GetFocus())
	}

	// Wrap around backward
	state.Navigate(-1)
	if state.GetFocus() != 2 {
		t.Errorf("Expected focus 2 (wrapped), got %d", state.GetFocus())
	}
}

func TestFormState_SetValueMovesCursorToEnd(t *testing.T) {
	state := NewFormState(textField("Name", "old"))

	AssertModelField(t, "cursor", state.Cursor(0), 3)

	state.SetValue(0, "users")
	AssertModelField(t, "value", state.Value(0), "users")
	AssertModelField(t, "cursor", state.Cursor(0), 5)

	// Out of range is ignored
	state.SetValue(7, "x")
	AssertModelField(t, "out of range value", state.Value(7), "")
}

func TestFormState_CycleOption(t *testing.T) {
	state := NewFormState(optionField("Method", "GET", methodOptions()))

	state.CycleOption(1)
	AssertModelField(t, "after next", state.Value(0), "POST")

	state.CycleOption(-1)
	state.CycleOption(-1)
	AssertModelField(t, "after wrap back", state.Value(0), "PATCH")
}

func TestFormState_CycleOption_UnknownValueStartsAtFirst(t *testing.T) {
	state := NewFormState(optionField("Method", "OPTIONS", methodOptions()))

	state.CycleOption(1)
	AssertModelField(t, "value", state.Value(0), "GET")
}

func TestFormState_OptionFieldRejectsTextEdits(t *testing.T) {
	state := NewFormState(optionField("Status", "active", statusOptions()))

	changed := state.EditFocused(func(input *string, cursor *int) bool {
		*input = "typed"
		return true
	})
	if changed {
		t.Error("EditFocused should not touch an option field")
	}
	AssertModelField(t, "value", state.Value(0), "active")

	if state.CycleOption(1); state.Value(0) != "inactive" {
		t.Errorf("Expected inactive, got %s", state.Value(0))
	}
}

func TestNewEditorForm_CreateHasNoStatus(t *testing.T) {
	ed := console.NewResourceEditor(nil, nil, nil, nil, console.Options{})
	form := newEditorForm(ed)

	AssertModelField(t, "field count", form.Len(), 4)
	AssertModelField(t, "default method", form.Value(editorFieldMethod), "GET")
	AssertModelField(t, "status", string(form.resourceForm().Status), "")
}

func TestNewEditorForm_EditPrefills(t *testing.T) {
	r := types.ApiResource{
		ID: "1", Name: "Users", Description: "List users", Endpoint: "https://api.example.com/users",
		Method: types.MethodPut, Status: types.StatusInactive,
	}
	ed := console.NewResourceEditor(nil, nil, &r, nil, console.Options{})
	form := newEditorForm(ed)

	AssertModelField(t, "field count", form.Len(), 5)
	got := form.resourceForm()
	want := console.ResourceForm{
		Name: "Users", Description: "List users", Endpoint: "https://api.example.com/users",
		Method: types.MethodPut, Status: types.StatusInactive,
	}
	if got != want {
		t.Errorf("resourceForm() = %+v, want %+v", got, want)
	}
}

func TestPasswordForm_RoundTrip(t *testing.T) {
	req := types.PasswordChangeRequest{CurrentPassword: "old", NewPassword: "secret1", ConfirmPassword: "secret1"}
	form := newPasswordForm(req)

	AssertModelField(t, "kind", form.Kind(passwordFieldNew), fieldSecret)
	if got := form.passwordRequest(); got != req {
		t.Errorf("passwordRequest() = %+v, want %+v", got, req)
	}
}

func TestFormState_ConcurrentAccess(t *testing.T) {
	state := NewFormState(textField("A", ""), textField("B", ""), optionField("C", "GET", methodOptions()))

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(3)

		go func() {
			defer wg.Done()
			state.Navigate(1)
		}()

		go func() {
			defer wg.Done()
			state.EditFocused(func(input *string, cursor *int) bool {
				*input += "x"
				*cursor = len(*input)
				return true
			})
		}()

		go func() {
			defer wg.Done()
			_ = state.Value(state.GetFocus())
			state.CycleOption(1)
		}()
	}

	wg.Wait()
	// If we get here without panic or data race, success
}
