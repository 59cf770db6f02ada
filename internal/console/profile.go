package console

import (
	"context"
	"sync"

	"github.com/studiowebux/apiconsole/internal/types"
	"github.com/studiowebux/apiconsole/internal/validate"
)

// ProfileMode is the state of the profile info flow
type ProfileMode int

const (
	ProfileViewing ProfileMode = iota
	ProfileEditing
)

func (m ProfileMode) String() string {
	if m == ProfileEditing {
		return "edit"
	}
	return "view"
}

// ProfileForm holds the editable profile fields
type ProfileForm struct {
	Username string
	Email    string
}

// ProfileEditor drives two independent flows sharing one screen: profile
// info (view/edit) and password change (closed/open). Each flow has its
// own in-flight guard.
type ProfileEditor struct {
	mu       sync.Mutex
	svc      ProfileService
	store    ProfileStore
	notifier Notifier
	opts     Options

	mode   ProfileMode
	form   ProfileForm
	saving bool
	// edits counts edit sessions; a save only resets the form it was issued from
	edits int

	pwOpen       bool
	pw           types.PasswordChangeRequest
	pwSubmitting bool
}

// NewProfileEditor creates an editor in view state, filled from the session
func NewProfileEditor(svc ProfileService, store ProfileStore, notifier Notifier, opts Options) *ProfileEditor {
	p := &ProfileEditor{
		svc:      svc,
		store:    store,
		notifier: notifierOrNop(notifier),
		opts:     opts,
	}
	p.form = p.knownGood()
	return p
}

// knownGood returns the fields of the profile held by the session
func (p *ProfileEditor) knownGood() ProfileForm {
	u, _ := p.store.CurrentUser()
	return ProfileForm{Username: u.Username, Email: u.Email}
}

// Profile returns the session's current profile
func (p *ProfileEditor) Profile() types.UserProfile {
	u, _ := p.store.CurrentUser()
	return u
}

func (p *ProfileEditor) Mode() ProfileMode {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.mode
}

func (p *ProfileEditor) Form() ProfileForm {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.form
}

// Saving reports whether a profile update is pending
func (p *ProfileEditor) Saving() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.saving
}

// Edit enables the info fields
func (p *ProfileEditor) Edit() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.mode == ProfileEditing {
		return
	}
	p.form = p.knownGood()
	p.mode = ProfileEditing
	p.edits++
}

// SetForm replaces the info fields; only allowed while editing
func (p *ProfileEditor) SetForm(f ProfileForm) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.mode != ProfileEditing {
		return ErrNotEditing
	}
	p.form = f
	return nil
}

// Cancel restores the last known-good profile and returns to view
func (p *ProfileEditor) Cancel() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.form = p.knownGood()
	p.mode = ProfileViewing
}

// Save submits username and email. On success the server's profile
// replaces the session's; on failure the edits stay.
func (p *ProfileEditor) Save(ctx context.Context) (types.UserProfile, error) {
	p.mu.Lock()
	if p.mode != ProfileEditing {
		p.mu.Unlock()
		return types.UserProfile{}, ErrNotEditing
	}
	if p.saving {
		p.mu.Unlock()
		return types.UserProfile{}, ErrSubmitInFlight
	}

	form := p.form
	edit := p.edits
	var verr *ValidationError
	switch {
	case !validate.IsNonEmpty(form.Username):
		verr = &ValidationError{Field: "username", Kind: KindRequired, Message: MsgUsernameRequired}
	case !validate.IsWellFormedEmail(form.Email):
		verr = &ValidationError{Field: "email", Kind: KindMalformed, Message: MsgEmailInvalid}
	}
	if verr != nil {
		p.mu.Unlock()
		p.notifier.Notify(NoticeFailure, verr.Message)
		return types.UserProfile{}, verr
	}

	p.saving = true
	p.mu.Unlock()

	updated, err := p.svc.UpdateProfile(ctx, types.ProfileUpdate{Username: form.Username, Email: form.Email})

	if err != nil {
		p.mu.Lock()
		p.saving = false
		p.mu.Unlock()

		rerr := newRequestError("profile", MsgProfileFailed, err)
		p.opts.logger().Warn("failed to update profile", "error", err)
		p.opts.record(types.ActivityEntry{
			Operation: types.OpUpdateProfile, TargetName: form.Username,
			Outcome: types.OutcomeFailure, Message: rerr.Message,
		})
		p.notifier.Notify(NoticeFailure, rerr.Message)
		return types.UserProfile{}, rerr
	}

	if serr := p.store.SetUser(updated); serr != nil {
		p.opts.logger().Warn("failed to persist profile", "error", serr)
	}

	p.mu.Lock()
	p.saving = false
	switch {
	case p.edits == edit:
		p.form = ProfileForm{Username: updated.Username, Email: updated.Email}
		p.mode = ProfileViewing
	case p.mode == ProfileViewing:
		p.form = p.knownGood()
	}
	p.mu.Unlock()

	p.opts.logger().Info("profile updated", "user_id", updated.ID)
	p.opts.record(types.ActivityEntry{
		Operation: types.OpUpdateProfile, TargetID: updated.ID, TargetName: updated.Username,
		Outcome: types.OutcomeSuccess, Message: MsgProfileUpdated,
	})
	p.notifier.Notify(NoticeSuccess, MsgProfileUpdated)
	return updated, nil
}

// PasswordOpen reports whether the password flow is open
func (p *ProfileEditor) PasswordOpen() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.pwOpen
}

// PasswordSubmitting reports whether a password change is pending
func (p *ProfileEditor) PasswordSubmitting() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.pwSubmitting
}

// OpenPassword opens the password flow with empty fields
func (p *ProfileEditor) OpenPassword() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.pwOpen {
		return
	}
	p.pw.Clear()
	p.pwOpen = true
}

// ClosePassword cancels the password flow and clears its fields
func (p *ProfileEditor) ClosePassword() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.pw.Clear()
	p.pwOpen = false
}

// PasswordFields returns a copy of the password fields
func (p *ProfileEditor) PasswordFields() types.PasswordChangeRequest {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.pw
}

// SetPasswordFields replaces the password fields
func (p *ProfileEditor) SetPasswordFields(req types.PasswordChangeRequest) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if !p.pwOpen {
		return ErrFlowClosed
	}
	p.pw = req
	return nil
}

// SubmitPassword checks the confirmation and length locally, then asks
// the backend to change the password. A rejected attempt clears only the
// current password.
func (p *ProfileEditor) SubmitPassword(ctx context.Context) error {
	p.mu.Lock()
	if !p.pwOpen {
		p.mu.Unlock()
		return ErrFlowClosed
	}
	if p.pwSubmitting {
		p.mu.Unlock()
		return ErrSubmitInFlight
	}

	req := p.pw
	var verr *ValidationError
	switch {
	case !validate.PasswordsMatch(req.NewPassword, req.ConfirmPassword):
		verr = &ValidationError{Field: "confirm_password", Kind: KindMismatch, Message: MsgPasswordMismatch}
	case !validate.MeetsMinLength(req.NewPassword, MinPasswordLength):
		verr = &ValidationError{Field: "new_password", Kind: KindTooShort, Message: MsgPasswordTooShort}
	}
	if verr != nil {
		p.mu.Unlock()
		p.notifier.Notify(NoticeFailure, verr.Message)
		return verr
	}

	p.pwSubmitting = true
	p.mu.Unlock()

	err := p.svc.ChangePassword(ctx, types.PasswordChange{
		CurrentPassword: req.CurrentPassword,
		NewPassword:     req.NewPassword,
	})
	req.Clear()

	user := p.Profile()

	p.mu.Lock()
	p.pwSubmitting = false
	if err != nil {
		p.pw.CurrentPassword = ""
	} else {
		p.pw.Clear()
		p.pwOpen = false
	}
	p.mu.Unlock()

	if err != nil {
		rerr := newRequestError("password", MsgPasswordFailed, err)
		p.opts.logger().Warn("failed to change password", "error", err)
		p.opts.record(types.ActivityEntry{
			Operation: types.OpChangePassword, TargetID: user.ID, TargetName: user.Username,
			Outcome: types.OutcomeFailure, Message: rerr.Message,
		})
		p.notifier.Notify(NoticeFailure, rerr.Message)
		return rerr
	}

	p.opts.logger().Info("password changed", "user_id", user.ID)
	p.opts.record(types.ActivityEntry{
		Operation: types.OpChangePassword, TargetID: user.ID, TargetName: user.Username,
		Outcome: types.OutcomeSuccess, Message: MsgPasswordChanged,
	})
	p.notifier.Notify(NoticeSuccess, MsgPasswordChanged)
	return nil
}
