package tui

import (
	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/studiowebux/apiconsole/internal/activity"
	"github.com/studiowebux/apiconsole/internal/console"
	"github.com/studiowebux/apiconsole/internal/types"
)

// loadPageCmd fetches page in the background
func (m *Model) loadPageCmd(page int) tea.Cmd {
	ctx := m.ctx
	list := m.list
	return func() tea.Msg {
		_, err := list.Load(ctx, page)
		return pageLoadedMsg{err: err}
	}
}

func (m *Model) nextPageCmd() tea.Cmd {
	if !m.list.CanNext() {
		return nil
	}
	m.cursor = 0
	ctx := m.ctx
	list := m.list
	return func() tea.Msg {
		_, err := list.Next(ctx)
		return pageLoadedMsg{err: err}
	}
}

func (m *Model) prevPageCmd() tea.Cmd {
	if !m.list.CanPrev() {
		return nil
	}
	m.cursor = 0
	ctx := m.ctx
	list := m.list
	return func() tea.Msg {
		_, err := list.Prev(ctx)
		return pageLoadedMsg{err: err}
	}
}

func (m *Model) reloadCmd() tea.Cmd {
	ctx := m.ctx
	list := m.list
	return func() tea.Msg {
		_, err := list.Reload(ctx)
		return pageLoadedMsg{err: err}
	}
}

// openCreate opens an empty editor
func (m *Model) openCreate() {
	ed := m.list.RequestCreate()
	m.editorOwner = ed
	m.editorForm = newEditorForm(ed)
}

// openEdit opens an editor on r
func (m *Model) openEdit(r types.ApiResource) {
	ed := m.list.RequestEdit(r)
	m.editorOwner = ed
	m.editorForm = newEditorForm(ed)
}

// submitEditorCmd pushes the form buffers into the editor and submits. A
// submission already in flight keeps the editor locked.
func (m *Model) submitEditorCmd() tea.Cmd {
	ed := m.editorOwner
	if ed == nil || m.editorForm == nil || !ed.CanSubmit() {
		return nil
	}
	if err := ed.SetForm(m.editorForm.resourceForm()); err != nil {
		return nil
	}
	ctx := m.ctx
	return func() tea.Msg {
		_, err := ed.Submit(ctx)
		return editorDoneMsg{editor: ed, err: err}
	}
}

// cancelEditor closes the editor without side effects
func (m *Model) cancelEditor() {
	m.list.CloseModal(m.ctx)
	m.editorForm = nil
	m.editorOwner = nil
}

// deleteCmd runs the confirm gate and the delete on a command goroutine;
// the confirmer parks it until the user answers
func (m *Model) deleteCmd(id string) tea.Cmd {
	ctx := m.ctx
	list := m.list
	return func() tea.Msg {
		err := list.RequestDelete(ctx, id)
		return deleteDoneMsg{id: id, err: err}
	}
}

func (m *Model) copyEndpoint(r types.ApiResource) tea.Cmd {
	if err := clipboard.WriteAll(r.Endpoint); err != nil {
		m.logger.Warn("failed to copy endpoint", "error", err)
		m.setError("Failed to copy endpoint: " + err.Error())
		return m.clearNoticeAfter()
	}
	m.setStatus("Endpoint copied to clipboard")
	return m.clearNoticeAfter()
}

// openProfile switches to the profile screen in view state
func (m *Model) openProfile() {
	m.mode = ModeProfile
	m.searchActive = false
}

func (m *Model) editProfile() {
	m.profile.Edit()
	m.profileForm = newProfileForm(m.profile.Form())
}

func (m *Model) cancelProfileEdit() {
	m.profile.Cancel()
	m.profileForm = nil
}

func (m *Model) saveProfileCmd() tea.Cmd {
	if m.profileForm == nil || m.profile.Saving() {
		return nil
	}
	if err := m.profile.SetForm(m.profileForm.profileForm()); err != nil {
		return nil
	}
	ctx := m.ctx
	profile := m.profile
	return func() tea.Msg {
		_, err := profile.Save(ctx)
		return profileSavedMsg{err: err}
	}
}

func (m *Model) openPassword() {
	m.profile.OpenPassword()
	m.passwordForm = newPasswordForm(m.profile.PasswordFields())
}

func (m *Model) closePassword() {
	m.profile.ClosePassword()
	m.passwordForm = nil
}

func (m *Model) submitPasswordCmd() tea.Cmd {
	if m.passwordForm == nil || m.profile.PasswordSubmitting() {
		return nil
	}
	if err := m.profile.SetPasswordFields(m.passwordForm.passwordRequest()); err != nil {
		return nil
	}
	ctx := m.ctx
	profile := m.profile
	return func() tea.Msg {
		return passwordDoneMsg{err: profile.SubmitPassword(ctx)}
	}
}

func (m *Model) openActivity() tea.Cmd {
	m.showActivity = true
	m.activityEntries = nil
	m.activityErr = ""
	m.updateActivityView()
	return m.loadActivityCmd()
}

func (m *Model) loadActivityCmd() tea.Cmd {
	log := m.activity
	if log == nil {
		return nil
	}
	return func() tea.Msg {
		entries, err := log.Load(activity.DefaultLimit)
		return activityLoadedMsg{entries: entries, err: err}
	}
}

// clearActivityCmd asks through the same confirm overlay as deletes
func (m *Model) clearActivityCmd() tea.Cmd {
	log := m.activity
	if log == nil {
		return nil
	}
	confirmer := m.confirmer
	return func() tea.Msg {
		if !confirmer.Confirm("Clear the local activity journal?") {
			return nil
		}
		return activityClearedMsg{err: log.Clear()}
	}
}

// answerConfirm releases the controller waiting on the confirm overlay
func (m *Model) answerConfirm(yes bool) {
	if m.confirm == nil {
		return
	}
	m.confirm.reply <- yes
	m.confirm = nil
}

func (m *Model) quit() tea.Cmd {
	m.quitting = true
	m.Cleanup()
	return tea.Quit
}

var _ console.Confirmer = (*promptConfirmer)(nil)
var _ console.Notifier = (*noticeQueue)(nil)
