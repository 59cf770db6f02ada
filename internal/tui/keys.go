package tui

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/studiowebux/apiconsole/internal/console"
	"github.com/studiowebux/apiconsole/internal/keybinds"
)

// handleKeyPress routes key presses to the topmost layer
func (m *Model) handleKeyPress(msg tea.KeyMsg) tea.Cmd {
	if action, ok := m.keybinds.Match(keybinds.ContextGlobal, msg.String()); ok && action == keybinds.ActionQuitForce {
		return m.quit()
	}

	switch m.topOverlay() {
	case overlayConfirm:
		return m.handleConfirmKeys(msg)
	case overlayHelp:
		return m.handleViewerKeys(keybinds.ContextHelp, &m.helpView, msg)
	case overlayActivity:
		return m.handleViewerKeys(keybinds.ContextActivity, &m.activityView, msg)
	case overlayDetail:
		return m.handleDetailKeys(msg)
	case overlayEditor:
		return m.handleEditorKeys(msg)
	case overlayPassword:
		return m.handlePasswordKeys(msg)
	}

	if m.mode == ModeProfile {
		return m.handleProfileKeys(msg)
	}
	if m.searchActive {
		return m.handleSearchKeys(msg)
	}
	return m.handleListKeys(msg)
}

// handleListKeys handles the resource list screen
func (m *Model) handleListKeys(msg tea.KeyMsg) tea.Cmd {
	action, matched, pending := m.keybinds.MatchMultiKey(keybinds.ContextList, msg.String())
	if pending || !matched {
		return nil
	}

	items := m.visibleResources()

	switch action {
	case keybinds.ActionQuit:
		return m.quit()

	case keybinds.ActionNavigateUp:
		if m.cursor > 0 {
			m.cursor--
		}
	case keybinds.ActionNavigateDown:
		if m.cursor < len(items)-1 {
			m.cursor++
		}
	case keybinds.ActionGoToTop:
		m.cursor = 0
	case keybinds.ActionGoToBottom:
		m.cursor = max(len(items)-1, 0)

	case keybinds.ActionNextPage:
		return m.nextPageCmd()
	case keybinds.ActionPrevPage:
		return m.prevPageCmd()
	case keybinds.ActionRefresh:
		return m.reloadCmd()

	case keybinds.ActionView:
		if r, ok := m.selectedResource(); ok {
			m.list.RequestView(r)
		}
	case keybinds.ActionCreate:
		m.openCreate()
	case keybinds.ActionEdit:
		if r, ok := m.selectedResource(); ok {
			m.openEdit(r)
		}
	case keybinds.ActionDelete:
		if r, ok := m.selectedResource(); ok {
			return m.deleteCmd(r.ID)
		}
	case keybinds.ActionCopyEndpoint:
		if r, ok := m.selectedResource(); ok {
			return m.copyEndpoint(r)
		}

	case keybinds.ActionOpenSearch:
		m.searchActive = true
		m.searchCursor = len(m.searchQuery)
	case keybinds.ActionClearSearch:
		if m.searchQuery != "" {
			m.searchQuery = ""
			m.searchCursor = 0
			m.clampCursor()
		}

	case keybinds.ActionOpenProfile:
		m.openProfile()
	case keybinds.ActionOpenActivity:
		return m.openActivity()
	case keybinds.ActionOpenHelp:
		m.openHelp()
	}

	return nil
}

// handleSearchKeys narrows the held page as the query is typed
func (m *Model) handleSearchKeys(msg tea.KeyMsg) tea.Cmd {
	if action, ok := m.keybinds.Match(keybinds.ContextSearch, msg.String()); ok {
		switch action {
		case keybinds.ActionTextSubmit:
			m.searchActive = false
			return nil
		case keybinds.ActionTextCancel:
			m.searchActive = false
			m.searchQuery = ""
			m.searchCursor = 0
			m.clampCursor()
			return nil
		}
	}

	if m.editText(msg, &m.searchQuery, &m.searchCursor) {
		m.cursor = 0
	}
	return nil
}

func (m *Model) handleDetailKeys(msg tea.KeyMsg) tea.Cmd {
	viewing, ok := m.list.Modal().(console.Viewing)
	if !ok {
		return nil
	}
	action, ok := m.keybinds.Match(keybinds.ContextDetail, msg.String())
	if !ok {
		return nil
	}

	r := viewing.Viewer.Resource()
	switch action {
	case keybinds.ActionCloseModal:
		viewing.Viewer.Close()
	case keybinds.ActionEdit:
		m.openEdit(r)
	case keybinds.ActionDelete:
		viewing.Viewer.Close()
		return m.deleteCmd(r.ID)
	case keybinds.ActionCopyEndpoint:
		return m.copyEndpoint(r)
	}
	return nil
}

func (m *Model) handleEditorKeys(msg tea.KeyMsg) tea.Cmd {
	editing, ok := m.list.Modal().(console.Editing)
	if !ok {
		return nil
	}
	if m.editorOwner != editing.Editor || m.editorForm == nil {
		m.editorOwner = editing.Editor
		m.editorForm = newEditorForm(editing.Editor)
	}

	switch m.handleFormKeys(keybinds.ContextEditor, m.editorForm, msg) {
	case formSubmit:
		return m.submitEditorCmd()
	case formCancel:
		m.cancelEditor()
	}
	return nil
}

func (m *Model) handleProfileKeys(msg tea.KeyMsg) tea.Cmd {
	if m.profile.Mode() == console.ProfileEditing {
		if m.profileForm == nil {
			m.profileForm = newProfileForm(m.profile.Form())
		}
		switch m.handleFormKeys(keybinds.ContextProfile, m.profileForm, msg) {
		case formSubmit:
			return m.saveProfileCmd()
		case formCancel:
			m.cancelProfileEdit()
		}
		return nil
	}

	action, ok := m.keybinds.Match(keybinds.ContextProfile, msg.String())
	if !ok {
		return nil
	}
	switch action {
	case keybinds.ActionOpenList:
		m.mode = ModeList
	case keybinds.ActionEditProfile:
		m.editProfile()
	case keybinds.ActionOpenPassword:
		m.openPassword()
	case keybinds.ActionOpenActivity:
		return m.openActivity()
	case keybinds.ActionOpenHelp:
		m.openHelp()
	}
	return nil
}

func (m *Model) handlePasswordKeys(msg tea.KeyMsg) tea.Cmd {
	if m.passwordForm == nil {
		m.passwordForm = newPasswordForm(m.profile.PasswordFields())
	}
	switch m.handleFormKeys(keybinds.ContextPassword, m.passwordForm, msg) {
	case formSubmit:
		return m.submitPasswordCmd()
	case formCancel:
		m.closePassword()
	}
	return nil
}

func (m *Model) handleConfirmKeys(msg tea.KeyMsg) tea.Cmd {
	action, ok := m.keybinds.Match(keybinds.ContextConfirm, msg.String())
	if !ok {
		return nil
	}
	switch action {
	case keybinds.ActionConfirm:
		m.answerConfirm(true)
	case keybinds.ActionCancel, keybinds.ActionCloseModal:
		m.answerConfirm(false)
	}
	return nil
}

// handleViewerKeys scrolls the help and activity overlays
func (m *Model) handleViewerKeys(ctx keybinds.Context, view *viewport.Model, msg tea.KeyMsg) tea.Cmd {
	action, matched, pending := m.keybinds.MatchMultiKey(ctx, msg.String())
	if pending || !matched {
		return nil
	}

	switch action {
	case keybinds.ActionCloseModal:
		m.keybinds.ClearMultiKeyState(ctx)
		if ctx == keybinds.ContextHelp {
			m.showHelp = false
		} else {
			m.showActivity = false
		}
	case keybinds.ActionNavigateUp:
		view.ScrollUp(1)
	case keybinds.ActionNavigateDown:
		view.ScrollDown(1)
	case keybinds.ActionPageUp:
		view.PageUp()
	case keybinds.ActionPageDown:
		view.PageDown()
	case keybinds.ActionGoToTop:
		view.GotoTop()
	case keybinds.ActionGoToBottom:
		view.GotoBottom()
	case keybinds.ActionRefresh:
		if ctx == keybinds.ContextActivity {
			return m.loadActivityCmd()
		}
	case keybinds.ActionClearActivity:
		return m.clearActivityCmd()
	}
	return nil
}

type formResult int

const (
	formNone formResult = iota
	formSubmit
	formCancel
)

// handleFormKeys drives an open form. Printable keys always go to the
// focused field so letters bound in ctx can still be typed.
func (m *Model) handleFormKeys(ctx keybinds.Context, form *FormState, msg tea.KeyMsg) formResult {
	focus := form.GetFocus()

	if isPrintable(msg) {
		if form.Kind(focus) == fieldOption {
			if msg.Type == tea.KeySpace {
				form.CycleOption(1)
			}
			return formNone
		}
		form.EditFocused(func(input *string, cursor *int) bool {
			return m.editText(msg, input, cursor)
		})
		return formNone
	}

	if action, ok := m.keybinds.Match(ctx, msg.String()); ok {
		switch action {
		case keybinds.ActionNextField:
			form.Navigate(1)
			return formNone
		case keybinds.ActionPrevField:
			form.Navigate(-1)
			return formNone
		case keybinds.ActionNextOption:
			form.CycleOption(1)
			return formNone
		case keybinds.ActionPrevOption:
			form.CycleOption(-1)
			return formNone
		case keybinds.ActionSubmit:
			return formSubmit
		case keybinds.ActionCloseModal, keybinds.ActionOpenList, keybinds.ActionCancel:
			return formCancel
		}
	}

	if form.Kind(focus) == fieldOption {
		if action, ok := m.keybinds.Match(keybinds.ContextTextInput, msg.String()); ok {
			switch action {
			case keybinds.ActionTextMoveLeft:
				form.CycleOption(-1)
			case keybinds.ActionTextMoveRight:
				form.CycleOption(1)
			}
		}
		return formNone
	}

	form.EditFocused(func(input *string, cursor *int) bool {
		return m.editText(msg, input, cursor)
	})
	return formNone
}

func isPrintable(msg tea.KeyMsg) bool {
	return msg.Type == tea.KeyRunes || msg.Type == tea.KeySpace
}

// editText applies a text input key to input. It reports whether input
// or the cursor changed.
func (m *Model) editText(msg tea.KeyMsg, input *string, cursor *int) bool {
	if *cursor < 0 {
		*cursor = 0
	}
	if *cursor > len(*input) {
		*cursor = len(*input)
	}

	if isPrintable(msg) {
		text := string(msg.Runes)
		if msg.Type == tea.KeySpace {
			text = " "
		}
		insertAt(input, cursor, text)
		return true
	}

	action, ok := m.keybinds.Match(keybinds.ContextTextInput, msg.String())
	if !ok {
		return false
	}

	switch action {
	case keybinds.ActionTextBackspace:
		if *cursor == 0 {
			return false
		}
		_, size := utf8.DecodeLastRuneInString((*input)[:*cursor])
		*input = (*input)[:*cursor-size] + (*input)[*cursor:]
		*cursor -= size

	case keybinds.ActionTextDelete:
		if *cursor >= len(*input) {
			return false
		}
		_, size := utf8.DecodeRuneInString((*input)[*cursor:])
		*input = (*input)[:*cursor] + (*input)[*cursor+size:]

	case keybinds.ActionTextMoveLeft:
		if *cursor == 0 {
			return false
		}
		_, size := utf8.DecodeLastRuneInString((*input)[:*cursor])
		*cursor -= size

	case keybinds.ActionTextMoveRight:
		if *cursor >= len(*input) {
			return false
		}
		_, size := utf8.DecodeRuneInString((*input)[*cursor:])
		*cursor += size

	case keybinds.ActionTextMoveHome:
		*cursor = 0

	case keybinds.ActionTextMoveEnd:
		*cursor = len(*input)

	case keybinds.ActionTextPaste:
		text, err := clipboard.ReadAll()
		if err != nil {
			return false
		}
		// Single-line fields
		text = strings.ReplaceAll(strings.ReplaceAll(text, "\r", ""), "\n", " ")
		insertAt(input, cursor, text)

	case keybinds.ActionTextDeleteWord:
		before := strings.TrimRightFunc((*input)[:*cursor], unicode.IsSpace)
		idx := strings.LastIndexFunc(before, unicode.IsSpace) + 1
		*input = (*input)[:idx] + (*input)[*cursor:]
		*cursor = idx

	case keybinds.ActionTextClearBefore:
		*input = (*input)[*cursor:]
		*cursor = 0

	case keybinds.ActionTextClearAfter:
		*input = (*input)[:*cursor]

	default:
		return false
	}
	return true
}

func insertAt(input *string, cursor *int, text string) {
	*input = (*input)[:*cursor] + text + (*input)[*cursor:]
	*cursor += len(text)
}
