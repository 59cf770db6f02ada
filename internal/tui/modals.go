package tui

import (
	"fmt"
	"strings"

	"github.com/studiowebux/apiconsole/internal/console"
	"github.com/studiowebux/apiconsole/internal/keybinds"
	"github.com/studiowebux/apiconsole/internal/types"
)

// renderListModal draws the list controller's overlay over the list
func (m *Model) renderListModal() string {
	switch modal := m.list.Modal().(type) {
	case console.Viewing:
		return m.renderDetail(modal.Viewer)
	case console.Editing:
		return m.renderEditor(modal)
	case console.NoModal:
		return m.renderMain()
	default:
		return m.renderMain()
	}
}

func (m *Model) renderDetail(v *console.DetailViewer) string {
	r := v.Resource()
	var b strings.Builder

	b.WriteString(badgeStyle(v.MethodBadge()).Render(string(r.Method)))
	b.WriteString("  ")
	b.WriteString(badgeStyle(v.StatusBadge()).Render(string(r.Status)))
	b.WriteString("\n\n")

	width := min(m.width-ModalWidthMarginNarrow, ModalMaxWidth) - 6
	for _, f := range v.Fields() {
		if f.Label == "Method" || f.Label == "Status" {
			continue
		}
		label := styleLabel.Render(fmt.Sprintf("%-12s", f.Label))
		b.WriteString(label)
		b.WriteString(strings.ReplaceAll(wrapText(f.Value, max(width-12, 10)), "\n", "\n"+strings.Repeat(" ", 12)))
		b.WriteString("\n")
	}

	kb := m.keybinds
	footer := fmt.Sprintf("%s: edit | %s: delete | %s: copy endpoint | %s: close",
		kb.GetBindingString(keybinds.ContextDetail, keybinds.ActionEdit),
		kb.GetBindingString(keybinds.ContextDetail, keybinds.ActionDelete),
		kb.GetBindingString(keybinds.ContextDetail, keybinds.ActionCopyEndpoint),
		kb.GetBindingString(keybinds.ContextDetail, keybinds.ActionCloseModal))

	return renderModal(ModalConfig{
		Title:       r.Name,
		Body:        strings.TrimRight(b.String(), "\n"),
		Footer:      footer,
		BorderColor: colorBlue,
	}, m.width, m.height)
}

func (m *Model) renderEditor(editing console.Editing) string {
	form := m.editorForm
	if form == nil || m.editorOwner != editing.Editor {
		form = newEditorForm(editing.Editor)
	}

	title := "Edit API"
	if editing.Creating() {
		title = "Create API"
	}

	width := min(m.width-ModalWidthMarginNarrow, ModalMaxWidth) - 6
	body := m.renderForm(form, width)

	kb := m.keybinds
	footer := fmt.Sprintf("%s: save | %s: next field | %s: cancel",
		kb.GetBindingString(keybinds.ContextEditor, keybinds.ActionSubmit),
		kb.GetBindingString(keybinds.ContextEditor, keybinds.ActionNextField),
		kb.GetBindingString(keybinds.ContextEditor, keybinds.ActionCloseModal))
	if editing.Editor.Submitting() {
		footer = "Saving..."
	}

	return renderModal(ModalConfig{
		Title:       title,
		Body:        body,
		Footer:      footer,
		BorderColor: colorGreen,
	}, m.width, m.height)
}

func (m *Model) renderPassword() string {
	form := m.passwordForm
	if form == nil {
		form = newPasswordForm(m.profile.PasswordFields())
	}

	width := min(m.width-ModalWidthMarginNarrow, ModalMaxWidth) - 6
	body := m.renderForm(form, width) + "\n\n" +
		styleSubtle.Render(fmt.Sprintf("At least %d characters.", console.MinPasswordLength))

	kb := m.keybinds
	footer := fmt.Sprintf("%s: change password | %s: next field | %s: cancel",
		kb.GetBindingString(keybinds.ContextPassword, keybinds.ActionSubmit),
		kb.GetBindingString(keybinds.ContextPassword, keybinds.ActionNextField),
		kb.GetBindingString(keybinds.ContextPassword, keybinds.ActionCloseModal))
	if m.profile.PasswordSubmitting() {
		footer = "Changing password..."
	}

	// Failures stay visible inside the overlay
	if m.errorMsg != "" {
		body += "\n" + styleError.Render(m.errorMsg)
	}

	return renderModal(ModalConfig{
		Title:       "Change Password",
		Body:        body,
		Footer:      footer,
		BorderColor: colorYellow,
	}, m.width, m.height)
}

func (m *Model) renderConfirm() string {
	kb := m.keybinds
	footer := fmt.Sprintf("%s: yes | %s: no",
		kb.GetBindingString(keybinds.ContextConfirm, keybinds.ActionConfirm),
		kb.GetBindingString(keybinds.ContextConfirm, keybinds.ActionCancel))

	return renderModal(ModalConfig{
		Title:       "Confirm",
		Body:        styleWarning.Render(m.confirm.message),
		Footer:      footer,
		BorderColor: colorRed,
		Width:       min(m.width-ModalWidthMarginNarrow, 60),
	}, m.width, m.height)
}

func (m *Model) openHelp() {
	m.showHelp = true
	m.updateHelpView()
	m.helpView.GotoTop()
}

// renderHelp renders the help screen
func (m *Model) renderHelp() string {
	return renderModal(ModalConfig{
		Title:       "Keyboard Shortcuts",
		Body:        m.helpView.View(),
		Footer:      "↑/↓ j/k: scroll | ESC/?: close",
		BorderColor: colorBlue,
		Width:       m.width - ModalWidthMarginNarrow,
	}, m.width, m.height)
}

type helpSection struct {
	title   string
	context keybinds.Context
	actions []keybinds.Action
}

var helpSections = []helpSection{
	{"Resource list", keybinds.ContextList, []keybinds.Action{
		keybinds.ActionNavigateUp, keybinds.ActionNavigateDown, keybinds.ActionGoToTop, keybinds.ActionGoToBottom,
		keybinds.ActionNextPage, keybinds.ActionPrevPage, keybinds.ActionRefresh,
		keybinds.ActionView, keybinds.ActionCreate, keybinds.ActionEdit, keybinds.ActionDelete,
		keybinds.ActionCopyEndpoint, keybinds.ActionOpenSearch, keybinds.ActionClearSearch,
		keybinds.ActionOpenProfile, keybinds.ActionOpenActivity, keybinds.ActionOpenHelp, keybinds.ActionQuit,
	}},
	{"Detail view", keybinds.ContextDetail, []keybinds.Action{
		keybinds.ActionEdit, keybinds.ActionDelete, keybinds.ActionCopyEndpoint, keybinds.ActionCloseModal,
	}},
	{"Editor", keybinds.ContextEditor, []keybinds.Action{
		keybinds.ActionNextField, keybinds.ActionPrevField, keybinds.ActionNextOption, keybinds.ActionPrevOption,
		keybinds.ActionSubmit, keybinds.ActionCloseModal,
	}},
	{"Profile", keybinds.ContextProfile, []keybinds.Action{
		keybinds.ActionEditProfile, keybinds.ActionOpenPassword, keybinds.ActionSubmit,
		keybinds.ActionOpenActivity, keybinds.ActionOpenList,
	}},
	{"Password", keybinds.ContextPassword, []keybinds.Action{
		keybinds.ActionNextField, keybinds.ActionPrevField, keybinds.ActionSubmit, keybinds.ActionCloseModal,
	}},
	{"Confirm", keybinds.ContextConfirm, []keybinds.Action{
		keybinds.ActionConfirm, keybinds.ActionCancel,
	}},
	{"Activity", keybinds.ContextActivity, []keybinds.Action{
		keybinds.ActionRefresh, keybinds.ActionClearActivity, keybinds.ActionCloseModal,
	}},
	{"Text input", keybinds.ContextTextInput, []keybinds.Action{
		keybinds.ActionTextPaste, keybinds.ActionTextDeleteWord, keybinds.ActionTextClearBefore,
		keybinds.ActionTextClearAfter, keybinds.ActionTextMoveHome, keybinds.ActionTextMoveEnd,
	}},
	{"Anywhere", keybinds.ContextGlobal, []keybinds.Action{
		keybinds.ActionQuitForce,
	}},
}

var actionLabels = map[keybinds.Action]string{
	keybinds.ActionNavigateUp:      "Move up",
	keybinds.ActionNavigateDown:    "Move down",
	keybinds.ActionGoToTop:         "First row",
	keybinds.ActionGoToBottom:      "Last row",
	keybinds.ActionNextPage:        "Next page",
	keybinds.ActionPrevPage:        "Previous page",
	keybinds.ActionRefresh:         "Refresh",
	keybinds.ActionView:            "View details",
	keybinds.ActionCreate:          "Create API",
	keybinds.ActionEdit:            "Edit API",
	keybinds.ActionDelete:          "Delete API",
	keybinds.ActionCopyEndpoint:    "Copy endpoint",
	keybinds.ActionOpenSearch:      "Search this page",
	keybinds.ActionClearSearch:     "Clear search",
	keybinds.ActionOpenProfile:     "Profile",
	keybinds.ActionOpenActivity:    "Activity journal",
	keybinds.ActionOpenHelp:        "Help",
	keybinds.ActionQuit:            "Quit",
	keybinds.ActionQuitForce:       "Quit immediately",
	keybinds.ActionNextField:       "Next field",
	keybinds.ActionPrevField:       "Previous field",
	keybinds.ActionNextOption:      "Next option",
	keybinds.ActionPrevOption:      "Previous option",
	keybinds.ActionSubmit:          "Save",
	keybinds.ActionCloseModal:      "Close",
	keybinds.ActionEditProfile:     "Edit profile",
	keybinds.ActionOpenPassword:    "Change password",
	keybinds.ActionOpenList:        "Back to list",
	keybinds.ActionConfirm:         "Yes",
	keybinds.ActionCancel:          "No",
	keybinds.ActionClearActivity:   "Clear journal",
	keybinds.ActionTextPaste:       "Paste",
	keybinds.ActionTextDeleteWord:  "Delete word",
	keybinds.ActionTextClearBefore: "Clear before cursor",
	keybinds.ActionTextClearAfter:  "Clear after cursor",
	keybinds.ActionTextMoveHome:    "Start of line",
	keybinds.ActionTextMoveEnd:     "End of line",
}

// helpContent lists the live bindings, so overrides show up
func (m *Model) helpContent() string {
	var b strings.Builder
	for i, section := range helpSections {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(styleLabel.Render(section.title))
		b.WriteString("\n")
		for _, action := range section.actions {
			keys := m.keybinds.GetBindingString(section.context, action)
			b.WriteString(fmt.Sprintf("  %-24s %s\n", keys, actionLabels[action]))
		}
	}
	return strings.TrimRight(b.String(), "\n")
}

func (m *Model) updateHelpView() {
	m.helpView.SetContent(m.helpContent())
}

// renderActivity renders the activity journal overlay
func (m *Model) renderActivity() string {
	kb := m.keybinds
	footer := fmt.Sprintf("%s: refresh | %s: clear | %s: close",
		kb.GetBindingString(keybinds.ContextActivity, keybinds.ActionRefresh),
		kb.GetBindingString(keybinds.ContextActivity, keybinds.ActionClearActivity),
		kb.GetBindingString(keybinds.ContextActivity, keybinds.ActionCloseModal))

	return renderModal(ModalConfig{
		Title:       "Activity",
		Body:        m.activityView.View(),
		Footer:      footer,
		BorderColor: colorBlue,
		Width:       m.width - ModalWidthMarginNarrow,
	}, m.width, m.height)
}

func (m *Model) updateActivityView() {
	m.activityView.SetContent(m.activityContent())
}

func (m *Model) activityContent() string {
	switch {
	case m.activity == nil:
		return styleSubtle.Render("The activity journal is disabled (activity_enabled: false).")
	case m.activityErr != "":
		return styleError.Render("Failed to load activity: " + m.activityErr)
	case len(m.activityEntries) == 0:
		return styleSubtle.Render("No activity recorded yet.")
	}

	var b strings.Builder
	for i, e := range m.activityEntries {
		when := e.Timestamp.In(m.zone()).Format(activityTimeLayout)
		outcome := styleSuccess.Render(string(e.Outcome))
		if e.Outcome == types.OutcomeFailure {
			outcome = styleError.Render(string(e.Outcome))
		}
		target := e.TargetName
		if target == "" {
			target = e.TargetID
		}
		b.WriteString(fmt.Sprintf("%s  %-8s %s  %s", styleSubtle.Render(when), e.Operation, outcome, target))
		if e.Message != "" {
			b.WriteString(styleSubtle.Render("  " + e.Message))
		}
		if i < len(m.activityEntries)-1 {
			b.WriteString("\n")
		}
	}
	return b.String()
}
