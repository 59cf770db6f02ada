package tui

import (
	"errors"
	"net"
	"strings"
	"syscall"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/studiowebux/apiconsole/internal/config"
	"github.com/studiowebux/apiconsole/internal/console"
	"github.com/studiowebux/apiconsole/internal/types"
)

func TestNew_InitializesDefaultMode(t *testing.T) {
	m, _ := CreateTestModel(t, nil)

	AssertModelField(t, "mode", m.mode, ModeList)
	AssertModelField(t, "overlay", m.topOverlay(), overlayNone)
	AssertModelField(t, "cursor", m.cursor, 0)
	AssertModelField(t, "searchActive", m.searchActive, false)
}

func TestNew_RequiresServices(t *testing.T) {
	if _, err := New(Deps{Settings: config.DefaultSettings()}); err == nil {
		t.Error("Expected an error without a resource service")
	}
}

func TestModel_LoadsFirstPage(t *testing.T) {
	m, _ := CreateTestModel(t, sampleResources(12))

	page := m.list.Page()
	AssertModelField(t, "page", page.Page, 1)
	AssertModelField(t, "total pages", page.TotalPages, 2)
	AssertModelField(t, "items", len(page.Items), 10)
	AssertModelField(t, "can prev", m.list.CanPrev(), false)
	AssertModelField(t, "can next", m.list.CanNext(), true)
}

func TestModel_EmptyStateMessage(t *testing.T) {
	m, _ := CreateTestModel(t, nil)

	if view := m.View(); !strings.Contains(view, console.MsgNoRecords) {
		t.Errorf("Expected empty state message in view, got:\n%s", view)
	}
}

func TestModel_NextAndPrevPage(t *testing.T) {
	m, _ := CreateTestModel(t, sampleResources(12))

	press(t, m, "down")
	AssertModelField(t, "cursor", m.cursor, 1)

	press(t, m, "n")
	AssertModelField(t, "page", m.list.Page().Page, 2)
	AssertModelField(t, "items", len(m.list.Page().Items), 2)
	AssertModelField(t, "cursor reset", m.cursor, 0)

	// Last page: next is disabled and issues nothing
	if cmd := m.handleKeyPress(keyPress("n")); cmd != nil {
		t.Error("Expected no command past the last page")
	}

	press(t, m, "p")
	AssertModelField(t, "page", m.list.Page().Page, 1)
}

func TestModel_CreateFlow(t *testing.T) {
	m, env := CreateTestModel(t, nil)

	press(t, m, "c")
	AssertModelField(t, "overlay", m.topOverlay(), overlayEditor)

	typeText(t, m, "Users")
	press(t, m, "tab")
	typeText(t, m, "List users")
	press(t, m, "tab")
	typeText(t, m, "https://api.example.com/users")
	press(t, m, "tab")
	press(t, m, "ctrl+n")
	press(t, m, "ctrl+s")

	AssertModelField(t, "overlay", m.topOverlay(), overlayNone)
	AssertModelField(t, "editorForm nil", m.editorForm == nil, true)
	AssertModelField(t, "status", m.statusMsg, console.MsgCreated)

	if len(env.resources.created) != 1 {
		t.Fatalf("Expected 1 create call, got %d", len(env.resources.created))
	}
	got := env.resources.created[0]
	AssertModelField(t, "name", got.Name, "Users")
	AssertModelField(t, "method", got.Method, types.MethodPost)

	// The list was re-fetched after the create
	AssertModelField(t, "items", len(m.list.Page().Items), 1)
}

func TestModel_CreateValidationKeepsEditorOpen(t *testing.T) {
	m, env := CreateTestModel(t, nil)

	press(t, m, "c")
	press(t, m, "enter")

	AssertModelField(t, "overlay", m.topOverlay(), overlayEditor)
	AssertModelField(t, "error", m.errorMsg, console.MsgNameRequired)
	AssertModelField(t, "create calls", len(env.resources.created), 0)
}

func TestModel_EditorTypingBoundLetters(t *testing.T) {
	m, _ := CreateTestModel(t, nil)

	press(t, m, "c")
	// "q" and "d" are list bindings but must reach the field
	typeText(t, m, "qd")
	AssertModelField(t, "name", m.editorForm.Value(editorFieldName), "qd")
}

func TestModel_EditorEscCancels(t *testing.T) {
	m, env := CreateTestModel(t, sampleResources(1))

	press(t, m, "e")
	AssertModelField(t, "overlay", m.topOverlay(), overlayEditor)
	AssertModelField(t, "prefilled", m.editorForm.Value(editorFieldName), "Users")

	press(t, m, "esc")
	AssertModelField(t, "overlay", m.topOverlay(), overlayNone)
	AssertModelField(t, "update calls", len(env.resources.updated), 0)
}

func TestModel_DetailOpenClose(t *testing.T) {
	m, _ := CreateTestModel(t, sampleResources(2))

	press(t, m, "down")
	press(t, m, "enter")
	AssertModelField(t, "overlay", m.topOverlay(), overlayDetail)
	if view := m.View(); !strings.Contains(view, "Orders") {
		t.Errorf("Expected detail view to show the selected resource, got:\n%s", view)
	}

	press(t, m, "esc")
	AssertModelField(t, "overlay", m.topOverlay(), overlayNone)
}

// runDelete presses d on the selected row and answers the confirm overlay
func runDelete(t *testing.T, m *Model, answer string) {
	t.Helper()

	requests := make(chan tea.Msg, 1)
	m.confirmer.attach(func(msg tea.Msg) { requests <- msg })

	cmd := m.handleKeyPress(keyPress("d"))
	if cmd == nil {
		t.Fatal("Expected a delete command")
	}
	done := make(chan tea.Msg, 1)
	go func() { done <- cmd() }()

	m.Update(<-requests)
	AssertModelField(t, "overlay", m.topOverlay(), overlayConfirm)
	if !strings.Contains(m.View(), console.MsgConfirmDelete) {
		t.Error("Expected the confirm message in the view")
	}

	press(t, m, answer)
	m.Update(<-done)
}

func TestModel_DeleteConfirmed(t *testing.T) {
	m, env := CreateTestModel(t, sampleResources(3))

	runDelete(t, m, "y")

	AssertModelField(t, "overlay", m.topOverlay(), overlayNone)
	AssertModelField(t, "deleted", strings.Join(env.resources.deleted, ","), "users-0")
	AssertModelField(t, "status", m.statusMsg, console.MsgDeleted)
	AssertModelField(t, "items", len(m.list.Page().Items), 2)
}

func TestModel_DeleteDeclined(t *testing.T) {
	m, env := CreateTestModel(t, sampleResources(3))

	runDelete(t, m, "n")

	AssertModelField(t, "overlay", m.topOverlay(), overlayNone)
	AssertModelField(t, "delete calls", len(env.resources.deleted), 0)
	AssertModelField(t, "status", m.statusMsg, "")
	AssertModelField(t, "items", len(m.list.Page().Items), 3)
}

func TestModel_DeleteWithoutConfirmerIsDeclined(t *testing.T) {
	m, env := CreateTestModel(t, sampleResources(1))

	press(t, m, "d")
	AssertModelField(t, "delete calls", len(env.resources.deleted), 0)
}

func TestModel_SearchFiltersPage(t *testing.T) {
	m, _ := CreateTestModel(t, sampleResources(6))

	press(t, m, "/")
	AssertModelField(t, "searchActive", m.searchActive, true)
	typeText(t, m, "pay")
	AssertModelField(t, "visible", len(m.visibleResources()), 1)

	press(t, m, "enter")
	AssertModelField(t, "searchActive", m.searchActive, false)
	AssertModelField(t, "query kept", m.searchQuery, "pay")

	press(t, m, "esc")
	AssertModelField(t, "query cleared", m.searchQuery, "")
	AssertModelField(t, "visible", len(m.visibleResources()), 6)
}

func TestModel_LoadFailureShowsHint(t *testing.T) {
	m, env := CreateTestModel(t, sampleResources(2))

	env.resources.mu.Lock()
	env.resources.listErr = &net.OpError{Op: "dial", Net: "tcp", Err: syscall.ECONNREFUSED}
	env.resources.mu.Unlock()

	press(t, m, "r")

	AssertModelField(t, "error", m.errorMsg, console.MsgFetchFailed)
	AssertModelField(t, "hint", m.hintMsg, hintRefused)
	// The previously held page stays visible
	AssertModelField(t, "items", len(m.list.Page().Items), 2)
}

func TestModel_ProfileEditAndSave(t *testing.T) {
	m, env := CreateTestModel(t, nil)

	press(t, m, "P")
	AssertModelField(t, "mode", m.mode, ModeProfile)

	press(t, m, "e")
	AssertModelField(t, "profile mode", m.profile.Mode(), console.ProfileEditing)

	press(t, m, "ctrl+u")
	typeText(t, m, "pale")
	press(t, m, "ctrl+s")

	AssertModelField(t, "profile mode", m.profile.Mode(), console.ProfileViewing)
	AssertModelField(t, "profileForm nil", m.profileForm == nil, true)
	AssertModelField(t, "status", m.statusMsg, console.MsgProfileUpdated)

	user, _ := env.store.CurrentUser()
	AssertModelField(t, "stored username", user.Username, "pale")
}

func TestModel_ProfileEscReturnsToList(t *testing.T) {
	m, _ := CreateTestModel(t, nil)

	press(t, m, "P")
	press(t, m, "esc")
	AssertModelField(t, "mode", m.mode, ModeList)
}

func fillPassword(t *testing.T, m *Model, current, next, confirm string) {
	t.Helper()
	typeText(t, m, current)
	press(t, m, "tab")
	typeText(t, m, next)
	press(t, m, "tab")
	typeText(t, m, confirm)
	press(t, m, "enter")
}

func TestModel_PasswordMismatchSkipsNetwork(t *testing.T) {
	m, env := CreateTestModel(t, nil)

	press(t, m, "P")
	press(t, m, "p")
	AssertModelField(t, "overlay", m.topOverlay(), overlayPassword)

	fillPassword(t, m, "old", "secret1", "secret2")

	AssertModelField(t, "overlay", m.topOverlay(), overlayPassword)
	AssertModelField(t, "error", m.errorMsg, console.MsgPasswordMismatch)
	AssertModelField(t, "calls", env.profiles.passwordCalls, 0)
}

func TestModel_PasswordRejectedClearsCurrent(t *testing.T) {
	m, env := CreateTestModel(t, nil)
	env.profiles.passwordErr = errors.New("wrong password")

	press(t, m, "P")
	press(t, m, "p")
	fillPassword(t, m, "old", "secret1", "secret1")

	AssertModelField(t, "calls", env.profiles.passwordCalls, 1)
	AssertModelField(t, "overlay", m.topOverlay(), overlayPassword)
	AssertModelField(t, "error", m.errorMsg, console.MsgPasswordFailed)
	AssertModelField(t, "current", m.passwordForm.Value(passwordFieldCurrent), "")
	AssertModelField(t, "new kept", m.passwordForm.Value(passwordFieldNew), "secret1")
}

func TestModel_PasswordChanged(t *testing.T) {
	m, _ := CreateTestModel(t, nil)

	press(t, m, "P")
	press(t, m, "p")
	fillPassword(t, m, "old", "secret1", "secret1")

	AssertModelField(t, "overlay", m.topOverlay(), overlayNone)
	AssertModelField(t, "passwordForm nil", m.passwordForm == nil, true)
	AssertModelField(t, "status", m.statusMsg, console.MsgPasswordChanged)
}

func TestModel_ClearNoticeMatchesSequence(t *testing.T) {
	m, _ := CreateTestModel(t, nil)

	m.setStatus("first")
	stale := m.noticeSeq
	m.setStatus("second")

	m.Update(clearNoticeMsg{seq: stale})
	AssertModelField(t, "status after stale clear", m.statusMsg, "second")

	m.Update(clearNoticeMsg{seq: m.noticeSeq})
	AssertModelField(t, "status after clear", m.statusMsg, "")
}

func TestModel_StaleLoadIgnored(t *testing.T) {
	m, _ := CreateTestModel(t, nil)

	m.notices.Notify(console.NoticeFailure, "should stay queued")
	m.Update(pageLoadedMsg{err: console.ErrStale})
	AssertModelField(t, "error", m.errorMsg, "")
}

func TestModel_HelpOverlay(t *testing.T) {
	m, _ := CreateTestModel(t, nil)

	press(t, m, "?")
	AssertModelField(t, "overlay", m.topOverlay(), overlayHelp)

	// Help owns the keyboard
	press(t, m, "c")
	_, closed := m.list.Modal().(console.NoModal)
	AssertModelField(t, "no editor opened", closed, true)

	press(t, m, "esc")
	AssertModelField(t, "overlay", m.topOverlay(), overlayNone)
}

func TestModel_ActivityOverlay(t *testing.T) {
	m, env := CreateTestModel(t, nil)
	env.activity.entries = []types.ActivityEntry{
		{Operation: types.OpCreateResource, TargetName: "Users", Outcome: types.OutcomeSuccess},
	}

	press(t, m, "a")
	AssertModelField(t, "overlay", m.topOverlay(), overlayActivity)
	AssertModelField(t, "entries", len(m.activityEntries), 1)

	press(t, m, "q")
	AssertModelField(t, "overlay", m.topOverlay(), overlayNone)
}

func TestModel_ActivityDisabled(t *testing.T) {
	m, err := New(Deps{
		Resources: &stubResources{},
		Profiles:  &stubProfiles{},
		Store:     &memStore{},
		Settings:  config.DefaultSettings(),
	})
	if err != nil {
		t.Fatalf("Failed to create model: %v", err)
	}
	t.Cleanup(m.Cleanup)

	if cmd := m.openActivity(); cmd != nil {
		t.Error("Expected no load command without a journal")
	}
	AssertModelField(t, "showActivity", m.showActivity, true)
}

func TestModel_Quit(t *testing.T) {
	m, _ := CreateTestModel(t, nil)

	cmd := m.handleKeyPress(keyPress("q"))
	if cmd == nil {
		t.Fatal("Expected quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("Expected tea.QuitMsg")
	}
	AssertModelField(t, "quitting", m.quitting, true)
}

func TestModel_ConfirmRequestDeclinedWhileQuitting(t *testing.T) {
	m, _ := CreateTestModel(t, nil)
	m.quitting = true

	reply := make(chan bool, 1)
	m.Update(confirmRequestMsg{message: "sure?", reply: reply})
	AssertModelField(t, "answer", <-reply, false)
	AssertModelField(t, "confirm nil", m.confirm == nil, true)
}
