package tui

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/studiowebux/apiconsole/internal/config"
	"github.com/studiowebux/apiconsole/internal/console"
	"github.com/studiowebux/apiconsole/internal/filter"
	"github.com/studiowebux/apiconsole/internal/keybinds"
	"github.com/studiowebux/apiconsole/internal/logging"
	"github.com/studiowebux/apiconsole/internal/types"
)

// Mode is the screen the console shows under any overlay
type Mode int

const (
	ModeList Mode = iota
	ModeProfile
)

// overlay is the topmost layer receiving keys
type overlay int

const (
	overlayNone overlay = iota
	overlayDetail
	overlayEditor
	overlayPassword
	overlayActivity
	overlayHelp
	overlayConfirm
)

// ActivityLog is the read side of the activity journal
type ActivityLog interface {
	Load(limit int) ([]types.ActivityEntry, error)
	Clear() error
}

// Deps are the collaborators the console runs against
type Deps struct {
	Resources console.ResourceService
	Profiles  console.ProfileService
	Store     console.ProfileStore
	// Recorder journals mutations; nil disables journaling
	Recorder console.Recorder
	// Activity is nil when the journal is disabled
	Activity ActivityLog
	Keybinds *keybinds.Registry
	Settings config.Settings
	Logger   *slog.Logger
	Location *time.Location
	// Server is shown in the header
	Server string
}

type confirmPrompt struct {
	message string
	reply   chan<- bool
}

// Model is the console state
type Model struct {
	ctx    context.Context
	cancel context.CancelFunc

	list      *console.ListController
	profile   *console.ProfileEditor
	notices   *noticeQueue
	confirmer *promptConfirmer
	keybinds  *keybinds.Registry
	activity  ActivityLog
	settings  config.Settings
	logger    *slog.Logger
	server    string
	location  *time.Location

	mode   Mode
	width  int
	height int

	// List screen
	cursor       int
	searchActive bool
	searchQuery  string
	searchCursor int

	// Form buffers; nil while the matching flow is closed
	editorForm   *FormState
	editorOwner  *console.ResourceEditor
	profileForm  *FormState
	passwordForm *FormState

	confirm *confirmPrompt

	showHelp bool
	helpView viewport.Model

	showActivity    bool
	activityView    viewport.Model
	activityEntries []types.ActivityEntry
	activityErr     string

	// Status bar
	statusMsg string
	errorMsg  string
	hintMsg   string
	noticeSeq int
	quitting  bool
}

// Messages produced by commands
type (
	pageLoadedMsg struct {
		err error
	}
	editorDoneMsg struct {
		editor *console.ResourceEditor
		err    error
	}
	deleteDoneMsg struct {
		id  string
		err error
	}
	profileSavedMsg struct {
		err error
	}
	passwordDoneMsg struct {
		err error
	}
	activityLoadedMsg struct {
		entries []types.ActivityEntry
		err     error
	}
	activityClearedMsg struct {
		err error
	}
	clearNoticeMsg struct {
		seq int
	}
)

// Init loads the first page
func (m *Model) Init() tea.Cmd {
	return m.loadPageCmd(1)
}

// Cleanup cancels outstanding requests and declines a pending confirm
func (m *Model) Cleanup() {
	if m.confirm != nil {
		m.confirm.reply <- false
		m.confirm = nil
	}
	m.confirmer.attach(nil)
	m.cancel()
}

// Update handles messages and updates the model
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		cmd = m.handleKeyPress(msg)

	case tea.MouseMsg:
		// keyboard only

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.updateViewports()

	case pageLoadedMsg:
		if errors.Is(msg.err, console.ErrStale) {
			return m, nil
		}
		m.clampCursor()
		cmd = m.flushNotices(msg.err)

	case editorDoneMsg:
		if msg.err == nil || errors.Is(msg.err, console.ErrFlowClosed) {
			m.dropEditorForm(msg.editor)
		}
		m.clampCursor()
		cmd = m.flushNotices(msg.err)

	case deleteDoneMsg:
		m.clampCursor()
		if errors.Is(msg.err, console.ErrNotConfirmed) || errors.Is(msg.err, console.ErrSubmitInFlight) {
			return m, nil
		}
		cmd = m.flushNotices(msg.err)

	case profileSavedMsg:
		if m.profile.Mode() == console.ProfileViewing {
			m.profileForm = nil
		}
		cmd = m.flushNotices(msg.err)

	case passwordDoneMsg:
		if m.profile.PasswordOpen() {
			// A rejected attempt clears the current password field
			m.passwordForm = newPasswordFormFocused(m.profile.PasswordFields(), m.passwordForm)
		} else {
			m.passwordForm = nil
		}
		cmd = m.flushNotices(msg.err)

	case activityLoadedMsg:
		if msg.err != nil {
			m.activityErr = msg.err.Error()
			m.logger.Warn("failed to load activity", "error", msg.err)
		} else {
			m.activityErr = ""
			m.activityEntries = msg.entries
		}
		m.updateActivityView()

	case activityClearedMsg:
		if msg.err != nil {
			m.setError("Failed to clear activity: " + msg.err.Error())
			cmd = m.clearNoticeAfter()
			break
		}
		m.setStatus("Activity cleared")
		cmd = tea.Batch(m.clearNoticeAfter(), m.loadActivityCmd())

	case confirmRequestMsg:
		if m.confirm != nil || m.quitting {
			msg.reply <- false
			return m, nil
		}
		m.confirm = &confirmPrompt{message: msg.message, reply: msg.reply}

	case clearNoticeMsg:
		if msg.seq == m.noticeSeq {
			m.statusMsg = ""
			m.errorMsg = ""
			m.hintMsg = ""
		}
	}

	return m, cmd
}

// View renders the model
func (m *Model) View() string {
	if m.width == 0 {
		return "Initializing..."
	}

	switch m.topOverlay() {
	case overlayConfirm:
		return m.renderConfirm()
	case overlayHelp:
		return m.renderHelp()
	case overlayActivity:
		return m.renderActivity()
	case overlayDetail, overlayEditor:
		return m.renderListModal()
	case overlayPassword:
		return m.renderPassword()
	}

	if m.mode == ModeProfile {
		return m.renderProfile()
	}
	return m.renderMain()
}

// topOverlay resolves which layer owns the keyboard
func (m *Model) topOverlay() overlay {
	switch {
	case m.confirm != nil:
		return overlayConfirm
	case m.showHelp:
		return overlayHelp
	case m.showActivity:
		return overlayActivity
	}

	if m.mode == ModeProfile {
		if m.profile.PasswordOpen() {
			return overlayPassword
		}
		return overlayNone
	}

	switch m.list.Modal().(type) {
	case console.Viewing:
		return overlayDetail
	case console.Editing:
		return overlayEditor
	default:
		return overlayNone
	}
}

// flushNotices moves queued notifications into the status bar. The last
// one wins; a transport failure adds a hint line.
func (m *Model) flushNotices(err error) tea.Cmd {
	pending := m.notices.drain()
	if len(pending) == 0 {
		return nil
	}

	last := pending[len(pending)-1]
	if last.kind == console.NoticeFailure {
		m.setError(last.text)
		var rerr *console.RequestError
		if errors.As(err, &rerr) {
			m.hintMsg = describeFailure(rerr.Err)
		}
	} else {
		m.setStatus(last.text)
	}
	return m.clearNoticeAfter()
}

func (m *Model) setStatus(text string) {
	m.noticeSeq++
	m.statusMsg = text
	m.errorMsg = ""
	m.hintMsg = ""
}

func (m *Model) setError(text string) {
	m.noticeSeq++
	m.errorMsg = text
	m.statusMsg = ""
	m.hintMsg = ""
}

func (m *Model) clearNoticeAfter() tea.Cmd {
	timeout := m.settings.NoticeTimeout()
	if timeout <= 0 {
		return nil
	}
	seq := m.noticeSeq
	return tea.Tick(timeout, func(time.Time) tea.Msg {
		return clearNoticeMsg{seq: seq}
	})
}

// visibleResources is the held page narrowed by the search query
func (m *Model) visibleResources() []types.ApiResource {
	items := m.list.Page().Items
	if m.searchQuery == "" {
		return items
	}
	return filter.MatchResources(items, m.searchQuery)
}

func (m *Model) selectedResource() (types.ApiResource, bool) {
	items := m.visibleResources()
	if m.cursor < 0 || m.cursor >= len(items) {
		return types.ApiResource{}, false
	}
	return items[m.cursor], true
}

func (m *Model) clampCursor() {
	n := len(m.visibleResources())
	if m.cursor >= n {
		m.cursor = n - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

// dropEditorForm forgets the form buffers of ed once it is gone
func (m *Model) dropEditorForm(ed *console.ResourceEditor) {
	if m.editorOwner != ed {
		return
	}
	if cur, ok := m.list.Modal().(console.Editing); ok && cur.Editor == ed {
		return
	}
	m.editorForm = nil
	m.editorOwner = nil
}

func newPasswordFormFocused(req types.PasswordChangeRequest, prev *FormState) *FormState {
	f := newPasswordForm(req)
	if prev != nil {
		f.focus = prev.GetFocus()
	}
	return f
}

func newModel(deps Deps) Model {
	ctx, cancel := context.WithCancel(context.Background())
	logger := logging.OrNop(deps.Logger)

	registry := deps.Keybinds
	if registry == nil {
		registry = keybinds.NewDefaultRegistry()
	}

	notices := &noticeQueue{}
	confirmer := &promptConfirmer{}
	opts := console.Options{Logger: logger, Recorder: deps.Recorder}

	return Model{
		ctx:          ctx,
		cancel:       cancel,
		list:         console.NewListController(deps.Resources, notices, confirmer, console.ListOptions{Options: opts, PageSize: deps.Settings.PageSize, Location: deps.Location}),
		profile:      console.NewProfileEditor(deps.Profiles, deps.Store, notices, opts),
		notices:      notices,
		confirmer:    confirmer,
		keybinds:     registry,
		activity:     deps.Activity,
		settings:     deps.Settings,
		logger:       logger,
		server:       deps.Server,
		location:     deps.Location,
		mode:         ModeList,
		helpView:     viewport.New(80, 20),
		activityView: viewport.New(80, 20),
	}
}

const activityTimeLayout = "2006-01-02 15:04:05"

// zone is where timestamps render; nil means the local zone
func (m *Model) zone() *time.Location {
	if m.location == nil {
		return time.Local
	}
	return m.location
}
