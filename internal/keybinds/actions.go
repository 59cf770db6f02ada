package keybinds

// Action represents a user action that can be triggered by a keybinding
type Action string

// Context represents the context in which keybindings are active
type Context string

const (
	ContextGlobal    Context = "global"     // Available everywhere
	ContextList      Context = "list"       // Resource list screen
	ContextSearch    Context = "search"     // Search input on the list
	ContextDetail    Context = "detail"     // Detail viewer overlay
	ContextEditor    Context = "editor"     // Resource editor overlay
	ContextProfile   Context = "profile"    // Profile screen
	ContextPassword  Context = "password"   // Password change overlay
	ContextConfirm   Context = "confirm"    // Confirmation dialogs
	ContextActivity  Context = "activity"   // Activity journal overlay
	ContextHelp      Context = "help"       // Help overlay
	ContextModal     Context = "modal"      // Generic modal (applies to all overlays)
	ContextTextInput Context = "text_input" // Text input (applies to all text inputs)
	ContextViewer    Context = "viewer"     // Scrollable content
)

// Contexts lists every known context
var Contexts = []Context{
	ContextGlobal, ContextList, ContextSearch, ContextDetail, ContextEditor,
	ContextProfile, ContextPassword, ContextConfirm, ContextActivity, ContextHelp,
	ContextModal, ContextTextInput, ContextViewer,
}

const (
	// Global
	ActionQuit      Action = "quit"
	ActionQuitForce Action = "quit_force"

	// Navigation
	ActionNavigateUp     Action = "navigate_up"
	ActionNavigateDown   Action = "navigate_down"
	ActionGoToTop        Action = "go_to_top"
	ActionGoToBottom     Action = "go_to_bottom"
	ActionGoToTopPrepare Action = "go_to_top_prepare" // First 'g' in 'gg'
	ActionPageUp         Action = "page_up"
	ActionPageDown       Action = "page_down"

	// Resource list
	ActionNextPage     Action = "next_page"
	ActionPrevPage     Action = "prev_page"
	ActionRefresh      Action = "refresh"
	ActionView         Action = "view"
	ActionCreate       Action = "create"
	ActionEdit         Action = "edit"
	ActionDelete       Action = "delete"
	ActionCopyEndpoint Action = "copy_endpoint"
	ActionOpenSearch   Action = "open_search"
	ActionClearSearch  Action = "clear_search"

	// Screen and overlay launchers
	ActionOpenProfile  Action = "open_profile"
	ActionOpenList     Action = "open_list"
	ActionOpenActivity Action = "open_activity"
	ActionOpenHelp     Action = "open_help"

	// Forms
	ActionNextField  Action = "next_field"
	ActionPrevField  Action = "prev_field"
	ActionNextOption Action = "next_option"
	ActionPrevOption Action = "prev_option"
	ActionSubmit     Action = "submit"

	// Profile
	ActionEditProfile  Action = "edit_profile"
	ActionOpenPassword Action = "open_password"

	// Activity
	ActionClearActivity Action = "clear_activity"

	// Modal
	ActionCloseModal Action = "close_modal"
	ActionConfirm    Action = "confirm"
	ActionCancel     Action = "cancel"

	// Text input
	ActionTextBackspace   Action = "text_backspace"
	ActionTextDelete      Action = "text_delete"
	ActionTextMoveLeft    Action = "text_move_left"
	ActionTextMoveRight   Action = "text_move_right"
	ActionTextMoveHome    Action = "text_move_home"
	ActionTextMoveEnd     Action = "text_move_end"
	ActionTextPaste       Action = "text_paste"
	ActionTextDeleteWord  Action = "text_delete_word"
	ActionTextClearBefore Action = "text_clear_before"
	ActionTextClearAfter  Action = "text_clear_after"
	ActionTextSubmit      Action = "text_submit"
	ActionTextCancel      Action = "text_cancel"
)

// knownActions is used to reject typos in keybinds.json
var knownActions = map[Action]bool{
	ActionQuit: true, ActionQuitForce: true,
	ActionNavigateUp: true, ActionNavigateDown: true, ActionGoToTop: true, ActionGoToBottom: true,
	ActionGoToTopPrepare: true, ActionPageUp: true, ActionPageDown: true,
	ActionNextPage: true, ActionPrevPage: true, ActionRefresh: true, ActionView: true,
	ActionCreate: true, ActionEdit: true, ActionDelete: true, ActionCopyEndpoint: true,
	ActionOpenSearch: true, ActionClearSearch: true,
	ActionOpenProfile: true, ActionOpenList: true, ActionOpenActivity: true, ActionOpenHelp: true,
	ActionNextField: true, ActionPrevField: true, ActionNextOption: true, ActionPrevOption: true,
	ActionSubmit: true, ActionEditProfile: true, ActionOpenPassword: true, ActionClearActivity: true,
	ActionCloseModal: true, ActionConfirm: true, ActionCancel: true,
	ActionTextBackspace: true, ActionTextDelete: true, ActionTextMoveLeft: true, ActionTextMoveRight: true,
	ActionTextMoveHome: true, ActionTextMoveEnd: true, ActionTextPaste: true, ActionTextDeleteWord: true,
	ActionTextClearBefore: true, ActionTextClearAfter: true, ActionTextSubmit: true, ActionTextCancel: true,
}

// IsKnown reports whether a is a defined action
func (a Action) IsKnown() bool {
	return knownActions[a]
}
