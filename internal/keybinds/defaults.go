package keybinds

// NewDefaultRegistry creates a registry with all default keybindings
func NewDefaultRegistry() *Registry {
	r := NewRegistry()

	registerGlobalBindings(r)
	registerViewerBindings(r)
	registerTextInputBindings(r)
	registerListBindings(r)
	registerSearchBindings(r)
	registerDetailBindings(r)
	registerEditorBindings(r)
	registerProfileBindings(r)
	registerPasswordBindings(r)
	registerConfirmBindings(r)
	registerActivityBindings(r)
	registerHelpBindings(r)
	registerModalBindings(r)

	return r
}

func registerGlobalBindings(r *Registry) {
	r.Register(ContextGlobal, "ctrl+c", ActionQuitForce)
}

// registerViewerBindings covers scrollable overlays
func registerViewerBindings(r *Registry) {
	r.RegisterMultiple(ContextViewer, []string{"up", "k"}, ActionNavigateUp)
	r.RegisterMultiple(ContextViewer, []string{"down", "j"}, ActionNavigateDown)
	r.Register(ContextViewer, "pgup", ActionPageUp)
	r.Register(ContextViewer, "pgdown", ActionPageDown)
	r.RegisterSequence(ContextViewer, "gg", ActionGoToTop)
	r.Register(ContextViewer, "home", ActionGoToTop)
	r.RegisterMultiple(ContextViewer, []string{"G", "end"}, ActionGoToBottom)
}

func registerTextInputBindings(r *Registry) {
	r.Register(ContextTextInput, "backspace", ActionTextBackspace)
	r.Register(ContextTextInput, "delete", ActionTextDelete)
	r.Register(ContextTextInput, "left", ActionTextMoveLeft)
	r.Register(ContextTextInput, "right", ActionTextMoveRight)
	r.RegisterMultiple(ContextTextInput, []string{"home", "ctrl+a"}, ActionTextMoveHome)
	r.RegisterMultiple(ContextTextInput, []string{"end", "ctrl+e"}, ActionTextMoveEnd)
	r.RegisterMultiple(ContextTextInput, []string{"ctrl+v", "shift+insert", "super+v"}, ActionTextPaste)
	r.Register(ContextTextInput, "ctrl+w", ActionTextDeleteWord)
	r.Register(ContextTextInput, "ctrl+u", ActionTextClearBefore)
	r.Register(ContextTextInput, "ctrl+k", ActionTextClearAfter)
	r.Register(ContextTextInput, "enter", ActionTextSubmit)
	r.Register(ContextTextInput, "esc", ActionTextCancel)
}

func registerListBindings(r *Registry) {
	r.Register(ContextList, "q", ActionQuit)
	r.RegisterMultiple(ContextList, []string{"up", "k"}, ActionNavigateUp)
	r.RegisterMultiple(ContextList, []string{"down", "j"}, ActionNavigateDown)
	r.RegisterSequence(ContextList, "gg", ActionGoToTop)
	r.Register(ContextList, "home", ActionGoToTop)
	r.RegisterMultiple(ContextList, []string{"G", "end"}, ActionGoToBottom)
	r.RegisterMultiple(ContextList, []string{"right", "l", "n", "pgdown"}, ActionNextPage)
	r.RegisterMultiple(ContextList, []string{"left", "h", "p", "pgup"}, ActionPrevPage)
	r.RegisterMultiple(ContextList, []string{"r", "ctrl+r"}, ActionRefresh)
	r.Register(ContextList, "enter", ActionView)
	r.RegisterMultiple(ContextList, []string{"c", "+"}, ActionCreate)
	r.Register(ContextList, "e", ActionEdit)
	r.RegisterMultiple(ContextList, []string{"d", "delete"}, ActionDelete)
	r.Register(ContextList, "y", ActionCopyEndpoint)
	r.Register(ContextList, "/", ActionOpenSearch)
	r.Register(ContextList, "esc", ActionClearSearch)
	r.Register(ContextList, "P", ActionOpenProfile)
	r.Register(ContextList, "a", ActionOpenActivity)
	r.Register(ContextList, "?", ActionOpenHelp)
}

func registerSearchBindings(r *Registry) {
	r.Register(ContextSearch, "enter", ActionTextSubmit)
	r.Register(ContextSearch, "esc", ActionTextCancel)
}

func registerDetailBindings(r *Registry) {
	r.RegisterMultiple(ContextDetail, []string{"esc", "q", "enter"}, ActionCloseModal)
	r.Register(ContextDetail, "e", ActionEdit)
	r.Register(ContextDetail, "d", ActionDelete)
	r.Register(ContextDetail, "y", ActionCopyEndpoint)
}

func registerEditorBindings(r *Registry) {
	r.RegisterMultiple(ContextEditor, []string{"tab", "down"}, ActionNextField)
	r.RegisterMultiple(ContextEditor, []string{"shift+tab", "up"}, ActionPrevField)
	r.Register(ContextEditor, "ctrl+n", ActionNextOption)
	r.Register(ContextEditor, "ctrl+p", ActionPrevOption)
	r.RegisterMultiple(ContextEditor, []string{"ctrl+s", "enter"}, ActionSubmit)
	r.Register(ContextEditor, "esc", ActionCloseModal)
}

func registerProfileBindings(r *Registry) {
	r.RegisterMultiple(ContextProfile, []string{"esc", "q", "L"}, ActionOpenList)
	r.Register(ContextProfile, "e", ActionEditProfile)
	r.Register(ContextProfile, "p", ActionOpenPassword)
	r.Register(ContextProfile, "a", ActionOpenActivity)
	r.Register(ContextProfile, "?", ActionOpenHelp)
	r.RegisterMultiple(ContextProfile, []string{"tab", "down"}, ActionNextField)
	r.RegisterMultiple(ContextProfile, []string{"shift+tab", "up"}, ActionPrevField)
	r.RegisterMultiple(ContextProfile, []string{"ctrl+s", "enter"}, ActionSubmit)
}

func registerPasswordBindings(r *Registry) {
	r.RegisterMultiple(ContextPassword, []string{"tab", "down"}, ActionNextField)
	r.RegisterMultiple(ContextPassword, []string{"shift+tab", "up"}, ActionPrevField)
	r.RegisterMultiple(ContextPassword, []string{"ctrl+s", "enter"}, ActionSubmit)
	r.Register(ContextPassword, "esc", ActionCloseModal)
}

func registerConfirmBindings(r *Registry) {
	r.RegisterMultiple(ContextConfirm, []string{"y", "Y"}, ActionConfirm)
	r.RegisterMultiple(ContextConfirm, []string{"n", "N", "esc", "q"}, ActionCancel)
}

func registerActivityBindings(r *Registry) {
	r.RegisterMultiple(ContextActivity, []string{"esc", "q", "a"}, ActionCloseModal)
	r.Register(ContextActivity, "r", ActionRefresh)
	r.Register(ContextActivity, "C", ActionClearActivity)
}

func registerHelpBindings(r *Registry) {
	r.RegisterMultiple(ContextHelp, []string{"esc", "q", "?"}, ActionCloseModal)
}

func registerModalBindings(r *Registry) {
	r.Register(ContextModal, "esc", ActionCloseModal)
}
