/*
Package tui implements the interactive terminal console.

# Architecture

The TUI follows the Bubble Tea framework's Model-Update-View pattern:
  - Model: screen, overlays, form buffers and status bar
  - Update: processes keys and command results
  - View: renders the topmost layer

Resource state does not live here. The list, editor, viewer and profile
flows are owned by the console package controllers; the model renders
their snapshots and forwards user intent to them.

# Key Components

  - model.go: Model struct, messages, Update/View and overlay resolution
  - keys.go: keyboard routing through the keybinds registry
  - actions.go: tea.Cmd wrappers around controller calls
  - render.go, modals.go: list, profile and overlay rendering
  - form_state.go: input buffers for the editor, profile and password forms
  - notify.go: notification queue and the blocking confirm bridge

# Overlays

The list screen derives its overlay from the list controller's modal
context (detail viewer or editor). Confirm, help and activity overlays sit
above it; the password overlay belongs to the profile screen.

# Threading Model

Controller calls block on the network, so they run inside tea.Cmd
goroutines. Notifications raised there are queued and drained when the
call's completion message reaches Update. A delete parks its goroutine in
the confirmer until the confirm overlay is answered.
*/
package tui
