// Package console holds the client-side state machines of the API console:
// the paginated resource list with its modal context, the resource editor,
// the read-only detail viewer and the profile/password editor.
//
// Controllers are safe for concurrent use. Backend calls block the calling
// goroutine; interactive front ends run them off the UI loop. Validation and
// request failures are always reported through the Notifier before the
// error is returned, so callers only need the error for flow control.
package console
