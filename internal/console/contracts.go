package console

import (
	"context"
	"log/slog"

	"github.com/studiowebux/apiconsole/internal/logging"
	"github.com/studiowebux/apiconsole/internal/types"
)

// NoticeKind is the flavour of a user notification
type NoticeKind int

const (
	NoticeSuccess NoticeKind = iota
	NoticeFailure
)

func (k NoticeKind) String() string {
	if k == NoticeSuccess {
		return "success"
	}
	return "failure"
}

// Notifier shows fire-and-forget messages to the user
type Notifier interface {
	Notify(kind NoticeKind, message string)
}

// NotifierFunc adapts a function to Notifier
type NotifierFunc func(kind NoticeKind, message string)

// Notify calls f
func (f NotifierFunc) Notify(kind NoticeKind, message string) { f(kind, message) }

// Confirmer asks the user a yes/no question and blocks until answered
type Confirmer interface {
	Confirm(message string) bool
}

// ConfirmerFunc adapts a function to Confirmer
type ConfirmerFunc func(message string) bool

// Confirm calls f
func (f ConfirmerFunc) Confirm(message string) bool { return f(message) }

// ResourceService is the backend contract for API resources
type ResourceService interface {
	ListResources(ctx context.Context, page, pageSize int) (types.Page[types.ApiResource], error)
	CreateResource(ctx context.Context, in types.ResourceInput) (types.ApiResource, error)
	UpdateResource(ctx context.Context, id string, in types.ResourceInput) (types.ApiResource, error)
	DeleteResource(ctx context.Context, id string) error
}

// ProfileService is the backend contract for the signed-in user
type ProfileService interface {
	UpdateProfile(ctx context.Context, in types.ProfileUpdate) (types.UserProfile, error)
	ChangePassword(ctx context.Context, in types.PasswordChange) error
}

// ProfileStore is the session capability holding the current user
type ProfileStore interface {
	CurrentUser() (types.UserProfile, bool)
	SetUser(u types.UserProfile) error
}

// Recorder appends issued mutations to the activity journal
type Recorder interface {
	Record(entry types.ActivityEntry) error
}

// Options carries the optional collaborators shared by all controllers
type Options struct {
	Logger   *slog.Logger
	Recorder Recorder
}

func (o Options) logger() *slog.Logger {
	return logging.OrNop(o.Logger)
}

// record journals a mutation; journal failures are logged, never surfaced
func (o Options) record(entry types.ActivityEntry) {
	if o.Recorder == nil {
		return
	}
	if err := o.Recorder.Record(entry); err != nil {
		o.logger().Warn("failed to record activity", "operation", entry.Operation, "error", err)
	}
}

type nopNotifier struct{}

func (nopNotifier) Notify(NoticeKind, string) {}

func notifierOrNop(n Notifier) Notifier {
	if n == nil {
		return nopNotifier{}
	}
	return n
}
