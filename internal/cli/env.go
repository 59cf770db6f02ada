package cli

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"text/tabwriter"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/studiowebux/apiconsole/internal/activity"
	"github.com/studiowebux/apiconsole/internal/backend"
	"github.com/studiowebux/apiconsole/internal/config"
	"github.com/studiowebux/apiconsole/internal/console"
	"github.com/studiowebux/apiconsole/internal/logging"
	"github.com/studiowebux/apiconsole/internal/session"
	"gopkg.in/yaml.v3"
)

// Output formats accepted by --output
const (
	OutputText = "text"
	OutputJSON = "json"
	OutputYAML = "yaml"
)

// refreshSkew refreshes access tokens this long before they expire
const refreshSkew = 30 * time.Second

// GlobalOptions are the persistent flags shared by every command
type GlobalOptions struct {
	Server    string
	Output    string
	LogLevel  string
	LogFormat string
}

// Env is what a command runs against: settings, the session and the
// terminal streams
type Env struct {
	Settings config.Settings
	Session  *session.Manager
	Logger   *slog.Logger
	Output   string

	In  io.Reader
	Out io.Writer
	Err io.Writer

	// stdin is built once over In; every line read goes through it
	stdin *bufio.Reader

	// serverFlag is set when --server overrides the session's backend
	serverFlag bool
	closers    []func() error

	store   *activity.Manager
	journal *activity.Journal
}

// Setup initializes the config directory, loads settings and the session,
// and applies flag overrides on top of the settings file
func Setup(opts GlobalOptions) (*Env, error) {
	if err := config.Initialize(); err != nil {
		return nil, fmt.Errorf("failed to initialize config: %w", err)
	}

	settings, err := config.LoadSettings(config.SettingsFile)
	if err != nil {
		return nil, err
	}
	return newEnv(opts, settings, session.NewManager(config.SessionFile))
}

func newEnv(opts GlobalOptions, settings config.Settings, sess *session.Manager) (*Env, error) {
	if opts.Server != "" {
		settings.Server = opts.Server
	}
	if opts.LogLevel != "" {
		settings.LogLevel = opts.LogLevel
	}
	if opts.LogFormat != "" {
		settings.LogFormat = opts.LogFormat
	}
	if err := settings.Validate(); err != nil {
		return nil, fmt.Errorf("invalid settings: %w", err)
	}

	output := opts.Output
	switch output {
	case "":
		output = OutputText
	case OutputText, OutputJSON, OutputYAML:
	default:
		return nil, fmt.Errorf("unknown output format %q (want text, json or yaml)", output)
	}

	logger := logging.New(logging.Config{
		Level:  logging.ParseLevel(settings.LogLevel),
		Format: logging.ParseFormat(settings.LogFormat),
		Output: os.Stderr,
	})

	if err := sess.Load(); err != nil {
		logger.Warn("ignoring unreadable session", "error", err)
	}

	return &Env{
		Settings:   settings,
		Session:    sess,
		Logger:     logger,
		Output:     output,
		In:         os.Stdin,
		Out:        os.Stdout,
		Err:        os.Stderr,
		serverFlag: opts.Server != "",
	}, nil
}

// Close releases what the commands opened
func (e *Env) Close() error {
	var errs []error
	for i := len(e.closers) - 1; i >= 0; i-- {
		errs = append(errs, e.closers[i]())
	}
	e.closers = nil
	return errors.Join(errs...)
}

// Server is the backend commands talk to. A signed-in session keeps its
// own backend unless --server was given.
func (e *Env) Server() string {
	if !e.serverFlag && e.Session.Active() && e.Session.Server() != "" {
		return e.Session.Server()
	}
	return e.Settings.Server
}

func (e *Env) client() (*backend.Client, error) {
	return backend.New(e.Server(), e.Session, backend.Options{
		Timeout: e.Settings.Timeout(),
		TLS:     e.Settings.TLSConfig(),
		Logger:  e.Logger,
	})
}

// authedClient returns a client for the signed-in session, refreshing the
// access token first when it is about to expire
func (e *Env) authedClient(ctx context.Context) (*backend.Client, error) {
	if !e.Session.Active() {
		return nil, session.ErrNoSession
	}
	c, err := e.client()
	if err != nil {
		return nil, err
	}
	if err := e.refresh(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

func (e *Env) refresh(ctx context.Context, c *backend.Client) error {
	if !e.Session.NeedsRefresh(time.Now(), refreshSkew) || e.Session.RefreshToken() == "" {
		return nil
	}

	token, err := c.Refresh(ctx, e.Session.RefreshToken())
	if err != nil {
		if backend.IsUnauthorized(err) {
			return fmt.Errorf("session expired: run 'apiconsole login' again: %w", err)
		}
		// The stale token may still be accepted; let the request decide
		e.Logger.Warn("token refresh failed", "error", err)
		return nil
	}
	e.Logger.Debug("access token refreshed")
	return e.Session.SetAccessToken(token)
}

// openJournal opens the activity journal once; nil when it is disabled
func (e *Env) openJournal() (*activity.Manager, *activity.Journal, error) {
	if !e.Settings.ActivityOn() {
		return nil, nil, nil
	}
	if e.store != nil {
		return e.store, e.journal, nil
	}

	store, err := activity.NewManager(config.DatabasePath)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open activity journal: %w", err)
	}
	e.closers = append(e.closers, store.Close)

	user := func() string {
		u, _ := e.Session.CurrentUser()
		return u.Username
	}
	e.store = store
	e.journal = activity.NewJournal(store, e.Server(), user, e.Logger)
	return e.store, e.journal, nil
}

// options builds the controller options, journaling when enabled
func (e *Env) options() console.Options {
	opts := console.Options{Logger: e.Logger}
	_, journal, err := e.openJournal()
	if err != nil {
		// Commands still run without the journal
		e.Logger.Warn("activity journal unavailable", "error", err)
		return opts
	}
	if journal != nil {
		opts.Recorder = journal
	}
	return opts
}

var (
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	failureStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
)

// notifier prints controller notifications on stderr
func (e *Env) notifier() console.Notifier {
	return console.NotifierFunc(func(kind console.NoticeKind, message string) {
		if kind == console.NoticeFailure {
			fmt.Fprintln(e.Err, failureStyle.Render("Error: "+message))
			return
		}
		fmt.Fprintln(e.Err, successStyle.Render(message))
	})
}

// print writes v in the selected format; text mode calls text instead
func (e *Env) print(v any, text func(w *tabwriter.Writer)) error {
	switch e.Output {
	case OutputJSON:
		enc := json.NewEncoder(e.Out)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	case OutputYAML:
		data, err := yaml.Marshal(v)
		if err != nil {
			return fmt.Errorf("failed to marshal YAML: %w", err)
		}
		_, err = e.Out.Write(data)
		return err
	default:
		w := tabwriter.NewWriter(e.Out, 0, 0, 2, ' ', 0)
		text(w)
		return w.Flush()
	}
}

// lineReader returns the reader shared by every stdin read
func (e *Env) lineReader() *bufio.Reader {
	if e.stdin == nil {
		e.stdin = bufio.NewReader(e.In)
	}
	return e.stdin
}

// interactive reports whether stdin is a terminal (not piped)
func (e *Env) interactive() bool {
	f, ok := e.In.(*os.File)
	if !ok {
		return false
	}
	stat, err := f.Stat()
	if err != nil {
		return false
	}
	return (stat.Mode() & os.ModeCharDevice) != 0
}
