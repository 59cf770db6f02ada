package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/studiowebux/apiconsole/internal/config"
	"github.com/studiowebux/apiconsole/internal/types"
)

// stubResources is an in-memory backend for the list and editor flows
type stubResources struct {
	mu      sync.Mutex
	items   []types.ApiResource
	listErr error
	nextID  int
	created []types.ResourceInput
	updated []string
	deleted []string
}

func (s *stubResources) ListResources(_ context.Context, page, pageSize int) (types.Page[types.ApiResource], error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.listErr != nil {
		return types.Page[types.ApiResource]{}, s.listErr
	}

	total := (len(s.items) + pageSize - 1) / pageSize
	if total < 1 {
		total = 1
	}
	start := min((page-1)*pageSize, len(s.items))
	end := min(start+pageSize, len(s.items))
	items := append([]types.ApiResource(nil), s.items[start:end]...)
	return types.Page[types.ApiResource]{Items: items, Page: page, TotalPages: total}, nil
}

func (s *stubResources) CreateResource(_ context.Context, in types.ResourceInput) (types.ApiResource, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextID++
	r := types.ApiResource{
		ID: fmt.Sprintf("new-%d", s.nextID), Name: in.Name, Description: in.Description,
		Endpoint: in.Endpoint, Method: in.Method, Status: types.StatusActive,
	}
	s.items = append(s.items, r)
	s.created = append(s.created, in)
	return r, nil
}

func (s *stubResources) UpdateResource(_ context.Context, id string, in types.ResourceInput) (types.ApiResource, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, r := range s.items {
		if r.ID == id {
			r.Name, r.Description, r.Endpoint, r.Method, r.Status = in.Name, in.Description, in.Endpoint, in.Method, in.Status
			s.items[i] = r
			s.updated = append(s.updated, id)
			return r, nil
		}
	}
	return types.ApiResource{}, errors.New("not found")
}

func (s *stubResources) DeleteResource(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, r := range s.items {
		if r.ID == id {
			s.items = append(s.items[:i], s.items[i+1:]...)
			s.deleted = append(s.deleted, id)
			return nil
		}
	}
	return errors.New("not found")
}

type stubProfiles struct {
	mu            sync.Mutex
	passwordErr   error
	passwordCalls int
}

func (s *stubProfiles) UpdateProfile(_ context.Context, in types.ProfileUpdate) (types.UserProfile, error) {
	return types.UserProfile{ID: "u1", Username: in.Username, Email: in.Email}, nil
}

func (s *stubProfiles) ChangePassword(context.Context, types.PasswordChange) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.passwordCalls++
	return s.passwordErr
}

type memStore struct {
	mu   sync.Mutex
	user types.UserProfile
}

func (s *memStore) CurrentUser() (types.UserProfile, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.user, s.user.ID != ""
}

func (s *memStore) SetUser(u types.UserProfile) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.user = u
	return nil
}

type memActivity struct {
	entries []types.ActivityEntry
	cleared bool
}

func (a *memActivity) Load(int) ([]types.ActivityEntry, error) { return a.entries, nil }

func (a *memActivity) Clear() error {
	a.entries = nil
	a.cleared = true
	return nil
}

type testEnv struct {
	resources *stubResources
	profiles  *stubProfiles
	store     *memStore
	activity  *memActivity
}

func sampleResources(n int) []types.ApiResource {
	names := []string{"Users", "Orders", "Payments", "Invoices", "Products", "Carts"}
	out := make([]types.ApiResource, n)
	for i := range out {
		name := names[i%len(names)]
		out[i] = types.ApiResource{
			ID: fmt.Sprintf("%s-%d", strings.ToLower(name), i), Name: name, Endpoint: "https://api.example.com/" + name,
			Method: types.MethodGet, Status: types.StatusActive,
		}
	}
	return out
}

// CreateTestModel creates a sized Model over in-memory collaborators with
// the first page already loaded
func CreateTestModel(t *testing.T, items []types.ApiResource) (*Model, *testEnv) {
	t.Helper()

	env := &testEnv{
		resources: &stubResources{items: items},
		profiles:  &stubProfiles{},
		store:     &memStore{user: types.UserProfile{ID: "u1", Username: "alice", Email: "alice@example.com"}},
		activity:  &memActivity{},
	}

	m, err := New(Deps{
		Resources: env.resources,
		Profiles:  env.profiles,
		Store:     env.store,
		Activity:  env.activity,
		Settings:  config.DefaultSettings(),
		Server:    "http://localhost:5000",
	})
	if err != nil {
		t.Fatalf("Failed to create test model: %v", err)
	}
	t.Cleanup(m.Cleanup)

	m.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	settle(t, &m, m.Init())
	return &m, env
}

// settle runs cmd and feeds its message back into the model. Commands
// returned by Update (notice timers) are not run.
func settle(t *testing.T, m *Model, cmd tea.Cmd) {
	t.Helper()
	if cmd == nil {
		return
	}
	if msg := cmd(); msg != nil {
		m.Update(msg)
	}
}

var namedKeys = map[string]tea.KeyType{
	"enter":     tea.KeyEnter,
	"esc":       tea.KeyEscape,
	"tab":       tea.KeyTab,
	"shift+tab": tea.KeyShiftTab,
	"backspace": tea.KeyBackspace,
	"up":        tea.KeyUp,
	"down":      tea.KeyDown,
	"left":      tea.KeyLeft,
	"right":     tea.KeyRight,
	"ctrl+c":    tea.KeyCtrlC,
	"ctrl+n":    tea.KeyCtrlN,
	"ctrl+s":    tea.KeyCtrlS,
	"ctrl+u":    tea.KeyCtrlU,
	"ctrl+w":    tea.KeyCtrlW,
	" ":         tea.KeySpace,
}

func keyPress(key string) tea.KeyMsg {
	if kt, ok := namedKeys[key]; ok {
		if kt == tea.KeySpace {
			return tea.KeyMsg{Type: kt, Runes: []rune{' '}}
		}
		return tea.KeyMsg{Type: kt}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(key)}
}

// press sends key and settles the command it produces
func press(t *testing.T, m *Model, key string) {
	t.Helper()
	settle(t, m, m.handleKeyPress(keyPress(key)))
}

// typeText sends each rune of text as its own key press
func typeText(t *testing.T, m *Model, text string) {
	t.Helper()
	for _, r := range text {
		press(t, m, string(r))
	}
}

// AssertModelField is a generic helper for checking model field values
func AssertModelField[T comparable](t *testing.T, fieldName string, got, want T) {
	t.Helper()
	if got != want {
		t.Errorf("%s = %v, want %v", fieldName, got, want)
	}
}
