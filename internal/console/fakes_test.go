package console

import (
	"context"
	"fmt"
	"sync"

	"github.com/studiowebux/apiconsole/internal/types"
)

type notice struct {
	kind    NoticeKind
	message string
}

// noticeLog records notifications
type noticeLog struct {
	mu      sync.Mutex
	notices []notice
}

func (n *noticeLog) Notify(kind NoticeKind, message string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.notices = append(n.notices, notice{kind, message})
}

func (n *noticeLog) all() []notice {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]notice(nil), n.notices...)
}

func (n *noticeLog) last() notice {
	all := n.all()
	if len(all) == 0 {
		return notice{kind: -1}
	}
	return all[len(all)-1]
}

// fakeResources is an in-memory ResourceService paging a slice of records
type fakeResources struct {
	mu       sync.Mutex
	records  []types.ApiResource
	pageSize int

	listErr   error
	createErr error
	updateErr error
	deleteErr error

	// gates block ListResources for a page until closed
	gates map[int]chan struct{}

	listCalls   []int
	created     []types.ResourceInput
	updated     []types.ResourceInput
	deletedIDs  []string
	nextID      int
	updateEntry chan struct{}
	updateGate  chan struct{}
}

func newFakeResources(n int) *fakeResources {
	f := &fakeResources{pageSize: DefaultPageSize, gates: map[int]chan struct{}{}}
	for i := 1; i <= n; i++ {
		f.records = append(f.records, types.ApiResource{
			ID:       fmt.Sprintf("r%d", i),
			Name:     fmt.Sprintf("api-%d", i),
			Endpoint: fmt.Sprintf("https://example.com/%d", i),
			Method:   types.MethodGet,
			Status:   types.StatusActive,
		})
	}
	return f
}

func (f *fakeResources) gate(page int) chan struct{} {
	f.mu.Lock()
	defer f.mu.Unlock()
	ch := make(chan struct{})
	f.gates[page] = ch
	return ch
}

func (f *fakeResources) ListResources(ctx context.Context, page, pageSize int) (types.Page[types.ApiResource], error) {
	f.mu.Lock()
	f.listCalls = append(f.listCalls, page)
	gate := f.gates[page]
	f.mu.Unlock()

	if gate != nil {
		<-gate
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	if f.listErr != nil {
		return types.Page[types.ApiResource]{}, f.listErr
	}

	total := (len(f.records) + pageSize - 1) / pageSize
	start := (page - 1) * pageSize
	items := []types.ApiResource{}
	if start < len(f.records) {
		end := start + pageSize
		if end > len(f.records) {
			end = len(f.records)
		}
		items = append(items, f.records[start:end]...)
	}
	return types.Page[types.ApiResource]{Items: items, Page: page, TotalPages: total}, nil
}

func (f *fakeResources) CreateResource(ctx context.Context, in types.ResourceInput) (types.ApiResource, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.created = append(f.created, in)
	if f.createErr != nil {
		return types.ApiResource{}, f.createErr
	}
	f.nextID++
	r := types.ApiResource{
		ID:          fmt.Sprintf("new%d", f.nextID),
		Name:        in.Name,
		Description: in.Description,
		Endpoint:    in.Endpoint,
		Method:      in.Method,
		Status:      types.StatusActive,
	}
	f.records = append(f.records, r)
	return r, nil
}

func (f *fakeResources) UpdateResource(ctx context.Context, id string, in types.ResourceInput) (types.ApiResource, error) {
	f.mu.Lock()
	entry, gate := f.updateEntry, f.updateGate
	f.mu.Unlock()
	if entry != nil {
		entry <- struct{}{}
	}
	if gate != nil {
		<-gate
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	f.updated = append(f.updated, in)
	if f.updateErr != nil {
		return types.ApiResource{}, f.updateErr
	}
	for i, r := range f.records {
		if r.ID == id {
			r.Name, r.Description, r.Endpoint, r.Method, r.Status = in.Name, in.Description, in.Endpoint, in.Method, in.Status
			f.records[i] = r
			return r, nil
		}
	}
	return types.ApiResource{}, fmt.Errorf("not found")
}

func (f *fakeResources) DeleteResource(ctx context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.deletedIDs = append(f.deletedIDs, id)
	if f.deleteErr != nil {
		return f.deleteErr
	}
	for i, r := range f.records {
		if r.ID == id {
			f.records = append(f.records[:i], f.records[i+1:]...)
			return nil
		}
	}
	return nil
}

func (f *fakeResources) listCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.listCalls)
}

// fakeProfiles is an in-memory ProfileService
type fakeProfiles struct {
	mu sync.Mutex

	updateErr   error
	passwordErr error
	// normalize is applied to the returned profile
	normalize func(types.UserProfile) types.UserProfile

	updates   []types.ProfileUpdate
	passwords []types.PasswordChange

	updateEntry   chan struct{}
	updateGate    chan struct{}
	passwordEntry chan struct{}
	passwordGate  chan struct{}
}

func (f *fakeProfiles) UpdateProfile(ctx context.Context, in types.ProfileUpdate) (types.UserProfile, error) {
	f.mu.Lock()
	entry, gate := f.updateEntry, f.updateGate
	f.mu.Unlock()
	if entry != nil {
		entry <- struct{}{}
	}
	if gate != nil {
		<-gate
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	f.updates = append(f.updates, in)
	if f.updateErr != nil {
		return types.UserProfile{}, f.updateErr
	}
	u := types.UserProfile{ID: "u1", Username: in.Username, Email: in.Email}
	if f.normalize != nil {
		u = f.normalize(u)
	}
	return u, nil
}

func (f *fakeProfiles) ChangePassword(ctx context.Context, in types.PasswordChange) error {
	f.mu.Lock()
	entry, gate := f.passwordEntry, f.passwordGate
	f.mu.Unlock()
	if entry != nil {
		entry <- struct{}{}
	}
	if gate != nil {
		<-gate
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	f.passwords = append(f.passwords, in)
	return f.passwordErr
}

func (f *fakeProfiles) passwordCalls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.passwords)
}

// memStore is an in-memory ProfileStore
type memStore struct {
	mu   sync.Mutex
	user *types.UserProfile
}

func newMemStore(u types.UserProfile) *memStore {
	return &memStore{user: &u}
}

func (s *memStore) CurrentUser() (types.UserProfile, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.user == nil {
		return types.UserProfile{}, false
	}
	return *s.user, true
}

func (s *memStore) SetUser(u types.UserProfile) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.user = &u
	return nil
}

// memRecorder collects journal entries
type memRecorder struct {
	mu      sync.Mutex
	entries []types.ActivityEntry
}

func (r *memRecorder) Record(e types.ActivityEntry) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries = append(r.entries, e)
	return nil
}

func (r *memRecorder) all() []types.ActivityEntry {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]types.ActivityEntry(nil), r.entries...)
}

func confirmWith(answer bool, asked *[]string) Confirmer {
	return ConfirmerFunc(func(msg string) bool {
		if asked != nil {
			*asked = append(*asked, msg)
		}
		return answer
	})
}
