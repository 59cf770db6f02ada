package console

import (
	"context"
	"sync"
	"time"

	"github.com/studiowebux/apiconsole/internal/types"
)

// DefaultPageSize matches the backend's default listing size
const DefaultPageSize = 10

// ListOptions configures a ListController
type ListOptions struct {
	Options
	PageSize int
	// Location is the zone detail viewers render timestamps in
	Location *time.Location
	// NoReload keeps mutations from re-fetching the page, for callers
	// that never render it
	NoReload bool
}

// ListView is a consistent snapshot of the controller for rendering
type ListView struct {
	Page types.Page[types.ApiResource]
	// Requested is the page of the latest issued load
	Requested int
	Loading   bool
	// Loaded is false until the first load succeeds
	Loaded  bool
	CanPrev bool
	CanNext bool
	Modal   ModalContext
}

// ListController owns the held page, pagination and the modal context.
// Loads are ordered by issuance: a result is applied only when no newer
// load was issued after it.
type ListController struct {
	mu        sync.Mutex
	svc       ResourceService
	notifier  Notifier
	confirmer Confirmer
	opts      ListOptions

	held      types.Page[types.ApiResource]
	requested int
	seq       uint64
	loading   bool
	loaded    bool
	modal     ModalContext
	deleting  map[string]bool
}

// NewListController creates a controller positioned on page 1.
// A nil confirmer declines every destructive action.
func NewListController(svc ResourceService, notifier Notifier, confirmer Confirmer, opts ListOptions) *ListController {
	if opts.PageSize <= 0 {
		opts.PageSize = DefaultPageSize
	}
	if confirmer == nil {
		confirmer = ConfirmerFunc(func(string) bool { return false })
	}
	return &ListController{
		svc:       svc,
		notifier:  notifierOrNop(notifier),
		confirmer: confirmer,
		opts:      opts,
		held:      types.Page[types.ApiResource]{Items: []types.ApiResource{}, Page: 1, TotalPages: 1},
		requested: 1,
		modal:     NoModal{},
		deleting:  make(map[string]bool),
	}
}

// PageSize returns the number of records requested per page
func (c *ListController) PageSize() int {
	return c.opts.PageSize
}

// View returns a snapshot for rendering
func (c *ListController) View() ListView {
	c.mu.Lock()
	defer c.mu.Unlock()
	return ListView{
		Page:      c.held.Clone(),
		Requested: c.requested,
		Loading:   c.loading,
		Loaded:    c.loaded,
		CanPrev:   c.canPrevLocked(),
		CanNext:   c.canNextLocked(),
		Modal:     c.modal,
	}
}

// Page returns a copy of the held page
func (c *ListController) Page() types.Page[types.ApiResource] {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.held.Clone()
}

// Modal returns the current modal context
func (c *ListController) Modal() ModalContext {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.modal
}

func (c *ListController) CanPrev() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.canPrevLocked()
}

func (c *ListController) CanNext() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.canNextLocked()
}

func (c *ListController) canPrevLocked() bool {
	return c.requested > 1
}

func (c *ListController) canNextLocked() bool {
	return c.requested < c.held.TotalPages
}

// Load fetches page and makes it the held page. A failure keeps the held
// page and reports MsgFetchFailed or the server's message. A result
// overtaken by a newer load is dropped with ErrStale.
func (c *ListController) Load(ctx context.Context, page int) (types.Page[types.ApiResource], error) {
	if page < 1 {
		page = 1
	}

	c.mu.Lock()
	c.seq++
	token := c.seq
	c.requested = page
	c.loading = true
	c.mu.Unlock()

	result, err := c.svc.ListResources(ctx, page, c.opts.PageSize)

	c.mu.Lock()
	if token != c.seq {
		c.mu.Unlock()
		c.opts.logger().Debug("discarding stale page", "page", page, "token", token)
		return types.Page[types.ApiResource]{}, ErrStale
	}
	c.loading = false

	if err != nil {
		// Fail-soft: the held page stays and so does its position
		c.requested = c.held.Page
		c.mu.Unlock()

		rerr := newRequestError("list", MsgFetchFailed, err)
		c.opts.logger().Warn("failed to fetch resources", "page", page, "error", err)
		c.notifier.Notify(NoticeFailure, rerr.Message)
		return types.Page[types.ApiResource]{}, rerr
	}

	if result.Items == nil {
		result.Items = []types.ApiResource{}
	}
	result.Page = page
	if result.TotalPages < 1 {
		result.TotalPages = 1
	}
	c.held = result.Clone()
	c.loaded = true
	c.mu.Unlock()

	c.opts.logger().Debug("page loaded", "page", page, "total_pages", result.TotalPages, "items", len(result.Items))
	return result, nil
}

// Reload re-fetches the page of the latest issued load
func (c *ListController) Reload(ctx context.Context) (types.Page[types.ApiResource], error) {
	c.mu.Lock()
	page := c.requested
	c.mu.Unlock()
	return c.Load(ctx, page)
}

// Next loads the following page; disabled on the last page
func (c *ListController) Next(ctx context.Context) (types.Page[types.ApiResource], error) {
	c.mu.Lock()
	if !c.canNextLocked() {
		c.mu.Unlock()
		return types.Page[types.ApiResource]{}, ErrNavigationDisabled
	}
	page := c.requested + 1
	c.mu.Unlock()
	return c.Load(ctx, page)
}

// Prev loads the preceding page; disabled on page 1
func (c *ListController) Prev(ctx context.Context) (types.Page[types.ApiResource], error) {
	c.mu.Lock()
	if !c.canPrevLocked() {
		c.mu.Unlock()
		return types.Page[types.ApiResource]{}, ErrNavigationDisabled
	}
	page := c.requested - 1
	c.mu.Unlock()
	return c.Load(ctx, page)
}

// RequestCreate opens an empty editor
func (c *ListController) RequestCreate() *ResourceEditor {
	return c.openEditor(nil)
}

// RequestEdit opens an editor pre-filled from r
func (c *ListController) RequestEdit(r types.ApiResource) *ResourceEditor {
	return c.openEditor(&r)
}

func (c *ListController) openEditor(original *types.ApiResource) *ResourceEditor {
	var ed *ResourceEditor
	ed = NewResourceEditor(c.svc, c.notifier, original, func(ctx context.Context, didMutate bool) {
		c.editorClosed(ctx, ed, didMutate)
	}, c.opts.Options)

	c.mu.Lock()
	c.modal = Editing{Editor: ed}
	c.mu.Unlock()
	return ed
}

// RequestView opens the detail viewer on a snapshot of r
func (c *ListController) RequestView(r types.ApiResource) *DetailViewer {
	var v *DetailViewer
	v = NewDetailViewer(r, c.opts.Location, func() {
		c.mu.Lock()
		defer c.mu.Unlock()
		if cur, ok := c.modal.(Viewing); ok && cur.Viewer == v {
			c.modal = NoModal{}
		}
	})

	c.mu.Lock()
	c.modal = Viewing{Viewer: v}
	c.mu.Unlock()
	return v
}

// OnEditorClosed clears the modal context and reloads the current page
// when the editor changed something
func (c *ListController) OnEditorClosed(ctx context.Context, didMutate bool) {
	c.editorClosed(ctx, nil, didMutate)
}

// editorClosed only clears the modal if it still belongs to ed; a nil ed
// clears unconditionally
func (c *ListController) editorClosed(ctx context.Context, ed *ResourceEditor, didMutate bool) {
	c.mu.Lock()
	if ed == nil {
		c.modal = NoModal{}
	} else if cur, ok := c.modal.(Editing); ok && cur.Editor == ed {
		c.modal = NoModal{}
	}
	c.mu.Unlock()

	if didMutate && !c.opts.NoReload {
		_, _ = c.Reload(ctx)
	}
}

// CloseModal dismisses whatever overlay is open without side effects
func (c *ListController) CloseModal(ctx context.Context) {
	switch m := c.Modal().(type) {
	case NoModal:
	case Viewing:
		m.Viewer.Close()
	case Editing:
		m.Editor.Cancel(ctx)
	}
}

// RequestDelete asks for confirmation, then deletes id. On success the
// current page is re-fetched as-is, even when that leaves it empty,
// unless NoReload is set.
func (c *ListController) RequestDelete(ctx context.Context, id string) error {
	if !c.confirmer.Confirm(MsgConfirmDelete) {
		return ErrNotConfirmed
	}

	c.mu.Lock()
	if c.deleting[id] {
		c.mu.Unlock()
		return ErrSubmitInFlight
	}
	c.deleting[id] = true
	name := ""
	for _, r := range c.held.Items {
		if r.ID == id {
			name = r.Name
			break
		}
	}
	c.mu.Unlock()

	err := c.svc.DeleteResource(ctx, id)

	c.mu.Lock()
	delete(c.deleting, id)
	c.mu.Unlock()

	if err != nil {
		rerr := newRequestError("delete", MsgDeleteFailed, err)
		c.opts.logger().Warn("failed to delete resource", "id", id, "error", err)
		c.opts.record(types.ActivityEntry{
			Operation: types.OpDeleteResource, TargetID: id, TargetName: name,
			Outcome: types.OutcomeFailure, Message: rerr.Message,
		})
		c.notifier.Notify(NoticeFailure, rerr.Message)
		return rerr
	}

	c.opts.logger().Info("resource deleted", "id", id)
	c.opts.record(types.ActivityEntry{
		Operation: types.OpDeleteResource, TargetID: id, TargetName: name,
		Outcome: types.OutcomeSuccess, Message: MsgDeleted,
	})
	c.notifier.Notify(NoticeSuccess, MsgDeleted)
	if !c.opts.NoReload {
		_, _ = c.Reload(ctx)
	}
	return nil
}
