package console

import (
	"strings"
	"time"

	"github.com/studiowebux/apiconsole/internal/types"
)

// TimeLayout is how the viewer renders timestamps
const TimeLayout = "Jan 2, 2006 15:04:05 MST"

// Field is one labelled line of the detail view
type Field struct {
	Label string
	Value string
}

// DetailViewer is a read-only projection of one resource. It issues no
// requests and holds its own copy of the record.
type DetailViewer struct {
	resource types.ApiResource
	loc      *time.Location
	onClose  func()
}

// NewDetailViewer snapshots r. A nil loc renders in the process's local zone.
func NewDetailViewer(r types.ApiResource, loc *time.Location, onClose func()) *DetailViewer {
	if loc == nil {
		loc = time.Local
	}
	return &DetailViewer{resource: r, loc: loc, onClose: onClose}
}

// Resource returns a copy of the viewed record
func (v *DetailViewer) Resource() types.ApiResource {
	return v.resource
}

func (v *DetailViewer) MethodBadge() types.Badge {
	return types.MethodBadge(v.resource.Method)
}

func (v *DetailViewer) StatusBadge() types.Badge {
	return types.StatusBadge(v.resource.Status)
}

// Description returns the description or a placeholder
func (v *DetailViewer) Description() string {
	if strings.TrimSpace(v.resource.Description) == "" {
		return MsgNoDescription
	}
	return v.resource.Description
}

// CreatedAt formats created_at in the viewer's zone
func (v *DetailViewer) CreatedAt() string {
	return v.resource.CreatedAt.Local(v.loc, TimeLayout)
}

// UpdatedAt formats updated_at in the viewer's zone
func (v *DetailViewer) UpdatedAt() string {
	return v.resource.UpdatedAt.Local(v.loc, TimeLayout)
}

// Fields lists the rendered fields in display order
func (v *DetailViewer) Fields() []Field {
	return []Field{
		{Label: "Name", Value: v.resource.Name},
		{Label: "Description", Value: v.Description()},
		{Label: "Endpoint", Value: v.resource.Endpoint},
		{Label: "Method", Value: string(v.resource.Method)},
		{Label: "Status", Value: string(v.resource.Status)},
		{Label: "Created", Value: v.CreatedAt()},
		{Label: "Updated", Value: v.UpdatedAt()},
		{Label: "ID", Value: v.resource.ID},
	}
}

// Close dismisses the viewer
func (v *DetailViewer) Close() {
	if v.onClose != nil {
		v.onClose()
	}
}
