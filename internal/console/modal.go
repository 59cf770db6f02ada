package console

// ModalContext is the single overlay owned by the list controller. It is
// one of NoModal, Viewing or Editing; switch on the concrete type.
type ModalContext interface {
	isModalContext()
}

// NoModal means no overlay is open
type NoModal struct{}

// Viewing means the detail viewer is open
type Viewing struct {
	Viewer *DetailViewer
}

// Editing means the resource editor is open, creating when it has no original
type Editing struct {
	Editor *ResourceEditor
}

func (NoModal) isModalContext() {}
func (Viewing) isModalContext() {}
func (Editing) isModalContext() {}

// Creating reports whether the editor is in create mode
func (e Editing) Creating() bool {
	return e.Editor.Mode() == ModeCreate
}

// ModalName returns a short label for m
func ModalName(m ModalContext) string {
	switch m := m.(type) {
	case NoModal:
		return "none"
	case Viewing:
		return "viewing"
	case Editing:
		if m.Creating() {
			return "creating"
		}
		return "editing"
	default:
		return "none"
	}
}
