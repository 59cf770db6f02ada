package tui

// UI Layout Constants
// These constants define spacing, margins, and dimensions for the TUI layout

const (
	// Modal Dimensions - Standard margins for modal dialogs
	ModalWidthMargin       = 6  // Standard horizontal margin (m.width - 6)
	ModalHeightMargin      = 3  // Standard vertical margin (m.height - 3)
	ModalWidthMarginNarrow = 10 // Narrow horizontal margin for focused modals (m.width - 10)
	ModalMaxWidth          = 90 // Forms and detail views stop growing past this width

	// Content Area Offsets
	ContentOffsetHelp    = 10 // m.height - 10 for help and activity viewports
	MainViewHeightOffset = 5  // header + pagination + status + borders

	// Layout Margins
	MinimalBorderMargin = 2  // m.width - 2 for minimal borders
	HelpViewWidthOffset = 14 // m.width - 14 for viewport width

	// Resource table columns
	ListCursorWidth      = 2
	ListMethodWidth      = 7
	ListStatusWidth      = 8
	ListMinNameWidth     = 12
	ListNameWidthPercent = 30
)
