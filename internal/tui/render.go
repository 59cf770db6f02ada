package tui

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/charmbracelet/lipgloss"
	"github.com/studiowebux/apiconsole/internal/console"
	"github.com/studiowebux/apiconsole/internal/keybinds"
	"github.com/studiowebux/apiconsole/internal/types"
)

// Adaptive color definitions for light/dark terminal support
var (
	colorGreen  = lipgloss.AdaptiveColor{Light: "#006400", Dark: "#00ff00"}
	colorRed    = lipgloss.AdaptiveColor{Light: "#8b0000", Dark: "#ff5f5f"}
	colorYellow = lipgloss.AdaptiveColor{Light: "#b8860b", Dark: "#ffff00"}
	colorBlue   = lipgloss.AdaptiveColor{Light: "#00008b", Dark: "#5f87ff"}
	colorGray   = lipgloss.AdaptiveColor{Light: "#555555", Dark: "#888888"}
	colorCyan   = lipgloss.AdaptiveColor{Light: "#008b8b", Dark: "#00ffff"}
)

// Style definitions
var (
	styleTitle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorCyan)

	styleSelected = lipgloss.NewStyle().
			Background(lipgloss.AdaptiveColor{Light: "#d3d3d3", Dark: "#3a3a3a"}).
			Foreground(lipgloss.AdaptiveColor{Light: "#000000", Dark: "#ffffff"})

	styleSuccess = lipgloss.NewStyle().
			Foreground(colorGreen)

	styleError = lipgloss.NewStyle().
			Foreground(colorRed)

	styleWarning = lipgloss.NewStyle().
			Foreground(colorYellow)

	styleSubtle = lipgloss.NewStyle().
			Foreground(colorGray)

	styleLabel = lipgloss.NewStyle().
			Bold(true)
)

// badgeStyle colors method and status labels by their badge class
func badgeStyle(b types.Badge) lipgloss.Style {
	base := lipgloss.NewStyle().Bold(true)
	switch b {
	case types.BadgeInfo:
		return base.Foreground(colorBlue)
	case types.BadgeSuccess:
		return base.Foreground(colorGreen)
	case types.BadgeWarning:
		return base.Foreground(colorYellow)
	case types.BadgeDanger:
		return base.Foreground(colorRed)
	default:
		return base.Foreground(colorGray)
	}
}

func renderMethod(m types.Method) string {
	return badgeStyle(types.MethodBadge(m)).Render(string(m))
}

func renderStatus(s types.Status) string {
	return badgeStyle(types.StatusBadge(s)).Render(string(s))
}

// renderMain renders the resource list screen
func (m *Model) renderMain() string {
	view := m.list.View()

	header := m.renderHeader("APIs", view.Loading)
	body := m.renderResourceTable(view, m.width-4, m.height-MainViewHeightOffset)

	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(colorGray).
		Width(m.width - MinimalBorderMargin).
		Height(m.height - MainViewHeightOffset + 1).
		Render(body)

	return lipgloss.JoinVertical(
		lipgloss.Left,
		header,
		box,
		m.renderPagination(view),
		m.renderStatusBar(),
	)
}

func (m *Model) renderHeader(screen string, loading bool) string {
	left := styleTitle.Render("API Console") + styleSubtle.Render(" / "+screen)
	if loading {
		left += " " + styleWarning.Render("Loading...")
	}

	right := styleSubtle.Render(m.server)
	if user := m.profile.Profile(); user.Username != "" {
		right = styleSubtle.Render(user.Username+" @ ") + right
	}

	spacing := max(m.width-lipgloss.Width(left)-lipgloss.Width(right), 1)
	return left + strings.Repeat(" ", spacing) + right
}

// renderResourceTable lists the visible rows of the held page
func (m *Model) renderResourceTable(view console.ListView, width, height int) string {
	if !view.Loaded {
		if view.Loading {
			return styleSubtle.Render("Loading APIs...")
		}
		return styleSubtle.Render("APIs not loaded yet. Press " + m.keybinds.GetBindingString(keybinds.ContextList, keybinds.ActionRefresh) + " to retry.")
	}

	if view.Page.Empty() {
		return styleSubtle.Render(console.MsgNoRecords)
	}

	items := m.visibleResources()
	if len(items) == 0 {
		return styleSubtle.Render(fmt.Sprintf("No APIs on this page match %q", m.searchQuery))
	}

	nameWidth := max(width*ListNameWidthPercent/100, ListMinNameWidth)
	endpointWidth := max(width-nameWidth-ListMethodWidth-ListStatusWidth-ListCursorWidth-3, 10)

	var b strings.Builder
	b.WriteString(styleSubtle.Render(fmt.Sprintf("  %-*s %-*s %-*s %s",
		nameWidth, "NAME", ListMethodWidth, "METHOD", endpointWidth, "ENDPOINT", "STATUS")))
	b.WriteString("\n")

	// Keep the cursor row on screen
	rows := max(height-1, 1)
	start := 0
	if m.cursor >= rows {
		start = m.cursor - rows + 1
	}
	end := min(start+rows, len(items))

	for i := start; i < end; i++ {
		r := items[i]
		line := fmt.Sprintf("%-*s %s %-*s %s",
			nameWidth, truncateText(r.Name, nameWidth),
			padRight(renderMethod(r.Method), ListMethodWidth),
			endpointWidth, truncateText(r.Endpoint, endpointWidth),
			renderStatus(r.Status))

		if i == m.cursor {
			b.WriteString(styleSelected.Render("> " + line))
		} else {
			b.WriteString("  " + line)
		}
		if i < end-1 {
			b.WriteString("\n")
		}
	}

	return b.String()
}

// renderPagination shows the page indicator and which directions are enabled
func (m *Model) renderPagination(view console.ListView) string {
	prev := "< prev"
	next := "next >"
	if view.CanPrev {
		prev = styleLabel.Render(prev)
	} else {
		prev = styleSubtle.Render(prev)
	}
	if view.CanNext {
		next = styleLabel.Render(next)
	} else {
		next = styleSubtle.Render(next)
	}

	indicator := fmt.Sprintf("Page %d of %d", view.Requested, view.Page.TotalPages)
	line := prev + "  " + indicator + "  " + next

	if m.searchActive {
		line += "   " + styleWarning.Render("Search: "+withCursor(m.searchQuery, m.searchCursor))
	} else if m.searchQuery != "" {
		line += "   " + styleSubtle.Render(fmt.Sprintf("Search: %s (%d shown)", m.searchQuery, len(m.visibleResources())))
	}
	return line
}

// renderStatusBar shows the latest notification, or key hints when idle
func (m *Model) renderStatusBar() string {
	switch {
	case m.errorMsg != "":
		msg := truncateText(m.errorMsg, m.width)
		line := styleError.Render(msg)
		if room := m.width - lipgloss.Width(msg) - 3; m.hintMsg != "" && room > 10 {
			line += styleSubtle.Render(" | " + truncateText(m.hintMsg, room))
		}
		return line
	case m.statusMsg != "":
		return styleSuccess.Render(truncateText(m.statusMsg, m.width))
	default:
		return styleSubtle.Render(truncateText(m.idleHint(), m.width))
	}
}

func (m *Model) idleHint() string {
	kb := m.keybinds
	if m.mode == ModeProfile {
		return fmt.Sprintf("%s: edit | %s: password | %s: back | %s: help",
			kb.GetBindingString(keybinds.ContextProfile, keybinds.ActionEditProfile),
			kb.GetBindingString(keybinds.ContextProfile, keybinds.ActionOpenPassword),
			kb.GetBindingString(keybinds.ContextProfile, keybinds.ActionOpenList),
			kb.GetBindingString(keybinds.ContextProfile, keybinds.ActionOpenHelp))
	}
	return fmt.Sprintf("%s: view | %s: create | %s: edit | %s: delete | %s: search | %s: help | %s: quit",
		kb.GetBindingString(keybinds.ContextList, keybinds.ActionView),
		kb.GetBindingString(keybinds.ContextList, keybinds.ActionCreate),
		kb.GetBindingString(keybinds.ContextList, keybinds.ActionEdit),
		kb.GetBindingString(keybinds.ContextList, keybinds.ActionDelete),
		kb.GetBindingString(keybinds.ContextList, keybinds.ActionOpenSearch),
		kb.GetBindingString(keybinds.ContextList, keybinds.ActionOpenHelp),
		kb.GetBindingString(keybinds.ContextList, keybinds.ActionQuit))
}

// renderProfile renders the profile screen
func (m *Model) renderProfile() string {
	user := m.profile.Profile()
	editing := m.profile.Mode() == console.ProfileEditing

	var b strings.Builder
	if editing && m.profileForm != nil {
		b.WriteString(m.renderForm(m.profileForm, m.width-8))
		b.WriteString("\n\n")
		if m.profile.Saving() {
			b.WriteString(styleWarning.Render("Saving..."))
		} else {
			b.WriteString(styleSubtle.Render(fmt.Sprintf("%s: save | %s: next field | %s: cancel",
				m.keybinds.GetBindingString(keybinds.ContextProfile, keybinds.ActionSubmit),
				m.keybinds.GetBindingString(keybinds.ContextProfile, keybinds.ActionNextField),
				m.keybinds.GetBindingString(keybinds.ContextProfile, keybinds.ActionOpenList))))
		}
	} else {
		rows := [][2]string{
			{"Username", user.Username},
			{"Email", user.Email},
			{"Member since", user.CreatedAt.Local(m.location, console.TimeLayout)},
			{"ID", user.ID},
		}
		for i, row := range rows {
			b.WriteString(styleLabel.Render(fmt.Sprintf("%-14s", row[0])))
			b.WriteString(row[1])
			if i < len(rows)-1 {
				b.WriteString("\n")
			}
		}
	}

	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(colorGray).
		Width(m.width-MinimalBorderMargin).
		Height(m.height-MainViewHeightOffset+1).
		Padding(1, 2).
		Render(b.String())

	return lipgloss.JoinVertical(
		lipgloss.Left,
		m.renderHeader("Profile", m.profile.Saving()),
		box,
		"",
		m.renderStatusBar(),
	)
}

// renderForm lays out form fields one per line, marking the focused one
func (m *Model) renderForm(form *FormState, width int) string {
	labelWidth := 0
	for i := 0; i < form.Len(); i++ {
		labelWidth = max(labelWidth, len(form.Label(i)))
	}

	focus := form.GetFocus()
	var lines []string
	for i := 0; i < form.Len(); i++ {
		label := fmt.Sprintf("%-*s  ", labelWidth, form.Label(i))
		value := form.Value(i)
		focused := i == focus

		var rendered string
		switch form.Kind(i) {
		case fieldOption:
			rendered = m.renderOptions(form, i, focused)
		case fieldSecret:
			masked := strings.Repeat("*", utf8.RuneCountInString(value))
			if focused {
				masked = withCursor(masked, utf8.RuneCountInString(value[:form.Cursor(i)]))
			}
			rendered = masked
		default:
			if focused {
				rendered = withCursor(value, form.Cursor(i))
			} else {
				rendered = value
			}
		}

		if form.Kind(i) != fieldOption {
			rendered = truncateText(rendered, max(width-labelWidth-4, 10))
		}
		if focused {
			lines = append(lines, styleTitle.Render("> "+label)+rendered)
		} else {
			lines = append(lines, "  "+styleLabel.Render(label)+rendered)
		}
	}
	return strings.Join(lines, "\n")
}

func (m *Model) renderOptions(form *FormState, i int, focused bool) string {
	value := form.Value(i)
	var parts []string
	for _, opt := range form.fields[i].options {
		text := opt
		var badge types.Badge
		if i == editorFieldMethod {
			badge = types.MethodBadge(types.Method(opt))
		} else {
			badge = types.StatusBadge(types.Status(opt))
		}
		if opt == value {
			parts = append(parts, badgeStyle(badge).Underline(true).Render("["+text+"]"))
		} else {
			parts = append(parts, styleSubtle.Render(" "+text+" "))
		}
	}
	out := strings.Join(parts, " ")
	if focused {
		out += styleSubtle.Render(fmt.Sprintf("  (%s / %s)",
			m.keybinds.GetBindingString(keybinds.ContextEditor, keybinds.ActionNextOption),
			m.keybinds.GetBindingString(keybinds.ContextEditor, keybinds.ActionPrevOption)))
	}
	return out
}

// withCursor draws a block cursor at byte offset pos
func withCursor(text string, pos int) string {
	if pos < 0 {
		pos = 0
	}
	if pos > len(text) {
		pos = len(text)
	}
	return text[:pos] + "█" + text[pos:]
}

// truncateText cuts s to width display cells, marking the cut
func truncateText(s string, width int) string {
	if width <= 0 || lipgloss.Width(s) <= width {
		return s
	}
	if width <= 3 {
		return strings.Repeat(".", width)
	}
	runes := []rune(s)
	for len(runes) > 0 && lipgloss.Width(string(runes))+3 > width {
		runes = runes[:len(runes)-1]
	}
	return string(runes) + "..."
}

func padRight(s string, width int) string {
	if pad := width - lipgloss.Width(s); pad > 0 {
		return s + strings.Repeat(" ", pad)
	}
	return s
}

// wrapText wraps text at word boundaries, keeping each line's indentation
func wrapText(text string, width int) string {
	if width <= 0 {
		return text
	}

	var out []string
	for _, line := range strings.Split(text, "\n") {
		if lipgloss.Width(line) <= width {
			out = append(out, line)
			continue
		}

		indent := line[:len(line)-len(strings.TrimLeft(line, " \t"))]
		words := strings.Fields(line)
		current := indent
		for _, w := range words {
			if strings.TrimSpace(current) != "" && lipgloss.Width(current)+1+lipgloss.Width(w) > width {
				out = append(out, current)
				current = indent + "  "
			}
			if strings.TrimSpace(current) != "" {
				current += " "
			}
			current += w
		}
		out = append(out, current)
	}
	return strings.Join(out, "\n")
}

// updateViewports sizes the scrollable overlays to the window
func (m *Model) updateViewports() {
	m.helpView.Width = max(m.width-HelpViewWidthOffset, 20)
	m.helpView.Height = max(m.height-ContentOffsetHelp, 5)
	m.activityView.Width = max(m.width-HelpViewWidthOffset, 20)
	m.activityView.Height = max(m.height-ContentOffsetHelp, 5)
	m.updateHelpView()
	m.updateActivityView()
}
