package cli

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/studiowebux/apiconsole/internal/types"
)

var (
	titleStyle        = lipgloss.NewStyle().MarginLeft(2).Bold(true)
	itemStyle         = lipgloss.NewStyle().PaddingLeft(4)
	selectedItemStyle = lipgloss.NewStyle().PaddingLeft(2).Foreground(lipgloss.Color("170"))
	helpStyle         = lipgloss.NewStyle().Foreground(lipgloss.Color("241")).MarginTop(1).MarginLeft(2)
)

// errPickCancelled is returned when the picker is dismissed
var errPickCancelled = errors.New("selection cancelled")

type resourceItem struct {
	resource types.ApiResource
}

func (i resourceItem) FilterValue() string {
	return i.resource.Name + " " + i.resource.Endpoint
}

func (i resourceItem) Title() string {
	return fmt.Sprintf("%-7s %s  %s", i.resource.Method, i.resource.Name, i.resource.Endpoint)
}

func (i resourceItem) Description() string { return "" }

type pickerModel struct {
	list     list.Model
	choice   *types.ApiResource
	quitting bool
}

func (m pickerModel) Init() tea.Cmd {
	return nil
}

func (m pickerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.list.SetWidth(msg.Width)
		return m, nil

	case tea.KeyMsg:
		// Let the filter input have its keys
		if m.list.FilterState() == list.Filtering {
			break
		}
		switch msg.String() {
		case "ctrl+c", "q", "esc":
			m.quitting = true
			m.choice = nil
			return m, tea.Quit

		case "enter":
			if i, ok := m.list.SelectedItem().(resourceItem); ok {
				r := i.resource
				m.choice = &r
			}
			m.quitting = true
			return m, tea.Quit
		}
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m pickerModel) View() string {
	if m.quitting {
		return ""
	}

	help := helpStyle.Render("↑/↓: navigate • /: filter • enter: select • q/esc: cancel")
	return fmt.Sprintf("%s\n\n%s", m.list.View(), help)
}

// pickResource shows an interactive list of items and returns the chosen one
func pickResource(items []types.ApiResource) (types.ApiResource, error) {
	listItems := make([]list.Item, 0, len(items))
	for _, r := range items {
		listItems = append(listItems, resourceItem{resource: r})
	}

	const defaultWidth = 80
	const listHeight = 14

	l := list.New(listItems, itemDelegate{}, defaultWidth, listHeight)
	l.Title = "Select an API"
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(true)
	l.Styles.Title = titleStyle

	p := tea.NewProgram(pickerModel{list: l})
	finalModel, err := p.Run()
	if err != nil {
		return types.ApiResource{}, fmt.Errorf("error running picker: %w", err)
	}

	result := finalModel.(pickerModel)
	if result.choice == nil {
		return types.ApiResource{}, errPickCancelled
	}
	return *result.choice, nil
}

// itemDelegate renders one line per resource
type itemDelegate struct{}

func (d itemDelegate) Height() int                             { return 1 }
func (d itemDelegate) Spacing() int                            { return 0 }
func (d itemDelegate) Update(_ tea.Msg, _ *list.Model) tea.Cmd { return nil }
func (d itemDelegate) Render(w io.Writer, m list.Model, index int, listItem list.Item) {
	i, ok := listItem.(resourceItem)
	if !ok {
		return
	}

	str := fmt.Sprintf("%d. %s", index+1, i.Title())

	fn := itemStyle.Render
	if index == m.Index() {
		fn = func(s ...string) string {
			return selectedItemStyle.Render("> " + strings.Join(s, " "))
		}
	}

	fmt.Fprint(w, fn(str))
}
