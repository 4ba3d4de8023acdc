package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/matzehuels/jsongraph/pkg/document"
	"github.com/matzehuels/jsongraph/pkg/edit"
	"github.com/matzehuels/jsongraph/pkg/errors"
	"github.com/matzehuels/jsongraph/pkg/graph"
)

// List styles
var (
	listSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	listNormalStyle   = lipgloss.NewStyle().Foreground(colorWhite)
	listDimStyle      = lipgloss.NewStyle().Foreground(colorDim)

	editorBoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorCyan).
			Padding(0, 1)
)

type editorMode int

const (
	modeBrowse editorMode = iota
	modeScalar
	modeSubtree
)

// =============================================================================
// EditorModel - Interactive document editor
// =============================================================================

// EditorModel is the bubbletea model behind the edit command. It lists the
// graph's nodes; enter edits a primitive node as a single value and any
// other node as JSON text.
type EditorModel struct {
	ctx     context.Context
	store   *document.Store
	view    *graph.View
	portal  *edit.Portal
	subtree *edit.SubtreeEditor
	replace bool

	// input backs the scalar editor, area the subtree editor.
	input textinput.Model
	area  textarea.Model

	mode   editorMode
	Cursor int
	Height int
	Width  int
	Offset int

	status    string
	statusErr bool
}

// NewEditorModel creates an editor over store. view must observe store.
func NewEditorModel(ctx context.Context, store *document.Store, view *graph.View, replace bool) EditorModel {
	m := EditorModel{
		ctx:     ctx,
		store:   store,
		view:    view,
		portal:  edit.NewPortal(edit.NewScalarEditor(store, nil)),
		replace: replace,
		Height:  15,
		Width:   80,
	}
	m.input = textinput.New()
	m.input.Prompt = ""
	m.area = textarea.New()
	m.area.CharLimit = 0
	m.area.MaxHeight = 0
	m.resizeInputs()
	m.selectCursor()
	return m
}

func (m EditorModel) Init() tea.Cmd {
	return nil
}

func (m EditorModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch m.mode {
		case modeScalar:
			return m.updateScalar(msg)
		case modeSubtree:
			return m.updateSubtree(msg)
		}
		return m.updateBrowse(msg)
	case tea.WindowSizeMsg:
		m.Height = msg.Height - 8
		if m.Height < 5 {
			m.Height = 5
		}
		m.Width = msg.Width
		m.resizeInputs()
		return m, nil
	}

	// Cursor blink and other component messages.
	var cmd tea.Cmd
	switch m.mode {
	case modeScalar:
		m.input, cmd = m.input.Update(msg)
	case modeSubtree:
		m.area, cmd = m.area.Update(msg)
	}
	return m, cmd
}

func (m *EditorModel) resizeInputs() {
	w := max(m.Width-6, 20)
	m.input.Width = w
	m.area.SetWidth(w)
	m.area.SetHeight(max(m.Height-4, 5))
}

func (m EditorModel) updateBrowse(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	nodes := m.view.Nodes()
	switch msg.String() {
	case "q", "ctrl+c", "esc":
		return m, tea.Quit
	case "up", "k":
		if m.Cursor > 0 {
			m.Cursor--
			if m.Cursor < m.Offset {
				m.Offset = m.Cursor
			}
		}
	case "down", "j":
		if m.Cursor < len(nodes)-1 {
			m.Cursor++
			if m.Cursor >= m.Offset+m.Height {
				m.Offset = m.Cursor - m.Height + 1
			}
		}
	case "enter":
		if n, ok := m.current(); ok {
			if isPrimitive(n) && m.portal.Click(edit.TargetFor(n)) {
				m.mode = modeScalar
				m.setStatus("")
				m.input.SetValue(m.portal.Editor().Input())
				m.input.CursorEnd()
				return m, m.input.Focus()
			}
			return m.openSubtree(n)
		}
	case "e":
		if n, ok := m.current(); ok {
			return m.openSubtree(n)
		}
	}
	m.selectCursor()
	return m, nil
}

func (m EditorModel) openSubtree(n graph.Node) (tea.Model, tea.Cmd) {
	opts := []edit.SubtreeOption{}
	if m.replace {
		opts = append(opts, edit.WithReplace())
	}
	ed, err := edit.NewSubtreeEditor(m.store, m.view, n.ID, opts...)
	if err != nil {
		m.setError(err)
		return m, nil
	}
	ed.Edit()
	m.subtree = ed
	m.mode = modeSubtree
	m.setStatus("")
	m.area.SetValue(ed.Text())
	return m, m.area.Focus()
}

func (m EditorModel) updateScalar(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	ed := m.portal.Editor()
	switch msg.Type {
	case tea.KeyCtrlC:
		return m, tea.Quit
	case tea.KeyEsc:
		ed.Cancel()
		m.input.Blur()
		m.mode = modeBrowse
	case tea.KeyEnter:
		ed.SetInput(m.input.Value())
		change, err := ed.Save(m.ctx)
		m.afterSave(change, err)
		if !ed.IsOpen() {
			m.input.Blur()
			m.mode = modeBrowse
		}
	default:
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		ed.SetInput(m.input.Value())
		return m, cmd
	}
	return m, nil
}

func (m EditorModel) updateSubtree(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	ed := m.subtree
	switch msg.Type {
	case tea.KeyCtrlC:
		return m, tea.Quit
	case tea.KeyEsc:
		ed.Cancel()
		m.area.Blur()
		m.mode = modeBrowse
	case tea.KeyCtrlS:
		ed.SetText(m.area.Value())
		change, err := ed.Save(m.ctx)
		m.afterSave(change, err)
		if !ed.Editing() {
			m.area.Blur()
			m.mode = modeBrowse
		}
	default:
		var cmd tea.Cmd
		m.area, cmd = m.area.Update(msg)
		ed.SetText(m.area.Value())
		return m, cmd
	}
	return m, nil
}

func (m *EditorModel) afterSave(change *document.Change, err error) {
	switch {
	case change != nil && err != nil:
		m.status = fmt.Sprintf("Saved revision %d, %s", change.Revision, errors.UserMessage(err))
		m.statusErr = true
	case err != nil:
		m.setError(err)
	default:
		m.setStatus(fmt.Sprintf("Saved %s (revision %d)", change.Path.String(), change.Revision))
	}
	if n := len(m.view.Nodes()); m.Cursor >= n {
		m.Cursor = max(n-1, 0)
	}
	m.selectCursor()
}

func (m *EditorModel) setStatus(s string) {
	m.status = s
	m.statusErr = false
}

func (m *EditorModel) setError(err error) {
	m.status = errors.UserMessage(err)
	m.statusErr = true
}

func (m EditorModel) current() (graph.Node, bool) {
	nodes := m.view.Nodes()
	if m.Cursor < 0 || m.Cursor >= len(nodes) {
		return graph.Node{}, false
	}
	return nodes[m.Cursor], true
}

func (m EditorModel) selectCursor() {
	if n, ok := m.current(); ok {
		m.view.Select(n.ID)
	}
}

func isPrimitive(n graph.Node) bool {
	return len(n.Text) == 1 && n.Text[0].Keyless()
}

func (m EditorModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("jsongraph"))
	b.WriteString("\n")
	switch m.mode {
	case modeScalar:
		ed := m.portal.Editor()
		b.WriteString(listDimStyle.Render("⏎ save  esc cancel"))
		b.WriteString("\n\n")
		b.WriteString(StyleHighlight.Render(ed.Accessor()))
		b.WriteString("\n")
		b.WriteString(editorBoxStyle.Render(m.input.View()))
	case modeSubtree:
		ed := m.subtree
		b.WriteString(listDimStyle.Render("ctrl+s save  esc cancel"))
		b.WriteString("\n\n")
		b.WriteString(StyleHighlight.Render(ed.DisplayPath()))
		if !ed.Exists() {
			b.WriteString(" " + StyleWarning.Render("(removed)"))
		}
		b.WriteString("\n")
		b.WriteString(editorBoxStyle.Render(m.area.View()))
	default:
		b.WriteString(listDimStyle.Render("↑/↓ navigate  ⏎ edit  e edit as JSON  q quit"))
		b.WriteString("\n\n")
		b.WriteString(m.nodeList())
	}

	if m.status != "" {
		b.WriteString("\n\n")
		if m.statusErr {
			b.WriteString(styleIconError.Render(iconError) + " " + m.status)
		} else {
			b.WriteString(styleIconSuccess.Render(iconSuccess) + " " + m.status)
		}
	}
	return b.String()
}

func (m EditorModel) nodeList() string {
	nodes := m.view.Nodes()
	if len(nodes) == 0 {
		return listDimStyle.Render("  (empty document)")
	}

	end := min(m.Offset+m.Height, len(nodes))
	var b strings.Builder
	for i := m.Offset; i < end; i++ {
		n := nodes[i]
		cursor := "  "
		if i == m.Cursor {
			cursor = "▸ "
		}
		summary := ""
		if len(n.Text) > 0 {
			summary = n.Text[0].String()
			if len(n.Text) > 1 {
				summary += fmt.Sprintf(" (+%d)", len(n.Text)-1)
			}
		}
		line := fmt.Sprintf("%s%s%-28s %s", cursor, strings.Repeat("  ", n.Depth), n.ID, listDimStyle.Render(summary))
		if i == m.Cursor {
			b.WriteString(listSelectedStyle.Render(line))
		} else {
			b.WriteString(listNormalStyle.Render(line))
		}
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render(fmt.Sprintf("  [%d/%d]", m.Cursor+1, len(nodes))))
	return b.String()
}
