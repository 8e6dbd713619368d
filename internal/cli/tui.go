package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/matzehuels/arbor/pkg/editor"
	"github.com/matzehuels/arbor/pkg/errors"
	"github.com/matzehuels/arbor/pkg/graph"
	"github.com/matzehuels/arbor/pkg/render"
)

// List styles
var (
	listSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	listNormalStyle   = lipgloss.NewStyle().Foreground(colorWhite)
	listDimStyle      = lipgloss.NewStyle().Foreground(colorDim)

	previewStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorDim).
			Padding(0, 1)
	statusErrStyle = lipgloss.NewStyle().Foreground(colorRed)
)

// promptKind identifies what the text prompt is collecting.
type promptKind int

const (
	promptNone promptKind = iota
	promptAddNode
	promptAddChild
	promptLoad
)

func (p promptKind) label() string {
	switch p {
	case promptAddNode:
		return "New node"
	case promptAddChild:
		return "New child"
	case promptLoad:
		return "Load file"
	}
	return ""
}

// changeMsg delivers an editor change made outside the model, such as a
// reload from the file watcher.
type changeMsg struct{ snap editor.Snapshot }

// renderDoneMsg reports the outcome of a diagram render.
type renderDoneMsg struct {
	path string
	err  error
}

// =============================================================================
// EditorModel - Interactive tree editing
// =============================================================================

// EditorModel is the bubbletea model for the terminal tree editor.
type EditorModel struct {
	ctx      context.Context
	ed       *editor.Editor
	renderer render.Renderer
	outDir   string

	snap   editor.Snapshot
	rows   []graph.Node
	cursor int

	mode        render.Mode
	showPreview bool

	prompt promptKind
	input  []rune

	status    string
	statusErr bool
}

// NewEditorModel creates a model over ed. Rendered diagrams and exports are
// written to outDir.
func NewEditorModel(ctx context.Context, ed *editor.Editor, r render.Renderer, mode render.Mode, outDir string) EditorModel {
	m := EditorModel{
		ctx:         ctx,
		ed:          ed,
		renderer:    r,
		outDir:      outDir,
		mode:        mode,
		showPreview: true,
	}
	m.apply(ed.Snapshot())
	return m
}

// ChangeListener returns an editor listener that forwards changes to p.
// Sends happen on their own goroutine because listeners run under the
// editor lock while Update may be calling into the editor.
func ChangeListener(p *tea.Program) editor.Listener {
	return editor.ListenerFunc(func(_ context.Context, c editor.Change) {
		go p.Send(changeMsg{snap: c.Snapshot})
	})
}

// apply adopts snap and moves the cursor to its selection.
func (m *EditorModel) apply(snap editor.Snapshot) {
	m.snap = snap
	m.rows, _ = graph.Flatten(snap.Root, snap.Selected)
	for i, r := range m.rows {
		if r.Selected {
			m.cursor = i
			return
		}
	}
	m.cursor = 0
}

func (m EditorModel) Init() tea.Cmd {
	return nil
}

func (m EditorModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.prompt != promptNone {
			return m.updatePrompt(msg)
		}
		return m.updateKeys(msg)
	case changeMsg:
		if msg.snap.Revision > m.snap.Revision {
			m.apply(msg.snap)
		}
	case renderDoneMsg:
		if msg.err != nil {
			m.setError(msg.err)
		} else {
			m.setStatus("Rendered " + msg.path)
		}
	}
	return m, nil
}

func (m EditorModel) updateKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c", "esc":
		return m, tea.Quit
	case "up", "k":
		if m.cursor > 0 {
			m.selectRow(m.cursor - 1)
		}
	case "down", "j":
		if m.cursor < len(m.rows)-1 {
			m.selectRow(m.cursor + 1)
		}
	case "a":
		m.startPrompt(promptAddNode)
	case "c":
		m.startPrompt(promptAddChild)
	case "l":
		m.startPrompt(promptLoad)
	case "e":
		m.export()
	case "m":
		m.mode = m.mode.Next()
		m.setStatus("Layout: " + string(m.mode))
	case "p":
		m.showPreview = !m.showPreview
	case "r":
		return m, m.renderCmd()
	}
	return m, nil
}

func (m EditorModel) updatePrompt(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyCtrlC:
		return m, tea.Quit
	case tea.KeyEsc:
		m.prompt = promptNone
		m.input = nil
	case tea.KeyEnter:
		kind, text := m.prompt, string(m.input)
		m.prompt = promptNone
		m.input = nil
		m.submit(kind, text)
	case tea.KeyBackspace:
		if len(m.input) > 0 {
			m.input = m.input[:len(m.input)-1]
		}
	case tea.KeySpace:
		m.input = append(m.input, ' ')
	case tea.KeyRunes:
		m.input = append(m.input, msg.Runes...)
	}
	return m, nil
}

func (m *EditorModel) startPrompt(kind promptKind) {
	m.prompt = kind
	m.input = nil
	m.status = ""
}

func (m *EditorModel) submit(kind promptKind, text string) {
	var (
		snap editor.Snapshot
		err  error
	)
	switch kind {
	case promptAddNode:
		snap, err = m.ed.AddNode(m.ctx, text)
	case promptAddChild:
		snap, err = m.ed.AddChildToSelected(m.ctx, text)
	case promptLoad:
		snap, err = m.load(text)
		if err == nil {
			m.setStatus("Loaded " + text)
		}
	}
	if errors.Is(err, errors.ErrCodeEmptyName) {
		return
	}
	if err != nil {
		m.setError(err)
		return
	}
	m.apply(snap)
}

func (m *EditorModel) load(path string) (editor.Snapshot, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return m.snap, errors.New(errors.ErrCodeNoFileSelected, "Please select a JSON file first")
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return m.snap, errors.Wrap(errors.ErrCodeFileNotFound, err, "file not found: %s", path)
		}
		return m.snap, err
	}
	return m.ed.Load(m.ctx, data)
}

func (m *EditorModel) selectRow(i int) {
	snap, err := m.ed.Select(m.ctx, m.rows[i].ID)
	if err != nil {
		m.setError(err)
		return
	}
	m.apply(snap)
}

func (m *EditorModel) export() {
	name, data, err := m.ed.Export()
	if err != nil {
		m.setError(err)
		return
	}
	path := filepath.Join(m.outDir, name)
	if err := writeFileAtomic(path, data); err != nil {
		m.setError(err)
		return
	}
	m.setStatus("Exported " + path)
}

func (m EditorModel) renderCmd() tea.Cmd {
	root, selected, mode := m.snap.Root, m.snap.Selected, m.mode
	path := filepath.Join(m.outDir, "arbor-"+string(mode)+render.FormatSVG.Ext())
	ctx, r := m.ctx, m.renderer
	return func() tea.Msg {
		res, err := r.Render(ctx, root, render.Options{Mode: mode, Format: render.FormatSVG, Selected: selected})
		if err != nil {
			return renderDoneMsg{err: err}
		}
		if err := os.WriteFile(path, res.Data, 0644); err != nil {
			return renderDoneMsg{err: err}
		}
		return renderDoneMsg{path: path}
	}
}

func (m *EditorModel) setStatus(s string) {
	m.status = s
	m.statusErr = false
}

func (m *EditorModel) setError(err error) {
	m.status = errors.UserMessage(err)
	m.statusErr = true
}

func (m EditorModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Tree Structure Editor"))
	b.WriteString("  ")
	header := fmt.Sprintf("%s layout · %d nodes", m.mode, len(m.rows))
	if sel := m.snap.SelectedNode(); sel != nil {
		header += " · " + sel.Name
	}
	b.WriteString(listDimStyle.Render(header))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ select  a add  c child  l load  e export  r render  m layout  p preview  q quit"))
	b.WriteString("\n\n")

	tree := m.treeView()
	if m.showPreview {
		tree = lipgloss.JoinHorizontal(lipgloss.Top, tree, "  ", previewStyle.Render(strings.TrimRight(m.snap.Preview, "\n")))
	}
	b.WriteString(tree)
	b.WriteString("\n\n")

	switch {
	case m.prompt != promptNone:
		b.WriteString(StyleHighlight.Render(m.prompt.label() + ": "))
		b.WriteString(string(m.input))
		b.WriteString("█")
	case m.statusErr:
		b.WriteString(statusErrStyle.Render(iconError + " " + m.status))
	case m.status != "":
		b.WriteString(StyleSuccess.Render(iconSuccess + " " + m.status))
	}

	return b.String()
}

func (m EditorModel) treeView() string {
	lines := make([]string, len(m.rows))
	for i, r := range m.rows {
		cursor := "  "
		style := listNormalStyle
		if i == m.cursor {
			cursor = "▸ "
			style = listSelectedStyle
		}
		lines[i] = cursor + strings.Repeat("  ", r.Depth) + style.Render(r.Name)
	}
	return strings.Join(lines, "\n")
}
