// Package tui implements the interactive terminal browser: a grouped
// package list with fuzzy filtering, and an expandable dependency tree
// view for the selected package.
package tui

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sahilm/fuzzy"

	"rostree/internal/app"
	"rostree/internal/types"
)

type viewState int

const (
	viewList viewState = iota
	viewTree
)

// depthCycle is the sequence the d key steps through in the tree view.
var depthCycle = []int{-1, 1, 2, 3, 4}

type entry struct {
	Name string
	Kind types.SourceKind
	Root string
}

type packagesMsg struct {
	groups []types.SourceGroup
	err    error
}

type treeMsg struct {
	node *types.DependencyNode
	err  error
}

// Model is the bubbletea model for the package browser.
type Model struct {
	svc *app.Service

	view    viewState
	loading bool
	err     error

	entries  []entry
	filtered []entry
	cursor   int
	offset   int
	height   int

	filtering bool
	query     string

	treeRoot    string
	tree        *types.DependencyNode
	treeText    []string
	treeOffset  int
	runtimeOnly bool
	depthIdx    int
}

// NewModel builds the initial model. When rootPackage is non-empty the
// browser opens directly on that package's tree.
func NewModel(svc *app.Service, rootPackage string) Model {
	m := Model{
		svc:      svc,
		loading:  true,
		height:   20,
		treeRoot: rootPackage,
	}
	if rootPackage != "" {
		m.view = viewTree
	}
	return m
}

// Run starts the interactive browser and blocks until the user quits.
func Run(svc *app.Service, rootPackage string) error {
	program := tea.NewProgram(NewModel(svc, rootPackage), tea.WithAltScreen())
	_, err := program.Run()
	return err
}

func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{m.loadPackagesCmd()}
	if m.treeRoot != "" {
		cmds = append(cmds, m.buildTreeCmd(m.treeRoot))
	}
	return tea.Batch(cmds...)
}

func (m Model) loadPackagesCmd() tea.Cmd {
	svc := m.svc
	return func() tea.Msg {
		groups, err := svc.ListBySource(context.Background(), app.ListRequest{})
		return packagesMsg{groups: groups, err: err}
	}
}

func (m Model) buildTreeCmd(pkg string) tea.Cmd {
	svc := m.svc
	req := app.TreeRequest{
		Package:     pkg,
		MaxDepth:    depthCycle[m.depthIdx],
		RuntimeOnly: m.runtimeOnly,
	}
	return func() tea.Msg {
		node, err := svc.Tree(context.Background(), req)
		return treeMsg{node: node, err: err}
	}
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.height = msg.Height - 6
		if m.height < 5 {
			m.height = 5
		}
		return m, nil

	case packagesMsg:
		if msg.err != nil {
			m.err = msg.err
		} else {
			m.entries = flattenGroups(msg.groups)
			m.filtered = m.entries
		}
		if m.view == viewList {
			m.loading = false
		}
		return m, nil

	case treeMsg:
		m.loading = false
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.tree = msg.node
		m.treeText = renderTreeLines(msg.node)
		m.treeOffset = 0
		return m, nil

	case tea.KeyMsg:
		if m.view == viewTree {
			return m.updateTree(msg)
		}
		return m.updateList(msg)
	}
	return m, nil
}

func (m Model) updateList(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.filtering {
		switch msg.String() {
		case "esc":
			m.filtering = false
			m.query = ""
			m.filtered = m.entries
			m.cursor, m.offset = 0, 0
		case "enter":
			m.filtering = false
		case "backspace":
			if m.query != "" {
				m.query = m.query[:len(m.query)-1]
				m.applyFilter()
			}
		case "ctrl+c":
			return m, tea.Quit
		default:
			if msg.Type == tea.KeyRunes {
				m.query += string(msg.Runes)
				m.applyFilter()
			}
		}
		return m, nil
	}

	switch msg.String() {
	case "q", "ctrl+c", "esc":
		return m, tea.Quit
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
			if m.cursor < m.offset {
				m.offset = m.cursor
			}
		}
	case "down", "j":
		if m.cursor < len(m.filtered)-1 {
			m.cursor++
			if m.cursor >= m.offset+m.height {
				m.offset = m.cursor - m.height + 1
			}
		}
	case "/":
		m.filtering = true
		m.query = ""
	case "r":
		m.runtimeOnly = !m.runtimeOnly
	case "enter":
		if len(m.filtered) == 0 {
			return m, nil
		}
		m.view = viewTree
		m.loading = true
		m.err = nil
		m.treeRoot = m.filtered[m.cursor].Name
		return m, m.buildTreeCmd(m.treeRoot)
	}
	return m, nil
}

func (m Model) updateTree(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "esc", "backspace":
		m.view = viewList
		m.err = nil
		m.loading = len(m.entries) == 0
		return m, nil
	case "up", "k":
		if m.treeOffset > 0 {
			m.treeOffset--
		}
	case "down", "j":
		if m.treeOffset < len(m.treeText)-m.height {
			m.treeOffset++
		}
	case "r":
		m.runtimeOnly = !m.runtimeOnly
		m.loading = true
		return m, m.buildTreeCmd(m.treeRoot)
	case "d":
		m.depthIdx = (m.depthIdx + 1) % len(depthCycle)
		m.loading = true
		return m, m.buildTreeCmd(m.treeRoot)
	}
	return m, nil
}

func (m *Model) applyFilter() {
	m.filtered = filterEntries(m.entries, m.query)
	m.cursor, m.offset = 0, 0
}

func (m Model) View() string {
	if m.err != nil {
		return styleError.Render("Error: "+m.err.Error()) + "\n\n" +
			styleDim.Render("esc back  q quit") + "\n"
	}
	if m.loading {
		if m.view == viewTree {
			return styleDim.Render("Building dependency tree for "+m.treeRoot+"...") + "\n"
		}
		return styleDim.Render("Scanning ROS 2 environment...") + "\n"
	}
	if m.view == viewTree {
		return m.renderTreeView()
	}
	return m.renderListView()
}

func (m Model) renderListView() string {
	var b strings.Builder

	b.WriteString(styleTitle.Render("ROS 2 Packages"))
	b.WriteString("\n")
	b.WriteString(styleDim.Render("↑/↓ navigate  ⏎ tree  / filter  r runtime  q quit"))
	b.WriteString("\n")
	if m.filtering || m.query != "" {
		b.WriteString(styleWarning.Render("filter: " + m.query))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	if len(m.filtered) == 0 {
		b.WriteString(styleDim.Render("  no packages found"))
		b.WriteString("\n")
		return b.String()
	}

	end := m.offset + m.height
	if end > len(m.filtered) {
		end = len(m.filtered)
	}

	lastRoot := ""
	for i := m.offset; i < end; i++ {
		e := m.filtered[i]
		if e.Root != lastRoot {
			b.WriteString(styleHeader.Render(fmt.Sprintf("%s (%s)", e.Kind, e.Root)))
			b.WriteString("\n")
			lastRoot = e.Root
		}

		cursor := "  "
		if i == m.cursor {
			cursor = "▸ "
		}
		line := cursor + e.Name
		if i == m.cursor {
			b.WriteString(styleSelected.Render(line))
		} else if style, ok := sourceStyles[string(e.Kind)]; ok {
			b.WriteString(style.Render(line))
		} else {
			b.WriteString(styleNormal.Render(line))
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	footer := fmt.Sprintf("  [%d/%d]", m.cursor+1, len(m.filtered))
	if m.runtimeOnly {
		footer += "  runtime only"
	}
	b.WriteString(styleDim.Render(footer))
	b.WriteString("\n")
	return b.String()
}

func (m Model) renderTreeView() string {
	var b strings.Builder

	b.WriteString(styleTitle.Render("Dependencies: " + m.treeRoot))
	b.WriteString("\n")
	b.WriteString(styleDim.Render("↑/↓ scroll  r runtime  d depth  esc back  q quit"))
	b.WriteString("\n\n")

	end := m.treeOffset + m.height
	if end > len(m.treeText) {
		end = len(m.treeText)
	}
	for _, line := range m.treeText[m.treeOffset:end] {
		b.WriteString(line)
		b.WriteString("\n")
	}

	b.WriteString("\n")
	footer := fmt.Sprintf("  %d nodes  depth %s", m.tree.CountNodes(), depthLabel(depthCycle[m.depthIdx]))
	if m.runtimeOnly {
		footer += "  runtime only"
	}
	b.WriteString(styleDim.Render(footer))
	b.WriteString("\n")
	return b.String()
}

func depthLabel(depth int) string {
	if depth < 0 {
		return "∞"
	}
	return fmt.Sprintf("%d", depth)
}

// flattenGroups turns the grouped listing into a flat, cursor-addressable
// slice, preserving group order.
func flattenGroups(groups []types.SourceGroup) []entry {
	var entries []entry
	for _, group := range groups {
		for _, name := range group.Packages {
			entries = append(entries, entry{Name: name, Kind: group.Kind, Root: group.Root})
		}
	}
	return entries
}

// filterEntries narrows the list with fuzzy matching on package names.
// An empty query returns the input unchanged.
func filterEntries(entries []entry, query string) []entry {
	if query == "" {
		return entries
	}
	names := make([]string, len(entries))
	for i, e := range entries {
		names[i] = e.Name
	}
	matches := fuzzy.Find(query, names)
	filtered := make([]entry, 0, len(matches))
	for _, match := range matches {
		filtered = append(filtered, entries[match.Index])
	}
	return filtered
}

// renderTreeLines flattens a dependency tree into styled display lines
// with box-drawing branch prefixes.
func renderTreeLines(node *types.DependencyNode) []string {
	lines := []string{styledNodeLine(node)}
	return appendChildLines(lines, node, "")
}

func appendChildLines(lines []string, node *types.DependencyNode, prefix string) []string {
	for i, child := range node.Children {
		last := i == len(node.Children)-1
		branch, cont := "├── ", "│   "
		if last {
			branch, cont = "└── ", "    "
		}
		lines = append(lines, styleDim.Render(prefix+branch)+styledNodeLine(child))
		lines = appendChildLines(lines, child, prefix+cont)
	}
	return lines
}

func styledNodeLine(node *types.DependencyNode) string {
	line := node.Name
	if node.Version != "" {
		line += " (" + node.Version + ")"
	}
	switch node.Status {
	case types.NodeStatusNotFound:
		return styleDim.Render(line + " [not found]")
	case types.NodeStatusCycle:
		return styleWarning.Render(line + " [cycle]")
	case types.NodeStatusParseError:
		return styleError.Render(line + " [parse error]")
	}
	if node.Description != "" {
		return styleNormal.Render(line) + styleDim.Render(" - "+node.Description)
	}
	return styleNormal.Render(line)
}
