// Package tui is a read-only terminal explorer over a finished artifact.
package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"docexplore/internal/domain"
	"docexplore/internal/vectorstore"
)

// Relater finds excerpts from other topics that resemble a chunk.
type Relater interface {
	Related(ch domain.Chunk, topK int) []vectorstore.SearchResult
}

type tab int

const (
	tabOverview tab = iota
	tabMentions
	tabAnalysis
	tabLayout
)

var tabNames = []string{"Overview", "Mentions", "Analysis", "Layout"}

const relatedExcerpts = 3

// Model is the Bubble Tea model for the explorer.
type Model struct {
	artifact domain.Artifact
	insights domain.Insights
	related  Relater
	input    textinput.Model
	viewport viewport.Model
	tab      tab
	visible  []int // indices into artifact.Clusters that match the filter
	cursor   int
	item     int
	ready    bool
	status   string
}

// New creates an explorer over the artifact and its insights.
func New(a domain.Artifact, ins domain.Insights, related Relater) Model {
	ti := textinput.New()
	ti.Prompt = "filter> "
	ti.Placeholder = "type to filter topics"
	ti.Focus()
	ti.CharLimit = 0
	vp := viewport.New(0, 0)
	m := Model{
		artifact: a,
		insights: ins,
		related:  related,
		input:    ti,
		viewport: vp,
		status:   "tab: switch view  up/down: topic  left/right: excerpt  ctrl+c: quit",
	}
	m.applyFilter()
	return m
}

// Init initializes the model (text input cursor blink).
func (m Model) Init() tea.Cmd { return textinput.Blink }

// Update handles key and window events and updates the view state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.ready = true
		_, bh := bodyBoxStyle.GetFrameSize()
		_, ih := inputBoxStyle.GetFrameSize()
		reserved := 2 + 1 + ih + 1 // header and tabs, status, input, spacer
		m.viewport.Width = max(20, msg.Width)
		m.viewport.Height = max(3, msg.Height-reserved-bh)
		m.refresh()
		return m, nil
	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC || msg.Type == tea.KeyCtrlD || msg.Type == tea.KeyEsc {
			return m, tea.Quit
		}
		switch msg.String() {
		case "tab":
			m.tab = (m.tab + 1) % tab(len(tabNames))
			m.refresh()
			return m, nil
		case "shift+tab":
			m.tab = (m.tab + tab(len(tabNames)) - 1) % tab(len(tabNames))
			m.refresh()
			return m, nil
		case "down":
			if len(m.visible) > 0 {
				m.cursor = (m.cursor + 1) % len(m.visible)
				m.item = 0
				m.refresh()
			}
			return m, nil
		case "up":
			if len(m.visible) > 0 {
				m.cursor = (m.cursor - 1 + len(m.visible)) % len(m.visible)
				m.item = 0
				m.refresh()
			}
			return m, nil
		case "right", "left":
			if c, ok := m.selected(); ok && len(c.Items) > 0 {
				step := 1
				if msg.String() == "left" {
					step = len(c.Items) - 1
				}
				m.item = (m.item + step) % len(c.Items)
				m.refresh()
			}
			return m, nil
		case "pgdown", "pgup":
			var cmd tea.Cmd
			m.viewport, cmd = m.viewport.Update(msg)
			return m, cmd
		}
	}
	var cmd tea.Cmd
	before := m.input.Value()
	m.input, cmd = m.input.Update(msg)
	if m.input.Value() != before {
		m.applyFilter()
		m.refresh()
	}
	return m, cmd
}

// View renders the explorer.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}
	header := headerStyle.Render(m.artifact.Title)
	tabs := make([]string, len(tabNames))
	for i, name := range tabNames {
		if tab(i) == m.tab {
			tabs[i] = activeTabStyle.Render(name)
		} else {
			tabs[i] = tabStyle.Render(name)
		}
	}
	body := bodyBoxStyle.Render(m.viewport.View())
	input := inputBoxStyle.Render(m.input.View())
	status := statusStyle.Render(m.status)
	return header + "\n" + strings.Join(tabs, " ") + "\n" + body + "\n" + input + "\n" + status
}

func (m *Model) applyFilter() {
	q := strings.ToLower(strings.TrimSpace(m.input.Value()))
	m.visible = m.visible[:0]
	for i, c := range m.artifact.Clusters {
		if q == "" || strings.Contains(strings.ToLower(c.Name), q) {
			m.visible = append(m.visible, i)
		}
	}
	m.cursor, m.item = 0, 0
}

func (m *Model) refresh() {
	m.viewport.SetContent(m.render())
	m.viewport.GotoTop()
}

func (m Model) selected() (domain.ArtifactCluster, bool) {
	if len(m.visible) == 0 {
		return domain.ArtifactCluster{}, false
	}
	return m.artifact.Clusters[m.visible[m.cursor]], true
}

func (m Model) render() string {
	switch m.tab {
	case tabMentions:
		return m.renderMentions()
	case tabAnalysis:
		return m.renderAnalysis()
	case tabLayout:
		return renderLayout(m.insights.Layout, 60, 18)
	default:
		return m.renderOverview()
	}
}

func (m Model) renderOverview() string {
	if len(m.visible) == 0 {
		return "No topics match the filter."
	}
	most, width := 0, 0
	for _, i := range m.visible {
		c := m.artifact.Clusters[i]
		most = max(most, len(c.Items))
		width = max(width, lipgloss.Width(c.Name))
	}
	var b strings.Builder
	fmt.Fprintf(&b, "%s\n\n", m.artifact.Description)
	for n, i := range m.visible {
		c := m.artifact.Clusters[i]
		marker := "  "
		if n == m.cursor {
			marker = "> "
		}
		bar := strings.Repeat("█", max(1, len(c.Items)*30/max(1, most)))
		fmt.Fprintf(&b, "%s%-*s %s %d\n", marker, width, c.Name, barStyle.Render(bar), len(c.Items))
	}
	return b.String()
}

func (m Model) renderMentions() string {
	c, ok := m.selected()
	if !ok {
		return "No topics match the filter."
	}
	if len(c.Items) == 0 {
		return c.Name + "\n\nNo excerpts."
	}
	it := c.Items[m.item]
	var b strings.Builder
	fmt.Fprintf(&b, "%s  excerpt %d/%d\n\n", headerStyle.Render(c.Name), m.item+1, len(c.Items))
	b.WriteString(highlightBestSentence(it.Text, m.keywordsOf(c.ID)))
	b.WriteString("\n")
	if m.related == nil {
		return b.String()
	}
	res := m.related.Related(it, relatedExcerpts)
	if len(res) == 0 {
		return b.String()
	}
	b.WriteString("\n" + headerStyle.Render("Related in other topics") + "\n")
	for _, r := range res {
		name := "?"
		if id, ok := r.Chunk.ClusterID(); ok {
			name = m.nameOf(id)
		}
		fmt.Fprintf(&b, "• [%s] score=%.3f  %s\n", name, r.Score, truncate(r.Chunk.Text, 160))
	}
	return b.String()
}

func (m Model) renderAnalysis() string {
	c, ok := m.selected()
	if !ok {
		return "No topics match the filter."
	}
	var b strings.Builder
	b.WriteString(headerStyle.Render(c.Name) + "\n\n")
	for _, t := range m.insights.Topics {
		if t.ClusterID != c.ID {
			continue
		}
		fmt.Fprintf(&b, "Mentions: %d\nKeywords: %s\n", t.Mentions, strings.Join(t.Keywords, ", "))
		if t.Summary != "" {
			fmt.Fprintf(&b, "Summary: %s\n", t.Summary)
		}
	}
	b.WriteString("\nOverlaps:\n")
	found := false
	for _, e := range m.insights.Overlaps {
		if e.TopicA == c.Name || e.TopicB == c.Name {
			fmt.Fprintf(&b, "  %s ↔ %s  %.2f\n", e.TopicA, e.TopicB, e.Score)
			found = true
		}
	}
	if !found {
		b.WriteString("  none above threshold\n")
	}
	if len(m.insights.GlobalKeywords) > 0 {
		words := make([]string, 0, len(m.insights.GlobalKeywords))
		for _, kw := range m.insights.GlobalKeywords {
			words = append(words, fmt.Sprintf("%s (%d)", kw.Word, kw.Count))
		}
		fmt.Fprintf(&b, "\nDocument keywords: %s\n", strings.Join(words, ", "))
	}
	return b.String()
}

func (m Model) keywordsOf(id int) string {
	for _, t := range m.insights.Topics {
		if t.ClusterID == id {
			return strings.Join(t.Keywords, " ")
		}
	}
	return m.nameOf(id)
}

func (m Model) nameOf(id int) string {
	for _, c := range m.artifact.Clusters {
		if c.ID == id {
			return c.Name
		}
	}
	return fmt.Sprintf("Cluster %d", id)
}

func truncate(s string, n int) string {
	s = strings.Join(strings.Fields(s), " ")
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n]) + "…"
}

var (
	bodyBoxStyle   = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
	inputBoxStyle  = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
	headerStyle    = lipgloss.NewStyle().Bold(true)
	tabStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("8")).Padding(0, 1)
	activeTabStyle = lipgloss.NewStyle().Bold(true).Underline(true).Padding(0, 1)
	statusStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	barStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("12"))
	highlightStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("11")).Bold(true)
)
