package shell

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	"github.com/EliasL-git/ASTERIX-dev/internal/browser"
	"github.com/EliasL-git/ASTERIX-dev/internal/logging"
	"github.com/EliasL-git/ASTERIX-dev/internal/runtime"
)

const (
	pollInterval   = 250 * time.Millisecond
	refreshInterval = time.Second
)

type tickMsg time.Time

type model struct {
	handle runtime.Handle
	log    *logging.Logger

	tabs     []browser.TabSnapshot
	activeID browser.TabID

	urlInput string
	jobs     []*runtime.NavigationJob
	status   string
	preview  string

	lastRefresh time.Time
	width       int
	height      int
}

func newModel(handle runtime.Handle, log *logging.Logger) model {
	m := model{
		handle: handle,
		log:    log,
		status: "Ready",
	}
	initial := handle.CreateTab("New Tab")
	m.activeID = initial.ID
	m.refreshTabs()
	return m
}

func (m model) Init() tea.Cmd {
	return tick()
}

func tick() tea.Cmd {
	return tea.Tick(pollInterval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tickMsg:
		m.pollJobs()
		if time.Since(m.lastRefresh) >= refreshInterval {
			m.refreshTabs()
		}
		return m, tick()

	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyCtrlC, tea.KeyEsc:
		return m, tea.Quit

	case tea.KeyEnter:
		m.initiateNavigation()
		return m, nil

	case tea.KeyCtrlT:
		tab := m.handle.CreateTab("New Tab")
		m.activeID = tab.ID
		m.refreshTabs()
		return m, nil

	case tea.KeyTab:
		m.cycleActiveTab()
		return m, nil

	case tea.KeyBackspace:
		if len(m.urlInput) > 0 {
			runes := []rune(m.urlInput)
			m.urlInput = string(runes[:len(runes)-1])
		}
		return m, nil

	case tea.KeyRunes, tea.KeySpace:
		m.urlInput += string(msg.Runes)
		return m, nil
	}
	return m, nil
}

// pollJobs drains completions without ever blocking the UI loop. Unresolved
// jobs stay queued for the next tick.
func (m *model) pollJobs() {
	pending := m.jobs[:0]
	needsRefresh := false
	for _, job := range m.jobs {
		res, done := job.TryComplete()
		if !done {
			pending = append(pending, job)
			continue
		}
		if res.Err != nil {
			m.status = fmt.Sprintf("Failed: %v", res.Err)
			continue
		}
		m.log.Info("page loaded",
			zap.Stringer("url", res.Page.URL),
			zap.Int("status", res.Page.Status))
		m.status = fmt.Sprintf("Loaded %s", res.Page.URL)
		m.preview = Preview(res.Page.Body)
		needsRefresh = true
	}
	m.jobs = pending
	if needsRefresh {
		m.refreshTabs()
	}
}

func (m *model) refreshTabs() {
	m.tabs = m.handle.Tabs()
	m.lastRefresh = time.Now()
}

func (m *model) cycleActiveTab() {
	if len(m.tabs) == 0 {
		return
	}
	for i, tab := range m.tabs {
		if tab.ID == m.activeID {
			m.activeID = m.tabs[(i+1)%len(m.tabs)].ID
			return
		}
	}
	m.activeID = m.tabs[0].ID
}

func (m *model) activeTab() *browser.TabSnapshot {
	for i := range m.tabs {
		if m.tabs[i].ID == m.activeID {
			return &m.tabs[i]
		}
	}
	return nil
}

func (m *model) initiateNavigation() {
	active := m.activeTab()
	if active == nil {
		m.status = "No active tab"
		return
	}

	parsed, err := ParseUserURL(m.urlInput)
	if err != nil {
		m.status = "Enter a valid URL"
		return
	}

	job, err := m.handle.RequestNavigation(active.ID, parsed)
	if err != nil {
		m.status = fmt.Sprintf("Navigation error: %v", err)
		return
	}
	m.jobs = append(m.jobs, job)
	m.status = fmt.Sprintf("Loading %s", parsed)
}

var (
	toolbarStyle = lipgloss.NewStyle().
			Bold(true).
			Padding(0, 1)
	activeTabStyle = lipgloss.NewStyle().
			Bold(true).
			Reverse(true).
			Padding(0, 1)
	tabStyle = lipgloss.NewStyle().
			Faint(true).
			Padding(0, 1)
	statusStyle = lipgloss.NewStyle().
			Faint(true).
			Padding(0, 1)
	headingStyle = lipgloss.NewStyle().
			Bold(true).
			Underline(true)
)

func (m model) View() string {
	var b strings.Builder

	b.WriteString(m.renderToolbar())
	b.WriteString("\n")
	b.WriteString(m.renderTabBar())
	b.WriteString("\n\n")
	b.WriteString(m.renderContent())
	b.WriteString("\n")
	b.WriteString(statusStyle.Render(m.status))
	return b.String()
}

func (m model) renderToolbar() string {
	title := "No Tab"
	if active := m.activeTab(); active != nil {
		title = active.Title
	}
	return toolbarStyle.Render(title) + " │ " + m.urlInput + "▌"
}

func (m model) renderTabBar() string {
	parts := make([]string, 0, len(m.tabs))
	for _, tab := range m.tabs {
		style := tabStyle
		if tab.ID == m.activeID {
			style = activeTabStyle
		}
		parts = append(parts, style.Render(tab.Title))
	}
	return strings.Join(parts, " ")
}

func (m model) renderContent() string {
	if m.preview == "" {
		return headingStyle.Render("Welcome to ASTERIX") + "\n" +
			"Type a URL and press Enter to load a page. Rendering is limited to a textual preview.\n" +
			"Keys: Enter navigate · Ctrl+T new tab · Tab switch tab · Esc quit"
	}

	content := m.preview
	if m.width > 0 {
		content = lipgloss.NewStyle().Width(m.width).Render(content)
	}
	return headingStyle.Render("Page Preview") + "\n" + content
}
