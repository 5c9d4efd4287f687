// Package preview is an interactive terminal browser for the jobs a sweep
// matched, used to inspect results before pointing delivery at a real
// channel.
package preview

import (
	"fmt"
	"os/exec"
	"runtime"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/jobsweep/jobsweep/internal/model"
)

// Lines per job item in the list view (title + subtitle + blank separator).
const jobItemHeight = 3

type viewState int

const (
	viewList viewState = iota
	viewDetail
)

var (
	borderStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("39"))

	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Padding(0, 1).
			Foreground(lipgloss.Color("39"))

	statusBarStyle = lipgloss.NewStyle().
			Padding(0, 1).
			Foreground(lipgloss.Color("252")).
			Background(lipgloss.Color("236"))

	jobTitleStyle = lipgloss.NewStyle().
			Bold(true)

	jobSubtitleStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("245"))

	selectedJobTitleStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color("15")).
				Background(lipgloss.Color("24"))

	selectedJobSubtitleStyle = lipgloss.NewStyle().
					Foreground(lipgloss.Color("252")).
					Background(lipgloss.Color("24"))

	detailLabelStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color("39")).
				Width(14)

	detailTitleStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color("15")).
				MarginBottom(1)
)

type previewModel struct {
	jobs     []model.Job
	list     viewport.Model
	cursor   int
	width    int
	height   int
	ready    bool
	view     viewState
	detail   viewport.Model
	selected model.Job
}

func (m previewModel) Init() tea.Cmd {
	return nil
}

func (m previewModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.recalcLayout()
		if m.view == viewDetail {
			m.detail.Width = m.width - 4
			m.detail.Height = m.height - 4
			m.detail.SetContent(m.renderDetail())
		}
		return m, nil

	case tea.KeyMsg:
		if m.view == viewDetail {
			return m.updateDetailView(msg)
		}
		return m.updateListView(msg)
	}

	return m, nil
}

func (m previewModel) updateListView(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c", "esc":
		return m, tea.Quit
	case "up", "k":
		m.moveCursor(-1)
		return m, nil
	case "down", "j":
		m.moveCursor(1)
		return m, nil
	case "o":
		if len(m.jobs) > 0 {
			openURL(m.jobs[m.cursor].URL)
		}
		return m, nil
	case "enter":
		return m.openDetailView()
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m previewModel) updateDetailView(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "esc", "backspace":
		m.view = viewList
		return m, nil
	case "o":
		openURL(m.selected.URL)
		return m, nil
	}

	var cmd tea.Cmd
	m.detail, cmd = m.detail.Update(msg)
	return m, cmd
}

func (m *previewModel) moveCursor(delta int) {
	m.cursor = clamp(m.cursor+delta, 0, max(len(m.jobs)-1, 0))
	m.list.SetContent(renderJobs(m.jobs, m.cursor))
	m.ensureCursorVisible()
}

func (m *previewModel) ensureCursorVisible() {
	cursorTop := m.cursor * jobItemHeight
	cursorBottom := cursorTop + jobItemHeight - 1

	if cursorTop < m.list.YOffset {
		m.list.SetYOffset(cursorTop)
	} else if cursorBottom >= m.list.YOffset+m.list.Height {
		m.list.SetYOffset(cursorBottom - m.list.Height + 1)
	}
}

func (m previewModel) openDetailView() (tea.Model, tea.Cmd) {
	if len(m.jobs) == 0 {
		return m, nil
	}
	m.view = viewDetail
	m.selected = m.jobs[m.cursor]
	m.detail = viewport.New(m.width-4, m.height-4)
	m.detail.SetContent(m.renderDetail())
	return m, nil
}

func (m *previewModel) recalcLayout() {
	// Header (1) + border top/bottom (2) + status bar (1) = 4 lines overhead.
	listWidth := max(m.width-4, 20)
	listHeight := max(m.height-4, 5)

	if !m.ready {
		m.list = viewport.New(listWidth, listHeight)
		m.ready = true
	} else {
		m.list.Width = listWidth
		m.list.Height = listHeight
	}
	m.list.SetContent(renderJobs(m.jobs, m.cursor))
}

func (m previewModel) View() string {
	if !m.ready {
		return "Initializing..."
	}
	if m.view == viewDetail {
		return m.viewDetail()
	}
	return m.viewList()
}

func (m previewModel) viewList() string {
	header := headerStyle.Render(fmt.Sprintf(" Matched Jobs (%d)", len(m.jobs)))
	pane := borderStyle.Width(m.width - 2).Render(m.list.View())
	status := statusBarStyle.Width(m.width).Render(" ↑/↓ cursor  Enter detail  o open URL  q quit")
	return header + "\n" + pane + "\n" + status
}

func (m previewModel) viewDetail() string {
	title := detailTitleStyle.Render("Job Details")
	content := borderStyle.Width(m.width - 2).Render(m.detail.View())
	status := statusBarStyle.Width(m.width).Render(" o open URL  esc/backspace back  ↑/↓ scroll  q quit")
	return title + "\n" + content + "\n" + status
}

func (m previewModel) renderDetail() string {
	j := m.selected
	var b strings.Builder

	addField := func(label, value string) {
		if value == "" {
			return
		}
		b.WriteString(detailLabelStyle.Render(label))
		b.WriteString(value)
		b.WriteByte('\n')
	}

	addField("Title", j.Title)
	addField("Company", j.Company)
	addField("Location", j.Location)
	addField("Type", string(j.Type))
	addField("Experience", j.Experience)
	addField("Skills", j.Skills)
	addField("Source", j.Source)

	if j.PostedAt != nil {
		addField("Posted At", j.PostedAt.UTC().Format("2006-01-02 15:04 MST"))
	}

	b.WriteByte('\n')
	addField("URL", j.URL)

	return b.String()
}

func renderJobs(jobs []model.Job, cursor int) string {
	if len(jobs) == 0 {
		return "  (no matching jobs)"
	}

	var b strings.Builder
	for i, j := range jobs {
		titleSt := jobTitleStyle
		subtitleSt := jobSubtitleStyle
		prefix := "  "
		if i == cursor {
			titleSt = selectedJobTitleStyle
			subtitleSt = selectedJobSubtitleStyle
			prefix = "> "
		}

		b.WriteString(prefix)
		b.WriteString(titleSt.Render(j.Title))
		b.WriteByte('\n')

		b.WriteString(prefix)
		b.WriteString(subtitleSt.Render(fmt.Sprintf("%s · %s · %s", j.Company, j.Location, j.Source)))
		b.WriteByte('\n')

		if i < len(jobs)-1 {
			b.WriteByte('\n')
		}
	}
	return b.String()
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// openURL opens url in the default system browser, fire-and-forget.
func openURL(url string) {
	var cmd *exec.Cmd
	switch runtime.GOOS {
	case "darwin":
		cmd = exec.Command("open", url)
	case "linux":
		cmd = exec.Command("xdg-open", url)
	case "windows":
		cmd = exec.Command("cmd", "/c", "start", url)
	default:
		return
	}
	_ = cmd.Start()
}

// Run launches the interactive preview over the given jobs.
func Run(jobs []model.Job) error {
	m := previewModel{jobs: jobs}
	p := tea.NewProgram(m, tea.WithAltScreen())
	_, err := p.Run()
	return err
}
