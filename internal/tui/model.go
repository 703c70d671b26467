package tui

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"docchat/internal/domain"
)

// ChatPort is the TUI-facing subset of the chat service.
type ChatPort interface {
	Respond(ctx context.Context, userMessage string, history []domain.Turn) (string, error)
	DocumentsLoaded() bool
}

// Model is the Bubble Tea model for the chat application. It owns the
// append-only conversation history; the service only ever reads it.
type Model struct {
	service  ChatPort
	input    textinput.Model
	viewport viewport.Model
	history  []domain.Turn
	status   string
	banner   string
	waiting  bool
	ready    bool
}

type responseMsg struct {
	reply string
	err   error
}

// New creates a chat model. banner describes the loaded corpus (or its
// absence) and stays visible under the title.
func New(service ChatPort, banner string) Model {
	ti := textinput.New()
	ti.Prompt = "> "
	ti.Placeholder = "Type your message and press Enter"
	ti.Focus()
	ti.CharLimit = 0
	vp := viewport.New(0, 0)
	return Model{
		service:  service,
		input:    ti,
		viewport: vp,
		banner:   banner,
		status:   "Ready. /clear resets the conversation, Ctrl+C quits.",
	}
}

func (m Model) Init() tea.Cmd { return textinput.Blink }

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.ready = true
		_, th := transcriptStyle.GetFrameSize()
		_, ih := inputStyle.GetFrameSize()
		reserved := 3 + ih // title + banner + status
		vh := msg.Height - reserved - th
		if vh < 3 {
			vh = 3
		}
		m.viewport.Width = max(20, msg.Width)
		m.viewport.Height = vh
		m.viewport.SetContent(m.renderTranscript())
		m.viewport.GotoBottom()
		return m, nil
	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC || msg.Type == tea.KeyCtrlD {
			return m, tea.Quit
		}
		if msg.String() == "enter" && !m.waiting {
			text := strings.TrimSpace(m.input.Value())
			switch {
			case text == "":
				return m, nil
			case text == "/clear":
				m.history = nil
				m.input.SetValue("")
				m.status = "Conversation cleared."
				m.viewport.SetContent(m.renderTranscript())
				return m, nil
			default:
				m.input.SetValue("")
				m.waiting = true
				m.status = "Thinking..."
				cmd := m.respondCmd(text)
				m.history = append(m.history, domain.Turn{Role: domain.RoleUser, Content: text})
				m.viewport.SetContent(m.renderTranscript())
				m.viewport.GotoBottom()
				return m, cmd
			}
		}
	case responseMsg:
		m.waiting = false
		if msg.err != nil {
			m.status = "Error: " + msg.err.Error()
		} else {
			m.history = append(m.history, domain.Turn{Role: domain.RoleAssistant, Content: msg.reply})
			m.status = "Ready."
		}
		m.viewport.SetContent(m.renderTranscript())
		m.viewport.GotoBottom()
		return m, nil
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// respondCmd captures the history before the new user turn is appended;
// the service receives the prior conversation and the message separately.
func (m Model) respondCmd(text string) tea.Cmd {
	prior := make([]domain.Turn, len(m.history))
	copy(prior, m.history)
	svc := m.service
	return func() tea.Msg {
		reply, err := svc.Respond(context.Background(), text, prior)
		return responseMsg{reply: reply, err: err}
	}
}

func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}
	title := titleStyle.Render("docchat")
	banner := bannerStyle.Render(m.banner)
	transcript := transcriptStyle.Render(m.viewport.View())
	input := inputStyle.Render(m.input.View())
	status := statusStyle.Render(m.status)
	return title + "\n" + banner + "\n" + transcript + "\n" + input + "\n" + status
}

func (m Model) renderTranscript() string {
	if len(m.history) == 0 {
		return "No messages yet. Ask about your documents, or anything else."
	}
	var b strings.Builder
	for i, turn := range m.history {
		if i > 0 {
			b.WriteString("\n\n")
		}
		switch turn.Role {
		case domain.RoleUser:
			b.WriteString(userStyle.Render("You: "))
		case domain.RoleAssistant:
			b.WriteString(assistantStyle.Render("AI: "))
		}
		b.WriteString(turn.Content)
	}
	return b.String()
}

var (
	titleStyle      = lipgloss.NewStyle().Bold(true)
	bannerStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	transcriptStyle = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
	inputStyle      = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
	statusStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	userStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("12")).Bold(true)
	assistantStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("11")).Bold(true)
)

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}
