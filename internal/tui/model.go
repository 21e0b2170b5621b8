package tui

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"focusbot/internal/apiclient"
	"focusbot/internal/domain"
	"focusbot/internal/service"
)

// Backend is the TUI-facing subset of the FocusBot API client.
type Backend interface {
	SendMessage(ctx context.Context, message string) (*service.ChatReply, error)
	ClearHistory(ctx context.Context) error
	ExportTranscript(ctx context.Context, format domain.ExportFormat) (*apiclient.Download, error)
	UploadFile(ctx context.Context, path string) (*service.DocumentInfo, error)
	Page(ctx context.Context, index int) (*domain.PageView, error)
	Summarize(ctx context.Context) (*service.SummaryResult, error)
	Ask(ctx context.Context, question string) (*service.Answer, error)
	EmbedVideo(ctx context.Context, url string) (*domain.VideoEmbed, error)
	Convert(ctx context.Context, input service.ConvertInput) (*domain.Conversion, error)
}

type page int

const (
	pageChat page = iota
	pageDocument
	pageVideo
	pageCurrency
	pageCount
)

var pageTitles = [pageCount]string{"Chat", "Document", "Video", "Currency"}

var pagePlaceholders = [pageCount]string{
	"Message FocusBot (/clear, /export csv|xlsx)",
	"/open <path>, /page <n>, /summary, or ask a question",
	"Paste a YouTube URL",
	"<amount> <FROM> <TO>, e.g. 10 USD EUR",
}

type pageState struct {
	content string
	status  string
}

// resultMsg carries the outcome of one backend call back into Update.
type resultMsg struct {
	page    page
	content string
	status  string
	keep    bool
	err     error
}

// Model is the Bubble Tea model for the terminal client.
type Model struct {
	backend  Backend
	timeout  time.Duration
	input    textinput.Model
	viewport viewport.Model
	pages    [pageCount]pageState
	active   page
	busy     bool
	ready    bool
	server   string
}

// New creates a new TUI model bound to backend.
func New(backend Backend, server string, timeout time.Duration) Model {
	ti := textinput.New()
	ti.Prompt = "> "
	ti.Placeholder = pagePlaceholders[pageChat]
	ti.Focus()
	ti.CharLimit = 0
	vp := viewport.New(0, 0)

	m := Model{backend: backend, timeout: timeout, input: ti, viewport: vp, server: server}
	m.pages[pageChat].status = "Type a message and press Enter."
	m.pages[pageDocument].status = "Open a PDF, DOCX or TXT file with /open <path>."
	m.pages[pageVideo].status = "Paste a YouTube URL and press Enter."
	m.pages[pageCurrency].status = "Supported: " + strings.Join(domain.SupportedCurrencies, " ")
	m.pages[pageChat].content = "No messages yet."
	m.pages[pageDocument].content = "No document uploaded."
	m.viewport.SetContent(m.pages[pageChat].content)
	return m
}

// Init initializes the model (text input cursor blink).
func (m Model) Init() tea.Cmd { return textinput.Blink }

// Update handles key, window and result events.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.ready = true
		_, bh := bodyBoxStyle.GetFrameSize()
		_, ih := inputBoxStyle.GetFrameSize()
		reserved := 2 + 1 + ih + 1 // tabs + status + input + spacer
		vh := msg.Height - reserved - bh
		m.viewport.Width = max(20, msg.Width-4)
		m.viewport.Height = max(3, vh)
		m.viewport.SetContent(m.pages[m.active].content)
		return m, nil

	case resultMsg:
		st := &m.pages[msg.page]
		m.busy = false
		if msg.err != nil {
			st.status = "Error: " + describeError(msg.err)
		} else {
			if !msg.keep {
				st.content = msg.content
			}
			st.status = msg.status
		}
		if msg.page == m.active {
			m.viewport.SetContent(st.content)
			m.viewport.GotoBottom()
		}
		return m, nil

	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyCtrlD, tea.KeyEsc:
			return m, tea.Quit
		case tea.KeyTab:
			return m.switchPage((m.active + 1) % pageCount), nil
		case tea.KeyShiftTab:
			return m.switchPage((m.active + pageCount - 1) % pageCount), nil
		case tea.KeyPgUp, tea.KeyPgDown, tea.KeyUp, tea.KeyDown:
			var cmd tea.Cmd
			m.viewport, cmd = m.viewport.Update(msg)
			return m, cmd
		case tea.KeyEnter:
			line := strings.TrimSpace(m.input.Value())
			if line == "" || m.busy {
				return m, nil
			}
			m.input.SetValue("")
			cmd := m.submit(line)
			if cmd != nil {
				m.busy = true
				m.pages[m.active].status = "Working..."
			}
			return m, cmd
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m Model) switchPage(p page) Model {
	m.active = p
	m.input.Placeholder = pagePlaceholders[p]
	m.viewport.SetContent(m.pages[p].content)
	return m
}

// submit turns one input line on the active page into a backend command.
func (m *Model) submit(line string) tea.Cmd {
	switch m.active {
	case pageChat:
		return m.chatCommand(line)
	case pageDocument:
		return m.documentCommand(line)
	case pageVideo:
		return m.call(pageVideo, func(ctx context.Context, b Backend) resultMsg {
			embed, err := b.EmbedVideo(ctx, line)
			if err != nil {
				return resultMsg{err: err}
			}
			return resultMsg{
				content: fmt.Sprintf("Video ID: %s\nEmbed URL: %s\n\n%s", embed.VideoID, embed.EmbedURL, embed.EmbedHTML),
				status:  "Video ready.",
			}
		})
	case pageCurrency:
		input, err := ParseConversion(line)
		if err != nil {
			m.pages[pageCurrency].status = "Error: " + err.Error()
			return nil
		}
		return m.call(pageCurrency, func(ctx context.Context, b Backend) resultMsg {
			conv, err := b.Convert(ctx, input)
			if err != nil {
				return resultMsg{err: err}
			}
			return resultMsg{content: conv.Summary + "\n\n" + conv.RateCaption, status: "Converted."}
		})
	}
	return nil
}

func (m *Model) chatCommand(line string) tea.Cmd {
	switch {
	case line == "/clear":
		return m.call(pageChat, func(ctx context.Context, b Backend) resultMsg {
			if err := b.ClearHistory(ctx); err != nil {
				return resultMsg{err: err}
			}
			return resultMsg{content: "No messages yet.", status: "Conversation cleared."}
		})
	case strings.HasPrefix(line, "/export"):
		format, err := domain.ParseExportFormat(strings.TrimSpace(strings.TrimPrefix(line, "/export")))
		if err != nil {
			m.pages[pageChat].status = "Error: use /export csv or /export xlsx"
			return nil
		}
		return m.call(pageChat, func(ctx context.Context, b Backend) resultMsg {
			dl, err := b.ExportTranscript(ctx, format)
			if err != nil {
				return resultMsg{err: err}
			}
			name := dl.FileName
			if name == "" {
				name = "focusbot_chat." + string(format)
			}
			if err := os.WriteFile(name, dl.Data, 0o644); err != nil {
				return resultMsg{err: err}
			}
			return resultMsg{keep: true, status: "Saved " + name}
		})
	}
	return m.call(pageChat, func(ctx context.Context, b Backend) resultMsg {
		reply, err := b.SendMessage(ctx, line)
		if err != nil {
			return resultMsg{err: err}
		}
		return resultMsg{content: renderHistory(reply.History), status: "Reply received."}
	})
}

func (m *Model) documentCommand(line string) tea.Cmd {
	switch {
	case strings.HasPrefix(line, "/open "):
		path := strings.TrimSpace(strings.TrimPrefix(line, "/open "))
		return m.call(pageDocument, func(ctx context.Context, b Backend) resultMsg {
			info, err := b.UploadFile(ctx, path)
			if err != nil {
				return resultMsg{err: err}
			}
			content := fmt.Sprintf("%s (%s, %d pages)\n\n", info.FileName, info.Format, info.TotalPages)
			if info.FirstPage != nil {
				content += renderPage(info.FirstPage)
			}
			return resultMsg{content: content, status: fmt.Sprintf("Loaded %s.", info.FileName)}
		})
	case strings.HasPrefix(line, "/page"):
		n, err := strconv.Atoi(strings.TrimSpace(strings.TrimPrefix(line, "/page")))
		if err != nil {
			m.pages[pageDocument].status = "Error: use /page <n>"
			return nil
		}
		return m.call(pageDocument, func(ctx context.Context, b Backend) resultMsg {
			view, err := b.Page(ctx, n)
			if err != nil {
				return resultMsg{err: err}
			}
			return resultMsg{content: renderPage(view), status: fmt.Sprintf("Page %d of %d.", view.Index, view.TotalPages)}
		})
	case line == "/summary":
		return m.call(pageDocument, func(ctx context.Context, b Backend) resultMsg {
			res, err := b.Summarize(ctx)
			if err != nil {
				return resultMsg{err: err}
			}
			return resultMsg{content: "Summary\n\n" + res.Summary, status: "Summary ready."}
		})
	}
	return m.call(pageDocument, func(ctx context.Context, b Backend) resultMsg {
		ans, err := b.Ask(ctx, line)
		if err != nil {
			return resultMsg{err: err}
		}
		return resultMsg{content: "Q: " + ans.Question + "\n\nA: " + ans.Answer, status: "Answered."}
	})
}

// call runs fn off the event loop with the request timeout and tags the
// result with p.
func (m *Model) call(p page, fn func(ctx context.Context, b Backend) resultMsg) tea.Cmd {
	backend, timeout := m.backend, m.timeout
	return func() tea.Msg {
		ctx := context.Background()
		if timeout > 0 {
			var cancel context.CancelFunc
			ctx, cancel = context.WithTimeout(ctx, timeout)
			defer cancel()
		}
		res := fn(ctx, backend)
		res.page = p
		return res
	}
}

// View renders the tab bar, the active page and the input line.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}
	tabs := make([]string, 0, pageCount)
	for i, title := range pageTitles {
		if page(i) == m.active {
			tabs = append(tabs, activeTabStyle.Render(title))
		} else {
			tabs = append(tabs, tabStyle.Render(title))
		}
	}
	header := lipgloss.JoinHorizontal(lipgloss.Top, tabs...) + "  " + serverStyle.Render(m.server)
	body := bodyBoxStyle.Render(m.viewport.View())
	input := inputBoxStyle.Render(m.input.View())
	status := m.pages[m.active].status
	statusLine := statusStyle.Render(status)
	if strings.HasPrefix(status, "Error:") {
		statusLine = errorStyle.Render(status)
	}
	return header + "\n" + body + "\n" + input + "\n" + statusLine + "\n" + helpStyle.Render("tab: switch page  pgup/pgdn: scroll  esc: quit")
}

// ParseConversion parses "<amount> <FROM> <TO>".
func ParseConversion(line string) (service.ConvertInput, error) {
	fields := strings.Fields(line)
	if len(fields) != 3 {
		return service.ConvertInput{}, fmt.Errorf("usage: <amount> <FROM> <TO>")
	}
	amount, err := strconv.ParseFloat(fields[0], 64)
	if err != nil {
		return service.ConvertInput{}, fmt.Errorf("invalid amount %q", fields[0])
	}
	return service.ConvertInput{
		From:   strings.ToUpper(fields[1]),
		To:     strings.ToUpper(fields[2]),
		Amount: amount,
	}, nil
}

func renderHistory(history []domain.ChatTurn) string {
	if len(history) == 0 {
		return "No messages yet."
	}
	var b strings.Builder
	for i, turn := range history {
		if i > 0 {
			b.WriteString("\n\n")
		}
		if turn.Role == domain.RoleUser {
			b.WriteString(userStyle.Render("You: "))
		} else {
			b.WriteString(botStyle.Render("FocusBot: "))
		}
		b.WriteString(turn.Message)
	}
	return b.String()
}

func renderPage(view *domain.PageView) string {
	s := fmt.Sprintf("Page %d of %d\n\n%s", view.Index, view.TotalPages, view.Text)
	if view.Truncated {
		s += "\n\n(truncated)"
	}
	return s
}

func describeError(err error) string {
	var apiErr *apiclient.APIError
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message
	}
	return err.Error()
}

var (
	tabStyle       = lipgloss.NewStyle().Padding(0, 2).Foreground(lipgloss.Color("8"))
	activeTabStyle = lipgloss.NewStyle().Padding(0, 2).Bold(true).Underline(true).Foreground(lipgloss.Color("12"))
	serverStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	bodyBoxStyle   = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
	inputBoxStyle  = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
	statusStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	errorStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	helpStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	userStyle      = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	botStyle       = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("11"))
)
