package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/a-h/searchserver/client"
	"github.com/a-h/searchserver/models"
	"github.com/a-h/searchserver/results"

	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/wordwrap"
)

type TUICommand struct {
	ServerURL string `help:"The URL of the search server." env:"SEARCH_SERVER_URL" default:"http://localhost:8000"`
	APIKey    string `help:"The API key for the search server." env:"SEARCH_SERVER_API_KEY" default:""`
	Summarize bool   `help:"Ask the server to summarize the results." default:"false"`
}

type searchResponse struct {
	query   string
	summary string
	results []models.SearchResult
}

func (c TUICommand) Run(ctx context.Context) (err error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	sc := client.New(c.ServerURL, c.APIKey)

	queries := make(chan string)
	responses := make(chan searchResponse)
	errors := make(chan error)

	go func() {
		for {
			var q string
			select {
			case q = <-queries:
			case <-ctx.Done():
				return
			}
			resp := searchResponse{query: q}
			var err error
			if c.Summarize {
				var sr models.SummaryPostResponse
				sr, err = sc.SummaryPost(ctx, models.SummaryPostRequest{Query: q})
				resp.summary, resp.results = sr.Summary, sr.Results
			} else {
				resp.results, err = sc.SearchPost(ctx, models.SearchPostRequest{Query: q})
			}
			if err != nil {
				select {
				case errors <- err:
				case <-ctx.Done():
					return
				}
				continue
			}
			select {
			case responses <- resp:
			case <-ctx.Done():
				return
			}
		}
	}()

	p := tea.NewProgram(newModel(ctx, queries, responses, errors))
	if _, err = p.Run(); err != nil {
		return err
	}
	return nil
}

// Dracula color scheme.
var (
	Background  = lipgloss.Color("#282a36")
	CurrentLine = lipgloss.Color("#44475a")
	Foreground  = lipgloss.Color("#f8f8f2")
	Comment     = lipgloss.Color("#6272a4")
	Cyan        = lipgloss.Color("#8be9fd")
	Green       = lipgloss.Color("#50fa7b")
	Pink        = lipgloss.Color("#ff79c6")
	Purple      = lipgloss.Color("#bd93f9")
	Red         = lipgloss.Color("#ff5555")
)

var (
	headerStyle   = lipgloss.NewStyle().Background(CurrentLine).Foreground(Purple).Bold(true).Margin(1).Padding(1)
	queryStyle    = lipgloss.NewStyle().Padding(1).Margin(1).MarginBottom(0).Background(Background).Foreground(Pink)
	summaryStyle  = lipgloss.NewStyle().Padding(1).Margin(1).MarginBottom(0).Background(Background).Foreground(Green)
	filenameStyle = lipgloss.NewStyle().Foreground(Cyan).Bold(true)
	scoreStyle    = lipgloss.NewStyle().Foreground(Comment)
	resultStyle   = lipgloss.NewStyle().Padding(0, 1).Margin(1, 1, 0).Foreground(Foreground)
	errorStyle    = lipgloss.NewStyle().Padding(1).Margin(1).Foreground(Red)
)

const header = "Search documents. Press enter to search, esc to quit."

type model struct {
	viewport viewport.Model
	textarea textarea.Model
	err      error
	ctx      context.Context
	width    int
	pending  string

	queries   chan string
	responses chan searchResponse
	errors    chan error
}

func newModel(ctx context.Context, queries chan string, responses chan searchResponse, errors chan error) model {
	ta := textarea.New()
	ta.Placeholder = "Search..."
	ta.Focus()

	ta.Prompt = "┃ "
	ta.CharLimit = 280

	ta.SetHeight(1)

	// Remove cursor line styling
	ta.FocusedStyle.CursorLine = lipgloss.NewStyle()

	ta.ShowLineNumbers = false

	vp := viewport.New(80, 20)
	vp.SetContent(headerStyle.Render(header))

	ta.KeyMap.InsertNewline.SetEnabled(false)

	return model{
		ctx:       ctx,
		textarea:  ta,
		viewport:  vp,
		width:     80,
		queries:   queries,
		responses: responses,
		errors:    errors,
	}
}

func (m model) Init() tea.Cmd {
	return tea.Batch(
		textarea.Blink,
		m.subscribeToResponses(),
		m.subscribeToErrors(),
	)
}

func (m model) subscribeToResponses() tea.Cmd {
	return func() tea.Msg {
		select {
		case x := <-m.responses:
			return x
		case <-m.ctx.Done():
			return nil
		}
	}
}

func (m model) subscribeToErrors() tea.Cmd {
	return func() tea.Msg {
		select {
		case x := <-m.errors:
			return x
		case <-m.ctx.Done():
			return nil
		}
	}
}

// send queues the query without blocking the event loop.
func (m model) send(q string) tea.Cmd {
	return func() tea.Msg {
		select {
		case m.queries <- q:
		case <-m.ctx.Done():
		}
		return nil
	}
}

func formatResponse(resp searchResponse, width int) string {
	var sb strings.Builder
	sb.WriteString(queryStyle.Render(wordwrap.String("🔎 "+resp.query, width)))
	sb.WriteString("\n")
	if resp.summary != "" {
		sb.WriteString(summaryStyle.Render(wordwrap.String("✨ "+resp.summary, width)))
		sb.WriteString("\n")
	}
	if len(resp.results) == 0 {
		sb.WriteString(resultStyle.Render("No results."))
		sb.WriteString("\n")
	}
	for _, r := range resp.results {
		sb.WriteString(formatResult(r, width))
		sb.WriteString("\n")
	}
	return sb.String()
}

func formatResult(r models.SearchResult, width int) string {
	title := filenameStyle.Render(r.Filename) + " " + scoreStyle.Render(fmt.Sprintf("(%.2f)", r.Relevance))
	body := wordwrap.String(strings.TrimSpace(results.PlainText(r.Summary)), width)
	return resultStyle.Render(title + "\n" + body)
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case error:
		m.err = msg
		m.viewport.SetContent(errorStyle.Render(wordwrap.String("Search for "+m.pending+" failed: "+msg.Error(), m.width)))
		return m, m.subscribeToErrors()
	case searchResponse:
		m.err = nil
		m.viewport.SetContent(formatResponse(msg, m.width))
		m.viewport.GotoTop()
		return m, m.subscribeToResponses()
	case tea.WindowSizeMsg:
		m.width = max(msg.Width-6, 20)
		m.viewport.Width = msg.Width
		m.viewport.Height = msg.Height - m.textarea.Height() - 3
		m.textarea.SetWidth(msg.Width)
		return m, nil
	case tea.KeyMsg:
		switch msg.String() {
		case "esc", "ctrl+c":
			return m, tea.Quit
		case "pgup", "pgdown":
			var cmd tea.Cmd
			m.viewport, cmd = m.viewport.Update(msg)
			return m, cmd
		case "enter":
			v := strings.TrimSpace(m.textarea.Value())
			if v == "" {
				return m, nil
			}
			m.textarea.Reset()
			m.pending = v
			m.viewport.SetContent(scoreStyle.Render(wordwrap.String("Searching for "+v+"...", m.width)))
			return m, m.send(v)
		default:
			// Send all other keypresses to the textarea.
			var cmd tea.Cmd
			m.textarea, cmd = m.textarea.Update(msg)
			return m, cmd
		}

	case cursor.BlinkMsg:
		// Textarea should also process cursor blinks.
		var cmd tea.Cmd
		m.textarea, cmd = m.textarea.Update(msg)
		return m, cmd

	default:
		return m, nil
	}
}

func (m model) View() string {
	return fmt.Sprintf("%s\n\n%s",
		m.viewport.View(),
		m.textarea.View(),
	) + "\n\n"
}
