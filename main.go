//go:build !gui

package main

import (
	"context"
	"fmt"
	"image"
	"io"
	"log"
	"os"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/metcalfc/prr/internal/config"
	"github.com/metcalfc/prr/internal/reader"
	"github.com/spf13/cobra"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FFAA00"))

	boldStyle = lipgloss.NewStyle().Bold(true)

	statusStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#888888")).
			Padding(0, 1)

	pageStyle = lipgloss.NewStyle().
			Padding(1, 2)

	spinnerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFAA00"))
)

type keyMap struct {
	Prev key.Binding
	Next key.Binding
	Up   key.Binding
	Down key.Binding
	Quit key.Binding
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Prev, k.Next, k.Up, k.Down, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}

var keys = keyMap{
	Prev: key.NewBinding(
		key.WithKeys("left", "h", "p", "pgup"),
		key.WithHelp("←", "previous page"),
	),
	Next: key.NewBinding(
		key.WithKeys("right", "l", "n", " ", "pgdown"),
		key.WithHelp("→/space", "next page"),
	),
	Up: key.NewBinding(
		key.WithKeys("up", "k"),
		key.WithHelp("↑", "scroll up"),
	),
	Down: key.NewBinding(
		key.WithKeys("down", "j"),
		key.WithHelp("↓", "scroll down"),
	),
	Quit: key.NewBinding(
		key.WithKeys("q", "Q", "esc", "ctrl+c"),
		key.WithHelp("q", "quit"),
	),
}

// loadedMsg carries the result of the load command back to Update.
type loadedMsg struct {
	book *book
	err  error
}

type model struct {
	book     *book
	source   string
	load     tea.Cmd
	err      error
	spinner  spinner.Model
	help     help.Model
	page     viewport.Model
	cover    string
	quitting bool
	width    int
	height   int
}

func newModel(source string, load tea.Cmd) model {
	m := model{
		source:  source,
		load:    load,
		spinner: spinner.New(spinner.WithSpinner(spinner.Dot), spinner.WithStyle(spinnerStyle)),
		help:    help.New(),
		page:    viewport.New(80, 22),
		width:   80,
		height:  24,
	}
	// page turns own the space and paging keys
	m.page.KeyMap = viewport.KeyMap{Up: keys.Up, Down: keys.Down}
	m.help.Width = m.width
	return m
}

// pageHeight leaves one row for the status line and one for help.
func (m model) pageHeight() int {
	return max(m.height-2, 1)
}

// syncPage wraps the current page to the window width and loads it into
// the viewport, scrolled to the top.
func (m *model) syncPage() {
	m.page.Width = m.width
	m.page.Height = m.pageHeight()
	if m.book == nil {
		return
	}

	var text string
	switch m.book.View() {
	case reader.ViewCover:
		return
	case reader.ViewInfo:
		text = renderMarkup(m.book.Text())
	default:
		text = strings.TrimRight(m.book.Text(), "\n")
	}
	m.page.SetContent(pageStyle.Width(m.width).Render(text))
	m.page.GotoTop()
}

func (m model) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.load)
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case loadedMsg:
		if msg.err != nil {
			m.err = msg.err
			m.quitting = true
			return m, tea.Quit
		}
		m.book = msg.book
		m.cover = m.renderCover()
		m.syncPage()
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Quit):
			if err := m.book.savePosition(); err != nil {
				log.Printf("failed to save reading position: %v", err)
			}
			m.quitting = true
			return m, tea.Quit

		case key.Matches(msg, keys.Next):
			if m.book != nil && m.book.Next() {
				m.syncPage()
			}
			return m, nil

		case key.Matches(msg, keys.Prev):
			if m.book != nil && m.book.Prev() {
				m.syncPage()
			}
			return m, nil

		case key.Matches(msg, keys.Up, keys.Down):
			var cmd tea.Cmd
			m.page, cmd = m.page.Update(msg)
			return m, cmd
		}

	case tea.MouseMsg:
		var cmd tea.Cmd
		m.page, cmd = m.page.Update(msg)
		return m, cmd

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.cover = m.renderCover()
		m.syncPage()
		return m, nil

	case spinner.TickMsg:
		if m.book != nil || m.quitting {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	return m, nil
}

func (m model) View() string {
	if m.quitting {
		return ""
	}
	if m.book == nil {
		return fmt.Sprintf("\n  %s Loading %s...\n", m.spinner.View(), m.source)
	}

	current, total := m.book.Progress()
	status := fmt.Sprintf("Page %d/%d", current, total)
	if title := m.book.CurrentChapterTitle(); title != "" {
		status += " | " + title
	}

	body := m.page.View()
	if m.book.View() == reader.ViewCover {
		body = m.coverView()
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		statusStyle.MaxWidth(m.width).Render(status),
		body,
		m.help.View(keys),
	)
}

func (m model) coverView() string {
	if m.cover != "" {
		return lipgloss.PlaceHorizontal(m.width, lipgloss.Center, m.cover)
	}
	b := m.book.Book
	text := titleStyle.Render(b.Title)
	if b.Author != "" {
		text += "\n" + b.Author
	}
	return lipgloss.Place(m.width, m.pageHeight(), lipgloss.Center, lipgloss.Center, text)
}

// renderCover scales the cover to the window, leaving room for the status
// and help lines. Two image rows share one terminal row.
func (m model) renderCover() string {
	if m.book == nil || len(m.book.Book.Cover) == 0 {
		return ""
	}
	cols := max(m.width-2, 10)
	rows := max(m.height-2, 5) * 2
	img, err := reader.CoverThumbnail(m.book.Book.Cover, cols, rows)
	if err != nil {
		log.Printf("cover not shown: %v", err)
		return ""
	}
	return halfBlocks(img)
}

// halfBlocks draws img with upper half block characters, the top pixel as
// foreground and the bottom pixel as background.
func halfBlocks(img image.Image) string {
	b := img.Bounds()
	var sb strings.Builder
	for y := b.Min.Y; y < b.Max.Y; y += 2 {
		for x := b.Min.X; x < b.Max.X; x++ {
			style := lipgloss.NewStyle().Foreground(hexColor(img, x, y))
			if y+1 < b.Max.Y {
				style = style.Background(hexColor(img, x, y+1))
			}
			sb.WriteString(style.Render("▀"))
		}
		if y+2 < b.Max.Y {
			sb.WriteString("\n")
		}
	}
	return sb.String()
}

func hexColor(img image.Image, x, y int) lipgloss.Color {
	r, g, b, _ := img.At(x, y).RGBA()
	return lipgloss.Color(fmt.Sprintf("#%02x%02x%02x", r>>8, g>>8, b>>8))
}

// renderMarkup styles the <b></b> runs of an info page.
func renderMarkup(text string) string {
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		var sb strings.Builder
		for _, seg := range reader.ParseMarkup(line) {
			if seg.Bold {
				sb.WriteString(boldStyle.Render(seg.Text))
			} else {
				sb.WriteString(seg.Text)
			}
		}
		lines[i] = sb.String()
	}
	return strings.Join(lines, "\n")
}

func runTUI(cmd *cobra.Command, cfg config.Config, source string, fresh bool) error {
	logger := log.New(io.Discard, "", 0)
	if cfg.LogFile != "" {
		f, err := tea.LogToFile(cfg.LogFile, "prr")
		if err != nil {
			return fmt.Errorf("failed to open log file: %w", err)
		}
		defer f.Close()
		logger = log.Default()
	} else {
		log.SetOutput(io.Discard)
	}

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	load := func() tea.Msg {
		b, err := openBook(ctx, cfg, source, fresh, logger)
		return loadedMsg{book: b, err: err}
	}

	p := tea.NewProgram(newModel(source, load), tea.WithAltScreen(), tea.WithMouseCellMotion())
	final, err := p.Run()
	if err != nil {
		return err
	}
	if m, ok := final.(model); ok && m.err != nil {
		return m.err
	}
	return nil
}

func main() {
	cmd := newRootCmd("Page through EPUB books in the terminal", runTUI)
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
