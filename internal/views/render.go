package views

import (
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"

	"github.com/sandeepkv93/neuroflow/internal/model"
)

type AppData struct {
	Header       string
	Tabs         []string
	ActiveTab    int
	Body         string
	Aside        string
	StatusLine   string
	StatusError  bool
	Footer       string
	Notification string
}

// Styles is the visual surface the theme is projected onto. It is shared by
// pointer so a theme change shows on the next render.
type Styles struct {
	theme model.Theme

	Header    lipgloss.Style
	Tab       lipgloss.Style
	ActiveTab lipgloss.Style
	Panel     lipgloss.Style
	Accent    lipgloss.Style
	Muted     lipgloss.Style
	Status    lipgloss.Style
	Error     lipgloss.Style
	Footer    lipgloss.Style
}

func NewStyles(theme model.Theme) *Styles {
	s := &Styles{}
	s.ApplyTheme(theme)
	return s
}

func (s *Styles) Theme() model.Theme { return s.theme }

func (s *Styles) ApplyTheme(t model.Theme) {
	s.theme = t
	primary := lipgloss.Color(t.Primary)
	background := lipgloss.Color(t.Background)
	text := lipgloss.Color(t.Text)
	card := lipgloss.Color(t.Card)

	s.Header = lipgloss.NewStyle().Bold(true).Foreground(primary)
	s.Tab = lipgloss.NewStyle().Padding(0, 1).Foreground(lipgloss.Color("8"))
	s.ActiveTab = lipgloss.NewStyle().Padding(0, 1).Bold(true).Foreground(card).Background(primary)
	s.Panel = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(primary).BorderBackground(background).
		Foreground(text).Background(background).Padding(0, 1)
	s.Accent = lipgloss.NewStyle().Bold(true).Foreground(primary)
	s.Muted = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	s.Status = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	s.Error = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	s.Footer = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
}

func RenderApp(s *Styles, data AppData) string {
	tabs := make([]string, 0, len(data.Tabs))
	for i, name := range data.Tabs {
		if i == data.ActiveTab {
			tabs = append(tabs, s.ActiveTab.Render(name))
			continue
		}
		tabs = append(tabs, s.Tab.Render(name))
	}

	body := s.Panel.Width(64).Render(data.Body)
	row := body
	if strings.TrimSpace(data.Aside) != "" {
		row = lipgloss.JoinHorizontal(lipgloss.Top, body, s.Panel.Width(40).Render(data.Aside))
	}

	status := s.Status.Render(data.StatusLine)
	if data.StatusError {
		status = s.Error.Render(data.StatusLine)
	}

	lines := []string{
		s.Header.Render(data.Header),
		lipgloss.JoinHorizontal(lipgloss.Top, tabs...),
		row,
		status,
	}
	if data.Notification != "" {
		lines = append(lines, s.Muted.Render(data.Notification))
	}
	if data.Footer != "" {
		lines = append(lines, s.Footer.Render(data.Footer))
	}
	return strings.Join(lines, "\n")
}

func RenderMarkdown(md string, width int) string {
	if strings.TrimSpace(md) == "" {
		return ""
	}
	r, err := glamour.NewTermRenderer(glamour.WithStandardStyle("dark"), glamour.WithWordWrap(width))
	if err != nil {
		return md
	}
	out, err := r.Render(md)
	if err != nil {
		return md
	}
	return strings.TrimSpace(out)
}
