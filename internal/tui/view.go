package tui

import (
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/wordwrap"
)

func (m *model) View() string {
	parts := []string{
		m.heroView(),
		m.statusBarView(),
		m.emailPanel(),
		m.attachmentPanel(),
		m.buttonView(),
		m.regionsView(),
	}
	if m.warning != "" {
		parts = append(parts, errorStyle.Render(m.warning))
	}
	if m.infoMessage != "" {
		parts = append(parts, helperStyle.Render(m.infoMessage))
	}
	parts = append(parts, m.keyLegendView())
	return joinNonEmpty(parts)
}

func (m *model) heroView() string {
	title := heroTitleStyle.Render(heroTitle)
	panel := lipgloss.JoinHorizontal(lipgloss.Center, renderLogo(), heroSummaryStyle.Render(title))
	return lipgloss.JoinVertical(lipgloss.Left, panel, taglineStyle.Render(heroTagline))
}

func (m *model) statusBarView() string {
	stats := []string{}
	if m.config.Classifier != nil {
		stats = append(stats, m.config.Classifier.Name())
	} else {
		stats = append(stats, "no classifier")
	}
	stats = append(stats, m.healthLabel())
	stats = append(stats, m.jobStatusBadges()...)
	return statusBarStyle.Render(strings.Join(stats, "  •  "))
}

func (m *model) healthLabel() string {
	switch m.health {
	case healthOnline, healthDegraded, healthUnreachable:
		return m.healthDetail
	default:
		return "checking classifier…"
	}
}

func (m *model) jobStatusBadges() []string {
	if len(m.running) == 0 {
		return nil
	}
	counts := map[jobKind]int{}
	for _, snapshot := range m.running {
		counts[snapshot.Kind]++
	}
	kinds := make([]string, 0, len(counts))
	for kind := range counts {
		kinds = append(kinds, string(kind))
	}
	sort.Strings(kinds)
	badges := make([]string, 0, len(kinds))
	for _, kind := range kinds {
		badges = append(badges, fmt.Sprintf("%s ×%d", kind, counts[jobKind(kind)]))
	}
	return badges
}

func (m *model) emailPanel() string {
	return joinLines(
		m.sectionHeader("E-mail", focusEmail),
		m.email.View(),
	)
}

func (m *model) attachmentPanel() string {
	return joinLines(
		m.sectionHeader("Attachment", focusAttachment),
		m.attachment.View(),
		helperStyle.Render("Plain-text files are read and classified; PDF files are rejected."),
	)
}

func (m *model) sectionHeader(label string, area focusArea) string {
	if m.focus == area {
		return focusedHeaderStyle.Render("▸ " + label)
	}
	return sectionHeaderStyle.Render("  " + label)
}

func (m *model) buttonView() string {
	if m.focus == focusClassify {
		return buttonFocusedStyle.Render("Classify")
	}
	return buttonStyle.Render("Classify")
}

// regionsView draws whichever of the loading, error and results regions the
// controller left visible.
func (m *model) regionsView() string {
	width := m.layout.contentWidth
	var parts []string
	if m.panels.Loading.Visible() {
		parts = append(parts, helperStyle.Render(fmt.Sprintf("%s %s", m.spinner.View(), loadingMessage)))
	}
	if m.panels.Error.Visible() {
		parts = append(parts, errorBoxStyle.Render(wordwrap.String(m.panels.Error.Text(), width-6)))
	}
	if m.panels.Results.Visible() {
		body := joinLines(
			sectionHeaderStyle.Render("Category"),
			categoryStyle.Render(m.panels.Category.Text()),
			"",
			sectionHeaderStyle.Render("Suggested Response"),
			wordwrap.String(m.panels.Response.Text(), width-6),
		)
		parts = append(parts, resultsBoxStyle.Render(body))
	}
	return joinNonEmpty(parts)
}

type keyHint struct {
	Key         string
	Description string
}

func (m *model) keyLegendView() string {
	hints := []keyHint{
		{"Ctrl+S", "Classify"},
		{"Tab", "Next field"},
		{"Shift+Tab", "Previous field"},
		{"Esc", "Clear file / quit"},
		{"Ctrl+C", "Quit"},
	}
	var cells []string
	for _, hint := range hints {
		key := keyStyle.Render(hint.Key)
		desc := keyDescStyle.Render(" " + hint.Description + " ")
		cells = append(cells, lipgloss.JoinHorizontal(lipgloss.Top, key, desc))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, cells...)
}

func renderLogo() string {
	width := 0
	lineRunes := make([][]rune, len(logoArtLines))
	for i, line := range logoArtLines {
		runes := []rune(line)
		lineRunes[i] = runes
		if len(runes) > width {
			width = len(runes)
		}
	}
	width++
	height := len(logoArtLines) + 1

	type cell struct {
		r     rune
		style lipgloss.Style
	}

	grid := make([][]cell, height)
	for i := range grid {
		grid[i] = make([]cell, width)
	}
	for y, runes := range lineRunes {
		for x, r := range runes {
			if r != ' ' {
				grid[y+1][x+1] = cell{r: r, style: logoShadowStyle}
			}
		}
	}
	for y, runes := range lineRunes {
		for x, r := range runes {
			if r != ' ' {
				grid[y][x] = cell{r: r, style: logoFaceStyle}
			}
		}
	}

	lines := make([]string, height)
	for y, row := range grid {
		var b strings.Builder
		for _, c := range row {
			if c.r == 0 {
				b.WriteRune(' ')
				continue
			}
			b.WriteString(c.style.Render(string(c.r)))
		}
		lines[y] = b.String()
	}
	return logoContainerStyle.Render(strings.Join(lines, "\n"))
}

func joinNonEmpty(parts []string) string {
	filtered := make([]string, 0, len(parts))
	for _, part := range parts {
		if strings.TrimSpace(part) == "" {
			continue
		}
		filtered = append(filtered, part)
	}
	return strings.Join(filtered, "\n\n")
}

func joinLines(lines ...string) string {
	return strings.Join(lines, "\n")
}

var (
	sectionHeaderStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("81"))
	focusedHeaderStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("205"))
	errorStyle         = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	helperStyle        = lipgloss.NewStyle().Foreground(lipgloss.Color("244"))
	categoryStyle      = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#a3be8c"))

	heroAccentColor        = lipgloss.Color("#ff8c00")
	heroTextColor          = lipgloss.Color("#fff4e6")
	heroEmberColor         = lipgloss.Color("#2b1100")
	heroSecondaryTextColor = lipgloss.Color("#ffd7a8")

	heroTitleStyle     = lipgloss.NewStyle().Bold(true).Foreground(heroAccentColor)
	heroSummaryStyle   = lipgloss.NewStyle().PaddingLeft(2)
	taglineStyle       = lipgloss.NewStyle().Foreground(heroSecondaryTextColor).Italic(true)
	statusBarStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#0f0f0f")).Background(lipgloss.Color("#8ecae6")).Padding(0, 1)
	keyStyle           = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#0f0f0f")).Background(lipgloss.Color("#ffd166")).Padding(0, 1)
	keyDescStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("#e0def4"))
	buttonStyle        = lipgloss.NewStyle().Foreground(lipgloss.Color("#e0def4")).Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("#56526e")).Padding(0, 2)
	buttonFocusedStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#0f0f0f")).Background(heroAccentColor).Border(lipgloss.RoundedBorder()).BorderForeground(heroAccentColor).Padding(0, 2)
	errorBoxStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("9")).Padding(0, 2)
	resultsBoxStyle    = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("#7f5af0")).Padding(1, 2)
	logoFaceStyle      = lipgloss.NewStyle().Bold(true).Foreground(heroTextColor).Background(heroEmberColor)
	logoShadowStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#110600"))
	logoContainerStyle = lipgloss.NewStyle().Padding(0, 1)
	logoArtLines       = []string{
		"╭────────╮",
		"│╲      ╱│",
		"│ ╲ ── ╱ │",
		"╰────────╯",
	}
)
