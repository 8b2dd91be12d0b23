// Package console prints the settled regions of a one-shot classify cycle.
package console

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/wordwrap"

	"github.com/csheth/mailtriage/internal/submission"
)

const wrapWidth = 72

var (
	labelStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("81"))
	categoryStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#ffd166"))
	errorStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	helperStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("244"))
)

// Render writes whichever region is visible. It reports whether the error
// region was shown.
func Render(w io.Writer, panels *submission.Panels) (bool, error) {
	var b strings.Builder
	switch {
	case panels.Error.Visible():
		b.WriteString(errorStyle.Render(panels.Error.Text()))
		b.WriteRune('\n')
	case panels.Results.Visible():
		b.WriteString(labelStyle.Render("Category"))
		b.WriteRune('\n')
		b.WriteString(categoryStyle.Render(panels.Category.Text()))
		b.WriteString("\n\n")
		b.WriteString(labelStyle.Render("Suggested response"))
		b.WriteRune('\n')
		b.WriteString(wordwrap.String(panels.Response.Text(), wrapWidth))
		b.WriteRune('\n')
	case panels.Loading.Visible():
		b.WriteString(helperStyle.Render("Classifying…"))
		b.WriteRune('\n')
	default:
		b.WriteString(helperStyle.Render("Nothing to show."))
		b.WriteRune('\n')
	}
	if _, err := fmt.Fprint(w, b.String()); err != nil {
		return false, err
	}
	return panels.Error.Visible(), nil
}
