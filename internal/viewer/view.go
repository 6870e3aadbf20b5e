package viewer

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/stlalpha/ansiview/internal/sauce"
)

var (
	statusStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("0")).
			Background(lipgloss.Color("7"))

	popupStyle = lipgloss.NewStyle().
			Border(lipgloss.ThickBorder()).
			BorderForeground(lipgloss.Color("6")).
			Padding(0, 1)

	popupTitleStyle = lipgloss.NewStyle().Bold(true)
)

func (m Model) View() string {
	if !m.ready {
		return "\n  loading..."
	}

	body := m.vp.View()
	if m.showSauce {
		body = lipgloss.Place(m.vp.Width, m.vp.Height,
			lipgloss.Center, lipgloss.Center, m.sauceView())
	}
	return body + "\n" + m.statusView()
}

func (m Model) statusView() string {
	play := "     "
	if m.autoplay {
		play = "PLAY "
	}
	left := fmt.Sprintf(" %s  %dx%d  %3.0f%%  %s",
		m.name, m.artwork.Grid.Width(), m.artwork.Grid.Height(),
		m.vp.ScrollPercent()*100, play)
	help := "tab:sauce  space:play  q:quit "

	pad := m.vp.Width - lipgloss.Width(left) - lipgloss.Width(help)
	if pad < 1 {
		return statusStyle.Width(m.vp.Width).Render(left)
	}
	return statusStyle.Render(left + strings.Repeat(" ", pad) + help)
}

func (m Model) sauceView() string {
	return popupStyle.Render(
		popupTitleStyle.Render("SAUCE") + "\n" +
			strings.Join(sauceLines(m.artwork.Sauce), "\n"))
}

// sauceLines formats the popup body. A nil record still yields a
// sensible popup.
func sauceLines(rec *sauce.Record) []string {
	if rec == nil {
		return []string{"No SAUCE record."}
	}
	lines := []string{
		"Title  : " + rec.Title,
		"Author : " + rec.Author,
		"Group  : " + rec.Group,
		"Date   : " + rec.Date,
	}
	if rec.TInfo1 > 0 || rec.TInfo2 > 0 {
		lines = append(lines, fmt.Sprintf("Size   : %d x %d", rec.TInfo1, rec.TInfo2))
	}
	if len(rec.Comments) > 0 {
		lines = append(lines, "")
		lines = append(lines, rec.Comments...)
	}
	return lines
}
