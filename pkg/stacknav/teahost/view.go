package teahost

import (
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

func (m *Model) View() string {
	header := m.styles.Header.Width(m.width).Render(m.renderBreadcrumb())

	var lines []string
	if status := m.renderStatus(); status != "" {
		lines = append(lines, status)
	}
	lines = append(lines, m.styles.Footer.Render(m.localizer.Text("HintKeys", nil)))
	footer := lipgloss.JoinVertical(lipgloss.Left, lines...)

	bodyHeight := max(m.height-lipgloss.Height(header)-lipgloss.Height(footer), 0)
	body := m.styles.Body.Render(m.renderBody(bodyHeight))

	return lipgloss.JoinVertical(lipgloss.Left, header, body, footer)
}

// renderBreadcrumb renders the chain from the root to the current screen,
// followed by screens that exited but have not yet expired.
func (m *Model) renderBreadcrumb() string {
	chain := m.stack.Screens()
	crumbs := make([]string, 0, len(chain)+len(m.fadingOrder))
	for i, s := range chain {
		style := m.styles.Crumb
		if i == len(chain)-1 {
			style = m.styles.CurrentCrumb
		}
		crumbs = append(crumbs, style.Render(s.Name()))
	}
	for _, id := range m.fadingOrder {
		crumbs = append(crumbs, m.styles.FadingCrumb.Render(m.fading[id].name))
	}

	depth := m.localizer.Count("BreadcrumbDepth", len(chain))
	return strings.Join(crumbs, m.styles.Separator) + "  " + m.styles.Crumb.Render("("+depth+")")
}

func (m *Model) renderBody(height int) string {
	current := m.stack.CurrentScreen()
	if current == nil {
		return m.styles.Loading.Render(m.localizer.Text("StatusEmpty", nil))
	}
	if v, ok := current.Lifecycle().(Viewer); ok {
		return v.View(m.width, height)
	}
	return current.Name()
}

func (m *Model) renderStatus() string {
	var parts []string
	if len(m.loading) > 0 {
		names := make([]string, 0, len(m.loading))
		for _, name := range m.loading {
			names = append(names, name)
		}
		sort.Strings(names)
		parts = append(parts, m.styles.Loading.Render(m.localizer.Text("StatusLoading", nil)+" "+strings.Join(names, ", ")))
	}
	if m.status != "" {
		parts = append(parts, m.styles.Error.Render(m.status))
	}
	return strings.Join(parts, "  ")
}
