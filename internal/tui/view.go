package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/heartmarshall/myenglish-study/internal/domain"
	"github.com/heartmarshall/myenglish-study/internal/service/study"
)

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	v := study.BuildView(m.session, m.highlighter)

	var b strings.Builder
	b.WriteString(m.renderHeader(v))
	b.WriteString("\n")

	switch {
	case v.Empty:
		b.WriteString(missingStyle.Render(v.Message))
		b.WriteString("\n")
	case v.ShowAll:
		b.WriteString(m.viewport.View())
		b.WriteString("\n")
	default:
		if len(v.Cards) > 0 {
			b.WriteString(m.renderCard(v.Cards[0], true))
			b.WriteString("\n")
		}
		if v.EditMode {
			b.WriteString(m.renderEditForm())
		}
	}

	b.WriteString(renderNotices(v.Notices))
	b.WriteString(m.renderStatusBar(v))
	return b.String()
}

func (m Model) renderHeader(v study.View) string {
	title := titleStyle.Render("English Study")
	if v.FileName != "" {
		title += " " + helpStyle.Render(fmt.Sprintf("%s (%s)", v.FileName, v.Format))
	}
	return title
}

func (m Model) renderCard(c study.Card, current bool) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s %s\n", helpStyle.Render(fmt.Sprintf("#%d", c.Number)), englishStyle.Render(c.Highlighted))
	b.WriteString(field("日本語", c.Japanese))
	b.WriteString("\n")
	b.WriteString(field("文法", c.Grammar))
	if len(c.Categories) > 0 {
		tags := make([]string, len(c.Categories))
		for i, cat := range c.Categories {
			tags[i] = categoryTag.Render(cat.String())
		}
		b.WriteString("\n")
		b.WriteString(strings.Join(tags, " "))
	}

	style := cardStyle
	if current {
		style = currentCardStyle
	}
	return style.Width(max(20, m.width-4)).Render(b.String())
}

func field(label, value string) string {
	if value == "" {
		value = missingStyle.Render("(empty)")
	}
	return labelStyle.Render(label) + value
}

func (m Model) renderEditForm() string {
	var b strings.Builder
	labels := [fieldCount]string{"日本語", "文法"}
	for i := range m.inputs {
		b.WriteString(labelStyle.Render(labels[i]))
		b.WriteString(inputStyle.Render(m.inputs[i].View()))
		b.WriteString("\n")
	}
	b.WriteString(helpStyle.Render("ctrl+s save • tab switch field • esc cancel"))
	b.WriteString("\n")
	return b.String()
}

func renderNotices(notices []domain.Notice) string {
	var b strings.Builder
	for _, n := range notices {
		style := infoStyle
		switch n.Level {
		case domain.NoticeWarning:
			style = warningStyle
		case domain.NoticeError:
			style = errorStyle
		}
		b.WriteString(style.Render(n.Message))
		b.WriteString("\n")
	}
	return b.String()
}

func (m Model) renderStatusBar(v study.View) string {
	var parts []string
	if !v.Empty {
		parts = append(parts, fmt.Sprintf("%d/%d", v.Position, v.Total))
		if v.Incomplete > 0 {
			parts = append(parts, fmt.Sprintf("%d incomplete", v.Incomplete))
		}
	}
	if v.FilterCount != nil {
		names := make([]string, len(v.Filter))
		for i, c := range v.Filter {
			names[i] = c.String()
		}
		parts = append(parts, fmt.Sprintf("filter %s: %d", strings.Join(names, ","), *v.FilterCount))
	}
	if v.ShowAll {
		parts = append(parts, "all")
	}

	status := statusBarStyle.Render(strings.Join(parts, " • "))
	hint := "←/→ move • a all • e edit • f filter • x clear • d dismiss • q quit"
	if v.ShowAll {
		hint = "↑/↓ scroll • a cards (e edit there) • f filter • x clear • d dismiss • q quit"
	}
	help := helpStyle.Render(hint)
	return lipgloss.JoinHorizontal(lipgloss.Top, status, " ", help)
}

// refreshViewport re-renders the all-sentences list into the viewport.
func (m *Model) refreshViewport() {
	if !m.session.ShowAll {
		return
	}
	v := study.BuildView(m.session, m.highlighter)
	cards := make([]string, len(v.Cards))
	for i, c := range v.Cards {
		cards[i] = m.renderCard(c, c.Index == m.session.Index)
	}
	if len(cards) == 0 {
		cards = append(cards, missingStyle.Render("no sentences match the filter"))
	}
	m.viewport.SetContent(strings.Join(cards, "\n"))
}
