// Package tui is the terminal front-end of a study session. Every key press
// is turned into a study action and applied with study.Reduce.
package tui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/heartmarshall/myenglish-study/internal/domain"
	"github.com/heartmarshall/myenglish-study/internal/grammar"
	"github.com/heartmarshall/myenglish-study/internal/service/study"
)

// edit form field indices
const (
	fieldJapanese = iota
	fieldGrammar
	fieldCount
)

// Model is the bubbletea model of one study session.
type Model struct {
	session     domain.StudySession
	highlighter grammar.Highlighter
	inputs      [fieldCount]textinput.Model
	focus       int
	viewport    viewport.Model
	width       int
	height      int
	quitting    bool
}

// New creates a model over an already loaded session.
func New(session domain.StudySession) Model {
	ja := textinput.New()
	ja.Placeholder = "日本語訳"
	ja.CharLimit = 4000

	gr := textinput.New()
	gr.Placeholder = "文法メモ"
	gr.CharLimit = 4000

	m := Model{
		session:     session,
		highlighter: grammar.Highlighter{Wrap: func(w string) string { return highlightStyle.Render(w) }},
		inputs:      [fieldCount]textinput.Model{ja, gr},
		viewport:    viewport.New(80, 20),
		width:       80,
		height:      24,
	}
	m.refreshViewport()
	return m
}

// Session returns the current session state.
func (m Model) Session() domain.StudySession {
	return m.session
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.viewport.Width = msg.Width
		m.viewport.Height = max(3, msg.Height-4)
		m.refreshViewport()
		return m, nil

	case tea.KeyMsg:
		if m.session.EditMode {
			return m.updateEdit(msg)
		}
		return m.updateBrowse(msg)
	}
	return m, nil
}

func (m Model) updateBrowse(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		m.quitting = true
		return m, tea.Quit

	case "left", "h":
		m.apply(study.Navigate{Direction: study.DirectionPrev})

	case "right", "l":
		m.apply(study.Navigate{Direction: study.DirectionNext})

	case "home", "g":
		m.apply(study.Navigate{Direction: study.DirectionFirst})

	case "end", "G":
		m.apply(study.Navigate{Direction: study.DirectionLast})

	case "a":
		m.apply(study.ToggleShowAll{})
		m.viewport.GotoTop()

	case "e":
		if !m.session.FileLoaded() {
			return m, nil
		}
		// The list highlights the current sentence but scrolling does not
		// move it, so editing is only offered from the card view.
		if m.session.ShowAll {
			m.apply(study.Notify{Notices: []domain.Notice{{
				Level:   domain.NoticeInfo,
				Message: "press a for the card view to edit",
			}}})
			return m, nil
		}
		m.apply(study.ToggleEdit{})
		cmd := m.startEdit()
		return m, cmd

	case "f":
		m.apply(study.SetFilter{Categories: nextFilter(m.session)})
		m.viewport.GotoTop()

	case "x":
		m.apply(study.SetFilter{})

	case "d":
		m.apply(study.DismissNotices{})

	default:
		if m.session.ShowAll {
			var cmd tea.Cmd
			m.viewport, cmd = m.viewport.Update(msg)
			return m, cmd
		}
	}
	return m, nil
}

func (m Model) updateEdit(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		m.quitting = true
		return m, tea.Quit

	case "esc":
		m.stopEdit()
		m.apply(study.ToggleEdit{})
		return m, nil

	case "ctrl+s":
		idx := m.session.Index
		m.apply(study.SaveEdit{
			Index:    idx,
			Japanese: m.inputs[fieldJapanese].Value(),
			Grammar:  m.inputs[fieldGrammar].Value(),
		})
		m.stopEdit()
		m.apply(study.ToggleEdit{})
		m.apply(study.Notify{Notices: []domain.Notice{{
			Level:   domain.NoticeInfo,
			Message: fmt.Sprintf("sentence %d saved", idx+1),
		}}})
		return m, nil

	case "tab", "shift+tab", "down", "up":
		m.inputs[m.focus].Blur()
		m.focus = (m.focus + 1) % fieldCount
		cmd := m.inputs[m.focus].Focus()
		return m, cmd
	}

	var cmd tea.Cmd
	m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)
	return m, cmd
}

// apply runs a study action; failures become error notices.
func (m *Model) apply(a study.Action) {
	next, err := study.Reduce(m.session, a)
	if err != nil {
		next, _ = study.Reduce(m.session, study.Notify{Notices: []domain.Notice{{
			Level:   domain.NoticeError,
			Message: err.Error(),
		}}})
	}
	m.session = next
	m.refreshViewport()
}

// startEdit fills the inputs from the current sentence and focuses the first one.
func (m *Model) startEdit() tea.Cmd {
	cur, ok := m.session.Current()
	if !ok {
		return nil
	}
	m.inputs[fieldJapanese].SetValue(cur.Japanese)
	m.inputs[fieldGrammar].SetValue(cur.Grammar)
	for i := range m.inputs {
		m.inputs[i].CursorEnd()
		m.inputs[i].Blur()
	}
	m.focus = fieldJapanese
	return m.inputs[fieldJapanese].Focus()
}

func (m *Model) stopEdit() {
	for i := range m.inputs {
		m.inputs[i].Blur()
	}
}

// nextFilter cycles the single-category filter through the detected
// categories and back to no filter.
func nextFilter(s domain.StudySession) []domain.GrammarCategory {
	cats := grammar.Categories(s.Sentences)
	if len(cats) == 0 {
		return nil
	}
	if len(s.Filter) == 0 {
		return cats[:1]
	}
	for i, c := range cats {
		if c == s.Filter[0] {
			if i+1 < len(cats) {
				return cats[i+1 : i+2]
			}
			return nil
		}
	}
	return cats[:1]
}
