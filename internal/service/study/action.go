package study

import "github.com/heartmarshall/myenglish-study/internal/domain"

// Action is a user interaction applied to a session by Reduce.
type Action interface {
	isAction()
}

// Direction is a relative navigation step.
type Direction string

const (
	DirectionPrev  Direction = "prev"
	DirectionNext  Direction = "next"
	DirectionFirst Direction = "first"
	DirectionLast  Direction = "last"
)

// IsValid reports whether d is a known direction.
func (d Direction) IsValid() bool {
	switch d {
	case DirectionPrev, DirectionNext, DirectionFirst, DirectionLast:
		return true
	}
	return false
}

// Load replaces the sentence list and resets the view state.
type Load struct {
	FileName  string
	Format    domain.Format
	Sentences []domain.Sentence
	Notices   []domain.Notice
}

// Clear removes the loaded file and resets the view state.
type Clear struct{}

// Navigate moves the cursor. Moving past either end is a no-op.
type Navigate struct {
	Direction Direction
}

// GoTo moves the cursor to an absolute index.
type GoTo struct {
	Index int
}

// ToggleShowAll switches between the single-sentence and all-sentences view.
type ToggleShowAll struct{}

// ToggleEdit switches edit mode.
type ToggleEdit struct{}

// SetFilter replaces the active category filter. An empty list clears it.
type SetFilter struct {
	Categories []domain.GrammarCategory
}

// SaveEdit stores an edited translation and grammar note.
type SaveEdit struct {
	Index    int
	Japanese string
	Grammar  string
}

// SetCredential stores an interactively supplied API key. Empty clears it.
type SetCredential struct {
	APIKey string
}

// Notify appends notices.
type Notify struct {
	Notices []domain.Notice
}

// DismissNotices clears all notices.
type DismissNotices struct{}

func (Load) isAction()           {}
func (Clear) isAction()          {}
func (Navigate) isAction()       {}
func (GoTo) isAction()           {}
func (ToggleShowAll) isAction()  {}
func (ToggleEdit) isAction()     {}
func (SetFilter) isAction()      {}
func (SaveEdit) isAction()       {}
func (SetCredential) isAction()  {}
func (Notify) isAction()         {}
func (DismissNotices) isAction() {}
