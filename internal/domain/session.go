package domain

import (
	"time"

	"github.com/google/uuid"
)

// StudySession is the in-memory state of one study session: the loaded
// sentence list plus the view flags. It is owned by a single writer.
type StudySession struct {
	ID        uuid.UUID
	FileName  string
	Format    Format
	Sentences []Sentence
	Index     int
	ShowAll   bool
	EditMode  bool
	Filter    []GrammarCategory
	// APIKey is a completion-service credential supplied interactively.
	// It overrides the configured key for this session only.
	APIKey    string
	Notices   []Notice
	CreatedAt time.Time
	UpdatedAt time.Time
}

// FileLoaded reports whether a sentence list is currently loaded.
func (s *StudySession) FileLoaded() bool {
	return len(s.Sentences) > 0
}

// Current returns the sentence under the cursor, or false when nothing is loaded.
func (s *StudySession) Current() (Sentence, bool) {
	if s.Index < 0 || s.Index >= len(s.Sentences) {
		return Sentence{}, false
	}
	return s.Sentences[s.Index], true
}
