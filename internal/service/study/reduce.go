package study

import (
	"fmt"
	"slices"
	"strings"

	"github.com/heartmarshall/myenglish-study/internal/domain"
)

// MsgNoSentences is shown when nothing is loaded or an upload yields no sentences.
const MsgNoSentences = "no sentences loaded"

// Reduce applies a to s and returns the new session. It never mutates the
// slices of s; on error s is returned unchanged.
func Reduce(s domain.StudySession, a Action) (domain.StudySession, error) {
	switch a := a.(type) {
	case Load:
		if len(a.Sentences) == 0 {
			return s, domain.NewValidationError("file", MsgNoSentences)
		}
		s = resetView(s)
		s.FileName = a.FileName
		s.Format = a.Format
		s.Sentences = slices.Clone(a.Sentences)
		s.Notices = append(slices.Clone(a.Notices), domain.Notice{
			Level:   domain.NoticeInfo,
			Message: fmt.Sprintf("%d sentences loaded", len(a.Sentences)),
		})

	case Clear:
		s = resetView(s)
		s.FileName = ""
		s.Format = ""
		s.Sentences = nil

	case Navigate:
		if !a.Direction.IsValid() {
			return s, domain.NewValidationError("direction", "must be prev, next, first or last")
		}
		if len(s.Sentences) == 0 {
			return s, nil
		}
		last := len(s.Sentences) - 1
		switch a.Direction {
		case DirectionPrev:
			if s.Index > 0 {
				s.Index--
			}
		case DirectionNext:
			if s.Index < last {
				s.Index++
			}
		case DirectionFirst:
			s.Index = 0
		case DirectionLast:
			s.Index = last
		}

	case GoTo:
		if a.Index < 0 || a.Index >= len(s.Sentences) {
			return s, fmt.Errorf("sentence %d: %w", a.Index+1, domain.ErrNotFound)
		}
		s.Index = a.Index

	case ToggleShowAll:
		s.ShowAll = !s.ShowAll

	case ToggleEdit:
		s.EditMode = !s.EditMode

	case SetFilter:
		filter, err := normalizeFilter(a.Categories)
		if err != nil {
			return s, err
		}
		s.Filter = filter

	case SaveEdit:
		if a.Index < 0 || a.Index >= len(s.Sentences) {
			return s, fmt.Errorf("sentence %d: %w", a.Index+1, domain.ErrNotFound)
		}
		s.Sentences = slices.Clone(s.Sentences)
		s.Sentences[a.Index].Japanese = strings.TrimSpace(a.Japanese)
		s.Sentences[a.Index].Grammar = strings.TrimSpace(a.Grammar)

	case SetCredential:
		s.APIKey = strings.TrimSpace(a.APIKey)

	case Notify:
		if len(a.Notices) > 0 {
			s.Notices = append(slices.Clone(s.Notices), a.Notices...)
		}

	case DismissNotices:
		s.Notices = nil

	default:
		return s, fmt.Errorf("unknown action %T", a)
	}
	return s, nil
}

func resetView(s domain.StudySession) domain.StudySession {
	s.Index = 0
	s.ShowAll = false
	s.EditMode = false
	s.Filter = nil
	return s
}

// normalizeFilter validates, de-duplicates and sorts categories.
func normalizeFilter(categories []domain.GrammarCategory) ([]domain.GrammarCategory, error) {
	if len(categories) == 0 {
		return nil, nil
	}
	var errs []domain.FieldError
	out := make([]domain.GrammarCategory, 0, len(categories))
	for _, c := range categories {
		if !c.IsValid() {
			errs = append(errs, domain.FieldError{Field: "categories", Message: fmt.Sprintf("unknown category %q", c)})
			continue
		}
		out = append(out, c)
	}
	if len(errs) > 0 {
		return nil, domain.NewValidationErrors(errs)
	}
	slices.Sort(out)
	return slices.Compact(out), nil
}
