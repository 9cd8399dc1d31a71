package study

import (
	"github.com/heartmarshall/myenglish-study/internal/domain"
	"github.com/heartmarshall/myenglish-study/internal/grammar"
)

// View is everything a front-end needs to render a session.
type View struct {
	SessionID  string        `json:"sessionId"`
	Empty      bool          `json:"empty"`
	Message    string        `json:"message,omitempty"`
	FileName   string        `json:"fileName,omitempty"`
	Format     domain.Format `json:"format,omitempty"`
	Total      int           `json:"total"`
	Position   int           `json:"position"`
	Incomplete int           `json:"incomplete"`
	// FilterCount is set only while a filter is active.
	FilterCount *int                     `json:"filterCount,omitempty"`
	Categories  []domain.GrammarCategory `json:"categories"`
	Filter      []domain.GrammarCategory `json:"filter"`
	CanPrev     bool                     `json:"canPrev"`
	CanNext     bool                     `json:"canNext"`
	ShowAll     bool                     `json:"showAll"`
	EditMode    bool                     `json:"editMode"`
	LLMEnabled  bool                     `json:"llmEnabled"`
	Notices     []domain.Notice          `json:"notices"`
	Cards       []Card                   `json:"cards"`
}

// Card is one rendered sentence.
type Card struct {
	Index       int                      `json:"index"`
	Number      int                      `json:"number"`
	English     string                   `json:"english"`
	Highlighted string                   `json:"highlighted"`
	Japanese    string                   `json:"japanese"`
	Grammar     string                   `json:"grammar"`
	Categories  []domain.GrammarCategory `json:"categories"`
	Complete    bool                     `json:"complete"`
}

// BuildView derives the view model from s. It is pure.
func BuildView(s domain.StudySession, h grammar.Highlighter) View {
	v := View{
		SessionID:  s.ID.String(),
		FileName:   s.FileName,
		Format:     s.Format,
		Total:      len(s.Sentences),
		ShowAll:    s.ShowAll,
		EditMode:   s.EditMode,
		LLMEnabled: s.APIKey != "",
		Categories: grammar.Categories(s.Sentences),
		Filter:     append([]domain.GrammarCategory{}, s.Filter...),
		Notices:    append([]domain.Notice{}, s.Notices...),
		Cards:      []Card{},
	}

	if len(s.Sentences) == 0 {
		v.Empty = true
		v.Message = MsgNoSentences
		return v
	}

	v.Position = s.Index + 1
	v.CanPrev = s.Index > 0
	v.CanNext = s.Index < len(s.Sentences)-1

	for _, sent := range s.Sentences {
		if !sent.IsComplete() {
			v.Incomplete++
		}
	}

	if len(s.Filter) > 0 {
		_, idx := grammar.Filter(s.Sentences, s.Filter)
		n := len(idx)
		v.FilterCount = &n
	}

	if s.ShowAll {
		_, idx := grammar.Filter(s.Sentences, s.Filter)
		for _, i := range idx {
			v.Cards = append(v.Cards, buildCard(i, s.Sentences[i], h))
		}
		return v
	}

	if cur, ok := s.Current(); ok {
		v.Cards = append(v.Cards, buildCard(s.Index, cur, h))
	}
	return v
}

func buildCard(i int, s domain.Sentence, h grammar.Highlighter) Card {
	return Card{
		Index:       i,
		Number:      i + 1,
		English:     s.English,
		Highlighted: h.Highlight(s.English),
		Japanese:    s.Japanese,
		Grammar:     s.Grammar,
		Categories:  grammar.Classify(s.Grammar),
		Complete:    s.IsComplete(),
	}
}
