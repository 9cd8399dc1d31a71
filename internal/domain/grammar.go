package domain

// GrammarCategory is one of the fixed grammar topics detectable from a grammar note.
// The label text itself is what filters match against.
type GrammarCategory string

const (
	GrammarPresentPerfect GrammarCategory = "現在完了形"
	GrammarPastPerfect    GrammarCategory = "過去完了形"
	GrammarRelative       GrammarCategory = "関係詞"
	GrammarSubjunctive    GrammarCategory = "仮定法"
	GrammarPassive        GrammarCategory = "受動態"
	GrammarInfinitive     GrammarCategory = "不定詞"
	GrammarGerund         GrammarCategory = "動名詞"
	GrammarParticiple     GrammarCategory = "分詞構文"
	GrammarComparative    GrammarCategory = "比較級"
	GrammarSuperlative    GrammarCategory = "最上級"
)

func (c GrammarCategory) String() string { return string(c) }

// IsValid reports whether c is one of the known categories.
func (c GrammarCategory) IsValid() bool {
	switch c {
	case GrammarPresentPerfect, GrammarPastPerfect, GrammarRelative, GrammarSubjunctive,
		GrammarPassive, GrammarInfinitive, GrammarGerund, GrammarParticiple,
		GrammarComparative, GrammarSuperlative:
		return true
	}
	return false
}
