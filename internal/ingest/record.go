package ingest

// Key aliases for structured (JSON/YAML) records, in priority order.
// A key counts as present even when its value is empty.
var (
	englishKeys  = []string{"english", "text", "sentence"}
	japaneseKeys = []string{"japanese", "translation"}
	grammarKeys  = []string{"grammar", "grammar_points"}
)

// wrapperKey is the object key whose value holds the sentence list.
const wrapperKey = "sentences"
