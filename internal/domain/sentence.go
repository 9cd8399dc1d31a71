package domain

// Sentence is one study item: an English sentence with an optional Japanese
// translation and a free-text grammar note.
type Sentence struct {
	English  string `json:"english"  yaml:"english"`
	Japanese string `json:"japanese" yaml:"japanese"`
	Grammar  string `json:"grammar"  yaml:"grammar"`
}

// IsComplete reports whether both the translation and the grammar note are filled in.
func (s Sentence) IsComplete() bool {
	return s.Japanese != "" && s.Grammar != ""
}

// IsBlank reports whether neither the translation nor the grammar note is set.
func (s Sentence) IsBlank() bool {
	return s.Japanese == "" && s.Grammar == ""
}

// Annotation is a generated translation and grammar explanation for one sentence.
type Annotation struct {
	Japanese string
	Grammar  string
}

// Format identifies how an uploaded file was interpreted.
type Format string

const (
	FormatTSV   Format = "tsv"
	FormatJSON  Format = "json"
	FormatYAML  Format = "yaml"
	FormatPipe  Format = "pipe"
	FormatPlain Format = "plain"
)

func (f Format) String() string { return string(f) }

// NoticeLevel is the severity of a user-facing notice.
type NoticeLevel string

const (
	NoticeInfo    NoticeLevel = "info"
	NoticeWarning NoticeLevel = "warning"
	NoticeError   NoticeLevel = "error"
)

// Notice is a transient, dismissible message shown to the user.
// Remote completion failures are reported this way instead of failing the request.
type Notice struct {
	Level   NoticeLevel `json:"level"`
	Message string      `json:"message"`
}
