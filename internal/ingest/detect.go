package ingest

import (
	"path/filepath"
	"strings"

	"github.com/heartmarshall/myenglish-study/internal/domain"
)

// PipeSeparator is the full-width vertical bar used by pipe-delimited lists.
const PipeSeparator = "｜"

// Detect picks a format. The file extension wins; otherwise content
// containing the full-width pipe is pipe-delimited and anything else is plain.
func Detect(fileName, content string) domain.Format {
	switch strings.ToLower(filepath.Ext(fileName)) {
	case ".tsv":
		return domain.FormatTSV
	case ".json":
		return domain.FormatJSON
	case ".yaml", ".yml":
		return domain.FormatYAML
	}
	if strings.Contains(content, PipeSeparator) {
		return domain.FormatPipe
	}
	return domain.FormatPlain
}
