// Package export writes sentence lists in formats the ingest parsers read back.
package export

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/heartmarshall/myenglish-study/internal/domain"
)

// TSVHeader is the header row written by WriteTSV.
const TSVHeader = "No\t英文\t日本語\t文法"

// ParseFormat maps a user-supplied name to an export format. Empty means TSV.
func ParseFormat(name string) (domain.Format, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "tsv":
		return domain.FormatTSV, nil
	case "json":
		return domain.FormatJSON, nil
	case "yaml", "yml":
		return domain.FormatYAML, nil
	}
	return "", domain.NewValidationError("format", "must be tsv, json or yaml")
}

// ContentType returns the MIME type for an export format.
func ContentType(f domain.Format) string {
	switch f {
	case domain.FormatJSON:
		return "application/json; charset=utf-8"
	case domain.FormatYAML:
		return "application/yaml; charset=utf-8"
	default:
		return "text/tab-separated-values; charset=utf-8"
	}
}

// FileName derives a download name for base in format f.
func FileName(base string, f domain.Format) string {
	base = strings.TrimSpace(base)
	if i := strings.LastIndexByte(base, '.'); i > 0 {
		base = base[:i]
	}
	if base == "" {
		base = "sentences"
	}
	ext := string(f)
	if f != domain.FormatJSON && f != domain.FormatYAML {
		ext = "tsv"
	}
	return base + "." + ext
}

// Write encodes sentences in format f.
func Write(w io.Writer, f domain.Format, sentences []domain.Sentence) error {
	switch f {
	case domain.FormatTSV:
		return WriteTSV(w, sentences)
	case domain.FormatJSON:
		return WriteJSON(w, sentences)
	case domain.FormatYAML:
		return WriteYAML(w, sentences)
	}
	return fmt.Errorf("export: unsupported format %q", f)
}

// WriteTSV writes a header and one numbered row per sentence. Tabs and line
// breaks inside fields are replaced by spaces so every row stays on one line.
func WriteTSV(w io.Writer, sentences []domain.Sentence) error {
	bw := bufio.NewWriter(w)
	if _, err := fmt.Fprintln(bw, TSVHeader); err != nil {
		return fmt.Errorf("write tsv header: %w", err)
	}
	for i, s := range sentences {
		_, err := fmt.Fprintf(bw, "%d\t%s\t%s\t%s\n", i+1, tsvField(s.English), tsvField(s.Japanese), tsvField(s.Grammar))
		if err != nil {
			return fmt.Errorf("write tsv row %d: %w", i+1, err)
		}
	}
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("flush tsv: %w", err)
	}
	return nil
}

var tsvReplacer = strings.NewReplacer("\t", " ", "\r\n", " ", "\n", " ", "\r", " ")

func tsvField(s string) string {
	return strings.TrimSpace(tsvReplacer.Replace(s))
}

// WriteJSON writes sentences as an indented JSON array.
func WriteJSON(w io.Writer, sentences []domain.Sentence) error {
	if sentences == nil {
		sentences = []domain.Sentence{}
	}
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(sentences); err != nil {
		return fmt.Errorf("write json: %w", err)
	}
	return nil
}

// WriteYAML writes sentences under a top-level "sentences" key.
func WriteYAML(w io.Writer, sentences []domain.Sentence) error {
	if sentences == nil {
		sentences = []domain.Sentence{}
	}
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(map[string][]domain.Sentence{"sentences": sentences}); err != nil {
		return fmt.Errorf("write yaml: %w", err)
	}
	if err := enc.Close(); err != nil {
		return fmt.Errorf("close yaml: %w", err)
	}
	return nil
}
