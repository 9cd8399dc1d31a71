package ingest

import (
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// Decode converts raw upload bytes to UTF-8 text. A UTF-8 BOM is stripped and
// UTF-16 input with a BOM (common for spreadsheet TSV exports) is transcoded.
// Invalid UTF-8 sequences are replaced rather than rejected.
func Decode(raw []byte) string {
	dec := unicode.BOMOverride(unicode.UTF8.NewDecoder())
	out, _, err := transform.Bytes(dec, raw)
	if err != nil {
		return string(raw)
	}
	return string(out)
}
