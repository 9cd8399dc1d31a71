package ingest

import (
	"fmt"
	"strings"
	"testing"
)

func TestParsePlain_LineCountRoundTrip(t *testing.T) {
	t.Parallel()

	for k := 0; k <= 5; k++ {
		var b strings.Builder
		for i := 0; i < k; i++ {
			fmt.Fprintf(&b, "Sentence number %d.\n\n", i)
		}

		got := ParsePlain(b.String())
		if len(got) != k {
			t.Fatalf("k=%d: got %d records", k, len(got))
		}
		for i, s := range got {
			if s.Japanese != "" || s.Grammar != "" {
				t.Errorf("k=%d: record %d has annotations: %+v", k, i, s)
			}
		}
	}
}

func TestParsePlain_TrimsLines(t *testing.T) {
	t.Parallel()

	got := ParsePlain("  Hello.  \r\n\t\nWorld.")
	if len(got) != 2 || got[0].English != "Hello." || got[1].English != "World." {
		t.Errorf("ParsePlain() = %+v", got)
	}
}
