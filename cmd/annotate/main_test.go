package main

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/heartmarshall/myenglish-study/internal/completion"
	"github.com/heartmarshall/myenglish-study/internal/config"
	"github.com/heartmarshall/myenglish-study/internal/domain"
	"github.com/heartmarshall/myenglish-study/internal/ingest"
	"github.com/heartmarshall/myenglish-study/internal/service/assist"
)

type completerFunc func(ctx context.Context, req completion.Request) (string, error)

func (f completerFunc) Complete(ctx context.Context, req completion.Request) (string, error) {
	return f(ctx, req)
}

func newRunner(client completion.Completer) runner {
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	cfg := config.LLMConfig{LocalSplitter: config.SplitterHeuristic}
	return runner{
		log:       log,
		client:    client,
		splitter:  assist.NewSplitter(log, client, cfg),
		annotator: assist.NewAnnotator(log, cfg),
	}
}

func writeInput(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func readOutput(t *testing.T, path string) []domain.Sentence {
	t.Helper()
	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	return ingest.Parser{}.Parse(context.Background(), filepath.Base(path), raw).Sentences
}

func TestRun_FillsOnlyMissingFields(t *testing.T) {
	t.Parallel()

	client := completerFunc(func(_ context.Context, req completion.Request) (string, error) {
		return "翻訳: 生成された訳\n文法: 不定詞", nil
	})
	in := writeInput(t, "in.tsv", "I go.\t行く。\t\nYou came.\t\t\n")
	out := filepath.Join(t.TempDir(), "out.json")

	require.NoError(t, newRunner(client).run(context.Background(), options{in: in, out: out}))

	got := readOutput(t, out)
	require.Len(t, got, 2)
	assert.Equal(t, domain.Sentence{English: "I go.", Japanese: "行く。", Grammar: "不定詞"}, got[0])
	assert.Equal(t, domain.Sentence{English: "You came.", Japanese: "生成された訳", Grammar: "不定詞"}, got[1])
}

func TestRun_ForceReplacesAndKeepsFailures(t *testing.T) {
	t.Parallel()

	client := completerFunc(func(_ context.Context, req completion.Request) (string, error) {
		if strings.Contains(req.Prompt, "You came.") {
			return "", errors.New("overloaded")
		}
		return "翻訳: 私は行く。\n文法: 現在形", nil
	})
	in := writeInput(t, "in.tsv", "I go.\t行く。\t古いメモ\nYou came.\t来た。\t過去形\n")
	out := filepath.Join(t.TempDir(), "out.tsv")

	require.NoError(t, newRunner(client).run(context.Background(), options{in: in, out: out, force: true}))

	got := readOutput(t, out)
	require.Len(t, got, 2)
	assert.Equal(t, "私は行く。", got[0].Japanese)
	assert.Equal(t, "現在形", got[0].Grammar)
	assert.Equal(t, "来た。", got[1].Japanese, "failed record keeps its text")
}

func TestRun_EmptyInput(t *testing.T) {
	t.Parallel()

	in := writeInput(t, "in.json", "[]")
	err := newRunner(nil).run(context.Background(), options{in: in, out: filepath.Join(t.TempDir(), "out.tsv")})
	require.ErrorIs(t, err, domain.ErrValidation)
}

func TestOutputFormat(t *testing.T) {
	t.Parallel()

	tests := []struct {
		opts    options
		want    domain.Format
		wantErr bool
	}{
		{options{out: "a.json"}, domain.FormatJSON, false},
		{options{out: "a.yml"}, domain.FormatYAML, false},
		{options{out: "a.txt"}, domain.FormatTSV, false},
		{options{out: "a.json", format: "tsv"}, domain.FormatTSV, false},
		{options{out: "a.tsv", format: "pipe"}, "", true},
	}

	for _, tt := range tests {
		got, err := outputFormat(tt.opts)
		if tt.wantErr {
			assert.Error(t, err, tt.opts)
			continue
		}
		require.NoError(t, err)
		assert.Equal(t, tt.want, got, tt.opts)
	}
}
