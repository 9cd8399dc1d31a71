// Command study opens a sentence file in an interactive terminal view.
//
// Usage:
//
//	study [-out edited.tsv] sentences.tsv
//
// When a completion credential is configured, free-form text is split
// remotely and a file without any translations or grammar notes is annotated
// before the view opens. With -out the session, including edits, is written
// on exit.
package main

import (
	"bytes"
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"
	"github.com/joho/godotenv"

	"github.com/heartmarshall/myenglish-study/internal/app"
	"github.com/heartmarshall/myenglish-study/internal/completion"
	"github.com/heartmarshall/myenglish-study/internal/config"
	"github.com/heartmarshall/myenglish-study/internal/domain"
	"github.com/heartmarshall/myenglish-study/internal/export"
	"github.com/heartmarshall/myenglish-study/internal/ingest"
	"github.com/heartmarshall/myenglish-study/internal/service/assist"
	"github.com/heartmarshall/myenglish-study/internal/service/study"
	"github.com/heartmarshall/myenglish-study/internal/tui"
)

func main() {
	out := flag.String("out", "", "write the session to this file on exit (tsv, json or yaml by extension)")
	flag.Parse()
	if flag.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "usage: study [-out file] <sentence file>")
		os.Exit(1)
	}
	in := flag.Arg(0)

	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		log.Fatalf("load .env: %v", err)
	}
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}
	logger := app.NewLogger(cfg.Log)

	raw, err := os.ReadFile(in)
	if err != nil {
		log.Fatalf("read %s: %v", in, err)
	}

	session, err := load(context.Background(), logger, cfg.LLM, in, raw)
	if err != nil {
		log.Fatalf("%s: %v", in, err)
	}

	final, err := tea.NewProgram(tui.New(session), tea.WithAltScreen()).Run()
	if err != nil {
		log.Fatalf("run: %v", err)
	}

	if *out != "" {
		if err := save(*out, final.(tui.Model).Session().Sentences); err != nil {
			log.Fatalf("save: %v", err)
		}
		logger.Info("session saved", slog.String("file", *out))
	}
}

// load parses raw into a fresh session, annotating when a credential exists.
func load(ctx context.Context, logger *slog.Logger, cfg config.LLMConfig, name string, raw []byte) (domain.StudySession, error) {
	client, err := completion.New(cfg, cfg.ResolveAPIKey(), logger)
	if err != nil && !errors.Is(err, completion.ErrNoCredential) {
		return domain.StudySession{}, err
	}

	parser := ingest.Parser{}
	if client != nil {
		parser.Splitter = assist.NewSplitter(logger, client, cfg)
	}
	res := parser.Parse(ctx, filepath.Base(name), raw)

	var notices []domain.Notice
	if client != nil && assist.NeedsAnnotation(res.Sentences) {
		notices = assist.NewAnnotator(logger, cfg).AnnotateAll(ctx, client, res.Sentences, func(done, total int) {
			fmt.Fprintf(os.Stderr, "\rannotating %d/%d", done, total)
			if done == total {
				fmt.Fprintln(os.Stderr)
			}
		})
	}

	return study.Reduce(domain.StudySession{ID: uuid.New(), APIKey: cfg.ResolveAPIKey()}, study.Load{
		FileName:  filepath.Base(name),
		Format:    res.Format,
		Sentences: res.Sentences,
		Notices:   notices,
	})
}

func save(path string, sentences []domain.Sentence) error {
	format, err := export.ParseFormat(strings.TrimPrefix(strings.ToLower(filepath.Ext(path)), "."))
	if err != nil {
		format = domain.FormatTSV
	}
	var buf bytes.Buffer
	if err := export.Write(&buf, format, sentences); err != nil {
		return err
	}
	return os.WriteFile(path, buf.Bytes(), 0o644)
}
