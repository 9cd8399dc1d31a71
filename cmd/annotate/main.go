// Command annotate fills in missing Japanese translations and grammar notes
// for a sentence file and writes the result as TSV, JSON or YAML.
//
// Usage:
//
//	annotate -in sentences.txt -out sentences.tsv [-format tsv|json|yaml] [-force]
//
// Without -force only records missing a translation or a grammar note are
// sent for annotation, and existing text is kept. With -force every record is
// re-annotated and successful answers replace existing text.
//
// Exit codes: 0 = success, 1 = error.
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
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/heartmarshall/myenglish-study/internal/app"
	"github.com/heartmarshall/myenglish-study/internal/completion"
	"github.com/heartmarshall/myenglish-study/internal/config"
	"github.com/heartmarshall/myenglish-study/internal/domain"
	"github.com/heartmarshall/myenglish-study/internal/export"
	"github.com/heartmarshall/myenglish-study/internal/ingest"
	"github.com/heartmarshall/myenglish-study/internal/service/assist"
)

type options struct {
	in     string
	out    string
	format string
	force  bool
}

func main() {
	var opts options
	flag.StringVar(&opts.in, "in", "", "input sentence file (tsv, json, yaml, pipe or plain text)")
	flag.StringVar(&opts.out, "out", "", "output file")
	flag.StringVar(&opts.format, "format", "", "output format: tsv, json or yaml (default: from -out extension, else tsv)")
	flag.BoolVar(&opts.force, "force", false, "re-annotate every sentence, replacing existing text")
	flag.Parse()

	if opts.in == "" || opts.out == "" {
		flag.Usage()
		os.Exit(1)
	}

	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		log.Fatalf("load .env: %v", err)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}
	logger := app.NewLogger(cfg.Log)

	client, err := completion.New(cfg.LLM, cfg.LLM.ResolveAPIKey(), logger)
	if err != nil {
		logger.Error("completion client", slog.String("error", err.Error()))
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	r := runner{
		log:       logger,
		client:    client,
		splitter:  assist.NewSplitter(logger, client, cfg.LLM),
		annotator: assist.NewAnnotator(logger, cfg.LLM),
		progress: func(done, total int) {
			fmt.Fprintf(os.Stderr, "\rannotated %d/%d", done, total)
			if done == total {
				fmt.Fprintln(os.Stderr)
			}
		},
	}
	if err := r.run(ctx, opts); err != nil {
		logger.Error("annotate failed", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

type runner struct {
	log       *slog.Logger
	client    completion.Completer
	splitter  ingest.Splitter
	annotator *assist.Annotator
	progress  assist.ProgressFunc
}

func (r runner) run(ctx context.Context, opts options) error {
	format, err := outputFormat(opts)
	if err != nil {
		return err
	}

	raw, err := os.ReadFile(opts.in)
	if err != nil {
		return fmt.Errorf("read input: %w", err)
	}

	res := ingest.Parser{Splitter: r.splitter}.Parse(ctx, filepath.Base(opts.in), raw)
	if len(res.Sentences) == 0 {
		return fmt.Errorf("%s: %w", opts.in, domain.NewValidationError("file", "no sentences loaded"))
	}
	r.log.Info("input parsed",
		slog.String("file", opts.in),
		slog.String("format", res.Format.String()),
		slog.Int("sentences", len(res.Sentences)))

	var notices []domain.Notice
	if opts.force {
		notices = r.reannotate(ctx, res.Sentences)
	} else {
		notices = r.annotator.AnnotateAll(ctx, r.client, res.Sentences, r.progress)
	}
	for _, n := range notices {
		r.log.Warn("annotation notice", slog.String("level", string(n.Level)), slog.String("message", n.Message))
	}
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("annotate: %w", err)
	}

	var buf bytes.Buffer
	if err := export.Write(&buf, format, res.Sentences); err != nil {
		return err
	}
	if err := os.WriteFile(opts.out, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("write output: %w", err)
	}

	r.log.Info("output written",
		slog.String("file", opts.out),
		slog.String("format", format.String()),
		slog.Int("notices", len(notices)))
	return nil
}

// reannotate replaces both fields of every sentence with a fresh annotation.
// Failed sentences keep their text.
func (r runner) reannotate(ctx context.Context, sentences []domain.Sentence) []domain.Notice {
	var notices []domain.Notice
	for i := range sentences {
		if ctx.Err() != nil {
			break
		}
		ann, err := r.annotator.Annotate(ctx, r.client, sentences[i].English)
		if err != nil {
			notices = append(notices, domain.Notice{
				Level:   domain.NoticeWarning,
				Message: fmt.Sprintf("sentence %d: %v", i+1, err),
			})
		} else {
			if ann.Japanese != "" {
				sentences[i].Japanese = ann.Japanese
			}
			if ann.Grammar != "" {
				sentences[i].Grammar = ann.Grammar
			}
		}
		if r.progress != nil {
			r.progress(i+1, len(sentences))
		}
	}
	return notices
}

func outputFormat(opts options) (domain.Format, error) {
	if opts.format != "" {
		return export.ParseFormat(opts.format)
	}
	ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(opts.out)), ".")
	if f, err := export.ParseFormat(ext); err == nil {
		return f, nil
	}
	return domain.FormatTSV, nil
}
