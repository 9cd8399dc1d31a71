package study

import (
	"bytes"
	"context"
	"fmt"

	"github.com/heartmarshall/myenglish-study/internal/domain"
	"github.com/heartmarshall/myenglish-study/internal/export"
)

// ExportResult is an encoded sentence list ready for download.
type ExportResult struct {
	FileName    string
	ContentType string
	Data        []byte
}

// Export encodes the session's current sentences, including edits.
func (s *Service) Export(ctx context.Context, input ExportInput) (*ExportResult, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}
	format, err := export.ParseFormat(input.Format)
	if err != nil {
		return nil, err
	}

	sess, err := s.store.Get(ctx, input.SessionID)
	if err != nil {
		return nil, err
	}
	if !sess.FileLoaded() {
		return nil, domain.NewValidationError("file", MsgNoSentences)
	}

	var buf bytes.Buffer
	if err := export.Write(&buf, format, sess.Sentences); err != nil {
		return nil, fmt.Errorf("export session: %w", err)
	}

	return &ExportResult{
		FileName:    export.FileName(sess.FileName, format),
		ContentType: export.ContentType(format),
		Data:        buf.Bytes(),
	}, nil
}
