package middleware

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/heartmarshall/myenglish-study/pkg/ctxutil"
)

// Logger returns middleware that logs each HTTP request with method, path,
// status code, response size, duration and the request and session IDs.
func Logger(logger *slog.Logger) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			sw := &statusWriter{ResponseWriter: w, status: http.StatusOK, ctx: r.Context()}

			next.ServeHTTP(sw, r.WithContext(withStatusWriter(r.Context(), sw)))

			attrs := append([]slog.Attr{
				slog.String("method", r.Method),
				slog.String("path", r.URL.Path),
				slog.Int("status", sw.status),
				slog.Int("bytes", sw.written),
				slog.Duration("duration", time.Since(start)),
			}, ctxutil.LogAttrs(sw.ctx)...)

			level := slog.LevelInfo
			if sw.status >= 500 {
				level = slog.LevelError
			}
			logger.LogAttrs(r.Context(), level, "http.request", attrs...)
		})
	}
}

// statusWriter wraps http.ResponseWriter to capture the response status code
// and size. Inner middleware can report a richer context through it.
type statusWriter struct {
	http.ResponseWriter
	status      int
	written     int
	wroteHeader bool
	ctx         context.Context
}

func (w *statusWriter) Write(b []byte) (int, error) {
	if !w.wroteHeader {
		w.WriteHeader(http.StatusOK)
	}
	n, err := w.ResponseWriter.Write(b)
	w.written += n
	return n, err
}

// Unwrap lets http.ResponseController reach the underlying writer.
func (w *statusWriter) Unwrap() http.ResponseWriter {
	return w.ResponseWriter
}

type statusWriterKey struct{}

func withStatusWriter(ctx context.Context, sw *statusWriter) context.Context {
	return context.WithValue(ctx, statusWriterKey{}, sw)
}

// reportContext hands ctx back to an enclosing Logger so it can log
// identifiers that were resolved further down the chain.
func reportContext(ctx context.Context) {
	if sw, ok := ctx.Value(statusWriterKey{}).(*statusWriter); ok {
		sw.ctx = ctx
	}
}

func (w *statusWriter) WriteHeader(code int) {
	if !w.wroteHeader {
		w.status = code
		w.wroteHeader = true
	}
	w.ResponseWriter.WriteHeader(code)
}
