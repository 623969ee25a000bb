package middleware

import (
	"net/http"
	"runtime/debug"
	"time"

	"github.com/vfg2006/phone-retail-admin-api/pkg/apiErrors"
	"github.com/vfg2006/phone-retail-admin-api/pkg/log"
)

const (
	CorrelationIDHeader = "X-Correlation-ID"
	ClientIDHeader      = "X-Client-ID"

	slowRequestThreshold = 500 * time.Millisecond
)

// LoggingMiddleware abre o contexto de log da requisição e registra uma linha ao final,
// com status, duração e o usuário quando a autenticação o identificou
func LoggingMiddleware() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx, info := log.WithRequestInfo(r.Context(), r.Header.Get(ClientIDHeader))
			r = r.WithContext(ctx)
			w.Header().Set(CorrelationIDHeader, info.CorrelationID)

			lrw := newLoggingResponseWriter(w)
			start := time.Now()

			next.ServeHTTP(lrw, r)

			elapsed := time.Since(start)
			logger := log.ForContext(ctx).WithFields(log.Fields{
				"method":      r.Method,
				"path":        r.URL.Path,
				"status_code": lrw.statusCode,
				"duration_ms": elapsed.Milliseconds(),
				"bytes":       lrw.written,
			})

			switch {
			case lrw.statusCode >= 500:
				logger.Error("Requisição finalizada com erro")
			case lrw.statusCode >= 400:
				logger.Warn("Requisição finalizada com aviso")
			default:
				logger.Info("Requisição finalizada")
			}

			if elapsed > slowRequestThreshold && !isStream(r) {
				logger.Warnf("Requisição lenta: %s", elapsed)
			}
		})
	}
}

// isStream identifica conexões longas de eventos, que não contam como lentas
func isStream(r *http.Request) bool {
	return r.Header.Get("Accept") == "text/event-stream"
}

type loggingResponseWriter struct {
	http.ResponseWriter
	statusCode  int
	written     int
	wroteHeader bool
}

func newLoggingResponseWriter(w http.ResponseWriter) *loggingResponseWriter {
	return &loggingResponseWriter{ResponseWriter: w, statusCode: http.StatusOK}
}

func (lrw *loggingResponseWriter) WriteHeader(code int) {
	if !lrw.wroteHeader {
		lrw.statusCode = code
		lrw.wroteHeader = true
	}
	lrw.ResponseWriter.WriteHeader(code)
}

func (lrw *loggingResponseWriter) Write(b []byte) (int, error) {
	lrw.wroteHeader = true
	n, err := lrw.ResponseWriter.Write(b)
	lrw.written += n
	return n, err
}

// Flush repassa o flush ao writer original; o stream de preferências depende disso
func (lrw *loggingResponseWriter) Flush() {
	if flusher, ok := lrw.ResponseWriter.(http.Flusher); ok {
		flusher.Flush()
	}
}

// LogPanicMiddleware converte pânico em SRV_001 com o id de correlação nos detalhes
func LogPanicMiddleware() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if err := recover(); err != nil {
					if err == http.ErrAbortHandler {
						panic(err)
					}

					correlationID := w.Header().Get(CorrelationIDHeader)
					log.L.WithFields(log.Fields{
						"correlation_id": correlationID,
						"panic_error":    err,
						"method":         r.Method,
						"path":           r.URL.Path,
						"stack_trace":    string(debug.Stack()),
					}).Error("Erro não tratado na aplicação")

					apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Erro interno no servidor", map[string]string{
						"correlation_id": correlationID,
					})
				}
			}()

			next.ServeHTTP(w, r)
		})
	}
}
