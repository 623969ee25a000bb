package log

import (
	"context"
	"io"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

type Fields logrus.Fields

// Logger é a fachada sobre o logrus usada pelo resto do código
type Logger interface {
	WithField(key string, value interface{}) Logger
	WithFields(fields Fields) Logger
	WithError(err error) Logger

	Debug(args ...interface{})
	Debugf(format string, args ...interface{})
	Info(args ...interface{})
	Infof(format string, args ...interface{})
	Warn(args ...interface{})
	Warnf(format string, args ...interface{})
	Error(args ...interface{})
	Errorf(format string, args ...interface{})
}

const (
	FormatText = "text"
	FormatJSON = "json"
)

type logger struct {
	entry *logrus.Entry
}

// L é o logger global, sem contexto de requisição
var L Logger = &logger{entry: logrus.NewEntry(logrus.StandardLogger())}

// Setup aplica nível e formato ao logger global. Nível inválido cai para info e formato
// desconhecido cai para texto.
func Setup(level, format string) {
	if strings.EqualFold(format, FormatJSON) {
		logrus.SetFormatter(&logrus.JSONFormatter{
			TimestampFormat: time.RFC3339,
			FieldMap: logrus.FieldMap{
				logrus.FieldKeyMsg: "message",
			},
		})
	} else {
		logrus.SetFormatter(&logrus.TextFormatter{
			FullTimestamp:   true,
			TimestampFormat: time.RFC3339,
		})
	}

	logLevel, err := logrus.ParseLevel(level)
	if err != nil {
		logrus.Warnf("Nível de log inválido: %s, usando 'info'", level)
		logLevel = logrus.InfoLevel
	}
	logrus.SetLevel(logLevel)

	L = &logger{entry: logrus.NewEntry(logrus.StandardLogger())}
}

// SetupTestLogger descarta a saída; os testes só precisam que as chamadas não falhem
func SetupTestLogger() {
	logrus.SetOutput(io.Discard)
	logrus.SetLevel(logrus.DebugLevel)

	L = &logger{entry: logrus.NewEntry(logrus.StandardLogger())}
}

func (l *logger) WithField(key string, value interface{}) Logger {
	return &logger{entry: l.entry.WithField(key, value)}
}

func (l *logger) WithFields(fields Fields) Logger {
	return &logger{entry: l.entry.WithFields(logrus.Fields(fields))}
}

func (l *logger) WithError(err error) Logger {
	return &logger{entry: l.entry.WithError(err)}
}

func (l *logger) Debug(args ...interface{})                 { l.entry.Debug(args...) }
func (l *logger) Debugf(format string, args ...interface{}) { l.entry.Debugf(format, args...) }
func (l *logger) Info(args ...interface{})                  { l.entry.Info(args...) }
func (l *logger) Infof(format string, args ...interface{})  { l.entry.Infof(format, args...) }
func (l *logger) Warn(args ...interface{})                  { l.entry.Warn(args...) }
func (l *logger) Warnf(format string, args ...interface{})  { l.entry.Warnf(format, args...) }
func (l *logger) Error(args ...interface{})                 { l.entry.Error(args...) }
func (l *logger) Errorf(format string, args ...interface{}) { l.entry.Errorf(format, args...) }

type requestInfoKey struct{}

// RequestInfo identifica a requisição nos logs. O middleware de log cria o valor e o de
// autenticação preenche o usuário depois, por isso o acesso é protegido.
type RequestInfo struct {
	CorrelationID string
	ClientID      string

	mu     sync.RWMutex
	userID int
}

func (ri *RequestInfo) SetUserID(userID int) {
	ri.mu.Lock()
	ri.userID = userID
	ri.mu.Unlock()
}

func (ri *RequestInfo) UserID() int {
	ri.mu.RLock()
	defer ri.mu.RUnlock()
	return ri.userID
}

func (ri *RequestInfo) fields() Fields {
	fields := Fields{"correlation_id": ri.CorrelationID}
	if ri.ClientID != "" {
		fields["client_id"] = ri.ClientID
	}
	if userID := ri.UserID(); userID != 0 {
		fields["user_id"] = userID
	}
	return fields
}

// WithRequestInfo grava no contexto um RequestInfo com id de correlação novo
func WithRequestInfo(ctx context.Context, clientID string) (context.Context, *RequestInfo) {
	info := &RequestInfo{CorrelationID: uuid.NewString(), ClientID: clientID}
	return context.WithValue(ctx, requestInfoKey{}, info), info
}

func RequestInfoFrom(ctx context.Context) (*RequestInfo, bool) {
	if ctx == nil {
		return nil, false
	}
	info, ok := ctx.Value(requestInfoKey{}).(*RequestInfo)
	return info, ok && info != nil
}

func GetCorrelationID(ctx context.Context) string {
	if info, ok := RequestInfoFrom(ctx); ok {
		return info.CorrelationID
	}
	return ""
}

// SetUserID registra o usuário autenticado na requisição, se houver uma
func SetUserID(ctx context.Context, userID int) {
	if info, ok := RequestInfoFrom(ctx); ok {
		info.SetUserID(userID)
	}
}

// ForContext devolve o logger global com os campos da requisição presente no contexto
func ForContext(ctx context.Context) Logger {
	info, ok := RequestInfoFrom(ctx)
	if !ok {
		return L
	}
	return L.WithFields(info.fields())
}
