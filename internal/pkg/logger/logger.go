package logger

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Logger define a interface para logging estruturado.
// A aplicação (Handler, Service, Repository) deve depender apenas desta interface.
type Logger interface {
	Debug(msg string, fields map[string]interface{})
	Info(msg string, fields map[string]interface{})
	Warn(msg string, fields map[string]interface{})
	Error(msg string, err error)
	Fatal(msg string, err error)
}

// ZapLogger implementa Logger sobre um *zap.Logger com saída JSON.
type ZapLogger struct {
	base *zap.Logger
}

// NewLogger cria um Logger de produção (JSON, timestamp ISO8601) no nível informado.
// Níveis desconhecidos caem para "info". Esta função é chamada no main.go.
func NewLogger(level string) Logger {
	cfg := zap.NewProductionConfig()
	cfg.EncoderConfig.TimeKey = "timestamp"
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	cfg.Level = zap.NewAtomicLevelAt(parseLevel(level))

	base, err := cfg.Build(zap.AddCallerSkip(1))
	if err != nil {
		// A configuração acima é estática; se falhar, seguimos sem logs em vez de derrubar o processo.
		base = zap.NewNop()
	}
	return &ZapLogger{base: base}
}

// NewNop retorna um Logger que descarta tudo. Útil em testes.
func NewNop() Logger {
	return &ZapLogger{base: zap.NewNop()}
}

// NewFromZap embrulha um *zap.Logger já configurado.
func NewFromZap(base *zap.Logger) Logger {
	return &ZapLogger{base: base}
}

// Named retorna um Logger filho identificado pelo componente.
func Named(l Logger, component string) Logger {
	if z, ok := l.(*ZapLogger); ok {
		return &ZapLogger{base: z.base.Named(component)}
	}
	return l
}

// Sync descarrega buffers pendentes. Deve ser chamado antes de encerrar o processo.
func Sync(l Logger) {
	if z, ok := l.(*ZapLogger); ok {
		_ = z.base.Sync()
	}
}

func parseLevel(level string) zapcore.Level {
	switch level {
	case "debug":
		return zapcore.DebugLevel
	case "warn":
		return zapcore.WarnLevel
	case "error":
		return zapcore.ErrorLevel
	case "fatal":
		return zapcore.FatalLevel
	default:
		return zapcore.InfoLevel
	}
}

func toZapFields(fields map[string]interface{}) []zap.Field {
	if len(fields) == 0 {
		return nil
	}
	out := make([]zap.Field, 0, len(fields))
	for k, v := range fields {
		out = append(out, zap.Any(k, v))
	}
	return out
}

func (l *ZapLogger) Debug(msg string, fields map[string]interface{}) {
	l.base.Debug(msg, toZapFields(fields)...)
}

func (l *ZapLogger) Info(msg string, fields map[string]interface{}) {
	l.base.Info(msg, toZapFields(fields)...)
}

func (l *ZapLogger) Warn(msg string, fields map[string]interface{}) {
	l.base.Warn(msg, toZapFields(fields)...)
}

func (l *ZapLogger) Error(msg string, err error) {
	l.base.Error(msg, zap.Error(err))
}

// Fatal registra a mensagem e encerra o processo (os.Exit(1)).
func (l *ZapLogger) Fatal(msg string, err error) {
	l.base.Fatal(msg, zap.Error(err))
}
