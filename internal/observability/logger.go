package observability

import (
	"log"

	"go.uber.org/zap"
)

// Logger is the narrow logging surface services depend on.
type Logger struct {
	sugar *zap.SugaredLogger
}

func NewLogger() *Logger {
	base, err := zap.NewProduction(zap.WithCaller(false))
	if err != nil {
		log.Fatalf("failed to build logger: %v", err)
	}
	return &Logger{sugar: base.Sugar()}
}

func (l *Logger) Info(msg string) {
	l.sugar.Info(msg)
}

func (l *Logger) Error(msg string) {
	l.sugar.Error(msg)
}

func (l *Logger) Sync() {
	_ = l.sugar.Sync()
}
