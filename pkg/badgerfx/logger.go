package badgerfx

import (
	"github.com/dgraph-io/badger/v4"
	"go.uber.org/zap"
)

// zapLogger adapts badger's printf-style logging to zap. Badger is chatty at
// info level, so info messages are logged as debug.
type zapLogger struct {
	sugar *zap.SugaredLogger
}

func newLogger(l *zap.Logger) *zapLogger {
	return &zapLogger{
		sugar: l.WithOptions(zap.AddCallerSkip(1)).Sugar(),
	}
}

func (l *zapLogger) Debugf(format string, a ...any)   { l.sugar.Debugf(format, a...) }
func (l *zapLogger) Infof(format string, a ...any)    { l.sugar.Debugf(format, a...) }
func (l *zapLogger) Warningf(format string, a ...any) { l.sugar.Warnf(format, a...) }
func (l *zapLogger) Errorf(format string, a ...any)   { l.sugar.Errorf(format, a...) }

var _ badger.Logger = (*zapLogger)(nil)
