// Package forestlog adapts a zap.SugaredLogger to the minimal logging
// interfaces the CORE packages accept by injection (adaptation.Logger and
// friends), so the demonstration binary can wire production-grade
// structured logging without any CORE package importing zap directly.
package forestlog

import (
	"go.uber.org/zap"
)

// New builds a development zap.SugaredLogger suitable for direct
// assignment to adaptation.Engine.Logger — the method set already
// matches (Warnw/Errorw), so no wrapper type is needed.
func New() (*zap.SugaredLogger, error) {
	logger, err := zap.NewDevelopment()
	if err != nil {
		return nil, err
	}

	return logger.Sugar(), nil
}

// NewProduction builds a production zap.SugaredLogger (JSON encoding,
// info level and above).
func NewProduction() (*zap.SugaredLogger, error) {
	logger, err := zap.NewProduction()
	if err != nil {
		return nil, err
	}

	return logger.Sugar(), nil
}

// Sync flushes any buffered log entries. Callers should defer Sync() on
// the logger returned by New/NewProduction.
func Sync(l *zap.SugaredLogger) error {
	return l.Sync()
}
