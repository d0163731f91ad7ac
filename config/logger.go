package config

import "go.uber.org/zap"

var Log *zap.Logger

func InitLogger() error {
	l, err := zap.NewProduction()
	if err != nil {
		return err
	}
	Log = l
	return nil
}

// L returns the process logger, falling back to a no-op logger so
// library code and tests never have to nil-check.
func L() *zap.Logger {
	if Log == nil {
		return zap.NewNop()
	}
	return Log
}
