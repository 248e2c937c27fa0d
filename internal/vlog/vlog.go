// Package vlog is the pipeline's structured logging surface: a
// package-level zap.SugaredLogger default, with an Or helper so
// callers can hold an optional injected logger instead of threading a
// *zap.Logger through every call.
package vlog

import "go.uber.org/zap"

// Log is the process-wide sugared logger. Tests may swap it for a
// nop logger; production entry points call Init.
var Log = zap.NewNop().Sugar()

// Init builds a production zap logger (JSON, info level), or a
// development logger when debug is set, and installs it as Log. Call
// once from main.
func Init(debug bool) error {
	var cfg zap.Config
	if debug {
		cfg = zap.NewDevelopmentConfig()
	} else {
		cfg = zap.NewProductionConfig()
	}
	logger, err := cfg.Build()
	if err != nil {
		return err
	}
	Log = logger.Sugar()
	return nil
}

// Sync flushes any buffered log entries; call before process exit.
func Sync() {
	_ = Log.Sync()
}

// Or returns l, or the package-level Log when l is nil. The importers
// and Pipeline hold a *zap.SugaredLogger field and route their call
// sites through this, so a pipeline given its own logger stays
// independent of Log.
func Or(l *zap.SugaredLogger) *zap.SugaredLogger {
	if l == nil {
		return Log
	}
	return l
}
