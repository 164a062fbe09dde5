package logger

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	atom = zap.NewAtomicLevelAt(zapcore.InfoLevel)
	log  *zap.SugaredLogger
)

func init() {
	cfg := zap.NewDevelopmentConfig()
	cfg.Level = atom
	cfg.DisableStacktrace = true
	l, err := cfg.Build()
	if err != nil {
		panic(err)
	}
	log = l.Sugar()
}

// L : get the shared sugared logger
func L() *zap.SugaredLogger {
	return log
}

func SetLevel(level zapcore.Level) {
	atom.SetLevel(level)
}

func Close() {
	_ = log.Sync()
}
