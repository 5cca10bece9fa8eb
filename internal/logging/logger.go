// Package logging builds the zap logger the binaries pass around explicitly.
// The aggregation core never sees it.
package logging

import (
	"os"
	"path/filepath"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

// New returns a logger that tees a JSON core on a rotated file under logDir
// with a console core on stderr. An empty logDir skips the file core, which
// is what the CLIs use. verbose lowers the console level to debug.
func New(logDir string, verbose bool) (*zap.Logger, error) {
	consoleLevel := zap.InfoLevel
	if verbose {
		consoleLevel = zap.DebugLevel
	}

	consoleCfg := zap.NewDevelopmentEncoderConfig()
	consoleCfg.EncodeLevel = zapcore.CapitalLevelEncoder
	console := zapcore.NewCore(
		zapcore.NewConsoleEncoder(consoleCfg),
		zapcore.Lock(os.Stderr),
		consoleLevel,
	)

	if logDir == "" {
		return zap.New(console), nil
	}

	if err := os.MkdirAll(logDir, 0o755); err != nil {
		return nil, err
	}
	w := zapcore.AddSync(&lumberjack.Logger{
		Filename:   filepath.Join(logDir, "monitoring.log"),
		MaxSize:    10, // MB
		MaxBackups: 5,
		MaxAge:     14, // days
		Compress:   true,
	})
	fileCfg := zap.NewProductionEncoderConfig()
	fileCfg.TimeKey = "ts"
	file := zapcore.NewCore(zapcore.NewJSONEncoder(fileCfg), w, zap.InfoLevel)

	return zap.New(zapcore.NewTee(file, console)), nil
}
