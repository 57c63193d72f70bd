// Copyright 2021 The rest Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package logging

import (
	"fmt"
	"io"
	"os"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/gogama/rest"
	"github.com/gogama/rest/request"
)

// Config selects the level and encoding of a logger.
type Config struct {
	// Level is one of debug, info, warn (or warning) and error. Empty
	// means info.
	Level string `yaml:"level" mapstructure:"level"`
	// Format is json or console. Empty means json.
	Format string `yaml:"format" mapstructure:"format"`
}

// New builds a logger which writes to standard error.
func New(cfg Config) (*zap.Logger, error) {
	return NewWithWriter(cfg, os.Stderr)
}

// NewWithWriter builds a logger which writes to w.
func NewWithWriter(cfg Config, w io.Writer) (*zap.Logger, error) {
	level, err := ParseLevel(cfg.Level)
	if err != nil {
		return nil, err
	}

	encoderCfg := zap.NewProductionEncoderConfig()
	encoderCfg.TimeKey = "ts"
	encoderCfg.EncodeTime = zapcore.ISO8601TimeEncoder

	var encoder zapcore.Encoder
	switch strings.ToLower(cfg.Format) {
	case "", "json":
		encoder = zapcore.NewJSONEncoder(encoderCfg)
	case "console":
		encoderCfg.EncodeLevel = zapcore.CapitalLevelEncoder
		encoder = zapcore.NewConsoleEncoder(encoderCfg)
	default:
		return nil, fmt.Errorf("rest/logging: unknown format %q", cfg.Format)
	}

	core := zapcore.NewCore(encoder, zapcore.Lock(zapcore.AddSync(w)), level)
	return zap.New(core, zap.AddStacktrace(zapcore.ErrorLevel)), nil
}

// ParseLevel converts a level name to a zap level.
func ParseLevel(s string) (zapcore.Level, error) {
	switch strings.ToLower(s) {
	case "debug":
		return zapcore.DebugLevel, nil
	case "", "info":
		return zapcore.InfoLevel, nil
	case "warn", "warning":
		return zapcore.WarnLevel, nil
	case "error":
		return zapcore.ErrorLevel, nil
	default:
		return zapcore.InfoLevel, fmt.Errorf("rest/logging: unknown level %q", s)
	}
}

// Install adds handlers to g which log each request execution to log.
// A nil logger installs nothing.
func Install(g *rest.HandlerGroup, log *zap.Logger) {
	if log == nil {
		return
	}
	h := &handler{log: log}
	g.PushBack(rest.BeforeSend, h)
	g.PushBack(rest.AfterExecutionEnd, h)
}

type handler struct {
	log *zap.Logger
}

func (h *handler) Handle(evt rest.Event, e *request.Execution) {
	switch evt {
	case rest.BeforeSend:
		h.log.Debug("sending request",
			zap.String("method", e.Method),
			zap.String("url", e.URL),
		)
	case rest.AfterExecutionEnd:
		if e.Err != nil {
			h.log.Warn("request failed",
				zap.String("method", e.Method),
				zap.String("url", e.URL),
				zap.Duration("duration", e.Duration()),
				zap.Stringer("kind", e.Kind()),
				zap.Bool("transient", e.Kind().Transient()),
				zap.Error(e.Err),
			)
			return
		}
		h.log.Info("request completed",
			zap.String("method", e.Method),
			zap.String("url", e.URL),
			zap.Int("status", e.StatusCode()),
			zap.Duration("duration", e.Duration()),
			zap.Int("bytes", len(e.Body)),
		)
	}
}
