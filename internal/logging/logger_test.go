package logging

import (
	"testing"

	"github.com/go-logr/logr"
	"go.uber.org/zap/zapcore"
)

func TestParseLevel(t *testing.T) {
	cases := map[string]zapcore.Level{
		"debug":   zapcore.DebugLevel,
		" WARN ":  zapcore.WarnLevel,
		"warning": zapcore.WarnLevel,
		"error":   zapcore.ErrorLevel,
		"info":    zapcore.InfoLevel,
		"":        zapcore.InfoLevel,
		"bogus":   zapcore.InfoLevel,
	}
	for in, want := range cases {
		if got := parseLevel(in); got != want {
			t.Fatalf("parseLevel(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestLeveledLoggerVerbosity(t *testing.T) {
	if !LeveledLogger("debug").V(1).Enabled() {
		t.Fatalf("debug level should enable V(1)")
	}
	if LeveledLogger("info").V(1).Enabled() {
		t.Fatalf("info level should not enable V(1)")
	}
}

func TestNewFallsBackToDefault(t *testing.T) {
	l := New(logr.Logger{})
	if l.Logr().GetSink() == nil {
		t.Fatalf("expected default sink")
	}
	l.WithName("test").WithValues("k", "v").Debug("not shown")
}
